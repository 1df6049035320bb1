package memory

import (
	"fmt"
	"time"

	"github.com/grassroots-fc/matchday/internal/domain/match"
	"github.com/grassroots-fc/matchday/internal/domain/player"
	"github.com/grassroots-fc/matchday/internal/domain/team"
)

const (
	TeamIDRovers    = "u13-rovers"
	TeamIDHarriers  = "u13-harriers"
	TeamIDWanderers = "u13-wanderers"

	MatchIDRoversHarriers  = "2026-03-07-rovers-harriers"
	MatchIDWanderersRovers = "2026-03-14-wanderers-rovers"
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDRovers, Name: "Riverside Rovers U13", Short: "ROV"},
		{ID: TeamIDHarriers, Name: "Hillcrest Harriers U13", Short: "HAR"},
		{ID: TeamIDWanderers, Name: "Westgate Wanderers U13", Short: "WAN"},
	}
}

func SeedMatches() []match.Match {
	teams := make(map[string]team.Team)
	for _, t := range SeedTeams() {
		teams[t.ID] = t
	}

	return []match.Match{
		{
			ID:        MatchIDRoversHarriers,
			HomeTeam:  teams[TeamIDRovers],
			AwayTeam:  teams[TeamIDHarriers],
			KickoffAt: time.Date(2026, time.March, 7, 10, 0, 0, 0, time.UTC),
			Venue:     "Riverside Park Pitch 2",
			Status:    match.StatusScheduled,
		},
		{
			ID:        MatchIDWanderersRovers,
			HomeTeam:  teams[TeamIDWanderers],
			AwayTeam:  teams[TeamIDRovers],
			KickoffAt: time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC),
			Venue:     "Westgate Recreation Ground",
			Status:    match.StatusScheduled,
		},
	}
}

func SeedPlayers() []player.Player {
	rovers := []struct {
		id     string
		family string
		given  string
		shirt  int
		pos    player.Position
	}{
		{"rov-01", "Mercer", "Alfie", 1, player.PositionGoalkeeper},
		{"rov-02", "Okafor", "Dayo", 2, player.PositionDefender},
		{"rov-03", "Hughes", "Ben", 3, player.PositionDefender},
		{"rov-04", "Svoboda", "Marek", 4, player.PositionDefender},
		{"rov-05", "Patel", "Kiran", 5, player.PositionDefender},
		{"rov-06", "Quinn", "Liam", 6, player.PositionMidfielder},
		{"rov-07", "Barros", "Tiago", 7, player.PositionMidfielder},
		{"rov-08", "Nilsen", "Oskar", 8, player.PositionMidfielder},
		{"rov-09", "Carter", "Jude", 9, player.PositionForward},
		{"rov-10", "Diallo", "Sekou", 10, player.PositionForward},
		{"rov-11", "Walsh", "Finn", 11, player.PositionForward},
		{"rov-12", "Ames", "Theo", 12, player.PositionGoalkeeper},
		{"rov-13", "Kovacs", "Bence", 13, player.PositionDefender},
		{"rov-14", "Ito", "Ren", 14, player.PositionMidfielder},
	}

	out := make([]player.Player, 0, len(rovers)+4)
	for _, p := range rovers {
		shirt := p.shirt
		out = append(out, player.Player{
			ID:          p.id,
			TeamID:      TeamIDRovers,
			FamilyName:  p.family,
			GivenName:   p.given,
			ShirtNumber: &shirt,
			Position:    p.pos,
			BirthDate:   time.Date(2013, time.June, 1, 0, 0, 0, 0, time.UTC),
			Active:      true,
		})
	}

	// One retired registration to exercise the active filter, and a few
	// opposition players for event attribution.
	out = append(out, player.Player{
		ID: "rov-99", TeamID: TeamIDRovers, FamilyName: "Byrne", GivenName: "Cal",
		Position: player.PositionMidfielder, Active: false,
	})
	harShirts := []int{1, 7, 9}
	harNames := []string{"Ashworth", "Lindqvist", "Moreau"}
	for i := range harShirts {
		shirt := harShirts[i]
		out = append(out, player.Player{
			ID:          fmt.Sprintf("har-%02d", i+1),
			TeamID:      TeamIDHarriers,
			FamilyName:  harNames[i],
			GivenName:   "",
			ShirtNumber: &shirt,
			Position:    player.PositionMidfielder,
			BirthDate:   time.Date(2013, time.September, 1, 0, 0, 0, 0, time.UTC),
			Active:      true,
		})
	}

	return out
}
