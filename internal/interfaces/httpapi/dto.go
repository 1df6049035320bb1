package httpapi

import (
	"sort"
	"time"

	"github.com/grassroots-fc/matchday/internal/domain/clock"
	"github.com/grassroots-fc/matchday/internal/domain/match"
	"github.com/grassroots-fc/matchday/internal/domain/player"
	"github.com/grassroots-fc/matchday/internal/domain/roster"
	"github.com/grassroots-fc/matchday/internal/domain/team"
	"github.com/grassroots-fc/matchday/internal/usecase"
)

type teamDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Short string `json:"short,omitempty"`
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{ID: t.ID, Name: t.Name, Short: t.Short}
}

type matchDTO struct {
	ID        string    `json:"id"`
	HomeTeam  teamDTO   `json:"home_team"`
	AwayTeam  teamDTO   `json:"away_team"`
	KickoffAt time.Time `json:"kickoff_at"`
	Venue     string    `json:"venue,omitempty"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
	Status    string    `json:"status"`
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:        m.ID,
		HomeTeam:  teamToDTO(m.HomeTeam),
		AwayTeam:  teamToDTO(m.AwayTeam),
		KickoffAt: m.KickoffAt,
		Venue:     m.Venue,
		HomeScore: m.HomeScore,
		AwayScore: m.AwayScore,
		Status:    m.Status,
	}
}

type playerDTO struct {
	ID          string `json:"id"`
	TeamID      string `json:"team_id"`
	FamilyName  string `json:"family_name"`
	GivenName   string `json:"given_name,omitempty"`
	FullName    string `json:"full_name"`
	ShirtNumber *int   `json:"shirt_number,omitempty"`
	Position    string `json:"position"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:          p.ID,
		TeamID:      p.TeamID,
		FamilyName:  p.FamilyName,
		GivenName:   p.GivenName,
		FullName:    p.FullName(),
		ShirtNumber: p.ShirtNumber,
		Position:    string(p.Position),
	}
}

type rosterSelectionDTO struct {
	MatchID         string   `json:"match_id"`
	Starters        []string `json:"starters"`
	Substitutes     []string `json:"substitutes"`
	StarterCount    int      `json:"starter_count"`
	ReadyToSubmit   bool     `json:"ready_to_submit"`
	RequiredStarter int      `json:"required_starters"`
}

func selectionToDTO(s *roster.Selection) rosterSelectionDTO {
	return rosterSelectionDTO{
		MatchID:         s.MatchID(),
		Starters:        s.StarterIDs(),
		Substitutes:     s.SubstituteIDs(),
		StarterCount:    s.StarterCount(),
		ReadyToSubmit:   s.StarterCount() == roster.StarterSize,
		RequiredStarter: roster.StarterSize,
	}
}

type snapshotDTO struct {
	MatchID     string    `json:"match_id"`
	Starters    []string  `json:"starters"`
	Substitutes []string  `json:"substitutes"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func snapshotToDTO(s roster.Snapshot) snapshotDTO {
	return snapshotDTO{
		MatchID:     s.MatchID,
		Starters:    s.StarterIDs,
		Substitutes: s.SubstituteIDs,
		SubmittedAt: s.SubmittedAt,
	}
}

type clockDTO struct {
	Phase          string `json:"phase"`
	Running        bool   `json:"running"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
	Minute         int    `json:"minute"`
}

func clockToDTO(s clock.State) clockDTO {
	return clockDTO{
		Phase:          string(s.Phase),
		Running:        s.Running,
		ElapsedSeconds: s.ElapsedSeconds,
		Minute:         s.Minute,
	}
}

type eventDTO struct {
	ID          string `json:"id"`
	MatchID     string `json:"match_id"`
	TeamID      string `json:"team_id"`
	Type        string `json:"type"`
	Minute      int    `json:"minute"`
	Half        string `json:"half,omitempty"`
	PlayerID    string `json:"player_id,omitempty"`
	PlayerOutID string `json:"player_out_id,omitempty"`
	Description string `json:"description,omitempty"`
	Pending     bool   `json:"pending"`
}

func eventToDTO(e match.GameEvent) eventDTO {
	return eventDTO{
		ID:          e.ID,
		MatchID:     e.MatchID,
		TeamID:      e.TeamID,
		Type:        string(e.Type),
		Minute:      e.Minute,
		Half:        string(e.Half),
		PlayerID:    e.PlayerID,
		PlayerOutID: e.PlayerOutID,
		Description: e.Description,
		Pending:     match.IsTempEventID(e.ID),
	}
}

type scoreDTO struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type sessionStateDTO struct {
	Mode       string     `json:"mode"`
	Match      matchDTO   `json:"match"`
	MyTeamID   string     `json:"my_team_id"`
	Clock      clockDTO   `json:"clock"`
	Score      scoreDTO   `json:"score"`
	OnField    []string   `json:"on_field"`
	Events     []eventDTO `json:"events"`
	SaveActive bool       `json:"save_active"`
}

func sessionStateToDTO(state usecase.SessionState) sessionStateDTO {
	onField := make([]string, 0, len(state.OnField))
	for id, on := range state.OnField {
		if on {
			onField = append(onField, id)
		}
	}
	sort.Strings(onField)

	events := make([]eventDTO, 0, len(state.Events))
	for _, e := range state.Events {
		events = append(events, eventToDTO(e))
	}

	return sessionStateDTO{
		Mode:       string(state.Mode),
		Match:      matchToDTO(state.Match),
		MyTeamID:   state.MyTeamID,
		Clock:      clockToDTO(state.Clock),
		Score:      scoreDTO{Home: state.Score.Home, Away: state.Score.Away},
		OnField:    onField,
		Events:     events,
		SaveActive: state.SaveActive,
	}
}
