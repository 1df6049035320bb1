package player

import (
	"fmt"
	"sort"
	"time"
)

// Position represents the pitch position recorded for a squad player.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// Player is one eligible athlete in a team's squad pool.
// ShirtNumber is nil for players without an assigned number; uniqueness
// within a roster is a club-admin concern, not enforced here.
type Player struct {
	ID          string
	TeamID      string
	FamilyName  string
	GivenName   string
	ShirtNumber *int
	Position    Position
	BirthDate   time.Time
	Active      bool
}

func (p Player) FullName() string {
	if p.GivenName == "" {
		return p.FamilyName
	}
	return p.GivenName + " " + p.FamilyName
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if p.FamilyName == "" {
		return fmt.Errorf("player family name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}

	return nil
}

// SortByShirtNumber orders players by shirt number ascending with
// unnumbered players last, ties broken by family name.
func SortByShirtNumber(players []Player) []Player {
	out := append([]Player(nil), players...)
	sort.SliceStable(out, func(i, j int) bool {
		return shirtLess(out[i], out[j])
	})
	return out
}

func shirtLess(a, b Player) bool {
	switch {
	case a.ShirtNumber == nil && b.ShirtNumber == nil:
		return a.FamilyName < b.FamilyName
	case a.ShirtNumber == nil:
		return false
	case b.ShirtNumber == nil:
		return true
	case *a.ShirtNumber != *b.ShirtNumber:
		return *a.ShirtNumber < *b.ShirtNumber
	default:
		return a.FamilyName < b.FamilyName
	}
}
