package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/grassroots-fc/matchday/internal/domain/team"
)

const (
	StatusScheduled  = "SCHEDULED"
	StatusInProgress = "IN_PROGRESS"
	StatusFinished   = "FINISHED"
)

// Match is one scheduled or officiated game between two clubs.
type Match struct {
	ID        string
	HomeTeam  team.Team
	AwayTeam  team.Team
	KickoffAt time.Time
	Venue     string
	HomeScore int
	AwayScore int
	Status    string
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if err := m.HomeTeam.Validate(); err != nil {
		return fmt.Errorf("home team: %w", err)
	}
	if err := m.AwayTeam.Validate(); err != nil {
		return fmt.Errorf("away team: %w", err)
	}
	if m.HomeTeam.ID == m.AwayTeam.ID {
		return fmt.Errorf("home and away team must differ")
	}

	return nil
}
