package postgres

import (
	"database/sql"
	"time"

	"github.com/grassroots-fc/matchday/internal/domain/match"
	"github.com/grassroots-fc/matchday/internal/domain/team"
)

type matchTableModel struct {
	ID            int64      `db:"id"`
	PublicID      string     `db:"public_id"`
	HomeTeamID    string     `db:"home_team_public_id"`
	HomeTeamName  string     `db:"home_team_name"`
	HomeTeamShort string     `db:"home_team_short"`
	AwayTeamID    string     `db:"away_team_public_id"`
	AwayTeamName  string     `db:"away_team_name"`
	AwayTeamShort string     `db:"away_team_short"`
	KickoffAt     time.Time  `db:"kickoff_at"`
	Venue         string     `db:"venue"`
	HomeScore     int        `db:"home_score"`
	AwayScore     int        `db:"away_score"`
	Status        string     `db:"status"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:        m.PublicID,
		HomeTeam:  team.Team{ID: m.HomeTeamID, Name: m.HomeTeamName, Short: m.HomeTeamShort},
		AwayTeam:  team.Team{ID: m.AwayTeamID, Name: m.AwayTeamName, Short: m.AwayTeamShort},
		KickoffAt: m.KickoffAt,
		Venue:     m.Venue,
		HomeScore: m.HomeScore,
		AwayScore: m.AwayScore,
		Status:    match.NormalizeStatus(m.Status),
	}
}

type matchEventTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	MatchID     string         `db:"match_public_id"`
	TeamID      string         `db:"team_public_id"`
	EventType   string         `db:"event_type"`
	Minute      int            `db:"minute"`
	Half        sql.NullString `db:"half"`
	PlayerID    sql.NullString `db:"player_public_id"`
	PlayerOutID sql.NullString `db:"player_out_public_id"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (m matchEventTableModel) toDomain() match.GameEvent {
	return match.GameEvent{
		ID:          m.PublicID,
		MatchID:     m.MatchID,
		TeamID:      m.TeamID,
		Type:        match.EventType(m.EventType),
		Minute:      m.Minute,
		Half:        match.Half(m.Half.String),
		PlayerID:    m.PlayerID.String,
		PlayerOutID: m.PlayerOutID.String,
		Description: m.Description.String,
	}
}
