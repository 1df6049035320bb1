package postgres

import (
	"database/sql"
	"time"

	"github.com/grassroots-fc/matchday/internal/domain/player"
)

type playerTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	TeamID      string         `db:"team_public_id"`
	FamilyName  string         `db:"family_name"`
	GivenName   string         `db:"given_name"`
	ShirtNumber sql.NullInt64  `db:"shirt_number"`
	Position    string         `db:"position"`
	BirthDate   sql.NullTime   `db:"birth_date"`
	Active      bool           `db:"active"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   *time.Time     `db:"deleted_at"`
}

func (m playerTableModel) toDomain() player.Player {
	p := player.Player{
		ID:         m.PublicID,
		TeamID:     m.TeamID,
		FamilyName: m.FamilyName,
		GivenName:  m.GivenName,
		Position:   player.Position(m.Position),
		Active:     m.Active,
	}
	if m.ShirtNumber.Valid {
		shirt := int(m.ShirtNumber.Int64)
		p.ShirtNumber = &shirt
	}
	if m.BirthDate.Valid {
		p.BirthDate = m.BirthDate.Time
	}
	return p
}
