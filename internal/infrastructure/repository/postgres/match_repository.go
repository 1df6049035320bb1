package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/grassroots-fc/matchday/internal/domain/match"
	qb "github.com/grassroots-fc/matchday/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *MatchRepository) ListByTeam(ctx context.Context, teamID string) ([]match.Match, error) {
	const query = `SELECT * FROM matches
		WHERE (home_team_public_id = $1 OR away_team_public_id = $1)
		  AND deleted_at IS NULL
		ORDER BY kickoff_at`

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, teamID); err != nil {
		return nil, fmt.Errorf("select matches by team: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *MatchRepository) UpdateScoreStatus(ctx context.Context, matchID string, homeScore, awayScore int, status string) error {
	query, args, err := qb.Update("matches").
		Set("home_score", homeScore).
		Set("away_score", awayScore).
		Set("status", match.NormalizeStatus(status)).
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match score query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match score: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update match score: match not found: %s", matchID)
	}

	return nil
}

type MatchEventRepository struct {
	db *sqlx.DB
}

func NewMatchEventRepository(db *sqlx.DB) *MatchEventRepository {
	return &MatchEventRepository{db: db}
}

func (r *MatchEventRepository) ListByMatch(ctx context.Context, matchID string) ([]match.GameEvent, error) {
	query, args, err := qb.Select("*").From("match_events").
		Where(qb.Eq("match_public_id", matchID)).
		OrderBy("minute", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match events query: %w", err)
	}

	var rows []matchEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select match events: %w", err)
	}

	out := make([]match.GameEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

// Insert writes one event and returns the durable public id the database
// assigned. The caller's temporary id is never stored.
func (r *MatchEventRepository) Insert(ctx context.Context, event match.GameEvent) (string, error) {
	query, args, err := qb.InsertInto("match_events").
		Columns("match_public_id", "team_public_id", "event_type", "minute", "half",
			"player_public_id", "player_out_public_id", "description").
		Values(event.MatchID, event.TeamID, string(event.Type), event.Minute, string(event.Half),
			nullIfEmpty(event.PlayerID), nullIfEmpty(event.PlayerOutID), nullIfEmpty(event.Description)).
		Suffix("RETURNING public_id").
		ToSQL()
	if err != nil {
		return "", fmt.Errorf("build insert match event query: %w", err)
	}

	var publicID string
	if err := r.db.GetContext(ctx, &publicID, query, args...); err != nil {
		return "", fmt.Errorf("insert match event: %w", err)
	}

	return publicID, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return sql.NullString{}
	}
	return value
}
