package match

import "context"

// Repository exposes the match reads and score/status writes the
// recorder needs against the backing store.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]Match, error)
	UpdateScoreStatus(ctx context.Context, matchID string, homeScore, awayScore int, status string) error
}

// EventRepository exposes committed event persistence. Insert returns the
// durable id assigned by the store.
type EventRepository interface {
	ListByMatch(ctx context.Context, matchID string) ([]GameEvent, error)
	Insert(ctx context.Context, event GameEvent) (string, error)
}
