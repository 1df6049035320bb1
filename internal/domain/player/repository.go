package player

import "context"

// Repository describes the squad pool reads the match-day core needs.
type Repository interface {
	ListActiveByTeam(ctx context.Context, teamID string) ([]Player, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
}
