package roster

import (
	"context"
	"time"
)

// Snapshot is the committed starter/substitute split for one match.
// It is written once per submission and never mutated; a resubmission
// replaces the whole value.
type Snapshot struct {
	MatchID       string    `json:"match_id"`
	StarterIDs    []string  `json:"starters"`
	SubstituteIDs []string  `json:"substitutes"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// Store is the keyed handoff between roster selection and live recording.
// Implementations may back it with a file, an embedded database, or a
// remote call; the contracts stay the same.
type Store interface {
	Get(ctx context.Context, matchID string) (Snapshot, bool, error)
	Put(ctx context.Context, snapshot Snapshot) error
}
