package roster

import (
	"errors"
	"time"
)

// Tag is the per-match assignment a player holds during roster selection.
type Tag string

const (
	TagNone       Tag = "none"
	TagStarter    Tag = "starter"
	TagSubstitute Tag = "substitute"
)

// StarterSize is the number of starters a committed roster must carry.
const StarterSize = 11

var (
	ErrRosterFull = errors.New("starter slots are full")
	ErrIncomplete = errors.New("roster requires exactly eleven starters")
)

// Selection tracks transient assignment state for one match's roster
// session. Order of assignment is preserved for both groups so the
// committed snapshot lists players the way the coach picked them.
type Selection struct {
	matchID     string
	starters    []string
	substitutes []string
}

func NewSelection(matchID string) *Selection {
	return &Selection{matchID: matchID}
}

// SelectionFromSnapshot pre-populates a selection from a previously
// committed snapshot so the coach can revise and resubmit.
func SelectionFromSnapshot(snap Snapshot) *Selection {
	return &Selection{
		matchID:     snap.MatchID,
		starters:    append([]string(nil), snap.StarterIDs...),
		substitutes: append([]string(nil), snap.SubstituteIDs...),
	}
}

func (s *Selection) MatchID() string { return s.matchID }

// Assign moves a player to the given tag. Assigning TagStarter when all
// eleven slots are taken is rejected unless the player already holds one;
// the caller must free capacity first. TagNone always succeeds.
func (s *Selection) Assign(playerID string, tag Tag) error {
	if playerID == "" {
		return errors.New("player id is required")
	}

	switch tag {
	case TagStarter:
		if contains(s.starters, playerID) {
			return nil
		}
		if len(s.starters) >= StarterSize {
			return ErrRosterFull
		}
		s.substitutes = remove(s.substitutes, playerID)
		s.starters = append(s.starters, playerID)
	case TagSubstitute:
		if contains(s.substitutes, playerID) {
			return nil
		}
		s.starters = remove(s.starters, playerID)
		s.substitutes = append(s.substitutes, playerID)
	case TagNone:
		s.starters = remove(s.starters, playerID)
		s.substitutes = remove(s.substitutes, playerID)
	default:
		return errors.New("unknown roster tag")
	}

	return nil
}

func (s *Selection) TagFor(playerID string) Tag {
	switch {
	case contains(s.starters, playerID):
		return TagStarter
	case contains(s.substitutes, playerID):
		return TagSubstitute
	default:
		return TagNone
	}
}

func (s *Selection) StarterCount() int    { return len(s.starters) }
func (s *Selection) SubstituteCount() int { return len(s.substitutes) }

func (s *Selection) StarterIDs() []string {
	return append([]string(nil), s.starters...)
}

func (s *Selection) SubstituteIDs() []string {
	return append([]string(nil), s.substitutes...)
}

// Commit validates the exactly-eleven-starters invariant and produces the
// immutable snapshot for the match.
func (s *Selection) Commit(submittedAt time.Time) (Snapshot, error) {
	if len(s.starters) != StarterSize {
		return Snapshot{}, ErrIncomplete
	}

	return Snapshot{
		MatchID:       s.matchID,
		StarterIDs:    append([]string(nil), s.starters...),
		SubstituteIDs: append([]string(nil), s.substitutes...),
		SubmittedAt:   submittedAt.UTC(),
	}, nil
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
