// Package ledger keeps the ordered, append-only list of in-game events for
// one live match and derives score and on-field state from it. Both
// derivations are pure folds over the event list seeded by the committed
// roster snapshot, so removing an event can never leave derived state out
// of sync with the history.
package ledger

import (
	"fmt"
	"sort"

	"github.com/grassroots-fc/matchday/internal/domain/match"
	"github.com/grassroots-fc/matchday/internal/domain/roster"
)

// Score is the running goal count per side, derived and never stored.
type Score struct {
	Home int
	Away int
}

// RecordInput carries one confirmed event entry form.
type RecordInput struct {
	Type        match.EventType
	TeamID      string
	Minute      int
	Half        match.Half
	PlayerID    string
	PlayerOutID string
	Description string
}

// Ledger owns the pending-and-persisted event list for one match session.
// It is not safe for concurrent use; the recorder session serializes all
// access behind its own lock.
type Ledger struct {
	matchID    string
	homeTeamID string
	awayTeamID string
	baseline   roster.Snapshot
	events     []match.GameEvent
	newID      func() (string, error)
}

func New(snapshot roster.Snapshot, homeTeamID, awayTeamID string, newID func() (string, error)) *Ledger {
	return &Ledger{
		matchID:    snapshot.MatchID,
		homeTeamID: homeTeamID,
		awayTeamID: awayTeamID,
		baseline:   snapshot,
		newID:      newID,
	}
}

// Record validates and appends one event, returning it with a freshly
// generated temporary id. The list stays sorted by minute with ties in
// insertion order.
func (l *Ledger) Record(input RecordInput) (match.GameEvent, error) {
	suffix, err := l.newID()
	if err != nil {
		return match.GameEvent{}, fmt.Errorf("generate event id: %w", err)
	}

	event := match.GameEvent{
		ID:          match.TempEventID(suffix),
		MatchID:     l.matchID,
		TeamID:      input.TeamID,
		Type:        input.Type,
		Minute:      input.Minute,
		Half:        input.Half,
		PlayerID:    input.PlayerID,
		PlayerOutID: input.PlayerOutID,
		Description: input.Description,
	}
	if err := event.Validate(); err != nil {
		return match.GameEvent{}, err
	}

	l.events = append(l.events, event)
	l.sortEvents()

	return event, nil
}

// Remove deletes the event with the given id and reports whether it was
// present. A second removal of the same id is a no-op; derived score and
// on-field state re-fold over the remaining events, so neither can
// under-run its baseline.
func (l *Ledger) Remove(eventID string) (match.GameEvent, bool) {
	for i, event := range l.events {
		if event.ID == eventID {
			removed := event
			l.events = append(l.events[:i], l.events[i+1:]...)
			return removed, true
		}
	}

	return match.GameEvent{}, false
}

// Rehydrate replaces the event list with rows read back from the backing
// store, dropping any local pending state. Used after a save reconciles
// temporary ids with durable ones.
func (l *Ledger) Rehydrate(events []match.GameEvent) {
	l.events = append([]match.GameEvent(nil), events...)
	l.sortEvents()
}

// Events returns the full ordered event list.
func (l *Ledger) Events() []match.GameEvent {
	return append([]match.GameEvent(nil), l.events...)
}

// Pending returns only locally recorded events that still carry a
// temporary id and await submission.
func (l *Ledger) Pending() []match.GameEvent {
	var out []match.GameEvent
	for _, event := range l.events {
		if match.IsTempEventID(event.ID) {
			out = append(out, event)
		}
	}
	return out
}

// Score folds goal events into the home/away tally. Goals for a team id
// matching neither side are ignored rather than guessed.
func (l *Ledger) Score() Score {
	var score Score
	for _, event := range l.events {
		if event.Type != match.EventGoal {
			continue
		}
		switch event.TeamID {
		case l.homeTeamID:
			score.Home++
		case l.awayTeamID:
			score.Away++
		}
	}
	return score
}

// OnField folds substitutions over the roster baseline: starters begin on
// the field, substitutes off, and each substitution flips its two players
// in opposite directions.
func (l *Ledger) OnField() map[string]bool {
	status := make(map[string]bool, len(l.baseline.StarterIDs)+len(l.baseline.SubstituteIDs))
	for _, id := range l.baseline.StarterIDs {
		status[id] = true
	}
	for _, id := range l.baseline.SubstituteIDs {
		status[id] = false
	}

	for _, event := range l.events {
		if event.Type != match.EventSubstitution {
			continue
		}
		status[event.PlayerID] = true
		status[event.PlayerOutID] = false
	}

	return status
}

func (l *Ledger) IsOnField(playerID string) bool {
	return l.OnField()[playerID]
}

func (l *Ledger) sortEvents() {
	sort.SliceStable(l.events, func(i, j int) bool {
		return l.events[i].Minute < l.events[j].Minute
	})
}
