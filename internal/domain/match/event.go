package match

import (
	"fmt"
	"strings"
)

// EventType classifies one in-game event on the ledger.
type EventType string

const (
	EventGoal         EventType = "goal"
	EventYellowCard   EventType = "yellow_card"
	EventRedCard      EventType = "red_card"
	EventSubstitution EventType = "substitution"
)

var AllEventTypes = map[EventType]struct{}{
	EventGoal:         {},
	EventYellowCard:   {},
	EventRedCard:      {},
	EventSubstitution: {},
}

// Half tags an event with the half of play it belongs to.
type Half string

const (
	HalfFirst  Half = "first"
	HalfSecond Half = "second"
)

const tempIDPrefix = "tmp-"

// GameEvent is one row of the append-only match event ledger. Events carry
// a temporary id until they are submitted to the backing store; the store
// assigns the durable id on insert.
type GameEvent struct {
	ID          string
	MatchID     string
	TeamID      string
	Type        EventType
	Minute      int
	Half        Half
	PlayerID    string
	PlayerOutID string
	Description string
}

// TempEventID builds a local event id recognisable as not yet persisted.
func TempEventID(suffix string) string {
	return tempIDPrefix + suffix
}

// IsTempEventID reports whether the id was generated locally and the event
// still awaits submission to the backing store.
func IsTempEventID(id string) bool {
	return strings.HasPrefix(id, tempIDPrefix)
}

// HalfForMinute recovers the half tag from a stored minute for legacy event
// rows that predate the explicit half column.
func HalfForMinute(minute, halfLengthMinutes int) Half {
	if minute >= halfLengthMinutes {
		return HalfSecond
	}
	return HalfFirst
}

func (e GameEvent) Validate() error {
	if e.MatchID == "" {
		return fmt.Errorf("event match id is required")
	}
	if e.TeamID == "" {
		return fmt.Errorf("event team id is required")
	}
	if _, ok := AllEventTypes[e.Type]; !ok {
		return fmt.Errorf("invalid event type: %s", e.Type)
	}
	if e.Minute < 0 {
		return fmt.Errorf("event minute cannot be negative")
	}
	if e.Half != HalfFirst && e.Half != HalfSecond {
		return fmt.Errorf("invalid event half: %s", e.Half)
	}
	switch e.Type {
	case EventYellowCard, EventRedCard:
		if e.PlayerID == "" {
			return fmt.Errorf("%s requires a player id", e.Type)
		}
	case EventSubstitution:
		if e.PlayerID == "" || e.PlayerOutID == "" {
			return fmt.Errorf("substitution requires incoming and outgoing player ids")
		}
		if e.PlayerID == e.PlayerOutID {
			return fmt.Errorf("substitution players must differ")
		}
	}

	return nil
}
