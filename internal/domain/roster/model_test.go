package roster

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestSelection_Assign_StarterCapacity(t *testing.T) {
	t.Parallel()

	sel := NewSelection("match-1")
	for i := 0; i < StarterSize; i++ {
		if err := sel.Assign(fmt.Sprintf("p-%02d", i), TagStarter); err != nil {
			t.Fatalf("assign starter %d: %v", i, err)
		}
	}

	if err := sel.Assign("p-extra", TagStarter); !errors.Is(err, ErrRosterFull) {
		t.Fatalf("expected ErrRosterFull, got %v", err)
	}

	// Re-tagging an existing starter is idempotent, not a capacity violation.
	if err := sel.Assign("p-00", TagStarter); err != nil {
		t.Fatalf("idempotent starter assign: %v", err)
	}
	if sel.StarterCount() != StarterSize {
		t.Fatalf("starter count changed: %d", sel.StarterCount())
	}

	// Freeing a slot makes room for the new player.
	if err := sel.Assign("p-00", TagSubstitute); err != nil {
		t.Fatalf("reassign starter to substitute: %v", err)
	}
	if err := sel.Assign("p-extra", TagStarter); err != nil {
		t.Fatalf("assign after freeing slot: %v", err)
	}
}

func TestSelection_Assign_UnassignAlwaysAllowed(t *testing.T) {
	t.Parallel()

	sel := NewSelection("match-1")
	if err := sel.Assign("p-1", TagStarter); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := sel.Assign("p-1", TagNone); err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if got := sel.TagFor("p-1"); got != TagNone {
		t.Fatalf("unexpected tag after unassign: %s", got)
	}
	// Unassigning an unknown player is a no-op.
	if err := sel.Assign("p-unknown", TagNone); err != nil {
		t.Fatalf("unassign unknown: %v", err)
	}
}

func TestSelection_Assign_MovesBetweenGroups(t *testing.T) {
	t.Parallel()

	sel := NewSelection("match-1")
	if err := sel.Assign("p-1", TagSubstitute); err != nil {
		t.Fatalf("assign substitute: %v", err)
	}
	if err := sel.Assign("p-1", TagStarter); err != nil {
		t.Fatalf("promote to starter: %v", err)
	}
	if sel.SubstituteCount() != 0 {
		t.Fatalf("player holds two tags: subs=%d", sel.SubstituteCount())
	}
	if got := sel.TagFor("p-1"); got != TagStarter {
		t.Fatalf("unexpected tag: %s", got)
	}
}

func TestSelection_Commit_RequiresElevenStarters(t *testing.T) {
	t.Parallel()

	sel := NewSelection("match-1")
	for i := 0; i < StarterSize-1; i++ {
		if err := sel.Assign(fmt.Sprintf("p-%02d", i), TagStarter); err != nil {
			t.Fatalf("assign: %v", err)
		}
	}

	if _, err := sel.Commit(time.Now()); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}

	if err := sel.Assign("p-10", TagStarter); err != nil {
		t.Fatalf("assign eleventh: %v", err)
	}
	snap, err := sel.Commit(time.Now())
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(snap.StarterIDs) != StarterSize {
		t.Fatalf("unexpected starter count in snapshot: %d", len(snap.StarterIDs))
	}
	if snap.MatchID != "match-1" {
		t.Fatalf("unexpected match id: %s", snap.MatchID)
	}
}

func TestSelection_Commit_SubstituteCountUnconstrained(t *testing.T) {
	t.Parallel()

	sel := NewSelection("match-1")
	for i := 0; i < StarterSize; i++ {
		if err := sel.Assign(fmt.Sprintf("p-%02d", i), TagStarter); err != nil {
			t.Fatalf("assign: %v", err)
		}
	}

	snap, err := sel.Commit(time.Now())
	if err != nil {
		t.Fatalf("commit with zero substitutes: %v", err)
	}
	if len(snap.SubstituteIDs) != 0 {
		t.Fatalf("unexpected substitutes: %v", snap.SubstituteIDs)
	}
}
