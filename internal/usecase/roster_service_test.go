package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/grassroots-fc/matchday/internal/domain/roster"
	"github.com/grassroots-fc/matchday/internal/infrastructure/repository/memory"
	"github.com/grassroots-fc/matchday/internal/platform/logging"
)

func roversSelection(t *testing.T, matchID string, starters, subs int) *roster.Selection {
	t.Helper()

	selection := roster.NewSelection(matchID)
	for i := 1; i <= starters; i++ {
		if err := selection.Assign(fmt.Sprintf("rov-%02d", i), roster.TagStarter); err != nil {
			t.Fatalf("assign starter %d: %v", i, err)
		}
	}
	for i := starters + 1; i <= starters+subs; i++ {
		if err := selection.Assign(fmt.Sprintf("rov-%02d", i), roster.TagSubstitute); err != nil {
			t.Fatalf("assign substitute %d: %v", i, err)
		}
	}
	return selection
}

func TestRosterService_Submit_CommitsSnapshot(t *testing.T) {
	store := memory.NewSnapshotStore()
	svc := NewRosterService(memory.NewPlayerRepository(memory.SeedPlayers()), store, logging.NewNop())

	selection := roversSelection(t, memory.MatchIDRoversHarriers, 11, 3)

	snap, err := svc.Submit(t.Context(), selection, memory.TeamIDRovers)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len(snap.StarterIDs) != 11 || len(snap.SubstituteIDs) != 3 {
		t.Fatalf("unexpected snapshot shape: %d starters, %d substitutes", len(snap.StarterIDs), len(snap.SubstituteIDs))
	}
	if snap.SubmittedAt.IsZero() {
		t.Fatal("snapshot missing submission time")
	}

	stored, ok, err := store.Get(t.Context(), memory.MatchIDRoversHarriers)
	if err != nil || !ok {
		t.Fatalf("snapshot not stored: ok=%v err=%v", ok, err)
	}
	if stored.StarterIDs[0] != "rov-01" {
		t.Fatalf("starter order not preserved: %v", stored.StarterIDs)
	}
}

func TestRosterService_Submit_RejectsShortRoster(t *testing.T) {
	svc := NewRosterService(memory.NewPlayerRepository(memory.SeedPlayers()), memory.NewSnapshotStore(), logging.NewNop())

	selection := roversSelection(t, memory.MatchIDRoversHarriers, 10, 4)

	if _, err := svc.Submit(t.Context(), selection, memory.TeamIDRovers); !errors.Is(err, ErrRosterIncomplete) {
		t.Fatalf("expected ErrRosterIncomplete, got %v", err)
	}
}

func TestRosterService_Submit_RejectsNonSquadPlayer(t *testing.T) {
	svc := NewRosterService(memory.NewPlayerRepository(memory.SeedPlayers()), memory.NewSnapshotStore(), logging.NewNop())

	selection := roversSelection(t, memory.MatchIDRoversHarriers, 10, 3)
	if err := selection.Assign("har-01", roster.TagStarter); err != nil {
		t.Fatalf("assign opposition player: %v", err)
	}

	if _, err := svc.Submit(t.Context(), selection, memory.TeamIDRovers); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRosterService_Submit_ResubmissionReplaces(t *testing.T) {
	store := memory.NewSnapshotStore()
	svc := NewRosterService(memory.NewPlayerRepository(memory.SeedPlayers()), store, logging.NewNop())

	first := roversSelection(t, memory.MatchIDRoversHarriers, 11, 3)
	if _, err := svc.Submit(t.Context(), first, memory.TeamIDRovers); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	// Swap one starter for a bench player and resubmit.
	revised, err := svc.LoadSelection(t.Context(), memory.MatchIDRoversHarriers)
	if err != nil {
		t.Fatalf("load selection failed: %v", err)
	}
	if revised.TagFor("rov-11") != roster.TagStarter {
		t.Fatalf("reloaded selection lost starter assignment")
	}
	if err := revised.Assign("rov-11", roster.TagSubstitute); err != nil {
		t.Fatalf("demote starter: %v", err)
	}
	if err := revised.Assign("rov-12", roster.TagStarter); err != nil {
		t.Fatalf("promote substitute: %v", err)
	}

	snap, err := svc.Submit(t.Context(), revised, memory.TeamIDRovers)
	if err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}

	stored, ok, _ := store.Get(t.Context(), memory.MatchIDRoversHarriers)
	if !ok {
		t.Fatal("snapshot missing after resubmit")
	}
	if len(stored.StarterIDs) != 11 || len(snap.SubstituteIDs) != 3 {
		t.Fatalf("unexpected resubmitted shape: %v", stored.StarterIDs)
	}
	for _, id := range stored.StarterIDs {
		if id == "rov-11" {
			t.Fatal("demoted player still listed as starter")
		}
	}
}

func TestRosterService_LoadSelection_MissingSnapshotStartsEmpty(t *testing.T) {
	svc := NewRosterService(memory.NewPlayerRepository(nil), memory.NewSnapshotStore(), logging.NewNop())

	selection, err := svc.LoadSelection(t.Context(), "unknown-match")
	if err != nil {
		t.Fatalf("load selection failed: %v", err)
	}
	if selection.StarterCount() != 0 || selection.SubstituteCount() != 0 {
		t.Fatalf("expected empty selection, got %d/%d", selection.StarterCount(), selection.SubstituteCount())
	}
}
