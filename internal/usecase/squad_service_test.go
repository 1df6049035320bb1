package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/grassroots-fc/matchday/internal/domain/player"
	"github.com/grassroots-fc/matchday/internal/infrastructure/repository/memory"
	"github.com/grassroots-fc/matchday/internal/platform/cache"
	"github.com/grassroots-fc/matchday/internal/platform/logging"
)

func TestSquadService_ListActivePlayers_SortedAndFiltered(t *testing.T) {
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	svc := NewSquadService(playerRepo, nil, logging.NewNop())

	players, err := svc.ListActivePlayers(t.Context(), memory.TeamIDRovers)
	if err != nil {
		t.Fatalf("list active players failed: %v", err)
	}

	if len(players) != 14 {
		t.Fatalf("expected 14 active players, got %d", len(players))
	}
	for _, p := range players {
		if p.ID == "rov-99" {
			t.Fatalf("inactive player leaked into squad list")
		}
	}
	for i := 1; i < len(players); i++ {
		prev, curr := players[i-1].ShirtNumber, players[i].ShirtNumber
		if prev != nil && curr != nil && *prev > *curr {
			t.Fatalf("players out of shirt order at index %d: %d before %d", i, *prev, *curr)
		}
	}
}

func TestSquadService_ListActivePlayers_UnnumberedLast(t *testing.T) {
	seven := 7
	playerRepo := memory.NewPlayerRepository([]player.Player{
		{ID: "p-1", TeamID: "team-1", FamilyName: "Nkemdirim", Position: player.PositionDefender, Active: true},
		{ID: "p-2", TeamID: "team-1", FamilyName: "Abbott", ShirtNumber: &seven, Position: player.PositionMidfielder, Active: true},
	})
	svc := NewSquadService(playerRepo, nil, logging.NewNop())

	players, err := svc.ListActivePlayers(t.Context(), "team-1")
	if err != nil {
		t.Fatalf("list active players failed: %v", err)
	}

	if len(players) != 2 || players[0].ID != "p-2" || players[1].ID != "p-1" {
		t.Fatalf("expected numbered player first, got %+v", players)
	}
}

func TestSquadService_ListActivePlayers_EmptyTeamID(t *testing.T) {
	svc := NewSquadService(memory.NewPlayerRepository(nil), nil, logging.NewNop())

	if _, err := svc.ListActivePlayers(t.Context(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

type countingPlayerRepo struct {
	inner player.Repository
	calls atomic.Int32
}

func (r *countingPlayerRepo) ListActiveByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	r.calls.Add(1)
	return r.inner.ListActiveByTeam(ctx, teamID)
}

func (r *countingPlayerRepo) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	return r.inner.GetByIDs(ctx, playerIDs)
}

func TestSquadService_ListActivePlayers_CachesSquad(t *testing.T) {
	repo := &countingPlayerRepo{inner: memory.NewPlayerRepository(memory.SeedPlayers())}
	svc := NewSquadService(repo, cache.NewStore(time.Minute), logging.NewNop())

	for range 3 {
		if _, err := svc.ListActivePlayers(t.Context(), memory.TeamIDRovers); err != nil {
			t.Fatalf("list active players failed: %v", err)
		}
	}

	if got := repo.calls.Load(); got != 1 {
		t.Fatalf("expected a single repository read, got %d", got)
	}
}
