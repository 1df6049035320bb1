package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/grassroots-fc/matchday/internal/domain/player"
	"github.com/grassroots-fc/matchday/internal/platform/cache"
	"github.com/grassroots-fc/matchday/internal/platform/logging"
)

// SquadService serves the eligible player pool the roster screen lists:
// active players for one team, shirt numbers ascending, unnumbered last.
type SquadService struct {
	playerRepo player.Repository
	cache      *cache.Store
	logger     *logging.Logger
}

func NewSquadService(playerRepo player.Repository, cacheStore *cache.Store, logger *logging.Logger) *SquadService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SquadService{
		playerRepo: playerRepo,
		cache:      cacheStore,
		logger:     logger,
	}
}

func (s *SquadService) ListActivePlayers(ctx context.Context, teamID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.ListActivePlayers")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	if s.cache == nil {
		return s.loadActivePlayers(ctx, teamID)
	}

	value, err := s.cache.GetOrLoad(ctx, "squad:"+teamID, func(ctx context.Context) (any, error) {
		return s.loadActivePlayers(ctx, teamID)
	})
	if err != nil {
		return nil, err
	}

	players, ok := value.([]player.Player)
	if !ok {
		s.logger.WarnContext(ctx, "unexpected cached squad value, reloading", "team_id", teamID)
		return s.loadActivePlayers(ctx, teamID)
	}

	return players, nil
}

func (s *SquadService) loadActivePlayers(ctx context.Context, teamID string) ([]player.Player, error) {
	players, err := s.playerRepo.ListActiveByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list active players: %w", err)
	}

	return player.SortByShirtNumber(players), nil
}
