package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/grassroots-fc/matchday/internal/domain/match"
	"github.com/grassroots-fc/matchday/internal/domain/team"
	"github.com/grassroots-fc/matchday/internal/platform/logging"
)

// DirectoryService serves the club and fixture directory screens: which
// teams exist and which matches a team has coming up or finished.
type DirectoryService struct {
	teamRepo  team.Repository
	matchRepo match.Repository
	logger    *logging.Logger
}

func NewDirectoryService(teamRepo team.Repository, matchRepo match.Repository, logger *logging.Logger) *DirectoryService {
	if logger == nil {
		logger = logging.Default()
	}

	return &DirectoryService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		logger:    logger,
	}
}

func (s *DirectoryService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DirectoryService.ListTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return teams, nil
}

func (s *DirectoryService) GetTeam(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DirectoryService.GetTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	item, found, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !found {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return item, nil
}

func (s *DirectoryService) ListMatchesByTeam(ctx context.Context, teamID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DirectoryService.ListMatchesByTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	matches, err := s.matchRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list matches by team: %w", err)
	}

	return matches, nil
}
