package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grassroots-fc/matchday/internal/domain/player"
	"github.com/grassroots-fc/matchday/internal/domain/roster"
	"github.com/grassroots-fc/matchday/internal/platform/logging"
)

// RosterService drives pre-match roster selection: it hands the screen a
// selection pre-populated from any prior submission, and commits the
// snapshot the live recorder later consumes.
type RosterService struct {
	playerRepo player.Repository
	store      roster.Store
	logger     *logging.Logger
	now        func() time.Time
}

func NewRosterService(playerRepo player.Repository, store roster.Store, logger *logging.Logger) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		playerRepo: playerRepo,
		store:      store,
		logger:     logger,
		now:        time.Now,
	}
}

// LoadSelection returns the working selection for a match. A store read or
// parse failure degrades to an empty selection; the coach simply starts
// over, which matches how a lost local snapshot should behave.
func (s *RosterService) LoadSelection(ctx context.Context, matchID string) (*roster.Selection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.LoadSelection")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	snap, exists, err := s.store.Get(ctx, matchID)
	if err != nil {
		s.logger.WarnContext(ctx, "roster snapshot unreadable, starting empty", "match_id", matchID, "error", err)
		return roster.NewSelection(matchID), nil
	}
	if !exists {
		return roster.NewSelection(matchID), nil
	}

	return roster.SelectionFromSnapshot(snap), nil
}

// Submit validates the exactly-eleven invariant and squad membership, then
// writes the snapshot, replacing any prior submission for the match.
func (s *RosterService) Submit(ctx context.Context, selection *roster.Selection, teamID string) (roster.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Submit")
	defer span.End()

	if selection == nil {
		return roster.Snapshot{}, fmt.Errorf("%w: selection is required", ErrInvalidInput)
	}
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return roster.Snapshot{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	snap, err := selection.Commit(s.now())
	if err != nil {
		return roster.Snapshot{}, fmt.Errorf("%w: starters=%d", ErrRosterIncomplete, selection.StarterCount())
	}

	if err := s.validateSquadMembership(ctx, teamID, snap); err != nil {
		return roster.Snapshot{}, err
	}

	if err := s.store.Put(ctx, snap); err != nil {
		return roster.Snapshot{}, fmt.Errorf("persist roster snapshot: %w", err)
	}

	s.logger.InfoContext(ctx, "roster committed",
		"match_id", snap.MatchID,
		"starters", len(snap.StarterIDs),
		"substitutes", len(snap.SubstituteIDs),
	)

	return snap, nil
}

func (s *RosterService) validateSquadMembership(ctx context.Context, teamID string, snap roster.Snapshot) error {
	assigned := append(append([]string(nil), snap.StarterIDs...), snap.SubstituteIDs...)

	eligible, err := s.playerRepo.ListActiveByTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("list eligible players: %w", err)
	}
	if len(assigned) > len(eligible) {
		return fmt.Errorf("%w: assigned %d players but squad has %d", ErrInvalidInput, len(assigned), len(eligible))
	}

	eligibleSet := make(map[string]struct{}, len(eligible))
	for _, p := range eligible {
		eligibleSet[p.ID] = struct{}{}
	}
	for _, id := range assigned {
		if _, ok := eligibleSet[id]; !ok {
			return fmt.Errorf("%w: player %s is not in the eligible squad", ErrInvalidInput, id)
		}
	}

	return nil
}
