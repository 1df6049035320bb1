package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grassroots-fc/matchday/internal/domain/clock"
	"github.com/grassroots-fc/matchday/internal/domain/ledger"
	"github.com/grassroots-fc/matchday/internal/domain/match"
	"github.com/grassroots-fc/matchday/internal/domain/roster"
	"github.com/grassroots-fc/matchday/internal/domain/team"
	idgen "github.com/grassroots-fc/matchday/internal/platform/id"
	"github.com/grassroots-fc/matchday/internal/platform/logging"
)

// ResultNotifier announces a finished match's result to the league office.
// Failures are logged, never surfaced to the coach.
type ResultNotifier interface {
	NotifyResult(ctx context.Context, m match.Match) error
}

// RecorderConfig carries the league-format and persistence tuning for live
// recording sessions.
type RecorderConfig struct {
	// HalfLengthMinutes is the short-form half length used for minute
	// derivation and for tagging legacy events with a half.
	HalfLengthMinutes int
	// HalftimeHandoffDelay is the pause before the halftime clock starts
	// on its own after the first half ends.
	HalftimeHandoffDelay time.Duration
	// SaveTimeout bounds every backing-store round trip during Save.
	SaveTimeout time.Duration
	// RehearsalPrefix marks match ids that get an in-memory practice
	// session with simulated saves.
	RehearsalPrefix string
	// RehearsalSaveDelay emulates a store round trip in rehearsal mode.
	RehearsalSaveDelay time.Duration
	// SaveWorkers bounds the pool used to submit pending events.
	SaveWorkers int
}

func (c RecorderConfig) withDefaults() RecorderConfig {
	if c.HalfLengthMinutes <= 0 {
		c.HalfLengthMinutes = clock.DefaultHalfLengthMinutes
	}
	if c.HalftimeHandoffDelay <= 0 {
		c.HalftimeHandoffDelay = 3 * time.Second
	}
	if c.SaveTimeout <= 0 {
		c.SaveTimeout = 10 * time.Second
	}
	if c.RehearsalPrefix == "" {
		c.RehearsalPrefix = "rehearsal-"
	}
	if c.RehearsalSaveDelay <= 0 {
		c.RehearsalSaveDelay = 300 * time.Millisecond
	}
	if c.SaveWorkers <= 0 {
		c.SaveWorkers = 4
	}
	return c
}

// RecorderService builds live recording sessions. One session owns one
// match for one coach on one device; there is no cross-device merging.
type RecorderService struct {
	matchRepo   match.Repository
	eventRepo   match.EventRepository
	rosterStore roster.Store
	idGen       idgen.Generator
	notifier    ResultNotifier
	cfg         RecorderConfig
	logger      *logging.Logger
	now         func() time.Time
}

func NewRecorderService(
	matchRepo match.Repository,
	eventRepo match.EventRepository,
	rosterStore roster.Store,
	idGen idgen.Generator,
	cfg RecorderConfig,
	logger *logging.Logger,
) *RecorderService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RecorderService{
		matchRepo:   matchRepo,
		eventRepo:   eventRepo,
		rosterStore: rosterStore,
		idGen:       idGen,
		cfg:         cfg.withDefaults(),
		logger:      logger,
		now:         time.Now,
	}
}

// SetResultNotifier wires the optional league-office announcement hook.
func (s *RecorderService) SetResultNotifier(notifier ResultNotifier) {
	s.notifier = notifier
}

// LoadSession resolves the match, reads the committed roster, and
// rehydrates any already-persisted events. Without a committed roster the
// load fails with ErrRosterNotFound and the coach is sent back to roster
// selection.
func (s *RecorderService) LoadSession(ctx context.Context, matchID, myTeamID string) (*Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecorderService.LoadSession")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	myTeamID = strings.TrimSpace(myTeamID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}
	if myTeamID == "" {
		return nil, fmt.Errorf("%w: my_team_id is required", ErrInvalidInput)
	}

	mode := ModePersisted
	var m match.Match
	if strings.HasPrefix(matchID, s.cfg.RehearsalPrefix) {
		mode = ModeRehearsal
		m = s.rehearsalMatch(matchID, myTeamID)
	} else {
		found := false
		var err error
		m, found, err = s.matchRepo.GetByID(ctx, matchID)
		if err != nil {
			return nil, fmt.Errorf("%w: read match: %v", ErrDependencyUnavailable, err)
		}
		if !found {
			return nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
		}
	}

	snap, exists, err := s.rosterStore.Get(ctx, matchID)
	if err != nil {
		s.logger.WarnContext(ctx, "roster snapshot unreadable", "match_id", matchID, "error", err)
		exists = false
	}
	if !exists {
		return nil, fmt.Errorf("%w: match=%s", ErrRosterNotFound, matchID)
	}

	led := ledger.New(snap, m.HomeTeam.ID, m.AwayTeam.ID, s.idGen.NewID)

	if mode == ModePersisted {
		events, err := s.eventRepo.ListByMatch(ctx, matchID)
		if err != nil {
			return nil, fmt.Errorf("%w: read events: %v", ErrDependencyUnavailable, err)
		}
		led.Rehydrate(s.tagHalves(events))
	}

	session := &Session{
		svc:      s,
		mode:     mode,
		match:    m,
		myTeamID: myTeamID,
		snapshot: snap,
		clock:    clock.New(s.cfg.HalfLengthMinutes),
		ledger:   led,
	}

	s.logger.InfoContext(ctx, "recording session loaded",
		"match_id", matchID,
		"mode", string(mode),
		"events", len(led.Events()),
	)

	return session, nil
}

// tagHalves backfills the half tag on rows from stores that predate the
// explicit half column, using the configured half length.
func (s *RecorderService) tagHalves(events []match.GameEvent) []match.GameEvent {
	out := append([]match.GameEvent(nil), events...)
	for i := range out {
		if out[i].Half == "" {
			out[i].Half = match.HalfForMinute(out[i].Minute, s.cfg.HalfLengthMinutes)
		}
	}
	return out
}

func (s *RecorderService) rehearsalMatch(matchID, myTeamID string) match.Match {
	return match.Match{
		ID:        matchID,
		HomeTeam:  team.Team{ID: myTeamID, Name: "My Club", Short: "MY"},
		AwayTeam:  team.Team{ID: "rehearsal-opponents", Name: "Rehearsal Opponents", Short: "OPP"},
		KickoffAt: s.now(),
		Status:    match.StatusScheduled,
	}
}
