package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/grassroots-fc/matchday/internal/domain/clock"
	"github.com/grassroots-fc/matchday/internal/domain/ledger"
	"github.com/grassroots-fc/matchday/internal/domain/match"
	"github.com/grassroots-fc/matchday/internal/domain/roster"
)

// SessionMode distinguishes a real persisted match from an officiating
// rehearsal whose saves are simulated.
type SessionMode string

const (
	ModePersisted SessionMode = "persisted"
	ModeRehearsal SessionMode = "rehearsal"
)

// Session is one live recording session: match, clock, ledger, and the
// on-field roster, owned by a single coach. Every mutation is serialized
// behind one mutex so a timer tick can never interleave with a
// half-applied substitution.
type Session struct {
	svc      *RecorderService
	mode     SessionMode
	match    match.Match
	myTeamID string
	snapshot roster.Snapshot

	mu     sync.Mutex
	clock  *clock.Clock
	ledger *ledger.Ledger
	saving atomic.Bool
}

// SessionState is an immutable view for DTOs and the live feed.
type SessionState struct {
	Mode       SessionMode
	Match      match.Match
	MyTeamID   string
	Clock      clock.State
	Score      ledger.Score
	OnField    map[string]bool
	Events     []match.GameEvent
	SaveActive bool
}

func (s *Session) Mode() SessionMode { return s.mode }
func (s *Session) MatchID() string   { return s.match.ID }

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.match
	score := s.ledger.Score()
	m.HomeScore = score.Home
	m.AwayScore = score.Away

	return SessionState{
		Mode:       s.mode,
		Match:      m,
		MyTeamID:   s.myTeamID,
		Clock:      s.clock.State(),
		Score:      score,
		OnField:    s.ledger.OnField(),
		Events:     s.ledger.Events(),
		SaveActive: s.saving.Load(),
	}
}

// Tick advances the clock by one second; the caller drives it from a
// one-second timer.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock.Tick()
}

func (s *Session) ToggleClock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock.ToggleRunning()
}

func (s *Session) ResetClock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock.Reset()
}

// AdvancePhase moves the clock forward. After the first half ends, the
// halftime clock starts on its own once the officiating handoff delay
// passes, unless the phase moved on in the meantime.
func (s *Session) AdvancePhase() {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.clock.Phase()
	if !s.clock.AdvancePhase() {
		return
	}

	if from == clock.PhaseFirst {
		time.AfterFunc(s.svc.cfg.HalftimeHandoffDelay, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.clock.Phase() == clock.PhaseHalftime {
				s.clock.Run()
			}
		})
	}
}

// CurrentMinute returns the derived match minute for pre-filling event
// entry forms.
func (s *Session) CurrentMinute() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.Minute()
}

// CurrentHalf maps the clock phase to the half tag new events carry.
func (s *Session) CurrentHalf() match.Half {
	s.mu.Lock()
	defer s.mu.Unlock()
	return halfForPhase(s.clock.Phase())
}

// RecordEvent appends one confirmed event to the ledger. A minute below
// zero defaults to the clock's current minute, and an empty half to the
// current phase's half.
func (s *Session) RecordEvent(input ledger.RecordInput) (match.GameEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input.Minute < 0 {
		input.Minute = s.clock.Minute()
	}
	if input.Half == "" {
		input.Half = halfForPhase(s.clock.Phase())
	}

	if input.Type == match.EventSubstitution {
		if input.PlayerID == "" || input.PlayerOutID == "" || input.PlayerID == input.PlayerOutID {
			return match.GameEvent{}, fmt.Errorf("%w: incoming and outgoing players must both be chosen and differ", ErrInvalidSubstitution)
		}
	}

	event, err := s.ledger.Record(input)
	if err != nil {
		return match.GameEvent{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return event, nil
}

// UndoEvent removes a not-yet-persisted entry; derived score and on-field
// state follow from the remaining history.
func (s *Session) UndoEvent(eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ledger.Remove(eventID); !ok {
		return fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	return nil
}

// OnFieldPlayers lists player ids currently eligible for goal/card entry.
func (s *Session) OnFieldPlayers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	onField := s.ledger.OnField()
	out := make([]string, 0, len(onField))
	for _, id := range s.snapshot.StarterIDs {
		if onField[id] {
			out = append(out, id)
		}
	}
	for _, id := range s.snapshot.SubstituteIDs {
		if onField[id] {
			out = append(out, id)
		}
	}
	return out
}

// Save writes the derived score and status, then submits pending events
// one by one, tolerating per-event failures, and finally re-reads the
// store to reconcile temporary ids. Overlapping saves are rejected, not
// queued. In rehearsal mode the call only simulates the round trip.
func (s *Session) Save(ctx context.Context) error {
	if !s.saving.CompareAndSwap(false, true) {
		return ErrSaveInFlight
	}
	defer s.saving.Store(false)

	ctx, span := startUsecaseSpan(ctx, "usecase.Session.Save")
	defer span.End()

	if s.mode == ModeRehearsal {
		select {
		case <-time.After(s.svc.cfg.RehearsalSaveDelay):
		case <-ctx.Done():
		}
		s.svc.logger.InfoContext(ctx, "rehearsal save simulated", "match_id", s.match.ID)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.svc.cfg.SaveTimeout)
	defer cancel()

	s.mu.Lock()
	score := s.ledger.Score()
	status := match.StatusInProgress
	if s.clock.Phase() == clock.PhaseFinished {
		status = match.StatusFinished
	}
	pending := s.ledger.Pending()
	s.mu.Unlock()

	if err := s.svc.matchRepo.UpdateScoreStatus(ctx, s.match.ID, score.Home, score.Away, status); err != nil {
		return s.persistenceError("update match score", err)
	}

	failed := s.submitPendingEvents(ctx, pending)

	if err := s.reconcile(ctx, status, score); err != nil {
		return err
	}

	if failed > 0 {
		s.svc.logger.WarnContext(ctx, "save finished with unsubmitted events",
			"match_id", s.match.ID, "failed", failed)
	}

	if status == match.StatusFinished && failed == 0 && s.svc.notifier != nil {
		state := s.State()
		if err := s.svc.notifier.NotifyResult(ctx, state.Match); err != nil {
			s.svc.logger.WarnContext(ctx, "result notification failed", "match_id", s.match.ID, "error", err)
		}
	}

	return nil
}

// submitPendingEvents fans pending events out over a bounded worker pool.
// Each failure is logged and the remaining events still go out; the match
// write and event writes are deliberately not transactional.
func (s *Session) submitPendingEvents(ctx context.Context, pending []match.GameEvent) int {
	if len(pending) == 0 {
		return 0
	}

	workerCount := s.svc.cfg.SaveWorkers
	if workerCount > len(pending) {
		workerCount = len(pending)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		s.svc.logger.WarnContext(ctx, "event worker pool unavailable, submitting serially", "error", err)
		return s.submitSerially(ctx, pending)
	}
	defer pool.Release()

	var failed atomic.Int32
	var workers sync.WaitGroup
	for _, event := range pending {
		event := event
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if _, err := s.svc.eventRepo.Insert(ctx, event); err != nil {
				failed.Add(1)
				s.svc.logger.WarnContext(ctx, "event submission failed",
					"match_id", event.MatchID, "event_type", string(event.Type), "minute", event.Minute, "error", err)
			}
		}); err != nil {
			workers.Done()
			failed.Add(1)
			s.svc.logger.WarnContext(ctx, "event submission not scheduled", "error", err)
		}
	}
	workers.Wait()

	return int(failed.Load())
}

func (s *Session) submitSerially(ctx context.Context, pending []match.GameEvent) int {
	failed := 0
	for _, event := range pending {
		if _, err := s.svc.eventRepo.Insert(ctx, event); err != nil {
			failed++
			s.svc.logger.WarnContext(ctx, "event submission failed",
				"match_id", event.MatchID, "event_type", string(event.Type), "minute", event.Minute, "error", err)
		}
	}
	return failed
}

// reconcile re-reads persisted events so local temporary ids give way to
// the store's durable ones. A failed re-read keeps the local ledger
// intact; the next successful save reconciles again.
func (s *Session) reconcile(ctx context.Context, status string, score ledger.Score) error {
	events, err := s.svc.eventRepo.ListByMatch(ctx, s.match.ID)
	if err != nil {
		s.svc.logger.WarnContext(ctx, "event reconciliation failed, keeping local ledger",
			"match_id", s.match.ID, "error", err)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Events recorded while the save was in flight stay pending.
	stillPending := s.ledger.Pending()
	merged := s.svc.tagHalves(events)
	merged = append(merged, missingFrom(stillPending, merged)...)
	s.ledger.Rehydrate(merged)
	s.match.HomeScore = score.Home
	s.match.AwayScore = score.Away
	s.match.Status = status

	return nil
}

func (s *Session) persistenceError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrPersistenceTimeout, op)
	}
	return fmt.Errorf("%w: %s: %v", ErrDependencyUnavailable, op, err)
}

func halfForPhase(phase clock.Phase) match.Half {
	switch phase {
	case clock.PhaseSecond, clock.PhaseFinished:
		return match.HalfSecond
	default:
		return match.HalfFirst
	}
}

// missingFrom returns pending events whose temporary submissions did not
// land in the persisted set. Matching is by content because the store
// assigns new ids: same type, team, minute and players means the row made
// it.
func missingFrom(pending, persisted []match.GameEvent) []match.GameEvent {
	var out []match.GameEvent
	for _, p := range pending {
		found := false
		for _, q := range persisted {
			if p.Type == q.Type && p.TeamID == q.TeamID && p.Minute == q.Minute &&
				p.PlayerID == q.PlayerID && p.PlayerOutID == q.PlayerOutID {
				found = true
				break
			}
		}
		if !found {
			out = append(out, p)
		}
	}
	return out
}
