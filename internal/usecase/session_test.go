package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/grassroots-fc/matchday/internal/domain/clock"
	"github.com/grassroots-fc/matchday/internal/domain/ledger"
	"github.com/grassroots-fc/matchday/internal/domain/match"
	"github.com/grassroots-fc/matchday/internal/infrastructure/repository/memory"
)

func loadRoversSession(t *testing.T, f *recorderFixture) *Session {
	t.Helper()

	seedSnapshot(t, f.store, memory.MatchIDRoversHarriers)
	session, err := f.svc.LoadSession(t.Context(), memory.MatchIDRoversHarriers, memory.TeamIDRovers)
	if err != nil {
		t.Fatalf("load session failed: %v", err)
	}
	return session
}

func TestSession_RecordEvent_GoalUpdatesScore(t *testing.T) {
	session := loadRoversSession(t, newRecorderFixture(t, RecorderConfig{}))

	event, err := session.RecordEvent(ledger.RecordInput{
		Type:     match.EventGoal,
		TeamID:   memory.TeamIDRovers,
		Minute:   7,
		PlayerID: "rov-09",
	})
	if err != nil {
		t.Fatalf("record goal failed: %v", err)
	}
	if !match.IsTempEventID(event.ID) {
		t.Fatalf("expected a temporary id before save, got %s", event.ID)
	}

	state := session.State()
	if state.Score.Home != 1 || state.Score.Away != 0 {
		t.Fatalf("unexpected score after home goal: %+v", state.Score)
	}
}

func TestSession_RecordEvent_DefaultsMinuteAndHalfFromClock(t *testing.T) {
	session := loadRoversSession(t, newRecorderFixture(t, RecorderConfig{HalfLengthMinutes: 20}))

	session.AdvancePhase()
	session.AdvancePhase()
	session.ToggleClock()
	for range 125 {
		session.Tick()
	}

	event, err := session.RecordEvent(ledger.RecordInput{
		Type:     match.EventYellowCard,
		TeamID:   memory.TeamIDRovers,
		Minute:   -1,
		PlayerID: "rov-04",
	})
	if err != nil {
		t.Fatalf("record card failed: %v", err)
	}
	if event.Minute != 22 {
		t.Fatalf("expected minute 22 from the clock, got %d", event.Minute)
	}
	if event.Half != match.HalfSecond {
		t.Fatalf("expected second-half tag, got %s", event.Half)
	}
}

func TestSession_RecordEvent_InvalidSubstitution(t *testing.T) {
	session := loadRoversSession(t, newRecorderFixture(t, RecorderConfig{}))

	_, err := session.RecordEvent(ledger.RecordInput{
		Type:     match.EventSubstitution,
		TeamID:   memory.TeamIDRovers,
		Minute:   30,
		PlayerID: "rov-12",
	})
	if !errors.Is(err, ErrInvalidSubstitution) {
		t.Fatalf("expected ErrInvalidSubstitution, got %v", err)
	}

	_, err = session.RecordEvent(ledger.RecordInput{
		Type:        match.EventSubstitution,
		TeamID:      memory.TeamIDRovers,
		Minute:      30,
		PlayerID:    "rov-12",
		PlayerOutID: "rov-12",
	})
	if !errors.Is(err, ErrInvalidSubstitution) {
		t.Fatalf("expected ErrInvalidSubstitution for same player, got %v", err)
	}
}

func TestSession_Substitution_FlipsOnFieldState(t *testing.T) {
	session := loadRoversSession(t, newRecorderFixture(t, RecorderConfig{}))

	event, err := session.RecordEvent(ledger.RecordInput{
		Type:        match.EventSubstitution,
		TeamID:      memory.TeamIDRovers,
		Minute:      25,
		PlayerID:    "rov-12",
		PlayerOutID: "rov-02",
	})
	if err != nil {
		t.Fatalf("record substitution failed: %v", err)
	}

	state := session.State()
	if state.OnField["rov-02"] || !state.OnField["rov-12"] {
		t.Fatalf("substitution not reflected on field: %+v", state.OnField)
	}

	if err := session.UndoEvent(event.ID); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	state = session.State()
	if !state.OnField["rov-02"] || state.OnField["rov-12"] {
		t.Fatalf("undo did not restore on-field state: %+v", state.OnField)
	}
}

func TestSession_UndoEvent_UnknownID(t *testing.T) {
	session := loadRoversSession(t, newRecorderFixture(t, RecorderConfig{}))

	if err := session.UndoEvent("tmp-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSession_HalftimeHandoff_StartsClock(t *testing.T) {
	f := newRecorderFixture(t, RecorderConfig{HalftimeHandoffDelay: 10 * time.Millisecond})
	session := loadRoversSession(t, f)

	session.AdvancePhase()
	if state := session.State(); state.Clock.Phase != clock.PhaseHalftime || state.Clock.Running {
		t.Fatalf("expected stopped halftime clock right after advance, got %+v", state.Clock)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !session.State().Clock.Running {
		if time.Now().After(deadline) {
			t.Fatal("halftime clock never started on its own")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSession_HalftimeHandoff_SkippedWhenPhaseMovedOn(t *testing.T) {
	f := newRecorderFixture(t, RecorderConfig{HalftimeHandoffDelay: 20 * time.Millisecond})
	session := loadRoversSession(t, f)

	session.AdvancePhase()
	session.AdvancePhase()

	time.Sleep(60 * time.Millisecond)
	if state := session.State(); state.Clock.Phase != clock.PhaseSecond || state.Clock.Running {
		t.Fatalf("second half should start stopped, got %+v", state.Clock)
	}
}

func TestSession_Save_PersistsAndReconciles(t *testing.T) {
	f := newRecorderFixture(t, RecorderConfig{})
	session := loadRoversSession(t, f)

	inputs := []ledger.RecordInput{
		{Type: match.EventGoal, TeamID: memory.TeamIDRovers, Minute: 7, PlayerID: "rov-09"},
		{Type: match.EventGoal, TeamID: memory.TeamIDHarriers, Minute: 15, PlayerID: "har-02"},
		{Type: match.EventSubstitution, TeamID: memory.TeamIDRovers, Minute: 28, PlayerID: "rov-13", PlayerOutID: "rov-03"},
	}
	for _, input := range inputs {
		if _, err := session.RecordEvent(input); err != nil {
			t.Fatalf("record event failed: %v", err)
		}
	}

	if err := session.Save(t.Context()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	state := session.State()
	for _, e := range state.Events {
		if match.IsTempEventID(e.ID) {
			t.Fatalf("event kept temporary id after save: %s", e.ID)
		}
	}
	if state.OnField["rov-03"] || !state.OnField["rov-13"] {
		t.Fatalf("on-field state lost across reconciliation: %+v", state.OnField)
	}

	stored, _, err := f.matchRepo.GetByID(t.Context(), memory.MatchIDRoversHarriers)
	if err != nil {
		t.Fatalf("read match failed: %v", err)
	}
	if stored.HomeScore != 1 || stored.AwayScore != 1 || stored.Status != match.StatusInProgress {
		t.Fatalf("match not updated: %+v", stored)
	}

	persisted, err := f.eventRepo.ListByMatch(t.Context(), memory.MatchIDRoversHarriers)
	if err != nil {
		t.Fatalf("list events failed: %v", err)
	}
	if len(persisted) != 3 {
		t.Fatalf("expected 3 persisted events, got %d", len(persisted))
	}

	// A second save has nothing pending and must not duplicate rows.
	if err := session.Save(t.Context()); err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	persisted, _ = f.eventRepo.ListByMatch(t.Context(), memory.MatchIDRoversHarriers)
	if len(persisted) != 3 {
		t.Fatalf("second save duplicated events: %d", len(persisted))
	}
}

func TestSession_Save_FinishedMatchNotifies(t *testing.T) {
	f := newRecorderFixture(t, RecorderConfig{})
	notifier := &captureNotifier{}
	f.svc.SetResultNotifier(notifier)
	session := loadRoversSession(t, f)

	if _, err := session.RecordEvent(ledger.RecordInput{
		Type: match.EventGoal, TeamID: memory.TeamIDRovers, Minute: 33, PlayerID: "rov-10",
	}); err != nil {
		t.Fatalf("record goal failed: %v", err)
	}
	session.AdvancePhase()
	session.AdvancePhase()
	session.AdvancePhase()

	if err := session.Save(t.Context()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	stored, _, _ := f.matchRepo.GetByID(t.Context(), memory.MatchIDRoversHarriers)
	if stored.Status != match.StatusFinished {
		t.Fatalf("expected finished status, got %s", stored.Status)
	}
	if notifier.last == nil || notifier.last.HomeScore != 1 {
		t.Fatalf("notifier not called with final result: %+v", notifier.last)
	}
}

func TestSession_Save_RejectsOverlap(t *testing.T) {
	f := newRecorderFixture(t, RecorderConfig{})
	blocking := &blockingMatchRepo{MatchRepository: f.matchRepo, entered: make(chan struct{}), release: make(chan struct{})}
	f.svc.matchRepo = blocking
	session := loadRoversSession(t, f)

	errCh := make(chan error, 1)
	go func() { errCh <- session.Save(context.Background()) }()

	<-blocking.entered
	if err := session.Save(t.Context()); !errors.Is(err, ErrSaveInFlight) {
		t.Fatalf("expected ErrSaveInFlight, got %v", err)
	}
	close(blocking.release)

	if err := <-errCh; err != nil {
		t.Fatalf("first save failed: %v", err)
	}
}

func TestSession_Save_RehearsalTouchesNoStores(t *testing.T) {
	f := newRecorderFixture(t, RecorderConfig{RehearsalSaveDelay: time.Millisecond})
	seedSnapshot(t, f.store, "rehearsal-open-day")

	session, err := f.svc.LoadSession(t.Context(), "rehearsal-open-day", memory.TeamIDRovers)
	if err != nil {
		t.Fatalf("load rehearsal session failed: %v", err)
	}
	if _, err := session.RecordEvent(ledger.RecordInput{
		Type: match.EventGoal, TeamID: memory.TeamIDRovers, Minute: 3, PlayerID: "rov-09",
	}); err != nil {
		t.Fatalf("record goal failed: %v", err)
	}

	if err := session.Save(t.Context()); err != nil {
		t.Fatalf("rehearsal save failed: %v", err)
	}

	persisted, _ := f.eventRepo.ListByMatch(t.Context(), "rehearsal-open-day")
	if len(persisted) != 0 {
		t.Fatalf("rehearsal save wrote %d events", len(persisted))
	}
	if state := session.State(); state.Score.Home != 1 {
		t.Fatalf("rehearsal ledger lost its goal: %+v", state.Score)
	}
}

func TestSession_Save_TimeoutSurfaces(t *testing.T) {
	f := newRecorderFixture(t, RecorderConfig{SaveTimeout: 20 * time.Millisecond})
	slow := &slowMatchRepo{MatchRepository: f.matchRepo, delay: 200 * time.Millisecond}
	f.svc.matchRepo = slow
	session := loadRoversSession(t, f)

	if err := session.Save(t.Context()); !errors.Is(err, ErrPersistenceTimeout) {
		t.Fatalf("expected ErrPersistenceTimeout, got %v", err)
	}
}

type captureNotifier struct {
	last *match.Match
}

func (n *captureNotifier) NotifyResult(_ context.Context, m match.Match) error {
	n.last = &m
	return nil
}

type blockingMatchRepo struct {
	*memory.MatchRepository
	entered chan struct{}
	release chan struct{}
}

func (r *blockingMatchRepo) UpdateScoreStatus(ctx context.Context, matchID string, homeScore, awayScore int, status string) error {
	close(r.entered)
	<-r.release
	return r.MatchRepository.UpdateScoreStatus(ctx, matchID, homeScore, awayScore, status)
}

type slowMatchRepo struct {
	*memory.MatchRepository
	delay time.Duration
}

func (r *slowMatchRepo) UpdateScoreStatus(ctx context.Context, matchID string, homeScore, awayScore int, status string) error {
	select {
	case <-time.After(r.delay):
	case <-ctx.Done():
		return ctx.Err()
	}
	return r.MatchRepository.UpdateScoreStatus(ctx, matchID, homeScore, awayScore, status)
}
