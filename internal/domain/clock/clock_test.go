package clock

import "testing"

func TestClock_TickOnlyWhileRunning(t *testing.T) {
	t.Parallel()

	c := New(20)
	c.Tick()
	if got := c.Elapsed(PhaseFirst); got != 0 {
		t.Fatalf("ticked while stopped: %d", got)
	}

	c.ToggleRunning()
	for i := 0; i < 90; i++ {
		c.Tick()
	}
	if got := c.Elapsed(PhaseFirst); got != 90 {
		t.Fatalf("unexpected elapsed: %d", got)
	}
	if got := c.Minute(); got != 1 {
		t.Fatalf("unexpected minute: %d", got)
	}

	c.ToggleRunning()
	c.Tick()
	if got := c.Elapsed(PhaseFirst); got != 90 {
		t.Fatalf("ticked while paused: %d", got)
	}
}

func TestClock_ResetZeroesCurrentPhaseOnly(t *testing.T) {
	t.Parallel()

	c := New(20)
	c.ToggleRunning()
	for i := 0; i < 120; i++ {
		c.Tick()
	}

	c.AdvancePhase() // halftime
	c.Run()
	for i := 0; i < 30; i++ {
		c.Tick()
	}

	c.Reset()
	if c.Running() {
		t.Fatal("reset must stop the clock")
	}
	if got := c.Elapsed(PhaseHalftime); got != 0 {
		t.Fatalf("halftime counter not zeroed: %d", got)
	}
	if got := c.Elapsed(PhaseFirst); got != 120 {
		t.Fatalf("first-half counter touched by reset: %d", got)
	}
	if got := c.Phase(); got != PhaseHalftime {
		t.Fatalf("reset changed phase: %s", got)
	}
}

func TestClock_PhaseForwardOnly(t *testing.T) {
	t.Parallel()

	c := New(20)
	transitions := []Phase{PhaseHalftime, PhaseSecond, PhaseFinished}
	for _, want := range transitions {
		if !c.AdvancePhase() {
			t.Fatalf("advance toward %s rejected", want)
		}
		if got := c.Phase(); got != want {
			t.Fatalf("unexpected phase: got=%s want=%s", got, want)
		}
	}

	if c.AdvancePhase() {
		t.Fatal("advance past finished must be a no-op")
	}
	if got := c.Phase(); got != PhaseFinished {
		t.Fatalf("finished is not terminal: %s", got)
	}
}

func TestClock_FinishedRejectsMutation(t *testing.T) {
	t.Parallel()

	c := New(20)
	c.AdvancePhase()
	c.AdvancePhase()
	c.ToggleRunning()
	for i := 0; i < 60; i++ {
		c.Tick()
	}
	c.AdvancePhase() // finished

	c.ToggleRunning()
	if c.Running() {
		t.Fatal("toggle must be ignored when finished")
	}
	c.Tick()
	c.Reset()
	if got := c.Elapsed(PhaseSecond); got != 60 {
		t.Fatalf("finished clock mutated: %d", got)
	}
}

func TestClock_MinuteDerivation(t *testing.T) {
	t.Parallel()

	c := New(20)
	c.AdvancePhase()
	c.AdvancePhase() // second half
	c.ToggleRunning()
	for i := 0; i < 125; i++ {
		c.Tick()
	}

	if got := c.Minute(); got != 22 {
		t.Fatalf("unexpected second-half minute: got=%d want=22", got)
	}
}

func TestClock_SecondHalfStartsStopped(t *testing.T) {
	t.Parallel()

	c := New(20)
	c.ToggleRunning()
	c.AdvancePhase() // halftime
	c.Run()
	c.AdvancePhase() // second

	if c.Running() {
		t.Fatal("second half must wait for an explicit start")
	}
	if got := c.Elapsed(PhaseSecond); got != 0 {
		t.Fatalf("second-half counter not zeroed: %d", got)
	}
}
