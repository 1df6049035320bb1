package clock

// Phase is one stage of a short-form match. Phases only move forward;
// finished is terminal.
type Phase string

const (
	PhaseFirst    Phase = "first"
	PhaseHalftime Phase = "halftime"
	PhaseSecond   Phase = "second"
	PhaseFinished Phase = "finished"
)

// DefaultHalfLengthMinutes is the league's short-form half length. Other
// competition formats override it through configuration.
const DefaultHalfLengthMinutes = 20

// Clock tracks elapsed seconds per phase with an orthogonal running flag.
// Each phase owns its counter; re-entering never happens because phases
// are strictly forward. The caller drives Tick once per elapsed second.
type Clock struct {
	halfLength int
	phase      Phase
	running    bool
	elapsed    map[Phase]int
}

// State is an immutable view of the clock for DTOs and logs.
type State struct {
	Phase          Phase
	Running        bool
	ElapsedSeconds int
	Minute         int
}

func New(halfLengthMinutes int) *Clock {
	if halfLengthMinutes <= 0 {
		halfLengthMinutes = DefaultHalfLengthMinutes
	}

	return &Clock{
		halfLength: halfLengthMinutes,
		phase:      PhaseFirst,
		elapsed:    make(map[Phase]int),
	}
}

func (c *Clock) Phase() Phase  { return c.phase }
func (c *Clock) Running() bool { return c.running }

func (c *Clock) Elapsed(phase Phase) int { return c.elapsed[phase] }

// ToggleRunning flips the running flag. It never changes the phase and is
// ignored once the match is finished.
func (c *Clock) ToggleRunning() {
	if c.phase == PhaseFinished {
		return
	}
	c.running = !c.running
}

// Run starts the clock without toggling; used for the halftime handoff.
func (c *Clock) Run() {
	if c.phase == PhaseFinished {
		return
	}
	c.running = true
}

// Tick adds one second to the current phase's counter while running.
func (c *Clock) Tick() {
	if !c.running || c.phase == PhaseFinished {
		return
	}
	c.elapsed[c.phase]++
}

// Reset zeroes the current phase's counter and stops the clock. The phase
// is untouched.
func (c *Clock) Reset() {
	if c.phase == PhaseFinished {
		return
	}
	c.elapsed[c.phase] = 0
	c.running = false
}

// AdvancePhase moves to the next phase and reports whether a transition
// happened. Invalid transitions, including any attempt past finished, are
// silent no-ops.
func (c *Clock) AdvancePhase() bool {
	switch c.phase {
	case PhaseFirst:
		c.phase = PhaseHalftime
		c.elapsed[PhaseHalftime] = 0
		c.running = false
	case PhaseHalftime:
		c.phase = PhaseSecond
		c.elapsed[PhaseSecond] = 0
		c.running = false
	case PhaseSecond:
		c.phase = PhaseFinished
		c.running = false
	default:
		return false
	}

	return true
}

// Minute derives the current match minute: second-half minutes offset by
// the configured half length, halftime pinned to the half length.
func (c *Clock) Minute() int {
	switch c.phase {
	case PhaseFirst:
		return c.elapsed[PhaseFirst] / 60
	case PhaseHalftime:
		return c.halfLength
	default:
		return c.halfLength + c.elapsed[PhaseSecond]/60
	}
}

func (c *Clock) State() State {
	return State{
		Phase:          c.phase,
		Running:        c.running,
		ElapsedSeconds: c.elapsed[c.phase],
		Minute:         c.Minute(),
	}
}
