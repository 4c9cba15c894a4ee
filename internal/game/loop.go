package game

import "time"

// Loop drives an Engine at the host's cadence: each Step measures the time
// since the previous Step, polls the input once and advances exactly once.
type Loop struct {
	engine *Engine
	input  InputSource
	now    func() time.Time
	last   time.Time
	snap   Snapshot
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithClock substitutes the wall clock (tests, headless runs).
func WithClock(now func() time.Time) LoopOption {
	return func(l *Loop) { l.now = now }
}

// NewLoop creates a loop for engine reading intents from input.
func NewLoop(engine *Engine, input InputSource, opts ...LoopOption) *Loop {
	l := &Loop{
		engine: engine,
		input:  input,
		now:    time.Now,
	}
	for _, o := range opts {
		o(l)
	}
	l.last = l.now()
	l.snap = engine.Snapshot()
	return l
}

// Step advances the engine once and returns the snapshot to draw.
func (l *Loop) Step() Snapshot {
	now := l.now()
	elapsed := float64(now.Sub(l.last)) / float64(time.Millisecond)
	l.last = now

	var in IntentSet
	if l.input != nil {
		in = l.input.Intents()
	}
	l.engine.Advance(elapsed, in)
	l.snap = l.engine.Snapshot()
	return l.snap
}

// Last returns the snapshot produced by the latest Step.
func (l *Loop) Last() Snapshot {
	return l.snap
}

// Engine returns the driven engine, for one-shot triggers.
func (l *Loop) Engine() *Engine {
	return l.engine
}

// Reset resets the engine and refreshes the snapshot.
func (l *Loop) Reset() {
	l.engine.Reset()
	l.snap = l.engine.Snapshot()
}

// Start leaves the start screen and refreshes the snapshot. The clock is
// rebased so time spent on the start screen is not charged to the first tick.
func (l *Loop) Start() bool {
	if !l.engine.Start() {
		return false
	}
	l.last = l.now()
	l.snap = l.engine.Snapshot()
	return true
}

// StepClock returns a clock that advances by step on every call, starting
// at the Unix epoch. Headless runs use it to simulate a fixed frame rate.
func StepClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	first := true
	return func() time.Time {
		if first {
			first = false
			return t
		}
		t = t.Add(step)
		return t
	}
}
