package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

// defaultFrame is the simulated frame length of headless runs (60 Hz).
const defaultFrame = time.Second / 60

// TestSim is a headless session harness used by tests and the headless
// reporter. It drives the same Engine and Loop as the window, with a
// stepped clock, deterministic seeding and a structured event log.
type TestSim struct {
	Engine *Engine
	Loop   *Loop
	SimLog *SimLog

	rules     Rules
	seed      int64
	rng       *rand.Rand
	logger    zerolog.Logger
	meters    metric.MeterProvider
	frame     time.Duration
	input     InputSource
	autopilot bool
	noStart   bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // rules, seed, verbose, input: before the engine exists
	simOptEntity                      // placements: after the engine is built
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithRules replaces the default rules.
func WithRules(r Rules) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rules = r
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithVerbose keeps per-shot entries in the SimLog.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithSimLogger routes engine logs to l.
func WithSimLogger(l zerolog.Logger) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.logger = l
	}}
}

// WithSimMeterProvider records the engine counters on mp.
func WithSimMeterProvider(mp metric.MeterProvider) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.meters = mp
	}}
}

// WithFrame sets the simulated time between steps.
func WithFrame(d time.Duration) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.frame = d
	}}
}

// WithInput drives the player from in.
func WithInput(in InputSource) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.input = in
		ts.autopilot = false
	}}
}

// WithAutopilot drives the player with an Autopilot.
func WithAutopilot() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.autopilot = true
	}}
}

// WithoutStart leaves the session on the start screen.
func WithoutStart() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.noStart = true
	}}
}

// WithNoEnemies removes the startup enemies.
func WithNoEnemies() SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Engine.enemies = ts.Engine.enemies[:0]
	}}
}

// WithEnemyAt adds an enemy at (x,y). Combine with WithNoEnemies for an
// exact layout.
func WithEnemyAt(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		e := ts.Engine
		e.enemies = append(e.enemies, newVehicle(RoleEnemy, mgl64.Vec2{x, y}, e.rules))
	}}
}

// WithPlayerAt moves the player to (x,y), facing angle.
func WithPlayerAt(x, y, angle float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		e := ts.Engine
		e.player.Pos = clampToArena(mgl64.Vec2{x, y}, e.rules.World, e.rules.HalfExtent)
		e.player.Angle = angle
	}}
}

// NewTestSim constructs a TestSim in ordered passes:
//  1. Infrastructure (rules, seed, verbose, input)
//  2. Engine and startup enemies
//  3. Placements
//  4. Start, unless WithoutStart
func NewTestSim(opts ...SimOption) (*TestSim, error) {
	ts := &TestSim{
		rules:  DefaultRules(),
		seed:   1,
		rng:    rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
		SimLog: NewSimLog(false),
		logger: zerolog.Nop(),
		frame:  defaultFrame,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}

	engine, err := NewEngine(ts.rules,
		WithRandom(ts.rng),
		WithLogger(ts.logger),
		WithEventSink(ts.SimLog),
		WithMeterProvider(ts.meters),
	)
	if err != nil {
		return nil, fmt.Errorf("building engine: %w", err)
	}
	ts.Engine = engine

	for _, o := range opts {
		if o.kind == simOptEntity {
			o.fn(ts)
		}
	}

	input := ts.input
	if ts.autopilot {
		input = NewAutopilot(func() Snapshot { return ts.Loop.Last() })
	}
	ts.Loop = NewLoop(engine, input, WithClock(StepClock(ts.frame)))
	if !ts.noStart {
		ts.Loop.Start()
	}
	return ts, nil
}

// RunTicks steps the loop n times.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Loop.Step()
	}
}

// RunUntil steps up to maxSteps times, stopping early if predicate returns
// true. Returns the engine tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxSteps int) int {
	for i := 0; i < maxSteps; i++ {
		ts.Loop.Step()
		if predicate(ts) {
			return ts.Engine.Tick()
		}
	}
	return -1
}

// CurrentTick returns the engine tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Engine.Tick()
}

// Snapshot returns the current state.
func (ts *TestSim) Snapshot() Snapshot {
	return ts.Engine.Snapshot()
}

// Seed returns the seed the session was built with.
func (ts *TestSim) Seed() int64 {
	return ts.seed
}

// Report renders the run report for the current state.
func (ts *TestSim) Report() string {
	return RunReport(ts.seed, ts.Snapshot(), ts.Engine.Stats(), ts.SimLog.Entries())
}

// GameOver is a RunUntil predicate.
func GameOver(ts *TestSim) bool {
	return ts.Engine.Phase() == PhaseGameOver
}
