package game

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dumpLog prints the full SimLog to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, ts *TestSim) {
	t.Helper()
	entries := ts.SimLog.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

// --- Scenario: Shooting gallery ---

func TestScenario_ShootingGallery(t *testing.T) {
	t.Log("=== TestScenario_ShootingGallery ===")
	t.Log("--- Setup: stationary target dead ahead, fire held ---")

	r := quietRules()
	r.EnemySpeed = 0
	in := &Intents{}
	in.Press(IntentFire)
	ts, err := NewTestSim(
		WithRules(r),
		WithSeed(42),
		WithInput(in),
		WithNoEnemies(),
		WithEnemyAt(300, 100),
	)
	require.NoError(t, err)

	tick := ts.RunUntil(func(ts *TestSim) bool { return ts.Engine.Score() > 0 }, 120)
	dumpLog(t, ts)

	// 200px at 8px/tick: the first bullet arrives after ~24 ticks.
	require.NotEqual(t, -1, tick, "target never destroyed")
	assert.InDelta(t, 24, tick, 2)
	s := ts.Snapshot()
	assert.Empty(t, s.Enemies)
	assert.Len(t, s.Explosions, 1)
	assert.Equal(t, 1, ts.SimLog.Count(CatCombat, KeyKill))
}

// --- Scenario: First shot from the start position ---

func TestScenario_FirstShotFromStart(t *testing.T) {
	in := &Intents{}
	in.Press(IntentFire)
	ts, err := NewTestSim(
		WithRules(quietRules()),
		WithFrame(16*time.Millisecond),
		WithPlayerAt(100, 100, 0),
		WithNoEnemies(),
		WithInput(in),
	)
	require.NoError(t, err)

	ts.RunTicks(1)
	s := ts.Snapshot()
	require.Len(t, s.Projectiles, 1)
	p := s.Projectiles[0]
	assert.True(t, p.Friendly)
	assert.InDelta(t, 108, p.Pos.X(), 1e-9, "fired at (100,100) and moved one tick")
	assert.InDelta(t, 100, p.Pos.Y(), 1e-9)
	assert.Equal(t, 119, p.TTL)
	assert.Equal(t, 160.0, s.Player.CooldownMs)
}

// --- Scenario: Frame length drives the cooldown ---

func TestScenario_FrameLengthDrivesCooldown(t *testing.T) {
	in := &Intents{}
	in.Press(IntentFire)
	ts, err := NewTestSim(
		WithRules(quietRules()),
		WithFrame(100*time.Millisecond),
		WithPlayerAt(400, 300, math.Pi/2),
		WithNoEnemies(),
		WithInput(in),
	)
	require.NoError(t, err)

	ts.RunTicks(1)
	s := ts.Snapshot()
	require.Len(t, s.Projectiles, 1)
	assert.InDelta(t, 0, s.Projectiles[0].Vel.X(), 1e-9, "facing down")
	assert.InDelta(t, 8, s.Projectiles[0].Vel.Y(), 1e-9)

	ts.RunTicks(1)
	assert.Len(t, ts.Snapshot().Projectiles, 1, "100ms into a 160ms cooldown")
	assert.Equal(t, 60.0, ts.Snapshot().Player.CooldownMs)

	ts.RunTicks(1)
	assert.Len(t, ts.Snapshot().Projectiles, 2)
}

// --- Scenario: Ambush ---

func TestScenario_AmbushEndsRun(t *testing.T) {
	t.Log("=== TestScenario_AmbushEndsRun ===")
	t.Log("--- Setup: enemy that always fires, player idle in its line ---")

	r := quietRules()
	r.EnemyFireChance = 1
	ts, err := NewTestSim(
		WithRules(r),
		WithSeed(7),
		WithNoEnemies(),
		WithEnemyAt(100, 300),
	)
	require.NoError(t, err)

	tick := ts.RunUntil(GameOver, 200)
	dumpLog(t, ts)

	require.NotEqual(t, -1, tick)
	assert.Equal(t, tick, ts.SimLog.FirstTick(CatRun, KeyGameOver))
	assert.False(t, ts.Snapshot().Running)
	assert.Equal(t, r.DefeatStatus, ts.Snapshot().Status)

	// Nothing moves after defeat.
	frozen := ts.Snapshot()
	ts.RunTicks(30)
	assert.Equal(t, frozen, ts.Snapshot())
}

// --- Scenario: Start screen ---

func TestScenario_StartScreenIsStatic(t *testing.T) {
	ts, err := NewTestSim(WithSeed(3), WithoutStart(), WithAutopilot())
	require.NoError(t, err)

	before := ts.Snapshot()
	ts.RunTicks(60)
	assert.Equal(t, before, ts.Snapshot())
	assert.Len(t, before.Enemies, 3, "startup enemies are visible behind the overlay")

	require.True(t, ts.Loop.Start())
	ts.RunTicks(1)
	assert.Equal(t, 1, ts.CurrentTick())
}

// --- Scenario: Determinism ---

func TestScenario_SameSeedSameRun(t *testing.T) {
	run := func() (Snapshot, Stats) {
		ts, err := NewTestSim(WithSeed(1234), WithAutopilot())
		require.NoError(t, err)
		ts.RunUntil(GameOver, 1500)
		return ts.Snapshot(), ts.Engine.Stats()
	}

	s1, st1 := run()
	s2, st2 := run()
	assert.Equal(t, st1, st2)
	assert.Equal(t, s1.Tick, s2.Tick)
	assert.Equal(t, s1.Score, s2.Score)
	assert.Equal(t, s1.Player.Pos, s2.Player.Pos)
	require.Len(t, s2.Enemies, len(s1.Enemies))
	for i := range s1.Enemies {
		assert.Equal(t, s1.Enemies[i].Pos, s2.Enemies[i].Pos)
	}
}

// --- Scenario: Long run invariants ---

func TestScenario_AutopilotInvariants(t *testing.T) {
	r := DefaultRules()
	ts, err := NewTestSim(WithRules(r), WithSeed(99), WithAutopilot(), WithVerbose(true))
	require.NoError(t, err)

	for i := 0; i < 3000 && ts.Engine.Running(); i++ {
		ts.RunTicks(1)
		s := ts.Snapshot()
		require.True(t, inArena(s.Player.Pos, r), "tick %d", s.Tick)
		require.Equal(t, s.Score, ts.Engine.Stats().Kills*r.KillScore)
		for _, p := range s.Projectiles {
			require.Positive(t, p.TTL)
		}
	}

	st := ts.Engine.Stats()
	assert.Equal(t, st.PlayerShots, ts.SimLog.Count(CatCombat, KeyShot)-st.EnemyShots)
	t.Log(ts.Report())
}
