package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/Garsondee/tank-arena/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateArgs(t *testing.T) {
	require.NoError(t, validateArgs(1, 1, "autopilot"))
	require.NoError(t, validateArgs(3, 100, "idle"))

	assert.ErrorContains(t, validateArgs(0, 10, "idle"), "--runs")
	assert.ErrorContains(t, validateArgs(1, 0, "idle"), "--ticks")
	assert.ErrorContains(t, validateArgs(1, 10, "mutual-advance"), "unsupported scenario")
}

func TestAvgAndTickStrings(t *testing.T) {
	assert.Equal(t, 0.0, avg(10, 0))
	assert.Equal(t, 2.5, avg(5, 2))
	assert.Equal(t, "n/a", avgTickString(nil))
	assert.Equal(t, "15.0", avgTickString([]int{10, 20}))
	assert.Equal(t, "n/a", tickString(-1))
	assert.Equal(t, "7", tickString(7))
}

func TestSurvivalRate(t *testing.T) {
	assert.Equal(t, 0.0, survivalRate(nil))
	all := []runStats{{survived: true}, {survived: false}, {survived: true}, {survived: true}}
	assert.InDelta(t, 0.75, survivalRate(all), 1e-9)
}

func TestCollectRun_IdleSessionIsDeterministic(t *testing.T) {
	run := func() runStats {
		ts, err := newSession("idle", 99, game.DefaultRules())
		require.NoError(t, err)
		ts.RunUntil(game.GameOver, 600)
		return collectRun(1, ts)
	}

	a, b := run(), run()
	assert.Equal(t, a, b, "same seed must reproduce the same run")
	assert.Equal(t, int64(99), a.seed)
	assert.Zero(t, a.playerShots, "idle scenario never fires")
	assert.Zero(t, a.score)
	assert.Equal(t, -1, a.firstKillTick)
}

func TestCollectRun_AutopilotShoots(t *testing.T) {
	rules := game.DefaultRules()
	rules.EnemyFireChance = 0

	ts, err := newSession("autopilot", 5, rules)
	require.NoError(t, err)
	ts.RunTicks(600)

	rs := collectRun(1, ts)
	assert.True(t, rs.survived, "harmless enemies cannot end the run")
	assert.Equal(t, 600, rs.ticks)
	assert.Positive(t, rs.playerShots)
	assert.Equal(t, rs.kills*rules.KillScore, rs.score)
}

func TestSetupMetrics_FlushesEngineCounters(t *testing.T) {
	var buf bytes.Buffer
	mp, err := setupMetrics(&buf)
	require.NoError(t, err)

	rules := game.DefaultRules()
	rules.EnemyFireChance = 0
	ts, err := newSession("autopilot", 5, rules, game.WithSimMeterProvider(mp))
	require.NoError(t, err)
	ts.RunTicks(600)
	require.Empty(t, buf.String(), "nothing is exported before shutdown")

	require.NoError(t, mp.Shutdown(context.Background()))
	out := buf.String()
	assert.Contains(t, out, "arena.ticks")
	assert.Contains(t, out, "arena.shots")
	assert.Contains(t, out, "arena.enemy_spawns")
}

func TestCollectRun_DeathContextEndsAtDefeat(t *testing.T) {
	rules := game.DefaultRules()
	rules.EnemyFireChance = 1
	rules.RespawnChance = 0

	ts, err := newSession("idle", 3, rules)
	require.NoError(t, err)
	require.NotEqual(t, -1, ts.RunUntil(game.GameOver, 2000))

	rs := collectRun(1, ts)
	require.False(t, rs.survived)
	require.NotEmpty(t, rs.deathContext)
	last := rs.deathContext[len(rs.deathContext)-1]
	assert.Equal(t, game.KeyGameOver, last.Key)
	assert.Equal(t, rs.deathTick, last.Tick)
	for _, e := range rs.deathContext {
		assert.GreaterOrEqual(t, e.Tick, rs.deathTick-deathContextTicks)
	}
}
