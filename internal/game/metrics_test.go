package game

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// counterValue sums the data points of an int64 counter, optionally only
// those tagged role=role.
func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name, role string) int64 {
	t.Helper()
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				if role != "" {
					v, ok := dp.Attributes.Value("role")
					if !ok || v.AsString() != role {
						continue
					}
				}
				total += dp.Value
			}
		}
	}
	return total
}

func TestMetrics_CountersFollowTheRun(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	e := newRunningEngine(t, quietRules(), WithMeterProvider(mp))
	e.enemies = []Vehicle{newVehicle(RoleEnemy, mgl64.Vec2{300, 100}, e.rules)}

	e.Advance(16, NewIntentSet(IntentFire))
	for i := 0; i < 59; i++ {
		e.Advance(16, 0)
	}
	require.Equal(t, 1, e.Stats().Kills)
	e.Reset()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	assert.Equal(t, int64(60), counterValue(t, rm, "arena.ticks", ""))
	assert.Equal(t, int64(1), counterValue(t, rm, "arena.shots", "player"))
	assert.Zero(t, counterValue(t, rm, "arena.shots", "enemy"))
	assert.Equal(t, int64(1), counterValue(t, rm, "arena.kills", ""))
	assert.Equal(t, int64(1), counterValue(t, rm, "arena.resets", ""))
	assert.Equal(t, int64(3+5), counterValue(t, rm, "arena.enemy_spawns", ""), "startup enemies plus the reset wave")
	assert.Zero(t, counterValue(t, rm, "arena.player_deaths", ""))
}

func TestMetrics_PlayerDeathCountedOnce(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	e := newRunningEngine(t, quietRules(), WithMeterProvider(mp))
	e.projectiles = []Projectile{
		{Pos: e.player.Pos, TTL: 10},
		{Pos: e.player.Pos, TTL: 10},
	}
	e.Advance(16, 0)
	e.Advance(16, 0)
	require.Equal(t, PhaseGameOver, e.Phase())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	assert.Equal(t, int64(1), counterValue(t, rm, "arena.player_deaths", ""))
	assert.Equal(t, int64(1), counterValue(t, rm, "arena.ticks", ""))
}
