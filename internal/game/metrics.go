package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/Garsondee/tank-arena/internal/game"

// meter resolves the engine meter from mp, falling back to the global
// provider installed by the binary.
func meter(mp metric.MeterProvider) metric.Meter {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	return mp.Meter(instrumentationName)
}

// engineMetrics are the engine's OTel counters.
type engineMetrics struct {
	ticks   metric.Int64Counter
	shots   metric.Int64Counter
	kills   metric.Int64Counter
	deaths  metric.Int64Counter
	spawns  metric.Int64Counter
	resets  metric.Int64Counter
	roleAtt map[Role]metric.AddOption
}

func newEngineMetrics(mp metric.MeterProvider) (*engineMetrics, error) {
	m := meter(mp)
	em := &engineMetrics{
		roleAtt: map[Role]metric.AddOption{
			RolePlayer: metric.WithAttributes(attribute.String("role", RolePlayer.String())),
			RoleEnemy:  metric.WithAttributes(attribute.String("role", RoleEnemy.String())),
		},
	}

	var err error
	if em.ticks, err = m.Int64Counter("arena.ticks",
		metric.WithDescription("Simulation ticks advanced while running")); err != nil {
		return nil, fmt.Errorf("creating ticks counter: %w", err)
	}
	if em.shots, err = m.Int64Counter("arena.shots",
		metric.WithDescription("Projectiles fired")); err != nil {
		return nil, fmt.Errorf("creating shots counter: %w", err)
	}
	if em.kills, err = m.Int64Counter("arena.kills",
		metric.WithDescription("Enemies destroyed")); err != nil {
		return nil, fmt.Errorf("creating kills counter: %w", err)
	}
	if em.deaths, err = m.Int64Counter("arena.player_deaths",
		metric.WithDescription("Runs ended by a hostile hit")); err != nil {
		return nil, fmt.Errorf("creating deaths counter: %w", err)
	}
	if em.spawns, err = m.Int64Counter("arena.enemy_spawns",
		metric.WithDescription("Enemies spawned")); err != nil {
		return nil, fmt.Errorf("creating spawns counter: %w", err)
	}
	if em.resets, err = m.Int64Counter("arena.resets",
		metric.WithDescription("Runs restarted")); err != nil {
		return nil, fmt.Errorf("creating resets counter: %w", err)
	}
	return em, nil
}

func (em *engineMetrics) shot(role Role) {
	em.shots.Add(context.Background(), 1, em.roleAtt[role])
}

func (em *engineMetrics) inc(c metric.Int64Counter) {
	c.Add(context.Background(), 1)
}
