package game

import (
	"errors"
	"fmt"
	"math"
)

// World is the static arena geometry. Tile is only used to draw the grid.
type World struct {
	Width  float64
	Height float64
	Tile   float64
}

// Rules holds every arena constant. It is fixed for the life of an Engine.
type Rules struct {
	World World

	PlayerSpeed float64 // px per tick
	EnemySpeed  float64 // px per tick
	HalfExtent  float64 // clamp inset from each arena edge
	TankRadius  float64 // drawn size of a tank, px; hits use HitRadius

	PlayerBulletSpeed float64 // px per tick
	EnemyBulletSpeed  float64 // px per tick
	PlayerCooldownMs  float64
	EnemyCooldownMs   float64
	BulletTTL         int     // ticks
	BulletMargin      float64 // px a bullet may travel past the arena edge
	HitRadius         float64

	KillScore int

	ExplosionRadius float64 // initial radius
	ExplosionGrowth float64 // radius added per tick
	ExplosionTTL    int     // ticks

	MinEnemies      int
	StartupEnemies  int     // enemies placed behind the start screen
	ResetEnemies    int     // enemies placed by Reset
	RespawnChance   float64 // per tick, while below MinEnemies
	EnemyFireChance float64 // per enemy per tick
	SpawnPadding    float64 // inset from the chosen edge

	PlayerStartX float64
	PlayerStartY float64

	DefeatStatus string
}

// DefaultRules returns the stock arena.
func DefaultRules() Rules {
	return Rules{
		World: World{Width: 800, Height: 600, Tile: 40},

		PlayerSpeed: 3.4,
		EnemySpeed:  1.0,
		HalfExtent:  16,
		TankRadius:  14,

		PlayerBulletSpeed: 8,
		EnemyBulletSpeed:  4,
		PlayerCooldownMs:  160,
		EnemyCooldownMs:   360,
		BulletTTL:         120,
		BulletMargin:      10,
		HitRadius:         12,

		KillScore: 100,

		ExplosionRadius: 6,
		ExplosionGrowth: 1.8,
		ExplosionTTL:    20,

		MinEnemies:      3,
		StartupEnemies:  3,
		ResetEnemies:    5,
		RespawnChance:   0.01,
		EnemyFireChance: 0.004,
		SpawnPadding:    30,

		PlayerStartX: 100,
		PlayerStartY: 100,

		DefeatStatus: "You were hit! Press R to restart",
	}
}

var errInvalidRules = errors.New("invalid rules")

// Validate reports the first rule that would make the arena unplayable.
func (r Rules) Validate() error {
	if name, ok := r.firstNonFinite(); ok {
		return fmt.Errorf("%w: %s must be a finite number", errInvalidRules, name)
	}
	switch {
	case r.World.Width <= 2*r.HalfExtent || r.World.Height <= 2*r.HalfExtent:
		return fmt.Errorf("%w: arena %.0fx%.0f too small for half-extent %.0f",
			errInvalidRules, r.World.Width, r.World.Height, r.HalfExtent)
	case r.HalfExtent < 0:
		return fmt.Errorf("%w: negative half-extent", errInvalidRules)
	case r.TankRadius <= 0:
		return fmt.Errorf("%w: tank radius must be positive", errInvalidRules)
	case r.PlayerSpeed < 0 || r.EnemySpeed < 0:
		return fmt.Errorf("%w: negative tank speed", errInvalidRules)
	case r.PlayerBulletSpeed < 0 || r.EnemyBulletSpeed < 0:
		return fmt.Errorf("%w: negative bullet speed", errInvalidRules)
	case r.PlayerCooldownMs < 0 || r.EnemyCooldownMs < 0:
		return fmt.Errorf("%w: negative cooldown", errInvalidRules)
	case r.BulletTTL <= 0 || r.ExplosionTTL <= 0:
		return fmt.Errorf("%w: lifetimes must be positive", errInvalidRules)
	case r.HitRadius <= 0:
		return fmt.Errorf("%w: hit radius must be positive", errInvalidRules)
	case r.KillScore < 0:
		return fmt.Errorf("%w: negative kill score", errInvalidRules)
	case !isProbability(r.RespawnChance) || !isProbability(r.EnemyFireChance):
		return fmt.Errorf("%w: chances must be within [0,1]", errInvalidRules)
	case r.MinEnemies < 0 || r.StartupEnemies < 0 || r.ResetEnemies < 0:
		return fmt.Errorf("%w: negative enemy count", errInvalidRules)
	}
	return nil
}

// firstNonFinite names the first float rule that is NaN or infinite. NaN
// slips through every ordered comparison below.
func (r Rules) firstNonFinite() (string, bool) {
	fields := []struct {
		name string
		v    float64
	}{
		{"world.width", r.World.Width},
		{"world.height", r.World.Height},
		{"world.tile", r.World.Tile},
		{"player speed", r.PlayerSpeed},
		{"enemy speed", r.EnemySpeed},
		{"half-extent", r.HalfExtent},
		{"tank radius", r.TankRadius},
		{"player bullet speed", r.PlayerBulletSpeed},
		{"enemy bullet speed", r.EnemyBulletSpeed},
		{"player cooldown", r.PlayerCooldownMs},
		{"enemy cooldown", r.EnemyCooldownMs},
		{"bullet margin", r.BulletMargin},
		{"hit radius", r.HitRadius},
		{"explosion radius", r.ExplosionRadius},
		{"explosion growth", r.ExplosionGrowth},
		{"respawn chance", r.RespawnChance},
		{"enemy fire chance", r.EnemyFireChance},
		{"spawn padding", r.SpawnPadding},
		{"player start x", r.PlayerStartX},
		{"player start y", r.PlayerStartY},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return f.name, true
		}
	}
	return "", false
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}
