package config

import (
	"fmt"
	"strings"

	"github.com/Garsondee/tank-arena/internal/game"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// SetDefaults registers every key with its stock value. Rule defaults come
// from game.DefaultRules so the two never drift.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("seed", int64(0))
	viper.SetDefault("window.title", "Tank Arena")
	viper.SetDefault("window.scale", 1.0)
	viper.SetDefault("touch.enabled", false)

	r := game.DefaultRules()
	viper.SetDefault("rules.arena.width", r.World.Width)
	viper.SetDefault("rules.arena.height", r.World.Height)
	viper.SetDefault("rules.arena.tile", r.World.Tile)

	viper.SetDefault("rules.tank.halfExtent", r.HalfExtent)
	viper.SetDefault("rules.tank.radius", r.TankRadius)

	viper.SetDefault("rules.player.speed", r.PlayerSpeed)
	viper.SetDefault("rules.player.bulletSpeed", r.PlayerBulletSpeed)
	viper.SetDefault("rules.player.cooldownMs", r.PlayerCooldownMs)
	viper.SetDefault("rules.player.startX", r.PlayerStartX)
	viper.SetDefault("rules.player.startY", r.PlayerStartY)

	viper.SetDefault("rules.enemy.speed", r.EnemySpeed)
	viper.SetDefault("rules.enemy.bulletSpeed", r.EnemyBulletSpeed)
	viper.SetDefault("rules.enemy.cooldownMs", r.EnemyCooldownMs)
	viper.SetDefault("rules.enemy.fireChance", r.EnemyFireChance)
	viper.SetDefault("rules.enemy.min", r.MinEnemies)
	viper.SetDefault("rules.enemy.startup", r.StartupEnemies)
	viper.SetDefault("rules.enemy.reset", r.ResetEnemies)
	viper.SetDefault("rules.enemy.respawnChance", r.RespawnChance)
	viper.SetDefault("rules.enemy.spawnPadding", r.SpawnPadding)

	viper.SetDefault("rules.bullet.ttl", r.BulletTTL)
	viper.SetDefault("rules.bullet.margin", r.BulletMargin)
	viper.SetDefault("rules.bullet.hitRadius", r.HitRadius)

	viper.SetDefault("rules.killScore", r.KillScore)
	viper.SetDefault("rules.explosion.radius", r.ExplosionRadius)
	viper.SetDefault("rules.explosion.growth", r.ExplosionGrowth)
	viper.SetDefault("rules.explosion.ttl", r.ExplosionTTL)
	viper.SetDefault("rules.defeatStatus", r.DefeatStatus)
}

// Load sets default values and, when path is not empty, reads the config
// file there. The format follows the file extension (json, yaml, toml).
func Load(path string) error {
	SetDefaults()
	if path == "" {
		return nil
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// BindFlags registers the command-line overrides on fs and binds them to
// their viper keys. Call before fs.Parse.
func BindFlags(fs *pflag.FlagSet) error {
	fs.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	fs.Int64("seed", 0, "random seed (0 = clock)")
	fs.Float64("scale", 1.0, "window scale factor")
	fs.Bool("touch", false, "show on-screen touch controls")

	for key, flag := range map[string]string{
		"logLevel":      "log-level",
		"seed":          "seed",
		"window.scale":  "scale",
		"touch.enabled": "touch",
	} {
		if err := viper.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}
	return nil
}

// Rules builds the arena rules from the loaded configuration. Validation is
// left to game.NewEngine.
func Rules() game.Rules {
	return game.Rules{
		World: game.World{
			Width:  viper.GetFloat64("rules.arena.width"),
			Height: viper.GetFloat64("rules.arena.height"),
			Tile:   viper.GetFloat64("rules.arena.tile"),
		},
		PlayerSpeed: viper.GetFloat64("rules.player.speed"),
		EnemySpeed:  viper.GetFloat64("rules.enemy.speed"),
		HalfExtent:  viper.GetFloat64("rules.tank.halfExtent"),
		TankRadius:  viper.GetFloat64("rules.tank.radius"),

		PlayerBulletSpeed: viper.GetFloat64("rules.player.bulletSpeed"),
		EnemyBulletSpeed:  viper.GetFloat64("rules.enemy.bulletSpeed"),
		PlayerCooldownMs:  viper.GetFloat64("rules.player.cooldownMs"),
		EnemyCooldownMs:   viper.GetFloat64("rules.enemy.cooldownMs"),
		BulletTTL:         viper.GetInt("rules.bullet.ttl"),
		BulletMargin:      viper.GetFloat64("rules.bullet.margin"),
		HitRadius:         viper.GetFloat64("rules.bullet.hitRadius"),

		KillScore: viper.GetInt("rules.killScore"),

		ExplosionRadius: viper.GetFloat64("rules.explosion.radius"),
		ExplosionGrowth: viper.GetFloat64("rules.explosion.growth"),
		ExplosionTTL:    viper.GetInt("rules.explosion.ttl"),

		MinEnemies:      viper.GetInt("rules.enemy.min"),
		StartupEnemies:  viper.GetInt("rules.enemy.startup"),
		ResetEnemies:    viper.GetInt("rules.enemy.reset"),
		RespawnChance:   viper.GetFloat64("rules.enemy.respawnChance"),
		EnemyFireChance: viper.GetFloat64("rules.enemy.fireChance"),
		SpawnPadding:    viper.GetFloat64("rules.enemy.spawnPadding"),

		PlayerStartX: viper.GetFloat64("rules.player.startX"),
		PlayerStartY: viper.GetFloat64("rules.player.startY"),

		DefeatStatus: viper.GetString("rules.defeatStatus"),
	}
}

// LogLevel maps the logLevel setting to a zerolog level, defaulting to info.
func LogLevel() zerolog.Level {
	switch strings.ToUpper(viper.GetString("logLevel")) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Seed returns the configured random seed (0 = clock).
func Seed() int64 {
	return viper.GetInt64("seed")
}

// WindowTitle returns the window title.
func WindowTitle() string {
	return viper.GetString("window.title")
}

// WindowScale returns the window scale factor, never below 0.25.
func WindowScale() float64 {
	return max(viper.GetFloat64("window.scale"), 0.25)
}

// TouchEnabled reports whether the on-screen controls are shown.
func TouchEnabled() bool {
	return viper.GetBool("touch.enabled")
}
