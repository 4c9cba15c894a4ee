package game

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

// Phase is the run state machine:
//
//	NotStarted --Start--> Running --player hit--> GameOver
//	any --Reset--> Running
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Random is the randomness the engine consumes. *rand.Rand satisfies it.
type Random interface {
	Float64() float64
	Intn(n int) int
}

// Engine owns and mutates the whole run state. It is not safe for
// concurrent use; one loop drives it.
type Engine struct {
	rules Rules
	rng   Random
	log   zerolog.Logger
	sinks []EventSink
	mp    metric.MeterProvider
	met   *engineMetrics

	player      Vehicle
	enemies     []Vehicle
	projectiles []Projectile
	explosions  []Explosion

	score  int
	phase  Phase
	status string
	tick   int

	stats   Stats
	lastRun Stats
	runs    int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRandom substitutes the random source (seeded or scripted in tests).
func WithRandom(r Random) EngineOption {
	return func(e *Engine) { e.rng = r }
}

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) EngineOption {
	return func(e *Engine) { e.log = l }
}

// WithEventSink adds a receiver for gameplay events.
func WithEventSink(s EventSink) EngineOption {
	return func(e *Engine) {
		if s != nil {
			e.sinks = append(e.sinks, s)
		}
	}
}

// WithMeterProvider records engine counters on mp instead of the global
// provider.
func WithMeterProvider(mp metric.MeterProvider) EngineOption {
	return func(e *Engine) { e.mp = mp }
}

// NewEngine builds a NotStarted engine with the startup enemies placed.
func NewEngine(rules Rules, opts ...EngineOption) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		rules: rules,
		log:   zerolog.Nop(),
		stats: newStats(),
	}
	for _, o := range opts {
		o(e)
	}
	met, err := newEngineMetrics(e.mp)
	if err != nil {
		return nil, fmt.Errorf("engine metrics: %w", err)
	}
	e.met = met
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- game only
	}
	e.resetPlayer()
	for i := 0; i < rules.StartupEnemies; i++ {
		e.spawnEnemy()
	}
	return e, nil
}

// Rules returns the engine's constants.
func (e *Engine) Rules() Rules { return e.rules }

// Phase returns the current run phase.
func (e *Engine) Phase() Phase { return e.phase }

// Running reports whether ticks currently advance the world.
func (e *Engine) Running() bool { return e.phase == PhaseRunning }

// Score returns the current run's score.
func (e *Engine) Score() int { return e.score }

// Status returns the human-readable status line (empty while playing).
func (e *Engine) Status() string { return e.status }

// Tick returns the number of ticks advanced since construction.
func (e *Engine) Tick() int { return e.tick }

// Stats returns counters for the current run.
func (e *Engine) Stats() Stats { return e.stats }

// LastRun returns the counters of the run archived by the latest Reset.
func (e *Engine) LastRun() Stats { return e.lastRun }

// Runs returns how many runs have been started (Start or Reset).
func (e *Engine) Runs() int { return e.runs }

// Start leaves the start screen. It does nothing outside PhaseNotStarted.
func (e *Engine) Start() bool {
	if e.phase != PhaseNotStarted {
		return false
	}
	e.phase = PhaseRunning
	e.runs++
	e.log.Info().Int("enemies", len(e.enemies)).Msg("game started")
	e.emit("--", CatRun, KeyStart, "run started", 0)
	return true
}

// Reset starts a fresh run from any phase.
func (e *Engine) Reset() {
	prev := e.phase
	if e.runs > 0 {
		e.lastRun = e.stats
	}
	e.stats = newStats()
	e.projectiles = e.projectiles[:0]
	e.enemies = e.enemies[:0]
	e.explosions = e.explosions[:0]
	for i := 0; i < e.rules.ResetEnemies; i++ {
		e.spawnEnemy()
	}
	e.resetPlayer()
	e.score = 0
	e.status = ""
	e.phase = PhaseRunning
	e.runs++
	e.met.inc(e.met.resets)
	e.log.Info().Stringer("from", prev).Int("enemies", len(e.enemies)).Msg("game reset")
	e.emit("--", CatRun, KeyReset, fmt.Sprintf("%s → running", prev), 0)
}

func (e *Engine) resetPlayer() {
	id := e.player.ID
	e.player = newVehicle(RolePlayer, mgl64.Vec2{e.rules.PlayerStartX, e.rules.PlayerStartY}, e.rules)
	if id != uuid.Nil {
		e.player.ID = id
	}
	e.player.Angle = 0
	e.player.CooldownMs = 0
}

// Advance runs one tick. elapsedMs only drives cooldowns; movement, bullet
// lifetime and explosions are per tick.
func (e *Engine) Advance(elapsedMs float64, in IntentSet) {
	if e.phase != PhaseRunning {
		return
	}
	if elapsedMs < 0 {
		elapsedMs = 0
	}
	e.tick++
	e.stats.Ticks++
	e.stats.ElapsedMs += elapsedMs
	e.met.inc(e.met.ticks)

	// 1. PLAYER: intents -> velocity, fire, move.
	e.player.coolDown(elapsedMs)
	e.player.steer(inputDirection(in))
	if in.Has(IntentFire) {
		e.fire(&e.player)
	}
	e.player.move(e.rules.World, e.rules.HalfExtent)

	// 2. ENEMY AI: stateless pursuit + random fire.
	for i := range e.enemies {
		en := &e.enemies[i]
		en.coolDown(elapsedMs)
		en.steer(unitOrZero(e.player.Pos.Sub(en.Pos)))
		en.move(e.rules.World, e.rules.HalfExtent)
		if e.rng.Float64() < e.rules.EnemyFireChance {
			e.fire(en)
		}
	}

	// 3. PROJECTILES: integrate.
	for i := range e.projectiles {
		e.projectiles[i].advance()
	}

	// 4. COLLISIONS.
	e.resolvePlayerHits()
	e.resolveEnemyHits()

	// 5. PRUNE spent and escaped projectiles.
	e.projectiles = slices.DeleteFunc(e.projectiles, func(p Projectile) bool {
		return !p.alive(e.rules.World, e.rules.BulletMargin)
	})

	// 6. EXPLOSIONS.
	for i := range e.explosions {
		e.explosions[i].advance(e.rules.ExplosionGrowth)
	}
	e.explosions = slices.DeleteFunc(e.explosions, func(x Explosion) bool {
		return x.TTL <= 0
	})

	// 7. RESPAWN.
	if len(e.enemies) < e.rules.MinEnemies && e.rng.Float64() < e.rules.RespawnChance {
		e.spawnEnemy()
	}
}

// inputDirection folds the movement intents into a unit (or zero) vector.
// Screen Y grows downward, so "up" is -Y.
func inputDirection(in IntentSet) mgl64.Vec2 {
	var d mgl64.Vec2
	if in.Has(IntentMoveLeft) {
		d[0]--
	}
	if in.Has(IntentMoveRight) {
		d[0]++
	}
	if in.Has(IntentMoveUp) {
		d[1]--
	}
	if in.Has(IntentMoveDown) {
		d[1]++
	}
	return unitOrZero(d)
}

// fire spawns one bullet from v if its cooldown allows.
func (e *Engine) fire(v *Vehicle) bool {
	if !v.Ready() {
		return false
	}
	speed, cooldown := e.rules.EnemyBulletSpeed, e.rules.EnemyCooldownMs
	friendly := v.Role == RolePlayer
	if friendly {
		speed, cooldown = e.rules.PlayerBulletSpeed, e.rules.PlayerCooldownMs
		e.stats.PlayerShots++
	} else {
		e.stats.EnemyShots++
	}
	e.projectiles = append(e.projectiles, Projectile{
		Pos:      v.Pos,
		Vel:      fromAngle(v.Angle, speed),
		TTL:      e.rules.BulletTTL,
		Friendly: friendly,
	})
	v.CooldownMs = cooldown
	e.met.shot(v.Role)
	e.emit(v.Role.String(), CatCombat, KeyShot,
		fmt.Sprintf("from (%.0f,%.0f) angle %.2f", v.Pos.X(), v.Pos.Y(), v.Angle), v.Angle)
	return true
}

// resolvePlayerHits ends the run if any hostile bullet touches the player.
// Repeated hits in one tick are harmless.
func (e *Engine) resolvePlayerHits() {
	for i := range e.projectiles {
		p := &e.projectiles[i]
		if p.Friendly {
			continue
		}
		d := distance(p.Pos, e.player.Pos)
		if d >= e.rules.HitRadius {
			continue
		}
		if e.phase == PhaseRunning {
			e.stats.GameOverTick = e.tick
			e.met.inc(e.met.deaths)
			e.log.Info().Int("score", e.score).Int("tick", e.tick).Msg("player destroyed")
			e.emit(RolePlayer.String(), CatCombat, KeyPlayerHit,
				fmt.Sprintf("hit at (%.0f,%.0f)", e.player.Pos.X(), e.player.Pos.Y()), d)
			e.emit("--", CatRun, KeyGameOver, fmt.Sprintf("score=%d", e.score), float64(e.score))
		}
		e.phase = PhaseGameOver
		e.status = e.rules.DefeatStatus
	}
}

// resolveEnemyHits lets each friendly bullet destroy at most one enemy.
// Enemies are scanned in reverse so removal never skips an entry.
func (e *Engine) resolveEnemyHits() {
	for i := range e.projectiles {
		p := &e.projectiles[i]
		if !p.Friendly {
			continue
		}
		for j := len(e.enemies) - 1; j >= 0; j-- {
			en := e.enemies[j]
			if distance(p.Pos, en.Pos) >= e.rules.HitRadius {
				continue
			}
			e.enemies = slices.Delete(e.enemies, j, j+1)
			p.expend()
			e.score += e.rules.KillScore
			e.stats.Kills++
			e.explosions = append(e.explosions, Explosion{
				Pos:    en.Pos,
				Radius: e.rules.ExplosionRadius,
				TTL:    e.rules.ExplosionTTL,
				MaxTTL: e.rules.ExplosionTTL,
			})
			e.met.inc(e.met.kills)
			e.log.Debug().Str("enemy", en.ID.String()).Int("score", e.score).Msg("enemy destroyed")
			e.emit(RolePlayer.String(), CatCombat, KeyKill,
				fmt.Sprintf("enemy at (%.0f,%.0f) score=%d", en.Pos.X(), en.Pos.Y(), e.score), float64(e.score))
			break
		}
	}
}

// spawnEnemy places one enemy on a random arena edge.
func (e *Engine) spawnEnemy() {
	w := e.rules.World
	pad := e.rules.SpawnPadding
	var pos mgl64.Vec2
	switch e.rng.Intn(4) {
	case 0: // left
		pos = mgl64.Vec2{pad, e.rng.Float64() * w.Height}
	case 1: // right
		pos = mgl64.Vec2{w.Width - pad, e.rng.Float64() * w.Height}
	case 2: // top
		pos = mgl64.Vec2{e.rng.Float64() * w.Width, pad}
	default: // bottom
		pos = mgl64.Vec2{e.rng.Float64() * w.Width, w.Height - pad}
	}
	en := newVehicle(RoleEnemy, pos, e.rules)
	e.enemies = append(e.enemies, en)
	e.stats.EnemySpawns++
	e.met.inc(e.met.spawns)
	e.log.Debug().Str("enemy", en.ID.String()).Float64("x", en.Pos.X()).Float64("y", en.Pos.Y()).Msg("enemy spawned")
	e.emit(RoleEnemy.String(), CatSpawn, KeyEnemySpawn,
		fmt.Sprintf("at (%.0f,%.0f)", en.Pos.X(), en.Pos.Y()), float64(len(e.enemies)))
}

func (e *Engine) emit(subject, category, key, value string, num float64) {
	if len(e.sinks) == 0 {
		return
	}
	entry := SimLogEntry{
		Tick:     e.tick,
		Subject:  subject,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   num,
	}
	for _, s := range e.sinks {
		s.Record(entry)
	}
}
