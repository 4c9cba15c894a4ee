package game

// Snapshot is a read-only copy of the run state handed to renderers and
// reports once per frame. Mutating it never affects the engine.
type Snapshot struct {
	Tick        int
	World       World
	Player      Vehicle
	Enemies     []Vehicle
	Projectiles []Projectile
	Explosions  []Explosion
	Score       int
	Running     bool
	Phase       Phase
	Status      string
	Runs        int   // runs started so far, including this one
	LastRun     Stats // archived by the latest Reset; valid when Runs > 1
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Tick:        e.tick,
		World:       e.rules.World,
		Player:      e.player,
		Enemies:     append([]Vehicle(nil), e.enemies...),
		Projectiles: append([]Projectile(nil), e.projectiles...),
		Explosions:  append([]Explosion(nil), e.explosions...),
		Score:       e.score,
		Running:     e.phase == PhaseRunning,
		Phase:       e.phase,
		Status:      e.status,
		Runs:        e.runs,
		LastRun:     e.lastRun,
	}
}

// HasLastRun reports whether LastRun holds a finished run.
func (s Snapshot) HasLastRun() bool { return s.Runs > 1 }

// FriendlyCount returns how many projectiles belong to the player.
func (s Snapshot) FriendlyCount() int {
	n := 0
	for _, p := range s.Projectiles {
		if p.Friendly {
			n++
		}
	}
	return n
}
