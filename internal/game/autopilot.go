package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Autopilot plays the player's side for headless runs. It reads the latest
// snapshot and produces intents exactly like a keyboard would: it drives
// toward the nearest enemy (so the turret faces it) and holds fire.
type Autopilot struct {
	snap       func() Snapshot
	standoff   float64
	firingCone float64 // radians either side of the facing that count as "on target"
}

// NewAutopilot creates an autopilot reading state from snap.
func NewAutopilot(snap func() Snapshot) *Autopilot {
	return &Autopilot{snap: snap, standoff: 90, firingCone: math.Pi / 7}
}

// Intents implements InputSource.
func (a *Autopilot) Intents() IntentSet {
	s := a.snap()
	target, ok := nearestEnemy(s.Player.Pos, s.Enemies)
	if !ok {
		return 0
	}
	to := target.Sub(s.Player.Pos)
	var in IntentSet
	if to.Len() > a.standoff {
		in = in.Union(intentsToward(to))
	} else {
		// Too close: keep facing by stepping sideways around the target.
		in = in.Union(intentsToward(mgl64.Vec2{-to.Y(), to.X()}))
	}
	if angleBetween(s.Player.Angle, heading(to)) <= a.firingCone {
		in = in.With(IntentFire)
	}
	return in
}

func nearestEnemy(from mgl64.Vec2, enemies []Vehicle) (mgl64.Vec2, bool) {
	best := math.Inf(1)
	var pos mgl64.Vec2
	for _, en := range enemies {
		if d := distance(from, en.Pos); d < best {
			best = d
			pos = en.Pos
		}
	}
	return pos, !math.IsInf(best, 1)
}

// intentsToward quantizes a direction onto the eight keyboard directions.
func intentsToward(v mgl64.Vec2) IntentSet {
	var in IntentSet
	const dead = 0.38 // ~sin(22.5°)
	u := unitOrZero(v)
	switch {
	case u.X() > dead:
		in = in.With(IntentMoveRight)
	case u.X() < -dead:
		in = in.With(IntentMoveLeft)
	}
	switch {
	case u.Y() > dead:
		in = in.With(IntentMoveDown)
	case u.Y() < -dead:
		in = in.With(IntentMoveUp)
	}
	return in
}

// angleBetween returns the absolute difference of two angles in [0, π].
func angleBetween(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 2*math.Pi)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}
