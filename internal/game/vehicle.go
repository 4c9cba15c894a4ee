package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Role distinguishes the player's tank from AI tanks.
type Role int

const (
	RolePlayer Role = iota
	RoleEnemy
)

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Vehicle is a tank. Enemies carry no state beyond this shape: pursuit is
// recomputed from positions every tick.
type Vehicle struct {
	ID         uuid.UUID // log correlation only
	Role       Role
	Pos        mgl64.Vec2
	Vel        mgl64.Vec2
	Angle      float64 // radians
	Speed      float64
	Radius     float64 // sprite size; collisions use Rules.HitRadius
	CooldownMs float64 // 0 means ready
}

func newVehicle(role Role, pos mgl64.Vec2, r Rules) Vehicle {
	speed := r.PlayerSpeed
	if role == RoleEnemy {
		speed = r.EnemySpeed
	}
	return Vehicle{
		ID:     uuid.New(),
		Role:   role,
		Pos:    clampToArena(pos, r.World, r.HalfExtent),
		Speed:  speed,
		Radius: r.TankRadius,
	}
}

// Ready reports whether the tank may fire.
func (v *Vehicle) Ready() bool {
	return v.CooldownMs <= 0
}

// coolDown subtracts the elapsed time, flooring at zero.
func (v *Vehicle) coolDown(elapsedMs float64) {
	v.CooldownMs -= elapsedMs
	if v.CooldownMs < 0 {
		v.CooldownMs = 0
	}
}

// steer sets velocity along dir (expected unit or zero) and turns to face it.
// A zero direction stops the tank and keeps its last facing.
func (v *Vehicle) steer(dir mgl64.Vec2) {
	v.Vel = dir.Mul(v.Speed)
	if dir.X() != 0 || dir.Y() != 0 {
		v.Angle = heading(dir)
	}
}

// move integrates one tick of velocity and clamps to the arena.
func (v *Vehicle) move(w World, margin float64) {
	v.Pos = clampToArena(v.Pos.Add(v.Vel), w, margin)
}
