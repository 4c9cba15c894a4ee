package game

import "github.com/go-gl/mathgl/mgl64"

// Projectile is a bullet. Friendly bullets belong to the player; everything
// else is hostile. There is no link back to the tank that fired it.
type Projectile struct {
	Pos      mgl64.Vec2
	Vel      mgl64.Vec2
	TTL      int // ticks remaining
	Friendly bool
}

// advance moves the bullet one tick and burns one tick of lifetime.
func (p *Projectile) advance() {
	p.Pos = p.Pos.Add(p.Vel)
	p.TTL--
}

// expend marks the bullet as consumed by a hit; it is pruned this tick.
func (p *Projectile) expend() {
	p.TTL = 0
}

// alive reports whether the bullet survives pruning.
func (p *Projectile) alive(w World, margin float64) bool {
	if p.TTL <= 0 {
		return false
	}
	x, y := p.Pos.X(), p.Pos.Y()
	return x >= -margin && x <= w.Width+margin && y >= -margin && y <= w.Height+margin
}
