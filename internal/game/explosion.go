package game

import "github.com/go-gl/mathgl/mgl64"

// Explosion is the expanding ring left where an enemy died. Cosmetic.
type Explosion struct {
	Pos    mgl64.Vec2
	Radius float64
	TTL    int
	MaxTTL int // initial lifetime, lets renderers fade by TTL/MaxTTL
}

func (e *Explosion) advance(growth float64) {
	e.Radius += growth
	e.TTL--
}

// Fade returns the remaining lifetime fraction in [0, 1].
func (e Explosion) Fade() float64 {
	if e.MaxTTL <= 0 {
		return 0
	}
	return clamp(float64(e.TTL)/float64(e.MaxTTL), 0, 1)
}
