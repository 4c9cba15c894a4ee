package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestTankScale(t *testing.T) {
	assert.Equal(t, 1.0, tankScale(DefaultRules().TankRadius))
	assert.Equal(t, 2.0, tankScale(28))
	assert.Equal(t, 0.5, tankScale(7))
	assert.Equal(t, 1.0, tankScale(0), "unset radius draws at sprite size")
}

func TestNewVehicle_CarriesTankRadius(t *testing.T) {
	r := DefaultRules()
	r.TankRadius = 21
	v := newVehicle(RoleEnemy, mgl64.Vec2{400, 300}, r)
	assert.Equal(t, 21.0, v.Radius)
	assert.Equal(t, 1.5, tankScale(v.Radius))
}
