package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func snapWith(player Vehicle, enemies ...Vehicle) func() Snapshot {
	return func() Snapshot { return Snapshot{Player: player, Enemies: enemies} }
}

func TestAutopilot_NoEnemiesHoldsStill(t *testing.T) {
	a := NewAutopilot(snapWith(Vehicle{Pos: mgl64.Vec2{100, 100}}))
	assert.Equal(t, IntentSet(0), a.Intents())
}

func TestAutopilot_DrivesAndFiresAtNearest(t *testing.T) {
	player := Vehicle{Pos: mgl64.Vec2{100, 100}, Angle: 0}
	near := Vehicle{Pos: mgl64.Vec2{400, 100}}
	far := Vehicle{Pos: mgl64.Vec2{100, 580}}

	in := NewAutopilot(snapWith(player, far, near)).Intents()
	assert.True(t, in.Has(IntentMoveRight))
	assert.False(t, in.Has(IntentMoveDown))
	assert.True(t, in.Has(IntentFire), "already facing the target")
}

func TestAutopilot_HoldsFireOffTarget(t *testing.T) {
	player := Vehicle{Pos: mgl64.Vec2{100, 100}, Angle: math.Pi}
	in := NewAutopilot(snapWith(player, Vehicle{Pos: mgl64.Vec2{400, 100}})).Intents()
	assert.False(t, in.Has(IntentFire))
}

func TestAutopilot_CirclesWhenClose(t *testing.T) {
	player := Vehicle{Pos: mgl64.Vec2{100, 100}}
	in := NewAutopilot(snapWith(player, Vehicle{Pos: mgl64.Vec2{150, 100}})).Intents()
	assert.True(t, in.Has(IntentMoveDown), "steps sideways around the target")
	assert.False(t, in.Has(IntentMoveRight))
}

func TestIntentsToward(t *testing.T) {
	assert.Equal(t, NewIntentSet(IntentMoveUp, IntentMoveLeft), intentsToward(mgl64.Vec2{-1, -1}))
	assert.Equal(t, NewIntentSet(IntentMoveDown), intentsToward(mgl64.Vec2{0.1, 5}))
	assert.Equal(t, IntentSet(0), intentsToward(mgl64.Vec2{}))
}

func TestAngleBetween(t *testing.T) {
	assert.InDelta(t, 0, angleBetween(0, 2*math.Pi), 1e-12)
	assert.InDelta(t, math.Pi/2, angleBetween(-math.Pi/4, math.Pi/4), 1e-12)
	assert.InDelta(t, 0.2, angleBetween(math.Pi-0.1, -math.Pi+0.1), 1e-12)
}
