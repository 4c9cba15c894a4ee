package game

import "github.com/hajimehoshi/ebiten/v2"

// keyBindings maps held keys to intents. Arrows mirror WASD.
var keyBindings = []struct {
	keys   []ebiten.Key
	intent Intent
}{
	{[]ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}, IntentMoveUp},
	{[]ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}, IntentMoveDown},
	{[]ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}, IntentMoveLeft},
	{[]ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}, IntentMoveRight},
	{[]ebiten.Key{ebiten.KeySpace}, IntentFire},
}

// keyboardIntents returns the intents currently held on the keyboard.
func keyboardIntents() IntentSet {
	var s IntentSet
	for _, b := range keyBindings {
		for _, k := range b.keys {
			if ebiten.IsKeyPressed(k) {
				s = s.With(b.intent)
				break
			}
		}
	}
	return s
}

// edgeKeys tracks key state between frames for edge-triggered actions.
type edgeKeys struct {
	prev map[ebiten.Key]bool
	cur  map[ebiten.Key]bool
}

func newEdgeKeys() *edgeKeys {
	return &edgeKeys{prev: map[ebiten.Key]bool{}, cur: map[ebiten.Key]bool{}}
}

// pressed reports whether k went down this frame.
func (ek *edgeKeys) pressed(k ebiten.Key) bool {
	down := ebiten.IsKeyPressed(k)
	ek.cur[k] = down
	return down && !ek.prev[k]
}

// flush ends the frame.
func (ek *edgeKeys) flush() {
	ek.prev, ek.cur = ek.cur, ek.prev
	clear(ek.cur)
}
