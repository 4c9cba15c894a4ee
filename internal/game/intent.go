package game

import (
	"strings"
	"sync/atomic"
)

// Intent is one held logical action. Reset and start are not intents: they
// are one-shot triggers that call Engine.Reset / Engine.Start directly.
type Intent uint8

const (
	IntentMoveUp Intent = 1 << iota
	IntentMoveDown
	IntentMoveLeft
	IntentMoveRight
	IntentFire
)

var intentNames = []struct {
	bit  Intent
	name string
}{
	{IntentMoveUp, "up"},
	{IntentMoveDown, "down"},
	{IntentMoveLeft, "left"},
	{IntentMoveRight, "right"},
	{IntentFire, "fire"},
}

// IntentSet is an immutable snapshot of the held intents.
type IntentSet uint8

// NewIntentSet builds a set from the given intents.
func NewIntentSet(in ...Intent) IntentSet {
	var s IntentSet
	for _, i := range in {
		s |= IntentSet(i)
	}
	return s
}

// Has reports whether i is held.
func (s IntentSet) Has(i Intent) bool {
	return s&IntentSet(i) != 0
}

// With returns s with i added.
func (s IntentSet) With(i Intent) IntentSet {
	return s | IntentSet(i)
}

// Without returns s with i removed.
func (s IntentSet) Without(i Intent) IntentSet {
	return s &^ IntentSet(i)
}

// Union returns the intents held in either set.
func (s IntentSet) Union(o IntentSet) IntentSet {
	return s | o
}

func (s IntentSet) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	for _, n := range intentNames {
		if s.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// InputSource is anything the loop can poll for the current intents.
type InputSource interface {
	Intents() IntentSet
}

// Intents is a shared intent set. Adapters press and release bits from any
// goroutine; the loop reads one consistent value per tick.
type Intents struct {
	bits atomic.Uint32
}

// Press marks i as held.
func (in *Intents) Press(i Intent) {
	in.bits.Or(uint32(i))
}

// Release marks i as no longer held.
func (in *Intents) Release(i Intent) {
	in.bits.And(^uint32(i))
}

// Store replaces the whole set.
func (in *Intents) Store(s IntentSet) {
	in.bits.Store(uint32(s))
}

// Clear releases everything.
func (in *Intents) Clear() {
	in.bits.Store(0)
}

// Intents implements InputSource.
func (in *Intents) Intents() IntentSet {
	return IntentSet(in.bits.Load())
}

// StaticInput is an InputSource that always returns the same set.
type StaticInput IntentSet

// Intents implements InputSource.
func (s StaticInput) Intents() IntentSet {
	return IntentSet(s)
}
