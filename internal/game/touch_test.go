package game

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func centre(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

func buttonFor(t *testing.T, ts *touchStrip, label string) touchButton {
	t.Helper()
	for _, b := range ts.buttons {
		if b.label == label {
			return b
		}
	}
	require.Failf(t, "missing button", "label %q", label)
	return touchButton{}
}

func TestTouchStrip_LayoutBelowArena(t *testing.T) {
	ts := newTouchStrip(800, 600)
	for _, b := range ts.buttons {
		assert.GreaterOrEqual(t, b.rect.Min.Y, 600, b.label)
		assert.LessOrEqual(t, b.rect.Max.Y, 600+touchStripHeight, b.label)
		assert.GreaterOrEqual(t, b.rect.Min.X, 0, b.label)
		assert.LessOrEqual(t, b.rect.Max.X, 800, b.label)
		for _, o := range ts.buttons {
			if o.label != b.label {
				assert.False(t, b.rect.Overlaps(o.rect), "%s overlaps %s", b.label, o.label)
			}
		}
	}
}

func TestTouchStrip_HeldPointersMapToIntents(t *testing.T) {
	ts := newTouchStrip(800, 600)
	up := centre(buttonFor(t, ts, "^").rect)
	fire := centre(buttonFor(t, ts, "FIRE").rect)

	in, reset := ts.hits([]image.Point{up, fire, {400, 300}}, nil)
	assert.Equal(t, NewIntentSet(IntentMoveUp, IntentFire), in)
	assert.False(t, reset)
}

func TestTouchStrip_ResetIsOneShot(t *testing.T) {
	ts := newTouchStrip(800, 600)
	r := centre(buttonFor(t, ts, "R").rect)

	in, reset := ts.hits([]image.Point{r}, []image.Point{r})
	assert.True(t, reset)
	assert.Equal(t, IntentSet(0), in, "reset is never a held intent")

	_, reset = ts.hits([]image.Point{r}, nil)
	assert.False(t, reset, "holding the button does not repeat")
}
