package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// touchStripHeight is the height of the control strip drawn below the arena.
const touchStripHeight = 132

const touchButtonSize = 56

// touchButton is one on-screen control. A zero intent with reset set makes it
// a one-shot reset trigger instead of a held intent.
type touchButton struct {
	label  string
	rect   image.Rectangle
	intent Intent
	reset  bool
}

// touchStrip lays out the d-pad on the left and fire/reset on the right,
// below an arena of the given size.
type touchStrip struct {
	top     int
	width   int
	buttons []touchButton
}

func newTouchStrip(arenaW, arenaH int) *touchStrip {
	const s, gap = touchButtonSize, 6
	top := arenaH
	mid := top + touchStripHeight/2
	btn := func(x, y int) image.Rectangle {
		return image.Rect(x, y, x+s, y+s)
	}
	padX := 16 + s
	return &touchStrip{
		top:   top,
		width: arenaW,
		buttons: []touchButton{
			{label: "^", rect: btn(padX, mid-s-gap/2), intent: IntentMoveUp},
			{label: "v", rect: btn(padX, mid+gap/2), intent: IntentMoveDown},
			{label: "<", rect: btn(padX-s-gap, mid-s/2), intent: IntentMoveLeft},
			{label: ">", rect: btn(padX+s+gap, mid-s/2), intent: IntentMoveRight},
			{label: "FIRE", rect: image.Rect(arenaW-16-2*s, mid-s, arenaW-16, mid+s), intent: IntentFire},
			{label: "R", rect: btn(arenaW-16-3*s-2*gap, mid-s/2), reset: true},
		},
	}
}

// hits folds the pointers into held intents and reports whether any of the
// newly pressed pointers landed on the reset button.
func (ts *touchStrip) hits(held, pressed []image.Point) (IntentSet, bool) {
	var s IntentSet
	reset := false
	for _, b := range ts.buttons {
		if b.reset {
			for _, p := range pressed {
				if p.In(b.rect) {
					reset = true
				}
			}
			continue
		}
		for _, p := range held {
			if p.In(b.rect) {
				s = s.With(b.intent)
				break
			}
		}
	}
	return s, reset
}

// pointers returns the positions of all touches and the left mouse button,
// both held and newly pressed this frame.
func pointers(justTouched []ebiten.TouchID) (held, pressed []image.Point) {
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		held = append(held, image.Pt(x, y))
	}
	for _, id := range justTouched {
		x, y := ebiten.TouchPosition(id)
		pressed = append(pressed, image.Pt(x, y))
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		held = append(held, image.Pt(x, y))
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			pressed = append(pressed, image.Pt(x, y))
		}
	}
	return held, pressed
}

func (ts *touchStrip) draw(screen *ebiten.Image, active IntentSet) {
	vector.FillRect(screen, 0, float32(ts.top), float32(ts.width), touchStripHeight,
		color.RGBA{R: 14, G: 17, B: 24, A: 255}, false)
	vector.StrokeLine(screen, 0, float32(ts.top), float32(ts.width), float32(ts.top),
		1, color.RGBA{R: 47, G: 53, B: 72, A: 255}, false)

	for _, b := range ts.buttons {
		fill := color.RGBA{R: 31, G: 36, B: 50, A: 255}
		if !b.reset && active.Has(b.intent) {
			fill = color.RGBA{R: 60, G: 70, B: 96, A: 255}
		}
		x, y := float32(b.rect.Min.X), float32(b.rect.Min.Y)
		w, h := float32(b.rect.Dx()), float32(b.rect.Dy())
		vector.FillRect(screen, x, y, w, h, fill, false)
		vector.StrokeRect(screen, x, y, w, h, 1, color.RGBA{R: 88, G: 98, B: 128, A: 255}, false)
		drawLabel(screen, b.label, b.rect.Min.X+b.rect.Dx()/2, b.rect.Min.Y+b.rect.Dy()/2, colText)
	}
}
