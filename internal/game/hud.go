package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	colText   = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	colStatus = color.RGBA{R: 255, G: 107, B: 107, A: 255}
	colDim    = color.RGBA{R: 150, G: 158, B: 178, A: 255}
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

const hudLineHeight = 16

func drawText(screen *ebiten.Image, s string, x, y int, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	op.LineSpacing = hudLineHeight
	text.Draw(screen, s, hudFace, op)
}

// drawLabel centres s on (cx, cy).
func drawLabel(screen *ebiten.Image, s string, cx, cy int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(cx), float64(cy))
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, s, hudFace, op)
}

// drawHUD renders score, status and the event feed over the arena.
func (g *Game) drawHUD(screen *ebiten.Image, s Snapshot) {
	w := int(s.World.Width)
	drawText(screen, fmt.Sprintf("Score: %d", s.Score), 10, 8, colText, text.AlignStart)
	if s.HasLastRun() {
		drawText(screen, fmt.Sprintf("Run %d  last: %d kills, %s", s.Runs, s.LastRun.Kills, outcome(s.LastRun)),
			10, 8+hudLineHeight, colDim, text.AlignStart)
	}
	if s.Status != "" {
		drawText(screen, s.Status, w/2, 8, colStatus, text.AlignCenter)
	}
	if g.notice != "" && g.noticeTicks > 0 {
		drawText(screen, g.notice, w/2, int(s.World.Height)-24, colDim, text.AlignCenter)
	}

	entries := g.feed.Recent()
	for i, e := range entries {
		line := fmt.Sprintf("%4d %s %s", e.Tick, e.Subject, e.Key)
		drawText(screen, line, w-10, 8+i*hudLineHeight, colDim, text.AlignEnd)
	}
}

// drawStartOverlay dims the arena and shows how to begin.
func drawStartOverlay(screen *ebiten.Image, w World) {
	vector.FillRect(screen, 0, 0, float32(w.Width), float32(w.Height), color.RGBA{A: 170}, false)
	cx, cy := int(w.Width/2), int(w.Height/2)
	drawLabel(screen, "TANK ARENA", cx, cy-40, colPlayer)
	drawLabel(screen, "Press Enter / Space, click or tap to start", cx, cy, colText)
	drawLabel(screen, "WASD/arrows move  Space fire  R restart  C copy report", cx, cy+28, colDim)
}
