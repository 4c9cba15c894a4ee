package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colBackground = color.RGBA{R: 11, G: 13, B: 18, A: 255}
	colGrid       = color.RGBA{R: 31, G: 36, B: 50, A: 255}
	colPlayer     = color.RGBA{R: 126, G: 231, B: 135, A: 255}
	colEnemy      = color.RGBA{R: 88, G: 166, B: 255, A: 255}
	colTurret     = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	colHatch      = color.RGBA{R: 47, G: 53, B: 72, A: 255}
	colFriendly   = color.RGBA{R: 255, G: 209, B: 102, A: 255}
	colHostile    = color.RGBA{R: 255, G: 107, B: 107, A: 255}
	colExplosion  = color.RGBA{R: 255, G: 169, B: 77, A: 255}
)

// Tank sprite geometry. The sprite origin (pivot) sits at the body centre.
const (
	tankBodyW   = 32
	tankBodyH   = 24
	tankTurretL = 18
	tankTurretW = 8
	tankHatchR  = 6
	tankHatchX  = -6
	bulletR     = 3

	// tankSpriteRadius is the tank radius the sprite is drawn for.
	tankSpriteRadius = 14
)

// newTankSprite renders one tank facing +X. The body extends tankBodyW/2 to
// either side of the pivot and the barrel sticks out to the right.
func newTankSprite(body color.Color) *ebiten.Image {
	const pivotX, pivotY = tankBodyW / 2, tankBodyH / 2
	img := ebiten.NewImage(pivotX+tankTurretL, tankBodyH)
	vector.FillRect(img, 0, 0, tankBodyW, tankBodyH, body, true)
	vector.FillRect(img, pivotX, pivotY-tankTurretW/2, tankTurretL, tankTurretW, colTurret, true)
	vector.FillCircle(img, pivotX+tankHatchX, pivotY, tankHatchR, colHatch, true)
	return img
}

func drawGrid(screen *ebiten.Image, w World) {
	if w.Tile <= 0 {
		return
	}
	for x := 0.0; x <= w.Width; x += w.Tile {
		xf := float32(x) + 0.5
		vector.StrokeLine(screen, xf, 0, xf, float32(w.Height), 1, colGrid, false)
	}
	for y := 0.0; y <= w.Height; y += w.Tile {
		yf := float32(y) + 0.5
		vector.StrokeLine(screen, 0, yf, float32(w.Width), yf, 1, colGrid, false)
	}
}

// tankScale maps a vehicle radius to the sprite scale factor.
func tankScale(radius float64) float64 {
	if radius <= 0 {
		return 1
	}
	return radius / tankSpriteRadius
}

func drawTank(screen, sprite *ebiten.Image, v Vehicle) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-tankBodyW/2, -tankBodyH/2)
	k := tankScale(v.Radius)
	op.GeoM.Scale(k, k)
	op.GeoM.Rotate(v.Angle)
	op.GeoM.Translate(v.Pos.X(), v.Pos.Y())
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

func drawProjectiles(screen *ebiten.Image, ps []Projectile) {
	for _, p := range ps {
		c := colHostile
		if p.Friendly {
			c = colFriendly
		}
		vector.FillCircle(screen, float32(p.Pos.X()), float32(p.Pos.Y()), bulletR, c, true)
	}
}

func drawExplosions(screen *ebiten.Image, xs []Explosion) {
	for _, x := range xs {
		a := x.Fade()
		c := color.RGBA{
			R: uint8(float64(colExplosion.R) * a),
			G: uint8(float64(colExplosion.G) * a),
			B: uint8(float64(colExplosion.B) * a),
			A: uint8(255 * a),
		}
		vector.StrokeCircle(screen, float32(x.Pos.X()), float32(x.Pos.Y()), float32(x.Radius), 1, c, true)
	}
}

// drawArena renders one snapshot: grid, tanks, bullets, explosions.
func (g *Game) drawArena(screen *ebiten.Image, s Snapshot) {
	vector.FillRect(screen, 0, 0, float32(s.World.Width), float32(s.World.Height), colBackground, false)
	drawGrid(screen, s.World)
	drawTank(screen, g.playerSprite, s.Player)
	for _, en := range s.Enemies {
		drawTank(screen, g.enemySprite, en)
	}
	drawProjectiles(screen, s.Projectiles)
	drawExplosions(screen, s.Explosions)
}
