package entity

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"scratchcard/internal/assets"
	"scratchcard/internal/config"
	"scratchcard/internal/prize"
	"scratchcard/internal/scratch"
)

var labelFace = text.NewGoXFace(basicfont.Face7x13)

// maskLayer is the erase mask of a tile: opaque where scratched.
type maskLayer struct {
	img   *ebiten.Image
	brush *ebiten.Image
}

func (m *maskLayer) Clear() { m.img.Clear() }

func (m *maskLayer) Fill() { m.img.Fill(color.White) }

func (m *maskLayer) Stamp(p scratch.Vec, angle float64) {
	b := m.brush.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Rotate(angle)
	op.GeoM.Translate(p.X, p.Y)
	m.img.DrawImage(m.brush, op)
}

// Tile is one cell of the card: a scratchable cover over a prize.
type Tile struct {
	X, Y float64
	Size float64

	surface *scratch.Surface
	mask    *maskLayer
	content *ebiten.Image
	assets  *assets.Manager

	prize  prize.Prize
	pulse  config.WinPulse
	scale  float64
	alpha  float64
	winT   float64
	winner bool
}

func NewTile(x, y float64, cfg *config.Config, am *assets.Manager, rng *rand.Rand) *Tile {
	size := cfg.Grid.TileSize
	px := int(size)
	t := &Tile{
		X:       x,
		Y:       y,
		Size:    size,
		assets:  am,
		content: ebiten.NewImage(px, px),
		mask: &maskLayer{
			img:   ebiten.NewImage(px, px),
			brush: am.Image(assets.Brush),
		},
		pulse: cfg.WinPulse,
		scale: cfg.WinPulse.From,
		alpha: 1,
	}
	t.surface = scratch.NewSurface(size, size, t.mask, scratch.Options{
		BrushRadius: cfg.Scratch.BrushRadius,
		MaxSamples:  cfg.Scratch.MaxSamples,
		Rand:        rng,
	})
	return t
}

// OnRevealed registers the callback fired once the tile is uncovered.
func (t *Tile) OnRevealed(fn func()) {
	t.surface.OnRevealed(func(*scratch.Surface) { fn() })
}

func (t *Tile) Surface() *scratch.Surface { return t.surface }

// SetPrize hides a new prize under a fresh cover.
func (t *Tile) SetPrize(p prize.Prize) {
	t.prize = p
	t.alpha = 1
	t.scale = t.pulse.From
	t.winner = false
	t.winT = 0
	t.surface.Reset()
}

func (t *Tile) Reveal()           { t.surface.Reveal() }
func (t *Tile) Interactive() bool { return t.surface.Interactive() }
func (t *Tile) PrizeID() int      { return t.prize.ID }

// Win starts the endless grow/shrink pulse of the prize icon.
func (t *Tile) Win() {
	t.winner = true
	t.winT = 0
}

func (t *Tile) Fail() {
	t.alpha = 0.5
}

func (t *Tile) Over()             { t.surface.Begin() }
func (t *Tile) Down()             { t.surface.Begin() }
func (t *Tile) Out()              { t.surface.End() }
func (t *Tile) Up()               { t.surface.End() }
func (t *Tile) Move(x, y float64) { t.surface.Move(scratch.Vec{X: x, Y: y}) }

func (t *Tile) Update(dt float64) {
	if !t.winner {
		return
	}
	t.winT += dt
	t.scale = pulseScale(t.pulse, t.winT)
}

// pulseScale is a yoyo tween between From and To, one leg per Period.
func pulseScale(p config.WinPulse, elapsed float64) float64 {
	leg := math.Mod(elapsed/p.Period, 2)
	if leg > 1 {
		leg = 2 - leg
	}
	return p.From + (p.To-p.From)*leg
}

func (t *Tile) Draw(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(t.X, t.Y)
	screen.DrawImage(t.assets.Image(assets.TileCover), op)

	t.content.Clear()
	t.content.DrawImage(t.assets.Image(assets.TileUnderlay), nil)
	t.content.DrawImage(t.assets.Image(assets.TileScratched), nil)

	icon := t.assets.PrizeIcon(t.prize.ID)
	b := icon.Bounds()
	iop := &ebiten.DrawImageOptions{}
	iop.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	iop.GeoM.Scale(t.scale, t.scale)
	iop.GeoM.Translate(t.Size/2, t.Size/2)
	iop.ColorScale.ScaleAlpha(float32(t.alpha))
	t.content.DrawImage(icon, iop)

	if label := t.prize.Label(); label != "" {
		drawOutlined(t.content, label, t.Size/2, t.Size-5, text.AlignCenter, text.AlignEnd)
	}

	mop := &ebiten.DrawImageOptions{Blend: ebiten.BlendDestinationIn}
	t.content.DrawImage(t.mask.img, mop)

	screen.DrawImage(t.content, op)
}

// drawOutlined draws white text with a black outline.
func drawOutlined(dst *ebiten.Image, s string, x, y float64, h, v text.Align) {
	for _, d := range [][2]float64{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {1, 1}} {
		drawText(dst, s, x+d[0], y+d[1], h, v, color.Black)
	}
	drawText(dst, s, x, y, h, v, color.White)
}

func drawText(dst *ebiten.Image, s string, x, y float64, h, v text.Align, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = h
	op.SecondaryAlign = v
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, labelFace, op)
}
