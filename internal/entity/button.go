package entity

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"scratchcard/internal/config"
	"scratchcard/internal/input"
)

// Button is a flat rectangle with a centred label. It dims while held.
type Button struct {
	Rect  input.Rect
	Label string
	Color color.RGBA

	alpha   float64
	onPress func()
}

func NewButton(cfg config.Button, label string, onPress func()) *Button {
	return &Button{
		Rect:    input.Rect{X: cfg.X, Y: cfg.Y, W: cfg.Width, H: cfg.Height},
		Label:   label,
		Color:   cfg.Color.RGBA,
		alpha:   1,
		onPress: onPress,
	}
}

func (b *Button) Down() {
	b.alpha = 0.7
	if b.onPress != nil {
		b.onPress()
	}
}

func (b *Button) Up()  { b.alpha = 1 }
func (b *Button) Out() { b.alpha = 1 }

func (b *Button) Over()             {}
func (b *Button) Move(x, y float64) {}

func (b *Button) Alpha() float64 { return b.alpha }

func (b *Button) Draw(screen *ebiten.Image) {
	c := b.Color
	a := float32(b.alpha)
	fill := color.RGBA{
		R: uint8(float32(c.R) * a),
		G: uint8(float32(c.G) * a),
		B: uint8(float32(c.B) * a),
		A: uint8(float32(c.A) * a),
	}
	vector.DrawFilledRect(screen, float32(b.Rect.X), float32(b.Rect.Y), float32(b.Rect.W), float32(b.Rect.H), fill, false)

	cx := b.Rect.X + b.Rect.W/2
	cy := b.Rect.Y + b.Rect.H/2
	drawText(screen, b.Label, cx+2, cy+2, text.AlignCenter, text.AlignCenter, color.Black)
	drawText(screen, b.Label, cx, cy, text.AlignCenter, text.AlignCenter, color.White)
}
