package assets

import (
	"fmt"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Sprite names.
const (
	TileCover     = "tile_bg_unscratched"
	TileUnderlay  = "tile_underlay"
	TileScratched = "tile_bg_scratched"
	Brush         = "brush"
)

var (
	ColFoil      = color.RGBA{0xb8, 0xb8, 0xc0, 0xff}
	ColFoilLine  = color.RGBA{0xa0, 0xa0, 0xaa, 0xff}
	ColUnderlay  = color.RGBA{0xf6, 0xee, 0xd8, 0xff}
	ColScratched = color.RGBA{0xec, 0xe0, 0xc0, 0xff}
	ColEdge      = color.RGBA{0xc8, 0xa8, 0x60, 0xff}
	ColCoin      = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	ColCoinEdge  = color.RGBA{0xc8, 0x96, 0x00, 0xff}
)

// Prize icon colours, indexed by prize id modulo the palette size.
var prizePalette = []color.RGBA{
	{0x90, 0x90, 0x90, 0xff},
	{0xd0, 0x20, 0x30, 0xff},
	{0xf0, 0xd0, 0x20, 0xff},
	{0xe0, 0x90, 0x10, 0xff},
	{0x20, 0xa0, 0x40, 0xff},
	{0x80, 0x50, 0x20, 0xff},
	{0xff, 0xc0, 0x00, 0xff},
	{0x40, 0xc0, 0xf0, 0xff},
	{0xa0, 0x30, 0xc0, 0xff},
	{0xff, 0x40, 0x90, 0xff},
}

// Manager builds sprites on first use and keeps them for the process
// lifetime.
type Manager struct {
	TileSize    int
	BrushRadius float64

	mu     sync.Mutex
	images map[string]*ebiten.Image
}

func NewManager(tileSize int, brushRadius float64) *Manager {
	return &Manager{
		TileSize:    tileSize,
		BrushRadius: brushRadius,
		images:      map[string]*ebiten.Image{},
	}
}

// Image returns a named tile sprite.
func (m *Manager) Image(name string) *ebiten.Image {
	return m.cached(name, func() *ebiten.Image {
		switch name {
		case TileCover:
			return m.drawCover()
		case TileUnderlay:
			return m.drawPanel(ColUnderlay)
		case TileScratched:
			return m.drawPanel(ColScratched)
		case Brush:
			return m.drawBrush()
		}
		panic(fmt.Sprintf("assets: unknown sprite %q", name))
	})
}

// PrizeIcon returns the icon for a prize id.
func (m *Manager) PrizeIcon(id int) *ebiten.Image {
	return m.cached(fmt.Sprintf("prize_%d", id), func() *ebiten.Image {
		return drawPrize(id, 100)
	})
}

// CoinFrames returns n frames of a spinning coin.
func (m *Manager) CoinFrames(n int) []*ebiten.Image {
	frames := make([]*ebiten.Image, n)
	for i := range frames {
		frames[i] = m.cached(fmt.Sprintf("coin_%d_%d", n, i), func() *ebiten.Image {
			return drawCoin(i, n, 32)
		})
	}
	return frames
}

func (m *Manager) cached(key string, build func() *ebiten.Image) *ebiten.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	if img, ok := m.images[key]; ok {
		return img
	}
	img := build()
	m.images[key] = img
	return img
}

func (m *Manager) drawCover() *ebiten.Image {
	s := m.TileSize
	img := ebiten.NewImage(s, s)
	img.Fill(ColFoil)
	for x := -s; x < s; x += 12 {
		vector.StrokeLine(img, float32(x), float32(s), float32(x+s), 0, 3, ColFoilLine, true)
	}
	vector.StrokeRect(img, 1, 1, float32(s-2), float32(s-2), 2, ColEdge, true)
	return img
}

func (m *Manager) drawPanel(fill color.RGBA) *ebiten.Image {
	s := m.TileSize
	img := ebiten.NewImage(s, s)
	img.Fill(fill)
	vector.StrokeRect(img, 1, 1, float32(s-2), float32(s-2), 2, ColEdge, true)
	return img
}

// drawBrush draws an uneven blob so that random rotation gives ragged
// scratch marks.
func (m *Manager) drawBrush() *ebiten.Image {
	r := float32(m.BrushRadius)
	d := int(math.Ceil(m.BrushRadius * 2))
	img := ebiten.NewImage(d, d)
	white := color.White
	vector.DrawFilledCircle(img, r, r, r*0.8, white, true)
	for i := 0; i < 6; i++ {
		a := float64(i) * math.Pi / 3
		off := r * 0.45
		rad := r * (0.45 + 0.08*float32(i%3))
		vector.DrawFilledCircle(img, r+off*float32(math.Cos(a)), r+off*float32(math.Sin(a)), rad, white, true)
	}
	return img
}

func drawPrize(id, size int) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	c := prizePalette[id%len(prizePalette)]
	h := float32(size) / 2

	switch id % 4 {
	case 0:
		vector.DrawFilledCircle(img, h, h, h*0.9, c, true)
	case 1:
		vector.DrawFilledRect(img, h*0.2, h*0.2, h*1.6, h*1.6, c, true)
	case 2:
		var path vector.Path
		path.MoveTo(h, h*0.1)
		path.LineTo(h*1.9, h)
		path.LineTo(h, h*1.9)
		path.LineTo(h*0.1, h)
		path.Close()
		op := &vector.DrawPathOptions{AntiAlias: true}
		op.ColorScale.ScaleWithColor(c)
		vector.FillPath(img, &path, nil, op)
	case 3:
		var path vector.Path
		for i := 0; i < 10; i++ {
			rad := h * 0.9
			if i%2 == 1 {
				rad = h * 0.4
			}
			a := float64(i)*math.Pi/5 - math.Pi/2
			x := h + rad*float32(math.Cos(a))
			y := h + rad*float32(math.Sin(a))
			if i == 0 {
				path.MoveTo(x, y)
			} else {
				path.LineTo(x, y)
			}
		}
		path.Close()
		op := &vector.DrawPathOptions{AntiAlias: true}
		op.ColorScale.ScaleWithColor(c)
		vector.FillPath(img, &path, nil, op)
	}

	// ring marks the tier
	for i := 0; i <= id/4; i++ {
		vector.StrokeCircle(img, h, h, h*0.3-float32(i)*4, 2, color.White, true)
	}
	return img
}

func drawCoin(frame, n, size int) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	h := float32(size) / 2
	w := float32(math.Abs(math.Cos(float64(frame) * math.Pi / float64(n))))
	if w < 0.15 {
		w = 0.15
	}

	// squash the disc horizontally to fake the spin
	squashed := ebiten.NewImage(size, size)
	vector.DrawFilledCircle(squashed, h, h, h*0.95, ColCoinEdge, true)
	vector.DrawFilledCircle(squashed, h, h, h*0.75, ColCoin, true)

	dop := &ebiten.DrawImageOptions{}
	dop.GeoM.Translate(-float64(h), 0)
	dop.GeoM.Scale(float64(w), 1)
	dop.GeoM.Translate(float64(h), 0)
	img.DrawImage(squashed, dop)
	squashed.Deallocate()
	return img
}
