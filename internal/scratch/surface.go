package scratch

import (
	"math"
	"math/rand"
)

const (
	DefaultBrushRadius = 30
	DefaultMaxSamples  = 4
)

// Vec is a point in tile-local coordinates.
type Vec struct {
	X, Y float64
}

// Mask is the erase layer painted over a tile's hidden content.
type Mask interface {
	// Clear resets the mask so nothing underneath is visible.
	Clear()
	// Stamp erases one brush-sized disc centred on p.
	Stamp(p Vec, angle float64)
	// Fill erases the whole tile.
	Fill()
}

// Options tunes a Surface. Zero values fall back to the defaults.
type Options struct {
	BrushRadius float64
	MaxSamples  int
	Rand        *rand.Rand
	OnRevealed  func(*Surface)
}

// Surface tracks the scratching of a single tile.
//
// Every pointer move while dragging stamps the brush into the mask. The
// move position, clamped so the brush stays inside the tile, is also
// offered as a sample: it is kept only if it does not fall inside the
// brush disc of a sample kept earlier. Once more than MaxSamples samples
// have been kept the tile reveals itself.
type Surface struct {
	W, H float64

	radius     float64
	maxSamples int
	rng        *rand.Rand
	mask       Mask
	onRevealed func(*Surface)

	samples     []Vec
	dragging    bool
	interactive bool
}

func NewSurface(w, h float64, mask Mask, opts Options) *Surface {
	s := &Surface{
		W:          w,
		H:          h,
		radius:     opts.BrushRadius,
		maxSamples: opts.MaxSamples,
		rng:        opts.Rand,
		mask:       mask,
		onRevealed: opts.OnRevealed,
	}
	if s.radius <= 0 {
		s.radius = DefaultBrushRadius
	}
	if s.maxSamples <= 0 {
		s.maxSamples = DefaultMaxSamples
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	s.Reset()
	return s
}

// OnRevealed replaces the reveal callback.
func (s *Surface) OnRevealed(fn func(*Surface)) {
	s.onRevealed = fn
}

// Reset covers the tile again and makes it scratchable.
func (s *Surface) Reset() {
	s.samples = s.samples[:0]
	s.dragging = false
	s.interactive = true
	if s.mask != nil {
		s.mask.Clear()
	}
}

// Begin handles pointer over and pointer down.
func (s *Surface) Begin() {
	if s.interactive {
		s.dragging = true
	}
}

// End handles pointer out, pointer up and release outside the tile.
func (s *Surface) End() {
	s.dragging = false
}

// Move handles a pointer move at p, in tile-local coordinates.
func (s *Surface) Move(p Vec) {
	if !s.dragging || !s.interactive {
		return
	}

	if s.mask != nil {
		s.mask.Stamp(p, s.rng.Float64()*math.Pi)
	}

	p = s.clamp(p)

	n := len(s.samples)
	if n == 0 {
		s.samples = append(s.samples, p)
		return
	}
	for _, q := range s.samples {
		if InCircle(q, p, s.radius) {
			return
		}
	}
	s.samples = append(s.samples, p)
	if n >= s.maxSamples {
		s.Reveal()
	}
}

// Reveal uncovers the whole tile. Calling it on a revealed tile is a no-op.
func (s *Surface) Reveal() {
	if !s.interactive {
		return
	}
	s.dragging = false
	s.interactive = false
	if s.mask != nil {
		s.mask.Fill()
	}
	if s.onRevealed != nil {
		s.onRevealed(s)
	}
}

func (s *Surface) Interactive() bool { return s.interactive }

func (s *Surface) Dragging() bool { return s.dragging }

func (s *Surface) Radius() float64 { return s.radius }

// Samples returns a copy of the kept sample points.
func (s *Surface) Samples() []Vec {
	out := make([]Vec, len(s.samples))
	copy(out, s.samples)
	return out
}

// Coverage estimates the fraction of the tile inside the union of the
// sample discs, probing a step×step grid of cell centres.
func (s *Surface) Coverage(step int) float64 {
	if step <= 0 || len(s.samples) == 0 {
		return 0
	}
	hit := 0
	for iy := 0; iy < step; iy++ {
		y := (float64(iy) + 0.5) * s.H / float64(step)
		for ix := 0; ix < step; ix++ {
			x := (float64(ix) + 0.5) * s.W / float64(step)
			for _, q := range s.samples {
				if InCircle(q, Vec{x, y}, s.radius) {
					hit++
					break
				}
			}
		}
	}
	return float64(hit) / float64(step*step)
}

func (s *Surface) clamp(p Vec) Vec {
	if p.X < s.radius {
		p.X = s.radius
	}
	if p.Y < s.radius {
		p.Y = s.radius
	}
	if p.X > s.W-s.radius {
		p.X = s.W - s.radius
	}
	if p.Y > s.H-s.radius {
		p.Y = s.H - s.radius
	}
	return p
}

// InCircle reports whether b lies within radius of a, boundary included.
func InCircle(a, b Vec, radius float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx+dy*dy <= radius*radius
}
