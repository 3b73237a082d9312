package scratch

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMask struct {
	clears int
	fills  int
	stamps []Vec
	angles []float64
}

func (m *recordingMask) Clear()                     { m.clears++; m.stamps = nil }
func (m *recordingMask) Stamp(p Vec, angle float64) { m.stamps = append(m.stamps, p); m.angles = append(m.angles, angle) }
func (m *recordingMask) Fill()                      { m.fills++ }

func newTestSurface(t *testing.T) (*Surface, *recordingMask, *int) {
	t.Helper()
	mask := &recordingMask{}
	revealed := 0
	s := NewSurface(144, 144, mask, Options{
		Rand:       rand.New(rand.NewSource(1)),
		OnRevealed: func(*Surface) { revealed++ },
	})
	return s, mask, &revealed
}

func TestNewSurfaceDefaults(t *testing.T) {
	s, mask, _ := newTestSurface(t)

	assert.Equal(t, float64(DefaultBrushRadius), s.Radius())
	assert.True(t, s.Interactive())
	assert.False(t, s.Dragging())
	assert.Empty(t, s.Samples())
	assert.Equal(t, 1, mask.clears)
}

func TestMoveIgnoredWithoutDragging(t *testing.T) {
	s, mask, _ := newTestSurface(t)

	s.Move(Vec{50, 50})

	assert.Empty(t, mask.stamps)
	assert.Empty(t, s.Samples())
}

func TestMoveStampsRawPointAndClampsSample(t *testing.T) {
	s, mask, _ := newTestSurface(t)
	s.Begin()

	s.Move(Vec{2, 200})

	require.Len(t, mask.stamps, 1)
	assert.Equal(t, Vec{2, 200}, mask.stamps[0])
	assert.GreaterOrEqual(t, mask.angles[0], 0.0)
	assert.Less(t, mask.angles[0], math.Pi)
	assert.Equal(t, []Vec{{30, 114}}, s.Samples())
}

func TestOverlappingSamplesAreDiscarded(t *testing.T) {
	s, mask, _ := newTestSurface(t)
	s.Begin()

	s.Move(Vec{40, 40})
	s.Move(Vec{50, 50})
	// exactly on the circle boundary counts as inside
	s.Move(Vec{70, 40})

	assert.Len(t, mask.stamps, 3)
	assert.Equal(t, []Vec{{40, 40}}, s.Samples())
}

func TestRevealAfterThresholdExceeded(t *testing.T) {
	s, mask, revealed := newTestSurface(t)
	s.Begin()

	points := []Vec{{30, 30}, {100, 30}, {30, 100}, {100, 100}}
	for _, p := range points {
		s.Move(p)
	}
	assert.Len(t, s.Samples(), 4)
	assert.True(t, s.Interactive())
	assert.Equal(t, 0, *revealed)

	s.Move(Vec{72, 72})

	assert.Len(t, s.Samples(), 5)
	assert.False(t, s.Interactive())
	assert.False(t, s.Dragging())
	assert.Equal(t, 1, mask.fills)
	assert.Equal(t, 1, *revealed)

	// no further stamps once revealed
	s.Begin()
	s.Move(Vec{10, 10})
	assert.Len(t, mask.stamps, 5)
	assert.False(t, s.Dragging())
}

func TestRevealIsIdempotent(t *testing.T) {
	s, mask, revealed := newTestSurface(t)

	s.Reveal()
	s.Reveal()

	assert.Equal(t, 1, *revealed)
	assert.Equal(t, 1, mask.fills)
}

func TestEndStopsScratching(t *testing.T) {
	s, mask, _ := newTestSurface(t)
	s.Begin()
	s.Move(Vec{40, 40})
	s.End()
	s.Move(Vec{100, 100})

	assert.Len(t, mask.stamps, 1)
	assert.Len(t, s.Samples(), 1)
}

func TestResetCoversAgain(t *testing.T) {
	s, mask, revealed := newTestSurface(t)
	s.Begin()
	s.Move(Vec{40, 40})
	s.Reveal()

	s.Reset()

	assert.True(t, s.Interactive())
	assert.False(t, s.Dragging())
	assert.Empty(t, s.Samples())
	assert.Equal(t, 2, mask.clears)

	s.Reveal()
	assert.Equal(t, 2, *revealed)
}

func TestSamplesStayApartAndInside(t *testing.T) {
	s, _, _ := newTestSurface(t)
	s.OnRevealed(nil)
	rng := rand.New(rand.NewSource(42))
	s.Begin()
	for i := 0; i < 500 && s.Interactive(); i++ {
		s.Move(Vec{rng.Float64()*200 - 30, rng.Float64()*200 - 30})
	}

	samples := s.Samples()
	for i, a := range samples {
		assert.GreaterOrEqual(t, a.X, 30.0)
		assert.LessOrEqual(t, a.X, 114.0)
		assert.GreaterOrEqual(t, a.Y, 30.0)
		assert.LessOrEqual(t, a.Y, 114.0)
		for _, b := range samples[i+1:] {
			assert.False(t, InCircle(a, b, s.Radius()), "%v and %v overlap", a, b)
		}
	}
	assert.LessOrEqual(t, len(samples), DefaultMaxSamples+1)
}

func TestCoverage(t *testing.T) {
	s, _, _ := newTestSurface(t)
	assert.Zero(t, s.Coverage(10))

	s.Begin()
	s.Move(Vec{72, 72})
	c := s.Coverage(48)

	disc := math.Pi * 30 * 30 / (144 * 144)
	assert.InDelta(t, disc, c, 0.02)
}
