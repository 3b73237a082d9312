package sound

import (
	"errors"
	"io"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	SampleRate = 44100
	// bytes per stereo 16-bit frame
	frameSize = 4
)

// Note is one tone of a jingle.
type Note struct {
	Freq    float64
	Seconds float64
}

// WinJingle is the rising arpeggio played after a winning card.
var WinJingle = []Note{
	{523.25, 0.12}, {659.25, 0.12}, {783.99, 0.12},
	{1046.5, 0.12}, {783.99, 0.12}, {1046.5, 0.5},
}

// JingleStream is a square wave chiptune rendered on the fly. It is
// seekable so a player can rewind it.
type JingleStream struct {
	notes  []Note
	starts []int64 // first frame of each note
	frames int64
	vol    float64
	pos    int64 // byte offset
}

func NewJingleStream(notes []Note, vol float64) *JingleStream {
	s := &JingleStream{notes: notes, vol: vol}
	for _, n := range notes {
		s.starts = append(s.starts, s.frames)
		s.frames += int64(n.Seconds * SampleRate)
	}
	return s
}

// Length is the stream size in bytes.
func (s *JingleStream) Length() int64 {
	return s.frames * frameSize
}

func (s *JingleStream) Read(buf []byte) (int, error) {
	if s.pos >= s.Length() {
		return 0, io.EOF
	}
	n := 0
	for ; n+frameSize <= len(buf) && s.pos < s.Length(); n += frameSize {
		v := int16(s.sample(s.pos/frameSize) * 32767)
		buf[n] = byte(v)
		buf[n+1] = byte(v >> 8)
		buf[n+2] = byte(v)
		buf[n+3] = byte(v >> 8)
		s.pos += frameSize
	}
	return n, nil
}

func (s *JingleStream) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = s.pos + offset
	case io.SeekEnd:
		next = s.Length() + offset
	default:
		return 0, errors.New("jingle: invalid whence")
	}
	if next < 0 {
		return 0, errors.New("jingle: negative position")
	}
	s.pos = next - next%frameSize
	return s.pos, nil
}

// sample returns the amplitude of frame f in [-1, 1].
func (s *JingleStream) sample(f int64) float64 {
	i := len(s.starts) - 1
	for i > 0 && s.starts[i] > f {
		i--
	}
	note := s.notes[i]
	t := float64(f-s.starts[i]) / SampleRate

	phase := int(t * note.Freq * 2)
	val := s.vol
	if phase%2 == 1 {
		val = -s.vol
	}
	// linear fade over the note to avoid clicks between tones
	decay := math.Max(0, 1-t/note.Seconds)
	return val * decay
}

// Celebration plays a jingle on an audio context.
type Celebration struct {
	player *audio.Player
}

func NewCelebration(ctx *audio.Context, notes []Note) (*Celebration, error) {
	player, err := ctx.NewPlayer(NewJingleStream(notes, 0.1))
	if err != nil {
		return nil, err
	}
	player.SetVolume(0.5)
	return &Celebration{player: player}, nil
}

// Play starts the jingle from the beginning.
func (c *Celebration) Play() {
	if err := c.player.Rewind(); err != nil {
		return
	}
	c.player.Play()
}

func (c *Celebration) Stop() {
	c.player.Pause()
}
