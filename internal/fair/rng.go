package fair

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Seeds identify a sequence of cards. The same seeds and nonce always
// replay the same card.
type Seeds struct {
	Server string
	Client string
}

// NewSeeds creates a random server seed and a uuid client seed.
func NewSeeds() (Seeds, error) {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return Seeds{}, fmt.Errorf("generate server seed: %w", err)
	}
	return Seeds{
		Server: hex.EncodeToString(buf[:]),
		Client: uuid.NewString(),
	}, nil
}

// Stream is an endless HMAC-SHA256 byte stream for one nonce.
// Each 32-byte round is HMAC(server, "client:nonce:round").
type Stream struct {
	seeds Seeds
	nonce uint64
	round uint64
	pos   int
	buf   [32]byte
}

func NewStream(seeds Seeds, nonce uint64) *Stream {
	s := &Stream{seeds: seeds, nonce: nonce}
	s.fill()
	return s
}

// Next returns the next byte of the stream.
func (s *Stream) Next() byte {
	if s.pos >= len(s.buf) {
		s.round++
		s.pos = 0
		s.fill()
	}
	b := s.buf[s.pos]
	s.pos++
	return b
}

// Float64 consumes 4 bytes and returns a float in [0, 1).
func (s *Stream) Float64() float64 {
	result := 0.0
	for i := 0; i < 4; i++ {
		result += float64(s.Next()) / math.Pow(256, float64(i+1))
	}
	return result
}

func (s *Stream) fill() {
	h := hmac.New(sha256.New, []byte(s.seeds.Server))
	fmt.Fprintf(h, "%s:%d:%d", s.seeds.Client, s.nonce, s.round)
	copy(s.buf[:], h.Sum(nil))
}
