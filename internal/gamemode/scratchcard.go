package gamemode

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"scratchcard/internal/fair"
	"scratchcard/internal/prize"
)

const (
	LabelRevealAll = "Reveal All"
	LabelPlayAgain = "Play Again"
)

// Tile is one scratchable cell of the card.
type Tile interface {
	SetPrize(p prize.Prize)
	Reveal()
	Interactive() bool
	PrizeID() int
	Win()
	Fail()
}

// Effects is the celebration particle effect.
type Effects interface {
	Play()
	Pause()
}

// Sound is the celebration jingle.
type Sound interface {
	Play()
	Stop()
}

type CardState int

const (
	CardScratching CardState = iota // tiles left to scratch
	CardFinished                    // all tiles revealed, result shown
)

// ScratchCard runs the rounds of the scratch card game. Tiles report back
// through TileRevealed once they are uncovered.
type ScratchCard struct {
	State   CardState
	Button  string
	Message string
	// MessageVisible is false while the card is being scratched.
	MessageVisible bool
	Result         prize.Result

	RoundID string
	Seeds   fair.Seeds
	Nonce   uint64

	table   prize.Table
	tiles   []Tile
	card    prize.Card
	effects Effects
	sound   Sound
	shown   bool
}

func NewScratchCard(table prize.Table, tiles []Tile, effects Effects, sound Sound, seeds fair.Seeds) *ScratchCard {
	return &ScratchCard{
		Button:  LabelRevealAll,
		Seeds:   seeds,
		table:   table,
		tiles:   tiles,
		effects: effects,
		sound:   sound,
	}
}

// NewRound deals a fresh card.
func (s *ScratchCard) NewRound() error {
	s.sound.Stop()
	s.MessageVisible = false
	s.effects.Pause()

	card, err := prize.Assign(s.table, len(s.tiles), fair.NewStream(s.Seeds, s.Nonce))
	if err != nil {
		return fmt.Errorf("assign prizes: %w", err)
	}

	s.card = card
	s.Result = prize.Result{}
	s.shown = false
	s.State = CardScratching
	s.Button = LabelRevealAll
	s.RoundID = uuid.NewString()

	for i, t := range s.tiles {
		t.SetPrize(s.table[card.Prizes[i]])
	}

	log.Printf("round_start id=%s nonce=%d winning=%d prizes=%v", s.RoundID, s.Nonce, card.Winning, card.Prizes)
	s.Nonce++
	return nil
}

// PressButton reveals the remaining tiles, or deals a new card when none
// are left.
func (s *ScratchCard) PressButton() error {
	s.Button = LabelRevealAll
	if s.TilesRemaining() {
		s.RevealAll()
		return nil
	}
	return s.NewRound()
}

func (s *ScratchCard) RevealAll() {
	for _, t := range s.tiles {
		t.Reveal()
	}
}

// TileRevealed is called by a tile after it is uncovered.
func (s *ScratchCard) TileRevealed() {
	if s.TilesRemaining() {
		return
	}
	s.Button = LabelPlayAgain
	s.State = CardFinished
	s.showResult()
}

func (s *ScratchCard) TilesRemaining() bool {
	for _, t := range s.tiles {
		if t.Interactive() {
			return true
		}
	}
	return false
}

// Card returns the current prize layout.
func (s *ScratchCard) Card() prize.Card {
	return s.card
}

func (s *ScratchCard) showResult() {
	if s.shown {
		return
	}
	s.shown = true
	s.MessageVisible = true

	ids := make([]int, len(s.tiles))
	for i, t := range s.tiles {
		ids[i] = t.PrizeID()
	}
	s.Result = prize.Evaluate(s.table, ids, s.card.Winning)
	s.Message = s.Result.Message

	if s.card.Winning > prize.NoWinner {
		for _, t := range s.tiles {
			if t.PrizeID() == s.card.Winning {
				t.Win()
				s.effects.Play()
			} else {
				t.Fail()
			}
		}
	}
	if s.Result.Won {
		s.sound.Play()
	}

	log.Printf("round_result id=%s won=%t winning=%d payout=%s", s.RoundID, s.Result.Won, s.Result.Winning, s.Result.Payout)
}
