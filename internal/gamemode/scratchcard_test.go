package gamemode

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scratchcard/internal/fair"
	"scratchcard/internal/prize"
)

type fakeTile struct {
	card        *ScratchCard
	prize       prize.Prize
	interactive bool
	won, failed bool
	reveals     int
}

func (f *fakeTile) SetPrize(p prize.Prize) {
	f.prize = p
	f.interactive = true
	f.won, f.failed = false, false
}

func (f *fakeTile) Reveal() {
	if !f.interactive {
		return
	}
	f.interactive = false
	f.reveals++
	f.card.TileRevealed()
}

func (f *fakeTile) Interactive() bool { return f.interactive }
func (f *fakeTile) PrizeID() int      { return f.prize.ID }
func (f *fakeTile) Win()              { f.won = true }
func (f *fakeTile) Fail()             { f.failed = true }

type fakeFX struct{ playing, plays int }

func (f *fakeFX) Play()  { f.playing = 1; f.plays++ }
func (f *fakeFX) Pause() { f.playing = 0 }

type fakeSound struct{ plays, stops int }

func (f *fakeSound) Play() { f.plays++ }
func (f *fakeSound) Stop() { f.stops++ }

func testTable() prize.Table {
	t := make(prize.Table, 10)
	for i := range t {
		t[i] = prize.Prize{ID: i, Value: decimal.NewFromInt(int64(i))}
	}
	return t
}

func newTestCard(t *testing.T, seeds fair.Seeds) (*ScratchCard, []*fakeTile, *fakeFX, *fakeSound) {
	t.Helper()
	fakes := make([]*fakeTile, 9)
	tiles := make([]Tile, 9)
	for i := range fakes {
		fakes[i] = &fakeTile{}
		tiles[i] = fakes[i]
	}
	fx := &fakeFX{}
	snd := &fakeSound{}
	card := NewScratchCard(testTable(), tiles, fx, snd, seeds)
	for _, f := range fakes {
		f.card = card
	}
	require.NoError(t, card.NewRound())
	return card, fakes, fx, snd
}

// findNonce searches nonces for a card with or without a winner.
func findNonce(t *testing.T, seeds fair.Seeds, wantWin bool) uint64 {
	t.Helper()
	for n := uint64(0); n < 1000; n++ {
		c, err := prize.Assign(testTable(), 9, fair.NewStream(seeds, n))
		require.NoError(t, err)
		if (c.Winning > prize.NoWinner) == wantWin {
			return n
		}
	}
	t.Fatal("no matching nonce")
	return 0
}

func TestNewRoundDealsCard(t *testing.T) {
	card, tiles, fx, snd := newTestCard(t, fair.Seeds{Server: "s", Client: "c"})

	assert.Equal(t, CardScratching, card.State)
	assert.Equal(t, LabelRevealAll, card.Button)
	assert.False(t, card.MessageVisible)
	assert.NotEmpty(t, card.RoundID)
	assert.Equal(t, uint64(1), card.Nonce)
	assert.Equal(t, 1, snd.stops)
	assert.Zero(t, fx.playing)
	for i, tile := range tiles {
		assert.True(t, tile.interactive)
		assert.Equal(t, card.Card().Prizes[i], tile.PrizeID())
	}
	assert.True(t, card.TilesRemaining())
}

func TestRoundIsReproducible(t *testing.T) {
	seeds := fair.Seeds{Server: "s", Client: "c"}
	a, _, _, _ := newTestCard(t, seeds)
	b, _, _, _ := newTestCard(t, seeds)

	assert.Equal(t, a.Card(), b.Card())
	assert.NotEqual(t, a.RoundID, b.RoundID)
}

func TestResultWaitsForLastTile(t *testing.T) {
	card, tiles, _, _ := newTestCard(t, fair.Seeds{Server: "s", Client: "c"})

	for _, tile := range tiles[:8] {
		tile.Reveal()
	}
	assert.False(t, card.MessageVisible)
	assert.Equal(t, LabelRevealAll, card.Button)

	tiles[8].Reveal()
	assert.True(t, card.MessageVisible)
	assert.Equal(t, LabelPlayAgain, card.Button)
	assert.Equal(t, CardFinished, card.State)
}

func TestWinningCard(t *testing.T) {
	seeds := fair.Seeds{Server: "win", Client: "c"}
	card, tiles, fx, snd := newTestCard(t, seeds)
	card.Nonce = findNonce(t, seeds, true)
	require.NoError(t, card.NewRound())

	require.NoError(t, card.PressButton())

	winning := card.Card().Winning
	assert.True(t, card.Result.Won)
	assert.Equal(t, prize.WinMessage, card.Message)
	assert.Len(t, card.Result.Matches, 3)
	assert.True(t, decimal.NewFromInt(int64(winning)).Equal(card.Result.Payout))
	assert.Equal(t, 1, snd.plays)
	assert.Equal(t, 1, fx.playing)
	for _, tile := range tiles {
		assert.Equal(t, 1, tile.reveals)
		if tile.PrizeID() == winning {
			assert.True(t, tile.won)
		} else {
			assert.True(t, tile.failed)
		}
	}
}

func TestLosingCard(t *testing.T) {
	seeds := fair.Seeds{Server: "lose", Client: "c"}
	card, tiles, fx, snd := newTestCard(t, seeds)
	card.Nonce = findNonce(t, seeds, false)
	require.NoError(t, card.NewRound())

	require.NoError(t, card.PressButton())

	assert.False(t, card.Result.Won)
	assert.Equal(t, prize.LoseMessage, card.Message)
	assert.Zero(t, snd.plays)
	assert.Zero(t, fx.plays)
	for _, tile := range tiles {
		assert.False(t, tile.won)
		assert.False(t, tile.failed)
	}
}

func TestPressButtonAfterFinishDealsNewCard(t *testing.T) {
	card, tiles, fx, snd := newTestCard(t, fair.Seeds{Server: "s", Client: "c"})
	require.NoError(t, card.PressButton())
	require.Equal(t, LabelPlayAgain, card.Button)
	first := card.RoundID

	require.NoError(t, card.PressButton())

	assert.NotEqual(t, first, card.RoundID)
	assert.Equal(t, LabelRevealAll, card.Button)
	assert.False(t, card.MessageVisible)
	assert.Equal(t, 2, snd.stops)
	assert.Zero(t, fx.playing)
	assert.True(t, tiles[0].interactive)
	assert.False(t, tiles[0].won || tiles[0].failed)
}

func TestResultShownOnce(t *testing.T) {
	seeds := fair.Seeds{Server: "win", Client: "c"}
	card, _, _, snd := newTestCard(t, seeds)
	card.Nonce = findNonce(t, seeds, true)
	require.NoError(t, card.NewRound())

	card.RevealAll()
	card.TileRevealed()
	card.RevealAll()

	assert.Equal(t, 1, snd.plays)
}
