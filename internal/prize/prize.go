package prize

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// WinCount is how many matching tiles make a winning card.
	WinCount = 3
	// NoWinner marks a card without a tripled prize.
	NoWinner = -1

	WinMessage  = "Congrats You Won !!!"
	LoseMessage = "Better luck next time !"
)

var (
	ErrEmptyTable    = errors.New("prize table is empty")
	ErrTableTooSmall = errors.New("prize table too small for tile count")
)

type Prize struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// Label is the amount printed under the prize icon. The first prize is
// the blank one and has no label.
func (p Prize) Label() string {
	if p.ID <= 0 {
		return ""
	}
	return "$" + p.Value.String()
}

type Table []Prize

// Validate checks that ids match positions.
func (t Table) Validate() error {
	if len(t) == 0 {
		return ErrEmptyTable
	}
	for i, p := range t {
		if p.ID != i {
			return fmt.Errorf("prize at index %d has id %d", i, p.ID)
		}
		if p.Value.IsNegative() {
			return fmt.Errorf("prize %d has negative value %s", p.ID, p.Value)
		}
	}
	return nil
}

// Source yields floats in [0, 1).
type Source interface {
	Float64() float64
}

// Card is the prize layout of one scratch card.
type Card struct {
	Prizes  []int
	Winning int
}

// Assign draws a prize for each of n tiles.
//
// Prizes are drawn uniformly and a draw is rejected when that prize is
// already at the limit. The limit starts at three and drops to two as
// soon as a prize reaches three, so a card holds at most one triple and
// every other prize at most twice.
func Assign(t Table, n int, src Source) (Card, error) {
	if len(t) == 0 {
		return Card{}, ErrEmptyTable
	}
	if n > 2*len(t)+1 {
		return Card{}, fmt.Errorf("%w: %d prizes, %d tiles", ErrTableTooSmall, len(t), n)
	}

	counts := make([]int, len(t))
	card := Card{Prizes: make([]int, 0, n), Winning: NoWinner}
	limit := WinCount

	for len(card.Prizes) < n {
		r := int(src.Float64() * float64(len(t)))
		if r >= len(t) {
			r = len(t) - 1
		}
		if counts[r] >= limit {
			continue
		}
		card.Prizes = append(card.Prizes, r)
		counts[r]++
		if counts[r] == WinCount {
			card.Winning = r
			limit = WinCount - 1
		}
	}
	return card, nil
}

type Result struct {
	Won     bool
	Winning int
	// Matches holds the indexes of tiles showing the winning prize.
	Matches []int
	Payout  decimal.Decimal
	Message string
}

// Evaluate decides whether the tiles won.
func Evaluate(t Table, tiles []int, winning int) Result {
	res := Result{Winning: winning, Payout: decimal.Zero, Message: LoseMessage}
	if winning <= NoWinner {
		return res
	}
	for i, id := range tiles {
		if id == winning {
			res.Matches = append(res.Matches, i)
		}
	}
	if len(res.Matches) == WinCount {
		res.Won = true
		res.Message = WinMessage
		if winning < len(t) {
			res.Payout = t[winning].Value
		}
	}
	return res
}
