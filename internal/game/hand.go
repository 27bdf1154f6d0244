package game

import (
	"fmt"
	"slices"

	"github.com/lox/blackjack/cards"
)

const (
	// Blackjack is the highest total a hand can hold without busting
	Blackjack = 21

	// DealerStandsOn is the total at which the dealer stops drawing
	DealerStandsOn = 17

	aceReduction = 10
)

// CardSource produces one previously unseen card per call. It is borrowed by
// every card-producing operation for the duration of the call only.
type CardSource interface {
	NextCard() cards.Card
}

// Hand is a set of cards bet on independently
type Hand struct {
	cards       []cards.Card
	wager       int
	surrendered bool
	finished    bool
}

// NewHand deals two cards from src into a fresh hand carrying wager
func NewHand(wager int, src CardSource) *Hand {
	h := &Hand{
		cards: make([]cards.Card, 0, 11),
		wager: wager,
	}
	for range 2 {
		h.cards = append(h.cards, src.NextCard())
	}
	return h
}

// score sums the card scores, demoting one Ace at a time from 11 to 1 while
// the total exceeds 21. It returns the total and the Aces still counted high.
func (h *Hand) score() (total, highAces int) {
	for _, c := range h.cards {
		v := c.Score()
		if v == 11 {
			highAces++
		}
		total += v
	}
	for total > Blackjack && highAces > 0 {
		total -= aceReduction
		highAces--
	}
	return total, highAces
}

// Value returns the hand total with Aces reduced as needed
func (h *Hand) Value() int {
	total, _ := h.score()
	return total
}

// HighAces returns how many Aces are still counted as 11 after reduction
func (h *Hand) HighAces() int {
	_, aces := h.score()
	return aces
}

// IsSoft reports whether at least one Ace is still counted as 11
func (h *Hand) IsSoft() bool {
	return h.HighAces() > 0
}

// Busted reports whether the hand total exceeds 21
func (h *Hand) Busted() bool {
	return h.Value() > Blackjack
}

// Lost reports whether the hand is surrendered or busted
func (h *Hand) Lost() bool {
	return h.surrendered || h.Busted()
}

// Hit deals one card and reports whether the hand busted. It does not
// finish the hand.
func (h *Hand) Hit(src CardSource) bool {
	h.cards = append(h.cards, src.NextCard())
	return h.Busted()
}

// CanSplit reports whether the hand is two cards of equal score. Scores are
// compared, not ranks, so a King and a Queen may be split.
func (h *Hand) CanSplit() bool {
	return len(h.cards) == 2 && h.cards[0].Score() == h.cards[1].Score()
}

// Split moves the second card into a new hand carrying the same wager and
// completes both hands with a fresh card each. It returns nil, leaving the
// hand untouched, when the hand cannot be split.
func (h *Hand) Split(src CardSource) *Hand {
	if !h.CanSplit() {
		return nil
	}
	moved := h.cards[1]
	h.cards[1] = src.NextCard()

	nh := &Hand{
		cards: make([]cards.Card, 0, 11),
		wager: h.wager,
	}
	nh.cards = append(nh.cards, moved, src.NextCard())
	return nh
}

// Double doubles the wager, finishes the hand and deals exactly one more
// card. It reports whether that card busted the hand.
func (h *Hand) Double(src CardSource) bool {
	h.wager *= 2
	h.finished = true
	return h.Hit(src)
}

// Surrender marks the hand surrendered. Finishing it is left to the caller.
func (h *Hand) Surrender() {
	h.surrendered = true
}

// Finish marks the hand as no longer playable
func (h *Hand) Finish() {
	h.finished = true
}

// Finished reports whether the hand can no longer be acted on
func (h *Hand) Finished() bool { return h.finished }

// Surrendered reports whether the hand was surrendered
func (h *Hand) Surrendered() bool { return h.surrendered }

// Wager returns the amount bet on the hand
func (h *Hand) Wager() int { return h.wager }

// CardCount returns the number of cards in the hand
func (h *Hand) CardCount() int { return len(h.cards) }

// CardAt returns the card at index i
func (h *Hand) CardAt(i int) cards.Card { return h.cards[i] }

// Cards returns a copy of the cards in deal order
func (h *Hand) Cards() []cards.Card { return slices.Clone(h.cards) }

// clone returns a deep copy for read-only snapshots
func (h *Hand) clone() *Hand {
	c := *h
	c.cards = slices.Clone(h.cards)
	return &c
}

// String returns the cards and total, e.g. "As, 9d (20, soft)"
func (h *Hand) String() string {
	soft := ""
	if h.IsSoft() {
		soft = ", soft"
	}
	return fmt.Sprintf("%s (%d%s)", cards.Join(h.cards), h.Value(), soft)
}
