package game

import (
	"testing"

	"github.com/lox/blackjack/cards"
)

// stack returns a card source that deals the given cards in order and
// panics if asked for more
func stack(t *testing.T, strs ...string) *cards.Stack {
	t.Helper()
	return cards.NewStack(cards.MustParseCards(strs...)...)
}

// handOf deals a two-card hand and hits the remaining cards into it
func handOf(t *testing.T, wager int, strs ...string) *Hand {
	t.Helper()
	src := stack(t, strs...)
	h := NewHand(wager, src)
	for src.Remaining() > 0 {
		h.Hit(src)
	}
	return h
}
