package game

import (
	"time"
)

// Outcome is the result of one hand against the dealer
type Outcome int

const (
	Push Outcome = iota
	Win
	Loss
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case Push:
		return "push"
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "unknown"
	}
}

// HandResult is the settled outcome of a single hand
type HandResult struct {
	Hand    *Hand // Snapshot taken before the hands were cleared
	Outcome Outcome
	Delta   int // Signed change applied for this hand
}

// Settlement describes what GameOver applied to a player
type Settlement struct {
	Round      int          // Round number, starting at 1
	Results    []HandResult // One entry per hand, in creation order
	Delta      int          // Sum of the hand deltas applied at settlement
	RoundDelta int          // Net change over the whole round, surrender penalties included
	Balance    int          // Balance after settlement
}

// RoundEntry is one line of a player's ledger
type RoundEntry struct {
	Round   int
	Delta   int
	Balance int
	At      time.Time
}

// settle compares a hand with the dealer's final value. A lost hand loses
// its wager even when the dealer busted.
func settle(h *Hand, dealerValue int) HandResult {
	value := h.Value()
	res := HandResult{Hand: h.clone(), Outcome: Push}
	switch {
	case value > dealerValue && !h.Lost():
		res.Outcome = Win
		res.Delta = h.Wager()
	case value < dealerValue || h.Lost():
		res.Outcome = Loss
		res.Delta = -h.Wager()
	}
	return res
}
