package game

import "errors"

// Sequencing errors. These signal a caller driving the round out of order
// and are not meant to be recovered from mid-round.
var (
	// ErrNoHands is returned when a decision is made before Bet
	ErrNoHands = errors.New("player has no hands")

	// ErrNoPlayingHand is returned when every hand is already finished
	ErrNoPlayingHand = errors.New("player has no playing hand")

	// ErrNotDealer is returned when dealer auto-play is requested of a player
	ErrNotDealer = errors.New("player is not the dealer")

	// ErrDealerHand is returned when the dealer does not hold exactly one hand
	ErrDealerHand = errors.New("dealer must hold exactly one hand")
)
