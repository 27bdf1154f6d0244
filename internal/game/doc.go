// Package game implements the blackjack hand and player state machine.
//
// The main types are Hand, which scores a set of cards and applies hit,
// split, double and surrender, and Player, which owns a player's hands for
// a round and settles them against the dealer.
//
// # Basic Usage
//
// Play one round against the dealer:
//
//	shoe := cards.NewShoe(randutil.New(42), 6)
//	alice := game.NewPlayer("Alice", 1000)
//	dealer := game.NewDealer("Dealer")
//
//	alice.Bet(10, shoe)
//	dealer.Bet(0, shoe)
//	for alice.IsPlaying() {
//	    alice.Stand()
//	}
//	value, _ := dealer.PlayAsDealer(shoe)
//	settlement := alice.GameOver(value)
//
// # Deterministic Testing
//
// Any CardSource can feed a hand. A cards.Stack deals a fixed sequence:
//
//	stack := cards.NewStack(cards.MustParseCards("As", "6d", "9c")...)
//	h := game.NewHand(10, stack) // A,6: 17 soft
//	h.Hit(stack)                 // A,6,9: 16 hard
//
// # Round Lifecycle
//
// A player holds no hands between rounds. Bet deals the original hand;
// decisions always apply to the playing hand, the first unfinished hand in
// creation order. GameOver settles every hand, records a RoundEntry in the
// ledger and clears the hands. Calling a decision out of sequence returns
// ErrNoHands or ErrNoPlayingHand.
package game
