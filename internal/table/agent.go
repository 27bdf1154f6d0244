package table

import (
	"errors"

	"github.com/lox/blackjack/cards"
	"github.com/lox/blackjack/internal/game"
)

// ErrQuit is returned by an agent that wants to leave the table
var ErrQuit = errors.New("player quit")

// WagerRequest is the read-only state offered when asking for a wager
type WagerRequest struct {
	Player   string
	Balance  int
	MinWager int
	MaxWager int
}

// View is the read-only state offered when asking for a decision
type View struct {
	Player    string
	Balance   int
	Hand      *game.Hand // Snapshot of the playing hand
	HandIndex int        // Index of the playing hand among the player's hands
	HandCount int
	DealerUp  cards.Card
}

// CanSplit reports whether splitting the playing hand would succeed
func (v View) CanSplit() bool {
	return v.Hand.CanSplit()
}

// Agent is anything that can play a seat: a console user or a bot.
// Agents receive snapshots and return decisions; they never mutate state.
type Agent interface {
	// Wager returns the amount to bet this round
	Wager(req WagerRequest) (int, error)

	// Decide returns the action to take on the playing hand
	Decide(view View) (Action, error)
}
