package table

import (
	"time"

	"github.com/lox/blackjack/cards"
	"github.com/lox/blackjack/internal/game"
)

// EventType represents a table event type with type safety
type EventType string

const (
	EventTypeRoundStart   EventType = "round_start"
	EventTypePlayerAction EventType = "player_action"
	EventTypeDealerPlay   EventType = "dealer_play"
	EventTypeSettlement   EventType = "settlement"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is anything that happens at the table during a round
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// EventHandler receives table events in order
type EventHandler func(Event)

// SeatHands is the state of one seat after the deal
type SeatHands struct {
	Player string
	Wager  int
	Hands  []*game.Hand
}

// RoundStartEvent is published once every seat has been dealt
type RoundStartEvent struct {
	Round     int
	ID        string
	Seats     []SeatHands
	DealerUp  cards.Card
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published after every decision is applied
type PlayerActionEvent struct {
	Player    string
	Action    Action
	Applied   bool // False when the action was refused, e.g. an ineligible split
	Busted    bool
	Penalty   int // Amount forfeited by a surrender
	Hands     []*game.Hand
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// DealerPlayEvent is published when the dealer's hand is resolved
type DealerPlayEvent struct {
	Dealer    string
	Played    bool // False when every player had already lost
	Hand      *game.Hand
	Value     int // Final value, 0 if busted or not played
	timestamp time.Time
}

func (e DealerPlayEvent) EventType() EventType { return EventTypeDealerPlay }
func (e DealerPlayEvent) Timestamp() time.Time { return e.timestamp }

// SettlementEvent is published for every player at the end of a round
type SettlementEvent struct {
	Player     string
	Settlement game.Settlement
	Standing   int
	timestamp  time.Time
}

func (e SettlementEvent) EventType() EventType { return EventTypeSettlement }
func (e SettlementEvent) Timestamp() time.Time { return e.timestamp }
