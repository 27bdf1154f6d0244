// Package table drives betting rounds at a single blackjack table: wagers,
// the deal, player decisions, dealer auto-play and settlement.
package table

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/game"
)

// ErrInvalidWager is returned when an agent bets outside the table limits
var ErrInvalidWager = errors.New("wager outside table limits")

// Seat pairs a player with the agent making its decisions
type Seat struct {
	Player *game.Player
	Agent  Agent
}

// SeatResult is one player's settlement for a round
type SeatResult struct {
	Player     string
	Settlement game.Settlement
}

// RoundReport summarises a completed round
type RoundReport struct {
	Round        int
	ID           string // Empty unless the table was given an id source
	DealerPlayed bool
	DealerValue  int // 0 if the dealer busted or did not play
	Results      []SeatResult
}

// Table runs rounds for a fixed set of seats against one dealer. A Table is
// not safe for concurrent use; independent tables share nothing.
type Table struct {
	src      game.CardSource
	dealer   *game.Player
	seats    []Seat
	minWager int
	maxWager int
	round    int

	logger   *log.Logger
	clock    quartz.Clock
	handlers []EventHandler
	nextID   func() string
}

// Option configures a Table during creation.
type Option func(*Table)

// WithLimits sets the minimum and maximum wager
func WithLimits(minWager, maxWager int) Option {
	return func(t *Table) {
		t.minWager = minWager
		t.maxWager = maxWager
	}
}

// WithDealer replaces the default dealer
func WithDealer(dealer *game.Player) Option {
	return func(t *Table) {
		t.dealer = dealer
	}
}

// WithClock sets the clock used to timestamp events
func WithClock(clock quartz.Clock) Option {
	return func(t *Table) {
		t.clock = clock
	}
}

// WithRoundIDs assigns every round an identifier from next
func WithRoundIDs(next func() string) Option {
	return func(t *Table) {
		t.nextID = next
	}
}

// WithEventHandler registers a handler for table events
func WithEventHandler(h EventHandler) Option {
	return func(t *Table) {
		t.handlers = append(t.handlers, h)
	}
}

// New creates a table dealing from src
func New(src game.CardSource, logger *log.Logger, opts ...Option) *Table {
	if src == nil {
		panic("card source is required for table creation")
	}
	if logger == nil {
		logger = log.Default()
	}
	t := &Table{
		src:      src,
		minWager: 1,
		maxWager: 500,
		logger:   logger.WithPrefix("table"),
		clock:    quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.dealer == nil {
		t.dealer = game.NewDealer("Dealer", game.WithClock(t.clock))
	}
	return t
}

// AddSeat seats a player driven by agent
func (t *Table) AddSeat(p *game.Player, a Agent) {
	t.seats = append(t.seats, Seat{Player: p, Agent: a})
}

// Seats returns the seated players in seating order
func (t *Table) Seats() []Seat {
	return append([]Seat(nil), t.seats...)
}

// Dealer returns the house player
func (t *Table) Dealer() *game.Player {
	return t.dealer
}

// Round returns the number of rounds started
func (t *Table) Round() int {
	return t.round
}

func (t *Table) emit(e Event) {
	for _, h := range t.handlers {
		h(e)
	}
}

// PlayRound plays one complete round. Every player must have been seated
// beforehand. An agent error, including ErrQuit, aborts the round before
// settlement and leaves the table unusable for further rounds.
func (t *Table) PlayRound(ctx context.Context) (*RoundReport, error) {
	if len(t.seats) == 0 {
		return nil, errors.New("no players seated")
	}
	t.round++
	var id string
	if t.nextID != nil {
		id = t.nextID()
	}
	logger := t.logger.With("round", t.round)
	if id != "" {
		logger = logger.With("id", id)
	}

	if err := t.takeWagers(ctx, logger); err != nil {
		return nil, err
	}
	t.dealer.Bet(0, t.src)

	start := RoundStartEvent{
		Round:     t.round,
		ID:        id,
		DealerUp:  t.dealer.HandAt(0).CardAt(0),
		timestamp: t.clock.Now(),
	}
	for _, s := range t.seats {
		h := s.Player.HandAt(0)
		start.Seats = append(start.Seats, SeatHands{
			Player: s.Player.Name(),
			Wager:  h.Wager(),
			Hands:  s.Player.Hands(),
		})
	}
	t.emit(start)
	logger.Debug("Dealt round", "dealerUp", start.DealerUp, "seats", len(t.seats))

	for _, s := range t.seats {
		if err := t.playSeat(ctx, logger, s); err != nil {
			return nil, err
		}
	}

	report := &RoundReport{Round: t.round, ID: id}
	value, err := t.playDealer(logger)
	if err != nil {
		return nil, err
	}
	report.DealerPlayed = value >= 0
	report.DealerValue = max(value, 0)

	for _, s := range t.seats {
		settlement := s.Player.GameOver(report.DealerValue)
		report.Results = append(report.Results, SeatResult{
			Player:     s.Player.Name(),
			Settlement: settlement,
		})
		t.emit(SettlementEvent{
			Player:     s.Player.Name(),
			Settlement: settlement,
			Standing:   s.Player.Standing(),
			timestamp:  t.clock.Now(),
		})
		logger.Debug("Settled",
			"player", s.Player.Name(),
			"delta", settlement.RoundDelta,
			"balance", settlement.Balance)
	}
	t.dealer.GameOver(0)

	return report, nil
}

func (t *Table) takeWagers(ctx context.Context, logger *log.Logger) error {
	for _, s := range t.seats {
		if err := ctx.Err(); err != nil {
			return err
		}
		wager, err := s.Agent.Wager(WagerRequest{
			Player:   s.Player.Name(),
			Balance:  s.Player.Balance(),
			MinWager: t.minWager,
			MaxWager: t.maxWager,
		})
		if err != nil {
			return fmt.Errorf("wager for %s: %w", s.Player.Name(), err)
		}
		if wager < t.minWager || wager > t.maxWager {
			return fmt.Errorf("%s bet %d: %w", s.Player.Name(), wager, ErrInvalidWager)
		}
		s.Player.Bet(wager, t.src)
		logger.Debug("Wager placed", "player", s.Player.Name(), "wager", wager)
	}
	return nil
}

// playSeat asks the seat's agent for decisions until every hand is finished
func (t *Table) playSeat(ctx context.Context, logger *log.Logger, s Seat) error {
	p := s.Player
	for p.IsPlaying() {
		if err := ctx.Err(); err != nil {
			return err
		}

		index, err := p.PlayingIndex()
		if err != nil {
			return err
		}
		hand := p.HandAt(index)

		action, err := s.Agent.Decide(View{
			Player:    p.Name(),
			Balance:   p.Balance(),
			Hand:      hand,
			HandIndex: index,
			HandCount: p.HandCount(),
			DealerUp:  t.dealer.HandAt(0).CardAt(0),
		})
		if err != nil {
			return fmt.Errorf("decision for %s: %w", p.Name(), err)
		}

		ev, err := t.apply(p, action)
		if err != nil {
			return fmt.Errorf("%s %s: %w", p.Name(), action, err)
		}
		ev.timestamp = t.clock.Now()
		ev.Hands = p.Hands()
		t.emit(ev)

		logger.Debug("Action",
			"player", p.Name(),
			"hand", index,
			"action", action,
			"applied", ev.Applied,
			"value", ev.Hands[index].Value(),
			"busted", ev.Busted)
	}
	return nil
}

func (t *Table) apply(p *game.Player, action Action) (PlayerActionEvent, error) {
	ev := PlayerActionEvent{Player: p.Name(), Action: action, Applied: true}
	var err error

	switch action {
	case Hit:
		ev.Busted, err = p.Hit(t.src)
	case Stand:
		err = p.Stand()
	case Surrender:
		ev.Penalty, err = p.Surrender()
	case Split:
		ev.Applied, err = p.Split(t.src)
	case Double:
		ev.Busted, err = p.Double(t.src)
	default:
		err = fmt.Errorf("unknown action %d", action)
	}
	return ev, err
}

// playDealer resolves the dealer hand. The dealer only draws while at least
// one player has a hand that is neither busted nor surrendered. It returns
// -1 when the dealer did not play.
func (t *Table) playDealer(logger *log.Logger) (int, error) {
	contested := false
	for _, s := range t.seats {
		if !s.Player.HasLost() {
			contested = true
			break
		}
	}

	ev := DealerPlayEvent{Dealer: t.dealer.Name(), Played: contested}
	value := -1
	if contested {
		v, err := t.dealer.PlayAsDealer(t.src)
		if err != nil {
			return 0, fmt.Errorf("dealer: %w", err)
		}
		value = v
		ev.Value = v
	}
	ev.Hand = t.dealer.HandAt(0)
	ev.timestamp = t.clock.Now()
	t.emit(ev)

	logger.Debug("Dealer resolved", "played", contested, "value", ev.Value, "hand", ev.Hand)
	return value, nil
}
