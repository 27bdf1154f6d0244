package game

import (
	"slices"

	"github.com/coder/quartz"
)

// Player owns the hands of one seat for the current round, plus a balance
// and ledger that outlive rounds.
type Player struct {
	name   string
	dealer bool

	hands  []*Hand
	cursor int // Index of the playing hand; len(hands) when none is left

	balance    int
	standing   int // Net change since the last ResetStanding
	roundDelta int // Net change of the round in progress
	round      int
	ledger     []RoundEntry

	clock quartz.Clock
}

// PlayerOption configures a Player during creation.
type PlayerOption func(*Player)

// WithClock sets the clock used to timestamp ledger entries
func WithClock(clock quartz.Clock) PlayerOption {
	return func(p *Player) {
		p.clock = clock
	}
}

// NewPlayer creates a player with a starting balance
func NewPlayer(name string, balance int, opts ...PlayerOption) *Player {
	p := &Player{
		name:    name,
		balance: balance,
		hands:   make([]*Hand, 0, 2),
		clock:   quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewDealer creates the house player. The dealer never accrues a balance.
func NewDealer(name string, opts ...PlayerOption) *Player {
	p := NewPlayer(name, 0, opts...)
	p.dealer = true
	return p
}

func (p *Player) win(amount int) {
	p.balance += amount
	p.standing += amount
	p.roundDelta += amount
}

func (p *Player) lose(amount int) {
	p.win(-amount)
}

// advance moves the cursor past finished hands
func (p *Player) advance() {
	for p.cursor < len(p.hands) && p.hands[p.cursor].Finished() {
		p.cursor++
	}
}

// PlayingIndex returns the index of the playing hand: the first hand in
// creation order that is not finished.
func (p *Player) PlayingIndex() (int, error) {
	if len(p.hands) == 0 {
		return 0, ErrNoHands
	}
	p.advance()
	if p.cursor >= len(p.hands) {
		return 0, ErrNoPlayingHand
	}
	return p.cursor, nil
}

// PlayingHand returns the hand at PlayingIndex
func (p *Player) PlayingHand() (*Hand, error) {
	i, err := p.PlayingIndex()
	if err != nil {
		return nil, err
	}
	return p.hands[i], nil
}

// Bet deals a new hand carrying wager
func (p *Player) Bet(wager int, src CardSource) {
	p.hands = append(p.hands, NewHand(wager, src))
	p.advance()
}

// Hit draws a card to the playing hand and reports whether it busted. A
// busted hand is finished.
func (p *Player) Hit(src CardSource) (bool, error) {
	h, err := p.PlayingHand()
	if err != nil {
		return false, err
	}
	busted := h.Hit(src)
	if busted {
		h.Finish()
		p.advance()
	}
	return busted, nil
}

// Stand finishes the playing hand
func (p *Player) Stand() error {
	h, err := p.PlayingHand()
	if err != nil {
		return err
	}
	h.Finish()
	p.advance()
	return nil
}

// Surrender gives up the playing hand, immediately losing half its wager
// rounded toward zero, and finishes it. It returns the amount lost.
func (p *Player) Surrender() (int, error) {
	h, err := p.PlayingHand()
	if err != nil {
		return 0, err
	}
	h.Surrender()
	penalty := h.Wager() / 2
	p.lose(penalty)
	h.Finish()
	p.advance()
	return penalty, nil
}

// Split splits the playing hand and appends the new hand. It returns false
// without changing anything when the hand cannot be split.
func (p *Player) Split(src CardSource) (bool, error) {
	h, err := p.PlayingHand()
	if err != nil {
		return false, err
	}
	nh := h.Split(src)
	if nh == nil {
		return false, nil
	}
	p.hands = append(p.hands, nh)
	return true, nil
}

// Double doubles down on the playing hand and reports whether the single
// drawn card busted it. The hand is finished either way.
func (p *Player) Double(src CardSource) (bool, error) {
	h, err := p.PlayingHand()
	if err != nil {
		return false, err
	}
	busted := h.Double(src)
	p.advance()
	return busted, nil
}

// HandIsSoft reports whether the playing hand is soft
func (p *Player) HandIsSoft() (bool, error) {
	h, err := p.PlayingHand()
	if err != nil {
		return false, err
	}
	return h.IsSoft(), nil
}

// IsPlaying reports whether any hand is still waiting for a decision
func (p *Player) IsPlaying() bool {
	p.advance()
	return p.cursor < len(p.hands)
}

// HasBusted reports whether any hand busted
func (p *Player) HasBusted() bool {
	return slices.ContainsFunc(p.hands, (*Hand).Busted)
}

// HasLost reports whether the player holds hands and every one of them is
// surrendered or busted
func (p *Player) HasLost() bool {
	if len(p.hands) == 0 {
		return false
	}
	for _, h := range p.hands {
		if !h.Lost() {
			return false
		}
	}
	return true
}

// FirstHandValue returns the value of the original hand, or 0 when any hand
// busted or no hand was dealt
func (p *Player) FirstHandValue() int {
	if len(p.hands) == 0 || p.HasBusted() {
		return 0
	}
	return p.hands[0].Value()
}

// PlayAsDealer draws to the dealer hand until it reaches 17 or busts. It
// returns the final total, or 0 if the dealer busted.
func (p *Player) PlayAsDealer(src CardSource) (int, error) {
	if !p.dealer {
		return 0, ErrNotDealer
	}
	if len(p.hands) != 1 {
		return 0, ErrDealerHand
	}
	h := p.hands[0]
	for h.Value() < DealerStandsOn {
		h.Hit(src)
	}
	h.Finish()
	p.advance()
	return p.FirstHandValue(), nil
}

// GameOver settles every hand against the dealer's final value, applies the
// net change to balance and standing once, records the round in the ledger
// and clears all hands. For the dealer it only clears the hands.
func (p *Player) GameOver(dealerValue int) Settlement {
	if p.dealer {
		p.clearHands()
		return Settlement{}
	}

	s := Settlement{Results: make([]HandResult, 0, len(p.hands))}
	for _, h := range p.hands {
		res := settle(h, dealerValue)
		s.Delta += res.Delta
		s.Results = append(s.Results, res)
	}
	p.win(s.Delta)

	p.round++
	s.Round = p.round
	s.RoundDelta = p.roundDelta
	s.Balance = p.balance
	p.ledger = append(p.ledger, RoundEntry{
		Round:   p.round,
		Delta:   p.roundDelta,
		Balance: p.balance,
		At:      p.clock.Now(),
	})

	p.roundDelta = 0
	p.clearHands()
	return s
}

func (p *Player) clearHands() {
	clear(p.hands)
	p.hands = p.hands[:0]
	p.cursor = 0
}

// ResetStanding zeroes the standing, e.g. at the start of a session
func (p *Player) ResetStanding() {
	p.standing = 0
}

// Name returns the player's name
func (p *Player) Name() string { return p.name }

// IsDealer reports whether the player is the house
func (p *Player) IsDealer() bool { return p.dealer }

// Balance returns the current balance
func (p *Player) Balance() int { return p.balance }

// Standing returns the net change since the session started or the last
// ResetStanding
func (p *Player) Standing() int { return p.standing }

// RoundDelta returns the net change of the round in progress
func (p *Player) RoundDelta() int { return p.roundDelta }

// Rounds returns the number of rounds settled
func (p *Player) Rounds() int { return p.round }

// HandCount returns the number of hands held this round
func (p *Player) HandCount() int { return len(p.hands) }

// HandAt returns a snapshot of the hand at index i. Changes to the snapshot
// do not affect the player.
func (p *Player) HandAt(i int) *Hand { return p.hands[i].clone() }

// Hands returns snapshots of all hands in creation order
func (p *Player) Hands() []*Hand {
	out := make([]*Hand, len(p.hands))
	for i, h := range p.hands {
		out[i] = h.clone()
	}
	return out
}

// Ledger returns a copy of the settled rounds, oldest first
func (p *Player) Ledger() []RoundEntry { return slices.Clone(p.ledger) }
