package cards

import (
	rand "math/rand/v2"
)

// DeckSize is the number of cards in one standard deck
const DeckSize = 52

// Shoe holds one or more shuffled 52-card decks
type Shoe struct {
	cards []Card
	next  int
	rng   *rand.Rand
}

// NewShoe creates a shuffled shoe of the given number of decks with an
// explicit RNG. A deck count below one is treated as one.
func NewShoe(rng *rand.Rand, decks int) *Shoe {
	if rng == nil {
		panic("rng is required for shoe creation")
	}
	if decks < 1 {
		decks = 1
	}

	s := &Shoe{
		cards: make([]Card, 0, decks*DeckSize),
		rng:   rng,
	}
	for range decks {
		for suit := Clubs; suit <= Spades; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				s.cards = append(s.cards, NewCard(rank, suit))
			}
		}
	}

	s.Shuffle()
	return s
}

// Shuffle shuffles every card back into the shoe using Fisher-Yates
func (s *Shoe) Shuffle() {
	s.next = 0
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// NextCard deals one card. When the shoe runs dry it is reshuffled and
// dealing continues, so the caller never sees an exhausted shoe.
func (s *Shoe) NextCard() Card {
	if s.next >= len(s.cards) {
		s.Shuffle()
	}
	c := s.cards[s.next]
	s.next++
	return c
}

// Remaining returns the number of cards left before a reshuffle
func (s *Shoe) Remaining() int {
	return len(s.cards) - s.next
}

// Size returns the total number of cards in the shoe
func (s *Shoe) Size() int {
	return len(s.cards)
}

// Stack is a fixed card sequence dealt in order, for tests and replays.
// Dealing past the end panics.
type Stack struct {
	cards []Card
}

// NewStack returns a Stack that deals cards in the given order
func NewStack(cs ...Card) *Stack {
	return &Stack{cards: cs}
}

// NextCard deals the next card of the stack
func (s *Stack) NextCard() Card {
	if len(s.cards) == 0 {
		panic("cards: stack exhausted")
	}
	c := s.cards[0]
	s.cards = s.cards[1:]
	return c
}

// Remaining returns the number of undealt cards
func (s *Stack) Remaining() int {
	return len(s.cards)
}
