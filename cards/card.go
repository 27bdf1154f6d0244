// Package cards provides playing cards with blackjack scores and a
// multi-deck shoe to deal them from.
package cards

import (
	"fmt"
	"strings"
)

// Rank of a card, Two through Ace.
type Rank uint8

// Suit of a card.
type Suit uint8

// Rank constants
const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suit constants
const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// Card is a single playing card. The zero value is not a valid card.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a card from rank and suit
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Valid reports whether the card has a known rank and suit
func (c Card) Valid() bool {
	return c.Rank >= Two && c.Rank <= Ace && c.Suit <= Spades
}

// Score returns the blackjack score of the card: face value for number
// cards, 10 for court cards and 11 for an Ace. Hands demote Aces to 1.
func (c Card) Score() int {
	switch {
	case c.Rank == Ace:
		return 11
	case c.Rank >= Ten:
		return 10
	default:
		return int(c.Rank)
	}
}

// String returns the short form, e.g. "As" or "Td".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string(rankChars[c.Rank-Two]) + string(suitChars[c.Suit])
}

// ParseCard parses a string like "As" or "10h" into a Card
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "10") {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}

	r := strings.IndexByte(rankChars, upper(s[0]))
	if r < 0 {
		return Card{}, fmt.Errorf("invalid rank: %c", s[0])
	}
	suit := strings.IndexByte(suitChars, lower(s[1]))
	if suit < 0 {
		return Card{}, fmt.Errorf("invalid suit: %c", s[1])
	}

	return NewCard(Two+Rank(r), Suit(suit)), nil
}

// MustParseCards parses each string with ParseCard and panics on error.
// Intended for tests and fixed card sequences.
func MustParseCards(strs ...string) []Card {
	out := make([]Card, 0, len(strs))
	for _, s := range strs {
		c, err := ParseCard(s)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}

// Join formats cards as a comma separated list
func Join(cs []Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
