// Package strategy provides bot agents that play a seat without a human.
package strategy

import (
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/lox/blackjack/internal/table"
)

// Factory builds an agent betting a flat wager
type Factory func(wager int, rng *rand.Rand) table.Agent

var registry = map[string]Factory{
	"basic":    func(w int, _ *rand.Rand) table.Agent { return NewBasic(w) },
	"cautious": func(w int, _ *rand.Rand) table.Agent { return NewCautious(w) },
	"dealer":   func(w int, _ *rand.Rand) table.Agent { return NewDealerMimic(w) },
	"random":   func(w int, rng *rand.Rand) table.Agent { return NewRandom(w, rng) },
}

// Names returns the registered strategy names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Known reports whether a strategy is registered under name
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

// New builds the named strategy
func New(name string, wager int, rng *rand.Rand) (table.Agent, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (want one of %v)", name, Names())
	}
	return f(wager, rng), nil
}

// flat bets a fixed amount, clamped to the table limits
type flat int

func (f flat) Wager(req table.WagerRequest) (int, error) {
	return min(max(int(f), req.MinWager), req.MaxWager), nil
}

// DealerMimic plays like the house: hit below 17, otherwise stand
type DealerMimic struct{ flat }

// NewDealerMimic creates a dealer-mimic agent betting wager each round
func NewDealerMimic(wager int) *DealerMimic { return &DealerMimic{flat(wager)} }

func (DealerMimic) Decide(v table.View) (table.Action, error) {
	if v.Hand.Value() < 17 {
		return table.Hit, nil
	}
	return table.Stand, nil
}

// Cautious never risks a bust: it hits only while no single card can break
// the hand
type Cautious struct{ flat }

// NewCautious creates a cautious agent betting wager each round
func NewCautious(wager int) *Cautious { return &Cautious{flat(wager)} }

func (Cautious) Decide(v table.View) (table.Action, error) {
	if v.Hand.IsSoft() || v.Hand.Value() <= 11 {
		return table.Hit, nil
	}
	return table.Stand, nil
}

// Random picks uniformly among the actions that would be accepted
type Random struct {
	flat
	rng *rand.Rand
}

// NewRandom creates a random agent betting wager each round
func NewRandom(wager int, rng *rand.Rand) *Random {
	if rng == nil {
		panic("rng is required for the random strategy")
	}
	return &Random{flat: flat(wager), rng: rng}
}

func (r *Random) Decide(v table.View) (table.Action, error) {
	actions := []table.Action{table.Hit, table.Stand, table.Double}
	if v.Hand.CardCount() == 2 {
		actions = append(actions, table.Surrender)
	}
	if v.CanSplit() {
		actions = append(actions, table.Split)
	}
	return actions[r.rng.IntN(len(actions))], nil
}

var (
	_ table.Agent = (*DealerMimic)(nil)
	_ table.Agent = (*Cautious)(nil)
	_ table.Agent = (*Random)(nil)
	_ table.Agent = (*Basic)(nil)
)
