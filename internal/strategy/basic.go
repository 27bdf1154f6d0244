package strategy

import (
	"slices"

	"github.com/lox/blackjack/internal/table"
)

// Basic plays a simplified basic strategy for a dealer standing on all 17s
type Basic struct{ flat }

// NewBasic creates a basic-strategy agent betting wager each round
func NewBasic(wager int) *Basic { return &Basic{flat(wager)} }

func (Basic) Decide(v table.View) (table.Action, error) {
	h := v.Hand
	up := v.DealerUp.Score()
	value := h.Value()
	firstTwo := h.CardCount() == 2

	if firstTwo && v.CanSplit() {
		if a, ok := pairAction(h.CardAt(0).Score(), up); ok {
			return a, nil
		}
	}

	if h.IsSoft() {
		switch {
		case value >= 19:
			return table.Stand, nil
		case value == 18:
			if up >= 9 {
				return table.Hit, nil
			}
			if firstTwo && slices.Contains([]int{3, 4, 5, 6}, up) {
				return table.Double, nil
			}
			return table.Stand, nil
		case firstTwo && value >= 15 && slices.Contains([]int{4, 5, 6}, up):
			return table.Double, nil
		default:
			return table.Hit, nil
		}
	}

	if firstTwo && v.HandCount == 1 && value == 16 && up >= 10 {
		return table.Surrender, nil
	}

	switch {
	case value >= 17:
		return table.Stand, nil
	case value >= 13:
		if up <= 6 {
			return table.Stand, nil
		}
		return table.Hit, nil
	case value == 12:
		if slices.Contains([]int{4, 5, 6}, up) {
			return table.Stand, nil
		}
		return table.Hit, nil
	case value == 11 && firstTwo:
		return table.Double, nil
	case value == 10 && firstTwo && up <= 9:
		return table.Double, nil
	default:
		return table.Hit, nil
	}
}

// pairAction returns the split decision for a pair of the given card score
func pairAction(score, up int) (table.Action, bool) {
	switch score {
	case 11, 8:
		return table.Split, true
	case 9:
		if up != 7 && up < 10 {
			return table.Split, true
		}
	case 7, 2, 3:
		if up <= 7 {
			return table.Split, true
		}
	case 6:
		if up <= 6 {
			return table.Split, true
		}
	}
	return 0, false
}
