package display

import (
	"testing"
	"time"

	"github.com/lox/blackjack/cards"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/table"
	"github.com/stretchr/testify/assert"
)

func hand(strs ...string) *game.Hand {
	src := cards.NewStack(cards.MustParseCards(strs...)...)
	h := game.NewHand(20, src)
	for src.Remaining() > 0 {
		h.Hit(src)
	}
	return h
}

func TestHand(t *testing.T) {
	t.Parallel()
	out := Hand("Alice", 0, hand("As", "6d"))
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "hand #1: 17 points")
	assert.Contains(t, out, "soft")
	assert.Contains(t, out, "wager 20")
	assert.Contains(t, out, "A♠")
	assert.Contains(t, out, "6♦")

	out = Hand("Bob", 1, hand("Ks", "Qd", "5c"))
	assert.Contains(t, out, "hand #2: 25 points")
	assert.Contains(t, out, "bust")
}

func TestHands(t *testing.T) {
	t.Parallel()
	out := Hands("Alice", []*game.Hand{hand("8s", "3d"), hand("8h", "Tc")})
	assert.Contains(t, out, "hand #1: 11 points")
	assert.Contains(t, out, "hand #2: 18 points")
}

func TestCardInvalid(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "??", Card(cards.Card{}))
}

func TestDelta(t *testing.T) {
	t.Parallel()
	assert.Contains(t, Delta(50), "+50")
	assert.Contains(t, Delta(-20), "-20")
	assert.Contains(t, Delta(0), "0")
}

func TestEvent(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Can't split this hand", Event(table.PlayerActionEvent{Player: "Alice", Action: table.Split}))

	out := Event(table.PlayerActionEvent{Player: "Alice", Action: table.Surrender, Applied: true, Penalty: 20})
	assert.Contains(t, out, "surrender")
	assert.Contains(t, out, "forfeits 20")

	out = Event(table.PlayerActionEvent{Player: "Alice", Action: table.Hit, Applied: true, Busted: true})
	assert.Contains(t, out, "bust")

	out = Event(table.RoundStartEvent{
		Round:    3,
		DealerUp: cards.MustParseCards("Kd")[0],
		Seats:    []table.SeatHands{{Player: "Alice", Wager: 20, Hands: []*game.Hand{hand("Th", "9c")}}},
	})
	assert.Contains(t, out, "Round 3")
	assert.Contains(t, out, "Dealer shows")
	assert.Contains(t, out, "hand #1: 19 points")

	out = Event(table.PlayerActionEvent{Player: "Alice", Action: table.Hit, Applied: true, Hands: []*game.Hand{hand("Th", "9c", "2d")}})
	assert.Contains(t, out, "21 points")

	assert.Contains(t, Event(table.DealerPlayEvent{Dealer: "Dealer"}), "does not draw")
	assert.Contains(t, Event(table.DealerPlayEvent{Dealer: "Dealer", Played: true, Hand: hand("Th", "7c")}), "17 points")

	out = Event(table.SettlementEvent{
		Player:   "Alice",
		Standing: 30,
		Settlement: game.Settlement{
			Results:    []game.HandResult{{Outcome: game.Win, Delta: 50}},
			RoundDelta: 50,
			Balance:    1050,
		},
	})
	assert.Contains(t, out, "win")
	assert.Contains(t, out, "1050/30")
}

func TestLedger(t *testing.T) {
	t.Parallel()
	assert.Contains(t, Ledger("Alice", nil), "no rounds played")

	at := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	out := Ledger("Alice", []game.RoundEntry{{Round: 1, Delta: -60, Balance: 940, At: at}})
	assert.Contains(t, out, "-60")
	assert.Contains(t, out, "940")
	assert.Contains(t, out, "15:04:05")
}
