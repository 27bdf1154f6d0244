// Package display renders hands, events and ledgers as styled text.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/blackjack/cards"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/table"
)

var (
	TitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(0, 1).
		Bold(true)

	nameStyle  = lipgloss.NewStyle().Bold(true)
	redStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0245E"))
	blackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E6E6E6"))
	winStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#17BF63")).Bold(true)
	lossStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0245E")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8899A6"))
)

var suitSymbols = map[cards.Suit]string{
	cards.Clubs:    "♣",
	cards.Diamonds: "♦",
	cards.Hearts:   "♥",
	cards.Spades:   "♠",
}

// Card renders a card as rank and suit symbol, red for hearts and diamonds
func Card(c cards.Card) string {
	if !c.Valid() {
		return "??"
	}
	text := c.String()[:1] + suitSymbols[c.Suit]
	if c.Suit == cards.Hearts || c.Suit == cards.Diamonds {
		return redStyle.Render(text)
	}
	return blackStyle.Render(text)
}

// Hand renders one hand of a player, e.g. "Alice's hand #1: 19 points"
// followed by the cards on the next line
func Hand(player string, index int, h *game.Hand) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s's hand #%d: %d points", nameStyle.Render(player), index+1, h.Value())

	var notes []string
	if h.IsSoft() {
		notes = append(notes, "soft")
	}
	if h.Busted() {
		notes = append(notes, "bust")
	}
	if h.Surrendered() {
		notes = append(notes, "surrendered")
	}
	if h.Wager() > 0 {
		notes = append(notes, fmt.Sprintf("wager %d", h.Wager()))
	}
	if len(notes) > 0 {
		b.WriteString(" " + mutedStyle.Render("("+strings.Join(notes, ", ")+")"))
	}
	b.WriteString("\n")

	parts := make([]string, h.CardCount())
	for i := range h.CardCount() {
		parts[i] = Card(h.CardAt(i))
	}
	b.WriteString(strings.Join(parts, ", "))
	return b.String()
}

// Hands renders every hand of a player, one block per hand
func Hands(player string, hands []*game.Hand) string {
	blocks := make([]string, len(hands))
	for i, h := range hands {
		blocks[i] = Hand(player, i, h)
	}
	return strings.Join(blocks, "\n")
}

// Delta renders a signed amount, green for gains and red for losses
func Delta(amount int) string {
	switch {
	case amount > 0:
		return winStyle.Render(fmt.Sprintf("+%d", amount))
	case amount < 0:
		return lossStyle.Render(fmt.Sprintf("%d", amount))
	default:
		return mutedStyle.Render("0")
	}
}

// Outcome renders a settled hand outcome
func Outcome(o game.Outcome) string {
	switch o {
	case game.Win:
		return winStyle.Render(o.String())
	case game.Loss:
		return lossStyle.Render(o.String())
	default:
		return mutedStyle.Render(o.String())
	}
}

// Event renders a table event for the console. Events with nothing to show
// render as an empty string.
func Event(e table.Event) string {
	switch ev := e.(type) {
	case table.RoundStartEvent:
		blocks := []string{
			TitleStyle.Render(fmt.Sprintf(" Round %d ", ev.Round)),
			"Dealer shows " + Card(ev.DealerUp),
		}
		for _, s := range ev.Seats {
			blocks = append(blocks, Hands(s.Player, s.Hands))
		}
		return strings.Join(blocks, "\n")

	case table.PlayerActionEvent:
		if !ev.Applied {
			return "Can't " + ev.Action.String() + " this hand"
		}
		line := fmt.Sprintf("%s %s", nameStyle.Render(ev.Player), ev.Action)
		if ev.Penalty > 0 {
			line += fmt.Sprintf(", forfeits %d", ev.Penalty)
		}
		if ev.Busted {
			line += ", " + lossStyle.Render("bust")
		}
		if len(ev.Hands) > 0 {
			line += "\n" + Hands(ev.Player, ev.Hands)
		}
		return line

	case table.DealerPlayEvent:
		if !ev.Played {
			return "Every player has lost; the dealer does not draw"
		}
		return "Dealer's turn\n" + Hand(ev.Dealer, 0, ev.Hand)

	case table.SettlementEvent:
		var b strings.Builder
		for i, r := range ev.Settlement.Results {
			fmt.Fprintf(&b, "%s hand #%d: %s %s\n", nameStyle.Render(ev.Player), i+1, Outcome(r.Outcome), Delta(r.Delta))
		}
		fmt.Fprintf(&b, "%s's balance, standing: %d/%d (round %s)",
			nameStyle.Render(ev.Player), ev.Settlement.Balance, ev.Standing, Delta(ev.Settlement.RoundDelta))
		return b.String()
	}
	return ""
}

// Ledger renders a player's round history as a table
func Ledger(player string, entries []game.RoundEntry) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(" "+player+" ") + "\n")
	if len(entries) == 0 {
		b.WriteString(mutedStyle.Render("no rounds played"))
		return b.String()
	}
	fmt.Fprintf(&b, "%-6s %8s %8s  %s\n", "round", "delta", "balance", "time")
	for _, e := range entries {
		fmt.Fprintf(&b, "%-6d %8d %8d  %s\n", e.Round, e.Delta, e.Balance, e.At.Format("15:04:05"))
	}
	return strings.TrimRight(b.String(), "\n")
}
