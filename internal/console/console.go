// Package console plays a seat from a terminal: it prompts for wagers and
// commands and prints table events as they happen.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/table"
)

const helpText = "Commands: hit, stand, surrender, split, double, quit"

// Agent reads decisions from a line-oriented input
type Agent struct {
	in     *bufio.Scanner
	out    io.Writer
	logger *log.Logger
}

// New creates a console agent reading from in and prompting on out
func New(in io.Reader, out io.Writer, logger *log.Logger) *Agent {
	if logger == nil {
		logger = log.Default()
	}
	return &Agent{
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger.WithPrefix("console"),
	}
}

// readLine prompts and returns the trimmed reply. End of input counts as
// quitting.
func (a *Agent) readLine(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", table.ErrQuit
	}
	return strings.TrimSpace(a.in.Text()), nil
}

// Wager prompts until a whole number within the table limits is entered
func (a *Agent) Wager(req table.WagerRequest) (int, error) {
	prompt := fmt.Sprintf("%s: Enter wager for this hand (%d-%d, balance %d): ",
		req.Player, req.MinWager, req.MaxWager, req.Balance)
	for {
		line, err := a.readLine(prompt)
		if err != nil {
			return 0, err
		}
		if strings.EqualFold(line, "quit") {
			return 0, table.ErrQuit
		}

		wager, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(a.out, "Expected integer input")
			continue
		}
		if wager < req.MinWager || wager > req.MaxWager {
			fmt.Fprintf(a.out, "Wager must be between %d and %d\n", req.MinWager, req.MaxWager)
			continue
		}
		a.logger.Debug("Wager entered", "player", req.Player, "wager", wager)
		return wager, nil
	}
}

// Decide prompts until a known command is entered. An ineligible split is
// passed through so the table can report it.
func (a *Agent) Decide(v table.View) (table.Action, error) {
	prompt := "> "
	if v.HandCount > 1 {
		prompt = fmt.Sprintf("hand #%d> ", v.HandIndex+1)
	}
	for {
		line, err := a.readLine(prompt)
		if err != nil {
			return 0, err
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "help":
			fmt.Fprintln(a.out, helpText)
			continue
		case "quit":
			return 0, table.ErrQuit
		}

		action, err := table.ParseAction(line)
		if err != nil {
			fmt.Fprintln(a.out, "Unknown command. Type 'help' for a list of available choices.")
			continue
		}
		return action, nil
	}
}

// Confirm asks a yes/no question defaulting to yes. End of input is a no.
func (a *Agent) Confirm(question string) bool {
	line, err := a.readLine(question + " [Y/n]: ")
	if err != nil {
		return false
	}
	switch strings.ToLower(line) {
	case "n", "no":
		return false
	}
	return true
}

// Printer returns an event handler that writes each table event to out
func Printer(out io.Writer) table.EventHandler {
	return func(e table.Event) {
		if s := display.Event(e); s != "" {
			fmt.Fprintln(out, s)
		}
	}
}

var _ table.Agent = (*Agent)(nil)
