package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/cards"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/console"
	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/roundid"
	"github.com/lox/blackjack/internal/strategy"
	"github.com/lox/blackjack/internal/table"
)

// Rounds played by a table without a console seat when --rounds is unset
const defaultBotRounds = 10

// PlayCmd runs an interactive table
type PlayCmd struct {
	Config string `kong:"default='table.hcl',help='Table configuration file'"`
	Seed   *int64 `kong:"help='Deterministic shoe seed (overrides the config file)'"`
	Decks  int    `kong:"help='Decks in the shoe (overrides the config file)'"`
	Rounds int    `kong:"help='Stop after this many rounds; 0 asks after every round'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	cfg, err := loadConfig(c.Config, c.Seed, c.Decks)
	if err != nil {
		return err
	}

	logger, cleanup, err := setupLogger(cfg.Table.LogLevel, cfg.Table.LogFile, c.Debug)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Println(display.TitleStyle.Render(" ♠ ♥ Blackjack! ♦ ♣ "))
	fmt.Println()

	s, err := newSession(cfg, os.Stdin, os.Stdout, logger, quartz.NewReal())
	if err != nil {
		return err
	}
	return s.run(context.Background(), c.Rounds)
}

// loadConfig reads the table file and applies command-line overrides
func loadConfig(path string, seed *int64, decks int) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if seed != nil {
		cfg.Table.Seed = *seed
	}
	if decks > 0 {
		cfg.Table.Decks = decks
	}
	if err := cfg.Validate(strategy.Known); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// session is one sitting at the table: the seats, the shoe and the console
type session struct {
	cfg     *config.Config
	table   *table.Table
	players []*game.Player
	console *console.Agent
	out     io.Writer
	logger  *log.Logger
}

func newSession(cfg *config.Config, in io.Reader, out io.Writer, logger *log.Logger, clock quartz.Clock) (*session, error) {
	seed, fixed := randutil.Seed(cfg.Table.Seed)
	logger.Info("Shuffling shoe", "seed", seed, "fixed", fixed, "decks", cfg.Table.Decks)
	rng := randutil.New(seed)

	s := &session{
		cfg:     cfg,
		console: console.New(in, out, logger),
		out:     out,
		logger:  logger,
	}
	s.table = table.New(cards.NewShoe(rng, cfg.Table.Decks), logger,
		table.WithLimits(cfg.Table.MinWager, cfg.Table.MaxWager),
		table.WithDealer(game.NewDealer(cfg.Table.Dealer, game.WithClock(clock))),
		table.WithClock(clock),
		table.WithRoundIDs(roundid.NewGenerator(clock, randutil.New(randutil.Derive(seed, len(cfg.Players)))).Next),
		table.WithEventHandler(console.Printer(out)),
	)

	for i, pc := range cfg.Players {
		var agent table.Agent = s.console
		if pc.Strategy != config.StrategyHuman {
			bot, err := strategy.New(pc.Strategy, pc.Wager, randutil.New(randutil.Derive(seed, i)))
			if err != nil {
				return nil, fmt.Errorf("player %s: %w", pc.Name, err)
			}
			agent = bot
		}
		p := game.NewPlayer(pc.Name, pc.Balance, game.WithClock(clock))
		s.table.AddSeat(p, agent)
		s.players = append(s.players, p)
	}
	return s, nil
}

// run plays rounds until the limit is reached, the console player declines
// another round or quits
func (s *session) run(ctx context.Context, rounds int) error {
	interactive := s.cfg.HasHuman()
	if !interactive && rounds == 0 {
		rounds = defaultBotRounds
	}

	for {
		if _, err := s.table.PlayRound(ctx); err != nil {
			if !errors.Is(err, table.ErrQuit) {
				return err
			}
			s.logger.Debug("Left the table mid-round", "round", s.table.Round())
			break
		}
		if rounds > 0 && s.table.Round() >= rounds {
			break
		}
		if interactive && !s.console.Confirm("Play again?") {
			break
		}
		fmt.Fprintln(s.out)
	}

	s.printSummary()
	return nil
}

func (s *session) printSummary() {
	fmt.Fprintln(s.out)
	for _, p := range s.players {
		fmt.Fprintln(s.out, display.Ledger(p.Name(), p.Ledger()))
		fmt.Fprintf(s.out, "Balance %d, standing %s\n\n", p.Balance(), display.Delta(p.Standing()))
	}
}
