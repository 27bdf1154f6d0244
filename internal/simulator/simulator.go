// Package simulator plays many rounds of a bot strategy on independent
// tables and aggregates the results.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/cards"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/lox/blackjack/internal/strategy"
	"github.com/lox/blackjack/internal/table"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds   int    // Total rounds, spread across tables
	Tables   int    // Independent tables, each with its own shoe
	Workers  int    // Tables played concurrently; defaults to GOMAXPROCS
	Strategy string // Registered strategy name
	Wager    int
	MinWager int
	MaxWager int
	Decks    int
	Balance  int
	Seed     int64
	Logger   *log.Logger
	Clock    quartz.Clock
}

// Result is the outcome of a simulation run
type Result struct {
	Stats   *statistics.Statistics
	Tables  int
	Seed    int64
	Elapsed time.Duration
}

// Simulator runs blackjack simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Tables <= 0 {
		config.Tables = 1
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Decks <= 0 {
		config.Decks = 6
	}
	if config.MinWager <= 0 {
		config.MinWager = 1
	}
	if config.MaxWager < config.MinWager {
		config.MaxWager = max(500, config.MinWager)
	}
	if config.Wager <= 0 {
		config.Wager = config.MinWager
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	return &Simulator{config: config}
}

// Run plays every table and returns the merged statistics. Tables are
// merged in table order, so a fixed seed always produces the same result.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	cfg := s.config
	if cfg.Rounds <= 0 {
		return nil, errors.New("rounds must be positive")
	}
	if !strategy.Known(cfg.Strategy) {
		return nil, fmt.Errorf("unknown strategy %q (want one of %v)", cfg.Strategy, strategy.Names())
	}

	tables := min(cfg.Tables, cfg.Rounds)
	perTable := make([]*statistics.Statistics, tables)
	start := cfg.Clock.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range tables {
		rounds := cfg.Rounds / tables
		if i < cfg.Rounds%tables {
			rounds++
		}
		seed := randutil.Derive(cfg.Seed, i)
		g.Go(func() error {
			stats, err := s.playTable(ctx, i, seed, rounds)
			if err != nil {
				return fmt.Errorf("table %d (seed %d): %w", i, seed, err)
			}
			perTable[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, ts := range perTable {
		stats.Merge(ts)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	return &Result{
		Stats:   stats,
		Tables:  tables,
		Seed:    cfg.Seed,
		Elapsed: cfg.Clock.Since(start),
	}, nil
}

// playTable runs rounds on one table owned entirely by the calling goroutine
func (s *Simulator) playTable(ctx context.Context, index int, seed int64, rounds int) (*statistics.Statistics, error) {
	cfg := s.config
	logger := cfg.Logger.With("table", index)
	rng := randutil.New(seed)

	agent, err := strategy.New(cfg.Strategy, cfg.Wager, rng)
	if err != nil {
		return nil, err
	}

	var counts actionCounts
	tbl := table.New(cards.NewShoe(rng, cfg.Decks), logger,
		table.WithLimits(cfg.MinWager, cfg.MaxWager),
		table.WithClock(cfg.Clock),
		table.WithEventHandler(counts.observe),
	)
	player := game.NewPlayer("Bot", cfg.Balance, game.WithClock(cfg.Clock))
	tbl.AddSeat(player, agent)

	stats := &statistics.Statistics{}
	for range rounds {
		counts = actionCounts{}
		report, err := tbl.PlayRound(ctx)
		if err != nil {
			return nil, err
		}
		r := roundResult(report, counts)
		r.Seed = seed
		stats.Add(r)
	}

	logger.Debug("Table finished",
		"rounds", rounds,
		"mean", fmt.Sprintf("%.3f", stats.Mean()),
		"balance", player.Balance())
	return stats, nil
}

// actionCounts tallies applied decisions that the settlement cannot reveal
type actionCounts struct {
	doubles int
	splits  int
}

func (c *actionCounts) observe(e table.Event) {
	ev, ok := e.(table.PlayerActionEvent)
	if !ok || !ev.Applied {
		return
	}
	switch ev.Action {
	case table.Double:
		c.doubles++
	case table.Split:
		c.splits++
	}
}

func roundResult(report *table.RoundReport, counts actionCounts) statistics.RoundResult {
	settlement := report.Results[0].Settlement
	r := statistics.RoundResult{
		Delta:        settlement.RoundDelta,
		Hands:        len(settlement.Results),
		Doubles:      counts.doubles,
		Splits:       counts.splits,
		DealerPlayed: report.DealerPlayed,
		DealerBusted: report.DealerPlayed && report.DealerValue == 0,
	}
	for _, hr := range settlement.Results {
		r.Wagered += hr.Hand.Wager()
		switch hr.Outcome {
		case game.Win:
			r.Wins++
		case game.Loss:
			r.Losses++
		case game.Push:
			r.Pushes++
		}
		if hr.Hand.Busted() {
			r.Busts++
		}
		if hr.Hand.Surrendered() {
			r.Surrenders++
		}
	}
	return r
}
