package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd measures a bot strategy over many independent rounds
type SimulateCmd struct {
	Rounds   int    `kong:"default='100000',help='Number of rounds to simulate'"`
	Strategy string `kong:"default='basic',enum='basic,cautious,dealer,random',help='Bot strategy: basic, cautious, dealer, random'"`
	Tables   int    `kong:"default='8',help='Independent tables, each with its own shoe'"`
	Workers  int    `kong:"help='Tables played concurrently (default GOMAXPROCS)'"`
	Wager    int    `kong:"default='10',help='Flat wager per round'"`
	Decks    int    `kong:"default='6',help='Decks per shoe'"`
	Seed     *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug    bool   `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	level := log.WarnLevel
	if c.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
		Prefix:          "simulate",
	})

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
	}
	seed, _ = randutil.Seed(seed)

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	fmt.Printf("Starting simulation: %d rounds of %s on %d tables (seed: %d)\n",
		c.Rounds, c.Strategy, c.Tables, seed)

	sim := simulator.New(simulator.Config{
		Rounds:   c.Rounds,
		Tables:   c.Tables,
		Workers:  c.Workers,
		Strategy: c.Strategy,
		Wager:    c.Wager,
		Decks:    c.Decks,
		Seed:     seed,
		Logger:   logger,
	})
	result, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	printResults(os.Stdout, c.Strategy, result)
	return nil
}

func printResults(w io.Writer, strategyName string, result *simulator.Result) {
	stats := result.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS for %s ===\n", strategyName)
	fmt.Fprintf(w, "Rounds played: %d on %d tables (seed %d)\n", stats.Rounds, result.Tables, result.Seed)
	fmt.Fprintf(w, "Total time: %v\n", result.Elapsed.Round(time.Millisecond))
	if secs := result.Elapsed.Seconds(); secs > 0 {
		fmt.Fprintf(w, "Performance: %.1f rounds/sec\n", float64(stats.Rounds)/secs)
	}

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f chips/round\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.4f chips/round\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f chips\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f chips\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] chips/round\n", low, high)
	fmt.Fprintf(w, "Return on wager: %.3f%%\n", stats.ReturnOnWager()*100)
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Fprintf(w, "Best round: %+d, worst round: %+d\n", stats.BestWin, stats.WorstLoss)

	fmt.Fprintf(w, "\n=== HAND ANALYSIS ===\n")
	fmt.Fprintf(w, "Hands settled: %d (%d splits)\n", stats.Hands, stats.Splits)
	fmt.Fprintf(w, "Wins: %s\n", share(stats.Wins, stats.Hands))
	fmt.Fprintf(w, "Losses: %s\n", share(stats.Losses, stats.Hands))
	fmt.Fprintf(w, "Pushes: %s\n", share(stats.Pushes, stats.Hands))
	fmt.Fprintf(w, "Busts: %s\n", share(stats.Busts, stats.Hands))
	fmt.Fprintf(w, "Surrenders: %s\n", share(stats.Surrenders, stats.Hands))
	fmt.Fprintf(w, "Doubles: %s\n", share(stats.Doubles, stats.Hands))
	fmt.Fprintf(w, "Dealer drew in %s of rounds and busted %s of those\n",
		percent(stats.DealerPlayed, stats.Rounds), percent(stats.DealerBusts, stats.DealerPlayed))
	fmt.Fprintln(w, strings.Repeat("=", 40))
}

func share(n, total int) string {
	return fmt.Sprintf("%d (%s)", n, percent(n, total))
}

func percent(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
}
