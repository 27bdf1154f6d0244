package simulator

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.New(&bytes.Buffer{})
}

func TestRunProducesValidStatistics(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"basic", "cautious", "dealer", "random"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			sim := New(Config{
				Rounds:   400,
				Tables:   4,
				Workers:  2,
				Strategy: name,
				Wager:    10,
				Decks:    2,
				Balance:  1000,
				Seed:     42,
				Logger:   quietLogger(),
				Clock:    quartz.NewMock(t),
			})

			result, err := sim.Run(context.Background())
			require.NoError(t, err)
			require.NoError(t, result.Stats.Validate())

			assert.Equal(t, 400, result.Stats.Rounds)
			assert.Equal(t, 4, result.Tables)
			assert.GreaterOrEqual(t, result.Stats.Hands, 400)
			assert.GreaterOrEqual(t, result.Stats.Wagered, 400*10)
			assert.Zero(t, result.Elapsed)
		})
	}
}

func TestRunIsDeterministic(t *testing.T) {
	t.Parallel()
	cfg := Config{
		Rounds:   300,
		Tables:   3,
		Workers:  3,
		Strategy: "random",
		Wager:    10,
		Balance:  1000,
		Seed:     7,
		Logger:   quietLogger(),
	}

	first, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	second, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Stats.Values, second.Stats.Values)
	assert.Equal(t, first.Stats.Wins, second.Stats.Wins)

	cfg.Seed = 8
	third, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.Stats.Values, third.Stats.Values)
}

func TestRunSpreadsRemainderRounds(t *testing.T) {
	t.Parallel()
	result, err := New(Config{
		Rounds:   10,
		Tables:   4,
		Strategy: "dealer",
		Logger:   quietLogger(),
	}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, result.Stats.Rounds)
	assert.Len(t, result.Stats.Values, 10)
}

func TestRunNeverUsesMoreTablesThanRounds(t *testing.T) {
	t.Parallel()
	result, err := New(Config{
		Rounds:   2,
		Tables:   8,
		Strategy: "basic",
		Logger:   quietLogger(),
	}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Tables)
}

func TestRunRejectsBadConfig(t *testing.T) {
	t.Parallel()
	_, err := New(Config{Rounds: 0, Strategy: "basic", Logger: quietLogger()}).Run(context.Background())
	assert.Error(t, err)

	_, err = New(Config{Rounds: 10, Strategy: "martingale", Logger: quietLogger()}).Run(context.Background())
	assert.ErrorContains(t, err, "unknown strategy")
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{
		Rounds:   100,
		Strategy: "basic",
		Logger:   quietLogger(),
	}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestActionCounts(t *testing.T) {
	t.Parallel()
	var c actionCounts
	c.observe(table.PlayerActionEvent{Action: table.Double, Applied: true})
	c.observe(table.PlayerActionEvent{Action: table.Split, Applied: true})
	c.observe(table.PlayerActionEvent{Action: table.Split, Applied: false})
	c.observe(table.PlayerActionEvent{Action: table.Hit, Applied: true})
	c.observe(table.DealerPlayEvent{})

	assert.Equal(t, 1, c.doubles)
	assert.Equal(t, 1, c.splits)
}
