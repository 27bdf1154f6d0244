package game

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecisionsBeforeBet(t *testing.T) {
	t.Parallel()
	p := NewPlayer("Alice", 100)
	src := stack(t)

	_, err := p.PlayingHand()
	assert.ErrorIs(t, err, ErrNoHands)
	_, err = p.Hit(src)
	assert.ErrorIs(t, err, ErrNoHands)
	assert.ErrorIs(t, p.Stand(), ErrNoHands)
	_, err = p.Surrender()
	assert.ErrorIs(t, err, ErrNoHands)
	_, err = p.Split(src)
	assert.ErrorIs(t, err, ErrNoHands)
	_, err = p.Double(src)
	assert.ErrorIs(t, err, ErrNoHands)
	assert.False(t, p.IsPlaying())
}

func TestDecisionsAfterLastHandFinished(t *testing.T) {
	t.Parallel()
	p := NewPlayer("Alice", 100)
	p.Bet(10, stack(t, "Th", "9c"))
	require.NoError(t, p.Stand())

	assert.False(t, p.IsPlaying())
	assert.ErrorIs(t, p.Stand(), ErrNoPlayingHand)
	_, err := p.HandIsSoft()
	assert.ErrorIs(t, err, ErrNoPlayingHand)
}

func TestHitBustFinishesHand(t *testing.T) {
	t.Parallel()
	src := stack(t, "Th", "6c", "4d", "Kc")
	p := NewPlayer("Alice", 100)
	p.Bet(10, src)

	busted, err := p.Hit(src)
	require.NoError(t, err)
	assert.False(t, busted)
	assert.True(t, p.IsPlaying())

	busted, err = p.Hit(src)
	require.NoError(t, err)
	assert.True(t, busted)
	assert.False(t, p.IsPlaying())
	assert.True(t, p.HasBusted())
	assert.True(t, p.HasLost())
	assert.Equal(t, 0, p.FirstHandValue())
}

func TestSplitPlaysHandsInOrder(t *testing.T) {
	t.Parallel()
	// 8,8 splits into 8+3 and 8+T; the first hand then draws a K (21).
	src := stack(t, "8s", "8d", "3c", "Th", "Kc")
	p := NewPlayer("Alice", 100)
	p.Bet(20, src)

	ok, err := p.Split(src)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, p.HandCount())

	h, err := p.PlayingHand()
	require.NoError(t, err)
	assert.Equal(t, 11, h.Value())

	_, err = p.Hit(src)
	require.NoError(t, err)
	require.NoError(t, p.Stand())

	idx, err := p.PlayingIndex()
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	h, err = p.PlayingHand()
	require.NoError(t, err)
	assert.Equal(t, 18, h.Value())
	assert.Equal(t, 20, h.Wager())

	require.NoError(t, p.Stand())
	assert.False(t, p.IsPlaying())
	assert.Equal(t, 21, p.FirstHandValue())
}

func TestSplitIneligible(t *testing.T) {
	t.Parallel()
	src := stack(t, "Th", "9c")
	p := NewPlayer("Alice", 100)
	p.Bet(20, src)

	ok, err := p.Split(src)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, p.HandCount())
	assert.True(t, p.IsPlaying())
}

func TestSurrenderPenalty(t *testing.T) {
	t.Parallel()
	tests := []struct {
		wager   int
		penalty int
	}{
		{40, 20},
		{41, 20},
		{1, 0},
		{0, 0},
	}

	for _, tt := range tests {
		p := NewPlayer("Alice", 100)
		p.Bet(tt.wager, stack(t, "Th", "6c"))

		penalty, err := p.Surrender()
		require.NoError(t, err)
		assert.Equal(t, tt.penalty, penalty, "wager %d", tt.wager)
		assert.Equal(t, 100-tt.penalty, p.Balance(), "wager %d", tt.wager)
		assert.Equal(t, -tt.penalty, p.Standing(), "wager %d", tt.wager)
		assert.Equal(t, -tt.penalty, p.RoundDelta(), "wager %d", tt.wager)
	}
}

func TestSurrenderFinishesHand(t *testing.T) {
	t.Parallel()
	p := NewPlayer("Alice", 100)
	p.Bet(40, stack(t, "Th", "6c"))

	_, err := p.Surrender()
	require.NoError(t, err)
	assert.False(t, p.IsPlaying())
	assert.True(t, p.HasLost())
	assert.False(t, p.HasBusted())
	assert.True(t, p.HandAt(0).Surrendered())
}

func TestSurrenderedHandStillLosesWagerAtSettlement(t *testing.T) {
	t.Parallel()
	p := NewPlayer("Alice", 1000)
	p.Bet(40, stack(t, "Th", "6c"))
	_, err := p.Surrender()
	require.NoError(t, err)

	s := p.GameOver(0)
	assert.Equal(t, -40, s.Delta)
	assert.Equal(t, -60, s.RoundDelta)
	assert.Equal(t, 940, p.Balance())
	assert.Equal(t, Loss, s.Results[0].Outcome)
}

func TestPlayerDouble(t *testing.T) {
	t.Parallel()
	for _, tt := range []struct {
		name   string
		cards  []string
		busted bool
	}{
		{"no bust", []string{"6s", "5d", "9c"}, false},
		{"bust", []string{"Ts", "5d", "9c"}, true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src := stack(t, tt.cards...)
			p := NewPlayer("Alice", 100)
			p.Bet(25, src)

			busted, err := p.Double(src)
			require.NoError(t, err)
			assert.Equal(t, tt.busted, busted)
			assert.False(t, p.IsPlaying())

			h := p.HandAt(0)
			assert.Equal(t, 50, h.Wager())
			assert.Equal(t, 3, h.CardCount())
			assert.True(t, h.Finished())
		})
	}
}

func TestGameOverSettlement(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		dealer  int
		delta   int
		outcome Outcome
	}{
		{"beats dealer", 18, 50, Win},
		{"loses to dealer", 20, -50, Loss},
		{"push", 19, 0, Push},
		{"dealer busted", 0, 50, Win},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := NewPlayer("Alice", 1000)
			p.Bet(50, stack(t, "Th", "9c"))
			require.NoError(t, p.Stand())

			s := p.GameOver(tt.dealer)
			assert.Equal(t, tt.delta, s.Delta)
			assert.Equal(t, tt.delta, s.RoundDelta)
			assert.Equal(t, 1000+tt.delta, p.Balance())
			assert.Equal(t, 1000+tt.delta, s.Balance)
			assert.Equal(t, tt.delta, p.Standing())
			require.Len(t, s.Results, 1)
			assert.Equal(t, tt.outcome, s.Results[0].Outcome)
			assert.Equal(t, 19, s.Results[0].Hand.Value())
		})
	}
}

func TestBustedHandLosesWhenDealerBusts(t *testing.T) {
	t.Parallel()
	src := stack(t, "Th", "6c", "Kd")
	p := NewPlayer("Alice", 100)
	p.Bet(10, src)
	_, err := p.Hit(src)
	require.NoError(t, err)

	s := p.GameOver(0)
	assert.Equal(t, -10, s.Delta)
	assert.Equal(t, 90, p.Balance())
}

func TestGameOverAggregatesSplitHands(t *testing.T) {
	t.Parallel()
	// 9,9 split into 9+T (19) and 9+8 (17); dealer has 18.
	src := stack(t, "9s", "9d", "Tc", "8h")
	p := NewPlayer("Alice", 100)
	p.Bet(10, src)
	ok, err := p.Split(src)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, p.Stand())
	require.NoError(t, p.Stand())

	s := p.GameOver(18)
	require.Len(t, s.Results, 2)
	assert.Equal(t, Win, s.Results[0].Outcome)
	assert.Equal(t, Loss, s.Results[1].Outcome)
	assert.Equal(t, 0, s.Delta)
	assert.Equal(t, 100, p.Balance())
}

func TestGameOverClearsHands(t *testing.T) {
	t.Parallel()
	p := NewPlayer("Alice", 100)
	p.Bet(10, stack(t, "Th", "9c"))
	require.True(t, p.IsPlaying())

	p.GameOver(18)
	assert.False(t, p.IsPlaying())
	assert.Equal(t, 0, p.HandCount())

	p.GameOver(18)
	assert.Equal(t, 0, p.HandCount())
	assert.Equal(t, 110, p.Balance())
}

func TestStandingAccumulatesAcrossRounds(t *testing.T) {
	t.Parallel()
	p := NewPlayer("Alice", 100)

	p.Bet(10, stack(t, "Th", "9c"))
	p.GameOver(18)
	p.Bet(10, stack(t, "Th", "9c"))
	p.GameOver(20)
	p.Bet(10, stack(t, "Th", "9c"))
	p.GameOver(17)

	assert.Equal(t, 10, p.Standing())
	assert.Equal(t, 110, p.Balance())
	assert.Equal(t, 3, p.Rounds())

	p.ResetStanding()
	assert.Equal(t, 0, p.Standing())
	assert.Equal(t, 110, p.Balance())
}

func TestLedgerRecordsRounds(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	start := clock.Now()
	p := NewPlayer("Alice", 100, WithClock(clock))

	p.Bet(10, stack(t, "Th", "9c"))
	p.GameOver(18)

	clock.Advance(time.Minute)
	p.Bet(40, stack(t, "Th", "6c"))
	_, err := p.Surrender()
	require.NoError(t, err)
	p.GameOver(20)

	ledger := p.Ledger()
	require.Len(t, ledger, 2)
	assert.Equal(t, RoundEntry{Round: 1, Delta: 10, Balance: 110, At: start}, ledger[0])
	assert.Equal(t, RoundEntry{Round: 2, Delta: -60, Balance: 50, At: start.Add(time.Minute)}, ledger[1])
	assert.Equal(t, 0, p.RoundDelta())
}

func TestHandAtIsSnapshot(t *testing.T) {
	t.Parallel()
	src := stack(t, "Th", "2c", "3d")
	p := NewPlayer("Alice", 100)
	p.Bet(10, src)

	snap := p.HandAt(0)
	snap.Hit(src)
	snap.Finish()

	assert.Equal(t, 2, p.HandAt(0).CardCount())
	assert.True(t, p.IsPlaying())
	assert.Len(t, p.Hands(), 1)
}

func TestHandIsSoft(t *testing.T) {
	t.Parallel()
	p := NewPlayer("Alice", 100)
	p.Bet(10, stack(t, "As", "6c"))

	soft, err := p.HandIsSoft()
	require.NoError(t, err)
	assert.True(t, soft)
}

func TestHasLostRequiresEveryHand(t *testing.T) {
	t.Parallel()
	p := NewPlayer("Alice", 100)
	assert.False(t, p.HasLost())

	src := stack(t, "8s", "8d", "Kc", "2h")
	p.Bet(10, src)
	ok, err := p.Split(src)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = p.Surrender()
	require.NoError(t, err)
	assert.False(t, p.HasLost())

	_, err = p.Surrender()
	require.NoError(t, err)
	assert.True(t, p.HasLost())
}
