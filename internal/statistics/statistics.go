// Package statistics aggregates per-round results of simulated blackjack
// sessions.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// RoundResult represents the outcome of a single round for one seat
type RoundResult struct {
	Delta        int   // Net chips won or lost, surrender penalties included
	Wagered      int   // Total amount at risk, doubles and splits included
	Seed         int64 // Seed of the table that played the round (for replay)
	Hands        int   // Hands settled; more than one after a split
	Wins         int
	Losses       int
	Pushes       int
	Busts        int
	Surrenders   int
	Doubles      int
	Splits       int
	DealerPlayed bool
	DealerBusted bool
}

// Statistics tracks simulation statistics in chips per round
type Statistics struct {
	Rounds int
	Sum    float64
	Sum2   float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation

	// Hand-level outcome counts
	Hands      int
	Wins       int
	Losses     int
	Pushes     int
	Busts      int
	Surrenders int
	Doubles    int
	Splits     int

	// Dealer analytics
	DealerPlayed int // Rounds in which the dealer had to draw
	DealerBusts  int

	Wagered   int
	BestWin   int // Largest single-round gain
	WorstLoss int // Largest single-round loss, as a negative number
}

// Mean returns the arithmetic mean of all results in chips per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.Sum / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// ReturnOnWager returns the net result as a fraction of everything wagered
func (s *Statistics) ReturnOnWager() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return s.Sum / float64(s.Wagered)
}

// WinRate returns the fraction of settled hands that won
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Hands)
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	delta := float64(result.Delta)
	s.Rounds++
	s.Sum += delta
	s.Sum2 += delta * delta
	s.Values = append(s.Values, delta)

	s.Hands += result.Hands
	s.Wins += result.Wins
	s.Losses += result.Losses
	s.Pushes += result.Pushes
	s.Busts += result.Busts
	s.Surrenders += result.Surrenders
	s.Doubles += result.Doubles
	s.Splits += result.Splits
	s.Wagered += result.Wagered

	if result.DealerPlayed {
		s.DealerPlayed++
		if result.DealerBusted {
			s.DealerBusts++
		}
	}

	s.BestWin = max(s.BestWin, result.Delta)
	s.WorstLoss = min(s.WorstLoss, result.Delta)
}

// Merge folds other into s. Values keep their order: s first, then other.
func (s *Statistics) Merge(other *Statistics) {
	if other == nil {
		return
	}
	s.Rounds += other.Rounds
	s.Sum += other.Sum
	s.Sum2 += other.Sum2
	s.Values = append(s.Values, other.Values...)

	s.Hands += other.Hands
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.Busts += other.Busts
	s.Surrenders += other.Surrenders
	s.Doubles += other.Doubles
	s.Splits += other.Splits
	s.DealerPlayed += other.DealerPlayed
	s.DealerBusts += other.DealerBusts
	s.Wagered += other.Wagered

	s.BestWin = max(s.BestWin, other.BestWin)
	s.WorstLoss = min(s.WorstLoss, other.WorstLoss)
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate performs consistency checks on the accumulated data
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	if outcomes := s.Wins + s.Losses + s.Pushes; outcomes != s.Hands {
		return fmt.Errorf("outcomes (%d) do not match hands settled (%d)", outcomes, s.Hands)
	}

	if s.Busts+s.Surrenders > s.Losses {
		return fmt.Errorf("busts (%d) and surrenders (%d) exceed losses (%d)",
			s.Busts, s.Surrenders, s.Losses)
	}

	if s.DealerBusts > s.DealerPlayed {
		return fmt.Errorf("dealer busts (%d) exceed rounds the dealer played (%d)",
			s.DealerBusts, s.DealerPlayed)
	}

	var sum float64
	for _, v := range s.Values {
		sum += v
	}
	if math.Abs(sum-s.Sum) > 1e-6 {
		return fmt.Errorf("ledger mismatch: values sum to %.2f, total is %.2f", sum, s.Sum)
	}

	return nil
}
