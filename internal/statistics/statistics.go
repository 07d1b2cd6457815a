package statistics

import (
	"fmt"
	"math"

	"github.com/lox/pokereval/poker"
)

// Outcome is one player's result in one simulated deal.
type Outcome struct {
	Share    float64        // fraction of the pot won, 0..1
	Scoop    bool           // won every half alone
	Category poker.Category // category of the high hand
}

// Equity accumulates outcomes for one player.
type Equity struct {
	Samples int
	Sum     float64
	Sum2    float64 // sum of squares for variance

	Wins   int // samples with a non-zero share
	Scoops int

	Categories map[poker.Category]int
}

// Add incorporates one outcome.
func (e *Equity) Add(o Outcome) {
	e.Samples++
	e.Sum += o.Share
	e.Sum2 += o.Share * o.Share
	if o.Share > 0 {
		e.Wins++
	}
	if o.Scoop {
		e.Scoops++
	}
	if e.Categories == nil {
		e.Categories = make(map[poker.Category]int)
	}
	e.Categories[o.Category]++
}

// Merge folds other into e. Workers keep private tallies and merge at the end.
func (e *Equity) Merge(other *Equity) {
	e.Samples += other.Samples
	e.Sum += other.Sum
	e.Sum2 += other.Sum2
	e.Wins += other.Wins
	e.Scoops += other.Scoops
	if len(other.Categories) > 0 && e.Categories == nil {
		e.Categories = make(map[poker.Category]int, len(other.Categories))
	}
	for c, n := range other.Categories {
		e.Categories[c] += n
	}
}

// Mean returns the average pot share, which is the player's equity.
func (e *Equity) Mean() float64 {
	if e.Samples == 0 {
		return 0
	}
	return e.Sum / float64(e.Samples)
}

// Variance returns the sample variance of the share.
func (e *Equity) Variance() float64 {
	if e.Samples < 2 {
		return 0
	}
	mean := e.Mean()
	v := (e.Sum2 - float64(e.Samples)*mean*mean) / float64(e.Samples-1)
	return math.Max(v, 0)
}

// StdDev returns the sample standard deviation of the share.
func (e *Equity) StdDev() float64 {
	return math.Sqrt(e.Variance())
}

// StdError returns the standard error of the mean.
func (e *Equity) StdError() float64 {
	if e.Samples == 0 {
		return 0
	}
	return e.StdDev() / math.Sqrt(float64(e.Samples))
}

// ConfidenceInterval95 returns the 95% confidence interval for the equity,
// clamped to [0, 1].
func (e *Equity) ConfidenceInterval95() (float64, float64) {
	mean := e.Mean()
	margin := 1.96 * e.StdError()
	return math.Max(mean-margin, 0), math.Min(mean+margin, 1)
}

// CategoryFrequency returns how often the high hand landed in c.
func (e *Equity) CategoryFrequency(c poker.Category) float64 {
	if e.Samples == 0 {
		return 0
	}
	return float64(e.Categories[c]) / float64(e.Samples)
}

// Validate checks that the tally is internally consistent.
func (e *Equity) Validate() error {
	if e.Samples < 0 {
		return fmt.Errorf("invalid sample count: %d", e.Samples)
	}
	if e.Wins > e.Samples {
		return fmt.Errorf("wins (%d) exceed samples (%d)", e.Wins, e.Samples)
	}
	if e.Scoops > e.Wins {
		return fmt.Errorf("scoops (%d) exceed wins (%d)", e.Scoops, e.Wins)
	}
	if e.Sum < 0 || e.Sum > float64(e.Samples)+1e-9 {
		return fmt.Errorf("share total %.6f outside [0, %d]", e.Sum, e.Samples)
	}
	total := 0
	for _, n := range e.Categories {
		total += n
	}
	if total != e.Samples {
		return fmt.Errorf("category total (%d) does not match samples (%d)", total, e.Samples)
	}
	return nil
}
