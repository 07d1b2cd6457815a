package poker

import "fmt"

// Awards lists the winning player indexes for each half of a pot. Ties hold
// every tied index. Lo is empty when no player qualified for low.
type Awards struct {
	Hi   []int
	Lo   []int
	Draw []int
}

// Showdown compares results from one variant and returns the winners of
// every half. Results from more than one variant yield ErrMixedVariants.
func Showdown(results []Result) (Awards, error) {
	var a Awards
	hi, lo, draw := noRank, noRank, noRank
	for i, r := range results {
		if r.Variant != results[0].Variant {
			return Awards{}, fmt.Errorf("%w: player %d is %s, player 1 is %s",
				ErrMixedVariants, i+1, r.Variant, results[0].Variant)
		}
		a.Hi, hi = best(a.Hi, hi, i, r.Hi.Rank)
		if r.Lo != nil {
			a.Lo, lo = best(a.Lo, lo, i, r.Lo.Rank)
		}
		if r.Draw != nil {
			a.Draw, draw = best(a.Draw, draw, i, r.Draw.Rank)
		}
	}
	return a, nil
}

func best(winners []int, bestRank HandRank, i int, r HandRank) ([]int, HandRank) {
	switch {
	case r < bestRank:
		return []int{i}, r
	case r == bestRank:
		return append(winners, i), bestRank
	}
	return winners, bestRank
}

// Shares converts awards into the fraction of the pot each of n players
// wins. A pot with a second half (low or draw) is split in two; when nobody
// qualifies for low the high hand takes it all.
func (a Awards) Shares(n int) []float64 {
	shares := make([]float64, n)
	halves := [][]int{a.Hi}
	if len(a.Lo) > 0 {
		halves = append(halves, a.Lo)
	}
	if len(a.Draw) > 0 {
		halves = append(halves, a.Draw)
	}
	part := 1 / float64(len(halves))
	for _, winners := range halves {
		if len(winners) == 0 {
			continue
		}
		each := part / float64(len(winners))
		for _, w := range winners {
			if w >= 0 && w < n {
				shares[w] += each
			}
		}
	}
	return shares
}

// Scoop reports whether player i won every awarded half of the pot alone.
func (a Awards) Scoop(i int) bool {
	only := func(w []int) bool { return len(w) == 1 && w[0] == i }
	if !only(a.Hi) {
		return false
	}
	if len(a.Lo) > 0 && !only(a.Lo) {
		return false
	}
	if len(a.Draw) > 0 && !only(a.Draw) {
		return false
	}
	return true
}
