package poker

import "math/bits"

// eightOrBetter is the number of qualifying lows: five distinct ranks from
// A-8, i.e. 8 choose 5. They occupy ranks 0..55 of the ace-to-five table,
// from 5-4-3-2-A down to 8-7-6-5-4.
const eightOrBetter = 56

// aceLowValue maps a card to 0 for aces and rank-1 otherwise (deuce is 1).
func aceLowValue(c Card) uint8 {
	if idx := c.rankIndex(); idx != 12 {
		return idx + 1
	}
	return 0
}

// qualifiesEight reports whether five cards make an eight-or-better low:
// five different ranks, none above an eight.
func qualifiesEight(h omahaHand) bool {
	var mask uint16
	for _, c := range h {
		mask |= 1 << aceLowValue(c)
	}
	return mask < 1<<8 && bits.OnesCount16(mask) == 5
}

// bestOmahaHiLo walks the Omaha candidates once and keeps the best high hand
// and the best qualifying low. lo is nil when no candidate qualifies.
func bestOmahaHiLo(hi, lo *Table, hole, board []Card) (HandResult, *HandResult, error) {
	bestHi, bestLo := noRank, noRank
	var hiHand, loHand omahaHand
	err := eachOmaha(hole, board, func(h omahaHand) error {
		r, err := hi.eval5(h[0], h[1], h[2], h[3], h[4])
		if err != nil {
			return err
		}
		if r < bestHi {
			bestHi, hiHand = r, h
		}
		if !qualifiesEight(h) {
			return nil
		}
		r, err = lo.eval5(h[0], h[1], h[2], h[3], h[4])
		if err != nil {
			return err
		}
		if r < bestLo {
			bestLo, loHand = r, h
		}
		return nil
	})
	if err != nil {
		return HandResult{}, nil, err
	}

	high := hi.result(bestHi, append([]Card(nil), hiHand[:]...))
	if bestLo == noRank {
		return high, nil, nil
	}
	low := lo.result(bestLo, append([]Card(nil), loHand[:]...))
	return high, &low, nil
}
