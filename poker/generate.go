package poker

import (
	"fmt"
	"math/bits"
	"slices"
)

// Rules selects how five card hands are ordered when a table is generated.
type Rules uint8

const (
	// HighRules is standard high poker: aces high, A-2-3-4-5 is the lowest straight.
	HighRules Rules = iota
	// DeuceToSevenRules is 2-7 lowball: aces only play high, straights and
	// flushes count against the hand, and the weakest high hand wins.
	DeuceToSevenRules
	// AceToFiveRules is A-5 lowball: aces play low, straights and flushes
	// are ignored, and the weakest hand wins.
	AceToFiveRules
)

func (r Rules) String() string {
	switch r {
	case HighRules:
		return "high"
	case DeuceToSevenRules:
		return "deuce-to-seven"
	case AceToFiveRules:
		return "ace-to-five"
	default:
		return fmt.Sprintf("rules(%d)", uint8(r))
	}
}

func (r Rules) wheel() bool           { return r == HighRules }
func (r Rules) aceLow() bool          { return r == AceToFiveRules }
func (r Rules) countsStraights() bool { return r != AceToFiveRules }
func (r Rules) inverted() bool        { return r != HighRules }

// Wheel is ace plus 2-3-4-5.
const wheelMask = 0x100F

// categoryCounts is the number of distinct strengths in each category per
// rule set. Generation is checked against it.
var categoryCounts = map[Rules]map[Category]int{
	HighRules: {
		StraightFlush: 10, FourOfAKind: 156, FullHouse: 156, Flush: 1277, Straight: 10,
		ThreeOfAKind: 858, TwoPair: 858, Pair: 2860, HighCard: 1277,
	},
	DeuceToSevenRules: {
		StraightFlush: 9, FourOfAKind: 156, FullHouse: 156, Flush: 1278, Straight: 9,
		ThreeOfAKind: 858, TwoPair: 858, Pair: 2860, HighCard: 1278,
	},
	AceToFiveRules: {
		FourOfAKind: 156, FullHouse: 156, ThreeOfAKind: 858, TwoPair: 858, Pair: 2860, HighCard: 1287,
	},
}

const (
	rankMultisets = 6175 // five card rank multisets without five of a kind
	flushRankSets = 1287 // 13 choose 5
)

// tableEntry is one generated row. Key is the prime product for ordinary
// hands and the OR of rank bits for flushes.
type tableEntry struct {
	key      uint32
	flush    bool
	category Category
	tiebreak [5]uint8
	rank     HandRank
}

// generateEntries enumerates all 6175 rank multisets and 1287 flush rank
// sets, orders them under rules and assigns dense ranks with 0 strongest.
func generateEntries(rules Rules) ([]tableEntry, error) {
	entries := make([]tableEntry, 0, rankMultisets+flushRankSets)

	var ranks [5]uint8
	for a := uint8(0); a < 13; a++ {
		for b := a; b < 13; b++ {
			for c := b; c < 13; c++ {
				for d := c; d < 13; d++ {
					for e := d; e < 13; e++ {
						if a == e {
							continue // five of a kind
						}
						ranks = [5]uint8{a, b, c, d, e}
						entries = append(entries, classify(ranks, false, rules))
						if a != b && b != c && c != d && d != e {
							entries = append(entries, classify(ranks, true, rules))
						}
					}
				}
			}
		}
	}

	// Strongest first under high-style comparison of the rule's values.
	slices.SortStableFunc(entries, func(x, y tableEntry) int {
		if x.category != y.category {
			return int(y.category) - int(x.category)
		}
		for i := range x.tiebreak {
			if x.tiebreak[i] != y.tiebreak[i] {
				return int(y.tiebreak[i]) - int(x.tiebreak[i])
			}
		}
		return 0
	})

	var next HandRank
	for i := range entries {
		if i > 0 && (entries[i].category != entries[i-1].category || entries[i].tiebreak != entries[i-1].tiebreak) {
			next++
		}
		entries[i].rank = next
	}
	size := int(next) + 1

	if rules.inverted() {
		for i := range entries {
			entries[i].rank = HandRank(size-1) - entries[i].rank
		}
	}

	if err := checkCategoryCounts(rules, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// classify computes the category and tiebreak for five rank indexes under
// rules. Tiebreak values are higher for stronger high-style hands; inverted
// rules flip the final ordering, not the classification.
func classify(ranks [5]uint8, flush bool, rules Rules) tableEntry {
	var key uint32 = 1
	var mask uint16
	for _, r := range ranks {
		key *= rankPrimes[r]
		mask |= 1 << r
	}
	entry := tableEntry{key: key, flush: flush}
	if flush {
		entry.key = uint32(mask)
	}

	// value is the rank's strength under rules: aces drop below deuces in A-5.
	value := func(r uint8) uint8 {
		if rules.aceLow() {
			if r == 12 {
				return 0
			}
			return r + 1
		}
		return r
	}

	var counts [13]uint8
	for _, r := range ranks {
		counts[value(r)]++
	}
	groups := make([]uint8, 0, 5)
	var shape [2]uint8 // two largest group sizes
	for n := uint8(4); n >= 1; n-- {
		for v := 12; v >= 0; v-- {
			if counts[v] == n {
				groups = append(groups, uint8(v))
				if shape[0] == 0 {
					shape[0] = n
				} else if shape[1] == 0 {
					shape[1] = n
				}
			}
		}
	}
	copy(entry.tiebreak[:], groups)

	distinct := len(groups) == 5
	straight := false
	if distinct && rules.countsStraights() {
		if rules.wheel() && mask == wheelMask {
			straight = true
			entry.tiebreak = [5]uint8{3}
		} else if high := straightHighMask(mask); high > 0 {
			straight = true
			entry.tiebreak = [5]uint8{high}
		}
	}
	flushCounts := flush && rules.countsStraights()

	switch {
	case straight && flushCounts:
		entry.category = StraightFlush
	case shape[0] == 4:
		entry.category = FourOfAKind
	case shape[0] == 3 && shape[1] == 2:
		entry.category = FullHouse
	case flushCounts:
		entry.category = Flush
	case straight:
		entry.category = Straight
	case shape[0] == 3:
		entry.category = ThreeOfAKind
	case shape[0] == 2 && shape[1] == 2:
		entry.category = TwoPair
	case shape[0] == 2:
		entry.category = Pair
	default:
		entry.category = HighCard
	}
	return entry
}

// straightHighMask returns the top rank index of five consecutive rank bits,
// or 0 when there is none. The wheel is handled by the caller.
func straightHighMask(mask uint16) uint8 {
	mask &= 0x1FFF
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq == 0 {
		return 0
	}
	return uint8(bits.Len16(seq)-1) + 4
}

func checkCategoryCounts(rules Rules, entries []tableEntry) error {
	want, ok := categoryCounts[rules]
	if !ok {
		return fmt.Errorf("%w: unknown rules %s", ErrTableUnavailable, rules)
	}
	got := make(map[Category]map[HandRank]struct{})
	for _, e := range entries {
		if got[e.category] == nil {
			got[e.category] = make(map[HandRank]struct{})
		}
		got[e.category][e.rank] = struct{}{}
	}
	for cat, n := range want {
		if len(got[cat]) != n {
			return fmt.Errorf("%w: %s %s has %d ranks, want %d", ErrTableUnavailable, rules, cat, len(got[cat]), n)
		}
	}
	if len(got) != len(want) {
		return fmt.Errorf("%w: %s has %d categories, want %d", ErrTableUnavailable, rules, len(got), len(want))
	}
	return nil
}
