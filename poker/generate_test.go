package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateEntries(t *testing.T) {
	t.Parallel()
	for _, rules := range []Rules{HighRules, DeuceToSevenRules, AceToFiveRules} {
		t.Run(rules.String(), func(t *testing.T) {
			t.Parallel()
			entries, err := generateEntries(rules)
			require.NoError(t, err)
			assert.Len(t, entries, rankMultisets+flushRankSets)

			keys := map[uint32]bool{}
			flushKeys := map[uint32]bool{}
			for _, e := range entries {
				if e.flush {
					assert.False(t, flushKeys[e.key], "flush key %#x repeated", e.key)
					flushKeys[e.key] = true
				} else {
					assert.False(t, keys[e.key], "key %d repeated", e.key)
					keys[e.key] = true
				}
			}
		})
	}
}

func TestStraightHighMask(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		mask uint16
		want uint8
	}{
		{"broadway", 0x1F00, 12},
		{"six high", 0x001F, 4},
		{"wheel is left to the caller", wheelMask, 0},
		{"gap", 0x1E01, 0},
		{"six of a run", 0x003F, 5},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, straightHighMask(tc.mask), tc.name)
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()
	wheel := [5]uint8{0, 1, 2, 3, 12}

	e := classify(wheel, true, HighRules)
	assert.Equal(t, StraightFlush, e.category)
	assert.Equal(t, uint32(wheelMask), e.key)

	assert.Equal(t, Flush, classify(wheel, true, DeuceToSevenRules).category)
	assert.Equal(t, HighCard, classify(wheel, false, DeuceToSevenRules).category)
	assert.Equal(t, HighCard, classify(wheel, true, AceToFiveRules).category)

	boat := classify([5]uint8{5, 5, 5, 9, 9}, false, HighRules)
	assert.Equal(t, FullHouse, boat.category)
	assert.Equal(t, [5]uint8{5, 9}, boat.tiebreak)
	assert.Equal(t, rankPrimes[5]*rankPrimes[5]*rankPrimes[5]*rankPrimes[9]*rankPrimes[9], boat.key)

	// In A-5 the ace is the smallest value.
	aces := classify([5]uint8{12, 12, 0, 1, 2}, false, AceToFiveRules)
	assert.Equal(t, Pair, aces.category)
	assert.Equal(t, [5]uint8{0, 3, 2, 1}, aces.tiebreak)
}

func TestCheckCategoryCounts(t *testing.T) {
	t.Parallel()
	entries, err := generateEntries(HighRules)
	require.NoError(t, err)
	require.NoError(t, checkCategoryCounts(HighRules, entries))

	broken := append([]tableEntry(nil), entries...)
	for i := range broken {
		if broken[i].category == Straight {
			broken[i].category = Flush
			break
		}
	}
	assert.ErrorIs(t, checkCategoryCounts(HighRules, broken), ErrTableUnavailable)
	assert.ErrorIs(t, checkCategoryCounts(Rules(7), entries), ErrTableUnavailable)
}

func TestRulesString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "high", HighRules.String())
	assert.Equal(t, "deuce-to-seven", DeuceToSevenRules.String())
	assert.Equal(t, "ace-to-five", AceToFiveRules.String())
	assert.Equal(t, "rules(7)", Rules(7).String())
}
