package poker

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubsets(t *testing.T) {
	t.Parallel()
	assert.Len(t, combos[7][5], 21)
	assert.Len(t, combos[6][5], 6)
	assert.Len(t, combos[5][5], 1)
	assert.Len(t, combos[6][2], 15)
	assert.Len(t, combos[5][3], 10)
	assert.Equal(t, []uint8{0, 1, 2}, combos[5][3][0])
	assert.Equal(t, []uint8{2, 3, 4}, combos[5][3][9])
}

// The best-of search result must not be beaten by any single subset.
func TestBestOfIsMinimumOfSubsets(t *testing.T) {
	t.Parallel()
	tables := testTables(t)
	rng := rand.New(rand.NewPCG(7, 7))
	deck := allCards()

	for i := 0; i < 500; i++ {
		rng.Shuffle(len(deck), func(a, b int) { deck[a], deck[b] = deck[b], deck[a] })
		n := 5 + i%3
		cards := append([]Card(nil), deck[:n]...)

		for _, table := range []*Table{tables.High, tables.DeuceToSeven, tables.AceToFive} {
			res, err := BestOf(table, cards)
			require.NoError(t, err)
			require.Len(t, res.Cards, 5)

			lowest := noRank
			for _, idx := range combos[n][5] {
				r, err := table.Evaluate5([5]Card(pick(cards, idx)))
				require.NoError(t, err)
				if r < lowest {
					lowest = r
				}
			}
			assert.Equal(t, lowest, res.Rank)

			again, err := table.Evaluate5([5]Card(res.Cards))
			require.NoError(t, err)
			assert.Equal(t, res.Rank, again, "winning subset reproduces the rank")
		}
	}
}

func TestBestOfPicksStrongestCategory(t *testing.T) {
	t.Parallel()
	high := testTables(t).High

	boat, err := BestOf(high, MustParseCards("Qh Qd Qc 9h 9s 4h 2d"))
	require.NoError(t, err)
	assert.Equal(t, FullHouse, boat.Category)
	assert.Equal(t, "Queens Full of 9s", boat.Description())

	// Nine-high straight and king-high flush in the same seven cards.
	flush, err := BestOf(high, MustParseCards("9h 8h 7c 6h 5d 2h Kh"))
	require.NoError(t, err)
	assert.Equal(t, Flush, flush.Category)
	assert.Equal(t, "King High Flush", flush.Description())
	assert.Less(t, boat.Rank, flush.Rank)
}

// Seven cards cannot hold a flush and a full house at once, so the larger
// Omaha pool is used to check that the full house wins.
func TestBestOmahaFullHouseOverFlush(t *testing.T) {
	t.Parallel()
	high := testTables(t).High

	hole := MustParseCards("Qd Qs 2h 3h")
	board := MustParseCards("Qh 9h 9s 4h 7h")
	res, err := BestOmaha(high, hole, board)
	require.NoError(t, err)
	assert.Equal(t, FullHouse, res.Category)
	assert.Equal(t, "Queens Full of 9s", res.Description())

	flushOnly, err := BestOmaha(high, MustParseCards("Kd Js 2h 3h"), board)
	require.NoError(t, err)
	assert.Equal(t, Flush, flushOnly.Category)
	assert.Less(t, res.Rank, flushOnly.Rank)
}

func TestBestOfErrors(t *testing.T) {
	t.Parallel()
	high := testTables(t).High

	_, err := BestOf(high, MustParseCards("As Ks Qs Js"))
	assert.ErrorIs(t, err, ErrInsufficientCards)

	_, err = BestOf(high, MustParseCards("As Ks Qs Js Ts 9s 8s 7s"))
	assert.ErrorIs(t, err, ErrWrongCardCount)

	_, err = BestOf(high, MustParseCards("As Ks Qs Js Ts As"))
	assert.ErrorIs(t, err, ErrDuplicateCard)
}

func TestBestOmahaUsesExactlyTwoHoleCards(t *testing.T) {
	t.Parallel()
	high := testTables(t).High

	tests := []struct {
		name     string
		hole     string
		board    string
		category Category
		desc     string
	}{
		{
			name:     "four spades in hand and one on board is no flush",
			hole:     "As Ks Qs Js",
			board:    "2s 7d 8c",
			category: HighCard,
			desc:     "Ace High",
		},
		{
			name:     "four hearts on board need two from hand",
			hole:     "Ah 2c 2d 4s",
			board:    "Kh Qh Jh Th",
			category: Pair,
			desc:     "Pair of 2s",
		},
		{
			name:     "board quads play only with a hole pair",
			hole:     "Ah Kd 5c 6c",
			board:    "9s 9h 9d 9c 2h",
			category: ThreeOfAKind,
			desc:     "Trip 9s",
		},
		{
			name:     "two from hand complete the straight",
			hole:     "9c Tc 2d 2h",
			board:    "Js Qh Kd 4c",
			category: Straight,
			desc:     "King High Straight",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			hole, board := MustParseCards(tc.hole), MustParseCards(tc.board)
			res, err := BestOmaha(high, hole, board)
			require.NoError(t, err)
			assert.Equal(t, tc.category, res.Category)
			assert.Equal(t, tc.desc, res.Description())

			holeSet := NewCardSet(hole...)
			used := 0
			for _, c := range res.Cards {
				if holeSet.Contains(c) {
					used++
				}
			}
			assert.Equal(t, 2, used)
		})
	}
}

func TestBestOmahaErrors(t *testing.T) {
	t.Parallel()
	high := testTables(t).High

	_, err := BestOmaha(high, MustParseCards("As Ks Qs"), MustParseCards("2c 3c 4c"))
	assert.ErrorIs(t, err, ErrInsufficientCards)

	_, err = BestOmaha(high, MustParseCards("As Ks Qs Js"), MustParseCards("2c 3c"))
	assert.ErrorIs(t, err, ErrInsufficientCards)

	_, err = BestOmaha(high, MustParseCards("As Ks Qs Js"), MustParseCards("2c 3c 4c 5c 6c 7c"))
	assert.ErrorIs(t, err, ErrWrongCardCount)

	_, err = BestOmaha(high, MustParseCards("As Ks Qs Js"), MustParseCards("2c 3c As"))
	assert.ErrorIs(t, err, ErrDuplicateCard)
}

func TestEvaluateBatch(t *testing.T) {
	t.Parallel()
	high := testTables(t).High

	hands := [][]Card{
		MustParseCards("As Ks Qs Js Ts 2c 3d"),
		MustParseCards("7h 5d 4c 3s 2h"),
	}
	out, err := high.EvaluateBatch(hands, nil)
	require.NoError(t, err)
	assert.Equal(t, []HandRank{0, 7461}, out)

	buf := make([]HandRank, 4)
	out, err = high.EvaluateBatch(hands, buf)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	_, err = high.EvaluateBatch([][]Card{MustParseCards("As Ks")}, nil)
	assert.ErrorIs(t, err, ErrInsufficientCards)
}

func BenchmarkBestOf7(b *testing.B) {
	high := testTables(b).High
	rng := rand.New(rand.NewPCG(42, 42))
	deck := allCards()
	hands := make([][]Card, 1000)
	for i := range hands {
		rng.Shuffle(len(deck), func(a, c int) { deck[a], deck[c] = deck[c], deck[a] })
		hands[i] = append([]Card(nil), deck[:7]...)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = bestOf(high, hands[i%len(hands)])
	}
}
