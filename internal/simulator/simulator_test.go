package simulator

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokereval/poker"
)

func testTables(t *testing.T) *poker.Tables {
	t.Helper()
	tables, err := poker.DefaultTables()
	require.NoError(t, err)
	return tables
}

func hands(ss ...string) [][]poker.Card {
	out := make([][]poker.Card, len(ss))
	for i, s := range ss {
		out[i] = poker.MustParseCards(s)
	}
	return out
}

func run(t *testing.T, cfg Config) *Result {
	t.Helper()
	sim, err := New(cfg, testTables(t))
	require.NoError(t, err)
	res, err := sim.Run(context.Background())
	require.NoError(t, err)
	return res
}

func TestAcesAgainstKings(t *testing.T) {
	t.Parallel()
	res := run(t, Config{
		Variant: poker.High,
		Players: hands("AsAh", "KsKh"),
		Samples: 20000,
		Workers: 4,
		Seed:    1,
	})

	require.Len(t, res.Players, 2)
	assert.Equal(t, 20000, res.Samples)
	aces, kings := res.Players[0].Equity, res.Players[1].Equity
	assert.InDelta(t, 0.82, aces.Mean(), 0.02)
	assert.InDelta(t, 1.0, aces.Mean()+kings.Mean(), 1e-9)

	lo, hi := aces.ConfidenceInterval95()
	assert.Less(t, lo, aces.Mean())
	assert.Greater(t, hi, aces.Mean())
	assert.NotEmpty(t, res.ID)
}

func TestRiverIsDecided(t *testing.T) {
	t.Parallel()
	res := run(t, Config{
		Variant: poker.High,
		Players: hands("AsKs", "QhQd"),
		Board:   poker.MustParseCards("2c 7d 9h Jc 3s"),
		Samples: 500,
	})
	assert.Equal(t, 0.0, res.Players[0].Equity.Mean())
	assert.Equal(t, 1.0, res.Players[1].Equity.Mean())
	assert.Equal(t, 500, res.Players[1].Equity.Scoops)
	assert.Equal(t, 1.0, res.Players[1].Equity.CategoryFrequency(poker.Pair))
}

// Chunks carry their own random streams, so the worker count never changes
// the answer.
func TestDeterministicAcrossWorkers(t *testing.T) {
	t.Parallel()
	base := Config{
		Variant: poker.High,
		Players: hands("Ah Kh", ""),
		Board:   poker.MustParseCards("Qh 7h 2c"),
		Samples: 5500,
		Seed:    99,
	}

	one := base
	one.Workers = 1
	many := base
	many.Workers = 6

	a, b := run(t, one), run(t, many)
	for i := range a.Players {
		assert.Equal(t, a.Players[i].Equity, b.Players[i].Equity, "player %d", i+1)
	}

	other := base
	other.Seed = 100
	c := run(t, other)
	assert.NotEqual(t, a.Players[0].Equity.Sum, c.Players[0].Equity.Sum)
}

func TestVariantsShareTheWholePot(t *testing.T) {
	t.Parallel()
	tests := []struct {
		variant poker.Variant
		players [][]poker.Card
	}{
		{poker.OmahaHiLo, hands("As 2s Kd Qd", "Ks Kh 9c 8c", "")},
		{poker.OmahaHigh, hands("As Ad Kc Qc", "")},
		{poker.Dramaha, hands("As Kc Ad Qh Qc", "")},
		{poker.DeuceToSeven, hands("7h 5d 4c 3s", "")},
		{poker.AceToFive, hands("Ah 2d 3c", "")},
		{poker.Badugi, hands("Ah 2d 3c", "", "")},
	}
	for _, tc := range tests {
		t.Run(tc.variant.String(), func(t *testing.T) {
			t.Parallel()
			res := run(t, Config{
				Variant: tc.variant,
				Players: tc.players,
				Samples: 2000,
				Workers: 2,
				Seed:    5,
			})
			total := 0.0
			for _, p := range res.Players {
				total += p.Equity.Mean()
				assert.Equal(t, 2000, p.Equity.Samples)
			}
			assert.InDelta(t, 1.0, total, 1e-9)
		})
	}
}

func TestProgressAndElapsedUseClock(t *testing.T) {
	t.Parallel()
	mClock := quartz.NewMock(t)

	var calls []int
	res := run(t, Config{
		Variant: poker.High,
		Players: hands("AsAh", "7c2d"),
		Samples: 3 * chunkSize,
		Workers: 2,
		Clock:   mClock,
		Progress: func(done, total int) {
			assert.Equal(t, 3*chunkSize, total)
			calls = append(calls, done)
			mClock.Advance(time.Second)
		},
	})

	assert.Equal(t, []int{chunkSize, 2 * chunkSize, 3 * chunkSize}, calls)
	assert.Equal(t, 3*time.Second, res.Elapsed)
}

func TestRunTimeout(t *testing.T) {
	t.Parallel()
	sim, err := New(Config{
		Variant: poker.OmahaHiLo,
		Players: hands("", "", "", ""),
		Samples: 50_000_000,
		Workers: 2,
		Timeout: time.Nanosecond,
	}, testTables(t))
	require.NoError(t, err)

	_, err = sim.Run(context.Background())
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()
	sim, err := New(Config{
		Variant: poker.High,
		Players: hands("", ""),
		Samples: 10_000_000,
	}, testTables(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewValidation(t *testing.T) {
	t.Parallel()
	tables := testTables(t)
	tests := []struct {
		name string
		cfg  Config
		is   error
	}{
		{"one player", Config{Variant: poker.High, Players: hands("AsAh"), Samples: 10}, nil},
		{"no samples", Config{Variant: poker.High, Players: hands("AsAh", "")}, nil},
		{"too many hole cards", Config{Variant: poker.High, Players: hands("AsAhKs", ""), Samples: 10}, nil},
		{"board too long", Config{Variant: poker.Badugi, Players: hands("", ""), Board: poker.MustParseCards("2c"), Samples: 10}, nil},
		{"deck exhausted", Config{Variant: poker.OmahaHigh, Players: make([][]poker.Card, 12), Samples: 10}, nil},
		{"duplicate card", Config{Variant: poker.High, Players: hands("AsAh", "AsKd"), Samples: 10}, poker.ErrDuplicateCard},
		{"board duplicates hole", Config{Variant: poker.High, Players: hands("AsAh", ""), Board: poker.MustParseCards("As 2c 3d"), Samples: 10}, poker.ErrDuplicateCard},
		{"invalid card", Config{Variant: poker.High, Players: [][]poker.Card{{poker.Card(3)}, nil}, Samples: 10}, poker.ErrInvalidCard},
		{"unknown variant", Config{Variant: poker.Variant(42), Players: hands("", ""), Samples: 10}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tc.cfg, tables)
			require.Error(t, err)
			if tc.is != nil {
				assert.ErrorIs(t, err, tc.is)
			}
		})
	}
}
