package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.dedis.ch/protobuf"
)

func TestArtifactRoundTrip(t *testing.T) {
	t.Parallel()
	tables := testTables(t)

	data, err := tables.MarshalBinary()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	again, err := tables.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, data, again, "encoding is deterministic")

	loaded, err := UnmarshalTables(data)
	require.NoError(t, err)
	assert.True(t, tables.Equal(loaded))
	assert.Equal(t, 7462, loaded.High.Size())

	// The reloaded index answers lookups like the generated one.
	for _, hand := range []string{"As Ks Qs Js Ts", "7h 5d 4c 3s 2h", "Qc Qd 4h 4s 2c", "9h 4d 3c 2s Ah"} {
		for _, rules := range []Rules{HighRules, DeuceToSevenRules, AceToFiveRules} {
			want, err := tables.Table(rules)
			require.NoError(t, err)
			got, err := loaded.Table(rules)
			require.NoError(t, err)
			assert.Equal(t, rank5(t, want, hand), rank5(t, got, hand), "%s %s", rules, hand)
		}
	}
}

func TestUnmarshalTablesRejectsBadInput(t *testing.T) {
	t.Parallel()
	tables := testTables(t)

	encode := func(mutate func(*tableArtifact)) []byte {
		t.Helper()
		art := tableArtifact{
			Magic:        artifactMagic,
			Version:      artifactVersion,
			High:         tables.High.record(),
			DeuceToSeven: tables.DeuceToSeven.record(),
			AceToFive:    tables.AceToFive.record(),
		}
		mutate(&art)
		data, err := protobuf.Encode(&art)
		require.NoError(t, err)
		return data
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte{0xff, 0xff, 0xff, 0x01}},
		{"wrong magic", encode(func(a *tableArtifact) { a.Magic = "something-else" })},
		{"future version", encode(func(a *tableArtifact) { a.Version = 2 })},
		{"swapped records", encode(func(a *tableArtifact) { a.High, a.DeuceToSeven = a.DeuceToSeven, a.High })},
		{"truncated keys", encode(func(a *tableArtifact) { a.High.Keys = a.High.Keys[:100]; a.High.Ranks = a.High.Ranks[:100] })},
		{"mismatched columns", encode(func(a *tableArtifact) { a.AceToFive.Ranks = a.AceToFive.Ranks[1:] })},
		{"rank without category", encode(func(a *tableArtifact) { a.High.Categories = a.High.Categories[:10] })},
		{"wrong categories", encode(func(a *tableArtifact) {
			a.High.Categories = append([]uint32(nil), a.High.Categories...)
			a.High.Categories[0] = uint32(HighCard)
		})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := UnmarshalTables(tc.data)
			assert.ErrorIs(t, err, ErrTableUnavailable)
		})
	}
}

func TestMarshalIncompleteTables(t *testing.T) {
	t.Parallel()
	partial := &Tables{High: testTables(t).High}
	_, err := partial.MarshalBinary()
	assert.ErrorIs(t, err, ErrTableUnavailable)
}
