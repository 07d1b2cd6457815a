package poker

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckDealsEveryCardOnce(t *testing.T) {
	t.Parallel()
	d := NewDeck(rand.New(rand.NewPCG(1, 1)))
	require.Equal(t, 52, d.CardsRemaining())

	seen := CardSet(0)
	for i := 0; i < 52; i++ {
		c, ok := d.DealOne()
		require.True(t, ok)
		require.True(t, c.Valid())
		require.False(t, seen.Contains(c), "dealt %s twice", c)
		seen.Add(c)
	}
	assert.Equal(t, 52, seen.Len())

	_, ok := d.DealOne()
	assert.False(t, ok)
	assert.Nil(t, d.Deal(1))
}

func TestDeckDeterministicShuffle(t *testing.T) {
	t.Parallel()
	a := NewDeck(rand.New(rand.NewPCG(42, 42)))
	b := NewDeck(rand.New(rand.NewPCG(42, 42)))
	assert.Equal(t, FormatCards(a.Deal(10)), FormatCards(b.Deal(10)))

	c := NewDeck(rand.New(rand.NewPCG(43, 43)))
	d := NewDeck(rand.New(rand.NewPCG(42, 42)))
	assert.NotEqual(t, FormatCards(c.Deal(52)), FormatCards(d.Deal(52)))
}

func TestDeckUnshuffled(t *testing.T) {
	t.Parallel()
	d := NewDeck(nil)
	assert.Equal(t, "2c 3c 4c", FormatCards(d.Deal(3)))
}

func TestDeckRemove(t *testing.T) {
	t.Parallel()
	d := NewDeck(rand.New(rand.NewPCG(3, 3)))
	dead := MustParseCards("As Ks 2c")
	d.Remove(dead...)
	assert.Equal(t, 49, d.CardsRemaining())

	deadSet := NewCardSet(dead...)
	for _, c := range d.Deal(49) {
		assert.False(t, deadSet.Contains(c), "removed card %s was dealt", c)
	}

	d.Reset()
	assert.Equal(t, 52, d.CardsRemaining())
}

func TestDeckDealAfterPartialDeal(t *testing.T) {
	t.Parallel()
	d := NewDeck(rand.New(rand.NewPCG(5, 5)))
	require.Len(t, d.Deal(50), 50)
	assert.Equal(t, 2, d.CardsRemaining())
	assert.Nil(t, d.Deal(3))
	assert.Len(t, d.Deal(2), 2)
}
