package cards

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShuffleProducesFullDeck(t *testing.T) {
	seed := [32]byte{1, 2, 3}
	deck := Shuffle(seed)

	seen := make(map[Card]bool, DeckSize)
	for _, c := range deck {
		require.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
	}
	require.Len(t, seen, DeckSize)
}

func TestShuffleDeterministic(t *testing.T) {
	seed := [32]byte{9, 9, 9}
	a := Shuffle(seed)
	b := Shuffle(seed)
	require.Equal(t, a, b, "shuffle(s) must equal shuffle(s) bit-for-bit")
}

func TestShuffleDistinctSeedsDiffer(t *testing.T) {
	a := Shuffle([32]byte{1})
	b := Shuffle([32]byte{2})
	require.NotEqual(t, a, b)
}

func TestDeckDrawExhaustion(t *testing.T) {
	d := NewDeck([32]byte{5})
	for i := 0; i < DeckSize; i++ {
		_, ok := d.Draw()
		require.True(t, ok)
		require.Equal(t, DeckSize-1-i, d.Size())
	}
	_, ok := d.Draw()
	require.False(t, ok, "drawing from an empty deck must fail")
}

func TestCardOrdinalRoundTrip(t *testing.T) {
	for ord := uint8(0); ord < DeckSize; ord++ {
		c, err := FromOrdinal(ord)
		require.NoError(t, err)
		require.Equal(t, ord, c.Ordinal())

		data, err := c.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, data, 1)

		var back Card
		require.NoError(t, back.UnmarshalBinary(data))
		require.Equal(t, c, back)
	}
}

func TestNewRejectsOutOfRange(t *testing.T) {
	_, err := New(Suit(4), Two)
	require.Error(t, err)
	_, err = New(Spades, Rank(13))
	require.Error(t, err)
}
