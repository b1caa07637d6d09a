package evaluator

import (
	"math/rand"
	"testing"

	chehsunliu "github.com/chehsunliu/poker"
	"github.com/stretchr/testify/require"

	"github.com/privatehold/engine/pkg/cards"
)

// chehsunliu/poker is an independent 7-card hand evaluation library.
// It returns an opaque rank int (lower is better) and a category
// class, not the category+tiebreak-vector this package exposes, so it
// cannot serve as the evaluator itself (see DESIGN.md). It is wired in
// as a cross-check oracle instead: monotonicity is exercised here by
// asserting this evaluator's relative ordering agrees with
// chehsunliu's on random 7-card deals.
func toChehsunliu(t *testing.T, c cards.Card) chehsunliu.Card {
	t.Helper()
	var rankChar byte
	switch c.Rank {
	case cards.Two:
		rankChar = '2'
	case cards.Three:
		rankChar = '3'
	case cards.Four:
		rankChar = '4'
	case cards.Five:
		rankChar = '5'
	case cards.Six:
		rankChar = '6'
	case cards.Seven:
		rankChar = '7'
	case cards.Eight:
		rankChar = '8'
	case cards.Nine:
		rankChar = '9'
	case cards.Ten:
		rankChar = 'T'
	case cards.Jack:
		rankChar = 'J'
	case cards.Queen:
		rankChar = 'Q'
	case cards.King:
		rankChar = 'K'
	case cards.Ace:
		rankChar = 'A'
	}
	var suitChar byte
	switch c.Suit {
	case cards.Spades:
		suitChar = 's'
	case cards.Hearts:
		suitChar = 'h'
	case cards.Diamonds:
		suitChar = 'd'
	case cards.Clubs:
		suitChar = 'c'
	}
	return chehsunliu.NewCard(string([]byte{rankChar, suitChar}))
}

func randomSeven(t *testing.T, rng *rand.Rand) []cards.Card {
	t.Helper()
	deck := make([]cards.Card, 0, cards.DeckSize)
	for ord := uint8(0); ord < cards.DeckSize; ord++ {
		c, err := cards.FromOrdinal(ord)
		require.NoError(t, err)
		deck = append(deck, c)
	}
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck[:7]
}

func TestCrossCheckAgreesWithChehsunliu(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		a := randomSeven(t, rng)
		b := randomSeven(t, rng)

		resA, err := Evaluate(a)
		require.NoError(t, err)
		resB, err := Evaluate(b)
		require.NoError(t, err)

		chehA := make([]chehsunliu.Card, len(a))
		for i, c := range a {
			chehA[i] = toChehsunliu(t, c)
		}
		chehB := make([]chehsunliu.Card, len(b))
		for i, c := range b {
			chehB[i] = toChehsunliu(t, c)
		}

		rankA := chehsunliu.Evaluate(chehA) // lower is better in chehsunliu
		rankB := chehsunliu.Evaluate(chehB)

		switch {
		case rankA < rankB:
			require.True(t, resB.Less(resA), "chehsunliu says a beats b, our evaluator disagreed")
		case rankA > rankB:
			require.True(t, resA.Less(resB), "chehsunliu says b beats a, our evaluator disagreed")
		}
	}
}
