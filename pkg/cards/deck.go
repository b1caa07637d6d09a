package cards

import "math/rand/v2"

// DeckSize is the number of unique cards in a standard deck.
const DeckSize = 52

// Shuffle is the pure function `shuffle(seed) -> [Card;52]` required by
// §3/§5 of the spec: any replicator applying the same 32-byte seed
// obtains bit-identical output. It is seeded with rand/v2's ChaCha8,
// the only deterministic, seedable PRNG available without reaching for
// a bespoke dependency (no library in the reference pack offers a
// seeded-shuffle primitive).
func Shuffle(seed [32]byte) [DeckSize]Card {
	var deck [DeckSize]Card
	for i := 0; i < DeckSize; i++ {
		// Ordinal is never out of range here, so the error is unreachable.
		c, _ := FromOrdinal(uint8(i))
		deck[i] = c
	}

	src := rand.NewChaCha8(seed)
	rng := rand.New(src)
	rng.Shuffle(DeckSize, func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// Deck is a drawable, ordered sequence of cards produced by Shuffle.
// Unlike the teacher's Deck, this one never re-shuffles itself and
// never carries its own RNG: determinism means the full 52-card order
// is fixed the instant the seed is known.
type Deck struct {
	cards []Card
}

// NewDeck wraps a freshly shuffled 52-card sequence for sequential draws.
func NewDeck(seed [32]byte) *Deck {
	shuffled := Shuffle(seed)
	cards := make([]Card, DeckSize)
	copy(cards, shuffled[:])
	return &Deck{cards: cards}
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, true
}

// Remaining returns a copy of the cards not yet drawn.
func (d *Deck) Remaining() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Size returns how many cards remain undrawn.
func (d *Deck) Size() int {
	return len(d.cards)
}
