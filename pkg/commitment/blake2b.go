package commitment

import (
	"bytes"

	"golang.org/x/crypto/blake2b"

	"github.com/privatehold/engine/pkg/cards"
)

// blake2bScheme is the current commit-reveal dealing scheme: each
// card is bound via a keyed BLAKE2b-256 hash over (card ordinal,
// nonce), keyed by the game's dealer secret. At reveal time Table
// recomputes the hash from the claimed card and nonce and checks
// bit-equality.
//
// golang.org/x/crypto is promoted here from an indirect dependency to
// a direct one; see DESIGN.md.
type blake2bScheme struct {
	dealerSecret [32]byte
}

// NewBlake2b constructs the default dealing scheme for one game. The
// dealer secret must never be serialized into any message or exposed
// in an observable projection during PreFlop…River.
func NewBlake2b(dealerSecret [32]byte) Scheme {
	return &blake2bScheme{dealerSecret: dealerSecret}
}

func (b *blake2bScheme) Name() string { return "commit-reveal/blake2b" }

func (b *blake2bScheme) SealDeal(holeCards [2]cards.Card, randomness [32]byte) ([2]Commitment, MaterialToPlayer) {
	var commitments [2]Commitment
	var opening [2][]byte

	for i, card := range holeCards {
		nonce := b.deriveNonce(randomness, i)
		opening[i] = nonce
		commitments[i] = b.commit(card, nonce)
	}

	return commitments, MaterialToPlayer{Cards: holeCards, Opening: opening}
}

func (b *blake2bScheme) VerifyReveal(commitments [2]Commitment, payload RevealPayload) ([2]cards.Card, bool) {
	for i, card := range payload.Cards {
		got := b.commit(card, payload.Opening[i])
		if !bytes.Equal(got, commitments[i]) {
			return [2]cards.Card{}, false
		}
	}
	return payload.Cards, true
}

// deriveNonce produces a per-card nonce deterministically from the
// per-game randomness, so SealDeal stays a pure function of its
// inputs (no internal RNG, per §5's determinism requirement).
func (b *blake2bScheme) deriveNonce(randomness [32]byte, cardIndex int) []byte {
	h, _ := blake2b.New256(b.dealerSecret[:])
	h.Write(randomness[:])
	h.Write([]byte{byte(cardIndex), 'n'})
	return h.Sum(nil)
}

func (b *blake2bScheme) commit(card cards.Card, nonce []byte) Commitment {
	h, _ := blake2b.New256(b.dealerSecret[:])
	h.Write([]byte{card.Ordinal()})
	h.Write(nonce)
	return Commitment(h.Sum(nil))
}
