package commitment

import (
	"bytes"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/blake2b"

	"github.com/privatehold/engine/pkg/cards"
)

// pedersenScheme commits to a card as an elliptic-curve point
// k*G, where k = blind + ordinal + 1 (mod the group order) and blind is
// derived deterministically from the game's randomness and dealer
// secret. It is a single-generator stand-in for the additively
// homomorphic, discrete-log-hiding commitments a future proof that the
// two committed cards are distinct cards of the shuffled deck would
// need; it shares Scheme's exact interface with blake2bScheme so
// Table can swap schemes without caring which one is in effect.
//
// github.com/decred/dcrd/dcrec/secp256k1/v4 is promoted here from an
// indirect dependency to a direct one; see DESIGN.md.
type pedersenScheme struct {
	dealerSecret [32]byte
}

// NewPedersen constructs the EC-commitment dealing scheme for one game.
func NewPedersen(dealerSecret [32]byte) Scheme {
	return &pedersenScheme{dealerSecret: dealerSecret}
}

func (p *pedersenScheme) Name() string { return "ec-commitment/secp256k1" }

func (p *pedersenScheme) SealDeal(holeCards [2]cards.Card, randomness [32]byte) ([2]Commitment, MaterialToPlayer) {
	var commitments [2]Commitment
	var opening [2][]byte

	for i, card := range holeCards {
		blind := p.deriveBlind(randomness, i)
		opening[i] = blind
		commitments[i] = p.commit(card, blind)
	}

	return commitments, MaterialToPlayer{Cards: holeCards, Opening: opening}
}

func (p *pedersenScheme) VerifyReveal(commitments [2]Commitment, payload RevealPayload) ([2]cards.Card, bool) {
	for i, card := range payload.Cards {
		got := p.commit(card, payload.Opening[i])
		if !bytes.Equal(got, commitments[i]) {
			return [2]cards.Card{}, false
		}
	}
	return payload.Cards, true
}

func (p *pedersenScheme) deriveBlind(randomness [32]byte, cardIndex int) []byte {
	h, _ := blake2b.New256(p.dealerSecret[:])
	h.Write(randomness[:])
	h.Write([]byte{byte(cardIndex), 'b'})
	return h.Sum(nil)
}

// commit computes k*G where k = blind + ordinal + 1 (mod n) and serializes
// the resulting point in compressed form.
func (p *pedersenScheme) commit(card cards.Card, blind []byte) Commitment {
	var blindScalar secp256k1.ModNScalar
	blindScalar.SetByteSlice(blind)

	var ordinalScalar secp256k1.ModNScalar
	ordinalScalar.SetInt(uint32(card.Ordinal()) + 1) // +1: ordinal 0 must not collapse to the identity scalar

	blindScalar.Add(&ordinalScalar)

	priv := secp256k1.NewPrivateKey(&blindScalar)
	return Commitment(priv.PubKey().SerializeCompressed())
}
