// Package commitment implements the dealing-scheme contract: dynamic
// dispatch over a tagged variant, not subclassing, so the commit-reveal
// scheme in production today can later be swapped for a
// zero-knowledge dealing/reveal proof pair without touching the Table
// state machine.
//
// Two implementations share the Scheme interface: Blake2b (the current
// commit-reveal default) and Pedersen (a group-element stand-in for a
// future zero-knowledge variant, exercising the same contract with a
// different cryptographic shape). Tests in this package parameterize
// over both.
package commitment

import (
	"github.com/privatehold/engine/pkg/cards"
)

// Commitment is an opaque, preimage-resistant binding to one card. Its
// length is scheme-dependent (32 bytes for the blake2b commit-reveal
// scheme, a compressed EC point for the Pedersen-style scheme), which
// is why it is a slice rather than a fixed array.
type Commitment []byte

// RevealPayload is what a player sends back at showdown to open the
// two commitments Table stored for their seat.
type RevealPayload struct {
	Cards   [2]cards.Card
	Opening [2][]byte
}

// MaterialToPlayer is what the player's Hand instance needs, alongside
// the cleartext cards, to author a RevealPayload later.
type MaterialToPlayer struct {
	Cards   [2]cards.Card
	Opening [2][]byte
}

// Scheme is the tagged-variant dealing-scheme contract. A Scheme
// instance is scoped to one game: it is constructed with that game's
// dealer secret and is never shared across games.
type Scheme interface {
	// Name identifies the scheme for logging/diagnostics.
	Name() string

	// SealDeal binds the two hole cards for one seat, returning the
	// commitments Table keeps and the material the player's Hand keeps.
	SealDeal(holeCards [2]cards.Card, randomness [32]byte) (commitments [2]Commitment, material MaterialToPlayer)

	// VerifyReveal checks a RevealPayload against the commitments
	// Table stored at deal time. On success it returns the opened
	// cards; on failure it signals rejection without partial state.
	VerifyReveal(commitments [2]Commitment, payload RevealPayload) (dealt [2]cards.Card, ok bool)
}
