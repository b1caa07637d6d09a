package table

import (
	"golang.org/x/crypto/blake2b"

	"github.com/privatehold/engine/pkg/cards"
	"github.com/privatehold/engine/pkg/protocol"
	"github.com/privatehold/engine/pkg/runtime"
)

// deriveSeed computes a public, precomputable 32-byte seed from the
// game and partition identities. This entropy source is predictable
// and unfit for adversarial play in production — a multi-party
// commit-reveal or runtime-provided randomness beacon would replace
// it — but this reference keeps the simple derivation and documents
// the limitation rather than guessing at an unbuilt beacon API.
func deriveSeed(gameID uint64, dealer runtime.PartitionID, p0, p1 runtime.PartitionID, blockEntropy uint64) [32]byte {
	h, _ := blake2b.New256(nil)
	writeUint64(h, gameID)
	h.Write([]byte(dealer))
	h.Write([]byte(p0))
	h.Write([]byte(p1))
	writeUint64(h, blockEntropy)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// deriveDealerSecret derives the dealer secret the same way, tagged
// distinctly so it never collides with the deck seed.
func deriveDealerSecret(gameID uint64, dealer runtime.PartitionID, p0, p1 runtime.PartitionID, blockEntropy uint64) [32]byte {
	h, _ := blake2b.New256(nil)
	h.Write([]byte("dealer-secret"))
	writeUint64(h, gameID)
	h.Write([]byte(dealer))
	h.Write([]byte(p0))
	h.Write([]byte(p1))
	writeUint64(h, blockEntropy)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func writeUint64(h interface{ Write([]byte) (int, error) }, v uint64) {
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (56 - 8*i))
	}
	h.Write(b[:])
}

// beginDealLocked runs the deal protocol. Caller must hold t.mu.
func (t *Table) beginDealLocked() error {
	p0, p1 := t.state.Players[0], t.state.Players[1]

	blockEntropy := t.clock.BlockHeight()
	seed := deriveSeed(t.state.GameID, t.partition, p0.Partition, p1.Partition, blockEntropy)
	t.state.DeckSeed = &seed
	t.dealerSecret = deriveDealerSecret(t.state.GameID, t.partition, p0.Partition, p1.Partition, blockEntropy)
	t.scheme = t.cfg.Scheme(t.dealerSecret)
	t.log.Debugf("table: game %d dealing under scheme %s", t.state.GameID, t.scheme.Name())

	deck := cards.Shuffle(seed)
	holeCards := map[protocol.Seat][2]cards.Card{
		protocol.Player1: {deck[0], deck[1]},
		protocol.Player2: {deck[2], deck[3]},
	}
	flop := []cards.Card{deck[4], deck[5], deck[6]}
	turn := deck[7]
	river := deck[8]
	t.community = communityReservoir{flop: flop, turn: turn, river: river}

	for _, p := range t.state.Players {
		hole := holeCards[p.Seat]
		randomness := dealRandomness(seed, p.Seat)
		commitments, material := t.scheme.SealDeal(hole, randomness)
		p.Commitments = commitments

		t.sendTo(p.Seat, protocol.DealCardsMsg{
			GameID:             t.state.GameID,
			CardsOrCommitments: hole,
			DealerMaterial:     material,
		})
	}

	t.state.Phase = protocol.PreFlop
	return t.postBlindsLocked()
}

// dealRandomness derives per-seat randomness for the dealing scheme
// from the shared deck seed, so SealDeal stays a pure function of its
// inputs with no independent RNG draw.
func dealRandomness(seed [32]byte, seat protocol.Seat) [32]byte {
	h, _ := blake2b.New256(nil)
	h.Write(seed[:])
	h.Write([]byte{byte(seat)})
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (t *Table) postBlindsLocked() error {
	button := t.playerAt(*t.state.DealerButton)
	other := t.playerAt(t.state.DealerButton.Other())

	button.CurrentBet = t.cfg.SmallBlind
	button.TotalCommitted = t.cfg.SmallBlind
	other.CurrentBet = t.cfg.BigBlind
	other.TotalCommitted = t.cfg.BigBlind

	t.state.Pot = t.cfg.SmallBlind + t.cfg.BigBlind
	t.state.CurrentBet = t.cfg.BigBlind
	t.state.MinRaise = t.cfg.BigBlind
	turn := *t.state.DealerButton
	t.state.TurnSeat = &turn
	t.state.ActionsThisRound = 0
	t.state.LastActionBlock = t.clock.BlockHeight()

	t.log.Infof("table: game %d dealt, blinds posted, %s to act", t.state.GameID, turn)

	t.sendYourTurnLocked()
	return nil
}
