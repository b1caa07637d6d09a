package table

import (
	"fmt"

	"github.com/privatehold/engine/pkg/cards"
	"github.com/privatehold/engine/pkg/commitment"
	"github.com/privatehold/engine/pkg/protocol"
	"github.com/privatehold/engine/pkg/runtime"
)

// SchemeFactory builds a fresh dealing scheme scoped to one game's
// dealer secret. Swapping the factory is the entire surface area
// needed to move from the commit-reveal default to the EC-commitment
// stand-in for a future zero-knowledge variant.
type SchemeFactory func(dealerSecret [32]byte) commitment.Scheme

// Config is the Table application's instantiation argument.
type Config struct {
	MinStake   uint64
	MaxStake   uint64
	SmallBlind uint64
	BigBlind   uint64
	// Deadline is the number of blocks that may elapse after
	// LastActionBlock before TriggerTimeoutCheck auto-forfeits the
	// seat the table is waiting on.
	Deadline uint64
	// Scheme selects the dealing scheme; NewBlake2b is used if nil.
	Scheme SchemeFactory
}

// Validate enforces 0 < small_blind < big_blind <= min_stake <= max_stake.
func (c Config) Validate() error {
	if !(0 < c.SmallBlind && c.SmallBlind < c.BigBlind && c.BigBlind <= c.MinStake && c.MinStake <= c.MaxStake) {
		return fmt.Errorf("table: config must satisfy 0 < small_blind < big_blind <= min_stake <= max_stake, got %+v", c)
	}
	return nil
}

// PlayerInfo is one seat's state.
type PlayerInfo struct {
	Seat           protocol.Seat
	Partition      runtime.PartitionID
	HandApp        runtime.ApplicationID
	Stake          uint64
	CurrentBet     uint64
	TotalCommitted uint64
	HasFolded      bool
	HasForfeited   bool
	HasRevealed    bool
	RevealedCards  *[2]cards.Card
	Commitments    [2]commitment.Commitment
}

// resolved reports whether this seat's involvement in the current game
// is settled one way or another (folded, forfeited, or revealed).
func (p *PlayerInfo) resolved() bool {
	return p.HasFolded || p.HasForfeited || p.HasRevealed
}

// active reports whether this seat is still contesting the pot.
func (p *PlayerInfo) active() bool {
	return !p.HasFolded && !p.HasForfeited
}

// resetForNewGame clears the per-game fields that reset on the
// Finished -> WaitingForPlayers transition, keeping seat/partition/stake.
func (p *PlayerInfo) resetForNewGame() {
	p.CurrentBet = 0
	p.TotalCommitted = 0
	p.HasFolded = false
	p.HasForfeited = false
	p.HasRevealed = false
	p.RevealedCards = nil
	p.Commitments = [2]commitment.Commitment{}
}

// State is the table's full internal state.
type State struct {
	GameID           uint64
	Phase            protocol.GamePhase
	Players          []*PlayerInfo
	Pot              uint64
	CurrentBet       uint64
	MinRaise         uint64
	CommunityCards   []cards.Card
	TurnSeat         *protocol.Seat
	Winner           *protocol.Seat
	DealerButton     *protocol.Seat
	DeckSeed         *[32]byte
	ActionsThisRound uint32
	LastActionBlock  uint64
}

// Projection is the read-only view external UIs may see; it
// deliberately omits the dealer secret and never carries hole cards.
// DeckSeed is populated only from Showdown onward.
type Projection struct {
	Phase          protocol.GamePhase
	Pot            uint64
	CommunityCards []cards.Card
	CurrentBet     uint64
	MinRaise       uint64
	TurnSeat       *protocol.Seat
	Players        []SeatProjection
	DeckSeed       *[32]byte
	Winner         *protocol.Seat
}

// SeatProjection is one seat's externally observable fields.
type SeatProjection struct {
	Seat        protocol.Seat
	CurrentBet  uint64
	HasFolded   bool
	HasRevealed bool
}
