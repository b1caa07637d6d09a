package hand

import (
	"github.com/privatehold/engine/pkg/cards"
	"github.com/privatehold/engine/pkg/commitment"
	"github.com/privatehold/engine/pkg/runtime"
)

// Config is the Hand application's instantiation argument: which
// partition and application the Table lives at.
type Config struct {
	TableChain runtime.PartitionID
	TableApp   runtime.ApplicationID
}

// Result mirrors the GameResult a player instance receives.
type Result struct {
	Won           bool
	Payout        uint64
	OpponentCards *[2]cards.Card
}

// localView is everything a player instance's Hand holds locally
// between games; it is cleared on each DealCards, per §3's Lifecycle.
type localView struct {
	gameID         uint64
	holeCards      *[2]cards.Card
	material       *commitment.MaterialToPlayer
	myTurn         bool
	toCall         uint64
	minRaise       uint64
	communityCards []cards.Card
	awaitingReveal bool
	result         *Result
}
