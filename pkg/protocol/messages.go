package protocol

import (
	"github.com/privatehold/engine/pkg/cards"
	"github.com/privatehold/engine/pkg/commitment"
)

// MessageKind tags the payload carried by a cross-partition message
// (see runtime.Envelope). The relay's allow-list (pkg/hand) is keyed
// on these values, not on Go's dynamic type, so the wire-level kind
// stays stable independent of the payload's concrete struct.
type MessageKind string

const (
	KindJoinTable     MessageKind = "join_table"
	KindBetAction     MessageKind = "bet_action"
	KindRevealCards   MessageKind = "reveal_cards"
	KindDealCards     MessageKind = "deal_cards"
	KindYourTurn      MessageKind = "your_turn"
	KindCommunity     MessageKind = "community_cards"
	KindRequestReveal MessageKind = "request_reveal"
	KindGameResult    MessageKind = "game_result"
)

// Message is implemented by every cross-partition payload. Kind is
// used both for relay allow-listing and for runtime-level routing
// logs; it never changes once a payload type is defined.
type Message interface {
	Kind() MessageKind
}

// ---------- Player-Hand -> Table-Hand (relayed player->table kinds) ----------

// JoinTableMsg asks to be seated with the given stake. Table rejects it
// outside WaitingForPlayers, for a stake outside [min_stake, max_stake],
// for a stake that doesn't match an already-seated player's stake, or
// for a sender partition already seated.
type JoinTableMsg struct {
	Stake uint64
}

func (JoinTableMsg) Kind() MessageKind { return KindJoinTable }

// BetActionMsg carries one betting action for the current game.
type BetActionMsg struct {
	GameID uint64
	Action BetAction
}

func (BetActionMsg) Kind() MessageKind { return KindBetAction }

// RevealCardsMsg carries the opening of a seat's two hole-card
// commitments at showdown.
type RevealCardsMsg struct {
	GameID  uint64
	Payload commitment.RevealPayload
}

func (RevealCardsMsg) Kind() MessageKind { return KindRevealCards }

// ---------- Table -> Player-Hand ----------

// DealCardsMsg delivers one seat's hole cards and the material it will
// need later to author a RevealCardsMsg. CardsOrCommitments always
// carries the cleartext hole cards in the commit-reveal scheme
// implemented here; a future ZK variant would carry commitments plus a
// dealing proof instead, without changing this struct's shape.
type DealCardsMsg struct {
	GameID             uint64
	CardsOrCommitments [2]cards.Card
	DealerMaterial     commitment.MaterialToPlayer
}

func (DealCardsMsg) Kind() MessageKind { return KindDealCards }

// YourTurnMsg is advisory: it lets a player instance drive its local
// view (e.g. to prompt a bet) and carries no authoritative state.
type YourTurnMsg struct {
	GameID   uint64
	Pot      uint64
	ToCall   uint64
	MinRaise uint64
}

func (YourTurnMsg) Kind() MessageKind { return KindYourTurn }

// CommunityCardsMsg reports the full community board after one phase
// transition (3 cards on Flop, 4 on Turn, 5 on River).
type CommunityCardsMsg struct {
	GameID uint64
	Phase  GamePhase
	Cards  []cards.Card
}

func (CommunityCardsMsg) Kind() MessageKind { return KindCommunity }

// RequestRevealMsg asks the player instance to author a reveal.
type RequestRevealMsg struct {
	GameID uint64
}

func (RequestRevealMsg) Kind() MessageKind { return KindRequestReveal }

// GameResultMsg reports the outcome of one game to a player instance.
// OpponentCards is populated only when both seats reached a real
// showdown; it is nil on a fold/forfeit win, symmetrically for both
// players.
type GameResultMsg struct {
	GameID        uint64
	Won           bool
	Payout        uint64
	OpponentCards *[2]cards.Card
}

func (GameResultMsg) Kind() MessageKind { return KindGameResult }

// RelayedPlayerKinds is the allow-list the relay consults before
// forwarding a cross-partition message as an in-partition Table call:
// anything else is swallowed without state change.
var RelayedPlayerKinds = map[MessageKind]bool{
	KindJoinTable:   true,
	KindBetAction:   true,
	KindRevealCards: true,
}
