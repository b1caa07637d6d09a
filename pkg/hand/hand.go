// Package hand implements the Hand application: a single
// implementation that behaves as a player instance on a player's own
// partition, and as the stateless relay when co-resident with Table on
// the dealer partition, per §4.2.
package hand

import (
	"sync"

	"github.com/decred/slog"

	"github.com/privatehold/engine/pkg/cards"
	"github.com/privatehold/engine/pkg/commitment"
	"github.com/privatehold/engine/pkg/protocol"
	"github.com/privatehold/engine/pkg/runtime"
)

// TableCaller is the in-partition, authenticated call surface the
// relay uses to forward a player's message to Table. It is exactly
// Table's three Relay* methods; Hand depends on this interface rather
// than *table.Table to keep the relay's coupling to the concrete Table
// type out of this package.
type TableCaller interface {
	RelayJoinTable(sender runtime.PartitionID, handApp runtime.ApplicationID, msg protocol.JoinTableMsg) error
	RelayBetAction(sender runtime.PartitionID, msg protocol.BetActionMsg) error
	RelayReveal(sender runtime.PartitionID, msg protocol.RevealCardsMsg) error
}

// Hand is the player-or-relay application described in §4.2.
type Hand struct {
	mu sync.Mutex

	cfg       Config
	partition runtime.PartitionID
	appID     runtime.ApplicationID
	outbox    runtime.Outbox
	log       slog.Logger

	isRelay     bool
	tableCaller TableCaller

	view localView
}

// New constructs a Hand instance. When partition equals cfg.TableChain
// this instance is the relay and tableCaller must be non-nil (the
// Table application it is co-resident with); otherwise it is a player
// instance and tableCaller is ignored.
func New(cfg Config, partition runtime.PartitionID, appID runtime.ApplicationID, rt *runtime.Memory, tableCaller TableCaller, log slog.Logger) *Hand {
	h := &Hand{
		cfg:       cfg,
		partition: partition,
		appID:     appID,
		outbox:    rt.Outbox(partition, appID),
		log:       log,
		isRelay:   partition == cfg.TableChain,
	}
	if h.isRelay {
		h.tableCaller = tableCaller
	}
	rt.Register(partition, appID, h)
	return h
}

// Deliver implements runtime.Handler. On the relay instance it
// authenticates the sender (already done by the runtime; env.Source is
// unforgeable here), checks the message kind against the player->table
// allow-list, and translates it into an in-partition Relay* call that
// preserves the original sender partition. Anything it does not
// recognize as player->table is swallowed without state change (§9
// OQ5). On a player instance it updates local view state from Table's
// messages and swallows anything else.
func (h *Hand) Deliver(env runtime.Envelope) error {
	if h.isRelay {
		return h.deliverAsRelay(env)
	}
	return h.deliverAsPlayer(env)
}

func (h *Hand) deliverAsRelay(env runtime.Envelope) error {
	if !protocol.RelayedPlayerKinds[env.Payload.Kind()] {
		h.log.Debugf("hand(relay): swallowing unrecognized kind %s from %s", env.Payload.Kind(), env.Source)
		return nil
	}

	switch msg := env.Payload.(type) {
	case protocol.JoinTableMsg:
		return h.tableCaller.RelayJoinTable(env.Source, env.SourceApp, msg)
	case protocol.BetActionMsg:
		return h.tableCaller.RelayBetAction(env.Source, msg)
	case protocol.RevealCardsMsg:
		return h.tableCaller.RelayReveal(env.Source, msg)
	default:
		h.log.Debugf("hand(relay): allow-listed kind %s has no translator, swallowing", env.Payload.Kind())
		return nil
	}
}

func (h *Hand) deliverAsPlayer(env runtime.Envelope) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch msg := env.Payload.(type) {
	case protocol.DealCardsMsg:
		h.view = localView{
			gameID:    msg.GameID,
			holeCards: &msg.CardsOrCommitments,
			material:  &msg.DealerMaterial,
		}
		h.log.Infof("hand: dealt hole cards for game %d", msg.GameID)

	case protocol.YourTurnMsg:
		if msg.GameID != h.view.gameID {
			return nil
		}
		h.view.myTurn = true
		h.view.toCall = msg.ToCall
		h.view.minRaise = msg.MinRaise

	case protocol.CommunityCardsMsg:
		if msg.GameID != h.view.gameID {
			return nil
		}
		h.view.communityCards = msg.Cards

	case protocol.RequestRevealMsg:
		if msg.GameID != h.view.gameID {
			return nil
		}
		h.view.awaitingReveal = true

	case protocol.GameResultMsg:
		if msg.GameID != h.view.gameID {
			return nil
		}
		h.view.result = &Result{Won: msg.Won, Payout: msg.Payout, OpponentCards: msg.OpponentCards}
		h.view.awaitingReveal = false

	default:
		h.log.Debugf("hand(player): swallowing unrecognized kind %s", env.Payload.Kind())
	}
	return nil
}

// JoinTable emits a JoinTable message to the Hand application on the
// Table partition; the relay there forwards it as RelayJoinTable.
func (h *Hand) JoinTable(stake uint64) error {
	return h.outbox.Send(h.cfg.TableChain, h.appID, protocol.JoinTableMsg{Stake: stake})
}

// SubmitBet checks two local conditions before emitting a BetAction
// message: it must be this seat's turn, and a Raise amount must not be
// below the min_raise last advertised in YourTurn. It does not check
// the action against the seat's stake, and a Raise that passes here can
// still be below Table's current_bet + min_raise; authoritative
// legality is Table's to decide.
func (h *Hand) SubmitBet(action protocol.BetAction) error {
	h.mu.Lock()
	if !h.view.myTurn {
		h.mu.Unlock()
		return ErrNotMyTurn
	}
	if action.Kind == protocol.Raise && action.Amount < h.view.minRaise {
		h.mu.Unlock()
		return ErrBetOutOfRange
	}

	h.view.myTurn = false
	msg := protocol.BetActionMsg{
		GameID: h.view.gameID,
		Action: action,
	}
	// Release the lock before sending: delivery is synchronous and may
	// call back into this Hand's Deliver.
	h.mu.Unlock()
	return h.outbox.Send(h.cfg.TableChain, h.appID, msg)
}

// Reveal is only valid after a RequestReveal has been received for the
// current game. It constructs the reveal payload from the stored hole
// cards and opening material and emits a RevealCards message.
func (h *Hand) Reveal() error {
	h.mu.Lock()
	if !h.view.awaitingReveal || h.view.holeCards == nil || h.view.material == nil {
		h.mu.Unlock()
		return ErrNoRevealPending
	}

	payload := commitment.RevealPayload{
		Cards:   *h.view.holeCards,
		Opening: h.view.material.Opening,
	}
	msg := protocol.RevealCardsMsg{
		GameID:  h.view.gameID,
		Payload: payload,
	}
	// Release the lock before sending: delivery is synchronous and may
	// call back into this Hand's Deliver.
	h.mu.Unlock()
	return h.outbox.Send(h.cfg.TableChain, h.appID, msg)
}

// View is the observable projection Hand exposes to its own partition
// per §6: hole cards and the most recent game result.
type View struct {
	HoleCards *[2]cards.Card
	Result    *Result
}

// View returns a snapshot of this player instance's local state.
func (h *Hand) View() View {
	h.mu.Lock()
	defer h.mu.Unlock()
	return View{HoleCards: h.view.holeCards, Result: h.view.result}
}
