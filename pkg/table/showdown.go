package table

import (
	"github.com/privatehold/engine/pkg/cards"
	"github.com/privatehold/engine/pkg/evaluator"
	"github.com/privatehold/engine/pkg/protocol"
	"github.com/privatehold/engine/pkg/runtime"
)

// enterShowdownLocked requests a reveal from both seats.
func (t *Table) enterShowdownLocked() error {
	t.state.Phase = protocol.Showdown
	t.state.TurnSeat = nil
	t.state.LastActionBlock = t.clock.BlockHeight()
	t.log.Infof("table: game %d entering showdown", t.state.GameID)

	for _, p := range t.state.Players {
		if p.active() {
			t.sendTo(p.Seat, protocol.RequestRevealMsg{GameID: t.state.GameID})
		}
	}
	return nil
}

// RelayReveal is invoked only by the co-resident relay, which has
// already authenticated sender. Reveal-verification failure is not an
// illegal-operation rejection; it mutates state via auto-forfeit.
func (t *Table) RelayReveal(sender runtime.PartitionID, msg protocol.RevealCardsMsg) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Phase != protocol.Showdown {
		return ErrWrongPhase
	}
	if msg.GameID != t.state.GameID {
		return ErrWrongGame
	}
	player, err := t.seatOf(sender)
	if err != nil {
		return err
	}
	if player.resolved() {
		return ErrAlreadyResolved
	}

	dealt, ok := t.scheme.VerifyReveal(player.Commitments, msg.Payload)
	if !ok {
		player.HasForfeited = true
		t.log.Warnf("table: %s reveal failed verification, forfeited", player.Seat)
		return t.resolveIfOneRemainsLocked()
	}

	player.HasRevealed = true
	player.RevealedCards = &dealt
	t.log.Infof("table: %s revealed", player.Seat)

	return t.maybeSettleLocked()
}

// resolveIfOneRemainsLocked is called right after a Fold (betting
// round) or a failed reveal (showdown) marks exactly one seat
// inactive; with only two seats, that always leaves exactly one seat
// active, so settlement proceeds immediately.
func (t *Table) resolveIfOneRemainsLocked() error {
	return t.settleLocked()
}

// maybeSettleLocked checks whether both seats have resolved (revealed,
// folded, or forfeited) and, if so, runs settlement.
func (t *Table) maybeSettleLocked() error {
	for _, p := range t.state.Players {
		if p.active() && !p.resolved() {
			return nil
		}
	}
	return t.settleLocked()
}

// settleLocked runs the settlement protocol.
func (t *Table) settleLocked() error {
	t.state.Phase = protocol.Settlement

	var remaining []*PlayerInfo
	for _, p := range t.state.Players {
		if p.active() {
			remaining = append(remaining, p)
		}
	}

	if len(remaining) == 1 {
		t.payOutSingleWinnerLocked(remaining[0])
		return t.finishLocked()
	}
	if len(remaining) == 0 {
		// Both seats forfeited at showdown (neither revealed before the
		// shared deadline): no hand comparison is possible. Split the
		// pot under the same odd-chip rule rather than guessing a winner.
		t.splitPotLocked(t.state.Players[0], t.state.Players[1])
		return t.finishLocked()
	}

	p0, p1 := t.state.Players[0], t.state.Players[1]
	r0, err := evaluator.Evaluate(sevenCardHand(p0, t.state.CommunityCards))
	if err != nil {
		return err
	}
	r1, err := evaluator.Evaluate(sevenCardHand(p1, t.state.CommunityCards))
	if err != nil {
		return err
	}

	switch {
	case r0.Equal(r1):
		t.splitPotLocked(p0, p1)
	case r1.Less(r0):
		t.payOutSingleWinnerLocked(p0)
	default:
		t.payOutSingleWinnerLocked(p1)
	}

	return t.finishLocked()
}

func sevenCardHand(p *PlayerInfo, community []cards.Card) []cards.Card {
	hand := make([]cards.Card, 0, 7)
	hand = append(hand, p.RevealedCards[0], p.RevealedCards[1])
	hand = append(hand, community...)
	return hand
}

// payOutSingleWinnerLocked awards the entire pot to winner. opponentCards
// is populated in GameResult only when the loser actually revealed (a
// real showdown), never on a fold or forfeit win.
func (t *Table) payOutSingleWinnerLocked(winner *PlayerInfo) {
	winnerSeat := winner.Seat
	t.state.Winner = &winnerSeat
	loser := t.playerAt(winnerSeat.Other())

	var winnerOpponentCards, loserOpponentCards *[2]cards.Card
	if loser.HasRevealed {
		winnerOpponentCards = loser.RevealedCards
		loserOpponentCards = winner.RevealedCards
	}

	t.sendTo(winnerSeat, protocol.GameResultMsg{
		GameID:        t.state.GameID,
		Won:           true,
		Payout:        t.state.Pot,
		OpponentCards: winnerOpponentCards,
	})
	t.sendTo(loser.Seat, protocol.GameResultMsg{
		GameID:        t.state.GameID,
		Won:           false,
		Payout:        0,
		OpponentCards: loserOpponentCards,
	})
}

// splitPotLocked divides the pot evenly; an odd chip goes to the
// dealer_button seat.
func (t *Table) splitPotLocked(p0, p1 *PlayerInfo) {
	t.state.Winner = nil
	half := t.state.Pot / 2
	remainder := t.state.Pot % 2

	payouts := map[protocol.Seat]uint64{p0.Seat: half, p1.Seat: half}
	payouts[*t.state.DealerButton] += remainder

	for _, p := range []*PlayerInfo{p0, p1} {
		opponent := t.playerAt(p.Seat.Other())
		t.sendTo(p.Seat, protocol.GameResultMsg{
			GameID:        t.state.GameID,
			Won:           false,
			Payout:        payouts[p.Seat],
			OpponentCards: opponent.RevealedCards,
		})
	}
}

func (t *Table) finishLocked() error {
	t.dealerSecret = [32]byte{}
	t.scheme = nil
	t.state.Phase = protocol.Finished
	t.log.Infof("table: game %d finished, winner=%v", t.state.GameID, t.state.Winner)
	return nil
}

// TriggerTimeoutCheck consults last_action_block against the runtime's
// current block height; if the configured deadline has passed while
// awaiting a specific seat's action or reveal, that seat is
// auto-forfeited. It is a local operation called directly on Table
// (not relayed through a Hand); either player or an external watchdog
// may call it opportunistically, and it is a no-op if no deadline passed.
func (t *Table) TriggerTimeoutCheck(gameID uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gameID != t.state.GameID {
		return ErrWrongGame
	}
	now := t.clock.BlockHeight()
	if now < t.state.LastActionBlock+t.cfg.Deadline {
		return nil
	}

	switch {
	case t.state.Phase.BettingRound() && t.state.TurnSeat != nil:
		stalled := t.playerAt(*t.state.TurnSeat)
		stalled.HasFolded = true
		t.log.Warnf("table: %s timed out, auto-folded", stalled.Seat)
		return t.resolveIfOneRemainsLocked()

	case t.state.Phase == protocol.Showdown:
		forfeitedAny := false
		for _, p := range t.state.Players {
			if p.active() && !p.resolved() {
				p.HasForfeited = true
				forfeitedAny = true
				t.log.Warnf("table: %s timed out at showdown, auto-forfeited", p.Seat)
			}
		}
		if forfeitedAny {
			return t.maybeSettleLocked()
		}
	}
	return nil
}
