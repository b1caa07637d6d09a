package table

import (
	"github.com/privatehold/engine/pkg/cards"
	"github.com/privatehold/engine/pkg/protocol"
	"github.com/privatehold/engine/pkg/runtime"
)

// RelayBetAction is invoked only by the co-resident relay, which has
// already authenticated sender. It applies one betting action, or
// rejects it with a sentinel error (no state change) if it is illegal.
func (t *Table) RelayBetAction(sender runtime.PartitionID, msg protocol.BetActionMsg) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.state.Phase.BettingRound() {
		return ErrWrongPhase
	}
	if msg.GameID != t.state.GameID {
		return ErrWrongGame
	}
	player, err := t.seatOf(sender)
	if err != nil {
		return err
	}
	if t.state.TurnSeat == nil || *t.state.TurnSeat != player.Seat {
		return ErrWrongSeat
	}

	opponent := t.playerAt(player.Seat.Other())

	switch msg.Action.Kind {
	case protocol.Fold:
		player.HasFolded = true
		t.log.Infof("table: %s folds", player.Seat)
		return t.resolveIfOneRemainsLocked()

	case protocol.Check:
		if t.state.CurrentBet != player.CurrentBet {
			return ErrWrongSeat
		}

	case protocol.Call:
		if t.state.CurrentBet <= player.CurrentBet {
			return ErrWrongSeat
		}
		delta := t.state.CurrentBet - player.CurrentBet
		if delta > remainingStake(player) {
			delta = remainingStake(player)
		}
		player.CurrentBet += delta
		player.TotalCommitted += delta
		t.state.Pot += delta

	case protocol.Raise:
		if msg.Action.Amount < t.state.CurrentBet+t.state.MinRaise {
			return ErrRaiseTooSmall
		}
		delta := msg.Action.Amount - player.CurrentBet
		if delta > remainingStake(player) {
			return ErrInsufficientChips
		}
		t.state.MinRaise = msg.Action.Amount - t.state.CurrentBet
		t.state.CurrentBet = msg.Action.Amount
		player.CurrentBet = msg.Action.Amount
		player.TotalCommitted += delta
		t.state.Pot += delta

	case protocol.AllIn:
		remaining := remainingStake(player)
		allInTotal := player.CurrentBet + remaining
		delta := remaining
		if allInTotal > t.state.CurrentBet {
			t.state.MinRaise = allInTotal - t.state.CurrentBet
			t.state.CurrentBet = allInTotal
		}
		player.CurrentBet = allInTotal
		player.TotalCommitted += delta
		t.state.Pot += delta

	default:
		return ErrWrongSeat
	}

	t.state.ActionsThisRound++
	next := opponent.Seat
	t.state.TurnSeat = &next
	t.state.LastActionBlock = t.clock.BlockHeight()

	if t.roundCompleteLocked() {
		return t.advanceRoundLocked()
	}

	t.sendYourTurnLocked()
	return nil
}

// remainingStake is how much more a seat can commit this game.
func remainingStake(p *PlayerInfo) uint64 {
	if p.TotalCommitted >= p.Stake {
		return 0
	}
	return p.Stake - p.TotalCommitted
}

// roundCompleteLocked holds once both seats have acted at least once
// this round and their current bets are equal.
func (t *Table) roundCompleteLocked() bool {
	if len(t.state.Players) != 2 {
		return false
	}
	return t.state.ActionsThisRound >= 2 && t.state.Players[0].CurrentBet == t.state.Players[1].CurrentBet
}

// advanceRoundLocked resets the betting round and moves the phase
// forward, revealing the next tranche of community cards.
func (t *Table) advanceRoundLocked() error {
	for _, p := range t.state.Players {
		p.CurrentBet = 0
	}
	t.state.CurrentBet = 0
	t.state.MinRaise = t.cfg.BigBlind
	t.state.ActionsThisRound = 0

	switch t.state.Phase {
	case protocol.PreFlop:
		t.state.Phase = protocol.Flop
		t.state.CommunityCards = append(t.state.CommunityCards, t.community.flop...)
		t.broadcastCommunityLocked()
	case protocol.Flop:
		t.state.Phase = protocol.Turn
		t.state.CommunityCards = append(t.state.CommunityCards, t.community.turn)
		t.broadcastCommunityLocked()
	case protocol.Turn:
		t.state.Phase = protocol.River
		t.state.CommunityCards = append(t.state.CommunityCards, t.community.river)
		t.broadcastCommunityLocked()
	case protocol.River:
		return t.enterShowdownLocked()
	default:
		return ErrWrongPhase
	}

	// In post-flop rounds the non-button seat acts first.
	firstToAct := t.state.DealerButton.Other()
	t.state.TurnSeat = &firstToAct
	t.state.LastActionBlock = t.clock.BlockHeight()
	t.sendYourTurnLocked()
	return nil
}

func (t *Table) broadcastCommunityLocked() {
	payload := protocol.CommunityCardsMsg{
		GameID: t.state.GameID,
		Phase:  t.state.Phase,
		Cards:  append([]cards.Card{}, t.state.CommunityCards...),
	}
	t.sendTo(protocol.Player1, payload)
	t.sendTo(protocol.Player2, payload)
}

func (t *Table) sendYourTurnLocked() {
	if t.state.TurnSeat == nil {
		return
	}
	acting := t.playerAt(*t.state.TurnSeat)
	toCall := uint64(0)
	if t.state.CurrentBet > acting.CurrentBet {
		toCall = t.state.CurrentBet - acting.CurrentBet
	}
	t.sendTo(*t.state.TurnSeat, protocol.YourTurnMsg{
		GameID:   t.state.GameID,
		Pot:      t.state.Pot,
		ToCall:   toCall,
		MinRaise: t.state.MinRaise,
	})
}
