// Package table implements the dealer-partition state machine: game
// lifecycle, betting rounds, showdown, and settlement for one
// heads-up No-Limit Hold'em table.
package table

import (
	"sync"

	"github.com/decred/slog"

	"github.com/privatehold/engine/pkg/cards"
	"github.com/privatehold/engine/pkg/commitment"
	"github.com/privatehold/engine/pkg/protocol"
	"github.com/privatehold/engine/pkg/runtime"
)

// Table is the dealer-partition application. It holds no cleartext
// hole cards once dealt — only the commitments needed to verify a
// later reveal — so the dealer partition's observable projection (and
// indeed its own memory) never carries a player's hand during
// PreFlop..River; privacy holds by construction rather than by access
// control.
type Table struct {
	mu sync.Mutex

	cfg   Config
	state State

	partition runtime.PartitionID
	appID     runtime.ApplicationID
	outbox    runtime.Outbox
	clock     runtime.Clock
	log       slog.Logger

	dealerSecret [32]byte
	scheme       commitment.Scheme
	community    communityReservoir
}

// communityReservoir holds the cards reserved for Flop/Turn/River at
// deal time, computed once from the deck seed and revealed piecemeal
// as the betting rounds complete.
type communityReservoir struct {
	flop  []cards.Card
	turn  cards.Card
	river cards.Card
}

// New constructs a Table bound to (partition, appID) on the given
// runtime. It registers its own outbox but, unlike Hand, never
// registers itself as a runtime.Handler: nothing is ever routed
// directly to the Table application by address — player messages
// reach it only via the co-resident relay's in-partition calls.
func New(cfg Config, partition runtime.PartitionID, appID runtime.ApplicationID, rt *runtime.Memory, log slog.Logger) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Scheme == nil {
		cfg.Scheme = commitment.NewBlake2b
	}
	// The very first game has no prior game to alternate from; Player1
	// is the button by convention. Every later game's button comes from
	// alternateDealerButtonLocked instead (see StartNewGame).
	firstButton := protocol.Player1
	return &Table{
		cfg:       cfg,
		state:     State{Phase: protocol.WaitingForPlayers, DealerButton: &firstButton},
		partition: partition,
		appID:     appID,
		outbox:    rt.Outbox(partition, appID),
		clock:     rt,
		log:       log,
	}, nil
}

// Projection returns the current read-only external view.
func (t *Table) Projection() Projection {
	t.mu.Lock()
	defer t.mu.Unlock()

	seats := make([]SeatProjection, len(t.state.Players))
	for i, p := range t.state.Players {
		seats[i] = SeatProjection{
			Seat:        p.Seat,
			CurrentBet:  p.CurrentBet,
			HasFolded:   p.HasFolded,
			HasRevealed: p.HasRevealed,
		}
	}

	proj := Projection{
		Phase:          t.state.Phase,
		Pot:            t.state.Pot,
		CommunityCards: append([]cards.Card{}, t.state.CommunityCards...),
		CurrentBet:     t.state.CurrentBet,
		MinRaise:       t.state.MinRaise,
		TurnSeat:       t.state.TurnSeat,
		Players:        seats,
		Winner:         t.state.Winner,
	}
	if t.state.Phase == protocol.Showdown || t.state.Phase == protocol.Settlement || t.state.Phase == protocol.Finished {
		proj.DeckSeed = t.state.DeckSeed
	}
	return proj
}

// GameID returns the current game_id.
func (t *Table) GameID() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.GameID
}

// Phase returns the current phase.
func (t *Table) Phase() protocol.GamePhase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Phase
}

// StartNewGame is valid only in Finished, or in WaitingForPlayers with
// zero seated players. It clears per-game fields, increments game_id,
// alternates dealer_button, and transitions to WaitingForPlayers. If
// two players are still seated from the previous game, it immediately
// re-enters join-complete handling and begins dealing.
func (t *Table) StartNewGame() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !(t.state.Phase == protocol.Finished || (t.state.Phase == protocol.WaitingForPlayers && len(t.state.Players) == 0)) {
		return ErrWrongPhase
	}

	t.state.GameID++
	t.alternateDealerButtonLocked()
	t.state.Phase = protocol.WaitingForPlayers
	t.state.Pot = 0
	t.state.CurrentBet = 0
	t.state.MinRaise = 0
	t.state.CommunityCards = nil
	t.state.TurnSeat = nil
	t.state.Winner = nil
	t.state.DeckSeed = nil
	t.state.ActionsThisRound = 0
	t.dealerSecret = [32]byte{}
	t.scheme = nil
	for _, p := range t.state.Players {
		p.resetForNewGame()
	}

	t.log.Infof("table: new game %d, dealer_button=%v", t.state.GameID, t.state.DealerButton)

	if len(t.state.Players) == 2 {
		return t.beginDealLocked()
	}
	return nil
}

// alternateDealerButtonLocked flips the button to the other seat. New
// always sets an initial button before any game is played, so
// DealerButton is never nil here.
func (t *Table) alternateDealerButtonLocked() {
	other := t.state.DealerButton.Other()
	t.state.DealerButton = &other
}

// RelayJoinTable is invoked only by the co-resident relay Hand, which
// has already authenticated sender as the partition that originated
// the JoinTable message.
func (t *Table) RelayJoinTable(sender runtime.PartitionID, handApp runtime.ApplicationID, msg protocol.JoinTableMsg) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Phase != protocol.WaitingForPlayers {
		return ErrWrongPhase
	}
	if len(t.state.Players) >= 2 {
		return ErrTableFull
	}
	if msg.Stake < t.cfg.MinStake || msg.Stake > t.cfg.MaxStake {
		return ErrStakeOutOfRange
	}
	for _, p := range t.state.Players {
		if p.Partition == sender {
			return ErrAlreadySeated
		}
		if p.Stake != msg.Stake {
			return ErrStakeMismatch
		}
	}

	seat := protocol.Player1
	if len(t.state.Players) == 1 {
		seat = protocol.Player2
	}
	player := &PlayerInfo{
		Seat:      seat,
		Partition: sender,
		HandApp:   handApp,
		Stake:     msg.Stake,
	}
	t.state.Players = append(t.state.Players, player)
	t.state.LastActionBlock = t.clock.BlockHeight()

	t.log.Infof("table: %s joined at stake %d", seat, msg.Stake)

	if len(t.state.Players) == 2 {
		t.state.Phase = protocol.Dealing
		return t.beginDealLocked()
	}
	return nil
}

func (t *Table) seatOf(partition runtime.PartitionID) (*PlayerInfo, error) {
	for _, p := range t.state.Players {
		if p.Partition == partition {
			return p, nil
		}
	}
	return nil, ErrUnknownSender
}

func (t *Table) playerAt(seat protocol.Seat) *PlayerInfo {
	for _, p := range t.state.Players {
		if p.Seat == seat {
			return p
		}
	}
	return nil
}

func (t *Table) sendTo(seat protocol.Seat, payload protocol.Message) {
	p := t.playerAt(seat)
	if p == nil {
		return
	}
	if err := t.outbox.Send(p.Partition, p.HandApp, payload); err != nil {
		t.log.Warnf("table: send %s to %s failed: %v", payload.Kind(), seat, err)
	}
}

