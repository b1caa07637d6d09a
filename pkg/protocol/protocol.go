// Package protocol defines the wire-level vocabulary shared by the
// Table and Hand state machines: seats, game phases, betting actions,
// and the cross-partition message envelopes described for the Table
// and Hand applications. None of the types here carry behavior beyond
// encoding/decoding and simple predicates — state transitions live in
// pkg/table and pkg/hand.
package protocol

import "fmt"

// Seat identifies one of the two heads-up positions.
type Seat uint8

const (
	Player1 Seat = iota
	Player2
)

// Other returns the seat's heads-up opponent.
func (s Seat) Other() Seat {
	if s == Player1 {
		return Player2
	}
	return Player1
}

func (s Seat) String() string {
	switch s {
	case Player1:
		return "Player1"
	case Player2:
		return "Player2"
	default:
		return fmt.Sprintf("Seat(%d)", uint8(s))
	}
}

// GamePhase is the ordered lifecycle of one game on the Table
// partition: WaitingForPlayers -> Dealing -> PreFlop -> Flop -> Turn ->
// River -> Showdown -> Settlement -> Finished. Only StartNewGame moves
// backward, from Finished to WaitingForPlayers.
type GamePhase uint8

const (
	WaitingForPlayers GamePhase = iota
	Dealing
	PreFlop
	Flop
	Turn
	River
	Showdown
	Settlement
	Finished
)

func (p GamePhase) String() string {
	switch p {
	case WaitingForPlayers:
		return "WaitingForPlayers"
	case Dealing:
		return "Dealing"
	case PreFlop:
		return "PreFlop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	case Showdown:
		return "Showdown"
	case Settlement:
		return "Settlement"
	case Finished:
		return "Finished"
	default:
		return fmt.Sprintf("GamePhase(%d)", uint8(p))
	}
}

// BettingRound reports whether this phase takes betting actions; it
// exists so callers don't have to enumerate PreFlop..River by hand.
func (p GamePhase) BettingRound() bool {
	return p >= PreFlop && p <= River
}

// ActionKind tags the variant of a BetAction; only Raise carries an
// amount.
type ActionKind uint8

const (
	Fold ActionKind = iota
	Check
	Call
	Raise
	AllIn
)

func (k ActionKind) String() string {
	switch k {
	case Fold:
		return "Fold"
	case Check:
		return "Check"
	case Call:
		return "Call"
	case Raise:
		return "Raise"
	case AllIn:
		return "AllIn"
	default:
		return fmt.Sprintf("ActionKind(%d)", uint8(k))
	}
}

// BetAction is the tagged variant a player submits during a betting
// round. Amount is meaningful only when Kind == Raise; it is the
// raise-to total, not a delta.
type BetAction struct {
	Kind   ActionKind
	Amount uint64
}
