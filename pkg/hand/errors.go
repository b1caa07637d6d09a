package hand

import "errors"

var (
	// ErrNotMyTurn guards SubmitBet's my_turn == true local invariant (§4.2).
	ErrNotMyTurn = errors.New("hand: it is not this seat's turn")
	// ErrBetOutOfRange is returned by SubmitBet for a Raise amount below
	// the advertised min_raise.
	ErrBetOutOfRange = errors.New("hand: raise amount below advertised min_raise")
	// ErrNoRevealPending guards Reveal's precondition that RequestReveal
	// was received for the current game.
	ErrNoRevealPending = errors.New("hand: no reveal requested for the current game")
)
