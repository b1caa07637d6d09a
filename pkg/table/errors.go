package table

import "errors"

// Sentinel errors for rejected operations: phase mismatch, seat
// mismatch, out-of-range amount, duplicate join, and malformed
// payload. Callers check with errors.Is; none of these mutate Table
// state.
var (
	ErrWrongPhase        = errors.New("table: operation not valid in current phase")
	ErrWrongSeat         = errors.New("table: action from non-acting seat")
	ErrWrongGame         = errors.New("table: game_id does not match current game")
	ErrStakeOutOfRange   = errors.New("table: stake outside [min_stake, max_stake]")
	ErrStakeMismatch     = errors.New("table: stake does not match already-seated player")
	ErrAlreadySeated     = errors.New("table: sender partition already seated")
	ErrTableFull         = errors.New("table: two players already seated")
	ErrRaiseTooSmall     = errors.New("table: raise below current_bet + min_raise")
	ErrInsufficientChips = errors.New("table: action exceeds remaining stake")
	ErrUnknownSender     = errors.New("table: sender partition not seated in this game")
	ErrAlreadyResolved   = errors.New("table: seat has already folded, forfeited, or revealed")
)
