package game

import "errors"

var (
	ErrIllegalAction  = errors.New("illegal_action")
	ErrInvalidTurn    = errors.New("invalid_turn")
	ErrShoeExhausted  = errors.New("shoe_exhausted")
	ErrRoundCompleted = errors.New("round_completed")
)
