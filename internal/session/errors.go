package session

import "errors"

var (
	ErrRoundNotFound    = errors.New("round_not_found")
	ErrActionInProgress = errors.New("action_in_progress")
	ErrInvalidBet       = errors.New("invalid_bet")
)
