package ledger

import (
	"context"
	"errors"

	"blackjack-server/internal/store"
)

// ErrInsufficientFunds is returned when a bet, double, or split would take
// the player's balance below zero. The round state is unchanged.
var ErrInsufficientFunds = errors.New("insufficient_funds")

type Ledger struct {
	Store *store.Store
}

func New(s *store.Store) *Ledger {
	return &Ledger{Store: s}
}

func (l *Ledger) Balance(ctx context.Context, playerID string) (int64, error) {
	return l.Store.GetAccountBalance(ctx, playerID)
}

func (l *Ledger) DebitBet(ctx context.Context, playerID, roundID string, amount int64) (int64, error) {
	bal, err := l.Store.Debit(ctx, playerID, amount, "bet_debit", "round", roundID)
	if errors.Is(err, store.ErrInsufficientBalance) {
		return 0, ErrInsufficientFunds
	}
	return bal, err
}

func (l *Ledger) CreditPayout(ctx context.Context, playerID, roundID string, amount int64) (int64, error) {
	return l.Store.Credit(ctx, playerID, amount, "payout_credit", "round", roundID)
}

// RefundBet returns already-debited stakes when a round aborts.
func (l *Ledger) RefundBet(ctx context.Context, playerID, roundID string, amount int64) (int64, error) {
	return l.Store.Credit(ctx, playerID, amount, "bet_refund", "round", roundID)
}
