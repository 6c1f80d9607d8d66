package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) EnsureAccount(ctx context.Context, playerID string, initialCC int64) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO accounts (player_id, balance_cc) VALUES ($1, $2)
		ON CONFLICT (player_id) DO NOTHING`, playerID, initialCC)
	return err
}

func (s *Store) GetAccountBalance(ctx context.Context, playerID string) (int64, error) {
	var bal int64
	err := s.Pool.QueryRow(ctx, `SELECT balance_cc FROM accounts WHERE player_id = $1`, playerID).Scan(&bal)
	if err != nil {
		return 0, mapNotFound(err)
	}
	return bal, nil
}

// Debit subtracts amount from the player's balance and writes one ledger
// entry, in a single row-locked transaction.
func (s *Store) Debit(ctx context.Context, playerID string, amount int64, entryType, refType, refID string) (int64, error) {
	if amount < 0 {
		return 0, errors.New("amount must be positive")
	}
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var bal int64
	if err := tx.QueryRow(ctx,
		`SELECT balance_cc FROM accounts WHERE player_id = $1 FOR UPDATE`, playerID).Scan(&bal); err != nil {
		return 0, mapNotFound(err)
	}
	if bal < amount {
		return 0, ErrInsufficientBalance
	}
	newBal := bal - amount
	if err := s.applyBalance(ctx, tx, playerID, newBal, -amount, entryType, refType, refID); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newBal, nil
}

// Credit adds amount to the player's balance and writes one ledger entry.
func (s *Store) Credit(ctx context.Context, playerID string, amount int64, entryType, refType, refID string) (int64, error) {
	if amount < 0 {
		return 0, errors.New("amount must be positive")
	}
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var bal int64
	if err := tx.QueryRow(ctx,
		`SELECT balance_cc FROM accounts WHERE player_id = $1 FOR UPDATE`, playerID).Scan(&bal); err != nil {
		return 0, mapNotFound(err)
	}
	newBal := bal + amount
	if err := s.applyBalance(ctx, tx, playerID, newBal, amount, entryType, refType, refID); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newBal, nil
}

func (s *Store) applyBalance(ctx context.Context, tx pgx.Tx, playerID string, newBal, delta int64, entryType, refType, refID string) error {
	if _, err := tx.Exec(ctx,
		`UPDATE accounts SET balance_cc = $1, updated_at = now() WHERE player_id = $2`, newBal, playerID); err != nil {
		return err
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO ledger_entries (id, player_id, type, amount_cc, ref_type, ref_id)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		NewID(), playerID, entryType, delta, refType, refID)
	return err
}

func (s *Store) ListLedgerEntries(ctx context.Context, playerID string, limit int) ([]LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT id, player_id, type, amount_cc, ref_type, ref_id, created_at
		FROM ledger_entries WHERE player_id = $1
		ORDER BY created_at DESC LIMIT $2`, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []LedgerEntry{}
	for rows.Next() {
		var e LedgerEntry
		if err := rows.Scan(&e.ID, &e.PlayerID, &e.Type, &e.AmountCC, &e.RefType, &e.RefID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
