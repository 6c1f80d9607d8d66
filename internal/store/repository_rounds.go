package store

import (
	"context"
	"encoding/json"

	"blackjack-server/internal/game"
)

// StoreRoundResult persists the immutable record of a completed round.
// Called exactly once per round, after settlement.
func (s *Store) StoreRoundResult(ctx context.Context, roundID, playerID string, snap game.Snapshot, results []game.HandResult) error {
	snapJSON, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx, `
		INSERT INTO rounds (id, player_id, snapshot, results)
		VALUES ($1, $2, $3, $4)`, roundID, playerID, snapJSON, resultsJSON)
	return err
}

func (s *Store) GetRoundResult(ctx context.Context, roundID string) (*RoundRecord, error) {
	var rec RoundRecord
	err := s.Pool.QueryRow(ctx, `
		SELECT id, player_id, snapshot, results, completed_at
		FROM rounds WHERE id = $1`, roundID).
		Scan(&rec.ID, &rec.PlayerID, &rec.Snapshot, &rec.Results, &rec.CompletedAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &rec, nil
}

func (s *Store) ListRoundResults(ctx context.Context, playerID string, limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT id, player_id, snapshot, results, completed_at
		FROM rounds WHERE player_id = $1
		ORDER BY completed_at DESC LIMIT $2`, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RoundRecord{}
	for rows.Next() {
		var rec RoundRecord
		if err := rows.Scan(&rec.ID, &rec.PlayerID, &rec.Snapshot, &rec.Results, &rec.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
