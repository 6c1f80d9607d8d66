package ws

import "blackjack-server/internal/game"

type WatchMessage struct {
	Type    string `json:"type"`
	RoundID string `json:"round_id"`
}

type WatchResult struct {
	Type    string `json:"type"`
	Ok      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	RoundID string `json:"round_id,omitempty"`
}

type SnapshotPush struct {
	Type     string        `json:"type"`
	RoundID  string        `json:"round_id"`
	Snapshot game.Snapshot `json:"snapshot"`
}
