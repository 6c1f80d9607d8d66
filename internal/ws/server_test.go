package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"blackjack-server/internal/game"
)

type fakeSource struct {
	snaps map[string]game.Snapshot
}

func (f *fakeSource) Snapshot(_ context.Context, roundID string) (game.Snapshot, error) {
	snap, ok := f.snaps[roundID]
	if !ok {
		return game.Snapshot{}, context.Canceled
	}
	return snap, nil
}

func dialTestServer(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(s.HandleWS))
	t.Cleanup(ts.Close)
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn, out any) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := json.Unmarshal(msg, out); err != nil {
		t.Fatalf("unmarshal %s: %v", msg, err)
	}
}

func TestWatchReceivesInitialSnapshotAndBroadcast(t *testing.T) {
	source := &fakeSource{snaps: map[string]game.Snapshot{
		"r1": {ID: "r1", Status: string(game.StatusPlayerTurn)},
	}}
	s := NewServer(source)
	conn := dialTestServer(t, s)

	if err := conn.WriteJSON(WatchMessage{Type: "watch", RoundID: "r1"}); err != nil {
		t.Fatalf("write watch: %v", err)
	}
	var ack WatchResult
	readMessage(t, conn, &ack)
	if !ack.Ok || ack.RoundID != "r1" {
		t.Fatalf("unexpected ack: %+v", ack)
	}

	var initial SnapshotPush
	readMessage(t, conn, &initial)
	if initial.Snapshot.ID != "r1" {
		t.Fatalf("unexpected initial snapshot: %+v", initial)
	}

	s.Broadcast("r1", game.Snapshot{ID: "r1", Status: string(game.StatusCompleted)})
	var push SnapshotPush
	readMessage(t, conn, &push)
	if push.Snapshot.Status != string(game.StatusCompleted) {
		t.Fatalf("unexpected push: %+v", push)
	}
}

func TestWatchRejectsMissingRoundID(t *testing.T) {
	s := NewServer(&fakeSource{snaps: map[string]game.Snapshot{}})
	conn := dialTestServer(t, s)

	if err := conn.WriteJSON(WatchMessage{Type: "watch"}); err != nil {
		t.Fatalf("write watch: %v", err)
	}
	var ack WatchResult
	readMessage(t, conn, &ack)
	if ack.Ok || ack.Error != "invalid_request" {
		t.Fatalf("unexpected ack: %+v", ack)
	}
}

func TestBroadcastWithNoWatchers(t *testing.T) {
	s := NewServer(&fakeSource{snaps: map[string]game.Snapshot{}})
	s.Broadcast("r1", game.Snapshot{ID: "r1"})
}
