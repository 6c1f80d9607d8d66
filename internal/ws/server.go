package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"blackjack-server/internal/game"
)

// SnapshotSource serves the current state of a live round, used to seed a
// fresh watcher before pushes start flowing.
type SnapshotSource interface {
	Snapshot(ctx context.Context, roundID string) (game.Snapshot, error)
}

type Client struct {
	conn    *websocket.Conn
	send    chan []byte
	roundID string
}

// Server pushes round snapshots to presentation clients. Clients watch one
// round at a time and only ever receive state, never mutate it.
type Server struct {
	source   SnapshotSource
	upgrader websocket.Upgrader
	mu       sync.Mutex
	watchers map[string]map[*Client]bool
}

func NewServer(source SnapshotSource) *Server {
	return &Server{
		source:   source,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		watchers: map[string]map[*Client]bool{},
	}
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{conn: conn, send: make(chan []byte, 8)}

	go s.writeLoop(client)
	s.readLoop(r.Context(), client)
}

// Broadcast pushes a snapshot to every watcher of the round.
func (s *Server) Broadcast(roundID string, snap game.Snapshot) {
	payload, err := json.Marshal(SnapshotPush{Type: "snapshot", RoundID: roundID, Snapshot: snap})
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.watchers[roundID] {
		select {
		case c.send <- payload:
		default:
			// Slow consumer; drop the frame rather than block the round.
		}
	}
}

func (s *Server) readLoop(ctx context.Context, c *Client) {
	defer func() {
		s.unregister(c)
		_ = c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var base struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(msg, &base); err != nil {
			continue
		}
		if base.Type != "watch" {
			continue
		}
		var watch WatchMessage
		if err := json.Unmarshal(msg, &watch); err != nil || watch.RoundID == "" {
			s.sendJSON(c, WatchResult{Type: "watch_result", Ok: false, Error: "invalid_request"})
			continue
		}
		s.register(c, watch.RoundID)
		s.sendJSON(c, WatchResult{Type: "watch_result", Ok: true, RoundID: watch.RoundID})
		if snap, err := s.source.Snapshot(ctx, watch.RoundID); err == nil {
			s.sendJSON(c, SnapshotPush{Type: "snapshot", RoundID: watch.RoundID, Snapshot: snap})
		}
	}
}

func (s *Server) writeLoop(c *Client) {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (s *Server) register(c *Client, roundID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.roundID != "" {
		delete(s.watchers[c.roundID], c)
	}
	c.roundID = roundID
	if s.watchers[roundID] == nil {
		s.watchers[roundID] = map[*Client]bool{}
	}
	s.watchers[roundID][c] = true
	log.Debug().Str("round_id", roundID).Msg("ws watcher registered")
}

func (s *Server) unregister(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.roundID != "" {
		delete(s.watchers[c.roundID], c)
	}
	close(c.send)
}

func (s *Server) sendJSON(c *Client, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}
