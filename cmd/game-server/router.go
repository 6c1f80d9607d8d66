package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"blackjack-server/internal/config"
	"blackjack-server/internal/ledger"
	"blackjack-server/internal/session"
	"blackjack-server/internal/store"
	"blackjack-server/internal/ws"
)

func newRouter(cfg config.ServerConfig, st *store.Store, led *ledger.Ledger, registry *session.Registry, wsServer *ws.Server) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(apiLogMiddleware()).Get("/healthz", healthHandler(st))
	r.Get("/ws", wsServer.HandleWS)

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLogMiddleware())
		r.Post("/rounds", createRoundHandler(cfg, st, registry))
		r.Get("/rounds/{round_id}", getRoundHandler(st, registry))
		r.Post("/rounds/{round_id}/actions", actionHandler(registry))
		r.Get("/players/{player_id}/rounds", playerRoundsHandler(st))
		r.Get("/players/{player_id}/balance", balanceHandler(led))
	})
	return r
}

func healthHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			writeHTTPError(w, http.StatusServiceUnavailable, "db_unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
