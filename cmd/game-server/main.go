package main

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog/log"

	"blackjack-server/internal/config"
	"blackjack-server/internal/game"
	"blackjack-server/internal/ledger"
	"blackjack-server/internal/logging"
	"blackjack-server/internal/session"
	"blackjack-server/internal/store"
	"blackjack-server/internal/ws"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	rules, err := cfg.Rules.GameRules()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid table rules")
	}

	st, err := store.New(cfg.Server.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	ctx := context.Background()
	if err := st.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}
	if err := st.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("bootstrap schema failed")
	}

	led := ledger.New(st)
	registry := session.NewRegistry(led, st, game.NewRandShuffler(), rules, quartz.NewReal(), cfg.Server.RoundIdleTimeout)
	registry.StartJanitor(ctx, cfg.Server.JanitorInterval)

	wsServer := ws.NewServer(registry)
	registry.SetNotify(wsServer.Broadcast)

	r := newRouter(cfg.Server, st, led, registry, wsServer)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.Server.HTTPAddr).Int("decks", rules.Decks).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}
