package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"blackjack-server/internal/config"
	"blackjack-server/internal/game"
	"blackjack-server/internal/ledger"
	"blackjack-server/internal/session"
	"blackjack-server/internal/store"
)

type createRoundRequest struct {
	PlayerID string `json:"player_id"`
	BetCC    int64  `json:"bet"`
}

type actionRequest struct {
	HandIndex int    `json:"hand_index"`
	Action    string `json:"action"`
}

func createRoundHandler(cfg config.ServerConfig, st *store.Store, registry *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRoundRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		// First contact seeds the account; existing balances are untouched.
		if err := st.EnsureAccount(r.Context(), req.PlayerID, cfg.InitialBalanceCC); err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		snap, err := registry.StartRound(r.Context(), req.PlayerID, req.BetCC)
		if err != nil {
			writeRoundError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, snap)
	}
}

func getRoundHandler(st *store.Store, registry *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roundID := chi.URLParam(r, "round_id")
		snap, err := registry.Snapshot(r.Context(), roundID)
		if err == nil {
			writeJSON(w, http.StatusOK, snap)
			return
		}
		if !errors.Is(err, session.ErrRoundNotFound) {
			writeRoundError(w, err)
			return
		}
		// Completed rounds live in the store only.
		rec, serr := st.GetRoundResult(r.Context(), roundID)
		if serr != nil {
			writeRoundError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(rec.Snapshot)
	}
}

func actionHandler(registry *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roundID := chi.URLParam(r, "round_id")
		var req actionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		snap, err := registry.Apply(r.Context(), roundID, req.HandIndex, game.Action(req.Action))
		if err != nil {
			writeRoundError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func playerRoundsHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "player_id")
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		records, err := st.ListRoundResults(r.Context(), playerID, limit)
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		items := make([]map[string]json.RawMessage, 0, len(records))
		for _, rec := range records {
			items = append(items, map[string]json.RawMessage{
				"snapshot": rec.Snapshot,
				"results":  rec.Results,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	}
}

func balanceHandler(led *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "player_id")
		bal, err := led.Balance(r.Context(), playerID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeHTTPError(w, http.StatusNotFound, "player_not_found")
				return
			}
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]int64{"balance": bal})
	}
}

// writeRoundError maps engine and registry errors onto HTTP statuses.
// Recoverable rejections leave the round untouched; the client may retry
// with a legal action.
func writeRoundError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrRoundNotFound):
		writeHTTPError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrInvalidBet):
		writeHTTPError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrActionInProgress),
		errors.Is(err, game.ErrInvalidTurn),
		errors.Is(err, game.ErrRoundCompleted):
		writeHTTPError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrIllegalAction):
		writeHTTPError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds):
		writeHTTPError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, game.ErrShoeExhausted):
		writeHTTPError(w, http.StatusInternalServerError, err.Error())
	default:
		writeHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
