package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"blackjack-server/internal/config"
	"blackjack-server/internal/game"
)

func main() {
	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal(err)
	}

	client := &http.Client{}
	for i := 0; i < cfg.Rounds; i++ {
		if err := playRound(client, cfg); err != nil {
			log.Fatal(err)
		}
	}
}

func playRound(client *http.Client, cfg config.BotConfig) error {
	snap, err := postJSON(client, cfg.ServerURL+"/api/rounds",
		map[string]any{"player_id": cfg.PlayerID, "bet": cfg.BetCC})
	if err != nil {
		return err
	}

	for snap.Status == string(game.StatusPlayerTurn) {
		action := decide(*snap)
		snap, err = postJSON(client, cfg.ServerURL+"/api/rounds/"+snap.ID+"/actions",
			map[string]any{"hand_index": snap.ActiveHandIndex, "action": string(action)})
		if err != nil {
			return err
		}
	}

	for _, h := range snap.PlayerHands {
		if h.Result != nil {
			log.Printf("round %s: hand %v -> %s (%d)", snap.ID, h.Cards, *h.Result, *h.WinAmount)
		}
	}
	return nil
}

// decide plays fixed basic strategy against the dealer's up-card: stand on
// hard 17+, hit stiff hands into a weak dealer only when forced, double
// elevens, split aces and eights.
func decide(snap game.Snapshot) game.Action {
	hand := snap.PlayerHands[snap.ActiveHandIndex]
	dealerStrong := dealerUpValue(snap) >= 7

	if can(snap, game.ActionSplit) && len(hand.Cards) == 2 {
		first := hand.Cards[0][0]
		if first == 'A' || first == '8' {
			return game.ActionSplit
		}
	}
	if can(snap, game.ActionDouble) && !hand.IsSoft && hand.Total == 11 {
		return game.ActionDouble
	}
	if hand.IsSoft && hand.Total <= 17 && can(snap, game.ActionHit) {
		return game.ActionHit
	}
	if hand.Total >= 17 {
		return game.ActionStand
	}
	if hand.Total >= 12 && !dealerStrong {
		return game.ActionStand
	}
	if can(snap, game.ActionHit) {
		return game.ActionHit
	}
	return game.ActionStand
}

func dealerUpValue(snap game.Snapshot) int {
	if len(snap.DealerHand.Cards) == 0 {
		return 0
	}
	switch snap.DealerHand.Cards[0][0] {
	case 'A':
		return 11
	case 'T', 'J', 'Q', 'K':
		return 10
	default:
		return int(snap.DealerHand.Cards[0][0] - '0')
	}
}

func can(snap game.Snapshot, action game.Action) bool {
	for _, a := range snap.LegalActions {
		if a == action {
			return true
		}
	}
	return false
}

func postJSON(client *http.Client, url string, body any) (*game.Snapshot, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, fmt.Errorf("%s: %s (%d)", url, apiErr.Error, resp.StatusCode)
	}
	var snap game.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
