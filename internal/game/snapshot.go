package game

// Snapshot is the state emitted to the presentation layer after dealing and
// after every action. It carries every derived attribute and the active
// hand's legal actions so clients never re-implement game rules.
type Snapshot struct {
	ID              string         `json:"id"`
	Status          string         `json:"status"`
	DealerHand      DealerHandView `json:"dealer_hand"`
	PlayerHands     []HandView     `json:"player_hands"`
	ActiveHandIndex int            `json:"active_hand_index"`
	LegalActions    []Action       `json:"legal_actions"`
	InsuranceOpen   bool           `json:"insurance_open,omitempty"`
}

type DealerHandView struct {
	Cards       []string `json:"cards"`
	Total       int      `json:"total"`
	IsBusted    bool     `json:"is_busted"`
	IsBlackjack bool     `json:"is_blackjack"`
	HoleHidden  bool     `json:"hole_hidden,omitempty"`
}

type HandView struct {
	Cards       []string `json:"cards"`
	Total       int      `json:"total"`
	IsSoft      bool     `json:"is_soft"`
	IsBusted    bool     `json:"is_busted"`
	IsBlackjack bool     `json:"is_blackjack"`
	IsStanding  bool     `json:"is_standing"`
	Surrendered bool     `json:"surrendered,omitempty"`
	BetAmount   int64    `json:"bet_amount"`
	Result      *Outcome `json:"result,omitempty"`
	WinAmount   *int64   `json:"win_amount,omitempty"`
}

// BuildSnapshot renders the round for the presentation layer. The dealer's
// hole card stays hidden until the player turn is over. results may be nil
// while the round is still live.
func BuildSnapshot(r *Round, balance int64, results []HandResult) Snapshot {
	// No hand is active outside the player turn; -1 keeps clients from
	// treating a stale index as actionable.
	active := r.Current
	if r.Status != StatusPlayerTurn {
		active = -1
	}
	snap := Snapshot{
		ID:              r.ID,
		Status:          string(r.Status),
		DealerHand:      dealerView(r),
		PlayerHands:     make([]HandView, 0, len(r.Hands)),
		ActiveHandIndex: active,
		LegalActions:    LegalActions(r, r.Current, balance),
		InsuranceOpen:   r.InsuranceOpen,
	}
	for i, h := range r.Hands {
		v := h.Value()
		hv := HandView{
			Cards:       cardStrings(h.Cards),
			Total:       v.Total,
			IsSoft:      v.IsSoft,
			IsBusted:    v.IsBusted,
			IsBlackjack: v.IsBlackjack,
			IsStanding:  h.Standing,
			Surrendered: h.Surrendered,
			BetAmount:   h.Bet,
		}
		for _, res := range results {
			if res.HandIndex == i {
				outcome := res.Outcome
				amount := res.WinAmount
				hv.Result = &outcome
				hv.WinAmount = &amount
				break
			}
		}
		snap.PlayerHands = append(snap.PlayerHands, hv)
	}
	return snap
}

func dealerView(r *Round) DealerHandView {
	if r.Status == StatusPlayerTurn || r.Status == StatusDealing {
		up := r.Dealer.Cards[:1]
		v := Evaluate(up, false)
		return DealerHandView{Cards: cardStrings(up), Total: v.Total, HoleHidden: true}
	}
	v := r.Dealer.Value()
	return DealerHandView{
		Cards:       cardStrings(r.Dealer.Cards),
		Total:       v.Total,
		IsBusted:    v.IsBusted,
		IsBlackjack: v.IsBlackjack,
	}
}

func cardStrings(cards []Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.String())
	}
	return out
}
