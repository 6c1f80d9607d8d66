package game

// Resolve settles every player hand against the dealer's final hand. Each
// hand is compared to the dealer only, never to sibling split hands. The
// returned WinAmount is the gross amount to credit, stake included; the
// ledger subtracts nothing further.
func Resolve(r *Round) []HandResult {
	dealer := r.Dealer.Value()
	results := make([]HandResult, 0, len(r.Hands))
	for i, h := range r.Hands {
		results = append(results, resolveHand(r.Rules, i, h, dealer))
	}
	return results
}

func resolveHand(rules Rules, idx int, h *Hand, dealer HandValue) HandResult {
	v := h.Value()
	switch {
	case h.Surrendered:
		return HandResult{HandIndex: idx, Outcome: OutcomeSurrendered, WinAmount: h.Bet / 2}
	case v.IsBusted:
		return HandResult{HandIndex: idx, Outcome: OutcomeBusted, WinAmount: 0}
	case v.IsBlackjack && !dealer.IsBlackjack:
		premium := h.Bet * rules.BlackjackPayoutNum / rules.BlackjackPayoutDen
		return HandResult{HandIndex: idx, Outcome: OutcomeBlackjack, WinAmount: h.Bet + premium}
	case v.IsBlackjack && dealer.IsBlackjack:
		return HandResult{HandIndex: idx, Outcome: OutcomePush, WinAmount: h.Bet}
	case dealer.IsBlackjack:
		return HandResult{HandIndex: idx, Outcome: OutcomeLose, WinAmount: 0}
	case dealer.IsBusted:
		return HandResult{HandIndex: idx, Outcome: OutcomeWin, WinAmount: h.Bet * 2}
	case v.Total > dealer.Total:
		return HandResult{HandIndex: idx, Outcome: OutcomeWin, WinAmount: h.Bet * 2}
	case v.Total == dealer.Total:
		return HandResult{HandIndex: idx, Outcome: OutcomePush, WinAmount: h.Bet}
	default:
		return HandResult{HandIndex: idx, Outcome: OutcomeLose, WinAmount: 0}
	}
}
