package game

// LegalActions returns the exact set of actions the active hand may take,
// given the caller's available balance (double and split require matching
// the hand's bet). It never mutates state; ApplyAction re-checks it before
// applying, so a stale client request can never slip through.
func LegalActions(r *Round, handIdx int, balance int64) []Action {
	if r.Status != StatusPlayerTurn || handIdx < 0 || handIdx >= len(r.Hands) {
		return nil
	}
	h := r.Hands[handIdx]
	if h.Terminal() {
		return nil
	}

	actions := []Action{}
	if !(h.SplitAces && !r.Rules.HitSplitAces) {
		actions = append(actions, ActionHit)
	}
	actions = append(actions, ActionStand)
	if len(h.Cards) == 2 && !h.Doubled &&
		(!h.Split || r.Rules.DoubleAfterSplit) &&
		balance >= h.Bet {
		actions = append(actions, ActionDouble)
	}
	if canSplit(h, r, balance) {
		actions = append(actions, ActionSplit)
	}
	if r.Rules.SurrenderAllowed && len(h.Cards) == 2 && !h.Acted && !h.Split {
		actions = append(actions, ActionSurrender)
	}
	return actions
}

func canSplit(h *Hand, r *Round, balance int64) bool {
	if len(h.Cards) != 2 {
		return false
	}
	// Ten and King are equal rank for split eligibility; 9 and 10 are not.
	if h.Cards[0].Value() != h.Cards[1].Value() {
		return false
	}
	if len(r.Hands) >= r.Rules.MaxSplitHands {
		return false
	}
	return balance >= h.Bet
}

func actionAllowed(legal []Action, a Action) bool {
	for _, l := range legal {
		if l == a {
			return true
		}
	}
	return false
}
