package game

type HandValue struct {
	Total       int
	IsSoft      bool
	IsBlackjack bool
	IsBusted    bool
}

// Evaluate computes the best blackjack value of a card sequence. Aces start
// at 11 and are demoted to 1 one at a time while the total exceeds 21.
// fromSplit hands can never be a blackjack, even on a two-card 21.
func Evaluate(cards []Card, fromSplit bool) HandValue {
	total := 0
	aces := 0
	for _, c := range cards {
		total += c.Value()
		if c.Rank == Ace {
			aces++
		}
	}
	soft := aces
	for total > 21 && soft > 0 {
		total -= 10
		soft--
	}
	return HandValue{
		Total:       total,
		IsSoft:      soft > 0,
		IsBlackjack: len(cards) == 2 && total == 21 && !fromSplit,
		IsBusted:    total > 21,
	}
}
