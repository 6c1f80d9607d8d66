package game

import "fmt"

type Action string

const (
	ActionHit       Action = "hit"
	ActionStand     Action = "stand"
	ActionDouble    Action = "double"
	ActionSplit     Action = "split"
	ActionSurrender Action = "surrender"
)

type RoundStatus string

const (
	StatusDealing    RoundStatus = "dealing"
	StatusPlayerTurn RoundStatus = "player_turn"
	StatusDealerTurn RoundStatus = "dealer_turn"
	StatusCompleted  RoundStatus = "completed"
)

// Rules is the table rule configuration for a round.
type Rules struct {
	Decks              int
	BlackjackPayoutNum int64
	BlackjackPayoutDen int64
	DealerStandsSoft17 bool
	DoubleAfterSplit   bool
	HitSplitAces       bool
	MaxSplitHands      int
	InsuranceOffered   bool
	SurrenderAllowed   bool
}

// Validate rejects configurations that could never finish a round. The shoe
// must cover the worst case of every hand drawing deep after max splits.
func (r Rules) Validate() error {
	if r.Decks < 1 {
		return fmt.Errorf("invalid rules: decks = %d", r.Decks)
	}
	if r.MaxSplitHands < 1 {
		return fmt.Errorf("invalid rules: max_split_hands = %d", r.MaxSplitHands)
	}
	if r.BlackjackPayoutNum < 1 || r.BlackjackPayoutDen < 1 {
		return fmt.Errorf("invalid rules: blackjack payout %d:%d", r.BlackjackPayoutNum, r.BlackjackPayoutDen)
	}
	needed := (r.MaxSplitHands + 1) * 12
	if r.Decks*52 < needed {
		return fmt.Errorf("invalid rules: %d decks cannot cover %d split hands", r.Decks, r.MaxSplitHands)
	}
	return nil
}

// Hand is one card sequence belonging to the dealer or a player hand slot.
// The card sequence is append-only until the hand reaches a terminal state.
type Hand struct {
	Cards       []Card
	Bet         int64
	Standing    bool
	Surrendered bool
	Doubled     bool
	Acted       bool
	Split       bool
	SplitAces   bool
	SplitFrom   int // index of the hand this was split out of, -1 for none
}

func (h *Hand) Value() HandValue {
	return Evaluate(h.Cards, h.Split)
}

// Terminal reports whether the hand takes no further actions.
func (h *Hand) Terminal() bool {
	if h.Standing || h.Surrendered {
		return true
	}
	v := h.Value()
	return v.IsBusted || v.IsBlackjack
}

type Outcome string

const (
	OutcomeBlackjack   Outcome = "blackjack"
	OutcomeWin         Outcome = "win"
	OutcomePush        Outcome = "push"
	OutcomeLose        Outcome = "lose"
	OutcomeSurrendered Outcome = "surrendered"
	OutcomeBusted      Outcome = "busted"
)

// HandResult is the immutable settlement record for one player hand.
// WinAmount is the gross credit including the returned stake.
type HandResult struct {
	HandIndex int     `json:"hand_index"`
	Outcome   Outcome `json:"outcome"`
	WinAmount int64   `json:"win_amount"`
}
