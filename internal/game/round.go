package game

// Round is the aggregate root of one blackjack round: the dealer hand, the
// ordered player hands (index 0 is the original; splits append, never
// insert), the turn pointer, and the table rules. Exactly one hand, or the
// dealer, is active at any moment until the round completes.
type Round struct {
	ID            string
	Rules         Rules
	Shoe          *Shoe
	Dealer        *Hand
	Hands         []*Hand
	Current       int
	Status        RoundStatus
	InsuranceOpen bool
}

// NewRound deals the opening hands and runs the natural-blackjack check.
// Either side holding a natural short-circuits straight to completed; a
// player blackjack only loses its premium to a push against a dealer
// blackjack, settled by Resolve.
func NewRound(id string, rules Rules, shoe *Shoe, bet int64) (*Round, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	r := &Round{
		ID:     id,
		Rules:  rules,
		Shoe:   shoe,
		Dealer: &Hand{SplitFrom: -1},
		Hands:  []*Hand{{Bet: bet, SplitFrom: -1}},
		Status: StatusDealing,
	}

	// Player, dealer, player, dealer.
	for i := 0; i < 2; i++ {
		if err := r.dealTo(r.Hands[0]); err != nil {
			return nil, err
		}
		if err := r.dealTo(r.Dealer); err != nil {
			return nil, err
		}
	}

	if r.Hands[0].Value().IsBlackjack || r.Dealer.Value().IsBlackjack {
		r.Status = StatusCompleted
		return r, nil
	}

	r.Status = StatusPlayerTurn
	r.InsuranceOpen = rules.InsuranceOffered && r.Dealer.Cards[0].Rank == Ace
	return r, nil
}

// ApplyAction applies one validated player action to the hand at handIdx.
// Preconditions are checked in order: round still in player turn, acting
// hand is the current hand (acting out of turn is rejected, never
// redirected), and the action is in the legal set for the given balance.
// Returns true once the round has completed.
func (r *Round) ApplyAction(handIdx int, action Action, balance int64) (bool, error) {
	switch r.Status {
	case StatusCompleted:
		return false, ErrRoundCompleted
	case StatusPlayerTurn:
	default:
		return false, ErrInvalidTurn
	}
	if handIdx != r.Current {
		return false, ErrInvalidTurn
	}
	if !actionAllowed(LegalActions(r, handIdx, balance), action) {
		return false, ErrIllegalAction
	}

	h := r.Hands[handIdx]
	h.Acted = true
	r.InsuranceOpen = false

	switch action {
	case ActionHit:
		if err := r.dealTo(h); err != nil {
			return false, err
		}
		v := h.Value()
		if v.Total == 21 && !v.IsBusted {
			h.Standing = true
		}
		if !h.Terminal() {
			return false, nil
		}
	case ActionStand:
		h.Standing = true
	case ActionDouble:
		h.Bet *= 2
		h.Doubled = true
		if err := r.dealTo(h); err != nil {
			return false, err
		}
		h.Standing = !h.Value().IsBusted
	case ActionSplit:
		if err := r.split(handIdx); err != nil {
			return false, err
		}
		if !h.Terminal() {
			return false, nil
		}
	case ActionSurrender:
		h.Surrendered = true
	}

	return r.advance()
}

// split moves the second card into a new hand appended at the end, matches
// the bet, and deals one fresh card to each side. Split aces with hitting
// disabled stand immediately on both hands.
func (r *Round) split(handIdx int) error {
	h := r.Hands[handIdx]
	acesSplit := h.Cards[0].Rank == Ace

	child := &Hand{
		Cards:     []Card{h.Cards[1]},
		Bet:       h.Bet,
		Split:     true,
		SplitAces: acesSplit,
		SplitFrom: handIdx,
	}
	h.Cards = h.Cards[:1]
	h.Split = true
	h.SplitAces = acesSplit
	r.Hands = append(r.Hands, child)

	if err := r.dealTo(h); err != nil {
		return err
	}
	if err := r.dealTo(child); err != nil {
		return err
	}

	for _, sh := range []*Hand{h, child} {
		if acesSplit && !r.Rules.HitSplitAces {
			sh.Standing = true
		} else if sh.Value().Total == 21 {
			// Two-card 21 after a split is not a blackjack, but there is
			// nothing left to decide.
			sh.Standing = true
		}
	}
	return nil
}

// advance moves the turn pointer to the next non-terminal hand. A passed
// turn is never revisited, so the scan only runs forward. When no player
// hand remains, the dealer plays out and the round completes.
func (r *Round) advance() (bool, error) {
	for i := r.Current; i < len(r.Hands); i++ {
		if !r.Hands[i].Terminal() {
			r.Current = i
			return false, nil
		}
	}
	r.Status = StatusDealerTurn
	if err := r.playDealer(); err != nil {
		return false, err
	}
	r.Status = StatusCompleted
	return true, nil
}

// playDealer draws for the dealer under the stand rule. With no live
// competitor the dealer only reveals, drawing nothing beyond the initial
// two cards.
func (r *Round) playDealer() error {
	live := false
	for _, h := range r.Hands {
		if !h.Surrendered && !h.Value().IsBusted {
			live = true
			break
		}
	}
	if !live {
		return nil
	}
	for {
		v := r.Dealer.Value()
		if v.Total < 17 || (v.Total == 17 && v.IsSoft && !r.Rules.DealerStandsSoft17) {
			if err := r.dealTo(r.Dealer); err != nil {
				return err
			}
			continue
		}
		return nil
	}
}

func (r *Round) dealTo(h *Hand) error {
	c, err := r.Shoe.Deal()
	if err != nil {
		return err
	}
	h.Cards = append(h.Cards, c)
	return nil
}

// TotalWagered sums the live bets across all player hands, doubles
// included. Used for refunds when a round aborts.
func (r *Round) TotalWagered() int64 {
	var total int64
	for _, h := range r.Hands {
		total += h.Bet
	}
	return total
}
