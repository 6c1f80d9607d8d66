package game

import "testing"

func hasAction(actions []Action, a Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}

func TestLegalActionsFirstDecision(t *testing.T) {
	r := newTestRound(t, testRules(), 100,
		Card{Ten, Spades}, Card{Ten, Hearts}, Card{Six, Clubs}, Card{Seven, Diamonds},
	)
	actions := LegalActions(r, 0, 100)
	for _, want := range []Action{ActionHit, ActionStand, ActionDouble, ActionSurrender} {
		if !hasAction(actions, want) {
			t.Fatalf("missing %s in %v", want, actions)
		}
	}
	if hasAction(actions, ActionSplit) {
		t.Fatalf("10/6 must not be splittable: %v", actions)
	}
}

func TestLegalActionsSplitByValueNotRank(t *testing.T) {
	r := newTestRound(t, testRules(), 100,
		Card{Ten, Spades}, Card{Two, Hearts}, Card{King, Clubs}, Card{Seven, Diamonds},
	)
	if !hasAction(LegalActions(r, 0, 100), ActionSplit) {
		t.Fatal("ten and king are equal value and must be splittable")
	}

	r = newTestRound(t, testRules(), 100,
		Card{Nine, Spades}, Card{Two, Hearts}, Card{Ten, Clubs}, Card{Seven, Diamonds},
	)
	if hasAction(LegalActions(r, 0, 100), ActionSplit) {
		t.Fatal("nine and ten are unequal value and must not be splittable")
	}
}

func TestLegalActionsBalanceGates(t *testing.T) {
	r := newTestRound(t, testRules(), 100,
		Card{Eight, Spades}, Card{Two, Hearts}, Card{Eight, Clubs}, Card{Seven, Diamonds},
	)
	actions := LegalActions(r, 0, 99)
	if hasAction(actions, ActionDouble) || hasAction(actions, ActionSplit) {
		t.Fatalf("double/split require matching the bet: %v", actions)
	}
	if !hasAction(actions, ActionHit) || !hasAction(actions, ActionStand) {
		t.Fatalf("hit/stand are free: %v", actions)
	}
}

func TestLegalActionsSurrenderOnlyBeforeActing(t *testing.T) {
	r := newTestRound(t, testRules(), 100,
		Card{Five, Spades}, Card{Two, Hearts}, Card{Six, Clubs}, Card{Seven, Diamonds},
		Card{Two, Spades},
	)
	if _, err := r.ApplyAction(0, ActionHit, 0); err != nil {
		t.Fatalf("hit: %v", err)
	}
	if hasAction(LegalActions(r, 0, 100), ActionSurrender) {
		t.Fatal("surrender is first-decision only")
	}
	if hasAction(LegalActions(r, 0, 100), ActionDouble) {
		t.Fatal("double requires exactly two cards")
	}
}

func TestLegalActionsSurrenderDisabled(t *testing.T) {
	rules := testRules()
	rules.SurrenderAllowed = false
	r := newTestRound(t, rules, 100,
		Card{Ten, Spades}, Card{Two, Hearts}, Card{Six, Clubs}, Card{Seven, Diamonds},
	)
	if hasAction(LegalActions(r, 0, 100), ActionSurrender) {
		t.Fatal("surrender disabled by rules")
	}
}

func TestLegalActionsMaxSplitHands(t *testing.T) {
	rules := testRules()
	rules.MaxSplitHands = 2
	r := newTestRound(t, rules, 100,
		Card{Eight, Spades}, Card{Two, Hearts}, Card{Eight, Clubs}, Card{Seven, Diamonds},
		Card{Eight, Diamonds}, Card{Eight, Hearts},
	)
	if _, err := r.ApplyAction(0, ActionSplit, 100); err != nil {
		t.Fatalf("split: %v", err)
	}
	// Both hands hold a fresh pair of eights, but the cap is reached.
	if hasAction(LegalActions(r, 0, 1000), ActionSplit) {
		t.Fatal("resplit beyond max_split_hands must be illegal")
	}
}

func TestLegalActionsNoDoubleAfterSplitWhenDisabled(t *testing.T) {
	rules := testRules()
	rules.DoubleAfterSplit = false
	r := newTestRound(t, rules, 100,
		Card{Eight, Spades}, Card{Two, Hearts}, Card{Eight, Clubs}, Card{Seven, Diamonds},
		Card{Three, Diamonds}, Card{Two, Spades},
	)
	if _, err := r.ApplyAction(0, ActionSplit, 100); err != nil {
		t.Fatalf("split: %v", err)
	}
	if hasAction(LegalActions(r, 0, 1000), ActionDouble) {
		t.Fatal("double after split disabled by rules")
	}
}

func TestLegalActionsSplitAcesNoHit(t *testing.T) {
	rules := testRules()
	rules.HitSplitAces = true
	r := newTestRound(t, rules, 100,
		Card{Ace, Spades}, Card{Two, Hearts}, Card{Ace, Clubs}, Card{Seven, Diamonds},
		Card{Five, Diamonds}, Card{Six, Spades},
	)
	if _, err := r.ApplyAction(0, ActionSplit, 100); err != nil {
		t.Fatalf("split: %v", err)
	}
	if !hasAction(LegalActions(r, 0, 0), ActionHit) {
		t.Fatal("hit_split_aces enabled should allow hitting")
	}
	if hasAction(LegalActions(r, 0, 1000), ActionSurrender) {
		t.Fatal("split hands can never surrender")
	}
}

func TestLegalActionsNoHitOnLiveSplitAcesHand(t *testing.T) {
	// LegalActions answers for any hand state it is handed, so the
	// hit-split-aces rule must hold even for a split-aces hand that is not
	// standing yet.
	r := &Round{
		Rules:  testRules(),
		Status: StatusPlayerTurn,
		Dealer: &Hand{Cards: []Card{{Ten, Clubs}, {Seven, Diamonds}}, SplitFrom: -1},
		Hands: []*Hand{
			{Cards: []Card{{Ace, Spades}, {Five, Hearts}}, Bet: 100, Split: true, SplitAces: true, SplitFrom: 0},
		},
	}
	actions := LegalActions(r, 0, 1000)
	if hasAction(actions, ActionHit) {
		t.Fatalf("split aces must not offer hit when hit_split_aces is off: %v", actions)
	}
	if !hasAction(actions, ActionStand) {
		t.Fatalf("stand must stay available: %v", actions)
	}
}

func TestLegalActionsEmptyWhenNotPlayerTurn(t *testing.T) {
	r := newTestRound(t, testRules(), 100,
		Card{Ace, Spades}, Card{Ten, Hearts}, Card{King, Clubs}, Card{Six, Diamonds},
	)
	if actions := LegalActions(r, 0, 100); len(actions) != 0 {
		t.Fatalf("completed round has no legal actions: %v", actions)
	}
}
