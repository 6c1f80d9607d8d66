package game

import "testing"

func resolveOne(t *testing.T, rules Rules, hand *Hand, dealer []Card) HandResult {
	t.Helper()
	r := &Round{
		Rules:  rules,
		Dealer: &Hand{Cards: dealer, SplitFrom: -1},
		Hands:  []*Hand{hand},
		Status: StatusCompleted,
	}
	return Resolve(r)[0]
}

func TestResolveDealerBust(t *testing.T) {
	res := resolveOne(t, testRules(),
		&Hand{Cards: []Card{{Ten, Spades}, {Eight, Hearts}}, Bet: 100, Standing: true},
		[]Card{{Ten, Clubs}, {Six, Diamonds}, {King, Hearts}},
	)
	if res.Outcome != OutcomeWin || res.WinAmount != 200 {
		t.Fatalf("unexpected: %+v", res)
	}
}

func TestResolveHigherTotalWins(t *testing.T) {
	res := resolveOne(t, testRules(),
		&Hand{Cards: []Card{{Ten, Spades}, {Ten, Hearts}}, Bet: 100, Standing: true},
		[]Card{{Ten, Clubs}, {Nine, Diamonds}},
	)
	if res.Outcome != OutcomeWin || res.WinAmount != 200 {
		t.Fatalf("unexpected: %+v", res)
	}
}

func TestResolveEqualTotalsPush(t *testing.T) {
	res := resolveOne(t, testRules(),
		&Hand{Cards: []Card{{Ten, Spades}, {Nine, Hearts}}, Bet: 100, Standing: true},
		[]Card{{Ten, Clubs}, {Nine, Diamonds}},
	)
	if res.Outcome != OutcomePush || res.WinAmount != 100 {
		t.Fatalf("unexpected: %+v", res)
	}
}

func TestResolveBustLosesEvenWhenDealerBusts(t *testing.T) {
	res := resolveOne(t, testRules(),
		&Hand{Cards: []Card{{Ten, Spades}, {Nine, Hearts}, {Five, Clubs}}, Bet: 100},
		[]Card{{Ten, Clubs}, {Six, Diamonds}, {King, Hearts}},
	)
	if res.Outcome != OutcomeBusted || res.WinAmount != 0 {
		t.Fatalf("player bust resolves first: %+v", res)
	}
}

func TestResolveBlackjackPayoutRatio(t *testing.T) {
	rules := testRules()
	rules.BlackjackPayoutNum = 6
	rules.BlackjackPayoutDen = 5
	res := resolveOne(t, rules,
		&Hand{Cards: []Card{{Ace, Spades}, {King, Hearts}}, Bet: 100},
		[]Card{{Ten, Clubs}, {Nine, Diamonds}},
	)
	if res.Outcome != OutcomeBlackjack || res.WinAmount != 220 {
		t.Fatalf("6:5 payout on 100 should credit 220: %+v", res)
	}
}

func TestResolveSplitHandsIndependently(t *testing.T) {
	r := &Round{
		Rules:  testRules(),
		Dealer: &Hand{Cards: []Card{{Ten, Clubs}, {Eight, Diamonds}}, SplitFrom: -1},
		Hands: []*Hand{
			{Cards: []Card{{Eight, Spades}, {Ten, Spades}, {Five, Hearts}}, Bet: 50, Split: true},
			{Cards: []Card{{Eight, Clubs}, {Ace, Hearts}}, Bet: 50, Split: true, Standing: true, SplitFrom: 0},
		},
		Status: StatusCompleted,
	}
	results := Resolve(r)
	if results[0].Outcome != OutcomeBusted || results[0].WinAmount != 0 {
		t.Fatalf("hand 0: %+v", results[0])
	}
	if results[1].Outcome != OutcomeWin || results[1].WinAmount != 100 {
		t.Fatalf("hand 1: %+v", results[1])
	}
}

func TestResolveSurrenderTruncatesHalf(t *testing.T) {
	res := resolveOne(t, testRules(),
		&Hand{Cards: []Card{{Ten, Spades}, {Six, Hearts}}, Bet: 75, Surrendered: true},
		[]Card{{Ten, Clubs}, {Nine, Diamonds}},
	)
	if res.Outcome != OutcomeSurrendered || res.WinAmount != 37 {
		t.Fatalf("unexpected: %+v", res)
	}
}
