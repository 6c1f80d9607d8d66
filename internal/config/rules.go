package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"

	"blackjack-server/internal/game"
)

// RulesConfig is the table rule configuration. The blackjack payout is an
// integer ratio like "3:2" so settlement math never touches floats.
type RulesConfig struct {
	Decks              int    `env:"BLACKJACK_DECKS" envDefault:"6"`
	BlackjackPayout    string `env:"BLACKJACK_PAYOUT" envDefault:"3:2"`
	DealerStandsSoft17 bool   `env:"DEALER_STANDS_SOFT17" envDefault:"true"`
	DoubleAfterSplit   bool   `env:"DOUBLE_AFTER_SPLIT" envDefault:"true"`
	HitSplitAces       bool   `env:"HIT_SPLIT_ACES" envDefault:"false"`
	MaxSplitHands      int    `env:"MAX_SPLIT_HANDS" envDefault:"4"`
	InsuranceOffered   bool   `env:"INSURANCE_OFFERED" envDefault:"true"`
	SurrenderAllowed   bool   `env:"SURRENDER_ALLOWED" envDefault:"true"`
}

func LoadRules() (RulesConfig, error) {
	var cfg RulesConfig
	err := env.Parse(&cfg)
	return cfg, err
}

// GameRules converts the config to engine rules, validating everything a
// round would otherwise fail on after cards were dealt.
func (c RulesConfig) GameRules() (game.Rules, error) {
	num, den, err := parsePayoutRatio(c.BlackjackPayout)
	if err != nil {
		return game.Rules{}, err
	}
	rules := game.Rules{
		Decks:              c.Decks,
		BlackjackPayoutNum: num,
		BlackjackPayoutDen: den,
		DealerStandsSoft17: c.DealerStandsSoft17,
		DoubleAfterSplit:   c.DoubleAfterSplit,
		HitSplitAces:       c.HitSplitAces,
		MaxSplitHands:      c.MaxSplitHands,
		InsuranceOffered:   c.InsuranceOffered,
		SurrenderAllowed:   c.SurrenderAllowed,
	}
	if err := rules.Validate(); err != nil {
		return game.Rules{}, err
	}
	return rules, nil
}

func parsePayoutRatio(s string) (int64, int64, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("payout ratio %q: want num:den", s)
	}
	num, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("payout ratio %q: %w", s, err)
	}
	den, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("payout ratio %q: %w", s, err)
	}
	if num < 1 || den < 1 {
		return 0, 0, fmt.Errorf("payout ratio %q: must be positive", s)
	}
	return num, den, nil
}
