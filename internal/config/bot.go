package config

import "github.com/caarlos0/env/v11"

type BotConfig struct {
	ServerURL string `env:"SERVER_URL" envDefault:"http://localhost:8080"`
	PlayerID  string `env:"PLAYER_ID" envDefault:"bot"`
	BetCC     int64  `env:"BET_CC" envDefault:"100"`
	Rounds    int    `env:"ROUNDS" envDefault:"10"`
}

func LoadBot() (BotConfig, error) {
	var cfg BotConfig
	err := env.Parse(&cfg)
	return cfg, err
}
