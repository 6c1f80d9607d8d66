package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	InitialBalanceCC int64         `env:"INITIAL_BALANCE_CC" envDefault:"100000"`
	RoundIdleTimeout time.Duration `env:"ROUND_IDLE_TIMEOUT" envDefault:"2m"`
	JanitorInterval  time.Duration `env:"JANITOR_INTERVAL" envDefault:"30s"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
