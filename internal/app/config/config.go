package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type ConfigType struct {
	ServerAddress string        `env:"SERVER_ADDRESS"`
	BaseAddress   string        `env:"BASE_URL"`
	DSN           string        `env:"DATABASE_DSN"`
	LogLevel      string        `env:"LOG_LEVEL"`
	QueryTimeout  time.Duration `env:"QUERY_TIMEOUT"`
}

// Defaults - значения флагов по умолчанию для конкретного бинарника.
type Defaults struct {
	ServerAddress string
	DSN           string
}

// NewConfig разбирает флаги из args, затем переопределяет их переменными
// окружения.
func NewConfig(name string, args []string, defaults Defaults) (*ConfigType, error) {
	config := ConfigType{}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&config.ServerAddress, "a", defaults.ServerAddress, "HTTP server address")
	fs.StringVar(&config.BaseAddress, "b", "", "base address prepended to short links")
	fs.StringVar(&config.DSN, "d", defaults.DSN, "storage DSN: memory://, file://<path>, sqlite://<path>, postgres://..., redis://...")
	fs.StringVar(&config.LogLevel, "l", "info", "log level")
	fs.DurationVar(&config.QueryTimeout, "t", 0, "per-query storage timeout, 0 disables it")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := env.Parse(&config); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	return &config, nil
}
