package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/minaorangina/doomlings/game"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is read from the environment.
type Config struct {
	Port           int           `env:"PORT,default=8000"`
	MaxGenePool    int           `env:"DOOMLINGS_MAX_GENE_POOL,default=8"`
	RevealTimeout  time.Duration `env:"DOOMLINGS_REVEAL_TIMEOUT,default=60s"`
	MaxPlayers     int           `env:"DOOMLINGS_MAX_PLAYERS,default=6"`
	AllowedOrigins []string      `env:"DOOMLINGS_ALLOWED_ORIGINS,default=*"`
}

// Load decodes the environment. Unset variables take their defaults.
func Load() (Config, error) {
	var c Config
	if err := envdecode.Decode(&c); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	d := game.DefaultConfig()
	switch {
	case c.Port <= 0:
		return fmt.Errorf("%w: port %d", ErrInvalidConfig, c.Port)
	case c.MaxGenePool < d.MinGenePool:
		return fmt.Errorf("%w: max gene pool %d", ErrInvalidConfig, c.MaxGenePool)
	case c.MaxPlayers < d.MinPlayers:
		return fmt.Errorf("%w: max players %d", ErrInvalidConfig, c.MaxPlayers)
	case c.RevealTimeout <= 0:
		return fmt.Errorf("%w: reveal timeout %s", ErrInvalidConfig, c.RevealTimeout)
	}
	return nil
}

// Addr is the address to listen on.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// GameConfig applies the overrides to the base game.
func (c Config) GameConfig() game.Config {
	gc := game.DefaultConfig()
	gc.MaxGenePool = c.MaxGenePool
	gc.MaxPlayers = c.MaxPlayers
	gc.RevealTimeout = c.RevealTimeout
	return gc
}
