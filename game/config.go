package game

import "time"

// Config holds the rule constants of one edition of the game.
type Config struct {
	MinGenePool         int           `json:"minGenePool"`
	MaxGenePool         int           `json:"maxGenePool"`
	MaxDominants        int           `json:"maxDominants"`
	Catastrophes        int           `json:"catastrophes"`
	AgesPerSection      int           `json:"agesPerSection"`
	MinPlayers          int           `json:"minPlayers"`
	MaxPlayers          int           `json:"maxPlayers"`
	RevealTimeout       time.Duration `json:"revealTimeout"`
	LogLimit            int           `json:"logLimit"`
	LogView             int           `json:"logView"`
	GenePoolLeaderBonus int           `json:"genePoolLeaderBonus"`
}

// DefaultConfig is the base game.
func DefaultConfig() Config {
	return Config{
		MinGenePool:         1,
		MaxGenePool:         8,
		MaxDominants:        2,
		Catastrophes:        3,
		AgesPerSection:      3,
		MinPlayers:          2,
		MaxPlayers:          6,
		RevealTimeout:       60 * time.Second,
		LogLimit:            50,
		LogView:             10,
		GenePoolLeaderBonus: 3,
	}
}

// withDefaults fills any zero field from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinGenePool == 0 {
		c.MinGenePool = d.MinGenePool
	}
	if c.MaxGenePool == 0 {
		c.MaxGenePool = d.MaxGenePool
	}
	if c.MaxDominants == 0 {
		c.MaxDominants = d.MaxDominants
	}
	if c.Catastrophes == 0 {
		c.Catastrophes = d.Catastrophes
	}
	if c.AgesPerSection == 0 {
		c.AgesPerSection = d.AgesPerSection
	}
	if c.MinPlayers == 0 {
		c.MinPlayers = d.MinPlayers
	}
	if c.MaxPlayers == 0 {
		c.MaxPlayers = d.MaxPlayers
	}
	if c.RevealTimeout == 0 {
		c.RevealTimeout = d.RevealTimeout
	}
	if c.LogLimit == 0 {
		c.LogLimit = d.LogLimit
	}
	if c.LogView == 0 {
		c.LogView = d.LogView
	}
	if c.GenePoolLeaderBonus == 0 {
		c.GenePoolLeaderBonus = d.GenePoolLeaderBonus
	}
	return c
}

// clampGenePool keeps a gene pool within the configured bounds.
func (c Config) clampGenePool(v int) int {
	if v < c.MinGenePool {
		return c.MinGenePool
	}
	if v > c.MaxGenePool {
		return c.MaxGenePool
	}
	return v
}
