package game

import "github.com/minaorangina/doomlings/deck"

// Player is one seat at the table.
type Player struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	IsHost    bool        `json:"isHost"`
	Ready     bool        `json:"ready"`
	Connected bool        `json:"connected"`
	Hand      []deck.Card `json:"hand"`
	TraitPile []deck.Card `json:"traitPile"`
	GenePool  int         `json:"genePool"`
	Score     int         `json:"score"`

	NeedsStabilize bool `json:"needsStabilize"`
	// ProtectedUntil is the first round in which the player's traits can be
	// targeted again.
	ProtectedUntil int `json:"protectedUntil,omitempty"`
	// WorldEndBonus accumulates point deltas from world's end effects.
	WorldEndBonus int        `json:"worldEndBonus,omitempty"`
	ChosenColor   deck.Color `json:"chosenColor,omitempty"`

	// Round flags, reset by startNewRound.
	ExtraPlays                int  `json:"extraPlays"`
	IgnoreActionsOnExtraPlays bool `json:"ignoreActionsOnExtraPlays,omitempty"`
	SkipStabilize             bool `json:"skipStabilize,omitempty"`
	ColorlessExtraPlayUsed    bool `json:"colorlessExtraPlayUsed,omitempty"`
	EffectlessExtraPlayUsed   bool `json:"effectlessExtraPlayUsed,omitempty"`
	MustPlayColorless         bool `json:"mustPlayColorless,omitempty"`
	MustPlayEffectless        bool `json:"mustPlayEffectless,omitempty"`
	PreStabilizeDiscardUsed   bool `json:"preStabilizeDiscardUsed,omitempty"`
}

// NewPlayer returns a connected player with empty hand and pile.
func NewPlayer(id, name string, isHost bool) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		IsHost:    isHost,
		Ready:     isHost,
		Connected: true,
		Hand:      []deck.Card{},
		TraitPile: []deck.Card{},
	}
}

func (p *Player) resetRound() {
	p.ExtraPlays = 0
	p.IgnoreActionsOnExtraPlays = false
	p.SkipStabilize = false
	p.ColorlessExtraPlayUsed = false
	p.EffectlessExtraPlayUsed = false
	p.MustPlayColorless = false
	p.MustPlayEffectless = false
	p.PreStabilizeDiscardUsed = false
}

func (p *Player) countDominants() int {
	n := 0
	for _, c := range p.TraitPile {
		if c.Dominant {
			n++
		}
	}
	return n
}

func (p *Player) hasTrait(name string) bool {
	for _, c := range p.TraitPile {
		if c.Name == name {
			return true
		}
	}
	return false
}

func (p *Player) handIndex(instanceID string) int {
	return indexOf(p.Hand, instanceID)
}

func (p *Player) pileIndex(instanceID string) int {
	return indexOf(p.TraitPile, instanceID)
}

func (p *Player) takeFromHand(i int) deck.Card {
	c := p.Hand[i]
	p.Hand = removeAt(p.Hand, i)
	return c
}
