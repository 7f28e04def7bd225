package game

import (
	"github.com/minaorangina/doomlings/deck"
	"github.com/minaorangina/doomlings/scoring"
)

// endGame resolves world's end and settles the final scores.
func (g *Game) endGame() {
	g.State = StateFinished
	g.Phase = PhaseFinished
	g.Pending = nil

	final := g.CurrentAge
	if final != nil && final.IsCatastrophe() && final.GenePoolEffect != 0 {
		for _, p := range g.Players {
			p.GenePool = g.Config.clampGenePool(p.GenePool + final.GenePoolEffect)
		}
	}

	g.log("Resolving World's End effects...")
	for _, p := range g.inTurnOrder() {
		for _, c := range append([]deck.Card{}, p.TraitPile...) {
			if c.WorldsEnd != nil {
				g.applyTraitWorldsEnd(p, c)
			}
		}
	}

	if final != nil && final.IsCatastrophe() && final.WorldEndEffect != nil {
		g.log("Final Catastrophe: %s", final.Name)
		g.applyWorldEnd(*final.WorldEndEffect)
	}

	t := g.table()
	top := 0
	for i, p := range g.Players {
		p.Score = g.scorer.Score(t, p.ID) + p.WorldEndBonus
		if i == 0 || p.Score > top {
			top = p.Score
		}
	}
	g.Winners = []string{}
	names := []string{}
	for _, p := range g.Players {
		if p.Score == top {
			g.Winners = append(g.Winners, p.ID)
			names = append(names, p.Name)
		}
	}
	if len(names) == 1 {
		g.log("GAME OVER! Winner: %s with %d points!", names[0], top)
		return
	}
	g.log("GAME OVER! Shared win on %d points: %v", top, names)
}

func (g *Game) applyTraitWorldsEnd(p *Player, c deck.Card) {
	e := *c.WorldsEnd
	kind, ok := deck.LookupTraitWorldsEnd(e.Name)
	if !ok {
		g.logger.Printf("unknown world's end effect %q on %s", e.Name, c.Name)
		return
	}

	switch kind {
	case deck.TraitWorldsEndDraw:
		n := g.draw(p, e.Params.ValueOr(2))
		g.log("%s: %s - Drew %d cards", p.Name, c.Name, n)

	case deck.TraitWorldsEndDrawAtEnd:
		n := g.draw(p, e.Params.ValueOr(3))
		g.log("%s: %s - Drew %d cards", p.Name, c.Name, n)

	case deck.TraitWorldsEndPlayFromHand:
		for _, h := range append([]deck.Card{}, p.Hand...) {
			if h.Dominant && p.countDominants() >= g.Config.MaxDominants {
				continue
			}
			p.takeFromHand(p.handIndex(h.InstanceID))
			g.placeTrait(p, h)
			g.log("%s: %s - Played %s", p.Name, c.Name, h.Name)
		}

	case deck.TraitWorldsEndPlayFromHandAtEnd:
		name := e.Params.CardName
		if name == "" {
			name = c.Name
		}
		for i, h := range p.Hand {
			if h.Name == name {
				p.takeFromHand(i)
				g.placeTrait(p, h)
				g.log("%s: Played %s from hand at World's End", p.Name, name)
				break
			}
		}

	case deck.TraitWorldsEndChooseColorForBonus:
		best := deck.Colors[0]
		most := scoring.CountColor(p.TraitPile, best)
		for _, col := range deck.Colors[1:] {
			if n := scoring.CountColor(p.TraitPile, col); n > most {
				best, most = col, n
			}
		}
		p.ChosenColor = best
		g.log("%s: %s - Auto-chose %s (%d traits)", p.Name, c.Name, best, most)

	case deck.TraitWorldsEndMayChangeColor:
		g.log("%s: %s - May become any color", p.Name, c.Name)
	case deck.TraitWorldsEndChooseColor:
		g.log("%s: %s - Choose color at World's End", p.Name, c.Name)
	case deck.TraitWorldsEndStealTrait:
		g.log("%s: %s - May steal a non-dominant trait", p.Name, c.Name)
	case deck.TraitWorldsEndChooseCatastrophe:
		g.log("%s: %s - Choose a World's End effect from the catastrophes", p.Name, c.Name)
	}
}

// applyWorldEnd applies the final catastrophe's deferred effect. Removals
// here ignore protection.
func (g *Game) applyWorldEnd(e deck.Effect) {
	kind, ok := deck.LookupWorldEnd(e.Name)
	if !ok {
		g.logger.Printf("unknown world end effect %q", e.Name)
		return
	}
	value := e.Params.Value

	switch kind {
	case deck.WorldEndFewestTraits, deck.WorldEndMostTraits:
		label := "most"
		if kind == deck.WorldEndFewestTraits {
			label = "fewest"
		}
		best := -1
		for _, p := range g.Players {
			n := len(p.TraitPile)
			if best < 0 || (kind == deck.WorldEndFewestTraits && n < best) || (kind == deck.WorldEndMostTraits && n > best) {
				best = n
			}
		}
		for _, p := range g.Players {
			if len(p.TraitPile) == best {
				p.WorldEndBonus += value
				g.log("%s gets %+d for %s traits", p.Name, value, label)
			}
		}

	case deck.WorldEndForEveryColor:
		for _, p := range g.Players {
			n := scoring.CountColor(p.TraitPile, e.Params.Color)
			g.worldEndBonus(p, n*value, "%d %s traits", n, e.Params.Color)
		}

	case deck.WorldEndFaceValue:
		for _, p := range g.Players {
			n := 0
			for _, c := range p.TraitPile {
				if e.Params.Compare(scoring.BaseFaceValue(p.TraitPile, c)) {
					n++
				}
			}
			g.worldEndBonus(p, n*value, "%d traits with face %s", n, e.Params.CompareType)
		}

	case deck.WorldEndMissingColors:
		for _, p := range g.Players {
			missing := 0
			for _, col := range deck.Colors {
				if scoring.CountColor(p.TraitPile, col) == 0 {
					missing++
				}
			}
			g.worldEndBonus(p, missing*value, "%d missing colors", missing)
		}

	case deck.WorldEndColorlessWorthTwo:
		for _, p := range g.Players {
			n := 0
			for _, c := range p.TraitPile {
				if c.IsColor(deck.Colorless) && !c.Dominant {
					n++
				}
			}
			g.worldEndBonus(p, n*2, "%d colorless traits", n)
		}

	case deck.WorldEndDrawAddFaceValue:
		for _, p := range g.Players {
			drawn := g.drawCards(1)
			if len(drawn) == 0 {
				continue
			}
			c := drawn[0]
			face := scoring.BaseFaceValue(p.TraitPile, c)
			bonus := face
			if bonus < 0 {
				bonus = 0
			}
			if bonus > 5 {
				bonus = 5
			}
			p.WorldEndBonus += bonus
			g.discard(c)
			g.log("%s drew %s (face %d), gets +%d points", p.Name, c.Name, face, bonus)
		}

	case deck.WorldEndDiscardFromTraitPile, deck.WorldEndDiscardTraitFaceValue:
		for _, p := range g.Players {
			keep := func(c deck.Card) bool {
				if kind == deck.WorldEndDiscardTraitFaceValue {
					return e.Params.Compare(scoring.BaseFaceValue(p.TraitPile, c))
				}
				return e.Params.Color == "" || c.IsColor(e.Params.Color)
			}
			for i := 0; i < e.Params.NumCardsOr(1); i++ {
				idx := firstRemovable(p.TraitPile, keep)
				if idx < 0 {
					break
				}
				c := g.discardTrait(p, idx)
				g.log("%s lost %s (World's End)", p.Name, c.Name)
			}
		}
	}
}

func (g *Game) worldEndBonus(p *Player, delta int, format string, args ...interface{}) {
	if delta == 0 {
		return
	}
	p.WorldEndBonus += delta
	g.log("%s gets %+d for "+format, append([]interface{}{p.Name, delta}, args...)...)
}
