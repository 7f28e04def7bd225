package game

import (
	"github.com/minaorangina/doomlings/deck"
)

// scopePlayers resolves an effect scope relative to owner.
func (g *Game) scopePlayers(owner *Player, scope deck.Scope) []*Player {
	switch scope {
	case deck.ScopeAll:
		return g.Players
	case deck.ScopeOpponents, deck.ScopeOpponent:
		return g.opponents(owner)
	}
	return []*Player{owner}
}

func (g *Game) modifyGenePool(owner *Player, scope deck.Scope, delta int, why string) {
	if delta == 0 {
		return
	}
	for _, p := range g.scopePlayers(owner, scope) {
		p.GenePool = g.Config.clampGenePool(p.GenePool + delta)
	}
	switch scope {
	case deck.ScopeAll:
		g.log("All Gene Pools modified by %+d (%s)", delta, why)
	case deck.ScopeOpponents, deck.ScopeOpponent:
		g.log("%s's opponents' Gene Pools modified by %+d (%s)", owner.Name, delta, why)
	default:
		g.log("%s's Gene Pool is now %d (%s)", owner.Name, owner.GenePool, why)
	}
}

// applyGenePoolEffects applies only the gene pool passives in effects.
// This is the part of a trait that follows it from pile to pile.
func (g *Game) applyGenePoolEffects(owner *Player, c deck.Card, effects []deck.Effect) {
	for _, e := range effects {
		if kind, ok := deck.LookupPassive(e.Name); ok && kind == deck.PassiveModifyGenePool {
			g.modifyGenePool(owner, e.Params.Scope(), e.Params.Value, c.Name)
		}
	}
}

// applyPassives runs a freshly played trait's passive effects.
func (g *Game) applyPassives(owner *Player, c deck.Card) {
	for _, e := range c.Effects {
		kind, ok := deck.LookupPassive(e.Name)
		if !ok {
			g.logger.Printf("unknown passive effect %q on %s", e.Name, c.Name)
			continue
		}
		switch kind {
		case deck.PassiveModifyGenePool:
			g.modifyGenePool(owner, e.Params.Scope(), e.Params.Value, c.Name)
		case deck.PassiveDiscardHand:
			g.discardHand(owner)
			g.log("%s discarded their hand", owner.Name)
		case deck.PassiveSkipStabilization:
			owner.SkipStabilize = true
		}
	}
}

// removable reports whether a trait may ever leave a pile.
func removable(c deck.Card) bool {
	return !c.Dominant && !c.HasPersistent(deck.PersistentCannotBeRemoved)
}

// protected reports whether opponents' effects are barred from p's pile.
func (g *Game) protected(p *Player) bool {
	return g.Rules.ProtectTraits || p.ProtectedUntil > g.Round
}

// removeTraitFromPile takes the trait at i out of owner's pile and reverses
// the gene pool effects it was applying. Callers validate i and removability.
func (g *Game) removeTraitFromPile(owner *Player, i int) deck.Card {
	c := owner.TraitPile[i]
	owner.TraitPile = removeAt(owner.TraitPile, i)
	g.applyGenePoolEffects(owner, c, c.ReverseEffects())
	return c
}

// placeTrait adds a trait that arrived by any route other than a normal play.
func (g *Game) placeTrait(owner *Player, c deck.Card) {
	owner.TraitPile = append(owner.TraitPile, c)
	g.applyGenePoolEffects(owner, c, c.Effects)
}

// moveTrait moves the trait at i from one pile to another.
func (g *Game) moveTrait(from *Player, i int, to *Player) deck.Card {
	c := g.removeTraitFromPile(from, i)
	g.placeTrait(to, c)
	return c
}

// discardTrait removes the trait at i to the discard pile.
func (g *Game) discardTrait(owner *Player, i int) deck.Card {
	c := g.removeTraitFromPile(owner, i)
	g.discard(c)
	if c.HasPersistent(deck.PersistentDrawIfDiscarded) {
		n := c.Persistent.Params.ValueOr(1)
		g.draw(owner, n)
		g.log("%s drew %d card(s) as %s was discarded", owner.Name, n, c.Name)
	}
	return c
}

// firstRemovable returns the index of the first removable trait matching
// keep, or -1.
func firstRemovable(pile []deck.Card, keep func(deck.Card) bool) int {
	for i, c := range pile {
		if removable(c) && (keep == nil || keep(c)) {
			return i
		}
	}
	return -1
}
