package game

import (
	"fmt"
	"strconv"

	"github.com/minaorangina/doomlings/catalog"
	"github.com/minaorangina/doomlings/deck"
	"github.com/minaorangina/doomlings/scoring"
)

// CanPlayCard checks, in order, the round's restrictions, the dominant cap
// and the card's own play conditions. The first failure gives the reason.
func (g *Game) CanPlayCard(p *Player, c deck.Card) (bool, string) {
	if reason := g.restricted(p, c); reason != "" {
		return false, reason
	}
	if c.Dominant && p.countDominants() >= g.Config.MaxDominants {
		return false, fmt.Sprintf("Already have %d dominant traits", g.Config.MaxDominants)
	}
	if reason := g.unmetCondition(p, c); reason != "" {
		return false, reason
	}
	return true, ""
}

func (g *Game) restricted(p *Player, c deck.Card) string {
	for _, r := range g.Rules.Restrictions {
		kind, ok := deck.LookupTurnEffect(r.Name)
		if !ok {
			continue
		}
		switch kind {
		case deck.TurnAddRestriction:
			if reason := g.violates(p, c, r.Params); reason != "" {
				return reason
			}
		case deck.TurnCannotPlaySameColor:
			last := g.Rules.LastPlayedColor
			if last != "" && c.Color.SharesAny(last) {
				return fmt.Sprintf("Cannot play same color as last trait (%s)", last)
			}
		}
	}

	if p.MustPlayColorless && !c.IsColor(deck.Colorless) {
		return "Must play a colorless trait"
	}
	if p.MustPlayEffectless && !c.Effectless() {
		return "Must play an effectless trait"
	}
	return ""
}

func (g *Game) violates(p *Player, c deck.Card, params deck.Params) string {
	switch params.RestrictedAttribute {
	case "color":
		color := catalog.NormaliseColor(params.RestrictedValue)
		if params.RestrictedType == "equal" && c.IsColor(color) {
			return fmt.Sprintf("Cannot play %s traits this round", color)
		}
	case "face_value":
		limit, err := strconv.Atoi(params.RestrictedValue)
		if err != nil {
			g.logger.Printf("bad face value restriction %q: %v", params.RestrictedValue, err)
			return ""
		}
		face := scoring.BaseFaceValue(p.TraitPile, c)
		if params.RestrictedType == "greater_than" && face > limit {
			return fmt.Sprintf("Cannot play traits with face value greater than %d", limit)
		}
		if params.RestrictedType == "less_than" && face < limit {
			return fmt.Sprintf("Cannot play traits with face value less than %d", limit)
		}
	default:
		g.logger.Printf("unknown restricted attribute %q", params.RestrictedAttribute)
	}
	return ""
}

func (g *Game) unmetCondition(p *Player, c deck.Card) string {
	for _, cond := range c.PlayConditions {
		kind, ok := deck.LookupCondition(cond.Name)
		if !ok {
			g.logger.Printf("unknown play condition %q on %s", cond.Name, c.Name)
			continue
		}
		switch kind {
		case deck.ConditionAtLeastNTraits:
			count := len(p.TraitPile)
			if cond.Params.Color != "" {
				count = scoring.CountColor(p.TraitPile, cond.Params.Color)
			}
			if count >= cond.Params.NumTraits {
				continue
			}
			if c.RequirementDescription != "" {
				return c.RequirementDescription
			}
			if cond.Params.Color != "" {
				return fmt.Sprintf("Requires %d %s traits in your trait pile", cond.Params.NumTraits, cond.Params.Color)
			}
			return fmt.Sprintf("Requires %d traits in your trait pile", cond.Params.NumTraits)
		}
	}
	return ""
}

// HasPlayableCards reports whether any card in p's hand can be played.
func (g *Game) HasPlayableCards(p *Player) bool {
	return g.hasPlayable(p, nil)
}

func (g *Game) hasPlayable(p *Player, keep func(deck.Card) bool) bool {
	for _, c := range p.Hand {
		if keep != nil && !keep(c) {
			continue
		}
		if ok, _ := g.CanPlayCard(p, c); ok {
			return true
		}
	}
	return false
}

// grantBonusPlays gives the one extra colorless or effectless play an age
// may allow after such a trait is played.
func (g *Game) grantBonusPlays(p *Player, played deck.Card) {
	isColorless := func(c deck.Card) bool { return c.IsColor(deck.Colorless) }
	isEffectless := func(c deck.Card) bool { return c.Effectless() }

	if g.Rules.ColorlessAllowsExtraPlay && !p.ColorlessExtraPlayUsed && isColorless(played) {
		if g.hasPlayable(p, isColorless) {
			p.ExtraPlays++
			p.ColorlessExtraPlayUsed = true
			p.MustPlayColorless = true
			g.log("%s may play another colorless trait", p.Name)
		}
	}
	if g.Rules.EffectlessAllowsExtraPlay && !p.EffectlessExtraPlayUsed && isEffectless(played) {
		if g.hasPlayable(p, isEffectless) {
			p.ExtraPlays++
			p.EffectlessExtraPlayUsed = true
			p.MustPlayEffectless = true
			g.log("%s may play another effectless trait", p.Name)
		}
	}
}
