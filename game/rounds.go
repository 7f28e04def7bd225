package game

import (
	"github.com/minaorangina/doomlings/deck"
	"github.com/minaorangina/doomlings/scoring"
)

// startNewRound opens the next round and reveals the next age. An empty age
// deck ends the game.
func (g *Game) startNewRound() {
	g.Round++
	g.PlayedThisRound = map[string]bool{}
	g.Rules = freshRules()
	for _, p := range g.Players {
		p.resetRound()
	}
	g.CurrentPlayerIndex = g.FirstPlayerIndex

	for _, p := range g.inTurnOrder() {
		for _, c := range p.TraitPile {
			if c.HasPersistent(deck.PersistentDrawAtRoundStart) {
				n := g.draw(p, c.Persistent.Params.ValueOr(1))
				g.log("%s drew %d card(s) from %s", p.Name, n, c.Name)
			}
		}
	}

	if len(g.AgeDeck) == 0 {
		g.endGame()
		return
	}
	age := g.AgeDeck[0]
	g.AgeDeck = g.AgeDeck[1:]
	g.CurrentAge = &age

	if age.IsCatastrophe() {
		g.Phase = PhaseCatastrophe
		g.log("CATASTROPHE: %s!", age.Name)
		return
	}

	g.log("Age: %s", age.Name)
	if age.Description != "" {
		g.log("Round effect: %s", age.Description)
	}
	g.applyTurnEffects(age.TurnEffects)
	g.applyInstantEffects(age)
	g.Phase = PhasePlay
	g.settleSeat()
}

func (g *Game) applyTurnEffects(effects []deck.Effect) {
	g.Rules.Restrictions = append([]deck.Effect{}, effects...)
	for _, e := range effects {
		kind, ok := deck.LookupTurnEffect(e.Name)
		if !ok {
			g.logger.Printf("unknown turn effect %q", e.Name)
			continue
		}
		switch kind {
		case deck.TurnAddRestriction, deck.TurnCannotPlaySameColor:
			// checked by CanPlayCard
		case deck.TurnOptionalStabilization:
			g.Rules.OptionalStabilization = true
			g.log("Optional: You may choose not to stabilize this round")
		case deck.TurnOptionalDiscardBeforeStabilize:
			g.Rules.OptionalDiscardBeforeStabilize = e.Params.MaxCards
			if g.Rules.OptionalDiscardBeforeStabilize == 0 {
				g.Rules.OptionalDiscardBeforeStabilize = 2
			}
			g.log("Optional: You may discard up to %d cards before stabilizing", g.Rules.OptionalDiscardBeforeStabilize)
		case deck.TurnColorlessAllowsExtraPlay:
			g.Rules.ColorlessAllowsExtraPlay = true
			g.log("Playing a colorless trait allows playing another colorless trait")
		case deck.TurnEffectlessAllowsExtraPlay:
			g.Rules.EffectlessAllowsExtraPlay = true
			g.log("Playing an effectless trait allows playing another effectless trait")
		case deck.TurnPreviewNextAge:
			g.Rules.PreviewNextAge = true
			g.log("You may preview the next age before taking your turn")
		case deck.TurnProtectTraits:
			g.Rules.ProtectTraits = true
			g.log("All traits are protected from swapping, stealing and discarding this round")
		case deck.TurnIgnoreActions:
			g.Rules.IgnoreActions = true
			g.log("Action effects are ignored this round")
		case deck.TurnSetEndTurnNumberCards:
			n := e.Params.NumCards
			g.Rules.StabilizeTarget = &n
			g.log("At end of turn, draw/discard to %d cards", n)
		}
	}
}

func (g *Game) applyInstantEffects(age deck.Age) {
	cur := g.CurrentPlayer()
	for _, e := range age.InstantEffects {
		kind, ok := deck.LookupInstant(e.Name)
		if !ok {
			g.logger.Printf("unknown instant effect %q on %s", e.Name, age.Name)
			continue
		}
		params := e.Params
		switch kind {
		case deck.InstantModifyGenePool:
			g.modifyGenePool(cur, params.Scope(), params.Value, age.Name)

		case deck.InstantDrawCards:
			n := params.ValueOr(1)
			for _, p := range g.scopePlayers(cur, params.Scope()) {
				g.draw(p, n)
			}
			g.log("Players drew %d card(s)", n)

		case deck.InstantDiscardFromHand:
			n := params.NumCardsOr(1)
			for _, p := range g.inTurnOrder() {
				g.discardRandom(p, n)
			}
			g.log("All players discarded %d card(s)", n)

		case deck.InstantDealFromDiscardPile:
			if len(g.DiscardPile) == 0 {
				continue
			}
			g.DiscardPile = deck.Shuffle(g.rng, g.DiscardPile)
			n := params.NumCardsOr(1)
			for _, p := range g.inTurnOrder() {
				for i := 0; i < n && len(g.DiscardPile) > 0; i++ {
					p.Hand = append(p.Hand, g.DiscardPile[0])
					g.DiscardPile = g.DiscardPile[1:]
				}
			}
			g.log("Dealt %d card(s) from discard pile to each player", n)

		case deck.InstantStabilizeAllPlayers:
			for _, p := range g.inTurnOrder() {
				g.stabilizeRandom(p, p.GenePool)
			}
			g.log("All players stabilized to their gene pool size")

		case deck.InstantModifyNumberCardsTurn:
			g.Rules.CardsPerTurn = params.ValueOr(1)

		case deck.InstantSetEndTurnNumberCards:
			n := params.NumCards
			g.Rules.StabilizeTarget = &n
			g.log("At end of turn, draw/discard to %d cards", n)

		case deck.InstantTurnIgnoreActions:
			g.Rules.IgnoreActions = true
			g.log("Action effects are ignored this round")

		case deck.InstantPlayHeroic:
			for _, p := range g.inTurnOrder() {
				for i := 0; i < len(p.Hand); {
					c := p.Hand[i]
					if c.Name != "Heroic" || (c.Dominant && p.countDominants() >= g.Config.MaxDominants) {
						i++
						continue
					}
					g.placeTrait(p, p.takeFromHand(i))
					g.log("%s auto-played Heroic", p.Name)
				}
			}

		case deck.InstantDrawCardAfterStabilize:
			g.Rules.DrawAfterStabilize = params.ValueOr(1)
			g.log("Players will draw %d card(s) after stabilizing", g.Rules.DrawAfterStabilize)

		case deck.InstantStealRandomCardIfVampirism:
			for _, p := range g.inTurnOrder() {
				if !p.hasTrait("Vampirism") {
					continue
				}
				victims := []*Player{}
				for _, o := range g.opponents(p) {
					if len(o.Hand) > 0 {
						victims = append(victims, o)
					}
				}
				if len(victims) == 0 {
					continue
				}
				victim := victims[g.rng.Intn(len(victims))]
				p.Hand = append(p.Hand, victim.takeFromHand(g.rng.Intn(len(victim.Hand))))
				g.log("%s (with Vampirism) stole a card from %s", p.Name, victim.Name)
			}

		case deck.InstantDrawKeepOneDiscardTwo:
			for _, p := range g.inTurnOrder() {
				drawn := g.drawCards(3)
				for len(drawn) > 1 {
					i := g.rng.Intn(len(drawn))
					g.discard(drawn[i])
					drawn = removeAt(drawn, i)
				}
				p.Hand = append(p.Hand, drawn...)
				g.log("%s drew 3 cards and kept 1", p.Name)
			}
		}
	}
}

// AcknowledgeCatastrophe resolves the revealed catastrophe. Any seated
// player may acknowledge it.
func (g *Game) AcknowledgeCatastrophe(playerID string) (Result, error) {
	if g == nil {
		return Result{}, ErrNilGame
	}
	if g.State != StatePlaying {
		return Result{}, ErrGameNotInProgress
	}
	if g.Player(playerID) == nil {
		return Result{}, ErrPlayerNotFound
	}
	if g.Phase != PhaseCatastrophe {
		return Result{}, ErrNoCatastrophe
	}
	g.handleCatastrophe()
	return g.outcome(g.Player(playerID), ""), nil
}

func (g *Game) handleCatastrophe() {
	cat := *g.CurrentAge
	g.CatastropheCount++
	g.ResolvedCatastrophes = append(g.ResolvedCatastrophes, cat)
	g.log("CATASTROPHE %d/%d: %s!", g.CatastropheCount, g.Config.Catastrophes, cat.Name)

	g.FirstPlayerIndex = (g.FirstPlayerIndex + 1) % len(g.Players)
	g.CurrentPlayerIndex = g.FirstPlayerIndex

	if cat.GenePoolEffect != 0 {
		for _, p := range g.Players {
			p.GenePool = g.Config.clampGenePool(p.GenePool + cat.GenePoolEffect)
		}
		g.log("All Gene Pools %+d", cat.GenePoolEffect)
	}

	if g.CatastropheCount >= g.Config.Catastrophes {
		g.endGame()
		return
	}

	g.applyCatastropheEffects(cat)
	g.Phase = PhasePlay
	g.settleSeat()
}

// catastropheTargets lists the players a catastrophe's round effects reach,
// in turn order from the first player.
func (g *Game) catastropheTargets() []*Player {
	out := []*Player{}
	for _, p := range g.inTurnOrder() {
		immune := false
		for _, c := range p.TraitPile {
			if c.HasPersistent(deck.PersistentIgnoreCatastropheEffects) {
				immune = true
				g.log("%s ignores the catastrophe (%s)", p.Name, c.Name)
				break
			}
		}
		if !immune {
			out = append(out, p)
		}
	}
	return out
}

func (g *Game) applyCatastropheEffects(cat deck.Age) {
	targets := g.catastropheTargets()
	for _, e := range cat.CatastropheEffects {
		kind, ok := deck.LookupCatastrophe(e.Name)
		if !ok {
			g.logger.Printf("unknown catastrophe effect %q on %s", e.Name, cat.Name)
			continue
		}
		params := e.Params
		switch kind {
		case deck.CatastropheDrawForEveryColorType:
			for _, p := range targets {
				if n := scoring.CountUniqueColors(p.TraitPile); n > 0 {
					drawn := g.draw(p, n)
					g.log("%s drew %d card(s) for %d color(s)", p.Name, drawn, n)
				}
			}

		case deck.CatastropheDiscardForEveryColor:
			for _, p := range targets {
				if n := g.discardRandom(p, scoring.CountColor(p.TraitPile, params.Color)); n > 0 {
					g.log("%s discarded %d card(s) for %s traits", p.Name, n, params.Color)
				}
			}

		case deck.CatastropheDiscardForEveryDominant:
			for _, p := range targets {
				if n := g.discardRandom(p, p.countDominants()); n > 0 {
					g.log("%s discarded %d card(s) for Dominant traits", p.Name, n)
				}
			}

		case deck.CatastropheDiscardAllButN:
			keep := params.NumCardsOr(1)
			for _, p := range targets {
				if n := g.discardRandom(p, len(p.Hand)-keep); n > 0 {
					g.log("%s discarded %d card(s), keeping %d", p.Name, n, len(p.Hand))
				}
			}

		case deck.CatastropheDiscardHandAndStabilize:
			for _, p := range targets {
				if n := g.discardHand(p); n > 0 {
					g.log("%s discarded entire hand (%d cards)", p.Name, n)
				}
				if n := g.draw(p, p.GenePool); n > 0 {
					g.log("%s drew %d card(s) to stabilize", p.Name, n)
				}
			}

		case deck.CatastropheStabilizeAllThenDiscard:
			for _, p := range targets {
				g.stabilizeRandom(p, p.GenePool)
				if n := g.discardRandom(p, params.NumCardsOr(1)); n > 0 {
					g.log("%s stabilized then discarded %d more card(s)", p.Name, n)
				}
			}

		case deck.CatastrophePassHandRight:
			g.passHands(targets, -1)
			g.log("All players passed their hand to the right")

		case deck.CatastrophePassHandLeft:
			g.passHands(targets, 1)
			g.log("All players passed their hand to the left")

		case deck.CatastropheDiscardHalfHand:
			for _, p := range targets {
				if n := g.discardRandom(p, (len(p.Hand)+1)/2); n > 0 {
					g.log("%s discarded %d card(s) (half of hand)", p.Name, n)
				}
			}

		case deck.CatastropheGiveCardsToAdjacent:
			n := len(targets)
			given := make([][]deck.Card, n)
			for i, p := range targets {
				for j := 0; j < params.NumCardsOr(1) && len(p.Hand) > 0; j++ {
					given[i] = append(given[i], p.takeFromHand(g.rng.Intn(len(p.Hand))))
				}
			}
			for i, cards := range given {
				if len(cards) == 0 {
					continue
				}
				left := targets[(i-1+n)%n]
				right := targets[(i+1)%n]
				left.Hand = append(left.Hand, cards[0])
				right.Hand = append(right.Hand, cards[1:]...)
				g.log("%s gave cards to adjacent opponents", targets[i].Name)
			}

		case deck.CatastropheDiscardTraitFromPile:
			for _, p := range targets {
				for j := 0; j < params.NumCardsOr(1); j++ {
					i := firstRemovable(p.TraitPile, nil)
					if i < 0 {
						break
					}
					c := g.discardTrait(p, i)
					g.log("%s discarded %s from trait pile", p.Name, c.Name)
				}
			}

		case deck.CatastropheReverseTurnOrder:
			n := len(g.Players)
			for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
				g.Players[i], g.Players[j] = g.Players[j], g.Players[i]
			}
			g.FirstPlayerIndex = n - 1 - g.FirstPlayerIndex
			g.CurrentPlayerIndex = g.FirstPlayerIndex
			g.log("Turn order reversed")
		}
	}
}

// passHands moves each target's whole hand step seats along the targets.
func (g *Game) passHands(targets []*Player, step int) {
	n := len(targets)
	if n < 2 {
		return
	}
	hands := make([][]deck.Card, n)
	for i, p := range targets {
		hands[i] = p.Hand
	}
	for i, hand := range hands {
		targets[(i+step+n)%n].Hand = hand
	}
}

// allPlayed reports whether every seat has taken its turn this round.
func (g *Game) allPlayed() bool {
	for _, p := range g.Players {
		if !g.PlayedThisRound[p.ID] {
			return false
		}
	}
	return true
}

func (g *Game) connectedCount() int {
	n := 0
	for _, p := range g.Players {
		if p.Connected {
			n++
		}
	}
	return n
}

// advanceTurn hands the turn to the next seat, or opens a new round once
// every seat has played.
func (g *Game) advanceTurn() {
	if g.State != StatePlaying {
		return
	}
	g.Phase = PhasePlay
	if g.allPlayed() {
		g.startNewRound()
		return
	}
	g.CurrentPlayerIndex = (g.CurrentPlayerIndex + 1) % len(g.Players)
	g.settleSeat()
}

// settleSeat moves past seats that cannot take a turn: disconnected players
// forfeit theirs.
func (g *Game) settleSeat() {
	if g.State != StatePlaying || g.Phase != PhasePlay || g.connectedCount() == 0 {
		return
	}
	for range g.Players {
		p := g.CurrentPlayer()
		if p.Connected && !g.PlayedThisRound[p.ID] {
			return
		}
		if !p.Connected {
			g.PlayedThisRound[p.ID] = true
		}
		if g.allPlayed() {
			g.startNewRound()
			return
		}
		g.CurrentPlayerIndex = (g.CurrentPlayerIndex + 1) % len(g.Players)
	}
}
