package game

import (
	"fmt"

	"github.com/minaorangina/doomlings/deck"
)

// resume runs the continuation until it is empty or an effect needs a
// player's answer. It reports whether every effect completed; otherwise the
// rest of the continuation is parked on the pending slot.
func (g *Game) resume(actor *Player, played deck.Card, frames []Frame) bool {
	frames = copyFrames(frames)
	for len(frames) > 0 {
		if g.State != StatePlaying {
			return true
		}
		f := &frames[0]
		if len(f.Effects) == 0 {
			frames = frames[1:]
			continue
		}
		e := f.Effects[0]
		f.Effects = f.Effects[1:]

		switch pend := g.runAction(actor, f.Source, e).(type) {
		case *AwaitingPlayer:
			pend.Remaining = copyFrames(frames)
			pend.Played = played
			g.Pending = pend
			g.Phase = PhaseAction
			return false
		case *AwaitingPlayers:
			pend.Remaining = copyFrames(frames)
			pend.Played = played
			g.Pending = pend
			g.Phase = PhaseAction
			return false
		}
	}
	return true
}

// proceed clears the answered request and carries on with the rest of the
// continuation.
func (g *Game) proceed(actor *Player, played deck.Card, frames []Frame) {
	g.Pending = nil
	g.Phase = PhasePlay
	if g.resume(actor, played, frames) {
		g.finishPlay(actor, played)
	}
}

func (g *Game) ask(actor *Player, req Request) Pending {
	return &AwaitingPlayer{PlayerID: actor.ID, Request: req}
}

func cardOption(owner *Player, i int, c deck.Card) Option {
	o := Option{Index: i, InstanceID: c.InstanceID, Name: c.Name, Color: c.Color, Face: c.Face}
	if owner != nil {
		o.PlayerID = owner.ID
		o.PlayerName = owner.Name
	}
	return o
}

func handOptions(p *Player, keep func(deck.Card) bool) []Option {
	opts := []Option{}
	for i, c := range p.Hand {
		if keep == nil || keep(c) {
			opts = append(opts, cardOption(p, i, c))
		}
	}
	return opts
}

func traitOptions(p *Player, keep func(deck.Card) bool) []Option {
	opts := []Option{}
	for i, c := range p.TraitPile {
		if keep == nil || keep(c) {
			opts = append(opts, cardOption(p, i, c))
		}
	}
	return opts
}

func (g *Game) discardOptions(keep func(deck.Card) bool) []Option {
	opts := []Option{}
	for i, c := range g.DiscardPile {
		if keep == nil || keep(c) {
			opts = append(opts, cardOption(nil, i, c))
		}
	}
	return opts
}

func playerOption(p *Player) Option {
	return Option{PlayerID: p.ID, PlayerName: p.Name, Index: -1, HandSize: len(p.Hand)}
}

// opponentOptions lists the opponents of actor that pass keep.
func (g *Game) opponentOptions(actor *Player, keep func(*Player) bool) []Option {
	opts := []Option{}
	for _, o := range g.opponents(actor) {
		if keep == nil || keep(o) {
			opts = append(opts, playerOption(o))
		}
	}
	return opts
}

// opponentTraits lists every opponent trait passing keep. When removal is
// set, protected piles and irremovable traits are left out.
func (g *Game) opponentTraits(actor *Player, removal bool, keep func(deck.Card) bool) []Option {
	opts := []Option{}
	for _, o := range g.opponents(actor) {
		if removal && g.protected(o) {
			continue
		}
		opts = append(opts, traitOptions(o, func(c deck.Card) bool {
			if removal && !removable(c) {
				return false
			}
			return keep == nil || keep(c)
		})...)
	}
	return opts
}

// ownRemovable lists actor's removable traits other than the source card.
func ownRemovable(actor *Player, source deck.Card) []Option {
	return traitOptions(actor, func(c deck.Card) bool {
		return removable(c) && c.InstanceID != source.InstanceID
	})
}

func colorFilter(color deck.Color) func(deck.Card) bool {
	return func(c deck.Card) bool {
		return color == "" || c.IsColor(color)
	}
}

// runAction performs one action. It returns the request to park when the
// action needs a player's answer, or nil when it completed.
func (g *Game) runAction(actor *Player, src deck.Card, e deck.Effect) Pending {
	kind, ok := deck.LookupAction(e.Name)
	if !ok {
		g.logger.Printf("unknown action %q on %s", e.Name, src.Name)
		return nil
	}
	params := e.Params
	base := Request{Source: src, Origin: e}

	switch kind {
	case deck.ActionDrawCards:
		n := params.ValueOr(1)
		for _, p := range g.scopePlayers(actor, params.Scope()) {
			g.draw(p, n)
		}
		switch params.Scope() {
		case deck.ScopeAll:
			g.log("All players drew %d card(s)", n)
		case deck.ScopeOpponents, deck.ScopeOpponent:
			g.log("All opponents drew %d card(s)", n)
		default:
			g.log("%s drew %d card(s)", actor.Name, n)
		}

	case deck.ActionDiscardFromHand:
		n := params.NumCardsOr(1)
		if params.RandomDiscard {
			for _, p := range g.scopePlayers(actor, params.Scope()) {
				g.discardRandom(p, n)
			}
			g.log("Random discard: %d card(s)", n)
			return nil
		}
		if params.Scope() == deck.ScopeOpponent {
			targets := g.opponentOptions(actor, func(p *Player) bool { return len(p.Hand) > 0 })
			if len(targets) == 0 {
				return nil
			}
			req := base
			req.InputType = InputSelectOpponent
			req.Effect = EffectDiscardOpponentHand
			req.Message = fmt.Sprintf("Choose an opponent to discard %d card(s)", n)
			req.Count = n
			req.Targets = targets
			return g.ask(actor, req)
		}
		if len(actor.Hand) == 0 {
			return nil
		}
		req := base
		req.InputType = InputSelectOwnCards
		req.Effect = EffectDiscardSelected
		req.Count = min(n, len(actor.Hand))
		req.Message = fmt.Sprintf("Choose %d card(s) to discard", req.Count)
		req.Options = handOptions(actor, nil)
		return g.ask(actor, req)

	case deck.ActionDiscardFromTraitPile:
		n := params.NumCardsOr(1)
		req := base
		req.Count = n
		if params.Scope() == deck.ScopeSelf {
			req.Options = traitOptions(actor, func(c deck.Card) bool {
				return removable(c) && colorFilter(params.Color)(c)
			})
			req.InputType = InputSelectOwnTrait
			req.Effect = EffectDiscardOwnTrait
			req.Message = fmt.Sprintf("Choose %d trait(s) to discard", n)
		} else {
			req.Options = g.opponentTraits(actor, true, colorFilter(params.Color))
			req.InputType = InputSelectOpponentTrait
			req.Effect = EffectDiscardOpponentTrait
			req.Message = "Choose opponent's trait to discard"
			if params.Color != "" {
				req.Message += fmt.Sprintf(" (%s)", params.Color)
			}
		}
		if len(req.Options) == 0 {
			return nil
		}
		return g.ask(actor, req)

	case deck.ActionPlayAnotherTrait:
		n := params.NumTraits
		if n == 0 {
			n = 1
		}
		actor.ExtraPlays += n
		actor.IgnoreActionsOnExtraPlays = params.IgnoreActions
		g.log("%s can play %d more trait(s)", actor.Name, n)

	case deck.ActionViewTopDeck:
		n := min(params.ValueOr(3), len(g.TraitDeck))
		if n == 0 {
			return nil
		}
		req := base
		req.InputType = InputViewCards
		req.Effect = EffectView
		req.Optional = true
		req.Message = fmt.Sprintf("Top %d cards of the deck", n)
		req.Cards = append([]deck.Card{}, g.TraitDeck[:n]...)
		return g.ask(actor, req)

	case deck.ActionViewAgeDeck:
		n := min(params.ValueOr(3), len(g.AgeDeck))
		if n == 0 {
			return nil
		}
		req := base
		req.InputType = InputViewCards
		req.Effect = EffectView
		req.Optional = true
		req.Message = fmt.Sprintf("Top %d Age cards", n)
		if n == 1 {
			req.Message = "Next Age"
		}
		req.Ages = append([]deck.Age{}, g.AgeDeck[:n]...)
		return g.ask(actor, req)

	case deck.ActionViewOpponentHand:
		targets := g.opponentOptions(actor, nil)
		if len(targets) == 0 {
			return nil
		}
		req := base
		req.InputType = InputSelectOpponent
		req.Effect = EffectViewHand
		req.Optional = true
		req.Message = "Choose opponent to view hand"
		req.Targets = targets
		return g.ask(actor, req)

	case deck.ActionSearchDiscard, deck.ActionSearchDiscardAndPlay, deck.ActionSearchDiscardIgnoreAction:
		req := base
		req.InputType = InputSelectFromDiscard
		switch kind {
		case deck.ActionSearchDiscard:
			req.Effect = EffectSearchDiscard
			req.Optional = true
			req.Message = "Choose card from discard pile"
			req.Options = g.discardOptions(nil)
		case deck.ActionSearchDiscardAndPlay:
			req.Effect = EffectSearchDiscardAndPlay
			req.Message = "Choose card from discard pile to play"
			req.Options = g.discardOptions(g.fitsDominantCap(actor))
		default:
			req.Effect = EffectSearchDiscardNoAction
			req.Message = "Choose card from discard pile to play (ignore action)"
			req.Options = g.discardOptions(g.fitsDominantCap(actor))
		}
		if len(req.Options) == 0 {
			return nil
		}
		return g.ask(actor, req)

	case deck.ActionStealTrait, deck.ActionStealTraitAndStopAction, deck.ActionStealTraitAndPlayAction:
		keep := func(c deck.Card) bool {
			if !colorFilter(params.Color)(c) {
				return false
			}
			if params.FaceValue != nil && (c.Face.Kind != deck.FaceFixed || c.Face.Value != *params.FaceValue) {
				return false
			}
			return g.fitsDominantCap(actor)(c)
		}
		req := base
		req.InputType = InputSelectOpponentTrait
		req.Effect = EffectStealTrait
		req.Optional = true
		req.Message = "Choose trait to steal"
		switch {
		case kind == deck.ActionStealTraitAndPlayAction:
			req.Effect = EffectStealTraitPlayAction
			req.Message = "Choose trait to steal (will play its action)"
		case kind == deck.ActionStealTraitAndStopAction:
			req.Message = "Choose trait to steal (and stop its action)"
		case params.Color != "":
			req.Message = fmt.Sprintf("Choose %s trait to steal", params.Color)
		}
		req.Options = g.opponentTraits(actor, true, keep)
		if len(req.Options) == 0 {
			return nil
		}
		return g.ask(actor, req)

	case deck.ActionStealRandomCard:
		targets := g.opponentOptions(actor, func(p *Player) bool { return len(p.Hand) > 0 })
		if len(targets) == 0 {
			return nil
		}
		req := base
		req.InputType = InputSelectOpponent
		req.Effect = EffectStealRandom
		req.Optional = true
		req.Message = "Choose opponent to steal from"
		req.Targets = targets
		return g.ask(actor, req)

	case deck.ActionReturnTraitToHand:
		opts := ownRemovable(actor, src)
		if len(opts) == 0 {
			return nil
		}
		req := base
		req.InputType = InputSelectOwnTrait
		req.Effect = EffectReturnTrait
		req.Optional = true
		req.Message = "Choose trait to return to hand"
		req.Options = opts
		return g.ask(actor, req)

	case deck.ActionProtectTraits:
		actor.ProtectedUntil = g.Round + 1
		g.log("%s's traits are protected", actor.Name)

	case deck.ActionDiscardHandDrawNew:
		n := g.discardHand(actor)
		drawn := g.draw(actor, n+1)
		g.log("%s discarded entire hand and drew %d cards", actor.Name, drawn)

	case deck.ActionDiscardOpponentTrait:
		opts := g.opponentTraits(actor, true, nil)
		if len(opts) == 0 {
			return nil
		}
		req := base
		req.InputType = InputSelectOpponentTrait
		req.Effect = EffectDiscardOpponentTrait
		req.Optional = true
		req.Message = "Choose trait to discard"
		req.Options = opts
		return g.ask(actor, req)

	case deck.ActionCopyOpponentTrait:
		opts := g.opponentTraits(actor, false, g.fitsDominantCap(actor))
		if len(opts) == 0 {
			return nil
		}
		req := base
		req.InputType = InputSelectOpponentTrait
		req.Effect = EffectCopyTrait
		req.Optional = true
		req.Message = "Choose trait to copy"
		req.Options = opts
		return g.ask(actor, req)

	case deck.ActionPlayOpponentTraitAction:
		opts := g.opponentTraits(actor, false, func(c deck.Card) bool { return c.HasActions() })
		if len(opts) == 0 {
			return nil
		}
		req := base
		req.InputType = InputSelectOpponentTrait
		req.Effect = EffectPlayOpponentAction
		req.Optional = true
		req.Message = "Choose trait action to play"
		req.Options = opts
		return g.ask(actor, req)

	case deck.ActionGiveCards:
		targets := g.opponentOptions(actor, nil)
		if len(actor.Hand) == 0 || len(targets) == 0 {
			return nil
		}
		req := base
		req.InputType = InputSelectCardsAndOpponent
		req.Effect = EffectGiveCards
		req.Count = min(params.NumCardsOr(1), len(actor.Hand))
		req.Message = fmt.Sprintf("Choose %d card(s) to give", req.Count)
		req.Options = handOptions(actor, nil)
		req.Targets = targets
		return g.ask(actor, req)

	case deck.ActionMoveTrait:
		opts := ownRemovable(actor, deck.Card{})
		opts = append(opts, g.opponentTraits(actor, true, nil)...)
		if len(opts) == 0 {
			return nil
		}
		targets := []Option{}
		for _, p := range g.Players {
			targets = append(targets, playerOption(p))
		}
		req := base
		req.InputType = InputSelectTraitMove
		req.Effect = EffectMoveTrait
		req.Optional = true
		req.Message = "Choose a trait and the player to move it to"
		req.Options = opts
		req.Targets = targets
		return g.ask(actor, req)

	case deck.ActionSwapTrait:
		own := ownRemovable(actor, src)
		theirs := g.opponentTraits(actor, true, nil)
		if len(own) == 0 || len(theirs) == 0 {
			return nil
		}
		req := base
		req.InputType = InputSelectTraitSwap
		req.Effect = EffectSwapTrait
		req.Optional = true
		req.Message = "Choose traits to swap"
		if params.SameColor != nil && !*params.SameColor {
			req.Message = "Choose traits to swap (different colors)"
		}
		req.SameColor = params.SameColor
		req.Own = own
		req.Options = theirs
		return g.ask(actor, req)

	case deck.ActionRearrangeTraits:
		if len(actor.TraitPile) < 2 {
			return nil
		}
		req := base
		req.InputType = InputRearrangeTraits
		req.Effect = EffectRearrangeTraits
		req.Optional = true
		req.Message = "Rearrange your traits"
		req.Options = traitOptions(actor, nil)
		return g.ask(actor, req)

	case deck.ActionDiscardHand:
		g.discardHand(actor)
		g.log("%s discarded their hand", actor.Name)

	case deck.ActionSkipStabilization:
		actor.SkipStabilize = true

	case deck.ActionGiveTraitToOpponent:
		own := ownRemovable(actor, src)
		targets := g.opponentOptions(actor, nil)
		if len(own) == 0 || len(targets) == 0 {
			return nil
		}
		req := base
		req.InputType = InputSelectOwnTraitAndOpponent
		req.Effect = EffectGiveTraitToOpponent
		req.Optional = true
		req.Message = "Choose a trait to give to an opponent"
		req.Own = own
		req.Targets = targets
		return g.ask(actor, req)

	case deck.ActionMutualDiscardTrait:
		own := ownRemovable(actor, src)
		theirs := g.opponentTraits(actor, true, nil)
		if len(own) == 0 || len(theirs) == 0 {
			return nil
		}
		req := base
		req.InputType = InputSelectMutualDiscard
		req.Effect = EffectMutualDiscardTrait
		req.Optional = true
		req.Message = "Choose your trait and opponent trait to discard"
		req.Own = own
		req.Options = theirs
		return g.ask(actor, req)

	case deck.ActionDiscardColorFromHand:
		req := base
		req.InputType = InputSelectColor
		req.Effect = EffectDiscardColorFromHand
		req.Message = "Choose a color - all players discard cards of that color"
		req.Colors = append([]deck.Color{}, deck.AllColors...)
		return g.ask(actor, req)

	case deck.ActionDrawAndPlayIfColor:
		color := params.Color
		if color == "" {
			color = deck.Green
		}
		drawn := g.drawCards(params.ValueOr(2))
		actor.Hand = append(actor.Hand, drawn...)
		g.log("%s drew %d card(s)", actor.Name, len(drawn))

		ids := map[string]bool{}
		for _, c := range drawn {
			if c.IsColor(color) {
				ids[c.InstanceID] = true
			}
		}
		opts := handOptions(actor, func(c deck.Card) bool { return ids[c.InstanceID] })
		if len(opts) == 0 {
			return nil
		}
		req := base
		req.InputType = InputSelectOwnCards
		req.Effect = EffectPlayDrawnCard
		req.Optional = true
		req.Count = 1
		req.Message = fmt.Sprintf("You drew %s card(s). Play 1 immediately?", color)
		req.Options = opts
		return g.ask(actor, req)

	case deck.ActionSwapSelfWithOpponentTrait:
		if actor.pileIndex(src.InstanceID) < 0 {
			return nil
		}
		opts := g.opponentTraits(actor, true, nil)
		if len(opts) == 0 {
			return nil
		}
		req := base
		req.InputType = InputSelectOpponentTrait
		req.Effect = EffectSwapSelfWithOpponent
		req.Message = "Choose an opponent's trait to swap with this card"
		req.Options = opts
		return g.ask(actor, req)

	case deck.ActionMoveSelfToOpponent:
		if actor.pileIndex(src.InstanceID) < 0 {
			return nil
		}
		targets := g.opponentOptions(actor, nil)
		if len(targets) == 0 {
			return nil
		}
		req := base
		req.InputType = InputSelectOpponent
		req.Effect = EffectMoveSelfToOpponent
		req.Message = "Choose an opponent to give this card to"
		req.Targets = targets
		return g.ask(actor, req)

	case deck.ActionOpponentsRevealStealPlay:
		return g.openReveal(actor, src, params.RevealCount)
	}
	return nil
}

// fitsDominantCap filters out dominant traits the actor has no room for.
func (g *Game) fitsDominantCap(actor *Player) func(deck.Card) bool {
	full := actor.countDominants() >= g.Config.MaxDominants
	return func(c deck.Card) bool {
		return !(c.Dominant && full)
	}
}
