package game

import (
	"github.com/minaorangina/doomlings/deck"
)

// Selection is a player's answer to a pending request. Which fields are read
// depends on the request's input type.
type Selection struct {
	TargetID           string     `json:"targetId,omitempty"`
	DestinationID      string     `json:"destinationId,omitempty"`
	TraitIndex         int        `json:"traitIndex"`
	OwnTraitIndex      int        `json:"ownTraitIndex"`
	OpponentTraitIndex int        `json:"opponentTraitIndex"`
	Index              int        `json:"index"`
	Indices            []int      `json:"indices,omitempty"`
	Color              deck.Color `json:"selectedColor,omitempty"`
	NewOrder           []int      `json:"newOrder,omitempty"`
}

// pendingFor returns the single-player request addressed to playerID.
func (g *Game) pendingFor(playerID string) (*AwaitingPlayer, error) {
	if g == nil {
		return nil, ErrNilGame
	}
	if g.State != StatePlaying {
		return nil, ErrGameNotInProgress
	}
	pend, ok := g.Pending.(*AwaitingPlayer)
	if !ok || pend.PlayerID != playerID || g.Player(playerID) == nil {
		return nil, ErrNoPendingAction
	}
	return pend, nil
}

// pickTrait finds the option for ownerID's trait at index and checks that
// the same card is still there.
func (g *Game) pickTrait(opts []Option, ownerID string, index int) (*Player, int, error) {
	if ownerID == "" {
		return nil, 0, ErrNoTarget
	}
	for _, o := range opts {
		if o.PlayerID != ownerID || o.Index != index {
			continue
		}
		owner := g.Player(ownerID)
		if owner == nil || index < 0 || index >= len(owner.TraitPile) || owner.TraitPile[index].InstanceID != o.InstanceID {
			return nil, 0, ErrStaleSelection
		}
		return owner, index, nil
	}
	return nil, 0, ErrInvalidSelection
}

// pickTarget finds the player option for id.
func (g *Game) pickTarget(opts []Option, id string) (*Player, error) {
	if id == "" {
		return nil, ErrNoTarget
	}
	for _, o := range opts {
		if o.PlayerID == id {
			if p := g.Player(id); p != nil {
				return p, nil
			}
			return nil, ErrStaleSelection
		}
	}
	return nil, ErrInvalidSelection
}

// pickHand checks that every index is one of the offered hand cards.
func pickHand(opts []Option, p *Player, indices []int) error {
	if !validIndices(indices, len(p.Hand)) {
		return ErrInvalidSelection
	}
	for _, i := range indices {
		found := false
		for _, o := range opts {
			if o.Index != i {
				continue
			}
			if p.Hand[i].InstanceID != o.InstanceID {
				return ErrStaleSelection
			}
			found = true
			break
		}
		if !found {
			return ErrInvalidSelection
		}
	}
	return nil
}

// pickDiscard checks index against the offered discard pile cards.
func (g *Game) pickDiscard(opts []Option, index int) error {
	for _, o := range opts {
		if o.Index != index {
			continue
		}
		if index < 0 || index >= len(g.DiscardPile) || g.DiscardPile[index].InstanceID != o.InstanceID {
			return ErrStaleSelection
		}
		return nil
	}
	return ErrInvalidSelection
}

// again re-queues a multi-trait request for the traits still owed.
func again(req Request, frames []Frame) []Frame {
	if req.Count <= 1 {
		return frames
	}
	origin := req.Origin
	origin.Params.NumCards = req.Count - 1
	return append([]Frame{{Source: req.Source, Effects: []deck.Effect{origin}}}, frames...)
}

// nested puts a card's own actions ahead of the rest of the continuation.
func (g *Game) nested(c deck.Card, frames []Frame) []Frame {
	if !c.HasActions() || g.Rules.IgnoreActions {
		return frames
	}
	return append([]Frame{{Source: c, Effects: c.Actions}}, frames...)
}

// HandleTargetSelection answers a request that asks the player to pick an
// opponent or an opponent's trait.
func (g *Game) HandleTargetSelection(playerID string, sel Selection) (Result, error) {
	pend, err := g.pendingFor(playerID)
	if err != nil {
		return Result{}, err
	}
	req := pend.Request
	if !targetInputs[req.InputType] {
		return Result{}, ErrWrongInput
	}
	actor := g.Player(playerID)
	frames := pend.Remaining

	switch req.Effect {
	case EffectViewHand:
		target, err := g.pickTarget(req.Targets, sel.TargetID)
		if err != nil {
			return Result{}, err
		}
		g.Pending = &AwaitingPlayer{
			PlayerID: actor.ID,
			Request: Request{
				InputType: InputViewCards,
				Effect:    EffectView,
				Message:   target.Name + "'s hand",
				Optional:  true,
				Cards:     append([]deck.Card{}, target.Hand...),
				Source:    req.Source,
			},
			Remaining: pend.Remaining,
			Played:    pend.Played,
		}
		g.log("%s looked at %s's hand", actor.Name, target.Name)
		return g.outcome(actor, ""), nil

	case EffectStealRandom:
		target, err := g.pickTarget(req.Targets, sel.TargetID)
		if err != nil {
			return Result{}, err
		}
		if len(target.Hand) == 0 {
			return Result{}, ErrStaleSelection
		}
		actor.Hand = append(actor.Hand, target.takeFromHand(g.rng.Intn(len(target.Hand))))
		g.log("%s stole a card from %s", actor.Name, target.Name)

	case EffectDiscardOpponentHand:
		target, err := g.pickTarget(req.Targets, sel.TargetID)
		if err != nil {
			return Result{}, err
		}
		n := g.discardRandom(target, req.Count)
		g.log("%s discarded %d card(s)", target.Name, n)

	case EffectStealTrait, EffectStealTraitPlayAction:
		target, i, err := g.pickTrait(req.Options, sel.TargetID, sel.TraitIndex)
		if err != nil {
			return Result{}, err
		}
		c := g.moveTrait(target, i, actor)
		g.log("%s stole %s from %s", actor.Name, c.Name, target.Name)
		if req.Effect == EffectStealTraitPlayAction {
			frames = g.nested(c, frames)
		}

	case EffectCopyTrait:
		target, i, err := g.pickTrait(req.Options, sel.TargetID, sel.TraitIndex)
		if err != nil {
			return Result{}, err
		}
		c := target.TraitPile[i]
		c.InstanceID = g.newID()
		g.placeTrait(actor, c)
		g.log("%s copied %s", actor.Name, c.Name)

	case EffectPlayOpponentAction:
		target, i, err := g.pickTrait(req.Options, sel.TargetID, sel.TraitIndex)
		if err != nil {
			return Result{}, err
		}
		c := target.TraitPile[i]
		g.log("%s plays %s's action from %s's trait pile", actor.Name, c.Name, target.Name)
		frames = append([]Frame{{Source: req.Source, Effects: c.Actions}}, frames...)

	case EffectDiscardOpponentTrait:
		target, i, err := g.pickTrait(req.Options, sel.TargetID, sel.TraitIndex)
		if err != nil {
			return Result{}, err
		}
		c := g.discardTrait(target, i)
		g.log("%s discarded %s from %s", actor.Name, c.Name, target.Name)
		frames = again(req, frames)

	case EffectSwapSelfWithOpponent:
		target, i, err := g.pickTrait(req.Options, sel.TargetID, sel.TraitIndex)
		if err != nil {
			return Result{}, err
		}
		self := actor.pileIndex(req.Source.InstanceID)
		if self < 0 {
			return Result{}, ErrStaleSelection
		}
		mine := g.removeTraitFromPile(actor, self)
		theirs := g.removeTraitFromPile(target, i)
		g.placeTrait(actor, theirs)
		g.placeTrait(target, mine)
		g.log("%s swapped %s with %s's %s", actor.Name, mine.Name, target.Name, theirs.Name)

	case EffectMoveSelfToOpponent:
		target, err := g.pickTarget(req.Targets, sel.TargetID)
		if err != nil {
			return Result{}, err
		}
		self := actor.pileIndex(req.Source.InstanceID)
		if self < 0 {
			return Result{}, ErrStaleSelection
		}
		c := g.moveTrait(actor, self, target)
		g.log("%s moved %s to %s's trait pile", actor.Name, c.Name, target.Name)

	case EffectGiveTraitToOpponent:
		target, err := g.pickTarget(req.Targets, sel.TargetID)
		if err != nil {
			return Result{}, err
		}
		_, own, err := g.pickTrait(req.Own, actor.ID, sel.OwnTraitIndex)
		if err != nil {
			return Result{}, err
		}
		c := g.moveTrait(actor, own, target)
		g.log("%s gave %s to %s", actor.Name, c.Name, target.Name)

	case EffectMutualDiscardTrait:
		_, own, err := g.pickTrait(req.Own, actor.ID, sel.OwnTraitIndex)
		if err != nil {
			return Result{}, err
		}
		target, i, err := g.pickTrait(req.Options, sel.TargetID, sel.OpponentTraitIndex)
		if err != nil {
			return Result{}, err
		}
		g.discardTrait(actor, own)
		g.discardTrait(target, i)
		g.log("%s and %s each discarded a trait", actor.Name, target.Name)

	default:
		return Result{}, ErrWrongInput
	}

	g.proceed(actor, pend.Played, frames)
	return g.outcome(actor, ""), nil
}

// HandleCardSelection answers a request that asks the player to pick cards,
// traits, a color or an order.
func (g *Game) HandleCardSelection(playerID string, sel Selection) (Result, error) {
	pend, err := g.pendingFor(playerID)
	if err != nil {
		return Result{}, err
	}
	req := pend.Request
	if targetInputs[req.InputType] || req.InputType == InputViewCards || req.InputType == InputSelectRevealedCard {
		return Result{}, ErrWrongInput
	}
	actor := g.Player(playerID)
	frames := pend.Remaining

	switch req.Effect {
	case EffectDiscardSelected:
		if len(sel.Indices) != req.Count {
			return Result{}, &DiscardRequiredError{Count: req.Count}
		}
		if err := pickHand(req.Options, actor, sel.Indices); err != nil {
			return Result{}, err
		}
		rest, taken := takeIndices(actor.Hand, sel.Indices)
		actor.Hand = rest
		g.discard(taken...)
		g.log("%s discarded %d card(s)", actor.Name, len(taken))

	case EffectReturnTrait:
		_, i, err := g.pickTrait(req.Options, actor.ID, sel.Index)
		if err != nil {
			return Result{}, err
		}
		c := g.removeTraitFromPile(actor, i)
		actor.Hand = append(actor.Hand, c)
		g.log("%s returned %s to hand", actor.Name, c.Name)

	case EffectDiscardOwnTrait:
		_, i, err := g.pickTrait(req.Options, actor.ID, sel.Index)
		if err != nil {
			return Result{}, err
		}
		c := g.discardTrait(actor, i)
		g.log("%s discarded %s", actor.Name, c.Name)
		frames = again(req, frames)

	case EffectSearchDiscard, EffectSearchDiscardAndPlay, EffectSearchDiscardNoAction:
		if err := g.pickDiscard(req.Options, sel.Index); err != nil {
			return Result{}, err
		}
		c := g.DiscardPile[sel.Index]
		g.DiscardPile = removeAt(g.DiscardPile, sel.Index)
		switch req.Effect {
		case EffectSearchDiscard:
			actor.Hand = append(actor.Hand, c)
			g.log("%s took %s from discard", actor.Name, c.Name)
		case EffectSearchDiscardAndPlay:
			g.placeTrait(actor, c)
			g.log("%s plays %s from discard", actor.Name, c.Name)
			frames = g.nested(c, frames)
		default:
			g.placeTrait(actor, c)
			g.log("%s plays %s from discard (ignoring action)", actor.Name, c.Name)
		}

	case EffectGiveCards:
		target, err := g.pickTarget(req.Targets, sel.TargetID)
		if err != nil {
			return Result{}, err
		}
		if len(sel.Indices) != req.Count {
			return Result{}, ErrInvalidSelection
		}
		if err := pickHand(req.Options, actor, sel.Indices); err != nil {
			return Result{}, err
		}
		rest, taken := takeIndices(actor.Hand, sel.Indices)
		actor.Hand = rest
		target.Hand = append(target.Hand, taken...)
		g.log("%s gave %d card(s) to %s", actor.Name, len(taken), target.Name)

	case EffectMoveTrait:
		owner, i, err := g.pickTrait(req.Options, sel.TargetID, sel.TraitIndex)
		if err != nil {
			return Result{}, err
		}
		dest, err := g.pickTarget(req.Targets, sel.DestinationID)
		if err != nil {
			return Result{}, err
		}
		if dest.ID == owner.ID {
			return Result{}, ErrInvalidSelection
		}
		c := g.moveTrait(owner, i, dest)
		g.log("%s moved %s from %s to %s", actor.Name, c.Name, owner.Name, dest.Name)

	case EffectSwapTrait:
		_, own, err := g.pickTrait(req.Own, actor.ID, sel.OwnTraitIndex)
		if err != nil {
			return Result{}, err
		}
		target, i, err := g.pickTrait(req.Options, sel.TargetID, sel.OpponentTraitIndex)
		if err != nil {
			return Result{}, err
		}
		if req.SameColor != nil {
			shared := actor.TraitPile[own].Color.SharesAny(target.TraitPile[i].Color)
			if shared != *req.SameColor {
				return Result{}, ErrColorMismatch
			}
		}
		mine := g.removeTraitFromPile(actor, own)
		theirs := g.removeTraitFromPile(target, i)
		g.placeTrait(actor, theirs)
		g.placeTrait(target, mine)
		g.log("%s swapped %s with %s's %s", actor.Name, mine.Name, target.Name, theirs.Name)

	case EffectRearrangeTraits:
		if len(req.Options) != len(actor.TraitPile) {
			return Result{}, ErrStaleSelection
		}
		for i, o := range req.Options {
			if actor.TraitPile[i].InstanceID != o.InstanceID {
				return Result{}, ErrStaleSelection
			}
		}
		if len(sel.NewOrder) != len(actor.TraitPile) || !validIndices(sel.NewOrder, len(actor.TraitPile)) {
			return Result{}, ErrInvalidSelection
		}
		pile := make([]deck.Card, 0, len(sel.NewOrder))
		for _, i := range sel.NewOrder {
			pile = append(pile, actor.TraitPile[i])
		}
		actor.TraitPile = pile
		g.log("%s rearranged their traits", actor.Name)

	case EffectDiscardColorFromHand:
		if sel.Color == "" {
			return Result{}, ErrNoTarget
		}
		allowed := false
		for _, c := range req.Colors {
			allowed = allowed || c == sel.Color
		}
		if !allowed {
			return Result{}, ErrInvalidSelection
		}
		for _, p := range g.inTurnOrder() {
			kept := []deck.Card{}
			n := 0
			for _, c := range p.Hand {
				if c.IsColor(sel.Color) {
					g.discard(c)
					n++
					continue
				}
				kept = append(kept, c)
			}
			p.Hand = kept
			if n > 0 {
				g.log("%s discarded %d %s card(s)", p.Name, n, sel.Color)
			}
		}

	case EffectPlayDrawnCard:
		if err := pickHand(req.Options, actor, []int{sel.Index}); err != nil {
			return Result{}, err
		}
		c := actor.Hand[sel.Index]
		if ok, reason := g.CanPlayCard(actor, c); !ok {
			return Result{}, cannotPlay(reason)
		}
		actor.takeFromHand(sel.Index)
		g.placeTrait(actor, c)
		g.Rules.LastPlayedColor = c.Color
		g.log("%s immediately played %s", actor.Name, c.Name)

	default:
		return Result{}, ErrWrongInput
	}

	g.proceed(actor, pend.Played, frames)
	return g.outcome(actor, ""), nil
}

// SkipAction declines an optional request, or dismisses viewed cards, and
// carries on with the rest of the effects.
func (g *Game) SkipAction(playerID string) (Result, error) {
	pend, err := g.pendingFor(playerID)
	if err != nil {
		return Result{}, err
	}
	if !pend.Request.Optional {
		return Result{}, ErrNotOptional
	}
	actor := g.Player(playerID)
	if pend.Request.InputType != InputViewCards {
		g.log("%s skipped action", actor.Name)
	}
	g.proceed(actor, pend.Played, pend.Remaining)
	return g.outcome(actor, ""), nil
}
