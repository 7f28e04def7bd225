package game

import "github.com/minaorangina/doomlings/deck"

// Result describes what the acting player should do next after a command
// succeeds.
type Result struct {
	NeedsInput     bool        `json:"needsInput,omitempty"`
	InputType      InputType   `json:"inputType,omitempty"`
	Waiting        bool        `json:"waiting,omitempty"`
	ExtraPlays     int         `json:"extraPlays,omitempty"`
	NeedsStabilize bool        `json:"needsStabilize,omitempty"`
	Finished       bool        `json:"finished,omitempty"`
	Message        string      `json:"message,omitempty"`
	Preview        *AgePreview `json:"preview,omitempty"`
}

// AgePreview is the face of the next age card.
type AgePreview struct {
	Name        string       `json:"name"`
	Type        deck.AgeKind `json:"type"`
	Description string       `json:"description,omitempty"`
}

func (g *Game) outcome(p *Player, message string) Result {
	r := Result{Message: message, Finished: g.State == StateFinished}
	if p == nil {
		return r
	}
	switch pend := g.Pending.(type) {
	case *AwaitingPlayer:
		if pend.PlayerID == p.ID {
			r.NeedsInput = true
			r.InputType = pend.Request.InputType
		}
	case *AwaitingPlayers:
		r.Waiting = true
		if pend.SourcePlayerID == p.ID {
			r.InputType = InputWaitingForReveals
		} else if part := pend.participant(p.ID); part != nil && !part.Responded {
			r.NeedsInput = true
			r.InputType = InputRevealCard
		}
	}
	if cur := g.CurrentPlayer(); cur != nil && cur.ID == p.ID && g.State == StatePlaying {
		if g.Phase == PhasePlay {
			r.ExtraPlays = p.ExtraPlays
		}
		r.NeedsStabilize = g.Phase == PhaseStabilize && p.NeedsStabilize
	}
	return r
}

// PlayCard moves the card at cardIndex from the player's hand to their
// trait pile and resolves its effects.
func (g *Game) PlayCard(playerID string, cardIndex int) (Result, error) {
	if g == nil {
		return Result{}, ErrNilGame
	}
	if g.State != StatePlaying {
		return Result{}, ErrGameNotInProgress
	}
	if g.Pending != nil {
		return Result{}, ErrActionPending
	}
	if g.Phase != PhasePlay {
		return Result{}, ErrNotPlayPhase
	}
	p, err := g.turnPlayer(playerID)
	if err != nil {
		return Result{}, err
	}
	extra := p.ExtraPlays > 0
	if !extra && g.PlayedThisRound[p.ID] {
		return Result{}, ErrAlreadyPlayed
	}
	if cardIndex < 0 || cardIndex >= len(p.Hand) {
		return Result{}, ErrInvalidCard
	}
	if ok, reason := g.CanPlayCard(p, p.Hand[cardIndex]); !ok {
		return Result{}, cannotPlay(reason)
	}

	card := p.takeFromHand(cardIndex)
	p.TraitPile = append(p.TraitPile, card)
	g.log("%s played %s", p.Name, card.Name)
	g.Rules.LastPlayedColor = card.Color

	if extra {
		p.ExtraPlays--
		p.MustPlayColorless = false
		p.MustPlayEffectless = false
	} else {
		g.PlayedThisRound[p.ID] = true
		if g.Rules.CardsPerTurn > 1 {
			p.ExtraPlays += g.Rules.CardsPerTurn - 1
		}
	}

	g.applyPassives(p, card)

	runActions := card.HasActions() && !g.Rules.IgnoreActions && !(extra && p.IgnoreActionsOnExtraPlays)
	if runActions && !g.resume(p, card, []Frame{{Source: card, Effects: card.Actions}}) {
		return g.outcome(p, ""), nil
	}
	g.finishPlay(p, card)
	return g.outcome(p, ""), nil
}

// finishPlay runs once a played card's effects have all resolved: it keeps
// the player in the play phase while extra plays remain, otherwise moves
// them to stabilize.
func (g *Game) finishPlay(p *Player, played deck.Card) {
	if g.State != StatePlaying {
		return
	}
	g.Phase = PhasePlay
	g.grantBonusPlays(p, played)
	if p.ExtraPlays > 0 && g.HasPlayableCards(p) {
		return
	}

	p.ExtraPlays = 0
	p.IgnoreActionsOnExtraPlays = false
	p.MustPlayColorless = false
	p.MustPlayEffectless = false
	p.NeedsStabilize = !p.SkipStabilize
	p.SkipStabilize = false
	if !p.NeedsStabilize {
		g.log("%s skips stabilization", p.Name)
		g.advanceTurn()
		return
	}
	g.Phase = PhaseStabilize
}

// SkipTurn passes a turn in which no card in hand can be played. The player
// draws three cards and does not stabilize.
func (g *Game) SkipTurn(playerID string) (Result, error) {
	p, err := g.openTurn(playerID)
	if err != nil {
		return Result{}, err
	}
	if len(p.Hand) > 0 && g.HasPlayableCards(p) {
		return Result{}, ErrHasPlayableCards
	}
	g.draw(p, 3)
	g.log("%s couldn't play and drew 3 cards", p.Name)
	g.PlayedThisRound[p.ID] = true
	g.advanceTurn()
	return g.outcome(p, ""), nil
}

// DiscardAndDraw spends the turn discarding the whole hand to draw three.
func (g *Game) DiscardAndDraw(playerID string) (Result, error) {
	p, err := g.openTurn(playerID)
	if err != nil {
		return Result{}, err
	}
	n := g.discardHand(p)
	g.draw(p, 3)
	g.log("%s discarded %d cards and drew 3", p.Name, n)
	g.PlayedThisRound[p.ID] = true
	g.advanceTurn()
	return g.outcome(p, ""), nil
}

// openTurn checks that playerID may start their turn.
func (g *Game) openTurn(playerID string) (*Player, error) {
	if g == nil {
		return nil, ErrNilGame
	}
	if g.State != StatePlaying {
		return nil, ErrGameNotInProgress
	}
	if g.Pending != nil {
		return nil, ErrActionPending
	}
	if g.Phase != PhasePlay {
		return nil, ErrNotPlayPhase
	}
	p, err := g.turnPlayer(playerID)
	if err != nil {
		return nil, err
	}
	if g.PlayedThisRound[p.ID] {
		return nil, ErrAlreadyPlayed
	}
	return p, nil
}

// stabilizingPlayer checks that playerID is in their stabilize step.
func (g *Game) stabilizingPlayer(playerID string) (*Player, error) {
	if g == nil {
		return nil, ErrNilGame
	}
	if g.State != StatePlaying {
		return nil, ErrGameNotInProgress
	}
	p, err := g.turnPlayer(playerID)
	if err != nil {
		return nil, err
	}
	if g.Phase != PhaseStabilize {
		return nil, ErrNotStabilizePhase
	}
	return p, nil
}

// StabilizeTarget is the hand size p must end their turn with.
func (g *Game) StabilizeTarget(p *Player) int {
	if g.Rules.StabilizeTarget != nil {
		return *g.Rules.StabilizeTarget
	}
	return p.GenePool
}

// Stabilize brings the hand to the player's target: short hands draw, long
// hands discard exactly the chosen indices.
func (g *Game) Stabilize(playerID string, discardIndices []int) (Result, error) {
	p, err := g.stabilizingPlayer(playerID)
	if err != nil {
		return Result{}, err
	}
	target := g.StabilizeTarget(p)
	size := len(p.Hand)

	switch {
	case size < target:
		n := g.draw(p, target-size)
		g.log("%s stabilized (drew %d)", p.Name, n)
	case size > target:
		need := size - target
		if len(discardIndices) != need {
			return Result{}, &DiscardRequiredError{Count: need}
		}
		if !validIndices(discardIndices, size) {
			return Result{}, ErrInvalidCard
		}
		rest, taken := takeIndices(p.Hand, discardIndices)
		p.Hand = rest
		g.discard(taken...)
		g.log("%s stabilized (discarded %d)", p.Name, need)
	default:
		g.log("%s stabilized", p.Name)
	}

	if n := g.Rules.DrawAfterStabilize; n > 0 {
		drawn := g.draw(p, n)
		g.log("%s drew %d card(s) after stabilizing", p.Name, drawn)
	}
	p.NeedsStabilize = false
	g.advanceTurn()
	return g.outcome(p, ""), nil
}

// SkipStabilization ends the turn without stabilizing, when the age allows it.
func (g *Game) SkipStabilization(playerID string) (Result, error) {
	p, err := g.stabilizingPlayer(playerID)
	if err != nil {
		return Result{}, err
	}
	if !g.Rules.OptionalStabilization {
		return Result{}, ErrCannotSkipStabilize
	}
	g.log("%s chose not to stabilize", p.Name)
	p.NeedsStabilize = false
	g.advanceTurn()
	return g.outcome(p, ""), nil
}

// PreStabilizeDiscard discards up to the age's allowance once per turn
// before stabilizing.
func (g *Game) PreStabilizeDiscard(playerID string, discardIndices []int) (Result, error) {
	p, err := g.stabilizingPlayer(playerID)
	if err != nil {
		return Result{}, err
	}
	limit := g.Rules.OptionalDiscardBeforeStabilize
	if limit == 0 || p.PreStabilizeDiscardUsed {
		return Result{}, ErrNoPreStabilize
	}
	if len(discardIndices) > limit {
		return Result{}, ErrTooManyDiscards
	}
	if !validIndices(discardIndices, len(p.Hand)) {
		return Result{}, ErrInvalidCard
	}
	if len(discardIndices) == 0 {
		return g.outcome(p, "No cards discarded"), nil
	}

	rest, taken := takeIndices(p.Hand, discardIndices)
	p.Hand = rest
	g.discard(taken...)
	p.PreStabilizeDiscardUsed = true
	g.log("%s discarded %d card(s) before stabilizing", p.Name, len(taken))
	return g.outcome(p, ""), nil
}

// NextAgePreview shows the next age card when the current age allows it.
func (g *Game) NextAgePreview(playerID string) (Result, error) {
	if g == nil {
		return Result{}, ErrNilGame
	}
	p := g.Player(playerID)
	if p == nil {
		return Result{}, ErrPlayerNotFound
	}
	if !g.Rules.PreviewNextAge {
		return Result{}, ErrPreviewUnavailable
	}
	preview := g.agePreview()
	if preview == nil {
		return g.outcome(p, "No more ages in deck"), nil
	}
	r := g.outcome(p, "")
	r.Preview = preview
	return r, nil
}

func (g *Game) agePreview() *AgePreview {
	if len(g.AgeDeck) == 0 {
		return nil
	}
	next := g.AgeDeck[0]
	return &AgePreview{Name: next.Name, Type: next.Kind, Description: next.Description}
}
