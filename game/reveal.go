package game

import (
	"time"

	"github.com/minaorangina/doomlings/deck"
)

// openReveal asks every opponent holding cards to reveal one. The actor
// waits until all have answered or the timeout passes.
func (g *Game) openReveal(actor *Player, src deck.Card, revealCount int) Pending {
	if revealCount == 0 {
		revealCount = 1
	}
	parts := []*Participant{}
	for _, o := range g.opponents(actor) {
		if o.Connected && len(o.Hand) > 0 {
			parts = append(parts, &Participant{PlayerID: o.ID, PlayerName: o.Name})
		}
	}
	if len(parts) == 0 {
		g.log("%s played %s but no opponents have cards to reveal", actor.Name, src.Name)
		return nil
	}
	g.log("%s played %s - opponents must reveal a card", actor.Name, src.Name)
	return &AwaitingPlayers{
		ID:             "reveal_" + g.newID(),
		SourcePlayerID: actor.ID,
		SourceCard:     src,
		RevealCount:    revealCount,
		Participants:   parts,
		OpenedAt:       g.now(),
		Timeout:        g.Config.RevealTimeout,
	}
}

// SubmitMultiPlayerResponse records a participant's revealed card. The last
// answer hands the revealed cards to the waiting player.
func (g *Game) SubmitMultiPlayerResponse(playerID string, cardIndex int) (Result, error) {
	if g == nil {
		return Result{}, ErrNilGame
	}
	pend, ok := g.Pending.(*AwaitingPlayers)
	if !ok || g.State != StatePlaying {
		return Result{}, ErrNoReveal
	}
	part := pend.participant(playerID)
	if part == nil {
		return Result{}, ErrNotParticipant
	}
	if part.Responded {
		return Result{}, ErrAlreadyResponded
	}
	p := g.Player(playerID)
	if p == nil {
		return Result{}, ErrPlayerNotFound
	}
	if cardIndex < 0 || cardIndex >= len(p.Hand) {
		return Result{}, ErrInvalidCard
	}

	g.reveal(pend, part, p, cardIndex)
	if pend.allResponded() {
		g.resolveReveals(pend)
	}
	return g.outcome(p, ""), nil
}

func (g *Game) reveal(pend *AwaitingPlayers, part *Participant, p *Player, cardIndex int) {
	part.Responded = true
	part.Response = &Reveal{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		CardIndex:  cardIndex,
		Card:       redact(p.Hand[cardIndex]),
	}
	g.log("%s revealed a card", p.Name)
}

// resolveReveals turns a completed reveal into the source player's choice.
func (g *Game) resolveReveals(pend *AwaitingPlayers) {
	src := g.Player(pend.SourcePlayerID)
	if src == nil {
		g.Pending = nil
		return
	}
	fits := g.fitsDominantCap(src)
	revealed := []Reveal{}
	shown := 0
	for _, part := range pend.Participants {
		r := part.Response
		if r == nil {
			continue
		}
		shown++
		if p := g.Player(r.PlayerID); p != nil && r.CardIndex < len(p.Hand) && fits(p.Hand[r.CardIndex]) {
			revealed = append(revealed, *r)
		}
	}
	if len(revealed) == 0 {
		if shown == 0 {
			g.log("No cards were revealed")
		} else {
			g.log("%s has no room for any revealed card", src.Name)
		}
		g.proceed(src, pend.Played, pend.Remaining)
		return
	}
	g.Pending = &AwaitingPlayer{
		PlayerID: src.ID,
		Request: Request{
			InputType: InputSelectRevealedCard,
			Effect:    EffectStealRevealedAndPlay,
			Message:   "Choose a revealed card to steal and play immediately",
			Revealed:  revealed,
			Source:    pend.SourceCard,
		},
		Remaining: pend.Remaining,
		Played:    pend.Played,
	}
	g.Phase = PhaseAction
	g.log("%s must choose a revealed card to steal", src.Name)
}

// RevealPick names one revealed card.
type RevealPick struct {
	FromPlayerID string `json:"fromPlayerId"`
	CardIndex    int    `json:"cardIndex"`
}

// HandleRevealedCardSelection steals the picked revealed card into the
// source player's trait pile and plays its actions.
func (g *Game) HandleRevealedCardSelection(playerID string, pick RevealPick) (Result, error) {
	pend, err := g.pendingFor(playerID)
	if err != nil {
		return Result{}, err
	}
	if pend.Request.Effect != EffectStealRevealedAndPlay {
		return Result{}, ErrWrongInput
	}
	var chosen *Reveal
	for i := range pend.Request.Revealed {
		r := &pend.Request.Revealed[i]
		if r.PlayerID == pick.FromPlayerID && r.CardIndex == pick.CardIndex {
			chosen = r
			break
		}
	}
	if chosen == nil {
		return Result{}, ErrInvalidSelection
	}
	from := g.Player(pick.FromPlayerID)
	if from == nil || pick.CardIndex >= len(from.Hand) || from.Hand[pick.CardIndex].InstanceID != chosen.Card.InstanceID {
		return Result{}, ErrStaleSelection
	}

	actor := g.Player(playerID)
	if !g.fitsDominantCap(actor)(from.Hand[pick.CardIndex]) {
		return Result{}, ErrInvalidSelection
	}
	c := from.takeFromHand(pick.CardIndex)
	g.placeTrait(actor, c)
	g.log("%s stole %s from %s", actor.Name, c.Name, from.Name)

	frames := pend.Remaining
	if c.HasActions() && !g.Rules.IgnoreActions {
		g.log("%s plays %s's action", actor.Name, c.Name)
		frames = append([]Frame{{Source: c, Effects: c.Actions}}, frames...)
	}
	g.proceed(actor, pend.Played, frames)
	return g.outcome(actor, ""), nil
}

// ForceRevealTimeout answers for every participant still silent by revealing
// a random card, then resolves the reveal.
func (g *Game) ForceRevealTimeout() (Result, error) {
	if g == nil {
		return Result{}, ErrNilGame
	}
	pend, ok := g.Pending.(*AwaitingPlayers)
	if !ok || g.State != StatePlaying {
		return Result{}, ErrNoReveal
	}
	for _, part := range pend.Participants {
		if part.Responded {
			continue
		}
		p := g.Player(part.PlayerID)
		if p == nil || len(p.Hand) == 0 {
			part.Responded = true
			continue
		}
		g.reveal(pend, part, p, g.rng.Intn(len(p.Hand)))
	}
	g.log("Reveal timed out")
	g.resolveReveals(pend)
	return g.outcome(g.Player(pend.SourcePlayerID), ""), nil
}

// RevealDeadline reports when the open reveal times out.
func (g *Game) RevealDeadline() (time.Time, bool) {
	if pend, ok := g.Pending.(*AwaitingPlayers); ok {
		return pend.Deadline(), true
	}
	return time.Time{}, false
}

// RevealID returns the id of the open reveal, or "".
func (g *Game) RevealID() string {
	if pend, ok := g.Pending.(*AwaitingPlayers); ok {
		return pend.ID
	}
	return ""
}
