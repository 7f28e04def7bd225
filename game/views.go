package game

import (
	"fmt"

	"github.com/minaorangina/doomlings/deck"
)

// AgeEffects are the round flags a client needs to render the current age.
type AgeEffects struct {
	OptionalStabilization          bool `json:"optionalStabilization"`
	OptionalDiscardBeforeStabilize int  `json:"optionalDiscardBeforeStabilize"`
	ColorlessAllowsExtraPlay       bool `json:"colorlessAllowsExtraPlay"`
	EffectlessAllowsExtraPlay      bool `json:"effectlessAllowsExtraPlay"`
	PreviewNextAge                 bool `json:"previewNextAge"`
	ProtectTraitsThisRound         bool `json:"protectTraitsThisRound"`
}

// SeatView is one player as seen by the table. Hand is empty when redacted.
type SeatView struct {
	ID                      string      `json:"id"`
	Name                    string      `json:"name"`
	IsHost                  bool        `json:"isHost"`
	Ready                   bool        `json:"ready"`
	Connected               bool        `json:"connected"`
	Hand                    []deck.Card `json:"hand,omitempty"`
	HandSize                int         `json:"handSize"`
	TraitPile               []deck.Card `json:"traitPile"`
	Score                   int         `json:"score"`
	GenePool                int         `json:"genePool"`
	HasPlayedThisRound      bool        `json:"hasPlayedThisRound"`
	NeedsStabilize          bool        `json:"needsStabilize"`
	ExtraPlays              int         `json:"extraPlays"`
	TurnOrder               int         `json:"turnOrder"`
	IsCurrentPlayer         bool        `json:"isCurrentPlayer"`
	MustPlayColorless       bool        `json:"mustPlayColorless"`
	MustPlayEffectless      bool        `json:"mustPlayEffectless"`
	PreStabilizeDiscardUsed bool        `json:"preStabilizeDiscardUsed"`
}

// ParticipantStatus is a reveal participant's progress.
type ParticipantStatus struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Responded  bool   `json:"responded"`
}

// PendingView is a pending request rendered for a client.
type PendingView struct {
	PlayerID     string              `json:"playerId,omitempty"`
	Request      *Request            `json:"request,omitempty"`
	InputType    InputType           `json:"inputType"`
	Message      string              `json:"message"`
	RevealID     string              `json:"multiPlayerActionId,omitempty"`
	SourceCard   *deck.Card          `json:"sourceCard,omitempty"`
	Participants []ParticipantStatus `json:"participants,omitempty"`
	Revealed     []Reveal            `json:"revealedCards,omitempty"`
	AllResponded bool                `json:"allResponded,omitempty"`
	Cards        []Option            `json:"cards,omitempty"`
}

// RevealInfo summarises an open reveal for everyone at the table.
type RevealInfo struct {
	ID               string    `json:"id"`
	SourcePlayerName string    `json:"sourcePlayerName"`
	SourceCard       deck.Card `json:"sourceCard"`
}

// View is the full table state.
type View struct {
	GameID           string        `json:"gameId"`
	State            State         `json:"state"`
	Round            int           `json:"round"`
	CatastropheCount int           `json:"catastropheCount"`
	CurrentAge       *deck.Age     `json:"currentAge,omitempty"`
	Phase            Phase         `json:"turnPhase"`
	CurrentPlayer    int           `json:"currentPlayerIndex"`
	FirstPlayer      int           `json:"firstPlayerIndex"`
	TurnRestrictions []deck.Effect `json:"turnRestrictions"`
	AgeEffects       AgeEffects    `json:"ageEffects"`
	Players          []SeatView    `json:"players"`
	Pending          *PendingView  `json:"pendingAction"`
	Reveal           *RevealInfo   `json:"multiPlayerAction"`
	DeckSize         int           `json:"deckSize"`
	DiscardSize      int           `json:"discardSize"`
	AgesRemaining    int           `json:"agesRemaining"`
	Log              []LogEntry    `json:"actionLog"`
	Winners          []string      `json:"winners,omitempty"`
}

// PlayerView is the table as one player may see it.
type PlayerView struct {
	View
	MyHand                    []deck.Card `json:"myHand"`
	MyTraitPile               []deck.Card `json:"myTraitPile"`
	MyScore                   int         `json:"myScore"`
	MyGenePool                int         `json:"myGenePool"`
	MyExtraPlays              int         `json:"myExtraPlays"`
	IsMyTurn                  bool        `json:"isMyTurn"`
	CurrentPlayerID           string      `json:"currentPlayerId"`
	CanPlayAny                bool        `json:"canPlayAny"`
	Playable                  []int       `json:"playableIndices"`
	NeedsDiscard              int         `json:"needsDiscard"`
	WillDraw                  int         `json:"willDraw"`
	NextAgePreview            *AgePreview `json:"nextAgePreview"`
	MyMustPlayColorless       bool        `json:"myMustPlayColorless"`
	MyMustPlayEffectless      bool        `json:"myMustPlayEffectless"`
	MyPreStabilizeDiscardUsed bool        `json:"myPreStabilizeDiscardUsed"`
}

// FullState includes every hand. It is meant for the authoritative host.
func (g *Game) FullState() View {
	v := View{
		GameID:           g.ID,
		State:            g.State,
		Round:            g.Round,
		CatastropheCount: g.CatastropheCount,
		CurrentAge:       g.CurrentAge,
		Phase:            g.Phase,
		CurrentPlayer:    g.CurrentPlayerIndex,
		FirstPlayer:      g.FirstPlayerIndex,
		TurnRestrictions: g.Rules.Restrictions,
		AgeEffects: AgeEffects{
			OptionalStabilization:          g.Rules.OptionalStabilization,
			OptionalDiscardBeforeStabilize: g.Rules.OptionalDiscardBeforeStabilize,
			ColorlessAllowsExtraPlay:       g.Rules.ColorlessAllowsExtraPlay,
			EffectlessAllowsExtraPlay:      g.Rules.EffectlessAllowsExtraPlay,
			PreviewNextAge:                 g.Rules.PreviewNextAge,
			ProtectTraitsThisRound:         g.Rules.ProtectTraits,
		},
		Players:       make([]SeatView, 0, len(g.Players)),
		DeckSize:      len(g.TraitDeck),
		DiscardSize:   len(g.DiscardPile),
		AgesRemaining: len(g.AgeDeck),
		Winners:       g.Winners,
	}

	n := len(g.Players)
	cur := g.CurrentPlayer()
	for i, p := range g.Players {
		v.Players = append(v.Players, SeatView{
			ID:                      p.ID,
			Name:                    p.Name,
			IsHost:                  p.IsHost,
			Ready:                   p.Ready,
			Connected:               p.Connected,
			Hand:                    p.Hand,
			HandSize:                len(p.Hand),
			TraitPile:               p.TraitPile,
			Score:                   g.ScoreOf(p),
			GenePool:                p.GenePool,
			HasPlayedThisRound:      g.PlayedThisRound[p.ID],
			NeedsStabilize:          p.NeedsStabilize,
			ExtraPlays:              p.ExtraPlays,
			TurnOrder:               (i - g.FirstPlayerIndex + n) % n,
			IsCurrentPlayer:         cur != nil && cur.ID == p.ID,
			MustPlayColorless:       p.MustPlayColorless,
			MustPlayEffectless:      p.MustPlayEffectless,
			PreStabilizeDiscardUsed: p.PreStabilizeDiscardUsed,
		})
	}

	switch pend := g.Pending.(type) {
	case *AwaitingPlayer:
		req := pend.Request
		v.Pending = &PendingView{PlayerID: pend.PlayerID, Request: &req, InputType: req.InputType, Message: req.Message}
	case *AwaitingPlayers:
		v.Pending = g.waitingView(pend)
	}
	v.Reveal = g.revealInfo()

	from := len(g.Log) - g.Config.LogView
	if from < 0 {
		from = 0
	}
	v.Log = append([]LogEntry{}, g.Log[from:]...)
	return v
}

// StateForPlayer redacts every other hand to a count and only includes a
// pending request addressed to playerID.
func (g *Game) StateForPlayer(playerID string) (PlayerView, error) {
	if g == nil {
		return PlayerView{}, ErrNilGame
	}
	p := g.Player(playerID)
	if p == nil {
		return PlayerView{}, ErrPlayerNotFound
	}

	v := g.FullState()
	for i := range v.Players {
		v.Players[i].Hand = nil
	}
	v.Pending = g.pendingView(p)

	cur := g.CurrentPlayer()
	pv := PlayerView{
		View:                      v,
		MyHand:                    p.Hand,
		MyTraitPile:               p.TraitPile,
		MyScore:                   g.ScoreOf(p),
		MyGenePool:                p.GenePool,
		MyExtraPlays:              p.ExtraPlays,
		IsMyTurn:                  cur != nil && cur.ID == p.ID,
		CanPlayAny:                g.State == StatePlaying && g.HasPlayableCards(p),
		Playable:                  []int{},
		MyMustPlayColorless:       p.MustPlayColorless,
		MyMustPlayEffectless:      p.MustPlayEffectless,
		MyPreStabilizeDiscardUsed: p.PreStabilizeDiscardUsed,
	}
	if cur != nil {
		pv.CurrentPlayerID = cur.ID
	}
	if g.State == StatePlaying {
		for i, c := range p.Hand {
			if ok, _ := g.CanPlayCard(p, c); ok {
				pv.Playable = append(pv.Playable, i)
			}
		}
	}
	target := g.StabilizeTarget(p)
	if d := len(p.Hand) - target; d > 0 {
		pv.NeedsDiscard = d
	} else {
		pv.WillDraw = -d
	}
	if g.Rules.PreviewNextAge && pv.IsMyTurn {
		pv.NextAgePreview = g.agePreview()
	}
	return pv, nil
}

// pendingView renders the part of the pending slot addressed to p.
func (g *Game) pendingView(p *Player) *PendingView {
	switch pend := g.Pending.(type) {
	case *AwaitingPlayer:
		if pend.PlayerID != p.ID {
			return nil
		}
		req := pend.Request
		return &PendingView{PlayerID: p.ID, Request: &req, InputType: req.InputType, Message: req.Message}
	case *AwaitingPlayers:
		if pend.SourcePlayerID == p.ID {
			return g.waitingView(pend)
		}
		part := pend.participant(p.ID)
		if part == nil || part.Responded {
			return nil
		}
		src := pend.SourceCard
		name := pend.SourcePlayerID
		if sp := g.Player(pend.SourcePlayerID); sp != nil {
			name = sp.Name
		}
		return &PendingView{
			PlayerID:   p.ID,
			InputType:  InputRevealCard,
			Message:    fmt.Sprintf("%s played %s. Select a card to reveal.", name, src.Name),
			RevealID:   pend.ID,
			SourceCard: &src,
			Cards:      handOptions(p, nil),
		}
	}
	return nil
}

func (g *Game) waitingView(pend *AwaitingPlayers) *PendingView {
	src := pend.SourceCard
	v := &PendingView{
		PlayerID:     pend.SourcePlayerID,
		InputType:    InputWaitingForReveals,
		Message:      "Waiting for opponents to reveal cards...",
		RevealID:     pend.ID,
		SourceCard:   &src,
		Participants: []ParticipantStatus{},
		Revealed:     []Reveal{},
		AllResponded: pend.allResponded(),
	}
	for _, part := range pend.Participants {
		v.Participants = append(v.Participants, ParticipantStatus{
			PlayerID:   part.PlayerID,
			PlayerName: part.PlayerName,
			Responded:  part.Responded,
		})
		if part.Response != nil {
			v.Revealed = append(v.Revealed, *part.Response)
		}
	}
	return v
}

func (g *Game) revealInfo() *RevealInfo {
	pend, ok := g.Pending.(*AwaitingPlayers)
	if !ok {
		return nil
	}
	info := &RevealInfo{ID: pend.ID, SourcePlayerName: pend.SourcePlayerID, SourceCard: pend.SourceCard}
	if sp := g.Player(pend.SourcePlayerID); sp != nil {
		info.SourcePlayerName = sp.Name
	}
	return info
}
