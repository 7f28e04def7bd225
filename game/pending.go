package game

import (
	"time"

	"github.com/minaorangina/doomlings/deck"
)

// InputType tells a client what kind of choice it is being asked for.
type InputType string

const (
	InputSelectOwnCards            InputType = "select_own_cards"
	InputSelectOwnTrait            InputType = "select_own_trait"
	InputSelectOpponent            InputType = "select_opponent"
	InputSelectOpponentTrait       InputType = "select_opponent_trait"
	InputSelectFromDiscard         InputType = "select_from_discard"
	InputViewCards                 InputType = "view_cards"
	InputSelectCardsAndOpponent    InputType = "select_cards_and_opponent"
	InputSelectTraitMove           InputType = "select_trait_move"
	InputSelectTraitSwap           InputType = "select_trait_swap"
	InputRearrangeTraits           InputType = "rearrange_traits"
	InputSelectOwnTraitAndOpponent InputType = "select_own_trait_and_opponent"
	InputSelectMutualDiscard       InputType = "select_mutual_discard"
	InputSelectColor               InputType = "select_color"
	InputSelectRevealedCard        InputType = "select_revealed_card"
	InputWaitingForReveals         InputType = "waiting_for_reveals"
	InputRevealCard                InputType = "reveal_card"
)

// targetInputs are answered with HandleTargetSelection; every other input
// with HandleCardSelection.
var targetInputs = map[InputType]bool{
	InputSelectOpponent:            true,
	InputSelectOpponentTrait:       true,
	InputSelectOwnTraitAndOpponent: true,
	InputSelectMutualDiscard:       true,
}

// EffectKind names what happens once a request is answered.
type EffectKind string

const (
	EffectDiscardSelected       EffectKind = "discard_selected"
	EffectDiscardOpponentHand   EffectKind = "discard_opponent_hand"
	EffectDiscardOwnTrait       EffectKind = "discard_own_trait"
	EffectDiscardOpponentTrait  EffectKind = "discard_opponent_trait"
	EffectView                  EffectKind = "view"
	EffectViewHand              EffectKind = "view_hand"
	EffectSearchDiscard         EffectKind = "search_discard"
	EffectSearchDiscardAndPlay  EffectKind = "search_discard_and_play"
	EffectSearchDiscardNoAction EffectKind = "search_discard_ignore_action"
	EffectStealTrait            EffectKind = "steal_trait"
	EffectStealTraitPlayAction  EffectKind = "steal_trait_play_action"
	EffectStealRandom           EffectKind = "steal_random"
	EffectReturnTrait           EffectKind = "return_trait"
	EffectCopyTrait             EffectKind = "copy_trait"
	EffectPlayOpponentAction    EffectKind = "play_opponent_action"
	EffectGiveCards             EffectKind = "give_cards"
	EffectMoveTrait             EffectKind = "move_trait"
	EffectSwapTrait             EffectKind = "swap_trait"
	EffectRearrangeTraits       EffectKind = "rearrange_traits"
	EffectGiveTraitToOpponent   EffectKind = "give_trait_to_opponent"
	EffectMutualDiscardTrait    EffectKind = "mutual_discard_trait"
	EffectDiscardColorFromHand  EffectKind = "discard_color_from_hand"
	EffectPlayDrawnCard         EffectKind = "play_drawn_card"
	EffectSwapSelfWithOpponent  EffectKind = "swap_self_with_opponent_trait"
	EffectMoveSelfToOpponent    EffectKind = "move_self_to_opponent"
	EffectStealRevealedAndPlay  EffectKind = "steal_revealed_and_play"
)

// Option is one legal answer to a request. Card options carry the instance
// id seen when the request was issued so a moved card is detected.
type Option struct {
	PlayerID   string         `json:"playerId,omitempty"`
	PlayerName string         `json:"playerName,omitempty"`
	Index      int            `json:"index"`
	InstanceID string         `json:"instanceId,omitempty"`
	Name       string         `json:"name,omitempty"`
	Color      deck.Color     `json:"color,omitempty"`
	Face       deck.FaceValue `json:"faceValue"`
	HandSize   int            `json:"handSize,omitempty"`
}

// Request is the pending-input descriptor handed to the player who must answer.
type Request struct {
	InputType InputType    `json:"inputType"`
	Effect    EffectKind   `json:"effectKind"`
	Message   string       `json:"message"`
	Optional  bool         `json:"optional"`
	Count     int          `json:"count,omitempty"`
	Options   []Option     `json:"options,omitempty"`
	Own       []Option     `json:"ownOptions,omitempty"`
	Targets   []Option     `json:"targets,omitempty"`
	Cards     []deck.Card  `json:"cards,omitempty"`
	Ages      []deck.Age   `json:"ages,omitempty"`
	Colors    []deck.Color `json:"colors,omitempty"`
	SameColor *bool        `json:"sameColor,omitempty"`
	Revealed  []Reveal     `json:"revealedCards,omitempty"`
	// Source is the card whose effect issued the request.
	Source deck.Card `json:"source"`
	// Origin is the effect that issued the request, re-queued while Count
	// asks for more than one trait.
	Origin deck.Effect `json:"origin"`
}

// Frame is one card's remaining effects.
type Frame struct {
	Source  deck.Card     `json:"source"`
	Effects []deck.Effect `json:"effects"`
}

// Pending is the game's single outstanding-input slot: nil, *AwaitingPlayer
// or *AwaitingPlayers.
type Pending interface {
	addressedTo(playerID string) bool
}

// AwaitingPlayer waits on one player's answer. Remaining is resumed once the
// answer is applied.
type AwaitingPlayer struct {
	PlayerID  string    `json:"playerId"`
	Request   Request   `json:"request"`
	Remaining []Frame   `json:"remaining"`
	Played    deck.Card `json:"played"`
}

func (a *AwaitingPlayer) addressedTo(playerID string) bool {
	return a.PlayerID == playerID
}

// RevealedCard is the part of a revealed card shown to the waiting player.
type RevealedCard struct {
	Name              string         `json:"name"`
	Color             deck.Color     `json:"color"`
	Face              deck.FaceValue `json:"faceValue"`
	InstanceID        string         `json:"instanceId"`
	Dominant          bool           `json:"isDominant,omitempty"`
	ActionDescription string         `json:"actionDescription,omitempty"`
	BonusDescription  string         `json:"bonusDescription,omitempty"`
}

func redact(c deck.Card) RevealedCard {
	return RevealedCard{
		Name:              c.Name,
		Color:             c.Color,
		Face:              c.Face,
		InstanceID:        c.InstanceID,
		Dominant:          c.Dominant,
		ActionDescription: c.ActionDescription,
		BonusDescription:  c.BonusDescription,
	}
}

// Reveal is one responder's revealed card.
type Reveal struct {
	PlayerID   string       `json:"playerId"`
	PlayerName string       `json:"playerName"`
	CardIndex  int          `json:"cardIndex"`
	Card       RevealedCard `json:"card"`
}

// Participant is one required responder.
type Participant struct {
	PlayerID   string  `json:"playerId"`
	PlayerName string  `json:"playerName"`
	Responded  bool    `json:"responded"`
	Response   *Reveal `json:"response,omitempty"`
}

// AwaitingPlayers waits on every participant before handing the revealed
// cards back to the source player.
type AwaitingPlayers struct {
	ID             string         `json:"id"`
	SourcePlayerID string         `json:"sourcePlayerId"`
	SourceCard     deck.Card      `json:"sourceCard"`
	RevealCount    int            `json:"revealCount"`
	Participants   []*Participant `json:"participants"`
	Remaining      []Frame        `json:"remaining"`
	Played         deck.Card      `json:"played"`
	OpenedAt       time.Time      `json:"openedAt"`
	Timeout        time.Duration  `json:"timeout"`
}

func (a *AwaitingPlayers) addressedTo(playerID string) bool {
	if a.SourcePlayerID == playerID {
		return true
	}
	p := a.participant(playerID)
	return p != nil && !p.Responded
}

func (a *AwaitingPlayers) participant(playerID string) *Participant {
	for _, p := range a.Participants {
		if p.PlayerID == playerID {
			return p
		}
	}
	return nil
}

func (a *AwaitingPlayers) allResponded() bool {
	for _, p := range a.Participants {
		if !p.Responded {
			return false
		}
	}
	return true
}

// Deadline is when unanswered participants are answered at random.
func (a *AwaitingPlayers) Deadline() time.Time {
	return a.OpenedAt.Add(a.Timeout)
}

// PendingKind discriminates the pending slot in serialized form.
type PendingKind string

const (
	PendingNone    PendingKind = ""
	PendingPlayer  PendingKind = "player"
	PendingPlayers PendingKind = "players"
)

type pendingEnvelope struct {
	Kind    PendingKind      `json:"kind"`
	Player  *AwaitingPlayer  `json:"player,omitempty"`
	Players *AwaitingPlayers `json:"players,omitempty"`
}

func wrapPending(p Pending) *pendingEnvelope {
	switch pend := p.(type) {
	case *AwaitingPlayer:
		return &pendingEnvelope{Kind: PendingPlayer, Player: pend}
	case *AwaitingPlayers:
		return &pendingEnvelope{Kind: PendingPlayers, Players: pend}
	}
	return nil
}

func (e *pendingEnvelope) unwrap() Pending {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case PendingPlayer:
		if e.Player != nil {
			return e.Player
		}
	case PendingPlayers:
		if e.Players != nil {
			return e.Players
		}
	}
	return nil
}

func copyFrames(frames []Frame) []Frame {
	out := make([]Frame, 0, len(frames))
	for _, f := range frames {
		if len(f.Effects) == 0 {
			continue
		}
		effects := make([]deck.Effect, len(f.Effects))
		copy(effects, f.Effects)
		out = append(out, Frame{Source: f.Source, Effects: effects})
	}
	return out
}
