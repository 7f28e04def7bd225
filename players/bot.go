package players

import (
	"encoding/json"
	"math/rand"
	"sync"

	"github.com/minaorangina/doomlings/game"
	"github.com/minaorangina/doomlings/protocol"
)

// Bot is a player that answers every view with a random legal move.
type Bot struct {
	id    string
	name  string
	rng   *rand.Rand
	inbox chan protocol.OutboundMessage
	done  chan struct{}
	once  sync.Once
}

// NewBot constructs a bot. A nil rng seeds from the bot id.
func NewBot(id, name string, rng *rand.Rand) *Bot {
	if rng == nil {
		var seed int64
		for _, r := range id {
			seed = seed*31 + int64(r)
		}
		rng = rand.New(rand.NewSource(seed))
	}
	return &Bot{
		id:    id,
		name:  name,
		rng:   rng,
		inbox: make(chan protocol.OutboundMessage, 1),
		done:  make(chan struct{}),
	}
}

func (b *Bot) ID() string {
	return b.id
}

func (b *Bot) Name() string {
	return b.name
}

// Send keeps only the latest message. The message is copied through JSON so
// the bot never shares slices with the game.
func (b *Bot) Send(msg protocol.OutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	var cp protocol.OutboundMessage
	if err := json.Unmarshal(data, &cp); err != nil {
		return err
	}
	if cp.Command == protocol.GameOver {
		defer b.finish()
	}

	for {
		select {
		case b.inbox <- cp:
			return nil
		default:
		}
		select {
		case <-b.inbox:
		default:
		}
	}
}

// Done is closed once the bot has seen the end of the game.
func (b *Bot) Done() <-chan struct{} {
	return b.done
}

func (b *Bot) finish() {
	b.once.Do(func() { close(b.done) })
}

// Attach starts answering views by sending moves to r.
func (b *Bot) Attach(r Receiver) {
	go b.run(r)
}

func (b *Bot) run(r Receiver) {
	for {
		select {
		case <-b.done:
			return
		case msg := <-b.inbox:
			if msg.State == nil {
				continue
			}
			if msg.State.State == game.StateFinished {
				b.finish()
				return
			}
			move, ok := b.Decide(*msg.State, msg.Command == protocol.Error)
			if !ok {
				continue
			}
			move.PlayerID = b.id
			r.Receive(move)
		}
	}
}

// Decide picks a move for v. retry is set when the previous move was
// rejected, so optional requests are declined instead of guessed again.
func (b *Bot) Decide(v game.PlayerView, retry bool) (protocol.InboundMessage, bool) {
	if v.State != game.StatePlaying {
		return protocol.InboundMessage{}, false
	}
	if v.Pending != nil {
		return b.answer(*v.Pending, retry)
	}

	switch v.Phase {
	case game.PhaseCatastrophe:
		if v.CurrentPlayerID == b.id {
			return b.cmd(protocol.AcknowledgeCatastrophe), true
		}

	case game.PhasePlay:
		if !v.IsMyTurn {
			break
		}
		played := false
		for _, s := range v.Players {
			if s.ID == b.id {
				played = s.HasPlayedThisRound
			}
		}
		if played && v.MyExtraPlays == 0 {
			break
		}
		if len(v.Playable) > 0 {
			if !played && b.rng.Intn(20) == 0 {
				return b.cmd(protocol.DiscardAndDraw), true
			}
			move := b.cmd(protocol.PlayCard)
			move.CardIndex = v.Playable[b.rng.Intn(len(v.Playable))]
			return move, true
		}
		if !played && retry {
			return b.cmd(protocol.DiscardAndDraw), true
		}
		if !played {
			return b.cmd(protocol.SkipTurn), true
		}

	case game.PhaseStabilize:
		if !v.IsMyTurn {
			break
		}
		if v.AgeEffects.OptionalStabilization && b.rng.Intn(2) == 0 {
			return b.cmd(protocol.SkipStabilization), true
		}
		if v.AgeEffects.OptionalDiscardBeforeStabilize > 0 && !v.MyPreStabilizeDiscardUsed && len(v.MyHand) > 0 && !retry && b.rng.Intn(2) == 0 {
			move := b.cmd(protocol.PreStabilizeDiscard)
			move.Decision = b.rng.Perm(len(v.MyHand))[:1]
			return move, true
		}
		move := b.cmd(protocol.Stabilize)
		move.Decision = []int{}
		if v.NeedsDiscard > 0 && v.NeedsDiscard <= len(v.MyHand) {
			move.Decision = b.rng.Perm(len(v.MyHand))[:v.NeedsDiscard]
		}
		return move, true
	}
	return protocol.InboundMessage{}, false
}

func (b *Bot) cmd(c protocol.Cmd) protocol.InboundMessage {
	return protocol.InboundMessage{PlayerID: b.id, Command: c}
}

func (b *Bot) answer(pv game.PendingView, retry bool) (protocol.InboundMessage, bool) {
	switch pv.InputType {
	case game.InputWaitingForReveals:
		return protocol.InboundMessage{}, false
	case game.InputRevealCard:
		if len(pv.Cards) == 0 {
			return protocol.InboundMessage{}, false
		}
		move := b.cmd(protocol.RevealCard)
		move.CardIndex = b.option(pv.Cards).Index
		return move, true
	}
	if pv.Request == nil {
		return protocol.InboundMessage{}, false
	}
	req := *pv.Request

	skip := func() (protocol.InboundMessage, bool) {
		if !req.Optional {
			return protocol.InboundMessage{}, false
		}
		return b.cmd(protocol.SkipAction), true
	}

	switch req.InputType {
	case game.InputViewCards:
		return skip()
	case game.InputSelectRevealedCard:
		if len(req.Revealed) == 0 {
			return protocol.InboundMessage{}, false
		}
		r := req.Revealed[b.rng.Intn(len(req.Revealed))]
		move := b.cmd(protocol.PickRevealed)
		move.Pick = game.RevealPick{FromPlayerID: r.PlayerID, CardIndex: r.CardIndex}
		return move, true
	}
	if req.Optional && (retry || b.rng.Intn(4) == 0) {
		return skip()
	}

	var sel game.Selection
	switch req.Effect {
	case game.EffectDiscardSelected, game.EffectGiveCards:
		if len(req.Options) < req.Count {
			return skip()
		}
		for _, i := range b.rng.Perm(len(req.Options))[:req.Count] {
			sel.Indices = append(sel.Indices, req.Options[i].Index)
		}
		if req.Effect == game.EffectGiveCards {
			if len(req.Targets) == 0 {
				return skip()
			}
			sel.TargetID = b.option(req.Targets).PlayerID
		}

	case game.EffectReturnTrait, game.EffectDiscardOwnTrait, game.EffectPlayDrawnCard,
		game.EffectSearchDiscard, game.EffectSearchDiscardAndPlay, game.EffectSearchDiscardNoAction:
		if len(req.Options) == 0 {
			return skip()
		}
		sel.Index = b.option(req.Options).Index

	case game.EffectViewHand, game.EffectStealRandom, game.EffectDiscardOpponentHand, game.EffectMoveSelfToOpponent:
		if len(req.Targets) == 0 {
			return skip()
		}
		sel.TargetID = b.option(req.Targets).PlayerID

	case game.EffectStealTrait, game.EffectStealTraitPlayAction, game.EffectCopyTrait,
		game.EffectPlayOpponentAction, game.EffectDiscardOpponentTrait, game.EffectSwapSelfWithOpponent:
		if len(req.Options) == 0 {
			return skip()
		}
		o := b.option(req.Options)
		sel.TargetID, sel.TraitIndex = o.PlayerID, o.Index

	case game.EffectGiveTraitToOpponent:
		if len(req.Own) == 0 || len(req.Targets) == 0 {
			return skip()
		}
		sel.OwnTraitIndex = b.option(req.Own).Index
		sel.TargetID = b.option(req.Targets).PlayerID

	case game.EffectSwapTrait, game.EffectMutualDiscardTrait:
		if len(req.Own) == 0 || len(req.Options) == 0 {
			return skip()
		}
		o := b.option(req.Options)
		sel.OwnTraitIndex = b.option(req.Own).Index
		sel.TargetID, sel.OpponentTraitIndex = o.PlayerID, o.Index

	case game.EffectMoveTrait:
		if len(req.Options) == 0 {
			return skip()
		}
		o := b.option(req.Options)
		dests := []game.Option{}
		for _, t := range req.Targets {
			if t.PlayerID != o.PlayerID {
				dests = append(dests, t)
			}
		}
		if len(dests) == 0 {
			return skip()
		}
		sel.TargetID, sel.TraitIndex = o.PlayerID, o.Index
		sel.DestinationID = b.option(dests).PlayerID

	case game.EffectRearrangeTraits:
		sel.NewOrder = b.rng.Perm(len(req.Options))

	case game.EffectDiscardColorFromHand:
		if len(req.Colors) == 0 {
			return skip()
		}
		sel.Color = req.Colors[b.rng.Intn(len(req.Colors))]

	default:
		return skip()
	}

	move := b.cmd(protocol.SelectCards)
	if asksForTarget(req.InputType) {
		move.Command = protocol.SelectTarget
	}
	move.Selection = sel
	return move, true
}

func (b *Bot) option(opts []game.Option) game.Option {
	return opts[b.rng.Intn(len(opts))]
}

func asksForTarget(t game.InputType) bool {
	switch t {
	case game.InputSelectOpponent, game.InputSelectOpponentTrait,
		game.InputSelectOwnTraitAndOpponent, game.InputSelectMutualDiscard:
		return true
	}
	return false
}
