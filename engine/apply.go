package engine

import (
	"fmt"

	"github.com/minaorangina/doomlings/game"
	"github.com/minaorangina/doomlings/protocol"
)

// Apply runs one player command against g.
func Apply(g *game.Game, msg protocol.InboundMessage) (game.Result, error) {
	if g == nil {
		return game.Result{}, game.ErrNilGame
	}
	id := msg.PlayerID

	switch msg.Command {
	case protocol.Start:
		return game.Result{}, g.StartGame()
	case protocol.PlayCard:
		return g.PlayCard(id, msg.CardIndex)
	case protocol.SkipTurn:
		return g.SkipTurn(id)
	case protocol.DiscardAndDraw:
		return g.DiscardAndDraw(id)
	case protocol.Stabilize:
		return g.Stabilize(id, msg.Decision)
	case protocol.SkipStabilization:
		return g.SkipStabilization(id)
	case protocol.PreStabilizeDiscard:
		return g.PreStabilizeDiscard(id, msg.Decision)
	case protocol.PreviewAge:
		return g.NextAgePreview(id)
	case protocol.AcknowledgeCatastrophe:
		return g.AcknowledgeCatastrophe(id)
	case protocol.SelectTarget:
		return g.HandleTargetSelection(id, msg.Selection)
	case protocol.SelectCards:
		return g.HandleCardSelection(id, msg.Selection)
	case protocol.SkipAction:
		return g.SkipAction(id)
	case protocol.RevealCard:
		return g.SubmitMultiPlayerResponse(id, msg.CardIndex)
	case protocol.PickRevealed:
		return g.HandleRevealedCardSelection(id, msg.Pick)
	case protocol.State:
		if g.Player(id) == nil {
			return game.Result{}, game.ErrPlayerNotFound
		}
		return game.Result{}, nil
	}
	return game.Result{}, fmt.Errorf("%w: %s", ErrUnknownCommand, msg.Command)
}
