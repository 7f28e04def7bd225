package game

import (
	"encoding/json"
	"testing"

	"github.com/minaorangina/doomlings/deck"
	utils "github.com/minaorangina/doomlings/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateForPlayerRedactsHands(t *testing.T) {
	g := inPlay(t, "ann", "bo")
	g.Players[0].Hand = fillers(2)
	g.Players[1].Hand = fillers(4)

	v, err := g.StateForPlayer("ann")
	require.NoError(t, err)

	utils.AssertEqual(t, len(v.MyHand), 2)
	for _, seat := range v.Players {
		assert.Nil(t, seat.Hand)
	}
	utils.AssertEqual(t, v.Players[1].HandSize, 4)
	assert.True(t, v.IsMyTurn)
	utils.AssertEqual(t, v.CurrentPlayerID, "ann")
	utils.AssertEqual(t, v.WillDraw, 3)
	utils.AssertEqual(t, v.NeedsDiscard, 0)
	utils.AssertDeepEqual(t, v.Playable, []int{0, 1})

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"hand"`)

	full := g.FullState()
	utils.AssertEqual(t, len(full.Players[1].Hand), 4)

	_, err = g.StateForPlayer("zed")
	utils.AssertEqual(t, err, ErrPlayerNotFound)

	var nilGame *Game
	_, err = nilGame.StateForPlayer("ann")
	utils.AssertEqual(t, err, ErrNilGame)
}

func TestPendingIsOnlyShownToItsPlayer(t *testing.T) {
	g := inPlay(t, "ann", "bo")
	g.Players[0].Hand = append([]deck.Card{withActions(trait("Tinker", 1, deck.Colorless),
		effect("discard_card_from_hand", deck.Params{NumCards: 1}),
	)}, fillers(2)...)
	_, err := g.PlayCard("ann", 0)
	require.NoError(t, err)

	annView, err := g.StateForPlayer("ann")
	require.NoError(t, err)
	require.NotNil(t, annView.Pending)
	utils.AssertEqual(t, annView.Pending.PlayerID, "ann")
	require.NotNil(t, annView.Pending.Request)
	utils.AssertEqual(t, annView.Pending.Request.Count, 1)

	boView, err := g.StateForPlayer("bo")
	require.NoError(t, err)
	assert.Nil(t, boView.Pending)
	utils.AssertEqual(t, boView.Phase, PhaseAction)

	full := g.FullState()
	require.NotNil(t, full.Pending)
	utils.AssertEqual(t, full.Pending.PlayerID, "ann")
}

func TestRevealViews(t *testing.T) {
	g := revealTable(t)
	_, err := g.PlayCard("ann", 0)
	require.NoError(t, err)
	_, err = g.SubmitMultiPlayerResponse("bo", 0)
	require.NoError(t, err)

	t.Log("The source player sees who has answered")
	annView, err := g.StateForPlayer("ann")
	require.NoError(t, err)
	require.NotNil(t, annView.Pending)
	utils.AssertEqual(t, annView.Pending.InputType, InputWaitingForReveals)
	utils.AssertEqual(t, len(annView.Pending.Participants), 2)
	utils.AssertEqual(t, len(annView.Pending.Revealed), 1)
	assert.False(t, annView.Pending.AllResponded)

	t.Log("A silent participant is asked to reveal")
	cyView, err := g.StateForPlayer("cy")
	require.NoError(t, err)
	require.NotNil(t, cyView.Pending)
	utils.AssertEqual(t, cyView.Pending.InputType, InputRevealCard)
	utils.AssertEqual(t, cyView.Pending.RevealID, g.RevealID())
	utils.AssertEqual(t, cyView.Pending.Message, "ann played Mimic. Select a card to reveal.")
	utils.AssertEqual(t, len(cyView.Pending.Cards), 1)

	t.Log("A participant who answered has nothing to do")
	boView, err := g.StateForPlayer("bo")
	require.NoError(t, err)
	assert.Nil(t, boView.Pending)

	t.Log("Everyone sees the reveal itself")
	require.NotNil(t, boView.Reveal)
	utils.AssertEqual(t, boView.Reveal.SourcePlayerName, "ann")
	utils.AssertEqual(t, boView.Reveal.SourceCard.Name, "Mimic")
}

func TestViewLogIsTrimmed(t *testing.T) {
	g := inPlay(t, "ann", "bo")
	for i := 0; i < 30; i++ {
		g.log("entry %d", i)
	}

	v := g.FullState()

	utils.AssertEqual(t, len(v.Log), g.Config.LogView)
	utils.AssertEqual(t, v.Log[len(v.Log)-1].Message, "entry 29")
}

func TestNextAgePreviewOnlyOnYourTurn(t *testing.T) {
	g := inPlay(t, "ann", "bo")
	g.Rules.PreviewNextAge = true
	g.AgeDeck = []deck.Age{{Kind: deck.KindCatastrophe, Name: "Ice Age", Description: "brr"}}

	annView, err := g.StateForPlayer("ann")
	require.NoError(t, err)
	require.NotNil(t, annView.NextAgePreview)
	utils.AssertEqual(t, annView.NextAgePreview.Name, "Ice Age")

	boView, err := g.StateForPlayer("bo")
	require.NoError(t, err)
	assert.Nil(t, boView.NextAgePreview)
}
