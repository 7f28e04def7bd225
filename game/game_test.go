package game

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/minaorangina/doomlings/deck"
	utils "github.com/minaorangina/doomlings/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	g := NewGame(testOpts())

	utils.AssertEqual(t, g.ID, "test-game")
	utils.AssertEqual(t, g.State, StateLobby)
	utils.AssertEqual(t, g.Phase, PhaseWaiting)
	utils.AssertDeepEqual(t, g.Config, DefaultConfig())

	t.Run("generates an id when none is given", func(t *testing.T) {
		opts := testOpts()
		opts.ID = ""
		utils.AssertEqual(t, NewGame(opts).ID, "id-1")
	})

	t.Run("nil game", func(t *testing.T) {
		var g *Game
		_, err := g.AddPlayer("a", "a", true)
		utils.AssertEqual(t, err, ErrNilGame)
		utils.AssertEqual(t, g.StartGame(), ErrNilGame)
		_, err = g.PlayCard("a", 0)
		utils.AssertEqual(t, err, ErrNilGame)
	})
}

func TestAddPlayer(t *testing.T) {
	t.Run("seats players in join order", func(t *testing.T) {
		g := newTestGame(t, "ann", "bo")
		require.Len(t, g.Players, 2)
		assert.True(t, g.Players[0].IsHost)
		assert.True(t, g.Players[0].Ready)
		assert.False(t, g.Players[1].IsHost)
		assert.True(t, g.Players[1].Connected)
	})

	t.Run("rejects a duplicate id", func(t *testing.T) {
		g := newTestGame(t, "ann")
		_, err := g.AddPlayer("ann", "Ann again", false)
		utils.AssertEqual(t, err, ErrDuplicatePlayer)
	})

	t.Run("rejects a player when the table is full", func(t *testing.T) {
		opts := testOpts()
		opts.Config = Config{MaxPlayers: 2}
		g := NewGame(opts)
		_, _ = g.AddPlayer("a", "a", true)
		_, _ = g.AddPlayer("b", "b", false)

		_, err := g.AddPlayer("c", "c", false)
		utils.AssertEqual(t, err, ErrGameFull)
		assert.True(t, errors.Is(err, ErrIllegalMove))
	})

	t.Run("rejects a player after the game started", func(t *testing.T) {
		g := newTestGame(t, "ann", "bo")
		require.NoError(t, g.StartGame())

		_, err := g.AddPlayer("cy", "cy", false)
		utils.AssertEqual(t, err, ErrGameStarted)
	})
}

func TestStartGame(t *testing.T) {
	t.Run("needs two players", func(t *testing.T) {
		g := newTestGame(t, "ann")
		utils.AssertEqual(t, g.StartGame(), ErrTooFewPlayers)
		utils.AssertEqual(t, g.State, StateLobby)
	})

	t.Run("deals through the Birth of Life", func(t *testing.T) {
		g := newTestGame(t, "ann", "bo", "cy")
		t.Log("When the game starts")
		require.NoError(t, g.StartGame())

		t.Log("Then round one is the Birth of Life")
		utils.AssertEqual(t, g.State, StatePlaying)
		utils.AssertEqual(t, g.Phase, PhasePlay)
		utils.AssertEqual(t, g.Round, 1)
		require.NotNil(t, g.CurrentAge)
		utils.AssertEqual(t, g.CurrentAge.Name, "The Birth of Life")
		utils.AssertEqual(t, g.CurrentPlayerIndex, g.FirstPlayerIndex)

		t.Log("And every player holds a gene pool's worth of cards")
		for _, p := range g.Players {
			utils.AssertEqual(t, p.GenePool, 5)
			utils.AssertEqual(t, len(p.Hand), 5)
			assert.Empty(t, p.TraitPile)
		}

		t.Log("And the age deck holds three sealed sections")
		utils.AssertEqual(t, len(g.AgeDeck), 3*(g.Config.AgesPerSection+1))
		catastrophes := 0
		for _, a := range g.AgeDeck {
			if a.IsCatastrophe() {
				catastrophes++
			}
		}
		utils.AssertEqual(t, catastrophes, 3)
	})

	t.Run("cannot start twice", func(t *testing.T) {
		g := newTestGame(t, "ann", "bo")
		require.NoError(t, g.StartGame())
		utils.AssertEqual(t, g.StartGame(), ErrGameStarted)
	})
}

func TestRemovePlayer(t *testing.T) {
	t.Run("from the lobby", func(t *testing.T) {
		g := newTestGame(t, "ann", "bo")
		require.NoError(t, g.RemovePlayer("bo"))
		require.Len(t, g.Players, 1)
		utils.AssertEqual(t, g.RemovePlayer("bo"), ErrPlayerNotFound)
	})

	t.Run("the current player forfeits their turn", func(t *testing.T) {
		g := inPlay(t, "ann", "bo", "cy")
		g.Players[0].Hand = fillers(3)

		require.NoError(t, g.RemovePlayer("ann"))

		ann := g.Player("ann")
		assert.False(t, ann.Connected)
		utils.AssertEqual(t, len(ann.Hand), 3)
		utils.AssertEqual(t, g.CurrentPlayer().ID, "bo")
		assert.True(t, g.PlayedThisRound["ann"])
	})

	t.Run("disconnected seats are skipped", func(t *testing.T) {
		g := inPlay(t, "ann", "bo", "cy")
		require.NoError(t, g.RemovePlayer("bo"))
		g.Players[0].Hand = fillers(5)

		_, err := g.PlayCard("ann", 0)
		require.NoError(t, err)
		_, err = g.Stabilize("ann", nil)
		require.NoError(t, err)

		utils.AssertEqual(t, g.CurrentPlayer().ID, "cy")
	})

	t.Run("effects queued behind a departed player's request are logged", func(t *testing.T) {
		g := inPlay(t, "ann", "bo", "cy")
		var diag bytes.Buffer
		g.logger = log.New(&diag, "", 0)
		g.placeTrait(g.Players[1], trait("Horns", 2, deck.Red))
		g.Players[0].Hand = []deck.Card{withActions(trait("Thief", 1, deck.Purple),
			effect("steal_trait", deck.Params{}),
			effect("draw_cards", deck.Params{Value: 2}),
		)}

		t.Log("Given ann is choosing a trait to steal")
		_, err := g.PlayCard("ann", 0)
		require.NoError(t, err)
		awaiting(t, g)

		t.Log("When ann leaves")
		require.NoError(t, g.RemovePlayer("ann"))

		t.Log("Then the request and the draw behind it are dropped and logged")
		assert.Nil(t, g.Pending)
		assert.Empty(t, g.Player("ann").Hand)
		utils.AssertCardNames(t, g.Players[1].TraitPile, "Horns")
		utils.AssertEqual(t, g.CurrentPlayer().ID, "bo")
		assert.Contains(t, messages(g), "ann left before Thief resolved; skipped steal_trait, draw_cards")
		assert.Contains(t, diag.String(), "dropped 2 effect(s) of Thief for ann")
	})

	t.Run("a departed reveal source drops its steal", func(t *testing.T) {
		g := inPlay(t, "ann", "bo", "cy")
		g.Players[1].Hand = fillers(2)
		g.Players[2].Hand = fillers(2)
		src := trait("Mindful", 2, deck.Purple)
		pend := g.openReveal(g.Players[0], src, 1).(*AwaitingPlayers)
		pend.Remaining = []Frame{{Source: src, Effects: []deck.Effect{effect("draw_cards", deck.Params{Value: 1})}}}
		g.Pending = pend

		require.NoError(t, g.RemovePlayer("ann"))

		assert.Nil(t, g.Pending)
		assert.Contains(t, messages(g), "ann left before Mindful resolved; skipped steal_revealed_and_play, draw_cards")
	})

	t.Run("a silent reveal participant counts as answered", func(t *testing.T) {
		g := inPlay(t, "ann", "bo", "cy")
		g.Players[1].Hand = fillers(2)
		g.Players[2].Hand = fillers(2)
		src := trait("Mindful", 2, deck.Purple)
		g.Pending = g.openReveal(g.Players[0], src, 1)
		_, err := g.SubmitMultiPlayerResponse("bo", 0)
		require.NoError(t, err)

		require.NoError(t, g.RemovePlayer("cy"))

		pend := awaiting(t, g)
		utils.AssertEqual(t, pend.Request.InputType, InputSelectRevealedCard)
		require.Len(t, pend.Request.Revealed, 1)
		utils.AssertEqual(t, pend.Request.Revealed[0].PlayerID, "bo")
	})
}

func TestLogIsCapped(t *testing.T) {
	g := inPlay(t, "ann", "bo")
	for i := 0; i < 60; i++ {
		g.log("entry %d", i)
	}
	utils.AssertEqual(t, len(g.Log), g.Config.LogLimit)
	utils.AssertEqual(t, g.Log[0].Message, "entry 10")
	utils.AssertEqual(t, g.Log[0].Time, epoch)
}
