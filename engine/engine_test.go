package engine

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"testing"
	"time"

	"github.com/minaorangina/doomlings/catalog"
	"github.com/minaorangina/doomlings/deck"
	"github.com/minaorangina/doomlings/game"
	utils "github.com/minaorangina/doomlings/internal"
	"github.com/minaorangina/doomlings/players"
	"github.com/minaorangina/doomlings/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gameEngineTestTimeout = 500 * time.Millisecond

var quiet = log.New(io.Discard, "", 0)

func newTestEngine(t *testing.T, ps ...players.Player) *GameEngine {
	t.Helper()
	ge, err := NewGameEngine(GameEngineOpts{
		GameID:    "game-id",
		CreatorID: "hermione",
		Players:   players.NewPlayers(ps...),
		GameOpts:  game.GameOpts{Rand: rand.New(rand.NewSource(5)), Logger: quiet},
		Logger:    quiet,
	})
	utils.AssertNoError(t, err)
	t.Cleanup(ge.Stop)
	return ge
}

// awaitMessage polls tp until a message matches.
func awaitMessage(t *testing.T, tp *players.TestPlayer, match func(protocol.OutboundMessage) bool) protocol.OutboundMessage {
	t.Helper()
	var found protocol.OutboundMessage
	utils.Within(t, gameEngineTestTimeout, func() {
		for {
			for _, msg := range tp.Received() {
				if match(msg) {
					found = msg
					return
				}
			}
			time.Sleep(5 * time.Millisecond)
		}
	})
	return found
}

func command(cmd protocol.Cmd) func(protocol.OutboundMessage) bool {
	return func(msg protocol.OutboundMessage) bool { return msg.Command == cmd }
}

func TestGameEngineConstructor(t *testing.T) {
	t.Run("keeps track of who created it", func(t *testing.T) {
		ge := newTestEngine(t)
		utils.AssertEqual(t, ge.CreatorID(), "hermione")
		utils.AssertEqual(t, ge.ID(), "game-id")
		utils.AssertEqual(t, ge.PlayState(), Idle)
		utils.AssertEqual(t, ge.PlayState().String(), "idle")
	})

	t.Run("seats the players it starts with", func(t *testing.T) {
		ge := newTestEngine(t, players.APlayer("hermione", "Hermione"), players.APlayer("ron", "Ron"))
		assert.Equal(t, []string{"Hermione", "Ron"}, ge.PlayerNames())
		utils.AssertEqual(t, ge.FullState().Players[0].IsHost, true)
	})
}

func TestGameEngineAddPlayer(t *testing.T) {
	t.Run("broadcasts the joiner to everyone", func(t *testing.T) {
		hermione := players.NewTestPlayer("hermione", "Hermione")
		ge := newTestEngine(t, hermione)

		joiner := players.NewTestPlayer("joiner-1", "Ms Joiner")
		utils.AssertNoError(t, ge.AddPlayer(joiner))

		for _, tp := range []*players.TestPlayer{hermione, joiner} {
			msg := awaitMessage(t, tp, command(protocol.NewJoiner))
			require.NotNil(t, msg.Joiner)
			utils.AssertEqual(t, msg.Joiner.Name, "Ms Joiner")
			utils.AssertEqual(t, msg.Joiner.PlayerID, "joiner-1")
			require.NotNil(t, msg.State)
			utils.AssertEqual(t, len(msg.State.Players), 2)
		}
		_, ok := ge.Players().Find("joiner-1")
		utils.AssertTrue(t, ok)
	})

	t.Run("refuses joiners once the game has started", func(t *testing.T) {
		hermione := players.NewTestPlayer("hermione", "Hermione")
		ge := newTestEngine(t, hermione, players.APlayer("ron", "Ron"))
		ge.Receive(protocol.InboundMessage{PlayerID: "hermione", Command: protocol.Start})
		awaitMessage(t, hermione, command(protocol.State))

		late := players.NewTestPlayer("late", "Late")
		utils.AssertNoError(t, ge.AddPlayer(late))
		msg := awaitMessage(t, late, command(protocol.Error))
		utils.AssertEqual(t, msg.Error, game.ErrGameStarted.Error())
	})

	t.Run("a stopped engine refuses players", func(t *testing.T) {
		ge := newTestEngine(t)
		ge.Stop()
		err := ge.AddPlayer(players.APlayer("x", "X"))
		utils.AssertEqual(t, err, ErrEngineStopped)
	})
}

func TestGameEngineStart(t *testing.T) {
	t.Run("only the creator can start", func(t *testing.T) {
		hermione := players.NewTestPlayer("hermione", "Hermione")
		ron := players.NewTestPlayer("ron", "Ron")
		ge := newTestEngine(t, hermione, ron)

		t.Log("When Ron tries to start the game")
		ge.Receive(protocol.InboundMessage{PlayerID: "ron", Command: protocol.Start})

		t.Log("Then Ron is told off and the game stays idle")
		msg := awaitMessage(t, ron, command(protocol.Error))
		utils.AssertEqual(t, msg.Error, ErrNotCreator.Error())
		utils.AssertEqual(t, ge.PlayState(), Idle)
	})

	t.Run("every player receives their own view", func(t *testing.T) {
		hermione := players.NewTestPlayer("hermione", "Hermione")
		ron := players.NewTestPlayer("ron", "Ron")
		ge := newTestEngine(t, hermione, ron)

		ge.Receive(protocol.InboundMessage{PlayerID: "hermione", Command: protocol.Start})

		for _, tp := range []*players.TestPlayer{hermione, ron} {
			msg := awaitMessage(t, tp, command(protocol.State))
			require.NotNil(t, msg.State)
			utils.AssertEqual(t, msg.State.State, game.StatePlaying)
			utils.AssertEqual(t, len(msg.State.MyHand), 5)
			for _, seat := range msg.State.Players {
				assert.Empty(t, seat.Hand)
			}
		}
		utils.AssertEqual(t, ge.PlayState(), InProgress)

		t.Log("and only the sender gets the result")
		mine := awaitMessage(t, hermione, command(protocol.State))
		theirs := awaitMessage(t, ron, command(protocol.State))
		assert.NotNil(t, mine.Result)
		assert.Nil(t, theirs.Result)
	})

	t.Run("a rejected move only reaches the sender", func(t *testing.T) {
		hermione := players.NewTestPlayer("hermione", "Hermione")
		ron := players.NewTestPlayer("ron", "Ron")
		ge := newTestEngine(t, hermione, ron)

		ge.Receive(protocol.InboundMessage{PlayerID: "ron", Command: protocol.SkipAction})

		msg := awaitMessage(t, ron, command(protocol.Error))
		utils.AssertEqual(t, msg.Error, game.ErrGameNotInProgress.Error())
		for _, m := range hermione.Received() {
			assert.NotEqual(t, protocol.Error, m.Command)
		}
	})
}

func TestGameEngineRemovePlayer(t *testing.T) {
	t.Run("a leaver is announced and forfeits", func(t *testing.T) {
		hermione := players.NewTestPlayer("hermione", "Hermione")
		ron := players.NewTestPlayer("ron", "Ron")
		ge := newTestEngine(t, hermione, ron)
		ge.Receive(protocol.InboundMessage{PlayerID: "hermione", Command: protocol.Start})
		awaitMessage(t, hermione, command(protocol.State))

		ge.RemovePlayer(ron)

		msg := awaitMessage(t, hermione, command(protocol.Leave))
		utils.AssertEqual(t, msg.Message, "Ron has left the game")
		utils.AssertEqual(t, msg.State.Players[1].Connected, false)
		_, ok := ge.Players().Find("ron")
		utils.AssertEqual(t, ok, false)
	})

	t.Run("a stale connection does not remove its replacement", func(t *testing.T) {
		old := players.NewTestPlayer("ron", "Ron")
		ge := newTestEngine(t, players.NewTestPlayer("hermione", "Hermione"), old)

		replacement := players.NewTestPlayer("ron", "Ron")
		utils.AssertNoError(t, ge.AddPlayer(replacement))
		awaitMessage(t, replacement, command(protocol.NewJoiner))

		ge.RemovePlayer(old)
		ge.Receive(protocol.InboundMessage{PlayerID: "ron", Command: protocol.State})
		awaitMessage(t, replacement, command(protocol.State))

		got, ok := ge.Players().Find("ron")
		utils.AssertTrue(t, ok)
		utils.AssertEqual(t, got, players.Player(replacement))
	})
}

func TestApply(t *testing.T) {
	t.Run("needs a game", func(t *testing.T) {
		_, err := Apply(nil, protocol.InboundMessage{Command: protocol.Start})
		utils.AssertEqual(t, err, game.ErrNilGame)
	})

	g := game.NewGame(game.GameOpts{Rand: rand.New(rand.NewSource(1)), Logger: quiet})
	_, err := g.AddPlayer("ann", "Ann", true)
	utils.AssertNoError(t, err)
	_, err = g.AddPlayer("bo", "Bo", false)
	utils.AssertNoError(t, err)

	t.Run("rejects commands that are not moves", func(t *testing.T) {
		_, err := Apply(g, protocol.InboundMessage{PlayerID: "ann", Command: protocol.GameOver})
		utils.AssertTrue(t, errors.Is(err, ErrUnknownCommand))
	})

	t.Run("state requests need a seat", func(t *testing.T) {
		_, err := Apply(g, protocol.InboundMessage{PlayerID: "nobody", Command: protocol.State})
		utils.AssertEqual(t, err, game.ErrPlayerNotFound)
	})

	t.Run("dispatches to the game", func(t *testing.T) {
		_, err := Apply(g, protocol.InboundMessage{PlayerID: "ann", Command: protocol.Start})
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, g.State, game.StatePlaying)

		cur := g.CurrentPlayer()
		other := "ann"
		if cur.ID == "ann" {
			other = "bo"
		}
		_, err = Apply(g, protocol.InboundMessage{PlayerID: other, Command: protocol.PlayCard})
		utils.AssertTrue(t, errors.Is(err, game.ErrNotYourTurn))

		_, err = Apply(g, protocol.InboundMessage{PlayerID: cur.ID, Command: protocol.DiscardAndDraw})
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, len(cur.Hand), 3)
	})
}

func TestRevealTimeout(t *testing.T) {
	t.Log("Given a reveal waiting on Bo with a short timeout")
	g := game.NewGame(game.GameOpts{
		Rand:   rand.New(rand.NewSource(2)),
		Logger: quiet,
		Config: game.Config{RevealTimeout: 30 * time.Millisecond},
	})
	_, err := g.AddPlayer("ann", "Ann", true)
	utils.AssertNoError(t, err)
	_, err = g.AddPlayer("bo", "Bo", false)
	utils.AssertNoError(t, err)
	utils.AssertNoError(t, g.StartGame())

	mimic := deck.Card{Trait: deck.Trait{Name: "Mimic"}, InstanceID: "mimic"}
	g.Phase = game.PhaseAction
	g.Pending = &game.AwaitingPlayers{
		ID:             "reveal-1",
		SourcePlayerID: "ann",
		SourceCard:     mimic,
		RevealCount:    1,
		Participants:   []*game.Participant{{PlayerID: "bo", PlayerName: "Bo"}},
		Played:         mimic,
		OpenedAt:       time.Now(),
		Timeout:        30 * time.Millisecond,
	}

	ann := players.NewTestPlayer("ann", "Ann")
	bo := players.NewTestPlayer("bo", "Bo")
	ge, err := NewGameEngine(GameEngineOpts{GameID: "g", CreatorID: "ann", Game: g, Players: players.NewPlayers(ann, bo), Logger: quiet})
	utils.AssertNoError(t, err)
	t.Cleanup(ge.Stop)

	t.Log("When Bo never answers")
	t.Log("Then a card is revealed for Bo and Ann is asked to pick")
	msg := awaitMessage(t, ann, func(m protocol.OutboundMessage) bool {
		return m.State != nil && m.State.Pending != nil && m.State.Pending.InputType == game.InputSelectRevealedCard
	})
	require.NotNil(t, msg.State.Pending.Request)
	require.Len(t, msg.State.Pending.Request.Revealed, 1)
	utils.AssertEqual(t, msg.State.Pending.Request.Revealed[0].PlayerID, "bo")
}

// cardIDs numbers ids in the order the game asks for them. The deck is
// built first, so its cards take the lowest numbers.
func cardIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("card-%d", n)
	}
}

func TestSelfPlay(t *testing.T) {
	t.Log("Given three bots at one table")
	names := []string{"ann", "bo", "cy"}
	bots := []*players.Bot{}
	seated := players.Players{}
	for i, name := range names {
		b := players.NewBot(name, name, rand.New(rand.NewSource(int64(i+1))))
		bots = append(bots, b)
		seated = append(seated, b)
	}
	ge, err := NewGameEngine(GameEngineOpts{
		GameID:    "self-play",
		CreatorID: "ann",
		Players:   seated,
		GameOpts: game.GameOpts{
			Rand:   rand.New(rand.NewSource(11)),
			Logger: quiet,
			Config: game.Config{RevealTimeout: 50 * time.Millisecond},
			NewID:  cardIDs(),
		},
		Logger: quiet,
	})
	utils.AssertNoError(t, err)
	t.Cleanup(ge.Stop)
	for _, b := range bots {
		b.Attach(ge)
	}

	t.Log("When the creator starts the game")
	ge.Receive(protocol.InboundMessage{PlayerID: "ann", Command: protocol.Start})

	t.Log("Then the bots play it to the end")
	for _, b := range bots {
		utils.Within(t, 20*time.Second, func() {
			<-b.Done()
		})
	}
	v := ge.FullState()
	utils.AssertEqual(t, v.State, game.StateFinished)
	utils.AssertEqual(t, ge.PlayState(), Finished)
	assert.NotEmpty(t, v.Winners)
	utils.AssertEqual(t, v.CatastropheCount, 3)

	t.Log("and every card dealt from the deck is held exactly once")
	data, err := ge.Snapshot()
	require.NoError(t, err)
	final, err := game.Deserialize(data, game.GameOpts{Logger: quiet})
	require.NoError(t, err)
	piles := [][]deck.Card{final.TraitDeck, final.DiscardPile}
	for _, p := range final.Players {
		piles = append(piles, p.Hand, p.TraitPile)
	}
	utils.AssertUniqueCards(t, piles...)

	copies := 0
	for _, tr := range catalog.MustDefault().Traits {
		copies += tr.CopyCount()
	}
	dealt := []string{}
	for i := 1; i <= copies; i++ {
		dealt = append(dealt, fmt.Sprintf("card-%d", i))
	}
	held, minted := []string{}, []string{}
	for _, id := range utils.CardIDs(piles...) {
		var n int
		_, err := fmt.Sscanf(id, "card-%d", &n)
		require.NoError(t, err)
		if n <= copies {
			held = append(held, id)
		} else {
			minted = append(minted, id)
		}
	}
	utils.AssertCardsConserved(t, held, dealt)
	t.Logf("%d copied trait(s) minted during play", len(minted))

	top := 0
	for _, seat := range v.Players {
		if seat.Score > top {
			top = seat.Score
		}
	}
	for _, id := range v.Winners {
		for _, seat := range v.Players {
			if seat.ID == id {
				utils.AssertEqual(t, seat.Score, top)
			}
		}
	}
}
