package game

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"testing"
	"time"

	"github.com/minaorangina/doomlings/deck"
	utils "github.com/minaorangina/doomlings/internal"
)

var quiet = log.New(io.Discard, "", 0)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

var nextCard int

func counter(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func testOpts() GameOpts {
	return GameOpts{
		ID:     "test-game",
		Rand:   rand.New(rand.NewSource(7)),
		Logger: quiet,
		Now:    func() time.Time { return epoch },
		NewID:  counter("id"),
	}
}

// newTestGame seats players in the lobby. Ids equal names.
func newTestGame(t *testing.T, names ...string) *Game {
	t.Helper()
	g := NewGame(testOpts())
	for i, name := range names {
		_, err := g.AddPlayer(name, name, i == 0)
		utils.AssertNoError(t, err)
	}
	return g
}

// inPlay puts a game mid-round on the first seat with empty hands, gene
// pools of 5 and a plain trait deck.
func inPlay(t *testing.T, names ...string) *Game {
	t.Helper()
	g := newTestGame(t, names...)
	g.State = StatePlaying
	g.Phase = PhasePlay
	g.Round = 1
	for _, p := range g.Players {
		p.GenePool = 5
		p.Ready = true
	}
	g.TraitDeck = fillers(20)
	return g
}

func trait(name string, face int, color deck.Color) deck.Card {
	nextCard++
	return deck.Card{
		Trait:      deck.Trait{Name: name, Face: deck.Fixed(face), Color: color},
		InstanceID: fmt.Sprintf("%s-%d", name, nextCard),
	}
}

func fillers(n int) []deck.Card {
	out := []deck.Card{}
	for i := 0; i < n; i++ {
		out = append(out, trait("Filler", 1, deck.Colorless))
	}
	return out
}

func effect(name string, p deck.Params) deck.Effect {
	return deck.Effect{Name: name, Params: p}
}

func withActions(c deck.Card, actions ...deck.Effect) deck.Card {
	c.Actions = actions
	return c
}

func withEffects(c deck.Card, effects ...deck.Effect) deck.Card {
	c.Effects = effects
	return c
}

func genePool(value int, scope deck.Scope) deck.Effect {
	return effect("modify_gene_pool", deck.Params{Value: value, Affected: scope})
}

func boolPtr(v bool) *bool { return &v }

func intPtr(v int) *int { return &v }

// allPiles lists every zone a card can sit in.
func allPiles(g *Game) [][]deck.Card {
	piles := [][]deck.Card{g.TraitDeck, g.DiscardPile}
	for _, p := range g.Players {
		piles = append(piles, p.Hand, p.TraitPile)
	}
	return piles
}

// messages lists the action log.
func messages(g *Game) []string {
	out := []string{}
	for _, e := range g.Log {
		out = append(out, e.Message)
	}
	return out
}

func awaiting(t *testing.T, g *Game) *AwaitingPlayer {
	t.Helper()
	pend, ok := g.Pending.(*AwaitingPlayer)
	if !ok {
		t.Fatalf("expected a single player request, got %T", g.Pending)
	}
	return pend
}
