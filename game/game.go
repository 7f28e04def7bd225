// Package game is the Doomlings rules engine: round and turn flow, effect
// resolution, pending player input and the per-player views of a match.
package game

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/minaorangina/doomlings/catalog"
	"github.com/minaorangina/doomlings/deck"
	"github.com/minaorangina/doomlings/scoring"
)

// State is the match lifecycle. It only moves forward.
type State string

const (
	StateLobby    State = "lobby"
	StatePlaying  State = "playing"
	StateFinished State = "finished"
)

// Phase is the step of the current turn.
type Phase string

const (
	PhaseWaiting     Phase = "waiting"
	PhasePlay        Phase = "play"
	PhaseAction      Phase = "action"
	PhaseStabilize   Phase = "stabilize"
	PhaseCatastrophe Phase = "catastrophe"
	PhaseFinished    Phase = "finished"
)

// LogEntry is one line of the in-game action log.
type LogEntry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// RoundRules are the restrictions and flags set by the current age.
// startNewRound replaces them wholesale.
type RoundRules struct {
	Restrictions                   []deck.Effect `json:"restrictions"`
	IgnoreActions                  bool          `json:"ignoreActions,omitempty"`
	StabilizeTarget                *int          `json:"stabilizeTarget,omitempty"`
	CardsPerTurn                   int           `json:"cardsPerTurn"`
	LastPlayedColor                deck.Color    `json:"lastPlayedColor,omitempty"`
	DrawAfterStabilize             int           `json:"drawAfterStabilize,omitempty"`
	OptionalStabilization          bool          `json:"optionalStabilization,omitempty"`
	OptionalDiscardBeforeStabilize int           `json:"optionalDiscardBeforeStabilize,omitempty"`
	ColorlessAllowsExtraPlay       bool          `json:"colorlessAllowsExtraPlay,omitempty"`
	EffectlessAllowsExtraPlay      bool          `json:"effectlessAllowsExtraPlay,omitempty"`
	PreviewNextAge                 bool          `json:"previewNextAge,omitempty"`
	ProtectTraits                  bool          `json:"protectTraits,omitempty"`
}

func freshRules() RoundRules {
	return RoundRules{Restrictions: []deck.Effect{}, CardsPerTurn: 1}
}

// Game is one match. It is not safe for concurrent use: callers serialize
// every command through a single owner.
type Game struct {
	ID                   string
	State                State
	Phase                Phase
	Players              []*Player
	CurrentPlayerIndex   int
	FirstPlayerIndex     int
	Round                int
	CatastropheCount     int
	AgeDeck              []deck.Age
	TraitDeck            []deck.Card
	DiscardPile          []deck.Card
	CurrentAge           *deck.Age
	ResolvedCatastrophes []deck.Age
	Rules                RoundRules
	PlayedThisRound      map[string]bool
	Pending              Pending
	Log                  []LogEntry
	Winners              []string
	Config               Config

	rng     *rand.Rand
	logger  *log.Logger
	catalog *catalog.Catalog
	scorer  *scoring.Scorer
	now     func() time.Time
	newID   func() string
}

// GameOpts configures a new or restored game. Zero fields take defaults.
type GameOpts struct {
	ID      string
	Config  Config
	Catalog *catalog.Catalog
	Rand    *rand.Rand
	Logger  *log.Logger
	Now     func() time.Time
	NewID   func() string
}

// NewGame returns a game in the lobby.
func NewGame(opts GameOpts) *Game {
	g := &Game{
		ID:                   opts.ID,
		State:                StateLobby,
		Phase:                PhaseWaiting,
		Players:              []*Player{},
		AgeDeck:              []deck.Age{},
		TraitDeck:            []deck.Card{},
		DiscardPile:          []deck.Card{},
		ResolvedCatastrophes: []deck.Age{},
		Rules:                freshRules(),
		PlayedThisRound:      map[string]bool{},
		Log:                  []LogEntry{},
		Config:               opts.Config.withDefaults(),
	}
	g.attach(opts)
	return g
}

// attach wires the non-serialized collaborators.
func (g *Game) attach(opts GameOpts) {
	g.rng = opts.Rand
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.logger = opts.Logger
	if g.logger == nil {
		g.logger = log.New(os.Stderr, "[game] ", log.LstdFlags)
	}
	g.catalog = opts.Catalog
	g.now = opts.Now
	if g.now == nil {
		g.now = time.Now
	}
	g.newID = opts.NewID
	if g.newID == nil {
		g.newID = deck.NewInstanceID
	}
	g.scorer = scoring.New(g.Config.GenePoolLeaderBonus, g.logger)
	if g.ID == "" {
		g.ID = g.newID()
	}
}

// AddPlayer seats a player in the lobby.
func (g *Game) AddPlayer(id, name string, isHost bool) (*Player, error) {
	if g == nil {
		return nil, ErrNilGame
	}
	if g.State != StateLobby {
		return nil, ErrGameStarted
	}
	if len(g.Players) >= g.Config.MaxPlayers {
		return nil, ErrGameFull
	}
	if g.Player(id) != nil {
		return nil, ErrDuplicatePlayer
	}
	p := NewPlayer(id, name, isHost)
	g.Players = append(g.Players, p)
	return p, nil
}

// RemovePlayer drops a player from the lobby. Once the game has started the
// player keeps their cards but forfeits every turn action.
func (g *Game) RemovePlayer(id string) error {
	if g == nil {
		return ErrNilGame
	}
	idx := g.playerIndex(id)
	if idx < 0 {
		return ErrPlayerNotFound
	}
	if g.State == StateLobby {
		g.Players = append(g.Players[:idx], g.Players[idx+1:]...)
		return nil
	}

	p := g.Players[idx]
	p.Connected = false
	g.log("%s left the game", p.Name)
	if g.State != StatePlaying {
		return nil
	}

	switch pend := g.Pending.(type) {
	case *AwaitingPlayer:
		if pend.PlayerID == id {
			g.abandon(p, pend.Request.Source, string(pend.Request.Effect), pend.Remaining)
		}
	case *AwaitingPlayers:
		if pend.SourcePlayerID == id {
			g.abandon(p, pend.SourceCard, string(EffectStealRevealedAndPlay), pend.Remaining)
		} else if part := pend.participant(id); part != nil && !part.Responded {
			part.Responded = true
			if pend.allResponded() {
				g.resolveReveals(pend)
			}
		}
	}

	if g.Phase == PhaseCatastrophe {
		return nil
	}
	if idx == g.CurrentPlayerIndex && g.Pending == nil {
		g.PlayedThisRound[id] = true
		p.NeedsStabilize = false
		g.advanceTurn()
	}
	return nil
}

// abandon clears the request of a player who left. The effect that was
// waiting and every effect queued behind it are dropped and logged.
func (g *Game) abandon(p *Player, src deck.Card, waiting string, remaining []Frame) {
	skipped := []string{waiting}
	for _, f := range remaining {
		for _, e := range f.Effects {
			skipped = append(skipped, e.Name)
		}
	}
	g.Pending = nil
	g.log("%s left before %s resolved; skipped %s", p.Name, src.Name, strings.Join(skipped, ", "))
	g.logger.Printf("game %s: dropped %d effect(s) of %s for %s: %v", g.ID, len(skipped), src.Name, p.ID, skipped)
}

// StartGame builds the decks, picks a random first player and opens round 1.
func (g *Game) StartGame() error {
	if g == nil {
		return ErrNilGame
	}
	if g.State != StateLobby {
		return ErrGameStarted
	}
	if len(g.Players) < g.Config.MinPlayers {
		return ErrTooFewPlayers
	}
	if g.catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			return err
		}
		g.catalog = c
	}

	g.State = StatePlaying
	g.AgeDeck = deck.BuildAgeDeck(g.rng, g.catalog.BirthOfLife, g.catalog.Ages, g.catalog.Catastrophes,
		g.Config.Catastrophes, g.Config.AgesPerSection)
	g.TraitDeck = deck.BuildTraitDeck(g.rng, g.catalog.Traits, g.newID)
	g.DiscardPile = []deck.Card{}
	for _, p := range g.Players {
		p.Ready = true
	}

	g.FirstPlayerIndex = g.rng.Intn(len(g.Players))
	g.CurrentPlayerIndex = g.FirstPlayerIndex
	g.startNewRound()
	g.log("Game started with %d players!", len(g.Players))
	return nil
}

// Player returns the player with id, or nil.
func (g *Game) Player(id string) *Player {
	if i := g.playerIndex(id); i >= 0 {
		return g.Players[i]
	}
	return nil
}

func (g *Game) playerIndex(id string) int {
	for i, p := range g.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// CurrentPlayer returns the seat whose turn it is.
func (g *Game) CurrentPlayer() *Player {
	if g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= len(g.Players) {
		return nil
	}
	return g.Players[g.CurrentPlayerIndex]
}

// turnPlayer checks that the game is running and that id holds the turn.
func (g *Game) turnPlayer(id string) (*Player, error) {
	if g.State != StatePlaying {
		return nil, ErrGameNotInProgress
	}
	p := g.Player(id)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	if cur := g.CurrentPlayer(); cur == nil || cur.ID != id {
		return nil, ErrNotYourTurn
	}
	return p, nil
}

// opponents lists every other player in seat order.
func (g *Game) opponents(of *Player) []*Player {
	out := []*Player{}
	for _, p := range g.Players {
		if p.ID != of.ID {
			out = append(out, p)
		}
	}
	return out
}

// inTurnOrder lists players starting from the first player.
func (g *Game) inTurnOrder() []*Player {
	n := len(g.Players)
	out := make([]*Player, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.Players[(g.FirstPlayerIndex+i)%n])
	}
	return out
}

func (g *Game) log(format string, args ...interface{}) {
	g.Log = append(g.Log, LogEntry{Time: g.now(), Message: fmt.Sprintf(format, args...)})
	if over := len(g.Log) - g.Config.LogLimit; over > 0 {
		g.Log = g.Log[over:]
	}
}

// table snapshots the state the scoring rules read.
func (g *Game) table() scoring.Table {
	t := scoring.Table{
		Players:      make([]scoring.Seat, 0, len(g.Players)),
		Discard:      g.DiscardPile,
		Catastrophes: g.CatastropheCount,
	}
	for _, p := range g.Players {
		t.Players = append(t.Players, scoring.Seat{
			ID:          p.ID,
			Hand:        p.Hand,
			TraitPile:   p.TraitPile,
			GenePool:    p.GenePool,
			ChosenColor: p.ChosenColor,
		})
	}
	return t
}

// ScoreOf returns a player's current score. Once the game is finished it
// includes world's end deltas.
func (g *Game) ScoreOf(p *Player) int {
	if g.State == StateFinished {
		return p.Score
	}
	return g.scorer.Score(g.table(), p.ID)
}
