package game

import (
	"encoding/json"
	"fmt"

	"github.com/minaorangina/doomlings/deck"
)

// snapshot is the wire form of a Game.
type snapshot struct {
	ID                   string           `json:"gameId"`
	State                State            `json:"state"`
	Phase                Phase            `json:"turnPhase"`
	Players              []*Player        `json:"players"`
	CurrentPlayerIndex   int              `json:"currentPlayerIndex"`
	FirstPlayerIndex     int              `json:"firstPlayerIndex"`
	Round                int              `json:"round"`
	CatastropheCount     int              `json:"catastropheCount"`
	AgeDeck              []deck.Age       `json:"ageDeck"`
	TraitDeck            []deck.Card      `json:"traitDeck"`
	DiscardPile          []deck.Card      `json:"discardPile"`
	CurrentAge           *deck.Age        `json:"currentAge,omitempty"`
	ResolvedCatastrophes []deck.Age       `json:"resolvedCatastrophes"`
	Rules                RoundRules       `json:"rules"`
	PlayedThisRound      []string         `json:"playersPlayedThisRound"`
	Pending              *pendingEnvelope `json:"pendingAction,omitempty"`
	Log                  []LogEntry       `json:"actionLog"`
	Winners              []string         `json:"winners,omitempty"`
	Config               Config           `json:"config"`
}

// Serialize encodes the whole game.
func (g *Game) Serialize() ([]byte, error) {
	if g == nil {
		return nil, ErrNilGame
	}
	return json.Marshal(snapshot{
		ID:                   g.ID,
		State:                g.State,
		Phase:                g.Phase,
		Players:              g.Players,
		CurrentPlayerIndex:   g.CurrentPlayerIndex,
		FirstPlayerIndex:     g.FirstPlayerIndex,
		Round:                g.Round,
		CatastropheCount:     g.CatastropheCount,
		AgeDeck:              g.AgeDeck,
		TraitDeck:            g.TraitDeck,
		DiscardPile:          g.DiscardPile,
		CurrentAge:           g.CurrentAge,
		ResolvedCatastrophes: g.ResolvedCatastrophes,
		Rules:                g.Rules,
		PlayedThisRound:      setToSortedSlice(g.PlayedThisRound),
		Pending:              wrapPending(g.Pending),
		Log:                  g.Log,
		Winners:              g.Winners,
		Config:               g.Config,
	})
}

// Deserialize rebuilds a game from Serialize output. opts supplies the
// collaborators that are not part of the snapshot; opts.ID and opts.Config
// are ignored.
func Deserialize(data []byte, opts GameOpts) (*Game, error) {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding game: %w", err)
	}
	g := &Game{
		ID:                   s.ID,
		State:                s.State,
		Phase:                s.Phase,
		Players:              s.Players,
		CurrentPlayerIndex:   s.CurrentPlayerIndex,
		FirstPlayerIndex:     s.FirstPlayerIndex,
		Round:                s.Round,
		CatastropheCount:     s.CatastropheCount,
		AgeDeck:              nonNilAges(s.AgeDeck),
		TraitDeck:            nonNilCards(s.TraitDeck),
		DiscardPile:          nonNilCards(s.DiscardPile),
		CurrentAge:           s.CurrentAge,
		ResolvedCatastrophes: nonNilAges(s.ResolvedCatastrophes),
		Rules:                s.Rules,
		PlayedThisRound:      sliceToSet(s.PlayedThisRound),
		Pending:              s.Pending.unwrap(),
		Log:                  s.Log,
		Winners:              s.Winners,
		Config:               s.Config.withDefaults(),
	}
	if g.Players == nil {
		g.Players = []*Player{}
	}
	for _, p := range g.Players {
		p.Hand = nonNilCards(p.Hand)
		p.TraitPile = nonNilCards(p.TraitPile)
	}
	if g.Log == nil {
		g.Log = []LogEntry{}
	}
	if g.Rules.Restrictions == nil {
		g.Rules.Restrictions = []deck.Effect{}
	}
	opts.ID = g.ID
	g.attach(opts)
	return g, nil
}

func nonNilCards(c []deck.Card) []deck.Card {
	if c == nil {
		return []deck.Card{}
	}
	return c
}

func nonNilAges(a []deck.Age) []deck.Age {
	if a == nil {
		return []deck.Age{}
	}
	return a
}
