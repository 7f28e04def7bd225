// Package scoring computes scores from a read-only snapshot of the table.
package scoring

import (
	"log"
	"os"

	"github.com/minaorangina/doomlings/deck"
)

// Seat is one player's scoring-relevant state.
type Seat struct {
	ID          string
	Hand        []deck.Card
	TraitPile   []deck.Card
	GenePool    int
	ChosenColor deck.Color
}

// Table is the snapshot every rule reads from. Nothing here is mutated.
type Table struct {
	Players      []Seat
	Discard      []deck.Card
	Catastrophes int
}

// Seat returns the seat with the given id.
func (t Table) Seat(id string) (Seat, bool) {
	for _, s := range t.Players {
		if s.ID == id {
			return s, true
		}
	}
	return Seat{}, false
}

// Breakdown splits a score into its parts.
type Breakdown struct {
	Base   int `json:"base"`
	Bonus  int `json:"bonus"`
	Leader int `json:"leader"`
	Total  int `json:"total"`
}

// DefaultLeaderBonus is awarded to the sole gene pool leader.
const DefaultLeaderBonus = 3

// Scorer applies the scoring rules.
type Scorer struct {
	LeaderBonus int
	logger      *log.Logger
}

// New returns a Scorer. A nil logger writes to stderr.
func New(leaderBonus int, logger *log.Logger) *Scorer {
	if logger == nil {
		logger = log.New(os.Stderr, "[scoring] ", log.LstdFlags)
	}
	return &Scorer{LeaderBonus: leaderBonus, logger: logger}
}

// Score returns the total for one player, or 0 if they are not seated.
func (s *Scorer) Score(t Table, playerID string) int {
	return s.Breakdown(t, playerID).Total
}

// Breakdown returns the score for one player split into its parts.
func (s *Scorer) Breakdown(t Table, playerID string) Breakdown {
	seat, ok := t.Seat(playerID)
	if !ok {
		return Breakdown{}
	}
	b := Breakdown{}
	for _, c := range seat.TraitPile {
		b.Base += BaseFaceValue(seat.TraitPile, c)
		if c.Bonus != nil {
			b.Bonus += s.Bonus(t, seat, *c.Bonus)
		}
	}
	b.Leader = LeaderBonus(t, seat, s.LeaderBonus)
	b.Total = b.Base + b.Bonus + b.Leader
	return b
}

// BaseFaceValue returns a card's printed worth within pile. Variable cards are
// worth 0; copy-first-dominant cards take the value of the first other
// dominant in pile, or 0.
func BaseFaceValue(pile []deck.Card, c deck.Card) int {
	return baseFaceValue(pile, c, map[string]bool{})
}

func baseFaceValue(pile []deck.Card, c deck.Card, visiting map[string]bool) int {
	switch c.Face.Kind {
	case deck.FaceFixed:
		return c.Face.Value
	case deck.FaceCopyFirstDominant:
		visiting[c.InstanceID] = true
		for _, other := range pile {
			if other.Dominant && other.InstanceID != c.InstanceID {
				if visiting[other.InstanceID] {
					return 0
				}
				return baseFaceValue(pile, other, visiting)
			}
		}
	}
	return 0
}

// LeaderBonus returns amount if seat strictly leads every other player's gene
// pool with a positive value.
func LeaderBonus(t Table, seat Seat, amount int) int {
	if seat.GenePool <= 0 {
		return 0
	}
	for _, other := range t.Players {
		if other.ID != seat.ID && other.GenePool >= seat.GenePool {
			return 0
		}
	}
	return amount
}

// Bonus evaluates one bonus rule for seat. Unknown rules score 0.
func (s *Scorer) Bonus(t Table, seat Seat, rule deck.Effect) int {
	kind, ok := deck.LookupBonus(rule.Name)
	if !ok {
		s.logger.Printf("unknown bonus rule %q", rule.Name)
		return 0
	}
	p := rule.Params
	per := p.ValueOr(1)

	switch kind {
	case deck.BonusKidney:
		return countName(seat.TraitPile, "Kidney")
	case deck.BonusSwarm:
		n := 0
		for _, other := range t.Players {
			n += countName(other.TraitPile, "Swarm")
		}
		return n
	case deck.BonusForEveryColor:
		return countColor(seat.TraitPile, p.Color) * per
	case deck.BonusGenePool:
		return seat.GenePool
	case deck.BonusMaxGenePool:
		highest := 0
		for i, other := range t.Players {
			if i == 0 || other.GenePool > highest {
				highest = other.GenePool
			}
		}
		return highest
	case deck.BonusNumberCardsHand:
		if p.CardType == "effect" {
			n := 0
			for _, c := range seat.Hand {
				if c.CarriesEffect() {
					n++
				}
			}
			return n
		}
		return len(seat.Hand)
	case deck.BonusAllColorsTraitPile:
		if hasAllColors(seat.TraitPile) {
			return p.Value
		}
		return 0
	case deck.BonusNumberColors:
		cards := seat.TraitPile
		if p.Location == "hand" {
			cards = seat.Hand
		}
		return countUniqueColors(cards) * per
	case deck.BonusDominantHand:
		return countDominant(seat.Hand) * per
	case deck.BonusExpansionAllTraitPiles:
		n := 0
		for _, other := range t.Players {
			n += countExpansion(other.TraitPile, p.Expansion)
		}
		return n * per
	case deck.BonusFaceValue:
		if p.FaceValue == nil {
			return 0
		}
		n := 0
		for _, c := range seat.TraitPile {
			if BaseFaceValue(seat.TraitPile, c) == *p.FaceValue {
				n++
			}
		}
		return n * per
	case deck.BonusColorPairOpponents:
		n := 0
		for _, other := range t.Players {
			if other.ID != seat.ID {
				n += countColor(other.TraitPile, p.Color)
			}
		}
		return n / 2 * per
	case deck.BonusDiscardExpansion:
		return countExpansion(t.Discard, p.Expansion) * per
	case deck.BonusDiscardDominant:
		return countDominant(t.Discard) * per
	case deck.BonusEveryNegativeDiscard:
		every := p.Every
		if every <= 0 {
			every = 1
		}
		return countNegative(t.Discard) / every * per
	case deck.BonusMoreTraits:
		if hasMost(t, seat, func(s Seat) int { return len(s.TraitPile) }) {
			return p.Value
		}
		return 0
	case deck.BonusNumberTraits:
		return len(seat.TraitPile) * per
	case deck.BonusNegativeFaceValue:
		return countNegative(seat.TraitPile) * per
	case deck.BonusLowestColor:
		return lowestColorCount(seat.TraitPile) * per
	case deck.BonusColorPair:
		n := 0
		for _, count := range colorCounts(seat.TraitPile) {
			n += count / 2
		}
		return n * per
	case deck.BonusCatastropheCount:
		return t.Catastrophes * per
	case deck.BonusChosenColor:
		color := seat.ChosenColor
		if color == "" {
			color = deck.Red
		}
		return countColor(seat.TraitPile, color) * per
	case deck.BonusDominantTraitPile:
		return countDominant(seat.TraitPile) * per
	case deck.BonusColorMostTraits:
		count := func(s Seat) int { return countColor(s.TraitPile, p.Color) }
		if count(seat) > 0 && hasMost(t, seat, count) {
			return p.Value
		}
		return 0
	case deck.BonusColorAllTraitPiles:
		n := 0
		for _, other := range t.Players {
			n += countColor(other.TraitPile, p.Color)
		}
		return n * per
	}
	return 0
}
