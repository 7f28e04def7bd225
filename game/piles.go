package game

import (
	"sort"

	"github.com/minaorangina/doomlings/deck"
)

func indexOf(cards []deck.Card, instanceID string) int {
	for i, c := range cards {
		if c.InstanceID == instanceID {
			return i
		}
	}
	return -1
}

// removeAt returns cards without the element at i, leaving the input's
// backing array untouched.
func removeAt(cards []deck.Card, i int) []deck.Card {
	out := make([]deck.Card, 0, len(cards)-1)
	out = append(out, cards[:i]...)
	return append(out, cards[i+1:]...)
}

// validIndices reports whether every index is in range and distinct.
func validIndices(indices []int, n int) bool {
	seen := map[int]struct{}{}
	for _, i := range indices {
		if i < 0 || i >= n {
			return false
		}
		if _, ok := seen[i]; ok {
			return false
		}
		seen[i] = struct{}{}
	}
	return true
}

// takeIndices removes the cards at indices and returns them in index order.
// Indices must already be validated.
func takeIndices(cards []deck.Card, indices []int) (rest, taken []deck.Card) {
	set := map[int]struct{}{}
	for _, i := range indices {
		set[i] = struct{}{}
	}
	rest = []deck.Card{}
	taken = []deck.Card{}
	for i, c := range cards {
		if _, ok := set[i]; ok {
			taken = append(taken, c)
			continue
		}
		rest = append(rest, c)
	}
	return rest, taken
}

func setToSortedSlice(set map[string]bool) []string {
	s := []string{}
	for key, ok := range set {
		if ok {
			s = append(s, key)
		}
	}
	sort.Strings(s)
	return s
}

func sliceToSet(s []string) map[string]bool {
	set := map[string]bool{}
	for _, key := range s {
		set[key] = true
	}
	return set
}

// drawCards takes up to n cards from the front of the trait deck. When the
// deck runs dry the discard pile is shuffled in to replace it.
func (g *Game) drawCards(n int) []deck.Card {
	drawn := []deck.Card{}
	for i := 0; i < n; i++ {
		if len(g.TraitDeck) == 0 {
			if len(g.DiscardPile) == 0 {
				break
			}
			g.TraitDeck = deck.Shuffle(g.rng, g.DiscardPile)
			g.DiscardPile = []deck.Card{}
			g.log("Discard pile reshuffled")
		}
		drawn = append(drawn, g.TraitDeck[0])
		g.TraitDeck = g.TraitDeck[1:]
	}
	return drawn
}

func (g *Game) draw(p *Player, n int) int {
	drawn := g.drawCards(n)
	p.Hand = append(p.Hand, drawn...)
	return len(drawn)
}

func (g *Game) discard(cards ...deck.Card) {
	g.DiscardPile = append(g.DiscardPile, cards...)
}

func (g *Game) discardRandom(p *Player, n int) int {
	done := 0
	for ; done < n && len(p.Hand) > 0; done++ {
		g.discard(p.takeFromHand(g.rng.Intn(len(p.Hand))))
	}
	return done
}

func (g *Game) discardHand(p *Player) int {
	n := len(p.Hand)
	g.discard(p.Hand...)
	p.Hand = []deck.Card{}
	return n
}

// stabilizeRandom draws or randomly discards to reach target.
func (g *Game) stabilizeRandom(p *Player, target int) {
	switch {
	case len(p.Hand) < target:
		g.draw(p, target-len(p.Hand))
	case len(p.Hand) > target:
		g.discardRandom(p, len(p.Hand)-target)
	}
}
