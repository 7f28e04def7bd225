package scoring

import (
	"strings"

	"github.com/minaorangina/doomlings/deck"
)

func countName(cards []deck.Card, pattern string) int {
	n := 0
	for _, c := range cards {
		if strings.Contains(c.Name, pattern) {
			n++
		}
	}
	return n
}

// CountColor counts cards carrying the color tag.
func CountColor(cards []deck.Card, color deck.Color) int {
	return countColor(cards, color)
}

func countColor(cards []deck.Card, color deck.Color) int {
	n := 0
	for _, c := range cards {
		if c.IsColor(color) {
			n++
		}
	}
	return n
}

func countDominant(cards []deck.Card) int {
	n := 0
	for _, c := range cards {
		if c.Dominant {
			n++
		}
	}
	return n
}

func countExpansion(cards []deck.Card, expansion string) int {
	n := 0
	for _, c := range cards {
		if c.Expansion == expansion {
			n++
		}
	}
	return n
}

func countNegative(cards []deck.Card) int {
	n := 0
	for _, c := range cards {
		if BaseFaceValue(cards, c) < 0 {
			n++
		}
	}
	return n
}

func colorCounts(cards []deck.Card) map[deck.Color]int {
	counts := map[deck.Color]int{}
	for _, c := range cards {
		for _, tag := range c.Color.Split() {
			if tag != deck.Colorless {
				counts[tag]++
			}
		}
	}
	return counts
}

// CountUniqueColors counts the distinct real colors across cards.
func CountUniqueColors(cards []deck.Card) int {
	return countUniqueColors(cards)
}

func countUniqueColors(cards []deck.Card) int {
	counts := colorCounts(cards)
	n := 0
	for _, color := range deck.Colors {
		if counts[color] > 0 {
			n++
		}
	}
	return n
}

func hasAllColors(cards []deck.Card) bool {
	return countUniqueColors(cards) == len(deck.Colors)
}

// lowestColorCount is the smallest non-zero color count, or 0 when fewer
// than two colors are present.
func lowestColorCount(cards []deck.Card) int {
	counts := colorCounts(cards)
	present := 0
	lowest := 0
	for _, color := range deck.Colors {
		n := counts[color]
		if n == 0 {
			continue
		}
		present++
		if lowest == 0 || n < lowest {
			lowest = n
		}
	}
	if present < 2 {
		return 0
	}
	return lowest
}

// hasMost reports whether seat strictly leads every other player on metric.
func hasMost(t Table, seat Seat, metric func(Seat) int) bool {
	mine := metric(seat)
	for _, other := range t.Players {
		if other.ID != seat.ID && metric(other) >= mine {
			return false
		}
	}
	return true
}
