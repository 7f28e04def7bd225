package deck

import (
	"math/rand"

	uuid "github.com/satori/go.uuid"
)

// NewInstanceID returns a fresh card instance id.
func NewInstanceID() string {
	return uuid.NewV4().String()
}

// Shuffle returns a uniformly shuffled copy of items. The input is left untouched.
func Shuffle[T any](rng *rand.Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// BuildAgeDeck deals the age deck: birth first, then one section per
// catastrophe. Each section holds perSection shuffled ages plus one catastrophe,
// shuffled together.
func BuildAgeDeck(rng *rand.Rand, birth Age, ages, catastrophes []Age, numCatastrophes, perSection int) []Age {
	shuffledAges := Shuffle(rng, ages)
	shuffledCats := Shuffle(rng, catastrophes)
	if numCatastrophes > len(shuffledCats) {
		numCatastrophes = len(shuffledCats)
	}

	out := []Age{birth}
	for s := 0; s < numCatastrophes; s++ {
		start, end := s*perSection, (s+1)*perSection
		if start > len(shuffledAges) {
			start = len(shuffledAges)
		}
		if end > len(shuffledAges) {
			end = len(shuffledAges)
		}
		section := make([]Age, 0, end-start+1)
		section = append(section, shuffledAges[start:end]...)
		section = append(section, shuffledCats[s])
		out = append(out, Shuffle(rng, section)...)
	}
	return out
}

// BuildTraitDeck mints CopyCount instances of every trait and shuffles them.
// newID defaults to NewInstanceID.
func BuildTraitDeck(rng *rand.Rand, traits []Trait, newID func() string) []Card {
	if newID == nil {
		newID = NewInstanceID
	}
	cards := []Card{}
	for _, t := range traits {
		for i := 0; i < t.CopyCount(); i++ {
			cards = append(cards, Card{Trait: t, InstanceID: newID()})
		}
	}
	return Shuffle(rng, cards)
}
