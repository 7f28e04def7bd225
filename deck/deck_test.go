package deck_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/minaorangina/doomlings/deck"
	utils "github.com/minaorangina/doomlings/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func someAges(n int) []deck.Age {
	ages := make([]deck.Age, n)
	for i := range ages {
		ages[i] = deck.Age{Kind: deck.KindAge, Name: fmt.Sprintf("age-%d", i)}
	}
	return ages
}

func someCatastrophes(n int) []deck.Age {
	cats := make([]deck.Age, n)
	for i := range cats {
		cats[i] = deck.Age{Kind: deck.KindCatastrophe, Name: fmt.Sprintf("cat-%d", i), GenePoolEffect: -1}
	}
	return cats
}

func TestShuffle(t *testing.T) {
	t.Run("does not mutate its input", func(t *testing.T) {
		in := []int{1, 2, 3, 4, 5, 6, 7, 8}
		before := append([]int{}, in...)

		out := deck.Shuffle(rand.New(rand.NewSource(1)), in)

		utils.AssertDeepEqual(t, in, before)
		assert.ElementsMatch(t, before, out)
	})

	t.Run("same seed, same order", func(t *testing.T) {
		in := []int{1, 2, 3, 4, 5, 6, 7, 8}
		a := deck.Shuffle(rand.New(rand.NewSource(7)), in)
		b := deck.Shuffle(rand.New(rand.NewSource(7)), in)
		utils.AssertDeepEqual(t, a, b)
	})
}

func TestBuildAgeDeck(t *testing.T) {
	birth := deck.Age{Kind: deck.KindAge, Name: "The Birth of Life"}

	t.Log("Given nine ages and five catastrophes")
	rng := rand.New(rand.NewSource(42))

	t.Log("When the age deck is built")
	d := deck.BuildAgeDeck(rng, birth, someAges(9), someCatastrophes(5), 3, 3)

	t.Log("Then birth comes first and every section of four holds one catastrophe")
	require.Len(t, d, 13)
	utils.AssertEqual(t, d[0].Name, birth.Name)

	for s := 0; s < 3; s++ {
		section := d[1+s*4 : 1+(s+1)*4]
		cats := 0
		for _, a := range section {
			if a.IsCatastrophe() {
				cats++
			}
		}
		utils.AssertEqual(t, cats, 1)
	}

	t.Log("And no age appears twice")
	seen := map[string]bool{}
	for _, a := range d {
		assert.False(t, seen[a.Name], a.Name)
		seen[a.Name] = true
	}
}

func TestBuildAgeDeckShortOnAges(t *testing.T) {
	d := deck.BuildAgeDeck(rand.New(rand.NewSource(1)), deck.Age{Name: "birth"}, someAges(4), someCatastrophes(3), 3, 3)

	cats := 0
	for _, a := range d {
		if a.IsCatastrophe() {
			cats++
		}
	}
	utils.AssertEqual(t, cats, 3)
	utils.AssertEqual(t, len(d), 1+4+3)
	assert.False(t, d[0].IsCatastrophe())
}

func TestBuildTraitDeck(t *testing.T) {
	traits := []deck.Trait{
		{Name: "Gills", Face: deck.Fixed(1), Color: deck.Blue},
		{Name: "Tentacles", Face: deck.Fixed(1), Color: deck.Blue, Copies: 2},
		{Name: "Fortunate", Face: deck.Variable(), Color: deck.Green, Copies: 3},
	}

	cards := deck.BuildTraitDeck(rand.New(rand.NewSource(3)), traits, nil)

	require.Len(t, cards, 6)
	utils.AssertUniqueCards(t, cards)
	counts := map[string]int{}
	for _, c := range cards {
		utils.AssertNotEmptyString(t, c.InstanceID)
		counts[c.Name]++
	}
	utils.AssertDeepEqual(t, counts, map[string]int{"Gills": 1, "Tentacles": 2, "Fortunate": 3})
}

func TestColorHas(t *testing.T) {
	tt := []struct {
		raw    deck.Color
		target deck.Color
		want   bool
	}{
		{deck.Blue, deck.Blue, true},
		{"Blue_Green", deck.Green, true},
		{"Blue_Green", deck.Red, false},
		{deck.Colorless, deck.Colorless, true},
		{"", deck.Colorless, true},
		{"Blue_Green", deck.Colorless, false},
	}

	for _, tc := range tt {
		t.Run(fmt.Sprintf("%s has %s", tc.raw, tc.target), func(t *testing.T) {
			utils.AssertEqual(t, tc.raw.Has(tc.target), tc.want)
		})
	}
}

func TestTraitHelpers(t *testing.T) {
	saliva := deck.Trait{
		Name:    "Saliva",
		Effects: []deck.Effect{{Name: "modify_gene_pool", Params: deck.Params{Affected: deck.ScopeSelf, Value: 1}}},
	}
	rev := saliva.ReverseEffects()
	require.Len(t, rev, 1)
	utils.AssertEqual(t, rev[0].Params.Value, -1)

	assert.True(t, deck.Trait{Name: "Gills"}.Effectless())
	assert.False(t, saliva.Effectless())

	endurance := deck.Trait{Persistent: &deck.Effect{Name: "cannot_be_removed"}}
	assert.True(t, endurance.HasPersistent(deck.PersistentCannotBeRemoved))
	assert.False(t, endurance.HasPersistent(deck.PersistentDrawAtRoundStart))
}

func TestLookupKinds(t *testing.T) {
	k, ok := deck.LookupAction("steal_trait")
	assert.True(t, ok)
	utils.AssertEqual(t, k, deck.ActionStealTrait)
	utils.AssertEqual(t, k.String(), "steal_trait")

	_, ok = deck.LookupBonus("bonus_not_a_thing")
	assert.False(t, ok)

	for kind, name := range deck.BonusNames {
		got, ok := deck.LookupBonus(name)
		assert.True(t, ok)
		utils.AssertEqual(t, got, kind)
	}
}
