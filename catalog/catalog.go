// Package catalog loads the static card tables the engine plays with.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/minaorangina/doomlings/deck"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var ErrInvalidCatalog = errors.New("invalid card catalog")

//go:embed data/cards.yaml
var embeddedCards []byte

// Catalog holds every card template.
type Catalog struct {
	BirthOfLife  deck.Age     `yaml:"birth_of_life"`
	Ages         []deck.Age   `yaml:"ages"`
	Catastrophes []deck.Age   `yaml:"catastrophes"`
	Traits       []deck.Trait `yaml:"traits"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog, parsed once per process.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(embeddedCards)
	})
	return defaultCatalog, defaultErr
}

// MustDefault is Default for callers that cannot run without cards.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes a catalog and normalises its colors.
func Parse(b []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if c.BirthOfLife.Name == "" {
		return nil, fmt.Errorf("%w: birth_of_life is required", ErrInvalidCatalog)
	}
	if len(c.Traits) == 0 {
		return nil, fmt.Errorf("%w: no traits", ErrInvalidCatalog)
	}

	seen := map[string]bool{}
	for i := range c.Traits {
		t := &c.Traits[i]
		if seen[t.Name] {
			return nil, fmt.Errorf("%w: duplicate trait %q", ErrInvalidCatalog, t.Name)
		}
		seen[t.Name] = true
		t.Color = NormaliseColor(string(t.Color))
		if !t.Color.Valid() {
			return nil, fmt.Errorf("%w: trait %q has unknown color %q", ErrInvalidCatalog, t.Name, t.Color)
		}
		normaliseParams(t.Actions)
		normaliseParams(t.PlayConditions)
		if t.Bonus != nil {
			normaliseParam(t.Bonus)
		}
	}
	for _, ages := range [][]deck.Age{c.Ages, c.Catastrophes} {
		for i := range ages {
			normaliseParams(ages[i].TurnEffects)
			normaliseParams(ages[i].InstantEffects)
			normaliseParams(ages[i].CatastropheEffects)
			if ages[i].WorldEndEffect != nil {
				normaliseParam(ages[i].WorldEndEffect)
			}
		}
	}
	return c, nil
}

var titler = cases.Title(language.English)

// NormaliseColor maps any casing of a color or joined colors ("blue_green")
// onto the canonical tags ("Blue_Green"). Empty means Colorless.
func NormaliseColor(raw string) deck.Color {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return deck.Colorless
	}
	parts := strings.Split(raw, "_")
	for i, p := range parts {
		parts[i] = titler.String(strings.ToLower(p))
	}
	return deck.Color(strings.Join(parts, "_"))
}

func normaliseParams(effects []deck.Effect) {
	for i := range effects {
		normaliseParam(&effects[i])
	}
}

func normaliseParam(e *deck.Effect) {
	if e.Params.Color != "" {
		e.Params.Color = NormaliseColor(string(e.Params.Color))
	}
	if e.Params.RestrictedAttribute == "color" {
		e.Params.RestrictedValue = string(NormaliseColor(e.Params.RestrictedValue))
	}
}

// Trait looks a trait template up by name.
func (c *Catalog) Trait(name string) (deck.Trait, bool) {
	for _, t := range c.Traits {
		if t.Name == name {
			return t, true
		}
	}
	return deck.Trait{}, false
}

// Age looks an age or catastrophe up by name.
func (c *Catalog) Age(name string) (deck.Age, bool) {
	if c.BirthOfLife.Name == name {
		return c.BirthOfLife, true
	}
	for _, ages := range [][]deck.Age{c.Ages, c.Catastrophes} {
		for _, a := range ages {
			if a.Name == name {
				return a, true
			}
		}
	}
	return deck.Age{}, false
}

// Validate reports every effect name the engine does not know. Unknown names
// are played as no-ops, so they are logged rather than rejected.
func (c *Catalog) Validate(logger *log.Logger) []string {
	problems := []string{}
	check := func(owner, family string, e deck.Effect, known bool) {
		if !known {
			problems = append(problems, fmt.Sprintf("%s: unknown %s %q", owner, family, e.Name))
		}
	}

	for _, t := range c.Traits {
		for _, e := range t.Actions {
			_, ok := deck.LookupAction(e.Name)
			check(t.Name, "action", e, ok)
		}
		for _, e := range t.Effects {
			_, ok := deck.LookupPassive(e.Name)
			check(t.Name, "effect", e, ok)
		}
		for _, e := range t.PlayConditions {
			_, ok := deck.LookupCondition(e.Name)
			check(t.Name, "play condition", e, ok)
		}
		if t.Bonus != nil {
			_, ok := deck.LookupBonus(t.Bonus.Name)
			check(t.Name, "bonus", *t.Bonus, ok)
		}
		if t.WorldsEnd != nil {
			_, ok := deck.LookupTraitWorldsEnd(t.WorldsEnd.Name)
			check(t.Name, "world's end effect", *t.WorldsEnd, ok)
		}
		if t.Persistent != nil {
			_, ok := deck.LookupPersistent(t.Persistent.Name)
			check(t.Name, "persistent effect", *t.Persistent, ok)
		}
	}

	ages := append([]deck.Age{c.BirthOfLife}, c.Ages...)
	ages = append(ages, c.Catastrophes...)
	for _, a := range ages {
		for _, e := range a.TurnEffects {
			_, ok := deck.LookupTurnEffect(e.Name)
			check(a.Name, "turn effect", e, ok)
		}
		for _, e := range a.InstantEffects {
			_, ok := deck.LookupInstant(e.Name)
			check(a.Name, "instant effect", e, ok)
		}
		for _, e := range a.CatastropheEffects {
			_, ok := deck.LookupCatastrophe(e.Name)
			check(a.Name, "catastrophe effect", e, ok)
		}
		if a.WorldEndEffect != nil {
			_, ok := deck.LookupWorldEnd(a.WorldEndEffect.Name)
			check(a.Name, "world's end effect", *a.WorldEndEffect, ok)
		}
	}

	if logger != nil {
		for _, p := range problems {
			logger.Printf("catalog: %s", p)
		}
	}
	return problems
}
