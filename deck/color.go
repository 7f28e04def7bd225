package deck

import "strings"

// Color is a trait color tag. A card may carry several, joined with an underscore.
type Color string

const (
	Red       Color = "Red"
	Blue      Color = "Blue"
	Green     Color = "Green"
	Purple    Color = "Purple"
	Colorless Color = "Colorless"
)

// Colors lists the four real colors in their canonical order.
var Colors = []Color{Red, Blue, Green, Purple}

// AllColors includes Colorless.
var AllColors = []Color{Red, Blue, Green, Purple, Colorless}

// Split returns the individual color tags of a raw color.
func (c Color) Split() []Color {
	if c == "" {
		return []Color{Colorless}
	}
	parts := strings.Split(string(c), "_")
	colors := make([]Color, 0, len(parts))
	for _, p := range parts {
		colors = append(colors, Color(p))
	}
	return colors
}

// Has reports whether c carries the target tag.
// Colorless only matches a card that is exactly Colorless.
func (c Color) Has(target Color) bool {
	if c == "" {
		c = Colorless
	}
	if target == Colorless {
		return c == Colorless
	}
	for _, tag := range c.Split() {
		if tag == target {
			return true
		}
	}
	return false
}

// SharesAny reports whether two raw colors have at least one tag in common.
func (c Color) SharesAny(other Color) bool {
	for _, tag := range c.Split() {
		if other.Has(tag) {
			return true
		}
	}
	return false
}

// Valid reports whether every tag in c is a known color.
func (c Color) Valid() bool {
	for _, tag := range c.Split() {
		known := false
		for _, k := range AllColors {
			if tag == k {
				known = true
				break
			}
		}
		if !known {
			return false
		}
	}
	return true
}
