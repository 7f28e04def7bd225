package deck

// Scope names the players an effect reaches, relative to the acting player.
type Scope string

const (
	ScopeSelf      Scope = "self"
	ScopeAll       Scope = "all"
	ScopeOpponents Scope = "opponents"
	ScopeOpponent  Scope = "opponent"
)

// Effect is one declarative {name, params} step on a card or age.
type Effect struct {
	Name   string `json:"name" yaml:"name"`
	Params Params `json:"params,omitempty" yaml:"params,omitempty"`
}

// Params holds every parameter any effect family understands.
// Zero values mean "not set" and fall back to each effect's default.
type Params struct {
	Affected      Scope  `json:"affected_players,omitempty" yaml:"affected_players,omitempty"`
	Value         int    `json:"value,omitempty" yaml:"value,omitempty"`
	NumCards      int    `json:"num_cards,omitempty" yaml:"num_cards,omitempty"`
	NumTraits     int    `json:"num_traits,omitempty" yaml:"num_traits,omitempty"`
	Color         Color  `json:"color,omitempty" yaml:"color,omitempty"`
	RandomDiscard bool   `json:"random_discard,omitempty" yaml:"random_discard,omitempty"`
	IgnoreActions bool   `json:"ignore_actions,omitempty" yaml:"ignore_actions,omitempty"`
	SameColor     *bool  `json:"same_color,omitempty" yaml:"same_color,omitempty"`
	FaceValue     *int   `json:"face_value,omitempty" yaml:"face_value,omitempty"`
	CompareType   string `json:"compare_type,omitempty" yaml:"compare_type,omitempty"`
	RevealCount   int    `json:"reveal_count,omitempty" yaml:"reveal_count,omitempty"`
	Every         int    `json:"every,omitempty" yaml:"every,omitempty"`
	Expansion     string `json:"expansion,omitempty" yaml:"expansion,omitempty"`
	CardName      string `json:"card_name,omitempty" yaml:"card_name,omitempty"`
	Pattern       string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MaxCards      int    `json:"max_cards,omitempty" yaml:"max_cards,omitempty"`
	CardType      string `json:"card_type,omitempty" yaml:"card_type,omitempty"`
	Location      string `json:"location,omitempty" yaml:"location,omitempty"`
	TargetPlayer  string `json:"target_player,omitempty" yaml:"target_player,omitempty"`

	RestrictedAttribute string `json:"restricted_attribute,omitempty" yaml:"restricted_attribute,omitempty"`
	RestrictedValue     string `json:"restricted_value,omitempty" yaml:"restricted_value,omitempty"`
	RestrictedType      string `json:"restricted_type,omitempty" yaml:"restricted_type,omitempty"`
}

// Scope returns the affected players, defaulting to self.
func (p Params) Scope() Scope {
	if p.Affected == "" {
		return ScopeSelf
	}
	return p.Affected
}

// ValueOr returns Value, or def when Value is unset.
func (p Params) ValueOr(def int) int {
	if p.Value == 0 {
		return def
	}
	return p.Value
}

// NumCardsOr returns NumCards, or def when NumCards is unset.
func (p Params) NumCardsOr(def int) int {
	if p.NumCards == 0 {
		return def
	}
	return p.NumCards
}

// Compare applies CompareType to a face value against the FaceValue threshold.
// Unknown comparisons never match.
func (p Params) Compare(v int) bool {
	if p.FaceValue == nil {
		return false
	}
	threshold := *p.FaceValue
	switch p.CompareType {
	case "greater_than":
		return v > threshold
	case "greater_than_or_equal":
		return v >= threshold
	case "less_than":
		return v < threshold
	case "less_than_or_equal":
		return v <= threshold
	case "equal":
		return v == threshold
	}
	return false
}

// Negated returns a copy of the effect list with every gene-pool value sign-flipped.
func Negated(effects []Effect) []Effect {
	out := make([]Effect, 0, len(effects))
	for _, e := range effects {
		if kind, ok := LookupPassive(e.Name); !ok || kind != PassiveModifyGenePool {
			continue
		}
		neg := e
		neg.Params.Value = -e.Params.Value
		out = append(out, neg)
	}
	return out
}
