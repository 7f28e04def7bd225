package deck

import "fmt"

// Trait is the immutable template shared by every copy of a trait card.
type Trait struct {
	Name           string    `json:"name" yaml:"name"`
	Face           FaceValue `json:"faceValue" yaml:"face_value"`
	Color          Color     `json:"color" yaml:"color"`
	Expansion      string    `json:"expansion,omitempty" yaml:"expansion"`
	Copies         int       `json:"-" yaml:"copies"`
	Dominant       bool      `json:"isDominant,omitempty" yaml:"dominant"`
	Actions        []Effect  `json:"actions,omitempty" yaml:"actions"`
	Effects        []Effect  `json:"effects,omitempty" yaml:"effects"`
	RemoveEffects  []Effect  `json:"removeEffects,omitempty" yaml:"remove_effects"`
	Bonus          *Effect   `json:"bonusPoints,omitempty" yaml:"bonus"`
	WorldsEnd      *Effect   `json:"worldsEndEffect,omitempty" yaml:"worlds_end"`
	PlayConditions []Effect  `json:"playConditions,omitempty" yaml:"play_conditions"`
	Persistent     *Effect   `json:"persistentEffect,omitempty" yaml:"persistent"`
	// PlayWhen names an out-of-turn trigger. It is carried for display only.
	PlayWhen string `json:"playWhen,omitempty" yaml:"play_when"`

	ActionDescription      string `json:"actionDescription,omitempty" yaml:"action_description"`
	BonusDescription       string `json:"bonusDescription,omitempty" yaml:"bonus_description"`
	RequirementDescription string `json:"requirementDescription,omitempty" yaml:"requirement_description"`
	WorldsEndDescription   string `json:"worldsEndDescription,omitempty" yaml:"worlds_end_description"`
	PersistentDescription  string `json:"persistentDescription,omitempty" yaml:"persistent_description"`
}

// Card is one physical copy of a trait.
type Card struct {
	Trait
	InstanceID string `json:"instanceId"`
}

// CopyCount returns how many copies of the trait go into a deck.
func (t Trait) CopyCount() int {
	if t.Copies <= 0 {
		return 1
	}
	return t.Copies
}

// IsColor reports whether the trait carries the given color tag.
func (t Trait) IsColor(c Color) bool {
	return t.Color.Has(c)
}

// HasActions reports whether the trait does something when played.
func (t Trait) HasActions() bool {
	return len(t.Actions) > 0
}

// Effectless reports whether the trait has no actions, effects, bonus,
// world's end or persistent rule.
func (t Trait) Effectless() bool {
	return len(t.Actions) == 0 &&
		len(t.Effects) == 0 &&
		t.Bonus == nil &&
		t.WorldsEnd == nil &&
		t.Persistent == nil
}

// CarriesEffect reports whether the trait counts as a card "with an effect"
// for hand-counting bonuses.
func (t Trait) CarriesEffect() bool {
	return len(t.Actions) > 0 || t.Dominant || t.Bonus != nil || len(t.Effects) > 0
}

// HasPersistent reports whether the trait's persistent rule is kind.
func (t Trait) HasPersistent(kind PersistentKind) bool {
	if t.Persistent == nil {
		return false
	}
	k, ok := LookupPersistent(t.Persistent.Name)
	return ok && k == kind
}

// ReverseEffects returns the effects that undo this trait's passive effects
// when it leaves a pile.
func (t Trait) ReverseEffects() []Effect {
	if len(t.RemoveEffects) > 0 {
		return t.RemoveEffects
	}
	return Negated(t.Effects)
}

func (c Card) String() string {
	return fmt.Sprintf("%s (%s, %s)", c.Name, c.Color, c.Face)
}
