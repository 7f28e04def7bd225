package deck

// AgeKind separates ordinary ages from catastrophes.
type AgeKind string

const (
	KindAge         AgeKind = "age"
	KindCatastrophe AgeKind = "catastrophe"
)

// Age is an age or catastrophe card. Ages carry round rules and one-shot
// effects; catastrophes carry a permanent gene pool shift, a round effect and
// a deferred world's end effect.
type Age struct {
	Kind               AgeKind  `json:"type" yaml:"type"`
	Name               string   `json:"name" yaml:"name"`
	Description        string   `json:"description,omitempty" yaml:"description"`
	Expansion          string   `json:"expansion,omitempty" yaml:"expansion"`
	TurnEffects        []Effect `json:"turnEffects,omitempty" yaml:"turn_effects"`
	InstantEffects     []Effect `json:"instantEffects,omitempty" yaml:"instant_effects"`
	GenePoolEffect     int      `json:"genePoolEffect,omitempty" yaml:"gene_pool_effect"`
	CatastropheEffects []Effect `json:"catastropheEffects,omitempty" yaml:"catastrophe_effects"`
	WorldEndEffect     *Effect  `json:"worldEndEffect,omitempty" yaml:"world_end_effect"`
}

// IsCatastrophe reports whether the card is a catastrophe.
func (a Age) IsCatastrophe() bool {
	return a.Kind == KindCatastrophe
}
