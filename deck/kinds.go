package deck

// Each effect family is a closed set of kinds. Card data refers to kinds by name;
// the Names maps are the only place a name is bound to a kind, and a name missing
// from them is reported by the catalog and treated as a no-op by the engine.

func invert[K comparable](names map[K]string) map[string]K {
	out := make(map[string]K, len(names))
	for k, name := range names {
		out[name] = k
	}
	return out
}

// ActionKind is an effect a trait performs when played.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionDrawCards
	ActionDiscardFromHand
	ActionDiscardFromTraitPile
	ActionPlayAnotherTrait
	ActionViewTopDeck
	ActionViewAgeDeck
	ActionViewOpponentHand
	ActionSearchDiscard
	ActionSearchDiscardAndPlay
	ActionSearchDiscardIgnoreAction
	ActionStealTrait
	ActionStealTraitAndStopAction
	ActionStealTraitAndPlayAction
	ActionStealRandomCard
	ActionReturnTraitToHand
	ActionProtectTraits
	ActionDiscardHandDrawNew
	ActionDiscardOpponentTrait
	ActionCopyOpponentTrait
	ActionPlayOpponentTraitAction
	ActionGiveCards
	ActionMoveTrait
	ActionSwapTrait
	ActionRearrangeTraits
	ActionDiscardHand
	ActionSkipStabilization
	ActionGiveTraitToOpponent
	ActionMutualDiscardTrait
	ActionDiscardColorFromHand
	ActionDrawAndPlayIfColor
	ActionSwapSelfWithOpponentTrait
	ActionMoveSelfToOpponent
	ActionOpponentsRevealStealPlay
)

var ActionNames = map[ActionKind]string{
	ActionDrawCards:                 "draw_cards",
	ActionDiscardFromHand:           "discard_card_from_hand",
	ActionDiscardFromTraitPile:      "discard_card_from_trait_pile",
	ActionPlayAnotherTrait:          "play_another_trait",
	ActionViewTopDeck:               "view_top_deck",
	ActionViewAgeDeck:               "view_age_deck",
	ActionViewOpponentHand:          "view_opponent_hand",
	ActionSearchDiscard:             "search_discard",
	ActionSearchDiscardAndPlay:      "search_discard_and_play",
	ActionSearchDiscardIgnoreAction: "search_discard_ignore_action",
	ActionStealTrait:                "steal_trait",
	ActionStealTraitAndStopAction:   "steal_trait_and_stop_action",
	ActionStealTraitAndPlayAction:   "steal_trait_and_play_action",
	ActionStealRandomCard:           "steal_random_card",
	ActionReturnTraitToHand:         "return_trait_to_hand",
	ActionProtectTraits:             "protect_traits",
	ActionDiscardHandDrawNew:        "discard_hand_draw_new",
	ActionDiscardOpponentTrait:      "discard_opponent_trait",
	ActionCopyOpponentTrait:         "copy_opponent_trait",
	ActionPlayOpponentTraitAction:   "play_opponent_trait_action",
	ActionGiveCards:                 "give_cards",
	ActionMoveTrait:                 "move_trait",
	ActionSwapTrait:                 "swap_trait",
	ActionRearrangeTraits:           "rearrange_traits",
	ActionDiscardHand:               "discard_hand",
	ActionSkipStabilization:         "skip_stabilization",
	ActionGiveTraitToOpponent:       "give_trait_to_opponent",
	ActionMutualDiscardTrait:        "mutual_discard_trait",
	ActionDiscardColorFromHand:      "discard_color_from_hand",
	ActionDrawAndPlayIfColor:        "draw_and_play_if_color",
	ActionSwapSelfWithOpponentTrait: "swap_self_with_opponent_trait",
	ActionMoveSelfToOpponent:        "move_self_to_opponent",
	ActionOpponentsRevealStealPlay:  "opponents_reveal_steal_play",
}

var NameToAction = invert(ActionNames)

func (k ActionKind) String() string { return ActionNames[k] }

// LookupAction resolves an action name.
func LookupAction(name string) (ActionKind, bool) {
	k, ok := NameToAction[name]
	return k, ok
}

// PassiveKind is an effect applied once when a trait enters a pile.
type PassiveKind int

const (
	PassiveUnknown PassiveKind = iota
	PassiveModifyGenePool
	PassiveDiscardHand
	PassiveSkipStabilization
)

var PassiveNames = map[PassiveKind]string{
	PassiveModifyGenePool:    "modify_gene_pool",
	PassiveDiscardHand:       "discard_hand",
	PassiveSkipStabilization: "skip_stabilization",
}

var NameToPassive = invert(PassiveNames)

func (k PassiveKind) String() string { return PassiveNames[k] }

func LookupPassive(name string) (PassiveKind, bool) {
	k, ok := NameToPassive[name]
	return k, ok
}

// PersistentKind is a standing property of a trait while it sits in a pile.
type PersistentKind int

const (
	PersistentUnknown PersistentKind = iota
	PersistentCannotBeRemoved
	PersistentDrawAtRoundStart
	PersistentIgnoreCatastropheEffects
	PersistentDrawIfDiscarded
)

var PersistentNames = map[PersistentKind]string{
	PersistentCannotBeRemoved:          "cannot_be_removed",
	PersistentDrawAtRoundStart:         "draw_at_round_start",
	PersistentIgnoreCatastropheEffects: "ignore_catastrophe_effects",
	PersistentDrawIfDiscarded:          "draw_if_discarded",
}

var NameToPersistent = invert(PersistentNames)

func (k PersistentKind) String() string { return PersistentNames[k] }

func LookupPersistent(name string) (PersistentKind, bool) {
	k, ok := NameToPersistent[name]
	return k, ok
}

// BonusKind is a scoring rule attached to a trait.
type BonusKind int

const (
	BonusUnknown BonusKind = iota
	BonusKidney
	BonusSwarm
	BonusForEveryColor
	BonusGenePool
	BonusMaxGenePool
	BonusNumberCardsHand
	BonusAllColorsTraitPile
	BonusNumberColors
	BonusDominantHand
	BonusExpansionAllTraitPiles
	BonusFaceValue
	BonusColorPairOpponents
	BonusDiscardExpansion
	BonusDiscardDominant
	BonusEveryNegativeDiscard
	BonusMoreTraits
	BonusNumberTraits
	BonusNegativeFaceValue
	BonusLowestColor
	BonusColorPair
	BonusCatastropheCount
	BonusChosenColor
	BonusDominantTraitPile
	BonusColorMostTraits
	BonusColorAllTraitPiles
)

var BonusNames = map[BonusKind]string{
	BonusKidney:                 "bonus_kidney",
	BonusSwarm:                  "bonus_swarm",
	BonusForEveryColor:          "bonus_for_every_color",
	BonusGenePool:               "bonus_gene_pool",
	BonusMaxGenePool:            "bonus_max_gene_pool",
	BonusNumberCardsHand:        "bonus_number_cards_hand",
	BonusAllColorsTraitPile:     "bonus_all_colors_trait_pile",
	BonusNumberColors:           "bonus_number_colors",
	BonusDominantHand:           "bonus_dominant_hand",
	BonusExpansionAllTraitPiles: "bonus_expansion_all_trait_piles",
	BonusFaceValue:              "bonus_face_value",
	BonusColorPairOpponents:     "bonus_color_pair_opponents",
	BonusDiscardExpansion:       "bonus_discard_expansion",
	BonusDiscardDominant:        "bonus_discard_dominant",
	BonusEveryNegativeDiscard:   "bonus_every_negative_discard",
	BonusMoreTraits:             "bonus_more_traits",
	BonusNumberTraits:           "bonus_number_traits",
	BonusNegativeFaceValue:      "bonus_negative_face_value",
	BonusLowestColor:            "bonus_lowest_color",
	BonusColorPair:              "bonus_color_pair",
	BonusCatastropheCount:       "bonus_catastrophe_count",
	BonusChosenColor:            "bonus_chosen_color",
	BonusDominantTraitPile:      "bonus_n_dominant",
	BonusColorMostTraits:        "bonus_color_most_traits",
	BonusColorAllTraitPiles:     "bonus_color_all_trait_piles",
}

var NameToBonus = invert(BonusNames)

func (k BonusKind) String() string { return BonusNames[k] }

func LookupBonus(name string) (BonusKind, bool) {
	k, ok := NameToBonus[name]
	return k, ok
}

// TurnEffectKind is a round-scoped rule set by an age.
type TurnEffectKind int

const (
	TurnUnknown TurnEffectKind = iota
	TurnAddRestriction
	TurnCannotPlaySameColor
	TurnOptionalStabilization
	TurnOptionalDiscardBeforeStabilize
	TurnColorlessAllowsExtraPlay
	TurnEffectlessAllowsExtraPlay
	TurnPreviewNextAge
	TurnProtectTraits
	TurnIgnoreActions
	TurnSetEndTurnNumberCards
)

var TurnEffectNames = map[TurnEffectKind]string{
	TurnAddRestriction:                 "add_turn_restriction",
	TurnCannotPlaySameColor:            "cannot_play_same_color",
	TurnOptionalStabilization:          "optional_stabilization",
	TurnOptionalDiscardBeforeStabilize: "optional_discard_before_stabilize",
	TurnColorlessAllowsExtraPlay:       "colorless_allows_extra_play",
	TurnEffectlessAllowsExtraPlay:      "effectless_allows_extra_play",
	TurnPreviewNextAge:                 "preview_next_age",
	TurnProtectTraits:                  "protect_traits",
	TurnIgnoreActions:                  "turn_ignore_actions",
	TurnSetEndTurnNumberCards:          "set_end_turn_number_cards",
}

var NameToTurnEffect = invert(TurnEffectNames)

func (k TurnEffectKind) String() string { return TurnEffectNames[k] }

func LookupTurnEffect(name string) (TurnEffectKind, bool) {
	k, ok := NameToTurnEffect[name]
	return k, ok
}

// InstantKind is a one-shot effect applied when an age is revealed.
type InstantKind int

const (
	InstantUnknown InstantKind = iota
	InstantModifyGenePool
	InstantDrawCards
	InstantDiscardFromHand
	InstantDealFromDiscardPile
	InstantStabilizeAllPlayers
	InstantModifyNumberCardsTurn
	InstantSetEndTurnNumberCards
	InstantTurnIgnoreActions
	InstantPlayHeroic
	InstantDrawCardAfterStabilize
	InstantStealRandomCardIfVampirism
	InstantDrawKeepOneDiscardTwo
)

var InstantNames = map[InstantKind]string{
	InstantModifyGenePool:             "modify_gene_pool",
	InstantDrawCards:                  "draw_cards",
	InstantDiscardFromHand:            "discard_card_from_hand",
	InstantDealFromDiscardPile:        "deal_from_discard_pile",
	InstantStabilizeAllPlayers:        "stabilize_all_players",
	InstantModifyNumberCardsTurn:      "modify_number_cards_turn",
	InstantSetEndTurnNumberCards:      "set_end_turn_number_cards",
	InstantTurnIgnoreActions:          "turn_ignore_actions",
	InstantPlayHeroic:                 "play_heroic",
	InstantDrawCardAfterStabilize:     "draw_card_after_stabilize",
	InstantStealRandomCardIfVampirism: "steal_random_card_if_vampirism",
	InstantDrawKeepOneDiscardTwo:      "draw_keep_1_discard_2",
}

var NameToInstant = invert(InstantNames)

func (k InstantKind) String() string { return InstantNames[k] }

func LookupInstant(name string) (InstantKind, bool) {
	k, ok := NameToInstant[name]
	return k, ok
}

// CatastropheKind is a round effect applied when a catastrophe resolves.
type CatastropheKind int

const (
	CatastropheUnknown CatastropheKind = iota
	CatastropheDrawForEveryColorType
	CatastropheDiscardForEveryColor
	CatastropheDiscardForEveryDominant
	CatastropheDiscardAllButN
	CatastropheDiscardHandAndStabilize
	CatastropheStabilizeAllThenDiscard
	CatastrophePassHandRight
	CatastrophePassHandLeft
	CatastropheDiscardHalfHand
	CatastropheGiveCardsToAdjacent
	CatastropheDiscardTraitFromPile
	CatastropheReverseTurnOrder
)

var CatastropheNames = map[CatastropheKind]string{
	CatastropheDrawForEveryColorType:   "draw_card_for_every_color_type",
	CatastropheDiscardForEveryColor:    "discard_card_from_hand_for_every_color",
	CatastropheDiscardForEveryDominant: "discard_card_from_hand_for_every_dominant",
	CatastropheDiscardAllButN:          "discard_all_but_n_cards",
	CatastropheDiscardHandAndStabilize: "discard_hand_and_stabilize",
	CatastropheStabilizeAllThenDiscard: "stabilize_all_then_discard",
	CatastrophePassHandRight:           "pass_hand_right",
	CatastrophePassHandLeft:            "pass_hand_left",
	CatastropheDiscardHalfHand:         "discard_half_hand",
	CatastropheGiveCardsToAdjacent:     "give_cards_to_adjacent_opponents",
	CatastropheDiscardTraitFromPile:    "discard_trait_from_pile",
	CatastropheReverseTurnOrder:        "reverse_turn_order",
}

var NameToCatastrophe = invert(CatastropheNames)

func (k CatastropheKind) String() string { return CatastropheNames[k] }

func LookupCatastrophe(name string) (CatastropheKind, bool) {
	k, ok := NameToCatastrophe[name]
	return k, ok
}

// WorldEndKind is a catastrophe's deferred effect applied at game end.
type WorldEndKind int

const (
	WorldEndUnknown WorldEndKind = iota
	WorldEndFewestTraits
	WorldEndForEveryColor
	WorldEndFaceValue
	WorldEndDiscardFromTraitPile
	WorldEndMissingColors
	WorldEndDiscardTraitFaceValue
	WorldEndColorlessWorthTwo
	WorldEndDrawAddFaceValue
	WorldEndMostTraits
)

var WorldEndNames = map[WorldEndKind]string{
	WorldEndFewestTraits:          "modify_world_end_points_fewest_traits",
	WorldEndForEveryColor:         "modify_world_end_points_for_every_color",
	WorldEndFaceValue:             "modify_world_end_points_face_value",
	WorldEndDiscardFromTraitPile:  "discard_card_from_trait_pile",
	WorldEndMissingColors:         "modify_world_end_points_missing_colors",
	WorldEndDiscardTraitFaceValue: "discard_trait_from_pile_face_value",
	WorldEndColorlessWorthTwo:     "colorless_worth_2_ignore_effects",
	WorldEndDrawAddFaceValue:      "draw_card_add_face_value_max_5",
	WorldEndMostTraits:            "modify_world_end_points_most_traits",
}

var NameToWorldEnd = invert(WorldEndNames)

func (k WorldEndKind) String() string { return WorldEndNames[k] }

func LookupWorldEnd(name string) (WorldEndKind, bool) {
	k, ok := NameToWorldEnd[name]
	return k, ok
}

// TraitWorldsEndKind is a trait's own deferred effect applied at game end.
type TraitWorldsEndKind int

const (
	TraitWorldsEndUnknown TraitWorldsEndKind = iota
	TraitWorldsEndDraw
	TraitWorldsEndDrawAtEnd
	TraitWorldsEndMayChangeColor
	TraitWorldsEndPlayFromHand
	TraitWorldsEndPlayFromHandAtEnd
	TraitWorldsEndChooseColor
	TraitWorldsEndChooseColorForBonus
	TraitWorldsEndStealTrait
	TraitWorldsEndChooseCatastrophe
)

var TraitWorldsEndNames = map[TraitWorldsEndKind]string{
	TraitWorldsEndDraw:                "worlds_end_draw",
	TraitWorldsEndDrawAtEnd:           "draw_at_end",
	TraitWorldsEndMayChangeColor:      "may_change_color",
	TraitWorldsEndPlayFromHand:        "play_from_hand",
	TraitWorldsEndPlayFromHandAtEnd:   "play_from_hand_at_end",
	TraitWorldsEndChooseColor:         "choose_color",
	TraitWorldsEndChooseColorForBonus: "choose_color_for_bonus",
	TraitWorldsEndStealTrait:          "steal_trait_at_end",
	TraitWorldsEndChooseCatastrophe:   "choose_catastrophe_world_end",
}

var NameToTraitWorldsEnd = invert(TraitWorldsEndNames)

func (k TraitWorldsEndKind) String() string { return TraitWorldsEndNames[k] }

func LookupTraitWorldsEnd(name string) (TraitWorldsEndKind, bool) {
	k, ok := NameToTraitWorldsEnd[name]
	return k, ok
}

// ConditionKind is a precondition a trait imposes on being played.
type ConditionKind int

const (
	ConditionUnknown ConditionKind = iota
	ConditionAtLeastNTraits
)

var ConditionNames = map[ConditionKind]string{
	ConditionAtLeastNTraits: "at_least_n_traits",
}

var NameToCondition = invert(ConditionNames)

func (k ConditionKind) String() string { return ConditionNames[k] }

func LookupCondition(name string) (ConditionKind, bool) {
	k, ok := NameToCondition[name]
	return k, ok
}
