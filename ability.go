package fray

import "strings"

// Abilities and items are inert capability records. The resolver checks for
// the kinds it understands at fixed hook points; an unknown kind does nothing.

type AbilityKind int

const (
	ABILITY_NONE AbilityKind = iota
	ABILITY_INTIMIDATE
	ABILITY_LEVITATE
	ABILITY_SPEED_BOOST
	ABILITY_STURDY
	ABILITY_DRIZZLE
	ABILITY_DROUGHT
)

type Ability struct {
	Kind AbilityKind
	Name string
}

type ItemKind int

const (
	ITEM_NONE ItemKind = iota
	ITEM_LIFE_ORB
	ITEM_FOCUS_SASH
	ITEM_CHOICE_BAND
)

type Item struct {
	Kind ItemKind
	Name string
}

var abilityKinds = map[string]AbilityKind{
	"intimidate":  ABILITY_INTIMIDATE,
	"levitate":    ABILITY_LEVITATE,
	"speed-boost": ABILITY_SPEED_BOOST,
	"sturdy":      ABILITY_STURDY,
	"drizzle":     ABILITY_DRIZZLE,
	"drought":     ABILITY_DROUGHT,
}

var itemKinds = map[string]ItemKind{
	"life-orb":    ITEM_LIFE_ORB,
	"focus-sash":  ITEM_FOCUS_SASH,
	"choice-band": ITEM_CHOICE_BAND,
}

// AbilityByName looks up an ability by name. Unknown names produce an inert
// ability rather than an error so data files can carry abilities the engine
// has no behavior for yet.
func AbilityByName(name string) Ability {
	name = strings.ToLower(name)
	kind, ok := abilityKinds[name]
	if !ok && name != "" {
		internalLogger.V(1).Info("ability has no battle effect", "ability_name", name)
	}

	return Ability{Kind: kind, Name: name}
}

// ItemByName looks up a held item by name, inert when unknown.
func ItemByName(name string) Item {
	name = strings.ToLower(name)
	kind, ok := itemKinds[name]
	if !ok && name != "" {
		internalLogger.V(1).Info("item has no battle effect", "item_name", name)
	}

	return Item{Kind: kind, Name: name}
}
