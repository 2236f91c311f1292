package fray

import (
	"math"
	"math/rand/v2"

	"github.com/go-logr/logr"
)

var damageLogger = func() logr.Logger {
	return internalLogger.WithName("damage")
}

// FieldContext carries the battlefield conditions that feed the damage
// formula without threading the full state through it.
type FieldContext struct {
	Weather int
	Chart   *TypeChart
	// Screened is true when the defender's side holds the screen matching
	// the move's category.
	Screened bool
}

// Damage calculates the damage an attacking creature deals to a defender
// with a single use of move. All multipliers are applied in floating point
// and the result is floored once at the end; a hit that connects deals at
// least 1 unless the defender is immune.
func Damage(attacker Creature, defender Creature, move Move, crit bool, field FieldContext, rng *rand.Rand) uint {
	if move.Power == 0 || move.Category == CATEGORY_STATUS {
		return 0
	}

	var a, d int
	switch move.Category {
	case CATEGORY_PHYSICAL:
		a = attacker.Attack.value(attacker.Level)
		d = defender.Def.value(defender.Level)
	case CATEGORY_SPECIAL:
		a = attacker.SpAttack.value(attacker.Level)
		d = defender.SpDef.value(defender.Level)
	}

	chart := field.Chart
	if chart == nil {
		chart = DefaultTypeChart()
	}

	effectiveness := chart.DefenseEffectiveness(move.Type, defender.Type1, defender.Type2)

	if effectiveness == 0 {
		return 0
	}

	if defender.Ability.Kind == ABILITY_LEVITATE && move.Type == TYPENAME_GROUND {
		return 0
	}

	damage := (float64(2*attacker.Level)/5+2)*float64(move.Power)*float64(a)/float64(d)/50 + 2

	stab := 1.0
	if attacker.HasType(move.Type) {
		stab = 1.5
	}

	critBoost := 1.0
	if crit {
		critBoost = 1.5
	}

	weatherBonus := 1.0
	if (field.Weather == WEATHER_RAIN && move.Type == TYPENAME_WATER) || (field.Weather == WEATHER_SUN && move.Type == TYPENAME_FIRE) {
		weatherBonus = 1.5
	}
	if (field.Weather == WEATHER_RAIN && move.Type == TYPENAME_FIRE) || (field.Weather == WEATHER_SUN && move.Type == TYPENAME_WATER) {
		weatherBonus = 0.5
	}

	burn := 1.0
	if attacker.Status == STATUS_BURN && move.Category == CATEGORY_PHYSICAL {
		burn = 0.5
		damageLogger().V(2).Info("attacker is burned and is using a physical move", "attacker_name", attacker.Name)
	}

	screen := 1.0
	// A crit punches through screens.
	if field.Screened && !crit {
		screen = 0.5
	}

	itemBonus := 1.0
	switch attacker.Item.Kind {
	case ITEM_LIFE_ORB:
		itemBonus = 1.3
	case ITEM_CHOICE_BAND:
		if move.Category == CATEGORY_PHYSICAL {
			itemBonus = 1.5
		}
	}

	randomSpread := 0.85 + rng.Float64()*0.15

	damage = damage * stab * effectiveness * critBoost * weatherBonus * burn * screen * itemBonus * randomSpread

	finalDamage := uint(max(1, math.Floor(damage)))

	damageLogger().Info("final damage",
		"power", move.Power,
		"attackerLevel", attacker.Level,
		"attackValue", a,
		"defValue", d,
		"attackType", move.Type,
		"randomSpread", randomSpread,
		"stab", stab,
		"effectiveness", effectiveness,
		"crit", critBoost,
		"weatherBonus", weatherBonus,
		"burn", burn,
		"screen", screen,
		"itemBonus", itemBonus,
		"damage", finalDamage)

	return finalDamage
}
