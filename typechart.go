package fray

import "strings"

// TypeChart maps an attacking type to per-defending-type damage multipliers.
// There is exactly one chart per battle: it is built once, injected by
// reference into damage calculation and AI policies, and never mutated.
// Absent entries are neutral (1x), so a partial chart is a valid chart.
type TypeChart struct {
	multipliers map[string]map[string]float64
}

// NewTypeChart copies the given mapping into an immutable chart. Type names
// are normalized to lower case on the way in.
func NewTypeChart(multipliers map[string]map[string]float64) *TypeChart {
	copied := make(map[string]map[string]float64, len(multipliers))
	for attack, row := range multipliers {
		copiedRow := make(map[string]float64, len(row))
		for defend, mult := range row {
			copiedRow[strings.ToLower(defend)] = mult
		}
		copied[strings.ToLower(attack)] = copiedRow
	}

	return &TypeChart{multipliers: copied}
}

// Effectiveness looks up the multiplier for an attack type against a single
// defending type. Missing entries default to neutral.
func (c *TypeChart) Effectiveness(attackType string, defendType string) float64 {
	row, ok := c.multipliers[strings.ToLower(attackType)]
	if !ok {
		internalLogger.V(1).Info("no chart row for attack type, assuming neutral", "attack_type", attackType)
		return 1
	}

	mult, ok := row[strings.ToLower(defendType)]
	if !ok {
		return 1
	}

	return mult
}

// DefenseEffectiveness gives the net multiplier against a defender with one
// or two types: the product of the per-type lookups.
func (c *TypeChart) DefenseEffectiveness(attackType string, type1 string, type2 string) float64 {
	effectiveness := c.Effectiveness(attackType, type1)
	if type2 != "" {
		effectiveness *= c.Effectiveness(attackType, type2)
	}

	return effectiveness
}

var defaultChartData = map[string]map[string]float64{
	TYPENAME_NORMAL:   {TYPENAME_ROCK: 0.5, TYPENAME_GHOST: 0, TYPENAME_STEEL: 0.5},
	TYPENAME_FIRE:     {TYPENAME_FIRE: 0.5, TYPENAME_WATER: 0.5, TYPENAME_GRASS: 2, TYPENAME_ICE: 2, TYPENAME_BUG: 2, TYPENAME_ROCK: 0.5, TYPENAME_DRAGON: 0.5, TYPENAME_STEEL: 2},
	TYPENAME_WATER:    {TYPENAME_FIRE: 2, TYPENAME_WATER: 0.5, TYPENAME_GRASS: 0.5, TYPENAME_GROUND: 2, TYPENAME_ROCK: 2, TYPENAME_DRAGON: 0.5},
	TYPENAME_ELECTRIC: {TYPENAME_WATER: 2, TYPENAME_ELECTRIC: 0.5, TYPENAME_GRASS: 0.5, TYPENAME_GROUND: 0, TYPENAME_FLYING: 2, TYPENAME_DRAGON: 0.5},
	TYPENAME_GRASS:    {TYPENAME_FIRE: 0.5, TYPENAME_WATER: 2, TYPENAME_GRASS: 0.5, TYPENAME_POISON: 0.5, TYPENAME_GROUND: 2, TYPENAME_FLYING: 0.5, TYPENAME_BUG: 0.5, TYPENAME_ROCK: 2, TYPENAME_DRAGON: 0.5, TYPENAME_STEEL: 0.5},
	TYPENAME_ICE:      {TYPENAME_FIRE: 0.5, TYPENAME_WATER: 0.5, TYPENAME_GRASS: 2, TYPENAME_ICE: 0.5, TYPENAME_GROUND: 2, TYPENAME_FLYING: 2, TYPENAME_DRAGON: 2, TYPENAME_STEEL: 0.5},
	TYPENAME_FIGHTING: {TYPENAME_NORMAL: 2, TYPENAME_ICE: 2, TYPENAME_POISON: 0.5, TYPENAME_FLYING: 0.5, TYPENAME_PSYCHIC: 0.5, TYPENAME_BUG: 0.5, TYPENAME_ROCK: 2, TYPENAME_GHOST: 0, TYPENAME_DARK: 2, TYPENAME_STEEL: 2, TYPENAME_FAIRY: 0.5},
	TYPENAME_POISON:   {TYPENAME_GRASS: 2, TYPENAME_POISON: 0.5, TYPENAME_GROUND: 0.5, TYPENAME_ROCK: 0.5, TYPENAME_GHOST: 0.5, TYPENAME_STEEL: 0, TYPENAME_FAIRY: 2},
	TYPENAME_GROUND:   {TYPENAME_FIRE: 2, TYPENAME_ELECTRIC: 2, TYPENAME_GRASS: 0.5, TYPENAME_POISON: 2, TYPENAME_FLYING: 0, TYPENAME_BUG: 0.5, TYPENAME_ROCK: 2, TYPENAME_STEEL: 2},
	TYPENAME_FLYING:   {TYPENAME_ELECTRIC: 0.5, TYPENAME_GRASS: 2, TYPENAME_FIGHTING: 2, TYPENAME_BUG: 2, TYPENAME_ROCK: 0.5, TYPENAME_STEEL: 0.5},
	TYPENAME_PSYCHIC:  {TYPENAME_FIGHTING: 2, TYPENAME_POISON: 2, TYPENAME_PSYCHIC: 0.5, TYPENAME_DARK: 0, TYPENAME_STEEL: 0.5},
	TYPENAME_BUG:      {TYPENAME_FIRE: 0.5, TYPENAME_GRASS: 2, TYPENAME_FIGHTING: 0.5, TYPENAME_POISON: 0.5, TYPENAME_FLYING: 0.5, TYPENAME_PSYCHIC: 2, TYPENAME_GHOST: 0.5, TYPENAME_DARK: 2, TYPENAME_STEEL: 0.5, TYPENAME_FAIRY: 0.5},
	TYPENAME_ROCK:     {TYPENAME_FIRE: 2, TYPENAME_ICE: 2, TYPENAME_FIGHTING: 0.5, TYPENAME_GROUND: 0.5, TYPENAME_FLYING: 2, TYPENAME_BUG: 2, TYPENAME_STEEL: 0.5},
	TYPENAME_GHOST:    {TYPENAME_NORMAL: 0, TYPENAME_PSYCHIC: 2, TYPENAME_GHOST: 2, TYPENAME_DARK: 0.5},
	TYPENAME_DRAGON:   {TYPENAME_DRAGON: 2, TYPENAME_STEEL: 0.5, TYPENAME_FAIRY: 0},
	TYPENAME_DARK:     {TYPENAME_FIGHTING: 0.5, TYPENAME_PSYCHIC: 2, TYPENAME_GHOST: 2, TYPENAME_DARK: 0.5, TYPENAME_FAIRY: 0.5},
	TYPENAME_STEEL:    {TYPENAME_FIRE: 0.5, TYPENAME_WATER: 0.5, TYPENAME_ELECTRIC: 0.5, TYPENAME_ICE: 2, TYPENAME_ROCK: 2, TYPENAME_STEEL: 0.5, TYPENAME_FAIRY: 2},
	TYPENAME_FAIRY:    {TYPENAME_FIRE: 0.5, TYPENAME_FIGHTING: 2, TYPENAME_POISON: 0.5, TYPENAME_DRAGON: 2, TYPENAME_DARK: 2, TYPENAME_STEEL: 0.5},
}

// DefaultTypeChart returns a chart built from the built-in multiplier table.
// Callers that want chart data from external configuration should build one
// with NewTypeChart instead.
func DefaultTypeChart() *TypeChart {
	return NewTypeChart(defaultChartData)
}
