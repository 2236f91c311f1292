package fray

// plus 1 so the zero value is never a valid side
const (
	SIDE_ONE = iota + 1
	SIDE_TWO
)

const (
	CATEGORY_PHYSICAL = "physical"
	CATEGORY_SPECIAL  = "special"
	CATEGORY_STATUS   = "status"
)

const (
	TYPENAME_NORMAL   = "normal"
	TYPENAME_FIRE     = "fire"
	TYPENAME_WATER    = "water"
	TYPENAME_ELECTRIC = "electric"
	TYPENAME_GRASS    = "grass"
	TYPENAME_ICE      = "ice"
	TYPENAME_FIGHTING = "fighting"
	TYPENAME_POISON   = "poison"
	TYPENAME_GROUND   = "ground"
	TYPENAME_FLYING   = "flying"
	TYPENAME_PSYCHIC  = "psychic"
	TYPENAME_BUG      = "bug"
	TYPENAME_ROCK     = "rock"
	TYPENAME_GHOST    = "ghost"
	TYPENAME_DRAGON   = "dragon"
	TYPENAME_DARK     = "dark"
	TYPENAME_STEEL    = "steel"
	TYPENAME_FAIRY    = "fairy"
	TYPENAME_TYPELESS = "typeless"
)

const (
	STATUS_NONE = iota
	STATUS_BURN
	STATUS_PARA
	STATUS_SLEEP
	STATUS_FROZEN
	STATUS_POISON
	STATUS_TOXIC
	// STATUS_FAINTED is only ever set by the resolver when hp reaches 0.
	// Move effects cannot inflict it.
	STATUS_FAINTED
)

const (
	WEATHER_CLEAR = iota
	WEATHER_RAIN
	WEATHER_SUN
	WEATHER_SANDSTORM
	WEATHER_HAIL
	WEATHER_FOG
)

const (
	TERRAIN_NONE = iota
	TERRAIN_ELECTRIC
	TERRAIN_GRASSY
	TERRAIN_MISTY
	TERRAIN_PSYCHIC
)

const (
	SIDECOND_REFLECT = iota + 1
	SIDECOND_LIGHT_SCREEN
	SIDECOND_SPIKES
)

// How many end-of-turn ticks a screen or summoned weather lasts.
const (
	SCREEN_TURNS  = 5
	WEATHER_TURNS = 5
)

const (
	STAT_ATTACK   = "attack"
	STAT_DEFENSE  = "defense"
	STAT_SPATTACK = "special-attack"
	STAT_SPDEF    = "special-defense"
	STAT_SPEED    = "speed"
	STAT_ACCURACY = "accuracy"
	STAT_EVASION  = "evasion"
)

const (
	MIN_STAGE = -6
	MAX_STAGE = 6
)

const (
	CRIT_CHANCE      = 1.0 / 24.0
	HIGH_CRIT_CHANCE = 1.0 / 8.0
)

var statusNames = map[int]string{
	STATUS_NONE:    "none",
	STATUS_BURN:    "burn",
	STATUS_PARA:    "paralysis",
	STATUS_SLEEP:   "sleep",
	STATUS_FROZEN:  "freeze",
	STATUS_POISON:  "poison",
	STATUS_TOXIC:   "toxic",
	STATUS_FAINTED: "fainted",
}

// StatusName returns the human readable name for a non-volatile status.
func StatusName(status int) string {
	return statusNames[status]
}

var accuracyStageMult = map[int]float64{
	6:  9.0 / 3.0,
	5:  8.0 / 3.0,
	4:  7.0 / 3.0,
	3:  6.0 / 3.0,
	2:  5.0 / 3.0,
	1:  4.0 / 3.0,
	0:  1,
	-1: 3.0 / 4.0,
	-2: 3.0 / 5.0,
	-3: 3.0 / 6.0,
	-4: 3.0 / 7.0,
	-5: 3.0 / 8.0,
	-6: 3.0 / 9.0,
}

var evasionStageMult = map[int]float64{
	-6: 9.0 / 3.0,
	-5: 8.0 / 3.0,
	-4: 7.0 / 3.0,
	-3: 6.0 / 3.0,
	-2: 5.0 / 3.0,
	-1: 4.0 / 3.0,
	0:  1,
	1:  3.0 / 4.0,
	2:  3.0 / 5.0,
	3:  3.0 / 6.0,
	4:  3.0 / 7.0,
	5:  3.0 / 8.0,
	6:  3.0 / 9.0,
}

// Types that take no chip damage from sandstorm or hail. Immunities are data,
// not mechanism, so extensions only need to touch these tables.
var (
	sandImmuneTypes = []string{TYPENAME_ROCK, TYPENAME_STEEL, TYPENAME_GROUND}
	hailImmuneTypes = []string{TYPENAME_ICE}
)
