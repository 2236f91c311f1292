package fray

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidStat is returned when a stage operation names a stat that is
	// not one of the seven staged stats.
	ErrInvalidStat = errors.New("invalid stat name")
	// ErrInvalidCreature is returned by NewCreature for malformed definitions.
	ErrInvalidCreature = errors.New("invalid creature definition")
)

// BaseStats are the fixed stat line a creature is created with.
type BaseStats struct {
	Hp       uint
	Attack   uint
	Def      uint
	SpAttack uint
	SpDef    uint
	Speed    uint
}

// Stat is a single staged stat: the fixed base value plus a battle-local
// stage modifier in [-6, 6].
type Stat struct {
	Base  uint
	Stage int
}

// value computes the derived stat at a level: (2*base*level)/100 + 5, scaled
// by the stage. Positive stages multiply by (2+stage)/2, negative by
// 2/(2-stage), floored with a minimum of 1.
func (s Stat) value(level uint) int {
	raw := int(2*s.Base*level)/100 + 5

	switch {
	case s.Stage > 0:
		raw = raw * (2 + s.Stage) / 2
	case s.Stage < 0:
		raw = raw * 2 / (2 - s.Stage)
	}

	return max(1, raw)
}

// Creature is one combatant: a fixed identity and stat line plus the mutable
// state it accumulates over a battle. Volatile state (stages, counters,
// flinch) is cleared by Init and on switch-out; the non-volatile status
// persists until cured or the battle ends.
type Creature struct {
	Name   string
	Level  uint
	Type1  string
	Type2  string
	BaseHp uint

	Attack   Stat
	Def      Stat
	SpAttack Stat
	SpDef    Stat
	RawSpeed Stat

	AccuracyStage int
	EvasionStage  int

	Hp     uint
	MaxHp  uint
	Status int

	Moves   []Move
	Ability Ability
	Item    Item
	// ItemUsed marks a consumable item as spent for the rest of the battle.
	ItemUsed bool

	ToxicCount     int
	SleepCount     int
	ConfusionCount int
	BindCount      int
	Flinched       bool

	CanAttackThisTurn  bool
	SwitchedInThisTurn bool
}

// NewCreature builds a combatant from its fixed definition. Level must be in
// [1, 100] and the primary type must be set; these are configuration errors
// and fail fast.
func NewCreature(name string, level uint, type1 string, type2 string, base BaseStats, moves ...Move) (Creature, error) {
	if level < 1 || level > 100 {
		return Creature{}, fmt.Errorf("%w: level %d outside [1, 100]", ErrInvalidCreature, level)
	}

	if type1 == "" {
		return Creature{}, fmt.Errorf("%w: primary type is required", ErrInvalidCreature)
	}

	creature := Creature{
		Name:     name,
		Level:    level,
		Type1:    strings.ToLower(type1),
		Type2:    strings.ToLower(type2),
		BaseHp:   base.Hp,
		Attack:   Stat{Base: base.Attack},
		Def:      Stat{Base: base.Def},
		SpAttack: Stat{Base: base.SpAttack},
		SpDef:    Stat{Base: base.SpDef},
		RawSpeed: Stat{Base: base.Speed},
		Moves:    moves,
	}
	creature.Init()

	return creature, nil
}

// Init resets a creature to its battle-start state: full health, zeroed
// stages, no volatile conditions. A fainted status is cleared; any other
// persistent status is kept.
func (c *Creature) Init() {
	c.MaxHp = (2*c.BaseHp*c.Level)/100 + c.Level + 10
	c.Hp = c.MaxHp

	if c.Status == STATUS_FAINTED {
		c.Status = STATUS_NONE
	}

	c.ClearStages()
	c.clearVolatiles()
	c.ItemUsed = false
	c.CanAttackThisTurn = true
	c.SwitchedInThisTurn = false
}

// ClearStages zeroes all seven stat stages.
func (c *Creature) ClearStages() {
	c.Attack.Stage = 0
	c.Def.Stage = 0
	c.SpAttack.Stage = 0
	c.SpDef.Stage = 0
	c.RawSpeed.Stage = 0
	c.AccuracyStage = 0
	c.EvasionStage = 0
}

func (c *Creature) clearVolatiles() {
	c.ToxicCount = 0
	c.SleepCount = 0
	c.ConfusionCount = 0
	c.BindCount = 0
	c.Flinched = false
}

// StatValue returns the current derived value for one of the named stats.
// "hp" reports current health directly. Accuracy and evasion are stages, not
// flat stats, and are not addressable here.
func (c Creature) StatValue(name string) (int, error) {
	switch name {
	case "hp":
		return int(c.Hp), nil
	case STAT_ATTACK:
		return c.Attack.value(c.Level), nil
	case STAT_DEFENSE:
		return c.Def.value(c.Level), nil
	case STAT_SPATTACK:
		return c.SpAttack.value(c.Level), nil
	case STAT_SPDEF:
		return c.SpDef.value(c.Level), nil
	case STAT_SPEED:
		return c.RawSpeed.value(c.Level), nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidStat, name)
}

// Speed is the effective speed used for turn ordering: the derived speed
// stat, halved and floored under paralysis.
func (c Creature) Speed() int {
	speed := c.RawSpeed.value(c.Level)
	if c.Status == STATUS_PARA {
		speed = speed / 2
	}

	return speed
}

// Accuracy returns the accuracy multiplier from the creature's accuracy stage.
func (c Creature) Accuracy() float64 {
	return accuracyStageMult[c.AccuracyStage]
}

// Evasion returns the evasion multiplier applied to attacks against this creature.
func (c Creature) Evasion() float64 {
	return evasionStageMult[c.EvasionStage]
}

// ApplyDamage lowers current health, clamped to [0, MaxHp]. Callers must pass
// non-negative amounts.
func (c *Creature) ApplyDamage(amount uint) {
	newHp := uint(math.Max(0, float64(int(c.Hp)-int(amount))))

	internalLogger.V(2).Info("creature damage", "creature_name", c.Name, "damage", amount, "old_hp", c.Hp, "new_hp", newHp)

	c.Hp = newHp
}

// Heal raises current health up to MaxHp and returns the amount actually
// restored.
func (c *Creature) Heal(amount uint) uint {
	newHp := min(c.MaxHp, c.Hp+amount)
	healed := newHp - c.Hp
	c.Hp = newHp

	return healed
}

// HealPerc heals a fraction of max health, rounded up.
func (c *Creature) HealPerc(perc float64) uint {
	return c.Heal(uint(math.Ceil(float64(c.MaxHp) * perc)))
}

// Fainted reports whether current health is zero.
func (c Creature) Fainted() bool {
	return c.Hp == 0
}

// Alive is the inverse of Fainted.
func (c Creature) Alive() bool {
	return c.Hp > 0
}

// HasType reports whether the creature carries the given type name.
func (c Creature) HasType(typeName string) bool {
	typeName = strings.ToLower(typeName)
	return c.Type1 == typeName || (c.Type2 != "" && c.Type2 == typeName)
}

// ModifyStage shifts one of the seven stat stages by delta, clamped to
// [-6, 6], and returns the new stage. An unrecognized stat name is a
// configuration error.
func (c *Creature) ModifyStage(stat string, delta int) (int, error) {
	var stage *int

	switch stat {
	case STAT_ATTACK:
		stage = &c.Attack.Stage
	case STAT_DEFENSE:
		stage = &c.Def.Stage
	case STAT_SPATTACK:
		stage = &c.SpAttack.Stage
	case STAT_SPDEF:
		stage = &c.SpDef.Stage
	case STAT_SPEED:
		stage = &c.RawSpeed.Stage
	case STAT_ACCURACY:
		stage = &c.AccuracyStage
	case STAT_EVASION:
		stage = &c.EvasionStage
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidStat, stat)
	}

	*stage = min(MAX_STAGE, max(MIN_STAGE, *stage+delta))

	return *stage, nil
}

// StageValue reads a stage without modifying it. Same name rules as ModifyStage.
func (c Creature) StageValue(stat string) (int, error) {
	copied := c
	return copied.ModifyStage(stat, 0)
}

// SetStatus applies a non-volatile status. The first status wins: if any
// status is already present the call is a silent no-op. Fainted cannot be
// applied here; only the resolver sets it when health reaches zero.
func (c *Creature) SetStatus(status int) {
	if c.Status != STATUS_NONE {
		internalLogger.V(1).Info("status blocked by existing status", "creature_name", c.Name, "existing", StatusName(c.Status), "attempted", StatusName(status))
		return
	}

	if status == STATUS_FAINTED {
		internalLogger.Info("attempt to inflict fainted as a status was ignored", "creature_name", c.Name)
		return
	}

	c.Status = status
}

// CureStatus clears the non-volatile status unconditionally.
func (c *Creature) CureStatus() {
	c.Status = STATUS_NONE
	c.ToxicCount = 0
	c.SleepCount = 0
}
