package fray

import (
	"fmt"
	"strings"
)

// StatChange is one stage shift a move can apply; Chance of 0 means always.
type StatChange struct {
	StatName   string
	Stages     int
	Chance     int
	SelfTarget bool
}

// Ailment is the non-volatile status a move can inflict; Chance of 0 means always.
type Ailment struct {
	Status int
	Chance int
}

// Move is a single usable move with its remaining PP. Effect fields are plain
// data; the attack events interpret them.
type Move struct {
	Name     string
	Type     string
	Category string

	Power    uint
	Accuracy int
	PP       int
	MaxPP    int
	Priority int
	HighCrit bool

	StatChanges     []StatChange
	StatusAilment   Ailment
	FlinchChance    int
	ConfusionChance int
	// Binds marks partial-trapping moves that deal residual damage for a few turns.
	Binds bool
	// HealPerc restores this fraction of the user's max hp.
	HealPerc float64
	// DrainPerc restores this fraction of the damage dealt.
	DrainPerc float64
	// SideCondition, when nonzero, is applied to the user's side of the field.
	SideCondition int
}

// NewMove validates a move definition. Accuracy must land in [0, 100] and
// stat change targets must name real stats; these are configuration errors.
func NewMove(move Move) (Move, error) {
	if move.Name == "" {
		return Move{}, fmt.Errorf("%w: move name is required", ErrInvalidCreature)
	}

	if move.Accuracy < 0 || move.Accuracy > 100 {
		return Move{}, fmt.Errorf("move %s: accuracy %d outside [0, 100]", move.Name, move.Accuracy)
	}

	if move.MaxPP < 0 {
		return Move{}, fmt.Errorf("move %s: negative max pp", move.Name)
	}

	for _, change := range move.StatChanges {
		probe := Creature{}
		if _, err := probe.ModifyStage(change.StatName, 0); err != nil {
			return Move{}, fmt.Errorf("move %s: %w", move.Name, err)
		}
	}

	move.Type = strings.ToLower(move.Type)
	if move.Type == "" {
		move.Type = TYPENAME_TYPELESS
	}

	if move.Category == "" {
		move.Category = CATEGORY_STATUS
	}

	move.PP = move.MaxPP

	return move, nil
}

// IsNil reports whether this is the zero move, used for empty move slots.
func (m Move) IsNil() bool {
	return m.Name == ""
}

// struggleMove is used when an attacker has no PP left on any move. It always
// hits and its damage ignores type matchups.
var struggleMove = Move{
	Name:     "struggle",
	Type:     TYPENAME_TYPELESS,
	Category: CATEGORY_PHYSICAL,
	Power:    50,
	Accuracy: 100,
	PP:       1,
	MaxPP:    1,
}

// confusionHitMove is the self-inflicted hit rolled while confused.
var confusionHitMove = Move{
	Name:     "confusion-self-hit",
	Type:     TYPENAME_TYPELESS,
	Category: CATEGORY_PHYSICAL,
	Power:    40,
	Accuracy: 100,
	PP:       1,
	MaxPP:    1,
}
