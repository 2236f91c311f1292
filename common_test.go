package fray

import (
	"math"
	"testing"
)

const iterCount = 1000

func makeTestMove(t *testing.T, move Move) Move {
	t.Helper()

	built, err := NewMove(move)
	if err != nil {
		t.Fatalf("building test move %s: %s", move.Name, err)
	}

	return built
}

func tackleMove(t *testing.T) Move {
	return makeTestMove(t, Move{
		Name:     "tackle",
		Type:     TYPENAME_NORMAL,
		Category: CATEGORY_PHYSICAL,
		Power:    40,
		Accuracy: 100,
		MaxPP:    35,
	})
}

// dummyCreature carries a stat line chosen so damage numbers are easy to
// reason about: at level 100, attack and defense both come out to 103.
func dummyCreature(t *testing.T, level uint, moves ...Move) Creature {
	t.Helper()

	creature, err := NewCreature("dummy", level, TYPENAME_GRASS, TYPENAME_POISON, BaseStats{
		Hp:       78,
		Attack:   49,
		Def:      49,
		SpAttack: 65,
		SpDef:    65,
		Speed:    45,
	}, moves...)
	if err != nil {
		t.Fatalf("building dummy creature: %s", err)
	}

	return creature
}

func getSimpleState(t *testing.T, one Creature, two Creature) GameState {
	t.Helper()

	return NewState([]Creature{one}, []Creature{two}, DefaultTypeChart(), CreateRandomStateSeed())
}

// lowSource pins every rng draw to the bottom of its range.
type lowSource struct{}

func (lowSource) Uint64() uint64 {
	return 0
}

// highSource pins every rng draw to the top of its range.
type highSource struct{}

func (highSource) Uint64() uint64 {
	return math.MaxUint64
}

func checkDamageRange(t *testing.T, damage uint, low uint, high uint) {
	t.Helper()

	if damage < low || damage > high {
		t.Fatalf("outside damage range: should be between %d - %d, got %d", low, high, damage)
	}
}
