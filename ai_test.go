package fray

import (
	"bytes"
	"testing"
)

func TestMaxDamagePolicyPicksSuperEffective(t *testing.T) {
	weakMove := makeTestMove(t, Move{
		Name:     "weak-jab",
		Type:     TYPENAME_NORMAL,
		Category: CATEGORY_PHYSICAL,
		Power:    40,
		Accuracy: 100,
		MaxPP:    30,
	})
	fireMove := makeTestMove(t, Move{
		Name:     "flame-lash",
		Type:     TYPENAME_FIRE,
		Category: CATEGORY_SPECIAL,
		Power:    40,
		Accuracy: 100,
		MaxPP:    15,
	})

	// dummy is grass/poison so fire hits for double
	attacker := dummyCreature(t, 50, weakMove, fireMove)
	attacker.RawSpeed.Base = 1000

	gameState := getSimpleState(t, attacker, dummyCreature(t, 50))

	action := MaxDamagePolicy{}.ChooseAction(&gameState, SIDE_ONE)

	attack, ok := action.(AttackAction)
	if !ok {
		t.Fatalf("expected attack action, got %T", action)
	}

	if attack.MoveIndex != 1 {
		t.Fatalf("policy did not pick the super effective move: index %d", attack.MoveIndex)
	}
}

func TestMaxDamagePolicySwitchesOnDeath(t *testing.T) {
	team := []Creature{dummyCreature(t, 50, tackleMove(t)), dummyCreature(t, 50, tackleMove(t))}
	gameState := NewState(team, []Creature{dummyCreature(t, 50)}, DefaultTypeChart(), CreateRandomStateSeed())

	gameState.PlayerOne.Active().Hp = 0
	gameState.PlayerOne.Active().Status = STATUS_FAINTED

	action := MaxDamagePolicy{}.ChooseAction(&gameState, SIDE_ONE)

	switchAction, ok := action.(SwitchAction)
	if !ok {
		t.Fatalf("expected switch action, got %T", action)
	}

	if switchAction.SwitchIndex != 1 {
		t.Fatalf("policy picked a bad replacement: index %d", switchAction.SwitchIndex)
	}
}

func TestMaxDamagePolicyStrugglesWithoutPP(t *testing.T) {
	attacker := dummyCreature(t, 50, tackleMove(t))
	attacker.Moves[0].PP = 0

	gameState := getSimpleState(t, attacker, dummyCreature(t, 50))

	action := MaxDamagePolicy{}.ChooseAction(&gameState, SIDE_ONE)

	attack, ok := action.(AttackAction)
	if !ok {
		t.Fatalf("expected attack action, got %T", action)
	}

	if attack.MoveIndex != -1 {
		t.Fatalf("expected struggle, got move index %d", attack.MoveIndex)
	}
}

func TestMaxDamagePolicySlowsWhenOutsped(t *testing.T) {
	hitMove := tackleMove(t)
	paraMove := makeTestMove(t, Move{
		Name:     "stun-jolt",
		Type:     TYPENAME_ELECTRIC,
		Category: CATEGORY_STATUS,
		Accuracy: 90,
		MaxPP:    20,
		StatusAilment: Ailment{
			Status: STATUS_PARA,
			Chance: 100,
		},
	})

	attacker := dummyCreature(t, 50, hitMove, paraMove)
	attacker.RawSpeed.Base = 1

	defender := dummyCreature(t, 50)
	defender.RawSpeed.Base = 1000

	gameState := getSimpleState(t, attacker, defender)

	action := MaxDamagePolicy{}.ChooseAction(&gameState, SIDE_ONE)

	attack, ok := action.(AttackAction)
	if !ok {
		t.Fatalf("expected attack action, got %T", action)
	}

	if attack.MoveIndex != 1 {
		t.Fatalf("policy did not reach for the paralysis move: index %d", attack.MoveIndex)
	}
}

func TestMaxDamagePolicyLeavesStateAlone(t *testing.T) {
	attacker := dummyCreature(t, 50, tackleMove(t), tackleMove(t))
	gameState := getSimpleState(t, attacker, dummyCreature(t, 50))

	before, err := gameState.RngSource.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	MaxDamagePolicy{}.ChooseAction(&gameState, SIDE_ONE)

	after, err := gameState.RngSource.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	// The policy's damage probes roll on copies; choosing a move must not
	// advance the battle's own rng sequence.
	if !bytes.Equal(before, after) {
		t.Fatal("choosing an action advanced the battle rng")
	}
}

func TestRandomPolicyReturnsUsableActions(t *testing.T) {
	for range iterCount {
		attacker := dummyCreature(t, 50, tackleMove(t), tackleMove(t))
		gameState := getSimpleState(t, attacker, dummyCreature(t, 50))

		action := RandomPolicy{}.ChooseAction(&gameState, SIDE_ONE)

		attack, ok := action.(AttackAction)
		if !ok {
			t.Fatalf("expected attack action, got %T", action)
		}

		if attack.MoveIndex < 0 || attack.MoveIndex >= len(attacker.Moves) {
			t.Fatalf("move index out of range: %d", attack.MoveIndex)
		}
	}
}

func TestRandomPolicySwitchesOnDeath(t *testing.T) {
	team := []Creature{dummyCreature(t, 50, tackleMove(t)), dummyCreature(t, 50, tackleMove(t))}
	gameState := NewState(team, []Creature{dummyCreature(t, 50)}, DefaultTypeChart(), CreateRandomStateSeed())

	gameState.PlayerOne.Active().Hp = 0
	gameState.PlayerOne.Active().Status = STATUS_FAINTED

	action := RandomPolicy{}.ChooseAction(&gameState, SIDE_ONE)

	switchAction, ok := action.(SwitchAction)
	if !ok {
		t.Fatalf("expected switch action, got %T", action)
	}

	if !gameState.PlayerOne.Get(switchAction.SwitchIndex).Alive() {
		t.Fatalf("policy picked a fainted replacement: index %d", switchAction.SwitchIndex)
	}
}
