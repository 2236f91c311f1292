package fray

import (
	"errors"
	"testing"
)

func TestStatValue(t *testing.T) {
	creature := dummyCreature(t, 100)

	attack, err := creature.StatValue(STAT_ATTACK)
	if err != nil {
		t.Fatal(err)
	}

	if attack != 103 {
		t.Fatalf("expected attack of 103, got %d", attack)
	}
}

func TestStatValueStages(t *testing.T) {
	creature := dummyCreature(t, 100)

	creature.Attack.Stage = 2
	boosted, _ := creature.StatValue(STAT_ATTACK)
	if boosted != 206 {
		t.Fatalf("expected +2 attack of 206, got %d", boosted)
	}

	creature.Attack.Stage = -2
	lowered, _ := creature.StatValue(STAT_ATTACK)
	if lowered != 51 {
		t.Fatalf("expected -2 attack of 51, got %d", lowered)
	}
}

func TestStatValueMinimumOne(t *testing.T) {
	creature, err := NewCreature("runt", 1, TYPENAME_NORMAL, "", BaseStats{Hp: 1, Attack: 1, Def: 1, SpAttack: 1, SpDef: 1, Speed: 1})
	if err != nil {
		t.Fatal(err)
	}

	creature.Attack.Stage = -6
	value, _ := creature.StatValue(STAT_ATTACK)
	if value < 1 {
		t.Fatalf("stat value fell below 1: %d", value)
	}
}

func TestStatValueInvalidName(t *testing.T) {
	creature := dummyCreature(t, 50)

	if _, err := creature.StatValue("strength"); !errors.Is(err, ErrInvalidStat) {
		t.Fatalf("expected ErrInvalidStat, got %v", err)
	}
}

func TestMaxHp(t *testing.T) {
	creature := dummyCreature(t, 50)

	if creature.MaxHp != 138 {
		t.Fatalf("expected max hp of 138 at level 50, got %d", creature.MaxHp)
	}

	if creature.Hp != creature.MaxHp {
		t.Fatalf("creature did not start at full health: %d/%d", creature.Hp, creature.MaxHp)
	}
}

func TestNewCreatureValidation(t *testing.T) {
	if _, err := NewCreature("bad", 0, TYPENAME_NORMAL, "", BaseStats{}); err == nil {
		t.Fatal("expected error for level 0")
	}

	if _, err := NewCreature("bad", 101, TYPENAME_NORMAL, "", BaseStats{}); err == nil {
		t.Fatal("expected error for level 101")
	}

	if _, err := NewCreature("bad", 50, "", "", BaseStats{}); err == nil {
		t.Fatal("expected error for empty primary type")
	}
}

func TestModifyStageClamps(t *testing.T) {
	creature := dummyCreature(t, 50)

	stage, err := creature.ModifyStage(STAT_ATTACK, 8)
	if err != nil {
		t.Fatal(err)
	}

	if stage != MAX_STAGE {
		t.Fatalf("expected stage clamped to %d, got %d", MAX_STAGE, stage)
	}

	stage, _ = creature.ModifyStage(STAT_ATTACK, -20)
	if stage != MIN_STAGE {
		t.Fatalf("expected stage clamped to %d, got %d", MIN_STAGE, stage)
	}

	if _, err := creature.ModifyStage("strength", 1); !errors.Is(err, ErrInvalidStat) {
		t.Fatalf("expected ErrInvalidStat, got %v", err)
	}
}

func TestFirstStatusWins(t *testing.T) {
	creature := dummyCreature(t, 50)

	creature.SetStatus(STATUS_BURN)
	creature.SetStatus(STATUS_PARA)

	if creature.Status != STATUS_BURN {
		t.Fatalf("second status overwrote first: got %s", StatusName(creature.Status))
	}
}

func TestFaintedNotSettableAsStatus(t *testing.T) {
	creature := dummyCreature(t, 50)

	creature.SetStatus(STATUS_FAINTED)

	if creature.Status != STATUS_NONE {
		t.Fatalf("fainted was applied as a status: %s", StatusName(creature.Status))
	}
}

func TestParalysisHalvesSpeed(t *testing.T) {
	creature := dummyCreature(t, 50)

	baseSpeed := creature.Speed()

	creature.SetStatus(STATUS_PARA)
	if creature.Speed() != baseSpeed/2 {
		t.Fatalf("expected paralyzed speed of %d, got %d", baseSpeed/2, creature.Speed())
	}
}

func TestApplyDamageClamps(t *testing.T) {
	creature := dummyCreature(t, 50)

	creature.ApplyDamage(creature.MaxHp * 10)

	if creature.Hp != 0 {
		t.Fatalf("hp should clamp at 0, got %d", creature.Hp)
	}

	if !creature.Fainted() {
		t.Fatal("creature at 0 hp should report fainted")
	}
}

func TestHealReturnsActualAmount(t *testing.T) {
	creature := dummyCreature(t, 50)
	creature.ApplyDamage(10)

	healed := creature.Heal(50)
	if healed != 10 {
		t.Fatalf("expected overheal to report 10, got %d", healed)
	}

	if creature.Hp != creature.MaxHp {
		t.Fatalf("creature not at full health after heal: %d/%d", creature.Hp, creature.MaxHp)
	}
}

func TestInitClearsBattleState(t *testing.T) {
	creature := dummyCreature(t, 50)

	creature.ApplyDamage(creature.MaxHp)
	creature.Status = STATUS_FAINTED
	creature.Attack.Stage = 3
	creature.ToxicCount = 4

	creature.Init()

	if creature.Hp != creature.MaxHp {
		t.Fatalf("init did not restore health: %d/%d", creature.Hp, creature.MaxHp)
	}

	if creature.Status != STATUS_NONE {
		t.Fatalf("init did not clear fainted status: %s", StatusName(creature.Status))
	}

	if creature.Attack.Stage != 0 || creature.ToxicCount != 0 {
		t.Fatal("init did not clear stages and counters")
	}
}
