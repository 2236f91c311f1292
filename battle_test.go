package fray

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func testBattle(t *testing.T, teamOne []Creature, teamTwo []Creature) *Battle {
	t.Helper()

	battle, err := NewBattle("Ash", teamOne, "Gary", teamTwo, DefaultTypeChart(), CreateRandomStateSeed())
	if err != nil {
		t.Fatalf("could not create battle: %s", err)
	}

	return battle
}

func TestBattleRequiresStart(t *testing.T) {
	battle := testBattle(t, []Creature{dummyCreature(t, 50, tackleMove(t))}, []Creature{dummyCreature(t, 50, tackleMove(t))})

	_, err := battle.Advance(NewAttackAction(SIDE_ONE, 0), NewAttackAction(SIDE_TWO, 0))
	if !errors.Is(err, ErrInvalidBattleState) {
		t.Fatalf("expected ErrInvalidBattleState, got %v", err)
	}

	if err := battle.SetActive(SIDE_ONE, 0); !errors.Is(err, ErrInvalidBattleState) {
		t.Fatalf("expected ErrInvalidBattleState, got %v", err)
	}
}

func TestBattleCannotStartTwice(t *testing.T) {
	battle := testBattle(t, []Creature{dummyCreature(t, 50)}, []Creature{dummyCreature(t, 50)})

	if err := battle.Start(); err != nil {
		t.Fatalf("first start failed: %s", err)
	}

	if err := battle.Start(); !errors.Is(err, ErrInvalidBattleState) {
		t.Fatalf("expected ErrInvalidBattleState on second start, got %v", err)
	}
}

func TestAdvanceSpendsExactlyOnePP(t *testing.T) {
	battle := testBattle(t, []Creature{dummyCreature(t, 50, tackleMove(t))}, []Creature{dummyCreature(t, 50, tackleMove(t))})
	if err := battle.Start(); err != nil {
		t.Fatalf("start failed: %s", err)
	}

	if _, err := battle.Advance(NewAttackAction(SIDE_ONE, 0), NewAttackAction(SIDE_TWO, 0)); err != nil {
		t.Fatalf("advance failed: %s", err)
	}

	// The speculative passes inside turn resolution run the same attack
	// events against cloned states; only the real application may spend pp.
	for _, creature := range []*Creature{battle.State().PlayerOne.Active(), battle.State().PlayerTwo.Active()} {
		if creature.Moves[0].PP != creature.Moves[0].MaxPP-1 {
			t.Fatalf("%s spent wrong amount of pp: %d/%d", creature.Name, creature.Moves[0].PP, creature.Moves[0].MaxPP)
		}
	}
}

func TestBattleRejectsEmptyTeam(t *testing.T) {
	_, err := NewBattle("Ash", nil, "Gary", []Creature{dummyCreature(t, 50)}, nil, CreateRandomStateSeed())
	if err == nil {
		t.Fatal("expected error for empty team")
	}
}

func TestBattleConcludesOnDefeat(t *testing.T) {
	winnerTeam := []Creature{dummyCreature(t, 50, tackleMove(t))}
	winnerTeam[0].Attack.Base = 10000
	winnerTeam[0].RawSpeed.Base = 1000

	battle := testBattle(t, winnerTeam, []Creature{dummyCreature(t, 50, tackleMove(t))})
	if err := battle.Start(); err != nil {
		t.Fatalf("start failed: %s", err)
	}

	if battle.Winner() != -1 {
		t.Fatalf("winner set before battle concluded: %d", battle.Winner())
	}

	result, err := battle.Advance(NewAttackAction(SIDE_ONE, 0), NewAttackAction(SIDE_TWO, 0))
	if err != nil {
		t.Fatalf("advance failed: %s", err)
	}

	if result.Kind != RESULT_GAMEOVER {
		t.Fatalf("expected game over, got result kind %d", result.Kind)
	}

	if battle.Phase() != PHASE_CONCLUDED {
		t.Fatalf("battle not concluded: phase %d", battle.Phase())
	}

	if battle.Winner() != SIDE_ONE {
		t.Fatalf("wrong winner: %d", battle.Winner())
	}
}

func TestBattleForcesReplacement(t *testing.T) {
	teamTwo := []Creature{dummyCreature(t, 50, tackleMove(t)), dummyCreature(t, 50, tackleMove(t))}

	teamOne := []Creature{dummyCreature(t, 50, tackleMove(t))}
	teamOne[0].Attack.Base = 10000
	teamOne[0].RawSpeed.Base = 1000

	battle := testBattle(t, teamOne, teamTwo)
	if err := battle.Start(); err != nil {
		t.Fatalf("start failed: %s", err)
	}

	result, err := battle.Advance(NewAttackAction(SIDE_ONE, 0), NewAttackAction(SIDE_TWO, 0))
	if err != nil {
		t.Fatalf("advance failed: %s", err)
	}

	if result.Kind != RESULT_FORCESWITCH {
		t.Fatalf("expected force switch, got result kind %d", result.Kind)
	}

	if !result.SideTwoKO {
		t.Fatal("side two KO flag not set")
	}

	// refusing to send a replacement while a healthy creature waits on the
	// bench forfeits the battle
	result, err = battle.Advance(NewSkipAction(SIDE_ONE), NewAttackAction(SIDE_TWO, 0))
	if err != nil {
		t.Fatalf("advance failed: %s", err)
	}

	if result.Kind != RESULT_GAMEOVER {
		t.Fatalf("expected forfeit game over, got result kind %d", result.Kind)
	}

	if battle.Winner() != SIDE_ONE {
		t.Fatalf("forfeiting side should lose: winner %d", battle.Winner())
	}
}

func TestBattleReplacementViaSwitch(t *testing.T) {
	teamTwo := []Creature{dummyCreature(t, 50, tackleMove(t)), dummyCreature(t, 50, tackleMove(t))}

	teamOne := []Creature{dummyCreature(t, 50, tackleMove(t))}
	teamOne[0].Attack.Base = 10000
	teamOne[0].RawSpeed.Base = 1000

	battle := testBattle(t, teamOne, teamTwo)
	if err := battle.Start(); err != nil {
		t.Fatalf("start failed: %s", err)
	}

	if _, err := battle.Advance(NewAttackAction(SIDE_ONE, 0), NewAttackAction(SIDE_TWO, 0)); err != nil {
		t.Fatalf("advance failed: %s", err)
	}

	if err := battle.SetActive(SIDE_TWO, 1); err != nil {
		t.Fatalf("replacement failed: %s", err)
	}

	if battle.State().PlayerTwo.ActiveIndex != 1 {
		t.Fatalf("replacement not applied: active index %d", battle.State().PlayerTwo.ActiveIndex)
	}

	if battle.Phase() != PHASE_IN_PROGRESS {
		t.Fatalf("battle should continue after replacement: phase %d", battle.Phase())
	}
}

func TestSetActiveValidation(t *testing.T) {
	teamOne := []Creature{dummyCreature(t, 50), dummyCreature(t, 50)}
	battle := testBattle(t, teamOne, []Creature{dummyCreature(t, 50)})
	if err := battle.Start(); err != nil {
		t.Fatalf("start failed: %s", err)
	}

	if err := battle.SetActive(SIDE_ONE, 5); err == nil {
		t.Fatal("expected error for out of range index")
	}

	if err := battle.SetActive(SIDE_ONE, 0); err == nil {
		t.Fatal("expected error for already active index")
	}

	battle.State().PlayerOne.Team[1].Hp = 0
	battle.State().PlayerOne.Team[1].Status = STATUS_FAINTED
	if err := battle.SetActive(SIDE_ONE, 1); err == nil {
		t.Fatal("expected error for fainted replacement")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	seed := *rand.NewPCG(1, 2)

	teamOne := []Creature{dummyCreature(t, 50, tackleMove(t))}
	teamTwo := []Creature{dummyCreature(t, 50, tackleMove(t))}

	battle, err := NewBattle("Ash", teamOne, "Gary", teamTwo, DefaultTypeChart(), seed)
	if err != nil {
		t.Fatalf("could not create battle: %s", err)
	}
	if err := battle.Start(); err != nil {
		t.Fatalf("start failed: %s", err)
	}

	data, err := battle.Snapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %s", err)
	}

	restored, err := RestoreBattle(data, DefaultTypeChart())
	if err != nil {
		t.Fatalf("restore failed: %s", err)
	}

	if restored.ID != battle.ID {
		t.Fatalf("battle id changed on restore: %s vs %s", restored.ID, battle.ID)
	}

	// both copies must replay identically from the same snapshot
	for range 3 {
		if battle.Phase() != PHASE_IN_PROGRESS {
			break
		}

		if _, err := battle.Advance(NewAttackAction(SIDE_ONE, 0), NewAttackAction(SIDE_TWO, 0)); err != nil {
			t.Fatalf("advance failed: %s", err)
		}
		if _, err := restored.Advance(NewAttackAction(SIDE_ONE, 0), NewAttackAction(SIDE_TWO, 0)); err != nil {
			t.Fatalf("restored advance failed: %s", err)
		}
	}

	original := battle.State()
	replayed := restored.State()

	if original.PlayerOne.Active().Hp != replayed.PlayerOne.Active().Hp {
		t.Fatalf("player one hp diverged: %d vs %d", original.PlayerOne.Active().Hp, replayed.PlayerOne.Active().Hp)
	}

	if original.PlayerTwo.Active().Hp != replayed.PlayerTwo.Active().Hp {
		t.Fatalf("player two hp diverged: %d vs %d", original.PlayerTwo.Active().Hp, replayed.PlayerTwo.Active().Hp)
	}

	if len(original.MessageHistory) != len(replayed.MessageHistory) {
		t.Fatalf("message history diverged: %d vs %d messages", len(original.MessageHistory), len(replayed.MessageHistory))
	}

	for i, msg := range original.MessageHistory {
		if replayed.MessageHistory[i] != msg {
			t.Fatalf("message %d diverged: %q vs %q", i, msg, replayed.MessageHistory[i])
		}
	}
}

func TestSnapshotRejectsGarbage(t *testing.T) {
	if _, err := RestoreBattle([]byte("not json"), nil); err == nil {
		t.Fatal("expected error for malformed snapshot")
	}
}
