package fray

import (
	"bytes"
	"testing"
)

func TestCloneIsolatesMoves(t *testing.T) {
	gameState := getSimpleState(t, dummyCreature(t, 50, tackleMove(t)), dummyCreature(t, 50))

	cloned := gameState.Clone()
	cloned.PlayerOne.Active().Moves[0].PP = 0

	original := gameState.PlayerOne.Active().Moves[0]
	if original.PP != original.MaxPP {
		t.Fatalf("mutating a clone's moves reached the original: pp %d/%d", original.PP, original.MaxPP)
	}
}

func TestCloneIsolatesSideConditions(t *testing.T) {
	gameState := getSimpleState(t, dummyCreature(t, 50), dummyCreature(t, 50))

	cloned := gameState.Clone()
	cloned.PlayerOne.SideConditions[SIDECOND_SPIKES] = 2

	if gameState.PlayerOne.SideConditions[SIDECOND_SPIKES] != 0 {
		t.Fatal("mutating a clone's side conditions reached the original")
	}
}

func TestCreateNewRngDoesNotAdvanceState(t *testing.T) {
	gameState := getSimpleState(t, dummyCreature(t, 50), dummyCreature(t, 50))

	before, err := gameState.RngSource.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	rng := gameState.CreateNewRng()
	rng.Uint64()
	rng.Uint64()

	after, err := gameState.RngSource.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(before, after) {
		t.Fatal("draws on a copied rng advanced the state's own source")
	}
}
