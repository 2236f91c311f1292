package fray

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// snapshot is the serialized form of a battle. The rng source is carried as
// the PCG's own binary encoding so a restored battle draws the exact same
// sequence the original would have.
type snapshot struct {
	ID     uuid.UUID   `json:"id"`
	Phase  BattlePhase `json:"phase"`
	Winner int         `json:"winner"`
	State  GameState   `json:"state"`
	Rng    []byte      `json:"rng"`
}

// Snapshot serializes the battle to JSON. The type chart is config, not
// state, and is not included; RestoreBattle takes it as an argument.
func (b *Battle) Snapshot() ([]byte, error) {
	rngBytes, err := b.state.RngSource.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshaling rng source: %w", err)
	}

	snap := snapshot{
		ID:     b.ID,
		Phase:  b.phase,
		Winner: b.winner,
		State:  b.state,
		Rng:    rngBytes,
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshaling battle snapshot: %w", err)
	}

	return data, nil
}

// RestoreBattle rebuilds a battle from a snapshot, re-injecting the type
// chart. A nil chart gets the default chart. The restored battle's event
// log starts empty; the state's MessageHistory is the record that survives
// a snapshot boundary.
func RestoreBattle(data []byte, chart *TypeChart) (*Battle, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshaling battle snapshot: %w", err)
	}

	state := snap.State

	if err := state.RngSource.UnmarshalBinary(snap.Rng); err != nil {
		return nil, fmt.Errorf("unmarshaling rng source: %w", err)
	}

	if chart == nil {
		chart = DefaultTypeChart()
	}
	state.Chart = chart

	if state.PlayerOne.SideConditions == nil {
		state.PlayerOne.SideConditions = make(map[int]int)
	}
	if state.PlayerTwo.SideConditions == nil {
		state.PlayerTwo.SideConditions = make(map[int]int)
	}

	return &Battle{
		ID:     snap.ID,
		state:  state,
		phase:  snap.Phase,
		winner: snap.Winner,
	}, nil
}
