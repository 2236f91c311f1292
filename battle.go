package fray

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

type BattlePhase int

const (
	PHASE_NOT_STARTED BattlePhase = iota
	PHASE_IN_PROGRESS
	PHASE_CONCLUDED
)

// ErrInvalidBattleState is returned when an operation is called in a phase
// that does not allow it.
var ErrInvalidBattleState = errors.New("operation not valid in current battle state")

// Battle wraps a GameState in a phase machine: built, started, advanced one
// turn at a time, and concluded. The engine state itself stays a plain value
// underneath so it can be cloned and snapshotted.
type Battle struct {
	ID uuid.UUID

	state  GameState
	phase  BattlePhase
	winner int

	// eventLog accumulates every event produced over the battle, in the
	// order they were applied, so a battle can be replayed.
	eventLog []StateEvent
}

// NewBattle builds a battle between two named parties. Both parties must have
// at least one member.
func NewBattle(nameOne string, teamOne []Creature, nameTwo string, teamTwo []Creature, chart *TypeChart, seed rand.PCG) (*Battle, error) {
	if len(teamOne) == 0 || len(teamTwo) == 0 {
		return nil, fmt.Errorf("both sides need at least one creature")
	}

	state := NewState(teamOne, teamTwo, chart, seed)
	state.PlayerOne.Name = nameOne
	state.PlayerTwo.Name = nameTwo

	return &Battle{
		ID:     uuid.New(),
		state:  state,
		winner: -1,
	}, nil
}

// Start moves the battle into progress and sends in each side's first
// creature. Starting twice is an error.
func (b *Battle) Start() error {
	if b.phase != PHASE_NOT_STARTED {
		return fmt.Errorf("%w: battle already started", ErrInvalidBattleState)
	}

	b.phase = PHASE_IN_PROGRESS

	internalLogger.WithName("battle").Info("battle started", "battle_id", b.ID, "player_one", b.state.PlayerOne.Name, "player_two", b.state.PlayerTwo.Name)

	events := []StateEvent{
		NewFmtMessageEvent("%s sent in %s!", b.state.PlayerOne.Name, b.state.PlayerOne.Active().Name),
		NewFmtMessageEvent("%s sent in %s!", b.state.PlayerTwo.Name, b.state.PlayerTwo.Active().Name),
	}
	b.applyEvents(events)

	return nil
}

// Advance resolves one turn from both sides' actions. It is an error before
// Start or after the battle concludes. A side whose active creature fainted
// last turn must have sent a replacement (or be submitting a SwitchAction
// now); a side that cannot or will not replace loses.
func (b *Battle) Advance(actionOne Action, actionTwo Action) (TurnResult, error) {
	if b.phase != PHASE_IN_PROGRESS {
		return TurnResult{}, fmt.Errorf("%w: battle is not in progress", ErrInvalidBattleState)
	}

	if result, conceded := b.checkUnreplacedActives(actionOne, actionTwo); conceded {
		return result, nil
	}

	result := ProcessTurn(&b.state, []Action{actionOne, actionTwo})
	b.applyEvents(result.Events)

	if result.Kind == RESULT_GAMEOVER {
		b.conclude(result.Winner)
	}

	return result, nil
}

// checkUnreplacedActives enforces the replacement rule: a fainted active
// creature must be swapped out before the next turn. A side that still has
// members on the bench but submits anything other than a switch forfeits.
func (b *Battle) checkUnreplacedActives(actionOne Action, actionTwo Action) (TurnResult, bool) {
	oneForfeits := b.sideRefusesReplacement(&b.state.PlayerOne, actionOne)
	twoForfeits := b.sideRefusesReplacement(&b.state.PlayerTwo, actionTwo)

	if !oneForfeits && !twoForfeits {
		return TurnResult{}, false
	}

	winner := 0
	switch {
	case oneForfeits && !twoForfeits:
		winner = SIDE_TWO
	case twoForfeits && !oneForfeits:
		winner = SIDE_ONE
	}

	events := make([]StateEvent, 0)
	if oneForfeits {
		events = append(events, NewFmtMessageEvent("%s did not send in a replacement!", b.state.PlayerOne.Name))
	}
	if twoForfeits {
		events = append(events, NewFmtMessageEvent("%s did not send in a replacement!", b.state.PlayerTwo.Name))
	}

	b.applyEvents(events)
	b.conclude(winner)

	return TurnResult{
		Kind:   RESULT_GAMEOVER,
		Events: events,
		Winner: winner,
	}, true
}

func (b *Battle) sideRefusesReplacement(player *Player, action Action) bool {
	if !player.ActiveKOed || player.Active().Alive() {
		return false
	}

	if len(player.AliveIndexes()) == 0 {
		// nothing left to send in; the normal game-over path handles this
		return false
	}

	_, isSwitch := action.(SwitchAction)

	return !isSwitch
}

// SetActive swaps a side's active creature directly, outside of turn
// resolution. This is how a replacement is sent in after a faint. The target
// must be an alive party member other than the current active.
func (b *Battle) SetActive(side int, index int) error {
	if b.phase != PHASE_IN_PROGRESS {
		return fmt.Errorf("%w: battle is not in progress", ErrInvalidBattleState)
	}

	player := b.state.GetPlayer(side)

	if index < 0 || index >= len(player.Team) {
		return fmt.Errorf("switch index %d out of range", index)
	}

	if !player.Team[index].Alive() {
		return fmt.Errorf("%s has fainted and cannot battle", player.Team[index].Name)
	}

	if index == player.ActiveIndex {
		return fmt.Errorf("%s is already in battle", player.Team[index].Name)
	}

	b.applyEvents([]StateEvent{SwitchEvent{PlayerIndex: side, SwitchIndex: index}})
	player.ActiveKOed = false

	return nil
}

func (b *Battle) conclude(winner int) {
	b.phase = PHASE_CONCLUDED
	b.winner = winner

	events := make([]StateEvent, 0)
	switch winner {
	case 0:
		events = append(events, NewMessageEvent("The battle ended in a draw!"))
	default:
		events = append(events, NewFmtMessageEvent("%s won the battle!", b.state.GetPlayer(winner).Name))
	}

	b.applyEvents(events)

	internalLogger.WithName("battle").Info("battle concluded", "battle_id", b.ID, "winner", winner, "turns", b.state.Turn)
}

func (b *Battle) applyEvents(events []StateEvent) {
	b.eventLog = append(b.eventLog, events...)
	ApplyEventsToState(&b.state, TurnResult{Kind: RESULT_RESOLVED, Events: events})
}

func (b *Battle) Phase() BattlePhase {
	return b.phase
}

// State returns a pointer to the live battle state. Callers that want to
// experiment should Clone it first.
func (b *Battle) State() *GameState {
	return &b.state
}

// Winner returns the winning side once the battle has concluded: SIDE_ONE,
// SIDE_TWO, or 0 for a draw. Before conclusion it returns -1.
func (b *Battle) Winner() int {
	if b.phase != PHASE_CONCLUDED {
		return -1
	}

	return b.winner
}

// EventLog returns a copy of every event applied so far, in order. The log
// lives for the current process only: a battle rebuilt with RestoreBattle
// starts its log at the restore point, with MessageHistory carrying the
// pre-snapshot record.
func (b *Battle) EventLog() []StateEvent {
	log := make([]StateEvent, len(b.eventLog))
	copy(log, b.eventLog)

	return log
}
