package fray

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"

	"github.com/samber/lo"
)

const (
	RESULT_RESOLVED = iota + 1
	RESULT_GAMEOVER
	RESULT_FORCESWITCH
)

// TurnResult represents the result of a turn or part of a turn (in the case
// of a forced replacement). Unlike events, TurnResult is a single struct with
// a tag, Kind, that determines the result.
type TurnResult struct {
	Kind   int
	Events []StateEvent

	// Winner is set for RESULT_GAMEOVER: SIDE_ONE, SIDE_TWO, or 0 for a draw.
	Winner int

	// SideOneKO and SideTwoKO are set for RESULT_FORCESWITCH and name the
	// sides that must send in a replacement.
	SideOneKO bool
	SideTwoKO bool
}

// ProcessTurn resolves one full turn given both sides' submitted actions.
// Switches always resolve before other actions; everything else goes in
// priority order, with effective speed breaking priority ties and a coin flip
// breaking exact speed ties. The returned events have NOT been applied;
// callers run them through ApplyEventsToState (or an EventIter) themselves.
func ProcessTurn(gameState *GameState, actions []Action) TurnResult {
	playerOne := &gameState.PlayerOne
	playerTwo := &gameState.PlayerTwo

	switches := make([]SwitchAction, 0)
	otherActions := make([]Action, 0)

	events := make([]StateEvent, 0)

	backFromForceSwitch := playerOne.ActiveKOed || playerTwo.ActiveKOed

	for _, a := range actions {
		switch a := a.(type) {
		case SwitchAction:
			switches = append(switches, a)
		default:
			otherActions = append(otherActions, a)
		}
	}

	oneCreature := playerOne.Active()
	twoCreature := playerTwo.Active()

	if !backFromForceSwitch {
		internalLogger.WithName("turn_resolver").Info(fmt.Sprintf("\n\n======== TURN %d =========", gameState.Turn))
		// Reset turn flags here rather than in an event; there is no visual
		// for them and it saves a do-nothing event at the head of every turn.
		oneCreature.CanAttackThisTurn = true
		oneCreature.SwitchedInThisTurn = false
		oneCreature.Flinched = false

		twoCreature.CanAttackThisTurn = true
		twoCreature.SwitchedInThisTurn = false
		twoCreature.Flinched = false
	}

	for _, action := range actions {
		internalLogger.V(1).Info("player action", "player_id", action.GetCtx().PlayerID, "action_name", reflect.TypeOf(action).Name())
	}

	events = append(events, switchEvents(*gameState, switches)...)

	// Properly end the turn after forced replacements are dealt with.
	if backFromForceSwitch {
		internalLogger.V(1).Info("coming back from force switch")
		playerOne.ActiveKOed = false
		playerTwo.ActiveKOed = false

		gameState.Turn++

		return TurnResult{
			Kind:   RESULT_RESOLVED,
			Events: events,
		}
	}

	events = append(events, actionEvents(gameState, otherActions)...)

	// Speculatively play the events so far to see whether the battle is
	// already decided before end-of-turn effects run.
	clonedState := gameState.Clone()
	ApplyEventsToState(&clonedState, TurnResult{
		Kind:   RESULT_RESOLVED,
		Events: events,
	})

	if result, over := gameOverResult(&clonedState, events); over {
		return result
	}

	if !clonedState.PlayerOne.Active().Alive() || !clonedState.PlayerTwo.Active().Alive() {
		result := TurnResult{
			Kind:   RESULT_FORCESWITCH,
			Events: events,
		}

		if !clonedState.PlayerOne.Active().Alive() {
			playerOne.ActiveKOed = true
			result.SideOneKO = true
		}

		if !clonedState.PlayerTwo.Active().Alive() {
			playerTwo.ActiveKOed = true
			result.SideTwoKO = true
		}

		internalLogger.V(1).Info("active creature fainted, returning force switch", "side_one_ko", result.SideOneKO, "side_two_ko", result.SideTwoKO)

		return result
	}

	events = append(events, endOfTurnEvents(gameState)...)

	// End-of-turn chip damage can finish the battle too.
	clonedState = gameState.Clone()
	ApplyEventsToState(&clonedState, TurnResult{
		Kind:   RESULT_RESOLVED,
		Events: events,
	})

	if result, over := gameOverResult(&clonedState, events); over {
		return result
	}

	if !clonedState.PlayerOne.Active().Alive() || !clonedState.PlayerTwo.Active().Alive() {
		result := TurnResult{
			Kind:   RESULT_FORCESWITCH,
			Events: events,
		}

		if !clonedState.PlayerOne.Active().Alive() {
			playerOne.ActiveKOed = true
			result.SideOneKO = true
		}

		if !clonedState.PlayerTwo.Active().Alive() {
			playerTwo.ActiveKOed = true
			result.SideTwoKO = true
		}

		return result
	}

	gameState.Turn++

	return TurnResult{
		Kind:   RESULT_RESOLVED,
		Events: events,
	}
}

func gameOverResult(state *GameState, events []StateEvent) (TurnResult, bool) {
	outcome := state.Outcome()
	if outcome == -1 {
		return TurnResult{}, false
	}

	return TurnResult{
		Kind:   RESULT_GAMEOVER,
		Events: events,
		Winner: outcome,
	}, true
}

// ApplyEventsToState runs every event of a turn result against the state,
// appending the produced messages to the state's history.
func ApplyEventsToState(gameState *GameState, result TurnResult) {
	eventIter := NewEventIter()
	eventIter.AddEvents(result.Events)

	for {
		messages, next := eventIter.Next(gameState)
		if !next {
			break
		}

		gameState.MessageHistory = append(gameState.MessageHistory, messages...)
	}
}

func switchEvents(gameState GameState, switches []SwitchAction) []StateEvent {
	events := make([]StateEvent, 0)

	// Faster creatures switch out first.
	slices.SortFunc(switches, func(a, b SwitchAction) int {
		return cmp.Compare(a.Creature.Speed(), b.Creature.Speed())
	})
	slices.Reverse(switches)

	lo.ForEach(switches, func(a SwitchAction, i int) {
		events = append(events, a.UpdateState(gameState)...)
	})

	return events
}

func actionEvents(gameState *GameState, actions []Action) []StateEvent {
	events := make([]StateEvent, 0)

	// A single pre-drawn coin flip settles exact speed ties; drawing inside
	// the comparator would make sort order depend on comparison count.
	tieCoin := gameState.CreateRng().IntN(2)

	actionPriority := func(a Action) int {
		switch a := a.(type) {
		case AttackAction:
			creature := gameState.GetPlayer(a.GetCtx().PlayerID).Active()
			if a.MoveIndex < 0 || a.MoveIndex >= len(creature.Moves) {
				return 0
			}

			return creature.Moves[a.MoveIndex].Priority
		case SkipAction, *SkipAction:
			return -100
		default:
			internalLogger.Error(fmt.Errorf("unaccounted for action while trying to sort actions"), "", "action_name", reflect.TypeOf(a).Name())
			return 0
		}
	}

	slices.SortFunc(actions, func(a, b Action) int {
		aSpeed := gameState.GetPlayer(a.GetCtx().PlayerID).Active().Speed()
		bSpeed := gameState.GetPlayer(b.GetCtx().PlayerID).Active().Speed()

		aPriority := actionPriority(a)
		bPriority := actionPriority(b)

		internalLogger.V(2).Info("sort debug",
			"aPlayer", a.GetCtx().PlayerID,
			"bPlayer", b.GetCtx().PlayerID,
			"aSpeed", aSpeed,
			"bSpeed", bSpeed,
			"aPriority", aPriority,
			"bPriority", bPriority,
		)

		if priorComp := cmp.Compare(aPriority, bPriority); priorComp != 0 {
			return priorComp
		}

		if speedComp := cmp.Compare(aSpeed, bSpeed); speedComp != 0 {
			return speedComp
		}

		// Coin result decides which side goes first this turn.
		if a.GetCtx().PlayerID == SIDE_ONE {
			if tieCoin == 0 {
				return 1
			}
			return -1
		}

		if tieCoin == 0 {
			return -1
		}
		return 1
	})

	// Reverse for desc order
	slices.Reverse(actions)

	lo.ForEach(actions, func(a Action, i int) {
		switch a.(type) {
		case AttackAction, *AttackAction, SkipAction, *SkipAction:
			player := gameState.GetPlayer(a.GetCtx().PlayerID)
			creature := player.Active()

			internalLogger.V(2).Info("attack state update",
				"attackIndex", i,
				"attackerSpeed", creature.Speed(),
				"attackerConfCount", creature.ConfusionCount,
			)

			if creature.CanAttackThisTurn {
				creature.CanAttackThisTurn = !creature.SwitchedInThisTurn
			}

			if !creature.Alive() {
				internalLogger.Info("attack was skipped because the attacker fainted", "creature_name", creature.Name)
				return
			}

			if !creature.CanAttackThisTurn {
				internalLogger.Info("attack was skipped because it was marked as unable to attack for the turn", "creature_name", creature.Name)
				return
			}

			// Status gates wrap the attack so the skip roll happens in
			// event order, not at sort time.
			switch creature.Status {
			case STATUS_PARA:
				events = append(events, ParaEvent{
					PlayerIndex:         a.GetCtx().PlayerID,
					FollowUpAttackEvent: a.UpdateState(*gameState)[0],
				})
				return
			case STATUS_SLEEP:
				events = append(events, SleepEvent{
					PlayerIndex:         a.GetCtx().PlayerID,
					FollowUpAttackEvent: a.UpdateState(*gameState)[0],
				})
				return
			case STATUS_FROZEN:
				events = append(events, FrozenEvent{
					PlayerIndex:         a.GetCtx().PlayerID,
					FollowUpAttackEvent: a.UpdateState(*gameState)[0],
				})
				return
			}

			if creature.ConfusionCount > 0 {
				events = append(events, ConfusionEvent{
					PlayerIndex:         a.GetCtx().PlayerID,
					FollowUpAttackEvent: a.UpdateState(*gameState)[0],
				})
				return
			}

			events = append(events, a.UpdateState(*gameState)...)
		default:
			events = append(events, a.UpdateState(*gameState)...)
		}
	})

	return events
}

func endOfTurnEvents(gameState *GameState) []StateEvent {
	events := make([]StateEvent, 0)

	for _, side := range []int{SIDE_ONE, SIDE_TWO} {
		creature := gameState.GetPlayer(side).Active()

		switch creature.Status {
		case STATUS_BURN:
			events = append(events, BurnEvent{PlayerIndex: side})
		case STATUS_POISON:
			events = append(events, PoisonEvent{PlayerIndex: side})
		case STATUS_TOXIC:
			events = append(events, ToxicEvent{PlayerIndex: side})
		}

		if creature.BindCount > 0 {
			events = append(events, BindDamageEvent{PlayerIndex: side})
		}
	}

	switch gameState.Weather {
	case WEATHER_SANDSTORM:
		events = append(events, SandstormDamageEvent{PlayerIndex: SIDE_ONE})
		events = append(events, SandstormDamageEvent{PlayerIndex: SIDE_TWO})
	case WEATHER_HAIL:
		events = append(events, HailDamageEvent{PlayerIndex: SIDE_ONE})
		events = append(events, HailDamageEvent{PlayerIndex: SIDE_TWO})
	}

	if gameState.Terrain == TERRAIN_GRASSY {
		events = append(events, GrassyTerrainEvent{PlayerIndex: SIDE_ONE})
		events = append(events, GrassyTerrainEvent{PlayerIndex: SIDE_TWO})
	}

	events = append(events, EndOfTurnAbilityCheck{PlayerID: SIDE_ONE})
	events = append(events, EndOfTurnAbilityCheck{PlayerID: SIDE_TWO})

	events = append(events, FieldDecayEvent{})

	return events
}
