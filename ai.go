package fray

// ActionPolicy picks an action for one side of a battle. Policies only read
// the state; they never mutate it.
type ActionPolicy interface {
	ChooseAction(gameState *GameState, side int) Action
}

// MaxDamagePolicy picks the move with the highest expected damage, except
// when outsped, where it first looks for a move that can slow or paralyze
// the opponent. Failsafes to a skip action.
type MaxDamagePolicy struct{}

func (p MaxDamagePolicy) ChooseAction(gameState *GameState, side int) Action {
	player, opposingPlayer := getPlayerPair(gameState, side)

	if !player.Active().Alive() {
		// Switch on death
		for _, i := range player.AliveIndexes() {
			return NewSwitchAction(gameState, side, i)
		}

		return NewSkipAction(side)
	}

	creature := player.Active()
	opposing := opposingPlayer.Active()

	hasAnyMoves := false
	for _, move := range creature.Moves {
		if !move.IsNil() && move.PP > 0 {
			hasAnyMoves = true
			break
		}
	}

	if !hasAnyMoves {
		return NewAttackAction(side, -1)
	}

	bestMoveIndex := -1

	if creature.Speed() < opposing.Speed() {
		bestMoveIndex = bestSlowingMove(gameState, side)
	}

	if bestMoveIndex == -1 {
		bestMoveIndex = bestAttackingMove(gameState, side)
	}

	if bestMoveIndex == -1 {
		internalLogger.WithName("ai_move_selection").Info("creature has no usable moves", "creature_name", creature.Name)
		return NewAttackAction(side, -1)
	}

	return NewAttackAction(side, bestMoveIndex)
}

func bestAttackingMove(gameState *GameState, side int) int {
	player, opposingPlayer := getPlayerPair(gameState, side)

	creature := player.Active()
	opposing := opposingPlayer.Active()

	bestMoveIndex := -1
	var bestMoveDamage uint = 0

	for i, move := range creature.Moves {
		if move.IsNil() || move.PP <= 0 {
			continue
		}

		// A copy of the rng so the policy's rolls don't advance the
		// battle's own sequence.
		rng := gameState.CreateNewRng()

		field := FieldContext{Weather: gameState.Weather, Chart: gameState.Chart}

		// assume no crits
		moveDamage := Damage(*creature, *opposing, move, false, field, &rng)
		if moveDamage > bestMoveDamage {
			bestMoveIndex = i
			bestMoveDamage = moveDamage
		}
	}

	return bestMoveIndex
}

func bestSlowingMove(gameState *GameState, side int) int {
	player, opposingPlayer := getPlayerPair(gameState, side)

	creature := player.Active()
	opposing := opposingPlayer.Active()

	bestSlowChance := 0
	bestMove := -1

	for i, move := range creature.Moves {
		if move.IsNil() || move.PP <= 0 {
			continue
		}

		moveCanSlow := false
		for _, statChange := range move.StatChanges {
			if statChange.StatName == STAT_SPEED && statChange.Stages < 0 && !statChange.SelfTarget {
				moveCanSlow = true
			}
		}

		if moveCanSlow {
			if move.Accuracy > bestSlowChance {
				bestSlowChance = move.Accuracy
				bestMove = i
			}
		} else if move.StatusAilment.Status == STATUS_PARA && opposing.Status == STATUS_NONE {
			chance := move.StatusAilment.Chance
			if chance == 0 {
				chance = 100
			}

			if chance > bestSlowChance {
				bestSlowChance = chance
				bestMove = i
			}
		}
	}

	return bestMove
}

// RandomPolicy picks a uniformly random usable move, switching only when its
// active creature has fainted.
type RandomPolicy struct{}

func (p RandomPolicy) ChooseAction(gameState *GameState, side int) Action {
	player := gameState.GetPlayer(side)

	if !player.Active().Alive() {
		alive := player.AliveIndexes()
		if len(alive) == 0 {
			return NewSkipAction(side)
		}

		rng := gameState.CreateNewRng()

		return NewSwitchAction(gameState, side, alive[rng.IntN(len(alive))])
	}

	usable := make([]int, 0)
	for i, move := range player.Active().Moves {
		if !move.IsNil() && move.PP > 0 {
			usable = append(usable, i)
		}
	}

	if len(usable) == 0 {
		return NewAttackAction(side, -1)
	}

	rng := gameState.CreateNewRng()

	return NewAttackAction(side, usable[rng.IntN(len(usable))])
}
