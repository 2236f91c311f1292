package fray

// Action is a choice one side submits for a turn. Actions expand into the
// low-level StateEvents that actually mutate state.
type Action interface {
	UpdateState(GameState) []StateEvent

	GetCtx() ActionCtx
}

type ActionCtx struct {
	PlayerID int
}

func NewActionCtx(playerID int) ActionCtx {
	return ActionCtx{PlayerID: playerID}
}

type AttackAction struct {
	Ctx ActionCtx

	// MoveIndex of -1 means struggle.
	MoveIndex int
}

func NewAttackAction(playerID int, moveIndex int) AttackAction {
	return AttackAction{
		Ctx:       NewActionCtx(playerID),
		MoveIndex: moveIndex,
	}
}

func (a AttackAction) UpdateState(state GameState) []StateEvent {
	return []StateEvent{AttackEvent{AttackerID: a.Ctx.PlayerID, MoveIndex: a.MoveIndex}}
}

func (a AttackAction) GetCtx() ActionCtx {
	return a.Ctx
}

type SwitchAction struct {
	Ctx ActionCtx

	SwitchIndex int
	Creature    Creature
}

func NewSwitchAction(state *GameState, playerID int, switchIndex int) SwitchAction {
	return SwitchAction{
		Ctx:         NewActionCtx(playerID),
		SwitchIndex: switchIndex,

		Creature: state.GetPlayer(playerID).Team[switchIndex],
	}
}

func (a SwitchAction) UpdateState(state GameState) []StateEvent {
	return []StateEvent{SwitchEvent{PlayerIndex: a.Ctx.PlayerID, SwitchIndex: a.SwitchIndex}}
}

func (a SwitchAction) GetCtx() ActionCtx {
	return a.Ctx
}

type SkipAction struct {
	Ctx ActionCtx
}

func NewSkipAction(playerID int) SkipAction {
	return SkipAction{
		Ctx: NewActionCtx(playerID),
	}
}

func (a SkipAction) UpdateState(state GameState) []StateEvent {
	return []StateEvent{
		NewMessageEvent("skip turn"),
	}
}

func (a SkipAction) GetCtx() ActionCtx {
	return a.Ctx
}
