package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/fray-engine/fray"
	"github.com/fray-engine/fray/data"
)

// ui state machine
const (
	UI_CHOOSING_MOVE = iota
	UI_CHOOSING_SWITCH
	UI_SHOWING_MESSAGES
	UI_GAME_OVER
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	activeStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
	messageStyle  = lipgloss.NewStyle().Italic(true)
	hpHighStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	hpLowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Switch key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Select: key.NewBinding(key.WithKeys("enter", " ")),
	Switch: key.NewBinding(key.WithKeys("s")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c")),
}

type battleModel struct {
	battle   *fray.Battle
	registry *data.Registry
	opponent fray.ActionPolicy

	uiState int
	cursor  int

	// messages not yet shown to the player, drained one per keypress
	pending []string
	// how much of the battle's history has been drained already
	historyMark int

	// the player's fainted active needs a replacement before the next turn
	forcedSwitch bool
}

func newBattleModel(battle *fray.Battle, registry *data.Registry) battleModel {
	return battleModel{
		battle:      battle,
		registry:    registry,
		opponent:    fray.MaxDamagePolicy{},
		uiState:     UI_SHOWING_MESSAGES,
		pending:     append([]string(nil), battle.State().MessageHistory...),
		historyMark: len(battle.State().MessageHistory),
	}
}

func (m battleModel) Init() tea.Cmd {
	return nil
}

func (m battleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(keyMsg, keys.Quit) {
		return m, tea.Quit
	}

	switch m.uiState {
	case UI_SHOWING_MESSAGES:
		return m.advanceMessages(), nil
	case UI_GAME_OVER:
		return m, tea.Quit
	case UI_CHOOSING_MOVE:
		return m.updateMoveMenu(keyMsg), nil
	case UI_CHOOSING_SWITCH:
		return m.updateSwitchMenu(keyMsg), nil
	}

	return m, nil
}

func (m battleModel) advanceMessages() battleModel {
	if len(m.pending) > 1 {
		m.pending = m.pending[1:]
		return m
	}

	m.pending = nil

	if m.battle.Phase() == fray.PHASE_CONCLUDED {
		m.uiState = UI_GAME_OVER
		return m
	}

	if m.forcedSwitch {
		m.uiState = UI_CHOOSING_SWITCH
	} else {
		m.uiState = UI_CHOOSING_MOVE
	}
	m.cursor = 0

	return m
}

func (m battleModel) updateMoveMenu(msg tea.KeyMsg) battleModel {
	moves := m.playerMoves()

	switch {
	case key.Matches(msg, keys.Up):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, keys.Down):
		m.cursor = min(len(moves)-1, m.cursor+1)
	case key.Matches(msg, keys.Switch):
		m.uiState = UI_CHOOSING_SWITCH
		m.cursor = 0
	case key.Matches(msg, keys.Select):
		moveIndex := -1
		if m.cursor < len(moves) && moves[m.cursor].PP > 0 {
			moveIndex = m.cursor
		}

		return m.runTurn(fray.NewAttackAction(fray.SIDE_ONE, moveIndex))
	}

	return m
}

func (m battleModel) updateSwitchMenu(msg tea.KeyMsg) battleModel {
	bench := m.benchIndexes()

	switch {
	case key.Matches(msg, keys.Up):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, keys.Down):
		m.cursor = min(len(bench)-1, m.cursor+1)
	case key.Matches(msg, keys.Switch):
		if !m.forcedSwitch {
			m.uiState = UI_CHOOSING_MOVE
			m.cursor = 0
		}
	case key.Matches(msg, keys.Select):
		if len(bench) == 0 {
			return m
		}

		target := bench[m.cursor]

		if m.forcedSwitch {
			if err := m.battle.SetActive(fray.SIDE_ONE, target); err != nil {
				m.pending = []string{err.Error()}
				m.uiState = UI_SHOWING_MESSAGES
				return m
			}

			m.forcedSwitch = false
			return m.drainHistory()
		}

		return m.runTurn(fray.NewSwitchAction(m.battle.State(), fray.SIDE_ONE, target))
	}

	return m
}

func (m battleModel) runTurn(action fray.Action) battleModel {
	state := m.battle.State()
	opposingAction := m.opponent.ChooseAction(state, fray.SIDE_TWO)

	result, err := m.battle.Advance(action, opposingAction)
	if err != nil {
		m.pending = []string{err.Error()}
		m.uiState = UI_SHOWING_MESSAGES
		return m
	}

	if result.Kind == fray.RESULT_FORCESWITCH {
		if result.SideOneKO {
			m.forcedSwitch = true
		}

		// the opposing side replaces on its own
		if result.SideTwoKO {
			alive := m.battle.State().GetPlayer(fray.SIDE_TWO).AliveIndexes()
			if len(alive) > 0 {
				_ = m.battle.SetActive(fray.SIDE_TWO, alive[0])
			}
		}
	}

	return m.drainHistory()
}

// drainHistory queues up any battle messages produced since the last drain.
func (m battleModel) drainHistory() battleModel {
	history := m.battle.State().MessageHistory
	m.pending = append([]string(nil), history[m.historyMark:]...)
	m.historyMark = len(history)

	if len(m.pending) == 0 {
		m.pending = []string{"..."}
	}

	m.uiState = UI_SHOWING_MESSAGES

	return m
}

func (m battleModel) playerMoves() []fray.Move {
	return m.battle.State().PlayerOne.Active().Moves
}

func (m battleModel) benchIndexes() []int {
	player := m.battle.State().PlayerOne

	return lo.Filter(player.AliveIndexes(), func(i int, _ int) bool {
		return i != player.ActiveIndex
	})
}

func (m battleModel) View() string {
	state := m.battle.State()

	var b strings.Builder

	b.WriteString(creaturePanel(state.PlayerTwo))
	b.WriteString("\n")
	b.WriteString(creaturePanel(state.PlayerOne))
	b.WriteString("\n\n")

	switch m.uiState {
	case UI_SHOWING_MESSAGES:
		if len(m.pending) > 0 {
			b.WriteString(messageStyle.Render(m.pending[0]))
		}
		b.WriteString(faintStyle.Render("\n\n(press any key)"))
	case UI_GAME_OVER:
		history := state.MessageHistory
		if len(history) > 0 {
			b.WriteString(messageStyle.Render(history[len(history)-1]))
		}
		b.WriteString(faintStyle.Render("\n\n(press any key to exit)"))
	case UI_CHOOSING_MOVE:
		b.WriteString(titleStyle.Render("Choose a move") + "\n")

		for i, move := range m.playerMoves() {
			line := fmt.Sprintf("%s  %d/%d PP", data.DisplayName(move.Name), move.PP, move.MaxPP)
			b.WriteString(menuLine(line, i == m.cursor, move.PP == 0))
		}

		b.WriteString(faintStyle.Render("\ns: switch  q: quit"))
	case UI_CHOOSING_SWITCH:
		b.WriteString(titleStyle.Render("Choose a replacement") + "\n")

		bench := m.benchIndexes()
		if len(bench) == 0 {
			b.WriteString(faintStyle.Render("no one left to send in"))
		}

		for i, idx := range bench {
			creature := state.PlayerOne.Team[idx]
			line := fmt.Sprintf("%s  %d/%d HP", data.DisplayName(creature.Name), creature.Hp, creature.MaxHp)
			b.WriteString(menuLine(line, i == m.cursor, false))
		}

		if !m.forcedSwitch {
			b.WriteString(faintStyle.Render("\ns: back  q: quit"))
		}
	}

	return b.String()
}

func menuLine(line string, selected bool, disabled bool) string {
	prefix := "  "
	if selected {
		prefix = "> "
		line = selectedStyle.Render(line)
	} else if disabled {
		line = faintStyle.Render(line)
	}

	return prefix + line + "\n"
}

func creaturePanel(player fray.Player) string {
	creature := player.Active()

	status := ""
	if creature.Status != fray.STATUS_NONE {
		status = "  [" + fray.StatusName(creature.Status) + "]"
	}

	header := fmt.Sprintf("%s  Lv%d%s", data.DisplayName(creature.Name), creature.Level, status)
	hp := fmt.Sprintf("%s %d/%d", hpBar(creature.Hp, creature.MaxHp), creature.Hp, creature.MaxHp)

	return activeStyle.Render(player.Name + "\n" + header + "\n" + hp)
}

func hpBar(hp uint, maxHp uint) string {
	const width = 20

	filled := 0
	if maxHp > 0 {
		filled = int(float64(width) * float64(hp) / float64(maxHp))
	}

	if filled == 0 && hp > 0 {
		filled = 1
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if float64(hp) <= float64(maxHp)*0.25 {
		return hpLowStyle.Render(bar)
	}

	return hpHighStyle.Render(bar)
}
