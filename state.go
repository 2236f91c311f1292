package fray

import (
	"maps"
	"math/rand/v2"
	"slices"

	"github.com/samber/lo"
)

// Player is one side of the battle: a party of creatures and which of them is
// currently active.
type Player struct {
	Name        string
	Team        []Creature
	ActiveIndex int

	// Whether the player's active creature was ko'ed this turn. This is
	// separate from Active().Fainted() since it persists until the
	// replacement comes in and must be reset each turn.
	ActiveKOed bool

	// SideConditions maps a SIDECOND_* constant to its remaining turns
	// (or layer count for spikes).
	SideConditions map[int]int
}

func (p Player) Active() *Creature {
	return p.Get(p.ActiveIndex)
}

// Get returns a pointer to the party member at index.
func (p Player) Get(index int) *Creature {
	return &p.Team[index]
}

// Defeated reports whether every party member has fainted.
func (p Player) Defeated() bool {
	for _, creature := range p.Team {
		if creature.Alive() {
			internalLogger.V(2).Info("side still has creatures", "player_name", p.Name, "alive_creature_name", creature.Name)
			return false
		}
	}

	return true
}

// AliveIndexes lists party indexes that can still battle.
func (p Player) AliveIndexes() []int {
	indexes := make([]int, 0)

	for i, creature := range p.Team {
		if creature.Alive() {
			indexes = append(indexes, i)
		}
	}

	return indexes
}

// GameState is the full battle state for both sides. It is a plain value;
// Clone gives an independent copy so turns can be resolved speculatively.
type GameState struct {
	PlayerOne Player
	PlayerTwo Player

	Turn         int
	Weather      int
	WeatherTurns int
	Terrain      int

	// An RngSource is stored here directly instead of inside an instance of
	// rand.Rand. Snapshots then carry the exact generator state and a
	// restored battle replays identically.
	RngSource rand.PCG

	MessageHistory []string

	// Chart is shared, immutable config rather than state, so it is
	// re-injected on restore instead of serialized.
	Chart *TypeChart `json:"-"`
}

// NewState builds a fresh state from two parties. Every creature is reset to
// its battle-start condition.
func NewState(teamOne []Creature, teamTwo []Creature, chart *TypeChart, seed rand.PCG) GameState {
	teamOne = slices.Clone(teamOne)
	teamTwo = slices.Clone(teamTwo)

	lo.ForEach(teamOne, func(_ Creature, i int) { teamOne[i].Init() })
	lo.ForEach(teamTwo, func(_ Creature, i int) { teamTwo[i].Init() })

	if chart == nil {
		chart = DefaultTypeChart()
	}

	return GameState{
		PlayerOne: Player{Name: "Player One", Team: teamOne, SideConditions: make(map[int]int)},
		PlayerTwo: Player{Name: "Player Two", Team: teamTwo, SideConditions: make(map[int]int)},
		Turn:      0,
		RngSource: seed,
		Chart:     chart,
	}
}

func (g *GameState) GetPlayer(index int) *Player {
	if index == SIDE_ONE {
		return &g.PlayerOne
	} else {
		return &g.PlayerTwo
	}
}

// Outcome returns -1 while the battle continues, the winning side once the
// other is defeated, or 0 on a simultaneous wipe (a draw).
func (g *GameState) Outcome() int {
	oneLost := g.PlayerOne.Defeated()
	twoLost := g.PlayerTwo.Defeated()

	switch {
	case oneLost && twoLost:
		return 0
	case twoLost:
		return SIDE_ONE
	case oneLost:
		return SIDE_TWO
	}

	return -1
}

// Clone creates a copy of this state, handling new slice and map allocation.
// Each creature's move slice is cloned too: events write PP through it and a
// speculative apply must never touch the original.
func (g GameState) Clone() GameState {
	newState := g
	newState.PlayerOne.Team = cloneTeam(g.PlayerOne.Team)
	newState.PlayerTwo.Team = cloneTeam(g.PlayerTwo.Team)
	newState.PlayerOne.SideConditions = maps.Clone(g.PlayerOne.SideConditions)
	newState.PlayerTwo.SideConditions = maps.Clone(g.PlayerTwo.SideConditions)
	newState.MessageHistory = slices.Clone(g.MessageHistory)

	return newState
}

func cloneTeam(team []Creature) []Creature {
	cloned := slices.Clone(team)
	for i := range cloned {
		cloned[i].Moves = slices.Clone(cloned[i].Moves)
	}

	return cloned
}

func (g *GameState) CreateRng() *rand.Rand {
	return rand.New(&g.RngSource)
}

// CreateNewRng creates a new COPY of RngSource such that RNG calls to the
// copy do not affect the original. The source must be copied to a local
// first; the returned Rand would otherwise still point at g.RngSource.
func (g *GameState) CreateNewRng() rand.Rand {
	source := g.RngSource
	return *rand.New(&source)
}

// InvertSideIndex maps SIDE_ONE to SIDE_TWO and back.
func InvertSideIndex(initial int) int {
	if initial == SIDE_ONE {
		return SIDE_TWO
	}

	return SIDE_ONE
}

// getPlayerPair returns the player with the given index first and the
// opposing player second.
func getPlayerPair(gameState *GameState, activeSideIndex int) (*Player, *Player) {
	return gameState.GetPlayer(activeSideIndex), gameState.GetPlayer(InvertSideIndex(activeSideIndex))
}
