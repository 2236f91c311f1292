package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/zerologr"
	"github.com/rs/zerolog"

	"github.com/fray-engine/fray"
	"github.com/fray-engine/fray/data"
)

func main() {
	var (
		seed    = flag.Uint64("seed", 0, "fixed rng seed, 0 for random")
		auto    = flag.Bool("auto", false, "run both sides on policies and print the battle log")
		debug   = flag.Bool("debug", false, "enable engine debug logging to fray.log")
		logPath = flag.String("log", "fray.log", "log file location")
	)
	flag.Parse()

	if *debug {
		logFile, err := os.OpenFile(*logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not open log file: %s\n", err)
			os.Exit(1)
		}
		defer logFile.Close()

		zl := zerolog.New(logFile).With().Timestamp().Logger()
		zerologr.VerbosityFieldName = ""
		fray.SetLogger(zerologr.New(&zl))
	}

	registry, err := data.Default()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load battle data: %s\n", err)
		os.Exit(1)
	}

	rngSeed := fray.CreateRandomStateSeed()
	if *seed != 0 {
		rngSeed = *rand.NewPCG(*seed, *seed)
	}

	battle, err := buildDemoBattle(registry, rngSeed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not build battle: %s\n", err)
		os.Exit(1)
	}

	if err := battle.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "could not start battle: %s\n", err)
		os.Exit(1)
	}

	if *auto {
		runHeadless(battle)
		return
	}

	m := newBattleModel(battle, registry)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running program: %s\n", err)
		os.Exit(1)
	}
}

func buildDemoBattle(registry *data.Registry, seed rand.PCG) (*fray.Battle, error) {
	teamOne := make([]fray.Creature, 0, 3)
	teamTwo := make([]fray.Creature, 0, 3)

	for _, def := range [][]string{
		{"emberwolf", "flamethrower", "slash", "will-o-wisp", "quick-attack"},
		{"voltvern", "thunderbolt", "air-slash", "thunder-wave", "quick-attack"},
		{"thornstag", "giga-drain", "toxic", "synthesis", "earthquake"},
	} {
		creature, err := registry.NewCreature(def[0], 50, def[1:]...)
		if err != nil {
			return nil, err
		}

		teamOne = append(teamOne, creature)
	}

	for _, def := range [][]string{
		{"tidefin", "hydro-pump", "ice-beam", "light-screen", "tackle"},
		{"stonehide", "earthquake", "slash", "spikes", "growl"},
		{"shadeling", "shadow-ball", "confuse-ray", "hypnosis", "toxic"},
	} {
		creature, err := registry.NewCreature(def[0], 50, def[1:]...)
		if err != nil {
			return nil, err
		}

		teamTwo = append(teamTwo, creature)
	}

	return fray.NewBattle("You", teamOne, "Rival", teamTwo, registry.Chart(), seed)
}

// runHeadless plays both sides on policies until the battle concludes and
// prints the message history.
func runHeadless(battle *fray.Battle) {
	policyOne := fray.MaxDamagePolicy{}
	policyTwo := fray.RandomPolicy{}

	// hard cap so a degenerate matchup can't spin forever
	for turn := 0; battle.Phase() == fray.PHASE_IN_PROGRESS && turn < 500; turn++ {
		state := battle.State()

		result, err := battle.Advance(
			policyOne.ChooseAction(state, fray.SIDE_ONE),
			policyTwo.ChooseAction(state, fray.SIDE_TWO),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "battle error: %s\n", err)
			os.Exit(1)
		}

		if result.Kind == fray.RESULT_FORCESWITCH {
			replaceFainted(battle, result)
		}
	}

	for _, message := range battle.State().MessageHistory {
		fmt.Println(message)
	}
}

func replaceFainted(battle *fray.Battle, result fray.TurnResult) {
	pairs := []struct {
		ko   bool
		side int
	}{
		{result.SideOneKO, fray.SIDE_ONE},
		{result.SideTwoKO, fray.SIDE_TWO},
	}

	for _, pair := range pairs {
		if !pair.ko {
			continue
		}

		alive := battle.State().GetPlayer(pair.side).AliveIndexes()
		if len(alive) == 0 {
			continue
		}

		if err := battle.SetActive(pair.side, alive[0]); err != nil {
			fmt.Fprintf(os.Stderr, "replacement error: %s\n", err)
		}
	}
}
