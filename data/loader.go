package data

import (
	"bytes"
	"embed"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fray-engine/fray"
)

//go:embed files/species.csv files/moves.json files/typechart.yaml
var builtinFiles embed.FS

// Default loads the registry from the data files shipped with the module.
func Default() (*Registry, error) {
	speciesBytes, err := builtinFiles.ReadFile("files/species.csv")
	if err != nil {
		return nil, err
	}

	moveBytes, err := builtinFiles.ReadFile("files/moves.json")
	if err != nil {
		return nil, err
	}

	chartBytes, err := builtinFiles.ReadFile("files/typechart.yaml")
	if err != nil {
		return nil, err
	}

	return Load(speciesBytes, moveBytes, chartBytes)
}

// Load builds a registry from raw file contents: species as csv, moves as
// json, and the type chart as yaml.
func Load(speciesBytes []byte, moveBytes []byte, chartBytes []byte) (*Registry, error) {
	species, err := LoadSpecies(speciesBytes)
	if err != nil {
		return nil, fmt.Errorf("loading species: %w", err)
	}

	moves, err := LoadMoves(moveBytes)
	if err != nil {
		return nil, fmt.Errorf("loading moves: %w", err)
	}

	chart, err := LoadTypeChart(chartBytes)
	if err != nil {
		return nil, fmt.Errorf("loading type chart: %w", err)
	}

	return &Registry{species: species, moves: moves, chart: chart}, nil
}

// LoadSpecies takes in the bytes of a csv file with the columns:
// name, type1, type2, hp, attack, defense, sp_attack, sp_defense, speed,
// ability, in that order. Stat values must be valid integers.
func LoadSpecies(fileBytes []byte) (map[string]Species, error) {
	csvReader := csv.NewReader(bytes.NewBuffer(fileBytes))
	csvReader.Read()
	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, err
	}

	species := make(map[string]Species, len(rows))

	for _, row := range rows {
		if len(row) < 10 {
			return nil, fmt.Errorf("species row for %q has %d columns, want 10", row[0], len(row))
		}

		stats := [6]uint{}
		statNames := []string{"hp", "attack", "defense", "sp_attack", "sp_defense", "speed"}

		for i := range stats {
			value, err := strconv.ParseUint(row[3+i], 10, 16)
			if err != nil {
				return nil, fmt.Errorf("species %q: invalid %s: %w", row[0], statNames[i], err)
			}

			stats[i] = uint(value)
		}

		name := strings.ToLower(row[0])
		species[name] = Species{
			Name:  name,
			Type1: strings.ToLower(row[1]),
			Type2: strings.ToLower(row[2]),
			Stats: fray.BaseStats{
				Hp:       stats[0],
				Attack:   stats[1],
				Def:      stats[2],
				SpAttack: stats[3],
				SpDef:    stats[4],
				Speed:    stats[5],
			},
			Ability: strings.ToLower(row[9]),
		}
	}

	return species, nil
}

// moveFile is the json shape of one move definition.
type moveFile struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Power    uint   `json:"power"`
	Accuracy int    `json:"accuracy"`
	PP       int    `json:"pp"`
	Priority int    `json:"priority"`
	HighCrit bool   `json:"high_crit"`

	StatChanges []struct {
		Stat   string `json:"stat"`
		Stages int    `json:"stages"`
		Chance int    `json:"chance"`
		Self   bool   `json:"self"`
	} `json:"stat_changes"`

	Ailment       string  `json:"ailment"`
	AilmentChance int     `json:"ailment_chance"`
	FlinchChance  int     `json:"flinch_chance"`
	Confusion     int     `json:"confusion_chance"`
	Binds         bool    `json:"binds"`
	HealPerc      float64 `json:"heal_perc"`
	DrainPerc     float64 `json:"drain_perc"`
	SideCondition string  `json:"side_condition"`
}

var ailmentNames = map[string]int{
	"burn":      fray.STATUS_BURN,
	"paralysis": fray.STATUS_PARA,
	"sleep":     fray.STATUS_SLEEP,
	"freeze":    fray.STATUS_FROZEN,
	"poison":    fray.STATUS_POISON,
	"toxic":     fray.STATUS_TOXIC,
}

var sideConditionNames = map[string]int{
	"reflect":      fray.SIDECOND_REFLECT,
	"light-screen": fray.SIDECOND_LIGHT_SCREEN,
	"spikes":       fray.SIDECOND_SPIKES,
}

// LoadMoves takes in json that lists out move definitions. Every definition
// is validated through fray.NewMove, so a bad data file fails here rather
// than mid-battle.
func LoadMoves(moveBytes []byte) (map[string]fray.Move, error) {
	parsedMoves := make([]moveFile, 0)

	if err := json.Unmarshal(moveBytes, &parsedMoves); err != nil {
		return nil, err
	}

	moves := make(map[string]fray.Move, len(parsedMoves))

	for _, parsed := range parsedMoves {
		ailment, ok := ailmentNames[parsed.Ailment]
		if !ok && parsed.Ailment != "" {
			return nil, fmt.Errorf("move %q: unknown ailment %q", parsed.Name, parsed.Ailment)
		}

		sideCond, ok := sideConditionNames[parsed.SideCondition]
		if !ok && parsed.SideCondition != "" {
			return nil, fmt.Errorf("move %q: unknown side condition %q", parsed.Name, parsed.SideCondition)
		}

		statChanges := make([]fray.StatChange, 0, len(parsed.StatChanges))
		for _, change := range parsed.StatChanges {
			statChanges = append(statChanges, fray.StatChange{
				StatName:   change.Stat,
				Stages:     change.Stages,
				Chance:     change.Chance,
				SelfTarget: change.Self,
			})
		}

		move, err := fray.NewMove(fray.Move{
			Name:            strings.ToLower(parsed.Name),
			Type:            parsed.Type,
			Category:        parsed.Category,
			Power:           parsed.Power,
			Accuracy:        parsed.Accuracy,
			MaxPP:           parsed.PP,
			Priority:        parsed.Priority,
			HighCrit:        parsed.HighCrit,
			StatChanges:     statChanges,
			StatusAilment:   fray.Ailment{Status: ailment, Chance: parsed.AilmentChance},
			FlinchChance:    parsed.FlinchChance,
			ConfusionChance: parsed.Confusion,
			Binds:           parsed.Binds,
			HealPerc:        parsed.HealPerc,
			DrainPerc:       parsed.DrainPerc,
			SideCondition:   sideCond,
		})
		if err != nil {
			return nil, err
		}

		moves[move.Name] = move
	}

	return moves, nil
}

// LoadTypeChart takes in a yaml mapping of attacking type to defending type
// to multiplier. Pairs not listed default to neutral.
func LoadTypeChart(chartBytes []byte) (*fray.TypeChart, error) {
	multipliers := make(map[string]map[string]float64)

	if err := yaml.Unmarshal(chartBytes, &multipliers); err != nil {
		return nil, err
	}

	return fray.NewTypeChart(multipliers), nil
}
