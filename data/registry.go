package data

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fray-engine/fray"
)

// Registry holds the loaded species, move, and type chart data. Lookups are
// case-insensitive on the stored lowercase names.
type Registry struct {
	species map[string]Species
	moves   map[string]fray.Move
	chart   *fray.TypeChart
}

// Species is the fixed definition a creature is built from.
type Species struct {
	Name    string
	Type1   string
	Type2   string
	Stats   fray.BaseStats
	Ability string
}

var titleCaser = cases.Title(language.English)

// DisplayName renders a lowercase data name for the user, so
// "quick-attack" shows as "Quick Attack".
func DisplayName(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "-", " "))
}

func (r *Registry) Species(name string) (Species, bool) {
	s, ok := r.species[strings.ToLower(name)]
	return s, ok
}

func (r *Registry) Move(name string) (fray.Move, bool) {
	m, ok := r.moves[strings.ToLower(name)]
	return m, ok
}

func (r *Registry) Chart() *fray.TypeChart {
	return r.chart
}

// SpeciesNames lists every loaded species name.
func (r *Registry) SpeciesNames() []string {
	names := make([]string, 0, len(r.species))
	for name := range r.species {
		names = append(names, name)
	}

	return names
}

// NewCreature builds a battle-ready creature from a species name, level, and
// up to four move names.
func (r *Registry) NewCreature(speciesName string, level uint, moveNames ...string) (fray.Creature, error) {
	species, ok := r.Species(speciesName)
	if !ok {
		return fray.Creature{}, fmt.Errorf("unknown species %q", speciesName)
	}

	moves := make([]fray.Move, 0, len(moveNames))
	for _, moveName := range moveNames {
		move, ok := r.Move(moveName)
		if !ok {
			return fray.Creature{}, fmt.Errorf("unknown move %q", moveName)
		}

		moves = append(moves, move)
	}

	creature, err := fray.NewCreature(species.Name, level, species.Type1, species.Type2, species.Stats, moves...)
	if err != nil {
		return fray.Creature{}, err
	}

	creature.Ability = fray.AbilityByName(species.Ability)

	return creature, nil
}
