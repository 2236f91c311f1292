package data

import (
	"strings"
	"testing"

	"github.com/fray-engine/fray"
)

func defaultRegistry(t *testing.T) *Registry {
	t.Helper()

	registry, err := Default()
	if err != nil {
		t.Fatalf("could not load embedded data: %s", err)
	}

	return registry
}

func TestDefaultLoads(t *testing.T) {
	registry := defaultRegistry(t)

	if len(registry.SpeciesNames()) == 0 {
		t.Fatal("no species loaded")
	}

	if _, ok := registry.Move("tackle"); !ok {
		t.Fatal("tackle missing from move data")
	}
}

func TestSpeciesLookup(t *testing.T) {
	registry := defaultRegistry(t)

	species, ok := registry.Species("Emberwolf")
	if !ok {
		t.Fatal("emberwolf missing from species data")
	}

	if species.Type1 != fray.TYPENAME_FIRE {
		t.Fatalf("emberwolf has wrong primary type: %s", species.Type1)
	}

	if species.Stats.Hp == 0 {
		t.Fatal("species loaded with zero base hp")
	}
}

func TestMoveLookupValidated(t *testing.T) {
	registry := defaultRegistry(t)

	move, ok := registry.Move("quick-attack")
	if !ok {
		t.Fatal("quick-attack missing from move data")
	}

	if move.Priority != 1 {
		t.Fatalf("quick-attack has wrong priority: %d", move.Priority)
	}

	if move.PP != move.MaxPP || move.PP == 0 {
		t.Fatalf("move pp not initialized: %d/%d", move.PP, move.MaxPP)
	}
}

func TestRegistryNewCreature(t *testing.T) {
	registry := defaultRegistry(t)

	creature, err := registry.NewCreature("tidefin", 50, "hydro-pump", "ice-beam")
	if err != nil {
		t.Fatalf("could not build creature: %s", err)
	}

	if creature.MaxHp == 0 || creature.Hp != creature.MaxHp {
		t.Fatalf("creature not initialized: hp %d/%d", creature.Hp, creature.MaxHp)
	}

	if len(creature.Moves) != 2 {
		t.Fatalf("wrong move count: %d", len(creature.Moves))
	}

	if creature.Ability.Kind != fray.ABILITY_DRIZZLE {
		t.Fatalf("tidefin ability not wired: %v", creature.Ability.Kind)
	}
}

func TestRegistryNewCreatureUnknowns(t *testing.T) {
	registry := defaultRegistry(t)

	if _, err := registry.NewCreature("no-such-species", 50); err == nil {
		t.Fatal("expected error for unknown species")
	}

	if _, err := registry.NewCreature("tidefin", 50, "no-such-move"); err == nil {
		t.Fatal("expected error for unknown move")
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("quick-attack"); got != "Quick Attack" {
		t.Fatalf("DisplayName(quick-attack) = %q", got)
	}

	if got := DisplayName("tackle"); got != "Tackle" {
		t.Fatalf("DisplayName(tackle) = %q", got)
	}
}

func TestChartFromYaml(t *testing.T) {
	registry := defaultRegistry(t)

	chart := registry.Chart()
	if chart == nil {
		t.Fatal("registry has no type chart")
	}

	if eff := chart.Effectiveness(fray.TYPENAME_WATER, fray.TYPENAME_FIRE); eff != 2 {
		t.Fatalf("water vs fire should be 2, got %f", eff)
	}

	if eff := chart.Effectiveness(fray.TYPENAME_NORMAL, fray.TYPENAME_GHOST); eff != 0 {
		t.Fatalf("normal vs ghost should be 0, got %f", eff)
	}
}

func TestLoadSpeciesRejectsBadRows(t *testing.T) {
	badCSV := "name,type1,type2,hp,attack,defense,sp_attack,sp_defense,speed,ability\nbadmon,fire,,not-a-number,49,49,65,65,45,\n"

	if _, err := LoadSpecies([]byte(badCSV)); err == nil {
		t.Fatal("expected error for malformed stat column")
	}
}

func TestLoadMovesRejectsUnknownAilment(t *testing.T) {
	badJSON := `[{"name": "weird-move", "type": "fire", "category": "special", "power": 40, "accuracy": 100, "pp": 10, "ailment": "petrified", "ailment_chance": 30}]`

	_, err := LoadMoves([]byte(badJSON))
	if err == nil {
		t.Fatal("expected error for unknown ailment")
	}

	if !strings.Contains(err.Error(), "petrified") {
		t.Fatalf("error should name the bad ailment: %s", err)
	}
}
