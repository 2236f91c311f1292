package fray

import (
	"fmt"
	"math"
	"math/rand/v2"
	"reflect"
	"slices"

	"github.com/samber/lo"
)

// StateEvent represents a single change in GameState.
//
// StateEvents are separate from Actions in that Events are the low level
// changes of state and Actions represent the higher level choices a player
// makes, which expand into Events.
type StateEvent interface {
	// Update will update GameState in some way. Follow-up events caused by
	// this update are returned and should be handled DIRECTLY after this
	// state event. The second value is a list of messages to be displayed
	// for the event.
	Update(*GameState) ([]StateEvent, []string)
}

type SwitchEvent struct {
	SwitchIndex int
	PlayerIndex int
}

func (event SwitchEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	player, opposingPlayer := getPlayerPair(gameState, event.PlayerIndex)
	currentCreature := player.Active()
	newActive := player.Get(event.SwitchIndex)

	currentCreature.ClearStages()
	currentCreature.ConfusionCount = 0
	currentCreature.BindCount = 0
	currentCreature.Flinched = false

	internalLogger.WithName("switch_event").Info("", "player_name", player.Name, "creature_name", newActive.Name)

	player.ActiveIndex = event.SwitchIndex

	messages := make([]string, 0)
	followUpEvents := make([]StateEvent, 0)

	// --- On Switch-In Updates ---
	// Reset toxic count
	if newActive.Status == STATUS_TOXIC {
		newActive.ToxicCount = 1
		internalLogger.WithName("switch_event").Info("creature switched in and reset their toxic count", "creature_name", newActive.Name)
	}

	if layers := player.SideConditions[SIDECOND_SPIKES]; layers > 0 && newActive.Ability.Kind != ABILITY_LEVITATE && !newActive.HasType(TYPENAME_FLYING) {
		dmg := uint(math.Floor(float64(newActive.MaxHp) * spikesDamageFraction(layers)))
		followUpEvents = append(followUpEvents, DamageEvent{PlayerIndex: event.PlayerIndex, Damage: dmg, SupressMessage: true})
		messages = append(messages, fmt.Sprintf("%s was hurt by spikes!", newActive.Name))
	}

	// --- Activate Abilities
	switch newActive.Ability.Kind {
	case ABILITY_DRIZZLE:
		followUpEvents = append(followUpEvents, WeatherEvent{NewWeather: WEATHER_RAIN})
	case ABILITY_DROUGHT:
		followUpEvents = append(followUpEvents, WeatherEvent{NewWeather: WEATHER_SUN})
	case ABILITY_INTIMIDATE:
		if opposingPlayer.Active().Alive() {
			followUpEvents = append(followUpEvents, NewStatChangeEvent(InvertSideIndex(event.PlayerIndex), STAT_ATTACK, -1, 100))
		}
	}

	newActive.SwitchedInThisTurn = true
	newActive.CanAttackThisTurn = false

	if gameState.Turn == 0 || gameState.Turn == 1 {
		messages = append(messages, fmt.Sprintf("%s sent in %s!", player.Name, newActive.Name))
	} else {
		messages = append(messages, fmt.Sprintf("%s switched to %s!", player.Name, newActive.Name))
	}

	return followUpEvents, messages
}

func spikesDamageFraction(layers int) float64 {
	switch {
	case layers >= 3:
		return 1.0 / 4.0
	case layers == 2:
		return 1.0 / 6.0
	default:
		return 1.0 / 8.0
	}
}

type AttackEvent struct {
	AttackerID int

	// MoveIndex of -1 means struggle.
	MoveIndex int
}

func (event AttackEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	attacker, defender := getPlayerPair(gameState, event.AttackerID)
	defenderInt := InvertSideIndex(event.AttackerID)

	attackCreature := attacker.Active()
	defCreature := defender.Active()

	if !attackCreature.Alive() {
		attackEventLogger().Info("attack was cancelled because the attacker fainted", "creature_name", attackCreature.Name)
		return nil, nil
	}

	// Flinches land during event application, after this attack was already
	// queued, so the flag has to be re-checked here rather than at queue time.
	if attackCreature.Flinched {
		attackEventLogger().Info("attack was cancelled because the attacker flinched", "creature_name", attackCreature.Name)
		return nil, nil
	}

	if !defCreature.Alive() {
		attackEventLogger().Info("attack was cancelled because the target already fainted", "creature_name", defCreature.Name)
		return nil, nil
	}

	rng := gameState.CreateRng()

	var move Move
	if event.MoveIndex == -1 {
		move = struggleMove
	} else {
		move = attackCreature.Moves[event.MoveIndex]

		if move.PP <= 0 {
			attackEventLogger().Info("move had no pp left, falling back to struggle", "move_name", move.Name, "creature_name", attackCreature.Name)
			move = struggleMove
			event.MoveIndex = -1
		}
	}

	// PP is spent on selection, hit or miss.
	if event.MoveIndex != -1 {
		attackCreature.Moves[event.MoveIndex].PP--
	}

	events := make([]StateEvent, 0)
	messages := make([]string, 0)
	messages = append(messages, fmt.Sprintf("%s used %s", attackCreature.Name, move.Name))

	accuracy := float64(move.Accuracy) * attackCreature.Accuracy() * defCreature.Evasion()
	accuracyCheck := rng.Float64() * 100

	if accuracyCheck > accuracy {
		attackEventLogger().Info("accuracy check failed", "accuracy_check", accuracyCheck, "accuracy_chance", accuracy, "creature_name", attackCreature.Name)
		messages = append(messages, fmt.Sprintf("%s missed their attack!", attackCreature.Name))
		return events, messages
	}

	attackEventLogger().Info("accuracy check passed", "accuracy_check", accuracyCheck, "accuracy_chance", accuracy)

	switch move.Category {
	case CATEGORY_PHYSICAL, CATEGORY_SPECIAL:
		events = append(events, damageMoveEvents(gameState, event.AttackerID, move, rng)...)
	case CATEGORY_STATUS:
		if move.HealPerc > 0 {
			events = append(events, HealPercEvent{PlayerIndex: event.AttackerID, HealPerc: move.HealPerc})
		}

		if move.SideCondition != 0 {
			events = append(events, SideConditionEvent{PlayerIndex: event.AttackerID, Condition: move.SideCondition})
		}
	}

	lo.ForEach(move.StatChanges, func(statChange StatChange, _ int) {
		target := defenderInt
		if statChange.SelfTarget {
			target = event.AttackerID
		}

		events = append(events, NewStatChangeEvent(target, statChange.StatName, statChange.Stages, statChange.Chance))
	})

	if move.StatusAilment.Status != STATUS_NONE {
		chance := move.StatusAilment.Chance
		if chance == 0 {
			chance = 100
		}

		if rng.IntN(100) < chance {
			events = append(events, AilmentEvent{PlayerIndex: defenderInt, Ailment: move.StatusAilment.Status})
		}
	}

	if move.ConfusionChance > 0 && rng.IntN(100) < move.ConfusionChance {
		events = append(events, ApplyConfusionEvent{PlayerIndex: defenderInt})
	}

	if move.FlinchChance > 0 && rng.IntN(100) < move.FlinchChance {
		events = append(events, FlinchEvent{PlayerIndex: defenderInt})
	}

	if move.Binds && defCreature.BindCount == 0 {
		events = append(events, BindEvent{PlayerIndex: defenderInt, MoveName: move.Name})
	}

	return events, messages
}

// damageMoveEvents rolls the crit and damage for a connecting damaging move
// and produces the resulting events, including drain healing and the
// survive-at-1 checks.
func damageMoveEvents(gameState *GameState, attackerID int, move Move, rng *rand.Rand) []StateEvent {
	attacker, defender := getPlayerPair(gameState, attackerID)
	defenderInt := InvertSideIndex(attackerID)

	attackCreature := attacker.Active()
	defCreature := defender.Active()

	critChance := CRIT_CHANCE
	if move.HighCrit {
		critChance = HIGH_CRIT_CHANCE
	}

	crit := rng.Float64() < critChance

	screenCond := SIDECOND_REFLECT
	if move.Category == CATEGORY_SPECIAL {
		screenCond = SIDECOND_LIGHT_SCREEN
	}

	field := FieldContext{
		Weather:  gameState.Weather,
		Chart:    gameState.Chart,
		Screened: defender.SideConditions[screenCond] > 0,
	}

	dmg := Damage(*attackCreature, *defCreature, move, crit, field, rng)

	events := make([]StateEvent, 0)

	if dmg == 0 {
		events = append(events, NewFmtMessageEvent("It doesn't affect %s...", defCreature.Name))
		return events
	}

	// Survive-at-1 checks only apply from full health.
	if dmg >= defCreature.Hp && defCreature.Hp == defCreature.MaxHp {
		if defCreature.Ability.Kind == ABILITY_STURDY {
			dmg = defCreature.Hp - 1
			events = append(events, NewFmtMessageEvent("%s endured the hit!", defCreature.Name))
		} else if defCreature.Item.Kind == ITEM_FOCUS_SASH && !defCreature.ItemUsed {
			dmg = defCreature.Hp - 1
			defCreature.ItemUsed = true
			events = append(events, NewFmtMessageEvent("%s hung on using its %s!", defCreature.Name, defCreature.Item.Name))
		}
	}

	effectiveness := field.Chart.DefenseEffectiveness(move.Type, defCreature.Type1, defCreature.Type2)

	events = append(events, DamageEvent{Damage: dmg, PlayerIndex: defenderInt, Crit: crit})

	if effectiveness > 1 {
		events = append(events, NewMessageEvent("It's super effective!"))
	} else if effectiveness < 1 {
		events = append(events, NewMessageEvent("It's not very effective..."))
	}

	if move.DrainPerc > 0 {
		heal := uint(math.Max(1, math.Floor(float64(dmg)*move.DrainPerc)))
		events = append(events, HealEvent{PlayerIndex: attackerID, Heal: heal})
	}

	// Struggle recoil comes out of the attacker's max health.
	if move.Name == struggleMove.Name {
		recoil := uint(math.Max(1, math.Floor(float64(attackCreature.MaxHp)/4)))
		events = append(events, DamageEvent{Damage: recoil, PlayerIndex: attackerID, SupressMessage: true})
		events = append(events, NewFmtMessageEvent("%s is damaged by recoil!", attackCreature.Name))
	}

	// Life orb recoil after a successful hit.
	if attackCreature.Item.Kind == ITEM_LIFE_ORB {
		recoil := uint(math.Max(1, math.Floor(float64(attackCreature.MaxHp)/10)))
		events = append(events, DamageEvent{Damage: recoil, PlayerIndex: attackerID, SupressMessage: true})
		events = append(events, NewFmtMessageEvent("%s lost some of its health!", attackCreature.Name))
	}

	return events
}

type WeatherEvent struct {
	NewWeather int
}

var weatherMessageMap = map[int]string{
	WEATHER_CLEAR:     "The weather has returned to normal",
	WEATHER_RAIN:      "It started to rain!",
	WEATHER_SUN:       "The sunlight turned harsh!",
	WEATHER_SANDSTORM: "A sandstorm kicked up!",
	WEATHER_HAIL:      "It started to hail!",
	WEATHER_FOG:       "A thick fog rolled in!",
}

func (event WeatherEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	if gameState.Weather == event.NewWeather {
		return nil, nil
	}

	gameState.Weather = event.NewWeather
	gameState.WeatherTurns = WEATHER_TURNS

	if event.NewWeather == WEATHER_CLEAR {
		gameState.WeatherTurns = 0
	}

	return nil, []string{weatherMessageMap[event.NewWeather]}
}

type TerrainEvent struct {
	NewTerrain int
}

var terrainMessageMap = map[int]string{
	TERRAIN_NONE:     "The terrain returned to normal",
	TERRAIN_ELECTRIC: "An electric current ran across the battlefield!",
	TERRAIN_GRASSY:   "Grass grew to cover the battlefield!",
	TERRAIN_MISTY:    "Mist swirled around the battlefield!",
	TERRAIN_PSYCHIC:  "The battlefield got weird!",
}

func (event TerrainEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	gameState.Terrain = event.NewTerrain

	return nil, []string{terrainMessageMap[event.NewTerrain]}
}

type StatChangeEvent struct {
	Chance      int
	StatName    string
	Change      int
	PlayerIndex int
}

func NewStatChangeEvent(playerIndex int, statName string, change int, chance int) StatChangeEvent {
	return StatChangeEvent{PlayerIndex: playerIndex, StatName: statName, Change: change, Chance: chance}
}

func (event StatChangeEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	rng := gameState.CreateRng()

	statCheck := rng.IntN(100)
	if event.Chance == 0 {
		event.Chance = 100
	}

	creature := gameState.GetPlayer(event.PlayerIndex).Active()

	if statCheck >= event.Chance {
		internalLogger.WithName("stat_change_event").Info("stat change check failed", "stat_check", statCheck, "stat_chance", event.Chance, "creature_name", creature.Name)
		return nil, nil
	}

	internalLogger.WithName("stat_change_event").Info("stat change check passed", "stat_check", statCheck, "stat_chance", event.Chance, "creature_name", creature.Name)

	before, err := creature.StageValue(event.StatName)
	if err != nil {
		// stat names are validated when moves are built, so this is a bug
		internalLogger.Error(err, "stat change event carried an invalid stat name", "stat_name", event.StatName)
		return nil, nil
	}

	after, _ := creature.ModifyStage(event.StatName, event.Change)

	if after == before {
		if event.Change > 0 {
			return nil, []string{fmt.Sprintf("%s's %s won't go any higher!", creature.Name, event.StatName)}
		}

		return nil, []string{fmt.Sprintf("%s's %s won't go any lower!", creature.Name, event.StatName)}
	}

	absChange := int(math.Abs(float64(after - before)))

	if event.Change > 0 {
		return nil, []string{fmt.Sprintf("%s's %s rose by %d stages!", creature.Name, event.StatName, absChange)}
	}

	return nil, []string{fmt.Sprintf("%s's %s fell by %d stages!", creature.Name, event.StatName, absChange)}
}

type AilmentEvent struct {
	PlayerIndex int
	Ailment     int
}

var ailmentApplicationMessages = map[int]string{
	STATUS_SLEEP:  "%s has fallen asleep!",
	STATUS_PARA:   "%s has been paralyzed!",
	STATUS_FROZEN: "%s has been frozen!",
	STATUS_BURN:   "%s has been burned!",
	STATUS_POISON: "%s has been poisoned!",
	STATUS_TOXIC:  "%s has been badly poisoned!",
}

func (event AilmentEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	creature := gameState.GetPlayer(event.PlayerIndex).Active()

	// The first status wins; later attempts fizzle without a message.
	if creature.Status != STATUS_NONE {
		internalLogger.WithName("ailment_event").Info("ailment blocked by existing status", "creature_name", creature.Name, "existing", StatusName(creature.Status))
		return nil, nil
	}

	rng := gameState.CreateRng()

	switch event.Ailment {
	case STATUS_SLEEP:
		creature.SleepCount = rng.IntN(2) + 1
		internalLogger.WithName("ailment_event").Info("creature fell asleep", "creature_name", creature.Name, "sleep_turns", creature.SleepCount)
	case STATUS_FROZEN:
		if gameState.Weather == WEATHER_SUN {
			return nil, []string{fmt.Sprintf("%s cannot be frozen in the harsh sunlight!", creature.Name)}
		}
	case STATUS_TOXIC:
		creature.ToxicCount = 1
	}

	creature.SetStatus(event.Ailment)

	return nil, []string{fmt.Sprintf(ailmentApplicationMessages[event.Ailment], creature.Name)}
}

type DamageEvent struct {
	Damage         uint
	PlayerIndex    int
	SupressMessage bool
	Crit           bool
}

func (event DamageEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	creature := gameState.GetPlayer(event.PlayerIndex).Active()
	creature.ApplyDamage(event.Damage)

	damagePercent := 100 * (float64(event.Damage) / float64(creature.MaxHp))

	messages := make([]string, 0)

	if !event.SupressMessage {
		messages = append(messages, fmt.Sprintf("%s took %d%% damage!", creature.Name, int(damagePercent)))

		if event.Crit {
			messages = append(messages, "It critically hit!")
		}
	}

	if creature.Fainted() && creature.Status != STATUS_FAINTED {
		creature.Status = STATUS_FAINTED
		messages = append(messages, fmt.Sprintf("%s fainted!", creature.Name))
	}

	return nil, messages
}

type HealEvent struct {
	Heal        uint
	PlayerIndex int
}

func (event HealEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	creature := gameState.GetPlayer(event.PlayerIndex).Active()
	healed := creature.Heal(event.Heal)

	healPerc := 100 * (float64(healed) / float64(creature.MaxHp))

	return nil, []string{
		fmt.Sprintf("%s healed %d%% of their health!", creature.Name, int(healPerc)),
	}
}

type HealPercEvent struct {
	PlayerIndex int
	HealPerc    float64
}

func (event HealPercEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	creature := gameState.GetPlayer(event.PlayerIndex).Active()
	creature.HealPerc(event.HealPerc)

	heal := 100 * event.HealPerc

	return nil, []string{
		fmt.Sprintf("%s healed by %d%%!", creature.Name, int(heal)),
	}
}

type BurnEvent struct {
	PlayerIndex int
}

func (event BurnEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	creature := gameState.GetPlayer(event.PlayerIndex).Active()

	if !creature.Alive() {
		return nil, nil
	}

	damage := max(1, creature.MaxHp/8)
	return []StateEvent{DamageEvent{Damage: damage, PlayerIndex: event.PlayerIndex, SupressMessage: true}}, []string{
		fmt.Sprintf("%s is hurt by its burn!", creature.Name),
	}
}

type PoisonEvent struct {
	PlayerIndex int
}

func (event PoisonEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	creature := gameState.GetPlayer(event.PlayerIndex).Active()

	if !creature.Alive() {
		return nil, nil
	}

	damage := max(1, creature.MaxHp/8)
	return []StateEvent{DamageEvent{Damage: damage, PlayerIndex: event.PlayerIndex, SupressMessage: true}}, []string{
		fmt.Sprintf("%s is hurt by poison!", creature.Name),
	}
}

type ToxicEvent struct {
	PlayerIndex int
}

func (event ToxicEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	creature := gameState.GetPlayer(event.PlayerIndex).Active()

	if !creature.Alive() {
		return nil, nil
	}

	damage := max(1, (creature.MaxHp*uint(creature.ToxicCount))/16)
	creature.ToxicCount++

	internalLogger.WithName("toxic_event").Info("toxic updated", "damage", damage, "toxic_count", creature.ToxicCount, "creature_name", creature.Name)

	return []StateEvent{DamageEvent{Damage: damage, PlayerIndex: event.PlayerIndex, SupressMessage: true}}, []string{
		fmt.Sprintf("%s is badly poisoned!", creature.Name),
	}
}

type BindEvent struct {
	PlayerIndex int
	MoveName    string
}

func (event BindEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	creature := gameState.GetPlayer(event.PlayerIndex).Active()

	rng := gameState.CreateRng()
	creature.BindCount = rng.IntN(2) + 4

	internalLogger.WithName("bind_event").Info("creature was trapped", "creature_name", creature.Name, "bind_turns", creature.BindCount)

	return nil, []string{fmt.Sprintf("%s was trapped by %s!", creature.Name, event.MoveName)}
}

type BindDamageEvent struct {
	PlayerIndex int
}

func (event BindDamageEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	creature := gameState.GetPlayer(event.PlayerIndex).Active()

	if creature.BindCount <= 0 || !creature.Alive() {
		return nil, nil
	}

	creature.BindCount--

	if creature.BindCount == 0 {
		return nil, []string{fmt.Sprintf("%s was freed!", creature.Name)}
	}

	damage := max(1, creature.MaxHp/8)
	return []StateEvent{DamageEvent{Damage: damage, PlayerIndex: event.PlayerIndex, SupressMessage: true}}, []string{
		fmt.Sprintf("%s is hurt by the trap!", creature.Name),
	}
}

type FrozenEvent struct {
	PlayerIndex         int
	FollowUpAttackEvent StateEvent
}

func (event FrozenEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	creature := gameState.GetPlayer(event.PlayerIndex).Active()

	rng := gameState.CreateRng()

	thawChance := .20
	thawCheck := rng.Float64()

	message := ""

	// creature stays frozen
	if thawCheck > thawChance {
		internalLogger.WithName("frozen_event").Info("thaw check failed", "thaw_check", thawCheck, "thaw_chance", thawChance, "creature_name", creature.Name)
		message = fmt.Sprintf("%s is frozen and cannot move", creature.Name)

		creature.CanAttackThisTurn = false
	} else {
		internalLogger.WithName("frozen_event").Info("thaw check passed!", "thaw_check", thawCheck, "thaw_chance", thawChance, "creature_name", creature.Name)
		message = fmt.Sprintf("%s thawed out!", creature.Name)

		creature.Status = STATUS_NONE
		creature.CanAttackThisTurn = true
	}

	if creature.CanAttackThisTurn {
		return []StateEvent{event.FollowUpAttackEvent}, []string{message}
	}

	return nil, []string{message}
}

type ParaEvent struct {
	PlayerIndex         int
	FollowUpAttackEvent StateEvent
}

func (event ParaEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	creature := gameState.GetPlayer(event.PlayerIndex).Active()

	rng := gameState.CreateRng()

	paraChance := 0.5
	paraCheck := rng.Float64()

	messages := make([]string, 0)
	messages = append(messages, fmt.Sprintf("%s is paralyzed.", creature.Name))

	if paraCheck > paraChance {
		internalLogger.WithName("para_event").Info("para check passed", "para_check", paraCheck, "para_chance", paraChance, "creature_name", creature.Name)
		return []StateEvent{event.FollowUpAttackEvent}, messages
	}

	internalLogger.WithName("para_event").Info("para check failed", "para_check", paraCheck, "para_chance", paraChance, "creature_name", creature.Name)
	creature.CanAttackThisTurn = false

	messages = append(messages, fmt.Sprintf("%s is paralyzed and cannot move.", creature.Name))

	return nil, messages
}

type FlinchEvent struct {
	PlayerIndex int
}

func (event FlinchEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	creature := gameState.GetPlayer(event.PlayerIndex).Active()
	creature.Flinched = true
	creature.CanAttackThisTurn = false

	return nil, []string{fmt.Sprintf("%s flinched and cannot move!", creature.Name)}
}

type SleepEvent struct {
	PlayerIndex         int
	FollowUpAttackEvent StateEvent
}

func (event SleepEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	creature := gameState.GetPlayer(event.PlayerIndex).Active()
	message := ""

	// Sleep is over
	if creature.SleepCount <= 0 {
		creature.Status = STATUS_NONE
		message = fmt.Sprintf("%s woke up!", creature.Name)
		creature.CanAttackThisTurn = true
	} else {
		message = fmt.Sprintf("%s is asleep", creature.Name)
		creature.CanAttackThisTurn = false
	}

	if creature.CanAttackThisTurn {
		return []StateEvent{event.FollowUpAttackEvent}, []string{message}
	}

	creature.SleepCount--

	return nil, []string{message}
}

type ApplyConfusionEvent struct {
	PlayerIndex int
}

func (event ApplyConfusionEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	creature := gameState.GetPlayer(event.PlayerIndex).Active()

	if creature.ConfusionCount > 0 {
		return nil, nil
	}

	rng := gameState.CreateRng()
	creature.ConfusionCount = rng.IntN(3) + 2

	internalLogger.WithName("apply_confusion_event").Info("confusion applied", "confusion_count", creature.ConfusionCount, "creature_name", creature.Name)

	return nil, []string{fmt.Sprintf("%s is now confused!", creature.Name)}
}

type ConfusionEvent struct {
	PlayerIndex         int
	FollowUpAttackEvent StateEvent
}

func (event ConfusionEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	creature := gameState.GetPlayer(event.PlayerIndex).Active()
	creature.ConfusionCount--
	internalLogger.WithName("confusion_event").Info("confusion updated", "confusion_count", creature.ConfusionCount, "creature_name", creature.Name)

	rng := gameState.CreateRng()

	messages := make([]string, 0)
	messages = append(messages, fmt.Sprintf("%s is confused", creature.Name))

	confChance := .33
	confCheck := rng.Float64()

	if confCheck > confChance {
		return []StateEvent{event.FollowUpAttackEvent}, messages
	}

	creature.CanAttackThisTurn = false
	dmg := Damage(*creature, *creature, confusionHitMove, false, FieldContext{Chart: gameState.Chart}, rng)

	messages = append(messages, fmt.Sprintf("%s hit itself in confusion.", creature.Name))

	internalLogger.WithName("confusion_event").Info("creature hit itself in confusion", "creature_name", creature.Name)

	return []StateEvent{DamageEvent{Damage: dmg, PlayerIndex: event.PlayerIndex}}, messages
}

type SideConditionEvent struct {
	PlayerIndex int
	Condition   int
}

var sideConditionMessages = map[int]string{
	SIDECOND_REFLECT:      "A barrier against physical attacks went up around %s's side!",
	SIDECOND_LIGHT_SCREEN: "A barrier against special attacks went up around %s's side!",
	SIDECOND_SPIKES:       "Spikes scattered around %s's side!",
}

func (event SideConditionEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	player := gameState.GetPlayer(event.PlayerIndex)

	switch event.Condition {
	case SIDECOND_SPIKES:
		// Spikes land on the opposing side and stack up to 3 layers.
		target := gameState.GetPlayer(InvertSideIndex(event.PlayerIndex))
		if target.SideConditions[SIDECOND_SPIKES] >= 3 {
			return nil, []string{"But it failed!"}
		}

		target.SideConditions[SIDECOND_SPIKES]++

		return nil, []string{fmt.Sprintf(sideConditionMessages[event.Condition], target.Name)}
	default:
		if player.SideConditions[event.Condition] > 0 {
			return nil, []string{"But it failed!"}
		}

		player.SideConditions[event.Condition] = SCREEN_TURNS
	}

	return nil, []string{fmt.Sprintf(sideConditionMessages[event.Condition], player.Name)}
}

type SandstormDamageEvent struct {
	PlayerIndex int
}

func (event SandstormDamageEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	creature := gameState.GetPlayer(event.PlayerIndex).Active()

	if !creature.Alive() {
		return nil, nil
	}

	if slices.ContainsFunc(sandImmuneTypes, creature.HasType) {
		return nil, nil
	}

	dmg := uint(math.Ceil(float64(creature.MaxHp) * (1.0 / 16.0)))
	messages := []string{
		fmt.Sprintf("%s was damaged by the sandstorm!", creature.Name),
	}

	return []StateEvent{
		DamageEvent{Damage: dmg, PlayerIndex: event.PlayerIndex, SupressMessage: true},
	}, messages
}

type HailDamageEvent struct {
	PlayerIndex int
}

func (event HailDamageEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	creature := gameState.GetPlayer(event.PlayerIndex).Active()

	if !creature.Alive() {
		return nil, nil
	}

	if slices.ContainsFunc(hailImmuneTypes, creature.HasType) {
		return nil, nil
	}

	dmg := uint(math.Ceil(float64(creature.MaxHp) * (1.0 / 16.0)))
	messages := []string{
		fmt.Sprintf("%s was buffeted by the hail!", creature.Name),
	}

	return []StateEvent{
		DamageEvent{Damage: dmg, PlayerIndex: event.PlayerIndex, SupressMessage: true},
	}, messages
}

type GrassyTerrainEvent struct {
	PlayerIndex int
}

func (event GrassyTerrainEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	creature := gameState.GetPlayer(event.PlayerIndex).Active()

	if !creature.Alive() || creature.Hp == creature.MaxHp {
		return nil, nil
	}

	// Airborne creatures don't benefit from the terrain.
	if creature.HasType(TYPENAME_FLYING) || creature.Ability.Kind == ABILITY_LEVITATE {
		return nil, nil
	}

	heal := uint(math.Floor(float64(creature.MaxHp) * (1.0 / 16.0)))

	return []StateEvent{HealEvent{PlayerIndex: event.PlayerIndex, Heal: heal}}, nil
}

type EndOfTurnAbilityCheck struct {
	PlayerID int
}

func (event EndOfTurnAbilityCheck) Update(gameState *GameState) ([]StateEvent, []string) {
	creature := gameState.GetPlayer(event.PlayerID).Active()

	if !creature.Alive() {
		return nil, nil
	}

	events := make([]StateEvent, 0)

	switch creature.Ability.Kind {
	case ABILITY_SPEED_BOOST:
		if !creature.SwitchedInThisTurn {
			events = append(events, NewStatChangeEvent(event.PlayerID, STAT_SPEED, 1, 100))
		}
	}

	return events, nil
}

// FieldDecayEvent ticks down weather and side condition timers at the end of
// a turn.
type FieldDecayEvent struct{}

func (event FieldDecayEvent) Update(gameState *GameState) ([]StateEvent, []string) {
	messages := make([]string, 0)

	if gameState.Weather != WEATHER_CLEAR && gameState.WeatherTurns > 0 {
		gameState.WeatherTurns--

		if gameState.WeatherTurns == 0 {
			gameState.Weather = WEATHER_CLEAR
			messages = append(messages, weatherMessageMap[WEATHER_CLEAR])
		}
	}

	for _, player := range []*Player{&gameState.PlayerOne, &gameState.PlayerTwo} {
		for _, cond := range []int{SIDECOND_REFLECT, SIDECOND_LIGHT_SCREEN} {
			if player.SideConditions[cond] == 0 {
				continue
			}

			player.SideConditions[cond]--

			if player.SideConditions[cond] == 0 {
				delete(player.SideConditions, cond)
				messages = append(messages, fmt.Sprintf("The barrier around %s's side wore off!", player.Name))
			}
		}
	}

	return nil, messages
}

// MessageEvent is an event that only shows a message. No state updates occur.
type MessageEvent struct {
	Message string
}

func NewMessageEvent(message string) MessageEvent {
	return MessageEvent{Message: message}
}

func (event MessageEvent) Update(_ *GameState) ([]StateEvent, []string) {
	return nil, []string{event.Message}
}

// FmtMessageEvent is an event that only shows a message fmt.Sprintf'ed with
// the given arguments. All rules with fmt.Sprintf apply here.
type FmtMessageEvent struct {
	Message string
	Args    []any
}

func NewFmtMessageEvent(message string, a ...any) FmtMessageEvent {
	return FmtMessageEvent{Message: message, Args: a}
}

func (event FmtMessageEvent) Update(_ *GameState) ([]StateEvent, []string) {
	return nil, []string{fmt.Sprintf(event.Message, event.Args...)}
}

type EventIter struct {
	events []StateEvent
}

func NewEventIter() EventIter {
	return EventIter{make([]StateEvent, 0)}
}

// Next updates state given the top event, adds any follow up events to the
// front of the queue, and returns the messages from that event to be shown to
// the user. The boolean value is true if there are any more events in the
// queue.
func (iter *EventIter) Next(state *GameState) ([]string, bool) {
	if len(iter.events) == 0 {
		return nil, false
	}

	headEvent := iter.events[0]
	internalLogger.WithName("event_iter").V(1).Info("updating state", "event_name", reflect.TypeOf(headEvent))
	followUpEvents, messages := headEvent.Update(state)

	// pop queue
	iter.events = iter.events[1:len(iter.events)]

	if len(followUpEvents) != 0 {
		// create new queue with follow_up_events prepended to the front
		newQueue := make([]StateEvent, 0, len(iter.events)+len(followUpEvents))
		newQueue = append(newQueue, followUpEvents...)
		newQueue = append(newQueue, iter.events...)

		iter.events = newQueue
	}

	return messages, true
}

func (iter *EventIter) AddEvents(events []StateEvent) {
	iter.events = append(iter.events, events...)
}

func (iter EventIter) Len() int {
	return len(iter.events)
}
