// Package actions implements the player's commands against the world: opening
// doors, attacking, talking, mixing reagents, and a few debug commands.
package actions

import (
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/jwebster45206/britannia/pkg/conversation"
	"github.com/jwebster45206/britannia/pkg/gamedata"
	"github.com/jwebster45206/britannia/pkg/party"
	"github.com/jwebster45206/britannia/pkg/screen"
	"github.com/jwebster45206/britannia/pkg/world"
)

// summonRadius is how far from the avatar a summoned creature may appear.
const summonRadius = 3

// Settings are the gameplay options that change rules.
type Settings struct {
	Enhancements  bool
	C64ChestTraps bool
}

// CombatStarter begins a fight with an object on the map.
type CombatStarter interface {
	BeginCombat(target *world.Object)
}

type Actions struct {
	Party    *party.Party
	Map      *world.Map
	Tables   *gamedata.Tables
	Display  conversation.Display
	Input    conversation.Input
	Effects  conversation.Effects
	Rand     *rand.Rand
	Settings Settings
	Combat   CombatStarter
	Logger   *slog.Logger
}

// New wires actions together and hooks level-up announcements into the party.
func New(p *party.Party, m *world.Map, tables *gamedata.Tables, display conversation.Display, in conversation.Input, rng *rand.Rand, logger *slog.Logger) *Actions {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Actions{
		Party:   p,
		Map:     m,
		Tables:  tables,
		Display: display,
		Input:   in,
		Rand:    rng,
		Logger:  logger,
	}
	p.OnAdvance = func(member *party.Member) {
		a.Display.Message("%s\nThou art now Level %d\n", member.Name(), member.RealLevel())
	}
	return a
}

// SummonCreature places a creature, found by ID or by name, next to the
// avatar.
func (a *Actions) SummonCreature(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		a.Display.Message("\n")
		return false
	}

	var c *gamedata.Creature
	if id, err := strconv.Atoi(name); err == nil {
		c = a.Tables.CreatureByID(id)
	}
	if c == nil {
		c = a.Tables.CreatureByName(name)
	}
	if c == nil {
		a.Display.Message("\n%s not found\n", name)
		return false
	}

	if !a.Map.SpawnNear(world.NewCreature(c, world.Coords{}), summonRadius) {
		a.Display.Message("\nNo place to put %s!\n\n", c.Name)
		return false
	}
	a.Logger.Debug("Creature summoned", "creature", c.Name)
	a.Display.Message("\n%s summoned!\n", c.Name)
	return true
}

// DestroyAt removes whatever stands at c.
func (a *Actions) DestroyAt(c world.Coords) bool {
	obj := a.Map.ObjectAt(c)
	if obj == nil {
		return false
	}
	a.Map.RemoveObject(obj)
	a.Display.Message("%s Destroyed!\n", obj.Name)
	return true
}

// AttackAt starts combat with the object at c. It reports false if there is
// nothing there that can be attacked.
func (a *Actions) AttackAt(c world.Coords) bool {
	obj := a.Map.ObjectAt(c)
	if obj == nil || !obj.IsAttackable() {
		return false
	}

	docile := obj.Type == world.ObjectPerson && !obj.IsHostile()
	if docile && a.Map.City {
		a.Map.AlertGuards()
	}
	if docile || obj.IsGood() {
		a.Party.AdjustKarma(party.KarmaAttackedGood)
	}

	a.Logger.Info("Combat started", "target", obj.Name, "coords", obj.Coords.String())
	if a.Combat != nil {
		a.Combat.BeginCombat(obj)
	}
	return true
}

type trap struct {
	name   string
	effect party.Effect
	color  screen.Color
}

var traps = [4]trap{
	{"Acid", party.EffectFire, screen.Red},
	{"Sleep", party.EffectSleep, screen.Purple},
	{"Poison", party.EffectPoison, screen.Green},
	{"Bomb", party.EffectLava, screen.Red},
}

// ChestTrap springs a chest's trap, if it has one, on the player who opened
// it. A negative player means the chest was opened by magic and the trap is
// always evaded. It reports whether the chest was trapped.
func (a *Actions) ChestTrap(player int) (bool, error) {
	r4 := a.Rand.IntN(4)
	pass := r4&1 == 0
	if a.Settings.Enhancements && a.Settings.C64ChestTraps {
		pass = a.Rand.IntN(2) == 0
	}
	if !pass {
		return false, nil
	}

	t := traps[r4&a.Rand.IntN(4)]
	a.Display.Message("%s%s%s Trap!\n", t.color, t.name, screen.White)

	m := a.Party.Member(player)
	if player < 0 || m == nil || m.Dexterity()+25 >= a.Rand.IntN(100) {
		a.Display.Message("Evaded!\n")
		return true, nil
	}

	a.Logger.Debug("Chest trap sprung", "trap", t.name, "player", m.Name())
	if t.effect == party.EffectLava {
		return true, a.Party.ApplyEffect(t.effect)
	}
	return true, m.ApplyEffect(t.effect, a.Rand)
}

// JimmyAt unlocks a locked door at c with one of the party's keys.
func (a *Actions) JimmyAt(c world.Coords) bool {
	tile := a.Map.TileAt(c)
	if tile == nil || !tile.LockedDoor {
		return false
	}

	if a.Party.Keys > 0 {
		door := a.Map.Tileset.ByName("door")
		a.Map.Annotate(c, door.ID, -1)
		a.Party.Keys--
		a.Display.Message("\nUnlocked!\n")
	} else {
		a.Display.Message("%sNo keys left!%s\n", screen.Grey, screen.White)
	}
	return true
}

// OpenAt opens the door at c for a few turns.
func (a *Actions) OpenAt(c world.Coords) bool {
	tile := a.Map.TileAt(c)
	if tile == nil || !(tile.Door || tile.LockedDoor) {
		return false
	}
	if tile.LockedDoor {
		a.Display.Message("%sCan't!%s\n", screen.Grey, screen.White)
		return true
	}

	floor := a.Map.Tileset.ByName("brick_floor")
	a.Map.Annotate(c, floor.ID, 4)
	a.Display.Message("\nOpened!\n")
	return true
}

// CheckLevels advances anyone who has earned it and asks what the player
// would know.
func (a *Actions) CheckLevels() bool {
	advanced := a.announceLevels()
	a.Display.Message("\nWhat would thou\nask of me?\n")
	return advanced
}

// announceLevels runs the party's level check, separating the level-up
// messages from whatever came before.
func (a *Actions) announceLevels() bool {
	onAdvance := a.Party.OnAdvance
	first := true
	a.Party.OnAdvance = func(m *party.Member) {
		if first {
			a.Display.Message("\n")
			first = false
		}
		if onAdvance != nil {
			onAdvance(m)
		}
	}
	defer func() { a.Party.OnAdvance = onAdvance }()
	return a.Party.CheckLevels()
}
