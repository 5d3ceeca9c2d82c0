package actions

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jwebster45206/britannia/pkg/dialogue"
	"github.com/jwebster45206/britannia/pkg/gamedata"
	"github.com/jwebster45206/britannia/pkg/input"
	"github.com/jwebster45206/britannia/pkg/party"
	"github.com/jwebster45206/britannia/pkg/screen"
	"github.com/jwebster45206/britannia/pkg/spells"
	"github.com/jwebster45206/britannia/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	*Actions
	buf    *screen.Buffer
	script *input.Script
	combat *recordingCombat
}

type recordingCombat struct {
	targets []*world.Object
}

func (r *recordingCombat) BeginCombat(target *world.Object) {
	r.targets = append(r.targets, target)
}

type countingEffects struct {
	heals int
}

func (e *countingEffects) FullHeal() { e.heals++ }

func newFixture(t *testing.T, keys string) *fixture {
	t.Helper()
	tables, err := gamedata.Load(filepath.Join("..", "..", "data"))
	require.NoError(t, err)

	m, err := world.NewMap(10, 10, world.DefaultTileset(), "grass")
	require.NoError(t, err)
	m.City = true
	m.Avatar = world.Coords{X: 5, Y: 5}

	rng := rand.New(rand.NewPCG(7, 11))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	avatar, err := party.NewMemberFromSpec(&party.MemberSpec{Name: "Avatar", MaxHP: 600, XP: 9000, Dexterity: 10})
	require.NoError(t, err)
	iolo, err := party.NewMemberFromSpec(&party.MemberSpec{Name: "Iolo", Class: gamedata.ClassBard, MaxHP: 800, Dexterity: 10})
	require.NoError(t, err)
	p := party.New(rng, logger, avatar, iolo)

	buf := screen.NewTextArea()
	script := input.NewScript(keys)
	combat := &recordingCombat{}

	a := New(p, m, tables, buf, input.NewCollector(script, buf), rng, logger)
	a.Combat = combat
	return &fixture{Actions: a, buf: buf, script: script, combat: combat}
}

func (f *fixture) addPerson(t *testing.T, file string, npc world.NPCType, at world.Coords) *world.Object {
	t.Helper()
	spec, err := dialogue.LoadPersonSpec(filepath.Join("..", "..", "data", "people", file+".yaml"))
	require.NoError(t, err)
	obj := world.NewPerson(spec.Name, npc, dialogue.NewPerson(spec), at)
	f.Map.AddObject(obj)
	return obj
}

func TestSummonCreature(t *testing.T) {
	f := newFixture(t, "")

	assert.True(t, f.SummonCreature("orc"))
	assert.True(t, f.SummonCreature("4"))
	assert.Len(t, f.Map.Objects(), 2)
	assert.Equal(t, 2, strings.Count(f.buf.String(), "Orc summoned!"))

	assert.False(t, f.SummonCreature("balron"))
	assert.Contains(t, f.buf.String(), "balron not found")

	f.buf.Reset()
	assert.False(t, f.SummonCreature("  "))
	assert.Equal(t, "\n", f.buf.String())
}

func TestSummonCreature_NoRoom(t *testing.T) {
	f := newFixture(t, "")
	walled, err := world.NewMap(3, 3, world.DefaultTileset(), "wall")
	require.NoError(t, err)
	walled.Avatar = world.Coords{X: 1, Y: 1}
	f.Map = walled

	assert.False(t, f.SummonCreature("Rat"))
	assert.Contains(t, f.buf.String(), "No place to put Rat!")
}

func TestDestroyAt(t *testing.T) {
	f := newFixture(t, "")
	require.True(t, f.SummonCreature("bat"))
	bat := f.Map.Objects()[0]

	assert.True(t, f.DestroyAt(bat.Coords))
	assert.Contains(t, f.buf.String(), "Bat Destroyed!")
	assert.Empty(t, f.Map.Objects())
	assert.False(t, f.DestroyAt(bat.Coords))
}

func TestAttackAt(t *testing.T) {
	f := newFixture(t, "")
	at := world.Coords{X: 1, Y: 1}
	assert.False(t, f.AttackAt(at), "nothing there")

	pool := world.NewCreature(f.Tables.CreatureByName("Whirlpool"), at)
	f.Map.AddObject(pool)
	assert.False(t, f.AttackAt(at), "whirlpools cannot be attacked")
	f.Map.RemoveObject(pool)

	orc := world.NewCreature(f.Tables.CreatureByName("Orc"), at)
	f.Map.AddObject(orc)
	karma := f.Party.Karma
	assert.True(t, f.AttackAt(at))
	assert.Equal(t, karma, f.Party.Karma, "attacking an orc is fine")
	assert.Equal(t, []*world.Object{orc}, f.combat.targets)
}

func TestAttackAt_DocilePerson(t *testing.T) {
	f := newFixture(t, "")
	iolo := f.addPerson(t, "iolo", world.NPCTalker, world.Coords{X: 2, Y: 2})
	guard := world.NewPerson("guard", world.NPCGuard, nil, world.Coords{X: 8, Y: 8})
	f.Map.AddObject(guard)
	compassion := f.Party.Karma[party.Compassion]

	assert.True(t, f.AttackAt(iolo.Coords))
	assert.True(t, guard.IsHostile())
	assert.Less(t, f.Party.Karma[party.Compassion], compassion)
}

func TestAttackAt_GoodCreature(t *testing.T) {
	f := newFixture(t, "")
	at := world.Coords{X: 3, Y: 3}
	f.Map.AddObject(world.NewCreature(f.Tables.CreatureByName("Horse"), at))
	honor := f.Party.Karma[party.Honor]

	assert.True(t, f.AttackAt(at))
	assert.Less(t, f.Party.Karma[party.Honor], honor)
}

func TestChestTrap_ClassicOnlyAcidOrPoison(t *testing.T) {
	f := newFixture(t, "")
	trapped := 0
	for range 200 {
		ok, err := f.ChestTrap(-1)
		require.NoError(t, err)
		if ok {
			trapped++
		}
	}
	out := f.buf.String()
	assert.Positive(t, trapped)
	assert.NotContains(t, out, "Sleep Trap!")
	assert.NotContains(t, out, "Bomb Trap!")
	assert.Equal(t, trapped, strings.Count(out, "Trap!"))
	assert.Equal(t, trapped, strings.Count(out, "Evaded!"), "magic opening always evades")
}

func TestChestTrap_C64(t *testing.T) {
	f := newFixture(t, "")
	f.Settings = Settings{Enhancements: true, C64ChestTraps: true}
	for range 1000 {
		_, err := f.ChestTrap(-1)
		require.NoError(t, err)
	}
	out := f.buf.String()
	for _, name := range []string{"Acid", "Sleep", "Poison", "Bomb"} {
		assert.Contains(t, out, name+" Trap!")
	}
}

func TestChestTrap_BombHitsParty(t *testing.T) {
	f := newFixture(t, "")
	f.Settings = Settings{Enhancements: true, C64ChestTraps: true}

	for range 5000 {
		f.Party.HealAll()
		f.buf.Reset()
		_, err := f.ChestTrap(0)
		require.NoError(t, err)
		out := f.buf.String()
		if strings.Contains(out, "Bomb Trap!") && !strings.Contains(out, "Evaded!") {
			for _, m := range f.Party.Members {
				assert.Less(t, m.HP(), m.MaxHP(), m.Name())
			}
			return
		}
	}
	t.Fatal("no bomb went off")
}

func TestJimmyAt(t *testing.T) {
	f := newFixture(t, "")
	first := world.Coords{X: 1, Y: 0}
	second := world.Coords{X: 2, Y: 0}
	require.NoError(t, f.Map.SetTile(first, "locked_door"))
	require.NoError(t, f.Map.SetTile(second, "locked_door"))
	f.Party.Keys = 1

	assert.False(t, f.JimmyAt(world.Coords{X: 4, Y: 4}), "grass")
	assert.True(t, f.JimmyAt(first))
	assert.Equal(t, "door", f.Map.TileAt(first).Name)
	assert.Zero(t, f.Party.Keys)
	assert.Contains(t, f.buf.String(), "Unlocked!")

	assert.True(t, f.JimmyAt(second))
	assert.True(t, f.Map.TileAt(second).LockedDoor)
	assert.Contains(t, f.buf.String(), "No keys left!")
}

func TestOpenAt(t *testing.T) {
	f := newFixture(t, "")
	locked := world.Coords{X: 1, Y: 0}
	door := world.Coords{X: 2, Y: 0}
	require.NoError(t, f.Map.SetTile(locked, "locked_door"))
	require.NoError(t, f.Map.SetTile(door, "door"))

	assert.False(t, f.OpenAt(world.Coords{X: 4, Y: 4}))
	assert.True(t, f.OpenAt(locked))
	assert.Contains(t, f.buf.String(), "Can't!")

	assert.True(t, f.OpenAt(door))
	assert.Contains(t, f.buf.String(), "Opened!")
	for range 3 {
		f.Map.PassTurn()
		assert.Equal(t, "brick_floor", f.Map.TileAt(door).Name)
	}
	f.Map.PassTurn()
	assert.Equal(t, "door", f.Map.TileAt(door).Name, "door swings shut")
}

func stock(p *party.Party, n int) {
	for i := range p.Reagents {
		p.Reagents[i] = n
	}
}

func TestMixReagents(t *testing.T) {
	heal, _ := spells.SpellFromLetter('h')
	f := newFixture(t, "bxd ")
	stock(f.Party, 2)

	mixed, err := f.MixReagents(context.Background(), heal)
	require.NoError(t, err)
	assert.True(t, mixed)
	assert.Equal(t, 1, f.Party.Mixtures[heal])
	assert.Equal(t, 1, f.Party.Reagents[spells.Ginseng])
	assert.Contains(t, f.buf.String(), "Success!")
	assert.Zero(t, f.script.Remaining())
}

func TestMixReagents_Fizzles(t *testing.T) {
	heal, _ := spells.SpellFromLetter('h')
	f := newFixture(t, "a\n")
	stock(f.Party, 2)

	mixed, err := f.MixReagents(context.Background(), heal)
	require.NoError(t, err)
	assert.True(t, mixed)
	assert.Zero(t, f.Party.Mixtures[heal])
	assert.Equal(t, 1, f.Party.Reagents[spells.Ash])
	assert.Contains(t, f.buf.String(), "It Fizzles!")
}

func TestMixReagents_EscapeReverts(t *testing.T) {
	heal, _ := spells.SpellFromLetter('h')
	f := newFixture(t, "bf\033")
	stock(f.Party, 2)
	f.Party.Reagents[spells.Pearl] = 0

	mixed, err := f.MixReagents(context.Background(), heal)
	require.NoError(t, err)
	assert.False(t, mixed)
	assert.Equal(t, 2, f.Party.Reagents[spells.Ginseng])
	assert.Contains(t, f.buf.String(), "None Left!")
}

func TestMixReagents_InputFails(t *testing.T) {
	heal, _ := spells.SpellFromLetter('h')
	f := newFixture(t, "b")
	stock(f.Party, 2)

	_, err := f.MixReagents(context.Background(), heal)
	assert.ErrorIs(t, err, input.ErrNoMoreKeys)
	assert.Equal(t, 2, f.Party.Reagents[spells.Ginseng])
}

func healBowl(f *fixture) (*spells.Ingredients, spells.Spell) {
	heal, _ := spells.SpellFromLetter('h')
	in := spells.NewIngredients(f.Party)
	in.AddReagent(spells.Ginseng)
	in.AddReagent(spells.Silk)
	return in, heal
}

func TestMixHowMany(t *testing.T) {
	f := newFixture(t, "")
	stock(f.Party, 10)
	in, heal := healBowl(f)

	assert.True(t, f.MixHowMany(in, heal, 3))
	assert.Equal(t, 3, f.Party.Mixtures[heal])
	assert.Equal(t, 7, f.Party.Reagents[spells.Ginseng])
	assert.Equal(t, 7, f.Party.Reagents[spells.Silk])
	assert.Equal(t, 10, f.Party.Reagents[spells.Ash])
}

func TestMixHowMany_None(t *testing.T) {
	f := newFixture(t, "")
	stock(f.Party, 10)
	in, heal := healBowl(f)

	assert.False(t, f.MixHowMany(in, heal, 0))
	assert.Equal(t, 10, f.Party.Reagents[spells.Ginseng])
	assert.Contains(t, f.buf.String(), "None mixed!")
}

func TestMixHowMany_Capped(t *testing.T) {
	f := newFixture(t, "")
	stock(f.Party, 10)
	in, heal := healBowl(f)
	f.Party.Mixtures[heal] = 97

	assert.True(t, f.MixHowMany(in, heal, 5))
	assert.Equal(t, party.MaxMixtures, f.Party.Mixtures[heal])
	assert.Equal(t, 8, f.Party.Reagents[spells.Ginseng])
	assert.Contains(t, f.buf.String(), "Only need 2!")
}

func TestMixHowMany_NotEnough(t *testing.T) {
	f := newFixture(t, "")
	stock(f.Party, 3)
	in, heal := healBowl(f)

	assert.False(t, f.MixHowMany(in, heal, 5))
	assert.Equal(t, 3, f.Party.Reagents[spells.Ginseng])
	assert.Zero(t, f.Party.Mixtures[heal])
	assert.Contains(t, f.buf.String(), "enough reagents to mix 5")
}

func TestMixHowMany_FizzleReturnsExtra(t *testing.T) {
	f := newFixture(t, "")
	stock(f.Party, 10)
	in, heal := healBowl(f)
	in.AddReagent(spells.Ash)

	assert.True(t, f.MixHowMany(in, heal, 4))
	assert.Zero(t, f.Party.Mixtures[heal])
	assert.Equal(t, 9, f.Party.Reagents[spells.Ginseng], "only the first batch is lost")
	assert.Contains(t, f.buf.String(), "It Fizzles!")
}

func TestTalkAt_OutsideCity(t *testing.T) {
	f := newFixture(t, "")
	f.Map.City = false
	ok, err := f.TalkAt(context.Background(), world.Coords{X: 1, Y: 1})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, f.buf.String(), "Funny, no\nresponse!")
}

func TestTalkAt_NoOneToTalkTo(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()

	ok, err := f.TalkAt(ctx, world.Coords{X: 1, Y: 1})
	require.NoError(t, err)
	assert.False(t, ok)

	mute := world.NewPerson("villager", world.NPCEmpty, nil, world.Coords{X: 2, Y: 2})
	f.Map.AddObject(mute)
	ok, err = f.TalkAt(ctx, mute.Coords)
	require.NoError(t, err)
	assert.False(t, ok)

	angry := f.addPerson(t, "iolo", world.NPCTalker, world.Coords{X: 3, Y: 3})
	angry.Movement = world.MovementAttackAvatar
	ok, err = f.TalkAt(ctx, angry.Coords)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTalkAt_Conversation(t *testing.T) {
	f := newFixture(t, "job\nbye\n")
	iolo := f.addPerson(t, "iolo", world.NPCTalker, world.Coords{X: 3, Y: 3})

	ok, err := f.TalkAt(context.Background(), iolo.Coords)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, f.buf.String(), "crossbows.")
	assert.True(t, strings.HasSuffix(f.buf.String(), "Bye.\n"))
	assert.False(t, iolo.IsHostile())
}

func TestTalkAt_ConversationTurnsHostile(t *testing.T) {
	f := newFixture(t, "honesty\nn")
	mariah := f.addPerson(t, "mariah", world.NPCTalker, world.Coords{X: 3, Y: 3})

	ok, err := f.TalkAt(context.Background(), mariah.Coords)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, mariah.IsHostile())
}

func TestTalkAt_Python(t *testing.T) {
	f := newFixture(t, "bye\n")
	spec := &dialogue.PersonSpec{Name: "Python", Pronoun: "It", Description: "a huge snake"}
	python := world.NewCreature(f.Tables.CreatureByID(world.PythonID), world.Coords{X: 6, Y: 6})
	python.Talker = dialogue.NewPerson(spec)
	f.Map.AddObject(python)

	ok, err := f.TalkAt(context.Background(), python.Coords)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, f.buf.String(), "a huge snake")
}

func TestTalkAt_LordBritish(t *testing.T) {
	f := newFixture(t, "bye\n")
	effects := &countingEffects{}
	f.Effects = effects
	lb := f.addPerson(t, "lord_british", world.NPCLordBritish, world.Coords{X: 5, Y: 4})
	avatar := f.Party.Member(0)
	require.NoError(t, avatar.ApplyDamage(avatar.MaxHP()))
	require.Equal(t, party.StatusDead, avatar.Status())

	ok, err := f.TalkAt(context.Background(), lb.Coords)
	require.NoError(t, err)
	assert.True(t, ok)

	out := f.buf.String()
	assert.Contains(t, out, "Avatar, Thou shalt live again!")
	assert.Equal(t, party.StatusGood, avatar.Status())
	assert.Equal(t, avatar.MaxHP(), avatar.HP())
	assert.Equal(t, 1, effects.heals)

	assert.Contains(t, out, "Thou art now Level 8")
	assert.Equal(t, 1, strings.Count(out, "What would thou\nask of me?"))
}

func TestTalkAt_InputFails(t *testing.T) {
	f := newFixture(t, "job")
	iolo := f.addPerson(t, "iolo", world.NPCTalker, world.Coords{X: 3, Y: 3})

	ok, err := f.TalkAt(context.Background(), iolo.Coords)
	assert.True(t, ok)
	assert.ErrorIs(t, err, input.ErrNoMoreKeys)
}

func TestCheckLevels(t *testing.T) {
	f := newFixture(t, "")
	assert.True(t, f.CheckLevels())
	out := f.buf.String()
	assert.True(t, strings.HasPrefix(out, "\nAvatar\nThou art now Level 8"))
	assert.NotContains(t, out, "Iolo")
	assert.True(t, strings.HasSuffix(out, "What would thou\nask of me?\n"))

	f.buf.Reset()
	assert.False(t, f.CheckLevels())
	assert.Equal(t, "\nWhat would thou\nask of me?\n", f.buf.String())
}

func TestPickReagentsThenMixHowMany(t *testing.T) {
	heal, _ := spells.SpellFromLetter('h')
	f := newFixture(t, "bd\n")
	stock(f.Party, 10)

	bowl, err := f.PickReagents(context.Background())
	require.NoError(t, err)
	require.NotNil(t, bowl)
	assert.Equal(t, 9, f.Party.Reagents[spells.Ginseng])

	assert.True(t, f.MixHowMany(bowl, heal, 2))
	assert.Equal(t, 2, f.Party.Mixtures[heal])
	assert.Equal(t, 8, f.Party.Reagents[spells.Ginseng])
	assert.Equal(t, 8, f.Party.Reagents[spells.Silk])
}

func TestPickReagents_Escape(t *testing.T) {
	f := newFixture(t, "b\033")
	stock(f.Party, 3)

	bowl, err := f.PickReagents(context.Background())
	require.NoError(t, err)
	assert.Nil(t, bowl)
	assert.Equal(t, 3, f.Party.Reagents[spells.Ginseng])
}
