// Package session assembles a playable town from storage: the party, the
// people to talk to, and the actions that tie them together. Both terminal
// front ends drive a Session.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"
	"github.com/jwebster45206/britannia/internal/logger"
	"github.com/jwebster45206/britannia/pkg/actions"
	"github.com/jwebster45206/britannia/pkg/conversation"
	"github.com/jwebster45206/britannia/pkg/dialogue"
	"github.com/jwebster45206/britannia/pkg/gamedata"
	"github.com/jwebster45206/britannia/pkg/party"
	"github.com/jwebster45206/britannia/pkg/storage"
	"github.com/jwebster45206/britannia/pkg/world"
)

const townSize = 16

// ErrSaveNotFound means the requested save does not exist or has expired.
var ErrSaveNotFound = errors.New("saved party not found")

// Options control how a session starts.
type Options struct {
	// SaveID resumes a saved party. Empty starts a new one.
	SaveID   string
	Settings actions.Settings
	Rand     *rand.Rand
	Logger   *slog.Logger
}

type Session struct {
	ID      uuid.UUID
	Party   *party.Party
	Town    *world.Map
	People  []*world.Object
	Tables  *gamedata.Tables
	Actions *actions.Actions

	display conversation.Display
	store   storage.Storage
	logger  *slog.Logger
}

// New loads everything the town needs from store.
func New(ctx context.Context, store storage.Storage, display conversation.Display, in conversation.Input, opts Options) (*Session, error) {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	tables, err := store.LoadTables(ctx)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Tables:  tables,
		display: display,
		store:   store,
	}

	if opts.SaveID != "" {
		s.ID, err = uuid.Parse(opts.SaveID)
		if err != nil {
			return nil, fmt.Errorf("invalid save id %q: %w", opts.SaveID, err)
		}
		spec, err := store.LoadParty(ctx, s.ID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrSaveNotFound, err)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resume save: %w", err)
		}
		s.Party = party.FromSpec(spec, opts.Rand, opts.Logger)
	} else {
		s.ID = uuid.New()
		s.Party, err = DefaultParty(tables, opts.Rand, opts.Logger)
		if err != nil {
			return nil, err
		}
	}
	s.logger = logger.WithSaveID(opts.Logger, s.ID)

	s.Town, err = world.NewMap(townSize, townSize, world.DefaultTileset(), "brick_floor")
	if err != nil {
		return nil, err
	}
	s.Town.City = true
	s.Town.Avatar = world.Coords{X: townSize / 2, Y: townSize / 2}
	if err := s.Town.SetTile(s.Town.Avatar.Add(0, -1), "locked_door"); err != nil {
		return nil, err
	}
	if err := s.Town.SetTile(s.Town.Avatar.Add(-1, 0), "door"); err != nil {
		return nil, err
	}

	s.Actions = actions.New(s.Party, s.Town, tables, display, in, opts.Rand, s.logger)
	s.Actions.Settings = opts.Settings
	s.Actions.Combat = s

	if err := s.populate(ctx, opts.Rand); err != nil {
		return nil, err
	}
	s.logger.Info("Session started", "members", s.Party.Size(), "people", len(s.People))
	return s, nil
}

// populate places everyone from the people directory in a ring around the
// avatar.
func (s *Session) populate(ctx context.Context, rng *rand.Rand) error {
	ids, err := s.store.ListPeople(ctx)
	if err != nil {
		return err
	}

	spots := ring(s.Town.Avatar, 2)
	for i, id := range ids {
		if i >= len(spots) {
			s.logger.Warn("No room in town", "person", id)
			break
		}
		spec, err := s.store.GetPerson(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", id, err)
		}

		person := dialogue.NewPerson(spec)
		person.Rand = rng
		obj := world.NewPerson(spec.Name, npcType(spec), person, spots[i])
		person.OnAttack = func() { s.Actions.AttackAt(obj.Coords) }

		s.Town.AddObject(obj)
		s.People = append(s.People, obj)
	}
	return nil
}

func npcType(spec *dialogue.PersonSpec) world.NPCType {
	switch spec.Role {
	case dialogue.RoleLordBritish:
		return world.NPCLordBritish
	case dialogue.RoleHostile:
		return world.NPCGuard
	}
	return world.NPCTalker
}

// ring lists the squares exactly r steps from c, clockwise from the top left.
func ring(c world.Coords, r int) []world.Coords {
	var out []world.Coords
	for dx := -r; dx <= r; dx++ {
		out = append(out, c.Add(dx, -r))
	}
	for dy := -r + 1; dy <= r; dy++ {
		out = append(out, c.Add(r, dy))
	}
	for dx := r - 1; dx >= -r; dx-- {
		out = append(out, c.Add(dx, r))
	}
	for dy := r - 1; dy > -r; dy-- {
		out = append(out, c.Add(-r, dy))
	}
	return out
}

// DefaultParty is the party a new game starts with.
func DefaultParty(tables *gamedata.Tables, rng *rand.Rand, logger *slog.Logger) (*party.Party, error) {
	starters := []struct {
		spec   party.MemberSpec
		weapon string
		armor  string
	}{
		{party.MemberSpec{Name: "Avatar", Class: gamedata.ClassShepherd, MaxHP: 100, XP: 150, Strength: 15, Dexterity: 15, Intelligence: 15}, "Staff", "Cloth"},
		{party.MemberSpec{Name: "Iolo", Class: gamedata.ClassBard, MaxHP: 200, XP: 350, Strength: 16, Dexterity: 19, Intelligence: 13}, "Sling", "Cloth"},
		{party.MemberSpec{Name: "Shamino", Class: gamedata.ClassRanger, MaxHP: 200, XP: 280, Strength: 16, Dexterity: 22, Intelligence: 17}, "Bow", "Leather"},
	}

	var members []*party.Member
	for _, st := range starters {
		m, err := party.NewMemberFromSpec(&st.spec)
		if err != nil {
			return nil, err
		}
		w := tables.WeaponByName(st.weapon)
		a := tables.ArmorByName(st.armor)
		if w == nil || a == nil {
			return nil, fmt.Errorf("%w: starting gear %s/%s missing", gamedata.ErrMalformed, st.weapon, st.armor)
		}
		if err := m.Equip(w, a); err != nil {
			return nil, fmt.Errorf("failed to equip %s: %w", st.spec.Name, err)
		}
		members = append(members, m)
	}

	p := party.New(rng, logger, members...)
	p.Keys = 2
	for i := range p.Reagents {
		p.Reagents[i] = 5
	}
	return p, nil
}

// BeginCombat is where a fight would start. Towns only announce it.
func (s *Session) BeginCombat(target *world.Object) {
	target.Movement = world.MovementAttackAvatar
	s.display.Message("\nCombat with\n%s!\n", target.Name)
}

// Talk holds a conversation with the i'th person.
func (s *Session) Talk(ctx context.Context, i int) (bool, error) {
	if i < 0 || i >= len(s.People) {
		return false, nil
	}
	return s.Actions.TalkAt(ctx, s.People[i].Coords)
}

// Attack fights the i'th person.
func (s *Session) Attack(i int) bool {
	if i < 0 || i >= len(s.People) {
		return false
	}
	return s.Actions.AttackAt(s.People[i].Coords)
}

// DestroyAt removes whatever stands at c, dropping it from the townsfolk if
// it was one of them.
func (s *Session) DestroyAt(c world.Coords) bool {
	obj := s.Town.ObjectAt(c)
	if !s.Actions.DestroyAt(c) {
		return false
	}
	s.People = slices.DeleteFunc(s.People, func(o *world.Object) bool { return o == obj })
	return true
}

// Save writes the party under the session's ID.
func (s *Session) Save(ctx context.Context) error {
	if err := s.store.SaveParty(ctx, s.ID, s.Party.Spec()); err != nil {
		return err
	}
	s.logger.Info("Party saved")
	return nil
}

// IsNotFound reports whether err means a save or resource is missing.
// Use errors.Is with ErrSaveNotFound to tell a missing save apart.
func IsNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
