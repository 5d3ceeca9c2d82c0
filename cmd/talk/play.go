package main

import (
	"context"

	"github.com/jwebster45206/britannia/internal/session"
	"github.com/jwebster45206/britannia/pkg/conversation"
	"github.com/jwebster45206/britannia/pkg/input"
	"github.com/jwebster45206/britannia/pkg/screen"
	"github.com/jwebster45206/britannia/pkg/spells"
	"github.com/jwebster45206/britannia/pkg/world"
)

const commandKeys = "tamhsdojcq\033"

// play runs the command loop until the player quits or reading a key fails.
// refresh is called before every command so the caller can redraw whatever
// shows party state. Each finished command passes a turn in town.
func play(ctx context.Context, s *session.Session, display conversation.Display, in *input.Collector, refresh func()) error {
	for {
		refresh()
		display.Message("\nCommand: ")
		cmd, err := in.ReadChoice(ctx, commandKeys)
		if err != nil {
			return err
		}
		if cmd == 'q' || cmd == '\033' {
			display.Message("Quit\n")
			return nil
		}
		if err := command(ctx, s, display, in, cmd); err != nil {
			return err
		}
		s.Town.PassTurn()
	}
}

func command(ctx context.Context, s *session.Session, display conversation.Display, in *input.Collector, cmd rune) error {
	switch cmd {
	case 'm':
		display.Message("Mix\n")
		return mix(ctx, s, display, in)
	case 'h':
		display.Message("How many\n")
		return mixMany(ctx, s, display, in)
	case 's':
		display.Message("Summon\nWhat? ")
		name, err := in.ReadString(ctx, 16)
		if err != nil {
			return err
		}
		s.Actions.SummonCreature(name)
		return nil
	case 'c':
		display.Message("Chest\n")
		return chest(ctx, s, display, in)
	case 'd':
		display.Message("Destroy\n")
		return destroy(ctx, s, display, in)
	case 'o', 'j':
		return nearby(ctx, s, display, in, cmd)
	case 't':
		display.Message("Talk\n")
	case 'a':
		display.Message("Attack\n")
	}

	i, err := whom(ctx, s, display, in)
	if err != nil || i < 0 {
		return err
	}
	if cmd == 'a' {
		if !s.Attack(i) {
			display.Message("Nothing to attack.\n")
		}
		return nil
	}
	ok, err := s.Talk(ctx, i)
	if err != nil {
		return err
	}
	if !ok {
		display.Message("No response.\n")
	}
	return nil
}

var directionKeys = map[rune]string{'n': "north", 's': "south", 'e': "east", 'w': "west"}

// nearby opens or jimmies the square next to the avatar.
func nearby(ctx context.Context, s *session.Session, display conversation.Display, in *input.Collector, cmd rune) error {
	verb := "Open"
	if cmd == 'j' {
		verb = "Jimmy"
	}
	display.Message("%s\nDir: ", verb)
	key, err := in.ReadChoice(ctx, "nsew\033")
	if err != nil {
		return err
	}
	if key == '\033' {
		display.Message("\n")
		return nil
	}
	dir := world.DirectionFromName(directionKeys[key])
	display.Message("%s\n", directionKeys[key])
	dx, dy := dir.Delta()
	at := s.Town.Avatar.Add(dx, dy)

	var done bool
	if cmd == 'j' {
		done = s.Actions.JimmyAt(at)
	} else {
		done = s.Actions.OpenAt(at)
	}
	if !done {
		display.Message("%sNot here!%s\n", screen.Grey, screen.White)
	}
	return nil
}

// destroy removes anything on the map, townsfolk or summoned creature.
func destroy(ctx context.Context, s *session.Session, display conversation.Display, in *input.Collector) error {
	objs := s.Town.Objects()
	if len(objs) == 0 {
		display.Message("There is nothing here.\n")
		return nil
	}
	for i, o := range objs {
		display.Message("%c) %s\n", 'a'+i, o.Name)
	}
	display.Message("What? ")
	i, err := in.ReadAlpha(ctx, rune('a'+len(objs)-1), "What? ")
	if err != nil || i < 0 {
		return err
	}
	display.Message("%s\n", objs[i].Name)
	s.DestroyAt(objs[i].Coords)
	return nil
}

// chest springs a chest trap on a party member. Backing out opens it by
// magic.
func chest(ctx context.Context, s *session.Session, display conversation.Display, in *input.Collector) error {
	for i := range s.Party.Size() {
		display.Message("%c) %s\n", 'a'+i, s.Party.Member(i).Name())
	}
	display.Message("Who opens? ")
	i, err := in.ReadAlpha(ctx, rune('a'+s.Party.Size()-1), "Who opens? ")
	if err != nil {
		return err
	}
	if i >= 0 {
		display.Message("%s\n", s.Party.Member(i).Name())
	} else {
		display.Message("Opened by magic.\n")
	}
	trapped, err := s.Actions.ChestTrap(i)
	if err != nil {
		return err
	}
	if !trapped {
		display.Message("The chest opens.\n")
	}
	return nil
}

// whom lists the townsfolk and reads a letter. It returns -1 if the player
// backs out or there is no one to pick.
func whom(ctx context.Context, s *session.Session, display conversation.Display, in *input.Collector) (int, error) {
	if len(s.People) == 0 {
		display.Message("There is no one here.\n")
		return -1, nil
	}
	for i, p := range s.People {
		display.Message("%c) %s\n", 'a'+i, p.Name)
	}
	display.Message("Whom? ")
	i, err := in.ReadAlpha(ctx, rune('a'+len(s.People)-1), "Whom? ")
	if err != nil || i < 0 {
		return i, err
	}
	display.Message("%s\n", s.People[i].Name)
	return i, nil
}

func mix(ctx context.Context, s *session.Session, display conversation.Display, in *input.Collector) error {
	display.Message("Spell: ")
	i, err := in.ReadAlpha(ctx, 'z', "Spell: ")
	if err != nil || i < 0 {
		return err
	}
	spell := spells.Spell(i)
	display.Message("%s\n", spell.Name())
	_, err = s.Actions.MixReagents(ctx, spell)
	return err
}

func mixMany(ctx context.Context, s *session.Session, display conversation.Display, in *input.Collector) error {
	display.Message("Spell: ")
	i, err := in.ReadAlpha(ctx, 'z', "Spell: ")
	if err != nil || i < 0 {
		return err
	}
	spell := spells.Spell(i)
	display.Message("%s\n", spell.Name())

	bowl, err := s.Actions.PickReagents(ctx)
	if err != nil || bowl == nil {
		return err
	}
	display.Message("\nHow many? ")
	n, err := in.ReadInt(ctx, 2)
	if err != nil {
		bowl.Revert()
		return err
	}
	s.Actions.MixHowMany(bowl, spell, n)
	return nil
}
