package actions

import (
	"context"
	"fmt"

	"github.com/jwebster45206/britannia/pkg/conversation"
	"github.com/jwebster45206/britannia/pkg/party"
	"github.com/jwebster45206/britannia/pkg/world"
)

// hostileTalker turns the speaker against the avatar when a conversation
// ends in an attack.
type hostileTalker struct {
	conversation.Talker
	obj *world.Object
}

func (h hostileTalker) BeginAttack() {
	h.obj.Movement = world.MovementAttackAvatar
	h.Talker.BeginAttack()
}

// levelParty is what a conversation sees of the party: healing as usual,
// level checks with announcements.
type levelParty struct {
	a *Actions
}

func (p levelParty) HealAll()          { p.a.Party.HealAll() }
func (p levelParty) CheckLevels() bool { return p.a.announceLevels() }

// TalkAt holds a conversation with whoever stands at c. It reports false if
// there is no one there willing to talk.
func (a *Actions) TalkAt(ctx context.Context, c world.Coords) (bool, error) {
	if !a.Map.City {
		a.Display.Message("Funny, no\nresponse!\n")
		return true, nil
	}

	obj := a.Map.ObjectAt(c)
	if obj == nil || !obj.CanConverse() {
		return false, nil
	}
	if obj.IsHostile() && obj.ID() != world.PythonID {
		return false, nil
	}

	if obj.NPCType == world.NPCLordBritish {
		if avatar := a.Party.Member(0); avatar != nil && avatar.Status() == party.StatusDead {
			a.Display.Message("%s, Thou shalt live again!\n", avatar.Name())
			avatar.Heal(party.HealResurrect)
			avatar.Heal(party.HealFull)
			if a.Effects != nil {
				a.Effects.FullHeal()
			}
		}
	}

	a.Logger.Debug("Conversation started", "with", obj.Name)
	w := conversation.NewWalker(a.Display, a.Input, levelParty{a}, a.Logger)
	w.Effects = a.Effects
	if _, err := w.Start(ctx, hostileTalker{Talker: obj.Talker, obj: obj}); err != nil {
		return true, fmt.Errorf("conversation with %s failed: %w", obj.Name, err)
	}
	return true, nil
}
