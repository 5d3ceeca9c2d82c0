package world

import (
	"github.com/jwebster45206/britannia/pkg/conversation"
	"github.com/jwebster45206/britannia/pkg/gamedata"
)

type ObjectType int

const (
	ObjectUnknown ObjectType = iota
	ObjectCreature
	ObjectPerson
)

type Movement int

const (
	MovementFixed Movement = iota
	MovementWander
	MovementFollowAvatar
	MovementAttackAvatar
)

type NPCType int

const (
	NPCEmpty NPCType = iota
	NPCTalker
	NPCGuard
	NPCVendor
	NPCLordBritish
)

// PythonID is the one creature that both attacks and talks.
const PythonID = 7

// Object is anything standing on the map.
type Object struct {
	Type     ObjectType
	Name     string
	Coords   Coords
	TileID   int
	Movement Movement

	// Creature is the creature's table entry; persons may have one too.
	Creature *gamedata.Creature

	NPCType NPCType
	Talker  conversation.Talker
}

// NewCreature places a creature from the tables.
func NewCreature(c *gamedata.Creature, at Coords) *Object {
	return &Object{
		Type:     ObjectCreature,
		Name:     c.Name,
		Coords:   at,
		Movement: MovementAttackAvatar,
		Creature: c,
	}
}

// NewPerson places a townsperson who can be talked to.
func NewPerson(name string, npc NPCType, talker conversation.Talker, at Coords) *Object {
	return &Object{
		Type:     ObjectPerson,
		Name:     name,
		Coords:   at,
		Movement: MovementWander,
		NPCType:  npc,
		Talker:   talker,
	}
}

// ID is the creature table ID, or zero if the object has none.
func (o *Object) ID() int {
	if o.Creature == nil {
		return 0
	}
	return o.Creature.ID
}

func (o *Object) CanConverse() bool {
	return o.Talker != nil
}

func (o *Object) IsAttackable() bool {
	if o.Creature != nil {
		return o.Creature.Attackable
	}
	return o.Type == ObjectPerson
}

func (o *Object) IsGood() bool {
	return o.Creature != nil && o.Creature.Good
}

func (o *Object) IsHostile() bool {
	return o.Movement == MovementAttackAvatar
}
