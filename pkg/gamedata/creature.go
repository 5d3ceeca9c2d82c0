package gamedata

// CreatureSpec is one creature entry as written in creatures.yaml.
type CreatureSpec struct {
	ID         int    `yaml:"id"`
	Name       string `yaml:"name"`
	Tile       string `yaml:"tile"`
	HP         int    `yaml:"hp"`
	XP         int    `yaml:"xp"`
	Good       bool   `yaml:"good,omitempty"`
	Attackable *bool  `yaml:"attackable,omitempty"` // defaults to true
}

type Creature struct {
	ID         int
	Name       string
	Tile       string
	HP         int
	XP         int
	Good       bool
	Attackable bool
}

func newCreature(spec CreatureSpec) *Creature {
	c := &Creature{
		ID:         spec.ID,
		Name:       spec.Name,
		Tile:       spec.Tile,
		HP:         spec.HP,
		XP:         spec.XP,
		Good:       spec.Good,
		Attackable: true,
	}
	if spec.Attackable != nil {
		c.Attackable = *spec.Attackable
	}
	return c
}
