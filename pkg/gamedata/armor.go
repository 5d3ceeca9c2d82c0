package gamedata

import "fmt"

type ArmorType int

// ArmorSpec is one armor entry as written in armors.yaml.
type ArmorSpec struct {
	Name        string       `yaml:"name"`
	Defense     int          `yaml:"defense"`
	Constraints []Constraint `yaml:"constraints,omitempty"`
}

type Armor struct {
	Type    ArmorType
	Name    string
	Defense int

	canUse classMask
}

func newArmor(t ArmorType, spec ArmorSpec) (*Armor, error) {
	mask, err := applyConstraints(allClasses, spec.Constraints)
	if err != nil {
		return nil, fmt.Errorf("armor %s: %w", spec.Name, err)
	}
	return &Armor{
		Type:    t,
		Name:    spec.Name,
		Defense: spec.Defense,
		canUse:  mask,
	}, nil
}

// CanWear reports whether a character of class c can wear the armor.
func (a *Armor) CanWear(c ClassType) bool {
	return a.canUse.has(c)
}
