package gamedata

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	WeaponsFile   = "weapons.yaml"
	ArmorsFile    = "armors.yaml"
	CreaturesFile = "creatures.yaml"
)

// Tables is the full set of static item and creature data.
type Tables struct {
	Weapons   []*Weapon
	Armors    []*Armor
	Creatures []*Creature
}

type weaponsDoc struct {
	Weapons []WeaponSpec `yaml:"weapons"`
}

type armorsDoc struct {
	Armors []ArmorSpec `yaml:"armors"`
}

type creaturesDoc struct {
	Creatures []CreatureSpec `yaml:"creatures"`
}

// Load reads all three tables from dir. Loading stops at the first malformed
// entry.
func Load(dir string) (*Tables, error) {
	t := &Tables{}

	data, err := os.ReadFile(filepath.Join(dir, WeaponsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read weapons: %w", err)
	}
	if t.Weapons, err = ParseWeapons(data); err != nil {
		return nil, err
	}

	data, err = os.ReadFile(filepath.Join(dir, ArmorsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read armors: %w", err)
	}
	if t.Armors, err = ParseArmors(data); err != nil {
		return nil, err
	}

	data, err = os.ReadFile(filepath.Join(dir, CreaturesFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read creatures: %w", err)
	}
	if t.Creatures, err = ParseCreatures(data); err != nil {
		return nil, err
	}

	return t, nil
}

// ParseWeapons decodes weapons.yaml. Weapon types are assigned in file order.
func ParseWeapons(data []byte) ([]*Weapon, error) {
	var doc weaponsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: weapons: %v", ErrMalformed, err)
	}

	weapons := make([]*Weapon, 0, len(doc.Weapons))
	for i, spec := range doc.Weapons {
		w, err := newWeapon(WeaponType(i), spec)
		if err != nil {
			return nil, err
		}
		weapons = append(weapons, w)
	}
	return weapons, nil
}

// ParseArmors decodes armors.yaml. Armor types are assigned in file order.
func ParseArmors(data []byte) ([]*Armor, error) {
	var doc armorsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: armors: %v", ErrMalformed, err)
	}

	armors := make([]*Armor, 0, len(doc.Armors))
	for i, spec := range doc.Armors {
		a, err := newArmor(ArmorType(i), spec)
		if err != nil {
			return nil, err
		}
		armors = append(armors, a)
	}
	return armors, nil
}

func ParseCreatures(data []byte) ([]*Creature, error) {
	var doc creaturesDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: creatures: %v", ErrMalformed, err)
	}

	seen := make(map[int]bool, len(doc.Creatures))
	creatures := make([]*Creature, 0, len(doc.Creatures))
	for _, spec := range doc.Creatures {
		if spec.ID <= 0 {
			return nil, fmt.Errorf("%w: creature %s has no id", ErrMalformed, spec.Name)
		}
		if seen[spec.ID] {
			return nil, fmt.Errorf("%w: duplicate creature id %d", ErrMalformed, spec.ID)
		}
		seen[spec.ID] = true
		creatures = append(creatures, newCreature(spec))
	}
	return creatures, nil
}

// Weapon returns the weapon of the given type, or nil if there is none.
func (t *Tables) Weapon(wt WeaponType) *Weapon {
	if wt < 0 || int(wt) >= len(t.Weapons) {
		return nil
	}
	return t.Weapons[wt]
}

// WeaponByName finds a weapon by name, ignoring case.
func (t *Tables) WeaponByName(name string) *Weapon {
	for _, w := range t.Weapons {
		if sameName(w.Name, name) {
			return w
		}
	}
	return nil
}

// Armor returns the armor of the given type, or nil if there is none.
func (t *Tables) Armor(at ArmorType) *Armor {
	if at < 0 || int(at) >= len(t.Armors) {
		return nil
	}
	return t.Armors[at]
}

// ArmorByName finds armor by name, ignoring case.
func (t *Tables) ArmorByName(name string) *Armor {
	for _, a := range t.Armors {
		if sameName(a.Name, name) {
			return a
		}
	}
	return nil
}

func (t *Tables) CreatureByID(id int) *Creature {
	for _, c := range t.Creatures {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (t *Tables) CreatureByName(name string) *Creature {
	for _, c := range t.Creatures {
		if sameName(c.Name, name) {
			return c
		}
	}
	return nil
}
