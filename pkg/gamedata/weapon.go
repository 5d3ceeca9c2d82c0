package gamedata

import (
	"fmt"
)

type WeaponType int

// Weapon flags.
const (
	WeapLose uint16 = 1 << iota
	WeapLoseWhenRanged
	WeapChooseDistance
	WeapAlwaysHits
	WeapMagic
	WeapAttackThroughObjects
	WeapAbsoluteRange
	WeapReturns
	WeapDontShowTravel
)

// Constraint grants or removes the use of an item for one class or for all.
type Constraint struct {
	Class  string `yaml:"class"`
	CanUse bool   `yaml:"canuse"`
}

// WeaponSpec is one weapon entry as written in weapons.yaml.
type WeaponSpec struct {
	Name          string       `yaml:"name"`
	Abbr          string       `yaml:"abbr"`
	Range         *int         `yaml:"range,omitempty"`
	AbsoluteRange *int         `yaml:"absolute_range,omitempty"`
	Damage        int          `yaml:"damage"`
	HitTile       string       `yaml:"hittile,omitempty"`
	MissTile      string       `yaml:"misstile,omitempty"`
	LeaveTile     string       `yaml:"leavetile,omitempty"`
	Constraints   []Constraint `yaml:"constraints,omitempty"`

	Lose                 bool `yaml:"lose,omitempty"`
	LoseWhenRanged       bool `yaml:"losewhenranged,omitempty"`
	ChooseDistance       bool `yaml:"choosedistance,omitempty"`
	AlwaysHits           bool `yaml:"alwayshits,omitempty"`
	Magic                bool `yaml:"magic,omitempty"`
	AttackThroughObjects bool `yaml:"attackthroughobjects,omitempty"`
	Returns              bool `yaml:"returns,omitempty"`
	DontShowTravel       bool `yaml:"dontshowtravel,omitempty"`
}

type Weapon struct {
	Type      WeaponType
	Name      string
	Abbr      string
	Range     int
	Damage    int
	HitTile   string
	MissTile  string
	LeaveTile string
	Flags     uint16

	canUse classMask
}

func newWeapon(t WeaponType, spec WeaponSpec) (*Weapon, error) {
	w := &Weapon{
		Type:      t,
		Name:      spec.Name,
		Abbr:      spec.Abbr,
		Damage:    spec.Damage,
		HitTile:   "hit_flash",
		MissTile:  "miss_flash",
		LeaveTile: spec.LeaveTile,
		canUse:    allClasses,
	}

	switch {
	case spec.Range != nil:
		w.Range = *spec.Range
	case spec.AbsoluteRange != nil:
		w.Range = *spec.AbsoluteRange
		w.Flags |= WeapAbsoluteRange
	default:
		return nil, fmt.Errorf("%w: range or absolute_range not found for weapon %s", ErrMalformed, spec.Name)
	}

	for _, f := range []struct {
		set  bool
		flag uint16
	}{
		{spec.Lose, WeapLose},
		{spec.LoseWhenRanged, WeapLoseWhenRanged},
		{spec.ChooseDistance, WeapChooseDistance},
		{spec.AlwaysHits, WeapAlwaysHits},
		{spec.Magic, WeapMagic},
		{spec.AttackThroughObjects, WeapAttackThroughObjects},
		{spec.Returns, WeapReturns},
		{spec.DontShowTravel, WeapDontShowTravel},
	} {
		if f.set {
			w.Flags |= f.flag
		}
	}

	if spec.HitTile != "" {
		w.HitTile = spec.HitTile
	}
	if spec.MissTile != "" {
		w.MissTile = spec.MissTile
	}

	mask, err := applyConstraints(allClasses, spec.Constraints)
	if err != nil {
		return nil, fmt.Errorf("weapon %s: %w", spec.Name, err)
	}
	w.canUse = mask

	return w, nil
}

// applyConstraints folds constraints over a starting mask, in order.
func applyConstraints(mask classMask, constraints []Constraint) (classMask, error) {
	for _, c := range constraints {
		var bits classMask
		if class, ok := ParseClass(c.Class); ok {
			bits = 1 << class
		} else if sameName(c.Class, "all") {
			bits = allClasses
		} else {
			return 0, fmt.Errorf("%w: constraint has unknown class %s", ErrMalformed, c.Class)
		}

		if c.CanUse {
			mask |= bits
		} else {
			mask &^= bits
		}
	}
	return mask, nil
}

// CanReady reports whether a character of class c can ready the weapon.
func (w *Weapon) CanReady(c ClassType) bool {
	return w.canUse.has(c)
}

func (w *Weapon) Has(flag uint16) bool {
	return w.Flags&flag != 0
}

func (w *Weapon) LoseWhenUsed() bool            { return w.Has(WeapLose) }
func (w *Weapon) LoseWhenRanged() bool          { return w.Has(WeapLoseWhenRanged) }
func (w *Weapon) CanChooseDistance() bool       { return w.Has(WeapChooseDistance) }
func (w *Weapon) AlwaysHits() bool              { return w.Has(WeapAlwaysHits) }
func (w *Weapon) IsMagic() bool                 { return w.Has(WeapMagic) }
func (w *Weapon) CanAttackThroughObjects() bool { return w.Has(WeapAttackThroughObjects) }
func (w *Weapon) RangeAbsolute() bool           { return w.Has(WeapAbsoluteRange) }
func (w *Weapon) Returns() bool                 { return w.Has(WeapReturns) }
func (w *Weapon) ShowTravel() bool              { return !w.Has(WeapDontShowTravel) }
