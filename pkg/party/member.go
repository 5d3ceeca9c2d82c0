package party

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/jwebster45206/britannia/pkg/gamedata"
	"github.com/jwebster45206/d20"
)

const (
	MaxLevel = 8
	MaxStat  = 50
)

type Status string

const (
	StatusGood     Status = "good"
	StatusPoisoned Status = "poisoned"
	StatusSleeping Status = "sleeping"
	StatusDead     Status = "dead"
)

type HealType int

const (
	HealCure HealType = iota
	HealFull
	HealResurrect
)

// Effect is a harmful tile or trap effect.
type Effect int

const (
	EffectNone Effect = iota
	EffectFire
	EffectSleep
	EffectPoison
	EffectElectricity
	EffectLava
)

// MemberSpec is the serializable form of a party member.
type MemberSpec struct {
	Name         string              `json:"name"`
	Class        gamedata.ClassType  `json:"class"`
	Status       Status              `json:"status"`
	HP           int                 `json:"hp"`
	MaxHP        int                 `json:"max_hp"`
	XP           int                 `json:"xp"`
	Strength     int                 `json:"strength"`
	Dexterity    int                 `json:"dexterity"`
	Intelligence int                 `json:"intelligence"`
	MP           int                 `json:"mp"`
	Weapon       gamedata.WeaponType `json:"weapon"`
	Armor        gamedata.ArmorType  `json:"armor"`
	AC           int                 `json:"ac,omitempty"`
}

// Member is the runtime form of a party member. HP and AC live on the d20
// actor; everything else is read from the spec.
type Member struct {
	Spec  *MemberSpec
	Actor *d20.Actor
}

// NewMemberFromSpec builds a member and its actor.
func NewMemberFromSpec(spec *MemberSpec) (*Member, error) {
	if spec == nil {
		return nil, fmt.Errorf("spec cannot be nil")
	}
	if spec.MaxHP <= 0 {
		return nil, fmt.Errorf("member %s: max_hp must be positive", spec.Name)
	}
	if spec.Status == "" {
		spec.Status = StatusGood
	}
	if spec.HP == 0 && spec.Status != StatusDead {
		spec.HP = spec.MaxHP
	}

	m := &Member{Spec: spec}
	if err := m.rebuild(spec.HP); err != nil {
		return nil, err
	}
	return m, nil
}

// rebuild constructs a fresh actor from the spec and sets its current HP.
func (m *Member) rebuild(hp int) error {
	actor, err := d20.NewActor(m.Spec.Name).
		WithHP(m.Spec.MaxHP).
		WithAC(m.Spec.AC).
		WithAttributes(map[string]int{
			"strength":     m.Spec.Strength,
			"dexterity":    m.Spec.Dexterity,
			"intelligence": m.Spec.Intelligence,
		}).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build actor for %s: %w", m.Spec.Name, err)
	}
	m.Actor = actor
	return m.setHP(hp)
}

func (m *Member) setHP(hp int) error {
	hp = max(0, min(hp, m.Spec.MaxHP))
	if hp != m.Actor.HP() {
		if err := m.Actor.SetHP(hp); err != nil {
			return fmt.Errorf("failed to set HP for %s: %w", m.Spec.Name, err)
		}
	}
	m.Spec.HP = hp
	return nil
}

func (m *Member) Name() string {
	return m.Spec.Name
}

func (m *Member) Status() Status {
	return m.Spec.Status
}

func (m *Member) SetStatus(s Status) {
	m.Spec.Status = s
}

func (m *Member) HP() int {
	return m.Actor.HP()
}

func (m *Member) MaxHP() int {
	return m.Actor.MaxHP()
}

func (m *Member) Dexterity() int {
	return m.Spec.Dexterity
}

// RealLevel is the level the member has actually been raised to.
func (m *Member) RealLevel() int {
	return m.Spec.MaxHP / 100
}

// MaxLevel is the level the member's experience has earned: 1 below 100 XP,
// then one more for each doubling, up to MaxLevel.
func (m *Member) MaxLevel() int {
	level := 1
	next := 100
	for m.Spec.XP >= next && level < MaxLevel {
		level++
		next <<= 1
	}
	return level
}

// AdvanceLevel raises the member to the level their experience has earned,
// restoring HP and improving each stat by 1 to 8. It reports whether the
// member advanced.
func (m *Member) AdvanceLevel(rng *rand.Rand) (bool, error) {
	if m.RealLevel() >= m.MaxLevel() {
		return false, nil
	}

	m.Spec.MaxHP = m.MaxLevel() * 100
	m.Spec.Strength = min(m.Spec.Strength+rng.IntN(8)+1, MaxStat)
	m.Spec.Dexterity = min(m.Spec.Dexterity+rng.IntN(8)+1, MaxStat)
	m.Spec.Intelligence = min(m.Spec.Intelligence+rng.IntN(8)+1, MaxStat)

	if err := m.rebuild(m.Spec.MaxHP); err != nil {
		return false, err
	}
	return true, nil
}

// Heal applies one kind of healing. It reports whether it had any effect.
func (m *Member) Heal(kind HealType) bool {
	switch kind {
	case HealCure:
		if m.Spec.Status != StatusPoisoned {
			return false
		}
		m.Spec.Status = StatusGood
		return true
	case HealFull:
		if m.Spec.Status == StatusDead || m.HP() == m.MaxHP() {
			return false
		}
		return m.setHP(m.Spec.MaxHP) == nil
	case HealResurrect:
		if m.Spec.Status != StatusDead {
			return false
		}
		m.Spec.Status = StatusGood
		return true
	}
	return false
}

// ApplyDamage removes hp, killing the member at zero.
func (m *Member) ApplyDamage(n int) error {
	if m.Spec.Status == StatusDead {
		return nil
	}
	if err := m.setHP(m.HP() - n); err != nil {
		return err
	}
	if m.Spec.HP == 0 {
		m.Spec.Status = StatusDead
	}
	return nil
}

// ApplyEffect subjects the member to a harmful effect.
func (m *Member) ApplyEffect(e Effect, rng *rand.Rand) error {
	if m.Spec.Status == StatusDead {
		return nil
	}
	switch e {
	case EffectFire, EffectLava:
		return m.ApplyDamage(16 + rng.IntN(32))
	case EffectElectricity:
		return m.ApplyDamage(8 + rng.IntN(16))
	case EffectSleep:
		m.Spec.Status = StatusSleeping
	case EffectPoison:
		if m.Spec.Status == StatusGood {
			m.Spec.Status = StatusPoisoned
		}
	}
	return nil
}

// Equip readies a weapon and puts on armor, if the member's class allows
// both. The armor's defense becomes the member's AC.
func (m *Member) Equip(w *gamedata.Weapon, a *gamedata.Armor) error {
	if w != nil && !w.CanReady(m.Spec.Class) {
		return fmt.Errorf("a %s cannot ready %s", m.Spec.Class, w.Name)
	}
	if a != nil && !a.CanWear(m.Spec.Class) {
		return fmt.Errorf("a %s cannot wear %s", m.Spec.Class, a.Name)
	}
	if w != nil {
		m.Spec.Weapon = w.Type
	}
	if a != nil {
		m.Spec.Armor = a.Type
		m.Spec.AC = a.Defense
		return m.rebuild(m.HP())
	}
	return nil
}

// MarshalJSON writes the spec with the actor's current HP.
func (m *Member) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	spec := *m.Spec
	if m.Actor != nil {
		spec.HP = m.Actor.HP()
	}
	return json.Marshal(spec)
}

// UnmarshalJSON reads a spec and rebuilds the actor.
func (m *Member) UnmarshalJSON(data []byte) error {
	var spec MemberSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return fmt.Errorf("failed to unmarshal member spec: %w", err)
	}
	built, err := NewMemberFromSpec(&spec)
	if err != nil {
		return err
	}
	*m = *built
	return nil
}
