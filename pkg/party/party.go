// Package party holds the adventuring party: its members and the shared
// stores of keys, reagents and mixed spells.
package party

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
)

const (
	NumReagents = 8
	NumSpells   = 26
	MaxMixtures = 99
	MaxKarma    = 99
)

type Virtue int

const (
	Honesty Virtue = iota
	Compassion
	Valor
	Justice
	Sacrifice
	Honor
	Spirituality
	Humility

	NumVirtues = 8
)

type KarmaAction int

const (
	KarmaAttackedGood KarmaAction = iota
	KarmaFleeing
	KarmaGaveToBeggar
	KarmaBraggedOnly
)

// Spec is the serializable form of a party, as saved and loaded.
type Spec struct {
	Members  []*Member        `json:"members"`
	Karma    [NumVirtues]int  `json:"karma"`
	Keys     int              `json:"keys"`
	Reagents [NumReagents]int `json:"reagents"`
	Mixtures [NumSpells]int   `json:"mixtures"`
}

// Party implements conversation.Party.
type Party struct {
	Members  []*Member
	Karma    [NumVirtues]int
	Keys     int
	Reagents [NumReagents]int
	Mixtures [NumSpells]int

	// OnAdvance, if set, is called for each member that gains a level.
	OnAdvance func(m *Member)

	rng    *rand.Rand
	logger *slog.Logger
}

func New(rng *rand.Rand, logger *slog.Logger, members ...*Member) *Party {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Party{
		Members: members,
		rng:     rng,
		logger:  logger,
	}
	for i := range p.Karma {
		p.Karma[i] = 50
	}
	return p
}

// FromSpec rebuilds a party from saved state.
func FromSpec(spec *Spec, rng *rand.Rand, logger *slog.Logger) *Party {
	p := New(rng, logger, spec.Members...)
	p.Karma = spec.Karma
	p.Keys = spec.Keys
	p.Reagents = spec.Reagents
	p.Mixtures = spec.Mixtures
	return p
}

// Spec returns the party's current state for saving.
func (p *Party) Spec() *Spec {
	return &Spec{
		Members:  p.Members,
		Karma:    p.Karma,
		Keys:     p.Keys,
		Reagents: p.Reagents,
		Mixtures: p.Mixtures,
	}
}

func (p *Party) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Spec())
}

func (p *Party) Size() int {
	return len(p.Members)
}

// Member returns the i'th member, or nil if there is none.
func (p *Party) Member(i int) *Member {
	if i < 0 || i >= len(p.Members) {
		return nil
	}
	return p.Members[i]
}

// Rand is the party's random source, shared with the actions that affect it.
func (p *Party) Rand() *rand.Rand {
	return p.rng
}

// HealAll cures and then fully heals every member.
func (p *Party) HealAll() {
	for _, m := range p.Members {
		m.Heal(HealCure)
		m.Heal(HealFull)
	}
	p.logger.Debug("Party healed", "members", len(p.Members))
}

// CheckLevels advances every member whose experience has earned it. It
// reports whether anyone advanced.
func (p *Party) CheckLevels() bool {
	advanced := false
	for _, m := range p.Members {
		ok, err := m.AdvanceLevel(p.rng)
		if err != nil {
			p.logger.Error("Failed to advance level", "member", m.Name(), "error", err)
			continue
		}
		if !ok {
			continue
		}
		advanced = true
		p.logger.Info("Member advanced", "member", m.Name(), "level", m.RealLevel())
		if p.OnAdvance != nil {
			p.OnAdvance(m)
		}
	}
	return advanced
}

// ApplyEffect subjects every member to e.
func (p *Party) ApplyEffect(e Effect) error {
	for _, m := range p.Members {
		if err := m.ApplyEffect(e, p.rng); err != nil {
			return fmt.Errorf("failed to apply effect to %s: %w", m.Name(), err)
		}
	}
	return nil
}

// AdjustKarma applies the virtue changes for an action.
func (p *Party) AdjustKarma(action KarmaAction) {
	switch action {
	case KarmaAttackedGood:
		p.adjustVirtue(Compassion, -5)
		p.adjustVirtue(Justice, -5)
		p.adjustVirtue(Honor, -5)
	case KarmaFleeing:
		p.adjustVirtue(Valor, -2)
	case KarmaGaveToBeggar:
		p.adjustVirtue(Compassion, 2)
		p.adjustVirtue(Honor, 3)
	case KarmaBraggedOnly:
		p.adjustVirtue(Humility, -5)
	}
}

func (p *Party) adjustVirtue(v Virtue, delta int) {
	p.Karma[v] = max(0, min(p.Karma[v]+delta, MaxKarma))
}
