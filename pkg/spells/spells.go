// Package spells covers mixing reagents into spell mixtures.
package spells

import (
	"fmt"

	"github.com/jwebster45206/britannia/pkg/party"
)

type Reagent int

const (
	Ash Reagent = iota
	Ginseng
	Garlic
	Silk
	Moss
	Pearl
	Nightshade
	Mandrake
)

var reagentNames = [party.NumReagents]string{
	"Sulfurous Ash", "Ginseng", "Garlic", "Spider Silk",
	"Blood Moss", "Black Pearl", "Nightshade", "Mandrake Root",
}

func (r Reagent) String() string {
	if r < 0 || int(r) >= party.NumReagents {
		return fmt.Sprintf("reagent(%d)", int(r))
	}
	return reagentNames[r]
}

// Spell is the index of a spell, 0 for 'a' through 25 for 'z'.
type Spell int

type recipe struct {
	name       string
	components []Reagent
}

var recipes = [party.NumSpells]recipe{
	{"Awaken", []Reagent{Ginseng, Garlic}},
	{"Blink", []Reagent{Silk, Moss}},
	{"Cure", []Reagent{Ginseng, Garlic}},
	{"Dispel", []Reagent{Ash, Garlic, Pearl}},
	{"Energy Field", []Reagent{Ash, Silk, Pearl}},
	{"Fireball", []Reagent{Ash, Pearl}},
	{"Gate Travel", []Reagent{Ash, Pearl, Mandrake}},
	{"Heal", []Reagent{Ginseng, Silk}},
	{"Iceball", []Reagent{Pearl, Mandrake}},
	{"Jinx", []Reagent{Pearl, Nightshade, Mandrake}},
	{"Kill", []Reagent{Pearl, Nightshade}},
	{"Light", []Reagent{Ash}},
	{"Magic Missile", []Reagent{Ash, Pearl}},
	{"Negate", []Reagent{Ash, Garlic, Mandrake}},
	{"Open", []Reagent{Ash, Moss}},
	{"Protection", []Reagent{Ash, Ginseng, Garlic}},
	{"Quickness", []Reagent{Ash, Ginseng, Moss}},
	{"Resurrect", []Reagent{Ash, Ginseng, Garlic, Silk, Moss, Mandrake}},
	{"Sleep", []Reagent{Silk, Ginseng}},
	{"Tremor", []Reagent{Ash, Moss, Mandrake}},
	{"Undead", []Reagent{Ash, Garlic}},
	{"View", []Reagent{Nightshade, Mandrake}},
	{"Winds", []Reagent{Ash, Moss}},
	{"X-it", []Reagent{Ash, Silk, Moss}},
	{"Y-up", []Reagent{Silk, Moss}},
	{"Z-down", []Reagent{Silk, Moss}},
}

// SpellFromLetter maps 'a'..'z' to a spell.
func SpellFromLetter(r rune) (Spell, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	if r < 'a' || r > 'z' {
		return 0, false
	}
	return Spell(r - 'a'), true
}

func (s Spell) Valid() bool {
	return s >= 0 && int(s) < party.NumSpells
}

func (s Spell) Name() string {
	if !s.Valid() {
		return "???"
	}
	return recipes[s].name
}

// Components lists the reagents the spell needs.
func (s Spell) Components() []Reagent {
	if !s.Valid() {
		return nil
	}
	return append([]Reagent(nil), recipes[s].components...)
}

// Ingredients is a mixing bowl. Reagents added to it are taken from the
// party's stock immediately and returned by Revert.
type Ingredients struct {
	party    *party.Party
	reagents [party.NumReagents]int
}

func NewIngredients(p *party.Party) *Ingredients {
	return &Ingredients{party: p}
}

// AddReagent moves one unit of r from the party into the bowl. It reports
// false if the party has none left.
func (in *Ingredients) AddReagent(r Reagent) bool {
	if r < 0 || int(r) >= party.NumReagents {
		return false
	}
	if in.party.Reagents[r] < 1 {
		return false
	}
	in.party.Reagents[r]--
	in.reagents[r]++
	return true
}

// Count is how many units of r are in the bowl.
func (in *Ingredients) Count(r Reagent) int {
	return in.reagents[r]
}

// Revert puts everything in the bowl back in the party's stock.
func (in *Ingredients) Revert() {
	for i, n := range in.reagents {
		in.party.Reagents[i] += n
		in.reagents[i] = 0
	}
}

// CheckMultiple reports whether the party holds enough reagents to repeat
// the bowl's contents batches times in all, counting the batch already in it.
func (in *Ingredients) CheckMultiple(batches int) bool {
	for i, n := range in.reagents {
		if n > 0 && in.party.Reagents[i] < n*(batches-1) {
			return false
		}
	}
	return true
}

// Multiply takes enough reagents from the party to make batches mixtures.
func (in *Ingredients) Multiply(batches int) {
	for i, n := range in.reagents {
		if n == 0 {
			continue
		}
		in.party.Reagents[i] -= n * (batches - 1)
		in.reagents[i] = n * batches
	}
}

// matches reports whether the bowl holds exactly the spell's components,
// ignoring quantities.
func (in *Ingredients) matches(s Spell) bool {
	var want [party.NumReagents]bool
	for _, r := range recipes[s].components {
		want[r] = true
	}
	for i, n := range in.reagents {
		if (n > 0) != want[i] {
			return false
		}
	}
	return true
}

// Mix consumes one batch of the bowl's contents. If they are the spell's
// recipe, the party gains a mixture of it.
func (in *Ingredients) Mix(s Spell) bool {
	if !s.Valid() || in.party.Mixtures[s] >= party.MaxMixtures {
		return false
	}

	ok := in.matches(s)
	for i, n := range in.reagents {
		if n > 0 {
			in.reagents[i]--
		}
	}
	if ok {
		in.party.Mixtures[s]++
	}
	return ok
}
