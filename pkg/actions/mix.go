package actions

import (
	"context"
	"fmt"
	"unicode"

	"github.com/jwebster45206/britannia/pkg/party"
	"github.com/jwebster45206/britannia/pkg/screen"
	"github.com/jwebster45206/britannia/pkg/spells"
)

// reagentKeys are the keys accepted while picking reagents: a letter per
// reagent, then enter or space to mix and escape to give up.
const reagentKeys = "abcdefgh\n\r \033"

// MixReagents lets the player pick reagents one key at a time and mixes them
// into spell. It reports whether the mixing was attempted; escape puts the
// reagents back and reports false.
func (a *Actions) MixReagents(ctx context.Context, spell spells.Spell) (bool, error) {
	ingredients, err := a.PickReagents(ctx)
	if err != nil || ingredients == nil {
		return false, err
	}

	a.Display.Message("\n\nYou mix the Reagents, and...\n")
	if ingredients.Mix(spell) {
		a.Display.Message("Success!\n\n")
	} else {
		a.Display.Message("It Fizzles!\n\n")
	}
	return true, nil
}

// PickReagents fills a bowl from the party's reagents until enter or space.
// Escape puts everything back and returns a nil bowl.
func (a *Actions) PickReagents(ctx context.Context) (*spells.Ingredients, error) {
	ingredients := spells.NewIngredients(a.Party)
	a.Display.Message("Reagent: ")
	for {
		choice, err := a.Input.ReadChoice(ctx, reagentKeys)
		if err != nil {
			ingredients.Revert()
			return nil, fmt.Errorf("failed to read reagent: %w", err)
		}

		switch choice {
		case ' ', '\n', '\r':
			return ingredients, nil
		case '\033':
			ingredients.Revert()
			a.Display.Message("\n")
			return nil, nil
		}

		a.Display.Message("%c\n", unicode.ToUpper(choice))
		if !ingredients.AddReagent(spells.Reagent(choice - 'a')) {
			a.Display.Message("%sNone Left!%s\n", screen.Grey, screen.White)
		}
		a.Display.Message("Reagent: ")
	}
}

// MixHowMany mixes num batches of the reagents already in ingredients.
func (a *Actions) MixHowMany(ingredients *spells.Ingredients, spell spells.Spell, num int) bool {
	if num <= 0 {
		a.Display.Message("\nNone mixed!\n")
		ingredients.Revert()
		return false
	}

	if need := party.MaxMixtures - a.Party.Mixtures[spell]; num > need {
		num = need
		a.Display.Message("\n%sOnly need %d!%s\n", screen.Grey, num, screen.White)
		if num == 0 {
			ingredients.Revert()
			return false
		}
	}

	a.Display.Message("\nMixing %d...\n", num)
	if !ingredients.CheckMultiple(num) {
		a.Display.Message("\n%sYou don't have enough reagents to mix %d spells!%s\n\n", screen.Grey, num, screen.White)
		ingredients.Revert()
		return false
	}

	ingredients.Multiply(num)
	a.Display.Message("\nYou mix the Reagents, and...\n")
	if !ingredients.Mix(spell) {
		ingredients.Revert()
		a.Display.Message("It Fizzles!\n\n")
		return true
	}
	for range num - 1 {
		ingredients.Mix(spell)
	}
	a.Logger.Debug("Spells mixed", "spell", spell.Name(), "count", num)
	a.Display.Message("Success!\n\n")
	return true
}
