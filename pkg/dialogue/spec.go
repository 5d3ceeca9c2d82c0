// Package dialogue is the scripted response generator for townspeople.
// Each person is described in a YAML file: who they are, what they answer
// to, and which answers change the course of the conversation.
package dialogue

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid marks a person file that fails validation.
var ErrInvalid = errors.New("invalid person")

// Roles give a person special handling.
const (
	RoleNone        = ""
	RoleLordBritish = "lordbritish"
	RoleHostile     = "hostile"
)

// Effects a topic or answer can have on the conversation.
const (
	EffectNone          = ""
	EffectFullHeal      = "fullheal"
	EffectAdvanceLevels = "advancelevels"
	EffectAttack        = "attack"
	EffectEnd           = "end"
)

// KeywordLen is how much of a keyword the player has to type.
const KeywordLen = 4

// Answer is what a person says to a yes or no.
type Answer struct {
	Text   string `yaml:"text"`
	Effect string `yaml:"effect,omitempty"`
}

// Topic is a keyword a person responds to.
type Topic struct {
	Text     string `yaml:"text"`
	Effect   string `yaml:"effect,omitempty"`
	Question string `yaml:"question,omitempty"`
	Yes      Answer `yaml:"yes,omitempty"`
	No       Answer `yaml:"no,omitempty"`
}

type PersonSpec struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Pronoun     string `yaml:"pronoun"`
	Description string `yaml:"description"`
	Job         string `yaml:"job"`
	Health      string `yaml:"health"`
	Role        string `yaml:"role,omitempty"`

	// TurnAway is the percent chance the person refuses to talk at all.
	TurnAway int              `yaml:"turn_away,omitempty"`
	Topics   map[string]Topic `yaml:"topics,omitempty"`
}

// LoadPersonSpec reads a person file. The file name, without extension,
// becomes the ID.
func LoadPersonSpec(path string) (*PersonSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read person file: %w", err)
	}
	spec, err := ParsePersonSpec(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	spec.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return spec, nil
}

func ParsePersonSpec(data []byte) (*PersonSpec, error) {
	var spec PersonSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks the spec and returns every problem found.
func (s *PersonSpec) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, fmt.Errorf("%w: name is required", ErrInvalid))
	}
	if strings.TrimSpace(s.Description) == "" {
		errs = append(errs, fmt.Errorf("%w: description is required", ErrInvalid))
	}
	switch s.Role {
	case RoleNone, RoleLordBritish, RoleHostile:
	default:
		errs = append(errs, fmt.Errorf("%w: unknown role %q", ErrInvalid, s.Role))
	}

	if s.TurnAway < 0 || s.TurnAway > 100 {
		errs = append(errs, fmt.Errorf("%w: turn_away must be between 0 and 100", ErrInvalid))
	}

	seen := make(map[string]string, len(s.Topics))
	for key, topic := range s.Topics {
		if other, dup := seen[truncate(key)]; dup {
			errs = append(errs, fmt.Errorf("%w: topics %q and %q share a keyword", ErrInvalid, other, key))
		}
		seen[truncate(key)] = key
		if key != strings.ToLower(key) || strings.ContainsAny(key, " \t") || key == "" {
			errs = append(errs, fmt.Errorf("%w: topic %q must be a single lowercase word", ErrInvalid, key))
		}
		for _, effect := range []string{topic.Effect, topic.Yes.Effect, topic.No.Effect} {
			if !validEffect(effect) {
				errs = append(errs, fmt.Errorf("%w: topic %q has unknown effect %q", ErrInvalid, key, effect))
			}
		}
		if topic.Question == "" && (topic.Yes.Text != "" || topic.No.Text != "") {
			errs = append(errs, fmt.Errorf("%w: topic %q has answers but no question", ErrInvalid, key))
		}
	}
	return errors.Join(errs...)
}

func validEffect(e string) bool {
	switch e {
	case EffectNone, EffectFullHeal, EffectAdvanceLevels, EffectAttack, EffectEnd:
		return true
	}
	return false
}
