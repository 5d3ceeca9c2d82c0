package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/britannia/pkg/dialogue"
	"github.com/jwebster45206/britannia/pkg/gamedata"
)

func main() {
	dir := "./data"
	if len(os.Args) > 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [data-dir]\n", os.Args[0])
		os.Exit(1)
	}
	if len(os.Args) == 2 {
		dir = os.Args[1]
	}

	validator := &DataValidator{out: os.Stdout}
	if err := validator.validateDir(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Game data is valid!")
}

// DataValidator checks every file under a data directory and collects all
// the problems it finds rather than stopping at the first.
type DataValidator struct {
	out    io.Writer
	errors []string
}

func (v *DataValidator) validateDir(dir string) error {
	v.errors = nil

	var weapons []*gamedata.Weapon
	v.validateFile(filepath.Join(dir, gamedata.WeaponsFile), func(data []byte) error {
		var err error
		weapons, err = gamedata.ParseWeapons(data)
		return err
	})
	var armors []*gamedata.Armor
	v.validateFile(filepath.Join(dir, gamedata.ArmorsFile), func(data []byte) error {
		var err error
		armors, err = gamedata.ParseArmors(data)
		return err
	})
	var creatures []*gamedata.Creature
	v.validateFile(filepath.Join(dir, gamedata.CreaturesFile), func(data []byte) error {
		var err error
		creatures, err = gamedata.ParseCreatures(data)
		return err
	})

	for _, w := range weapons {
		v.checkName("weapon", w.Name)
	}
	for _, a := range armors {
		v.checkName("armor", a.Name)
	}
	for _, c := range creatures {
		v.checkName("creature", c.Name)
	}
	v.validatePeople(filepath.Join(dir, "people"))

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", dir, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *DataValidator) validateFile(path string, parse func([]byte) error) {
	fmt.Fprintf(v.out, "Validating %s...\n", path)
	data, err := os.ReadFile(path)
	if err != nil {
		v.addError(fmt.Sprintf("failed to read %s: %v", path, err))
		return
	}
	if err := parse(data); err != nil {
		v.addError(fmt.Sprintf("%s: %v", filepath.Base(path), err))
	}
}

func (v *DataValidator) checkName(kind, name string) {
	if strings.TrimSpace(name) == "" {
		v.addError(fmt.Sprintf("%s with an empty name", kind))
	}
}

func (v *DataValidator) validatePeople(dir string) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		v.addError(fmt.Sprintf("failed to read %s: %v", dir, err))
		return
	}

	names := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".yaml")
		if !isValidID(id) {
			v.addError(fmt.Sprintf("person file '%s' should be lowercase snake_case", e.Name()))
		}

		path := filepath.Join(dir, e.Name())
		fmt.Fprintf(v.out, "Validating %s...\n", path)
		spec, err := dialogue.LoadPersonSpec(path)
		if err != nil {
			v.addError(fmt.Sprintf("%s: %v", e.Name(), err))
			continue
		}
		if other, ok := names[strings.ToLower(spec.Name)]; ok {
			v.addError(fmt.Sprintf("%s and %s are both named '%s'", other, e.Name(), spec.Name))
		}
		names[strings.ToLower(spec.Name)] = e.Name()
	}
}

func (v *DataValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}
