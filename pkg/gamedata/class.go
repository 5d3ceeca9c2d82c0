// Package gamedata holds the static game tables: weapons, armor and
// creatures, loaded once from YAML configuration.
package gamedata

import (
	"errors"

	"golang.org/x/text/cases"
)

// ErrMalformed marks a configuration file that cannot be loaded. It is not
// recoverable; callers report it and stop loading.
var ErrMalformed = errors.New("malformed game data")

type ClassType int

const (
	ClassMage ClassType = iota
	ClassBard
	ClassFighter
	ClassDruid
	ClassTinker
	ClassPaladin
	ClassRanger
	ClassShepherd

	NumClasses = 8
)

var classNames = [NumClasses]string{
	"Mage", "Bard", "Fighter", "Druid", "Tinker", "Paladin", "Ranger", "Shepherd",
}

// ClassName returns the display name of a class.
func ClassName(c ClassType) string {
	if c < 0 || c >= NumClasses {
		return "???"
	}
	return classNames[c]
}

func (c ClassType) String() string {
	return ClassName(c)
}

// ParseClass looks a class up by name, ignoring case.
func ParseClass(name string) (ClassType, bool) {
	for i, n := range classNames {
		if sameName(n, name) {
			return ClassType(i), true
		}
	}
	return 0, false
}

// classMask is a bitmask over ClassType, one bit per class.
type classMask uint8

const allClasses classMask = 0xFF

func (m classMask) has(c ClassType) bool {
	return c >= 0 && c < NumClasses && m&(1<<c) != 0
}

// sameName compares names case-insensitively. Casers are stateful, so each
// comparison gets its own.
func sameName(a, b string) bool {
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}
