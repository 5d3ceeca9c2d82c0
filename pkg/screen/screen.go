// Package screen models the game's text surface: the fixed-size message
// area beside the map view, and the line arithmetic dialogue paging relies on.
package screen

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

const (
	ScreenWidth  = 320
	ScreenHeight = 200

	// The message area, in character cells.
	TextAreaW = 16
	TextAreaH = 12
	TextAreaX = 24
	TextAreaY = 12
)

type LayoutType int

const (
	LayoutStandard LayoutType = iota
	LayoutGem
	LayoutDungeonGem
)

type MouseCursor int

const (
	MouseCursorNone MouseCursor = iota
	MouseCursorNorth
	MouseCursorEast
	MouseCursorSouth
	MouseCursorWest
	MouseCursorSelect
)

// Color codes are embedded in message text as control runes and switch the
// foreground color of everything after them.
type Color rune

const (
	Grey   Color = '\023'
	Blue   Color = '\024'
	Purple Color = '\025'
	Green  Color = '\026'
	Red    Color = '\027'
	Yellow Color = '\030'
	White  Color = '\031'
)

func (c Color) String() string {
	return string(rune(c))
}

// IsColor reports whether r is one of the embedded color codes.
func IsColor(r rune) bool {
	return r >= rune(Grey) && r <= rune(White)
}

// StripColors removes embedded color codes.
func StripColors(s string) string {
	return strings.Map(func(r rune) rune {
		if IsColor(r) {
			return -1
		}
		return r
	}, s)
}

// Wrap word-wraps s at width and hard-breaks words that are still too long.
// Color codes take no width and are kept in place.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	plain := StripColors(s)
	wrapped := wrap.String(wordwrap.String(plain, width), width)
	if len(plain) == len(s) {
		return wrapped
	}
	return restoreColors(s, wrapped)
}

// restoreColors re-inserts the color codes of orig into its wrapped plain
// form. Line breaks the wrapper added are kept; whitespace it dropped at a
// break stays dropped.
func restoreColors(orig, wrapped string) string {
	src := []rune(orig)
	dst := []rune(wrapped)
	var b strings.Builder
	i, j := 0, 0
	for i < len(src) {
		r := src[i]
		switch {
		case IsColor(r):
			b.WriteRune(r)
			i++
		case j < len(dst) && dst[j] == r:
			b.WriteRune(r)
			i++
			j++
		case j < len(dst) && dst[j] == '\n':
			b.WriteRune('\n')
			j++
		default:
			i++
		}
	}
	b.WriteString(string(dst[min(j, len(dst)):]))
	return b.String()
}

// LineCount returns how many lines s occupies in a text area width cells wide.
// A trailing newline ends the last line rather than starting a new one.
func LineCount(s string, width int) int {
	if s == "" {
		return 0
	}
	lines := strings.Split(Wrap(s, width), "\n")
	n := len(lines)
	if lines[n-1] == "" {
		n--
	}
	return n
}

// Paginate splits text into chunks of at most height wrapped lines each.
// Every chunk but the last ends in a newline; the last keeps whatever
// trailing newline the input had.
func Paginate(text string, width, height int) []string {
	if text == "" {
		return nil
	}
	if height <= 0 {
		return []string{text}
	}

	lines := strings.Split(Wrap(text, width), "\n")
	trailing := lines[len(lines)-1] == ""
	if trailing {
		lines = lines[:len(lines)-1]
	}

	var pages []string
	for i := 0; i < len(lines); i += height {
		j := min(i+height, len(lines))
		page := strings.Join(lines[i:j], "\n")
		if j < len(lines) || trailing {
			page += "\n"
		}
		pages = append(pages, page)
	}
	return pages
}
