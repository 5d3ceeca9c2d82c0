// Package input collects player keystrokes into the small set of answers the
// game ever asks for: one choice key, a short string, a menu letter, or a
// number. Collection is synchronous; each call blocks until the key source
// delivers enough keys.
package input

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// ErrNoMoreKeys is returned by a key source that has run dry.
var ErrNoMoreKeys = errors.New("no more keys")

type Code int

const (
	CodeRune Code = iota
	CodeEnter
	CodeEscape
	CodeBackspace
	CodeSpace
)

// Key is a single keypress. Rune is set for every code so that choice sets
// can name control keys directly ("\n\r \033").
type Key struct {
	Code Code
	Rune rune
}

var (
	Enter     = Key{Code: CodeEnter, Rune: '\n'}
	Escape    = Key{Code: CodeEscape, Rune: '\033'}
	Backspace = Key{Code: CodeBackspace, Rune: '\b'}
	Space     = Key{Code: CodeSpace, Rune: ' '}
)

// KeyFromRune classifies a raw rune.
func KeyFromRune(r rune) Key {
	switch r {
	case '\n':
		return Enter
	case '\r':
		return Key{Code: CodeEnter, Rune: '\r'}
	case '\033':
		return Escape
	case '\b', 0x7f:
		return Backspace
	case ' ':
		return Space
	}
	return Key{Code: CodeRune, Rune: r}
}

// KeySource delivers keys one at a time, blocking until one is available.
type KeySource interface {
	NextKey(ctx context.Context) (Key, error)
}

// Echoer receives what the collector writes back to the player while typing.
type Echoer interface {
	Message(format string, args ...any)
}

// Collector turns raw keys into answers.
type Collector struct {
	Keys KeySource
	Echo Echoer
}

func NewCollector(keys KeySource, echo Echoer) *Collector {
	return &Collector{Keys: keys, Echo: echo}
}

func (c *Collector) echo(s string) {
	if c.Echo != nil && s != "" {
		c.Echo.Message("%s", s)
	}
}

// ReadChoice blocks until a key from allowed is pressed and returns it,
// lowercased. An empty allowed set accepts any key.
func (c *Collector) ReadChoice(ctx context.Context, allowed string) (rune, error) {
	for {
		key, err := c.Keys.NextKey(ctx)
		if err != nil {
			return 0, err
		}
		r := unicode.ToLower(key.Rune)
		if allowed == "" || strings.ContainsRune(allowed, r) {
			return r, nil
		}
	}
}

// ReadString collects printable characters until Enter, echoing each one.
// Input past maxLen is ignored. Escape abandons the string.
func (c *Collector) ReadString(ctx context.Context, maxLen int) (string, error) {
	return c.readString(ctx, maxLen, func(r rune) bool {
		return unicode.IsPrint(r)
	})
}

// ReadInt reads up to maxLen digits. An empty answer is zero.
func (c *Collector) ReadInt(ctx context.Context, maxLen int) (int, error) {
	s, err := c.readString(ctx, maxLen, unicode.IsDigit)
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func (c *Collector) readString(ctx context.Context, maxLen int, accept func(rune) bool) (string, error) {
	var buf []rune
	for {
		key, err := c.Keys.NextKey(ctx)
		if err != nil {
			return "", err
		}

		switch key.Code {
		case CodeEnter:
			c.echo("\n")
			return string(buf), nil
		case CodeEscape:
			c.echo("\n")
			return "", nil
		case CodeBackspace:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
				c.echo("\b")
			}
			continue
		}

		if len(buf) >= maxLen || !accept(key.Rune) {
			continue
		}
		buf = append(buf, key.Rune)
		c.echo(string(key.Rune))
	}
}

// ReadAlpha offers the letters 'a' through lastValid. It returns the
// zero-based index of the chosen letter, or -1 if the player backs out with
// space, escape or enter. Any other key repeats the prompt.
func (c *Collector) ReadAlpha(ctx context.Context, lastValid rune, prompt string) (int, error) {
	last := unicode.ToUpper(lastValid)
	for {
		key, err := c.Keys.NextKey(ctx)
		if err != nil {
			return 0, err
		}

		switch key.Code {
		case CodeSpace, CodeEscape, CodeEnter:
			c.echo("\n")
			return -1, nil
		}

		r := unicode.ToUpper(key.Rune)
		if r >= 'A' && r <= last {
			return int(r - 'A'), nil
		}
		c.echo("\n" + prompt)
	}
}
