package main

import (
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/britannia/pkg/input"
	"github.com/jwebster45206/britannia/pkg/screen"
	"github.com/muesli/reflow/wordwrap"
)

// displayMsg carries text written by the game to the UI.
type displayMsg struct {
	text string
}

// teaDisplay is the message area as the game sees it. Writes are forwarded
// to the running program, so Message must never be called from inside
// Update.
type teaDisplay struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (d *teaDisplay) attach(send func(tea.Msg)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.send = send
}

func (d *teaDisplay) Message(format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	d.mu.Lock()
	send := d.send
	d.mu.Unlock()
	if send != nil {
		send(displayMsg{text: msg})
	}
}

func (d *teaDisplay) Width() int          { return screen.TextAreaW }
func (d *teaDisplay) LinesAvailable() int { return screen.TextAreaH }

var colorStyles = map[screen.Color]lipgloss.Style{
	screen.Grey:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	screen.Blue:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	screen.Purple: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
	screen.Green:  lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
	screen.Red:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	screen.Yellow: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	screen.White:  lipgloss.NewStyle(),
}

// transcript accumulates everything shown during the session, color codes
// included.
type transcript struct {
	text []rune
}

// Write appends s. A backspace removes the last character on the current
// line.
func (t *transcript) Write(s string) {
	for _, r := range s {
		if r != '\b' {
			t.text = append(t.text, r)
			continue
		}
		for i := len(t.text) - 1; i >= 0 && t.text[i] != '\n'; i-- {
			if !screen.IsColor(t.text[i]) {
				t.text = append(t.text[:i], t.text[i+1:]...)
				break
			}
		}
	}
}

// Plain is the transcript without color codes.
func (t *transcript) Plain() string {
	return screen.StripColors(string(t.text))
}

// Render styles each colored run and wraps the result to width.
func (t *transcript) Render(width int) string {
	var out strings.Builder
	var run strings.Builder
	style := colorStyles[screen.White]

	flush := func() {
		if run.Len() == 0 {
			return
		}
		// Render pads multi-line text to its widest line
		lines := strings.Split(run.String(), "\n")
		for i, line := range lines {
			if i > 0 {
				out.WriteByte('\n')
			}
			if line != "" {
				out.WriteString(style.Render(line))
			}
		}
		run.Reset()
	}

	for _, r := range t.text {
		if screen.IsColor(r) {
			flush()
			style = colorStyles[screen.Color(r)]
			continue
		}
		run.WriteRune(r)
	}
	flush()

	if width <= 0 {
		return out.String()
	}
	return wordwrap.String(out.String(), width)
}

// keyFromMsg translates a terminal key into a game key. It reports false for
// keys the game has no use for.
func keyFromMsg(msg tea.KeyMsg) (input.Key, bool) {
	switch msg.Type {
	case tea.KeyEnter:
		return input.Enter, true
	case tea.KeyEsc:
		return input.Escape, true
	case tea.KeyBackspace:
		return input.Backspace, true
	case tea.KeySpace:
		return input.Space, true
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return input.KeyFromRune(msg.Runes[0]), true
		}
	}
	return input.Key{}, false
}
