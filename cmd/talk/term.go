package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/jwebster45206/britannia/internal/session"
	"github.com/jwebster45206/britannia/pkg/input"
	"github.com/jwebster45206/britannia/pkg/spells"
)

// terminal ties a tcell screen to the message pane and the party sidebar.
type terminal struct {
	screen tcell.Screen
	pane   *pane
	sess   *session.Session
}

// Message writes to the pane and shows the result at once, so text appears
// while the game is still waiting on the next key.
func (t *terminal) Message(format string, args ...any) {
	t.pane.Message(format, args...)
	t.pane.Draw(t.screen)
	t.screen.Show()
}

func (t *terminal) Width() int          { return t.pane.Width() }
func (t *terminal) LinesAvailable() int { return t.pane.LinesAvailable() }

// NextKey blocks for the next key event. Ctrl+C ends input.
func (t *terminal) NextKey(ctx context.Context) (input.Key, error) {
	for {
		if err := ctx.Err(); err != nil {
			return input.Key{}, err
		}
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return input.Key{}, input.ErrNoMoreKeys
		case *tcell.EventResize:
			t.screen.Sync()
			t.redraw()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				return input.Key{}, input.ErrNoMoreKeys
			}
			if k, ok := keyFromEvent(ev); ok {
				return k, nil
			}
		}
	}
}

// keyFromEvent translates a tcell key event. It reports false for keys the
// game has no use for.
func keyFromEvent(ev *tcell.EventKey) (input.Key, bool) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return input.Enter, true
	case tcell.KeyEscape:
		return input.Escape, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.Backspace, true
	case tcell.KeyRune:
		return input.KeyFromRune(ev.Rune()), true
	}
	return input.Key{}, false
}

func (t *terminal) redraw() {
	t.screen.Clear()
	drawSidebar(t.screen, t.pane.x+t.pane.width+3, t.pane.y, t.sess)
	t.pane.Draw(t.screen)
	t.screen.Show()
}

var (
	headingStyle = tcell.StyleDefault.Foreground(tcell.ColorHotPink).Bold(true)
	dimStyle     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// drawSidebar shows the party and townsfolk starting at (x, y).
func drawSidebar(s cellSetter, x, y int, sess *session.Session) {
	drawText(s, x, y, "PARTY", headingStyle)
	y += 2
	for _, m := range sess.Party.Members {
		drawText(s, x, y, m.Name(), tcell.StyleDefault)
		y++
		line := fmt.Sprintf("  %s L%d %d/%d %s", m.Spec.Class, m.RealLevel(), m.HP(), m.MaxHP(), m.Status())
		drawText(s, x, y, line, dimStyle)
		y++
	}
	y++
	drawText(s, x, y, fmt.Sprintf("Keys: %d", sess.Party.Keys), tcell.StyleDefault)
	y += 2
	for i, n := range sess.Party.Reagents {
		drawText(s, x, y, fmt.Sprintf("%c %-13s %2d", 'A'+i, spells.Reagent(i), n), tcell.StyleDefault)
		y++
	}

	y++
	drawText(s, x, y, "TOWNSFOLK", headingStyle)
	y += 2
	for _, p := range sess.People {
		style := tcell.StyleDefault
		if p.IsHostile() {
			style = style.Foreground(tcell.ColorRed)
		}
		drawText(s, x, y, p.Name, style)
		y++
	}

	y++
	drawText(s, x, y, "t)alk a)ttack m)ix h)ow many q)uit", dimStyle)
	drawText(s, x, y+1, "s)ummon d)estroy o)pen j)immy c)hest", dimStyle)
}
