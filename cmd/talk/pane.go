package main

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/jwebster45206/britannia/pkg/screen"
	"github.com/mattn/go-runewidth"
)

// cellSetter is the part of tcell.Screen a pane draws with.
type cellSetter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

var paneColors = map[screen.Color]tcell.Style{
	screen.Grey:   tcell.StyleDefault.Foreground(tcell.ColorGray),
	screen.Blue:   tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue),
	screen.Purple: tcell.StyleDefault.Foreground(tcell.ColorOrchid),
	screen.Green:  tcell.StyleDefault.Foreground(tcell.ColorLightGreen),
	screen.Red:    tcell.StyleDefault.Foreground(tcell.ColorRed),
	screen.Yellow: tcell.StyleDefault.Foreground(tcell.ColorYellow),
	screen.White:  tcell.StyleDefault,
}

type cell struct {
	r     rune
	style tcell.Style
}

// pane is a scrolling text area of fixed size. Text wraps at the right edge
// and the oldest line scrolls off the top.
type pane struct {
	mu     sync.Mutex
	x, y   int
	width  int
	height int
	lines  [][]cell
	style  tcell.Style
}

func newPane(x, y, width, height int) *pane {
	return &pane{
		x:      x,
		y:      y,
		width:  width,
		height: height,
		lines:  [][]cell{nil},
		style:  tcell.StyleDefault,
	}
}

func (p *pane) Message(format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, r := range msg {
		p.put(r)
	}
}

func (p *pane) Width() int          { return p.width }
func (p *pane) LinesAvailable() int { return p.height }

func (p *pane) put(r rune) {
	last := len(p.lines) - 1
	switch {
	case screen.IsColor(r):
		p.style = paneColors[screen.Color(r)]
		return
	case r == '\n':
		p.newLine()
		return
	case r == '\b':
		if n := len(p.lines[last]); n > 0 {
			p.lines[last] = p.lines[last][:n-1]
		}
		return
	}

	if lineWidth(p.lines[last])+runewidth.RuneWidth(r) > p.width {
		p.newLine()
		last = len(p.lines) - 1
	}
	p.lines[last] = append(p.lines[last], cell{r: r, style: p.style})
}

func (p *pane) newLine() {
	p.lines = append(p.lines, nil)
	if len(p.lines) > p.height {
		p.lines = p.lines[len(p.lines)-p.height:]
	}
}

func lineWidth(line []cell) int {
	w := 0
	for _, c := range line {
		w += runewidth.RuneWidth(c.r)
	}
	return w
}

// Draw paints the pane, blanking whatever is not covered by text.
func (p *pane) Draw(s cellSetter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for row := 0; row < p.height; row++ {
		col := 0
		if row < len(p.lines) {
			for _, c := range p.lines[row] {
				s.SetContent(p.x+col, p.y+row, c.r, nil, c.style)
				w := runewidth.RuneWidth(c.r)
				if w == 2 {
					s.SetContent(p.x+col+1, p.y+row, ' ', nil, c.style)
				}
				col += w
			}
		}
		for ; col < p.width; col++ {
			s.SetContent(p.x+col, p.y+row, ' ', nil, tcell.StyleDefault)
		}
	}
}

// Text is the visible content, one string per line.
func (p *pane) Text() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.lines))
	for i, line := range p.lines {
		rs := make([]rune, len(line))
		for j, c := range line {
			rs[j] = c.r
		}
		out[i] = string(rs)
	}
	return out
}

// drawText writes s at (x, y) and returns the column after it.
func drawText(s cellSetter, x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}
