package screen

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
)

// Buffer is an in-memory text area. It keeps every message written to it and
// tracks the cursor column the way the real message area does.
type Buffer struct {
	mu       sync.Mutex
	width    int
	height   int
	messages []string
	text     strings.Builder
	column   int
}

// NewBuffer creates a buffer with the given viewport size in cells.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{width: width, height: height}
}

// NewTextArea creates a buffer sized like the standard message area.
func NewTextArea() *Buffer {
	return NewBuffer(TextAreaW, TextAreaH)
}

func (b *Buffer) Message(format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, msg)
	b.text.WriteString(msg)

	for _, r := range StripColors(msg) {
		if r == '\n' {
			b.column = 0
			continue
		}
		b.column += runewidth.RuneWidth(r)
		if b.width > 0 && b.column >= b.width {
			b.column = 0
		}
	}
}

func (b *Buffer) Width() int {
	return b.width
}

func (b *Buffer) LinesAvailable() int {
	return b.height
}

// Column is the cursor column after the last message.
func (b *Buffer) Column() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.column
}

// Messages returns each message in the order written.
func (b *Buffer) Messages() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.messages))
	copy(out, b.messages)
	return out
}

// String returns the full transcript with color codes removed.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return StripColors(b.text.String())
}

func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = nil
	b.text.Reset()
	b.column = 0
}
