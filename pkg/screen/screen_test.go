package screen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineCount(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  int
	}{
		{"empty", "", 16, 0},
		{"single short line", "Hail.", 16, 1},
		{"trailing newline", "Hail.\n", 16, 1},
		{"leading newline", "\nYour Interest:\n", 16, 2},
		{"explicit lines", "one\ntwo\nthree\n", 16, 3},
		{"word wrap", "aaaa bbbb cccc", 10, 2},
		{"colors ignored", Red.String() + "Acid" + White.String() + " Trap!\n", 16, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineCount(tt.text, tt.width); got != tt.want {
				t.Errorf("LineCount(%q, %d) = %d, want %d", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	text := "one\ntwo\nthree\nfour\nfive\n"

	pages := Paginate(text, 16, 2)
	assert.Equal(t, []string{"one\ntwo\n", "three\nfour\n", "five\n"}, pages)

	pages = Paginate("one\ntwo\nthree", 16, 2)
	assert.Equal(t, []string{"one\ntwo\n", "three"}, pages)

	assert.Nil(t, Paginate("", 16, 2))
	assert.Equal(t, []string{"anything"}, Paginate("anything", 16, 0))
}

func TestPaginate_KeepsColors(t *testing.T) {
	text := "a " + Red.String() + "Acid" + White.String() + " Trap!"
	assert.Equal(t, []string{text}, Paginate(text, 16, 2))

	text = Red.String() + "aaaa" + White.String() + " bbbb " + Green.String() + "cc"
	pages := Paginate(text, 6, 1)
	plain := Paginate(StripColors(text), 6, 1)
	assert.Len(t, pages, len(plain))
	for i := range pages {
		assert.Equal(t, plain[i], StripColors(pages[i]))
	}
	assert.True(t, strings.HasPrefix(pages[0], Red.String()+"aaaa"+White.String()))
	assert.Contains(t, pages[len(pages)-1], Green.String()+"cc")
}

func TestPaginate_PagesFitHeight(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog again and again until the sun sets over the hills of the land."
	for _, page := range Paginate(text, TextAreaW, 3) {
		assert.LessOrEqual(t, LineCount(page, TextAreaW), 3, "page %q too tall", page)
	}
}

func TestStripColors(t *testing.T) {
	s := Grey.String() + "No keys left!" + White.String()
	assert.Equal(t, "No keys left!", StripColors(s))
	assert.True(t, IsColor(rune(Purple)))
	assert.False(t, IsColor('a'))
}

func TestBuffer(t *testing.T) {
	b := NewTextArea()
	assert.Equal(t, TextAreaW, b.Width())
	assert.Equal(t, TextAreaH, b.LinesAvailable())

	b.Message("Hail.")
	assert.Equal(t, 5, b.Column())
	b.Message("\n%s says: %d\n", "Iolo", 3)
	assert.Equal(t, 0, b.Column())

	assert.Equal(t, []string{"Hail.", "\nIolo says: 3\n"}, b.Messages())
	assert.Equal(t, "Hail.\nIolo says: 3\n", b.String())

	b.Reset()
	assert.Empty(t, b.Messages())
	assert.Equal(t, "", b.String())
}

func TestBuffer_LiteralPercent(t *testing.T) {
	b := NewTextArea()
	b.Message("%s", "100% sure")
	assert.Equal(t, "100% sure", b.String())
}
