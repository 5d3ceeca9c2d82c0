package conversation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/jwebster45206/britannia/pkg/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type turn struct {
	reply []string
	next  State
}

// scriptedTalker answers each call with the next scripted turn.
type scriptedTalker struct {
	turns    []turn
	inputs   []string
	prompt   string
	attacked int
}

func (s *scriptedTalker) ConversationText(c *Conversation, input string) []string {
	s.inputs = append(s.inputs, input)
	if len(s.turns) == 0 {
		c.State = StateDone
		return nil
	}
	t := s.turns[0]
	s.turns = s.turns[1:]
	c.State = t.next
	return append([]string(nil), t.reply...)
}

func (s *scriptedTalker) Prompt(c *Conversation) string {
	return s.prompt
}

func (s *scriptedTalker) BeginAttack() {
	s.attacked++
}

type event struct {
	kind string
	text string
}

// recorder is both the display and the input, so the order of everything
// the walker does ends up in one log.
type recorder struct {
	conv    *Conversation
	events  []event
	strings []string
	choices []rune
	height  int

	violations int
}

func (r *recorder) Message(format string, args ...any) {
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	r.events = append(r.events, event{"show", text})
}

func (r *recorder) Width() int          { return screen.TextAreaW }
func (r *recorder) LinesAvailable() int { return r.height }

func (r *recorder) ReadChoice(ctx context.Context, allowed string) (rune, error) {
	if allowed == "" {
		r.events = append(r.events, event{"wait", ""})
		return ' ', nil
	}
	if r.conv != nil && len(r.conv.Reply) > 0 {
		r.violations++
	}
	if len(r.choices) == 0 {
		return 0, io.EOF
	}
	c := r.choices[0]
	r.choices = r.choices[1:]
	r.events = append(r.events, event{"choice", string(c)})
	return c, nil
}

func (r *recorder) ReadString(ctx context.Context, maxLen int) (string, error) {
	if r.conv != nil && len(r.conv.Reply) > 0 {
		r.violations++
	}
	if len(r.strings) == 0 {
		return "", io.EOF
	}
	s := r.strings[0]
	r.strings = r.strings[1:]
	r.events = append(r.events, event{"input", s})
	return s, nil
}

type countingParty struct {
	heals  int
	checks int
}

func (p *countingParty) HealAll()          { p.heals++ }
func (p *countingParty) CheckLevels() bool { p.checks++; return true }

type countingEffects struct{ heals int }

func (e *countingEffects) FullHeal() { e.heals++ }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWalker(rec *recorder, party Party) *Walker {
	return NewWalker(rec, rec, party, quietLogger())
}

func TestWalker_TwoChunksThenInput(t *testing.T) {
	talker := &scriptedTalker{turns: []turn{{reply: []string{"Bye."}, next: StateDone}}}
	rec := &recorder{height: screen.TextAreaH, strings: []string{"bye"}}
	conv := &Conversation{
		State:  StateTalk,
		Reply:  []string{"Hail.", "What dost thou want?"},
		Talker: talker,
	}
	rec.conv = conv

	require.NoError(t, newTestWalker(rec, nil).Run(context.Background(), conv, false))

	assert.Equal(t, []event{
		{"show", "Hail."},
		{"wait", ""},
		{"show", "What dost thou want?"},
		{"input", "bye"},
		{"show", "Bye."},
	}, rec.events)
	assert.Equal(t, StateDone, conv.State)
	assert.Zero(t, rec.violations)
}

func TestWalker_NeverCollectsInputWithPendingReply(t *testing.T) {
	talker := &scriptedTalker{turns: []turn{
		{reply: []string{"a", "b", "c"}, next: StateTalk},
		{reply: []string{"Wilt thou?"}, next: StateAsk},
		{reply: []string{"d", "e"}, next: StateTalk},
		{reply: []string{"Fare well."}, next: StateDone},
	}}
	rec := &recorder{
		height:  screen.TextAreaH,
		strings: []string{"job", "hmm", "bye"},
		choices: []rune{'y'},
	}
	conv := New(talker)
	conv.Reply = []string{"You meet a bard."}
	conv.State = StateTalk
	rec.conv = conv

	require.NoError(t, newTestWalker(rec, nil).Run(context.Background(), conv, true))
	assert.Zero(t, rec.violations)
	assert.Equal(t, []string{"job", "hmm", "y", "bye"}, talker.inputs)
}

func TestWalker_FullHealAppliesOnce(t *testing.T) {
	talker := &scriptedTalker{turns: []turn{
		{reply: []string{"I shall heal thee."}, next: StateFullHeal},
		{reply: []string{"Bye."}, next: StateDone},
	}}
	rec := &recorder{height: screen.TextAreaH, strings: []string{"heal", "bye"}}
	party := &countingParty{}
	effects := &countingEffects{}
	w := newTestWalker(rec, party)
	w.Effects = effects

	conv := &Conversation{State: StateTalk, Reply: []string{"Hail."}, Talker: talker}
	rec.conv = conv
	require.NoError(t, w.Run(context.Background(), conv, false))

	assert.Equal(t, 1, party.heals)
	assert.Equal(t, 1, effects.heals)
	assert.Zero(t, party.checks)
}

func TestWalker_AdvanceLevelsOnIntro(t *testing.T) {
	talker := &scriptedTalker{turns: []turn{
		{reply: []string{"Welcome, my child."}, next: StateAdvanceLevels},
		{reply: []string{"Bye."}, next: StateDone},
	}}
	rec := &recorder{height: screen.TextAreaH, strings: []string{"bye"}}
	party := &countingParty{}

	conv, err := newTestWalker(rec, party).Start(context.Background(), talker)
	require.NoError(t, err)

	assert.Equal(t, StateDone, conv.State)
	assert.Equal(t, 1, party.checks)
	assert.Equal(t, "", talker.inputs[0], "intro is generated from empty input")
	assert.Contains(t, rec.events, event{"show", "\nWhat would thou\nask of me?\n"})
}

func TestWalker_Attack(t *testing.T) {
	talker := &scriptedTalker{turns: []turn{
		{reply: []string{"Thou shalt die!"}, next: StateAttack},
	}}
	rec := &recorder{height: screen.TextAreaH, strings: []string{"gold"}}
	conv := &Conversation{State: StateTalk, Reply: []string{"Hail."}, Talker: talker}
	rec.conv = conv

	require.NoError(t, newTestWalker(rec, nil).Run(context.Background(), conv, false))
	assert.Equal(t, StateDone, conv.State)
	assert.Equal(t, 1, talker.attacked)
	assert.Equal(t, event{"show", "Thou shalt die!"}, rec.events[len(rec.events)-1])
}

func TestWalker_PromptPagesWhenAreaFull(t *testing.T) {
	talker := &scriptedTalker{
		prompt: "\nYour Interest:\n",
		turns:  []turn{{reply: []string{"Bye."}, next: StateDone}},
	}
	rec := &recorder{height: 3, strings: []string{"bye"}}
	conv := &Conversation{State: StateTalk, Reply: []string{"one\ntwo\n"}, Talker: talker}
	rec.conv = conv

	require.NoError(t, newTestWalker(rec, nil).Run(context.Background(), conv, true))
	assert.Equal(t, []event{
		{"show", "one\ntwo\n"},
		{"wait", ""},
		{"show", "\nYour Interest:\n"},
		{"input", "bye"},
		{"show", "Bye."},
	}, rec.events)
}

func TestWalker_PromptFitsWithoutPaging(t *testing.T) {
	talker := &scriptedTalker{
		prompt: "\nYour Interest:\n",
		turns:  []turn{{reply: []string{"Bye."}, next: StateDone}},
	}
	rec := &recorder{height: screen.TextAreaH, strings: []string{"bye"}}
	conv := &Conversation{State: StateTalk, Reply: []string{"Hail.\n"}, Talker: talker}
	rec.conv = conv

	require.NoError(t, newTestWalker(rec, nil).Run(context.Background(), conv, true))
	assert.NotContains(t, rec.events, event{"wait", ""})
}

func TestWalker_NoInputRequiredEnds(t *testing.T) {
	talker := &scriptedTalker{}
	rec := &recorder{height: screen.TextAreaH}
	conv := &Conversation{State: StateIntro, Reply: []string{"..."}, Talker: talker}

	require.NoError(t, newTestWalker(rec, nil).Run(context.Background(), conv, false))
	assert.Equal(t, StateDone, conv.State)
	assert.Empty(t, talker.inputs)
}

func TestWalker_InputFailure(t *testing.T) {
	talker := &scriptedTalker{turns: []turn{{reply: []string{"More?"}, next: StateTalk}}}
	rec := &recorder{height: screen.TextAreaH, strings: []string{"job"}}
	conv := &Conversation{State: StateTalk, Reply: []string{"Hail."}, Talker: talker}

	err := newTestWalker(rec, nil).Run(context.Background(), conv, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.EOF))
	assert.Equal(t, StateTalk, conv.State)
}

func TestConversation_InputRequired(t *testing.T) {
	tests := []struct {
		state  State
		kind   InputKind
		maxLen int
	}{
		{StateIntro, InputNone, 0},
		{StateTalk, InputString, MaxInputLen},
		{StateAsk, InputCharacter, 1},
		{StateAttack, InputNone, 0},
		{StateFullHeal, InputNone, 0},
		{StateAdvanceLevels, InputNone, 0},
		{StateDone, InputNone, 0},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			c := &Conversation{State: tt.state}
			kind, maxLen := c.InputRequired()
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.maxLen, maxLen)
		})
	}
}

func TestConversation_PopReply(t *testing.T) {
	c := &Conversation{Reply: []string{"a", "b"}}
	s, ok := c.PopReply()
	assert.True(t, ok)
	assert.Equal(t, "a", s)
	s, ok = c.PopReply()
	assert.True(t, ok)
	assert.Equal(t, "b", s)
	_, ok = c.PopReply()
	assert.False(t, ok)
}
