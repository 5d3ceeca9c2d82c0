// Package conversation runs a scripted dialogue with a townsperson.
//
// A Conversation is a small state machine: the person's response generator
// produces a queue of page-sized reply chunks and may change the state, and
// the Walker drains that queue onto the screen before acting on the state and
// asking the player for the next line.
package conversation

import (
	"context"
	"fmt"
)

// MaxInputLen is the longest line a player can type in reply.
const MaxInputLen = 16

type State int

const (
	StateIntro State = iota
	StateTalk
	StateAsk
	StateAttack
	StateFullHeal
	StateAdvanceLevels
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIntro:
		return "intro"
	case StateTalk:
		return "talk"
	case StateAsk:
		return "ask"
	case StateAttack:
		return "attack"
	case StateFullHeal:
		return "fullheal"
	case StateAdvanceLevels:
		return "advancelevels"
	case StateDone:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type InputKind int

const (
	InputNone InputKind = iota
	InputString
	InputCharacter
)

// Talker generates a person's side of the dialogue.
type Talker interface {
	// ConversationText answers input and returns the reply as display chunks.
	// It may move c.State; reaching StateDone ends the conversation.
	ConversationText(c *Conversation, input string) []string
	// Prompt is shown after a reply, before the player answers.
	Prompt(c *Conversation) string
	// BeginAttack is called once if the conversation ends in an attack.
	BeginAttack()
}

// Party is the group of characters a conversation can heal or promote.
type Party interface {
	HealAll()
	CheckLevels() bool
}

// Display is the text area replies are written to.
type Display interface {
	Message(format string, args ...any)
	Width() int
	LinesAvailable() int
}

// Input supplies the player's answers.
type Input interface {
	ReadChoice(ctx context.Context, allowed string) (rune, error)
	ReadString(ctx context.Context, maxLen int) (string, error)
}

// Effects plays the audiovisual cue for a healing. Optional.
type Effects interface {
	FullHeal()
}

// Conversation is one dialogue in progress.
type Conversation struct {
	State       State
	Reply       []string
	PlayerInput string
	Talker      Talker

	// Question is the yes/no question awaiting an answer while in StateAsk.
	Question string
	// Topic is the keyword that raised Question.
	Topic string
}

// New starts a conversation with talker in the intro state.
func New(talker Talker) *Conversation {
	return &Conversation{State: StateIntro, Talker: talker}
}

// InputRequired reports what kind of answer the current state needs, and
// the longest string accepted.
func (c *Conversation) InputRequired() (InputKind, int) {
	switch c.State {
	case StateTalk:
		return InputString, MaxInputLen
	case StateAsk:
		return InputCharacter, 1
	}
	return InputNone, 0
}

// PopReply removes and returns the front reply chunk.
func (c *Conversation) PopReply() (string, bool) {
	if len(c.Reply) == 0 {
		return "", false
	}
	chunk := c.Reply[0]
	c.Reply = c.Reply[1:]
	return chunk, true
}

// IsDone reports whether the conversation has ended.
func (c *Conversation) IsDone() bool {
	return c.State == StateDone
}
