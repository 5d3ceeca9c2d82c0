package conversation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/britannia/pkg/screen"
)

// AnswerKeys are the keys accepted for a yes/no question.
const AnswerKeys = "yn"

// Walker drives a Conversation to completion against a display and an input
// source. It owns the conversation for the duration of Run.
type Walker struct {
	Display Display
	Input   Input
	Party   Party
	Effects Effects
	Logger  *slog.Logger
}

func NewWalker(display Display, in Input, party Party, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Walker{
		Display: display,
		Input:   in,
		Party:   party,
		Logger:  logger,
	}
}

// Start opens a conversation with talker and runs it to the end.
func (w *Walker) Start(ctx context.Context, talker Talker) (*Conversation, error) {
	conv := New(talker)
	conv.Reply = talker.ConversationText(conv, "")
	conv.PlayerInput = ""
	return conv, w.Run(ctx, conv, false)
}

// Run shows each reply chunk in turn, pausing for a key between them, then
// applies the state's side effect and collects the player's answer. It
// returns when the conversation reaches StateDone, or with the input
// source's error if that fails first.
func (w *Walker) Run(ctx context.Context, conv *Conversation, showPrompt bool) error {
	for conv.State != StateDone {
		linesUsed := 0
		if chunk, ok := conv.PopReply(); ok {
			linesUsed = screen.LineCount(chunk, w.Display.Width())
			w.Display.Message("%s", chunk)
		}

		if len(conv.Reply) > 0 {
			if err := w.waitForKey(ctx); err != nil {
				return err
			}
			continue
		}
		conv.Reply = nil

		if conv.State == StateAttack {
			w.Logger.Debug("Conversation turned hostile")
			conv.State = StateDone
			conv.Talker.BeginAttack()
		}

		if conv.State == StateDone {
			break
		}

		switch conv.State {
		case StateFullHeal:
			w.Logger.Debug("Conversation healing party")
			if w.Party != nil {
				w.Party.HealAll()
			}
			if w.Effects != nil {
				w.Effects.FullHeal()
			}
			conv.State = StateTalk
		case StateAdvanceLevels:
			w.Logger.Debug("Conversation checking party levels")
			if w.Party != nil {
				w.Party.CheckLevels()
			}
			w.Display.Message("\nWhat would thou\nask of me?\n")
			conv.State = StateTalk
		}

		if showPrompt {
			if prompt := conv.Talker.Prompt(conv); prompt != "" {
				if linesUsed+screen.LineCount(prompt, w.Display.Width()) > w.Display.LinesAvailable() {
					if err := w.waitForKey(ctx); err != nil {
						return err
					}
				}
				w.Display.Message("%s", prompt)
			}
		}

		kind, maxLen := conv.InputRequired()
		switch kind {
		case InputString:
			answer, err := w.Input.ReadString(ctx, maxLen)
			if err != nil {
				return fmt.Errorf("failed to read reply: %w", err)
			}
			conv.PlayerInput = answer
			conv.Reply = conv.Talker.ConversationText(conv, conv.PlayerInput)
			conv.PlayerInput = ""
			showPrompt = true
		case InputCharacter:
			choice, err := w.Input.ReadChoice(ctx, AnswerKeys)
			if err != nil {
				return fmt.Errorf("failed to read answer: %w", err)
			}
			conv.Reply = conv.Talker.ConversationText(conv, string(choice))
			conv.PlayerInput = ""
			showPrompt = true
		case InputNone:
			conv.State = StateDone
		}
	}

	if len(conv.Reply) > 0 {
		w.Display.Message("%s", conv.Reply[0])
	}
	return nil
}

func (w *Walker) waitForKey(ctx context.Context) error {
	if _, err := w.Input.ReadChoice(ctx, ""); err != nil {
		return fmt.Errorf("failed waiting for key: %w", err)
	}
	return nil
}
