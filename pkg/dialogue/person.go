package dialogue

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/jwebster45206/britannia/pkg/conversation"
	"github.com/jwebster45206/britannia/pkg/screen"
)

const (
	talkPrompt = "\nYour Interest:\n"
	askPrompt  = "\n\nYou say: "
)

// Person answers a conversation from a PersonSpec.
type Person struct {
	Spec *PersonSpec

	// Reply chunks are paginated to this area.
	Width  int
	Height int

	// OnAttack is called when the conversation ends in an attack.
	OnAttack func()

	// Rand decides whether the person turns away. Nil never turns away.
	Rand *rand.Rand
}

var _ conversation.Talker = (*Person)(nil)

func NewPerson(spec *PersonSpec) *Person {
	return &Person{
		Spec:   spec,
		Width:  screen.TextAreaW,
		Height: screen.TextAreaH,
	}
}

func (p *Person) Prompt(c *conversation.Conversation) string {
	switch c.State {
	case conversation.StateTalk:
		return talkPrompt
	case conversation.StateAsk:
		return askPrompt
	}
	return ""
}

func (p *Person) BeginAttack() {
	if p.OnAttack != nil {
		p.OnAttack()
	}
}

func (p *Person) ConversationText(c *conversation.Conversation, input string) []string {
	var text string
	switch c.State {
	case conversation.StateIntro:
		text = p.intro(c)
	case conversation.StateAsk:
		text = p.answer(c, input)
	default:
		text = p.talk(c, input)
	}
	return screen.Paginate(text, p.Width, p.Height)
}

func (p *Person) says() string {
	pronoun := p.Spec.Pronoun
	if pronoun == "" {
		pronoun = "It"
	}
	return pronoun + " says: "
}

func (p *Person) intro(c *conversation.Conversation) string {
	if p.Spec.Role == RoleLordBritish {
		c.State = conversation.StateAdvanceLevels
		return fmt.Sprintf("%s\nsays: Welcome\nmy child.\n", p.Spec.Name)
	}

	if p.Rand != nil && p.Rand.IntN(100) < p.Spec.TurnAway {
		c.State = conversation.StateDone
		return fmt.Sprintf("\nYou meet\n%s.\n\n%s turns away!\n", p.Spec.Description, p.Spec.Name)
	}

	c.State = conversation.StateTalk
	return fmt.Sprintf("\nYou meet\n%s.\n\n%sI am %s.\n%s", p.Spec.Description, p.says(), p.Spec.Name, talkPrompt)
}

func (p *Person) talk(c *conversation.Conversation, input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" || matches("bye", input) {
		c.State = conversation.StateDone
		return "Bye.\n"
	}

	if key, topic, ok := p.findTopic(input); ok {
		if topic.Question != "" {
			c.State = conversation.StateAsk
			c.Question = topic.Question
			c.Topic = key
			return topic.Text + "\n" + topic.Question + "\n"
		}
		c.State = stateFor(topic.Effect)
		return topic.Text + "\n"
	}

	if p.Spec.Role == RoleHostile {
		c.State = conversation.StateAttack
		return fmt.Sprintf("%s attacks!\n", p.Spec.Name)
	}

	c.State = conversation.StateTalk
	switch {
	case matches("look", input):
		return fmt.Sprintf("You see %s.\n", p.Spec.Description)
	case matches("name", input):
		return fmt.Sprintf("%sI am %s.\n", p.says(), p.Spec.Name)
	case matches("job", input) && p.Spec.Job != "":
		return p.Spec.Job + "\n"
	case matches("health", input) && p.Spec.Health != "":
		return p.Spec.Health + "\n"
	case matches("join", input):
		return fmt.Sprintf("%sI cannot join thee.\n", p.says())
	}
	return "That I cannot\nhelp thee with.\n"
}

func (p *Person) answer(c *conversation.Conversation, input string) string {
	topic, ok := p.Spec.Topics[c.Topic]
	c.Question = ""
	c.Topic = ""
	if !ok {
		c.State = conversation.StateTalk
		return "\n"
	}

	reply := topic.No
	if strings.HasPrefix(strings.ToLower(input), "y") {
		reply = topic.Yes
	}
	c.State = stateFor(reply.Effect)
	return "\n" + reply.Text + "\n"
}

// findTopic matches input against the person's topics. Topics are tried in
// name order so the match is stable.
func (p *Person) findTopic(input string) (string, Topic, bool) {
	keys := make([]string, 0, len(p.Spec.Topics))
	for k := range p.Spec.Topics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if matches(k, input) {
			return k, p.Spec.Topics[k], true
		}
	}
	return "", Topic{}, false
}

// matches compares only the first KeywordLen letters, so "heal" matches
// "health" and "healer". Shorter words must match exactly.
func matches(keyword, input string) bool {
	return truncate(keyword) == truncate(input)
}

func truncate(s string) string {
	if len(s) > KeywordLen {
		return s[:KeywordLen]
	}
	return s
}

func stateFor(effect string) conversation.State {
	switch effect {
	case EffectFullHeal:
		return conversation.StateFullHeal
	case EffectAdvanceLevels:
		return conversation.StateAdvanceLevels
	case EffectAttack:
		return conversation.StateAttack
	case EffectEnd:
		return conversation.StateDone
	}
	return conversation.StateTalk
}
