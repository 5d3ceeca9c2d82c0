package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/britannia/internal/session"
	"github.com/jwebster45206/britannia/pkg/input"
	"github.com/jwebster45206/britannia/pkg/spells"
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	ctx     context.Context
	session *session.Session
	keys    *input.Channel

	chatViewport viewport.Model
	metaViewport viewport.Model
	transcript   *transcript
	snap         snapshot
	selected     int
	ready        bool
	width        int
	height       int

	// busy is set while an action runs on its own goroutine. The session
	// belongs to that goroutine until actionDoneMsg arrives.
	busy   bool
	cancel context.CancelFunc
	status string
	err    error

	showQuitModal bool

	copy func(string) error
}

type actionDoneMsg struct {
	action string
	ok     bool
	err    error
	snap   snapshot
}

// snapshot is what the side panel shows, copied off the session between
// actions.
type snapshot struct {
	members  []string
	keys     int
	reagents []string
	people   []string
}

func takeSnapshot(s *session.Session) snapshot {
	var snap snapshot
	for _, m := range s.Party.Members {
		snap.members = append(snap.members, fmt.Sprintf("%s\n  %s L%d %d/%d %s",
			m.Name(), m.Spec.Class, m.RealLevel(), m.HP(), m.MaxHP(), m.Status()))
	}
	snap.keys = s.Party.Keys
	for i, n := range s.Party.Reagents {
		snap.reagents = append(snap.reagents, fmt.Sprintf("%c %-13s %2d", 'A'+i, spells.Reagent(i), n))
	}
	for _, p := range s.People {
		line := p.Name
		if p.IsHostile() {
			line += " (hostile)"
		}
		snap.people = append(snap.people, line)
	}
	return snap
}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(ctx context.Context, s *session.Session, keys *input.Channel) ConsoleUI {
	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		ctx:          ctx,
		session:      s,
		keys:         keys,
		chatViewport: chatVp,
		metaViewport: metaVp,
		transcript:   &transcript{},
		snap:         takeSnapshot(s),
		copy:         clipboard.WriteAll,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return nil
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		chatWidth := int(float64(m.width)*0.75) - 4
		metaWidth := m.width - chatWidth - 6

		m.chatViewport.Width = chatWidth - 2
		m.chatViewport.Height = m.height - 7
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.ready = true
		m.writeChatContent()
		m.writeMetadata()

	case displayMsg:
		m.transcript.Write(msg.text)
		m.writeChatContent()
		return m, nil

	case actionDoneMsg:
		m.busy = false
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		m.keys.Drain()
		m.snap = msg.snap
		m.err = msg.err
		m.status = actionStatus(msg)
		m.writeMetadata()
		m.writeChatContent()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.showQuitModal = true
			return m, nil
		case tea.KeyCtrlY:
			if err := m.copy(m.transcript.Plain()); err != nil {
				m.status = "Copy failed: " + err.Error()
			} else {
				m.status = "Transcript copied."
			}
			return m, nil
		}

		if m.busy {
			if k, ok := keyFromMsg(msg); ok {
				m.keys.Send(k)
			}
			return m, nil
		}
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)
	return m, tea.Batch(vpCmd, mvCmd)
}

// handleKey runs the commands available between conversations.
func (m *ConsoleUI) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyEsc:
		m.showQuitModal = true
		return nil, true
	case tea.KeyUp:
		if m.selected > 0 {
			m.selected--
		}
		m.writeMetadata()
		return nil, true
	case tea.KeyDown:
		if m.selected < len(m.snap.people)-1 {
			m.selected++
		}
		m.writeMetadata()
		return nil, true
	case tea.KeyEnter:
		return m.start("talk"), true
	}

	switch msg.String() {
	case "a":
		return m.start("attack"), true
	case "s":
		return m.start("save"), true
	}
	return nil, false
}

// start marks the UI busy and hands the session to the action's goroutine.
func (m *ConsoleUI) start(action string) tea.Cmd {
	if len(m.snap.people) == 0 && action != "save" {
		m.status = "There is no one here."
		return nil
	}
	m.busy = true
	m.err = nil
	m.status = ""
	m.writeChatContent()

	switch action {
	case "talk":
		return m.talk(m.selected)
	case "attack":
		return m.attack(m.selected)
	}
	return m.save()
}

func (m *ConsoleUI) talk(i int) tea.Cmd {
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	s := m.session
	return func() tea.Msg {
		ok, err := s.Talk(ctx, i)
		return actionDoneMsg{action: "talk", ok: ok, err: err, snap: takeSnapshot(s)}
	}
}

func (m *ConsoleUI) attack(i int) tea.Cmd {
	s := m.session
	return func() tea.Msg {
		ok := s.Attack(i)
		return actionDoneMsg{action: "attack", ok: ok, snap: takeSnapshot(s)}
	}
}

func (m *ConsoleUI) save() tea.Cmd {
	s := m.session
	ctx := m.ctx
	return func() tea.Msg {
		err := s.Save(ctx)
		return actionDoneMsg{action: "save", ok: err == nil, err: err, snap: takeSnapshot(s)}
	}
}

func actionStatus(msg actionDoneMsg) string {
	switch {
	case msg.err != nil:
		return ""
	case msg.action == "talk" && !msg.ok:
		return "No response."
	case msg.action == "attack" && !msg.ok:
		return "Nothing to attack."
	case msg.action == "save":
		return "Party saved."
	}
	return ""
}

// writeChatContent renders the transcript for the current viewport width.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6

	var content strings.Builder
	content.WriteString(titleStyle.Render("BRITANNIA") + "\n\n")
	content.WriteString("Pick someone with ↑/↓ and press Enter to talk.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(chatWidth-6, 1))) + "\n\n")
	content.WriteString(m.transcript.Render(chatWidth))

	if m.busy {
		content.WriteString("\n" + loadingStyle.Render("▌"))
	}
	if m.err != nil {
		content.WriteString("\n\n" + errorStyle.Render("Error: "+m.err.Error()))
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m *ConsoleUI) writeMetadata() {
	var content strings.Builder
	content.WriteString(titleStyle.Render("PARTY") + "\n\n")
	for _, line := range m.snap.members {
		content.WriteString(line + "\n")
	}
	content.WriteString(fmt.Sprintf("\nKeys: %d\n\n", m.snap.keys))

	content.WriteString("Reagents:\n")
	for _, line := range m.snap.reagents {
		content.WriteString(line + "\n")
	}

	content.WriteString("\n" + titleStyle.Render("TOWNSFOLK") + "\n\n")
	if len(m.snap.people) == 0 {
		content.WriteString("Nobody\n")
	}
	for i, name := range m.snap.people {
		if i == m.selected {
			content.WriteString(selectedItemStyle.Render("▶ "+name) + "\n")
		} else {
			content.WriteString("  " + name + "\n")
		}
	}

	content.WriteString("\n")
	content.WriteString("Commands:\n")
	content.WriteString("• Enter: Talk\n")
	content.WriteString("• a: Attack\n")
	content.WriteString("• s: Save\n")
	content.WriteString("• Ctrl+Y: Copy\n")
	content.WriteString("• Ctrl+C: Quit\n")

	m.metaViewport.SetContent(content.String())
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case displayMsg:
		m.transcript.Write(msg.text)

	case actionDoneMsg:
		m.busy = false
		m.snap = msg.snap

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m.quit()
		default:
			switch msg.String() {
			case "y", "Y":
				return m.quit()
			case "n", "N", "esc":
				m.showQuitModal = false
				m.writeChatContent()
				return m, nil
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) quit() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	return m, tea.Quit
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Thy party will be saved.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	footer := promptStyle.Render(m.status)
	if m.busy {
		footer = promptStyle.Render("Type to answer. Enter sends.")
	}

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 1))),
			footer,
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}
