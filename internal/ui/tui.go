package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	title     string
	altScreen bool
}

// WithTitle sets the title shown above the conversation.
func WithTitle(title string) TUIOption {
	return func(c *tuiConfig) {
		if title != "" {
			c.title = title
		}
	}
}

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.altScreen = enabled
	}
}

// RunTUI runs the chat front end until the session exits or the user quits.
func RunTUI(ctx context.Context, s Session, opts ...TUIOption) error {
	c := &tuiConfig{
		title:     "Barry",
		altScreen: true,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if c.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(newTUIModel(s, c.title), programOpts...)
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

const (
	defaultWidth  = 80
	defaultHeight = 24
	// title, blank line, input, help
	chromeHeight = 4
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	userBubble = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	barryBubble = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("212")).
			Padding(0, 1)
)

type keyMap struct {
	Send       key.Binding
	Quit       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Send:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		ScrollUp:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "scroll down")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.PageUp, k.PageDown, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.Quit},
		{k.PageUp, k.PageDown, k.ScrollUp, k.ScrollDown},
	}
}

type turn struct {
	user bool
	text string
}

type tuiModel struct {
	session  Session
	title    string
	keys     keyMap
	help     help.Model
	input    textinput.Model
	viewport viewport.Model
	turns    []turn
	width    int
	height   int
	quitting bool
}

func newTUIModel(s Session, title string) *tuiModel {
	keys := newKeyMap()

	input := textinput.New()
	input.Placeholder = "Type a command, or help"
	input.Prompt = "> "
	input.Focus()

	vp := viewport.New(defaultWidth, defaultHeight-chromeHeight)
	vp.KeyMap = viewport.KeyMap{
		PageUp:   keys.PageUp,
		PageDown: keys.PageDown,
		Up:       keys.ScrollUp,
		Down:     keys.ScrollDown,
	}

	m := &tuiModel{
		session:  s,
		title:    title,
		keys:     keys,
		help:     help.New(),
		input:    input,
		viewport: vp,
		width:    defaultWidth,
		height:   defaultHeight,
		turns:    []turn{{text: s.Welcome()}},
	}
	m.refresh()
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Send):
			return m.send()
		case key.Matches(msg, m.keys.PageUp, m.keys.PageDown, m.keys.ScrollUp, m.keys.ScrollDown):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tuiModel) send() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}
	m.input.Reset()

	m.turns = append(m.turns,
		turn{user: true, text: line},
		turn{text: m.session.GetResponse(line)},
	)
	m.refresh()

	if m.session.Exited() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *tuiModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *tuiModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-chromeHeight, 1)
	m.input.Width = max(width-len(m.input.Prompt)-1, 1)
	m.help.Width = width
	m.refresh()
}

// refresh re-renders the conversation and scrolls to the newest turn.
func (m *tuiModel) refresh() {
	m.viewport.SetContent(renderTurns(m.turns, m.width))
	m.viewport.GotoBottom()
}

func renderTurns(turns []turn, width int) string {
	blocks := make([]string, 0, len(turns))
	for _, t := range turns {
		blocks = append(blocks, renderTurn(t, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// renderTurn draws a dialog box: user turns on the right, Barry's on the left.
func renderTurn(t turn, width int) string {
	style, align := barryBubble, lipgloss.Left
	if t.user {
		style, align = userBubble, lipgloss.Right
	}

	// border and padding take two columns each side
	maxContent := max(width*3/4-4, 10)
	content := min(widestLine(t.text), maxContent)
	box := style.Width(content + 2).Render(t.text)
	return lipgloss.PlaceHorizontal(width, align, box)
}

func widestLine(s string) int {
	widest := 1
	for _, line := range strings.Split(s, "\n") {
		widest = max(widest, lipgloss.Width(line))
	}
	return widest
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
