// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package picker

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/fluidspaces/lib/tui"
)

// Run shows the terminal picker on /dev/tty and returns the selected
// line, the typed query when nothing matches, or "" if cancelled.
// Stdin and stdout stay free for the choice list and the answer.
func Run(ctx context.Context, choices []string) (string, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return "", fmt.Errorf("opening terminal: %w", err)
	}
	defer tty.Close()
	return RunOn(ctx, choices, tty, tty)
}

// RunOn is Run with explicit terminal streams.
func RunOn(ctx context.Context, choices []string, input io.Reader, output io.Writer) (string, error) {
	renderer := lipgloss.NewRenderer(output, termenv.WithColorCache(true))
	program := tea.NewProgram(
		newModel(choices, tui.DefaultTheme.Styles(renderer)),
		tea.WithContext(ctx),
		tea.WithInput(input),
		tea.WithOutput(output),
		tea.WithAltScreen(),
	)
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("running picker: %w", err)
	}
	return final.(model).answer, nil
}

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Accept      key.Binding
	AcceptQuery key.Binding
	Cancel      key.Binding
}

var defaultKeys = keyMap{
	Up:          key.NewBinding(key.WithKeys("up", "ctrl+p", "ctrl+k")),
	Down:        key.NewBinding(key.WithKeys("down", "ctrl+n", "ctrl+j")),
	Accept:      key.NewBinding(key.WithKeys("enter")),
	AcceptQuery: key.NewBinding(key.WithKeys("tab")),
	Cancel:      key.NewBinding(key.WithKeys("esc", "ctrl+c")),
}

// model is the bubbletea model behind Run.
type model struct {
	choices []string
	matches []Match
	query   textinput.Model
	cursor  int
	width   int
	height  int
	keys    keyMap
	styles  tui.Styles

	answer string
}

func newModel(choices []string, styles tui.Styles) model {
	query := textinput.New()
	query.Prompt = "> "
	query.Placeholder = "workspace title"
	query.Focus()
	return model{
		choices: choices,
		matches: Rank("", choices),
		query:   query,
		keys:    defaultKeys,
		styles:  styles,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.answer = ""
			return m, tea.Quit
		case key.Matches(msg, m.keys.Accept):
			m.answer = m.selection()
			return m, tea.Quit
		case key.Matches(msg, m.keys.AcceptQuery):
			m.answer = strings.TrimSpace(m.query.Value())
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	previous := m.query.Value()
	var command tea.Cmd
	m.query, command = m.query.Update(msg)
	if m.query.Value() != previous {
		m.matches = Rank(m.query.Value(), m.choices)
		m.cursor = 0
	}
	return m, command
}

// selection is the highlighted match, or the trimmed query when
// nothing matches.
func (m model) selection() string {
	if len(m.matches) > 0 {
		return m.matches[m.cursor].Text
	}
	return strings.TrimSpace(m.query.Value())
}

func (m model) View() string {
	var builder strings.Builder
	builder.WriteString(m.query.View())
	builder.WriteByte('\n')

	rows := len(m.matches)
	if m.height > 2 && rows > m.height-2 {
		rows = m.height - 2
	}
	first := 0
	if m.cursor >= rows {
		first = m.cursor - rows + 1
	}
	rendered := make([]string, 0, rows)
	for i := first; i < first+rows && i < len(m.matches); i++ {
		rendered = append(rendered, m.renderRow(m.matches[i], i == m.cursor))
	}
	if len(rendered) > 0 {
		block := strings.Join(rendered, "\n")
		if len(m.matches) > rows {
			scrollbar := tui.RenderScrollbar(m.styles, len(rendered), len(m.matches), rows, first)
			block = lipgloss.JoinHorizontal(lipgloss.Top, block, " ", scrollbar)
		}
		builder.WriteString(block)
		builder.WriteByte('\n')
	}

	status := fmt.Sprintf("%d/%d  enter select · tab use query · esc cancel", len(m.matches), len(m.choices))
	if len(m.matches) == 0 && strings.TrimSpace(m.query.Value()) != "" {
		status = fmt.Sprintf("new workspace %q  enter create · esc cancel", strings.TrimSpace(m.query.Value()))
	}
	builder.WriteString(m.styles.Help.Render(status))
	return builder.String()
}

func (m model) renderRow(match Match, selected bool) string {
	text := match.Text
	if m.width > 4 {
		text = ansi.Truncate(text, m.width-2, "…")
	}
	if selected {
		return m.styles.Prompt.Render("▌ ") + m.styles.Selected.Render(text)
	}

	highlighted := make(map[int]bool, len(match.Positions))
	for _, position := range match.Positions {
		highlighted[position] = true
	}
	var row strings.Builder
	row.WriteString("  ")
	for i, r := range []rune(text) {
		if highlighted[i] {
			row.WriteString(m.styles.Match.Render(string(r)))
		} else {
			row.WriteString(m.styles.Normal.Render(string(r)))
		}
	}
	return row.String()
}
