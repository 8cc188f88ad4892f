package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// choiceModel lets the user pick one of several options.
// chosen stays -1 when the prompt is dismissed.
type choiceModel struct {
	title   string
	body    string
	options []string
	cursor  int
	chosen  int
	done    bool
}

func newChoiceModel(title, body string, options []string) choiceModel {
	return choiceModel{title: title, body: body, options: options, chosen: -1}
}

func (m choiceModel) Init() tea.Cmd { return nil }

func (m choiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(k, keys.down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(k, keys.enter):
		if len(m.options) > 0 {
			m.chosen = m.cursor
		}
		m.done = true
		return m, tea.Quit
	case key.Matches(k, keys.esc), key.Matches(k, keys.quit):
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m choiceModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	if strings.TrimSpace(m.body) != "" {
		b.WriteString(m.body)
		b.WriteString("\n\n")
	}
	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + opt))
		} else {
			b.WriteString("  " + opt)
		}
		if i < len(m.options)-1 {
			b.WriteString("\n")
		}
	}
	return renderPage(m.title, b.String(), "↑/↓: выбор   enter: подтвердить   esc: отмена")
}
