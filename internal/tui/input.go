package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type inputModel struct {
	title     string
	body      string
	input     textinput.Model
	required  bool
	value     string
	errMsg    string
	submitted bool
	done      bool
}

func newInputModel(title, body, placeholder string, required bool) inputModel {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 128
	in.Width = 40
	in.Focus()

	return inputModel{title: title, body: body, input: in, required: required}
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.enter):
			v := strings.TrimSpace(m.input.Value())
			if m.required && v == "" {
				m.errMsg = "Поле обязательно для заполнения"
				return m, nil
			}
			m.value, m.submitted, m.done = v, true, true
			return m, tea.Quit
		case key.Matches(k, keys.esc), key.Matches(k, interrupt):
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.errMsg != "" && strings.TrimSpace(m.input.Value()) != "" {
		m.errMsg = ""
	}
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	if strings.TrimSpace(m.body) != "" {
		b.WriteString(m.body)
		b.WriteString("\n\n")
	}
	b.WriteString(m.input.View())
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}
	return renderPage(m.title, b.String(), "enter: сохранить   esc: отмена")
}
