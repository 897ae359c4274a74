// Package preview shows the rendered plan text in a scrollable viewport.
package preview

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var textStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("252"))

type Model struct {
	viewport viewport.Model
	text     string
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.text == "" {
		return "Nothing to preview yet. Press 'g' on the Planejamento tab to generate a plan."
	}
	return m.viewport.View()
}

// Text returns the current plan text, the exact bytes copied to the
// clipboard.
func (m Model) Text() string {
	return m.text
}

func (m *Model) SetText(text string) {
	m.text = text
	m.viewport.SetContent(textStyle.Render(text))
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
}
