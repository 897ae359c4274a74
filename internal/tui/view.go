package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mfbarbosa/eduplan/internal/planner"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateCalendar:
		content = docStyle.Render(m.calendar.View())
	case StatePlanning:
		content = docStyle.Render(m.viewPlanning())
	case StatePreview:
		content = docStyle.Render(m.preview.View())
	case StateDayModal, StateImport, StateGenerateForm, StateEditDay, StateEditClass:
		if m.form != nil {
			content = docStyle.Render(m.form.View())
		}
	case StateConfirmClear:
		content = m.viewConfirmClear()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Calendário", "Planejamento", "Preview"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.generating {
		return statusStyle.Render(spinnerStyle.Render(m.spinner.View()) + " Gerando com IA...")
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}

func (m Model) viewPlanning() string {
	if len(m.days) == 0 {
		return "No school days yet. Press 'a' to add one or 'g' to generate with AI."
	}

	var b strings.Builder
	rows := m.planRows()
	for i, row := range rows {
		day := m.days[row.dayIdx]

		var line string
		if row.kind == rowDay {
			date := planner.FormatDate(day.Date)
			if date == "" {
				date = "(sem data)"
			}
			line = date
			if day.SpecialTitle != "" {
				line += " – 📋 " + day.SpecialTitle
			}
			line = dayRowStyle.Render(line)
		} else {
			c := day.Classes[row.classIdx]
			line = fmt.Sprintf("  • %s: %s", c.Label, c.Title)
			if c.Theme != "" {
				line += fmt.Sprintf(" (%s)", c.Theme)
			}
			line = classRowStyle.Render(line)
		}

		if i == m.cursor {
			line = selectedRowStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}

func (m Model) viewConfirmClear() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Apagar todos os dados?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
