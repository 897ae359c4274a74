// Package calendar renders one month of the school year as a colored grid
// and tracks a cursor for day selection.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mfbarbosa/eduplan/internal/models"
)

var monthNames = []string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// kindColors matches the legend of the original planner UI.
var kindColors = map[models.DayKind]lipgloss.Color{
	models.DayKindNormal:   lipgloss.Color("#1e2642"),
	models.DayKindWeekend:  lipgloss.Color("#84cc16"),
	models.DayKindHoliday:  lipgloss.Color("#dc2626"),
	models.DayKindOptional: lipgloss.Color("#ea580c"),
	models.DayKindExam:     lipgloss.Color("#8b5cf6"),
	models.DayKindEvent:    lipgloss.Color("#ec4899"),
	models.DayKindSpecial:  lipgloss.Color("#06b6d4"),
}

var kindLabels = []struct {
	kind  models.DayKind
	label string
}{
	{models.DayKindNormal, "Dia Normal"},
	{models.DayKindWeekend, "Fim de Semana"},
	{models.DayKindHoliday, "Feriado Nacional"},
	{models.DayKindOptional, "Ponto Facultativo"},
	{models.DayKindExam, "Prova/Avaliação"},
	{models.DayKindEvent, "Evento Escolar"},
	{models.DayKindSpecial, "Atividade Especial"},
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("43")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Reverse(true)

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("248")).
			Italic(true)
)

type Model struct {
	cursor      time.Time
	annotations map[string]models.DayAnnotation
}

func New(year int) Model {
	return Model{
		cursor:      time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		annotations: make(map[string]models.DayAnnotation),
	}
}

func (m *Model) SetAnnotations(annotations map[string]models.DayAnnotation) {
	if annotations == nil {
		annotations = make(map[string]models.DayAnnotation)
	}
	m.annotations = annotations
}

// CursorDate returns the selected date in store key format.
func (m Model) CursorDate() string {
	return m.cursor.Format(models.DateFormat)
}

// MoveDays shifts the cursor by n days.
func (m *Model) MoveDays(n int) {
	m.cursor = m.cursor.AddDate(0, 0, n)
}

// MoveMonths shifts the cursor by n months, clamping to the last day of the
// target month so the cursor never spills into the next one.
func (m *Model) MoveMonths(n int) {
	first := time.Date(m.cursor.Year(), m.cursor.Month(), 1, 0, 0, 0, 0, time.UTC)
	target := first.AddDate(0, n, 0)
	day := m.cursor.Day()
	if last := target.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	m.cursor = time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, time.UTC)
}

func (m Model) kindFor(date string) models.DayKind {
	if ann, ok := m.annotations[date]; ok {
		return ann.Kind
	}
	return models.KindForDate(date, nil)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %d", monthNames[m.cursor.Month()-1], m.cursor.Year())))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Dom Seg Ter Qua Qui Sex Sab"))
	b.WriteString("\n")

	first := time.Date(m.cursor.Year(), m.cursor.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()

	col := int(first.Weekday())
	b.WriteString(strings.Repeat("    ", col))

	for day := 1; day <= lastDay; day++ {
		date := time.Date(m.cursor.Year(), m.cursor.Month(), day, 0, 0, 0, 0, time.UTC)
		cell := fmt.Sprintf("%3d", day)

		style := lipgloss.NewStyle().Background(kindColors[m.kindFor(date.Format(models.DateFormat))])
		if kind := m.kindFor(date.Format(models.DateFormat)); kind == models.DayKindWeekend || kind == models.DayKindSpecial {
			style = style.Foreground(lipgloss.Color("#000000"))
		} else {
			style = style.Foreground(lipgloss.Color("#f1f5f9"))
		}
		if day == m.cursor.Day() {
			style = style.Inherit(cursorStyle)
		}

		b.WriteString(style.Render(cell))
		b.WriteString(" ")

		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}

	// Selected day detail
	b.WriteString("\n")
	selected := m.CursorDate()
	if ann, ok := m.annotations[selected]; ok {
		b.WriteString(descStyle.Render(fmt.Sprintf("%s: %s – %s", selected, ann.Kind, ann.Description)))
	} else {
		b.WriteString(descStyle.Render(fmt.Sprintf("%s: %s", selected, m.kindFor(selected))))
	}
	b.WriteString("\n\n")
	b.WriteString(m.legend())

	return b.String()
}

func (m Model) legend() string {
	var entries []string
	for _, kl := range kindLabels {
		swatch := lipgloss.NewStyle().Background(kindColors[kl.kind]).Render("  ")
		entries = append(entries, swatch+" "+headerStyle.Render(kl.label))
	}
	return strings.Join(entries, "   ")
}
