package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mfbarbosa/eduplan/internal/generator"
	"github.com/mfbarbosa/eduplan/internal/models"
	"github.com/mfbarbosa/eduplan/internal/planner"
	"github.com/mfbarbosa/eduplan/internal/storage"
	"github.com/mfbarbosa/eduplan/internal/tui/components/calendar"
	"github.com/mfbarbosa/eduplan/internal/tui/components/preview"
)

type SessionState int

const (
	StateCalendar SessionState = iota
	StatePlanning
	StatePreview
	StateDayModal
	StateImport
	StateConfirmClear
	StateGenerateForm
	StateEditDay
	StateEditClass
)

const tabCount = 3

// rowKind distinguishes the flattened planning-tab rows.
type rowKind int

const (
	rowDay rowKind = iota
	rowClass
)

type planRow struct {
	kind     rowKind
	dayIdx   int
	classIdx int
}

type DayFormModel struct {
	Kind        models.DayKind
	Description string
}

type ImportFormModel struct {
	Text string
}

type GenFormModel struct {
	Subject       string
	Grade         string
	Classroom     string
	TermNumber    string
	TermUnit      string
	Teacher       string
	StartDate     string
	EndDate       string
	Weekdays      []int
	ClassesPerDay string
	Content       string
}

type EditDayFormModel struct {
	Date         string
	SpecialTitle string
}

type EditClassFormModel struct {
	Label string
	Title string
	Theme string
}

// NewTextGeneratorFunc builds the generation capability on demand, so the
// TUI works fully offline until the first generate.
type NewTextGeneratorFunc func(ctx context.Context) (generator.TextGenerator, error)

type genResultMsg struct {
	days []models.SchoolDay
	err  error
}

type Model struct {
	store  storage.Provider
	newGen NewTextGeneratorFunc

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	calendar calendar.Model
	preview  preview.Model
	settings storage.Settings

	days   []models.SchoolDay
	cursor int

	form       *huh.Form
	dayForm    *DayFormModel
	importForm *ImportFormModel
	genForm    *GenFormModel
	editDay    *EditDayFormModel
	editClass  *EditClassFormModel
	editDayID  string
	editClsID  string

	generating bool
	spinner    spinner.Model
	status     string

	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider, newGen NewTextGeneratorFunc) Model {
	settings, err := store.GetSettings()
	if err != nil {
		settings = storage.DefaultSettings()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		store:    store,
		newGen:   newGen,
		state:    StateCalendar,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		calendar: calendar.New(settings.ImportYear),
		preview:  preview.New(0, 0),
		settings: settings,
		spinner:  sp,
	}
	m.reloadAnnotations()
	m.refreshPreview()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// reloadAnnotations pulls the whole configured year from the store into the
// calendar grid.
func (m *Model) reloadAnnotations() {
	start := fmt.Sprintf("%d-01-01", m.settings.ImportYear)
	end := fmt.Sprintf("%d-12-31", m.settings.ImportYear)
	entries, err := m.store.Range(start, end)
	if err != nil {
		m.status = fmt.Sprintf("Failed to load calendar: %v", err)
		return
	}
	annotations := make(map[string]models.DayAnnotation, len(entries))
	for _, e := range entries {
		annotations[e.Date] = e.Annotation
	}
	m.calendar.SetAnnotations(annotations)
}

func (m *Model) refreshPreview() {
	m.preview.SetText(planner.Render(m.days, planner.Header{
		Subject:    m.settings.Subject,
		Grade:      m.settings.Grade,
		Classroom:  m.settings.Classroom,
		TermNumber: m.settings.TermNumber,
		TermUnit:   m.settings.TermUnit,
		Teacher:    m.settings.Teacher,
	}))
}

// planRows flattens the plan into selectable rows, one per day and one per
// class slot.
func (m Model) planRows() []planRow {
	var rows []planRow
	for i, d := range m.days {
		rows = append(rows, planRow{kind: rowDay, dayIdx: i})
		for j := range d.Classes {
			rows = append(rows, planRow{kind: rowClass, dayIdx: i, classIdx: j})
		}
	}
	return rows
}

func (m Model) selectedRow() (planRow, bool) {
	rows := m.planRows()
	if len(rows) == 0 || m.cursor < 0 || m.cursor >= len(rows) {
		return planRow{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) clampCursor() {
	rows := m.planRows()
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func newDayForm(fm *DayFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.DayKind]().
				Title("Tipo de dia").
				Options(
					huh.NewOption("Dia Normal", models.DayKindNormal),
					huh.NewOption("Feriado Nacional", models.DayKindHoliday),
					huh.NewOption("Ponto Facultativo", models.DayKindOptional),
					huh.NewOption("Prova/Avaliação", models.DayKindExam),
					huh.NewOption("Evento Escolar", models.DayKindEvent),
					huh.NewOption("Atividade Especial", models.DayKindSpecial),
				).
				Value(&fm.Kind),
			huh.NewInput().
				Title("Descrição do Evento").
				Value(&fm.Description),
		),
	).WithTheme(huh.ThemeDracula())
}

func newImportForm(fm *ImportFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Importação em Lote").
				Description("Cole FERIADOS, PROVAS, etc...").
				Value(&fm.Text),
		),
	).WithTheme(huh.ThemeDracula())
}

func newGenForm(fm *GenFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Disciplina").
				Value(&fm.Subject),
			huh.NewInput().
				Title("Professor(a)").
				Value(&fm.Teacher),
			huh.NewInput().
				Title("Série").
				Value(&fm.Grade),
			huh.NewInput().
				Title("Turma").
				Value(&fm.Classroom),
			huh.NewSelect[string]().
				Title("Período").
				Options(
					huh.NewOption("1º", "1º"),
					huh.NewOption("2º", "2º"),
					huh.NewOption("3º", "3º"),
					huh.NewOption("4º", "4º"),
				).
				Value(&fm.TermNumber),
			huh.NewSelect[string]().
				Title("Unidade").
				Options(
					huh.NewOption("Bimestre", "Bimestre"),
					huh.NewOption("Trimestre", "Trimestre"),
					huh.NewOption("Mês", "Mês"),
					huh.NewOption("Semestre", "Semestre"),
				).
				Value(&fm.TermUnit),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Data Inicial (YYYY-MM-DD)").
				Value(&fm.StartDate).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Data Final (YYYY-MM-DD)").
				Value(&fm.EndDate).
				Validate(validateOptionalDate),
			huh.NewMultiSelect[int]().
				Title("Dias da Semana").
				Options(
					huh.NewOption("Seg", 1),
					huh.NewOption("Ter", 2),
					huh.NewOption("Qua", 3),
					huh.NewOption("Qui", 4),
					huh.NewOption("Sex", 5),
				).
				Value(&fm.Weekdays),
			huh.NewInput().
				Title("Aulas por dia").
				Value(&fm.ClassesPerDay).
				Validate(func(s string) error {
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i < 1 || i > 10 {
						return fmt.Errorf("aulas por dia must be 1-10")
					}
					return nil
				}),
			huh.NewText().
				Title("Conteúdo a Abordar").
				Description("Ex: Tempo x Clima, Fatores do Clima, Massas de Ar...").
				Value(&fm.Content),
		),
	).WithTheme(huh.ThemeDracula())
}

func newEditDayForm(fm *EditDayFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Data (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Título Especial (Opcional)").
				Value(&fm.SpecialTitle),
		),
	).WithTheme(huh.ThemeDracula())
}

func newEditClassForm(fm *EditClassFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Aula").
				Value(&fm.Label),
			huh.NewInput().
				Title("Título").
				Value(&fm.Title),
			huh.NewInput().
				Title("Tema/Atividade").
				Value(&fm.Theme),
		),
	).WithTheme(huh.ThemeDracula())
}

// validateOptionalDate accepts an empty string or a real calendar date.
func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse(models.DateFormat, s); err != nil {
		return fmt.Errorf("use the YYYY-MM-DD format")
	}
	return nil
}
