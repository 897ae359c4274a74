package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mfbarbosa/eduplan/internal/generator"
	"github.com/mfbarbosa/eduplan/internal/importer"
	"github.com/mfbarbosa/eduplan/internal/models"
	"github.com/mfbarbosa/eduplan/internal/planner"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.preview.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case spinner.TickMsg:
		if m.generating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case genResultMsg:
		// The busy flag clears on every exit path
		m.generating = false
		if msg.err != nil {
			m.status = "Ocorreu um erro ao gerar o planejamento. Tente novamente."
			return m, nil
		}
		m.days = planner.ReplaceAll(msg.days)
		m.cursor = 0
		m.refreshPreview()
		m.status = fmt.Sprintf("Plano gerado com %d dia(s).", len(m.days))
		// Only jump to the preview from a tab; an open overlay keeps the
		// user's in-progress form.
		if m.state < tabCount {
			m.state = StatePreview
		}
		return m, nil
	}

	switch m.state {
	case StateCalendar:
		return m.updateCalendar(msg)
	case StatePlanning:
		return m.updatePlanning(msg)
	case StatePreview:
		return m.updatePreview(msg)
	case StateDayModal, StateImport, StateGenerateForm, StateEditDay, StateEditClass:
		return m.updateForm(msg)
	case StateConfirmClear:
		return m.updateConfirmClear(msg)
	}

	return m, nil
}

func (m Model) handleGlobalKeys(msg tea.KeyMsg) (Model, bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, true, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		m.status = ""
		m.state = (m.state + 1) % tabCount
		return m, true, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.status = ""
		m.state = (m.state - 1 + tabCount) % tabCount
		return m, true, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, true, nil
	}
	return m, false, nil
}

func (m Model) updateCalendar(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if next, handled, cmd := m.handleGlobalKeys(keyMsg); handled {
		return next, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		m.calendar.MoveDays(-1)
	case key.Matches(keyMsg, m.keys.Right):
		m.calendar.MoveDays(1)
	case key.Matches(keyMsg, m.keys.Up):
		m.calendar.MoveDays(-7)
	case key.Matches(keyMsg, m.keys.Down):
		m.calendar.MoveDays(7)
	case key.Matches(keyMsg, m.keys.PrevMonth):
		m.calendar.MoveMonths(-1)
	case key.Matches(keyMsg, m.keys.NextMonth):
		m.calendar.MoveMonths(1)
	case key.Matches(keyMsg, m.keys.Enter):
		date := m.calendar.CursorDate()
		fm := &DayFormModel{Kind: models.DayKindNormal}
		if ann, ok, err := m.store.GetDay(date); err == nil && ok {
			fm.Kind = ann.Kind
			fm.Description = ann.Description
		}
		m.dayForm = fm
		m.form = newDayForm(fm)
		m.previousState = StateCalendar
		m.state = StateDayModal
		return m, m.form.Init()
	case key.Matches(keyMsg, m.keys.Import):
		m.importForm = &ImportFormModel{}
		m.form = newImportForm(m.importForm)
		m.previousState = StateCalendar
		m.state = StateImport
		return m, m.form.Init()
	case key.Matches(keyMsg, m.keys.ClearAll):
		m.state = StateConfirmClear
	}

	return m, nil
}

func (m Model) updatePlanning(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if next, handled, cmd := m.handleGlobalKeys(keyMsg); handled {
		return next, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.planRows())-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Add):
		m.days = planner.AddDay(m.days)
		m.refreshPreview()
	case key.Matches(keyMsg, m.keys.AddClass):
		if row, ok := m.selectedRow(); ok {
			m.days = planner.AddClass(m.days, m.days[row.dayIdx].ID)
			m.refreshPreview()
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if row, ok := m.selectedRow(); ok {
			day := m.days[row.dayIdx]
			if row.kind == rowDay {
				m.days = planner.RemoveDay(m.days, day.ID)
			} else {
				m.days = planner.RemoveClass(m.days, day.ID, day.Classes[row.classIdx].ID)
			}
			m.clampCursor()
			m.refreshPreview()
		}
	case key.Matches(keyMsg, m.keys.Enter):
		if row, ok := m.selectedRow(); ok {
			day := m.days[row.dayIdx]
			if row.kind == rowDay {
				m.editDayID = day.ID
				m.editDay = &EditDayFormModel{Date: day.Date, SpecialTitle: day.SpecialTitle}
				m.form = newEditDayForm(m.editDay)
				m.state = StateEditDay
			} else {
				c := day.Classes[row.classIdx]
				m.editDayID = day.ID
				m.editClsID = c.ID
				m.editClass = &EditClassFormModel{Label: c.Label, Title: c.Title, Theme: c.Theme}
				m.form = newEditClassForm(m.editClass)
				m.state = StateEditClass
			}
			m.previousState = StatePlanning
			return m, m.form.Init()
		}
	case key.Matches(keyMsg, m.keys.Generate):
		// A second trigger while a call is outstanding is rejected, not
		// queued.
		if m.generating {
			m.status = "Gerando com IA..."
			return m, nil
		}
		fm := &GenFormModel{
			Subject:       m.settings.Subject,
			Grade:         m.settings.Grade,
			Classroom:     m.settings.Classroom,
			TermNumber:    m.settings.TermNumber,
			TermUnit:      m.settings.TermUnit,
			Teacher:       m.settings.Teacher,
			ClassesPerDay: strconv.Itoa(m.settings.ClassesPerDay),
		}
		m.genForm = fm
		m.form = newGenForm(fm)
		m.previousState = StatePlanning
		m.state = StateGenerateForm
		return m, m.form.Init()
	}

	return m, nil
}

func (m Model) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if next, handled, cmd := m.handleGlobalKeys(keyMsg); handled {
			return next, cmd
		}
		if key.Matches(keyMsg, m.keys.Copy) {
			if err := clipboard.WriteAll(m.preview.Text()); err != nil {
				m.status = fmt.Sprintf("Failed to copy: %v", err)
			} else {
				m.status = "Plano copiado para a área de transferência!"
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		state := m.state
		m.state = m.previousState
		m.form = nil
		return m.completeForm(state)
	case huh.StateAborted:
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	return m, cmd
}

// completeForm applies a submitted form and returns any follow-up command.
func (m Model) completeForm(state SessionState) (tea.Model, tea.Cmd) {
	switch state {
	case StateDayModal:
		date := m.calendar.CursorDate()
		if err := m.store.SetDay(date, m.dayForm.Kind, m.dayForm.Description); err != nil {
			m.status = fmt.Sprintf("Failed to save day: %v", err)
			return m, nil
		}
		m.reloadAnnotations()
		m.status = ""

	case StateImport:
		entries := importer.Parse(m.importForm.Text, m.settings.ImportYear)
		if len(entries) == 0 {
			m.status = "No dated entries found."
			return m, nil
		}
		if err := m.store.UpsertDays(entries); err != nil {
			m.status = fmt.Sprintf("Import failed: %v", err)
			return m, nil
		}
		m.reloadAnnotations()
		m.status = fmt.Sprintf("Imported %d annotation(s).", len(entries))

	case StateEditDay:
		m.days = planner.UpdateDay(m.days, m.editDayID, planner.DayFieldDate, m.editDay.Date)
		m.days = planner.UpdateDay(m.days, m.editDayID, planner.DayFieldSpecialTitle, m.editDay.SpecialTitle)
		m.refreshPreview()

	case StateEditClass:
		m.days = planner.UpdateClass(m.days, m.editDayID, m.editClsID, planner.ClassFieldLabel, m.editClass.Label)
		m.days = planner.UpdateClass(m.days, m.editDayID, m.editClsID, planner.ClassFieldTitle, m.editClass.Title)
		m.days = planner.UpdateClass(m.days, m.editDayID, m.editClsID, planner.ClassFieldTheme, m.editClass.Theme)
		m.refreshPreview()

	case StateGenerateForm:
		return m.startGeneration()
	}

	return m, nil
}

func (m Model) updateConfirmClear(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y", "Y":
			if err := m.store.ClearAll(); err != nil {
				m.status = fmt.Sprintf("Failed to clear: %v", err)
			} else {
				m.reloadAnnotations()
				m.status = "All annotations cleared."
			}
			m.state = StateCalendar
		case "n", "N", "esc":
			m.state = StateCalendar
		}
	}
	return m, nil
}

// startGeneration validates the submitted form and kicks off the external
// call. Validation failures surface immediately; nothing is mutated and no
// call is made.
func (m Model) startGeneration() (tea.Model, tea.Cmd) {
	perDay, err := strconv.Atoi(m.genForm.ClassesPerDay)
	if err != nil {
		perDay = m.settings.ClassesPerDay
	}

	req := generator.Request{
		Subject:       m.genForm.Subject,
		Grade:         m.genForm.Grade,
		Classroom:     m.genForm.Classroom,
		TermNumber:    m.genForm.TermNumber,
		TermUnit:      m.genForm.TermUnit,
		Teacher:       m.genForm.Teacher,
		StartDate:     m.genForm.StartDate,
		EndDate:       m.genForm.EndDate,
		Weekdays:      m.genForm.Weekdays,
		ClassesPerDay: perDay,
		Content:       m.genForm.Content,
	}

	if err := generator.Validate(req); err != nil {
		switch {
		case errors.Is(err, generator.ErrIncompleteRequest):
			m.status = "Por favor, preencha as datas e o conteúdo antes de gerar com IA."
		case errors.Is(err, generator.ErrNoWeekdays):
			m.status = "Por favor, selecione pelo menos um dia da semana."
		default:
			m.status = err.Error()
		}
		return m, nil
	}

	// Persist the form values as the new defaults
	m.settings.Subject = req.Subject
	m.settings.Grade = req.Grade
	m.settings.Classroom = req.Classroom
	m.settings.TermNumber = req.TermNumber
	m.settings.TermUnit = req.TermUnit
	m.settings.Teacher = req.Teacher
	m.settings.ClassesPerDay = req.ClassesPerDay
	if err := m.store.SaveSettings(m.settings); err != nil {
		m.status = fmt.Sprintf("Failed to save settings: %v", err)
		return m, nil
	}

	// Snapshot the calendar window here, on the event loop. The command
	// goroutine works only on the captured slice and never touches the
	// store, which stays owned by Update.
	events, err := m.store.Range(req.StartDate, req.EndDate)
	if err != nil {
		m.status = fmt.Sprintf("Failed to read calendar: %v", err)
		return m, nil
	}

	m.generating = true
	m.status = "Gerando com IA..."

	newGen := m.newGen
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx := context.Background()
		ai, err := newGen(ctx)
		if err != nil {
			return genResultMsg{err: err}
		}
		days, err := generator.GenerateFromEvents(ctx, ai, req, events)
		return genResultMsg{days: days, err: err}
	})
}
