package tui

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mfbarbosa/eduplan/internal/models"
	"github.com/mfbarbosa/eduplan/internal/storage"
)

var errFake = errors.New("model unavailable")

func newTestModel(t *testing.T) Model {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "eduplan.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return NewModel(store, nil)
}

func TestGenResult_SwitchesTabToPreview(t *testing.T) {
	m := newTestModel(t)
	m.generating = true
	m.state = StatePlanning

	updated, _ := m.Update(genResultMsg{days: []models.SchoolDay{{ID: "d1", Date: "2026-03-02"}}})
	got := updated.(Model)

	if got.generating {
		t.Error("busy flag must clear when the result lands")
	}
	if got.state != StatePreview {
		t.Errorf("state = %d, want StatePreview", got.state)
	}
	if len(got.days) != 1 {
		t.Errorf("got %d days, want 1", len(got.days))
	}
}

func TestGenResult_LeavesOpenOverlayAlone(t *testing.T) {
	m := newTestModel(t)
	m.generating = true
	m.previousState = StateCalendar
	m.state = StateDayModal
	m.dayForm = &DayFormModel{Kind: models.DayKindHoliday}
	m.form = newDayForm(m.dayForm)

	updated, _ := m.Update(genResultMsg{days: []models.SchoolDay{{ID: "d1", Date: "2026-03-02"}}})
	got := updated.(Model)

	if got.state != StateDayModal {
		t.Errorf("state = %d, an open form must survive a generation result", got.state)
	}
	if got.form == nil {
		t.Error("form discarded by the generation result")
	}
	// The plan itself still updates behind the overlay
	if len(got.days) != 1 {
		t.Errorf("got %d days, want 1", len(got.days))
	}
	if got.generating {
		t.Error("busy flag must clear when the result lands")
	}
}

func TestGenResult_ErrorKeepsPlanAndState(t *testing.T) {
	m := newTestModel(t)
	m.generating = true
	m.state = StatePlanning
	m.days = []models.SchoolDay{{ID: "d1", Date: "2026-03-02"}}

	updated, _ := m.Update(genResultMsg{err: errFake})
	got := updated.(Model)

	if got.generating {
		t.Error("busy flag must clear on the error path")
	}
	if got.state != StatePlanning {
		t.Errorf("state = %d, want StatePlanning", got.state)
	}
	if len(got.days) != 1 {
		t.Error("a failed generation must not touch the previous plan")
	}
	if got.status == "" {
		t.Error("expected an error status message")
	}
}
