package planner

import (
	"testing"

	"github.com/mfbarbosa/eduplan/internal/models"
)

func TestAddDay_AppendsDayWithOneEmptySlot(t *testing.T) {
	days := AddDay(nil)

	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	d := days[0]
	if d.ID == "" {
		t.Error("new day must get an id")
	}
	if d.Date != "" || d.SpecialTitle != "" {
		t.Errorf("new day must start empty, got %+v", d)
	}
	if len(d.Classes) != 1 {
		t.Fatalf("expected 1 class slot, got %d", len(d.Classes))
	}
	if d.Classes[0].Label != "Aula 1" {
		t.Errorf("first slot label = %q, want %q", d.Classes[0].Label, "Aula 1")
	}
}

func TestAddClass_NumbersByPositionAtAppendTime(t *testing.T) {
	days := AddDay(nil)
	dayID := days[0].ID

	days = AddClass(days, dayID)
	days = AddClass(days, dayID)

	labels := []string{}
	for _, c := range days[0].Classes {
		labels = append(labels, c.Label)
	}
	want := []string{"Aula 1", "Aula 2", "Aula 3"}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestRemoveClass_LabelsNotRenumbered(t *testing.T) {
	days := AddDay(nil)
	dayID := days[0].ID
	days = AddClass(days, dayID)
	days = AddClass(days, dayID)

	// Drop the middle slot; remaining labels keep their original numbers
	days = RemoveClass(days, dayID, days[0].Classes[1].ID)

	if len(days[0].Classes) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(days[0].Classes))
	}
	if days[0].Classes[0].Label != "Aula 1" || days[0].Classes[1].Label != "Aula 3" {
		t.Errorf("labels = %q, %q; want Aula 1, Aula 3",
			days[0].Classes[0].Label, days[0].Classes[1].Label)
	}
}

func TestUpdateDay_TargetsOnlyMatchingDay(t *testing.T) {
	days := AddDay(AddDay(nil))

	days = UpdateDay(days, days[1].ID, DayFieldDate, "2026-08-10")

	if days[0].Date != "" {
		t.Errorf("first day date changed unexpectedly: %q", days[0].Date)
	}
	if days[1].Date != "2026-08-10" {
		t.Errorf("second day date = %q, want 2026-08-10", days[1].Date)
	}
}

func TestUpdateClass_EditsSingleField(t *testing.T) {
	days := AddDay(nil)
	dayID := days[0].ID
	classID := days[0].Classes[0].ID

	days = UpdateClass(days, dayID, classID, ClassFieldTitle, "Relevo brasileiro")
	days = UpdateClass(days, dayID, classID, ClassFieldTheme, "Geomorfologia")

	c := days[0].Classes[0]
	if c.Title != "Relevo brasileiro" || c.Theme != "Geomorfologia" {
		t.Errorf("slot = %+v", c)
	}
	if c.Label != "Aula 1" {
		t.Errorf("label changed unexpectedly: %q", c.Label)
	}
}

func TestRemoveDay_UnknownIDIsNoOp(t *testing.T) {
	days := AddDay(nil)

	got := RemoveDay(days, "does-not-exist")

	if len(got) != 1 {
		t.Errorf("expected 1 day, got %d", len(got))
	}
}

func TestMutations_DoNotTouchInput(t *testing.T) {
	days := AddDay(nil)
	dayID := days[0].ID
	classID := days[0].Classes[0].ID
	original := days[0]

	_ = UpdateDay(days, dayID, DayFieldSpecialTitle, "Feira de Ciências")
	_ = UpdateClass(days, dayID, classID, ClassFieldTitle, "mudou")
	_ = AddClass(days, dayID)
	_ = RemoveClass(days, dayID, classID)
	_ = RemoveDay(days, dayID)

	if days[0].SpecialTitle != original.SpecialTitle {
		t.Error("UpdateDay mutated its input")
	}
	if days[0].Classes[0].Title != "" {
		t.Error("UpdateClass mutated its input")
	}
	if len(days[0].Classes) != 1 {
		t.Errorf("input slot count changed: %d", len(days[0].Classes))
	}
}

func TestReplaceAll_CopiesSlice(t *testing.T) {
	src := []models.SchoolDay{{ID: "a", Date: "2026-03-02"}}

	got := ReplaceAll(src)
	src[0].Date = "changed"

	if got[0].Date != "2026-03-02" {
		t.Error("ReplaceAll must copy, not alias, the incoming slice")
	}
}
