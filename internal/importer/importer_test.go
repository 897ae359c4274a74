package importer

import (
	"testing"

	"github.com/mfbarbosa/eduplan/internal/models"
)

func TestParse_HolidayHeaderThenDate(t *testing.T) {
	input := "FERIADO NACIONAL\n25/12 - Natal"

	got := Parse(input, 2026)

	if len(got) != 1 {
		t.Fatalf("Parse returned %d entries, want 1", len(got))
	}
	ann, ok := got["2026-12-25"]
	if !ok {
		t.Fatalf("missing entry for 2026-12-25, got %v", got)
	}
	if ann.Kind != models.DayKindHoliday {
		t.Errorf("kind = %s, want holiday", ann.Kind)
	}
	if ann.Description != "Natal" {
		t.Errorf("description = %q, want %q", ann.Description, "Natal")
	}
}

func TestParse_CategoryIsSticky(t *testing.T) {
	input := `PROVAS DO BIMESTRE
10/03 - Matemática
12/03 - Português
EVENTOS
15/06 - Festa Junina`

	got := Parse(input, 2026)

	if len(got) != 3 {
		t.Fatalf("Parse returned %d entries, want 3", len(got))
	}
	for _, tc := range []struct {
		date string
		kind models.DayKind
		desc string
	}{
		{"2026-03-10", models.DayKindExam, "Matemática"},
		{"2026-03-12", models.DayKindExam, "Português"},
		{"2026-06-15", models.DayKindEvent, "Festa Junina"},
	} {
		ann, ok := got[tc.date]
		if !ok {
			t.Errorf("missing entry for %s", tc.date)
			continue
		}
		if ann.Kind != tc.kind || ann.Description != tc.desc {
			t.Errorf("%s = %+v, want kind=%s desc=%q", tc.date, ann, tc.kind, tc.desc)
		}
	}
}

func TestParse_DefaultCategoryIsHoliday(t *testing.T) {
	got := Parse("01/01 - Confraternização Universal", 2026)

	ann, ok := got["2026-01-01"]
	if !ok {
		t.Fatalf("missing entry, got %v", got)
	}
	if ann.Kind != models.DayKindHoliday {
		t.Errorf("kind = %s, want holiday as default", ann.Kind)
	}
}

func TestParse_FirstMatchingKeywordWins(t *testing.T) {
	// FACULTATIVO contains no other keyword, but a header naming both a
	// holiday and an optional day takes the first rule that matches
	got := Parse("FERIADO E PONTO FACULTATIVO\n20/11 - Consciência Negra", 2026)

	if got["2026-11-20"].Kind != models.DayKindHoliday {
		t.Errorf("kind = %s, want holiday (first rule in order)", got["2026-11-20"].Kind)
	}
}

func TestParse_SeparatorVariants(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
		want  string
	}{
		{"dash", "07/09 - Independência", "Independência"},
		{"colon", "07/09: Independência", "Independência"},
		{"none", "07/09 Independência", "Independência"},
		{"en dash", "07/09 – Independência", "Independência"},
		{"inner dash kept", "07/09 - Avaliação - Bimestral", "Avaliação - Bimestral"},
	} {
		got := Parse(tc.input, 2026)
		ann, ok := got["2026-09-07"]
		if !ok {
			t.Errorf("%s: missing entry", tc.name)
			continue
		}
		if ann.Description != tc.want {
			t.Errorf("%s: description = %q, want %q", tc.name, ann.Description, tc.want)
		}
	}
}

func TestParse_DuplicateDateLastWins(t *testing.T) {
	input := `FERIADO
21/04 - Tiradentes
EVENTO
21/04 - Desfile`

	got := Parse(input, 2026)

	if len(got) != 1 {
		t.Fatalf("Parse returned %d entries, want 1", len(got))
	}
	ann := got["2026-04-21"]
	if ann.Kind != models.DayKindEvent || ann.Description != "Desfile" {
		t.Errorf("expected last occurrence to win, got %+v", ann)
	}
}

func TestParse_IgnoresLinesWithoutDates(t *testing.T) {
	input := `CALENDÁRIO ESCOLAR 2026

FERIADO
algum texto solto
12/10 - N. Sra. Aparecida
`

	got := Parse(input, 2026)

	if len(got) != 1 {
		t.Fatalf("Parse returned %d entries, want 1: %v", len(got), got)
	}
	if _, ok := got["2026-10-12"]; !ok {
		t.Error("missing entry for 2026-10-12")
	}
}

func TestParse_EmptyInput(t *testing.T) {
	if got := Parse("", 2026); len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
}
