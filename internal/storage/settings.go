package storage

import (
	"sort"
	"time"

	"github.com/mfbarbosa/eduplan/internal/models"
)

// Settings holds the durable form defaults used to pre-fill the planning
// form and the batch importer.
type Settings struct {
	Subject       string `json:"subject"`
	Grade         string `json:"grade"`
	Classroom     string `json:"classroom"`
	TermNumber    string `json:"term_number"`
	TermUnit      string `json:"term_unit"`
	Teacher       string `json:"teacher"`
	ClassesPerDay int    `json:"classes_per_day"`
	ImportYear    int    `json:"import_year"`
}

func DefaultSettings() Settings {
	return Settings{
		Subject:       "Geografia",
		Grade:         "6° ano",
		Classroom:     "B",
		TermNumber:    "1º",
		TermUnit:      "Bimestre",
		ClassesPerDay: 2,
		ImportYear:    2026,
	}
}

// rangeOf filters a date-keyed annotation map to the inclusive window
// [start, end] and returns the survivors in ascending calendar order. Keys
// are compared as parsed dates, not as strings, so padding or odd key
// formats cannot reorder results; malformed keys are skipped.
func rangeOf(annotations map[string]models.DayAnnotation, start, end string) ([]DatedAnnotation, error) {
	startDate, err := time.Parse(models.DateFormat, start)
	if err != nil {
		return nil, err
	}
	endDate, err := time.Parse(models.DateFormat, end)
	if err != nil {
		return nil, err
	}

	type dated struct {
		t   time.Time
		ann DatedAnnotation
	}
	var inRange []dated
	for date, ann := range annotations {
		d, err := time.Parse(models.DateFormat, date)
		if err != nil {
			continue
		}
		if d.Before(startDate) || d.After(endDate) {
			continue
		}
		inRange = append(inRange, dated{t: d, ann: DatedAnnotation{Date: date, Annotation: ann}})
	}

	sort.Slice(inRange, func(i, j int) bool {
		return inRange[i].t.Before(inRange[j].t)
	})

	result := make([]DatedAnnotation, 0, len(inRange))
	for _, d := range inRange {
		result = append(result, d.ann)
	}
	return result, nil
}
