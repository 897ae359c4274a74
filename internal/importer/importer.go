// Package importer turns a pasted block of school-calendar text (official
// holiday lists, exam schedules, event bulletins) into day annotations.
package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mfbarbosa/eduplan/internal/models"
)

// categoryRule maps a keyword substring to the category it switches to.
// Rules are checked in order and the first match wins, so a line containing
// more than one keyword resolves deterministically. A match is sticky: it
// applies to every following line until another keyword shows up.
type categoryRule struct {
	keyword string
	kind    models.DayKind
}

var categoryRules = []categoryRule{
	{"FERIADO", models.DayKindHoliday},
	{"FACULTATIVO", models.DayKindOptional},
	{"PROVA", models.DayKindExam},
	{"EVENTO", models.DayKindEvent},
}

var (
	datePattern = regexp.MustCompile(`(\d{2})/(\d{2})`)
	// Everything up to and including the first dd/mm occurrence, plus at
	// most one separator in front of the description.
	datePrefixPattern = regexp.MustCompile(`^.*?\d{2}/\d{2}\s*[-–—:]?`)
)

// Parse scans text line by line and produces annotation upserts keyed by ISO
// date. Dates are dd/mm and are resolved against the given target year.
// Lines without a date only switch the current category; lines with a date
// before any keyword line fall into the default holiday category. When the
// same date appears twice, the last line wins.
func Parse(text string, year int) map[string]models.DayAnnotation {
	entries := make(map[string]models.DayAnnotation)
	kind := models.DayKindHoliday

	for _, line := range strings.Split(text, "\n") {
		upper := strings.ToUpper(line)
		for _, rule := range categoryRules {
			if strings.Contains(upper, rule.keyword) {
				kind = rule.kind
				break
			}
		}

		m := datePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		date := fmt.Sprintf("%d-%s-%s", year, m[2], m[1])
		desc := strings.TrimSpace(datePrefixPattern.ReplaceAllString(line, ""))
		entries[date] = models.DayAnnotation{Kind: kind, Description: desc}
	}

	return entries
}
