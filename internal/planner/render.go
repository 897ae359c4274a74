package planner

import (
	"fmt"
	"strings"

	"github.com/mfbarbosa/eduplan/internal/models"
)

const daySeparator = "________________________________________"

// Header carries the report heading fields of a teaching period.
type Header struct {
	Subject    string
	Grade      string
	Classroom  string
	TermNumber string
	TermUnit   string
	Teacher    string
}

// FormatDate reformats an ISO date into the DD/MM shape used in the report.
// An empty date renders as an empty string, not an error.
func FormatDate(date string) string {
	if date == "" {
		return ""
	}
	parts := strings.SplitN(date, "-", 3)
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "/" + parts[1]
}

// Render serializes the plan into the copy-ready report text. It is a pure
// function of its inputs and safe to call on every edit for live preview.
func Render(days []models.SchoolDay, header Header) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📅 Planejamento %s %s – %s – %s %s\n",
		header.TermNumber, header.TermUnit, header.Subject, header.Grade, header.Classroom)
	if header.Teacher != "" {
		fmt.Fprintf(&b, "👨‍🏫 Professor(a): %s\n", header.Teacher)
	}
	b.WriteString("\n")

	for _, day := range days {
		date := FormatDate(day.Date)
		if day.SpecialTitle != "" {
			fmt.Fprintf(&b, "%s – 📋 %s\n", date, day.SpecialTitle)
		} else {
			fmt.Fprintf(&b, "%s\n", date)
		}

		for _, c := range day.Classes {
			fmt.Fprintf(&b, "• %s: %s\n", c.Label, c.Title)
			if c.Theme != "" {
				fmt.Fprintf(&b, "Tema: %s\n", c.Theme)
			}
		}
		b.WriteString(daySeparator + "\n\n")
	}

	return b.String()
}
