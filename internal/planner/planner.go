// Package planner holds the in-memory lesson plan and its pure mutation
// operations. Every operation returns a new slice and never touches its
// input, which keeps change detection in the TUI trivial.
package planner

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mfbarbosa/eduplan/internal/models"
)

type DayField string

const (
	DayFieldDate         DayField = "date"
	DayFieldSpecialTitle DayField = "specialTitle"
)

type ClassField string

const (
	ClassFieldLabel ClassField = "label"
	ClassFieldTitle ClassField = "title"
	ClassFieldTheme ClassField = "theme"
)

// NewClassSlot returns an empty slot labeled with the given 1-based ordinal.
func NewClassSlot(ordinal int) models.ClassSlot {
	return models.ClassSlot{
		ID:    uuid.NewString(),
		Label: fmt.Sprintf("Aula %d", ordinal),
	}
}

// AddDay appends an empty unscheduled day holding a single empty class slot.
func AddDay(days []models.SchoolDay) []models.SchoolDay {
	out := make([]models.SchoolDay, len(days), len(days)+1)
	copy(out, days)
	return append(out, models.SchoolDay{
		ID:      uuid.NewString(),
		Classes: []models.ClassSlot{NewClassSlot(1)},
	})
}

// RemoveDay drops the day with the given id; unknown ids are a no-op.
func RemoveDay(days []models.SchoolDay, dayID string) []models.SchoolDay {
	out := make([]models.SchoolDay, 0, len(days))
	for _, d := range days {
		if d.ID != dayID {
			out = append(out, d)
		}
	}
	return out
}

// UpdateDay replaces one field on the matching day.
func UpdateDay(days []models.SchoolDay, dayID string, field DayField, value string) []models.SchoolDay {
	out := make([]models.SchoolDay, len(days))
	copy(out, days)
	for i, d := range out {
		if d.ID != dayID {
			continue
		}
		switch field {
		case DayFieldDate:
			d.Date = value
		case DayFieldSpecialTitle:
			d.SpecialTitle = value
		}
		out[i] = d
	}
	return out
}

// AddClass appends a slot to the named day. The default label encodes the
// slot's 1-based position at append time; labels are deliberately not
// renumbered after later removals, since the teacher may have edited them.
func AddClass(days []models.SchoolDay, dayID string) []models.SchoolDay {
	out := make([]models.SchoolDay, len(days))
	copy(out, days)
	for i, d := range out {
		if d.ID != dayID {
			continue
		}
		classes := make([]models.ClassSlot, len(d.Classes), len(d.Classes)+1)
		copy(classes, d.Classes)
		d.Classes = append(classes, NewClassSlot(len(d.Classes)+1))
		out[i] = d
	}
	return out
}

// RemoveClass drops the slot with the given id from the named day.
func RemoveClass(days []models.SchoolDay, dayID, classID string) []models.SchoolDay {
	out := make([]models.SchoolDay, len(days))
	copy(out, days)
	for i, d := range out {
		if d.ID != dayID {
			continue
		}
		classes := make([]models.ClassSlot, 0, len(d.Classes))
		for _, c := range d.Classes {
			if c.ID != classID {
				classes = append(classes, c)
			}
		}
		d.Classes = classes
		out[i] = d
	}
	return out
}

// UpdateClass replaces one field on the matching slot of the named day.
func UpdateClass(days []models.SchoolDay, dayID, classID string, field ClassField, value string) []models.SchoolDay {
	out := make([]models.SchoolDay, len(days))
	copy(out, days)
	for i, d := range out {
		if d.ID != dayID {
			continue
		}
		classes := make([]models.ClassSlot, len(d.Classes))
		copy(classes, d.Classes)
		for j, c := range classes {
			if c.ID != classID {
				continue
			}
			switch field {
			case ClassFieldLabel:
				c.Label = value
			case ClassFieldTitle:
				c.Title = value
			case ClassFieldTheme:
				c.Theme = value
			}
			classes[j] = c
		}
		d.Classes = classes
		out[i] = d
	}
	return out
}

// ReplaceAll swaps the whole plan for a freshly generated one.
func ReplaceAll(newDays []models.SchoolDay) []models.SchoolDay {
	out := make([]models.SchoolDay, len(newDays))
	copy(out, newDays)
	return out
}
