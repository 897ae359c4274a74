package models

import (
	"fmt"
	"time"
)

type DayKind string

const (
	DayKindNormal   DayKind = "normal"
	DayKindWeekend  DayKind = "weekend"
	DayKindHoliday  DayKind = "holiday"
	DayKindOptional DayKind = "optional"
	DayKindExam     DayKind = "exam"
	DayKindEvent    DayKind = "event"
	DayKindSpecial  DayKind = "special"
)

// DateFormat is the store key format for calendar dates.
const DateFormat = "2006-01-02"

// DayAnnotation marks a calendar date with a special day kind. Normal days
// are never stored explicitly; absence of a key means "normal" (or "weekend",
// derived from the date itself).
type DayAnnotation struct {
	Kind        DayKind `json:"kind"`
	Description string  `json:"description"`
}

func ParseDayKind(s string) (DayKind, error) {
	switch DayKind(s) {
	case DayKindNormal, DayKindWeekend, DayKindHoliday, DayKindOptional,
		DayKindExam, DayKindEvent, DayKindSpecial:
		return DayKind(s), nil
	}
	return "", fmt.Errorf("unknown day kind: %q", s)
}

// KindForDate resolves the effective kind of a date: an explicit annotation
// wins, otherwise Saturday/Sunday derive "weekend" and everything else is
// "normal". The derived kinds are computed at read time, never persisted.
func KindForDate(date string, ann *DayAnnotation) DayKind {
	if ann != nil {
		return ann.Kind
	}
	d, err := time.Parse(DateFormat, date)
	if err != nil {
		return DayKindNormal
	}
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return DayKindWeekend
	}
	return DayKindNormal
}
