package storage

import "github.com/mfbarbosa/eduplan/internal/models"

// DatedAnnotation pairs a calendar date with its annotation, used for
// ordered range queries.
type DatedAnnotation struct {
	Date       string
	Annotation models.DayAnnotation
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Day annotations
	GetDay(date string) (models.DayAnnotation, bool, error)
	UpsertDays(entries map[string]models.DayAnnotation) error
	SetDay(date string, kind models.DayKind, description string) error
	ClearAll() error
	Range(start, end string) ([]DatedAnnotation, error)

	// Utils
	GetConfigPath() string
}
