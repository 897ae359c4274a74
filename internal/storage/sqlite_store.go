package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mfbarbosa/eduplan/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS annotations (
	date        TEXT PRIMARY KEY,
	kind        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS settings (
	id              INTEGER PRIMARY KEY CHECK (id = 1),
	subject         TEXT NOT NULL,
	grade           TEXT NOT NULL,
	classroom       TEXT NOT NULL,
	term_number     TEXT NOT NULL,
	term_unit       TEXT NOT NULL,
	teacher         TEXT NOT NULL,
	classes_per_day INTEGER NOT NULL,
	import_year     INTEGER NOT NULL
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed default settings if not present
	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'eduplan init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema creation is idempotent; an older or hand-made file gains the
	// missing tables instead of failing every later call.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (Settings, error) {
	if s.db == nil {
		return Settings{}, fmt.Errorf("storage not loaded")
	}

	var settings Settings
	err := s.db.QueryRow(`
		SELECT subject, grade, classroom, term_number, term_unit, teacher, classes_per_day, import_year
		FROM settings WHERE id = 1
	`).Scan(&settings.Subject, &settings.Grade, &settings.Classroom,
		&settings.TermNumber, &settings.TermUnit, &settings.Teacher,
		&settings.ClassesPerDay, &settings.ImportYear)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings Settings) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec(`
		INSERT INTO settings (id, subject, grade, classroom, term_number, term_unit, teacher, classes_per_day, import_year)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			subject = excluded.subject,
			grade = excluded.grade,
			classroom = excluded.classroom,
			term_number = excluded.term_number,
			term_unit = excluded.term_unit,
			teacher = excluded.teacher,
			classes_per_day = excluded.classes_per_day,
			import_year = excluded.import_year
	`, settings.Subject, settings.Grade, settings.Classroom, settings.TermNumber,
		settings.TermUnit, settings.Teacher, settings.ClassesPerDay, settings.ImportYear)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}

func (s *SQLiteStore) GetDay(date string) (models.DayAnnotation, bool, error) {
	if s.db == nil {
		return models.DayAnnotation{}, false, fmt.Errorf("storage not loaded")
	}

	var ann models.DayAnnotation
	err := s.db.QueryRow(`SELECT kind, description FROM annotations WHERE date = ?`, date).
		Scan(&ann.Kind, &ann.Description)
	if err == sql.ErrNoRows {
		return models.DayAnnotation{}, false, nil
	}
	if err != nil {
		return models.DayAnnotation{}, false, fmt.Errorf("failed to get annotation: %w", err)
	}

	return ann, true, nil
}

func (s *SQLiteStore) UpsertDays(entries map[string]models.DayAnnotation) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for date, ann := range entries {
		if _, err := tx.Exec(`
			INSERT INTO annotations (date, kind, description) VALUES (?, ?, ?)
			ON CONFLICT(date) DO UPDATE SET kind = excluded.kind, description = excluded.description
		`, date, string(ann.Kind), ann.Description); err != nil {
			return fmt.Errorf("failed to upsert annotation for %s: %w", date, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) SetDay(date string, kind models.DayKind, description string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	if kind == models.DayKindNormal {
		if _, err := s.db.Exec(`DELETE FROM annotations WHERE date = ?`, date); err != nil {
			return fmt.Errorf("failed to delete annotation: %w", err)
		}
		return nil
	}

	return s.UpsertDays(map[string]models.DayAnnotation{
		date: {Kind: kind, Description: description},
	})
}

func (s *SQLiteStore) ClearAll() error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, err := s.db.Exec(`DELETE FROM annotations`); err != nil {
		return fmt.Errorf("failed to clear annotations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Range(start, end string) ([]DatedAnnotation, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`SELECT date, kind, description FROM annotations`)
	if err != nil {
		return nil, fmt.Errorf("failed to query annotations: %w", err)
	}
	defer rows.Close()

	annotations := make(map[string]models.DayAnnotation)
	for rows.Next() {
		var date string
		var ann models.DayAnnotation
		if err := rows.Scan(&date, &ann.Kind, &ann.Description); err != nil {
			return nil, fmt.Errorf("failed to scan annotation: %w", err)
		}
		annotations[date] = ann
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read annotations: %w", err)
	}

	// The window filter parses dates instead of trusting key order, same as
	// the JSON provider, so both providers agree on boundary semantics.
	return rangeOf(annotations, start, end)
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
