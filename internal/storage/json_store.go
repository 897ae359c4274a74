package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mfbarbosa/eduplan/internal/logger"
	"github.com/mfbarbosa/eduplan/internal/models"
)

type Store struct {
	Version     int                             `json:"version"`
	Settings    Settings                        `json:"settings"`
	Annotations map[string]models.DayAnnotation `json:"annotations"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:     1,
		Settings:    DefaultSettings(),
		Annotations: make(map[string]models.DayAnnotation),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'eduplan init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		// Corrupt payload is not fatal: log it and start from an empty
		// calendar so the tool stays usable.
		logger.Warn("discarding unreadable storage payload", "path", s.path, "err", err)
		s.store = &Store{
			Version:  1,
			Settings: DefaultSettings(),
		}
	}

	if s.store.Annotations == nil {
		s.store.Annotations = make(map[string]models.DayAnnotation)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save rewrites the whole store. Write-to-temp plus rename keeps the file
// intact if the process dies mid-write.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (Settings, error) {
	if s.store == nil {
		return Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) GetDay(date string) (models.DayAnnotation, bool, error) {
	if s.store == nil {
		return models.DayAnnotation{}, false, fmt.Errorf("storage not loaded")
	}

	ann, ok := s.store.Annotations[date]
	return ann, ok, nil
}

func (s *JSONStore) UpsertDays(entries map[string]models.DayAnnotation) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	for date, ann := range entries {
		s.store.Annotations[date] = ann
	}
	return s.save()
}

// SetDay upserts a single annotation. Setting a date back to normal removes
// the key instead, so the store only ever holds the annotated days.
func (s *JSONStore) SetDay(date string, kind models.DayKind, description string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if kind == models.DayKindNormal {
		delete(s.store.Annotations, date)
	} else {
		s.store.Annotations[date] = models.DayAnnotation{Kind: kind, Description: description}
	}
	return s.save()
}

func (s *JSONStore) ClearAll() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Annotations = make(map[string]models.DayAnnotation)
	return s.save()
}

func (s *JSONStore) Range(start, end string) ([]DatedAnnotation, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	return rangeOf(s.store.Annotations, start, end)
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
