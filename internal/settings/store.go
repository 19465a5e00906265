package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"blk-generator/internal/interfaces"
)

// DefaultFileName is the settings file used when none is configured.
// It is resolved relative to the working directory.
const DefaultFileName = "settings.json"

// Store implements the SettingsStore interface on top of an afero filesystem
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore creates a settings store for the given file
func NewStore(fsys afero.Fs, path string) *Store {
	if path == "" {
		path = DefaultFileName
	}
	return &Store{
		fs:   fsys,
		path: path,
	}
}

// Path returns the location of the settings file
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings record.
//
// A missing file is not an error. A file that cannot be read or parsed
// yields empty settings together with the error so the caller can warn
// and keep going.
func (s *Store) Load() (interfaces.Settings, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return interfaces.Settings{}, nil
		}
		return interfaces.Settings{}, fmt.Errorf("failed to read settings file %s: %w", s.path, err)
	}

	var settings interfaces.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return interfaces.Settings{}, fmt.Errorf("failed to parse settings file %s: %w", s.path, err)
	}
	if settings == nil {
		settings = interfaces.Settings{}
	}

	return settings, nil
}

// Save writes the settings record as indented JSON with sorted keys
func (s *Store) Save(settings interfaces.Settings) error {
	if settings == nil {
		settings = interfaces.Settings{}
	}

	data, err := json.MarshalIndent(settings, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create settings directory %s: %w", dir, err)
		}
	}

	if err := afero.WriteFile(s.fs, s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file %s: %w", s.path, err)
	}

	return nil
}

// OutputDirectory returns the configured save folder, if any
func OutputDirectory(settings interfaces.Settings) (string, bool) {
	dir, ok := settings.Get(interfaces.SavePathKey)
	if !ok || strings.TrimSpace(dir) == "" {
		return "", false
	}
	return dir, true
}

// SetOutputDirectory records a new save folder and persists it immediately.
// The in-memory settings keep the new value even when saving fails.
func SetOutputDirectory(store interfaces.SettingsStore, settings interfaces.Settings, dir string) error {
	settings[interfaces.SavePathKey] = dir
	return store.Save(settings)
}
