package interfaces

import (
	"testing"
	"time"

	"blk-generator/internal/blk"
)

// Test that all interfaces can be implemented (compilation test)
func TestInterfaceCompilation(t *testing.T) {
	config := &Config{
		SettingsPath:            "settings.json",
		DefaultName:             "A_BLKSAVE",
		NameTemplate:            "{{ .Name }}",
		Target:                  "file",
		DrawCentralLineVert:     true,
		DrawCentralLineHorz:     true,
		IncludeHorizontalRanges: true,
	}

	nameData := &NameData{
		Name:   "sight",
		Now:    time.Now(),
		Vert:   true,
		Horz:   false,
		Ranges: true,
	}

	settings := Settings{SavePathKey: "/out"}

	if config == nil || nameData == nil || settings == nil {
		t.Error("Failed to create interface data structures")
	}
}

func TestSettings_Get(t *testing.T) {
	settings := Settings{SavePathKey: "/out", "theme": "dark"}

	if v, ok := settings.Get(SavePathKey); !ok || v != "/out" {
		t.Errorf("Get(%q) = %q, %v, expected /out, true", SavePathKey, v, ok)
	}
	if _, ok := settings.Get("missing"); ok {
		t.Error("Get(missing) reported a value")
	}

	var empty Settings
	if _, ok := empty.Get(SavePathKey); ok {
		t.Error("Get on nil settings reported a value")
	}
}

// Mock implementations to verify interfaces are properly defined
type mockConfigManager struct{}

func (m *mockConfigManager) Load(path string) (*Config, error) {
	return &Config{}, nil
}

func (m *mockConfigManager) Resolve() (*Config, error) {
	return &Config{}, nil
}

func (m *mockConfigManager) Validate(config *Config) error {
	return nil
}

type mockSettingsStore struct{}

func (m *mockSettingsStore) Load() (Settings, error) {
	return Settings{}, nil
}

func (m *mockSettingsStore) Save(settings Settings) error {
	return nil
}

func (m *mockSettingsStore) Path() string {
	return "settings.json"
}

type mockNameRenderer struct{}

func (m *mockNameRenderer) Render(nameTemplate string, data NameData) (string, error) {
	return data.Name, nil
}

type mockOutputHandler struct{}

func (m *mockOutputHandler) WriteToClipboard(content string) error {
	return nil
}

func (m *mockOutputHandler) WriteToStdout(content string) error {
	return nil
}

func (m *mockOutputHandler) WriteToFile(content string, path string) error {
	return nil
}

// Test that mock implementations satisfy interfaces
func TestInterfaceImplementations(t *testing.T) {
	var _ ConfigManager = &mockConfigManager{}
	var _ SettingsStore = &mockSettingsStore{}
	var _ NameRenderer = &mockNameRenderer{}
	var _ OutputHandler = &mockOutputHandler{}
	var _ DocumentAssembler = blk.NewAssembler()
}
