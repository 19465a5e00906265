package interfaces

// SavePathKey is the settings key holding the output directory
const SavePathKey = "save_path"

// Settings is the persisted user preference record.
// Keys other than SavePathKey are carried through untouched.
type Settings map[string]string

// Get returns the value stored under key
func (s Settings) Get(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

// SettingsStore loads and persists the settings record
type SettingsStore interface {
	// Load reads the record; a missing file yields empty settings and no error
	Load() (Settings, error)

	// Save writes the record, replacing any previous content
	Save(settings Settings) error

	// Path returns the location of the settings file
	Path() string
}
