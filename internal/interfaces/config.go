package interfaces

// Config represents the application configuration
type Config struct {
	SettingsPath            string `toml:"settings_path"`
	DefaultName             string `toml:"default_name"`
	NameTemplate            string `toml:"name_template"`
	Target                  string `toml:"target"`
	InteractiveDefault      bool   `toml:"interactive_default"`
	DrawCentralLineVert     bool   `toml:"draw_central_line_vert"`
	DrawCentralLineHorz     bool   `toml:"draw_central_line_horz"`
	IncludeHorizontalRanges bool   `toml:"include_horizontal_ranges"`
}

// ConfigManager handles configuration loading and resolution
type ConfigManager interface {
	// Load loads configuration from the specified path
	Load(path string) (*Config, error)

	// Resolve applies precedence rules (flags > env > config > defaults)
	Resolve() (*Config, error)

	// Validate validates the configuration values
	Validate(config *Config) error
}
