package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"blk-generator/internal/interfaces"
	nametemplate "blk-generator/internal/template"
)

// Output targets accepted by the target setting
const (
	TargetFile      = "file"
	TargetStdout    = "stdout"
	TargetClipboard = "clipboard"
)

// Manager implements the ConfigManager interface
type Manager struct {
	v     *viper.Viper
	flags map[string]interface{} // Store flag values for precedence
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("BLKGEN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	setDefaults(v)

	return &Manager{
		v:     v,
		flags: make(map[string]interface{}),
	}
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("settings_path", d.SettingsPath)
	v.SetDefault("default_name", d.DefaultName)
	v.SetDefault("name_template", d.NameTemplate)
	v.SetDefault("target", d.Target)
	v.SetDefault("interactive_default", d.InteractiveDefault)
	v.SetDefault("draw_central_line_vert", d.DrawCentralLineVert)
	v.SetDefault("draw_central_line_horz", d.DrawCentralLineHorz)
	v.SetDefault("include_horizontal_ranges", d.IncludeHorizontalRanges)
}

// DefaultPath returns ~/.config/blkgen/config.toml
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "blkgen", "config.toml"), nil
}

// Load loads configuration from the specified path
func (m *Manager) Load(path string) (*interfaces.Config, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	path = expandPath(path)

	// Check if config file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Config file doesn't exist, use defaults
		return m.getConfigFromViper(), nil
	}

	m.v.SetConfigFile(path)

	if err := m.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return m.getConfigFromViper(), nil
}

// SetFlag sets a flag value for precedence resolution
func (m *Manager) SetFlag(key string, value interface{}) {
	m.flags[key] = value
}

// Resolve applies precedence rules (flags > env > config > defaults)
func (m *Manager) Resolve() (*interfaces.Config, error) {
	config := m.getConfigFromViper()

	// Apply flag overrides (highest precedence)
	m.applyFlagOverrides(config)

	return config, nil
}

// applyFlagOverrides applies flag values over the configuration
func (m *Manager) applyFlagOverrides(config *interfaces.Config) {
	if str, ok := m.stringFlag("settings_path"); ok {
		config.SettingsPath = expandPath(str)
	}

	if str, ok := m.stringFlag("default_name"); ok {
		config.DefaultName = str
	}

	if str, ok := m.stringFlag("name_template"); ok {
		config.NameTemplate = str
	}

	if str, ok := m.stringFlag("target"); ok {
		config.Target = str
	}

	if b, ok := m.boolFlag("interactive_default"); ok {
		config.InteractiveDefault = b
	}

	if b, ok := m.boolFlag("draw_central_line_vert"); ok {
		config.DrawCentralLineVert = b
	}

	if b, ok := m.boolFlag("draw_central_line_horz"); ok {
		config.DrawCentralLineHorz = b
	}

	if b, ok := m.boolFlag("include_horizontal_ranges"); ok {
		config.IncludeHorizontalRanges = b
	}
}

func (m *Manager) stringFlag(key string) (string, bool) {
	val, exists := m.flags[key]
	if !exists || val == nil {
		return "", false
	}
	str, ok := val.(string)
	if !ok || str == "" {
		return "", false
	}
	return str, true
}

func (m *Manager) boolFlag(key string) (bool, bool) {
	val, exists := m.flags[key]
	if !exists || val == nil {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// Validate validates the configuration values
func (m *Manager) Validate(config *interfaces.Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	// Validate target
	validTargets := map[string]bool{
		TargetFile:      true,
		TargetStdout:    true,
		TargetClipboard: true,
	}
	if !validTargets[config.Target] {
		return fmt.Errorf("invalid target: %s (must be 'file', 'stdout', or 'clipboard')", config.Target)
	}

	if strings.TrimSpace(config.SettingsPath) == "" {
		return fmt.Errorf("settings_path cannot be empty")
	}

	// The default name ends up as a file name inside the save folder
	name := strings.TrimSpace(config.DefaultName)
	if name == "" {
		return fmt.Errorf("default_name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid default_name: %s (must not contain path separators)", name)
	}

	if strings.TrimSpace(config.NameTemplate) == "" {
		return fmt.Errorf("name_template cannot be empty")
	}
	if err := nametemplate.Validate(config.NameTemplate); err != nil {
		return fmt.Errorf("invalid name_template: %w", err)
	}

	return nil
}

// getConfigFromViper converts viper configuration to Config struct
// This handles env > config > defaults precedence (flags are applied separately)
func (m *Manager) getConfigFromViper() *interfaces.Config {
	return &interfaces.Config{
		SettingsPath:            expandPath(m.v.GetString("settings_path")),
		DefaultName:             m.v.GetString("default_name"),
		NameTemplate:            m.v.GetString("name_template"),
		Target:                  m.v.GetString("target"),
		InteractiveDefault:      m.v.GetBool("interactive_default"),
		DrawCentralLineVert:     m.v.GetBool("draw_central_line_vert"),
		DrawCentralLineHorz:     m.v.GetBool("draw_central_line_horz"),
		IncludeHorizontalRanges: m.v.GetBool("include_horizontal_ranges"),
	}
}

// expandPath expands ~ to user home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if we can't get home dir
	}

	return filepath.Join(homeDir, path[2:])
}
