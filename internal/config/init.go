package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"blk-generator/internal/blk"
	"blk-generator/internal/interfaces"
	"blk-generator/internal/settings"
)

// ErrConfigExists is returned by WriteDefault when the target file exists
var ErrConfigExists = errors.New("config file already exists")

// Defaults returns the configuration used when no file or env override exists
func Defaults() interfaces.Config {
	return interfaces.Config{
		SettingsPath:            settings.DefaultFileName,
		DefaultName:             blk.DefaultFileName,
		NameTemplate:            "{{ .Name }}",
		Target:                  TargetFile,
		InteractiveDefault:      false,
		DrawCentralLineVert:     true,
		DrawCentralLineHorz:     true,
		IncludeHorizontalRanges: true,
	}
}

// WriteDefault writes a config file populated with the default values.
// An existing file is only replaced when force is set.
func WriteDefault(path string, force bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}
	path = expandPath(path)

	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("# blkgen configuration\n")
	buf.WriteString("# Every key can also be set through a BLKGEN_<KEY> environment variable.\n\n")
	if err := toml.NewEncoder(&buf).Encode(Defaults()); err != nil {
		return path, fmt.Errorf("failed to encode default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return path, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return path, fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return path, nil
}
