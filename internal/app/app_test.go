package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blk-generator/internal/config"
	"blk-generator/internal/interfaces"
	"blk-generator/internal/orchestrator"
	"blk-generator/pkg/models"
)

// newRequest returns a noninteractive request isolated in a temp directory
func newRequest(t *testing.T) (*models.GenerateRequest, string) {
	t.Helper()

	dir := t.TempDir()
	request := models.NewGenerateRequest()
	request.ConfigPath = filepath.Join(dir, "missing.toml")
	request.SettingsPath = filepath.Join(dir, "settings.json")
	request.ForceNonInteractive = true

	return request, dir
}

func writeSettings(t *testing.T, path string, values map[string]string) {
	t.Helper()

	data, err := json.Marshal(values)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestResolveInteractiveMode(t *testing.T) {
	tests := []struct {
		name     string
		request  models.GenerateRequest
		cfgValue bool
		expected bool
	}{
		{"config default off", models.GenerateRequest{}, false, false},
		{"config default on", models.GenerateRequest{}, true, true},
		{"force interactive", models.GenerateRequest{ForceInteractive: true}, false, true},
		{"force noninteractive", models.GenerateRequest{ForceNonInteractive: true}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := tt.request
			cfg := &interfaces.Config{InteractiveDefault: tt.cfgValue}

			resolveInteractiveMode(&request, cfg)
			assert.Equal(t, tt.expected, request.Interactive)
		})
	}
}

func TestRun_WritesFile(t *testing.T) {
	request, dir := newRequest(t)
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0755))
	writeSettings(t, request.SettingsPath, map[string]string{"save_path": outDir})

	request.Name = "sight"
	request.Fragment = "line{ line:p4=0, 0, 1, 1; }"
	request.IncludeHorizontalRanges = models.Bool(false)

	require.NoError(t, Run(request))

	data, err := os.ReadFile(filepath.Join(outDir, "sight.blk"))
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasSuffix(content, "}\n"))
	assert.Contains(t, content, "drawLines{\nline{ line:p4=0, 0, 1, 1; }\n}")
	assert.NotContains(t, content, "range:p2=")
}

func TestRun_FragmentFromFile(t *testing.T) {
	request, dir := newRequest(t)
	writeSettings(t, request.SettingsPath, map[string]string{"save_path": dir})

	fragmentPath := filepath.Join(dir, "sight.txt")
	require.NoError(t, os.WriteFile(fragmentPath, []byte("drawLines{\n  line{}\n}\n"), 0644))
	request.FragmentFile = fragmentPath

	require.NoError(t, Run(request))

	data, err := os.ReadFile(filepath.Join(dir, "A_BLKSAVE.blk"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "drawLines{"))
}

func TestRun_MissingFolder(t *testing.T) {
	request, dir := newRequest(t)
	request.Fragment = "x"

	err := Run(request)
	require.Error(t, err)
	assert.ErrorIs(t, err, orchestrator.ErrMissingOutputDirectory)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	for _, entry := range entries {
		assert.NotEqual(t, ".blk", filepath.Ext(entry.Name()), "no file should be written")
	}
}

func TestRun_InvalidTarget(t *testing.T) {
	request, _ := newRequest(t)
	request.Target = "printer"

	err := Run(request)
	require.Error(t, err)
	assert.ErrorIs(t, err, orchestrator.ErrConfigurationInvalid)
}

func TestSetFolderAndShowFolder(t *testing.T) {
	request, dir := newRequest(t)
	outDir := filepath.Join(dir, "sights")
	require.NoError(t, os.Mkdir(outDir, 0755))
	writeSettings(t, request.SettingsPath, map[string]string{"theme": "dark"})

	var before bytes.Buffer
	require.NoError(t, showFolder(&before, request))
	assert.Contains(t, before.String(), "(not set)")

	require.NoError(t, SetFolder(request, outDir))

	data, err := os.ReadFile(request.SettingsPath)
	require.NoError(t, err)
	var stored map[string]string
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, outDir, stored["save_path"])
	assert.Equal(t, "dark", stored["theme"], "unknown keys are preserved")

	var after bytes.Buffer
	require.NoError(t, showFolder(&after, request))
	assert.Contains(t, after.String(), "sights")
}

func TestSetFolder_RejectsMissingDirectory(t *testing.T) {
	request, dir := newRequest(t)

	err := SetFolder(request, filepath.Join(dir, "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, orchestrator.ErrValidationFailed)

	_, statErr := os.Stat(request.SettingsPath)
	assert.True(t, os.IsNotExist(statErr), "settings must not be written")
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, InitConfig(path, false))

	err := InitConfig(path, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfigExists)
	assert.Contains(t, err.Error(), "--force")

	require.NoError(t, InitConfig(path, true))
}

func TestContractPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"home itself", home, "~"},
		{"inside home", filepath.Join(home, "sights"), filepath.Join("~", "sights")},
		{"sibling with shared prefix", home + "-other", home + "-other"},
		{"outside home", "/opt/sights", "/opt/sights"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, contractPath(tt.path))
		})
	}
}

func TestRun_WatchNeedsFile(t *testing.T) {
	request, dir := newRequest(t)
	writeSettings(t, request.SettingsPath, map[string]string{"save_path": dir})
	request.Fragment = "line{}"
	request.Watch = true

	err := Run(request)
	require.Error(t, err)
	assert.ErrorIs(t, err, orchestrator.ErrValidationFailed)
}
