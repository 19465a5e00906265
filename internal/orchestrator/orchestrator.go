package orchestrator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/afero"
	"blk-generator/internal/blk"
	"blk-generator/internal/config"
	"blk-generator/internal/interfaces"
	"blk-generator/internal/settings"
	"blk-generator/internal/template"
	"blk-generator/pkg/models"
)

// Orchestrator coordinates all components to generate BLK files
type Orchestrator struct {
	configManager interfaces.ConfigManager
	assembler     interfaces.DocumentAssembler
	nameRenderer  interfaces.NameRenderer
	outputHandler interfaces.OutputHandler

	fs            afero.Fs
	stdin         io.Reader
	stdout        io.Writer
	stderr        io.Writer
	clipboardRead func() (string, error)
	now           func() time.Time
}

// Result describes a completed generation
type Result struct {
	Target  string
	Path    string // empty unless Target is file
	Content string
}

// flagSetter is implemented by config managers that accept flag overrides
type flagSetter interface {
	SetFlag(key string, value interface{})
}

// New creates a new orchestrator with all required components
func New() *Orchestrator {
	readFn := clipboard.ReadAll
	if clipboard.Unsupported {
		readFn = nil
	}

	return &Orchestrator{
		configManager: config.NewManager(),
		assembler:     blk.NewAssembler(),
		nameRenderer:  template.NewRenderer(),
		outputHandler: NewOutputHandler(),
		fs:            afero.NewOsFs(),
		stdin:         os.Stdin,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		clipboardRead: readFn,
		now:           time.Now,
	}
}

// LoadConfiguration loads and resolves configuration with precedence,
// applying the request's command-line overrides
func (o *Orchestrator) LoadConfiguration(request *models.GenerateRequest) (*interfaces.Config, error) {
	configPath := ""
	if request != nil {
		configPath = request.ConfigPath
		o.applyRequestFlags(request)
	}

	// Load configuration from file first
	if _, err := o.configManager.Load(configPath); err != nil {
		return nil, NewConfigurationError("failed to load configuration", err)
	}

	// Apply precedence resolution
	cfg, err := o.configManager.Resolve()
	if err != nil {
		return nil, NewConfigurationError("failed to resolve configuration", err)
	}

	// Validate configuration
	if err := o.configManager.Validate(cfg); err != nil {
		return nil, NewConfigurationError("invalid configuration", err)
	}

	return cfg, nil
}

// applyRequestFlags forwards explicit command-line values to the config manager
func (o *Orchestrator) applyRequestFlags(request *models.GenerateRequest) {
	setter, ok := o.configManager.(flagSetter)
	if !ok {
		return
	}

	setter.SetFlag("settings_path", request.SettingsPath)
	setter.SetFlag("target", request.Target)
	if request.DrawCentralLineVert != nil {
		setter.SetFlag("draw_central_line_vert", *request.DrawCentralLineVert)
	}
	if request.DrawCentralLineHorz != nil {
		setter.SetFlag("draw_central_line_horz", *request.DrawCentralLineHorz)
	}
	if request.IncludeHorizontalRanges != nil {
		setter.SetFlag("include_horizontal_ranges", *request.IncludeHorizontalRanges)
	}
}

// SettingsStore returns the store for the configured settings file
func (o *Orchestrator) SettingsStore(cfg *interfaces.Config) interfaces.SettingsStore {
	return settings.NewStore(o.fs, cfg.SettingsPath)
}

// LoadSettings loads the persisted settings. A corrupted file is reported as
// a warning and replaced by empty settings.
func (o *Orchestrator) LoadSettings(cfg *interfaces.Config) interfaces.Settings {
	store := o.SettingsStore(cfg)

	loaded, err := store.Load()
	if err != nil {
		o.Warn(NewSettingsLoadError(store.Path(), err))
		return interfaces.Settings{}
	}

	return loaded
}

// SetFolder stores a new save folder. The folder must be an existing
// directory; relative paths are made absolute first.
func (o *Orchestrator) SetFolder(cfg *interfaces.Config, current interfaces.Settings, dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return "", NewValidationError("folder", dir, "folder cannot be empty")
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", NewValidationError("folder", dir, err.Error())
	}

	info, err := o.fs.Stat(absDir)
	if err != nil {
		return "", NewValidationError("folder", absDir, "folder does not exist")
	}
	if !info.IsDir() {
		return "", NewValidationError("folder", absDir, "not a directory")
	}

	store := o.SettingsStore(cfg)
	if err := settings.SetOutputDirectory(store, current, absDir); err != nil {
		return absDir, NewSettingsSaveError(store.Path(), err)
	}

	return absDir, nil
}

// ResolveOptions combines the configured toggles with the request overrides
func (o *Orchestrator) ResolveOptions(request *models.GenerateRequest, cfg *interfaces.Config) blk.Options {
	opts := blk.Options{
		DrawCentralLineVert:     cfg.DrawCentralLineVert,
		DrawCentralLineHorz:     cfg.DrawCentralLineHorz,
		IncludeHorizontalRanges: cfg.IncludeHorizontalRanges,
	}

	if request.DrawCentralLineVert != nil {
		opts.DrawCentralLineVert = *request.DrawCentralLineVert
	}
	if request.DrawCentralLineHorz != nil {
		opts.DrawCentralLineHorz = *request.DrawCentralLineHorz
	}
	if request.IncludeHorizontalRanges != nil {
		opts.IncludeHorizontalRanges = *request.IncludeHorizontalRanges
	}

	return opts
}

// ResolveFragment loads the crosshair text from the requested external
// source, replacing any inline text
func (o *Orchestrator) ResolveFragment(request *models.GenerateRequest) error {
	if err := o.validateRequest(request); err != nil {
		return err
	}

	switch {
	case request.FragmentFile != "":
		content, err := afero.ReadFile(o.fs, request.FragmentFile)
		if err != nil {
			return NewFragmentSourceError(request.FragmentFile, err)
		}
		request.Fragment = string(content)

	case request.FromClipboard:
		if o.clipboardRead == nil {
			return NewFragmentSourceError("clipboard", fmt.Errorf("clipboard is not supported on this system"))
		}
		content, err := o.clipboardRead()
		if err != nil {
			return NewFragmentSourceError("clipboard", err)
		}
		request.Fragment = content

	case request.FromStdin:
		content, err := io.ReadAll(o.stdin)
		if err != nil {
			return NewFragmentSourceError("stdin", err)
		}
		request.Fragment = string(content)
	}

	return nil
}

// Generate assembles the document and delivers it to the resolved target
func (o *Orchestrator) Generate(request *models.GenerateRequest, cfg *interfaces.Config, current interfaces.Settings) (*Result, error) {
	if err := o.validateRequest(request); err != nil {
		return nil, err
	}

	opts := o.ResolveOptions(request, cfg)
	content := o.assembler.Assemble(opts, request.Fragment)

	target := request.Target
	if target == "" {
		target = cfg.Target
	}
	if target == "" {
		target = config.TargetFile
	}

	switch target {
	case config.TargetStdout:
		if err := o.outputHandler.WriteToStdout(content); err != nil {
			return nil, NewOutputWriteError(target, err)
		}

	case config.TargetClipboard:
		if err := o.outputHandler.WriteToClipboard(content); err != nil {
			outputErr := NewOutputWriteError(target, err)
			if !IsRecoverableError(outputErr) {
				return nil, outputErr
			}
			fmt.Fprintf(o.stderr, "Warning: %s\nFalling back to stdout:\n\n", outputErr.Error())
			if err := o.outputHandler.WriteToStdout(content); err != nil {
				return nil, NewOutputWriteError(config.TargetStdout, err)
			}
			target = config.TargetStdout
		} else {
			fmt.Fprintln(o.stdout, "BLK file copied to clipboard")
		}

	case config.TargetFile:
		path, err := o.outputPath(request, cfg, current, opts)
		if err != nil {
			return nil, err
		}
		if err := o.outputHandler.WriteToFile(content, path); err != nil {
			return nil, NewOutputWriteError(path, err)
		}
		fmt.Fprintf(o.stdout, "Saved to:\n%s\n", path)
		return &Result{Target: target, Path: path, Content: content}, nil

	default:
		return nil, NewValidationError("target", target, "unsupported output target")
	}

	return &Result{Target: target, Content: content}, nil
}

// outputPath resolves <save folder>/<rendered name>.blk
func (o *Orchestrator) outputPath(request *models.GenerateRequest, cfg *interfaces.Config, current interfaces.Settings, opts blk.Options) (string, error) {
	dir, ok := settings.OutputDirectory(current)
	if !ok {
		return "", NewMissingOutputDirectoryError()
	}

	name := strings.TrimSpace(request.Name)
	if name == "" {
		name = strings.TrimSpace(cfg.DefaultName)
	}
	if name == "" {
		name = blk.DefaultFileName
	}

	nameTemplate := cfg.NameTemplate
	if strings.TrimSpace(nameTemplate) == "" {
		nameTemplate = "{{ .Name }}"
	}

	fileName, err := o.nameRenderer.Render(nameTemplate, interfaces.NameData{
		Name:   name,
		Now:    o.now(),
		Vert:   opts.DrawCentralLineVert,
		Horz:   opts.DrawCentralLineHorz,
		Ranges: opts.IncludeHorizontalRanges,
	})
	if err != nil {
		return "", NewValidationError("name", name, err.Error())
	}

	return filepath.Join(dir, fileName+blk.FileExtension), nil
}

// validateRequest validates the generation request
func (o *Orchestrator) validateRequest(request *models.GenerateRequest) error {
	if request == nil {
		return NewValidationError("request", nil, "request cannot be nil")
	}

	sources := 0
	for _, set := range []bool{request.FragmentFile != "", request.FromClipboard, request.FromStdin} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return NewValidationError("fragment_source", sources, "multiple crosshair text sources")
	}

	if request.Watch && request.FragmentFile == "" {
		return NewValidationError("watch", request.Watch, "needs a --file source")
	}

	if request.Target != "" {
		switch request.Target {
		case config.TargetFile, config.TargetStdout, config.TargetClipboard:
		default:
			return NewValidationError("target", request.Target, "must be 'file', 'stdout', or 'clipboard'")
		}
	}

	return nil
}

// Warn reports a non-fatal error on stderr
func (o *Orchestrator) Warn(err error) {
	fmt.Fprintf(o.stderr, "Warning: %s\n", err.Error())
}
