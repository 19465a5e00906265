package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"blk-generator/internal/config"
	"blk-generator/internal/interactive"
	"blk-generator/internal/interfaces"
	"blk-generator/internal/orchestrator"
	"blk-generator/internal/settings"
	"blk-generator/internal/watch"
	"blk-generator/pkg/models"
)

// Run executes the main application logic
func Run(request *models.GenerateRequest) error {
	// Create orchestrator first to load configuration
	orch := orchestrator.New()

	cfg, err := orch.LoadConfiguration(request)
	if err != nil {
		return err
	}

	// Resolve interactive mode based on flags and config
	resolveInteractiveMode(request, cfg)

	current := orch.LoadSettings(cfg)
	_, haveFolder := settings.OutputDirectory(current)

	// Collect missing inputs interactively if needed
	prompter := interactive.NewPrompter()
	folder, err := prompter.CollectMissingInputs(request, cfg, haveFolder)
	if errors.Is(err, interactive.ErrCancelled) {
		fmt.Println("Cancelled")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to collect inputs: %w", err)
	}

	if folder != "" {
		if _, err := orch.SetFolder(cfg, current, folder); err != nil {
			if !orchestrator.IsRecoverableError(err) {
				return err
			}
			// The folder is still used for this run
			orch.Warn(err)
		}
	}

	if err := orch.ResolveFragment(request); err != nil {
		return err
	}

	if _, err := orch.Generate(request, cfg, current); err != nil {
		return err
	}

	if request.Watch {
		return watchFragment(orch, request, cfg, current)
	}

	return nil
}

// watchFragment regenerates the file each time the .txt source changes,
// until interrupted
func watchFragment(orch *orchestrator.Orchestrator, request *models.GenerateRequest, cfg *interfaces.Config, current interfaces.Settings) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n", contractPath(request.FragmentFile))

	regenerate := func() {
		if err := orch.ResolveFragment(request); err != nil {
			orch.Warn(err)
			return
		}
		if _, err := orch.Generate(request, cfg, current); err != nil {
			orch.Warn(err)
		}
	}

	return watch.File(ctx, request.FragmentFile, watch.DefaultSettle, regenerate, func(err error) {
		orch.Warn(fmt.Errorf("file watcher: %w", err))
	})
}

// resolveInteractiveMode determines the final interactive mode based on flags and config
func resolveInteractiveMode(request *models.GenerateRequest, cfg *interfaces.Config) {
	// Priority: explicit flags > config default
	if request.ForceInteractive {
		request.Interactive = true
	} else if request.ForceNonInteractive {
		request.Interactive = false
	} else {
		request.Interactive = cfg.InteractiveDefault
	}
}

// SetFolder stores dir as the save folder for generated files
func SetFolder(request *models.GenerateRequest, dir string) error {
	orch := orchestrator.New()

	cfg, err := orch.LoadConfiguration(request)
	if err != nil {
		return err
	}

	current := orch.LoadSettings(cfg)
	absDir, err := orch.SetFolder(cfg, current, dir)
	if err != nil {
		return err
	}

	fmt.Printf("Save folder set to: %s\n", contractPath(absDir))
	return nil
}

// ShowFolder prints the stored save folder
func ShowFolder(request *models.GenerateRequest) error {
	return showFolder(os.Stdout, request)
}

func showFolder(w io.Writer, request *models.GenerateRequest) error {
	orch := orchestrator.New()

	cfg, err := orch.LoadConfiguration(request)
	if err != nil {
		return err
	}

	dir, ok := settings.OutputDirectory(orch.LoadSettings(cfg))
	if !ok {
		fmt.Fprintf(w, "Save folder: (not set)\n")
		fmt.Fprintf(w, "Run 'blkgen folder <directory>' to choose one.\n")
		return nil
	}

	fmt.Fprintf(w, "Save folder: %s\n", contractPath(dir))
	return nil
}

// InitConfig writes a default configuration file
func InitConfig(path string, force bool) error {
	written, err := config.WriteDefault(path, force)
	if err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return fmt.Errorf("%w (use --force to overwrite)", err)
		}
		return err
	}

	fmt.Printf("Wrote default configuration to %s\n", contractPath(written))
	return nil
}

// contractPath converts a full path back to use ~ for the home directory
func contractPath(path string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return path // Return original path if we can't get home dir
	}

	// Add trailing slash to home directory for proper matching
	homeDirWithSlash := homeDir + string(filepath.Separator)
	pathWithSlash := path + string(filepath.Separator)

	if strings.HasPrefix(pathWithSlash, homeDirWithSlash) {
		relativePath := path[len(homeDir):]
		if relativePath == "" {
			return "~"
		}
		return "~" + relativePath
	}

	return path
}
