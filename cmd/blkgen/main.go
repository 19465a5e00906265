package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"blk-generator/internal/app"
	"blk-generator/pkg/models"
)

// Build-time variables injected via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	date      = "unknown"
	goVersion = runtime.Version()
)

// stdinIsTerminal reports whether crosshair text could be piped in
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var rootCmd = &cobra.Command{
	Use:   "blkgen [name]",
	Short: "Generate War Thunder crosshair .blk files",
	Long: `blkgen writes a complete crosshair .blk file: a fixed header with the
central line switches, the crosshair_distances and crosshair_hor_ranges
tables, the matchExpClass block, and your own drawLines code.

The crosshair code can be typed with --fragment, loaded from a .txt file with
--file, read from the clipboard with --clipboard, or piped in with --stdin
(or --fragment -). The file is saved as <save folder>/<name>.blk; name
defaults to A_BLKSAVE. Choose the save folder once with 'blkgen folder <dir>'.

Interactive mode can be controlled via config (interactive_default), overridden with
-i (force interactive) or -y (force non-interactive).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check if version flag is set
		if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
			versionCmd.Run(cmd, args)
			return nil
		}

		request, err := buildRequestFromFlags(cmd, args)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		return app.Run(request)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print detailed version information including build version, commit, date, and platform details.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("blkgen version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		fmt.Printf("  go version: %s\n", goVersion)
		fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

var folderCmd = &cobra.Command{
	Use:   "folder [directory]",
	Short: "Show or choose the save folder",
	Long:  "Without an argument, print the folder generated files are saved to. With a directory, remember it as the new save folder.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := baseRequest(cmd)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			return app.ShowFolder(request)
		}
		return app.SetFolder(request, args[0])
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long:  "Write config.toml with every option at its default value, at --config or ~/.config/blkgen/config.toml.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		force, _ := cmd.Flags().GetBool("force")

		return app.InitConfig(configPath, force)
	},
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(folderCmd)
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().Bool("force", false, "overwrite an existing config file")

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default ~/.config/blkgen/config.toml)")
	rootCmd.PersistentFlags().String("settings", "", "settings file path (default settings.json)")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "noninteractive mode - use defaults without prompts")
	rootCmd.PersistentFlags().BoolP("interactive", "i", false, "force interactive mode (overrides config default)")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "print version information")

	// Main command flags
	rootCmd.Flags().StringP("fragment", "t", "", "crosshair code (bare directives or a drawLines{...} block), - reads stdin")
	rootCmd.Flags().StringP("file", "f", "", "load crosshair code from a .txt file")
	rootCmd.Flags().BoolP("clipboard", "b", false, "read crosshair code from the clipboard")
	rootCmd.Flags().Bool("stdin", false, "read crosshair code from standard input")
	rootCmd.Flags().Bool("no-vert", false, "do not draw the vertical central line")
	rootCmd.Flags().Bool("no-horz", false, "do not draw the horizontal central line")
	rootCmd.Flags().Bool("no-ranges", false, "leave the crosshair_hor_ranges block empty")
	rootCmd.Flags().String("target", "", "output target (file, stdout, clipboard)")
	rootCmd.Flags().BoolP("watch", "w", false, "regenerate whenever the --file source changes")
}

// baseRequest reads the flags shared by every command
func baseRequest(cmd *cobra.Command) (*models.GenerateRequest, error) {
	request := models.NewGenerateRequest()

	var err error
	if request.ConfigPath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}

	if request.SettingsPath, err = cmd.Flags().GetString("settings"); err != nil {
		return nil, fmt.Errorf("invalid settings flag: %w", err)
	}

	return request, nil
}

// buildRequestFromFlags constructs a GenerateRequest from command flags and arguments
func buildRequestFromFlags(cmd *cobra.Command, args []string) (*models.GenerateRequest, error) {
	request, err := baseRequest(cmd)
	if err != nil {
		return nil, err
	}

	// Get file name from positional argument
	if len(args) > 0 {
		request.Name = strings.TrimSpace(args[0])
	}

	// Handle interactive mode flags
	if request.ForceNonInteractive, err = cmd.Flags().GetBool("yes"); err != nil {
		return nil, fmt.Errorf("invalid yes flag: %w", err)
	}

	if request.ForceInteractive, err = cmd.Flags().GetBool("interactive"); err != nil {
		return nil, fmt.Errorf("invalid interactive flag: %w", err)
	}

	// Validate that both flags are not set
	if request.ForceInteractive && request.ForceNonInteractive {
		return nil, fmt.Errorf("cannot use both --interactive and --yes flags")
	}

	// Set initial interactive mode (will be resolved after config loading)
	request.Interactive = true

	if request.Fragment, err = cmd.Flags().GetString("fragment"); err != nil {
		return nil, fmt.Errorf("invalid fragment flag: %w", err)
	}

	if request.FragmentFile, err = cmd.Flags().GetString("file"); err != nil {
		return nil, fmt.Errorf("invalid file flag: %w", err)
	}

	if request.FromClipboard, err = cmd.Flags().GetBool("clipboard"); err != nil {
		return nil, fmt.Errorf("invalid clipboard flag: %w", err)
	}

	if request.FromStdin, err = cmd.Flags().GetBool("stdin"); err != nil {
		return nil, fmt.Errorf("invalid stdin flag: %w", err)
	}

	// "--fragment -" is shorthand for --stdin
	if request.Fragment == "-" {
		request.Fragment = ""
		request.FromStdin = true
	}

	// Piped input is used when no other source was named
	noSource := request.Fragment == "" && request.FragmentFile == "" && !request.FromClipboard && !request.FromStdin
	if noSource && !request.ForceInteractive && !stdinIsTerminal() {
		request.FromStdin = true
	}

	if request.Target, err = cmd.Flags().GetString("target"); err != nil {
		return nil, fmt.Errorf("invalid target flag: %w", err)
	}

	if request.Watch, err = cmd.Flags().GetBool("watch"); err != nil {
		return nil, fmt.Errorf("invalid watch flag: %w", err)
	}

	// Toggles stay nil unless given, so config defaults and prompts still apply
	toggles := []struct {
		flag  string
		field **bool
	}{
		{"no-vert", &request.DrawCentralLineVert},
		{"no-horz", &request.DrawCentralLineHorz},
		{"no-ranges", &request.IncludeHorizontalRanges},
	}
	for _, toggle := range toggles {
		if !cmd.Flags().Changed(toggle.flag) {
			continue
		}
		disabled, err := cmd.Flags().GetBool(toggle.flag)
		if err != nil {
			return nil, fmt.Errorf("invalid %s flag: %w", toggle.flag, err)
		}
		*toggle.field = models.Bool(!disabled)
	}

	return request, nil
}

func main() {
	// Disable usage on error to show only our custom error messages
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
