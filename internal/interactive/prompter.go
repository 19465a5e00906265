package interactive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/term"
	"blk-generator/internal/blk"
	"blk-generator/internal/config"
	"blk-generator/internal/interfaces"
	"blk-generator/pkg/models"
)

// ErrCancelled is returned when the user declines the confirmation summary
var ErrCancelled = errors.New("generation cancelled")

// Crosshair code sources offered when no text was provided
const (
	sourceType  = "Type or paste it"
	sourceFile  = "Load text from .txt"
	sourceEmpty = "Leave drawLines empty"
)

// askFunc matches survey.AskOne
type askFunc func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

// Prompter handles interactive user input collection
type Prompter struct {
	ask        askFunc
	isTerminal func() bool
}

// NewPrompter creates a new interactive prompter
func NewPrompter() *Prompter {
	return &Prompter{
		ask: survey.AskOne,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// CollectMissingInputs prompts the user for any inputs the flags left open.
// It returns the save folder picked during the session, or "" when none was
// asked for.
func (p *Prompter) CollectMissingInputs(request *models.GenerateRequest, cfg *interfaces.Config, haveFolder bool) (string, error) {
	if !request.Interactive {
		return "", nil // Skip interactive prompts in noninteractive mode
	}

	if !p.isTerminal() {
		return "", fmt.Errorf("interactive mode requires a terminal, rerun with -y")
	}

	target := request.Target
	if target == "" {
		target = cfg.Target
	}

	var folder string
	if target == config.TargetFile && !haveFolder {
		var err error
		if folder, err = p.promptForFolder(); err != nil {
			return "", fmt.Errorf("failed to collect save folder: %w", err)
		}
	}

	if strings.TrimSpace(request.Name) == "" && target == config.TargetFile {
		if err := p.promptForName(request, cfg); err != nil {
			return "", fmt.Errorf("failed to collect file name: %w", err)
		}
	}

	if err := p.promptForToggles(request, cfg); err != nil {
		return "", fmt.Errorf("failed to collect options: %w", err)
	}

	if !hasFragmentSource(request) {
		if err := p.promptForFragment(request); err != nil {
			return "", fmt.Errorf("failed to collect crosshair code: %w", err)
		}
	}

	if err := p.showConfirmationSummary(request, cfg, target); err != nil {
		return "", err
	}

	return folder, nil
}

// promptForFolder asks for the save folder when none is stored yet
func (p *Prompter) promptForFolder() (string, error) {
	prompt := &survey.Input{
		Message: "Choose save folder:",
		Help:    "Generated .blk files are written here. The choice is remembered for later runs.",
	}

	var folder string
	if err := p.ask(prompt, &folder, survey.WithValidator(survey.Required), survey.WithValidator(existingDirectory)); err != nil {
		return "", err
	}

	return strings.TrimSpace(folder), nil
}

// promptForName asks for the base file name
func (p *Prompter) promptForName(request *models.GenerateRequest, cfg *interfaces.Config) error {
	prompt := &survey.Input{
		Message: "File name:",
		Help:    "Without the .blk extension. Leave empty to use the default.",
		Default: cfg.DefaultName,
	}

	var name string
	if err := p.ask(prompt, &name); err != nil {
		return err
	}

	request.Name = strings.TrimSpace(name)
	return nil
}

// promptForToggles asks for each option not set by a flag
func (p *Prompter) promptForToggles(request *models.GenerateRequest, cfg *interfaces.Config) error {
	toggles := []struct {
		field    **bool
		message  string
		help     string
		fallback bool
	}{
		{&request.DrawCentralLineVert, "drawCentralLineVert", "Draw the vertical central line", cfg.DrawCentralLineVert},
		{&request.DrawCentralLineHorz, "drawCentralLineHorz", "Draw the horizontal central line", cfg.DrawCentralLineHorz},
		{&request.IncludeHorizontalRanges, "Include horizontal range lines", "Adds the 16 crosshair_hor_ranges entries", cfg.IncludeHorizontalRanges},
	}

	for _, toggle := range toggles {
		if *toggle.field != nil {
			continue
		}

		value, err := p.selectYesNo(toggle.message, toggle.help, toggle.fallback)
		if err != nil {
			return err
		}
		*toggle.field = models.Bool(value)
	}

	return nil
}

// promptForFragment asks where the crosshair code comes from and collects it
func (p *Prompter) promptForFragment(request *models.GenerateRequest) error {
	sourcePrompt := &survey.Select{
		Message: "Crosshair code:",
		Help:    "Either bare drawing directives or a complete drawLines{...} block",
		Options: []string{sourceType, sourceFile, sourceEmpty},
		Default: sourceType,
	}

	var source string
	if err := p.ask(sourcePrompt, &source); err != nil {
		return err
	}

	switch source {
	case sourceFile:
		pathPrompt := &survey.Input{
			Message: "Path to .txt file:",
			Suggest: suggestTextFiles,
		}
		var path string
		if err := p.ask(pathPrompt, &path, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
		request.FragmentFile = strings.TrimSpace(path)

	case sourceType:
		contentPrompt := &survey.Multiline{
			Message: "Enter crosshair code:",
			Help:    "Press Enter on an empty line when finished",
		}
		var content string
		if err := p.ask(contentPrompt, &content); err != nil {
			return err
		}
		request.Fragment = content
	}

	return nil
}

// showConfirmationSummary displays a summary and asks for confirmation
func (p *Prompter) showConfirmationSummary(request *models.GenerateRequest, cfg *interfaces.Config, target string) error {
	destination := "standard output"
	switch target {
	case config.TargetFile:
		name := request.Name
		if name == "" {
			name = cfg.DefaultName
		}
		destination = name + blk.FileExtension
	case config.TargetClipboard:
		destination = "the clipboard"
	}

	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Generate %s (vert=%s, horz=%s, ranges=%s)?",
			destination,
			blk.FormatBool(boolValue(request.DrawCentralLineVert, cfg.DrawCentralLineVert)),
			blk.FormatBool(boolValue(request.DrawCentralLineHorz, cfg.DrawCentralLineHorz)),
			blk.FormatBool(boolValue(request.IncludeHorizontalRanges, cfg.IncludeHorizontalRanges)),
		),
		Default: true,
	}

	var confirmed bool
	if err := p.ask(prompt, &confirmed); err != nil {
		return err
	}
	if !confirmed {
		return ErrCancelled
	}

	return nil
}

// selectYesNo handles a single yes/no question
func (p *Prompter) selectYesNo(message, help string, defaultValue bool) (bool, error) {
	prompt := &survey.Confirm{
		Message: message,
		Help:    help,
		Default: defaultValue,
	}

	var result bool
	if err := p.ask(prompt, &result); err != nil {
		return false, err
	}

	return result, nil
}

func hasFragmentSource(request *models.GenerateRequest) bool {
	return strings.TrimSpace(request.Fragment) != "" ||
		request.FragmentFile != "" ||
		request.FromClipboard ||
		request.FromStdin
}

func boolValue(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// existingDirectory is a survey validator for the save folder
func existingDirectory(ans interface{}) error {
	dir, ok := ans.(string)
	if !ok {
		return fmt.Errorf("expected a folder path")
	}

	info, err := os.Stat(strings.TrimSpace(dir))
	if err != nil {
		return fmt.Errorf("folder does not exist: %s", dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a folder: %s", dir)
	}

	return nil
}

// suggestTextFiles completes .txt paths for the file prompt
func suggestTextFiles(toComplete string) []string {
	matches, _ := filepath.Glob(toComplete + "*")

	var suggestions []string
	for _, match := range matches {
		if info, err := os.Stat(match); err == nil && info.IsDir() {
			suggestions = append(suggestions, match+string(filepath.Separator))
			continue
		}
		if strings.EqualFold(filepath.Ext(match), ".txt") {
			suggestions = append(suggestions, match)
		}
	}

	return suggestions
}
