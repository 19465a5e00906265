package orchestrator

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for different categories of failures
var (
	ErrConfigurationInvalid   = errors.New("configuration error")
	ErrSettingsLoad           = errors.New("settings load error")
	ErrSettingsSave           = errors.New("settings save error")
	ErrMissingOutputDirectory = errors.New("no save folder configured")
	ErrOutputWrite            = errors.New("output error")
	ErrFragmentSource         = errors.New("crosshair text error")
	ErrValidationFailed       = errors.New("validation error")
)

// BLKError represents a structured error with actionable guidance
type BLKError struct {
	Type     error
	Message  string
	Guidance string
	Cause    error
}

func (e *BLKError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s: %s\n\nSuggestion: %s", e.Type, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *BLKError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Type}
	}
	return []error{e.Type, e.Cause}
}

// Error constructors with actionable guidance

func NewConfigurationError(message string, cause error) *BLKError {
	guidance := "Check your configuration file syntax. " +
		"Use 'blkgen --config /path/to/config.toml' to specify a different config file " +
		"or 'blkgen init' to write a fresh one."

	if cause != nil && strings.Contains(cause.Error(), "permission") {
		guidance = "Check file permissions for your configuration directory. " +
			"Ensure you have read access to ~/.config/blkgen/"
	}

	return &BLKError{
		Type:     ErrConfigurationInvalid,
		Message:  withCause(message, cause),
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewSettingsLoadError(path string, cause error) *BLKError {
	return &BLKError{
		Type:     ErrSettingsLoad,
		Message:  withCause(fmt.Sprintf("could not read settings from '%s', continuing with empty settings", path), cause),
		Guidance: "The file might be corrupted. Choose the save folder again with 'blkgen folder <dir>' to rewrite it.",
		Cause:    cause,
	}
}

func NewSettingsSaveError(path string, cause error) *BLKError {
	guidance := "The new value is used for this run only. Check that the directory of the settings file exists and is writable."
	if cause != nil && strings.Contains(cause.Error(), "permission") {
		guidance = fmt.Sprintf("Permission denied writing '%s'. Point --settings at a writable location.", path)
	}

	return &BLKError{
		Type:     ErrSettingsSave,
		Message:  withCause(fmt.Sprintf("could not save settings to '%s'", path), cause),
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewMissingOutputDirectoryError() *BLKError {
	return &BLKError{
		Type:    ErrMissingOutputDirectory,
		Message: "you did not specify a save folder",
		Guidance: "Choose one with 'blkgen folder <dir>', run with -i to pick it interactively, " +
			"or use --target stdout to print the file instead.",
	}
}

func NewOutputWriteError(target string, cause error) *BLKError {
	message := fmt.Sprintf("could not save file to '%s'", target)
	guidance := "Check that the save folder exists and you have write permissions."

	switch {
	case target == "clipboard":
		message = "could not copy the file to the clipboard"
		guidance = "Clipboard access failed. Ensure you're running in a graphical environment " +
			"or try using --target stdout instead."
	case target == "stdout":
		message = "could not write the file to standard output"
		guidance = "Check that standard output is still open."
	case cause != nil && strings.Contains(cause.Error(), "permission"):
		guidance = fmt.Sprintf("Permission denied writing '%s'. Pick another save folder with 'blkgen folder <dir>'.", target)
	case cause != nil && (strings.Contains(cause.Error(), "not found") || strings.Contains(cause.Error(), "no such file")):
		guidance = "The save folder no longer exists. Pick another one with 'blkgen folder <dir>'."
	}

	return &BLKError{
		Type:     ErrOutputWrite,
		Message:  withCause(message, cause),
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewFragmentSourceError(source string, cause error) *BLKError {
	message := fmt.Sprintf("could not read crosshair text from %s", source)
	guidance := "Ensure the file exists and is readable UTF-8 text."

	switch {
	case source == "clipboard":
		guidance = "Clipboard access failed. Ensure you're running in a graphical environment " +
			"or pass the text with --file instead."
	case source == "stdin":
		guidance = "Pipe the crosshair text into blkgen, e.g. 'cat sight.txt | blkgen --stdin'."
	case cause != nil && strings.Contains(cause.Error(), "no such file"):
		guidance = fmt.Sprintf("File %s does not exist. Check the path spelling.", source)
	}

	return &BLKError{
		Type:     ErrFragmentSource,
		Message:  withCause(message, cause),
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewValidationError(field string, value interface{}, reason string) *BLKError {
	message := fmt.Sprintf("validation failed for %s: %v (%s)", field, value, reason)
	guidance := "Check the input value and ensure it meets the required format."

	switch field {
	case "target":
		guidance = "Target must be 'file', 'stdout', or 'clipboard'. Example: --target stdout"
	case "fragment_source":
		guidance = "Use only one of --file, --clipboard and --stdin."
	case "folder":
		guidance = "The save folder must be an existing directory. Create it first or pick another one."
	case "name":
		guidance = "The file name must not contain path separators. Use 'blkgen folder <dir>' to change the save folder."
	case "watch":
		guidance = "--watch regenerates when a .txt file changes. Example: blkgen --file sight.txt --watch"
	}

	return &BLKError{
		Type:     ErrValidationFailed,
		Message:  message,
		Guidance: guidance,
		Cause:    nil,
	}
}

func withCause(message string, cause error) string {
	if cause == nil {
		return message
	}
	return fmt.Sprintf("%s: %v", message, cause)
}

// IsRecoverableError checks if an error can be recovered from
func IsRecoverableError(err error) bool {
	var blkErr *BLKError
	if !errors.As(err, &blkErr) {
		return false
	}

	switch blkErr.Type {
	case ErrSettingsLoad, ErrSettingsSave:
		return true // The run continues with in-memory settings
	case ErrOutputWrite:
		return strings.Contains(blkErr.Message, "clipboard") // Can fallback to stdout
	default:
		return false
	}
}
