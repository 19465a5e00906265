package orchestrator

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/afero"
	"blk-generator/internal/interfaces"
)

// OutputHandler implements the OutputHandler interface
type OutputHandler struct {
	fs            afero.Fs
	stdout        io.Writer
	clipboardCopy func(string) error
}

// NewOutputHandler creates an output handler backed by the OS filesystem
func NewOutputHandler() interfaces.OutputHandler {
	copyFn := clipboard.WriteAll
	if clipboard.Unsupported {
		copyFn = nil
	}
	return NewOutputHandlerWith(afero.NewOsFs(), os.Stdout, copyFn)
}

// NewOutputHandlerWith creates an output handler with explicit collaborators
func NewOutputHandlerWith(fs afero.Fs, stdout io.Writer, clipboardCopy func(string) error) *OutputHandler {
	return &OutputHandler{
		fs:            fs,
		stdout:        stdout,
		clipboardCopy: clipboardCopy,
	}
}

// WriteToClipboard copies content to the system clipboard
func (h *OutputHandler) WriteToClipboard(content string) error {
	if h.clipboardCopy == nil {
		return fmt.Errorf("clipboard is not supported on this system")
	}
	return h.clipboardCopy(content)
}

// WriteToStdout writes content to standard output unchanged
func (h *OutputHandler) WriteToStdout(content string) error {
	_, err := io.WriteString(h.stdout, content)
	return err
}

// WriteToFile writes content to the specified file path, replacing any
// existing file
func (h *OutputHandler) WriteToFile(content string, path string) error {
	return afero.WriteFile(h.fs, path, []byte(content), 0644)
}
