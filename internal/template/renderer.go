package template

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"blk-generator/internal/blk"
	"blk-generator/internal/interfaces"
)

// Renderer implements the NameRenderer interface
type Renderer struct{}

// NewRenderer creates a new file name renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render executes the name template and checks the result is usable as a
// file name inside the save folder
func (r *Renderer) Render(nameTemplate string, data interfaces.NameData) (string, error) {
	tmpl, err := parse(nameTemplate)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute name template: %w", err)
	}

	name := strings.TrimSpace(buf.String())
	if err := checkFileName(name); err != nil {
		return "", err
	}

	return name, nil
}

// Validate parses a name template without executing it
func Validate(nameTemplate string) error {
	_, err := parse(nameTemplate)
	return err
}

// parse creates the template with sprig and custom helper functions
func parse(nameTemplate string) (*template.Template, error) {
	tmpl := template.New("name").Option("missingkey=error")

	// Start with sprig functions
	funcMap := sprig.TxtFuncMap()

	// Add custom helper functions
	customFuncs := template.FuncMap{
		"truncate": truncateFunc,
		"yesno":    blk.FormatBool,
	}

	// Merge custom functions into sprig functions
	for name, fn := range customFuncs {
		funcMap[name] = fn
	}

	tmpl.Funcs(funcMap)

	tmpl, err := tmpl.Parse(nameTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse name template: %w", err)
	}

	return tmpl, nil
}

// checkFileName rejects names that would escape or collapse the save folder
func checkFileName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("name template produced an empty file name")
	case name == "." || name == "..":
		return fmt.Errorf("invalid file name %q", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("file name %q must not contain path separators", name)
	}
	return nil
}

// truncateFunc truncates a string to a specified length
func truncateFunc(length int, text string) string {
	if len(text) <= length {
		return text
	}

	if length <= 3 {
		return text[:length]
	}

	return text[:length-3] + "..."
}
