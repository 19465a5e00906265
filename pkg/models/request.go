package models

// GenerateRequest represents the inputs of a single BLK generation
type GenerateRequest struct {
	Name          string
	Fragment      string
	FragmentFile  string
	FromClipboard bool
	FromStdin     bool
	Watch         bool // regenerate whenever FragmentFile changes

	// nil means "use the configured default"
	DrawCentralLineVert     *bool
	DrawCentralLineHorz     *bool
	IncludeHorizontalRanges *bool

	Target       string
	SettingsPath string
	ConfigPath   string

	Interactive         bool
	ForceInteractive    bool
	ForceNonInteractive bool
}

// NewGenerateRequest creates an empty request
func NewGenerateRequest() *GenerateRequest {
	return &GenerateRequest{}
}

// Bool returns a pointer to v, for the optional toggle fields
func Bool(v bool) *bool {
	return &v
}
