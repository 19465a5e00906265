package blk

import "strings"

const drawLinesOpen = DrawLinesBlock + "{"

// MergeUserFragment appends the user's crosshair text to the template as a
// single drawLines{...} block.
//
// A fragment that is already wrapped in drawLines{ ... } is appended verbatim;
// anything else (including an empty fragment) gets a synthesized wrapper.
// Either way exactly one blank line separates the template from the block.
func MergeUserFragment(template, fragment string) string {
	fragment = strings.TrimSpace(fragment)

	if IsWrappedFragment(fragment) {
		return template + "\n\n" + fragment
	}

	return template + "\n\n" + drawLinesOpen + "\n" + fragment + "\n}"
}

// IsWrappedFragment reports whether the trimmed fragment is already a
// drawLines block
func IsWrappedFragment(fragment string) bool {
	fragment = strings.TrimSpace(fragment)
	return strings.HasPrefix(fragment, drawLinesOpen) && strings.HasSuffix(fragment, "}")
}

// Finalize trims the document and terminates it with exactly one newline
func Finalize(document string) string {
	return strings.TrimSpace(document) + "\n"
}

// Assemble builds the complete file content for the given options and
// crosshair fragment
func Assemble(opts Options, fragment string) string {
	return Finalize(MergeUserFragment(BuildTemplate(opts), fragment))
}

// Assembler is the DocumentAssembler used by the orchestrator
type Assembler struct{}

// NewAssembler creates a document assembler
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble runs BuildTemplate, MergeUserFragment and Finalize in order
func (a *Assembler) Assemble(opts Options, fragment string) string {
	return Assemble(opts, fragment)
}
