package interfaces

import "blk-generator/internal/blk"

// DocumentAssembler composes a complete BLK document from the generation
// options and the user's crosshair text
type DocumentAssembler interface {
	Assemble(opts blk.Options, fragment string) string
}

// OutputHandler delivers a finished document
type OutputHandler interface {
	WriteToClipboard(document string) error
	WriteToStdout(document string) error

	// WriteToFile replaces any existing file at path
	WriteToFile(document string, path string) error
}
