package interfaces

import "time"

// NameData contains all variables available to file name templates
type NameData struct {
	Name   string    `json:"name"`
	Now    time.Time `json:"now"`
	Vert   bool      `json:"vert"`
	Horz   bool      `json:"horz"`
	Ranges bool      `json:"ranges"`
}

// NameRenderer turns a base name into the final output file name
type NameRenderer interface {
	// Render executes the name template with the provided data
	Render(nameTemplate string, data NameData) (string, error)
}
