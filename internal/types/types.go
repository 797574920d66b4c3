package types

import "time"

// SelectionNode mirrors the subset of a Figma node the plugin serializes
// when the user exports a selection. Children nest arbitrarily deep.
type SelectionNode struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"` // e.g. "FRAME", "TEXT", "RECTANGLE"
	Width      float64         `json:"width,omitempty"`
	Height     float64         `json:"height,omitempty"`
	Characters string          `json:"characters,omitempty"` // text content, TEXT nodes only
	Fills      []string        `json:"fills,omitempty"`      // hex colors
	Children   []SelectionNode `json:"children,omitempty"`
}

// SelectionExport is the payload the plugin posts when the user shares their
// current selection with the backend.
type SelectionExport struct {
	FileKey    string          `json:"file_key,omitempty"`
	PageName   string          `json:"page_name,omitempty"`
	Nodes      []SelectionNode `json:"nodes"`
	ExportedAt time.Time       `json:"exported_at,omitempty"`
}
