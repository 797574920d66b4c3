package design

// Document is the normalized result of repairing and decoding LLM output:
// an ordered list of frames the plugin can render directly.
type Document struct {
	Frames []Frame `json:"frames"`
}

// Frame is a rectangular design container. Top-level frames are pages;
// nested frames (as children) are sections within a page.
type Frame struct {
	Type       string    `json:"type,omitempty"` // "frame" when the LLM tags it
	Name       string    `json:"name"`
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	Background string    `json:"background,omitempty"` // hex string, e.g. "#FFF7ED"
	Children   []Element `json:"children,omitempty"`
}

// Element kinds the plugin understands. Unknown kinds survive decoding with
// their common fields intact; the plugin skips what it cannot render.
const (
	ElementText      = "text"
	ElementRectangle = "rectangle"
	ElementButton    = "button"
	ElementInput     = "input"
	ElementCircle    = "circle"
	ElementLine      = "line"
	ElementIcon      = "icon"
	ElementGroup     = "group"
	ElementFrame     = "frame"
)

// Element is a tagged variant over the kinds above. One flat struct rather
// than one type per kind: every field is optional on the wire and the LLM
// mixes them freely, so a union struct decodes far more of its output than
// strict per-kind types would.
type Element struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`

	// Geometry, shared by all kinds.
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// text
	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`
	Color    string  `json:"color,omitempty"`

	// button
	Label        string  `json:"label,omitempty"`
	TextColor    string  `json:"textColor,omitempty"`
	CornerRadius float64 `json:"cornerRadius,omitempty"`

	// input
	Placeholder string `json:"placeholder,omitempty"`

	// rectangle / circle / icon / button fill
	Background string `json:"background,omitempty"`

	// group / frame
	Children []Element `json:"children,omitempty"`
}

// DisplayText returns the element's visible text, whichever field carries it
// for the element's kind. Used for action inference on buttons and inputs.
func (e Element) DisplayText() string {
	if e.Label != "" {
		return e.Label
	}
	if e.Text != "" {
		return e.Text
	}
	if e.Placeholder != "" {
		return e.Placeholder
	}
	return e.Name
}
