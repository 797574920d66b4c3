package project

import (
	"errors"
	"time"

	"design_ai_server/internal/design"
)

// Sentinel errors surfaced by the session manager. Both are normal, expected
// outcomes that handlers map to HTTP statuses, never fatal conditions.
var (
	ErrSessionNotFound  = errors.New("project: session not found")
	ErrSessionCompleted = errors.New("project: session already completed")
)

// Session lifecycle states. A session starts active and becomes completed
// once the page plan is exhausted; expiry removes it from the store entirely.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// DesignSystem is the rolling palette summary carried between pages of one
// session. Merge policy is first-writer-wins: the first generated page
// establishes the palette and later pages never override it.
type DesignSystem struct {
	PrimaryColor    string `json:"primary_color,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
}

// InteractiveElement records one button or input discovered on a generated
// page, tagged with the semantic action inferred from its visible text.
type InteractiveElement struct {
	Kind   string `json:"kind"`   // "button" or "input"
	Label  string `json:"label"`  // visible text the action was inferred from
	Action string `json:"action"` // e.g. "login", "register", "detail"
	Page   string `json:"page"`   // page type the element was found on
}

// Page is one produced page of a session.
type Page struct {
	Type      string           `json:"type"`
	Name      string           `json:"name"`
	Document  *design.Document `json:"document"`
	CreatedAt time.Time        `json:"created_at"`
}

// Session is one multi-page generation run. State is memory-resident (or
// Redis-resident) and bounded by a retention window; this is deliberately
// not durable storage.
type Session struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ExpiresAt   time.Time `json:"expires_at"`

	Pages        []Page   `json:"pages"`
	PendingPages []string `json:"pending_pages"`
	PagesBuilt   int      `json:"pages_built"`

	DesignSystem DesignSystem         `json:"design_system"`
	Interactive  []InteractiveElement `json:"interactive_elements"`
}

// Clone returns an independent copy of the session. Stores hand out clones so
// a snapshot read never shares slices with an in-flight mutation.
func (s *Session) Clone() *Session {
	out := *s
	out.Pages = append([]Page(nil), s.Pages...)
	out.PendingPages = append([]string(nil), s.PendingPages...)
	out.Interactive = append([]InteractiveElement(nil), s.Interactive...)
	return &out
}

// Snapshot is the read-only view returned by Status.
type Snapshot struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Description      string       `json:"description,omitempty"`
	Status           string       `json:"status"`
	PagesBuilt       int          `json:"pages_built"`
	PendingPages     []string     `json:"pending_pages"`
	DesignSystem     DesignSystem `json:"design_system"`
	InteractiveCount int          `json:"interactive_count"`
	CreatedAt        time.Time    `json:"created_at"`
	ExpiresAt        time.Time    `json:"expires_at"`
}
