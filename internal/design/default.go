package design

import (
	"strings"

	"design_ai_server/internal/colors"
)

// DefaultDocument is the deterministic fallback substituted by callers when
// repair or decoding fails. One desktop-sized frame in the project's palette
// with a heading and a single call-to-action, named after the page type so
// the plugin still places something sensible on the canvas.
func DefaultDocument(pageType string, scheme colors.Scheme) *Document {
	title := titleCase(pageType)
	return &Document{
		Frames: []Frame{
			{
				Type:       ElementFrame,
				Name:       title + " Page",
				Width:      1440,
				Height:     900,
				Background: scheme.Background,
				Children: []Element{
					{
						Type:     ElementText,
						Name:     "Heading",
						Text:     title,
						FontSize: 48,
						Color:    scheme.Text,
						X:        120,
						Y:        200,
					},
					{
						Type:         ElementButton,
						Name:         "Primary Action",
						Label:        "Get Started",
						Width:        180,
						Height:       48,
						Background:   scheme.Primary,
						TextColor:    scheme.Background,
						CornerRadius: 8,
						X:            120,
						Y:            320,
					},
				},
			},
		},
	}
}

func titleCase(s string) string {
	if s == "" {
		return "Page"
	}
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
