package colors

import "strings"

// Scheme is one color palette applied to every page of a generated project.
// The values are hex strings exactly as they appear in generated documents.
type Scheme struct {
	Name       string `json:"name"`
	Primary    string `json:"primary"`
	Background string `json:"background"`
	Accent     string `json:"accent"`
	Text       string `json:"text"`
}

// schemeRule maps description keywords to a palette. Rules are evaluated in
// order and the first rule with a matching keyword wins, so more specific
// keywords should come first. The table is configuration, not logic: swap
// entries freely without touching ForDescription.
type schemeRule struct {
	Keywords []string
	Scheme   Scheme
}

var defaultScheme = Scheme{
	Name:       "warm",
	Primary:    "#EA580C",
	Background: "#FFF7ED",
	Accent:     "#FB923C",
	Text:       "#1C1917",
}

var schemeRules = []schemeRule{
	{
		Keywords: []string{"dark", "night", "gaming", "cyber"},
		Scheme: Scheme{
			Name:       "dark",
			Primary:    "#8B5CF6",
			Background: "#0F0F14",
			Accent:     "#22D3EE",
			Text:       "#F4F4F5",
		},
	},
	{
		Keywords: []string{"nature", "eco", "green", "garden", "organic"},
		Scheme: Scheme{
			Name:       "green",
			Primary:    "#16A34A",
			Background: "#F0FDF4",
			Accent:     "#84CC16",
			Text:       "#14532D",
		},
	},
	{
		Keywords: []string{"finance", "bank", "corporate", "law", "consult"},
		Scheme: Scheme{
			Name:       "navy",
			Primary:    "#1E40AF",
			Background: "#F8FAFC",
			Accent:     "#0EA5E9",
			Text:       "#0F172A",
		},
	},
	{
		Keywords: []string{"health", "medical", "clinic", "wellness", "spa"},
		Scheme: Scheme{
			Name:       "teal",
			Primary:    "#0D9488",
			Background: "#F0FDFA",
			Accent:     "#2DD4BF",
			Text:       "#134E4A",
		},
	},
}

// Default returns the palette used when no keyword rule matches.
func Default() Scheme {
	return defaultScheme
}

// ForDescription picks a palette by case-insensitive keyword matching against
// the project description. First matching rule in table order wins.
func ForDescription(description string) Scheme {
	lowered := strings.ToLower(description)
	for _, rule := range schemeRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lowered, kw) {
				return rule.Scheme
			}
		}
	}
	return defaultScheme
}
