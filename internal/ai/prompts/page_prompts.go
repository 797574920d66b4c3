package prompts

import (
	"fmt"

	"design_ai_server/internal/colors"
)

// documentContract is the output shape every generation prompt demands. The
// repair pipeline tolerates deviations, but stating the contract up front is
// what keeps deviations rare.
const documentContract = `
	Respond with a single JSON object in the following format:

	` + "```json" + `
	{
	  "frames": [
	    {
	      "type": "frame",
	      "name": "Home Page",
	      "width": 1440,
	      "height": 900,
	      "background": "#FFFFFF",
	      "children": [
	        { "type": "text", "text": "Welcome", "fontSize": 48, "color": "#111111", "x": 120, "y": 160 },
	        { "type": "button", "label": "Get Started", "width": 180, "height": 48, "background": "#1A73E8", "textColor": "#FFFFFF", "cornerRadius": 8, "x": 120, "y": 280 },
	        { "type": "input", "placeholder": "Email address", "width": 320, "height": 44, "x": 120, "y": 360 }
	      ]
	    }
	  ]
	}
	` + "```" + `

	Allowed child "type" values: text, rectangle, button, input, circle, line, icon, group, frame.
	Groups and nested frames may carry their own "children" array.
	All colors must be hex strings in quotes. Only output JSON — no commentary, no markdown.
`

// pageBriefs gives each page type its content direction. Static templated
// configuration, read-only for the rest of the system.
var pageBriefs = map[string]string{
	"home":     "a landing page with a hero section, a short value proposition, feature highlights and a primary call-to-action button",
	"login":    "a login page with a centered card, email and password inputs, a sign-in button and a link-style button to register",
	"features": "a features page with a heading and a grid of feature cards, each with an icon, title and short description",
	"about":    "an about page with a heading, a paragraph of body text and a small team section",
	"contact":  "a contact page with name, email and message inputs plus a submit button",
	"detail":   "a content detail page with a heading, supporting text, an image placeholder rectangle and a call-to-action button",
}

// GetPageGenerationPrompt builds the prompt for one page of a project.
// The scheme pins the palette; the caller overlays the session's established
// design-system colors onto the scheme before calling, so follow-up pages
// stay consistent with the first one.
func GetPageGenerationPrompt(pageType, description string, scheme colors.Scheme) string {
	brief, ok := pageBriefs[pageType]
	if !ok {
		brief = pageBriefs["detail"]
	}

	return fmt.Sprintf(`
	You are designing one page of a website described as:

	---
	"%s"
	---

	Design %s.

	Use this exact color theme:
	  * Primary: %s
	  * Background: %s
	  * Accent: %s
	  * Text: %s

	The page is a 1440x900 desktop frame. Lay out 5-12 child elements with
	sensible x/y positions and sizes.
	%s`, description, brief, scheme.Primary, scheme.Background, scheme.Accent, scheme.Text, documentContract)
}
