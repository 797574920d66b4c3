package design

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrUnrecoverable reports that no repair stage could turn the generation
// output into a recognizable document object. It is an expected, frequent
// outcome; callers substitute a default document and move on.
var ErrUnrecoverable = errors.New("design: unrecoverable generation output")

// Repair turns a raw LLM text blob — nominally a JSON object with a "frames"
// array, possibly decorated with prose, markdown fences, comments, trailing
// commas or unquoted keys — into a parsed object.
//
// Stages escalate in order; each runs only if the previous one failed to
// produce a value that parses AND decodes to a known document shape:
//
//  1. direct parse
//  2. strip decoration (markdown fences, // and /* */ comments, whitespace)
//  3. structural fixups, applied cumulatively with a parse attempt after each
//  4. substring extraction of the first balanced {...} span, fixups re-applied
//
// Already-valid input short-circuits at stage 1, so Repair is idempotent on
// well-formed documents. The function is pure: no I/O, no retained state, and
// failure is returned, never thrown past this boundary.
func Repair(raw string) (map[string]any, error) {
	if v, ok := tryParse(raw); ok {
		return v, nil
	}

	// Decoration must go before the regex fixups: fence markers and comments
	// can contain braces and quotes that would mislead them.
	cleaned := strings.TrimSpace(stripComments(stripFences(raw)))
	if v, ok := tryParse(cleaned); ok {
		return v, nil
	}

	if v, ok := runFixups(cleaned); ok {
		return v, nil
	}

	if span := extractObject(cleaned); span != "" {
		if v, ok := tryParse(span); ok {
			return v, nil
		}
		if v, ok := runFixups(span); ok {
			return v, nil
		}
	}

	return nil, ErrUnrecoverable
}

// tryParse accepts a stage's output only when the text is a JSON object that
// decodes to one of the known document shapes. Purely syntactic repair with a
// shape-aware stopping rule: a stage that yields `{"answer": 42}` keeps the
// escalation going instead of being declared a success.
func tryParse(text string) (map[string]any, bool) {
	var v map[string]any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, false
	}
	if shapeOf(v) == shapeUnknown {
		return nil, false
	}
	return v, true
}

// fixup is one independent structural normalization pass. Each is pure and
// individually tested; the runner composes them in order.
type fixup struct {
	name  string
	apply func(string) string
}

var structuralFixups = []fixup{
	{"insert-missing-commas", insertMissingCommas},
	{"strip-trailing-commas", stripTrailingCommas},
	{"quote-bare-keys", quoteBareKeys},
	{"normalize-quotes", normalizeQuotes},
	{"quote-hex-tokens", quoteHexTokens},
}

// runFixups applies the structural fixups cumulatively, short-circuiting on
// the first accepted parse.
func runFixups(text string) (map[string]any, bool) {
	fixed := text
	for _, f := range structuralFixups {
		fixed = f.apply(fixed)
		if v, ok := tryParse(fixed); ok {
			return v, true
		}
	}
	return nil, false
}

var fenceMarker = regexp.MustCompile("```[a-zA-Z]*")

// stripFences removes markdown code-fence markers, with or without a language
// tag. The fenced content itself stays.
func stripFences(text string) string {
	return fenceMarker.ReplaceAllString(text, "")
}

// stripComments removes // line comments and /* */ block comments. The scan
// is string-aware so URLs and comment-looking sequences inside JSON string
// literals survive.
func stripComments(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		ch := text[i]

		if inString {
			b.WriteByte(ch)
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}

		switch {
		case ch == '"':
			inString = true
			b.WriteByte(ch)
		case ch == '/' && i+1 < len(text) && text[i+1] == '/':
			for i < len(text) && text[i] != '\n' {
				i++
			}
			if i < len(text) {
				b.WriteByte('\n')
			}
		case ch == '/' && i+1 < len(text) && text[i+1] == '*':
			i += 2
			for i+1 < len(text) && !(text[i] == '*' && text[i+1] == '/') {
				i++
			}
			i++ // skip the closing '/'
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

var missingComma = regexp.MustCompile(`([}\]])\s*([{\[])`)

// insertMissingCommas inserts the separator the LLM dropped between two
// adjacent closing/opening brackets, e.g. `}{` or `] [`.
func insertMissingCommas(text string) string {
	return missingComma.ReplaceAllString(text, "$1,$2")
}

var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// stripTrailingCommas removes a comma immediately before a closing brace or
// bracket.
func stripTrailingCommas(text string) string {
	return trailingComma.ReplaceAllString(text, "$1")
}

var bareKey = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)

// quoteBareKeys quotes unquoted object keys matching a bare-identifier
// pattern, e.g. `{name: "x"}` -> `{"name": "x"}`.
func quoteBareKeys(text string) string {
	return bareKey.ReplaceAllString(text, `$1"$2":`)
}

var singleQuoted = regexp.MustCompile(`'([^'\\]*)'`)

// normalizeQuotes rewrites single-quoted string literals as double-quoted.
func normalizeQuotes(text string) string {
	return singleQuoted.ReplaceAllString(text, `"$1"`)
}

var bareHex = regexp.MustCompile(`(:\s*)(#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{3}))(\s*[,}\]\n])`)

// quoteHexTokens wraps bare hex color values in quotes, e.g.
// `"background": #FFF7ED,` -> `"background": "#FFF7ED",`. The leading colon
// anchor keeps already-quoted colors untouched.
func quoteHexTokens(text string) string {
	return bareHex.ReplaceAllString(text, `$1"$2"$3`)
}

// extractObject returns the first balanced top-level {...} span in the text,
// or "" when no balanced object exists (e.g. output truncated mid-object).
// The scan tracks string literals so braces inside them do not affect depth.
func extractObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
