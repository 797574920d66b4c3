package utils

import (
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ShouldRetry reports whether an upstream LLM error looks transient enough
// to be worth one retry (rate limits, gateway errors, timeouts).
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "rate limit") ||
		strings.Contains(errMsg, "500 internal server error") ||
		strings.Contains(errMsg, "502 bad gateway") ||
		strings.Contains(errMsg, "503 service unavailable") ||
		strings.Contains(errMsg, "504 gateway timeout") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "connection reset by peer") ||
		strings.Contains(errMsg, "context deadline exceeded") {
		return true
	}
	var openAIErr *openai.APIError
	if errors.As(err, &openAIErr) {
		if openAIErr.HTTPStatusCode >= 500 || openAIErr.HTTPStatusCode == 429 {
			return true
		}
	}
	return false
}

// NormalizePageType maps the loose page-type spellings callers and LLMs use
// onto the canonical set the planner works with. Unknown values fall back to
// a generic detail page rather than failing the request.
func NormalizePageType(pageType string) string {
	switch strings.ToLower(strings.TrimSpace(pageType)) {
	case "home", "landing", "index", "main":
		return "home"
	case "login", "signin", "sign-in", "signup", "sign-up", "register", "auth":
		return "login"
	case "features", "feature", "services", "products":
		return "features"
	case "about", "about-us", "team":
		return "about"
	case "contact", "contact-us", "support":
		return "contact"
	default:
		return "detail"
	}
}
