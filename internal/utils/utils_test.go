package utils

import (
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
)

func TestShouldRetry(t *testing.T) {
	assert.False(t, ShouldRetry(nil))
	assert.False(t, ShouldRetry(errors.New("invalid api key")))
	assert.True(t, ShouldRetry(errors.New("429: rate limit exceeded")))
	assert.True(t, ShouldRetry(errors.New("502 Bad Gateway")))
	assert.True(t, ShouldRetry(errors.New("dial tcp: i/o timeout")))
	assert.True(t, ShouldRetry(&openai.APIError{HTTPStatusCode: 503}))
	assert.False(t, ShouldRetry(&openai.APIError{HTTPStatusCode: 400}))
}

func TestNormalizePageType(t *testing.T) {
	cases := map[string]string{
		"home":      "home",
		"Landing":   "home",
		"INDEX":     "home",
		"signin":    "login",
		"sign-up":   "login",
		"auth":      "login",
		"services":  "features",
		"about-us":  "about",
		"support":   "contact",
		"":          "detail",
		"dashboard": "detail",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePageType(in), "input %q", in)
	}
}
