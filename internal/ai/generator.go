package ai

import (
	openai "github.com/sashabaranov/go-openai"
)

// Generator wraps the chat-completions client used for design generation.
// BaseURL is configurable so the same client speaks to OpenRouter, OpenAI or
// any compatible gateway; model and fallbackModel are the ids the service
// layer escalates between when output fails to parse.
type Generator struct {
	client        *openai.Client
	model         string
	fallbackModel string
}

func NewGenerator(apiKey, baseURL, model, fallbackModel string) *Generator {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(config)

	if model == "" {
		model = openai.GPT4o
	}
	return &Generator{
		client:        client,
		model:         model,
		fallbackModel: fallbackModel,
	}
}

// Model is the primary generation model id.
func (g *Generator) Model() string { return g.model }

// FallbackModel is the model tried when the primary's output cannot be
// repaired into a document. Empty when no fallback is configured.
func (g *Generator) FallbackModel() string { return g.fallbackModel }
