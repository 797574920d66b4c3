package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"design_ai_server/internal/utils"
)

const generationSystemPrompt = "You are a UI design assistant that outputs page layouts " +
	"as JSON for a design plugin. Respond ONLY with the JSON object requested, no extra explanation."

// GeneratePage asks the given model for one page layout and returns the raw
// response text. Parsing and repair are the caller's concern; this function
// only owns the upstream call, including one retry on transient errors.
func (g *Generator) GeneratePage(ctx context.Context, model, pagePrompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: generationSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: pagePrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens:   8000, // layouts with many children get long
		Temperature: 0.3,  // keep structure predictable
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil && utils.ShouldRetry(err) {
		log.Printf("LLM call failed, retrying once after delay... Error: %v", err)
		time.Sleep(2 * time.Second)
		resp, err = g.client.CreateChatCompletion(ctx, req)
	}
	if err != nil {
		return "", fmt.Errorf("chat completion failed for model %s: %w", model, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Printf("LLM usage for empty response: %+v", resp.Usage)
		return "", errors.New("llm returned empty response")
	}

	return resp.Choices[0].Message.Content, nil
}
