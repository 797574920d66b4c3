package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"design_ai_server/internal/ai/prompts"
	"design_ai_server/internal/utils"
)

// RefineDesign asks the primary model to apply a free-text instruction to an
// existing document and returns the raw response text. Stateless: the whole
// current document travels in the prompt.
func (g *Generator) RefineDesign(ctx context.Context, instruction, documentJSON string) (string, error) {
	fullPrompt, systemPrompt := prompts.GetDesignRefinePrompt(instruction, documentJSON)

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fullPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens:   8000,
		Temperature: 0.3, // focused edits, not reinvention
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil && utils.ShouldRetry(err) {
		log.Printf("LLM refine call failed, retrying once... Error: %v", err)
		time.Sleep(2 * time.Second)
		resp, err = g.client.CreateChatCompletion(ctx, req)
	}
	if err != nil {
		return "", fmt.Errorf("chat completion for refine failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Printf("LLM usage for empty refine response: %+v", resp.Usage)
		return "", errors.New("llm returned empty response for refine")
	}

	return resp.Choices[0].Message.Content, nil
}
