package prompts

import "fmt"

// GetDesignRefinePrompt builds the prompt pair for applying an instruction
// to an existing document. Returns (user prompt, system prompt).
func GetDesignRefinePrompt(instruction, documentJSON string) (string, string) {
	prompt := `
	User's instruction:
	---
	%s
	---

	Here is the current page layout document:
	---
	%s
	---

	Apply the instruction to the document and return the FULL updated document.
	Keep every frame and element you were not asked to change.
	%s`

	fullPrompt := fmt.Sprintf(prompt, instruction, documentJSON, documentContract)
	systemPrompt := `
	You are a design assistant updating an **existing page layout**.
	Respond ONLY with the complete updated JSON document as requested.
	`
	return fullPrompt, systemPrompt
}
