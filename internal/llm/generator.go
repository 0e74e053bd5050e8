package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Generator produces resume content from a prompt-per-content-type table.
// It is a thin layer over Client so handlers never see prompts or tiers.
type Generator struct {
	client Client
}

// NewGenerator creates a generator on top of an LLM client.
func NewGenerator(client Client) *Generator {
	return &Generator{client: client}
}

// GenerationResult is the outcome of one model call.
type GenerationResult struct {
	// Text is the generated content. For skills_optimization it is the
	// cleaned list re-encoded as a JSON array.
	Text string
	// Skills is populated only for skills_optimization.
	Skills []string
}

// Generate produces content of the given type in the given language.
func (g *Generator) Generate(ctx context.Context, contentType ContentType, language string, input GenerationInput) (*GenerationResult, error) {
	prompt, err := buildPrompt(contentType, language, input)
	if err != nil {
		return nil, err
	}

	if contentType == ContentSkillsOptimization {
		raw, err := g.client.GenerateJSON(ctx, prompt, TierLite)
		if err != nil {
			return nil, fmt.Errorf("failed to optimize skills: %w", err)
		}
		cleaned := CleanJSONBlock(raw)
		if arr := extractJSONArray(cleaned); arr != "" {
			cleaned = arr
		}
		var skills []string
		if err := json.Unmarshal([]byte(cleaned), &skills); err != nil {
			return nil, fmt.Errorf("model returned malformed skill list: %w", err)
		}
		return &GenerationResult{Text: cleaned, Skills: skills}, nil
	}

	text, err := g.client.GenerateContent(ctx, prompt, TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", contentType, err)
	}
	return &GenerationResult{Text: text}, nil
}
