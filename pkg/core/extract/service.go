// Package extract turns raw document text into the scalar metric record the
// projection calculator consumes. The LLM does exactly one job here: read the
// document and fill the fixed JSON schema. All arithmetic happens downstream.
package extract

import (
	"context"
	"fmt"

	"bizcase_analyzer/pkg/core/extraction"
	"bizcase_analyzer/pkg/core/prompt"
	"bizcase_analyzer/pkg/core/utils"
)

// Generator is the slice of agent.Manager the service needs.
type Generator interface {
	ExecutePrompt(ctx context.Context, agentType string, rawPrompt string, rawSystemPrompt string, options map[string]interface{}) (string, error)
}

// Service runs the metric extraction step.
type Service struct {
	agents Generator
}

func NewService(agents Generator) *Service {
	return &Service{agents: agents}
}

// ExtractMetrics sends the document text through the extraction prompt and
// parses the reply into a Result. The raw (possibly repaired) JSON is returned
// alongside so callers can persist exactly what the model said.
func (s *Service) ExtractMetrics(ctx context.Context, documentText string) (*extraction.Result, string, error) {
	pt, err := prompt.Get().GetPrompt(prompt.PromptIDs.ExtractionBusinessCase)
	if err != nil {
		return nil, "", fmt.Errorf("EXTRACTION_PROMPT_MISSING: %w", err)
	}

	userPrompt, err := prompt.RenderUserPrompt(pt, prompt.NewContext().Set("DocumentText", documentText))
	if err != nil {
		return nil, "", fmt.Errorf("EXTRACTION_PROMPT_RENDER_ERROR: %w", err)
	}

	options := map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	}
	raw, err := s.agents.ExecutePrompt(ctx, "extractor", userPrompt, pt.SystemPrompt, options)
	if err != nil {
		return nil, "", fmt.Errorf("EXTRACTION_LLM_ERROR: %w", err)
	}

	cleaned := utils.StripCodeFences(raw)

	var result extraction.Result
	parsed, err := utils.SmartParse(cleaned, &result)
	if err != nil {
		return nil, "", fmt.Errorf("EXTRACTION_PARSE_ERROR: %w", err)
	}

	fmt.Printf("[EXTRACT] %s: type=%s\n", result.ProjectName, result.ProjectType)
	return &result, parsed, nil
}
