package extract

import (
	"context"
	"strings"
	"testing"

	"bizcase_analyzer/pkg/core/prompt"
)

type fakeGenerator struct {
	reply      string
	err        error
	lastPrompt string
}

func (f *fakeGenerator) ExecutePrompt(ctx context.Context, agentType string, rawPrompt string, rawSystemPrompt string, options map[string]interface{}) (string, error) {
	f.lastPrompt = rawPrompt
	return f.reply, f.err
}

func registerTestPrompt(t *testing.T) {
	t.Helper()
	prompt.Get().Clear()
	err := prompt.Get().Register(&prompt.PromptTemplate{
		ID:             prompt.PromptIDs.ExtractionBusinessCase,
		SystemPrompt:   "Return valid JSON only.",
		UserPromptTmpl: "DOCUMENT:\n{{.DocumentText}}",
	})
	if err != nil {
		t.Fatalf("failed to register test prompt: %v", err)
	}
}

func TestExtractMetricsParsesFencedJSON(t *testing.T) {
	registerTestPrompt(t)

	gen := &fakeGenerator{reply: "```json\n" + `{
		"project_name": "EV Charging Network",
		"project_type": "subscription",
		"annual_revenue_or_savings": 2500000,
		"fleet_size_or_units": 5000,
		"growth_rate": 7
	}` + "\n```"}

	svc := NewService(gen)
	res, raw, err := svc.ExtractMetrics(context.Background(), "some document text")
	if err != nil {
		t.Fatalf("ExtractMetrics failed: %v", err)
	}

	if res.ProjectName != "EV Charging Network" {
		t.Errorf("unexpected project name: %q", res.ProjectName)
	}
	if res.AnnualRevenueOrSavings == nil || *res.AnnualRevenueOrSavings != 2500000 {
		t.Error("annual value not parsed")
	}
	if res.PricePerUnit != nil {
		t.Error("absent price must stay nil")
	}
	if raw == "" {
		t.Error("raw JSON should be returned for persistence")
	}
	if !strings.Contains(gen.lastPrompt, "some document text") {
		t.Error("document text not injected into the prompt")
	}
}

func TestExtractMetricsRepairsSloppyJSON(t *testing.T) {
	registerTestPrompt(t)

	// Trailing comma: must survive through the repair pass.
	gen := &fakeGenerator{reply: `{"project_name": "Legacy Migration", "project_type": "savings",}`}

	svc := NewService(gen)
	res, _, err := svc.ExtractMetrics(context.Background(), "doc")
	if err != nil {
		t.Fatalf("ExtractMetrics failed on repairable JSON: %v", err)
	}
	if !res.ProjectType.IsSavings() {
		t.Errorf("expected savings project, got %s", res.ProjectType)
	}
}

func TestExtractMetricsFailsOnGarbage(t *testing.T) {
	registerTestPrompt(t)

	gen := &fakeGenerator{reply: "I could not process this document, sorry!"}
	svc := NewService(gen)
	if _, _, err := svc.ExtractMetrics(context.Background(), "doc"); err == nil {
		t.Error("expected parse error for non-JSON reply")
	}
}
