// Package chat implements the conversational layer over a stored analysis.
// The assistant answers questions about the numbers and detects parameter
// modification requests, which the simulation layer then applies.
package chat

import (
	"context"
	"fmt"
	"strings"

	"bizcase_analyzer/pkg/core/analysis"
	"bizcase_analyzer/pkg/core/llm"
	"bizcase_analyzer/pkg/core/prompt"
)

// Chatter is the multi-turn slice of the LLM layer the analyzer needs.
type Chatter interface {
	Chat(ctx context.Context, history []llm.ChatTurn, message string, systemPrompt string) (string, error)
}

// Modifications maps parameter names to requested new values.
type Modifications map[string]float64

type Analyzer struct {
	chatter Chatter
}

func NewAnalyzer(chatter Chatter) *Analyzer {
	return &Analyzer{chatter: chatter}
}

// maxHistoryTurns bounds how much conversation context goes to the model.
const maxHistoryTurns = 10

// Respond sends the user message with analysis context and returns the
// assistant reply plus any detected parameter modifications. currentDevCost
// is the development cost of the stored record, needed to resolve relative
// requests like "increase cost by 20%".
func (a *Analyzer) Respond(ctx context.Context, ca *analysis.ComprehensiveAnalysis, message string, history []llm.ChatTurn, currentDevCost float64) (string, Modifications, error) {
	systemPrompt, err := prompt.Get().GetSystemPrompt(prompt.PromptIDs.ChatAssistant)
	if err != nil {
		return "", nil, fmt.Errorf("CHAT_PROMPT_MISSING: %w", err)
	}
	systemPrompt = "CURRENT ANALYSIS CONTEXT:\n" + ContextSummary(ca) + "\n\n" + systemPrompt

	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}

	reply, err := a.chatter.Chat(ctx, history, message, systemPrompt)
	if err != nil {
		return "", nil, fmt.Errorf("CHAT_LLM_ERROR: %w", err)
	}

	mods := ExtractModifications(message, reply, currentDevCost)
	if len(mods) > 0 {
		fmt.Printf("[CHAT] detected %d parameter modifications\n", len(mods))
	}
	return reply, mods, nil
}

// ContextSummary condenses the analysis into the few lines the assistant
// needs to answer questions about it.
func ContextSummary(ca *analysis.ComprehensiveAnalysis) string {
	if ca == nil {
		return "No analysis available yet."
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("Project: %s", ca.ProjectName))
	parts = append(parts, fmt.Sprintf("TAM: €%.0f", ca.TAM.MarketSize))
	if ca.TAM.DescriptionOfPublic != "" {
		desc := ca.TAM.DescriptionOfPublic
		if len(desc) > 100 {
			desc = desc[:100]
		}
		parts = append(parts, fmt.Sprintf("Target Market: %s", desc))
	}
	parts = append(parts, fmt.Sprintf("SAM: €%.0f", ca.SAM.MarketSize))
	parts = append(parts, fmt.Sprintf("SOM: €%.0f", ca.SOM.RevenuePotential))
	parts = append(parts, fmt.Sprintf("ROI: %.1f%%", ca.ROI.ROIPercentage))
	parts = append(parts, fmt.Sprintf("Payback Period: %d months", ca.ROI.PaybackPeriodMonths))
	parts = append(parts, fmt.Sprintf("Total Revenue (5Y): €%.0f", ca.TotalCostSummary.TotalRevenue5Years))
	parts = append(parts, fmt.Sprintf("Total Cost (5Y): €%.0f", ca.TotalCostSummary.TotalCost5Years))
	parts = append(parts, fmt.Sprintf("Net Profit (5Y): €%.0f", ca.TotalCostSummary.NetProfit5Years))

	return strings.Join(parts, "\n")
}
