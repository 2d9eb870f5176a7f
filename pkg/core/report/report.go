// Package report renders a stored analysis as a human-readable document:
// Markdown for download, HTML for inline display.
package report

import (
	"fmt"
	"sort"
	"strings"

	"bizcase_analyzer/pkg/core/analysis"
	"bizcase_analyzer/pkg/core/utils"
)

// Markdown builds the full report for one analysis.
func Markdown(ca *analysis.ComprehensiveAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", ca.ProjectName)
	fmt.Fprintf(&b, "**Business model:** %s\n\n", ca.ProjectType)
	if ca.ExecutiveSummary != "" {
		fmt.Fprintf(&b, "%s\n\n", ca.ExecutiveSummary)
	}

	b.WriteString("## Market Sizing\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| TAM | €%.0f |\n", ca.TAM.MarketSize)
	fmt.Fprintf(&b, "| SAM | €%.0f |\n", ca.SAM.MarketSize)
	fmt.Fprintf(&b, "| SOM | €%.0f |\n\n", ca.SOM.RevenuePotential)

	b.WriteString("## Five-Year Projection\n\n")
	b.WriteString("| Year | Volume | Revenue | Cost |\n|---|---|---|---|\n")
	for _, year := range sortedYears(ca.YearlyCostBreakdown) {
		yc := ca.YearlyCostBreakdown[year]
		fmt.Fprintf(&b, "| %s | %d | €%.0f | €%.0f |\n",
			year, yc.ProjectedVolume, ca.Turnover.Numbers[year], yc.TotalCost)
	}
	b.WriteString("\n")

	b.WriteString("## Financial Summary\n\n")
	s := ca.TotalCostSummary
	fmt.Fprintf(&b, "- Total revenue (5Y): €%.0f\n", s.TotalRevenue5Years)
	fmt.Fprintf(&b, "- Total cost (5Y): €%.0f\n", s.TotalCost5Years)
	fmt.Fprintf(&b, "- Net profit (5Y): €%.0f\n", s.NetProfit5Years)
	fmt.Fprintf(&b, "- ROI: %.1f%%\n", s.ROIPercentage)
	fmt.Fprintf(&b, "- Profit margin: %.1f%%\n", s.ProfitMarginPercentage)
	fmt.Fprintf(&b, "- Break-even: %.0f months\n\n", s.BreakEvenMonths)

	if len(ca.Formulas) > 0 {
		b.WriteString("## How the Numbers Were Derived\n\n")
		for _, f := range ca.Formulas {
			fmt.Fprintf(&b, "- **%s**: %s → %s\n", f.Name, f.Formula, f.Calculation)
		}
		b.WriteString("\n")
	}

	if len(ca.BusinessAssumptions) > 0 {
		b.WriteString("## Assumptions\n\n")
		for _, a := range ca.BusinessAssumptions {
			fmt.Fprintf(&b, "- %s\n", a)
		}
		b.WriteString("\n")
	}

	if len(ca.ImprovementRecommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, r := range ca.ImprovementRecommendations {
			fmt.Fprintf(&b, "- %s\n", r)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML renders the report as an HTML fragment.
func HTML(ca *analysis.ComprehensiveAnalysis) (string, error) {
	return utils.MarkdownToHTML(Markdown(ca))
}

func sortedYears(breakdown map[string]analysis.YearlyCost) []string {
	years := make([]string, 0, len(breakdown))
	for y := range breakdown {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}
