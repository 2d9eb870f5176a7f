package report

import (
	"strings"
	"testing"

	"bizcase_analyzer/pkg/core/calc"
	"bizcase_analyzer/pkg/core/extraction"
)

func TestMarkdownReport(t *testing.T) {
	ca, err := calc.Calculate(&extraction.Result{
		ProjectName:            "Charging Hub",
		ProjectType:            extraction.TypeSubscription,
		AnnualRevenueOrSavings: extraction.Float64Ptr(1_000_000),
	})
	if err != nil {
		t.Fatalf("calc failed: %v", err)
	}

	md := Markdown(ca)
	for _, want := range []string{
		"# Charging Hub",
		"## Market Sizing",
		"## Five-Year Projection",
		"| 2025 |",
		"| 2029 |",
		"## Financial Summary",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("expected %q in report:\n%s", want, md)
		}
	}
	// Years must come out in order.
	if strings.Index(md, "| 2025 |") > strings.Index(md, "| 2029 |") {
		t.Error("projection years out of order")
	}
}

func TestHTMLReport(t *testing.T) {
	ca, err := calc.Calculate(&extraction.Result{
		ProjectName: "Charging Hub",
		ProjectType: extraction.TypeOneTimeSale,
	})
	if err != nil {
		t.Fatalf("calc failed: %v", err)
	}

	html, err := HTML(ca)
	if err != nil {
		t.Fatalf("HTML render failed: %v", err)
	}
	if !strings.Contains(html, "<h1>") || !strings.Contains(html, "<table>") {
		t.Error("expected heading and table in HTML output")
	}
}
