package simulate

import (
	"math"
	"testing"

	"bizcase_analyzer/pkg/core/calc"
	"bizcase_analyzer/pkg/core/extraction"
)

func f(v float64) *float64 { return &v }

func TestRunLeavesOriginalUntouched(t *testing.T) {
	original := &extraction.Result{
		ProjectName:            "Depot Automation",
		ProjectType:            extraction.TypeOneTimeSale,
		AnnualRevenueOrSavings: f(1_000_000),
		GrowthRate:             f(5),
	}
	before, err := calc.Calculate(original)
	if err != nil {
		t.Fatalf("baseline calc failed: %v", err)
	}

	_, err = Run(original, before, map[string]float64{"growth_rate": 12})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if *original.GrowthRate != 5 {
		t.Errorf("simulation mutated the stored record: growth=%f", *original.GrowthRate)
	}
}

func TestRunReportsDeltas(t *testing.T) {
	original := &extraction.Result{
		ProjectType:            extraction.TypeOneTimeSale,
		AnnualRevenueOrSavings: f(1_000_000),
		GrowthRate:             f(5),
	}
	before, err := calc.Calculate(original)
	if err != nil {
		t.Fatalf("baseline calc failed: %v", err)
	}

	// Doubling the annual value doubles TAM: 5M -> 10M.
	res, err := Run(original, before, map[string]float64{"annual_revenue_or_savings": 2_000_000})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var tamDelta *MetricDelta
	for i := range res.Deltas {
		if res.Deltas[i].Metric == "tam" {
			tamDelta = &res.Deltas[i]
		}
	}
	if tamDelta == nil {
		t.Fatal("expected a tam delta")
	}
	if tamDelta.Original != 5_000_000 || tamDelta.Simulated != 10_000_000 {
		t.Errorf("tam delta wrong: %+v", tamDelta)
	}
	if math.Abs(tamDelta.ChangePercent-100) > 1e-9 {
		t.Errorf("expected +100%% change, got %f", tamDelta.ChangePercent)
	}
}

func TestSavingsRescaleOnFleetChange(t *testing.T) {
	// 500 vehicles saving 1M/year = 2,000 per vehicle. Growing the fleet to
	// 750 without restating the total must rescale savings to 1.5M.
	original := &extraction.Result{
		ProjectType:            extraction.TypeSavings,
		AnnualRevenueOrSavings: f(1_000_000),
		FleetSizeOrUnits:       f(500),
	}
	before, err := calc.Calculate(original)
	if err != nil {
		t.Fatalf("baseline calc failed: %v", err)
	}

	res, err := Run(original, before, map[string]float64{"fleet_size_or_units": 750})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got := res.AppliedParams["annual_revenue_or_savings"]; got != 1_500_000 {
		t.Errorf("expected rescaled annual savings 1,500,000, got %f", got)
	}
	// Rescaled savings drive the simulated TAM: 1.5M × 5 = 7.5M.
	if res.Analysis.TAM.MarketSize != 7_500_000 {
		t.Errorf("expected simulated TAM 7,500,000, got %f", res.Analysis.TAM.MarketSize)
	}
}

func TestNoRescaleWhenAnnualExplicit(t *testing.T) {
	original := &extraction.Result{
		ProjectType:            extraction.TypeSavings,
		AnnualRevenueOrSavings: f(1_000_000),
		FleetSizeOrUnits:       f(500),
	}
	before, err := calc.Calculate(original)
	if err != nil {
		t.Fatalf("baseline calc failed: %v", err)
	}

	res, err := Run(original, before, map[string]float64{
		"fleet_size_or_units":       750,
		"annual_revenue_or_savings": 1_100_000,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := res.AppliedParams["annual_revenue_or_savings"]; got != 1_100_000 {
		t.Errorf("explicit annual value must win over rescale, got %f", got)
	}
}

func TestRunRejectsEmptyOverrides(t *testing.T) {
	original := &extraction.Result{ProjectType: extraction.TypeOneTimeSale}
	if _, err := Run(original, nil, nil); err == nil {
		t.Error("expected error for empty override set")
	}
}
