// Package simulate re-runs the projection calculator with modified
// parameters. The stored extraction record is never touched; overrides are
// applied to a copy and both analyses are diffed for the caller.
package simulate

import (
	"fmt"

	"bizcase_analyzer/pkg/core/analysis"
	"bizcase_analyzer/pkg/core/calc"
	"bizcase_analyzer/pkg/core/extraction"
)

// MetricDelta describes how one headline metric moved under the overrides.
type MetricDelta struct {
	Metric        string  `json:"metric"`
	Original      float64 `json:"original"`
	Simulated     float64 `json:"simulated"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// Result bundles the simulated analysis with the per-metric comparison.
// Extraction is the modified copy the simulation ran on, for callers that
// want to persist the scenario.
type Result struct {
	Analysis      *analysis.ComprehensiveAnalysis `json:"analysis"`
	Extraction    *extraction.Result              `json:"extraction"`
	AppliedParams map[string]float64              `json:"applied_parameters"`
	Deltas        []MetricDelta                   `json:"deltas"`
}

// Run applies the overrides to a copy of the extraction record, recalculates,
// and compares against the original analysis.
func Run(original *extraction.Result, baseline *analysis.ComprehensiveAnalysis, overrides map[string]float64) (*Result, error) {
	if len(overrides) == 0 {
		return nil, fmt.Errorf("SIMULATION_NO_OVERRIDES: nothing to simulate")
	}

	modified := original.Clone()
	applied := applyOverrides(modified, original, overrides)

	fmt.Printf("[SIMULATE] %s: %d overrides applied\n", modified.ProjectName, len(applied))

	simulated, err := calc.Calculate(modified)
	if err != nil {
		return nil, fmt.Errorf("SIMULATION_CALC_ERROR: %w", err)
	}

	return &Result{
		Analysis:      simulated,
		Extraction:    modified,
		AppliedParams: applied,
		Deltas:        diff(baseline, simulated),
	}, nil
}

// applyOverrides writes the recognized overrides into the copy and returns
// the set that actually took effect.
//
// One derived adjustment: for savings projects sized per unit, changing the
// fleet without restating the annual savings silently keeps the old total,
// which misleads. In that case the annual savings is rescaled proportionally.
func applyOverrides(modified *extraction.Result, original *extraction.Result, overrides map[string]float64) map[string]float64 {
	applied := map[string]float64{}

	set := func(key string, dst **float64) {
		if v, ok := overrides[key]; ok {
			*dst = extraction.Float64Ptr(v)
			applied[key] = v
		}
	}

	set("annual_revenue_or_savings", &modified.AnnualRevenueOrSavings)
	set("fleet_size_or_units", &modified.FleetSizeOrUnits)
	set("price_per_unit", &modified.PricePerUnit)
	set("development_cost", &modified.DevelopmentCost)
	set("growth_rate", &modified.GrowthRate)
	set("royalty_percentage", &modified.RoyaltyPercentage)
	set("take_rate", &modified.TakeRate)
	set("market_coverage", &modified.MarketCoverage)

	_, fleetChanged := applied["fleet_size_or_units"]
	_, annualExplicit := applied["annual_revenue_or_savings"]
	if modified.ProjectType.IsSavings() && fleetChanged && !annualExplicit &&
		original.AnnualRevenueOrSavings != nil && original.FleetSizeOrUnits != nil &&
		*original.FleetSizeOrUnits > 0 {
		perUnit := *original.AnnualRevenueOrSavings / *original.FleetSizeOrUnits
		rescaled := perUnit * *modified.FleetSizeOrUnits
		modified.AnnualRevenueOrSavings = extraction.Float64Ptr(rescaled)
		applied["annual_revenue_or_savings"] = rescaled
		fmt.Printf("[SIMULATE] rescaled annual savings to %.0f for new fleet size\n", rescaled)
	}

	return applied
}

func diff(before *analysis.ComprehensiveAnalysis, after *analysis.ComprehensiveAnalysis) []MetricDelta {
	if before == nil {
		return nil
	}
	deltas := []MetricDelta{
		delta("tam", before.TAM.MarketSize, after.TAM.MarketSize),
		delta("sam", before.SAM.MarketSize, after.SAM.MarketSize),
		delta("som", before.SOM.RevenuePotential, after.SOM.RevenuePotential),
		delta("roi_percentage", before.ROI.ROIPercentage, after.ROI.ROIPercentage),
		delta("net_profit_5_years", before.TotalCostSummary.NetProfit5Years, after.TotalCostSummary.NetProfit5Years),
		delta("break_even_months", float64(before.ROI.PaybackPeriodMonths), float64(after.ROI.PaybackPeriodMonths)),
	}
	return deltas
}

func delta(metric string, original, simulated float64) MetricDelta {
	d := MetricDelta{
		Metric:    metric,
		Original:  original,
		Simulated: simulated,
		Change:    simulated - original,
	}
	if original != 0 {
		d.ChangePercent = d.Change / original * 100.0
	}
	return d
}
