// Package calc implements the deterministic financial projection calculator:
// scalar business inputs in, a complete multi-year ComprehensiveAnalysis out.
// Pure arithmetic, no I/O, no randomness; safe for concurrent callers.
package calc

import (
	"bizcase_analyzer/pkg/core/analysis"
	"bizcase_analyzer/pkg/core/extraction"
)

// Projection horizon. The calculator always produces exactly these years.
var projectionYears = []int{2025, 2026, 2027, 2028, 2029}

// Fixed policy constants of the projection model. These are modeling
// simplifications, not values derived from input.
const (
	fallbackTAM = 50_000_000.0 // when no market input is available
	tamYears    = 5.0          // annual value -> market size multiplier

	savingsSAMPercent = 75.0
	savingsSOMPercent = 70.0
	revenueSAMPercent = 100.0
	revenueSOMPercent = 80.0

	savingsDevEstimateRatio = 0.15 // dev cost estimate as share of annual base
	maintenanceRatio        = 0.15 // yearly maintenance as share of dev cost
	processCostRatio        = 0.05 // process cost as share of annual savings

	cogsRatio         = 0.25 // COGS per unit as share of price
	opsCostPerUnit    = 15.0
	cacPerUnit        = 10.0
	afterSalesPerUnit = 5.0

	defaultPricePerUnit = 500.0
	defaultFleetSize    = 10_000.0

	breakEvenHorizonMonths = 60

	currency = "EUR"
)

// Drivers carries the derived scalars the projection strategies consume.
// All fields are fully defaulted; none can be NaN or nil-backed.
type Drivers struct {
	SOM               float64
	DevelopmentCost   float64 // effective dev cost (possibly estimated)
	GrowthRate        float64 // percent per year
	RoyaltyPercentage float64
	Units             float64 // year-0 volume (0 on the savings path)
	PricePerUnit      float64
	COGSPerUnit       float64
}

// YearProjection is the result of projecting a single year.
type YearProjection struct {
	Volume  float64 // continuous volume; breakdown records the truncated int
	Revenue float64
	Cost    analysis.YearlyCost
}

// model is the intermediate state threaded through the calculator steps.
type model struct {
	in extraction.Inputs

	tam, sam, som    float64
	tamSource        string // "streams", "annual", "fleet_price", "fallback"
	samPercent       float64
	somPercent       float64
	effectiveDevCost float64
	units            float64
	pricePerUnit     float64
	cogsPerUnit      float64

	years         []int
	yearlyRevenue map[string]float64
	yearlyCosts   map[string]analysis.YearlyCost
	yearlyVolume  map[string]int

	totalRevenue float64
	totalCost    float64
	totalVolume  int
	netProfit    float64
	roiPercent   float64
	profitMargin float64

	breakEvenMonths int
}
