package calc

import (
	"math"

	"bizcase_analyzer/pkg/core/analysis"
)

// ProjectionStrategy projects a single year of the five-year horizon.
// The two implementations carry the savings and revenue branches of the
// model; selection happens once, on the project type.
type ProjectionStrategy interface {
	Name() string
	ProjectYear(d Drivers, yearIndex int) YearProjection
}

// SavingsStrategy models cost-savings projects. There is no physical unit
// model: volume stays at zero and the yearly "revenue" is the achievable
// savings for that year.
type SavingsStrategy struct{}

func (SavingsStrategy) Name() string { return "savings" }

func (SavingsStrategy) ProjectYear(d Drivers, i int) YearProjection {
	factor := math.Pow(1+d.GrowthRate/100.0, float64(i))
	baseSavings := d.SOM / tamYears
	annualSavings := baseSavings * factor

	dev := 0.0
	maintenance := 0.0
	if i == 0 {
		dev = d.DevelopmentCost
	} else {
		maintenance = maintenanceRatio * d.DevelopmentCost
	}
	processCost := processCostRatio * annualSavings
	totalCost := dev + maintenance + processCost

	return YearProjection{
		Volume:  0,
		Revenue: annualSavings,
		Cost: analysis.YearlyCost{
			ProjectedVolume:        0,
			OneTimeDevelopment:     dev,
			CustomerAcquisition:    0,
			DistributionOperations: processCost,
			AfterSales:             maintenance,
			TotalCOGS:              0,
			COGSPerUnit:            0,
			TotalCost:              totalCost,
			Currency:               currency,
		},
	}
}

// RevenueStrategy models unit-based revenue projects, including the royalty
// variant where the licensee bears production cost (COGS excluded and the
// top line is the royalty share of gross volume value).
type RevenueStrategy struct{}

func (RevenueStrategy) Name() string { return "revenue" }

func (RevenueStrategy) ProjectYear(d Drivers, i int) YearProjection {
	factor := math.Pow(1+d.GrowthRate/100.0, float64(i))
	vol := d.Units * factor

	dev := 0.0
	if i == 0 {
		dev = d.DevelopmentCost
	}
	totalCOGS := vol * d.COGSPerUnit
	ops := vol * opsCostPerUnit
	cac := vol * cacPerUnit
	afterSales := vol * afterSalesPerUnit

	var revenue, totalCost float64
	if d.RoyaltyPercentage > 0 {
		// Licensing model: the licensee bears production cost, so COGS is
		// recorded but excluded from our cost base.
		revenue = d.PricePerUnit * vol * d.RoyaltyPercentage / 100.0
		totalCost = dev + cac + ops + afterSales
	} else {
		revenue = d.PricePerUnit * vol
		totalCost = dev + totalCOGS + ops + cac + afterSales
	}

	return YearProjection{
		Volume:  vol,
		Revenue: revenue,
		Cost: analysis.YearlyCost{
			ProjectedVolume:        int(vol),
			OneTimeDevelopment:     dev,
			CustomerAcquisition:    cac,
			DistributionOperations: ops,
			AfterSales:             afterSales,
			TotalCOGS:              totalCOGS,
			COGSPerUnit:            d.COGSPerUnit,
			TotalCost:              totalCost,
			Currency:               currency,
		},
	}
}

// selectStrategy picks the branch for the project type.
func selectStrategy(isSavings bool) ProjectionStrategy {
	if isSavings {
		return SavingsStrategy{}
	}
	return RevenueStrategy{}
}
