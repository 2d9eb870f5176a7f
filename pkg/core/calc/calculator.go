package calc

import (
	"fmt"
	"math"

	"bizcase_analyzer/pkg/core/analysis"
	"bizcase_analyzer/pkg/core/extraction"
)

// Calculate derives the complete financial analysis from an extraction
// record. Identical input always yields identical output; the only failure
// mode is a programmer error during output assembly, which propagates.
func Calculate(r *extraction.Result) (*analysis.ComprehensiveAnalysis, error) {
	in := r.Normalize()

	fmt.Printf("[CALC] %s: type=%s savings=%v growth=%.1f%%\n",
		in.ProjectName, in.ProjectType, in.IsSavings, in.GrowthRate)

	m := &model{in: in, years: projectionYears}
	m.deriveMarket()
	m.deriveUnitEconomics()
	m.projectYears()
	m.aggregate()
	m.breakEven()

	return m.assemble(), nil
}

// deriveMarket resolves TAM by priority order, then segments it into SAM and
// SOM. For savings projects with no stated development cost, the cost is
// estimated off the annual base before the projection loop runs.
func (m *model) deriveMarket() {
	in := m.in

	switch {
	case in.HasStreams:
		m.tam = in.StreamTotal * tamYears
		m.tamSource = "streams"
	case in.HasAnnualValue:
		m.tam = in.AnnualValue * tamYears
		m.tamSource = "annual"
	case in.HasFleetSize && in.HasPrice:
		m.tam = in.FleetSize * in.PricePerUnit
		m.tamSource = "fleet_price"
	default:
		m.tam = fallbackTAM
		m.tamSource = "fallback"
	}

	m.effectiveDevCost = in.DevelopmentCost
	if in.IsSavings {
		m.samPercent = savingsSAMPercent
		m.somPercent = savingsSOMPercent
		if m.effectiveDevCost == 0 {
			annualBase := m.tam / tamYears
			if in.HasStreams {
				annualBase = in.StreamTotal
			} else if in.HasAnnualValue {
				annualBase = in.AnnualValue
			}
			m.effectiveDevCost = savingsDevEstimateRatio * annualBase
			fmt.Printf("[CALC] Estimated implementation cost (15%% of annual base): %.0f\n", m.effectiveDevCost)
		}
	} else {
		m.samPercent = revenueSAMPercent
		m.somPercent = revenueSOMPercent
	}

	m.sam = m.tam * m.samPercent / 100.0
	m.som = m.sam * m.somPercent / 100.0

	fmt.Printf("[CALC] TAM=%.0f SAM=%.0f SOM=%.0f\n", m.tam, m.sam, m.som)
}

// deriveUnitEconomics resolves year-0 volume, price and COGS per unit.
// Savings projects carry no unit model at all.
func (m *model) deriveUnitEconomics() {
	in := m.in

	if in.IsSavings {
		m.units = 0
		m.pricePerUnit = 0
		m.cogsPerUnit = 0
		return
	}

	fleet := in.FleetSize
	price := in.PricePerUnit
	hasFleet := in.HasFleetSize
	hasPrice := in.HasPrice

	if !hasFleet && !hasPrice {
		price = defaultPricePerUnit
		fleet = defaultFleetSize
		hasPrice = true
		hasFleet = true
	}
	if !hasPrice {
		if in.HasAnnualValue && fleet > 0 {
			price = in.AnnualValue / fleet
		} else {
			price = defaultPricePerUnit
		}
	}

	if in.RoyaltyPercentage > 0 {
		// Royalty/licensing volume model: captured transactions are
		// independent of price.
		m.units = fleet * in.TakeRate / 100.0 * in.MarketCoverage / 100.0
	} else if price > 0 {
		// Sales volume model: back the volume out of the revenue target.
		m.units = m.som / price
	} else {
		m.units = fleet
	}

	m.pricePerUnit = price
	m.cogsPerUnit = price * cogsRatio

	fmt.Printf("[CALC] units=%.0f price=%.2f cogs/unit=%.2f\n", m.units, m.pricePerUnit, m.cogsPerUnit)
}

func (m *model) drivers() Drivers {
	return Drivers{
		SOM:               m.som,
		DevelopmentCost:   m.effectiveDevCost,
		GrowthRate:        m.in.GrowthRate,
		RoyaltyPercentage: m.in.RoyaltyPercentage,
		Units:             m.units,
		PricePerUnit:      m.pricePerUnit,
		COGSPerUnit:       m.cogsPerUnit,
	}
}

// projectYears runs the selected strategy across the fixed horizon.
func (m *model) projectYears() {
	strategy := selectStrategy(m.in.IsSavings)
	d := m.drivers()

	m.yearlyRevenue = make(map[string]float64, len(m.years))
	m.yearlyCosts = make(map[string]analysis.YearlyCost, len(m.years))
	m.yearlyVolume = make(map[string]int, len(m.years))

	for i, year := range m.years {
		p := strategy.ProjectYear(d, i)
		key := fmt.Sprintf("%d", year)
		m.yearlyRevenue[key] = p.Revenue
		m.yearlyCosts[key] = p.Cost
		m.yearlyVolume[key] = p.Cost.ProjectedVolume
		fmt.Printf("[CALC] %d: vol=%d rev=%.0f cost=%.0f\n",
			year, p.Cost.ProjectedVolume, p.Revenue, p.Cost.TotalCost)
	}
}

// aggregate computes the five-year totals with zero-denominator guards.
func (m *model) aggregate() {
	for _, year := range m.years {
		key := fmt.Sprintf("%d", year)
		m.totalRevenue += m.yearlyRevenue[key]
		m.totalCost += m.yearlyCosts[key].TotalCost
		m.totalVolume += m.yearlyCosts[key].ProjectedVolume
	}
	m.netProfit = m.totalRevenue - m.totalCost
	if m.totalCost > 0 {
		m.roiPercent = m.netProfit / m.totalCost * 100.0
	}
	if m.totalRevenue > 0 {
		m.profitMargin = m.netProfit / m.totalRevenue * 100.0
	}
	fmt.Printf("[CALC] 5Y totals: rev=%.0f cost=%.0f net=%.0f roi=%.1f%%\n",
		m.totalRevenue, m.totalCost, m.netProfit, m.roiPercent)
}

// breakEven scans month by month across the horizon. Cash flow is assumed
// uniform within a year but differs year to year, so this must stay a loop:
// interpolating at the yearly boundary would shift the break-even month.
func (m *model) breakEven() {
	m.breakEvenMonths = breakEvenHorizonMonths
	cumulative := -m.effectiveDevCost

	for i, year := range m.years {
		key := fmt.Sprintf("%d", year)
		annualNet := m.yearlyRevenue[key] - m.yearlyCosts[key].TotalCost
		monthlyNet := annualNet / 12.0
		reached := false
		for month := 0; month < 12; month++ {
			cumulative += monthlyNet
			if cumulative >= 0 {
				m.breakEvenMonths = i*12 + month
				reached = true
				break
			}
		}
		if reached {
			break
		}
	}
	fmt.Printf("[CALC] break-even: %d months\n", m.breakEvenMonths)
}

// compounded returns base grown for the given year of the horizon.
func compounded(base, growthPct float64, yearIndex int) float64 {
	return base * math.Pow(1+growthPct/100.0, float64(yearIndex))
}

// yearSeries builds the per-year map of a compounding base value.
func (m *model) yearSeries(base float64) map[string]float64 {
	out := make(map[string]float64, len(m.years))
	for i, year := range m.years {
		out[fmt.Sprintf("%d", year)] = compounded(base, m.in.GrowthRate, i)
	}
	return out
}
