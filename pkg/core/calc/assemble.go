package calc

import (
	"fmt"
	"math"

	"bizcase_analyzer/pkg/core/analysis"
)

// assemble builds the full output structure from the computed model. Any
// failure here is a programmer error and must propagate to the caller, who
// substitutes the fixed "analysis unavailable" template.
func (m *model) assemble() *analysis.ComprehensiveAnalysis {
	in := m.in

	roiNumbers := make(map[string]float64, len(m.years))
	ebitNumbers := make(map[string]float64, len(m.years))
	cogsNumbers := make(map[string]float64, len(m.years))
	for _, year := range m.years {
		key := fmt.Sprintf("%d", year)
		rev := m.yearlyRevenue[key]
		cost := m.yearlyCosts[key].TotalCost
		profit := rev - cost
		if cost > 0 {
			roiNumbers[key] = profit / cost * 100.0
		} else {
			roiNumbers[key] = 0
		}
		ebitNumbers[key] = profit
		cogsNumbers[key] = m.yearlyCosts[key].TotalCOGS
	}

	avgCostPerUnit := 0.0
	if m.totalVolume > 0 {
		avgCostPerUnit = m.totalCost / float64(m.totalVolume)
	}

	tamDesc := "Total addressable market"
	tamJust := "Derived from fleet and price assumptions"
	tamInsight := fmt.Sprintf("Market size %s", eurM(m.tam))
	samDesc := "Serviceable available market"
	samJust := "Serviceable share assumption"
	somDesc := "Obtainable market share"
	somJust := "Obtainable share assumption"
	if in.IsSavings {
		tamDesc = "Total addressable savings opportunity"
		tamJust = "Derived from annual savings potential"
		tamInsight = fmt.Sprintf("Annual savings potential %s", eurM(m.tam))
		samDesc = "Serviceable savings"
		samJust = "Capacity and organizational constraints"
		somDesc = "Achievable annual savings"
		somJust = "Execution realization rate"
	}

	volumeInsight := fmt.Sprintf("Projected volume Y1: %s", count(m.units))
	if in.IsSavings {
		if in.HasFleetSize {
			volumeInsight = fmt.Sprintf("Context fleet size: %s", count(in.FleetSize))
		} else {
			volumeInsight = "No unit model for savings project"
		}
	}

	unitMargin := 0.0
	if !in.IsSavings {
		unitMargin = m.pricePerUnit - m.cogsPerUnit
	}
	unitInsight := fmt.Sprintf("Net margin %s", pct(m.profitMargin))
	if in.IsSavings {
		unitInsight = fmt.Sprintf("Savings efficiency %s", pct(m.profitMargin))
	}

	cogsPct := 0.0
	if m.pricePerUnit > 0 && m.cogsPerUnit > 0 {
		cogsPct = m.cogsPerUnit / m.pricePerUnit * 100.0
	}
	totalUnitCOGS := 0.0
	if !in.IsSavings {
		totalUnitCOGS = m.cogsPerUnit * m.units
	}

	turnoverLabel := "revenue"
	if in.IsSavings {
		turnoverLabel = "savings"
	}

	execSummary := fmt.Sprintf("%s: TAM %s, SOM %s; ROI %s.",
		in.ProjectName, eurM(m.tam), eurM(m.som), pct(m.roiPercent))
	marketText := fmt.Sprintf(
		"Market path with serviceable share %s and obtainable share %s. Break-even %d months; net %s.",
		pctRaw(m.samPercent), pctRaw(m.somPercent), m.breakEvenMonths, eurM(m.netProfit))
	if in.IsSavings {
		execSummary = fmt.Sprintf("%s: Annual savings potential %s, achievable %s; ROI %s.",
			in.ProjectName, eurM(m.tam), eurM(m.som), pct(m.roiPercent))
		marketText = fmt.Sprintf(
			"Savings path modeled with capacity %s and execution %s. Break-even %d months; cumulative net %s.",
			pctRaw(m.samPercent), pctRaw(m.somPercent), m.breakEvenMonths, eurM(m.netProfit))
	}

	assumptions := []string{
		fmt.Sprintf("Growth %s", pctRaw(in.GrowthRate)),
		fmt.Sprintf("Take rate %s", pctRaw(in.TakeRate)),
	}
	if in.IsSavings {
		assumptions = append(assumptions, fmt.Sprintf("Annual savings Y1 %s", eur(m.som/tamYears)))
	} else {
		assumptions = append(assumptions, fmt.Sprintf("Avg price %s", eur2(m.pricePerUnit)))
	}

	recommendations := []string{
		"Validate pricing elasticity",
		"Optimize CAC per channel",
		"Monitor unit margin drift",
	}
	if in.IsSavings {
		recommendations = []string{
			"Prioritize high-yield streams",
			"Embed tracking early",
			"Phase rollout to reduce risk",
		}
	}

	return &analysis.ComprehensiveAnalysis{
		ProjectName: in.ProjectName,
		ProjectType: string(in.ProjectType),
		TAM: analysis.TAMMetrics{
			DescriptionOfPublic: tamDesc,
			MarketSize:          m.tam,
			GrowthRate:          in.GrowthRate,
			Numbers:             m.yearSeries(m.tam),
			Justification:       tamJust,
			Insight:             tamInsight,
			Confidence:          85,
		},
		SAM: analysis.SAMMetrics{
			DescriptionOfPublic: samDesc,
			MarketSize:          m.sam,
			Numbers:             m.yearSeries(m.sam),
			Justification:       samJust,
			Insight:             fmt.Sprintf("SAM %s", eurM(m.sam)),
			Confidence:          80,
			PenetrationRate:     m.samPercent,
		},
		SOM: analysis.SOMMetrics{
			DescriptionOfPublic:     somDesc,
			MarketShare:             m.somPercent,
			RevenuePotential:        m.som,
			Numbers:                 m.yearSeries(m.som),
			Justification:           somJust,
			Insight:                 fmt.Sprintf("SOM %s", eurM(m.som)),
			Confidence:              75,
			CustomerAcquisitionCost: 0,
		},
		ROI: analysis.ROIMetrics{
			Revenue:             m.totalRevenue,
			Cost:                m.totalCost,
			ROIPercentage:       m.roiPercent,
			Numbers:             roiNumbers,
			PaybackPeriodMonths: m.breakEvenMonths,
			Insight:             fmt.Sprintf("ROI %s | Break-even %dm", pct(m.roiPercent), m.breakEvenMonths),
			Confidence:          80,
		},
		Turnover: analysis.TurnoverMetrics{
			TotalRevenue: m.totalRevenue / tamYears,
			YoYGrowth:    in.GrowthRate,
			Numbers:      m.yearlyRevenue,
			Insight:      fmt.Sprintf("Avg annual %s %s", turnoverLabel, eurM(m.totalRevenue/tamYears)),
			Confidence:   75,
		},
		Volume: analysis.VolumeMetrics{
			UnitsSold:  int(math.Round(m.units)),
			Numbers:    m.yearlyVolume,
			Insight:    volumeInsight,
			Confidence: 70,
		},
		UnitEconomics: analysis.UnitEconomics{
			UnitRevenue:      m.pricePerUnit,
			UnitCost:         m.cogsPerUnit,
			Margin:           unitMargin,
			MarginPercentage: m.profitMargin,
			LTVCACRatio:      5.0,
			Insight:          unitInsight,
			Confidence:       75,
		},
		EBIT: analysis.EBITMetrics{
			Revenue:          m.totalRevenue / tamYears,
			OperatingExpense: m.totalCost / tamYears,
			EBITMargin:       m.netProfit / tamYears,
			EBITPercentage:   m.profitMargin,
			Numbers:          ebitNumbers,
			Insight:          fmt.Sprintf("EBIT margin %s", pct(m.profitMargin)),
			Confidence:       75,
		},
		COGS: analysis.COGSMetrics{
			TotalCOGS:      totalUnitCOGS,
			COGSPercentage: cogsPct,
			Numbers:        cogsNumbers,
			Insight:        fmt.Sprintf("COGS per unit %s", eur2(m.cogsPerUnit)),
			Confidence:     70,
		},
		MarketPotential: analysis.MarketPotential{
			MarketSize:  m.tam,
			Penetration: m.somPercent,
			GrowthRate:  in.GrowthRate,
			Numbers:     m.yearSeries(m.tam),
			Insight:     "Healthy growth outlook",
			Confidence:  80,
		},
		YearlyCostBreakdown: m.yearlyCosts,
		SevenYearSummary: analysis.SevenYearSummary{
			TotalCost:          m.totalCost,
			TotalVolume:        m.totalVolume,
			AverageCostPerUnit: avgCostPerUnit,
			Currency:           currency,
		},
		TotalCostSummary: analysis.CostSummary{
			TotalRevenue5Years:     m.totalRevenue,
			TotalCost5Years:        m.totalCost,
			NetProfit5Years:        m.netProfit,
			ROIPercentage:          m.roiPercent,
			ProfitMarginPercentage: m.profitMargin,
			BreakEvenMonths:        float64(m.breakEvenMonths),
		},
		ExecutiveSummary:           execSummary,
		ValueMarketPotentialText:   marketText,
		BusinessAssumptions:        assumptions,
		ImprovementRecommendations: recommendations,
		IdentifiedVariables:        m.variables(),
		Formulas:                   m.formulas(),
	}
}

// variables lists the named quantities surfaced in the derivation trace.
func (m *model) variables() []analysis.Variable {
	in := m.in
	if in.IsSavings {
		return []analysis.Variable{
			{Name: "TAM", Value: eur(m.tam), Description: "Annual addressable savings potential"},
			{Name: "SAM", Value: eur(m.sam), Description: fmt.Sprintf("Serviceable savings (%s capacity)", pctRaw(m.samPercent))},
			{Name: "SOM", Value: eur(m.som), Description: fmt.Sprintf("Achievable savings (%s execution)", pctRaw(m.somPercent))},
			{Name: "Annual Savings (Y1)", Value: eur(m.som / tamYears), Description: "Year 1 achievable savings"},
			{Name: "Implementation Cost", Value: eur(m.effectiveDevCost), Description: "Upfront implementation"},
			{Name: "Growth Rate", Value: pctRaw(in.GrowthRate), Description: "Annual savings growth assumption"},
			{Name: "5-Year Net Savings", Value: eur(m.netProfit), Description: "Cumulative net after costs"},
			{Name: "ROI", Value: pct(m.roiPercent), Description: "Net savings / total cost"},
		}
	}
	vars := []analysis.Variable{
		{Name: "TAM", Value: eur(m.tam), Description: "Total addressable market"},
		{Name: "SAM", Value: eur(m.sam), Description: fmt.Sprintf("Serviceable market (%s of TAM)", pctRaw(m.samPercent))},
		{Name: "SOM", Value: eur(m.som), Description: fmt.Sprintf("Obtainable market (%s of SAM)", pctRaw(m.somPercent))},
		{Name: "Units (Y1)", Value: count(m.units), Description: "Projected Year 1 volume"},
	}
	if m.pricePerUnit > 0 {
		vars = append(vars,
			analysis.Variable{Name: "Price per Unit", Value: eur2(m.pricePerUnit), Description: "Average price"},
			analysis.Variable{Name: "COGS per Unit", Value: eur2(m.cogsPerUnit), Description: "Cost of goods (25% of price)"},
		)
	}
	return append(vars,
		analysis.Variable{Name: "Growth Rate", Value: pctRaw(in.GrowthRate), Description: "Annual growth"},
		analysis.Variable{Name: "ROI", Value: pct(m.roiPercent), Description: "Return on total cost"},
		analysis.Variable{Name: "Profit Margin", Value: pct(m.profitMargin), Description: "Net / Revenue"},
	)
}

// formulas builds the derivation trace with literal substituted arithmetic.
func (m *model) formulas() []analysis.Formula {
	in := m.in

	var tamFormula analysis.Formula
	switch m.tamSource {
	case "streams":
		tamFormula = analysis.Formula{
			Name:        "TAM",
			Formula:     "TAM = Σ stream values × 5",
			Calculation: fmt.Sprintf("%s × 5 = %s", eur(in.StreamTotal), eur(m.tam)),
		}
	case "annual":
		tamFormula = analysis.Formula{
			Name:        "TAM",
			Formula:     "TAM = Annual value × 5",
			Calculation: fmt.Sprintf("%s × 5 = %s", eur(in.AnnualValue), eur(m.tam)),
		}
	case "fleet_price":
		tamFormula = analysis.Formula{
			Name:        "TAM",
			Formula:     "TAM = Fleet size × Price",
			Calculation: fmt.Sprintf("%s × %s = %s", count(in.FleetSize), eur2(in.PricePerUnit), eur(m.tam)),
		}
	default:
		tamFormula = analysis.Formula{
			Name:        "TAM",
			Formula:     "TAM = Market estimate",
			Calculation: fmt.Sprintf("%s (fallback)", eur(m.tam)),
		}
	}

	if in.IsSavings {
		return []analysis.Formula{
			tamFormula,
			{Name: "SAM Calculation", Formula: "SAM = TAM × Capacity %",
				Calculation: fmt.Sprintf("%s × %s = %s", eur(m.tam), pctRaw(m.samPercent), eur(m.sam))},
			{Name: "SOM Calculation", Formula: "SOM = SAM × Execution %",
				Calculation: fmt.Sprintf("%s × %s = %s", eur(m.sam), pctRaw(m.somPercent), eur(m.som))},
			{Name: "Implementation Cost", Formula: "Dev (est) = Annual base × 15%",
				Calculation: eur(m.effectiveDevCost)},
			{Name: "Net Savings", Formula: "Net = Gross Savings (5Y) - Total Cost (5Y)",
				Calculation: fmt.Sprintf("%s - %s = %s", eur(m.totalRevenue), eur(m.totalCost), eur(m.netProfit))},
			{Name: "ROI", Formula: "ROI = Net ÷ Total Cost",
				Calculation: fmt.Sprintf("%s ÷ %s = %s", eur(m.netProfit), eur(m.totalCost), pct(m.roiPercent))},
		}
	}

	unitsCalc := "Price/unit missing"
	if m.pricePerUnit > 0 {
		unitsCalc = fmt.Sprintf("%s ÷ %s = %s", eur(m.som), eur2(m.pricePerUnit), count(m.units))
	}
	unitsFormula := analysis.Formula{Name: "Units", Formula: "Units = SOM ÷ Price", Calculation: unitsCalc}
	if in.RoyaltyPercentage > 0 {
		unitsFormula = analysis.Formula{
			Name:    "Units",
			Formula: "Units = Fleet × Take rate % × Coverage %",
			Calculation: fmt.Sprintf("%s × %s × %s = %s",
				count(in.FleetSize), pctRaw(in.TakeRate), pctRaw(in.MarketCoverage), count(m.units)),
		}
	}

	return []analysis.Formula{
		tamFormula,
		{Name: "SAM", Formula: "SAM = TAM × Serviceable %",
			Calculation: fmt.Sprintf("%s × %s = %s", eur(m.tam), pctRaw(m.samPercent), eur(m.sam))},
		{Name: "SOM", Formula: "SOM = SAM × Obtainable %",
			Calculation: fmt.Sprintf("%s × %s = %s", eur(m.sam), pctRaw(m.somPercent), eur(m.som))},
		unitsFormula,
		{Name: "Net Profit", Formula: "Net = Revenue - Total Cost",
			Calculation: fmt.Sprintf("%s - %s = %s", eur(m.totalRevenue), eur(m.totalCost), eur(m.netProfit))},
		{Name: "ROI", Formula: "ROI = Net ÷ Total Cost",
			Calculation: fmt.Sprintf("%s ÷ %s = %s", eur(m.netProfit), eur(m.totalCost), pct(m.roiPercent))},
	}
}
