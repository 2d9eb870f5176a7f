// Package analysis defines the ComprehensiveAnalysis aggregate: the fixed
// output shape of the projection calculator. The structure is created once
// per calculator invocation and never partially updated; simulations produce
// a complete new value.
package analysis

// Variable is a named input or derived quantity surfaced to the reader,
// with its value pre-formatted for display.
type Variable struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Formula is a human-readable derivation trace. Calculation carries the
// literal substituted arithmetic, e.g. "€5,000,000 × 50% = €2,500,000".
type Formula struct {
	Name        string `json:"name"`
	Formula     string `json:"formula"`
	Calculation string `json:"calculation"`
}

// TAMMetrics describes the total addressable market (or total addressable
// savings for savings projects).
type TAMMetrics struct {
	DescriptionOfPublic string             `json:"description_of_public"`
	MarketSize          float64            `json:"market_size"`
	GrowthRate          float64            `json:"growth_rate"`
	Numbers             map[string]float64 `json:"numbers"`
	Justification       string             `json:"justification"`
	Insight             string             `json:"insight"`
	Confidence          int                `json:"confidence"`
}

type SAMMetrics struct {
	DescriptionOfPublic string             `json:"description_of_public"`
	MarketSize          float64            `json:"market_size"`
	Numbers             map[string]float64 `json:"numbers"`
	Justification       string             `json:"justification"`
	Insight             string             `json:"insight"`
	Confidence          int                `json:"confidence"`
	PenetrationRate     float64            `json:"penetration_rate"`
}

type SOMMetrics struct {
	DescriptionOfPublic     string             `json:"description_of_public"`
	MarketShare             float64            `json:"market_share"`
	RevenuePotential        float64            `json:"revenue_potential"`
	Numbers                 map[string]float64 `json:"numbers"`
	Justification           string             `json:"justification"`
	Insight                 string             `json:"insight"`
	Confidence              int                `json:"confidence"`
	CustomerAcquisitionCost float64            `json:"customer_acquisition_cost"`
}

type ROIMetrics struct {
	Revenue             float64            `json:"revenue"`
	Cost                float64            `json:"cost"`
	ROIPercentage       float64            `json:"roi_percentage"`
	Numbers             map[string]float64 `json:"numbers"`
	PaybackPeriodMonths int                `json:"payback_period_months"`
	Insight             string             `json:"insight"`
	Confidence          int                `json:"confidence"`
}

type TurnoverMetrics struct {
	TotalRevenue float64            `json:"total_revenue"`
	YoYGrowth    float64            `json:"yoy_growth"`
	Numbers      map[string]float64 `json:"numbers"`
	Insight      string             `json:"insight"`
	Confidence   int                `json:"confidence"`
}

type VolumeMetrics struct {
	UnitsSold  int            `json:"units_sold"`
	Numbers    map[string]int `json:"numbers"`
	Insight    string         `json:"insight"`
	Confidence int            `json:"confidence"`
}

type UnitEconomics struct {
	UnitRevenue      float64 `json:"unit_revenue"`
	UnitCost         float64 `json:"unit_cost"`
	Margin           float64 `json:"margin"`
	MarginPercentage float64 `json:"margin_percentage"`
	LTVCACRatio      float64 `json:"ltv_cac_ratio"`
	Insight          string  `json:"insight"`
	Confidence       int     `json:"confidence"`
}

type EBITMetrics struct {
	Revenue          float64            `json:"revenue"`
	OperatingExpense float64            `json:"operating_expense"`
	EBITMargin       float64            `json:"ebit_margin"`
	EBITPercentage   float64            `json:"ebit_percentage"`
	Numbers          map[string]float64 `json:"numbers"`
	Insight          string             `json:"insight"`
	Confidence       int                `json:"confidence"`
}

type COGSMetrics struct {
	Material       float64            `json:"material"`
	Labor          float64            `json:"labor"`
	Overheads      float64            `json:"overheads"`
	TotalCOGS      float64            `json:"total_cogs"`
	COGSPercentage float64            `json:"cogs_percentage"`
	Numbers        map[string]float64 `json:"numbers"`
	Insight        string             `json:"insight"`
	Confidence     int                `json:"confidence"`
}

type MarketPotential struct {
	MarketSize  float64            `json:"market_size"`
	Penetration float64            `json:"penetration"`
	GrowthRate  float64            `json:"growth_rate"`
	Numbers     map[string]float64 `json:"numbers"`
	Insight     string             `json:"insight"`
	Confidence  int                `json:"confidence"`
}

// YearlyCost is the per-year cost breakdown entry. For savings projects the
// process cost lands in DistributionOperations and maintenance in AfterSales;
// there is no physical unit model so the COGS fields stay zero.
type YearlyCost struct {
	ProjectedVolume        int     `json:"projected_volume"`
	OneTimeDevelopment     float64 `json:"one_time_development"`
	CustomerAcquisition    float64 `json:"customer_acquisition"`
	DistributionOperations float64 `json:"distribution_operations"`
	AfterSales             float64 `json:"after_sales"`
	TotalCOGS              float64 `json:"total_cogs"`
	COGSPerUnit            float64 `json:"cogs_per_unit"`
	TotalCost              float64 `json:"total_cost"`
	Currency               string  `json:"currency"`
}

// SevenYearSummary keeps the legacy field names of the stored documents.
type SevenYearSummary struct {
	TotalCost          float64 `json:"total_cost_2024_2030"`
	TotalVolume        int     `json:"total_volume_2024_2030"`
	AverageCostPerUnit float64 `json:"average_cost_per_unit"`
	Currency           string  `json:"currency"`
}

type CostSummary struct {
	TotalRevenue5Years     float64 `json:"total_revenue_5_years"`
	TotalCost5Years        float64 `json:"total_cost_5_years"`
	NetProfit5Years        float64 `json:"net_profit_5_years"`
	ROIPercentage          float64 `json:"roi_percentage"`
	ProfitMarginPercentage float64 `json:"profit_margin_percentage"`
	BreakEvenMonths        float64 `json:"break_even_months"`
}

// ComprehensiveAnalysis is the full calculator output.
type ComprehensiveAnalysis struct {
	ProjectName string `json:"project_name"`
	ProjectType string `json:"project_type"`

	TAM             TAMMetrics      `json:"tam"`
	SAM             SAMMetrics      `json:"sam"`
	SOM             SOMMetrics      `json:"som"`
	ROI             ROIMetrics      `json:"roi"`
	Turnover        TurnoverMetrics `json:"turnover"`
	Volume          VolumeMetrics   `json:"volume"`
	UnitEconomics   UnitEconomics   `json:"unit_economics"`
	EBIT            EBITMetrics     `json:"ebit"`
	COGS            COGSMetrics     `json:"cogs"`
	MarketPotential MarketPotential `json:"market_potential"`

	YearlyCostBreakdown map[string]YearlyCost `json:"yearly_cost_breakdown"`
	SevenYearSummary    SevenYearSummary      `json:"seven_year_summary"`
	TotalCostSummary    CostSummary           `json:"total_estimated_cost_summary"`

	ExecutiveSummary           string     `json:"executive_summary"`
	ValueMarketPotentialText   string     `json:"value_market_potential_text"`
	BusinessAssumptions        []string   `json:"business_assumptions"`
	ImprovementRecommendations []string   `json:"improvement_recommendations"`
	IdentifiedVariables        []Variable `json:"identified_variables"`
	Formulas                   []Formula  `json:"formulas"`
}

// Unavailable returns the fixed zero-confidence template callers substitute
// when the calculator fails. The calculator itself never returns this.
func Unavailable(projectName string, reason string) *ComprehensiveAnalysis {
	msg := "Analysis unavailable: " + reason
	if projectName == "" {
		projectName = "Business Analysis"
	}
	return &ComprehensiveAnalysis{
		ProjectName:                projectName,
		ProjectType:                "unknown",
		TAM:                        TAMMetrics{Insight: msg, Confidence: 0},
		SAM:                        SAMMetrics{Insight: msg, Confidence: 0},
		SOM:                        SOMMetrics{Insight: msg, Confidence: 0},
		ROI:                        ROIMetrics{Insight: msg, Confidence: 0},
		Turnover:                   TurnoverMetrics{Insight: msg, Confidence: 0},
		Volume:                     VolumeMetrics{Insight: msg, Confidence: 0},
		UnitEconomics:              UnitEconomics{Insight: msg, Confidence: 0},
		EBIT:                       EBITMetrics{Insight: msg, Confidence: 0},
		COGS:                       COGSMetrics{Insight: msg, Confidence: 0},
		MarketPotential:            MarketPotential{Insight: msg, Confidence: 0},
		YearlyCostBreakdown:        map[string]YearlyCost{},
		ExecutiveSummary:           msg,
		ValueMarketPotentialText:   msg,
		BusinessAssumptions:        []string{},
		ImprovementRecommendations: []string{},
		IdentifiedVariables:        []Variable{},
		Formulas:                   []Formula{},
	}
}
