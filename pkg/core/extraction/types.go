// Package extraction defines the scalar input record produced by the
// document extraction step and consumed by the projection calculator.
// Fields are pointers where the source document may simply not mention the
// value; Normalize resolves those to defaults exactly once at the boundary.
package extraction

// ProjectType tags the business model of the analyzed case.
type ProjectType string

const (
	TypeSavings      ProjectType = "savings"
	TypeCostSavings  ProjectType = "cost_savings"
	TypeEfficiency   ProjectType = "efficiency"
	TypeOneTimeSale  ProjectType = "one_time_sale"
	TypeSubscription ProjectType = "subscription"
	TypeRoyalty      ProjectType = "royalty"
	TypeMixed        ProjectType = "mixed"
)

// IsSavings reports whether the project is modeled on the savings path.
// Anything unrecognized falls through to revenue semantics.
func (t ProjectType) IsSavings() bool {
	return t == TypeSavings || t == TypeCostSavings || t == TypeEfficiency
}

// Result is the raw extraction record. Optional numeric fields stay nil when
// the document (or the LLM) did not provide them.
type Result struct {
	ProjectName            string      `json:"project_name"`
	ProjectType            ProjectType `json:"project_type"`
	AnnualRevenueOrSavings *float64    `json:"annual_revenue_or_savings"`
	FleetSizeOrUnits       *float64    `json:"fleet_size_or_units"`
	PricePerUnit           *float64    `json:"price_per_unit"`
	StreamValues           []float64   `json:"stream_values"`
	DevelopmentCost        *float64    `json:"development_cost"`
	GrowthRate             *float64    `json:"growth_rate"`
	RoyaltyPercentage      *float64    `json:"royalty_percentage"`
	TakeRate               *float64    `json:"take_rate"`
	MarketCoverage         *float64    `json:"market_coverage"`
}

// Defaults applied by Normalize when the optional field is absent.
const (
	DefaultDevelopmentCost = 0.0
	DefaultGrowthRate      = 5.0
	DefaultRoyaltyPct      = 0.0
	DefaultTakeRate        = 10.0
	DefaultMarketCoverage  = 50.0
)

// Inputs is the fully defaulted record handed to the calculator.
// No pointer fields: nil never reaches arithmetic.
type Inputs struct {
	ProjectName string
	ProjectType ProjectType
	IsSavings   bool

	AnnualValue    float64 // 0 when absent
	HasAnnualValue bool
	FleetSize      float64
	HasFleetSize   bool
	PricePerUnit   float64
	HasPrice       bool
	StreamTotal    float64 // sum of stream values
	HasStreams     bool    // stream list present with positive sum

	DevelopmentCost   float64
	GrowthRate        float64
	RoyaltyPercentage float64
	TakeRate          float64
	MarketCoverage    float64
}

// Normalize resolves all optional fields to their defaults and sums the
// stream values. It is the only place defaulting happens.
func (r *Result) Normalize() Inputs {
	in := Inputs{
		ProjectName:       r.ProjectName,
		ProjectType:       r.ProjectType,
		IsSavings:         r.ProjectType.IsSavings(),
		DevelopmentCost:   DefaultDevelopmentCost,
		GrowthRate:        DefaultGrowthRate,
		RoyaltyPercentage: DefaultRoyaltyPct,
		TakeRate:          DefaultTakeRate,
		MarketCoverage:    DefaultMarketCoverage,
	}
	if in.ProjectName == "" {
		in.ProjectName = "Business Analysis"
	}
	if r.AnnualRevenueOrSavings != nil {
		in.AnnualValue = *r.AnnualRevenueOrSavings
		in.HasAnnualValue = true
	}
	if r.FleetSizeOrUnits != nil {
		in.FleetSize = *r.FleetSizeOrUnits
		in.HasFleetSize = true
	}
	if r.PricePerUnit != nil {
		in.PricePerUnit = *r.PricePerUnit
		in.HasPrice = true
	}
	for _, s := range r.StreamValues {
		in.StreamTotal += s
	}
	if len(r.StreamValues) > 0 && in.StreamTotal > 0 {
		in.HasStreams = true
	}
	if r.DevelopmentCost != nil {
		in.DevelopmentCost = *r.DevelopmentCost
	}
	if r.GrowthRate != nil {
		in.GrowthRate = *r.GrowthRate
	}
	if r.RoyaltyPercentage != nil {
		in.RoyaltyPercentage = *r.RoyaltyPercentage
	}
	if r.TakeRate != nil {
		in.TakeRate = *r.TakeRate
	}
	if r.MarketCoverage != nil {
		in.MarketCoverage = *r.MarketCoverage
	}
	return in
}

// Clone returns a deep copy of the record. Simulation overrides are applied
// to copies so the stored original stays untouched.
func (r *Result) Clone() *Result {
	c := *r
	copyF := func(p *float64) *float64 {
		if p == nil {
			return nil
		}
		v := *p
		return &v
	}
	c.AnnualRevenueOrSavings = copyF(r.AnnualRevenueOrSavings)
	c.FleetSizeOrUnits = copyF(r.FleetSizeOrUnits)
	c.PricePerUnit = copyF(r.PricePerUnit)
	c.DevelopmentCost = copyF(r.DevelopmentCost)
	c.GrowthRate = copyF(r.GrowthRate)
	c.RoyaltyPercentage = copyF(r.RoyaltyPercentage)
	c.TakeRate = copyF(r.TakeRate)
	c.MarketCoverage = copyF(r.MarketCoverage)
	if r.StreamValues != nil {
		c.StreamValues = append([]float64(nil), r.StreamValues...)
	}
	return &c
}

// Float64Ptr is a small helper for building records in code and tests.
func Float64Ptr(v float64) *float64 { return &v }
