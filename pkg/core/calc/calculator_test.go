package calc

import (
	"math"
	"reflect"
	"testing"

	"bizcase_analyzer/pkg/core/extraction"
)

func f(v float64) *float64 { return &v }

func TestDeterminism(t *testing.T) {
	input := func() *extraction.Result {
		return &extraction.Result{
			ProjectName:            "Fleet Telematics",
			ProjectType:            extraction.TypeSubscription,
			AnnualRevenueOrSavings: f(2_500_000),
			FleetSizeOrUnits:       f(5000),
			GrowthRate:             f(7),
		}
	}

	a, err := Calculate(input())
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	b, err := Calculate(input())
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Error("two invocations with identical input produced different output")
	}
}

func TestTAMPriorityOrder(t *testing.T) {
	// Streams outrank the annual value: sum(1M, 2M) × 5 = 15M, not 25M.
	res, err := Calculate(&extraction.Result{
		ProjectType:            extraction.TypeOneTimeSale,
		StreamValues:           []float64{1_000_000, 2_000_000},
		AnnualRevenueOrSavings: f(5_000_000),
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if res.TAM.MarketSize != 15_000_000 {
		t.Errorf("expected TAM 15,000,000 from stream sum, got %f", res.TAM.MarketSize)
	}

	// Annual value × 5 when no streams.
	res, err = Calculate(&extraction.Result{
		ProjectType:            extraction.TypeOneTimeSale,
		AnnualRevenueOrSavings: f(5_000_000),
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if res.TAM.MarketSize != 25_000_000 {
		t.Errorf("expected TAM 25,000,000 from annual value, got %f", res.TAM.MarketSize)
	}

	// Fleet × price when neither streams nor annual value.
	res, err = Calculate(&extraction.Result{
		ProjectType:      extraction.TypeOneTimeSale,
		FleetSizeOrUnits: f(2000),
		PricePerUnit:     f(300),
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if res.TAM.MarketSize != 600_000 {
		t.Errorf("expected TAM 600,000 from fleet × price, got %f", res.TAM.MarketSize)
	}

	// Fallback constant when nothing is available.
	res, err = Calculate(&extraction.Result{ProjectType: extraction.TypeOneTimeSale})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if res.TAM.MarketSize != 50_000_000 {
		t.Errorf("expected fallback TAM 50,000,000, got %f", res.TAM.MarketSize)
	}
}

func TestSegmentationByProjectType(t *testing.T) {
	// Savings: SAM = 75% of TAM, SOM = 70% of SAM.
	res, err := Calculate(&extraction.Result{
		ProjectType:            extraction.TypeSavings,
		AnnualRevenueOrSavings: f(1_000_000),
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	// TAM = 5M, SAM = 3.75M, SOM = 2.625M
	if res.SAM.MarketSize != 0.75*res.TAM.MarketSize {
		t.Errorf("savings SAM expected 0.75×TAM, got %f of %f", res.SAM.MarketSize, res.TAM.MarketSize)
	}
	if res.SOM.RevenuePotential != 0.70*res.SAM.MarketSize {
		t.Errorf("savings SOM expected 0.70×SAM, got %f of %f", res.SOM.RevenuePotential, res.SAM.MarketSize)
	}

	// Revenue: SAM = TAM, SOM = 80% of SAM.
	res, err = Calculate(&extraction.Result{
		ProjectType:            extraction.TypeOneTimeSale,
		AnnualRevenueOrSavings: f(1_000_000),
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if res.SAM.MarketSize != res.TAM.MarketSize {
		t.Errorf("revenue SAM expected TAM, got %f vs %f", res.SAM.MarketSize, res.TAM.MarketSize)
	}
	if res.SOM.RevenuePotential != 0.80*res.SAM.MarketSize {
		t.Errorf("revenue SOM expected 0.80×SAM, got %f of %f", res.SOM.RevenuePotential, res.SAM.MarketSize)
	}

	// Unrecognized type falls through to revenue semantics.
	res, err = Calculate(&extraction.Result{
		ProjectType:            extraction.ProjectType("platform"),
		AnnualRevenueOrSavings: f(1_000_000),
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if res.SAM.MarketSize != res.TAM.MarketSize {
		t.Error("unknown project type should use revenue segmentation")
	}
}

func TestRoyaltyVolumeIndependentOfPrice(t *testing.T) {
	// units = 100,000 × 10% × 50% = 5,000 regardless of price.
	base := extraction.Result{
		ProjectType:       extraction.TypeRoyalty,
		FleetSizeOrUnits:  f(100_000),
		RoyaltyPercentage: f(10),
		TakeRate:          f(10),
		MarketCoverage:    f(50),
	}

	cheap := base
	cheap.PricePerUnit = f(10)
	expensive := base
	expensive.PricePerUnit = f(10_000)

	resCheap, err := Calculate(&cheap)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	resExpensive, err := Calculate(&expensive)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	if resCheap.Volume.UnitsSold != 5000 {
		t.Errorf("expected 5,000 units, got %d", resCheap.Volume.UnitsSold)
	}
	if resCheap.Volume.UnitsSold != resExpensive.Volume.UnitsSold {
		t.Errorf("royalty volume must be price-independent: %d vs %d",
			resCheap.Volume.UnitsSold, resExpensive.Volume.UnitsSold)
	}
}

func TestZeroCostGuard(t *testing.T) {
	// Royalty model with no fleet: zero units, zero cost, zero revenue.
	// ROI and margin must come back 0, not NaN/Inf.
	res, err := Calculate(&extraction.Result{
		ProjectType:       extraction.TypeRoyalty,
		PricePerUnit:      f(100),
		RoyaltyPercentage: f(5),
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if res.ROI.Cost != 0 {
		t.Fatalf("expected zero total cost, got %f", res.ROI.Cost)
	}
	if res.ROI.ROIPercentage != 0 {
		t.Errorf("expected ROI 0 with zero cost, got %f", res.ROI.ROIPercentage)
	}
	if math.IsNaN(res.TotalCostSummary.ProfitMarginPercentage) || math.IsInf(res.TotalCostSummary.ProfitMarginPercentage, 0) {
		t.Errorf("profit margin must be finite, got %f", res.TotalCostSummary.ProfitMarginPercentage)
	}
}

func TestBreakEvenMonotonicInDevCost(t *testing.T) {
	run := func(devCost float64) int {
		res, err := Calculate(&extraction.Result{
			ProjectType:            extraction.TypeOneTimeSale,
			AnnualRevenueOrSavings: f(1_000_000),
			FleetSizeOrUnits:       f(2000),
			DevelopmentCost:        f(devCost),
			GrowthRate:             f(5),
		})
		if err != nil {
			t.Fatalf("Calculate failed: %v", err)
		}
		return res.ROI.PaybackPeriodMonths
	}

	prev := run(2_000_000)
	if prev < 0 || prev >= 60 {
		t.Fatalf("break-even with positive yearly net must land in [0,60), got %d", prev)
	}
	for _, dev := range []float64{1_000_000, 500_000, 0} {
		be := run(dev)
		if be > prev {
			t.Errorf("break-even must not increase as dev cost falls: %d after %d", be, prev)
		}
		prev = be
	}
}

func TestFiveYearTotalConsistency(t *testing.T) {
	res, err := Calculate(&extraction.Result{
		ProjectType:            extraction.TypeSubscription,
		AnnualRevenueOrSavings: f(3_000_000),
		FleetSizeOrUnits:       f(1500),
		DevelopmentCost:        f(400_000),
		GrowthRate:             f(8),
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	if len(res.YearlyCostBreakdown) != 5 {
		t.Fatalf("expected 5 projection years, got %d", len(res.YearlyCostBreakdown))
	}

	var sumRev, sumCost float64
	for year, rev := range res.Turnover.Numbers {
		sumRev += rev
		sumCost += res.YearlyCostBreakdown[year].TotalCost
	}
	if math.Abs(sumRev-res.ROI.Revenue) > 1e-6 {
		t.Errorf("yearly revenue sums to %f, total says %f", sumRev, res.ROI.Revenue)
	}
	if math.Abs(sumCost-res.ROI.Cost) > 1e-6 {
		t.Errorf("yearly cost sums to %f, total says %f", sumCost, res.ROI.Cost)
	}
}

func TestEndToEndRevenueExample(t *testing.T) {
	// price = 1,000,000 / 2,000 = 500
	// TAM = 5,000,000 ; SAM = TAM ; SOM = 4,000,000
	// units = SOM / price = 8,000 ; COGS/unit = 125
	res, err := Calculate(&extraction.Result{
		ProjectType:            extraction.TypeOneTimeSale,
		AnnualRevenueOrSavings: f(1_000_000),
		FleetSizeOrUnits:       f(2000),
		GrowthRate:             f(5),
		RoyaltyPercentage:      f(0),
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	if res.UnitEconomics.UnitRevenue != 500 {
		t.Errorf("expected derived price 500, got %f", res.UnitEconomics.UnitRevenue)
	}
	if res.TAM.MarketSize != 5_000_000 {
		t.Errorf("expected TAM 5,000,000, got %f", res.TAM.MarketSize)
	}
	if res.SAM.MarketSize != 5_000_000 {
		t.Errorf("expected SAM 5,000,000, got %f", res.SAM.MarketSize)
	}
	if res.SOM.RevenuePotential != 4_000_000 {
		t.Errorf("expected SOM 4,000,000, got %f", res.SOM.RevenuePotential)
	}
	if res.Volume.UnitsSold != 8000 {
		t.Errorf("expected 8,000 units in year 0, got %d", res.Volume.UnitsSold)
	}
	if res.UnitEconomics.UnitCost != 125 {
		t.Errorf("expected COGS/unit 125, got %f", res.UnitEconomics.UnitCost)
	}

	// Year-0 cross-check: revenue 500×8000 = 4M;
	// cost = COGS 1M + ops 120k + CAC 80k + after-sales 40k = 1.24M.
	y0 := res.YearlyCostBreakdown["2025"]
	if math.Abs(res.Turnover.Numbers["2025"]-4_000_000) > 1e-6 {
		t.Errorf("expected year-0 revenue 4,000,000, got %f", res.Turnover.Numbers["2025"])
	}
	if math.Abs(y0.TotalCost-1_240_000) > 1e-6 {
		t.Errorf("expected year-0 cost 1,240,000, got %f", y0.TotalCost)
	}
}

func TestSavingsPathSuppressesUnits(t *testing.T) {
	res, err := Calculate(&extraction.Result{
		ProjectType:            extraction.TypeCostSavings,
		AnnualRevenueOrSavings: f(2_000_000),
		FleetSizeOrUnits:       f(300), // context only, must not create volume
		PricePerUnit:           f(900),
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	if res.Volume.UnitsSold != 0 {
		t.Errorf("savings project must have zero units, got %d", res.Volume.UnitsSold)
	}
	if res.UnitEconomics.UnitRevenue != 0 || res.UnitEconomics.UnitCost != 0 {
		t.Errorf("savings project must have zero price and COGS, got %f / %f",
			res.UnitEconomics.UnitRevenue, res.UnitEconomics.UnitCost)
	}
	for year, yc := range res.YearlyCostBreakdown {
		if yc.ProjectedVolume != 0 {
			t.Errorf("year %s: savings projected volume must be 0, got %d", year, yc.ProjectedVolume)
		}
		if yc.TotalCOGS != 0 {
			t.Errorf("year %s: savings COGS must be 0, got %f", year, yc.TotalCOGS)
		}
	}
}

func TestSavingsDevCostEstimate(t *testing.T) {
	// No dev cost stated: estimate 15% of the annual base (annual value here).
	// Annual 2M -> estimate 300k, charged in full in year 0 and maintained at
	// 15% (45k) in later years.
	res, err := Calculate(&extraction.Result{
		ProjectType:            extraction.TypeSavings,
		AnnualRevenueOrSavings: f(2_000_000),
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	y0 := res.YearlyCostBreakdown["2025"]
	if math.Abs(y0.OneTimeDevelopment-300_000) > 1e-6 {
		t.Errorf("expected estimated dev cost 300,000 in year 0, got %f", y0.OneTimeDevelopment)
	}
	y1 := res.YearlyCostBreakdown["2026"]
	if math.Abs(y1.AfterSales-45_000) > 1e-6 {
		t.Errorf("expected maintenance 45,000 from year 1, got %f", y1.AfterSales)
	}
	if y1.OneTimeDevelopment != 0 {
		t.Errorf("dev cost must be one-time, got %f in year 1", y1.OneTimeDevelopment)
	}
}
