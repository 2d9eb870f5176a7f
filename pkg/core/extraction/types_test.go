package extraction

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	in := (&Result{}).Normalize()

	if in.ProjectName != "Business Analysis" {
		t.Errorf("empty project name should default, got %q", in.ProjectName)
	}
	if in.HasAnnualValue || in.HasFleetSize || in.HasPrice || in.HasStreams {
		t.Error("absent optionals must not report as present")
	}
	if in.DevelopmentCost != 0 {
		t.Errorf("default dev cost should be 0, got %f", in.DevelopmentCost)
	}
	if in.GrowthRate != 5 {
		t.Errorf("default growth rate should be 5, got %f", in.GrowthRate)
	}
	if in.TakeRate != 10 || in.MarketCoverage != 50 {
		t.Errorf("default take rate / coverage should be 10 / 50, got %f / %f",
			in.TakeRate, in.MarketCoverage)
	}
}

func TestNormalizeExplicitZeroIsPresent(t *testing.T) {
	// A stated zero differs from an absent value: it must set the Has flag.
	r := &Result{
		AnnualRevenueOrSavings: Float64Ptr(0),
		GrowthRate:             Float64Ptr(0),
	}
	in := r.Normalize()
	if !in.HasAnnualValue {
		t.Error("explicit annual value of 0 must count as present")
	}
	if in.GrowthRate != 0 {
		t.Errorf("explicit growth rate 0 must not fall back to default, got %f", in.GrowthRate)
	}
}

func TestNormalizeStreams(t *testing.T) {
	r := &Result{StreamValues: []float64{1_000_000, 2_000_000}}
	in := r.Normalize()
	if !in.HasStreams || in.StreamTotal != 3_000_000 {
		t.Errorf("expected stream total 3,000,000 present, got %f present=%v",
			in.StreamTotal, in.HasStreams)
	}

	// An all-zero stream list is treated as absent.
	r = &Result{StreamValues: []float64{0, 0}}
	if in := r.Normalize(); in.HasStreams {
		t.Error("zero-sum stream list must not count as present")
	}
}

func TestProjectTypeClassification(t *testing.T) {
	for _, typ := range []ProjectType{TypeSavings, TypeCostSavings, TypeEfficiency} {
		if !typ.IsSavings() {
			t.Errorf("%s should be on the savings path", typ)
		}
	}
	for _, typ := range []ProjectType{TypeOneTimeSale, TypeSubscription, TypeRoyalty, TypeMixed, ProjectType("platform")} {
		if typ.IsSavings() {
			t.Errorf("%s should be on the revenue path", typ)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	r := &Result{
		ProjectName:      "Original",
		FleetSizeOrUnits: Float64Ptr(1000),
		StreamValues:     []float64{100},
	}
	c := r.Clone()
	*c.FleetSizeOrUnits = 2000
	c.StreamValues[0] = 999

	if *r.FleetSizeOrUnits != 1000 {
		t.Errorf("clone mutation leaked into original fleet size: %f", *r.FleetSizeOrUnits)
	}
	if r.StreamValues[0] != 100 {
		t.Errorf("clone mutation leaked into original streams: %f", r.StreamValues[0])
	}
}
