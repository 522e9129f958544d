package pact

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func f64(v float64) *float64 { return &v }

func dqr(r int) *DataQualityRating {
	v := DataQualityRating(r)
	return &v
}

func mustReferencePeriod(t *testing.T, start, end string) ReferencePeriod {
	t.Helper()
	rp, err := NewReferencePeriod(MustParseDateTime(start), MustParseDateTime(end))
	if err != nil {
		t.Fatalf("NewReferencePeriod() error = %v", err)
	}
	return rp
}

func fullDQI(t *testing.T, rp ReferencePeriod) *DataQualityIndicators {
	t.Helper()
	d, err := NewDataQualityIndicators(DataQualityIndicatorsParams{
		ReferencePeriod:  rp,
		CoveragePercent:  f64(78),
		TechnologicalDQR: dqr(2),
		TemporalDQR:      dqr(2),
		GeographicalDQR:  dqr(1),
		CompletenessDQR:  dqr(2),
		ReliabilityDQR:   dqr(3),
	})
	if err != nil {
		t.Fatalf("NewDataQualityIndicators() error = %v", err)
	}
	return d
}

// pre2025Params is a valid footprint for calendar year 2023.
func pre2025Params(t *testing.T) CarbonFootprintParams {
	t.Helper()
	standards, err := NewCrossSectoralStandardSet(CrossSectoralStandardGHGProtocol)
	if err != nil {
		t.Fatalf("NewCrossSectoralStandardSet() error = %v", err)
	}
	return CarbonFootprintParams{
		DeclaredUnit:                       DeclaredUnitKilogram,
		UnitaryProductAmount:               decimal.RequireFromString("1"),
		PCfExcludingBiogenic:               decimal.RequireFromString("2.5"),
		FossilGhgEmissions:                 decimal.RequireFromString("2"),
		FossilCarbonContent:                decimal.RequireFromString("0.3"),
		BiogenicCarbonContent:              decimal.RequireFromString("0"),
		CharacterizationFactors:            CharacterizationFactorsAR6,
		IpccCharacterizationFactorsSources: []string{"AR6"},
		CrossSectoralStandardsUsed:         standards,
		BoundaryProcessesDescription:       "Cradle-to-gate including upstream transport",
		ReferencePeriod:                    mustReferencePeriod(t, "2023-01-01T00:00:00Z", "2023-12-31T23:59:59Z"),
		GeographicalScope:                  GlobalScope(),
		ExemptedEmissionsPercent:           0,
		ExemptedEmissionsDescription:       "No exemptions",
		PrimaryDataShare:                   f64(56.12),
	}
}

// post2025Params is a valid footprint for calendar year 2025 carrying every
// period-dependent attribute.
func post2025Params(t *testing.T) CarbonFootprintParams {
	t.Helper()
	p := pre2025Params(t)
	p.ReferencePeriod = mustReferencePeriod(t, "2025-01-01T00:00:00Z", "2025-12-31T00:00:00Z")
	p.DQI = fullDQI(t, p.ReferencePeriod)
	p.PCfIncludingBiogenic = dec("-0.4")
	p.DLucGhgEmissions = dec("0.1")
	p.LandManagementGhgEmissions = dec("0.05")
	p.OtherBiogenicGhgEmissions = dec("0")
	p.BiogenicCarbonWithdrawal = dec("-1.2")
	p.BiogenicAccountingMethodology = BiogenicAccountingPEF
	return p
}

func TestNewCarbonFootprintValid(t *testing.T) {
	if _, err := NewCarbonFootprint(pre2025Params(t)); err != nil {
		t.Errorf("pre-2025 footprint error = %v", err)
	}
	if _, err := NewCarbonFootprint(post2025Params(t)); err != nil {
		t.Errorf("post-2025 footprint error = %v", err)
	}
}

func TestCarbonFootprintPost2025RequiredFields(t *testing.T) {
	tests := []struct {
		field  string
		remove func(p *CarbonFootprintParams)
	}{
		{FieldPrimaryDataShare, func(p *CarbonFootprintParams) { p.PrimaryDataShare = nil }},
		{FieldDQI, func(p *CarbonFootprintParams) { p.DQI = nil }},
		{FieldPCfIncludingBiogenic, func(p *CarbonFootprintParams) { p.PCfIncludingBiogenic = nil }},
		{FieldDLucGhgEmissions, func(p *CarbonFootprintParams) { p.DLucGhgEmissions = nil }},
		{FieldLandManagementGhgEmissions, func(p *CarbonFootprintParams) { p.LandManagementGhgEmissions = nil }},
		{FieldOtherBiogenicGhgEmissions, func(p *CarbonFootprintParams) { p.OtherBiogenicGhgEmissions = nil }},
		{FieldBiogenicCarbonWithdrawal, func(p *CarbonFootprintParams) { p.BiogenicCarbonWithdrawal = nil }},
		{FieldBiogenicAccountingMethodology, func(p *CarbonFootprintParams) { p.BiogenicAccountingMethodology = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			p := post2025Params(t)
			tt.remove(&p)
			_, err := NewCarbonFootprint(p)
			if !errors.Is(err, ErrInconsistent) {
				t.Fatalf("NewCarbonFootprint() error = %v, want inconsistent", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Errorf("error field = %v, want %s", err, tt.field)
			}
		})
	}
}

func TestCarbonFootprintPre2025AtLeastOne(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(t *testing.T, p *CarbonFootprintParams)
		wantErr bool
		errMsg  string
	}{
		{
			name: "primary data share only",
			edit: func(t *testing.T, p *CarbonFootprintParams) {},
		},
		{
			name: "partial dqi only",
			edit: func(t *testing.T, p *CarbonFootprintParams) {
				p.PrimaryDataShare = nil
				d, err := NewDataQualityIndicators(DataQualityIndicatorsParams{ReferencePeriod: p.ReferencePeriod, TemporalDQR: dqr(1)})
				if err != nil {
					t.Fatalf("NewDataQualityIndicators() error = %v", err)
				}
				p.DQI = d
			},
		},
		{
			name:    "neither",
			edit:    func(t *testing.T, p *CarbonFootprintParams) { p.PrimaryDataShare = nil },
			wantErr: true,
			errMsg:  "primaryDataShare: at least one of primaryDataShare, dqi is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pre2025Params(t)
			tt.edit(t, &p)
			_, err := NewCarbonFootprint(p)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewCarbonFootprint() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("error message = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestCarbonFootprintFieldRules(t *testing.T) {
	tests := []struct {
		name     string
		edit     func(p *CarbonFootprintParams)
		wantKind error
		field    string
	}{
		{"zero unitary amount", func(p *CarbonFootprintParams) { p.UnitaryProductAmount = decimal.Zero }, ErrOutOfRange, "unitaryProductAmount"},
		{"negative pcf excluding biogenic", func(p *CarbonFootprintParams) { p.PCfExcludingBiogenic = *dec("-1") }, ErrOutOfRange, "pCfExcludingBiogenic"},
		{"negative fossil emissions", func(p *CarbonFootprintParams) { p.FossilGhgEmissions = *dec("-0.1") }, ErrOutOfRange, "fossilGhgEmissions"},
		{"negative aircraft", func(p *CarbonFootprintParams) { p.AircraftGhgEmissions = dec("-2") }, ErrOutOfRange, "aircraftGhgEmissions"},
		{"positive withdrawal", func(p *CarbonFootprintParams) { p.BiogenicCarbonWithdrawal = dec("0.5") }, ErrOutOfRange, "biogenicCarbonWithdrawal"},
		{"exempted above 5", func(p *CarbonFootprintParams) { p.ExemptedEmissionsPercent = 5.01 }, ErrOutOfRange, "exemptedEmissionsPercent"},
		{"negative exempted", func(p *CarbonFootprintParams) { p.ExemptedEmissionsPercent = -1 }, ErrOutOfRange, "exemptedEmissionsPercent"},
		{"primary share above 100", func(p *CarbonFootprintParams) { p.PrimaryDataShare = f64(100.5) }, ErrOutOfRange, "primaryDataShare"},
		{"exempted NaN", func(p *CarbonFootprintParams) { p.ExemptedEmissionsPercent = math.NaN() }, ErrOutOfRange, "exemptedEmissionsPercent"},
		{"exempted infinite", func(p *CarbonFootprintParams) { p.ExemptedEmissionsPercent = math.Inf(1) }, ErrOutOfRange, "exemptedEmissionsPercent"},
		{"primary share NaN", func(p *CarbonFootprintParams) { p.PrimaryDataShare = f64(math.NaN()) }, ErrOutOfRange, "primaryDataShare"},
		{"primary share negative infinity", func(p *CarbonFootprintParams) { p.PrimaryDataShare = f64(math.Inf(-1)) }, ErrOutOfRange, "primaryDataShare"},
		{"dqi coverage NaN", func(p *CarbonFootprintParams) {
			p.PrimaryDataShare = nil
			p.DQI = &DataQualityIndicators{p: DataQualityIndicatorsParams{ReferencePeriod: p.ReferencePeriod, CoveragePercent: f64(math.NaN())}}
		}, ErrOutOfRange, "dqi.coveragePercent"},
		{"unknown unit", func(p *CarbonFootprintParams) { p.DeclaredUnit = "gallon" }, ErrInvalidFormat, "declaredUnit"},
		{"lowercase ipcc source", func(p *CarbonFootprintParams) { p.IpccCharacterizationFactorsSources = []string{"AR6", "ar5"} }, ErrInvalidFormat, "ipccCharacterizationFactorsSources[1]"},
		{"no ipcc source", func(p *CarbonFootprintParams) { p.IpccCharacterizationFactorsSources = nil }, ErrMissingArgument, "ipccCharacterizationFactorsSources"},
		{"no standards", func(p *CarbonFootprintParams) { p.CrossSectoralStandardsUsed = CrossSectoralStandardSet{} }, ErrMissingArgument, "crossSectoralStandardsUsed"},
		{"blank boundary description", func(p *CarbonFootprintParams) { p.BoundaryProcessesDescription = "  " }, ErrMissingArgument, "boundaryProcessesDescription"},
		{"no exemption description", func(p *CarbonFootprintParams) { p.ExemptedEmissionsDescription = "" }, ErrMissingArgument, "exemptedEmissionsDescription"},
		{"no geography", func(p *CarbonFootprintParams) { p.GeographicalScope = CarbonFootprintGeographicalScope{} }, ErrMissingArgument, "geography"},
		{"no reference period", func(p *CarbonFootprintParams) { p.ReferencePeriod = ReferencePeriod{} }, ErrMissingArgument, "referencePeriod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pre2025Params(t)
			tt.edit(&p)
			_, err := NewCarbonFootprint(p)
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("NewCarbonFootprint() error = %v, want kind %v", err, tt.wantKind)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Errorf("error field = %v, want %s", err, tt.field)
			}
		})
	}
}

func TestCarbonFootprintPCfIncludingBiogenicAnySign(t *testing.T) {
	for _, v := range []string{"-3.2", "0", "4.1"} {
		p := pre2025Params(t)
		p.PCfIncludingBiogenic = dec(v)
		if _, err := NewCarbonFootprint(p); err != nil {
			t.Errorf("pCfIncludingBiogenic = %s error = %v", v, err)
		}
	}
}

func TestCarbonFootprintPackaging(t *testing.T) {
	t.Run("excluded rejects a value", func(t *testing.T) {
		cf, err := NewCarbonFootprint(pre2025Params(t))
		if err != nil {
			t.Fatalf("NewCarbonFootprint() error = %v", err)
		}
		if err := cf.SetPackagingEmissionsIncluded(false); err != nil {
			t.Fatalf("SetPackagingEmissionsIncluded(false) error = %v", err)
		}
		err = cf.SetPackagingGhgEmissions(dec("1.5"))
		if !errors.Is(err, ErrInconsistent) {
			t.Errorf("SetPackagingGhgEmissions() error = %v, want inconsistent", err)
		}
		if cf.PackagingGhgEmissions() != nil {
			t.Errorf("PackagingGhgEmissions() = %v after failed set, want nil", cf.PackagingGhgEmissions())
		}
	})

	t.Run("included rejects negative and keeps non-negative", func(t *testing.T) {
		cf, err := NewCarbonFootprint(pre2025Params(t))
		if err != nil {
			t.Fatalf("NewCarbonFootprint() error = %v", err)
		}
		if err := cf.SetPackaging(true, dec("0.2")); err != nil {
			t.Fatalf("SetPackaging() error = %v", err)
		}
		if !cf.PackagingEmissionsIncluded() {
			t.Fatal("PackagingEmissionsIncluded() = false, want true")
		}

		err = cf.SetPackagingGhgEmissions(dec("-0.1"))
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("SetPackagingGhgEmissions(negative) error = %v, want out of range", err)
		}
		if err := cf.SetPackagingGhgEmissions(dec("1.5")); err != nil {
			t.Fatalf("SetPackagingGhgEmissions(1.5) error = %v", err)
		}
		if got := cf.PackagingGhgEmissions(); got == nil || got.String() != "1.5" {
			t.Errorf("PackagingGhgEmissions() = %v, want 1.5", got)
		}

		out, err := json.Marshal(cf)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		if !strings.Contains(string(out), `"packagingEmissionsIncluded":true,"packagingGhgEmissions":"1.5"`) {
			t.Errorf("Marshal() = %s, missing packaging attributes", out)
		}
	})

	t.Run("included requires a value", func(t *testing.T) {
		cf, _ := NewCarbonFootprint(pre2025Params(t))
		if err := cf.SetPackagingEmissionsIncluded(true); !errors.Is(err, ErrInconsistent) {
			t.Errorf("SetPackagingEmissionsIncluded(true) error = %v, want inconsistent", err)
		}
	})
}

func TestCarbonFootprintDQIPeriodMustMatch(t *testing.T) {
	p := pre2025Params(t)
	other := mustReferencePeriod(t, "2022-01-01T00:00:00Z", "2022-12-31T00:00:00Z")
	p.DQI = fullDQI(t, other)
	_, err := NewCarbonFootprint(p)
	if !errors.Is(err, ErrInconsistent) || !strings.HasPrefix(err.Error(), "dqi: ") {
		t.Errorf("NewCarbonFootprint() error = %v", err)
	}
}

func TestCarbonFootprintNestedDQIError(t *testing.T) {
	p := post2025Params(t)
	dqiParams := p.DQI.Params()
	dqiParams.ReliabilityDQR = nil
	p.DQI = &DataQualityIndicators{p: dqiParams}

	_, err := NewCarbonFootprint(p)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "dqi.reliabilityDQR" {
		t.Errorf("error = %v, want field dqi.reliabilityDQR", err)
	}
}

func TestCarbonFootprintUpdateIsAtomic(t *testing.T) {
	cf, err := NewCarbonFootprint(pre2025Params(t))
	if err != nil {
		t.Fatalf("NewCarbonFootprint() error = %v", err)
	}
	err = cf.Update(func(p *CarbonFootprintParams) {
		p.PCfExcludingBiogenic = *dec("9")
		p.UnitaryProductAmount = decimal.Zero
	})
	if err == nil {
		t.Fatal("Update() error = nil, want error")
	}
	if cf.PCfExcludingBiogenic().String() != "2.5" {
		t.Errorf("PCfExcludingBiogenic() = %v after failed update, want 2.5", cf.PCfExcludingBiogenic())
	}
}

func TestCarbonFootprintOwnsItsFields(t *testing.T) {
	p := pre2025Params(t)
	cf, err := NewCarbonFootprint(p)
	if err != nil {
		t.Fatalf("NewCarbonFootprint() error = %v", err)
	}

	*p.PrimaryDataShare = 500
	p.IpccCharacterizationFactorsSources[0] = "bogus"
	if got := cf.PrimaryDataShare(); got == nil || *got != 56.12 {
		t.Errorf("PrimaryDataShare() = %v, constructor input leaked", got)
	}

	got := cf.Params()
	got.IpccCharacterizationFactorsSources[0] = "bogus"
	if cf.Params().IpccCharacterizationFactorsSources[0] != "AR6" {
		t.Error("Params() exposes internal slice")
	}
}

func TestCarbonFootprintJSON(t *testing.T) {
	p := post2025Params(t)
	scope, err := NewCarbonFootprintGeographicalScope(GeographicalScopeInput{Country: "DE"})
	if err != nil {
		t.Fatalf("NewCarbonFootprintGeographicalScope() error = %v", err)
	}
	p.GeographicalScope = scope
	cf, err := NewCarbonFootprint(p)
	if err != nil {
		t.Fatalf("NewCarbonFootprint() error = %v", err)
	}

	out, err := json.Marshal(cf)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	s := string(out)

	for _, want := range []string{
		`{"declaredUnit":"kilogram","unitaryProductAmount":"1","pCfExcludingBiogenic":"2.5","pCfIncludingBiogenic":"-0.4"`,
		`"crossSectoralStandardsUsed":["GHG Protocol Product standard"]`,
		`"referencePeriodStart":"2025-01-01T00:00:00Z","referencePeriodEnd":"2025-12-31T00:00:00Z","geographyCountry":"DE"`,
		`"biogenicAccountingMethodology":"PEF"`,
		`"dqi":{"coveragePercent":78,"technologicalDQR":2,"temporalDQR":2,"geographicalDQR":1,"completenessDQR":2,"reliabilityDQR":3}`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("Marshal() = %s\nmissing %s", s, want)
		}
	}
	for _, absent := range []string{"packagingGhgEmissions", "geographyRegionOrSubregion", "assurance", "null"} {
		if strings.Contains(s, absent) {
			t.Errorf("Marshal() contains %q: %s", absent, s)
		}
	}
}

func TestCarbonFootprintGlobalScopeHasNoGeographyKeys(t *testing.T) {
	cf, err := NewCarbonFootprint(pre2025Params(t))
	if err != nil {
		t.Fatalf("NewCarbonFootprint() error = %v", err)
	}
	out, _ := json.Marshal(cf)
	if strings.Contains(string(out), `"geography`) {
		t.Errorf("Marshal() = %s, want no geography attributes", out)
	}
}

func TestRequiredFields(t *testing.T) {
	pre := mustReferencePeriod(t, "2024-01-01T00:00:00Z", "2024-12-31T00:00:00Z")
	post := mustReferencePeriod(t, "2024-06-01T00:00:00Z", "2025-05-31T00:00:00Z")

	if got := RequiredFields(pre); len(got) != 0 {
		t.Errorf("RequiredFields(pre-2025) = %v, want none", got)
	}
	if got := AtLeastOneOfFields(pre); len(got) != 2 {
		t.Errorf("AtLeastOneOfFields(pre-2025) = %v", got)
	}

	got := RequiredFields(post)
	if len(got) != 8 {
		t.Fatalf("RequiredFields(post-2025) = %v, want 8 fields", got)
	}
	got[0] = "mutated"
	if RequiredFields(post)[0] != FieldPrimaryDataShare {
		t.Error("RequiredFields() exposes its internal list")
	}
	if got := AtLeastOneOfFields(post); got != nil {
		t.Errorf("AtLeastOneOfFields(post-2025) = %v, want nil", got)
	}
}
