package pact

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var ipccSourcePattern = regexp.MustCompile(`^AR\d+$`)

// maxExemptedEmissionsPercent caps the share of emissions a footprint may
// leave out.
const maxExemptedEmissionsPercent = 5

// inRange reports whether lo <= v <= hi. NaN is never in range.
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// CarbonFootprintParams are the fields of a CarbonFootprint. Pointers, empty
// strings and empty enums mean absent. Quantities are in kgCO2e per declared
// unit unless stated otherwise.
type CarbonFootprintParams struct {
	DeclaredUnit                       DeclaredUnit
	UnitaryProductAmount               decimal.Decimal
	PCfExcludingBiogenic               decimal.Decimal
	PCfIncludingBiogenic               *decimal.Decimal
	FossilGhgEmissions                 decimal.Decimal
	FossilCarbonContent                decimal.Decimal
	BiogenicCarbonContent              decimal.Decimal
	DLucGhgEmissions                   *decimal.Decimal
	LandManagementGhgEmissions         *decimal.Decimal
	OtherBiogenicGhgEmissions          *decimal.Decimal
	ILucGhgEmissions                   *decimal.Decimal
	BiogenicCarbonWithdrawal           *decimal.Decimal
	AircraftGhgEmissions               *decimal.Decimal
	CharacterizationFactors            CharacterizationFactors
	IpccCharacterizationFactorsSources []string
	CrossSectoralStandardsUsed         CrossSectoralStandardSet
	ProductOrSectorSpecificRules       *ProductOrSectorSpecificRuleSet
	BiogenicAccountingMethodology      BiogenicAccountingMethodology
	BoundaryProcessesDescription       string
	ReferencePeriod                    ReferencePeriod
	GeographicalScope                  CarbonFootprintGeographicalScope
	SecondaryEmissionFactorSources     *EmissionFactorDSSet
	ExemptedEmissionsPercent           float64
	ExemptedEmissionsDescription       string
	PackagingEmissionsIncluded         bool
	PackagingGhgEmissions              *decimal.Decimal
	AllocationRulesDescription         string
	UncertaintyAssessmentDescription   string
	PrimaryDataShare                   *float64
	DQI                                *DataQualityIndicators
	Assurance                          *Assurance
}

func (p CarbonFootprintParams) clone() CarbonFootprintParams {
	p.PCfIncludingBiogenic = cloneptr(p.PCfIncludingBiogenic)
	p.DLucGhgEmissions = cloneptr(p.DLucGhgEmissions)
	p.LandManagementGhgEmissions = cloneptr(p.LandManagementGhgEmissions)
	p.OtherBiogenicGhgEmissions = cloneptr(p.OtherBiogenicGhgEmissions)
	p.ILucGhgEmissions = cloneptr(p.ILucGhgEmissions)
	p.BiogenicCarbonWithdrawal = cloneptr(p.BiogenicCarbonWithdrawal)
	p.AircraftGhgEmissions = cloneptr(p.AircraftGhgEmissions)
	p.PackagingGhgEmissions = cloneptr(p.PackagingGhgEmissions)
	p.PrimaryDataShare = cloneptr(p.PrimaryDataShare)
	p.IpccCharacterizationFactorsSources = append([]string(nil), p.IpccCharacterizationFactorsSources...)
	p.ProductOrSectorSpecificRules = cloneptr(p.ProductOrSectorSpecificRules)
	p.SecondaryEmissionFactorSources = cloneptr(p.SecondaryEmissionFactorSources)
	if p.DQI != nil {
		p.DQI = &DataQualityIndicators{p: p.DQI.p.clone()}
	}
	if p.Assurance != nil {
		a := p.Assurance.Params()
		p.Assurance = &Assurance{p: a}
	}
	return p
}

// CarbonFootprint is the quantified emissions of one declared unit of a
// product, measured over a reference period.
type CarbonFootprint struct {
	p CarbonFootprintParams
}

func NewCarbonFootprint(p CarbonFootprintParams) (*CarbonFootprint, error) {
	p = p.clone()
	if err := validateCarbonFootprint(p); err != nil {
		return nil, err
	}
	return &CarbonFootprint{p: p}, nil
}

// validateCarbonFootprint applies every field and cross-field rule in a fixed
// order and returns the first violation.
func validateCarbonFootprint(p CarbonFootprintParams) error {
	// 1. Declared unit and amount
	if _, err := declaredUnits.parse(string(p.DeclaredUnit)); err != nil {
		return Prefix("declaredUnit", err)
	}
	if !p.UnitaryProductAmount.IsPositive() {
		return rangeErr("unitaryProductAmount", p.UnitaryProductAmount, "must be greater than 0")
	}

	// 2. Emission quantities
	for _, q := range []struct {
		field string
		value decimal.Decimal
	}{
		{"pCfExcludingBiogenic", p.PCfExcludingBiogenic},
		{"fossilGhgEmissions", p.FossilGhgEmissions},
		{"fossilCarbonContent", p.FossilCarbonContent},
		{"biogenicCarbonContent", p.BiogenicCarbonContent},
	} {
		if err := nonNegative(q.field, &q.value); err != nil {
			return err
		}
	}
	for _, q := range []struct {
		field string
		value *decimal.Decimal
	}{
		{FieldDLucGhgEmissions, p.DLucGhgEmissions},
		{FieldLandManagementGhgEmissions, p.LandManagementGhgEmissions},
		{FieldOtherBiogenicGhgEmissions, p.OtherBiogenicGhgEmissions},
		{"iLucGhgEmissions", p.ILucGhgEmissions},
		{"aircraftGhgEmissions", p.AircraftGhgEmissions},
	} {
		if err := nonNegative(q.field, q.value); err != nil {
			return err
		}
	}
	if p.BiogenicCarbonWithdrawal != nil && p.BiogenicCarbonWithdrawal.IsPositive() {
		return rangeErr(FieldBiogenicCarbonWithdrawal, p.BiogenicCarbonWithdrawal, "must be less than or equal to 0")
	}

	// 3. Characterization factors
	if _, err := characterizationFactors.parse(string(p.CharacterizationFactors)); err != nil {
		return Prefix("characterizationFactors", err)
	}
	if len(p.IpccCharacterizationFactorsSources) == 0 {
		return missingErr("ipccCharacterizationFactorsSources")
	}
	for i, src := range p.IpccCharacterizationFactorsSources {
		if !ipccSourcePattern.MatchString(src) {
			return formatErr("ipccCharacterizationFactorsSources"+indexField(i), src, "%q is not an IPCC assessment report (e.g. AR6)", src)
		}
	}

	// 4. Standards and rules
	if p.CrossSectoralStandardsUsed.Len() == 0 {
		return missingErr("crossSectoralStandardsUsed")
	}
	if p.ProductOrSectorSpecificRules != nil && p.ProductOrSectorSpecificRules.Len() == 0 {
		return missingErr("productOrSectorSpecificRules")
	}
	if p.BiogenicAccountingMethodology != "" {
		if _, err := biogenicAccountingMethodologies.parse(string(p.BiogenicAccountingMethodology)); err != nil {
			return Prefix(FieldBiogenicAccountingMethodology, err)
		}
	}
	if strings.TrimSpace(p.BoundaryProcessesDescription) == "" {
		return missingErr("boundaryProcessesDescription")
	}

	// 5. Period and geography
	if p.ReferencePeriod.IsZero() {
		return missingErr("referencePeriod")
	}
	if p.GeographicalScope.IsZero() {
		return missingErr("geography")
	}
	if p.SecondaryEmissionFactorSources != nil && p.SecondaryEmissionFactorSources.Len() == 0 {
		return missingErr("secondaryEmissionFactorSources")
	}

	// 6. Exemptions and packaging
	if !inRange(p.ExemptedEmissionsPercent, 0, maxExemptedEmissionsPercent) {
		return rangeErr("exemptedEmissionsPercent", p.ExemptedEmissionsPercent, "must be between 0 and %d", maxExemptedEmissionsPercent)
	}
	if strings.TrimSpace(p.ExemptedEmissionsDescription) == "" {
		return missingErr("exemptedEmissionsDescription")
	}
	if err := validatePackaging(p.PackagingEmissionsIncluded, p.PackagingGhgEmissions); err != nil {
		return err
	}

	// 7. Data quality
	if p.PrimaryDataShare != nil && !inRange(*p.PrimaryDataShare, 0, 100) {
		return rangeErr(FieldPrimaryDataShare, *p.PrimaryDataShare, "must be between 0 and 100")
	}
	if p.DQI != nil {
		if err := validateDQI(p.DQI.p); err != nil {
			return Prefix(FieldDQI, err)
		}
		if !p.DQI.p.ReferencePeriod.Equal(p.ReferencePeriod) {
			return inconsistentErr(FieldDQI, "data quality indicators must cover the footprint's reference period")
		}
	}

	// 8. Period-dependent requirements
	present := map[string]bool{
		FieldPrimaryDataShare:              p.PrimaryDataShare != nil,
		FieldDQI:                           p.DQI != nil,
		FieldPCfIncludingBiogenic:          p.PCfIncludingBiogenic != nil,
		FieldDLucGhgEmissions:              p.DLucGhgEmissions != nil,
		FieldLandManagementGhgEmissions:    p.LandManagementGhgEmissions != nil,
		FieldOtherBiogenicGhgEmissions:     p.OtherBiogenicGhgEmissions != nil,
		FieldBiogenicCarbonWithdrawal:      p.BiogenicCarbonWithdrawal != nil,
		FieldBiogenicAccountingMethodology: p.BiogenicAccountingMethodology != "",
	}
	for _, f := range RequiredFields(p.ReferencePeriod) {
		if !present[f] {
			return requiredFrom2025Err(f)
		}
	}
	if oneOf := AtLeastOneOfFields(p.ReferencePeriod); len(oneOf) > 0 {
		found := false
		for _, f := range oneOf {
			found = found || present[f]
		}
		if !found {
			return inconsistentErr(oneOf[0], "at least one of %s is required", strings.Join(oneOf, ", "))
		}
	}
	return nil
}

// validatePackaging requires packagingGhgEmissions to be present and
// non-negative exactly when packaging emissions are included.
func validatePackaging(included bool, ghg *decimal.Decimal) error {
	if !included {
		if ghg != nil {
			return inconsistentErr("packagingGhgEmissions", "must not be set when packagingEmissionsIncluded is false")
		}
		return nil
	}
	if ghg == nil {
		return inconsistentErr("packagingGhgEmissions", "is required when packagingEmissionsIncluded is true")
	}
	return nonNegative("packagingGhgEmissions", ghg)
}

func nonNegative(field string, d *decimal.Decimal) error {
	if d != nil && d.IsNegative() {
		return rangeErr(field, d, "must be greater than or equal to 0")
	}
	return nil
}

// Params returns a deep copy of the fields of cf.
func (cf *CarbonFootprint) Params() CarbonFootprintParams { return cf.p.clone() }

func (cf *CarbonFootprint) DeclaredUnit() DeclaredUnit { return cf.p.DeclaredUnit }
func (cf *CarbonFootprint) UnitaryProductAmount() decimal.Decimal {
	return cf.p.UnitaryProductAmount
}
func (cf *CarbonFootprint) PCfExcludingBiogenic() decimal.Decimal {
	return cf.p.PCfExcludingBiogenic
}
func (cf *CarbonFootprint) PCfIncludingBiogenic() *decimal.Decimal {
	return cloneptr(cf.p.PCfIncludingBiogenic)
}
func (cf *CarbonFootprint) ReferencePeriod() ReferencePeriod { return cf.p.ReferencePeriod }
func (cf *CarbonFootprint) GeographicalScope() CarbonFootprintGeographicalScope {
	return cf.p.GeographicalScope
}
func (cf *CarbonFootprint) PackagingEmissionsIncluded() bool { return cf.p.PackagingEmissionsIncluded }
func (cf *CarbonFootprint) PackagingGhgEmissions() *decimal.Decimal {
	return cloneptr(cf.p.PackagingGhgEmissions)
}
func (cf *CarbonFootprint) PrimaryDataShare() *float64 { return cloneptr(cf.p.PrimaryDataShare) }

// DQI returns a copy of the data quality indicators, or nil.
func (cf *CarbonFootprint) DQI() *DataQualityIndicators {
	if cf.p.DQI == nil {
		return nil
	}
	return &DataQualityIndicators{p: cf.p.DQI.p.clone()}
}

// Update applies fn to a copy of the fields and commits it if the result is
// valid. On error cf is left unchanged.
func (cf *CarbonFootprint) Update(fn func(*CarbonFootprintParams)) error {
	next := cf.p.clone()
	fn(&next)
	next = next.clone()
	if err := validateCarbonFootprint(next); err != nil {
		return err
	}
	cf.p = next
	return nil
}

func (cf *CarbonFootprint) SetPackagingEmissionsIncluded(included bool) error {
	return cf.Update(func(p *CarbonFootprintParams) { p.PackagingEmissionsIncluded = included })
}

func (cf *CarbonFootprint) SetPackagingGhgEmissions(v *decimal.Decimal) error {
	return cf.Update(func(p *CarbonFootprintParams) { p.PackagingGhgEmissions = v })
}

// SetPackaging changes both packaging attributes in one step.
func (cf *CarbonFootprint) SetPackaging(included bool, v *decimal.Decimal) error {
	return cf.Update(func(p *CarbonFootprintParams) {
		p.PackagingEmissionsIncluded = included
		p.PackagingGhgEmissions = v
	})
}

func (cf *CarbonFootprint) SetPrimaryDataShare(v *float64) error {
	return cf.Update(func(p *CarbonFootprintParams) { p.PrimaryDataShare = v })
}

func (cf *CarbonFootprint) SetDQI(dqi *DataQualityIndicators) error {
	return cf.Update(func(p *CarbonFootprintParams) { p.DQI = dqi })
}

type carbonFootprintWire struct {
	DeclaredUnit                       DeclaredUnit                    `json:"declaredUnit"`
	UnitaryProductAmount               decimal.Decimal                 `json:"unitaryProductAmount"`
	PCfExcludingBiogenic               decimal.Decimal                 `json:"pCfExcludingBiogenic"`
	PCfIncludingBiogenic               *decimal.Decimal                `json:"pCfIncludingBiogenic,omitempty"`
	FossilGhgEmissions                 decimal.Decimal                 `json:"fossilGhgEmissions"`
	FossilCarbonContent                decimal.Decimal                 `json:"fossilCarbonContent"`
	BiogenicCarbonContent              decimal.Decimal                 `json:"biogenicCarbonContent"`
	DLucGhgEmissions                   *decimal.Decimal                `json:"dLucGhgEmissions,omitempty"`
	LandManagementGhgEmissions         *decimal.Decimal                `json:"landManagementGhgEmissions,omitempty"`
	OtherBiogenicGhgEmissions          *decimal.Decimal                `json:"otherBiogenicGhgEmissions,omitempty"`
	ILucGhgEmissions                   *decimal.Decimal                `json:"iLucGhgEmissions,omitempty"`
	BiogenicCarbonWithdrawal           *decimal.Decimal                `json:"biogenicCarbonWithdrawal,omitempty"`
	AircraftGhgEmissions               *decimal.Decimal                `json:"aircraftGhgEmissions,omitempty"`
	CharacterizationFactors            CharacterizationFactors         `json:"characterizationFactors"`
	IpccCharacterizationFactorsSources []string                        `json:"ipccCharacterizationFactorsSources"`
	CrossSectoralStandardsUsed         CrossSectoralStandardSet        `json:"crossSectoralStandardsUsed"`
	ProductOrSectorSpecificRules       *ProductOrSectorSpecificRuleSet `json:"productOrSectorSpecificRules,omitempty"`
	BiogenicAccountingMethodology      BiogenicAccountingMethodology   `json:"biogenicAccountingMethodology,omitempty"`
	BoundaryProcessesDescription       string                          `json:"boundaryProcessesDescription"`
	ReferencePeriodStart               DateTime                        `json:"referencePeriodStart"`
	ReferencePeriodEnd                 DateTime                        `json:"referencePeriodEnd"`
	GeographyCountrySubdivision        string                          `json:"geographyCountrySubdivision,omitempty"`
	GeographyCountry                   string                          `json:"geographyCountry,omitempty"`
	GeographyRegionOrSubregion         RegionOrSubregion               `json:"geographyRegionOrSubregion,omitempty"`
	SecondaryEmissionFactorSources     *EmissionFactorDSSet            `json:"secondaryEmissionFactorSources,omitempty"`
	ExemptedEmissionsPercent           float64                         `json:"exemptedEmissionsPercent"`
	ExemptedEmissionsDescription       string                          `json:"exemptedEmissionsDescription"`
	PackagingEmissionsIncluded         bool                            `json:"packagingEmissionsIncluded"`
	PackagingGhgEmissions              *decimal.Decimal                `json:"packagingGhgEmissions,omitempty"`
	AllocationRulesDescription         string                          `json:"allocationRulesDescription,omitempty"`
	UncertaintyAssessmentDescription   string                          `json:"uncertaintyAssessmentDescription,omitempty"`
	PrimaryDataShare                   *float64                        `json:"primaryDataShare,omitempty"`
	DQI                                *DataQualityIndicators          `json:"dqi,omitempty"`
	Assurance                          *Assurance                      `json:"assurance,omitempty"`
}

// MarshalJSON emits the wire form in schema order. Absent attributes are
// omitted; a global geographical scope has no geography attribute.
func (cf *CarbonFootprint) MarshalJSON() ([]byte, error) {
	p := cf.p
	geo := p.GeographicalScope.Input()
	return json.Marshal(carbonFootprintWire{
		DeclaredUnit:                       p.DeclaredUnit,
		UnitaryProductAmount:               p.UnitaryProductAmount,
		PCfExcludingBiogenic:               p.PCfExcludingBiogenic,
		PCfIncludingBiogenic:               p.PCfIncludingBiogenic,
		FossilGhgEmissions:                 p.FossilGhgEmissions,
		FossilCarbonContent:                p.FossilCarbonContent,
		BiogenicCarbonContent:              p.BiogenicCarbonContent,
		DLucGhgEmissions:                   p.DLucGhgEmissions,
		LandManagementGhgEmissions:         p.LandManagementGhgEmissions,
		OtherBiogenicGhgEmissions:          p.OtherBiogenicGhgEmissions,
		ILucGhgEmissions:                   p.ILucGhgEmissions,
		BiogenicCarbonWithdrawal:           p.BiogenicCarbonWithdrawal,
		AircraftGhgEmissions:               p.AircraftGhgEmissions,
		CharacterizationFactors:            p.CharacterizationFactors,
		IpccCharacterizationFactorsSources: p.IpccCharacterizationFactorsSources,
		CrossSectoralStandardsUsed:         p.CrossSectoralStandardsUsed,
		ProductOrSectorSpecificRules:       p.ProductOrSectorSpecificRules,
		BiogenicAccountingMethodology:      p.BiogenicAccountingMethodology,
		BoundaryProcessesDescription:       p.BoundaryProcessesDescription,
		ReferencePeriodStart:               p.ReferencePeriod.Start(),
		ReferencePeriodEnd:                 p.ReferencePeriod.End(),
		GeographyCountrySubdivision:        geo.Subdivision,
		GeographyCountry:                   geo.Country,
		GeographyRegionOrSubregion:         geo.Region,
		SecondaryEmissionFactorSources:     p.SecondaryEmissionFactorSources,
		ExemptedEmissionsPercent:           p.ExemptedEmissionsPercent,
		ExemptedEmissionsDescription:       p.ExemptedEmissionsDescription,
		PackagingEmissionsIncluded:         p.PackagingEmissionsIncluded,
		PackagingGhgEmissions:              p.PackagingGhgEmissions,
		AllocationRulesDescription:         p.AllocationRulesDescription,
		UncertaintyAssessmentDescription:   p.UncertaintyAssessmentDescription,
		PrimaryDataShare:                   p.PrimaryDataShare,
		DQI:                                p.DQI,
		Assurance:                          p.Assurance,
	})
}
