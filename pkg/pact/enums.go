package pact

import (
	"encoding/json"
	"strings"
)

// enumTable is the single lookup for a closed string enumeration. The wire
// representation of a variant is its declared string.
type enumTable[T ~string] struct {
	name   string
	values []T
	index  map[string]T
}

func newEnumTable[T ~string](name string, values ...T) enumTable[T] {
	index := make(map[string]T, len(values))
	for _, v := range values {
		index[string(v)] = v
	}
	return enumTable[T]{name: name, values: values, index: index}
}

func (e enumTable[T]) parse(s string) (T, error) {
	if v, ok := e.index[s]; ok {
		return v, nil
	}
	if strings.TrimSpace(s) == "" {
		return "", missingErr("")
	}
	allowed := make([]string, len(e.values))
	for i, v := range e.values {
		allowed[i] = string(v)
	}
	return "", formatErr("", s, "invalid %s %q (must be one of: %s)", e.name, s, strings.Join(allowed, ", "))
}

func (e enumTable[T]) all() []T {
	out := make([]T, len(e.values))
	copy(out, e.values)
	return out
}

func unmarshalEnum[T ~string](data []byte, e enumTable[T], dst *T) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &ValidationError{Kind: ErrTypeMismatch, Value: string(data), Message: e.name + " must be a string"}
	}
	v, err := e.parse(s)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// DeclaredUnit is the unit of analysis of a product.
type DeclaredUnit string

const (
	DeclaredUnitLiter        DeclaredUnit = "liter"
	DeclaredUnitKilogram     DeclaredUnit = "kilogram"
	DeclaredUnitCubicMeter   DeclaredUnit = "cubic meter"
	DeclaredUnitKilowattHour DeclaredUnit = "kilowatt hour"
	DeclaredUnitMegajoule    DeclaredUnit = "megajoule"
	DeclaredUnitTonKilometer DeclaredUnit = "ton kilometer"
	DeclaredUnitSquareMeter  DeclaredUnit = "square meter"
)

var declaredUnits = newEnumTable("declared unit",
	DeclaredUnitLiter, DeclaredUnitKilogram, DeclaredUnitCubicMeter, DeclaredUnitKilowattHour,
	DeclaredUnitMegajoule, DeclaredUnitTonKilometer, DeclaredUnitSquareMeter)

func ParseDeclaredUnit(s string) (DeclaredUnit, error) { return declaredUnits.parse(s) }
func DeclaredUnits() []DeclaredUnit                    { return declaredUnits.all() }
func (u DeclaredUnit) String() string                  { return string(u) }
func (u *DeclaredUnit) UnmarshalJSON(b []byte) error   { return unmarshalEnum(b, declaredUnits, u) }

// CharacterizationFactors names the IPCC assessment report whose global
// warming potentials were applied.
type CharacterizationFactors string

const (
	CharacterizationFactorsAR5 CharacterizationFactors = "AR5"
	CharacterizationFactorsAR6 CharacterizationFactors = "AR6"
)

var characterizationFactors = newEnumTable("characterization factors",
	CharacterizationFactorsAR5, CharacterizationFactorsAR6)

func ParseCharacterizationFactors(s string) (CharacterizationFactors, error) {
	return characterizationFactors.parse(s)
}
func (c CharacterizationFactors) String() string { return string(c) }
func (c *CharacterizationFactors) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, characterizationFactors, c)
}

// CrossSectoralStandard is an accounting standard used to calculate a PCF.
type CrossSectoralStandard string

const (
	CrossSectoralStandardGHGProtocol CrossSectoralStandard = "GHG Protocol Product standard"
	CrossSectoralStandardISO14067    CrossSectoralStandard = "ISO Standard 14067"
	CrossSectoralStandardISO14044    CrossSectoralStandard = "ISO Standard 14044"
)

var crossSectoralStandards = newEnumTable("cross-sectoral standard",
	CrossSectoralStandardGHGProtocol, CrossSectoralStandardISO14067, CrossSectoralStandardISO14044)

func ParseCrossSectoralStandard(s string) (CrossSectoralStandard, error) {
	return crossSectoralStandards.parse(s)
}
func (c CrossSectoralStandard) String() string { return string(c) }
func (c *CrossSectoralStandard) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, crossSectoralStandards, c)
}

// BiogenicAccountingMethodology is the standard followed to account for
// biogenic emissions and removals.
type BiogenicAccountingMethodology string

const (
	BiogenicAccountingPEF     BiogenicAccountingMethodology = "PEF"
	BiogenicAccountingISO     BiogenicAccountingMethodology = "ISO"
	BiogenicAccountingGHPG    BiogenicAccountingMethodology = "GHPG"
	BiogenicAccountingQuantis BiogenicAccountingMethodology = "Quantis"
)

var biogenicAccountingMethodologies = newEnumTable("biogenic accounting methodology",
	BiogenicAccountingPEF, BiogenicAccountingISO, BiogenicAccountingGHPG, BiogenicAccountingQuantis)

func ParseBiogenicAccountingMethodology(s string) (BiogenicAccountingMethodology, error) {
	return biogenicAccountingMethodologies.parse(s)
}
func (b BiogenicAccountingMethodology) String() string { return string(b) }
func (b *BiogenicAccountingMethodology) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, biogenicAccountingMethodologies, b)
}

// ProductOrSectorSpecificRuleOperator is the body that published a set of
// product or sector specific rules.
type ProductOrSectorSpecificRuleOperator string

const (
	RuleOperatorPEF              ProductOrSectorSpecificRuleOperator = "PEF"
	RuleOperatorEPDInternational ProductOrSectorSpecificRuleOperator = "EPD International"
	RuleOperatorOther            ProductOrSectorSpecificRuleOperator = "Other"
)

var ruleOperators = newEnumTable("rule operator",
	RuleOperatorPEF, RuleOperatorEPDInternational, RuleOperatorOther)

func ParseProductOrSectorSpecificRuleOperator(s string) (ProductOrSectorSpecificRuleOperator, error) {
	return ruleOperators.parse(s)
}
func (o ProductOrSectorSpecificRuleOperator) String() string { return string(o) }
func (o *ProductOrSectorSpecificRuleOperator) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, ruleOperators, o)
}

// RegionOrSubregion is a UN M49 region or subregion.
type RegionOrSubregion string

const (
	RegionAfrica                      RegionOrSubregion = "Africa"
	RegionAmericas                    RegionOrSubregion = "Americas"
	RegionAsia                        RegionOrSubregion = "Asia"
	RegionEurope                      RegionOrSubregion = "Europe"
	RegionOceania                     RegionOrSubregion = "Oceania"
	RegionAustraliaAndNewZealand      RegionOrSubregion = "Australia and New Zealand"
	RegionCentralAsia                 RegionOrSubregion = "Central Asia"
	RegionEasternAsia                 RegionOrSubregion = "Eastern Asia"
	RegionEasternEurope               RegionOrSubregion = "Eastern Europe"
	RegionLatinAmericaAndTheCaribbean RegionOrSubregion = "Latin America and the Caribbean"
	RegionMelanesia                   RegionOrSubregion = "Melanesia"
	RegionMicronesia                  RegionOrSubregion = "Micronesia"
	RegionNorthernAfrica              RegionOrSubregion = "Northern Africa"
	RegionNorthernAmerica             RegionOrSubregion = "Northern America"
	RegionNorthernEurope              RegionOrSubregion = "Northern Europe"
	RegionPolynesia                   RegionOrSubregion = "Polynesia"
	RegionSouthEasternAsia            RegionOrSubregion = "South-eastern Asia"
	RegionSouthernAsia                RegionOrSubregion = "Southern Asia"
	RegionSouthernEurope              RegionOrSubregion = "Southern Europe"
	RegionSubSaharanAfrica            RegionOrSubregion = "Sub-Saharan Africa"
	RegionWesternAsia                 RegionOrSubregion = "Western Asia"
	RegionWesternEurope               RegionOrSubregion = "Western Europe"
)

var regions = newEnumTable("region or subregion",
	RegionAfrica, RegionAmericas, RegionAsia, RegionEurope, RegionOceania,
	RegionAustraliaAndNewZealand, RegionCentralAsia, RegionEasternAsia, RegionEasternEurope,
	RegionLatinAmericaAndTheCaribbean, RegionMelanesia, RegionMicronesia, RegionNorthernAfrica,
	RegionNorthernAmerica, RegionNorthernEurope, RegionPolynesia, RegionSouthEasternAsia,
	RegionSouthernAsia, RegionSouthernEurope, RegionSubSaharanAfrica, RegionWesternAsia,
	RegionWesternEurope)

func ParseRegionOrSubregion(s string) (RegionOrSubregion, error) { return regions.parse(s) }
func RegionsOrSubregions() []RegionOrSubregion                   { return regions.all() }
func (r RegionOrSubregion) String() string                       { return string(r) }
func (r *RegionOrSubregion) UnmarshalJSON(b []byte) error        { return unmarshalEnum(b, regions, r) }

// Status is the lifecycle status of a ProductFootprint.
type Status string

const (
	StatusActive     Status = "Active"
	StatusDeprecated Status = "Deprecated"
)

var statuses = newEnumTable("status", StatusActive, StatusDeprecated)

func ParseStatus(s string) (Status, error)     { return statuses.parse(s) }
func (s Status) String() string                { return string(s) }
func (s *Status) UnmarshalJSON(b []byte) error { return unmarshalEnum(b, statuses, s) }

// GeographicalGranularity records which locality field of a geographical
// scope is populated.
type GeographicalGranularity string

const (
	GranularityGlobal             GeographicalGranularity = "Global"
	GranularityCountry            GeographicalGranularity = "Country"
	GranularityCountrySubdivision GeographicalGranularity = "CountrySubdivision"
	GranularityRegionOrSubregion  GeographicalGranularity = "RegionOrSubregion"
)

var granularities = newEnumTable("geographical granularity",
	GranularityGlobal, GranularityCountry, GranularityCountrySubdivision, GranularityRegionOrSubregion)

func ParseGeographicalGranularity(s string) (GeographicalGranularity, error) {
	return granularities.parse(s)
}
func (g GeographicalGranularity) String() string { return string(g) }
func (g *GeographicalGranularity) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, granularities, g)
}

// AssuranceCoverage is the level of granularity of an emissions assurance.
type AssuranceCoverage string

const (
	CoverageCorporateLevel AssuranceCoverage = "corporate level"
	CoverageProductLine    AssuranceCoverage = "product line"
	CoveragePCFSystem      AssuranceCoverage = "PCF system"
	CoverageProductLevel   AssuranceCoverage = "product level"
)

var assuranceCoverages = newEnumTable("assurance coverage",
	CoverageCorporateLevel, CoverageProductLine, CoveragePCFSystem, CoverageProductLevel)

func ParseAssuranceCoverage(s string) (AssuranceCoverage, error) { return assuranceCoverages.parse(s) }
func (c AssuranceCoverage) String() string                       { return string(c) }
func (c *AssuranceCoverage) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, assuranceCoverages, c)
}

// AssuranceLevel is the assurance standard's level of scrutiny.
type AssuranceLevel string

const (
	AssuranceLimited    AssuranceLevel = "limited"
	AssuranceReasonable AssuranceLevel = "reasonable"
)

var assuranceLevels = newEnumTable("assurance level", AssuranceLimited, AssuranceReasonable)

func ParseAssuranceLevel(s string) (AssuranceLevel, error) { return assuranceLevels.parse(s) }
func (l AssuranceLevel) String() string                    { return string(l) }
func (l *AssuranceLevel) UnmarshalJSON(b []byte) error     { return unmarshalEnum(b, assuranceLevels, l) }

// AssuranceBoundary is the lifecycle boundary the assurance covers.
type AssuranceBoundary string

const (
	BoundaryGateToGate   AssuranceBoundary = "Gate-to-Gate"
	BoundaryCradleToGate AssuranceBoundary = "Cradle-to-Gate"
)

var assuranceBoundaries = newEnumTable("assurance boundary", BoundaryGateToGate, BoundaryCradleToGate)

func ParseAssuranceBoundary(s string) (AssuranceBoundary, error) { return assuranceBoundaries.parse(s) }
func (b AssuranceBoundary) String() string                       { return string(b) }
func (b *AssuranceBoundary) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, assuranceBoundaries, b)
}
