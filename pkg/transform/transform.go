// Package transform converts decoded wire documents into validated
// pathfinder footprints.
package transform

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/techie2000/axiom/pathfinder/pkg/pact"
)

// ToProductFootprint validates raw and builds a ProductFootprint. Absent
// required keys are reported as pact.ErrMissingArgument.
func ToProductFootprint(raw RawProductFootprint) (*pact.ProductFootprint, error) {
	var p pact.ProductFootprintParams
	var err error

	// 1. Identity and versioning
	if p.ID, err = parseUUID("id", raw.ID); err != nil {
		return nil, err
	}
	if p.SpecVersion, err = pact.ParseSpecVersion(raw.SpecVersion); err != nil {
		return nil, err
	}
	if len(raw.PrecedingPfIDs) > 0 {
		ids := make([]uuid.UUID, len(raw.PrecedingPfIDs))
		for i, s := range raw.PrecedingPfIDs {
			if ids[i], err = parseUUID(fmt.Sprintf("precedingPfIds[%d]", i), s); err != nil {
				return nil, err
			}
		}
		if p.PrecedingPfIDs, err = pact.NewPrecedingPfIDs(ids...); err != nil {
			return nil, err
		}
	}
	v, err := requiredInt("version", raw.Version)
	if err != nil {
		return nil, err
	}
	if p.Version, err = pact.NewVersion(v); err != nil {
		return nil, err
	}

	// 2. Lifecycle
	if p.Created, err = requiredDateTime("created", raw.Created); err != nil {
		return nil, err
	}
	if p.Updated, err = optionalDateTime("updated", raw.Updated); err != nil {
		return nil, err
	}
	if p.Status, err = pact.ParseStatus(strings.TrimSpace(raw.Status)); err != nil {
		return nil, pact.Prefix("status", err)
	}
	p.StatusComment = strings.TrimSpace(raw.StatusComment)
	if raw.ValidityPeriodStart != "" || raw.ValidityPeriodEnd != "" {
		start, err := requiredDateTime("validityPeriodStart", raw.ValidityPeriodStart)
		if err != nil {
			return nil, err
		}
		end, err := requiredDateTime("validityPeriodEnd", raw.ValidityPeriodEnd)
		if err != nil {
			return nil, err
		}
		vp, err := pact.NewValidityPeriod(start, end)
		if err != nil {
			return nil, err
		}
		p.ValidityPeriod = &vp
	}

	// 3. Company and product
	p.CompanyName = raw.CompanyName
	companies := make([]pact.CompanyID, len(raw.CompanyIDs))
	for i, s := range raw.CompanyIDs {
		if companies[i], err = pact.ParseCompanyID(s); err != nil {
			return nil, pact.Prefix(fmt.Sprintf("companyIds[%d]", i), err)
		}
	}
	if p.CompanyIDs, err = pact.NewCompanyIDList(companies...); err != nil {
		return nil, err
	}
	p.ProductDescription = raw.ProductDescription
	products := make([]pact.ProductID, len(raw.ProductIDs))
	for i, s := range raw.ProductIDs {
		if products[i], err = pact.ParseProductID(s); err != nil {
			return nil, pact.Prefix(fmt.Sprintf("productIds[%d]", i), err)
		}
	}
	if p.ProductIDs, err = pact.NewProductIDList(products...); err != nil {
		return nil, err
	}
	p.ProductCategoryCPC = strings.TrimSpace(raw.ProductCategoryCPC)
	p.ProductNameCompany = raw.ProductNameCompany
	p.Comment = raw.Comment

	// 4. Carbon footprint
	if raw.PCF == nil {
		return nil, missing("pcf")
	}
	if p.PCF, err = ToCarbonFootprint(*raw.PCF); err != nil {
		return nil, pact.Prefix("pcf", err)
	}

	// 5. Extensions
	for i, e := range raw.Extensions {
		ext, err := toExtension(e)
		if err != nil {
			return nil, pact.Prefix(fmt.Sprintf("extensions[%d]", i), err)
		}
		p.Extensions = append(p.Extensions, ext)
	}

	return pact.NewProductFootprint(p)
}

// ToCarbonFootprint validates raw and builds a CarbonFootprint. When none of
// the geography keys is present the footprint is treated as global.
func ToCarbonFootprint(raw RawCarbonFootprint) (*pact.CarbonFootprint, error) {
	var p pact.CarbonFootprintParams
	var err error

	// 1. Declared unit and emission quantities
	if p.DeclaredUnit, err = pact.ParseDeclaredUnit(strings.TrimSpace(raw.DeclaredUnit)); err != nil {
		return nil, pact.Prefix("declaredUnit", err)
	}
	required := []struct {
		field string
		in    *Number
		out   *decimal.Decimal
	}{
		{"unitaryProductAmount", raw.UnitaryProductAmount, &p.UnitaryProductAmount},
		{"pCfExcludingBiogenic", raw.PCfExcludingBiogenic, &p.PCfExcludingBiogenic},
		{"fossilGhgEmissions", raw.FossilGhgEmissions, &p.FossilGhgEmissions},
		{"fossilCarbonContent", raw.FossilCarbonContent, &p.FossilCarbonContent},
		{"biogenicCarbonContent", raw.BiogenicCarbonContent, &p.BiogenicCarbonContent},
	}
	for _, q := range required {
		if *q.out, err = requiredDecimal(q.field, q.in); err != nil {
			return nil, err
		}
	}
	optional := []struct {
		field string
		in    *Number
		out   **decimal.Decimal
	}{
		{"pCfIncludingBiogenic", raw.PCfIncludingBiogenic, &p.PCfIncludingBiogenic},
		{"dLucGhgEmissions", raw.DLucGhgEmissions, &p.DLucGhgEmissions},
		{"landManagementGhgEmissions", raw.LandManagementGhgEmissions, &p.LandManagementGhgEmissions},
		{"otherBiogenicGhgEmissions", raw.OtherBiogenicGhgEmissions, &p.OtherBiogenicGhgEmissions},
		{"iLucGhgEmissions", raw.ILucGhgEmissions, &p.ILucGhgEmissions},
		{"biogenicCarbonWithdrawal", raw.BiogenicCarbonWithdrawal, &p.BiogenicCarbonWithdrawal},
		{"aircraftGhgEmissions", raw.AircraftGhgEmissions, &p.AircraftGhgEmissions},
		{"packagingGhgEmissions", raw.PackagingGhgEmissions, &p.PackagingGhgEmissions},
	}
	for _, q := range optional {
		if *q.out, err = optionalDecimal(q.field, q.in); err != nil {
			return nil, err
		}
	}

	// 2. Methodology
	if p.CharacterizationFactors, err = pact.ParseCharacterizationFactors(strings.TrimSpace(raw.CharacterizationFactors)); err != nil {
		return nil, pact.Prefix("characterizationFactors", err)
	}
	for _, s := range raw.IpccCharacterizationFactorsSources {
		p.IpccCharacterizationFactorsSources = append(p.IpccCharacterizationFactorsSources, strings.TrimSpace(s))
	}
	standards := make([]pact.CrossSectoralStandard, len(raw.CrossSectoralStandardsUsed))
	for i, s := range raw.CrossSectoralStandardsUsed {
		if standards[i], err = pact.ParseCrossSectoralStandard(strings.TrimSpace(s)); err != nil {
			return nil, pact.Prefix(fmt.Sprintf("crossSectoralStandardsUsed[%d]", i), err)
		}
	}
	if p.CrossSectoralStandardsUsed, err = pact.NewCrossSectoralStandardSet(standards...); err != nil {
		return nil, pact.Prefix("crossSectoralStandardsUsed", err)
	}
	if len(raw.ProductOrSectorSpecificRules) > 0 {
		rules := make([]pact.ProductOrSectorSpecificRule, len(raw.ProductOrSectorSpecificRules))
		for i, r := range raw.ProductOrSectorSpecificRules {
			field := fmt.Sprintf("productOrSectorSpecificRules[%d]", i)
			op, err := pact.ParseProductOrSectorSpecificRuleOperator(strings.TrimSpace(r.Operator))
			if err != nil {
				return nil, pact.Prefix(field+".operator", err)
			}
			if rules[i], err = pact.NewProductOrSectorSpecificRule(op, r.RuleNames, r.OtherOperatorName); err != nil {
				return nil, pact.Prefix(field, err)
			}
		}
		set, err := pact.NewProductOrSectorSpecificRuleSet(rules...)
		if err != nil {
			return nil, pact.Prefix("productOrSectorSpecificRules", err)
		}
		p.ProductOrSectorSpecificRules = &set
	}
	if raw.BiogenicAccountingMethodology != "" {
		if p.BiogenicAccountingMethodology, err = pact.ParseBiogenicAccountingMethodology(strings.TrimSpace(raw.BiogenicAccountingMethodology)); err != nil {
			return nil, pact.Prefix("biogenicAccountingMethodology", err)
		}
	}
	p.BoundaryProcessesDescription = raw.BoundaryProcessesDescription

	// 3. Scope in time and space
	start, err := requiredDateTime("referencePeriodStart", raw.ReferencePeriodStart)
	if err != nil {
		return nil, err
	}
	end, err := requiredDateTime("referencePeriodEnd", raw.ReferencePeriodEnd)
	if err != nil {
		return nil, err
	}
	if p.ReferencePeriod, err = pact.NewReferencePeriod(start, end); err != nil {
		return nil, err
	}
	geo := pact.GeographicalScopeInput{
		Country:     strings.TrimSpace(raw.GeographyCountry),
		Subdivision: strings.TrimSpace(raw.GeographyCountrySubdivision),
		Region:      pact.RegionOrSubregion(strings.TrimSpace(raw.GeographyRegionOrSubregion)),
	}
	geo.Global = geo.Country == "" && geo.Subdivision == "" && geo.Region == ""
	if p.GeographicalScope, err = pact.NewCarbonFootprintGeographicalScope(geo); err != nil {
		return nil, err
	}

	// 4. Secondary data and exemptions
	if len(raw.SecondaryEmissionFactorSources) > 0 {
		sources := make([]pact.EmissionFactorDS, len(raw.SecondaryEmissionFactorSources))
		for i, s := range raw.SecondaryEmissionFactorSources {
			if sources[i], err = pact.NewEmissionFactorDS(s.Name, s.Version); err != nil {
				return nil, pact.Prefix(fmt.Sprintf("secondaryEmissionFactorSources[%d]", i), err)
			}
		}
		set, err := pact.NewEmissionFactorDSSet(sources...)
		if err != nil {
			return nil, pact.Prefix("secondaryEmissionFactorSources", err)
		}
		p.SecondaryEmissionFactorSources = &set
	}
	if p.ExemptedEmissionsPercent, err = requiredFloat("exemptedEmissionsPercent", raw.ExemptedEmissionsPercent); err != nil {
		return nil, err
	}
	p.ExemptedEmissionsDescription = raw.ExemptedEmissionsDescription
	if raw.PackagingEmissionsIncluded == nil {
		return nil, missing("packagingEmissionsIncluded")
	}
	p.PackagingEmissionsIncluded = *raw.PackagingEmissionsIncluded
	p.AllocationRulesDescription = raw.AllocationRulesDescription
	p.UncertaintyAssessmentDescription = raw.UncertaintyAssessmentDescription

	// 5. Data quality and assurance
	if p.PrimaryDataShare, err = optionalFloat("primaryDataShare", raw.PrimaryDataShare); err != nil {
		return nil, err
	}
	if raw.DQI != nil {
		if p.DQI, err = toDQI(p.ReferencePeriod, *raw.DQI); err != nil {
			return nil, pact.Prefix("dqi", err)
		}
	}
	if raw.Assurance != nil {
		if p.Assurance, err = toAssurance(*raw.Assurance); err != nil {
			return nil, pact.Prefix("assurance", err)
		}
	}

	return pact.NewCarbonFootprint(p)
}

// toDQI binds the indicators to the footprint's own reference period.
func toDQI(rp pact.ReferencePeriod, raw RawDataQualityIndicators) (*pact.DataQualityIndicators, error) {
	p := pact.DataQualityIndicatorsParams{ReferencePeriod: rp}
	var err error
	if p.CoveragePercent, err = optionalFloat("coveragePercent", raw.CoveragePercent); err != nil {
		return nil, err
	}
	ratings := []struct {
		field string
		in    *Number
		out   **pact.DataQualityRating
	}{
		{"technologicalDQR", raw.TechnologicalDQR, &p.TechnologicalDQR},
		{"temporalDQR", raw.TemporalDQR, &p.TemporalDQR},
		{"geographicalDQR", raw.GeographicalDQR, &p.GeographicalDQR},
		{"completenessDQR", raw.CompletenessDQR, &p.CompletenessDQR},
		{"reliabilityDQR", raw.ReliabilityDQR, &p.ReliabilityDQR},
	}
	for _, r := range ratings {
		if r.in == nil {
			continue
		}
		n, err := requiredInt(r.field, r.in)
		if err != nil {
			return nil, err
		}
		rating, err := pact.NewDataQualityRating(n)
		if err != nil {
			return nil, pact.Prefix(r.field, err)
		}
		*r.out = &rating
	}
	return pact.NewDataQualityIndicators(p)
}

func toAssurance(raw RawAssurance) (*pact.Assurance, error) {
	p := pact.AssuranceParams{
		Assurance:    raw.Assurance,
		ProviderName: raw.ProviderName,
		Coverage:     pact.AssuranceCoverage(strings.TrimSpace(raw.Coverage)),
		Level:        pact.AssuranceLevel(strings.TrimSpace(raw.Level)),
		Boundary:     pact.AssuranceBoundary(strings.TrimSpace(raw.Boundary)),
		StandardName: raw.StandardName,
		Comments:     raw.Comments,
	}
	var err error
	if p.CompletedAt, err = optionalDateTime("completedAt", raw.CompletedAt); err != nil {
		return nil, err
	}
	return pact.NewAssurance(p)
}

func toExtension(raw RawDataModelExtension) (*pact.DataModelExtension, error) {
	sv, err := pact.ParseSpecVersion(raw.SpecVersion)
	if err != nil {
		return nil, err
	}
	if raw.Data == nil {
		return nil, missing("data")
	}
	data, err := json.Marshal(raw.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode extension data: %w", err)
	}
	return pact.NewDataModelExtension(sv, strings.TrimSpace(raw.DataSchema), strings.TrimSpace(raw.Documentation), data)
}

func missing(field string) error {
	return &pact.ValidationError{Kind: pact.ErrMissingArgument, Field: field, Message: "is required"}
}

func invalid(field, value, format string, args ...any) error {
	return &pact.ValidationError{Kind: pact.ErrInvalidFormat, Field: field, Value: value, Message: fmt.Sprintf(format, args...)}
}

func parseUUID(field, s string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, missing(field)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, invalid(field, s, "%q is not a UUID", s)
	}
	return id, nil
}

func requiredDateTime(field, s string) (pact.DateTime, error) {
	dt, err := pact.ParseDateTime(s)
	if err != nil {
		return pact.DateTime{}, pact.Prefix(field, err)
	}
	return dt, nil
}

func optionalDateTime(field, s string) (*pact.DateTime, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	dt, err := requiredDateTime(field, s)
	if err != nil {
		return nil, err
	}
	return &dt, nil
}

func requiredDecimal(field string, n *Number) (decimal.Decimal, error) {
	if n == nil {
		return decimal.Decimal{}, missing(field)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(n.text))
	if err != nil {
		return decimal.Decimal{}, invalid(field, n.text, "%q is not a decimal number", n.text)
	}
	return d, nil
}

func optionalDecimal(field string, n *Number) (*decimal.Decimal, error) {
	if n == nil {
		return nil, nil
	}
	d, err := requiredDecimal(field, n)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func requiredFloat(field string, n *Number) (float64, error) {
	if n == nil {
		return 0, missing(field)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(n.text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalid(field, n.text, "%q is not a finite number", n.text)
	}
	return f, nil
}

func optionalFloat(field string, n *Number) (*float64, error) {
	if n == nil {
		return nil, nil
	}
	f, err := requiredFloat(field, n)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func requiredInt(field string, n *Number) (int, error) {
	if n == nil {
		return 0, missing(field)
	}
	i, err := strconv.Atoi(strings.TrimSpace(n.text))
	if err != nil {
		return 0, invalid(field, n.text, "%q is not an integer", n.text)
	}
	return i, nil
}
