package pact

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

var (
	countryPattern     = regexp.MustCompile(`^[A-Z]{2}$`)
	subdivisionPattern = regexp.MustCompile(`^([A-Z]{2})-[A-Z0-9]{1,3}$`)
)

// GeographicalScopeInput lists the four mutually exclusive ways of stating
// where a footprint applies. Exactly one must be set.
type GeographicalScopeInput struct {
	Global      bool
	Country     string
	Subdivision string
	Region      RegionOrSubregion
}

// CarbonFootprintGeographicalScope is the validated geography of a
// footprint together with its granularity.
type CarbonFootprintGeographicalScope struct {
	granularity GeographicalGranularity
	scope       string
}

// NewCarbonFootprintGeographicalScope checks mutual exclusion first, then
// that one field is present, then the format of that field.
func NewCarbonFootprintGeographicalScope(in GeographicalScopeInput) (CarbonFootprintGeographicalScope, error) {
	country := strings.TrimSpace(in.Country)
	subdivision := strings.TrimSpace(in.Subdivision)
	region := RegionOrSubregion(strings.TrimSpace(string(in.Region)))

	locals := 0
	for _, set := range []bool{country != "", subdivision != "", region != ""} {
		if set {
			locals++
		}
	}

	// 1. Mutual exclusion
	if in.Global && locals > 0 {
		return CarbonFootprintGeographicalScope{}, inconsistentErr("geography", "global scope cannot be combined with a country, subdivision or region")
	}
	if locals > 1 {
		return CarbonFootprintGeographicalScope{}, inconsistentErr("geography", "only one of geographyCountry, geographyCountrySubdivision and geographyRegionOrSubregion may be set")
	}

	// 2. At least one
	if !in.Global && locals == 0 {
		return CarbonFootprintGeographicalScope{}, &ValidationError{Kind: ErrMissingArgument, Field: "geography", Message: "a global scope, country, subdivision or region is required"}
	}

	// 3. Format of the chosen field
	switch {
	case in.Global:
		return CarbonFootprintGeographicalScope{granularity: GranularityGlobal, scope: string(GranularityGlobal)}, nil
	case country != "":
		if err := validateCountryCode(country); err != nil {
			return CarbonFootprintGeographicalScope{}, Prefix("geographyCountry", err)
		}
		return CarbonFootprintGeographicalScope{granularity: GranularityCountry, scope: country}, nil
	case subdivision != "":
		if err := validateSubdivisionCode(subdivision); err != nil {
			return CarbonFootprintGeographicalScope{}, Prefix("geographyCountrySubdivision", err)
		}
		return CarbonFootprintGeographicalScope{granularity: GranularityCountrySubdivision, scope: subdivision}, nil
	default:
		r, err := regions.parse(string(region))
		if err != nil {
			return CarbonFootprintGeographicalScope{}, Prefix("geographyRegionOrSubregion", err)
		}
		return CarbonFootprintGeographicalScope{granularity: GranularityRegionOrSubregion, scope: string(r)}, nil
	}
}

// GlobalScope is a footprint valid everywhere.
func GlobalScope() CarbonFootprintGeographicalScope {
	return CarbonFootprintGeographicalScope{granularity: GranularityGlobal, scope: string(GranularityGlobal)}
}

// validateCountryCode accepts ISO 3166-1 alpha-2 codes of countries.
func validateCountryCode(code string) error {
	if !countryPattern.MatchString(code) {
		return formatErr("", code, "%q is not an ISO 3166-1 alpha-2 country code", code)
	}
	region, err := language.ParseRegion(code)
	if err != nil || region.String() != code || !region.IsCountry() {
		return formatErr("", code, "%q is not an assigned ISO 3166-1 country code", code)
	}
	return nil
}

// validateSubdivisionCode accepts ISO 3166-2 shaped codes whose country
// part is an assigned country.
func validateSubdivisionCode(code string) error {
	m := subdivisionPattern.FindStringSubmatch(code)
	if m == nil {
		return formatErr("", code, "%q is not an ISO 3166-2 subdivision code", code)
	}
	if err := validateCountryCode(m[1]); err != nil {
		return formatErr("", code, "%q does not belong to an assigned country", code)
	}
	return nil
}

func (g CarbonFootprintGeographicalScope) Granularity() GeographicalGranularity { return g.granularity }
func (g CarbonFootprintGeographicalScope) Scope() string                        { return g.scope }
func (g CarbonFootprintGeographicalScope) IsZero() bool                         { return g.granularity == "" }

// Input returns the constructor argument that produced g.
func (g CarbonFootprintGeographicalScope) Input() GeographicalScopeInput {
	switch g.granularity {
	case GranularityGlobal:
		return GeographicalScopeInput{Global: true}
	case GranularityCountry:
		return GeographicalScopeInput{Country: g.scope}
	case GranularityCountrySubdivision:
		return GeographicalScopeInput{Subdivision: g.scope}
	case GranularityRegionOrSubregion:
		return GeographicalScopeInput{Region: RegionOrSubregion(g.scope)}
	}
	return GeographicalScopeInput{}
}
