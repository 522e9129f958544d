package pact

import (
	"errors"
	"testing"
)

func TestNewCarbonFootprintGeographicalScope(t *testing.T) {
	tests := []struct {
		name            string
		input           GeographicalScopeInput
		wantGranularity GeographicalGranularity
		wantScope       string
		wantKind        error
		errMsg          string
	}{
		{
			name:            "global alone",
			input:           GeographicalScopeInput{Global: true},
			wantGranularity: GranularityGlobal,
			wantScope:       "Global",
		},
		{
			name:            "country alone",
			input:           GeographicalScopeInput{Country: "FR"},
			wantGranularity: GranularityCountry,
			wantScope:       "FR",
		},
		{
			name:            "subdivision alone",
			input:           GeographicalScopeInput{Subdivision: "US-CA"},
			wantGranularity: GranularityCountrySubdivision,
			wantScope:       "US-CA",
		},
		{
			name:            "region alone",
			input:           GeographicalScopeInput{Region: RegionWesternEurope},
			wantGranularity: GranularityRegionOrSubregion,
			wantScope:       "Western Europe",
		},
		{
			name:     "nothing set",
			input:    GeographicalScopeInput{},
			wantKind: ErrMissingArgument,
		},
		{
			name:     "country with region",
			input:    GeographicalScopeInput{Country: "FR", Region: RegionAfrica},
			wantKind: ErrInconsistent,
			errMsg:   "geography: only one of geographyCountry, geographyCountrySubdivision and geographyRegionOrSubregion may be set",
		},
		{
			name:     "global with country",
			input:    GeographicalScopeInput{Global: true, Country: "FR"},
			wantKind: ErrInconsistent,
		},
		{
			name:     "global with invalid country still reports exclusion",
			input:    GeographicalScopeInput{Global: true, Country: "fr"},
			wantKind: ErrInconsistent,
		},
		{
			name:     "lowercase country",
			input:    GeographicalScopeInput{Country: "fr"},
			wantKind: ErrInvalidFormat,
		},
		{
			name:     "alpha-3 country",
			input:    GeographicalScopeInput{Country: "FRA"},
			wantKind: ErrInvalidFormat,
		},
		{
			name:     "subdivision without separator",
			input:    GeographicalScopeInput{Subdivision: "USCA"},
			wantKind: ErrInvalidFormat,
		},
		{
			name:     "unknown region",
			input:    GeographicalScopeInput{Region: "Atlantis"},
			wantKind: ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewCarbonFootprintGeographicalScope(tt.input)
			if tt.wantKind != nil {
				if !errors.Is(err, tt.wantKind) {
					t.Errorf("NewCarbonFootprintGeographicalScope() error = %v, want kind %v", err, tt.wantKind)
				}
				if tt.errMsg != "" && err != nil && err.Error() != tt.errMsg {
					t.Errorf("error message = %v, want %v", err.Error(), tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewCarbonFootprintGeographicalScope() unexpected error = %v", err)
			}
			if got.Granularity() != tt.wantGranularity || got.Scope() != tt.wantScope {
				t.Errorf("got %v/%q, want %v/%q", got.Granularity(), got.Scope(), tt.wantGranularity, tt.wantScope)
			}
			if back, _ := NewCarbonFootprintGeographicalScope(got.Input()); back != got {
				t.Errorf("Input() round trip = %+v, want %+v", back, got)
			}
		})
	}
}

func TestGeographicalScopeFieldNames(t *testing.T) {
	_, err := NewCarbonFootprintGeographicalScope(GeographicalScopeInput{Country: "F1"})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "geographyCountry" {
		t.Errorf("error = %v, want field geographyCountry", err)
	}
}
