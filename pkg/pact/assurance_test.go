package pact

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewAssurance(t *testing.T) {
	completed := MustParseDateTime("2024-05-01T00:00:00Z")
	tests := []struct {
		name     string
		params   AssuranceParams
		wantKind error
		field    string
	}{
		{
			name: "full",
			params: AssuranceParams{
				Assurance:    true,
				ProviderName: "Verifier Ltd",
				Coverage:     CoverageProductLevel,
				Level:        AssuranceReasonable,
				Boundary:     BoundaryCradleToGate,
				CompletedAt:  &completed,
				StandardName: "ISO 14064-3",
			},
		},
		{name: "provider only", params: AssuranceParams{ProviderName: "Verifier Ltd"}},
		{name: "no provider", params: AssuranceParams{Assurance: true}, wantKind: ErrMissingArgument, field: "providerName"},
		{name: "bad coverage", params: AssuranceParams{ProviderName: "x", Coverage: "plant level"}, wantKind: ErrInvalidFormat, field: "coverage"},
		{name: "bad level", params: AssuranceParams{ProviderName: "x", Level: "high"}, wantKind: ErrInvalidFormat, field: "level"},
		{name: "bad boundary", params: AssuranceParams{ProviderName: "x", Boundary: "Cradle-to-Grave"}, wantKind: ErrInvalidFormat, field: "boundary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAssurance(tt.params)
			if tt.wantKind == nil {
				if err != nil {
					t.Errorf("NewAssurance() error = %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.Is(err, tt.wantKind) || !errors.As(err, &ve) || ve.Field != tt.field {
				t.Errorf("NewAssurance() error = %v, want %v on %s", err, tt.wantKind, tt.field)
			}
		})
	}
}

func TestAssuranceJSON(t *testing.T) {
	a, err := NewAssurance(AssuranceParams{Assurance: true, ProviderName: "Verifier Ltd", Level: AssuranceLimited})
	if err != nil {
		t.Fatalf("NewAssurance() error = %v", err)
	}
	out, _ := json.Marshal(a)
	want := `{"assurance":true,"level":"limited","providerName":"Verifier Ltd"}`
	if string(out) != want {
		t.Errorf("Marshal() = %s, want %s", out, want)
	}
}
