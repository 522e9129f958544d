package pact

import (
	"encoding/json"
	"strings"
)

// AssuranceParams are the fields of an Assurance. Empty strings and a nil
// CompletedAt mean absent.
type AssuranceParams struct {
	Assurance    bool
	ProviderName string
	Coverage     AssuranceCoverage
	Level        AssuranceLevel
	Boundary     AssuranceBoundary
	CompletedAt  *DateTime
	StandardName string
	Comments     string
}

// Assurance describes third-party verification of a footprint.
type Assurance struct {
	p AssuranceParams
}

func NewAssurance(p AssuranceParams) (*Assurance, error) {
	p.ProviderName = strings.TrimSpace(p.ProviderName)
	if p.ProviderName == "" {
		return nil, missingErr("providerName")
	}
	if p.Coverage != "" {
		if _, err := assuranceCoverages.parse(string(p.Coverage)); err != nil {
			return nil, Prefix("coverage", err)
		}
	}
	if p.Level != "" {
		if _, err := assuranceLevels.parse(string(p.Level)); err != nil {
			return nil, Prefix("level", err)
		}
	}
	if p.Boundary != "" {
		if _, err := assuranceBoundaries.parse(string(p.Boundary)); err != nil {
			return nil, Prefix("boundary", err)
		}
	}
	if p.CompletedAt != nil && p.CompletedAt.IsZero() {
		return nil, missingErr("completedAt")
	}
	p.CompletedAt = cloneptr(p.CompletedAt)
	return &Assurance{p: p}, nil
}

func (a *Assurance) Assurance() bool             { return a.p.Assurance }
func (a *Assurance) ProviderName() string        { return a.p.ProviderName }
func (a *Assurance) Coverage() AssuranceCoverage { return a.p.Coverage }
func (a *Assurance) Level() AssuranceLevel       { return a.p.Level }
func (a *Assurance) Boundary() AssuranceBoundary { return a.p.Boundary }
func (a *Assurance) CompletedAt() *DateTime      { return cloneptr(a.p.CompletedAt) }
func (a *Assurance) StandardName() string        { return a.p.StandardName }
func (a *Assurance) Comments() string            { return a.p.Comments }

// Params returns a copy of the fields of a.
func (a *Assurance) Params() AssuranceParams {
	p := a.p
	p.CompletedAt = cloneptr(p.CompletedAt)
	return p
}

func (a *Assurance) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Assurance    bool              `json:"assurance"`
		Coverage     AssuranceCoverage `json:"coverage,omitempty"`
		Level        AssuranceLevel    `json:"level,omitempty"`
		Boundary     AssuranceBoundary `json:"boundary,omitempty"`
		ProviderName string            `json:"providerName"`
		CompletedAt  *DateTime         `json:"completedAt,omitempty"`
		StandardName string            `json:"standardName,omitempty"`
		Comments     string            `json:"comments,omitempty"`
	}{
		a.p.Assurance, a.p.Coverage, a.p.Level, a.p.Boundary,
		a.p.ProviderName, a.p.CompletedAt, a.p.StandardName, a.p.Comments,
	})
}

func cloneptr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
