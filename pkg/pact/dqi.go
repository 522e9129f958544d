package pact

import "encoding/json"

// DataQualityIndicatorsParams are the fields of DataQualityIndicators. A nil
// pointer means absent.
type DataQualityIndicatorsParams struct {
	ReferencePeriod  ReferencePeriod
	CoveragePercent  *float64
	TechnologicalDQR *DataQualityRating
	TemporalDQR      *DataQualityRating
	GeographicalDQR  *DataQualityRating
	CompletenessDQR  *DataQualityRating
	ReliabilityDQR   *DataQualityRating
}

func (p DataQualityIndicatorsParams) clone() DataQualityIndicatorsParams {
	p.CoveragePercent = cloneptr(p.CoveragePercent)
	p.TechnologicalDQR = cloneptr(p.TechnologicalDQR)
	p.TemporalDQR = cloneptr(p.TemporalDQR)
	p.GeographicalDQR = cloneptr(p.GeographicalDQR)
	p.CompletenessDQR = cloneptr(p.CompletenessDQR)
	p.ReliabilityDQR = cloneptr(p.ReliabilityDQR)
	return p
}

// DataQualityIndicators scores the quality of the data behind a footprint.
// For reference periods ending in 2025 or later every indicator is required.
type DataQualityIndicators struct {
	p DataQualityIndicatorsParams
}

func NewDataQualityIndicators(p DataQualityIndicatorsParams) (*DataQualityIndicators, error) {
	p = p.clone()
	if err := validateDQI(p); err != nil {
		return nil, err
	}
	return &DataQualityIndicators{p: p}, nil
}

type dqiField struct {
	name   string
	rating *DataQualityRating
}

func (p DataQualityIndicatorsParams) ratings() []dqiField {
	return []dqiField{
		{"technologicalDQR", p.TechnologicalDQR},
		{"temporalDQR", p.TemporalDQR},
		{"geographicalDQR", p.GeographicalDQR},
		{"completenessDQR", p.CompletenessDQR},
		{"reliabilityDQR", p.ReliabilityDQR},
	}
}

func validateDQI(p DataQualityIndicatorsParams) error {
	if p.ReferencePeriod.IsZero() {
		return missingErr("referencePeriod")
	}
	if p.CoveragePercent != nil && !inRange(*p.CoveragePercent, 0, 100) {
		return rangeErr("coveragePercent", *p.CoveragePercent, "must be between 0 and 100")
	}
	for _, f := range p.ratings() {
		if f.rating == nil {
			continue
		}
		if _, err := NewDataQualityRating(int(*f.rating)); err != nil {
			return Prefix(f.name, err)
		}
	}

	if !p.ReferencePeriod.Includes2025OrLater() {
		return nil
	}
	if p.CoveragePercent == nil {
		return requiredFrom2025Err("coveragePercent")
	}
	for _, f := range p.ratings() {
		if f.rating == nil {
			return requiredFrom2025Err(f.name)
		}
	}
	return nil
}

func requiredFrom2025Err(field string) error {
	return inconsistentErr(field, "is required for reference periods ending in %d or later", cutoffYear)
}

func (d *DataQualityIndicators) ReferencePeriod() ReferencePeriod { return d.p.ReferencePeriod }
func (d *DataQualityIndicators) CoveragePercent() *float64        { return cloneptr(d.p.CoveragePercent) }
func (d *DataQualityIndicators) TechnologicalDQR() *DataQualityRating {
	return cloneptr(d.p.TechnologicalDQR)
}
func (d *DataQualityIndicators) TemporalDQR() *DataQualityRating { return cloneptr(d.p.TemporalDQR) }
func (d *DataQualityIndicators) GeographicalDQR() *DataQualityRating {
	return cloneptr(d.p.GeographicalDQR)
}
func (d *DataQualityIndicators) CompletenessDQR() *DataQualityRating {
	return cloneptr(d.p.CompletenessDQR)
}
func (d *DataQualityIndicators) ReliabilityDQR() *DataQualityRating {
	return cloneptr(d.p.ReliabilityDQR)
}

// Params returns a copy of the fields of d.
func (d *DataQualityIndicators) Params() DataQualityIndicatorsParams { return d.p.clone() }

// Update applies fn to a copy of the fields and commits it if the result is
// valid. On error d is left unchanged.
func (d *DataQualityIndicators) Update(fn func(*DataQualityIndicatorsParams)) error {
	next := d.p.clone()
	fn(&next)
	if err := validateDQI(next); err != nil {
		return err
	}
	d.p = next
	return nil
}

func (d *DataQualityIndicators) SetCoveragePercent(v *float64) error {
	return d.Update(func(p *DataQualityIndicatorsParams) { p.CoveragePercent = cloneptr(v) })
}

func (d *DataQualityIndicators) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		CoveragePercent  *float64           `json:"coveragePercent,omitempty"`
		TechnologicalDQR *DataQualityRating `json:"technologicalDQR,omitempty"`
		TemporalDQR      *DataQualityRating `json:"temporalDQR,omitempty"`
		GeographicalDQR  *DataQualityRating `json:"geographicalDQR,omitempty"`
		CompletenessDQR  *DataQualityRating `json:"completenessDQR,omitempty"`
		ReliabilityDQR   *DataQualityRating `json:"reliabilityDQR,omitempty"`
	}{
		d.p.CoveragePercent, d.p.TechnologicalDQR, d.p.TemporalDQR,
		d.p.GeographicalDQR, d.p.CompletenessDQR, d.p.ReliabilityDQR,
	})
}
