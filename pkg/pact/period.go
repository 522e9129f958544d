package pact

import "encoding/json"

// validityYears is how long a footprint may be relied upon after the end of
// its reference period.
const validityYears = 3

// cutoffYear is the first reporting year for which the extended set of
// footprint attributes becomes mandatory.
const cutoffYear = 2025

// ReferencePeriod is the interval over which footprint data was measured.
type ReferencePeriod struct {
	start DateTime
	end   DateTime
}

// NewReferencePeriod requires start strictly before end.
func NewReferencePeriod(start, end DateTime) (ReferencePeriod, error) {
	if start.IsZero() {
		return ReferencePeriod{}, missingErr("referencePeriodStart")
	}
	if end.IsZero() {
		return ReferencePeriod{}, missingErr("referencePeriodEnd")
	}
	if !start.Before(end) {
		return ReferencePeriod{}, inconsistentErr("referencePeriodEnd", "reference period end %s must be after start %s", end, start)
	}
	return ReferencePeriod{start: start, end: end}, nil
}

func (p ReferencePeriod) Start() DateTime { return p.start }
func (p ReferencePeriod) End() DateTime   { return p.end }
func (p ReferencePeriod) IsZero() bool    { return p.start.IsZero() && p.end.IsZero() }

func (p ReferencePeriod) Equal(o ReferencePeriod) bool {
	return p.start.Equal(o.start) && p.end.Equal(o.end)
}

// Includes2025OrLater reports whether the period ends in 2025 or later.
func (p ReferencePeriod) Includes2025OrLater() bool {
	return p.end.Year() >= cutoffYear
}

// ValidityPeriod is the interval during which a footprint may be relied upon.
type ValidityPeriod struct {
	start DateTime
	end   DateTime
}

// NewValidityPeriod requires start strictly before end.
func NewValidityPeriod(start, end DateTime) (ValidityPeriod, error) {
	if start.IsZero() {
		return ValidityPeriod{}, missingErr("validityPeriodStart")
	}
	if end.IsZero() {
		return ValidityPeriod{}, missingErr("validityPeriodEnd")
	}
	if !start.Before(end) {
		return ValidityPeriod{}, inconsistentErr("validityPeriodEnd", "validity period end %s must be after start %s", end, start)
	}
	return ValidityPeriod{start: start, end: end}, nil
}

// DefaultValidityPeriod starts at the end of rp and lasts three years.
func DefaultValidityPeriod(rp ReferencePeriod) ValidityPeriod {
	return ValidityPeriod{start: rp.end, end: rp.end.AddYears(validityYears)}
}

func (v ValidityPeriod) Start() DateTime { return v.start }
func (v ValidityPeriod) End() DateTime   { return v.end }
func (v ValidityPeriod) IsZero() bool    { return v.start.IsZero() && v.end.IsZero() }

// IsValid reports whether the period starts no earlier than refEnd and ends
// no later than three years after it.
func (v ValidityPeriod) IsValid(refEnd DateTime) bool {
	return !v.start.Before(refEnd) && !v.end.After(refEnd.AddYears(validityYears))
}

func (v ValidityPeriod) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start DateTime `json:"validityPeriodStart"`
		End   DateTime `json:"validityPeriodEnd"`
	}{v.start, v.end})
}

func (p ReferencePeriod) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start DateTime `json:"referencePeriodStart"`
		End   DateTime `json:"referencePeriodEnd"`
	}{p.start, p.end})
}
