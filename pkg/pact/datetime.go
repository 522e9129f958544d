package pact

import (
	"encoding/json"
	"strings"
	"time"
)

// DateTime is an instant in UTC. Its canonical form is ISO-8601 with a
// literal "Z" designator, e.g. "2024-03-01T00:00:00Z".
type DateTime struct {
	t time.Time
}

// NewDateTime normalises t to UTC.
func NewDateTime(t time.Time) (DateTime, error) {
	if t.IsZero() {
		return DateTime{}, missingErr("")
	}
	return DateTime{t: t.UTC()}, nil
}

// ParseDateTime parses an ISO-8601 timestamp. The input must carry an
// explicit UTC designator ("Z", "+00:00" or "-00:00").
func ParseDateTime(s string) (DateTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DateTime{}, missingErr("")
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if _, naiveErr := time.Parse("2006-01-02T15:04:05.999999999", s); naiveErr == nil {
			return DateTime{}, formatErr("", s, "timestamp %q has no timezone designator, expected UTC", s)
		}
		return DateTime{}, formatErr("", s, "timestamp %q is not ISO-8601", s)
	}
	if _, offset := t.Zone(); offset != 0 {
		return DateTime{}, formatErr("", s, "timestamp %q is not in UTC", s)
	}
	return DateTime{t: t.UTC()}, nil
}

// MustParseDateTime is like ParseDateTime but panics on error.
func MustParseDateTime(s string) DateTime {
	d, err := ParseDateTime(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Now returns the current instant.
func Now() DateTime {
	return DateTime{t: time.Now().UTC()}
}

// YearsFromNow returns the current instant shifted by n calendar years.
func YearsFromNow(n int) DateTime {
	return Now().AddYears(n)
}

// AddYears shifts d by n calendar years. A day that does not exist in the
// target year (29 February) is clamped to the last day of the month.
func (d DateTime) AddYears(n int) DateTime {
	y, m, day := d.t.Date()
	if last := daysIn(m, y+n); day > last {
		day = last
	}
	return DateTime{t: time.Date(y+n, m, day, d.t.Hour(), d.t.Minute(), d.t.Second(), d.t.Nanosecond(), time.UTC)}
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (d DateTime) Time() time.Time   { return d.t }
func (d DateTime) Year() int         { return d.t.Year() }
func (d DateTime) Month() time.Month { return d.t.Month() }
func (d DateTime) Day() int          { return d.t.Day() }
func (d DateTime) IsZero() bool      { return d.t.IsZero() }

func (d DateTime) Before(o DateTime) bool { return d.t.Before(o.t) }
func (d DateTime) After(o DateTime) bool  { return d.t.After(o.t) }
func (d DateTime) Equal(o DateTime) bool  { return d.t.Equal(o.t) }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after o.
func (d DateTime) Compare(o DateTime) int { return d.t.Compare(o.t) }

// String returns the canonical ISO-8601 form.
func (d DateTime) String() string {
	return d.t.UTC().Format(time.RFC3339Nano)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &ValidationError{Kind: ErrTypeMismatch, Value: string(data), Message: "timestamp must be a string"}
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
