package pact

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// TestParseDateTime tests the UTC-only timestamp rule
func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		wantKind error
	}{
		{
			name:  "Z designator",
			input: "2024-03-01T10:00:00Z",
			want:  "2024-03-01T10:00:00Z",
		},
		{
			name:  "+00:00 offset is rewritten to Z",
			input: "2024-03-01T10:00:00+00:00",
			want:  "2024-03-01T10:00:00Z",
		},
		{
			name:  "fractional seconds are kept",
			input: "2024-03-01T10:00:00.500Z",
			want:  "2024-03-01T10:00:00.5Z",
		},
		{
			name:  "surrounding whitespace",
			input: "  2024-03-01T10:00:00Z ",
			want:  "2024-03-01T10:00:00Z",
		},
		{
			name:     "naive timestamp",
			input:    "2024-03-01T10:00:00",
			wantKind: ErrInvalidFormat,
		},
		{
			name:     "non-UTC offset",
			input:    "2024-03-01T10:00:00+01:00",
			wantKind: ErrInvalidFormat,
		},
		{
			name:     "date only",
			input:    "2024-03-01",
			wantKind: ErrInvalidFormat,
		},
		{
			name:     "garbage",
			input:    "yesterday",
			wantKind: ErrInvalidFormat,
		},
		{
			name:     "empty",
			input:    "",
			wantKind: ErrMissingArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateTime(tt.input)
			if tt.wantKind != nil {
				if !errors.Is(err, tt.wantKind) {
					t.Errorf("ParseDateTime() error = %v, want kind %v", err, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateTime() unexpected error = %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseDateTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateTimeEquivalentInstantsCompareEqual(t *testing.T) {
	a := MustParseDateTime("2024-03-01T10:00:00Z")
	b := MustParseDateTime("2024-03-01T10:00:00+00:00")
	c, err := NewDateTime(time.Date(2024, 3, 1, 11, 0, 0, 0, time.FixedZone("CET", 3600)))
	if err != nil {
		t.Fatalf("NewDateTime() error = %v", err)
	}

	for _, o := range []DateTime{b, c} {
		if !a.Equal(o) || a.Compare(o) != 0 {
			t.Errorf("%v and %v should compare equal", a, o)
		}
		if a.String() != o.String() {
			t.Errorf("String() = %q, want %q", o.String(), a.String())
		}
	}
}

func TestDateTimeOrdering(t *testing.T) {
	early := MustParseDateTime("2023-01-01T00:00:00Z")
	late := MustParseDateTime("2024-01-01T00:00:00Z")

	if !early.Before(late) || late.Before(early) {
		t.Error("Before() ordering is wrong")
	}
	if !late.After(early) || early.After(late) {
		t.Error("After() ordering is wrong")
	}
	if early.Compare(late) != -1 || late.Compare(early) != 1 {
		t.Errorf("Compare() = %d/%d, want -1/1", early.Compare(late), late.Compare(early))
	}
}

func TestDateTimeAccessors(t *testing.T) {
	d := MustParseDateTime("2025-07-14T08:30:00Z")
	if d.Year() != 2025 || d.Month() != time.July || d.Day() != 14 {
		t.Errorf("accessors = %d-%d-%d, want 2025-7-14", d.Year(), d.Month(), d.Day())
	}
}

func TestDateTimeAddYears(t *testing.T) {
	tests := []struct {
		name  string
		start string
		years int
		want  string
	}{
		{"plain date", "2024-06-15T12:00:00Z", 3, "2027-06-15T12:00:00Z"},
		{"leap day to non-leap year", "2024-02-29T00:00:00Z", 1, "2025-02-28T00:00:00Z"},
		{"leap day to leap year", "2024-02-29T00:00:00Z", 4, "2028-02-29T00:00:00Z"},
		{"negative", "2024-01-31T00:00:00Z", -1, "2023-01-31T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParseDateTime(tt.start).AddYears(tt.years)
			if got.String() != tt.want {
				t.Errorf("AddYears(%d) = %v, want %v", tt.years, got, tt.want)
			}
		})
	}
}

func TestYearsFromNow(t *testing.T) {
	now := Now()
	got := YearsFromNow(1)
	if got.Year()-now.Year() != 1 {
		t.Errorf("YearsFromNow(1) = %v, now = %v", got, now)
	}
	if !got.After(now) {
		t.Errorf("YearsFromNow(1) = %v should be after %v", got, now)
	}
}

func TestDateTimeJSON(t *testing.T) {
	var d DateTime
	if err := json.Unmarshal([]byte(`"2024-03-01T10:00:00+00:00"`), &d); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != `"2024-03-01T10:00:00Z"` {
		t.Errorf("Marshal() = %s, want %q", out, "2024-03-01T10:00:00Z")
	}

	if err := json.Unmarshal([]byte(`1709287200`), &d); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Unmarshal(number) error = %v, want type mismatch", err)
	}
}
