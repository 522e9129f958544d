package pact

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is the record version of a ProductFootprint.
type Version int

const maxVersion = math.MaxInt32

// NewVersion validates v is within [0, 2^31-1].
func NewVersion(v int) (Version, error) {
	if v < 0 || v > maxVersion {
		return 0, rangeErr("version", v, "must be between 0 and %d", maxVersion)
	}
	return Version(v), nil
}

func (v Version) Int() int { return int(v) }

// SpecVersion is the version of the PACT technical specification a record
// conforms to, written MAJOR.MINOR.PATCH.
type SpecVersion struct {
	v string // canonical semver with leading "v"
}

// DefaultSpecVersion is the specification version records are produced for.
var DefaultSpecVersion = SpecVersion{v: "v2.2.0"}

// ParseSpecVersion accepts "2.2.0" style versions of the 2.x line.
func ParseSpecVersion(s string) (SpecVersion, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SpecVersion{}, missingErr("specVersion")
	}
	sv := "v" + strings.TrimPrefix(s, "v")
	if !semver.IsValid(sv) || semver.Canonical(sv) != strings.SplitN(sv, "+", 2)[0] {
		return SpecVersion{}, formatErr("specVersion", s, "must be a MAJOR.MINOR.PATCH version, got %q", s)
	}
	if semver.Major(sv) != "v2" {
		return SpecVersion{}, rangeErr("specVersion", s, "unsupported major version %s, expected 2", strings.TrimPrefix(semver.Major(sv), "v"))
	}
	return SpecVersion{v: semver.Canonical(sv)}, nil
}

func (s SpecVersion) Major() int { return s.part(0) }
func (s SpecVersion) Minor() int { return s.part(1) }
func (s SpecVersion) Patch() int { return s.part(2) }

func (s SpecVersion) part(i int) int {
	core := strings.TrimPrefix(semver.Canonical(s.v), "v")
	core = strings.SplitN(core, "-", 2)[0]
	parts := strings.Split(core, ".")
	if i >= len(parts) {
		return 0
	}
	n, _ := strconv.Atoi(parts[i])
	return n
}

// Compare orders spec versions by semantic version precedence.
func (s SpecVersion) Compare(o SpecVersion) int { return semver.Compare(s.v, o.v) }

func (s SpecVersion) IsZero() bool { return s.v == "" }

func (s SpecVersion) String() string { return strings.TrimPrefix(s.v, "v") }

func (s SpecVersion) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// DataQualityRating scores one dimension of data quality, 1 (best) to 3.
type DataQualityRating int

// NewDataQualityRating validates r is within [1, 3].
func NewDataQualityRating(r int) (DataQualityRating, error) {
	if r < 1 || r > 3 {
		return 0, rangeErr("", r, "data quality rating must be between 1 and 3, got %d", r)
	}
	return DataQualityRating(r), nil
}

func (r DataQualityRating) Int() int { return int(r) }
