// Package cpc looks up UN Central Product Classification (CPC v2.1) codes.
package cpc

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/techie2000/axiom/pathfinder/pkg/pact"
)

// bundled is an excerpt of CPC v2.1: every section and a sample of the
// divisions, groups, classes and subclasses below them.
//
//go:embed cpc_v21_excerpt.csv
var bundled string

var codePattern = regexp.MustCompile(`^[0-9]{1,5}$`)

// Level is the depth of a code in the classification hierarchy.
type Level string

const (
	LevelSection  Level = "section"
	LevelDivision Level = "division"
	LevelGroup    Level = "group"
	LevelClass    Level = "class"
	LevelSubclass Level = "subclass"
)

var levels = [...]Level{LevelSection, LevelDivision, LevelGroup, LevelClass, LevelSubclass}

// Record is one row of the classification table.
type Record struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

// Level derives the hierarchy level from the code length.
func (r Record) Level() Level {
	return levels[len(r.Code)-1]
}

// Lookup is an immutable code to title table. It is safe for concurrent use.
type Lookup struct {
	records  map[string]Record
	complete bool
}

// NewLookup reads a two column CSV table with a "code,title" header. The
// table is taken to be the complete classification.
func NewLookup(r io.Reader) (*Lookup, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	// 1. Header
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CPC headers: %w", err)
	}
	if len(headers) != 2 || strings.TrimSpace(headers[0]) != "code" || strings.TrimSpace(headers[1]) != "title" {
		return nil, fmt.Errorf("unexpected CPC headers %v, want [code title]", headers)
	}

	// 2. Rows
	l := &Lookup{records: make(map[string]Record), complete: true}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CPC row: %w", err)
		}
		code, title := strings.TrimSpace(row[0]), strings.TrimSpace(row[1])
		if err := validateCode(code); err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if title == "" {
			line, _ := reader.FieldPos(1)
			return nil, fmt.Errorf("line %d: code %s has no title", line, code)
		}
		if _, dup := l.records[code]; dup {
			return nil, fmt.Errorf("duplicate CPC code %s", code)
		}
		l.records[code] = Record{Code: code, Title: title}
	}
	return l, nil
}

// LoadFile reads a CPC table from path. A missing file is an error.
func LoadFile(path string) (*Lookup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CPC table: %w", err)
	}
	defer f.Close()
	return NewLookup(f)
}

var (
	defaultOnce   sync.Once
	defaultLookup *Lookup
	defaultErr    error
)

// Default returns the lookup over the bundled excerpt of CPC v2.1. It holds
// every section but only part of the codes below them, so Complete reports
// false and a miss does not prove a code unassigned. Load the full table
// with LoadFile when that matters.
func Default() (*Lookup, error) {
	defaultOnce.Do(func() {
		defaultLookup, defaultErr = NewLookup(strings.NewReader(bundled))
		if defaultErr == nil {
			defaultLookup.complete = false
		}
	})
	return defaultLookup, defaultErr
}

func validateCode(code string) error {
	if code == "" {
		return &pact.ValidationError{Kind: pact.ErrMissingArgument, Field: "code", Message: "is required"}
	}
	if !codePattern.MatchString(code) {
		return &pact.ValidationError{
			Kind:    pact.ErrInvalidFormat,
			Field:   "code",
			Value:   code,
			Message: fmt.Sprintf("%q is not a CPC code of 1 to 5 digits", code),
		}
	}
	return nil
}

// Lookup returns the record for code. A well-formed code that is not in the
// table yields ok == false and a nil error.
func (l *Lookup) Lookup(code string) (Record, bool, error) {
	if err := validateCode(code); err != nil {
		return Record{}, false, err
	}
	r, ok := l.records[code]
	return r, ok, nil
}

// Parent returns the nearest ancestor of code present in the table.
func (l *Lookup) Parent(code string) (Record, bool, error) {
	if err := validateCode(code); err != nil {
		return Record{}, false, err
	}
	for p := code[:len(code)-1]; p != ""; p = p[:len(p)-1] {
		if r, ok := l.records[p]; ok {
			return r, true, nil
		}
	}
	return Record{}, false, nil
}

// Path returns the chain of ancestors of code present in the table, from
// the section down to code itself.
func (l *Lookup) Path(code string) ([]Record, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	var path []Record
	for i := 1; i <= len(code); i++ {
		if r, ok := l.records[code[:i]]; ok {
			path = append(path, r)
		}
	}
	return path, nil
}

func (l *Lookup) Len() int { return len(l.records) }

// Complete reports whether the table claims to hold every code, so that a
// well-formed code missing from it is unassigned.
func (l *Lookup) Complete() bool { return l.complete }
