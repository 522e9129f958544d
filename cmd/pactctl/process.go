package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/techie2000/axiom/pathfinder/internal/logging"
	"github.com/techie2000/axiom/pathfinder/pkg/pact"
	"github.com/techie2000/axiom/pathfinder/pkg/transform"
)

// ProcessResult encapsulates the result of validating one document
type ProcessResult struct {
	Source     string
	Footprint  *pact.ProductFootprint
	Error      error
	Skipped    bool
	SkipReason string
}

// processOptions tune how documents are checked beyond the data model.
type processOptions struct {
	StrictCPC  bool
	ActiveOnly bool
}

// Summary counts the outcomes of a run.
type Summary struct {
	Valid    int
	Rejected int
	Skipped  int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d valid, %d rejected, %d skipped", s.Valid, s.Rejected, s.Skipped)
}

func (s *Summary) add(r ProcessResult) {
	switch {
	case r.Error != nil:
		s.Rejected++
	case r.Skipped:
		s.Skipped++
	default:
		s.Valid++
	}
}

// isYAML picks the decoder from the file extension.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func decodeFile(path string) ([]transform.RawProductFootprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if isYAML(path) {
		return transform.DecodeYAML(f)
	}
	return transform.DecodeJSON(f)
}

// processFile validates every document in path. A file that cannot be
// decoded yields a single failed result.
func (a *app) processFile(path string, opts processOptions) []ProcessResult {
	raws, err := decodeFile(path)
	if err != nil {
		return []ProcessResult{{Source: path, Error: err}}
	}

	results := make([]ProcessResult, 0, len(raws))
	for i, raw := range raws {
		source := path
		if len(raws) > 1 {
			source = fmt.Sprintf("%s#%d", path, i)
		}
		r := a.processDocument(raw, opts)
		r.Source = source
		results = append(results, r)
	}
	return results
}

func (a *app) processDocument(raw transform.RawProductFootprint, opts processOptions) ProcessResult {
	// 1. Data model validation
	pf, err := transform.ToProductFootprint(raw)
	if err != nil {
		return ProcessResult{Error: fmt.Errorf("validation failed: %w", err)}
	}

	// 2. Lifecycle filter
	if opts.ActiveOnly && pf.Status() != pact.StatusActive {
		return ProcessResult{Footprint: pf, Skipped: true, SkipReason: fmt.Sprintf("status %s", pf.Status())}
	}

	// 3. CPC membership
	lookup, err := a.cpcLookup()
	if err != nil {
		return ProcessResult{Error: fmt.Errorf("CPC table unavailable: %w", err)}
	}
	code := pf.ProductCategoryCPC()
	if _, ok, err := lookup.Lookup(code); err != nil {
		return ProcessResult{Error: fmt.Errorf("validation failed: %w", pact.Prefix("productCategoryCpc", err))}
	} else if !ok {
		switch {
		case opts.StrictCPC && lookup.Complete():
			return ProcessResult{Error: fmt.Errorf("validation failed: %w", &pact.ValidationError{
				Kind:    pact.ErrOutOfRange,
				Field:   "productCategoryCpc",
				Value:   code,
				Message: fmt.Sprintf("CPC code %s is not in the classification table", code),
			})}
		case opts.StrictCPC:
			logging.Warn("CPC code %s of footprint %s is not in the bundled excerpt; set --cpc-table to a full table to check it strictly", code, pf.ID())
		default:
			logging.Warn("CPC code %s of footprint %s is not in the classification table", code, pf.ID())
		}
	}

	// 4. Spec version drift
	if pf.SpecVersion().Compare(a.cfg.SpecVersion()) != 0 {
		logging.Warn("Footprint %s declares spec version %s, expected %s", pf.ID(), pf.SpecVersion(), a.cfg.SpecVersion())
	}

	return ProcessResult{Footprint: pf}
}

// describe renders the failing field and kind of err for reports.
func describe(err error) (field, kind string) {
	var ve *pact.ValidationError
	if errors.As(err, &ve) {
		return ve.Field, ve.Kind.Error()
	}
	return "", "error"
}
