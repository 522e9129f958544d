// Package report exports summaries of validated footprints as spreadsheets.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/techie2000/axiom/pathfinder/pkg/pact"
)

const (
	FootprintsSheet = "Footprints"
	FailuresSheet   = "Failures"
	columnWidth     = 18
)

// Entry is one validated footprint and the file it came from.
type Entry struct {
	Source    string
	Footprint *pact.ProductFootprint
}

// Failure is a document that did not validate.
type Failure struct {
	Source string
	Field  string
	Kind   string
	Error  string
}

var footprintHeaders = []string{
	"Source", "ID", "Spec Version", "Version", "Status", "Company", "Product", "CPC",
	"Declared Unit", "Unitary Amount", "PCF excl. Biogenic", "PCF incl. Biogenic",
	"Reference Start", "Reference End", "Geography", "Primary Data Share",
}

var failureHeaders = []string{"Source", "Field", "Kind", "Error"}

// FootprintRow flattens e into the column order of the Footprints sheet.
func FootprintRow(e Entry) []string {
	pf := e.Footprint
	pcf := pf.PCF()

	incl := ""
	if v := pcf.PCfIncludingBiogenic(); v != nil {
		incl = v.String()
	}
	share := ""
	if v := pcf.PrimaryDataShare(); v != nil {
		share = strconv.FormatFloat(*v, 'f', -1, 64)
	}
	geo := pcf.GeographicalScope()

	return []string{
		e.Source,
		pf.ID().String(),
		pf.SpecVersion().String(),
		strconv.Itoa(pf.Version().Int()),
		pf.Status().String(),
		pf.CompanyName(),
		pf.ProductNameCompany(),
		pf.ProductCategoryCPC(),
		pcf.DeclaredUnit().String(),
		pcf.UnitaryProductAmount().String(),
		pcf.PCfExcludingBiogenic().String(),
		incl,
		pcf.ReferencePeriod().Start().String(),
		pcf.ReferencePeriod().End().String(),
		fmt.Sprintf("%s %s", geo.Granularity(), geo.Scope()),
		share,
	}
}

func failureRow(f Failure) []string {
	return []string{f.Source, f.Field, f.Kind, f.Error}
}

// WriteExcel writes an xlsx workbook with one sheet of footprints and, when
// failures is not empty, one sheet of failures.
func WriteExcel(w io.Writer, entries []Entry, failures []Failure) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	// 1. Footprints
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = FootprintRow(e)
	}
	index, err := writeSheet(f, FootprintsSheet, headerStyle, footprintHeaders, rows)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	// 2. Failures
	if len(failures) > 0 {
		rows = make([][]string, len(failures))
		for i, fl := range failures {
			rows[i] = failureRow(fl)
		}
		if _, err := writeSheet(f, FailuresSheet, headerStyle, failureHeaders, rows); err != nil {
			return err
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

// WriteExcelFile is WriteExcel to a new file at path.
func WriteExcelFile(path string, entries []Entry, failures []Failure) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := WriteExcel(out, entries, failures); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func writeSheet(f *excelize.File, sheet string, style int, headers []string, rows [][]string) (int, error) {
	index, err := f.NewSheet(sheet)
	if err != nil {
		return 0, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return 0, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return 0, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return 0, err
		}
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return 0, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return 0, err
			}
		}
	}

	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return 0, err
	}
	if err := f.SetColWidth(sheet, "A", last, columnWidth); err != nil {
		return 0, err
	}
	return index, nil
}

// WriteCSV writes the footprints sheet as CSV.
func WriteCSV(w io.Writer, entries []Entry) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(footprintHeaders); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, e := range entries {
		if err := writer.Write(FootprintRow(e)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
