package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/techie2000/axiom/pathfinder/internal/logging"
	"github.com/techie2000/axiom/pathfinder/pkg/report"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		outPath string
		opts    processOptions
	)

	cmd := &cobra.Command{
		Use:   "report <file>...",
		Short: "Export a spreadsheet summary of footprint documents",
		Long: `report validates the given files and writes one row per valid footprint.
An .xlsx output also lists rejected documents on a second sheet; a .csv
output holds the valid footprints only.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				entries  []report.Entry
				failures []report.Failure
				summary  Summary
			)
			for _, path := range args {
				for _, r := range a.processFile(path, opts) {
					summary.add(r)
					switch {
					case r.Error != nil:
						field, kind := describe(r.Error)
						failures = append(failures, report.Failure{Source: r.Source, Field: field, Kind: kind, Error: r.Error.Error()})
					case !r.Skipped:
						entries = append(entries, report.Entry{Source: r.Source, Footprint: r.Footprint})
					}
				}
			}

			switch strings.ToLower(filepath.Ext(outPath)) {
			case ".xlsx":
				if err := report.WriteExcelFile(outPath, entries, failures); err != nil {
					return err
				}
			case ".csv":
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create report: %w", err)
				}
				if err := report.WriteCSV(f, entries); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported report format %q (must be .xlsx or .csv)", filepath.Ext(outPath))
			}

			logging.Info("✓ Report written to %s: %s", outPath, summary)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file, .xlsx or .csv (required)")
	cmd.Flags().BoolVar(&opts.StrictCPC, "strict-cpc", false, "Reject CPC codes missing from the classification table")
	cmd.Flags().BoolVar(&opts.ActiveOnly, "active-only", false, "Skip footprints whose status is not Active")
	cmd.MarkFlagRequired("out")
	return cmd
}
