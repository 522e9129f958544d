package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/techie2000/axiom/pathfinder/internal/logging"
)

func newValidateCmd(a *app) *cobra.Command {
	var opts processOptions

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate footprint documents",
		Long: `validate checks every footprint in the given JSON or YAML files against
the data model and the CPC classification. It exits non-zero when any
document is rejected.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var summary Summary

			for _, path := range args {
				for _, r := range a.processFile(path, opts) {
					summary.add(r)
					switch {
					case r.Error != nil:
						logging.Error("✗ Rejected: %s: %v", r.Source, r.Error)
						fmt.Fprintf(out, "FAIL %s: %v\n", r.Source, r.Error)
					case r.Skipped:
						logging.Info("Skipped: %s (%s)", r.Source, r.SkipReason)
						fmt.Fprintf(out, "SKIP %s: %s\n", r.Source, r.SkipReason)
					default:
						logging.Info("✓ Valid: %s (%s)", r.Source, r.Footprint.ID())
						fmt.Fprintf(out, "OK   %s %s\n", r.Source, r.Footprint.ID())
					}
				}
			}

			fmt.Fprintf(out, "%s\n", summary)
			if summary.Rejected > 0 {
				return fmt.Errorf("%d document(s) rejected", summary.Rejected)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.StrictCPC, "strict-cpc", false, "Reject CPC codes missing from the classification table (requires a full table via --cpc-table)")
	cmd.Flags().BoolVar(&opts.ActiveOnly, "active-only", false, "Skip footprints whose status is not Active")
	return cmd
}
