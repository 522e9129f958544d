package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/techie2000/axiom/pathfinder/internal/logging"
	"github.com/techie2000/axiom/pathfinder/pkg/pact"
	"github.com/techie2000/axiom/pathfinder/pkg/transform"
)

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Validate a document and write it in canonical form",
		Long: `convert reads footprints from a JSON or YAML file, validates them and
writes the canonical wire form. The output format follows the extension of
<out>; "-" writes JSON to standard output.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]

			raws, err := decodeFile(in)
			if err != nil {
				return err
			}

			footprints := make([]*pact.ProductFootprint, 0, len(raws))
			for i, raw := range raws {
				pf, err := transform.ToProductFootprint(raw)
				if err != nil {
					return fmt.Errorf("document %d of %s: %w", i, in, err)
				}
				footprints = append(footprints, pf)
			}

			var doc any = footprints
			if len(footprints) == 1 {
				doc = footprints[0]
			}

			var data []byte
			if out != "-" && isYAML(out) {
				data, err = transform.EncodeYAML(doc)
			} else {
				data, err = json.MarshalIndent(doc, "", "  ")
				data = append(data, '\n')
			}
			if err != nil {
				return fmt.Errorf("failed to encode output: %w", err)
			}

			if out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			logging.Info("✓ Converted %d footprint(s): %s -> %s", len(footprints), in, out)
			return nil
		},
	}
}
