package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCPCCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cpc",
		Short: "Query the CPC classification table",
	}

	var showPath bool
	lookupCmd := &cobra.Command{
		Use:   "lookup <code>",
		Short: "Print the title of a CPC code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lookup, err := a.cpcLookup()
			if err != nil {
				return err
			}
			code := args[0]

			rec, ok, err := lookup.Lookup(code)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("CPC code %s not found", code)
			}

			out := cmd.OutOrStdout()
			if !showPath {
				fmt.Fprintf(out, "%s\t%s\t%s\n", rec.Code, rec.Level(), rec.Title)
				return nil
			}
			path, err := lookup.Path(code)
			if err != nil {
				return err
			}
			for _, r := range path {
				fmt.Fprintf(out, "%s\t%s\t%s\n", r.Code, r.Level(), r.Title)
			}
			return nil
		},
	}
	lookupCmd.Flags().BoolVar(&showPath, "path", false, "Also print every ancestor of the code")

	cmd.AddCommand(lookupCmd)
	return cmd
}
