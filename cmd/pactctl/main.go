package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/techie2000/axiom/pathfinder/internal/config"
	"github.com/techie2000/axiom/pathfinder/internal/logging"
	"github.com/techie2000/axiom/pathfinder/pkg/cpc"
)

// Version is set at build time via ldflags or read from VERSION file
var Version = "dev"

func init() {
	if Version == "dev" {
		if versionBytes, err := os.ReadFile("VERSION"); err == nil {
			Version = strings.TrimSpace(string(versionBytes))
		}
	}
}

// app carries the state shared by every subcommand.
type app struct {
	cfg      *config.Config
	cpcTable string
	logLevel string
	closeLog func() error
	lookup   *cpc.Lookup
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "pactctl",
		Short: "Validate and convert PACT product carbon footprints",
		Long: `pactctl validates product footprint documents against the PACT
(Pathfinder) data model, converts them between JSON and YAML, and exports
spreadsheet summaries. Documents are read from JSON or YAML files.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	rootCmd.PersistentFlags().StringVar(&a.cpcTable, "cpc-table", "", "CPC code table CSV (overrides PACT_CPC_TABLE)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(
		newValidateCmd(a),
		newConvertCmd(a),
		newReportCmd(a),
		newCPCCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.cpcTable != "" {
		cfg.CPC.TablePath = a.cpcTable
	}
	if a.logLevel != "" {
		cfg.Logging.Level = strings.ToLower(a.logLevel)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logging.SetLevel(level)

	if cfg.Logging.EnableFileLogging {
		closeFn, err := logging.EnableFile(cfg.Logging.LogFilePath, cmd.ErrOrStderr())
		if err != nil {
			logging.Warn("Failed to open log file %s: %v", cfg.Logging.LogFilePath, err)
		} else {
			a.closeLog = closeFn
			logging.Debug("File logging enabled: %s", cfg.Logging.LogFilePath)
		}
	}

	a.cfg = cfg
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) error {
	if a.closeLog == nil {
		return nil
	}
	err := a.closeLog()
	a.closeLog = nil
	return err
}

// cpcLookup loads the configured CPC table on first use.
func (a *app) cpcLookup() (*cpc.Lookup, error) {
	if a.lookup != nil {
		return a.lookup, nil
	}
	var err error
	if path := a.cfg.CPC.TablePath; path != "" {
		a.lookup, err = cpc.LoadFile(path)
		if err == nil {
			logging.Debug("Loaded %d CPC codes from %s", a.lookup.Len(), path)
		}
	} else {
		a.lookup, err = cpc.Default()
	}
	return a.lookup, err
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pactctl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "pactctl %s (data model %s)\n", Version, a.cfg.SpecVersion())
			return nil
		},
	}
}
