// Package cli implements the nxinspect command tree.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/nxvalidate/nxvalidate"
	nxerrors "github.com/nxvalidate/nxvalidate/errors"
)

var errNoDefinitions = errors.New(
	"no definitions directory: use --definitions or set $" + definitionsEnv)

// definitionsEnv names the environment variable consulted when the
// --definitions flag is not given.
const definitionsEnv = "NXDL_DEFINITIONS"

var rootCmd = &cobra.Command{
	Use:   "nxinspect",
	Short: "Validate scientific data trees against NXDL definitions",
	Long: `nxinspect validates the structure of hierarchical scientific data files
against NXDL schema definitions, and prints the resolved contents of the
definitions themselves.

The definitions directory must contain base_classes/ and applications/
subdirectories of <name>.nxdl.xml files. It is taken from --definitions
or, when the flag is absent, from $NXDL_DEFINITIONS.

Exit Codes:
  0 - Success, no error findings
  1 - General error
  2 - Validation completed with error findings
  3 - Schema could not be loaded or resolved
  4 - Data file could not be read`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var rootFlags struct {
	definitions string
	infos       bool
	warnings    bool
	errors      bool
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&rootFlags.definitions, "definitions", "d", "",
		"Definitions directory (default $"+definitionsEnv+")")
	pf.BoolVarP(&rootFlags.infos, "infos", "i", false,
		"Report all findings, down to informational ones")
	pf.BoolVarP(&rootFlags.warnings, "warnings", "w", false,
		"Report warnings and errors (the default)")
	pf.BoolVarP(&rootFlags.errors, "errors", "e", false,
		"Report errors only")
	rootCmd.MarkFlagsMutuallyExclusive("infos", "warnings", "errors")
}

// newValidator builds the engine from the configured definitions
// directory.
func newValidator() (*nxvalidate.Validator, error) {
	dir := rootFlags.definitions
	if dir == "" {
		dir = os.Getenv(definitionsEnv)
	}
	if dir == "" {
		return nil, errNoDefinitions
	}
	return nxvalidate.New(nxvalidate.WithDefinitionsDir(dir))
}

// severityFloor returns the lowest severity worth reporting.
func severityFloor() nxerrors.Severity {
	switch {
	case rootFlags.infos:
		return nxerrors.SeverityInfo
	case rootFlags.errors:
		return nxerrors.SeverityError
	default:
		return nxerrors.SeverityWarning
	}
}
