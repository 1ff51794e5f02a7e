package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nxvalidate/nxvalidate"
	nxerrors "github.com/nxvalidate/nxvalidate/errors"
	"github.com/nxvalidate/nxvalidate/pkg/nxtree"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.yaml>",
	Short: "Validate a data tree rendition",
	Long: `Validate checks the structure of a data tree against NXDL definitions.

By default every group in the tree is checked against its own declared
class. With --baseclass the selected subtree is checked against the
named base class instead; with --application the selected entry is
checked against an application definition.

Examples:
  # Whole-tree validation against base classes
  nxinspect validate scan.yaml

  # One subtree against a specific base class
  nxinspect validate scan.yaml -p /entry/sample -b NXsample

  # Application validation, definition named by the entry itself
  nxinspect validate scan.yaml -a

  # Application validation against an explicit definition or schema file
  nxinspect validate scan.yaml -a=NXtomo
  nxinspect validate scan.yaml -a=./local/NXtomo.nxdl.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var validateFlags struct {
	path        string
	application string
	baseclass   string
}

func init() {
	rootCmd.AddCommand(validateCmd)

	f := validateCmd.Flags()
	f.StringVarP(&validateFlags.path, "path", "p", "",
		"Path of the subtree to validate")
	f.StringVarP(&validateFlags.application, "application", "a", "",
		"Validate against an application definition; with no value the entry's definition field names it")
	f.StringVarP(&validateFlags.baseclass, "baseclass", "b", "",
		"Validate against the named base class")
	f.Lookup("application").NoOptDefVal = "-"
	validateCmd.MarkFlagsMutuallyExclusive("application", "baseclass")
}

func runValidate(cmd *cobra.Command, args []string) error {
	v, err := newValidator()
	if err != nil {
		return err
	}
	root, err := nxtree.LoadYAMLFile(args[0])
	if err != nil {
		return err
	}

	report, err := dispatchValidate(cmd, v, root)
	if err != nil {
		return err
	}

	writeReport(cmd.OutOrStdout(), report, severityFloor())
	if report.HasErrors() {
		return nxvalidate.ErrFindings
	}
	return nil
}

func dispatchValidate(cmd *cobra.Command, v *nxvalidate.Validator, root nxtree.Node) (nxerrors.Report, error) {
	if cmd.Flags().Changed("application") {
		application := validateFlags.application
		if application == "-" {
			application = ""
		}
		return v.ValidateApplication(root, validateFlags.path, application)
	}

	node := root
	if validateFlags.path != "" {
		found, ok := nxtree.Find(root, validateFlags.path)
		if !ok {
			return nil, fmt.Errorf("no node at %q in the data tree", validateFlags.path)
		}
		node = found
	}

	if validateFlags.baseclass != "" {
		return v.ValidateClass(node, validateFlags.baseclass)
	}
	return v.ValidateTree(node)
}
