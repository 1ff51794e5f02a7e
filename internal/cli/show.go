package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <class>",
	Short: "Print the resolved contents of a definition",
	Long: `Show resolves a definition through its whole inheritance chain and
prints the effective attributes, groups, and fields. Application
definitions are searched before base classes; --base restricts the
lookup to base classes.

Examples:
  nxinspect show NXsample
  nxinspect show NXtomo
  nxinspect show --base NXentry`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var showBase bool

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showBase, "base", false,
		"Restrict the lookup to base classes")
}

func runShow(cmd *cobra.Command, args []string) error {
	v, err := newValidator()
	if err != nil {
		return err
	}

	var listing string
	if showBase {
		listing, err = v.InspectBaseClass(args[0])
	} else {
		listing, err = v.Inspect(args[0])
	}
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), listing)
	return nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available definitions",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	v, err := newValidator()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	base, err := v.BaseClassNames()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Base Classes")
	for _, name := range base {
		fmt.Fprintf(out, "  %s\n", name)
	}

	apps, err := v.ApplicationNames()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Application Definitions")
	for _, name := range apps {
		fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}
