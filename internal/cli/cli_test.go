package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxvalidate/nxvalidate"
)

func writeDefinitions(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"base_classes/NXentry.nxdl.xml": `<definition name="NXentry" category="base">
  <field name="title" type="NX_CHAR"/>
  <field name="definition" type="NX_CHAR"/>
  <group type="NXsample"/>
</definition>`,
		"base_classes/NXsample.nxdl.xml": `<definition name="NXsample" category="base">
  <field name="name" type="NX_CHAR"/>
</definition>`,
		"applications/NXsimple.nxdl.xml": `<definition name="NXsimple" category="application">
  <group type="NXentry">
    <field name="title"/>
    <group type="NXsample" name="sample" minOccurs="1">
      <field name="name"/>
    </group>
  </group>
</definition>`,
	}
	for name, data := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	}
	return dir
}

func writeTree(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

const conformingTree = `name: entry
class: NXentry
children:
  - name: title
    type: string
    value: scan
  - name: definition
    type: string
    value: NXsimple
  - name: sample
    class: NXsample
    children:
      - name: name
        type: string
        value: vanadium
`

// runCLI executes the command tree and resets the package-level flag
// state afterwards so tests stay independent.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	reset := func() {
		rootFlags.definitions = ""
		rootFlags.infos = false
		rootFlags.warnings = false
		rootFlags.errors = false
		validateFlags.path = ""
		validateFlags.application = ""
		validateFlags.baseclass = ""
		showBase = false
		for _, cmd := range append(rootCmd.Commands(), rootCmd) {
			cmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		}
		rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
	// cobra keeps flag values across Execute calls, so start each
	// invocation from default state, not just each test.
	reset()
	t.Cleanup(reset)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	defs := writeDefinitions(t)
	tree := writeTree(t, conformingTree)

	out, err := runCLI(t, "validate", "-d", defs, tree)
	require.NoError(t, err)
	assert.Contains(t, out, "0 errors")
}

func TestValidateCommandFindings(t *testing.T) {
	defs := writeDefinitions(t)
	tree := writeTree(t, `name: entry
class: NXbad
`)

	out, err := runCLI(t, "validate", "-d", defs, tree)
	require.ErrorIs(t, err, nxvalidate.ErrFindings)
	assert.Contains(t, out, "NXbad")
	assert.Equal(t, nxvalidate.ExitFindings, nxvalidate.ExitCodeForError(err))
}

func TestValidateCommandApplication(t *testing.T) {
	defs := writeDefinitions(t)
	tree := writeTree(t, conformingTree)

	out, err := runCLI(t, "validate", "-d", defs, "-a", tree)
	require.NoError(t, err)
	assert.Contains(t, out, "0 errors")

	out, err = runCLI(t, "validate", "-d", defs, "-a=NXsimple", tree)
	require.NoError(t, err)
	assert.Contains(t, out, "0 errors")
}

func TestValidateCommandBaseClass(t *testing.T) {
	defs := writeDefinitions(t)
	tree := writeTree(t, conformingTree)

	out, err := runCLI(t, "validate", "-d", defs, "-p", "/sample", "-b", "NXsample", tree)
	require.NoError(t, err)
	assert.Contains(t, out, "0 errors")

	_, err = runCLI(t, "validate", "-d", defs, "-p", "/nowhere", "-b", "NXsample", tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"/nowhere"`)
}

func TestValidateCommandMissingDefinitions(t *testing.T) {
	t.Setenv(definitionsEnv, "")
	tree := writeTree(t, conformingTree)

	_, err := runCLI(t, "validate", tree)
	require.ErrorIs(t, err, errNoDefinitions)
}

func TestShowCommand(t *testing.T) {
	defs := writeDefinitions(t)

	out, err := runCLI(t, "show", "-d", defs, "--base", "NXentry")
	require.NoError(t, err)
	assert.Contains(t, out, "Base Class: NXentry")
	assert.Contains(t, out, "title")

	out, err = runCLI(t, "show", "-d", defs, "NXsimple")
	require.NoError(t, err)
	assert.Contains(t, out, "Application Definition: NXsimple")

	_, err = runCLI(t, "show", "-d", defs, "--base", "NXsimple")
	require.Error(t, err)
	assert.Equal(t, nxvalidate.ExitSchemaError, nxvalidate.ExitCodeForError(err))
}

func TestListCommand(t *testing.T) {
	defs := writeDefinitions(t)

	out, err := runCLI(t, "list", "-d", defs)
	require.NoError(t, err)
	assert.Contains(t, out, "NXentry")
	assert.Contains(t, out, "NXsample")
	assert.Contains(t, out, "NXsimple")
}
