package nxdl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBase = `<?xml version="1.0"?>
<definition xmlns="http://definition.nexusformat.org/nxdl/3.1"
            name="NXdetector" extends="NXobject" category="base" type="group">
  <doc>A detector.</doc>
  <attribute name="default"/>
  <field name="distance" type="NX_FLOAT" units="NX_LENGTH"/>
  <field name="FIELDNAME_errors" nameType="partial" type="NX_FLOAT"/>
  <field name="mode" type="NX_CHAR">
    <enumeration>
      <item value="gated"/>
      <item value="summed"/>
    </enumeration>
  </field>
  <field name="data" type="NX_NUMBER">
    <dimensions rank="2">
      <dim index="1" value="nP"/>
      <dim index="2" value="nQ"/>
    </dimensions>
    <attribute name="check_sum" type="NX_INT" optional="true"/>
  </field>
  <group type="NXgeometry" deprecated="use NXtransformations"/>
  <group name="calibration" type="NXcalibration" minOccurs="0" maxOccurs="2"/>
</definition>`

func TestParseBaseClass(t *testing.T) {
	def, err := Parse(strings.NewReader(sampleBase), "NXdetector.nxdl.xml")
	require.NoError(t, err)

	assert.Equal(t, "NXdetector", def.Name)
	assert.Equal(t, CategoryBase, def.Category)
	assert.Equal(t, "NXobject", def.Extends)

	require.Len(t, def.Attributes, 1)
	assert.Equal(t, "default", def.Attributes[0].Name)

	require.Len(t, def.Members, 6)

	distance := def.Members[0]
	assert.Equal(t, "distance", distance.LocalName)
	assert.Equal(t, KindField, distance.Kind)
	assert.Equal(t, "NX_FLOAT", distance.TypeOrClass)
	assert.Equal(t, "NX_LENGTH", distance.Units)
	assert.False(t, distance.HasMinOccurs)

	partial := def.Members[1]
	assert.Equal(t, NamePartial, partial.NameType)

	mode := def.Members[2]
	assert.Equal(t, []string{"gated", "summed"}, mode.Enumeration)

	data := def.Members[3]
	assert.True(t, data.HasRank)
	assert.Equal(t, 2, data.Rank)
	require.Len(t, data.Attributes, 1)
	assert.Equal(t, "check_sum", data.Attributes[0].Name)
	assert.True(t, data.Attributes[0].Optional)

	geometry := def.Members[4]
	assert.Equal(t, KindGroup, geometry.Kind)
	assert.Equal(t, "", geometry.LocalName)
	assert.Equal(t, "NXgeometry", geometry.TypeOrClass)
	assert.Equal(t, "NXgeometry", geometry.DisplayName())
	assert.NotEmpty(t, geometry.Deprecated)

	calibration := def.Members[5]
	assert.Equal(t, "calibration", calibration.LocalName)
	assert.True(t, calibration.HasMinOccurs)
	assert.Equal(t, 0, calibration.MinOccurs.Value())
	assert.True(t, calibration.MaxOccurs.Exceeds(3))
	assert.False(t, calibration.MaxOccurs.Exceeds(2))
}

func TestParseApplicationNesting(t *testing.T) {
	const app = `<?xml version="1.0"?>
<definition name="NXminimal" extends="NXobject" category="application" type="group">
  <group type="NXentry">
    <field name="title"/>
    <field name="definition">
      <enumeration><item value="NXminimal"/></enumeration>
    </field>
    <group type="NXdata" name="data" minOccurs="1">
      <field name="counts" type="NX_INT"/>
    </group>
  </group>
</definition>`

	def, err := Parse(strings.NewReader(app), "NXminimal.nxdl.xml")
	require.NoError(t, err)
	assert.Equal(t, CategoryApplication, def.Category)

	require.Len(t, def.Members, 1)
	entry := def.Members[0]
	assert.Equal(t, "NXentry", entry.TypeOrClass)
	require.Len(t, entry.Members, 3)
	assert.Equal(t, "title", entry.Members[0].LocalName)

	data := entry.Members[2]
	assert.Equal(t, "data", data.LocalName)
	require.Len(t, data.Members, 1)
	assert.Equal(t, "counts", data.Members[0].LocalName)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "wrong root", doc: `<group name="x"/>`},
		{name: "missing name", doc: `<definition category="base"/>`},
		{name: "unbounded min", doc: `<definition name="NXa" category="base"><field name="f" minOccurs="unbounded"/></definition>`},
		{name: "group without type", doc: `<definition name="NXa" category="base"><group name="g"/></definition>`},
		{name: "truncated markup", doc: `<definition name="NXa" category="base"><field name="f">`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc), tt.name+".nxdl.xml")
			assert.Error(t, err)
		})
	}
}

func TestParseOccurs(t *testing.T) {
	o, err := ParseOccurs("maxOccurs", "unbounded")
	require.NoError(t, err)
	assert.True(t, o.IsUnbounded())
	assert.False(t, o.Exceeds(1_000_000))
	assert.Equal(t, "unbounded", o.String())

	o, err = ParseOccurs("minOccurs", "3")
	require.NoError(t, err)
	assert.False(t, o.IsUnbounded())
	assert.Equal(t, 3, o.Value())
	assert.True(t, o.Exceeds(4))
	assert.False(t, o.Exceeds(3))

	_, err = ParseOccurs("minOccurs", "unbounded")
	assert.Error(t, err)
	_, err = ParseOccurs("maxOccurs", "-1")
	assert.Error(t, err)
}
