package namematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxvalidate/nxvalidate/internal/nxdl"
)

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		local       string
		ok          bool
		placeholder string
		prefix      string
		suffix      string
	}{
		{local: "FIELDNAME_errors", ok: true, placeholder: "FIELDNAME", suffix: "_errors"},
		{local: "sample_GROUPNAME", ok: true, placeholder: "GROUPNAME", prefix: "sample_"},
		{local: "AXISNAME", ok: true, placeholder: "AXISNAME"},
		{local: "pre_FIELDNAME_post", ok: true, placeholder: "FIELDNAME", prefix: "pre_", suffix: "_post"},
		{local: "title", ok: false},
		{local: "AXIS_then_NAME", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.local, func(t *testing.T) {
			tpl, ok := ParseTemplate(tt.local)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.placeholder, tpl.Placeholder)
			assert.Equal(t, tt.prefix, tpl.Prefix)
			assert.Equal(t, tt.suffix, tpl.Suffix)
		})
	}
}

func TestPartialBinding(t *testing.T) {
	m := nxdl.Member{
		LocalName: "FIELDNAME_errors",
		Kind:      nxdl.KindField,
		NameType:  nxdl.NamePartial,
	}

	assert.True(t, Matches(&m, "intensity_errors", ""))
	bound, ok := Binding(&m, "intensity_errors")
	require.True(t, ok)
	assert.Equal(t, "intensity", bound)

	// neither half alone satisfies the template
	assert.False(t, Matches(&m, "intensity", ""))
	assert.False(t, Matches(&m, "errors", ""))
	// the bound text must be non-empty
	assert.False(t, Matches(&m, "_errors", ""))
}

func TestMidNameTemplateBinding(t *testing.T) {
	m := nxdl.Member{
		LocalName: "pre_FIELDNAME_post",
		Kind:      nxdl.KindField,
		NameType:  nxdl.NamePartial,
	}

	bound, ok := Binding(&m, "pre_value_post")
	require.True(t, ok)
	assert.Equal(t, "value", bound)

	// names shorter than prefix+suffix can still satisfy both halves by
	// overlapping; they must be rejected, not sliced
	assert.False(t, Matches(&m, "pre_post", ""))
	assert.False(t, Matches(&m, "pre_ost", ""))
}

func TestSpecifiedMatch(t *testing.T) {
	m := nxdl.Member{LocalName: "title", Kind: nxdl.KindField}
	assert.True(t, Matches(&m, "title", ""))
	assert.False(t, Matches(&m, "Title", ""))
	assert.False(t, Matches(&m, "titles", ""))
}

func TestClassWildcard(t *testing.T) {
	m := nxdl.Member{Kind: nxdl.KindGroup, TypeOrClass: "NXsample"}
	assert.Equal(t, KindClassWildcard, Classify(&m))
	assert.True(t, Matches(&m, "anything", "NXsample"))
	assert.True(t, Matches(&m, "other", "NXsample"))
	assert.False(t, Matches(&m, "anything", "NXdata"))
}

func TestBestPrefersSpecified(t *testing.T) {
	members := []nxdl.Member{
		{LocalName: "FIELDNAME_set", Kind: nxdl.KindField, NameType: nxdl.NamePartial},
		{LocalName: "temperature_set", Kind: nxdl.KindField},
	}

	// the exact member wins even though the template also matches
	idx, ok := Best(members, nxdl.KindField, "temperature_set", "")
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	// a name only the template covers binds to the template
	idx, ok = Best(members, nxdl.KindField, "pressure_set", "")
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestBestKindSeparation(t *testing.T) {
	members := []nxdl.Member{
		{LocalName: "data", Kind: nxdl.KindGroup, TypeOrClass: "NXdata"},
	}
	_, ok := Best(members, nxdl.KindField, "data", "")
	assert.False(t, ok)

	idx, ok := Best(members, nxdl.KindGroup, "data", "NXdata")
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestBestNoMatch(t *testing.T) {
	members := []nxdl.Member{
		{LocalName: "title", Kind: nxdl.KindField},
	}
	_, ok := Best(members, nxdl.KindField, "comment", "")
	assert.False(t, ok)
}
