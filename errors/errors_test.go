package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaErrorCode(t *testing.T) {
	err := NewSchemaError(CodeSchemaNotFound, "NXmissing", "no definition file")
	assert.True(t, IsCode(err, CodeSchemaNotFound))
	assert.False(t, IsCode(err, CodeSchemaParse))

	wrapped := fmt.Errorf("load: %w", err)
	assert.True(t, IsCode(wrapped, CodeSchemaNotFound))

	se, ok := AsSchemaError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "NXmissing", se.Schema)
}

func TestSchemaErrorFormat(t *testing.T) {
	err := NewSchemaError(CodeCyclicInheritance, "NXa", "cycle: NXa -> NXb -> NXa")
	assert.Equal(t, "[cyclic-inheritance] NXa: cycle: NXa -> NXb -> NXa", err.Error())
}

func TestReportAtLeast(t *testing.T) {
	r := Report{
		{Severity: SeverityInfo, Path: "/entry", Message: "ok"},
		{Severity: SeverityWarning, Path: "/entry/data", Message: "extra"},
		{Severity: SeverityError, Path: "/entry/title", Message: "missing"},
	}

	assert.Len(t, r.AtLeast(SeverityInfo), 3)
	assert.Len(t, r.AtLeast(SeverityWarning), 2)

	errs := r.AtLeast(SeverityError)
	require.Len(t, errs, 1)
	assert.Equal(t, "/entry/title", errs[0].Path)
}

func TestReportCounts(t *testing.T) {
	r := Report{
		{Severity: SeverityInfo},
		{Severity: SeverityInfo},
		{Severity: SeverityError},
	}
	info, warning, errs := r.Counts()
	assert.Equal(t, 2, info)
	assert.Equal(t, 0, warning)
	assert.Equal(t, 1, errs)
	assert.True(t, r.HasErrors())
}
