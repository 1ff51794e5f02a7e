package nxtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidName(t *testing.T) {
	valid := []string{"entry", "entry_1", "2theta", "a.b.c", "x"}
	for _, name := range valid {
		assert.True(t, ValidName(name), name)
	}
	invalid := []string{"", "entry!", "bad name", ".start", "end."}
	for _, name := range invalid {
		assert.False(t, ValidName(name), name)
	}
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		declared  string
		valueType string
		want      bool
	}{
		{"NX_FLOAT", "float64", true},
		{"NX_FLOAT", "float32", true},
		{"NX_FLOAT", "int32", false},
		{"NX_INT", "int16", true},
		{"NX_INT", "uint64", true},
		{"NX_INT", "float64", false},
		{"NX_UINT", "uint8", true},
		{"NX_UINT", "int8", false},
		{"NX_NUMBER", "int32", true},
		{"NX_NUMBER", "float32", true},
		{"NX_NUMBER", "string", false},
		{"NX_CHAR", "string", true},
		{"NX_CHAR", "float64", false},
		{"NX_CHAR_OR_NUMBER", "string", true},
		{"NX_CHAR_OR_NUMBER", "uint16", true},
		{"NX_BOOLEAN", "bool", true},
		{"NX_BOOLEAN", "float32", false},
		{"NX_COMPLEX", "complex128", true},
		{"NX_COMPLEX", "float64", false},
		{"NX_DATE_TIME", "string", true},
		{"NX_POSINT", "uint32", true},
		{"NX_ANY", "float64", true},
		{"", "float64", true},
		{"NX_FLOAT", "", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Compatible(tt.declared, tt.valueType),
			"%s vs %s", tt.declared, tt.valueType)
	}
}

func TestIsISO8601(t *testing.T) {
	assert.True(t, IsISO8601("2024-03-01T12:30:00Z"))
	assert.True(t, IsISO8601("2024-03-01T12:30:00+01:00"))
	assert.True(t, IsISO8601("2024-03-01T12:30:00"))
	assert.True(t, IsISO8601("2024-03-01"))
	assert.False(t, IsISO8601("yesterday"))
	assert.False(t, IsISO8601("12:30"))
}

func TestCheckUnits(t *testing.T) {
	assert.Equal(t, UnitsMatch, CheckUnits("NX_LENGTH", "mm"))
	assert.Equal(t, UnitsMatch, CheckUnits("NX_WAVELENGTH", "angstrom"))
	assert.Equal(t, UnitsMismatch, CheckUnits("NX_TIME", "mm"))
	assert.Equal(t, UnitsUnknown, CheckUnits("NX_LENGTH", "furlong"))
	assert.Equal(t, UnitsUnknown, CheckUnits("NX_ANY", "mm"))
	assert.Equal(t, UnitsUnknown, CheckUnits("", "mm"))
	assert.Equal(t, UnitsUnknown, CheckUnits("NX_LENGTH", ""))
}
