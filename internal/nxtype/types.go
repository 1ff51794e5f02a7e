// Package nxtype holds the NX value-type and naming rules: which data
// value types satisfy a declared NX type class, what a valid NeXus node
// name looks like, and the advisory unit-category table.
package nxtype

import (
	"regexp"
	"strings"
	"time"
)

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_]([a-zA-Z0-9_.]*[a-zA-Z0-9_])?$`)

// ValidName reports whether name is a valid NeXus node name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Value-type predicates over the data file's declared storage types
// ("int32", "uint16", "float64", "string", "bool", "complex128", ...).

func isSignedInt(vt string) bool {
	return strings.HasPrefix(vt, "int")
}

func isUnsignedInt(vt string) bool {
	return strings.HasPrefix(vt, "uint")
}

func isFloat(vt string) bool {
	return strings.HasPrefix(vt, "float")
}

func isComplex(vt string) bool {
	return strings.HasPrefix(vt, "complex")
}

// IsNumeric reports whether the value type is any numeric representation.
func IsNumeric(vt string) bool {
	return isSignedInt(vt) || isUnsignedInt(vt) || isFloat(vt) || isComplex(vt)
}

// IsString reports whether the value type is a string representation.
func IsString(vt string) bool {
	return vt == "string" || strings.HasPrefix(vt, "str") || vt == "char" || strings.HasPrefix(vt, "bytes")
}

// Compatible reports whether a data value type satisfies the declared NX
// type class. Numeric classes accept any matching numeric
// representation; character classes require string-typed values. Unknown
// or absent declarations constrain nothing.
func Compatible(declared, valueType string) bool {
	if valueType == "" {
		return true
	}
	switch declared {
	case "NX_FLOAT":
		return isFloat(valueType)
	case "NX_INT":
		return isSignedInt(valueType) || isUnsignedInt(valueType)
	case "NX_UINT":
		return isUnsignedInt(valueType)
	case "NX_POSINT":
		return isSignedInt(valueType) || isUnsignedInt(valueType)
	case "NX_NUMBER":
		return IsNumeric(valueType)
	case "NX_COMPLEX":
		return isComplex(valueType)
	case "NX_BOOLEAN":
		return valueType == "bool" || valueType == "int8" || valueType == "uint8"
	case "NX_CHAR", "NX_DATE_TIME", "ISO8601":
		return IsString(valueType)
	case "NX_CHAR_OR_NUMBER":
		return IsString(valueType) || IsNumeric(valueType)
	default:
		// NX_ANY, NX_BINARY, or no declaration
		return true
	}
}

var iso8601Layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// IsISO8601 reports whether value parses as an ISO 8601 timestamp.
func IsISO8601(value string) bool {
	for _, layout := range iso8601Layouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

// UnitsVerdict is the outcome of comparing a data units attribute with a
// declared unit category.
type UnitsVerdict uint8

const (
	// UnitsUnknown means the symbol or category is not in the table; no
	// finding should be emitted.
	UnitsUnknown UnitsVerdict = iota
	UnitsMatch
	UnitsMismatch
)

// unitSymbols maps common unit symbols to their NX unit category. The
// table is advisory: symbols outside it produce no finding.
var unitSymbols = map[string]string{
	"m": "NX_LENGTH", "cm": "NX_LENGTH", "mm": "NX_LENGTH",
	"um": "NX_LENGTH", "nm": "NX_LENGTH", "angstrom": "NX_LENGTH",

	"s": "NX_TIME", "ms": "NX_TIME", "us": "NX_TIME",
	"minute": "NX_TIME", "h": "NX_TIME",

	"eV": "NX_ENERGY", "keV": "NX_ENERGY", "MeV": "NX_ENERGY", "J": "NX_ENERGY",

	"rad": "NX_ANGLE", "deg": "NX_ANGLE", "degree": "NX_ANGLE",

	"K": "NX_TEMPERATURE", "C": "NX_TEMPERATURE",

	"Hz": "NX_FREQUENCY", "kHz": "NX_FREQUENCY", "MHz": "NX_FREQUENCY",

	"A": "NX_CURRENT", "mA": "NX_CURRENT",
	"V": "NX_VOLTAGE", "kV": "NX_VOLTAGE",
	"T": "NX_MAGNETIC_FIELD",
	"Pa": "NX_PRESSURE", "kPa": "NX_PRESSURE", "bar": "NX_PRESSURE",
	"g": "NX_MASS", "kg": "NX_MASS", "mg": "NX_MASS",
}

// CheckUnits compares a data node's units symbol against the declared
// unit category.
func CheckUnits(category, symbol string) UnitsVerdict {
	if category == "" || symbol == "" {
		return UnitsUnknown
	}
	if category == "NX_ANY" || category == "NX_UNITLESS" || category == "NX_DIMENSIONLESS" {
		return UnitsUnknown
	}
	got, ok := unitSymbols[symbol]
	if !ok {
		return UnitsUnknown
	}
	// wavelengths are lengths; treat the alias as equivalent
	if category == "NX_WAVELENGTH" {
		category = "NX_LENGTH"
	}
	if got == category {
		return UnitsMatch
	}
	return UnitsMismatch
}
