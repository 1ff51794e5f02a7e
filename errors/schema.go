package errors

import (
	"errors"
	"fmt"
)

// Code identifies a fatal schema resolution failure. Fatal failures abort
// the validation request that triggered them; no partial report is
// produced.
type Code string

const (
	// CodeSchemaNotFound indicates no definition file matches the requested name.
	CodeSchemaNotFound Code = "schema-not-found"
	// CodeSchemaParse indicates a definition file could not be parsed.
	CodeSchemaParse Code = "schema-parse-error"
	// CodeCyclicInheritance indicates an extends chain loops back on itself.
	CodeCyclicInheritance Code = "cyclic-inheritance"
	// CodeSourceUnavailable indicates the data source could not be read.
	CodeSourceUnavailable Code = "source-unavailable"
)

// SchemaError describes a fatal failure resolving a schema definition or
// opening a data source.
type SchemaError struct {
	Code   Code
	Schema string
	Msg    string
}

// Error formats the error with its code and schema name.
func (e *SchemaError) Error() string {
	if e == nil {
		return "schema error <nil>"
	}
	if e.Schema == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Schema, e.Msg)
}

// NewSchemaError builds a SchemaError for the named schema or file.
func NewSchemaError(code Code, schema, format string, args ...any) *SchemaError {
	return &SchemaError{Code: code, Schema: schema, Msg: fmt.Sprintf(format, args...)}
}

// IsCode reports whether err wraps a SchemaError with the given code.
func IsCode(err error, code Code) bool {
	var se *SchemaError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// AsSchemaError extracts a SchemaError from err.
func AsSchemaError(err error) (*SchemaError, bool) {
	var se *SchemaError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
