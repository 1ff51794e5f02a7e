package errors

import "fmt"

// Severity ranks a structural finding. Structural findings are never
// fatal; each one becomes exactly one Diagnostic and traversal continues.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", uint8(s))
	}
}

// Diagnostic is one structural finding at a location in the data tree.
// Diagnostics are pure values and are never mutated after creation.
type Diagnostic struct {
	Severity Severity
	Path     string
	Message  string
}

// String formats the diagnostic for display.
func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Path, d.Message)
}

// Report is an ordered list of diagnostics in traversal order.
type Report []Diagnostic

// AtLeast returns the diagnostics at or above the given severity floor,
// preserving order. The engine always computes the full set; filtering
// belongs to the presentation boundary.
func (r Report) AtLeast(floor Severity) Report {
	if floor == SeverityInfo {
		return r
	}
	var out Report
	for _, d := range r {
		if d.Severity >= floor {
			out = append(out, d)
		}
	}
	return out
}

// Counts returns the number of diagnostics per severity.
func (r Report) Counts() (info, warning, errs int) {
	for _, d := range r {
		switch d.Severity {
		case SeverityInfo:
			info++
		case SeverityWarning:
			warning++
		case SeverityError:
			errs++
		}
	}
	return info, warning, errs
}

// HasErrors reports whether the report contains error findings.
func (r Report) HasErrors() bool {
	for _, d := range r {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
