package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	nxerrors "github.com/nxvalidate/nxvalidate/errors"
)

// Color palette - keeping it minimal and accessible.
var (
	colorInfo    = lipgloss.Color("245") // Gray
	colorWarning = lipgloss.Color("214") // Orange
	colorError   = lipgloss.Color("196") // Red
	colorPath    = lipgloss.Color("39")  // Blue
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(colorPath)
)

func severityStyle(sev nxerrors.Severity) lipgloss.Style {
	switch sev {
	case nxerrors.SeverityError:
		return errorStyle
	case nxerrors.SeverityWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

// writeReport prints the findings at or above floor, one per line, then
// a severity summary of the full report.
func writeReport(w io.Writer, report nxerrors.Report, floor nxerrors.Severity) {
	for _, d := range report.AtLeast(floor) {
		fmt.Fprintf(w, "%s %s %s\n",
			severityStyle(d.Severity).Render(d.Severity.String()),
			pathStyle.Render(d.Path),
			d.Message)
	}
	infos, warnings, errs := report.Counts()
	fmt.Fprintf(w, "%d errors, %d warnings, %d infos\n", errs, warnings, infos)
}
