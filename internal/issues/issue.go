// Package issues provides the note type shared by upgrade reporting.
package issues

import (
	"fmt"

	"github.com/specmorph/oasdoc/internal/severity"
)

// Issue represents a single non-fatal problem or decision recorded while
// transforming a document.
type Issue struct {
	// Path is the dotted tree path to the construct (e.g., "paths./pets.get.parameters[0]")
	Path string
	// Message is a human-readable description of what happened
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Context provides additional information, typically what the reader
	// should verify in the produced document
	Context string
}

// String returns a formatted string representation of the issue.
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	default:
		symbol = "ℹ"
	}
	if i.Context != "" {
		return fmt.Sprintf("%s [%s] %s: %s (%s)", symbol, i.Severity, i.Path, i.Message, i.Context)
	}
	return fmt.Sprintf("%s [%s] %s: %s", symbol, i.Severity, i.Path, i.Message)
}
