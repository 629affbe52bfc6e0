// Package severity provides severity level constants for upgrade notes.
//
// Three levels are used by the upgrade engine:
//   - SeverityInfo: informational messages about mapping choices
//   - SeverityWarning: lossy or best-effort remappings
//   - SeverityCritical: constructs that could not be carried over without data loss
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Critical
package severity

// Severity indicates the severity level of a note produced while upgrading
// a document from one specification version to another.
type Severity int

const (
	// SeverityInfo indicates informational messages about mapping choices.
	// These are non-actionable notices that may be useful for auditing.
	SeverityInfo Severity = iota

	// SeverityWarning indicates lossy remappings or best-effort
	// transformations that should be reviewed.
	SeverityWarning

	// SeverityCritical indicates constructs that could not be mapped
	// without dropping or altering information.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
