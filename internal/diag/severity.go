package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Priority is an optional rank attached to a diagnostic.
// It never changes control flow inside a pass; it is only consulted when
// diagnostics are surfaced to the user.
type Priority uint16

const (
	PriorityDefault Priority = 0
	// PriorityClosedMember marks refinement of a member that is not open for it.
	PriorityClosedMember Priority = 500
	// PriorityMissingActual marks refinement without an explicit actual annotation.
	PriorityMissingActual Priority = 600
	// PriorityUnshared marks refinement annotations on unshared declarations.
	PriorityUnshared Priority = 700
)
