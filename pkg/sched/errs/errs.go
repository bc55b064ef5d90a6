// Package errs defines the typed error kinds the scheduling core returns.
package errs

import "fmt"

// Kind enumerates the error kinds the scheduling core returns.
type Kind string

const (
	CapacityExceeded        Kind = "capacity_exceeded"
	LPPackingFailed          Kind = "lp_packing_failed"
	FaultPlacementExhausted Kind = "fault_placement_exhausted"
	InvalidConfig           Kind = "invalid_config"
)

// SchedError is the typed error the builder and simulator return for their
// failure kinds, carrying its structured context (window index, task id)
// in fields rather than only inside the message string — the same shape as
// internal/config's ValidationError.
type SchedError struct {
	Kind    Kind
	Window  int
	TaskID  int64
	Message string
}

func (e *SchedError) Error() string {
	if e.TaskID != 0 || e.Window != 0 {
		return fmt.Sprintf("%s: window %d task %d: %s", e.Kind, e.Window, e.TaskID, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is supports errors.Is comparisons against a bare Kind-tagged sentinel,
// so callers can do errors.Is(err, &SchedError{Kind: CapacityExceeded}).
func (e *SchedError) Is(target error) bool {
	t, ok := target.(*SchedError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
