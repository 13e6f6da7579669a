package enhance

import "fmt"

// StructuralError represents a fatal enhancement failure: deep copy or
// skills replacement went wrong. Unlike per-bullet rewrite failures, these
// abort the stage.
type StructuralError struct {
	Message string
	Cause   error
}

func (e *StructuralError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("enhancement failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("enhancement failed: %s", e.Message)
}

func (e *StructuralError) Unwrap() error {
	return e.Cause
}
