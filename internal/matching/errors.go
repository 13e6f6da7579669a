package matching

import "fmt"

// Error represents a failure in the matching stage.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("matching failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("matching failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
