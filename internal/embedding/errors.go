package embedding

import "fmt"

// Error represents a failure to obtain embeddings from the upstream model.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
