package extraction

import "fmt"

// InvalidInputError represents unusable job description input. It is never
// retried.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// Error represents a model response that could not be parsed into keywords
// even after repair. Raw carries the response for diagnostics.
type Error struct {
	Message string
	Raw     string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("keyword extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("keyword extraction failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
