package pipeline

import "fmt"

// InputError reports a request that cannot be analyzed (missing or empty
// required text, invalid fields). It is surfaced to the caller and the
// request is rejected.
type InputError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}
