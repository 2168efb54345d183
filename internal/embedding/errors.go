package embedding

import "fmt"

// OracleUnavailableError reports that the embedding oracle could not be
// constructed or did not answer the startup probe. It is fatal at startup.
type OracleUnavailableError struct {
	Provider Provider
	Message  string
	Cause    error
}

func (e *OracleUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding oracle %s unavailable: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding oracle %s unavailable: %s", e.Provider, e.Message)
}

func (e *OracleUnavailableError) Unwrap() error {
	return e.Cause
}

// EmbedError reports a failed embedding call at request time
type EmbedError struct {
	Message string
	Cause   error
}

func (e *EmbedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding failed: %s", e.Message)
}

func (e *EmbedError) Unwrap() error {
	return e.Cause
}
