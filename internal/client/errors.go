package client

import "fmt"

// NotFoundError is returned for a 404, mapped to a distinct empty-state in
// callers.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("application %q not found", e.ID)
}

// ValidationError is returned for a 4xx rejection of a capture payload. The
// dialog that produced the payload stays open so the user can correct and
// resubmit.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransientError covers network failures and 5xx responses. The action may
// be retried from scratch by the user; mutations are never retried
// automatically.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}
