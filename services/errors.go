// services/errors.go
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the game id is not in the collection (or not in the current view).
	ErrNotFound = errors.New("game not found")
	// ErrUnconfirmed means the backend answered 2xx but did not report success.
	ErrUnconfirmed = errors.New("backend did not confirm the action")
	// ErrEditForbidden is returned when a view-only viewer tries to mutate the backlog.
	ErrEditForbidden = errors.New("viewer is not allowed to edit")
	// ErrConfirmationRequired guards destructive actions.
	ErrConfirmationRequired = errors.New("action requires confirmation")
	// ErrUnknownAction is returned by the dispatch table for unbound actions.
	ErrUnknownAction = errors.New("unknown card action")
)

// StatusError is a non-success HTTP status from the backend.
type StatusError struct {
	Op   string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.Code, e.Body)
}

// TransportError wraps a failure to reach the backend at all.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
