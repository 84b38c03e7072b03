package bgg

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a lookup failed.
type FailureKind string

const (
	// FailureTransport covers connection errors, timeouts and non-2xx
	// statuses that survived the retry schedule.
	FailureTransport FailureKind = "transport"
	// FailureParse covers malformed or unexpectedly shaped XML.
	FailureParse FailureKind = "parse"
	// FailureNotFound means the API answered but carried no matching item.
	FailureNotFound FailureKind = "not_found"
)

// Error is the error type returned by all Client lookups. Callers that only
// care about presence can treat any error as an absent result; callers that
// need to tell an unreachable API apart from an empty catalog inspect Kind.
type Error struct {
	Kind FailureKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("bgg %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("bgg %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind carried by an error from a Client lookup,
// or the empty string for foreign errors.
func KindOf(err error) FailureKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// IsNotFound reports whether err represents an absent search result or item.
func IsNotFound(err error) bool {
	return KindOf(err) == FailureNotFound
}
