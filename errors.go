package xpa

import (
	"fmt"
	"strings"
)

// ConnError reports that the persistent connection could not be established
// or that the transport failed below the protocol level. The operation is
// aborted before any reply is staged; the caller may retry by reissuing the
// request, the client performs no internal retries.
type ConnError struct {
	Op  string // operation that failed: "connect", "get", "set"
	Err error  // underlying transport error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("xpa: connection error during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *ConnError) Unwrap() error { return e.Err }

// UsageError reports malformed arguments at an API boundary: wrong argument
// type or arity in Answer.Eval, an unknown attribute name, a destination
// buffer whose size does not match the payload, or a malformed dimension
// specification.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return "xpa: " + e.Message }

// RangeError reports a reply index outside [1, Replies()] after
// relative-index adjustment.
type RangeError struct {
	Index int // the index as resolved (after relative adjustment)
	Count int // number of replies in the answer
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("xpa: reply index %d out of range [1, %d]", e.Index, e.Count)
}

// ServerError aggregates the error-classified replies of an Answer, as
// collected by CheckErrors. Each message has the fixed "XPA$ERROR " prefix
// stripped.
type ServerError struct {
	Messages []string
}

func (e *ServerError) Error() string {
	return "xpa: " + strings.Join(e.Messages, "; ")
}

func usageErrorf(format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}
