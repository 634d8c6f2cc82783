package wire

import "errors"

// ParseError reports a malformed reply from a server: an unknown line
// marker, a correlation token that does not match the request, or a
// truncated data block. The connection's protocol state is unknown after a
// parse error and it must be closed.
type ParseError struct {
	Message string
	Err     error // underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return "wire: " + e.Message + ": " + e.Err.Error()
	}
	return "wire: " + e.Message
}

// Unwrap returns the underlying error for error chain inspection.
func (e *ParseError) Unwrap() error { return e.Err }

// ShouldCloseConnection reports whether err requires closing the
// connection. Parse errors and I/O errors corrupt or break the connection;
// only a nil error leaves it reusable.
func ShouldCloseConnection(err error) bool {
	if err == nil {
		return false
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return true
	}
	// Anything else out of ReadReply/WriteRequest is an I/O error: the
	// connection is already broken or mid-message.
	return true
}
