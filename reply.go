package xpa

import "strings"

// Status message prefixes used by XPA servers to tag replies.
const (
	// ErrorPrefix marks an error reply. The documented message format is
	// "XPA$ERROR <text> (<server>)".
	ErrorPrefix = "XPA$ERROR"

	// MessagePrefix marks a normal (informational) reply.
	MessagePrefix = "XPA$MESSAGE"
)

// Tag classifies a reply by its status message prefix.
type Tag int

const (
	// TagNone is a reply without a status message, or with an untagged one.
	TagNone Tag = 0

	// TagMessage is a reply whose status message starts with "XPA$MESSAGE".
	TagMessage Tag = 1

	// TagError is a reply whose status message starts with "XPA$ERROR".
	TagError Tag = 2
)

// Reply is one recipient's response to a request: a status message, the
// identity of the replying server, and an optional binary payload.
//
// A nil Data is distinct from an empty one: nil means the server returned no
// payload at all ("set" replies never carry one).
type Reply struct {
	// Server is the identity of the replying server ("class:name"), empty
	// if the transport could not determine it.
	Server string

	// Message is the status message, empty if the server sent none.
	Message string

	// Data is the raw payload, nil if the reply carries none.
	Data []byte
}

// Size returns the payload length in bytes, 0 when there is no payload.
func (r Reply) Size() int { return len(r.Data) }

// HasData reports whether the reply carries a payload. A present but empty
// payload still counts.
func (r Reply) HasData() bool { return r.Data != nil }

// Tag classifies the status message by its prefix.
func (r Reply) Tag() Tag {
	switch {
	case strings.HasPrefix(r.Message, MessagePrefix):
		return TagMessage
	case strings.HasPrefix(r.Message, ErrorPrefix):
		return TagError
	default:
		return TagNone
	}
}

// IsError reports whether the reply is error-classified.
func (r Reply) IsError() bool { return r.Tag() == TagError }
