package wire

// Reply is one server's parsed reply to a request. It is a pure data
// container; parsing lives in ReadReply.
type Reply struct {
	// Server is the identity the server reported on its XPA$END line.
	Server string

	// Message is the status line with its tag prefix kept, e.g.
	// "XPA$ERROR unknown parameter". Empty when the server sent none.
	Message string

	// Data is the payload of the data block, nil when the reply carried
	// none. A zero-size data block yields an empty, non-nil slice.
	Data []byte
}

// HasData reports whether the reply carried a data block.
func (r *Reply) HasData() bool { return r.Data != nil }

// IsError reports whether the status line is error-tagged.
func (r *Reply) IsError() bool {
	return len(r.Message) >= len(MarkError) && r.Message[:len(MarkError)] == MarkError
}
