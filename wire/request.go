package wire

import "github.com/google/uuid"

// Request represents one wire request. It is a pure data container;
// serialization lives in WriteRequest.
type Request struct {
	// Command is CmdGet or CmdSet.
	Command string

	// ID is the correlation token echoed on every reply line.
	ID string

	// AccessPoint is the name the server is addressed by.
	AccessPoint string

	// Params is the server-side command string, may be empty.
	Params string

	// Data is the payload to send (CmdSet only). A nil and an empty
	// payload serialize identically (size 0).
	Data []byte
}

// NewGetRequest builds an xpaget request with a fresh correlation token.
func NewGetRequest(accessPoint, params string) *Request {
	return &Request{
		Command:     CmdGet,
		ID:          uuid.NewString(),
		AccessPoint: accessPoint,
		Params:      params,
	}
}

// NewSetRequest builds an xpaset request with a fresh correlation token.
func NewSetRequest(accessPoint, params string, data []byte) *Request {
	return &Request{
		Command:     CmdSet,
		ID:          uuid.NewString(),
		AccessPoint: accessPoint,
		Params:      params,
		Data:        data,
	}
}
