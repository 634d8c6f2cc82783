// Package xpa is a client adapter for the XPA messaging system: a
// point-to-point, name-addressed request/reply protocol used to talk to one
// or more running server processes.
//
// A Client issues "get" and "set" requests against an access point (a name
// identifying one or more destination servers) and returns an Answer: an
// immutable aggregate of every per-recipient reply, with lazily computed
// summary counts and a uniform indexed-access protocol.
//
// # Basic usage
//
//	client := xpa.NewClient(xpa.Config{Registry: "localhost:14285"})
//	defer client.Close()
//
//	ans, err := client.Get(ctx, "DS9:ds9", "frame")
//	if err != nil {
//	    return err
//	}
//	if err := xpa.CheckErrors(ans, false); err != nil {
//	    return err
//	}
//	text, err := xpa.Text(ans)
//
// # Answers
//
// Each reply carries a status message, the identity of the replying server,
// and an optional binary payload. A status message starting with "XPA$ERROR"
// marks an error reply; "XPA$MESSAGE" marks a normal reply. Error replies do
// not fail the request: the Answer is still constructed, and the errors are
// surfaced through Answer.Errors and CheckErrors.
//
// Replies are addressed with 1-based indices. Zero and negative indices are
// relative to the last reply: index 0 is the last reply, -1 the one before
// it. Beside the typed accessors (Message, Server, Bytes, ...), Answer.Eval
// implements the full indexed-evaluation protocol of the host-language
// binding this package descends from.
//
// # Transports
//
// The Client delegates delivery to a Transport. The default TCPTransport
// resolves access points to server endpoints through a Resolver, keeps a
// connection pool per endpoint and fans a request out to up to the requested
// number of recipients. Server discovery, routing and delivery guarantees
// belong to that layer; the Client itself only aggregates replies.
//
// # Thread safety
//
// A Client serializes its requests: at most one request is in flight at any
// time, and a second caller blocks until the first completes. An Answer is
// immutable but its lazily memoized counters are not synchronized, so a
// single Answer must not be shared between goroutines without external
// locking.
package xpa
