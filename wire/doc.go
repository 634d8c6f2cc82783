// Package wire implements the line-based wire dialect spoken by XPA server
// processes reachable over TCP.
//
// This package is the low-level codec only: serialization of requests and
// parsing of per-server replies. Connection management, access-point
// resolution and reply aggregation live in the parent package.
//
// # Requests
//
// A request is a single command line, optionally followed by a data block:
//
//	xpaget <id> <accesspoint> [<command>]\r\n
//	xpaset <id> <accesspoint> <size> [<command>]\r\n<data>\r\n
//
// <id> is an opaque correlation token chosen by the client; every line of
// the reply echoes it, which lets the client detect desynchronized
// connections.
//
// # Replies
//
// A server answers with at most one data block, at most one status line,
// and a mandatory terminator:
//
//	XPA$DATA <id> <size>\r\n<bytes>\r\n        (only for xpaget)
//	XPA$MESSAGE <id> <text>\r\n                (or XPA$ERROR <id> <text>)
//	XPA$END <id> <server>\r\n
//
// The status line is surfaced to callers with its tag prefix kept, e.g.
// "XPA$ERROR unknown parameter (DS9:ds9)", matching what XPA host bindings
// historically exposed.
//
// # Error handling
//
// Parse failures mean the connection state is unknown; callers should close
// the connection. ShouldCloseConnection reports whether an error from this
// package requires that:
//
//	reply, err := wire.ReadReply(r, req.ID)
//	if err != nil {
//	    if wire.ShouldCloseConnection(err) {
//	        conn.Close()
//	    }
//	    return err
//	}
package wire
