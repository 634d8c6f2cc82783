package wire

// Protocol delimiters.
const (
	// CRLF terminates every protocol line, including data blocks.
	CRLF = "\r\n"
)

// Command words.
const (
	// CmdGet requests data from the servers behind an access point.
	CmdGet = "xpaget"

	// CmdSet sends data or a command to the servers behind an access point.
	// Set replies never carry a data block.
	CmdSet = "xpaset"
)

// Reply line markers.
const (
	// MarkData introduces a data block: "XPA$DATA <id> <size>".
	MarkData = "XPA$DATA"

	// MarkMessage introduces a normal status line: "XPA$MESSAGE <id> <text>".
	MarkMessage = "XPA$MESSAGE"

	// MarkError introduces an error status line: "XPA$ERROR <id> <text>".
	MarkError = "XPA$ERROR"

	// MarkEnd terminates a reply: "XPA$END <id> <server>".
	MarkEnd = "XPA$END"
)

// Limits.
const (
	// MaxPayload bounds the size of a data block a client will accept.
	MaxPayload = 1 << 30

	// MaxIDLength bounds the correlation token length.
	MaxIDLength = 64
)
