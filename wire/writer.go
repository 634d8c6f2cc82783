package wire

import (
	"bufio"
	"strconv"
	"strings"
)

// ValidateRequest checks a request before it goes on the wire: the command
// word must be known, the access point non-empty and free of whitespace,
// and the correlation token short enough for servers to echo.
func ValidateRequest(req *Request) error {
	if req.Command != CmdGet && req.Command != CmdSet {
		return &ParseError{Message: "unknown command " + strconv.Quote(req.Command)}
	}
	if req.AccessPoint == "" {
		return &ParseError{Message: "empty access point"}
	}
	if strings.ContainsAny(req.AccessPoint, " \t\r\n") {
		return &ParseError{Message: "access point contains whitespace"}
	}
	if req.ID == "" || len(req.ID) > MaxIDLength {
		return &ParseError{Message: "invalid correlation token"}
	}
	return nil
}

// WriteRequest serializes req and writes it to w, flushing the writer.
//
//	xpaget <id> <accesspoint> [<command>]\r\n
//	xpaset <id> <accesspoint> <size> [<command>]\r\n<data>\r\n
func WriteRequest(w *bufio.Writer, req *Request) error {
	if err := ValidateRequest(req); err != nil {
		return err
	}

	w.WriteString(req.Command)
	w.WriteByte(' ')
	w.WriteString(req.ID)
	w.WriteByte(' ')
	w.WriteString(req.AccessPoint)

	if req.Command == CmdSet {
		w.WriteByte(' ')
		w.WriteString(strconv.Itoa(len(req.Data)))
	}

	if req.Params != "" {
		w.WriteByte(' ')
		w.WriteString(req.Params)
	}

	w.WriteString(CRLF)

	if req.Command == CmdSet {
		w.Write(req.Data)
		w.WriteString(CRLF)
	}

	return w.Flush()
}
