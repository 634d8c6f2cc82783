package wire

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// ReadReply reads one server's complete reply from r: an optional data
// block, an optional status line, and the XPA$END terminator. Every line
// must echo the request's correlation token id; a mismatch means the
// connection is desynchronized and yields a *ParseError.
func ReadReply(r *bufio.Reader, id string) (*Reply, error) {
	reply := &Reply{}
	sawMessage := false

	for {
		line, err := readLine(r)
		if err != nil {
			return nil, err
		}

		mark, rest, _ := strings.Cut(line, " ")
		lineID, rest, _ := strings.Cut(rest, " ")
		if lineID != id {
			return nil, &ParseError{Message: "correlation token mismatch on " + mark + " line"}
		}

		switch mark {
		case MarkData:
			if reply.HasData() {
				return nil, &ParseError{Message: "duplicate data block"}
			}
			size, err := strconv.Atoi(rest)
			if err != nil || size < 0 || size > MaxPayload {
				return nil, &ParseError{Message: "invalid data block size " + strconv.Quote(rest), Err: err}
			}
			reply.Data = make([]byte, size)
			if _, err := io.ReadFull(r, reply.Data); err != nil {
				return nil, &ParseError{Message: "truncated data block", Err: err}
			}
			if err := discardLineEnd(r); err != nil {
				return nil, err
			}

		case MarkMessage, MarkError:
			if sawMessage {
				return nil, &ParseError{Message: "duplicate status line"}
			}
			sawMessage = true
			reply.Message = mark + " " + rest

		case MarkEnd:
			reply.Server = rest
			return reply, nil

		default:
			return nil, &ParseError{Message: "unknown reply marker " + strconv.Quote(mark)}
		}
	}
}

// readLine reads one CRLF-terminated line, without the terminator.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// discardLineEnd consumes the CRLF trailing a data block.
func discardLineEnd(r *bufio.Reader) error {
	line, err := readLine(r)
	if err != nil {
		return &ParseError{Message: "missing data block terminator", Err: err}
	}
	if line != "" {
		return &ParseError{Message: "trailing bytes after data block"}
	}
	return nil
}
