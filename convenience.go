package xpa

import (
	"context"
	"strings"
)

// errorPrefixLen is the fixed length stripped off error messages by
// CheckErrors: "XPA$ERROR" plus the separating space.
const errorPrefixLen = 10

// CheckErrors inspects an answer for error-classified replies. It returns
// nil when there are none; otherwise a *ServerError aggregating either
// every error message or, with onlyFirst, just the first, each with the
// fixed "XPA$ERROR " prefix stripped.
//
// The result is a plain error value: callers can return it to fail the
// surrounding operation or inspect it as data, both conventions work.
func CheckErrors(a *Answer, onlyFirst bool) error {
	if a.Errors() == 0 {
		return nil
	}

	var messages []string
	for i := 1; i <= a.Replies(); i++ {
		r := a.replies[i-1]
		if r.Tag() != TagError {
			continue
		}
		messages = append(messages, stripErrorPrefix(r.Message))
		if onlyFirst {
			break
		}
	}
	return &ServerError{Messages: messages}
}

func stripErrorPrefix(msg string) string {
	if len(msg) <= errorPrefixLen {
		return ""
	}
	return msg[errorPrefixLen:]
}

// ListServers queries the name registry's access point and returns the
// registered servers, one per listing line. Any error-classified reply is
// fatal and surfaced through the returned error.
func (c *Client) ListServers(ctx context.Context) ([]string, error) {
	ans, err := c.Get(ctx, RegistryAccessPoint, "", WithMaxRecipients(AllServers))
	if err != nil {
		return nil, err
	}
	if err := CheckErrors(ans, false); err != nil {
		return nil, err
	}

	var all []byte
	for _, r := range ans.replies {
		all = append(all, r.Data...)
	}
	return splitLines(string(all)), nil
}

// splitLines splits on newline bytes, dropping empty trailing segments.
func splitLines(s string) []string {
	parts := strings.Split(s, "\n")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// Lines checks the answer for errors, then splits the first reply's payload
// on newline bytes.
func Lines(a *Answer) ([]string, error) {
	if err := CheckErrors(a, false); err != nil {
		return nil, err
	}
	text, err := a.Text(1)
	if err != nil {
		return nil, err
	}
	return splitLines(text), nil
}

// Text checks the answer for errors, then returns the first reply's payload
// as a plain string.
func Text(a *Answer) (string, error) {
	if err := CheckErrors(a, false); err != nil {
		return "", err
	}
	return a.Text(1)
}

// TextChomp is Text with exactly one trailing newline byte stripped, when
// present.
func TextChomp(a *Answer) (string, error) {
	text, err := Text(a)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(text, "\n"), nil
}

// Array extracts the payload of reply index into a freshly allocated slice
// of element type T and the given shape. It checks the answer for errors
// first, then performs the exact-size copy of the accessor protocol: the
// shape's total byte size must equal the payload length.
//
// dims is either a flat list of positive extents, or the self-describing
// form [rank, extent...] where the first element is the number of extents
// that follow. [0] describes a scalar (one element).
func Array[T any](a *Answer, index int, dims []int) ([]T, error) {
	if err := CheckErrors(a, false); err != nil {
		return nil, err
	}
	total, err := dimsTotal(dims)
	if err != nil {
		return nil, err
	}
	r, err := a.at(index)
	if err != nil {
		return nil, err
	}

	dst := make([]T, total)
	if _, err := evalCopy(r, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// dimsTotal validates a dimension specification and returns the number of
// elements it describes.
func dimsTotal(dims []int) (int, error) {
	if len(dims) == 0 {
		return 0, usageErrorf("empty dimension list")
	}

	// Self-describing form: first element is the rank.
	if dims[0] == len(dims)-1 {
		if dims[0] == 0 {
			return 1, nil // scalar
		}
		dims = dims[1:]
	}

	total := 1
	for _, d := range dims {
		if d <= 0 {
			return 0, usageErrorf("invalid dimension %d", d)
		}
		total *= d
	}
	return total, nil
}
