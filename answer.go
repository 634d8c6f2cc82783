package xpa

import (
	"fmt"
	"unsafe"
)

// uncounted is the sentinel for a lazy counter that has not been computed.
const uncounted = -1

// Answer is the immutable aggregate of all replies to one request, in
// protocol delivery order, with lazily computed summary counts.
//
// Replies are addressed with 1-based indices; zero and negative indices are
// relative to the last reply (0 is the last reply, -1 the second-to-last).
// An index resolving outside [1, Replies()] yields a *RangeError.
//
// The reply sequence never changes after construction. The summary counts
// are memoized on first access, which makes an Answer unsafe for unsynchronized
// concurrent use.
type Answer struct {
	replies []Reply

	// lazy counters, uncounted until first accessed
	buffers  int
	errors   int
	messages int

	// scans counts the counting passes over the reply sequence. Each
	// memoized counter contributes exactly one.
	scans int
}

// newAnswer constructs an Answer from the accumulator's staged replies,
// draining it in the process. After the call every staged reply is owned by
// the Answer alone and the accumulator is empty.
func newAnswer(acc *accumulator) *Answer {
	a := &Answer{
		replies:  acc.drain(),
		buffers:  uncounted,
		errors:   uncounted,
		messages: uncounted,
	}
	// A drain leaves nothing behind, but an interrupted one must not
	// leak into the next request either.
	acc.reset()
	return a
}

// Replies returns the total number of replies.
func (a *Answer) Replies() int { return len(a.replies) }

// Buffers returns the number of replies carrying a payload. Computed on
// first access, cached thereafter.
func (a *Answer) Buffers() int {
	if a.buffers == uncounted {
		n := 0
		for _, r := range a.replies {
			if r.HasData() {
				n++
			}
		}
		a.buffers = n
		a.scans++
	}
	return a.buffers
}

// Errors returns the number of error-classified replies. Computed on first
// access, cached thereafter.
func (a *Answer) Errors() int {
	if a.errors == uncounted {
		n := 0
		for _, r := range a.replies {
			if r.Tag() == TagError {
				n++
			}
		}
		a.errors = n
		a.scans++
	}
	return a.errors
}

// Messages returns the number of replies tagged as normal messages.
// Computed on first access, cached thereafter.
func (a *Answer) Messages() int {
	if a.messages == uncounted {
		n := 0
		for _, r := range a.replies {
			if r.Tag() == TagMessage {
				n++
			}
		}
		a.messages = n
		a.scans++
	}
	return a.messages
}

// resolve maps a caller index to a 0-based offset, applying the
// relative-index rule: i <= 0 means i + Replies().
func (a *Answer) resolve(i int) (int, error) {
	n := len(a.replies)
	if i <= 0 {
		i += n
	}
	if i < 1 || i > n {
		return 0, &RangeError{Index: i, Count: n}
	}
	return i - 1, nil
}

// at returns the reply at caller index i.
func (a *Answer) at(i int) (Reply, error) {
	k, err := a.resolve(i)
	if err != nil {
		return Reply{}, err
	}
	return a.replies[k], nil
}

// Message returns the status message of reply i, "" when the server sent
// none.
func (a *Answer) Message(i int) (string, error) {
	r, err := a.at(i)
	if err != nil {
		return "", err
	}
	return r.Message, nil
}

// Server returns the identity of the server that produced reply i.
func (a *Answer) Server(i int) (string, error) {
	r, err := a.at(i)
	if err != nil {
		return "", err
	}
	return r.Server, nil
}

// Size returns the payload length of reply i, 0 when there is no payload.
func (a *Answer) Size(i int) (int, error) {
	r, err := a.at(i)
	if err != nil {
		return 0, err
	}
	return r.Size(), nil
}

// Tag returns the status classification of reply i.
func (a *Answer) Tag(i int) (Tag, error) {
	r, err := a.at(i)
	if err != nil {
		return TagNone, err
	}
	return r.Tag(), nil
}

// Bytes returns the payload of reply i, nil when there is none. The slice
// aliases the answer's payload and must not be modified.
func (a *Answer) Bytes(i int) ([]byte, error) {
	r, err := a.at(i)
	if err != nil {
		return nil, err
	}
	return r.Data, nil
}

// Text returns the payload of reply i reinterpreted as a string, "" when
// there is no payload.
func (a *Answer) Text(i int) (string, error) {
	r, err := a.at(i)
	if err != nil {
		return "", err
	}
	return string(r.Data), nil
}

// Eval implements the indexed-evaluation protocol of the original
// host-language binding on top of the typed accessors:
//
//	Eval()          reply count
//	Eval(i)         status message of reply i (absent when none)
//	Eval(i, nil)    payload length of reply i
//	Eval(i, 0)      classification: TagNone, TagMessage or TagError
//	Eval(i, 1)      status message
//	Eval(i, 2)      server identity
//	Eval(i, 3)      payload as a byte sequence (absent when none)
//	Eval(i, 4)      payload as a string
//	Eval(i, dst)    dst is a numeric slice: the payload is copied into it
//	                and dst is returned; the byte size must match exactly
//
// Index arguments accept every Go integer kind. Any other argument shape is
// a *UsageError.
func (a *Answer) Eval(args ...any) (Variant, error) {
	switch len(args) {
	case 0:
		return intVariant(int64(len(a.replies))), nil
	case 1, 2:
	default:
		return Variant{}, usageErrorf("expecting at most 2 arguments, got %d", len(args))
	}

	if args[0] == nil && len(args) == 1 {
		return intVariant(int64(len(a.replies))), nil
	}
	i, ok := toIndex(args[0])
	if !ok {
		return Variant{}, usageErrorf("expecting an integer reply index, got %T", args[0])
	}
	r, err := a.at(i)
	if err != nil {
		return Variant{}, err
	}
	if len(args) == 1 {
		return messageVariant(r), nil
	}

	switch key := args[1].(type) {
	case nil:
		return intVariant(int64(r.Size())), nil
	default:
		if k, ok := toIndex(key); ok {
			return a.evalKey(r, k)
		}
		return evalCopy(r, key)
	}
}

func (a *Answer) evalKey(r Reply, key int) (Variant, error) {
	switch key {
	case 0:
		return intVariant(int64(r.Tag())), nil
	case 1:
		return messageVariant(r), nil
	case 2:
		if r.Server == "" {
			return absentVariant(), nil
		}
		return stringVariant(r.Server), nil
	case 3:
		if !r.HasData() {
			return absentVariant(), nil
		}
		return bytesVariant(r.Data), nil
	case 4:
		if !r.HasData() {
			return absentVariant(), nil
		}
		return stringVariant(string(r.Data)), nil
	}
	return Variant{}, usageErrorf("invalid key value %d", key)
}

func messageVariant(r Reply) Variant {
	if r.Message == "" {
		return absentVariant()
	}
	return stringVariant(r.Message)
}

// Attr implements named attribute access: "replies", "buffers", "errors"
// and "messages" return the respective counts. Any other name is a
// *UsageError.
func (a *Answer) Attr(name string) (Variant, error) {
	switch name {
	case "replies":
		return intVariant(int64(a.Replies())), nil
	case "buffers":
		return intVariant(int64(a.Buffers())), nil
	case "errors":
		return intVariant(int64(a.Errors())), nil
	case "messages":
		return intVariant(int64(a.Messages())), nil
	}
	return Variant{}, usageErrorf("bad answer attribute %q", name)
}

// String renders the one-line summary, e.g. "2 replies, 1 buffer,
// 1 message, 0 errors".
func (a *Answer) String() string {
	return fmt.Sprintf("%d %s, %d %s, %d %s, %d %s",
		a.Replies(), plural(a.Replies(), "reply", "replies"),
		a.Buffers(), plural(a.Buffers(), "buffer", "buffers"),
		a.Messages(), plural(a.Messages(), "message", "messages"),
		a.Errors(), plural(a.Errors(), "error", "errors"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// toIndex coerces any Go integer kind to an int.
func toIndex(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case uint:
		return int(n), true
	}
	return 0, false
}

// evalCopy is the destination-buffer branch of Eval: dst must be a numeric
// slice whose total byte size equals the payload length exactly. On match
// the payload is copied in (native byte order, as a raw memory copy) and
// the same slice is returned. Any mismatch is a *UsageError; there is no
// partial copy and no truncation.
func evalCopy(r Reply, dst any) (Variant, error) {
	view, err := byteView(dst)
	if err != nil {
		return Variant{}, err
	}
	if len(view) != r.Size() {
		return Variant{}, usageErrorf("destination size %d does not match payload size %d", len(view), r.Size())
	}
	copy(view, r.Data)
	switch b := dst.(type) {
	case []byte:
		return bytesVariant(b), nil
	default:
		// Non-byte destinations are returned as raw bytes aliasing dst,
		// the caller already holds the typed slice.
		return bytesVariant(view), nil
	}
}

// byteView aliases a numeric slice as raw bytes without copying.
func byteView(dst any) ([]byte, error) {
	switch d := dst.(type) {
	case []byte:
		return d, nil
	case []int8:
		return sliceBytes(d), nil
	case []int16:
		return sliceBytes(d), nil
	case []uint16:
		return sliceBytes(d), nil
	case []int32:
		return sliceBytes(d), nil
	case []uint32:
		return sliceBytes(d), nil
	case []int64:
		return sliceBytes(d), nil
	case []uint64:
		return sliceBytes(d), nil
	case []int:
		return sliceBytes(d), nil
	case []float32:
		return sliceBytes(d), nil
	case []float64:
		return sliceBytes(d), nil
	case []complex64:
		return sliceBytes(d), nil
	case []complex128:
		return sliceBytes(d), nil
	}
	return nil, usageErrorf("invalid destination type %T", dst)
}

func sliceBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return []byte{}
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(s[0])))
}
