package xpa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestAnswer(replies ...Reply) *Answer {
	acc := newAccumulator()
	for _, r := range replies {
		acc.put(r)
	}
	return newAnswer(acc)
}

func TestReplyTag(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    Tag
	}{
		{name: "no message", message: "", want: TagNone},
		{name: "error", message: "XPA$ERROR unknown parameter (DS9:ds9)", want: TagError},
		{name: "message", message: "XPA$MESSAGE done (DS9:ds9)", want: TagMessage},
		{name: "untagged", message: "something else", want: TagNone},
		{name: "bare error marker", message: "XPA$ERROR", want: TagError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Reply{Message: tt.message}.Tag())
		})
	}
}

func TestAnswerCounts(t *testing.T) {
	// 5 records: 3 payloads, 2 errors, 1 message.
	a := newTestAnswer(
		Reply{Server: "s1", Message: "XPA$ERROR boom (s1)", Data: []byte("x")},
		Reply{Server: "s2", Message: "XPA$MESSAGE ok (s2)"},
		Reply{Server: "s3", Data: []byte{}},
		Reply{Server: "s4", Message: "XPA$ERROR bang (s4)"},
		Reply{Server: "s5", Data: []byte("y")},
	)

	require.Equal(t, 5, a.Replies())
	require.Equal(t, 3, a.Buffers())
	require.Equal(t, 2, a.Errors())
	require.Equal(t, 1, a.Messages())
}

func TestAnswerCountsMemoized(t *testing.T) {
	a := newTestAnswer(
		Reply{Message: "XPA$ERROR boom", Data: []byte("x")},
		Reply{Message: "XPA$MESSAGE ok"},
	)
	require.Equal(t, 0, a.scans)

	first := []int{a.Buffers(), a.Errors(), a.Messages()}
	require.Equal(t, 3, a.scans)

	second := []int{a.Buffers(), a.Errors(), a.Messages()}
	require.Equal(t, first, second)
	// No rescan on the second access.
	require.Equal(t, 3, a.scans)
}

func TestAnswerRelativeIndexing(t *testing.T) {
	a := newTestAnswer(
		Reply{Message: "m1"}, Reply{Message: "m2"}, Reply{Message: "m3"},
		Reply{Message: "m4"}, Reply{Message: "m5"},
	)

	tests := []struct {
		index   int
		want    string
		wantErr bool
	}{
		{index: 1, want: "m1"},
		{index: 5, want: "m5"},
		{index: 0, want: "m5"},  // 0 means the last reply
		{index: -1, want: "m4"}, // -1 the one before it
		{index: -4, want: "m1"},
		{index: 6, wantErr: true},
		{index: -5, wantErr: true},
	}

	for _, tt := range tests {
		msg, err := a.Message(tt.index)
		if tt.wantErr {
			var rangeErr *RangeError
			require.ErrorAs(t, err, &rangeErr)
			require.Equal(t, 5, rangeErr.Count)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tt.want, msg)
	}
}

func TestAnswerEval(t *testing.T) {
	a := newTestAnswer(
		Reply{Server: "DS9:ds9", Message: "XPA$MESSAGE ok (DS9:ds9)", Data: []byte("hello")},
		Reply{Server: "ALT:alt", Message: "XPA$ERROR bad (ALT:alt)"},
		Reply{},
	)

	t.Run("no args yields count", func(t *testing.T) {
		v, err := a.Eval()
		require.NoError(t, err)
		require.Equal(t, int64(3), v.Int())
	})

	t.Run("nil arg yields count", func(t *testing.T) {
		v, err := a.Eval(nil)
		require.NoError(t, err)
		require.Equal(t, int64(3), v.Int())
	})

	t.Run("one index yields message", func(t *testing.T) {
		v, err := a.Eval(1)
		require.NoError(t, err)
		require.Equal(t, "XPA$MESSAGE ok (DS9:ds9)", v.String())

		v, err = a.Eval(3)
		require.NoError(t, err)
		require.True(t, v.IsAbsent())
	})

	t.Run("nil key yields size", func(t *testing.T) {
		v, err := a.Eval(1, nil)
		require.NoError(t, err)
		require.Equal(t, int64(5), v.Int())

		v, err = a.Eval(2, nil)
		require.NoError(t, err)
		require.Equal(t, int64(0), v.Int())
	})

	t.Run("key 0 yields classification", func(t *testing.T) {
		for i, want := range []Tag{TagMessage, TagError, TagNone} {
			v, err := a.Eval(i+1, 0)
			require.NoError(t, err)
			require.Equal(t, int64(want), v.Int())
		}
	})

	t.Run("key 2 yields server", func(t *testing.T) {
		v, err := a.Eval(2, 2)
		require.NoError(t, err)
		require.Equal(t, "ALT:alt", v.String())

		v, err = a.Eval(3, 2)
		require.NoError(t, err)
		require.True(t, v.IsAbsent())
	})

	t.Run("key 3 yields bytes", func(t *testing.T) {
		v, err := a.Eval(1, 3)
		require.NoError(t, err)
		require.Equal(t, []byte("hello"), v.Bytes())

		v, err = a.Eval(2, 3)
		require.NoError(t, err)
		require.True(t, v.IsAbsent())
	})

	t.Run("key 4 yields text", func(t *testing.T) {
		v, err := a.Eval(1, 4)
		require.NoError(t, err)
		require.Equal(t, "hello", v.String())

		v, err = a.Eval(3, 4)
		require.NoError(t, err)
		require.True(t, v.IsAbsent())
	})

	t.Run("every integer kind indexes", func(t *testing.T) {
		for _, idx := range []any{int8(1), int16(1), int32(1), int64(1), uint8(1), uint16(1), uint32(1), uint64(1), uint(1)} {
			v, err := a.Eval(idx, 4)
			require.NoError(t, err)
			require.Equal(t, "hello", v.String())
		}
	})

	t.Run("usage errors", func(t *testing.T) {
		var usageErr *UsageError

		_, err := a.Eval("one")
		require.ErrorAs(t, err, &usageErr)

		_, err = a.Eval(1, 5)
		require.ErrorAs(t, err, &usageErr)

		_, err = a.Eval(1, "bogus")
		require.ErrorAs(t, err, &usageErr)

		_, err = a.Eval(1, 2, 3)
		require.ErrorAs(t, err, &usageErr)
	})

	t.Run("range error", func(t *testing.T) {
		var rangeErr *RangeError
		_, err := a.Eval(4)
		require.ErrorAs(t, err, &rangeErr)
	})
}

func TestAnswerEvalCopy(t *testing.T) {
	payload := []byte{1, 0, 0, 0, 2, 0, 0, 0}
	a := newTestAnswer(Reply{Data: payload})

	t.Run("byte destination, exact size", func(t *testing.T) {
		dst := make([]byte, 8)
		v, err := a.Eval(1, dst)
		require.NoError(t, err)
		require.Equal(t, payload, dst)
		// The same buffer comes back, not a copy.
		require.Same(t, &dst[0], &v.Bytes()[0])
	})

	t.Run("typed destination, exact size", func(t *testing.T) {
		dst := make([]uint32, 2)
		_, err := a.Eval(1, dst)
		require.NoError(t, err)
		// Native byte order: a raw memory copy, same as the payload bytes.
		require.Equal(t, payload, sliceBytes(dst))
	})

	t.Run("size mismatch fails without partial copy", func(t *testing.T) {
		dst := make([]byte, 7)
		var usageErr *UsageError
		_, err := a.Eval(1, dst)
		require.ErrorAs(t, err, &usageErr)
		require.Equal(t, make([]byte, 7), dst)
	})

	t.Run("typed size mismatch", func(t *testing.T) {
		var usageErr *UsageError
		_, err := a.Eval(1, make([]uint32, 3))
		require.ErrorAs(t, err, &usageErr)
	})

	t.Run("unsupported destination type", func(t *testing.T) {
		var usageErr *UsageError
		_, err := a.Eval(1, []string{"x"})
		require.ErrorAs(t, err, &usageErr)
	})
}

func TestAnswerAttr(t *testing.T) {
	a := newTestAnswer(
		Reply{Message: "XPA$ERROR boom", Data: []byte("x")},
		Reply{Message: "XPA$MESSAGE ok"},
	)

	tests := []struct {
		name string
		want int64
	}{
		{name: "replies", want: 2},
		{name: "buffers", want: 1},
		{name: "errors", want: 1},
		{name: "messages", want: 1},
	}
	for _, tt := range tests {
		v, err := a.Attr(tt.name)
		require.NoError(t, err)
		require.Equal(t, tt.want, v.Int())
	}

	var usageErr *UsageError
	_, err := a.Attr("bogus")
	require.ErrorAs(t, err, &usageErr)
}

func TestAnswerString(t *testing.T) {
	tests := []struct {
		name    string
		replies []Reply
		want    string
	}{
		{
			name: "singular",
			replies: []Reply{
				{Message: "XPA$MESSAGE ok", Data: []byte("x")},
			},
			want: "1 reply, 1 buffer, 1 message, 0 errors",
		},
		{
			name: "plural",
			replies: []Reply{
				{Message: "XPA$ERROR a"},
				{Message: "XPA$ERROR b"},
			},
			want: "2 replies, 0 buffers, 0 messages, 2 errors",
		},
		{
			name: "empty",
			want: "0 replies, 0 buffers, 0 messages, 0 errors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, newTestAnswer(tt.replies...).String())
		})
	}
}

func TestNewAnswerOwnership(t *testing.T) {
	acc := newAccumulator()
	acc.put(Reply{Server: "a", Data: []byte("one")})
	acc.put(Reply{Server: "b", Data: []byte("two")})

	a := newAnswer(acc)

	// Every reply lives in exactly one place: the answer.
	require.Equal(t, 0, acc.len())
	require.Equal(t, 2, a.Replies())

	// A defensive reset afterward touches nothing the answer owns.
	acc.reset()
	data, err := a.Bytes(1)
	require.NoError(t, err)
	require.Equal(t, []byte("one"), data)
}
