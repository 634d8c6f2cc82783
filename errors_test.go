package xpa

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &ConnError{Op: "get", Err: cause}

	require.EqualError(t, err, "xpa: connection error during get: dial tcp: connection refused")
	require.ErrorIs(t, err, cause)
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: &UsageError{Message: "bad answer attribute \"x\""}, want: "xpa: bad answer attribute \"x\""},
		{err: &RangeError{Index: 7, Count: 5}, want: "xpa: reply index 7 out of range [1, 5]"},
		{err: &ServerError{Messages: []string{"boom (a)", "bang (b)"}}, want: "xpa: boom (a); bang (b)"},
	}
	for _, tt := range tests {
		require.EqualError(t, tt.err, tt.want)
	}
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("request failed: %w", &RangeError{Index: 0, Count: 0})

	var rangeErr *RangeError
	require.ErrorAs(t, wrapped, &rangeErr)
	require.Equal(t, 0, rangeErr.Count)
}
