package xpa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVariantKinds(t *testing.T) {
	tests := []struct {
		name       string
		variant    Variant
		kind       Kind
		wantString string
	}{
		{name: "absent", variant: absentVariant(), kind: KindAbsent, wantString: ""},
		{name: "zero value is absent", variant: Variant{}, kind: KindAbsent, wantString: ""},
		{name: "int", variant: intVariant(42), kind: KindInt, wantString: "42"},
		{name: "string", variant: stringVariant("hello"), kind: KindString, wantString: "hello"},
		{name: "bytes", variant: bytesVariant([]byte("raw")), kind: KindBytes, wantString: "raw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.kind, tt.variant.Kind())
			require.Equal(t, tt.wantString, tt.variant.String())
			require.Equal(t, tt.kind == KindAbsent, tt.variant.IsAbsent())
		})
	}
}

func TestVariantAccessors(t *testing.T) {
	require.Equal(t, int64(7), intVariant(7).Int())
	require.Equal(t, []byte{1, 2}, bytesVariant([]byte{1, 2}).Bytes())

	// Accessors of the wrong kind yield zero values, not panics.
	require.Equal(t, int64(0), stringVariant("x").Int())
	require.Nil(t, intVariant(7).Bytes())
}
