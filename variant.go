package xpa

import "strconv"

// Kind identifies which value a Variant holds.
type Kind int

const (
	// KindAbsent is the null result: no message, no payload.
	KindAbsent Kind = iota

	// KindInt is an integer result (counts, sizes, classifications).
	KindInt

	// KindString is a text result (messages, server names, payload text).
	KindString

	// KindBytes is a raw byte-sequence result.
	KindBytes
)

// Variant is the tagged result of the Answer accessor protocol: one of an
// integer, a string, a byte sequence, or the absent value.
//
// The zero Variant is the absent value.
type Variant struct {
	kind Kind
	n    int64
	s    string
	b    []byte
}

func absentVariant() Variant         { return Variant{} }
func intVariant(n int64) Variant     { return Variant{kind: KindInt, n: n} }
func stringVariant(s string) Variant { return Variant{kind: KindString, s: s} }
func bytesVariant(b []byte) Variant  { return Variant{kind: KindBytes, b: b} }

// Kind returns which value the variant holds.
func (v Variant) Kind() Kind { return v.kind }

// IsAbsent reports whether the variant is the absent value.
func (v Variant) IsAbsent() bool { return v.kind == KindAbsent }

// Int returns the integer value, 0 unless Kind is KindInt.
func (v Variant) Int() int64 { return v.n }

// Bytes returns the byte-sequence value, nil unless Kind is KindBytes.
func (v Variant) Bytes() []byte { return v.b }

// String returns the string form of the variant: the string value itself,
// byte sequences reinterpreted as text, integers in decimal, and "" for the
// absent value.
func (v Variant) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindBytes:
		return string(v.b)
	case KindInt:
		return strconv.FormatInt(v.n, 10)
	default:
		return ""
	}
}
