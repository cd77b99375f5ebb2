package sqlite

import "fmt"

// Kind identifies which variant of a Value is active.
type Kind int

// Value kinds, matching SQLite's storage classes.
const (
	// KindInteger is a 64-bit signed integer.
	KindInteger Kind = iota + 1

	// KindReal is a 64-bit floating point number.
	KindReal

	// KindText is a UTF-8 string.
	KindText

	// KindBlob is an arbitrary byte sequence.
	KindBlob

	// KindNull marks an absent value in binding position. Rows never
	// contain a Null-kinded Value; a NULL column is simply absent.
	KindNull
)

// Value is a member of the closed set of primitive kinds exchangeable with
// the engine. Exactly one variant is active; construct values with Integer,
// Real, Text, Blob, or Null.
//
// The zero Value is not valid. Always use a constructor.
type Value struct {
	kind Kind
	i    int64
	r    float64
	s    string
	b    []byte
}

// Integer returns a Value holding a 64-bit signed integer.
func Integer(v int64) Value {
	return Value{kind: KindInteger, i: v}
}

// Real returns a Value holding a 64-bit floating point number.
func Real(v float64) Value {
	return Value{kind: KindReal, r: v}
}

// Text returns a Value holding a UTF-8 string.
func Text(v string) Value {
	return Value{kind: KindText, s: v}
}

// Blob returns a Value holding a byte sequence. A nil slice is normalised
// to an empty one so that the value stays Blob-kinded rather than binding
// as NULL.
func Blob(v []byte) Value {
	if v == nil {
		v = []byte{}
	}
	return Value{kind: KindBlob, b: v}
}

// Null returns a Value that binds as SQL NULL. Go variadic parameter lists
// cannot express an absent position, so absence is spelled explicitly at
// binding time; on the result side NULL columns are omitted from the Row
// instead.
func Null() Value {
	return Value{kind: KindNull}
}

// Kind reports which variant of the value is active.
func (v Value) Kind() Kind {
	return v.kind
}

// String renders the value for diagnostics. Blob contents are elided.
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return fmt.Sprintf("integer(%d)", v.i)
	case KindReal:
		return fmt.Sprintf("real(%g)", v.r)
	case KindText:
		return fmt.Sprintf("text(%q)", v.s)
	case KindBlob:
		return fmt.Sprintf("blob(%d bytes)", len(v.b))
	case KindNull:
		return "null"
	default:
		return "invalid"
	}
}

// engineArg converts the value to the argument form the engine binding
// expects: nil for NULL, otherwise the native Go representation.
func (v Value) engineArg() interface{} {
	switch v.kind {
	case KindInteger:
		return v.i
	case KindReal:
		return v.r
	case KindText:
		return v.s
	case KindBlob:
		return v.b
	default:
		return nil
	}
}
