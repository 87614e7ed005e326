package wallet

import "bytes"

// Kind discriminates the payload kinds a wallet can hold.
type Kind int

const (
	// KindInvalid is the kind of the zero Value. Storing it fails with
	// ErrUnknownType.
	KindInvalid Kind = iota
	// KindText is a textual secret, stored verbatim.
	KindText
	// KindBinary is a raw byte buffer, stored base64-encoded.
	KindBinary
)

// Value is a tagged union over the two payload kinds. Values are
// immutable: Binary copies its input and Bytes returns a fresh copy, so a
// Value can be shared freely between goroutines and backends.
type Value struct {
	kind Kind
	text string
	data []byte
}

// Text returns a textual Value holding s.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Binary returns a binary Value holding a copy of b.
func Binary(b []byte) Value {
	return Value{kind: KindBinary, data: append([]byte(nil), b...)}
}

// Kind returns the payload kind.
func (v Value) Kind() Kind { return v.kind }

// Text returns the textual payload. It is empty unless Kind is KindText.
func (v Value) Text() string { return v.text }

// Bytes returns a copy of the binary payload. It is nil unless Kind is
// KindBinary.
func (v Value) Bytes() []byte {
	if v.data == nil {
		return nil
	}
	return append([]byte(nil), v.data...)
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	return v.text == o.text && bytes.Equal(v.data, o.data)
}
