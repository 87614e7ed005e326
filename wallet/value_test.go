package wallet

import (
	"bytes"
	"testing"
)

func TestValueKinds(t *testing.T) {
	if got := Text("secret").Kind(); got != KindText {
		t.Errorf("expected KindText, got %v", got)
	}
	if got := Binary([]byte{1, 2}).Kind(); got != KindBinary {
		t.Errorf("expected KindBinary, got %v", got)
	}
	var zero Value
	if got := zero.Kind(); got != KindInvalid {
		t.Errorf("expected KindInvalid for zero Value, got %v", got)
	}
}

func TestBinaryCopies(t *testing.T) {
	src := []byte{1, 2, 3}
	v := Binary(src)
	src[0] = 99
	if !bytes.Equal(v.Bytes(), []byte{1, 2, 3}) {
		t.Error("Binary aliased its input slice")
	}

	out := v.Bytes()
	out[0] = 42
	if !bytes.Equal(v.Bytes(), []byte{1, 2, 3}) {
		t.Error("Bytes returned an aliasing slice")
	}
}

func TestValueEqual(t *testing.T) {
	if !Text("a").Equal(Text("a")) {
		t.Error("equal text values compared unequal")
	}
	if Text("a").Equal(Binary([]byte("a"))) {
		t.Error("text and binary values compared equal")
	}
	if !Binary([]byte{0, 255}).Equal(Binary([]byte{0, 255})) {
		t.Error("equal binary values compared unequal")
	}
	if Binary([]byte{1}).Equal(Binary([]byte{2})) {
		t.Error("distinct binary values compared equal")
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName(""); err != ErrNameRequired {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}
	if err := ValidateName("Batman"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestErrorMessages(t *testing.T) {
	// These texts are an interop contract.
	if got := ErrNameRequired.Error(); got != "Name must be specified" {
		t.Errorf("unexpected ErrNameRequired text: %q", got)
	}
	if got := ErrNotFound.Error(); got != "The specified key does not exist" {
		t.Errorf("unexpected ErrNotFound text: %q", got)
	}
	if got := ErrUnknownType.Error(); got != "Unknown type being stored" {
		t.Errorf("unexpected ErrUnknownType text: %q", got)
	}
}
