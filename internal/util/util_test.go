package util

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	// "e" + combining acute accent normalizes to the precomposed rune.
	decomposed := "café"
	if got := Normalize(decomposed); got != "café" {
		t.Errorf("expected NFC form, got %q", got)
	}
	if got := Normalize("plain"); got != "plain" {
		t.Errorf("expected unchanged string, got %q", got)
	}
}

func TestRandomChars(t *testing.T) {
	s, err := RandomChars(26)
	if err != nil {
		t.Fatalf("RandomChars failed: %v", err)
	}
	if len(s) != 26 {
		t.Errorf("expected 26 chars, got %d", len(s))
	}
	for _, r := range s {
		if !strings.ContainsRune(string(allowedRandomChars), r) {
			t.Errorf("character %q outside allowed alphabet", r)
		}
	}
}

func TestRandomBytes(t *testing.T) {
	a, err := RandomBytes(16)
	if err != nil {
		t.Fatalf("RandomBytes failed: %v", err)
	}
	b, err := RandomBytes(16)
	if err != nil {
		t.Fatalf("RandomBytes failed: %v", err)
	}
	if len(a) != 16 || len(b) != 16 {
		t.Fatalf("expected 16 bytes, got %d and %d", len(a), len(b))
	}
	if string(a) == string(b) {
		t.Error("two random draws were identical")
	}
}

func TestHashAndVerifyToken(t *testing.T) {
	hash, err := HashToken("correct-horse")
	if err != nil {
		t.Fatalf("HashToken failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("unexpected hash format: %q", hash)
	}

	match, err := VerifyToken("correct-horse", hash)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if !match {
		t.Error("expected matching token to verify")
	}

	match, err = VerifyToken("wrong-horse", hash)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if match {
		t.Error("expected non-matching token to fail verification")
	}
}

func TestVerifyTokenMalformed(t *testing.T) {
	if _, err := VerifyToken("x", "not-a-hash"); err == nil {
		t.Error("expected error for malformed hash")
	}
	if _, err := VerifyToken("x", "$bcrypt$v=19$m=1,t=1,p=1$aaaa$bbbb"); err == nil {
		t.Error("expected error for wrong algorithm")
	}
}

func TestGenerateSelfSignedCert(t *testing.T) {
	cert, err := GenerateSelfSignedCert()
	if err != nil {
		t.Fatalf("GenerateSelfSignedCert failed: %v", err)
	}
	if len(cert.Certificate) == 0 {
		t.Error("expected at least one certificate in the chain")
	}
	if cert.PrivateKey == nil {
		t.Error("expected a private key")
	}
}
