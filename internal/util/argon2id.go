package util

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2idParams configures Argon2id key derivation for API token hashes.
type Argon2idParams struct {
	Time        uint32
	MemoryKiB   uint32
	Parallelism uint8
	KeyLen      uint32
}

func DefaultArgon2idParams() Argon2idParams {
	return Argon2idParams{
		Time:        1,
		MemoryKiB:   64 * 1024,
		Parallelism: 4,
		KeyLen:      32,
	}
}

// HashToken derives an Argon2id hash of token with a fresh salt and
// returns it in the standard encoded form
// $argon2id$v=19$m=...,t=...,p=...$<salt>$<hash>.
func HashToken(token string) (string, error) {
	params := DefaultArgon2idParams()
	salt, err := RandomBytes(16)
	if err != nil {
		return "", fmt.Errorf("generating token salt: %w", err)
	}
	key := argon2.IDKey([]byte(token), salt, params.Time, params.MemoryKiB, params.Parallelism, params.KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, params.MemoryKiB, params.Time, params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// VerifyToken reports whether token matches an encoded hash produced by
// HashToken. Comparison is constant-time in the derived key.
func VerifyToken(token, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, fmt.Errorf("malformed argon2id hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("malformed argon2id version: %w", err)
	}
	if version != argon2.Version {
		return false, fmt.Errorf("unsupported argon2id version %d", version)
	}

	var params Argon2idParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.MemoryKiB, &params.Time, &params.Parallelism); err != nil {
		return false, fmt.Errorf("malformed argon2id params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("malformed argon2id salt: %w", err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("malformed argon2id hash: %w", err)
	}

	key := argon2.IDKey([]byte(token), salt, params.Time, params.MemoryKiB, params.Parallelism, uint32(len(expected)))
	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}
