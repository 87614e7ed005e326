package wallet

import "errors"

// The error message texts below are an interop contract: existing
// consumers of the wallet assert on them, so they keep their original
// casing.
var (
	// ErrNameRequired indicates a call was made with an empty name.
	ErrNameRequired = errors.New("Name must be specified")
	// ErrNotFound indicates no value is stored under the requested name.
	ErrNotFound = errors.New("The specified key does not exist")
	// ErrUnknownType indicates a value that is neither text nor binary,
	// either rejected on Put or found in a corrupted stored record.
	ErrUnknownType = errors.New("Unknown type being stored")
)

// ValidateName checks the one argument precondition shared by the
// name-taking operations.
func ValidateName(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	return nil
}
