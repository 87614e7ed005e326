package util

import "golang.org/x/text/unicode/norm"

// Normalize canonicalizes terminal-entered key names to NFC so that the
// same visible name typed on different platforms addresses the same
// stored credential.
func Normalize(s string) string {
	return norm.NFC.String(s)
}
