package assets

import (
	"crypto/sha512"
	"encoding/base64"
)

// Integrity returns the subresource-integrity value for b.
func Integrity(b []byte) string {
	sum := sha512.Sum384(b)
	return "sha384-" + base64.StdEncoding.EncodeToString(sum[:])
}

// HashedName returns <stem>-<revision>.<ext>.
func HashedName(stem, revision string, kind Kind) string {
	return stem + "-" + revision + "." + kind.Ext()
}
