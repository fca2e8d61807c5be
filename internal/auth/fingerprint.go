package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Fingerprint derives the credential snapshot embedded in token claims from
// the stored password hash. Tokens carry this digest rather than the hash
// itself, so a leaked token never exposes credential material.
func Fingerprint(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(sum[:])
}

// FingerprintMatches compares the current credential against a token's
// fingerprint in constant time.
func FingerprintMatches(credential, fingerprint string) bool {
	current := Fingerprint(credential)
	return subtle.ConstantTimeCompare([]byte(current), []byte(fingerprint)) == 1
}
