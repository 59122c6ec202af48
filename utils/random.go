package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	// OrderReferenceLength is the length of generated order references
	OrderReferenceLength = 10
	// AccessTokenLength is the length of generated digital access tokens
	AccessTokenLength = 48

	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	tokenAlphabet     = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// randomString returns a cryptographically random string of the given length
// drawn from the given alphabet
func randomString(length int, alphabet string) string {
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken;
			// nothing sensible to do but stop
			panic(err)
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b)
}

// NewOrderReference generates a human-readable uppercase order reference
func NewOrderReference() string {
	return randomString(OrderReferenceLength, referenceAlphabet)
}

// MakeToken generates an opaque high-entropy token string for digital access
func MakeToken() string {
	return randomString(AccessTokenLength, tokenAlphabet)
}
