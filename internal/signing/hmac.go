package signing

import (
	"crypto/hmac"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrUnsupportedAlgorithm is returned when the requested digest algorithm is
// not in the registry.
var ErrUnsupportedAlgorithm = errors.New("signing: unsupported hash algorithm")

// Sign computes an HMAC over parts keyed with secret, using the named digest
// algorithm.
//
// Parts are written into the MAC in order with no separators, so
// Sign(k, a, "ab", "c") equals Sign(k, a, "a", "bc"). Peers that verify
// tokens rebuild the digest the same way, which makes the part order part of
// the wire contract.
//
// Returns the lowercase hex encoded digest.
func Sign(secret []byte, algorithm string, parts ...[]byte) (string, error) {
	newHash, err := lookup(algorithm)
	if err != nil {
		return "", err
	}

	mac := hmac.New(newHash, secret)
	for _, p := range parts {
		mac.Write(p)
	}
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// SignStrings is Sign for string parts.
func SignStrings(secret, algorithm string, parts ...string) (string, error) {
	raw := make([][]byte, len(parts))
	for i, p := range parts {
		raw[i] = []byte(p)
	}
	return Sign([]byte(secret), algorithm, raw...)
}

// Equal reports whether two hex digests are equal in constant time.
func Equal(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}

func lookup(algorithm string) (hashFunc, error) {
	newHash, ok := registry[normalize(algorithm)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
	return newHash, nil
}
