package signing

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"sort"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// DefaultAlgorithm is the digest the messaging server uses unless configured
// otherwise.
const DefaultAlgorithm = "sha256"

type hashFunc func() hash.Hash

// registry maps lowercase algorithm names to hash constructors. Names match
// the digest names other server-side libraries accept, so the same
// configured name signs identically on both ends.
var registry = map[string]hashFunc{
	"md4":        md4.New,
	"md5":        md5.New,
	"sha1":       sha1.New,
	"sha224":     sha256.New224,
	"sha256":     sha256.New,
	"sha384":     sha512.New384,
	"sha512":     sha512.New,
	"sha512/224": sha512.New512_224,
	"sha512/256": sha512.New512_256,
	"sha3-224":   sha3.New224,
	"sha3-256":   sha3.New256,
	"sha3-384":   sha3.New384,
	"sha3-512":   sha3.New512,
	"ripemd160":  ripemd160.New,

	// Unkeyed BLAKE2 constructors only fail on an oversized key, so the
	// error is always nil here.
	"blake2b-256": func() hash.Hash { h, _ := blake2b.New256(nil); return h },
	"blake2b-384": func() hash.Hash { h, _ := blake2b.New384(nil); return h },
	"blake2b-512": func() hash.Hash { h, _ := blake2b.New512(nil); return h },
	"blake2s-256": func() hash.Hash { h, _ := blake2s.New256(nil); return h },

	"blake3": func() hash.Hash { return blake3.New() },
}

func normalize(algorithm string) string {
	return strings.ToLower(strings.TrimSpace(algorithm))
}

// Supported reports whether algorithm names a registered digest.
func Supported(algorithm string) bool {
	_, ok := registry[normalize(algorithm)]
	return ok
}

// Algorithms returns the registered algorithm names in sorted order.
func Algorithms() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
