// Package hashgen derives k bucket indices for an element from one or two
// digest computations.
//
// A Generator is parameterised per call by an algorithm name, which picks the
// digest, and a scheme name, which picks how the k indices are derived from
// the digest words. Results are deterministic for identical input and are not
// reduced to any range; callers apply their own modulus.
package hashgen

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	AlgorithmSHA256  = "sha256"
	AlgorithmSHA1    = "sha1"
	AlgorithmSHA512  = "sha512"
	AlgorithmMD5     = "md5"
	AlgorithmFNV128a = "fnv128a"
	AlgorithmMurmur3 = "murmur3"
	AlgorithmBlake2b = "blake2b"
	AlgorithmSHA3    = "sha3-256"
	AlgorithmBlake3  = "blake3"
)

const (
	SchemeDoubleHashing         = "double-hashing"
	SchemeEnhancedDoubleHashing = "enhanced-double-hashing"
	SchemeTripleHashing         = "triple-hashing"
	SchemeSalted                = "salted"
	SchemeBloomLocations        = "bloom-locations"
)

var (
	ErrUnknownAlgorithm = errors.New("hashgen: unknown algorithm")
	ErrUnknownScheme    = errors.New("hashgen: unknown scheme")
	ErrBadHashCount     = errors.New("hashgen: hash count must be greater than 0")
	ErrShortDigest      = errors.New("hashgen: digest shorter than 16 bytes")
)

// Digest hashes data into at least 16 bytes.
type Digest func(data []byte) []byte

type Generator struct {
	algorithms map[string]Digest
}

// New returns a Generator with every built-in algorithm registered.
func New() *Generator {
	g := &Generator{algorithms: make(map[string]Digest, len(builtinAlgorithms))}
	for name, fn := range builtinAlgorithms {
		g.algorithms[name] = fn
	}
	return g
}

// RegisterAlgorithm adds or replaces a digest on this generator only.
func (g *Generator) RegisterAlgorithm(name string, fn Digest) {
	g.algorithms[name] = fn
}

// Algorithms returns the registered algorithm names in no particular order.
func (g *Generator) Algorithms() []string {
	names := make([]string, 0, len(g.algorithms))
	for name := range g.algorithms {
		names = append(names, name)
	}
	return names
}

// Execute returns exactly k indices for data.
func (g *Generator) Execute(data []byte, algorithm, scheme string, k int) ([]uint64, error) {
	if k <= 0 {
		return nil, errors.Wrapf(ErrBadHashCount, "k=%d", k)
	}
	digest, ok := g.algorithms[algorithm]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownAlgorithm, "%q", algorithm)
	}
	derive, ok := schemes[scheme]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownScheme, "%q", scheme)
	}
	return derive(digest, data, k)
}

// words splits a digest into its base values. h3 falls back to a mix of h1
// and h2 for 16-byte digests.
func words(sum []byte) (h1, h2, h3 uint64, err error) {
	if len(sum) < 16 {
		return 0, 0, 0, errors.Wrapf(ErrShortDigest, "len=%d", len(sum))
	}
	h1 = binary.BigEndian.Uint64(sum[0:8])
	h2 = binary.BigEndian.Uint64(sum[8:16])
	if len(sum) >= 24 {
		h3 = binary.BigEndian.Uint64(sum[16:24])
	} else {
		h3 = mix64(h1 ^ h2)
	}
	if h2 == 0 {
		h2 = 1
	}
	return h1, h2, h3, nil
}

// mix64 is the splitmix64 finalizer.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
