package hashgen

import (
	"encoding/binary"

	"github.com/bits-and-blooms/bloom/v3"
)

type deriveFunc func(digest Digest, data []byte, k int) ([]uint64, error)

var schemes = map[string]deriveFunc{
	SchemeDoubleHashing:         doubleHashing,
	SchemeEnhancedDoubleHashing: enhancedDoubleHashing,
	SchemeTripleHashing:         tripleHashing,
	SchemeSalted:                salted,
	SchemeBloomLocations:        bloomLocations,
}

// g_i = h1 + i*h2
func doubleHashing(digest Digest, data []byte, k int) ([]uint64, error) {
	h1, h2, _, err := words(digest(data))
	if err != nil {
		return nil, err
	}
	idx := make([]uint64, k)
	for i := range idx {
		idx[i] = h1 + uint64(i)*h2
	}
	return idx, nil
}

// Dillinger & Manolios, "Bloom Filters in Probabilistic Verification".
// The growing step breaks the arithmetic progression of plain double hashing.
func enhancedDoubleHashing(digest Digest, data []byte, k int) ([]uint64, error) {
	x, y, _, err := words(digest(data))
	if err != nil {
		return nil, err
	}
	idx := make([]uint64, k)
	idx[0] = x
	for i := 1; i < k; i++ {
		x += y
		y += uint64(i)
		idx[i] = x
	}
	return idx, nil
}

func tripleHashing(digest Digest, data []byte, k int) ([]uint64, error) {
	x, y, z, err := words(digest(data))
	if err != nil {
		return nil, err
	}
	idx := make([]uint64, k)
	for i := range idx {
		idx[i] = x
		x += y
		y += z
	}
	return idx, nil
}

// salted runs the digest once per index over data || uint32be(i).
func salted(digest Digest, data []byte, k int) ([]uint64, error) {
	buf := make([]byte, len(data)+4)
	copy(buf, data)
	idx := make([]uint64, k)
	for i := range idx {
		binary.BigEndian.PutUint32(buf[len(data):], uint32(i))
		h1, _, _, err := words(digest(buf))
		if err != nil {
			return nil, err
		}
		idx[i] = h1
	}
	return idx, nil
}

// bloomLocations ignores digest and reproduces the locations a
// bits-and-blooms BloomFilter would probe for data.
func bloomLocations(_ Digest, data []byte, k int) ([]uint64, error) {
	return bloom.Locations(data, uint(k)), nil
}
