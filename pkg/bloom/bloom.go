// Package bloom implements a counting Bloom filter.
//
// Each bucket is an 8-bit counter instead of a bit, so elements can be
// removed again. Index derivation is delegated to an IndexProvider, by
// default a hashgen.Generator.
package bloom

import (
	"fmt"
	"io"
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CounterMax is the saturation ceiling of a bucket. A saturated bucket is
// never decremented again.
const CounterMax = math.MaxUint8

type counterArray []uint8

func newCounterArray(size int) counterArray {
	return make(counterArray, size)
}

// incr reports whether the bucket reached CounterMax on this call.
func (c counterArray) incr(idx uint64) bool {
	if c[idx] == CounterMax {
		return false
	}
	c[idx]++
	return c[idx] == CounterMax
}

func (c counterArray) decr(idx uint64) {
	if c[idx] > 0 && c[idx] < CounterMax {
		c[idx]--
	}
}

func (c counterArray) get(idx uint64) uint8 {
	return c[idx]
}

type CountingBloom struct {
	counters counterArray

	// number of indices per element
	k int

	// number of buckets
	m int

	algorithm string
	scheme    string
	maxRange  int
	provider  IndexProvider
}

// New sizes the filter for n expected elements at false-positive rate p.
func New(n int, p float64, opt Option) (*CountingBloom, error) {
	m, err := OptimalSize(n, p)
	if err != nil {
		return nil, err
	}
	k, err := OptimalHashCount(m, n)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("sized counting bloom for n=%d p=%g: m=%d k=%d", n, p, m, k)
	return NewWithSize(k, m, opt)
}

// NewWithSize builds a filter with exactly size buckets and hashCount
// indices per element.
func NewWithSize(hashCount, size int, opt Option) (*CountingBloom, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrBadSize, "size=%d", size)
	}
	if hashCount <= 0 {
		return nil, errors.Wrapf(ErrBadHashCount, "hashCount=%d", hashCount)
	}
	opt = opt.withDefaults()

	b := &CountingBloom{
		k:         hashCount,
		m:         size,
		algorithm: opt.Algorithm,
		scheme:    opt.Scheme,
		maxRange:  opt.MaxRange,
		provider:  opt.Provider,
	}
	// Probe once so a bad algorithm or scheme fails here instead of in Add.
	if _, err := b.indices(nil); err != nil {
		return nil, err
	}
	b.counters = newCounterArray(size)

	logrus.Debugf("new counting bloom: %s", b)
	return b, nil
}

func (b *CountingBloom) indices(data []byte) ([]uint64, error) {
	idx, err := b.provider.Execute(data, b.algorithm, b.scheme, b.k)
	if err != nil {
		return nil, errors.Wrap(err, "bloom: index provider")
	}
	if len(idx) != b.k {
		return nil, errors.Wrapf(ErrBadIndexCount, "got %d, want %d", len(idx), b.k)
	}
	return idx, nil
}

// mustIndices panics if the provider breaks after the construction probe.
func (b *CountingBloom) mustIndices(data []byte) []uint64 {
	idx, err := b.indices(data)
	if err != nil {
		panic(err)
	}
	return idx
}

func (b *CountingBloom) bucket(h uint64) uint64 {
	return h % uint64(b.m)
}

func (b *CountingBloom) Add(data []byte) {
	for _, h := range b.mustIndices(data) {
		idx := b.bucket(h)
		if b.counters.incr(idx) {
			logrus.Debugf("bucket %d saturated at %d", idx, CounterMax)
		}
	}
}

// Contains reports whether data may have been added. A false result is
// definite.
func (b *CountingBloom) Contains(data []byte) bool {
	for _, h := range b.mustIndices(data) {
		if b.counters.get(b.bucket(h)) == 0 {
			return false
		}
	}
	return true
}

// Remove decrements every bucket data maps to. Buckets at zero or at
// CounterMax are left unchanged.
func (b *CountingBloom) Remove(data []byte) {
	for _, h := range b.mustIndices(data) {
		b.counters.decr(b.bucket(h))
	}
}

func (b *CountingBloom) HashCount() int    { return b.k }
func (b *CountingBloom) Size() int         { return b.m }
func (b *CountingBloom) MaxRange() int     { return b.maxRange }
func (b *CountingBloom) Algorithm() string { return b.algorithm }
func (b *CountingBloom) Scheme() string    { return b.scheme }

// Bucket returns the counter at i. It panics if i is out of range.
func (b *CountingBloom) Bucket(i int) uint8 {
	return b.counters[i]
}

// Occupancy returns a snapshot with bit i set for every non-zero bucket.
func (b *CountingBloom) Occupancy() *bitset.BitSet {
	bs := bitset.New(uint(b.m))
	for i, c := range b.counters {
		if c != 0 {
			bs.Set(uint(i))
		}
	}
	return bs
}

// Dump writes one "Bucket <i>: <count>" line per bucket.
func (b *CountingBloom) Dump(w io.Writer) error {
	for i, c := range b.counters {
		if _, err := fmt.Fprintf(w, "Bucket %d: %d\n", i, c); err != nil {
			return err
		}
	}
	return nil
}

func (b *CountingBloom) String() string {
	return fmt.Sprintf("CountingBloom{size=%d k=%d algorithm=%s scheme=%s}", b.m, b.k, b.algorithm, b.scheme)
}
