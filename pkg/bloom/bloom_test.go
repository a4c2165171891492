package bloom

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"cbf/pkg/hashgen"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// logrus.SetLevel(logrus.DebugLevel)
}

func TestBloom(t *testing.T) {
	N := 10000
	bloom, err := New(N, 0.001, Option{})
	require.NoError(t, err)
	for i := 0; i < N; i++ {
		bloom.Add([]byte(strconv.Itoa(i)))
	}

	assert.True(t, bloom.Contains([]byte("1000")))
}

func TestDefaults(t *testing.T) {
	b, err := NewWithSize(3, 64, Option{})
	require.NoError(t, err)
	assert.Equal(t, hashgen.AlgorithmSHA256, b.Algorithm())
	assert.Equal(t, hashgen.SchemeEnhancedDoubleHashing, b.Scheme())
	assert.Equal(t, 1000, b.MaxRange())
	assert.Equal(t, 3, b.HashCount())
	assert.Equal(t, 64, b.Size())

	b, err = NewWithSize(3, 64, Option{MaxRange: 42, Algorithm: hashgen.AlgorithmMurmur3})
	require.NoError(t, err)
	assert.Equal(t, 42, b.MaxRange())
	assert.Equal(t, hashgen.AlgorithmMurmur3, b.Algorithm())
}

func TestCapacityConstruction(t *testing.T) {
	b, err := New(1000, 0.01, Option{})
	require.NoError(t, err)
	assert.Equal(t, 9585, b.Size())
	assert.Equal(t, 7, b.HashCount())
	assert.Len(t, b.counters, b.Size())
	for i := 0; i < b.Size(); i++ {
		require.Zero(t, b.Bucket(i))
	}
}

func TestConstructionRejectsBadInputs(t *testing.T) {
	for _, size := range []int{0, -5} {
		b, err := NewWithSize(3, size, Option{})
		require.True(t, errors.Is(err, ErrBadSize), "size=%d", size)
		assert.Nil(t, b)
	}

	for _, k := range []int{0, -1} {
		b, err := NewWithSize(k, 10, Option{})
		require.True(t, errors.Is(err, ErrBadHashCount), "k=%d", k)
		assert.Nil(t, b)
	}

	b, err := New(0, 0.01, Option{})
	require.True(t, errors.Is(err, ErrBadElementCount))
	assert.Nil(t, b)

	for _, p := range []float64{0, 1, -0.1, 1.5} {
		b, err := New(100, p, Option{})
		require.True(t, errors.Is(err, ErrBadFalsePositiveRate), "p=%g", p)
		assert.Nil(t, b)
	}
}

func TestConstructionRejectsUnknownNames(t *testing.T) {
	b, err := NewWithSize(3, 10, Option{Algorithm: "crc8"})
	require.True(t, errors.Is(err, hashgen.ErrUnknownAlgorithm))
	assert.Nil(t, b)

	b, err = New(100, 0.01, Option{Scheme: "quadruple"})
	require.True(t, errors.Is(err, hashgen.ErrUnknownScheme))
	assert.Nil(t, b)
}

func TestEmptyFilter(t *testing.T) {
	b, err := NewWithSize(4, 1000, Option{})
	require.NoError(t, err)

	assert.False(t, b.Contains([]byte("apple")))
	assert.False(t, b.Contains(nil))
	assert.Zero(t, b.Occupancy().Count())
}

func TestEmptyElement(t *testing.T) {
	b, err := NewWithSize(4, 1000, Option{})
	require.NoError(t, err)

	b.Add(nil)
	assert.True(t, b.Contains([]byte{}))
	b.Remove([]byte{})
	assert.False(t, b.Contains(nil))
}

func TestRoundTripRandom(t *testing.T) {
	b, err := NewWithSize(7, 20000, Option{})
	require.NoError(t, err)

	rnd := rand.New(rand.NewPCG(1, 2))
	seen := make(map[string]struct{})
	for len(seen) < 1000 {
		e := make([]byte, 1+rnd.IntN(32))
		for i := range e {
			e[i] = byte(rnd.Uint32())
		}
		if _, ok := seen[string(e)]; ok {
			continue
		}
		seen[string(e)] = struct{}{}

		b.Add(e)
		require.True(t, b.Contains(e), "%x", e)
	}
	for e := range seen {
		assert.True(t, b.Contains([]byte(e)), "%x", e)
	}
}

func TestEveryAlgorithmAndScheme(t *testing.T) {
	schemes := []string{
		hashgen.SchemeDoubleHashing,
		hashgen.SchemeEnhancedDoubleHashing,
		hashgen.SchemeTripleHashing,
		hashgen.SchemeSalted,
		hashgen.SchemeBloomLocations,
	}
	for _, algorithm := range hashgen.New().Algorithms() {
		for _, scheme := range schemes {
			t.Run(algorithm+"/"+scheme, func(t *testing.T) {
				b, err := New(200, 0.01, Option{Algorithm: algorithm, Scheme: scheme})
				require.NoError(t, err)
				for i := 0; i < 200; i++ {
					b.Add([]byte(fmt.Sprintf("elem-%d", i)))
				}
				for i := 0; i < 200; i++ {
					assert.True(t, b.Contains([]byte(fmt.Sprintf("elem-%d", i))))
				}
			})
		}
	}
}

func TestFalsePositiveRateEmpirical(t *testing.T) {
	const (
		n = 1000
		p = 0.01
	)
	b, err := New(n, p, Option{})
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		b.Add([]byte(fmt.Sprintf("in-%d", i)))
	}

	probes, hits := 20000, 0
	for i := 0; i < probes; i++ {
		if b.Contains([]byte(fmt.Sprintf("out-%d", i))) {
			hits++
		}
	}
	assert.Less(t, float64(hits)/float64(probes), 3*p)
}

func TestDump(t *testing.T) {
	b, err := NewWithSize(2, 3, Option{})
	require.NoError(t, err)
	b.Add([]byte("x"))

	var buf bytes.Buffer
	require.NoError(t, b.Dump(&buf))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	total := 0
	for i, line := range lines {
		assert.Equal(t, fmt.Sprintf("Bucket %d: %d", i, b.Bucket(i)), line)
		total += int(b.Bucket(i))
	}
	assert.Equal(t, 2, total)
}

func TestString(t *testing.T) {
	b, err := NewWithSize(2, 3, Option{})
	require.NoError(t, err)
	assert.Equal(t, "CountingBloom{size=3 k=2 algorithm=sha256 scheme=enhanced-double-hashing}", b.String())
}

func BenchmarkBloomAdd(b *testing.B) {
	N := 1_000_000
	bloom, err := New(N, 0.001, Option{})
	if err != nil {
		b.Fatal(err)
	}
	data := make([]string, N)
	for i := range data {
		data[i] = strconv.Itoa(rand.Int())
	}
	idx := 0
	for b.Loop() {
		bloom.Add([]byte(data[idx]))
		idx++
		if idx == N {
			idx = 0
		}
	}
}

func BenchmarkBloomContains(b *testing.B) {
	N := 1_000_000
	bloom, err := New(N, 0.001, Option{})
	if err != nil {
		b.Fatal(err)
	}
	data := make([]string, N)
	for i := range data {
		data[i] = strconv.Itoa(rand.Int())
	}
	for i := 0; i < N; i++ {
		bloom.Add([]byte(data[i]))
	}

	idx := 0
	for b.Loop() {
		if !bloom.Contains([]byte(data[idx])) {
			b.Fail()
		}
		idx++
		if idx == N {
			idx = 0
		}
	}
}
