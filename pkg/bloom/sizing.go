package bloom

import (
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrBadSize              = errors.New("bloom: size must be greater than 0")
	ErrBadHashCount         = errors.New("bloom: hash count must be greater than 0")
	ErrBadElementCount      = errors.New("bloom: expected element count must be greater than 0")
	ErrBadFalsePositiveRate = errors.New("bloom: false positive rate must be in (0, 1)")
	ErrSizeOverflow         = errors.New("bloom: size overflows int")
	ErrBadIndexCount        = errors.New("bloom: index provider returned wrong number of indices")
)

// OptimalSize returns m = round(-(n * ln p) / (ln 2)^2), the bucket count
// that gives false-positive rate p for n elements.
func OptimalSize(n int, p float64) (int, error) {
	if n <= 0 {
		return 0, errors.Wrapf(ErrBadElementCount, "n=%d", n)
	}
	if math.IsNaN(p) || p <= 0 || p >= 1 {
		return 0, errors.Wrapf(ErrBadFalsePositiveRate, "p=%g", p)
	}
	m := math.Round(-(float64(n) * math.Log(p)) / (math.Ln2 * math.Ln2))
	if m >= math.MaxInt {
		return 0, errors.Wrapf(ErrSizeOverflow, "n=%d p=%g", n, p)
	}
	if m < 1 {
		m = 1
	}
	return int(m), nil
}

// OptimalHashCount returns k = round((m / n) * ln 2), never less than 1.
func OptimalHashCount(m, n int) (int, error) {
	if n <= 0 {
		return 0, errors.Wrapf(ErrBadElementCount, "n=%d", n)
	}
	if m <= 0 {
		return 0, errors.Wrapf(ErrBadSize, "m=%d", m)
	}
	k := int(math.Round(float64(m) / float64(n) * math.Ln2))
	if k < 1 {
		logrus.Debugf("hash count for m=%d n=%d rounds to %d, using 1", m, n, k)
		k = 1
	}
	return k, nil
}

// FalsePositiveRate returns (1 - e^(-k*n/m))^k, the expected false-positive
// probability after n distinct insertions.
func FalsePositiveRate(m, k, n int) float64 {
	if m <= 0 || k <= 0 || n <= 0 {
		return 0
	}
	return math.Pow(1-math.Exp(-float64(k)*float64(n)/float64(m)), float64(k))
}
