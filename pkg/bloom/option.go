package bloom

import "cbf/pkg/hashgen"

// IndexProvider returns exactly k indices for data. Output must be
// deterministic for identical arguments; the filter reduces it modulo size.
type IndexProvider interface {
	Execute(data []byte, algorithm, scheme string, k int) ([]uint64, error)
}

type Option struct {
	Algorithm string
	Scheme    string

	// MaxRange is reported by CountingBloom.MaxRange as a hint for index
	// providers; the filter itself does not read it.
	MaxRange int

	// nil means a fresh hashgen.Generator
	Provider IndexProvider
}

func DefaultOptions() Option {
	return Option{
		Algorithm: hashgen.AlgorithmSHA256,
		Scheme:    hashgen.SchemeEnhancedDoubleHashing,
		MaxRange:  1000,
		Provider:  hashgen.New(),
	}
}

func (o Option) withDefaults() Option {
	def := DefaultOptions()
	if o.Algorithm == "" {
		o.Algorithm = def.Algorithm
	}
	if o.Scheme == "" {
		o.Scheme = def.Scheme
	}
	if o.MaxRange == 0 {
		o.MaxRange = def.MaxRange
	}
	if o.Provider == nil {
		o.Provider = def.Provider
	}
	return o
}
