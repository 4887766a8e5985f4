// Package bloom provides a probabilistic prefilter for address sets.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a Bloom filter over addresses.
// A negative answer is exact; a positive one needs confirming.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n addresses at the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records an address.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether url may have been added.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}
