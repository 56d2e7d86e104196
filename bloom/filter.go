// Package bloom provides a probabilistic set of stored result URLs.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter is a concurrency-safe Bloom filter over URLs. Test never returns
// false for an added URL, so a negative answer proves the URL is absent.
type Filter struct {
	mu sync.RWMutex
	f  *bloom.BloomFilter
}

// NewFilter creates a filter sized for n URLs at the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add records url.
func (f *Filter) Add(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(url)
}

// Test reports whether url may have been added.
func (f *Filter) Test(url string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.f.TestString(url)
}

// ApproximateSize estimates how many distinct URLs were added.
func (f *Filter) ApproximateSize() uint {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return uint(f.f.ApproximatedSize())
}
