package calibrated

import (
	"sync"
	"sync/atomic"
)

const (
	MinBitSize = 6  // 64 bytes (CPU cache line)
	Steps      = 20 // 64B to 32MB

	MinSize = 1 << MinBitSize
	MaxSize = 1 << (MinBitSize + Steps - 1)
)

// Pool is a generic pool of items grouped into power-of-two size classes.
// Only items whose size matches their class exactly are retained, so Get
// never hands out an item smaller than its class.
type Pool[T any] struct {
	gets      [Steps]atomic.Uint64
	misses    [Steps]atomic.Uint64
	puts      [Steps]atomic.Uint64
	buckets   [Steps]sync.Pool
	newFunc   func(size int) T
	sizeFunc  func(T) int
	resetFunc func(T)
}

// New creates a new size-classed pool.
func New[T any](newFunc func(size int) T, sizeFunc func(T) int, resetFunc func(T)) *Pool[T] {
	p := &Pool[T]{
		newFunc:   newFunc,
		sizeFunc:  sizeFunc,
		resetFunc: resetFunc,
	}
	for i := range p.buckets {
		size := MinSize << i
		idx := i
		p.buckets[i].New = func() any {
			p.misses[idx].Add(1)
			return newFunc(size)
		}
	}
	return p
}

// Get returns an item of at least the given size.
// Sizes above MaxSize bypass the buckets.
func (p *Pool[T]) Get(size int) T {
	if size <= 0 {
		size = MinSize
	}

	idx := SizeToIndex(size)
	if idx >= Steps {
		return p.newFunc(size)
	}

	p.gets[idx].Add(1)
	return p.buckets[idx].Get().(T)
}

// Put returns an item to its size class.
// It reports whether the item was retained.
func (p *Pool[T]) Put(item T) bool {
	size := p.sizeFunc(item)
	if size == 0 {
		return false
	}

	idx := SizeToIndex(size)
	if idx >= Steps || BucketSize(idx) != size {
		return false
	}

	if p.resetFunc != nil {
		p.resetFunc(item)
	}
	p.puts[idx].Add(1)
	p.buckets[idx].Put(item)
	return true
}

// BucketStats holds the counters of one size class.
type BucketStats struct {
	Size   int
	Gets   uint64
	Misses uint64
	Puts   uint64
}

// Hits returns the number of gets served from pooled items.
func (s BucketStats) Hits() uint64 {
	if s.Misses > s.Gets {
		return 0
	}
	return s.Gets - s.Misses
}

// GetStats returns the counters for every size class.
func (p *Pool[T]) GetStats() [Steps]BucketStats {
	var result [Steps]BucketStats
	for i := range result {
		result[i] = BucketStats{
			Size:   BucketSize(i),
			Gets:   p.gets[i].Load(),
			Misses: p.misses[i].Load(),
			Puts:   p.puts[i].Load(),
		}
	}
	return result
}

// SizeToIndex returns the bucket index for a given size.
func SizeToIndex(n int) int {
	n--
	n >>= MinBitSize
	idx := 0
	for n > 0 {
		n >>= 1
		idx++
	}
	return idx
}

// BucketSize returns the size of bucket at index i.
func BucketSize(i int) int {
	if i < 0 || i >= Steps {
		return 0
	}
	return MinSize << i
}
