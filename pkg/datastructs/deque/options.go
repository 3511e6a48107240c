package deque

import "go.uber.org/zap"

// Allocator supplies the raw memory behind dynamically allocated blocks.
// Allocate must return a slice of exactly size bytes or an error; Release
// receives exactly the slice Allocate returned.
type Allocator interface {
	Allocate(size int) ([]byte, error)
	Release(b []byte)
}

// Option configures a Deque at construction.
type Option func(*Deque)

// WithAllocator sets the block allocator. A nil allocator is ignored.
func WithAllocator(a Allocator) Option {
	return func(d *Deque) {
		if a != nil {
			d.alloc = a
		}
	}
}

// WithLogger sets the logger used for block lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(d *Deque) {
		if l != nil {
			d.log = l
		}
	}
}
