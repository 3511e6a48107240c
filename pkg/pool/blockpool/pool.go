package blockpool

import (
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/huynhanx03/go-deque/pkg/pool/internal/calibrated"
)

// Pool hands out raw byte blocks from power-of-two size classes.
// It is safe for concurrent use, so several deques may share one Pool.
type Pool struct {
	buckets     *calibrated.Pool[[]byte]
	limit       int64 // max outstanding bytes, 0 = unlimited
	outstanding atomic.Int64
	allocs      atomic.Uint64
	releases    atomic.Uint64
	failures    atomic.Uint64
}

// Stats is a point-in-time snapshot of pool activity.
type Stats struct {
	Allocs      uint64
	Releases    uint64
	Failures    uint64
	Outstanding int64
	Buckets     [calibrated.Steps]calibrated.BucketStats
}

var defaultPool = New()

// Default returns the shared unlimited pool.
func Default() *Pool {
	return defaultPool
}

// New creates an unlimited Pool.
func New() *Pool {
	return &Pool{
		buckets: calibrated.New(
			// newFunc: create []byte of the class size
			func(size int) []byte {
				return make([]byte, size)
			},
			// sizeFunc: class is decided by capacity
			func(b []byte) int {
				return cap(b)
			},
			nil,
		),
	}
}

// WithLimit caps the number of bytes that may be outstanding at once.
// A limit <= 0 removes the cap.
func (p *Pool) WithLimit(limit int64) *Pool {
	if limit < 0 {
		limit = 0
	}
	p.limit = limit
	return p
}

// Limit returns the configured outstanding-bytes cap (0 = unlimited).
func (p *Pool) Limit() int64 {
	return p.limit
}

// Allocate returns a block of exactly size bytes.
// The contents are unspecified; recycled blocks are not zeroed.
func (p *Pool) Allocate(size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "blockpool: allocate %d bytes", size)
	}

	n := int64(size)
	if p.limit > 0 {
		if p.outstanding.Add(n) > p.limit {
			p.outstanding.Add(-n)
			p.failures.Add(1)
			return nil, errors.Wrapf(ErrExhausted, "blockpool: allocate %d bytes (limit %d)", size, p.limit)
		}
	} else {
		p.outstanding.Add(n)
	}

	p.allocs.Add(1)
	b := p.buckets.Get(size)
	return b[:size], nil
}

// Release returns a block obtained from Allocate. b must keep the length
// Allocate returned. Blocks that do not belong to a size class are left to
// the GC.
func (p *Pool) Release(b []byte) {
	if b == nil {
		return
	}
	p.outstanding.Add(-int64(len(b)))
	p.releases.Add(1)
	p.buckets.Put(b[:cap(b)])
}

// Outstanding returns the number of bytes currently allocated and not released.
func (p *Pool) Outstanding() int64 {
	return p.outstanding.Load()
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Allocs:      p.allocs.Load(),
		Releases:    p.releases.Load(),
		Failures:    p.failures.Load(),
		Outstanding: p.outstanding.Load(),
		Buckets:     p.buckets.GetStats(),
	}
}

// BucketSize returns the size of bucket at index i.
func BucketSize(i int) int {
	return calibrated.BucketSize(i)
}
