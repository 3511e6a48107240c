package deque

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-deque/pkg/pool/blockpool"
	"github.com/huynhanx03/go-deque/pkg/settings"
)

// Deque is a double-ended queue of fixed-size raw element slots stored in a
// doubly linked chain of blocks. It is NOT thread-safe.
//
// front and back name the blocks holding the first and last live element.
// A block emptied by a pop stays in the chain until the next pop from the
// same end releases it.
type Deque struct {
	elemSize   int
	allocCount int
	count      int
	front      blockID
	back       blockID
	blocks     []block   // slab of block records, addressed by blockID
	freeIDs    []blockID // released slab records
	inline     blockID   // block over caller storage, noBlock if none
	parked     bool      // inline block unlinked and waiting for reuse
	alloc      Allocator
	log        *zap.Logger
}

// New creates an empty Deque of elemSize-byte elements whose blocks hold
// allocCount elements each.
func New(elemSize, allocCount int, opts ...Option) (*Deque, error) {
	if elemSize < 1 {
		return nil, errors.Wrapf(ErrInvalidElementSize, "deque: element size %d", elemSize)
	}
	if allocCount < 1 {
		return nil, errors.Wrapf(ErrInvalidAllocCount, "deque: alloc count %d", allocCount)
	}

	d := &Deque{
		elemSize:   elemSize,
		allocCount: allocCount,
		front:      noBlock,
		back:       noBlock,
		inline:     noBlock,
		alloc:      blockpool.Default(),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// NewWithStorage is like New but uses storage as the first block when it can
// hold the block header and at least one element. The deque never hands
// storage to its Allocator; the caller keeps ownership and must keep it
// alive for the deque's lifetime.
func NewWithStorage(elemSize int, storage []byte, allocCount int, opts ...Option) (*Deque, error) {
	d, err := New(elemSize, allocCount, opts...)
	if err != nil {
		return nil, err
	}
	if len(storage) < blockHeaderSize+elemSize {
		return d, nil
	}

	id := d.newRecord()
	d.blocks[id].initialize(storage, elemSize)
	d.blocks[id].inline = true
	d.inline = id
	d.front, d.back = id, id
	return d, nil
}

// NewFromConfig validates cfg and builds a Deque from it. A non-zero
// MaxBlockBytes gives the deque its own pool capped at that many bytes,
// unless opts supply an allocator.
func NewFromConfig(cfg settings.Deque, opts ...Option) (*Deque, error) {
	if err := settings.Validate(cfg); err != nil {
		return nil, err
	}
	if cfg.MaxBlockBytes > 0 {
		opts = append([]Option{WithAllocator(blockpool.New().WithLimit(cfg.MaxBlockBytes))}, opts...)
	}
	return New(cfg.ElementSize, cfg.AllocCount, opts...)
}

// StorageSize returns the inline storage size NewWithStorage needs to hold n
// elements of elemSize bytes.
func StorageSize(elemSize, n int) int {
	return blockHeaderSize + elemSize*n
}

// ElementSize returns the fixed size of every slot.
func (d *Deque) ElementSize() int {
	return d.elemSize
}

// AllocCount returns the element capacity of newly allocated blocks.
func (d *Deque) AllocCount() int {
	return d.allocCount
}

// Len returns the number of live elements.
func (d *Deque) Len() int {
	return d.count
}

// IsEmpty reports whether the deque holds no elements.
func (d *Deque) IsEmpty() bool {
	return d.count == 0
}

// Front returns the slot of the first element.
// ok is false iff the deque is empty.
func (d *Deque) Front() (slot []byte, ok bool) {
	id := d.front
	if id == noBlock {
		return nil, false
	}
	if d.blocks[id].state == blockEmpty {
		id = d.blocks[id].next
		if id == noBlock || d.blocks[id].state == blockEmpty {
			return nil, false
		}
	}
	b := &d.blocks[id]
	return b.slot(b.begin, d.elemSize), true
}

// Back returns the slot of the last element.
// ok is false iff the deque is empty.
func (d *Deque) Back() (slot []byte, ok bool) {
	id := d.back
	if id == noBlock {
		return nil, false
	}
	if d.blocks[id].state == blockEmpty {
		id = d.blocks[id].prev
		if id == noBlock || d.blocks[id].state == blockEmpty {
			return nil, false
		}
	}
	b := &d.blocks[id]
	return b.slot(b.end-d.elemSize, d.elemSize), true
}

// PushFront reserves a slot before the first element and returns it.
// The slot contents are unspecified; the caller writes the element.
// On allocation failure the deque is left unchanged.
func (d *Deque) PushFront() ([]byte, error) {
	if d.front == noBlock {
		id, err := d.allocateBlock()
		if err != nil {
			return nil, err
		}
		d.front, d.back = id, id
	}

	if off, ok := d.blocks[d.front].reserveFront(d.elemSize); ok {
		d.count++
		return d.blocks[d.front].slot(off, d.elemSize), nil
	}

	id, err := d.allocateBlock()
	if err != nil {
		return nil, err
	}
	d.blocks[id].next = d.front
	d.blocks[d.front].prev = id
	d.front = id

	// a fresh block always has room for one element
	off, _ := d.blocks[id].reserveFront(d.elemSize)
	d.count++
	return d.blocks[id].slot(off, d.elemSize), nil
}

// PushBack reserves a slot after the last element and returns it.
// The slot contents are unspecified; the caller writes the element.
// On allocation failure the deque is left unchanged.
func (d *Deque) PushBack() ([]byte, error) {
	if d.back == noBlock {
		id, err := d.allocateBlock()
		if err != nil {
			return nil, err
		}
		d.front, d.back = id, id
	}

	if off, ok := d.blocks[d.back].reserveBack(d.elemSize); ok {
		d.count++
		return d.blocks[d.back].slot(off, d.elemSize), nil
	}

	id, err := d.allocateBlock()
	if err != nil {
		return nil, err
	}
	d.blocks[id].prev = d.back
	d.blocks[d.back].next = id
	d.back = id

	off, _ := d.blocks[id].reserveBack(d.elemSize)
	d.count++
	return d.blocks[id].slot(off, d.elemSize), nil
}

// PopFront removes the first element. It panics with ErrEmpty if the deque
// is empty. The caller must be done with the element's slot before calling.
func (d *Deque) PopFront() {
	if d.count == 0 {
		panic(ErrEmpty)
	}

	first := d.front
	if d.blocks[first].state == blockEmpty {
		next := d.blocks[first].next
		if next == noBlock {
			panic("deque: no block after empty front")
		}
		d.blocks[next].prev = noBlock
		d.releaseBlock(first)
		d.front = next
		first = next
	}

	d.blocks[first].shrinkFront(d.elemSize)
	d.count--
}

// PopBack removes the last element. It panics with ErrEmpty if the deque
// is empty. The caller must be done with the element's slot before calling.
func (d *Deque) PopBack() {
	if d.count == 0 {
		panic(ErrEmpty)
	}

	last := d.back
	if d.blocks[last].state == blockEmpty {
		prev := d.blocks[last].prev
		if prev == noBlock {
			panic("deque: no block before empty back")
		}
		d.blocks[prev].next = noBlock
		d.releaseBlock(last)
		d.back = prev
		last = prev
	}

	d.blocks[last].shrinkBack(d.elemSize)
	d.count--
}

// NumBlocksAllocated returns the number of blocks in the chain, including
// emptied blocks not yet released.
func (d *Deque) NumBlocksAllocated() int {
	n := 0
	for id := d.front; id != noBlock; id = d.blocks[id].next {
		n++
	}
	return n
}

// Capacity returns the total element capacity of the blocks in the chain.
func (d *Deque) Capacity() int {
	n := 0
	for id := d.front; id != noBlock; id = d.blocks[id].next {
		n += d.blocks[id].capacity()
	}
	return n
}

// Reset drops every element and returns all dynamically allocated blocks to
// the allocator. Inline storage stays as the sole, empty block.
func (d *Deque) Reset() {
	released := 0
	for id := d.front; id != noBlock; {
		b := &d.blocks[id]
		next := b.next
		if !b.inline {
			d.alloc.Release(b.buf)
			released++
		}
		id = next
	}

	var storage []byte
	if d.inline != noBlock {
		storage = d.blocks[d.inline].buf
	}

	clear(d.blocks)
	d.blocks = d.blocks[:0]
	d.freeIDs = d.freeIDs[:0]
	d.count = 0
	d.front, d.back = noBlock, noBlock
	d.inline = noBlock
	d.parked = false

	if storage != nil {
		id := d.newRecord()
		d.blocks[id].initialize(storage, d.elemSize)
		d.blocks[id].inline = true
		d.inline = id
		d.front, d.back = id, id
	}

	d.log.Debug("deque reset", zap.Int("released_blocks", released))
}

// newRecord returns an unused slab record, recycling released ones first.
func (d *Deque) newRecord() blockID {
	if n := len(d.freeIDs); n > 0 {
		id := d.freeIDs[n-1]
		d.freeIDs = d.freeIDs[:n-1]
		return id
	}
	d.blocks = append(d.blocks, block{next: noBlock, prev: noBlock})
	return blockID(len(d.blocks) - 1)
}

// allocateBlock returns an empty, unlinked block sized for allocCount
// elements. A parked inline block is reused before the allocator is asked.
func (d *Deque) allocateBlock() (blockID, error) {
	if d.parked {
		d.parked = false
		b := &d.blocks[d.inline]
		b.initialize(b.buf, d.elemSize)
		d.log.Debug("deque inline block reused", zap.Int32("block", int32(d.inline)))
		return d.inline, nil
	}

	size := blockHeaderSize + d.allocCount*d.elemSize
	buf, err := d.alloc.Allocate(size)
	if err == nil && len(buf) != size {
		d.alloc.Release(buf)
		err = errors.Errorf("allocator returned %d bytes", len(buf))
	}
	if err != nil {
		d.log.Warn("deque block allocation failed", zap.Int("bytes", size), zap.Error(err))
		return noBlock, &AllocError{Size: size, Err: err}
	}

	id := d.newRecord()
	d.blocks[id].initialize(buf, d.elemSize)
	d.log.Debug("deque block allocated", zap.Int32("block", int32(id)), zap.Int("bytes", size))
	return id, nil
}

// releaseBlock frees an unlinked block. The inline block is parked instead.
func (d *Deque) releaseBlock(id blockID) {
	b := &d.blocks[id]
	if b.inline {
		b.next, b.prev = noBlock, noBlock
		b.markEmpty()
		d.parked = true
		d.log.Debug("deque inline block parked", zap.Int32("block", int32(id)))
		return
	}

	d.alloc.Release(b.buf)
	*b = block{next: noBlock, prev: noBlock, state: blockFree}
	d.freeIDs = append(d.freeIDs, id)
	d.log.Debug("deque block released", zap.Int32("block", int32(id)))
}
