// Package deque implements a double-ended queue of fixed-size elements
// stored in a doubly linked chain of fixed-capacity blocks.
//
// # Overview
//
// Push and pop at either end cost amortized O(1) and never allocate per
// element: a block of AllocCount slots is taken from an Allocator only when
// the block at that end is full, and released again once the deque has
// popped past it.
//
// The Deque itself is untyped. PushFront and PushBack return a raw slot of
// ElementSize bytes for the caller to fill; Front, Back and Iter hand slots
// back. Of[T] layers a typed API on top for pointer-free element types.
//
// # Basic Usage
//
//	d, err := deque.New(8, 64)
//	if err != nil {
//		return err
//	}
//	slot, err := d.PushBack()
//	if err != nil {
//		return err
//	}
//	binary.LittleEndian.PutUint64(slot, 42)
//
//	for slot := range d.All() {
//		fmt.Println(binary.LittleEndian.Uint64(slot))
//	}
//	d.PopFront()
//
// # Inline Storage
//
// NewWithStorage uses a caller-owned buffer as the first block. That buffer
// is never given to the Allocator; once the deque pops past it, it is kept
// aside and reused for the next block the deque needs.
//
// # Block Release
//
// A block emptied by a pop stays in the chain, marked empty, and is
// released by the next pop from the same end. A deque drained to zero
// therefore keeps one empty block ready for the next push.
//
// # Thread Safety
//
// Deque, Iter and Of are not safe for concurrent use. An Iter must not be
// used across a push or pop on its deque.
package deque
