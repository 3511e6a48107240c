package deque

import "iter"

// IterStart selects the end an Iter starts from.
type IterStart int

const (
	IterFront IterStart = iota
	IterBack
)

// Iter is a cursor over the slots of a Deque. It walks the block chain on
// its own and never moves the deque's front or back. Pushing or popping
// while an Iter is in use leaves the Iter undefined.
//
// Next and Prev return the slot under the cursor and then move it, so the
// first call after Reset yields the first (or last) element.
type Iter struct {
	d        *Deque
	cur      blockID
	pos      int // byte offset in cur, noPos when exhausted
	elemSize int
}

// NewIter returns an Iter positioned at the given end of d.
func NewIter(d *Deque, start IterStart) *Iter {
	it := &Iter{}
	it.Reset(d, start)
	return it
}

// Reset positions the cursor on the first live element from start, skipping
// emptied blocks. On an empty deque the Iter is exhausted immediately.
func (it *Iter) Reset(d *Deque, start IterStart) {
	it.d = d
	it.elemSize = d.elemSize

	if start == IterFront {
		it.cur = d.skipForward(d.front)
		if it.cur == noBlock {
			it.pos = noPos
			return
		}
		it.pos = d.blocks[it.cur].begin
		return
	}

	it.cur = d.skipBackward(d.back)
	if it.cur == noBlock {
		it.pos = noPos
		return
	}
	it.pos = d.blocks[it.cur].end - it.elemSize
}

// Next returns the current slot and advances toward the back.
// It returns nil once the cursor has passed the last element.
func (it *Iter) Next() []byte {
	if it.d == nil || it.pos == noPos {
		return nil
	}

	b := &it.d.blocks[it.cur]
	slot := b.slot(it.pos, it.elemSize)

	next := it.pos + it.elemSize
	if next < b.end {
		it.pos = next
		return slot
	}

	it.cur = it.d.skipForward(b.next)
	if it.cur == noBlock {
		it.pos = noPos
	} else {
		it.pos = it.d.blocks[it.cur].begin
	}
	return slot
}

// Prev returns the current slot and moves toward the front.
// It returns nil once the cursor has passed the first element.
func (it *Iter) Prev() []byte {
	if it.d == nil || it.pos == noPos {
		return nil
	}

	b := &it.d.blocks[it.cur]
	slot := b.slot(it.pos, it.elemSize)

	prev := it.pos - it.elemSize
	if prev >= b.begin {
		it.pos = prev
		return slot
	}

	it.cur = it.d.skipBackward(b.prev)
	if it.cur == noBlock {
		it.pos = noPos
	} else {
		it.pos = it.d.blocks[it.cur].end - it.elemSize
	}
	return slot
}

// All returns the slots from front to back.
func (d *Deque) All() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		it := NewIter(d, IterFront)
		for slot := it.Next(); slot != nil; slot = it.Next() {
			if !yield(slot) {
				return
			}
		}
	}
}

// Backward returns the slots from back to front.
func (d *Deque) Backward() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		it := NewIter(d, IterBack)
		for slot := it.Prev(); slot != nil; slot = it.Prev() {
			if !yield(slot) {
				return
			}
		}
	}
}

// skipForward returns the first active block at or after id.
func (d *Deque) skipForward(id blockID) blockID {
	for id != noBlock && d.blocks[id].state != blockActive {
		id = d.blocks[id].next
	}
	return id
}

// skipBackward returns the first active block at or before id.
func (d *Deque) skipBackward(id blockID) blockID {
	for id != noBlock && d.blocks[id].state != blockActive {
		id = d.blocks[id].prev
	}
	return id
}
