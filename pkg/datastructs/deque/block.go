package deque

import "encoding/binary"

// blockID addresses a block record in the deque's slab.
type blockID int32

const noBlock blockID = -1

type blockState uint8

const (
	blockFree   blockState = iota // record is on the slab free list
	blockEmpty                    // allocated, no live elements
	blockActive                   // live elements in [begin, end)
)

// block is one chunk of element slots linked into the deque's chain.
// begin and end are byte offsets into buf and only meaningful while active.
type block struct {
	buf    []byte
	begin  int
	end    int
	stop   int
	next   blockID
	prev   blockID
	state  blockState
	inline bool
}

// initialize lays the block out over buf and leaves it empty and unlinked.
func (b *block) initialize(buf []byte, elemSize int) {
	b.buf = buf
	b.next, b.prev = noBlock, noBlock
	b.begin, b.end = 0, 0
	b.stop = len(buf)
	b.state = blockEmpty

	binary.LittleEndian.PutUint32(buf[0:4], uint32((len(buf)-blockHeaderSize)/elemSize))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(elemSize))
}

// storageStart returns the offset of the first usable slot.
func (b *block) storageStart() int {
	return blockHeaderSize
}

// capacity returns the number of element slots recorded in the header.
func (b *block) capacity() int {
	return int(binary.LittleEndian.Uint32(b.buf[0:4]))
}

// count returns the number of live elements.
func (b *block) count(elemSize int) int {
	if b.state != blockActive {
		return 0
	}
	return (b.end - b.begin) / elemSize
}

func (b *block) slot(off, elemSize int) []byte {
	return b.buf[off : off+elemSize : off+elemSize]
}

// reserveFront carves a slot just before begin.
// An empty block is refilled from stop downward.
func (b *block) reserveFront(elemSize int) (int, bool) {
	if b.state == blockEmpty {
		b.state = blockActive
		b.end = b.stop
		b.begin = b.stop - elemSize
		return b.begin, true
	}

	begin := b.begin - elemSize
	if begin < b.storageStart() {
		return 0, false
	}
	b.begin = begin
	return begin, true
}

// reserveBack carves a slot at end.
// An empty block is refilled from storageStart upward.
func (b *block) reserveBack(elemSize int) (int, bool) {
	if b.state == blockEmpty {
		b.state = blockActive
		b.begin = b.storageStart()
		b.end = b.begin + elemSize
		return b.begin, true
	}

	end := b.end + elemSize
	if end > b.stop {
		return 0, false
	}
	b.end = end
	return end - elemSize, true
}

// shrinkFront drops the first element, marking the block empty when none remain.
func (b *block) shrinkFront(elemSize int) {
	if b.state != blockActive {
		panic("deque: shrink of an empty block")
	}
	b.begin += elemSize
	if b.begin >= b.end {
		b.markEmpty()
	}
}

// shrinkBack drops the last element, marking the block empty when none remain.
func (b *block) shrinkBack(elemSize int) {
	if b.state != blockActive {
		panic("deque: shrink of an empty block")
	}
	b.end -= elemSize
	if b.end <= b.begin {
		b.markEmpty()
	}
}

func (b *block) markEmpty() {
	b.state = blockEmpty
	b.begin, b.end = 0, 0
}
