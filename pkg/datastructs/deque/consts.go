package deque

const (
	// blockHeaderSize is the number of bytes reserved at the start of every
	// block: element capacity (uint32) then element size (uint32).
	blockHeaderSize = 8

	// noPos marks an exhausted iterator cursor.
	noPos = -1

	// maxElementAlign is the strictest alignment Of[T] can guarantee for
	// slots carved from a block.
	maxElementAlign = 8
)
