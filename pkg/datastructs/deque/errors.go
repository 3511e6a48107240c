package deque

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidElementSize = errors.New("element size must be at least 1")
	ErrInvalidAllocCount  = errors.New("alloc count must be at least 1")
	ErrUnsupportedElement = errors.New("unsupported element type")
	ErrAllocFailed        = errors.New("block allocation failed")

	// ErrEmpty is the panic value of a pop or typed read on an empty deque.
	ErrEmpty = errors.New("deque: pop from empty deque")
)

// AllocError reports a block allocation the Allocator refused.
// It matches ErrAllocFailed and unwraps to the allocator's error.
type AllocError struct {
	Size int
	Err  error
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("deque: allocate %d-byte block: %v", e.Size, e.Err)
}

func (e *AllocError) Unwrap() error {
	return e.Err
}

func (e *AllocError) Is(target error) bool {
	return target == ErrAllocFailed
}
