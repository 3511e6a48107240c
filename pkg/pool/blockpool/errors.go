package blockpool

import "errors"

var (
	ErrExhausted   = errors.New("block pool exhausted")
	ErrInvalidSize = errors.New("invalid block size")
)
