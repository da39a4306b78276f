package dsc

import "errors"

var (
	// ErrInvalidArgument signals malformed input, e.g. a zero-sized allocation request.
	ErrInvalidArgument = errors.New("dsc: invalid argument")
	// ErrInvalidAddress signals an operation on an absent or already destroyed entity.
	ErrInvalidAddress = errors.New("dsc: invalid address")
	// ErrOutOfMemory signals that a backing allocation failed.
	ErrOutOfMemory = errors.New("dsc: out of memory")
	// ErrNotFound signals that a search or removal found no matching element.
	ErrNotFound = errors.New("dsc: not found")
	// ErrDeallocation signals that releasing memory failed. This is different
	// from releasing memory twice, which is reported as ErrInvalidAddress.
	ErrDeallocation = errors.New("dsc: deallocation failed")
)
