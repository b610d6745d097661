package ops

import "errors"

// Dispatch-time validation errors.
var (
	ErrShapeMismatch     = errors.New("shape mismatch")
	ErrInvalidAxis       = errors.New("invalid axis")
	ErrInvalidDescriptor = errors.New("invalid descriptor")
	ErrNotContiguous     = errors.New("tensor is not contiguous")
	ErrUnknownOp         = errors.New("unknown op id")
)
