package kernel

import "errors"

var (
	// ErrInvalidShape is returned for shapes with negative or too many dims.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrBoundsViolation is the panic value (wrapped) raised when an offset
	// falls outside the backing buffer. It always indicates an earlier
	// invariant breach.
	ErrBoundsViolation = errors.New("bounds violation")

	// ErrUseAfterFree is the panic value (wrapped) raised when a released
	// tensor is accessed.
	ErrUseAfterFree = errors.New("use after free")
)
