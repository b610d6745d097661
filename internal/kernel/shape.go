package kernel

import "fmt"

// Rank is the fixed number of dimensions of every kernel tensor.
const Rank = 5

// Shape represents the dimensions of a tensor. Unused leading dims are 1.
type Shape [Rank]int

// Strides holds per-dimension element strides.
type Strides [Rank]int

// Index is a logical multi-index into a tensor.
type Index [Rank]int

// NewShape builds a Shape from up to Rank dims, left-padding with 1s.
//
// Example:
//
//	kernel.NewShape(2, 3) // [1 1 1 2 3]
func NewShape(dims ...int) (Shape, error) {
	var s Shape
	if len(dims) > Rank {
		return s, fmt.Errorf("%w: %d dims exceeds rank %d", ErrInvalidShape, len(dims), Rank)
	}
	for i := range s {
		s[i] = 1
	}
	pad := Rank - len(dims)
	for i, d := range dims {
		if d < 0 {
			return s, fmt.Errorf("%w: negative dimension at index %d: %d", ErrInvalidShape, i, d)
		}
		s[pad+i] = d
	}
	return s, nil
}

// MustShape is like NewShape but panics on error.
func MustShape(dims ...int) Shape {
	s, err := NewShape(dims...)
	if err != nil {
		panic(err)
	}
	return s
}

// NumElements returns the total number of elements.
func (s Shape) NumElements() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Validate checks that no dimension is negative.
func (s Shape) Validate() error {
	for i, d := range s {
		if d < 0 {
			return fmt.Errorf("%w: negative dimension at index %d: %d", ErrInvalidShape, i, d)
		}
	}
	return nil
}

// ComputeStrides calculates canonical row-major strides for the shape.
// stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() Strides {
	var st Strides
	acc := 1
	for i := Rank - 1; i >= 0; i-- {
		st[i] = acc
		acc *= s[i]
	}
	return st
}

// Unravel converts a row-major flat position into an index.
func (s Shape) Unravel(flat int) Index {
	var idx Index
	for i := Rank - 1; i >= 0; i-- {
		idx[i] = flat % s[i]
		flat /= s[i]
	}
	return idx
}

// Contains reports whether idx lies inside the shape.
func (s Shape) Contains(idx Index) bool {
	for i := range s {
		if idx[i] < 0 || idx[i] >= s[i] {
			return false
		}
	}
	return true
}

// String returns the shape as a bracketed list.
func (s Shape) String() string {
	return fmt.Sprint([Rank]int(s))
}

// BroadcastShapes implements NumPy-style broadcasting over the fixed rank.
//
// Dimensions are compatible if they are equal or one of them is 1.
//
//	[1 1 1 3 1] + [1 1 1 3 5] -> [1 1 1 3 5]
//	[1 1 1 3 4] + [1 1 1 3 5] -> error
func BroadcastShapes(a, b Shape) (Shape, error) {
	var out Shape
	for i := range out {
		switch {
		case a[i] == b[i]:
			out[i] = a[i]
		case a[i] == 1:
			out[i] = b[i]
		case b[i] == 1:
			out[i] = a[i]
		default:
			return out, fmt.Errorf("shapes not compatible for broadcasting: %v vs %v (dimension %d: %d vs %d)",
				a, b, i, a[i], b[i])
		}
	}
	return out, nil
}
