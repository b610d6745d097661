// Package kernel implements the raw strided rank-5 array used by every
// forward and backward kernel.
//
// A Tensor is either owned (it allocated its buffer) or a view (it shares
// another tensor's buffer through a reference count). Views carry their own
// shape, strides and offset, so broadcast and permuted layouts are read
// through the same 5-D loop as contiguous ones.
package kernel

import (
	"fmt"

	"github.com/lemur-ml/lemur/internal/parallel"
)

// Tensor is the low-level strided array.
type Tensor struct {
	buf      *buffer // Shared reference-counted buffer
	shape    Shape   // Logical dimensions
	strides  Strides // Element strides per dimension
	offset   int     // Element offset into buf
	source   *Tensor // Non-nil for views
	released bool
}

// Empty allocates a zeroed, contiguous, owned tensor.
func Empty(shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Tensor{
		buf:     newBuffer(shape.NumElements()),
		shape:   shape,
		strides: shape.ComputeStrides(),
	}, nil
}

// MustEmpty is like Empty but panics on an invalid shape.
// Kernels use it for shapes that were already validated.
func MustEmpty(shape Shape) *Tensor {
	k, err := Empty(shape)
	if err != nil {
		panic(err)
	}
	return k
}

// EmptyLike allocates a fresh contiguous tensor with k's shape.
func EmptyLike(k *Tensor) *Tensor {
	return MustEmpty(k.shape)
}

// FromSlice copies values, in row-major order, into a new tensor.
func FromSlice(values []float32, shape Shape) (*Tensor, error) {
	k, err := Empty(shape)
	if err != nil {
		return nil, err
	}
	if len(values) != shape.NumElements() {
		k.Release()
		return nil, fmt.Errorf("%w: %d values for shape %v (%d elements)",
			ErrInvalidShape, len(values), shape, shape.NumElements())
	}
	copy(k.buf.data, values)
	return k, nil
}

// Shape returns the tensor's shape.
func (k *Tensor) Shape() Shape {
	return k.shape
}

// Strides returns the tensor's element strides.
func (k *Tensor) Strides() Strides {
	return k.strides
}

// BaseOffset returns the element offset of index zero.
func (k *Tensor) BaseOffset() int {
	return k.offset
}

// NumElements returns the logical element count.
func (k *Tensor) NumElements() int {
	return k.shape.NumElements()
}

// Capacity returns the length of the backing buffer.
func (k *Tensor) Capacity() int {
	return len(k.buf.data)
}

// IsView reports whether k borrows another tensor's buffer.
func (k *Tensor) IsView() bool {
	return k.source != nil
}

// Source returns the tensor a view was created from, or nil.
func (k *Tensor) Source() *Tensor {
	return k.source
}

// Refs returns the number of live references to k's buffer.
func (k *Tensor) Refs() int {
	return k.buf.refs()
}

// Released reports whether Release was called on k.
func (k *Tensor) Released() bool {
	return k.released
}

// SharesBuffer reports whether k and other read the same storage.
func (k *Tensor) SharesBuffer(other *Tensor) bool {
	return k.buf == other.buf
}

// IsContiguous reports whether every dimension of size > 1 has its
// canonical row-major stride.
func (k *Tensor) IsContiguous() bool {
	canonical := k.shape.ComputeStrides()
	for i := range k.shape {
		if k.shape[i] > 1 && k.strides[i] != canonical[i] {
			return false
		}
	}
	return true
}

func (k *Tensor) checkLive() {
	if k.released || k.buf.data == nil && k.shape.NumElements() > 0 {
		panic(fmt.Errorf("%w: tensor %v", ErrUseAfterFree, k.shape))
	}
}

// Offset computes the physical buffer offset of a logical index.
// Out-of-range indices panic with ErrBoundsViolation.
func (k *Tensor) Offset(idx Index) int {
	k.checkLive()
	if !k.shape.Contains(idx) {
		panic(fmt.Errorf("%w: index %v outside shape %v", ErrBoundsViolation, idx, k.shape))
	}
	off := k.offset
	for i := range idx {
		off += idx[i] * k.strides[i]
	}
	if off < 0 || off >= len(k.buf.data) {
		panic(fmt.Errorf("%w: offset %d outside buffer of %d", ErrBoundsViolation, off, len(k.buf.data)))
	}
	return off
}

// Clamp maps an index of a broadcast-compatible larger shape onto k by
// pinning size-1 dimensions to 0.
func (k *Tensor) Clamp(idx Index) Index {
	for i := range idx {
		if k.shape[i] == 1 {
			idx[i] = 0
		}
	}
	return idx
}

// At returns the element at idx.
func (k *Tensor) At(idx Index) float32 {
	return k.buf.data[k.Offset(idx)]
}

// AtBroadcast reads k as if it were broadcast up to a larger shape.
func (k *Tensor) AtBroadcast(idx Index) float32 {
	return k.buf.data[k.Offset(k.Clamp(idx))]
}

// Set stores v at idx.
func (k *Tensor) Set(idx Index, v float32) {
	k.buf.data[k.Offset(idx)] = v
}

// AddAt adds v to the element at idx.
func (k *Tensor) AddAt(idx Index, v float32) {
	k.buf.data[k.Offset(idx)] += v
}

// Each visits every logical index in row-major order.
func (k *Tensor) Each(fn func(idx Index)) {
	k.checkLive()
	var idx Index
	s := k.shape
	for idx[0] = 0; idx[0] < s[0]; idx[0]++ {
		for idx[1] = 0; idx[1] < s[1]; idx[1]++ {
			for idx[2] = 0; idx[2] < s[2]; idx[2]++ {
				for idx[3] = 0; idx[3] < s[3]; idx[3]++ {
					for idx[4] = 0; idx[4] < s[4]; idx[4]++ {
						fn(idx)
					}
				}
			}
		}
	}
}

// Parallel controls how EachParallel splits work. It is disabled by
// default so kernels run on the calling goroutine; EnableParallel opts in.
var Parallel = parallel.Config{MinChunkSize: parallel.DefaultConfig().MinChunkSize}

// EnableParallel switches EachParallel between the calling goroutine and
// parallel.DefaultConfig.
func EnableParallel(on bool) {
	if on {
		Parallel = parallel.DefaultConfig()
		return
	}
	Parallel.Enabled = false
}

// EachParallel visits every index like Each, split into row-major chunks
// run on separate goroutines. fn must only write the element at its own
// index; order across chunks is unspecified.
func (k *Tensor) EachParallel(fn func(idx Index)) {
	k.checkLive()
	s := k.shape
	parallel.ForRange(s.NumElements(), func(start, end int) {
		idx := s.Unravel(start)
		for flat := start; flat < end; flat++ {
			fn(idx)
			for d := Rank - 1; d >= 0; d-- {
				idx[d]++
				if idx[d] < s[d] {
					break
				}
				idx[d] = 0
			}
		}
	}, Parallel)
}

// Fill sets every logical element to v.
func (k *Tensor) Fill(v float32) {
	k.Each(func(idx Index) {
		k.Set(idx, v)
	})
}

// Values returns a row-major copy of the logical elements.
func (k *Tensor) Values() []float32 {
	out := make([]float32, 0, k.NumElements())
	k.Each(func(idx Index) {
		out = append(out, k.At(idx))
	})
	return out
}

// Contiguous returns a fresh owned copy of k in row-major layout.
func (k *Tensor) Contiguous() *Tensor {
	out := EmptyLike(k)
	k.Each(func(idx Index) {
		out.Set(idx, k.At(idx))
	})
	return out
}

// Alias returns a view sharing k's buffer with identical metadata.
func (k *Tensor) Alias() *Tensor {
	k.checkLive()
	k.buf.addRef()
	return &Tensor{
		buf:     k.buf,
		shape:   k.shape,
		strides: k.strides,
		offset:  k.offset,
		source:  k,
	}
}

// Restride installs new view metadata. It fails if any valid index of the
// new layout would land outside the buffer.
func (k *Tensor) Restride(shape Shape, strides Strides, offset int) error {
	if err := shape.Validate(); err != nil {
		return err
	}
	if shape.NumElements() > 0 {
		lo, hi := offset, offset
		for i := range shape {
			span := (shape[i] - 1) * strides[i]
			if span < 0 {
				lo += span
			} else {
				hi += span
			}
		}
		if lo < 0 || hi >= len(k.buf.data) {
			return fmt.Errorf("%w: layout %v/%v@%d reaches [%d, %d] in buffer of %d",
				ErrBoundsViolation, shape, strides, offset, lo, hi, len(k.buf.data))
		}
	}
	k.shape = shape
	k.strides = strides
	k.offset = offset
	return nil
}

// Release drops k's reference to its buffer. Storage survives while any
// view still holds a reference. Releasing twice is a no-op.
func (k *Tensor) Release() {
	if k.released {
		return
	}
	k.released = true
	k.buf.release()
}
