package ops

import (
	"fmt"

	"github.com/lemur-ml/lemur/internal/kernel"
)

// ViewOp reinterprets a contiguous tensor under a new shape without
// copying: output = view(x, shape).
//
// The descriptor lists up to kernel.Rank dims, left-padded with 1s. One
// entry may be -1 and is inferred from the element count.
//
// Backward:
//
//	grad_x = reshape(grad_y, x.shape)
type ViewOp struct{}

// Infer validates the target shape against the input's element count.
func (ViewOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	x := in[0]
	var shape kernel.Shape
	if !x.IsContiguous() {
		return shape, fmt.Errorf("%w: view of %v with strides %v", ErrNotContiguous, x.Shape(), x.Strides())
	}
	dims, err := descriptorDims(in[1], 1)
	if err != nil {
		return shape, err
	}

	inferred := -1
	known := 1
	for i, d := range dims {
		switch {
		case d == -1 && inferred < 0:
			inferred = i
		case d < 0:
			return shape, fmt.Errorf("%w: dimension %d at %d", ErrInvalidDescriptor, d, i)
		default:
			known *= d
		}
		shape[i] = d
	}

	total := x.NumElements()
	if inferred >= 0 {
		if known == 0 || total%known != 0 {
			return shape, fmt.Errorf("%w: cannot infer dimension of %v for %d elements", ErrShapeMismatch, dims, total)
		}
		shape[inferred] = total / known
	}
	if shape.NumElements() != total {
		return shape, fmt.Errorf("%w: view %v of %v changes element count", ErrShapeMismatch, shape, x.Shape())
	}
	return shape, nil
}

// Forward lays out out as a row-major view of the input's storage.
func (op ViewOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	shape := mustInfer(op, in)
	mustRestride(out, shape, shape.ComputeStrides(), in[0].BaseOffset())
}

// Backward reshapes the output gradient to the input shape.
func (ViewOp) Backward(_ *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, idx int) *kernel.Tensor {
	if idx != 0 {
		return nil
	}
	grad, err := kernel.FromSlice(seed.Values(), in[0].Shape())
	if err != nil {
		panic(fmt.Sprintf("view: gradient reshape: %v", err))
	}
	return grad
}
