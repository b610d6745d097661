package ops

import (
	"fmt"

	"github.com/lemur-ml/lemur/internal/kernel"
)

// ExpandOp broadcasts size-1 dimensions to a larger size without copying:
// output = expand(x, shape).
//
// The descriptor lists up to kernel.Rank dims, left-padded with -1. A -1
// keeps the input dimension. Expanded dims get stride 0.
//
// Backward:
//
//	grad_x = sum of grad_y over the expanded dims
type ExpandOp struct{}

// Infer validates that every changed dim was 1 in the input.
func (ExpandOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	x := in[0].Shape()
	var shape kernel.Shape
	dims, err := descriptorDims(in[1], -1)
	if err != nil {
		return shape, err
	}
	for i, d := range dims {
		switch {
		case d == -1:
			shape[i] = x[i]
		case d < 0:
			return shape, fmt.Errorf("%w: dimension %d at %d", ErrInvalidDescriptor, d, i)
		case d == x[i] || x[i] == 1:
			shape[i] = d
		default:
			return shape, fmt.Errorf("%w: cannot expand %v to %v (dimension %d)", ErrShapeMismatch, x, dims, i)
		}
	}
	return shape, nil
}

// Forward sets stride 0 on expanded dims.
func (op ExpandOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	x := in[0]
	shape := mustInfer(op, in)
	strides := x.Strides()
	for i := range shape {
		if x.Shape()[i] != shape[i] {
			strides[i] = 0
		}
	}
	mustRestride(out, shape, strides, x.BaseOffset())
}

// Backward sums the output gradient back down to the input shape.
func (ExpandOp) Backward(_ *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, idx int) *kernel.Tensor {
	if idx != 0 {
		return nil
	}
	return reduceTo(seed.Contiguous(), in[0].Shape())
}
