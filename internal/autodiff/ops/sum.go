package ops

import (
	"fmt"

	"github.com/lemur-ml/lemur/internal/kernel"
)

// SumOp represents a reduction over the axes listed in its descriptor:
// output = sum(x, axes).
//
// The rank is fixed, so reduced axes stay in place with size 1.
//
// Backward:
//
//	grad_x = broadcast(grad_y, x.shape)
//
// The axes descriptor receives no gradient.
type SumOp struct{}

// reducedAxes decodes an axes descriptor. Negative axes count from the end.
func reducedAxes(d *kernel.Tensor) ([kernel.Rank]bool, error) {
	var mask [kernel.Rank]bool
	axes, err := descriptorInts(d)
	if err != nil {
		return mask, err
	}
	for _, a := range axes {
		if a < -kernel.Rank || a >= kernel.Rank {
			return mask, fmt.Errorf("%w: %d (rank %d)", ErrInvalidAxis, a, kernel.Rank)
		}
		if a < 0 {
			a += kernel.Rank
		}
		mask[a] = true
	}
	return mask, nil
}

// Infer returns the input shape with reduced axes set to 1.
func (SumOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	mask, err := reducedAxes(in[1])
	if err != nil {
		return kernel.Shape{}, err
	}
	shape := in[0].Shape()
	for i, r := range mask {
		if r {
			shape[i] = 1
		}
	}
	return shape, nil
}

// Forward accumulates every input element into its reduced slot.
func (SumOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	x := in[0]
	out.Fill(0)
	x.Each(func(idx kernel.Index) {
		out.AddAt(out.Clamp(idx), x.At(idx))
	})
}

// Backward broadcasts the output gradient back to the input shape.
func (SumOp) Backward(_ *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, idx int) *kernel.Tensor {
	if idx != 0 {
		return nil
	}
	grad := kernel.EmptyLike(in[0])
	grad.Each(func(i kernel.Index) {
		grad.Set(i, seed.AtBroadcast(i))
	})
	return grad
}
