package ops

import (
	"fmt"

	"github.com/lemur-ml/lemur/internal/kernel"
)

// PermuteOp reorders dimensions without copying: output = permute(x, perm).
//
// The descriptor is a permutation of 0..n-1 (n <= kernel.Rank) applied to
// the trailing n dims; leading dims stay in place.
//
// Backward:
//
//	∂L/∂input = permute(∂L/∂output, inverse(perm))
type PermuteOp struct{}

// fullPermutation expands a trailing permutation descriptor to all dims.
func fullPermutation(d *kernel.Tensor) ([kernel.Rank]int, error) {
	var p [kernel.Rank]int
	vals, err := descriptorInts(d)
	if err != nil {
		return p, err
	}
	n := len(vals)
	if n > kernel.Rank {
		return p, fmt.Errorf("%w: %d axes exceeds rank %d", ErrInvalidAxis, n, kernel.Rank)
	}
	lead := kernel.Rank - n
	var seen [kernel.Rank]bool
	for i := range p {
		if i < lead {
			p[i] = i
			continue
		}
		a := vals[i-lead]
		if a < 0 || a >= n || seen[a] {
			return p, fmt.Errorf("%w: %v is not a permutation of 0..%d", ErrInvalidAxis, vals, n-1)
		}
		seen[a] = true
		p[i] = lead + a
	}
	return p, nil
}

// Infer returns the permuted shape.
func (PermuteOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	var shape kernel.Shape
	p, err := fullPermutation(in[1])
	if err != nil {
		return shape, err
	}
	x := in[0].Shape()
	for i := range shape {
		shape[i] = x[p[i]]
	}
	return shape, nil
}

// Forward permutes the strides of the input.
func (PermuteOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	x := in[0]
	p, err := fullPermutation(in[1])
	if err != nil {
		panic(fmt.Sprintf("permute: descriptor changed after validation: %v", err))
	}
	var shape kernel.Shape
	var strides kernel.Strides
	for i := range p {
		shape[i] = x.Shape()[p[i]]
		strides[i] = x.Strides()[p[i]]
	}
	mustRestride(out, shape, strides, x.BaseOffset())
}

// Backward scatters the output gradient through the inverse permutation.
func (PermuteOp) Backward(_ *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, idx int) *kernel.Tensor {
	if idx != 0 {
		return nil
	}
	p, err := fullPermutation(in[1])
	if err != nil {
		panic(fmt.Sprintf("permute: descriptor changed after validation: %v", err))
	}
	grad := kernel.EmptyLike(in[0])
	seed.Each(func(o kernel.Index) {
		var i kernel.Index
		for d := range p {
			i[p[d]] = o[d]
		}
		grad.Set(i, seed.At(o))
	})
	return grad
}
