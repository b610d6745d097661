package ops

import (
	"fmt"
	"math"

	"github.com/lemur-ml/lemur/internal/kernel"
)

// inferBroadcast returns the broadcast shape of two elementwise operands.
func inferBroadcast(in []*kernel.Tensor) (kernel.Shape, error) {
	out, err := kernel.BroadcastShapes(in[0].Shape(), in[1].Shape())
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	return out, nil
}

// binaryForward evaluates f elementwise, reading each operand through its
// own strides and broadcasting size-1 dims.
func binaryForward(out, a, b *kernel.Tensor, f func(x, y float32) float32) {
	out.EachParallel(func(idx kernel.Index) {
		out.Set(idx, f(a.AtBroadcast(idx), b.AtBroadcast(idx)))
	})
}

// binaryBackward computes seed * partial(a, b, out) over the output shape
// and sums it back down to the shape of input idx.
func binaryBackward(out *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, idx int,
	partial func(x, y, z float32) float32,
) *kernel.Tensor {
	a, b := in[0], in[1]
	grad := kernel.EmptyLike(out)
	out.EachParallel(func(i kernel.Index) {
		grad.Set(i, seed.At(i)*partial(a.AtBroadcast(i), b.AtBroadcast(i), out.At(i)))
	})
	return reduceTo(grad, in[idx].Shape())
}

// unaryForward evaluates f elementwise.
func unaryForward(out, a *kernel.Tensor, f func(x float32) float32) {
	out.EachParallel(func(idx kernel.Index) {
		out.Set(idx, f(a.At(idx)))
	})
}

// unaryBackward computes seed * deriv(x, y) where y is the forward output.
func unaryBackward(out, a, seed *kernel.Tensor, deriv func(x, y float32) float32) *kernel.Tensor {
	grad := kernel.EmptyLike(a)
	a.EachParallel(func(i kernel.Index) {
		grad.Set(i, seed.At(i)*deriv(a.At(i), out.At(i)))
	})
	return grad
}

// reduceTo sums grad over the dims where target is 1 but grad is not.
// grad must be a fresh tensor; it is released if a new one is returned.
//
//	Forward: a[3,1] + b[3,4] -> c[3,4]  (a was broadcast along dim 4)
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 4)
func reduceTo(grad *kernel.Tensor, target kernel.Shape) *kernel.Tensor {
	if grad.Shape() == target {
		return grad
	}
	res := kernel.MustEmpty(target)
	grad.Each(func(i kernel.Index) {
		res.AddAt(res.Clamp(i), grad.At(i))
	})
	grad.Release()
	return res
}

// descriptorInts reads a descriptor operand as integers.
func descriptorInts(d *kernel.Tensor) ([]int, error) {
	vals := d.Values()
	out := make([]int, len(vals))
	for i, v := range vals {
		if math.IsNaN(float64(v)) || v != float32(math.Trunc(float64(v))) {
			return nil, fmt.Errorf("%w: non-integer value %v at %d", ErrInvalidDescriptor, v, i)
		}
		out[i] = int(v)
	}
	return out, nil
}

// descriptorDims reads a shape descriptor of at most kernel.Rank values,
// left-padded with pad.
func descriptorDims(d *kernel.Tensor, pad int) ([kernel.Rank]int, error) {
	var dims [kernel.Rank]int
	vals, err := descriptorInts(d)
	if err != nil {
		return dims, err
	}
	if len(vals) > kernel.Rank {
		return dims, fmt.Errorf("%w: %d dims exceeds rank %d", ErrInvalidDescriptor, len(vals), kernel.Rank)
	}
	off := kernel.Rank - len(vals)
	for i := range dims {
		if i < off {
			dims[i] = pad
		} else {
			dims[i] = vals[i-off]
		}
	}
	return dims, nil
}

// mustInfer re-derives an already validated output shape.
func mustInfer(op Op, in []*kernel.Tensor) kernel.Shape {
	shape, err := op.Infer(in)
	if err != nil {
		panic(fmt.Sprintf("ops: operands changed after validation: %v", err))
	}
	return shape
}

// mustRestride installs view metadata that Infer already proved in bounds.
func mustRestride(out *kernel.Tensor, shape kernel.Shape, strides kernel.Strides, offset int) {
	if err := out.Restride(shape, strides, offset); err != nil {
		panic(err)
	}
}

func f32(f func(float64) float64) func(x float32) float32 {
	return func(x float32) float32 {
		return float32(f(float64(x)))
	}
}
