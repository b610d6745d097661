package ops

import (
	"math"

	"github.com/lemur-ml/lemur/internal/kernel"
)

// ExpOp represents the exponential function: output = exp(x).
//
// Backward pass: d(exp(x))/dx = exp(x), so the forward output is reused.
type ExpOp struct{}

// Infer returns the input shape.
func (ExpOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	return in[0].Shape(), nil
}

// Forward computes exp(x).
func (ExpOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	unaryForward(out, in[0], f32(math.Exp))
}

// Backward computes outputGrad * exp(x).
func (ExpOp) Backward(out *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, _ int) *kernel.Tensor {
	return unaryBackward(out, in[0], seed, func(_, y float32) float32 { return y })
}
