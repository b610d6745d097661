package ops

import (
	"math"

	"github.com/lemur-ml/lemur/internal/kernel"
)

// AbsOp represents the absolute value: output = |x|.
//
// Backward pass: d|x|/dx = sign(x), with 0 at x = 0.
type AbsOp struct{}

// Infer returns the input shape.
func (AbsOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	return in[0].Shape(), nil
}

// Forward computes |x|.
func (AbsOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	unaryForward(out, in[0], f32(math.Abs))
}

// Backward computes outputGrad * sign(x).
func (AbsOp) Backward(out *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, _ int) *kernel.Tensor {
	return unaryBackward(out, in[0], seed, func(x, _ float32) float32 { return signum(x) })
}
