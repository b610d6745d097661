package ops

import (
	"math"

	"github.com/lemur-ml/lemur/internal/kernel"
)

// SqrtOp represents the square root: output = √x.
//
// Backward pass: d(√x)/dx = 1 / (2√x), computed from the forward output.
type SqrtOp struct{}

// Infer returns the input shape.
func (SqrtOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	return in[0].Shape(), nil
}

// Forward computes √x.
func (SqrtOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	unaryForward(out, in[0], f32(math.Sqrt))
}

// Backward computes outputGrad / (2√x).
func (SqrtOp) Backward(out *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, _ int) *kernel.Tensor {
	return unaryBackward(out, in[0], seed, func(_, y float32) float32 { return 0.5 / y })
}
