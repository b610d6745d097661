package ops

import (
	"math"

	"github.com/lemur-ml/lemur/internal/kernel"
)

// LogOp represents the natural logarithm: output = ln(x).
//
// Backward pass: d(ln(x))/dx = 1/x.
type LogOp struct{}

// Infer returns the input shape.
func (LogOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	return in[0].Shape(), nil
}

// Forward computes ln(x).
func (LogOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	unaryForward(out, in[0], f32(math.Log))
}

// Backward computes outputGrad / x.
func (LogOp) Backward(out *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, _ int) *kernel.Tensor {
	return unaryBackward(out, in[0], seed, func(x, _ float32) float32 { return 1 / x })
}
