package ops

import (
	"math"

	"github.com/lemur-ml/lemur/internal/kernel"
)

// SinOp represents element-wise sine: output = sin(x).
type SinOp struct{}

// Infer returns the input shape.
func (SinOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	return in[0].Shape(), nil
}

// Forward computes sin(x).
func (SinOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	unaryForward(out, in[0], f32(math.Sin))
}

// Backward computes grad * cos(x).
func (SinOp) Backward(out *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, _ int) *kernel.Tensor {
	return unaryBackward(out, in[0], seed, func(x, _ float32) float32 {
		return float32(math.Cos(float64(x)))
	})
}
