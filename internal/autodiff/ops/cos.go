package ops

import (
	"math"

	"github.com/lemur-ml/lemur/internal/kernel"
)

// CosOp represents element-wise cosine: output = cos(x).
type CosOp struct{}

// Infer returns the input shape.
func (CosOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	return in[0].Shape(), nil
}

// Forward computes cos(x).
func (CosOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	unaryForward(out, in[0], f32(math.Cos))
}

// Backward computes grad * -sin(x).
func (CosOp) Backward(out *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, _ int) *kernel.Tensor {
	return unaryBackward(out, in[0], seed, func(x, _ float32) float32 {
		return -float32(math.Sin(float64(x)))
	})
}
