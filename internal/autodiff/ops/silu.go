package ops

import (
	"math"

	"github.com/lemur-ml/lemur/internal/kernel"
)

// SiLUOp represents the SiLU (Swish) activation: output = x * sigmoid(x).
//
// Backward is computed directly from x:
//
//	dy/dx = sigmoid(x) * (1 + x * (1 - sigmoid(x)))
type SiLUOp struct{}

func logistic(x float32) float32 {
	return float32(1 / (1 + math.Exp(-float64(x))))
}

// Infer returns the input shape.
func (SiLUOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	return in[0].Shape(), nil
}

// Forward computes x * sigmoid(x).
func (SiLUOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	unaryForward(out, in[0], func(x float32) float32 {
		return x * logistic(x)
	})
}

// Backward computes the SiLU derivative at x.
func (SiLUOp) Backward(out *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, _ int) *kernel.Tensor {
	return unaryBackward(out, in[0], seed, func(x, _ float32) float32 {
		s := logistic(x)
		return s * (1 + x*(1-s))
	})
}
