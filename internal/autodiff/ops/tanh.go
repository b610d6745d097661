package ops

import (
	"math"

	"github.com/lemur-ml/lemur/internal/kernel"
)

// TanhOp represents the hyperbolic tangent activation: output = tanh(x).
//
// Backward reuses the forward output:
//
//	d(tanh(x))/dx = 1 - tanh²(x)
type TanhOp struct{}

// Infer returns the input shape.
func (TanhOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	return in[0].Shape(), nil
}

// Forward computes tanh(x).
func (TanhOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	unaryForward(out, in[0], f32(math.Tanh))
}

// Backward computes grad * (1 - y²).
func (TanhOp) Backward(out *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, _ int) *kernel.Tensor {
	return unaryBackward(out, in[0], seed, func(_, y float32) float32 {
		return 1 - y*y
	})
}
