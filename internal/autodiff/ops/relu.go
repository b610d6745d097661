package ops

import "github.com/lemur-ml/lemur/internal/kernel"

// ReLUOp represents a ReLU (Rectified Linear Unit) activation: output = max(0, x).
//
// Backward pass:
//   - d(ReLU(x))/dx = 1 where the forward output is > 0, else 0
type ReLUOp struct{}

// Infer returns the input shape.
func (ReLUOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	return in[0].Shape(), nil
}

// Forward computes max(0, x).
func (ReLUOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	unaryForward(out, in[0], func(x float32) float32 {
		if x > 0 {
			return x
		}
		return 0
	})
}

// Backward masks the output gradient by the positive outputs.
func (ReLUOp) Backward(out *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, _ int) *kernel.Tensor {
	return unaryBackward(out, in[0], seed, func(_, y float32) float32 {
		if y > 0 {
			return 1
		}
		return 0
	})
}
