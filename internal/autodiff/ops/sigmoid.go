package ops

import "github.com/lemur-ml/lemur/internal/kernel"

// SigmoidOp represents the logistic function: output = 1 / (1 + exp(-x)).
//
// Backward pass: d(σ(x))/dx = σ(x) * (1 - σ(x)).
type SigmoidOp struct{}

// Infer returns the input shape.
func (SigmoidOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	return in[0].Shape(), nil
}

// Forward computes σ(x).
func (SigmoidOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	unaryForward(out, in[0], logistic)
}

// Backward computes outputGrad * σ(x) * (1 - σ(x)).
func (SigmoidOp) Backward(out *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, _ int) *kernel.Tensor {
	return unaryBackward(out, in[0], seed, func(_, y float32) float32 { return y * (1 - y) })
}
