package ops

import "github.com/lemur-ml/lemur/internal/kernel"

// NegOp represents negation: output = -x.
type NegOp struct{}

// Infer returns the input shape.
func (NegOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	return in[0].Shape(), nil
}

// Forward computes -x.
func (NegOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	unaryForward(out, in[0], func(x float32) float32 { return -x })
}

// Backward computes -outputGrad.
func (NegOp) Backward(out *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, _ int) *kernel.Tensor {
	return unaryBackward(out, in[0], seed, func(_, _ float32) float32 { return -1 })
}
