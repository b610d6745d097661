package ops

import "github.com/lemur-ml/lemur/internal/kernel"

// ReciprocalOp represents output = 1/x.
//
// Backward pass: d(1/x)/dx = -1/x² = -y².
type ReciprocalOp struct{}

// Infer returns the input shape.
func (ReciprocalOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	return in[0].Shape(), nil
}

// Forward computes 1/x.
func (ReciprocalOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	unaryForward(out, in[0], func(x float32) float32 { return 1 / x })
}

// Backward computes -outputGrad * y².
func (ReciprocalOp) Backward(out *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, _ int) *kernel.Tensor {
	return unaryBackward(out, in[0], seed, func(_, y float32) float32 { return -y * y })
}
