package ops

import "github.com/lemur-ml/lemur/internal/kernel"

// MulOp represents an element-wise multiplication: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type MulOp struct{}

// Infer returns the broadcast shape of a and b.
func (MulOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	return inferBroadcast(in)
}

// Forward computes a * b.
func (MulOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	binaryForward(out, in[0], in[1], func(x, y float32) float32 { return x * y })
}

// Backward computes the gradient for input idx.
func (MulOp) Backward(out *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, idx int) *kernel.Tensor {
	if idx == 0 {
		return binaryBackward(out, in, seed, idx, func(_, b, _ float32) float32 { return b })
	}
	return binaryBackward(out, in, seed, idx, func(a, _, _ float32) float32 { return a })
}
