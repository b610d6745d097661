package ops

import "github.com/lemur-ml/lemur/internal/kernel"

// SubOp represents an element-wise subtraction: output = a - b.
//
// Backward pass:
//   - d(a-b)/da = 1, so grad_a = outputGrad
//   - d(a-b)/db = -1, so grad_b = -outputGrad
type SubOp struct{}

// Infer returns the broadcast shape of a and b.
func (SubOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	return inferBroadcast(in)
}

// Forward computes a - b.
func (SubOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	binaryForward(out, in[0], in[1], func(x, y float32) float32 { return x - y })
}

// Backward computes the gradient for input idx.
func (SubOp) Backward(out *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, idx int) *kernel.Tensor {
	sign := float32(1)
	if idx == 1 {
		sign = -1
	}
	return binaryBackward(out, in, seed, idx, func(_, _, _ float32) float32 { return sign })
}
