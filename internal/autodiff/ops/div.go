package ops

import "github.com/lemur-ml/lemur/internal/kernel"

// DivOp represents an element-wise division: output = a / b.
//
// Backward pass:
//   - d(a/b)/da = 1/b, so grad_a = outputGrad / b
//   - d(a/b)/db = -a/b², so grad_b = -outputGrad * a / b²
type DivOp struct{}

// Infer returns the broadcast shape of a and b.
func (DivOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	return inferBroadcast(in)
}

// Forward computes a / b.
func (DivOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	binaryForward(out, in[0], in[1], func(x, y float32) float32 { return x / y })
}

// Backward computes the gradient for input idx.
func (DivOp) Backward(out *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, idx int) *kernel.Tensor {
	if idx == 0 {
		return binaryBackward(out, in, seed, idx, func(_, b, _ float32) float32 { return 1 / b })
	}
	return binaryBackward(out, in, seed, idx, func(a, b, _ float32) float32 { return -a / (b * b) })
}
