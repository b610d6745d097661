package ops

import "github.com/lemur-ml/lemur/internal/kernel"

// AddOp represents an element-wise addition: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
//
// Both gradients are summed back over broadcast dimensions.
type AddOp struct{}

// Infer returns the broadcast shape of a and b.
func (AddOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	return inferBroadcast(in)
}

// Forward computes a + b.
func (AddOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	binaryForward(out, in[0], in[1], func(x, y float32) float32 { return x + y })
}

// Backward passes the seed through to either input.
func (AddOp) Backward(out *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, idx int) *kernel.Tensor {
	return binaryBackward(out, in, seed, idx, func(_, _, _ float32) float32 { return 1 })
}
