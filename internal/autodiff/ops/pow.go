package ops

import (
	"math"

	"github.com/lemur-ml/lemur/internal/kernel"
)

// PowOp represents an element-wise power: output = a ^ e.
//
// Backward pass:
//   - d(a^e)/da = e * a^(e-1)
//   - d(a^e)/de = a^e * ln(a)
type PowOp struct{}

// Infer returns the broadcast shape of base and exponent.
func (PowOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	return inferBroadcast(in)
}

// Forward computes a ^ e.
func (PowOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	binaryForward(out, in[0], in[1], func(x, y float32) float32 {
		return float32(math.Pow(float64(x), float64(y)))
	})
}

// Backward computes the gradient for the base (0) or the exponent (1).
func (PowOp) Backward(out *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, idx int) *kernel.Tensor {
	if idx == 0 {
		return binaryBackward(out, in, seed, idx, func(a, e, _ float32) float32 {
			return e * float32(math.Pow(float64(a), float64(e-1)))
		})
	}
	return binaryBackward(out, in, seed, idx, func(a, _, y float32) float32 {
		return y * float32(math.Log(float64(a)))
	})
}
