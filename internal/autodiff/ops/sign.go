package ops

import "github.com/lemur-ml/lemur/internal/kernel"

// SignOp represents the sign function: output ∈ {-1, 0, 1}.
//
// The derivative is zero almost everywhere, so no gradient flows through.
type SignOp struct{}

// Infer returns the input shape.
func (SignOp) Infer(in []*kernel.Tensor) (kernel.Shape, error) {
	return in[0].Shape(), nil
}

// Forward computes sign(x).
func (SignOp) Forward(out *kernel.Tensor, in []*kernel.Tensor) {
	unaryForward(out, in[0], signum)
}

// Backward returns zeros shaped like the input.
func (SignOp) Backward(_ *kernel.Tensor, in []*kernel.Tensor, _ *kernel.Tensor, _ int) *kernel.Tensor {
	return kernel.EmptyLike(in[0])
}

func signum(x float32) float32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
