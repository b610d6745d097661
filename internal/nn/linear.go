package nn

import (
	"fmt"

	"github.com/lemur-ml/lemur/internal/autodiff"
	"github.com/lemur-ml/lemur/internal/autodiff/ops"
	"github.com/lemur-ml/lemur/internal/kernel"
)

// Linear implements a fully connected layer: y = x @ W.T + b
//   - x has shape [batch, in]
//   - W has shape [out, in]
//   - b has shape [1, out]
//
// There is no matmul op, so the product is computed as a broadcast
// multiply followed by a sum over the input features:
//
//	[batch, 1, in] * [1, out, in] -> [batch, out, in] -> sum(4) -> [batch, out, 1]
//
// Weights use Xavier initialization; biases start at zero.
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter
	bias        *Parameter
}

// NewLinear creates a Linear layer whose parameters live in g.
func NewLinear(g *autodiff.Graph, inFeatures, outFeatures int) (*Linear, error) {
	if inFeatures <= 0 || outFeatures <= 0 {
		return nil, fmt.Errorf("linear: %w: features %d -> %d", kernel.ErrInvalidShape, inFeatures, outFeatures)
	}
	w, err := Xavier(g, inFeatures, outFeatures, kernel.MustShape(1, outFeatures, inFeatures))
	if err != nil {
		return nil, fmt.Errorf("linear weight: %w", err)
	}
	b, err := Zeros(g, kernel.MustShape(1, outFeatures))
	if err != nil {
		return nil, fmt.Errorf("linear bias: %w", err)
	}
	return &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter("weight", w),
		bias:        NewParameter("bias", b),
	}, nil
}

// Forward maps [batch, in] to [batch, out].
func (l *Linear) Forward(input *autodiff.Tensor) (*autodiff.Tensor, error) {
	if input == nil {
		return nil, fmt.Errorf("linear: %w", autodiff.ErrNilTensor)
	}
	shape := input.Shape()
	if shape[0] != 1 || shape[1] != 1 || shape[2] != 1 || shape[4] != l.inFeatures {
		return nil, fmt.Errorf("linear: %w: input shape %v, want [batch %d]",
			ops.ErrShapeMismatch, shape, l.inFeatures)
	}
	batch := shape[3]

	x, err := autodiff.ViewShape(input, false, batch, 1, l.inFeatures)
	if err != nil {
		return nil, fmt.Errorf("linear: %w", err)
	}
	prod, err := autodiff.Mul(x, l.weight.Tensor(), false)
	if err != nil {
		return nil, fmt.Errorf("linear: %w", err)
	}
	summed, err := autodiff.SumAxes(prod, false, 4)
	if err != nil {
		return nil, fmt.Errorf("linear: %w", err)
	}
	flat, err := autodiff.ViewShape(summed, false, batch, l.outFeatures)
	if err != nil {
		return nil, fmt.Errorf("linear: %w", err)
	}
	return autodiff.Add(flat, l.bias.Tensor(), false)
}

// Parameters returns weight and bias.
func (l *Linear) Parameters() []*Parameter {
	return []*Parameter{l.weight, l.bias}
}

// Weight returns the [1, out, in] weight parameter.
func (l *Linear) Weight() *Parameter {
	return l.weight
}

// Bias returns the [1, out] bias parameter.
func (l *Linear) Bias() *Parameter {
	return l.bias
}

// InFeatures returns the input width.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the output width.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}
