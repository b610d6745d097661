package nn

import (
	"github.com/lemur-ml/lemur/internal/autodiff"
	"github.com/lemur-ml/lemur/internal/kernel"
)

// Parameter is a named trainable leaf node.
//
// Example:
//
//	w, _ := g.RandomNormal(kernel.MustShape(3, 4), 0, 0.1, false)
//	weight := nn.NewParameter("linear.weight", w)
//	...
//	grad := weight.Grad() // after backward
type Parameter struct {
	name   string
	tensor *autodiff.Tensor
}

// NewParameter wraps a leaf node as a trainable parameter.
func NewParameter(name string, t *autodiff.Tensor) *Parameter {
	return &Parameter{name: name, tensor: t}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Tensor returns the parameter's graph node.
func (p *Parameter) Tensor() *autodiff.Tensor {
	return p.tensor
}

// Grad returns the accumulated gradient, or nil before backward.
func (p *Parameter) Grad() *kernel.Tensor {
	return p.tensor.Grad()
}

// ZeroGrad clears the accumulated gradient.
func (p *Parameter) ZeroGrad() {
	p.tensor.ZeroGrad()
}

// NumElements returns the number of scalar weights.
func (p *Parameter) NumElements() int {
	return p.tensor.Data().NumElements()
}
