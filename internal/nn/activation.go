package nn

import "github.com/lemur-ml/lemur/internal/autodiff"

// activation adapts a unary dispatch function to Module.
type activation func(*autodiff.Tensor, bool) (*autodiff.Tensor, error)

func (f activation) Forward(input *autodiff.Tensor) (*autodiff.Tensor, error) {
	return f(input, false)
}

func (activation) Parameters() []*Parameter {
	return nil
}

// NewReLU creates a ReLU activation: f(x) = max(0, x).
func NewReLU() Module {
	return activation(autodiff.ReLU)
}

// NewSigmoid creates a Sigmoid activation: f(x) = 1 / (1 + exp(-x)).
func NewSigmoid() Module {
	return activation(autodiff.Sigmoid)
}

// NewTanh creates a Tanh activation.
func NewTanh() Module {
	return activation(autodiff.Tanh)
}

// NewSiLU creates a SiLU activation: f(x) = x * sigmoid(x).
func NewSiLU() Module {
	return activation(autodiff.SiLU)
}
