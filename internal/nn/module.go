// Package nn implements neural network building blocks on top of the
// autodiff graph.
//
// This package provides:
//   - Module interface: Base interface for all NN components
//   - Parameter: Trainable leaf nodes with gradient tracking
//   - Linear: Fully connected layer built from broadcast mul and sum
//   - Activations: ReLU, Sigmoid, Tanh, SiLU
//   - Loss functions: MSE
//   - Sequential: Container for stacking layers
//
// Every module only dispatches registered ops, so gradients flow through
// the regular backward pass.
package nn

import "github.com/lemur-ml/lemur/internal/autodiff"

// Module is the base interface for all neural network components.
//
// Modules can be composed to build complex architectures:
//
//	hidden, err := nn.NewLinear(g, 4, 8)
//	if err != nil {
//	    return err
//	}
//	out, err := nn.NewLinear(g, 8, 1)
//	if err != nil {
//	    return err
//	}
//	model := nn.NewSequential(hidden, nn.NewReLU(), out)
type Module interface {
	// Forward computes the output of the module given an input node.
	Forward(input *autodiff.Tensor) (*autodiff.Tensor, error)

	// Parameters returns all trainable parameters of this module.
	// Activations return nil.
	Parameters() []*Parameter
}
