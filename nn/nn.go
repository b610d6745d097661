// Copyright 2026 Lemur ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/lemur-ml/lemur/internal/autodiff"
	"github.com/lemur-ml/lemur/internal/kernel"
	"github.com/lemur-ml/lemur/internal/nn"
)

// Module is the common interface for all neural network modules.
type Module = nn.Module

// Parameter is a named trainable leaf node.
type Parameter = nn.Parameter

// NewParameter wraps a leaf node as a parameter.
func NewParameter(name string, t *autodiff.Tensor) *Parameter {
	return nn.NewParameter(name, t)
}

// Layers

// Linear is a fully connected layer.
type Linear = nn.Linear

// NewLinear creates a Linear layer whose parameters live in g.
//
// Example:
//
//	g := autodiff.NewGraph()
//	layer, err := nn.NewLinear(g, 784, 128)
func NewLinear(g *autodiff.Graph, inFeatures, outFeatures int) (*Linear, error) {
	return nn.NewLinear(g, inFeatures, outFeatures)
}

// Sequential chains modules.
type Sequential = nn.Sequential

// NewSequential creates a Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// Activations

// NewReLU creates a ReLU activation.
func NewReLU() Module { return nn.NewReLU() }

// NewSigmoid creates a Sigmoid activation.
func NewSigmoid() Module { return nn.NewSigmoid() }

// NewTanh creates a Tanh activation.
func NewTanh() Module { return nn.NewTanh() }

// NewSiLU creates a SiLU activation.
func NewSiLU() Module { return nn.NewSiLU() }

// Loss functions

// MSELoss computes the mean squared error.
type MSELoss = nn.MSELoss

// NewMSELoss creates a new MSE loss.
func NewMSELoss() *MSELoss {
	return nn.NewMSELoss()
}

// Initialization

// Xavier creates a Xavier-uniform initialized leaf.
func Xavier(g *autodiff.Graph, fanIn, fanOut int, shape kernel.Shape) (*autodiff.Tensor, error) {
	return nn.Xavier(g, fanIn, fanOut, shape)
}

// Zeros creates a zero leaf.
func Zeros(g *autodiff.Graph, shape kernel.Shape) (*autodiff.Tensor, error) {
	return nn.Zeros(g, shape)
}
