// Copyright 2026 Lemur ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers built from autodiff ops.
//
// # Overview
//
// This package contains:
//   - Layers: Linear
//   - Activations: ReLU, Sigmoid, Tanh, SiLU
//   - Loss functions: MSELoss
//   - Utilities: Sequential, Module interface, Parameter
//   - Initialization: Xavier, Zeros
//
// # Basic Usage
//
//	import (
//	    "github.com/lemur-ml/lemur/autodiff"
//	    "github.com/lemur-ml/lemur/kernel"
//	    "github.com/lemur-ml/lemur/nn"
//	)
//
//	func main() {
//	    g := autodiff.NewGraph()
//	    l1, _ := nn.NewLinear(g, 4, 16)
//	    l2, _ := nn.NewLinear(g, 16, 1)
//	    model := nn.NewSequential(l1, nn.NewReLU(), l2)
//
//	    x, _ := g.RandomNormal(kernel.MustShape(8, 4), 0, 1, false)
//	    out, _ := model.Forward(x) // [8, 1]
//	}
//
// # Loss Functions
//
// MSELoss returns a [1 1 1 1 1] node, so backward can start from it:
//
//	loss, _ := nn.NewMSELoss().Forward(predictions, targets)
//	_ = g.Backward(loss)
package nn
