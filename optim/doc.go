// Copyright 2026 Lemur ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for nn parameters.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// # Basic Usage
//
//	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.05,
//	    Momentum: 0.9,
//	})
//
//	for epoch := range epochs {
//	    mark := g.Mark()
//	    pred, _ := model.Forward(x)
//	    loss, _ := mse.Forward(pred, y)
//	    _ = g.Backward(loss)
//	    opt.Step()
//	    opt.ZeroGrad()
//	    g.FreeSince(mark) // drop this step's intermediates
//	}
package optim
