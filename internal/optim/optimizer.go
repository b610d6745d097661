// Package optim implements optimization algorithms for training models
// built from nn modules.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Example usage:
//
//	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.05})
//
//	for epoch := range epochs {
//	    mark := g.Mark()
//	    pred, _ := model.Forward(x)
//	    loss, _ := mse.Forward(pred, y)
//	    _ = g.Backward(loss)
//	    opt.Step()
//	    opt.ZeroGrad()
//	    g.FreeSince(mark)
//	}
package optim

import (
	"github.com/lemur-ml/lemur/internal/kernel"
	"github.com/lemur-ml/lemur/internal/nn"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step updates every parameter in place from its accumulated grad.
	// Parameters without a grad are skipped.
	Step()

	// ZeroGrad clears all parameter gradients.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float32
}

// zerosLike allocates optimizer state shaped like a parameter.
func zerosLike(p *nn.Parameter) *kernel.Tensor {
	return kernel.EmptyLike(p.Tensor().Data())
}

func zeroGrad(params []*nn.Parameter) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
