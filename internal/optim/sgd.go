package optim

import (
	"github.com/lemur-ml/lemur/internal/kernel"
	"github.com/lemur-ml/lemur/internal/nn"
)

// SGD implements Stochastic Gradient Descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
type SGD struct {
	params     []*nn.Parameter
	lr         float32
	momentum   float32
	velocities map[*nn.Parameter]*kernel.Tensor
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float32 // Learning rate (default: 0.01)
	Momentum float32 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(params []*nn.Parameter, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter]*kernel.Tensor),
	}
}

// Step applies one update to every parameter that has a gradient.
func (s *SGD) Step() {
	for _, p := range s.params {
		grad := p.Grad()
		if grad == nil {
			continue
		}
		data := p.Tensor().Data()

		if s.momentum == 0 {
			data.Each(func(i kernel.Index) {
				data.AddAt(i, -s.lr*grad.At(i))
			})
			continue
		}

		v, ok := s.velocities[p]
		if !ok {
			v = zerosLike(p)
			s.velocities[p] = v
		}
		data.Each(func(i kernel.Index) {
			vel := s.momentum*v.At(i) + grad.At(i)
			v.Set(i, vel)
			data.AddAt(i, -s.lr*vel)
		})
	}
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD) ZeroGrad() {
	zeroGrad(s.params)
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float32 {
	return s.lr
}

// SetLR sets the learning rate.
func (s *SGD) SetLR(lr float32) {
	s.lr = lr
}
