package optim

import (
	"math"

	"github.com/lemur-ml/lemur/internal/kernel"
	"github.com/lemur-ml/lemur/internal/nn"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²
//	m_hat = m_t / (1 - beta1^t)
//	v_hat = v_t / (1 - beta2^t)
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	params []*nn.Parameter
	lr     float32
	beta1  float32
	beta2  float32
	eps    float32
	t      int                              // Timestep for bias correction
	m      map[*nn.Parameter]*kernel.Tensor // First moment estimates
	v      map[*nn.Parameter]*kernel.Tensor // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float32    // Learning rate (default: 0.001)
	Betas [2]float32 // Running average coefficients (default: [0.9, 0.999])
	Eps   float32    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer, filling unset fields with defaults.
func NewAdam(params []*nn.Parameter, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	return &Adam{
		params: params,
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      make(map[*nn.Parameter]*kernel.Tensor),
		v:      make(map[*nn.Parameter]*kernel.Tensor),
	}
}

// Step performs a single Adam update.
func (a *Adam) Step() {
	a.t++
	bc1 := float32(1.0 - math.Pow(float64(a.beta1), float64(a.t)))
	bc2 := float32(1.0 - math.Pow(float64(a.beta2), float64(a.t)))

	for _, p := range a.params {
		grad := p.Grad()
		if grad == nil {
			continue
		}
		m, ok := a.m[p]
		if !ok {
			m = zerosLike(p)
			a.m[p] = m
		}
		v, ok := a.v[p]
		if !ok {
			v = zerosLike(p)
			a.v[p] = v
		}

		data := p.Tensor().Data()
		data.Each(func(i kernel.Index) {
			g := grad.At(i)
			mi := a.beta1*m.At(i) + (1-a.beta1)*g
			vi := a.beta2*v.At(i) + (1-a.beta2)*g*g
			m.Set(i, mi)
			v.Set(i, vi)
			mHat := mi / bc1
			vHat := vi / bc2
			data.AddAt(i, -a.lr*mHat/(float32(math.Sqrt(float64(vHat)))+a.eps))
		})
	}
}

// ZeroGrad clears gradients for all parameters.
func (a *Adam) ZeroGrad() {
	zeroGrad(a.params)
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float32 {
	return a.lr
}
