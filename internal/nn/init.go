package nn

import (
	"math"

	"github.com/lemur-ml/lemur/internal/autodiff"
	"github.com/lemur-ml/lemur/internal/kernel"
)

// Xavier creates a leaf initialized from
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))).
func Xavier(g *autodiff.Graph, fanIn, fanOut int, shape kernel.Shape) (*autodiff.Tensor, error) {
	bound := float32(math.Sqrt(6.0 / float64(fanIn+fanOut)))
	return g.RandomUniform(shape, -bound, bound, false)
}

// Zeros creates a zero leaf, used for biases.
func Zeros(g *autodiff.Graph, shape kernel.Shape) (*autodiff.Tensor, error) {
	return g.Zeros(shape, false)
}
