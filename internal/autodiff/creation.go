package autodiff

import (
	"fmt"

	"github.com/lemur-ml/lemur/internal/autodiff/ops"
	"github.com/lemur-ml/lemur/internal/kernel"
)

// Empty creates a zero-filled leaf node.
//
// Example:
//
//	g := autodiff.NewGraph()
//	w, _ := g.Empty(kernel.MustShape(3, 4), true)
func (g *Graph) Empty(shape kernel.Shape, retainGrad bool) (*Tensor, error) {
	data, err := kernel.Empty(shape)
	if err != nil {
		return nil, fmt.Errorf("empty: %w", err)
	}
	return g.register(data, ops.Leaf, nil, retainGrad), nil
}

// Zeros is an alias for Empty.
func (g *Graph) Zeros(shape kernel.Shape, retainGrad bool) (*Tensor, error) {
	return g.Empty(shape, retainGrad)
}

// Full creates a leaf node filled with value.
func (g *Graph) Full(shape kernel.Shape, value float32, retainGrad bool) (*Tensor, error) {
	t, err := g.Empty(shape, retainGrad)
	if err != nil {
		return nil, err
	}
	t.data.Fill(value)
	return t, nil
}

// Ones creates a leaf node filled with 1.
func (g *Graph) Ones(shape kernel.Shape, retainGrad bool) (*Tensor, error) {
	return g.Full(shape, 1, retainGrad)
}

// FromSlice creates a leaf node from row-major values.
func (g *Graph) FromSlice(values []float32, shape kernel.Shape, retainGrad bool) (*Tensor, error) {
	data, err := kernel.FromSlice(values, shape)
	if err != nil {
		return nil, fmt.Errorf("from slice: %w", err)
	}
	return g.register(data, ops.Leaf, nil, retainGrad), nil
}

// Arange creates a leaf of shape [1 1 1 1 n] holding 0, 1, ..., n-1.
func (g *Graph) Arange(n int, retainGrad bool) (*Tensor, error) {
	shape, err := kernel.NewShape(n)
	if err != nil {
		return nil, fmt.Errorf("arange: %w", err)
	}
	values := make([]float32, n)
	for i := range values {
		values[i] = float32(i)
	}
	return g.FromSlice(values, shape, retainGrad)
}

// RandomUniform creates a leaf with samples from U(low, high) drawn from
// the global RNG.
func (g *Graph) RandomUniform(shape kernel.Shape, low, high float32, retainGrad bool) (*Tensor, error) {
	t, err := g.Empty(shape, retainGrad)
	if err != nil {
		return nil, err
	}
	t.data.RandomUniform(low, high)
	return t, nil
}

// RandomNormal creates a leaf with samples from N(mean, std²) drawn from
// the global RNG.
func (g *Graph) RandomNormal(shape kernel.Shape, mean, std float32, retainGrad bool) (*Tensor, error) {
	t, err := g.Empty(shape, retainGrad)
	if err != nil {
		return nil, err
	}
	t.data.RandomNormal(mean, std)
	return t, nil
}

// Descriptor creates a 1-D leaf holding integer metadata (axes, shapes,
// permutations) for the second operand of sum and the shape ops.
// Descriptors never receive gradients.
func (g *Graph) Descriptor(values ...int) *Tensor {
	data := make([]float32, len(values))
	for i, v := range values {
		data[i] = float32(v)
	}
	t, err := g.FromSlice(data, kernel.MustShape(len(values)), false)
	if err != nil {
		panic(fmt.Sprintf("descriptor: %v", err))
	}
	return t
}

// Empty creates a zero-filled leaf in the default graph.
func Empty(shape kernel.Shape, retainGrad bool) (*Tensor, error) {
	return defaultGraph.Empty(shape, retainGrad)
}

// FromSlice creates a leaf from row-major values in the default graph.
func FromSlice(values []float32, shape kernel.Shape, retainGrad bool) (*Tensor, error) {
	return defaultGraph.FromSlice(values, shape, retainGrad)
}

// Free destroys a node in its own graph.
func Free(t *Tensor) {
	if t == nil {
		return
	}
	t.graph.Free(t)
}

// Backward runs the backward pass from root in root's graph.
func Backward(root *Tensor) error {
	if root == nil {
		return fmt.Errorf("backward: %w", ErrNilTensor)
	}
	return root.graph.Backward(root)
}
