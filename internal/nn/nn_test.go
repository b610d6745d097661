package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemur-ml/lemur/internal/autodiff"
	"github.com/lemur-ml/lemur/internal/autodiff/ops"
	"github.com/lemur-ml/lemur/internal/kernel"
	"github.com/lemur-ml/lemur/internal/nn"
)

// setValues overwrites k in row-major order.
func setValues(k *kernel.Tensor, values []float32) {
	n := 0
	k.Each(func(i kernel.Index) {
		k.Set(i, values[n])
		n++
	})
}

// TestLinear_Forward tests y = x @ W.T + b and its gradients.
func TestLinear_Forward(t *testing.T) {
	g := autodiff.NewGraph()
	layer, err := nn.NewLinear(g, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, layer.InFeatures())
	assert.Equal(t, 2, layer.OutFeatures())
	setValues(layer.Weight().Tensor().Data(), []float32{1, 2, 3, 4, 5, 6})
	setValues(layer.Bias().Tensor().Data(), []float32{0.5, -1})

	x, err := g.FromSlice([]float32{1, 0, 0, 0, 1, 1}, kernel.MustShape(2, 3), false)
	require.NoError(t, err)
	y, err := layer.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, kernel.MustShape(2, 2), y.Shape())
	assert.Equal(t, []float32{1.5, 3, 5.5, 10}, y.Values())

	s, err := autodiff.SumAll(y, false)
	require.NoError(t, err)
	require.NoError(t, g.Backward(s))
	assert.Equal(t, []float32{2, 2}, layer.Bias().Grad().Values())
	assert.Equal(t, []float32{1, 1, 1, 1, 1, 1}, layer.Weight().Grad().Values())
	assert.Equal(t, []float32{5, 7, 9, 5, 7, 9}, x.GradValues())
}

// TestLinear_InputMismatch tests input width validation.
func TestLinear_InputMismatch(t *testing.T) {
	g := autodiff.NewGraph()
	layer, err := nn.NewLinear(g, 3, 2)
	require.NoError(t, err)
	x, err := g.Zeros(kernel.MustShape(2, 4), false)
	require.NoError(t, err)
	_, err = layer.Forward(x)
	assert.ErrorIs(t, err, ops.ErrShapeMismatch)

	assert.NotPanics(t, func() {
		_, err = layer.Forward(nil)
	})
	assert.ErrorIs(t, err, autodiff.ErrNilTensor)

	_, err = nn.NewLinear(g, 0, 2)
	assert.ErrorIs(t, err, kernel.ErrInvalidShape)
}

// TestXavier_Bounds tests the initialization range.
func TestXavier_Bounds(t *testing.T) {
	g := autodiff.NewGraph()
	w, err := nn.Xavier(g, 4, 2, kernel.MustShape(2, 4))
	require.NoError(t, err)
	for _, v := range w.Values() {
		assert.LessOrEqual(t, v, float32(1))
		assert.GreaterOrEqual(t, v, float32(-1))
	}
}

// TestMSELoss tests the value and gradient of the mean squared error.
func TestMSELoss(t *testing.T) {
	g := autodiff.NewGraph()
	pred, err := g.FromSlice([]float32{1, 2, 3}, kernel.MustShape(3), false)
	require.NoError(t, err)
	target, err := g.FromSlice([]float32{1, 1, 1}, kernel.MustShape(3), false)
	require.NoError(t, err)

	loss, err := nn.NewMSELoss().Forward(pred, target)
	require.NoError(t, err)
	assert.Equal(t, kernel.MustShape(1), loss.Shape())
	assert.InDelta(t, 5.0/3.0, loss.Values()[0], 1e-6)

	require.NoError(t, g.Backward(loss))
	assert.InDeltaSlice(t, []float32{0, 2.0 / 3.0, 4.0 / 3.0}, pred.GradValues(), 1e-6)
	assert.InDeltaSlice(t, []float32{0, -2.0 / 3.0, -4.0 / 3.0}, target.GradValues(), 1e-6)
	assert.Nil(t, nn.NewMSELoss().Parameters())
}

// TestMSELoss_ShapeMismatch tests that shapes must match exactly.
func TestMSELoss_ShapeMismatch(t *testing.T) {
	g := autodiff.NewGraph()
	pred, _ := g.Zeros(kernel.MustShape(3), false)
	target, _ := g.Zeros(kernel.MustShape(1), false)
	_, err := nn.NewMSELoss().Forward(pred, target)
	assert.ErrorIs(t, err, ops.ErrShapeMismatch)

	_, err = nn.NewMSELoss().Forward(nil, target)
	assert.ErrorIs(t, err, autodiff.ErrNilTensor)
}

// TestSequential tests chaining and parameter collection.
func TestSequential(t *testing.T) {
	g := autodiff.NewGraph()
	l1, err := nn.NewLinear(g, 2, 3)
	require.NoError(t, err)
	l2, err := nn.NewLinear(g, 3, 1)
	require.NoError(t, err)
	model := nn.NewSequential(l1, nn.NewReLU(), l2, nn.NewSigmoid())
	assert.Equal(t, 4, model.Len())
	assert.Len(t, model.Parameters(), 4)

	x, err := g.Ones(kernel.MustShape(5, 2), false)
	require.NoError(t, err)
	y, err := model.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, kernel.MustShape(5, 1), y.Shape())
	for _, v := range y.Values() {
		assert.Greater(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}

	bad, err := g.Ones(kernel.MustShape(5, 3), false)
	require.NoError(t, err)
	_, err = model.Forward(bad)
	assert.ErrorContains(t, err, "sequential layer 0")
}

// TestActivations tests the activation modules.
func TestActivations(t *testing.T) {
	g := autodiff.NewGraph()
	x, err := g.FromSlice([]float32{-1, 0, 2}, kernel.MustShape(3), false)
	require.NoError(t, err)

	tests := []struct {
		name string
		m    nn.Module
		want []float32
	}{
		{"relu", nn.NewReLU(), []float32{0, 0, 2}},
		{"sigmoid", nn.NewSigmoid(), []float32{0.26894143, 0.5, 0.8807971}},
		{"tanh", nn.NewTanh(), []float32{-0.7615942, 0, 0.9640276}},
		{"silu", nn.NewSiLU(), []float32{-0.26894143, 0, 1.7615942}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, err := tt.m.Forward(x)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, y.Values(), 1e-6)
			assert.Nil(t, tt.m.Parameters())
		})
	}
}
