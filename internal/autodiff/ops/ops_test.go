package ops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemur-ml/lemur/internal/autodiff/ops"
	"github.com/lemur-ml/lemur/internal/kernel"
)

func tensor(t *testing.T, values []float32, dims ...int) *kernel.Tensor {
	t.Helper()
	k, err := kernel.FromSlice(values, kernel.MustShape(dims...))
	require.NoError(t, err)
	return k
}

func descriptor(t *testing.T, values ...float32) *kernel.Tensor {
	t.Helper()
	return tensor(t, values, len(values))
}

func ones(t *testing.T, shape kernel.Shape) *kernel.Tensor {
	t.Helper()
	k := kernel.MustEmpty(shape)
	k.Fill(1)
	return k
}

// forward runs an op the way dispatch does.
func forward(t *testing.T, id ops.OpID, in ...*kernel.Tensor) *kernel.Tensor {
	t.Helper()
	entry, err := ops.Lookup(id)
	require.NoError(t, err)
	shape, err := entry.Op.Infer(in)
	require.NoError(t, err)
	var out *kernel.Tensor
	if entry.View {
		out = in[0].Alias()
	} else {
		out = kernel.MustEmpty(shape)
	}
	entry.Op.Forward(out, in)
	require.Equal(t, shape, out.Shape())
	return out
}

func backward(t *testing.T, id ops.OpID, out *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, idx int) *kernel.Tensor {
	t.Helper()
	entry, err := ops.Lookup(id)
	require.NoError(t, err)
	return entry.Op.Backward(out, in, seed, idx)
}

// TestName tests name lookup, including the out-of-range sentinel.
func TestName(t *testing.T) {
	assert.Equal(t, "add", ops.Name(ops.OpAdd))
	assert.Equal(t, "division", ops.Name(ops.OpDiv))
	assert.Equal(t, "permute", ops.OpMap[ops.OpPermute])
	assert.Equal(t, ops.Unknown, ops.Name(ops.TotalOps))
	assert.Equal(t, ops.Unknown, ops.Name(-1))
	assert.Equal(t, ops.Unknown, ops.Name(1<<20))
	assert.Equal(t, "leaf", ops.Leaf.String())
	assert.Equal(t, "exponential", ops.OpExp.String())
}

// TestRegistry tests that every id up to TotalOps is fully registered.
func TestRegistry(t *testing.T) {
	views := map[ops.OpID]bool{ops.OpView: true, ops.OpExpand: true, ops.OpPermute: true}
	seen := make(map[string]bool)
	for id := ops.OpID(0); id < ops.TotalOps; id++ {
		entry, err := ops.Lookup(id)
		require.NoError(t, err, "id %d", id)
		assert.NotEmpty(t, entry.Name)
		assert.NotNil(t, entry.Op, entry.Name)
		assert.Contains(t, []int{1, 2}, entry.Arity, entry.Name)
		assert.Equal(t, views[id], entry.View, entry.Name)
		assert.False(t, seen[entry.Name], "duplicate name %s", entry.Name)
		seen[entry.Name] = true
		assert.Equal(t, entry.Name, ops.OpMap[id])
	}
	assert.Len(t, ops.OpMap, int(ops.TotalOps))
}

// TestLookup_Unknown tests that out-of-range ids are rejected.
func TestLookup_Unknown(t *testing.T) {
	_, err := ops.Lookup(ops.TotalOps)
	assert.ErrorIs(t, err, ops.ErrUnknownOp)
	_, err = ops.Lookup(ops.Leaf)
	assert.ErrorIs(t, err, ops.ErrUnknownOp)
}

// TestAddOp_BroadcastBackward tests that the broadcast operand's gradient
// is summed back to its own shape.
func TestAddOp_BroadcastBackward(t *testing.T) {
	a := tensor(t, []float32{1, 2, 3}, 3, 1)
	b := tensor(t, make([]float32, 12), 3, 4)
	in := []*kernel.Tensor{a, b}

	out := forward(t, ops.OpAdd, in...)
	assert.Equal(t, kernel.MustShape(3, 4), out.Shape())
	assert.Equal(t, []float32{1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3}, out.Values())

	seed := ones(t, out.Shape())
	ga := backward(t, ops.OpAdd, out, in, seed, 0)
	assert.Equal(t, a.Shape(), ga.Shape())
	assert.Equal(t, []float32{4, 4, 4}, ga.Values())

	gb := backward(t, ops.OpAdd, out, in, seed, 1)
	assert.Equal(t, b.Shape(), gb.Shape())
	assert.Equal(t, 12, len(gb.Values()))
}

// TestSubOp_Backward tests the sign flip on the subtrahend.
func TestSubOp_Backward(t *testing.T) {
	in := []*kernel.Tensor{tensor(t, []float32{5, 7}, 2), tensor(t, []float32{1, 2}, 2)}
	out := forward(t, ops.OpSub, in...)
	assert.Equal(t, []float32{4, 5}, out.Values())

	seed := tensor(t, []float32{2, 3}, 2)
	assert.Equal(t, []float32{2, 3}, backward(t, ops.OpSub, out, in, seed, 0).Values())
	assert.Equal(t, []float32{-2, -3}, backward(t, ops.OpSub, out, in, seed, 1).Values())
}

// TestDivOp_Backward tests both quotient partials.
func TestDivOp_Backward(t *testing.T) {
	in := []*kernel.Tensor{tensor(t, []float32{6, 8}, 2), tensor(t, []float32{2, 4}, 2)}
	out := forward(t, ops.OpDiv, in...)
	assert.Equal(t, []float32{3, 2}, out.Values())

	seed := ones(t, out.Shape())
	assert.InDeltaSlice(t, []float32{0.5, 0.25}, backward(t, ops.OpDiv, out, in, seed, 0).Values(), 1e-6)
	assert.InDeltaSlice(t, []float32{-1.5, -0.5}, backward(t, ops.OpDiv, out, in, seed, 1).Values(), 1e-6)
}

// TestReLUOp_Backward tests the mask at negative, zero and positive inputs.
func TestReLUOp_Backward(t *testing.T) {
	in := []*kernel.Tensor{tensor(t, []float32{-1, 0, 2}, 3)}
	out := forward(t, ops.OpReLU, in...)
	assert.Equal(t, []float32{0, 0, 2}, out.Values())

	grad := backward(t, ops.OpReLU, out, in, tensor(t, []float32{5, 5, 5}, 3), 0)
	assert.Equal(t, []float32{0, 0, 5}, grad.Values())
}

// TestUnaryOps_Forward tests a representative value per unary op.
func TestUnaryOps_Forward(t *testing.T) {
	tests := []struct {
		id   ops.OpID
		in   float32
		want float32
	}{
		{ops.OpExp, 0, 1},
		{ops.OpSigmoid, 0, 0.5},
		{ops.OpLog, 1, 0},
		{ops.OpNeg, 3, -3},
		{ops.OpSqrt, 9, 3},
		{ops.OpAbs, -2, 2},
		{ops.OpSign, -2, -1},
		{ops.OpSign, 0, 0},
		{ops.OpReciprocal, 4, 0.25},
		{ops.OpTanh, 0, 0},
		{ops.OpSin, 0, 0},
		{ops.OpCos, 0, 1},
		{ops.OpSiLU, 0, 0},
	}
	for _, tt := range tests {
		t.Run(ops.Name(tt.id), func(t *testing.T) {
			out := forward(t, tt.id, tensor(t, []float32{tt.in}, 1))
			assert.InDelta(t, tt.want, out.Values()[0], 1e-6)
		})
	}
}

// TestPowOp_Forward tests broadcasting a scalar exponent.
func TestPowOp_Forward(t *testing.T) {
	out := forward(t, ops.OpPow, tensor(t, []float32{1, 2, 3}, 3), tensor(t, []float32{2}, 1))
	assert.Equal(t, []float32{1, 4, 9}, out.Values())
}

// TestSignOp_Backward tests that sign has zero gradient.
func TestSignOp_Backward(t *testing.T) {
	in := []*kernel.Tensor{tensor(t, []float32{-3, 4}, 2)}
	out := forward(t, ops.OpSign, in...)
	grad := backward(t, ops.OpSign, out, in, ones(t, out.Shape()), 0)
	assert.Equal(t, []float32{0, 0}, grad.Values())
}

// TestSumOp tests reduction with keep-dim semantics.
func TestSumOp(t *testing.T) {
	x := tensor(t, []float32{1, 2, 3, 4, 5, 6}, 2, 3)
	in := []*kernel.Tensor{x, descriptor(t, 3, 4)}
	out := forward(t, ops.OpSum, in...)
	assert.Equal(t, kernel.MustShape(1), out.Shape())
	assert.Equal(t, []float32{21}, out.Values())

	grad := backward(t, ops.OpSum, out, in, tensor(t, []float32{2}, 1), 0)
	assert.Equal(t, x.Shape(), grad.Shape())
	assert.Equal(t, []float32{2, 2, 2, 2, 2, 2}, grad.Values())

	assert.Nil(t, backward(t, ops.OpSum, out, in, tensor(t, []float32{2}, 1), 1))
}

// TestSumOp_Infer tests descriptor validation.
func TestSumOp_Infer(t *testing.T) {
	x := tensor(t, []float32{1, 2}, 2)
	tests := []struct {
		name string
		axes []float32
		err  error
	}{
		{"negative", []float32{-1}, nil},
		{"duplicate", []float32{4, 4}, nil},
		{"too large", []float32{5}, ops.ErrInvalidAxis},
		{"too small", []float32{-6}, ops.ErrInvalidAxis},
		{"fractional", []float32{1.5}, ops.ErrInvalidDescriptor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ops.SumOp{}.Infer([]*kernel.Tensor{x, descriptor(t, tt.axes...)})
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

// TestViewOp tests that view restrides an alias.
func TestViewOp(t *testing.T) {
	x := tensor(t, []float32{0, 1, 2, 3, 4, 5}, 6)
	in := []*kernel.Tensor{x, descriptor(t, 2, -1)}
	out := forward(t, ops.OpView, in...)
	assert.Equal(t, kernel.MustShape(2, 3), out.Shape())
	assert.True(t, out.SharesBuffer(x))
	assert.Equal(t, float32(4), out.At(kernel.Index{0, 0, 0, 1, 1}))

	grad := backward(t, ops.OpView, out, in, tensor(t, []float32{1, 2, 3, 4, 5, 6}, 2, 3), 0)
	assert.Equal(t, x.Shape(), grad.Shape())
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, grad.Values())
	assert.Nil(t, backward(t, ops.OpView, out, in, grad, 1))
}

// TestExpandOp_Infer tests which dims may be expanded.
func TestExpandOp_Infer(t *testing.T) {
	x := tensor(t, []float32{1, 2, 3}, 3, 1)
	tests := []struct {
		name string
		dims []float32
		want kernel.Shape
		err  error
	}{
		{"expand trailing", []float32{3, 4}, kernel.MustShape(3, 4), nil},
		{"keep with -1", []float32{-1, 4}, kernel.MustShape(3, 4), nil},
		{"new leading dim", []float32{2, 3, 4}, kernel.MustShape(2, 3, 4), nil},
		{"shrink", []float32{1, 4}, kernel.Shape{}, ops.ErrShapeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ops.ExpandOp{}.Infer([]*kernel.Tensor{x, descriptor(t, tt.dims...)})
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestPermuteOp tests permuting strides and scattering the gradient back.
func TestPermuteOp(t *testing.T) {
	x := tensor(t, []float32{1, 2, 3, 4, 5, 6}, 1, 2, 3)
	in := []*kernel.Tensor{x, descriptor(t, 2, 0, 1)}
	out := forward(t, ops.OpPermute, in...)
	assert.Equal(t, kernel.MustShape(3, 1, 2), out.Shape())
	assert.False(t, out.IsContiguous())
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, out.Values())

	seed := tensor(t, []float32{10, 40, 20, 50, 30, 60}, 3, 1, 2)
	grad := backward(t, ops.OpPermute, out, in, seed, 0)
	assert.Equal(t, x.Shape(), grad.Shape())
	assert.Equal(t, []float32{10, 20, 30, 40, 50, 60}, grad.Values())
}
