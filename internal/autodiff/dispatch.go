package autodiff

import (
	"fmt"

	"github.com/lemur-ml/lemur/internal/autodiff/ops"
	"github.com/lemur-ml/lemur/internal/kernel"
	"github.com/lemur-ml/lemur/internal/logger"
	"github.com/lemur-ml/lemur/internal/metrics"
)

// Apply runs a registered operation on operands from the same graph and
// records the resulting node. Inputs are never mutated.
func Apply(id ops.OpID, retainGrad bool, operands ...*Tensor) (*Tensor, error) {
	if len(operands) == 0 || operands[0] == nil {
		return nil, fmt.Errorf("%s: %w", ops.Name(id), ErrNilTensor)
	}
	return operands[0].graph.apply(id, retainGrad, operands)
}

func (g *Graph) apply(id ops.OpID, retainGrad bool, operands []*Tensor) (*Tensor, error) {
	entry, err := ops.Lookup(id)
	if err != nil {
		return nil, err
	}
	if len(operands) != entry.Arity {
		return nil, fmt.Errorf("%s: %w: got %d, want %d", entry.Name, ErrArity, len(operands), entry.Arity)
	}

	ins := make([]*kernel.Tensor, len(operands))
	handles := make([]NodeID, len(operands))
	for i, t := range operands {
		if err := g.checkOperand(t); err != nil {
			return nil, fmt.Errorf("%s: operand %d: %w", entry.Name, i, err)
		}
		ins[i] = t.data
		handles[i] = t.id
	}

	shape, err := entry.Op.Infer(ins)
	if err != nil {
		metrics.RecordDispatchError(entry.Name)
		return nil, fmt.Errorf("%s: %w", entry.Name, err)
	}

	var out *kernel.Tensor
	if entry.View {
		out = ins[0].Alias()
	} else if out, err = kernel.Empty(shape); err != nil {
		return nil, fmt.Errorf("%s: %w", entry.Name, err)
	}
	entry.Op.Forward(out, ins)
	metrics.RecordForward(entry.Name)

	t := g.register(out, id, handles, retainGrad)
	logger.Log.Debug("dispatch", "op", entry.Name, "node", t.id, "inputs", handles, "shape", shape.String())
	return t, nil
}

// Add returns a + b, broadcasting size-1 dims.
func Add(a, b *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpAdd, retainGrad, a, b)
}

// Sub returns a - b, broadcasting size-1 dims.
func Sub(a, b *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpSub, retainGrad, a, b)
}

// Mul returns a * b, broadcasting size-1 dims.
func Mul(a, b *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpMul, retainGrad, a, b)
}

// Div returns a / b, broadcasting size-1 dims.
func Div(a, b *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpDiv, retainGrad, a, b)
}

// Pow returns base ^ exponent, broadcasting size-1 dims.
func Pow(base, exponent *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpPow, retainGrad, base, exponent)
}

// Exp returns exp(a).
func Exp(a *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpExp, retainGrad, a)
}

// ReLU returns max(0, a).
func ReLU(a *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpReLU, retainGrad, a)
}

// Sigmoid returns 1 / (1 + exp(-a)).
func Sigmoid(a *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpSigmoid, retainGrad, a)
}

// Log returns ln(a).
func Log(a *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpLog, retainGrad, a)
}

// Neg returns -a.
func Neg(a *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpNeg, retainGrad, a)
}

// Sqrt returns √a.
func Sqrt(a *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpSqrt, retainGrad, a)
}

// Abs returns |a|.
func Abs(a *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpAbs, retainGrad, a)
}

// Sign returns sign(a) in {-1, 0, 1}.
func Sign(a *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpSign, retainGrad, a)
}

// Reciprocal returns 1/a.
func Reciprocal(a *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpReciprocal, retainGrad, a)
}

// Tanh returns tanh(a).
func Tanh(a *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpTanh, retainGrad, a)
}

// Sin returns sin(a).
func Sin(a *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpSin, retainGrad, a)
}

// Cos returns cos(a).
func Cos(a *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpCos, retainGrad, a)
}

// SiLU returns a * sigmoid(a).
func SiLU(a *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpSiLU, retainGrad, a)
}

// Sum reduces a over the axis indices held by axes. Reduced axes keep
// size 1.
func Sum(a, axes *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpSum, retainGrad, a, axes)
}

// View reinterprets contiguous a under the shape held by shape.
// The result shares a's storage.
func View(a, shape *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpView, retainGrad, a, shape)
}

// Expand broadcasts a's size-1 dims to the shape held by shape.
// The result shares a's storage.
func Expand(a, shape *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpExpand, retainGrad, a, shape)
}

// Permute reorders a's trailing dims by the permutation held by perm.
// The result shares a's storage.
func Permute(a, perm *Tensor, retainGrad bool) (*Tensor, error) {
	return Apply(ops.OpPermute, retainGrad, a, perm)
}

// SumAll reduces every axis of a.
func SumAll(a *Tensor, retainGrad bool) (*Tensor, error) {
	return SumAxes(a, retainGrad, 0, 1, 2, 3, 4)
}

// SumAxes reduces a over the given axes.
func SumAxes(a *Tensor, retainGrad bool, axes ...int) (*Tensor, error) {
	if a == nil {
		return nil, fmt.Errorf("sum: %w", ErrNilTensor)
	}
	return Sum(a, a.graph.Descriptor(axes...), retainGrad)
}

// ViewShape is View with the shape given inline.
func ViewShape(a *Tensor, retainGrad bool, dims ...int) (*Tensor, error) {
	if a == nil {
		return nil, fmt.Errorf("view: %w", ErrNilTensor)
	}
	return View(a, a.graph.Descriptor(dims...), retainGrad)
}

// ExpandShape is Expand with the shape given inline.
func ExpandShape(a *Tensor, retainGrad bool, dims ...int) (*Tensor, error) {
	if a == nil {
		return nil, fmt.Errorf("expand: %w", ErrNilTensor)
	}
	return Expand(a, a.graph.Descriptor(dims...), retainGrad)
}

// PermuteAxes is Permute with the permutation given inline.
func PermuteAxes(a *Tensor, retainGrad bool, perm ...int) (*Tensor, error) {
	if a == nil {
		return nil, fmt.Errorf("permute: %w", ErrNilTensor)
	}
	return Permute(a, a.graph.Descriptor(perm...), retainGrad)
}
