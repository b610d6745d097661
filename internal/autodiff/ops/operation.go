// Package ops defines the operation registry and the forward/backward
// kernels for automatic differentiation.
//
// Each operation implements the Op interface, which provides:
//   - Infer: validates operands and returns the output shape
//   - Forward: fills (or, for view ops, lays out) the output
//   - Backward: gradient w.r.t. one input given the output gradient (seed)
//
// Operations are stateless. Everything a kernel needs, including shape and
// axis descriptors, arrives through its inputs, so the registry is a static
// table indexed by OpID.
//
// Supported operations:
//   - binary: add, sub, mul, division, power (NumPy-style broadcasting)
//   - unary: exponential, relu, sigmoid, logarithm, neg, square_root,
//     absolute, sign, reciprocal
//   - reduction: sum (axes descriptor as second operand)
//   - shape: view, expand, permute (shape/permutation descriptor as second
//     operand; the output is a view over the input's buffer)
package ops

import (
	"fmt"

	"github.com/lemur-ml/lemur/internal/kernel"
)

// OpID identifies the operation that produced a graph node.
type OpID int

// Leaf marks nodes that no operation produced.
const Leaf OpID = -1

// Registered operation ids.
const (
	OpAdd OpID = iota
	OpSub
	OpMul
	OpDiv
	OpExp
	OpPow
	OpReLU
	OpSigmoid
	OpLog
	OpNeg
	OpSqrt
	OpAbs
	OpSign
	OpReciprocal
	OpSum
	OpView
	OpExpand
	OpPermute
	OpTanh
	OpSin
	OpCos
	OpSiLU

	// TotalOps is the number of registered ids.
	TotalOps
)

// Unknown is returned by Name for ids outside the registry.
const Unknown = "unknown"

// Op is the uniform capability every registered operation implements.
type Op interface {
	// Infer validates the operands and returns the output shape.
	Infer(in []*kernel.Tensor) (kernel.Shape, error)

	// Forward computes the output. For view ops out is an alias of in[0]
	// and Forward only rewrites its shape, strides and offset.
	Forward(out *kernel.Tensor, in []*kernel.Tensor)

	// Backward returns the gradient w.r.t. in[idx], shaped like in[idx],
	// or nil if that input carries no gradient (descriptors). The result
	// is always a freshly allocated tensor.
	Backward(out *kernel.Tensor, in []*kernel.Tensor, seed *kernel.Tensor, idx int) *kernel.Tensor
}

// Entry is one row of the registry.
type Entry struct {
	Name  string
	Arity int
	View  bool // Output aliases the first input's buffer
	Op    Op
}

var registry = [TotalOps]Entry{
	OpAdd:        {Name: "add", Arity: 2, Op: AddOp{}},
	OpSub:        {Name: "sub", Arity: 2, Op: SubOp{}},
	OpMul:        {Name: "mul", Arity: 2, Op: MulOp{}},
	OpDiv:        {Name: "division", Arity: 2, Op: DivOp{}},
	OpExp:        {Name: "exponential", Arity: 1, Op: ExpOp{}},
	OpPow:        {Name: "power", Arity: 2, Op: PowOp{}},
	OpReLU:       {Name: "relu", Arity: 1, Op: ReLUOp{}},
	OpSigmoid:    {Name: "sigmoid", Arity: 1, Op: SigmoidOp{}},
	OpLog:        {Name: "logarithm", Arity: 1, Op: LogOp{}},
	OpNeg:        {Name: "neg", Arity: 1, Op: NegOp{}},
	OpSqrt:       {Name: "square_root", Arity: 1, Op: SqrtOp{}},
	OpAbs:        {Name: "absolute", Arity: 1, Op: AbsOp{}},
	OpSign:       {Name: "sign", Arity: 1, Op: SignOp{}},
	OpReciprocal: {Name: "reciprocal", Arity: 1, Op: ReciprocalOp{}},
	OpSum:        {Name: "sum", Arity: 2, Op: SumOp{}},
	OpView:       {Name: "view", Arity: 2, View: true, Op: ViewOp{}},
	OpExpand:     {Name: "expand", Arity: 2, View: true, Op: ExpandOp{}},
	OpPermute:    {Name: "permute", Arity: 2, View: true, Op: PermuteOp{}},
	OpTanh:       {Name: "tanh", Arity: 1, Op: TanhOp{}},
	OpSin:        {Name: "sine", Arity: 1, Op: SinOp{}},
	OpCos:        {Name: "cosine", Arity: 1, Op: CosOp{}},
	OpSiLU:       {Name: "silu", Arity: 1, Op: SiLUOp{}},
}

// OpMap is the dense name table, indexed by OpID.
var OpMap = func() [TotalOps]string {
	var m [TotalOps]string
	for i, e := range registry {
		m[i] = e.Name
	}
	return m
}()

// Valid reports whether id is a registered operation.
func (id OpID) Valid() bool {
	return id >= 0 && id < TotalOps
}

// Name returns the registered name of id, or Unknown for ids < 0 or
// >= TotalOps.
func Name(id OpID) string {
	if !id.Valid() {
		return Unknown
	}
	return OpMap[id]
}

// String returns the op name, "leaf" for Leaf.
func (id OpID) String() string {
	if id == Leaf {
		return "leaf"
	}
	return Name(id)
}

// Lookup returns the registry entry for id.
func Lookup(id OpID) (Entry, error) {
	if !id.Valid() {
		return Entry{}, fmt.Errorf("%w: %d", ErrUnknownOp, int(id))
	}
	return registry[id], nil
}
