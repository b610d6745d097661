package autodiff

import "errors"

var (
	// ErrNilTensor is returned when a nil node is passed to an operation.
	ErrNilTensor = errors.New("nil tensor")

	// ErrFreed is returned when a freed node is used, or when backward
	// reaches an input that was freed while its consumer was still alive.
	ErrFreed = errors.New("tensor was freed")

	// ErrGraphMismatch is returned when operands belong to different graphs.
	ErrGraphMismatch = errors.New("operands belong to different graphs")

	// ErrArity is returned when an op receives the wrong operand count.
	ErrArity = errors.New("wrong number of operands")

	// ErrNoGraph is returned by Backward on a leaf root.
	ErrNoGraph = errors.New("node has no computation graph")

	// ErrNotImplemented is returned by Compile.
	ErrNotImplemented = errors.New("not implemented")

	// ErrCycle is the panic value (wrapped) raised when a cycle is found
	// while ordering the graph.
	ErrCycle = errors.New("cycle in computation graph")
)
