// Package autodiff implements reverse-mode automatic differentiation over a
// graph of kernel tensors.
//
// Architecture:
//   - Graph: an arena that owns Tensor nodes under stable NodeID handles
//   - Tensor: a kernel.Tensor plus the op that produced it and handles to
//     its inputs
//   - Dispatch: Add, Mul, ReLU, Sum, View, ... validate operands, run the
//     forward kernel eagerly and record the node
//   - Backward: reverse topological walk from a root, summing each op's
//     input gradients into the input nodes
//
// Usage:
//
//	g := autodiff.NewGraph()
//	x, _ := g.FromSlice([]float32{2}, kernel.MustShape(1), false)
//	y, _ := autodiff.Mul(x, x, false) // y = x²
//	_ = g.Backward(y)
//	fmt.Println(x.Grad()) // dy/dx = 2x = 4.0
//
// A Graph is not safe for concurrent use.
package autodiff

import (
	"fmt"

	"github.com/lemur-ml/lemur/internal/autodiff/ops"
	"github.com/lemur-ml/lemur/internal/kernel"
	"github.com/lemur-ml/lemur/internal/logger"
	"github.com/lemur-ml/lemur/internal/metrics"
)

// NodeID is a stable handle to a node inside its Graph. Ids are never
// reused, so a stale handle cannot resolve to a newer node.
type NodeID int64

// Graph owns every node created through it.
type Graph struct {
	nodes map[NodeID]*Tensor
	next  NodeID
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[NodeID]*Tensor)}
}

var defaultGraph = NewGraph()

// Default returns the process-wide graph used by the package-level
// creation helpers.
func Default() *Graph {
	return defaultGraph
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node resolves a handle. It reports false for freed or unknown ids.
func (g *Graph) Node(id NodeID) (*Tensor, bool) {
	t, ok := g.nodes[id]
	return t, ok
}

// register adds a node that takes ownership of data.
func (g *Graph) register(data *kernel.Tensor, op ops.OpID, inputs []NodeID, retainGrad bool) *Tensor {
	t := &Tensor{
		id:         g.next,
		graph:      g,
		data:       data,
		op:         op,
		inputs:     inputs,
		retainGrad: retainGrad,
	}
	g.nodes[t.id] = t
	g.next++
	metrics.GraphNodes.Inc()
	return t
}

// Free destroys a node and drops its references to its data and grad
// buffers. Views created from it keep the shared storage alive.
// Freeing nil or an already freed node is a no-op.
func (g *Graph) Free(t *Tensor) {
	if t == nil || t.freed {
		return
	}
	if t.graph != g {
		panic(fmt.Errorf("free: %w: node %d", ErrGraphMismatch, t.id))
	}
	t.data.Release()
	t.clearGrad()
	t.freed = true
	delete(g.nodes, t.id)
	metrics.GraphNodes.Dec()
	logger.Log.Debug("free", "node", t.id, "op", t.op.String())
}

// Reset frees every node in the graph.
func (g *Graph) Reset() {
	for _, t := range g.nodes {
		g.Free(t)
	}
}

// Mark returns the id the next node will get. Pass it to FreeSince to drop
// everything created after this point, e.g. one training step's
// intermediates.
func (g *Graph) Mark() NodeID {
	return g.next
}

// FreeSince frees every node whose id is >= mark.
func (g *Graph) FreeSince(mark NodeID) {
	for id, t := range g.nodes {
		if id >= mark {
			g.Free(t)
		}
	}
}

// ZeroGrad clears the grad of every node in the graph.
func (g *Graph) ZeroGrad() {
	for _, t := range g.nodes {
		t.clearGrad()
	}
}

// checkOperand validates that t can be used as an input in g.
func (g *Graph) checkOperand(t *Tensor) error {
	switch {
	case t == nil:
		return ErrNilTensor
	case t.freed:
		return fmt.Errorf("%w: node %d", ErrFreed, t.id)
	case t.graph != g:
		return fmt.Errorf("%w: node %d", ErrGraphMismatch, t.id)
	}
	return nil
}
