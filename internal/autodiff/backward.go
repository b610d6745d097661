package autodiff

import (
	"fmt"

	"github.com/lemur-ml/lemur/internal/autodiff/ops"
	"github.com/lemur-ml/lemur/internal/kernel"
	"github.com/lemur-ml/lemur/internal/logger"
	"github.com/lemur-ml/lemur/internal/metrics"
)

// visit states for the topological sort.
const (
	unvisited = iota
	onStack
	done
)

// BackwardOrder returns the nodes reachable from root in the order the
// backward pass processes them: every node comes before all of its inputs.
// A node reachable along several paths appears once.
func (g *Graph) BackwardOrder(root *Tensor) ([]*Tensor, error) {
	if err := g.checkOperand(root); err != nil {
		return nil, err
	}
	state := make(map[NodeID]int)
	post := make([]*Tensor, 0, 16)

	var visit func(t *Tensor) error
	visit = func(t *Tensor) error {
		switch state[t.id] {
		case done:
			return nil
		case onStack:
			panic(fmt.Errorf("%w: node %d", ErrCycle, t.id))
		}
		state[t.id] = onStack
		for _, h := range t.inputs {
			in, ok := g.nodes[h]
			if !ok {
				return fmt.Errorf("%w: node %d (input of %d)", ErrFreed, h, t.id)
			}
			if err := visit(in); err != nil {
				return err
			}
		}
		state[t.id] = done
		post = append(post, t)
		return nil
	}
	if err := visit(root); err != nil {
		return nil, err
	}

	// Post-order puts inputs first; reverse it so consumers come first.
	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post, nil
}

// Backward propagates gradients from root to every node it depends on.
//
// Algorithm:
//  1. Order the reachable nodes so consumers precede their inputs
//  2. Seed root with ones (root's grad is set, not accumulated)
//  3. For each node, ask its op for every input's gradient and sum the
//     contributions into that input's pending seed
//  4. Once a node has propagated, its seed is folded into Grad() if the
//     node is a leaf or retains grads, and released otherwise
//
// Leaf grads accumulate across calls; use ZeroGrad to reset them.
func (g *Graph) Backward(root *Tensor) error {
	if err := g.checkOperand(root); err != nil {
		return fmt.Errorf("backward: %w", err)
	}
	if root.IsLeaf() {
		return fmt.Errorf("backward: %w: node %d is a leaf", ErrNoGraph, root.id)
	}
	order, err := g.BackwardOrder(root)
	if err != nil {
		return fmt.Errorf("backward: %w", err)
	}

	ones := kernel.EmptyLike(root.data)
	ones.Fill(1)
	seeds := map[NodeID]*kernel.Tensor{root.id: ones}

	for _, node := range order {
		seed, ok := seeds[node.id]
		if !ok {
			continue
		}
		delete(seeds, node.id)

		if !node.IsLeaf() {
			g.propagate(node, seed, seeds)
		}

		switch {
		case node == root:
			node.clearGrad()
			node.grad = seed
		case node.IsLeaf() || node.retainGrad:
			node.accumulateGrad(seed)
		default:
			seed.Release()
		}
	}

	metrics.BackwardNodes.Observe(float64(len(order)))
	logger.Log.Debug("backward", "root", root.id, "nodes", len(order))
	return nil
}

// propagate runs node's backward kernel once per input and sums each
// contribution into the input's pending seed.
func (g *Graph) propagate(node *Tensor, seed *kernel.Tensor, seeds map[NodeID]*kernel.Tensor) {
	entry, err := ops.Lookup(node.op)
	if err != nil {
		panic(fmt.Sprintf("autodiff: node %d: %v", node.id, err))
	}
	ins := make([]*kernel.Tensor, len(node.inputs))
	for i, h := range node.inputs {
		ins[i] = g.nodes[h].data
	}
	for i, h := range node.inputs {
		contrib := entry.Op.Backward(node.data, ins, seed, i)
		metrics.RecordBackward(entry.Name)
		if contrib == nil {
			continue
		}
		if contrib.Shape() != ins[i].Shape() {
			panic(fmt.Sprintf("autodiff: %s gradient for input %d has shape %v, want %v",
				entry.Name, i, contrib.Shape(), ins[i].Shape()))
		}
		pending, ok := seeds[h]
		if !ok {
			seeds[h] = contrib
			continue
		}
		pending.Each(func(idx kernel.Index) {
			pending.AddAt(idx, contrib.At(idx))
		})
		contrib.Release()
	}
}
