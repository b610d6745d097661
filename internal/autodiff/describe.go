package autodiff

import (
	"fmt"
	"strings"
)

// GraphString renders the DAG below t as a tree. A node reached a second
// time is printed once more, marked "(shared)", and not expanded.
//
//	sum#4 [1 1 1 1 1]
//	├── view#2 [1 1 2 4 4]
//	│   ├── leaf#0 [1 1 1 1 32]
//	│   └── leaf#1 [1 1 1 1 5]
//	└── leaf#3 [1 1 1 1 5]
func (t *Tensor) GraphString() string {
	var sb strings.Builder
	seen := make(map[NodeID]bool)
	t.describe(&sb, "", "", seen)
	return strings.TrimRight(sb.String(), "\n")
}

func (t *Tensor) describe(sb *strings.Builder, prefix, childPrefix string, seen map[NodeID]bool) {
	fmt.Fprintf(sb, "%s%s#%d %v", prefix, t.op, t.id, t.data.Shape())
	if t.retainGrad {
		sb.WriteString(" retain")
	}
	if seen[t.id] {
		sb.WriteString(" (shared)\n")
		return
	}
	seen[t.id] = true
	sb.WriteByte('\n')

	for i, h := range t.inputs {
		branch, next := "├── ", "│   "
		if i == len(t.inputs)-1 {
			branch, next = "└── ", "    "
		}
		in, ok := t.graph.nodes[h]
		if !ok {
			fmt.Fprintf(sb, "%s%s<freed #%d>\n", childPrefix, branch, h)
			continue
		}
		in.describe(sb, childPrefix+branch, childPrefix+next, seen)
	}
}
