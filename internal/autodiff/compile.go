package autodiff

import "fmt"

// Compile is reserved for a future optimization/codegen pass over the
// graph rooted at root. It currently does nothing.
func Compile(root *Tensor) error {
	if root == nil {
		return fmt.Errorf("compile: %w", ErrNilTensor)
	}
	return fmt.Errorf("compile: %w", ErrNotImplemented)
}
