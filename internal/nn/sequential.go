package nn

import (
	"fmt"

	"github.com/lemur-ml/lemur/internal/autodiff"
)

// Sequential chains modules: each module's output is the next one's input.
//
//	model := nn.NewSequential(linear1, nn.NewReLU(), linear2)
//	out, err := model.Forward(x)
type Sequential struct {
	modules []Module
}

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{modules: modules}
}

// Forward applies all modules in order.
func (s *Sequential) Forward(input *autodiff.Tensor) (*autodiff.Tensor, error) {
	out := input
	for i, m := range s.modules {
		next, err := m.Forward(out)
		if err != nil {
			return nil, fmt.Errorf("sequential layer %d: %w", i, err)
		}
		out = next
	}
	return out, nil
}

// Parameters collects the parameters of every module.
func (s *Sequential) Parameters() []*Parameter {
	var params []*Parameter
	for _, m := range s.modules {
		params = append(params, m.Parameters()...)
	}
	return params
}

// Len returns the number of modules.
func (s *Sequential) Len() int {
	return len(s.modules)
}
