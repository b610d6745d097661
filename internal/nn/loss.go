package nn

import (
	"fmt"

	"github.com/lemur-ml/lemur/internal/autodiff"
	"github.com/lemur-ml/lemur/internal/autodiff/ops"
	"github.com/lemur-ml/lemur/internal/kernel"
)

// MSELoss computes the mean squared error: mean((predictions - targets)²).
//
// The mean is a sum followed by a multiply with a constant 1/N leaf, so the
// loss is an ordinary graph node and backward reaches the predictions.
//
//	var mse nn.MSELoss
//	loss, err := mse.Forward(pred, target)
//	err = g.Backward(loss)
type MSELoss struct{}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss() *MSELoss {
	return &MSELoss{}
}

// Forward returns a [1 1 1 1 1] node holding the mean squared error.
func (MSELoss) Forward(predictions, targets *autodiff.Tensor) (*autodiff.Tensor, error) {
	if predictions == nil || targets == nil {
		return nil, fmt.Errorf("mse: %w", autodiff.ErrNilTensor)
	}
	if predictions.Shape() != targets.Shape() {
		return nil, fmt.Errorf("mse: %w: predictions %v, targets %v",
			ops.ErrShapeMismatch, predictions.Shape(), targets.Shape())
	}

	diff, err := autodiff.Sub(predictions, targets, false)
	if err != nil {
		return nil, fmt.Errorf("mse: %w", err)
	}
	squared, err := autodiff.Mul(diff, diff, false)
	if err != nil {
		return nil, fmt.Errorf("mse: %w", err)
	}
	total, err := autodiff.SumAll(squared, false)
	if err != nil {
		return nil, fmt.Errorf("mse: %w", err)
	}
	n := predictions.Data().NumElements()
	scale, err := predictions.Graph().Full(kernel.MustShape(1), 1/float32(n), false)
	if err != nil {
		return nil, fmt.Errorf("mse: %w", err)
	}
	return autodiff.Mul(total, scale, false)
}

// Parameters returns nil: loss functions have no trainable parameters.
func (MSELoss) Parameters() []*Parameter {
	return nil
}
