// Copyright 2026 Lemur ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemur-ml/lemur/autodiff"
	"github.com/lemur-ml/lemur/kernel"
)

func TestPublicAPI_ViewSumBackward(t *testing.T) {
	g := autodiff.NewGraph()
	a, err := g.Arange(32, true)
	require.NoError(t, err)
	x, err := autodiff.View(a, g.Descriptor(1, 1, 2, 4, 4), true)
	require.NoError(t, err)
	assert.Equal(t, kernel.MustShape(1, 1, 2, 4, 4), x.Shape())

	y, err := autodiff.SumAll(x, false)
	require.NoError(t, err)
	require.NoError(t, g.Backward(y))
	assert.Equal(t, []float32{496}, y.Values())
	for _, v := range x.GradValues() {
		assert.Equal(t, float32(1), v)
	}
	assert.Equal(t, "unknown", autodiff.OpName(autodiff.TotalOps))
	assert.ErrorIs(t, autodiff.Compile(y), autodiff.ErrNotImplemented)
}
