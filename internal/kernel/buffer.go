package kernel

import (
	"sync/atomic"

	"github.com/lemur-ml/lemur/internal/metrics"
)

// elemSize is the byte size of one float32 element.
const elemSize = 4

// buffer is a reference-counted element store shared between a tensor and
// all of its views. Storage is dropped only when the last reference goes.
type buffer struct {
	data     []float32
	refCount atomic.Int32
}

// newBuffer creates a zeroed buffer with refCount = 1.
func newBuffer(n int) *buffer {
	buf := &buffer{data: make([]float32, n)}
	buf.refCount.Store(1)
	metrics.BufferBytes.Add(float64(n * elemSize))
	return buf
}

// addRef increments the reference count (views, Alias).
func (b *buffer) addRef() {
	b.refCount.Add(1)
}

// release decrements the reference count and drops storage at zero.
func (b *buffer) release() {
	if b.refCount.Add(-1) == 0 {
		metrics.BufferBytes.Sub(float64(len(b.data) * elemSize))
		b.data = nil
	}
}

// refs returns the current reference count.
func (b *buffer) refs() int {
	return int(b.refCount.Load())
}
