// Package metrics exposes Prometheus instrumentation for dispatch, the
// backward pass and kernel buffer memory.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OpForwardTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lemur_op_forward_total",
		Help: "Forward kernel invocations per op",
	}, []string{"op"})

	OpBackwardTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lemur_op_backward_total",
		Help: "Backward kernel invocations per op",
	}, []string{"op"})

	DispatchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lemur_dispatch_errors_total",
		Help: "Validation failures at dispatch time per op",
	}, []string{"op"})

	BackwardNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lemur_backward_nodes",
		Help:    "Nodes visited per backward pass",
		Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024},
	})

	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lemur_graph_nodes",
		Help: "Live graph nodes across all graphs",
	})

	BufferBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lemur_kernel_buffer_bytes",
		Help: "Bytes held by live kernel buffers",
	})
)

// RecordForward counts one forward kernel invocation.
func RecordForward(op string) {
	OpForwardTotal.WithLabelValues(op).Inc()
}

// RecordBackward counts one backward kernel invocation.
func RecordBackward(op string) {
	OpBackwardTotal.WithLabelValues(op).Inc()
}

// RecordDispatchError counts one rejected dispatch.
func RecordDispatchError(op string) {
	DispatchErrors.WithLabelValues(op).Inc()
}
