// Package metrics exposes Prometheus instrumentation for VRF
// prove/verify calls: an operation counter and a latency histogram per
// VRF variant, registered at package init via prometheus.MustRegister.
// This is optional instrumentation a caller may ignore entirely.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// ProveOps counts prove() calls by VRF variant and outcome.
	ProveOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ringvrf_prove_total",
		Help: "Number of VRF prove operations, by variant and outcome.",
	}, []string{"variant", "outcome"})

	// VerifyOps counts verify() calls by VRF variant and outcome.
	VerifyOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ringvrf_verify_total",
		Help: "Number of VRF verify operations, by variant and outcome.",
	}, []string{"variant", "outcome"})

	// ProveDuration records prove() latency by VRF variant.
	ProveDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ringvrf_prove_duration_seconds",
		Help:    "Latency of VRF prove operations, by variant.",
		Buckets: prometheus.DefBuckets,
	}, []string{"variant"})

	// VerifyDuration records verify() latency by VRF variant.
	VerifyDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ringvrf_verify_duration_seconds",
		Help:    "Latency of VRF verify operations, by variant.",
		Buckets: prometheus.DefBuckets,
	}, []string{"variant"})
)

func init() {
	prometheus.MustRegister(ProveOps, VerifyOps, ProveDuration, VerifyDuration)
}
