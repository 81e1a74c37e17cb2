package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	LLMRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "datagenie", Name: "llm_requests_total", Help: "Number of LLM generation calls by backend and status."},
		[]string{"backend", "status"},
	)
	LLMDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "datagenie", Name: "llm_request_duration_seconds", Help: "Duration of LLM generation calls by backend.", Buckets: prometheus.DefBuckets},
		[]string{"backend"},
	)
	PipelineExtractions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "datagenie", Name: "pipeline_extractions_total", Help: "Number of pipeline extraction attempts by outcome."},
		[]string{"outcome"},
	)
	StoreErrors = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "datagenie", Name: "store_errors_total", Help: "Number of document store failures."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(LLMRequests)
	reg.MustRegister(LLMDuration)
	reg.MustRegister(PipelineExtractions)
	reg.MustRegister(StoreErrors)
}
