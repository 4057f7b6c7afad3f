package apicore

//
// Metrics definitions
//

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for metricCallsCount.
const (
	outcomeOK              = "ok"
	outcomeAPIFailure      = "api_failure"
	outcomeParseFailure    = "parse_failure"
	outcomeTransportFailed = "transport_failure"
)

var (
	// metricCallsCount counts the completed calls by method and outcome.
	metricCallsCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goflickr_calls_total",
		Help: "Total number of completed API calls",
	}, []string{"method", "outcome"})

	// metricCallsInflight gauges the number of calls currently inflight.
	metricCallsInflight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "goflickr_calls_inflight",
		Help: "The number of API calls currently inflight",
	})
)
