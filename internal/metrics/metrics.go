package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	analysesTotal    *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	signalsTotal     *prometheus.CounterVec
	fetchesTotal     *prometheus.CounterVec
	llmRequestsTotal *prometheus.CounterVec
	archiveWrites    *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickr_analyses_total",
			Help: "Total number of analyses by outcome",
		},
		[]string{"outcome"},
	)
	r.analysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tickr_analysis_duration_seconds",
			Help:    "Indicator computation and report formatting time in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		},
	)
	r.signalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickr_signals_total",
			Help: "Total number of signal tags emitted",
		},
		[]string{"tag"},
	)
	r.fetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickr_history_fetches_total",
			Help: "Total number of price history fetches",
		},
		[]string{"collector", "status"},
	)
	r.llmRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickr_llm_requests_total",
			Help: "Total number of chat model requests",
		},
		[]string{"provider", "status"},
	)
	r.archiveWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickr_archive_writes_total",
			Help: "Total number of report archive writes",
		},
		[]string{"status"},
	)

	reg.MustRegister(r.analysesTotal)
	reg.MustRegister(r.analysisDuration)
	reg.MustRegister(r.signalsTotal)
	reg.MustRegister(r.fetchesTotal)
	reg.MustRegister(r.llmRequestsTotal)
	reg.MustRegister(r.archiveWrites)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordAnalysis records one analysis run and how it ended.
func (r *Registry) RecordAnalysis(outcome string, duration float64) {
	r.analysesTotal.WithLabelValues(outcome).Inc()
	r.analysisDuration.Observe(duration)
}

// RecordSignal records an emitted signal tag.
func (r *Registry) RecordSignal(tag string) {
	r.signalsTotal.WithLabelValues(tag).Inc()
}

// RecordFetch records a history fetch against a collector.
func (r *Registry) RecordFetch(collector string, err error) {
	r.fetchesTotal.WithLabelValues(collector, outcome(err)).Inc()
}

// RecordLLMRequest records a chat model call.
func (r *Registry) RecordLLMRequest(provider string, err error) {
	r.llmRequestsTotal.WithLabelValues(provider, outcome(err)).Inc()
}

// RecordArchiveWrite records a report archive write.
func (r *Registry) RecordArchiveWrite(err error) {
	r.archiveWrites.WithLabelValues(outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
