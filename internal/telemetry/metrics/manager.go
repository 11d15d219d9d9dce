package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests            *prometheus.CounterVec
	CounterHandleRequestPanic  prometheus.Counter
	CounterRateLimitedRequests prometheus.Counter
	CounterWorkoutsCreated     prometheus.Counter
	CounterWeightsLogged       prometheus.Counter
	CounterAdmissionRejections *prometheus.CounterVec
	CounterWorkoutsCacheHits   *prometheus.CounterVec

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("backend", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("backend", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterRateLimitedRequests := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited_requests",
		Help:      "The total number of rate limited requests",
	})
	counterWorkoutsCreated := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_created",
		Help:      "The total number of created workouts",
	})
	counterWeightsLogged := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "weights_logged",
		Help:      "The total number of logged weight entries",
	})
	counterAdmissionRejections := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "admission_rejections",
		Help:      "Writes rejected by daily/saved-item limits",
	}, []string{"limit"})
	counterWorkoutsCacheHits := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_cache",
		Help:      "Workouts list cache outcomes by result",
	}, []string{"result"})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})

	return &Manager{
		CounterRequests:            counterRequests,
		CounterHandleRequestPanic:  counterHandleRequestPanic,
		CounterRateLimitedRequests: counterRateLimitedRequests,
		CounterWorkoutsCreated:     counterWorkoutsCreated,
		CounterWeightsLogged:       counterWeightsLogged,
		CounterAdmissionRejections: counterAdmissionRejections,
		CounterWorkoutsCacheHits:   counterWorkoutsCacheHits,
		GaugeRequests:              gaugeRequests,
		GaugeLifeSignal:            gaugeLifeSignal,
		HistogramRequestDuration:   histogramRequestDuration,
	}
}
