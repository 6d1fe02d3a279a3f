package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests           *prometheus.CounterVec
	CounterHandleRequestPanic prometheus.Counter
	CounterPlansGenerated     prometheus.Counter
	CounterModelFailures      *prometheus.CounterVec
	CounterPlanParseFailures  *prometheus.CounterVec
	CounterPlansSaved         prometheus.Counter
	CounterRemoteStoreErrors  *prometheus.CounterVec
	CounterSpeechRequests     *prometheus.CounterVec
	CounterImageRequests      *prometheus.CounterVec
	CounterPDFExports         prometheus.Counter

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistGenerationDuration   prometheus.Histogram
	HistogramRequestDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("fitcoach", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("fitcoach", "test_server", reg), reg
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
	counterPlansGenerated := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "plans_generated",
		Help:      "The total number of successfully generated plans",
	})
	counterModelFailures := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "generation_model_failures",
		Help:      "Failed or empty generation attempts, per model",
	}, []string{"model"})
	counterPlanParseFailures := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "plan_parse_failures",
		Help:      "Model outputs rejected by the plan normalizer",
	}, []string{"reason"})
	counterPlansSaved := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "plans_saved",
		Help:      "The total number of plans saved to the plan store",
	})
	counterRemoteStoreErrors := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "remote_store_errors",
		Help:      "Swallowed remote plan store failures, per operation",
	}, []string{"op"})
	counterSpeechRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "speech_requests",
		Help:      "Speech synthesis requests, per outcome",
	}, []string{"outcome"})
	counterImageRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "image_requests",
		Help:      "Image generation requests, per outcome",
	}, []string{"outcome"})
	counterPDFExports := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "pdf_exports",
		Help:      "The total number of exported PDF documents",
	})

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

	histGenerationDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "plan_generation_duration_seconds",
		Help:      "Duration of a whole plan generation, all model fallbacks included",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
	})
	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"route", "method", "status_code"})

	return &Manager{
		CounterRequests:           counterRequests,
		CounterHandleRequestPanic: counterHandleRequestPanic,
		CounterPlansGenerated:     counterPlansGenerated,
		CounterModelFailures:      counterModelFailures,
		CounterPlanParseFailures:  counterPlanParseFailures,
		CounterPlansSaved:         counterPlansSaved,
		CounterRemoteStoreErrors:  counterRemoteStoreErrors,
		CounterSpeechRequests:     counterSpeechRequests,
		CounterImageRequests:      counterImageRequests,
		CounterPDFExports:         counterPDFExports,
		GaugeRequests:             gaugeRequests,
		GaugeLifeSignal:           gaugeLifeSignal,
		HistGenerationDuration:    histGenerationDuration,
		HistogramRequestDuration:  histogramRequestDuration,
	}
}
