package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dashboard"

// Outcomes used as label values.
const (
	OutcomeOk       = "ok"
	OutcomeError    = "error"
	OutcomeInactive = "inactive"
	OutcomeSkipped  = "skipped"
)

var (
	webhookRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "webhook",
		Name:      "requests_total",
		Help:      "Webhook requests segmented by webhook and outcome.",
	}, []string{"webhook", "outcome"})

	webhookDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "webhook",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution of webhook requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"webhook"})

	balanceLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "balance",
		Name:      "lookups_total",
		Help:      "Balance lookups segmented by explorer provider and outcome.",
	}, []string{"provider", "outcome"})

	levelDrift = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "levels",
		Name:      "drift_levels",
		Help:      "Number of levels whose backend count disagrees with the hashrate derived count.",
	})

	webhookFailures = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "webhook",
		Name:      "consecutive_failures",
		Help:      "Consecutive failed health probes per webhook.",
	}, []string{"webhook"})
)

func ObserveWebhook(webhook, outcome string, started time.Time) {
	webhookRequests.WithLabelValues(webhook, outcome).Inc()
	webhookDuration.WithLabelValues(webhook).Observe(time.Since(started).Seconds())
}

func ObserveBalanceLookup(provider, outcome string) {
	balanceLookups.WithLabelValues(provider, outcome).Inc()
}

func SetLevelDrift(levels int) {
	levelDrift.Set(float64(levels))
}

func SetWebhookFailures(webhook string, failures int) {
	webhookFailures.WithLabelValues(webhook).Set(float64(failures))
}

func Handler() http.Handler {
	return promhttp.Handler()
}
