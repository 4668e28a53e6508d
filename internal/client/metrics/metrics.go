// Package metrics defines the Prometheus collectors of the client. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gophrecipes"

// Label values.
const (
	ResultHit     = "hit"
	ResultMiss    = "miss"
	ResultOK      = "ok"
	ResultError   = "error"
	ResultDenied  = "unauthorized"
	StatusOK      = "ok"
	StatusFailure = "error"
)

type Metrics struct {
	cacheRequests       *prometheus.CounterVec
	remoteRequests      *prometheus.CounterVec
	remoteDuration      *prometheus.HistogramVec
	preferenceMutations *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		cacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_requests_total",
				Help:      "Query cache lookups by cache name and result",
			},
			[]string{"cache", "result"},
		),
		remoteRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "remote_requests_total",
				Help:      "Recipe provider calls by operation and status",
			},
			[]string{"operation", "status"},
		),
		remoteDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "remote_request_duration_seconds",
				Help:      "Recipe provider call latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		preferenceMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "preference_mutations_total",
				Help:      "Preference mutations by operation and result",
			},
			[]string{"operation", "result"},
		),
	}

	for _, c := range []prometheus.Collector{m.cacheRequests, m.remoteRequests, m.remoteDuration, m.preferenceMutations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) CacheLookup(cache string, hit bool) {
	if m == nil {
		return
	}
	result := ResultMiss
	if hit {
		result = ResultHit
	}
	m.cacheRequests.WithLabelValues(cache, result).Inc()
}

func (m *Metrics) RemoteRequest(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	status := StatusOK
	if err != nil {
		status = StatusFailure
	}
	m.remoteRequests.WithLabelValues(operation, status).Inc()
	m.remoteDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// PreferenceMutation records one mutation outcome. result is one of
// ResultOK, ResultError or ResultDenied.
func (m *Metrics) PreferenceMutation(operation, result string) {
	if m == nil {
		return
	}
	m.preferenceMutations.WithLabelValues(operation, result).Inc()
}
