package provisioning

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/jiraseed/internal/platform/jira"
)

// Metrics holds the run metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	resources     *prometheus.CounterVec
	requests      *prometheus.CounterVec
	phaseDuration *prometheus.HistogramVec
}

// NewMetrics creates metrics registered on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		resources: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "jiraseed",
				Subsystem: "provisioning",
				Name:      "resources_total",
				Help:      "Total number of reconciled resources by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "jiraseed",
				Subsystem: "gateway",
				Name:      "requests_total",
				Help:      "Total number of Jira REST requests by method and status code",
			},
			[]string{"method", "code"},
		),
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "jiraseed",
				Subsystem: "provisioning",
				Name:      "phase_duration_seconds",
				Help:      "Duration of provisioning phases in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
			},
			[]string{"phase"},
		),
	}
	m.Registry.MustRegister(m.resources, m.requests, m.phaseDuration)
	return m
}

// RecordOutcome counts one reconciled resource.
func (m *Metrics) RecordOutcome(kind string, outcome Outcome) {
	if m == nil {
		return
	}
	m.resources.WithLabelValues(kind, string(outcome)).Inc()
}

// ResourceCounter returns the counter for kind and outcome. A nil *Metrics
// returns an unregistered counter that stays at zero.
func (m *Metrics) ResourceCounter(kind string, outcome Outcome) prometheus.Counter {
	if m == nil {
		return discardedCounter()
	}
	return m.resources.WithLabelValues(kind, string(outcome))
}

// RequestCounter returns the counter for method and code. A nil *Metrics
// returns an unregistered counter that stays at zero.
func (m *Metrics) RequestCounter(method, code string) prometheus.Counter {
	if m == nil {
		return discardedCounter()
	}
	return m.requests.WithLabelValues(method, code)
}

func discardedCounter() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{Namespace: "jiraseed", Name: "discarded_total"})
}

// RecordRequest counts one gateway call. code is the HTTP status, or
// "transport_error" when no response was received.
func (m *Metrics) RecordRequest(method, code string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, code).Inc()
}

// ObservePhase records a phase duration.
func (m *Metrics) ObservePhase(phase string, d time.Duration) {
	if m == nil {
		return
	}
	m.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// WriteToTextfile writes the metrics in the node-exporter textfile format.
func (m *Metrics) WriteToTextfile(path string) error {
	if m == nil {
		return errors.New("metrics are not enabled")
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}

// InstrumentGateway wraps gw so that every call is counted in m.
func InstrumentGateway(gw jira.Gateway, m *Metrics) jira.Gateway {
	if m == nil {
		return gw
	}
	return &instrumentedGateway{next: gw, metrics: m}
}

type instrumentedGateway struct {
	next    jira.Gateway
	metrics *Metrics
}

func (g *instrumentedGateway) Read(ctx context.Context, r jira.Resource) (*jira.Response, error) {
	resp, err := g.next.Read(ctx, r)
	if err != nil {
		g.metrics.RecordRequest(http.MethodGet, "transport_error")
		return nil, err
	}
	g.metrics.RecordRequest(http.MethodGet, strconv.Itoa(resp.Status))
	return resp, nil
}

func (g *instrumentedGateway) Create(ctx context.Context, r jira.Resource, doc jira.Document) (jira.Document, error) {
	out, err := g.next.Create(ctx, r, doc)
	g.metrics.RecordRequest(http.MethodPost, writeCode(err))
	return out, err
}

func (g *instrumentedGateway) Replace(ctx context.Context, r jira.Resource, doc jira.Document) (jira.Document, error) {
	out, err := g.next.Replace(ctx, r, doc)
	g.metrics.RecordRequest(http.MethodPut, writeCode(err))
	return out, err
}

func (g *instrumentedGateway) Delete(ctx context.Context, r jira.Resource) error {
	err := g.next.Delete(ctx, r)
	g.metrics.RecordRequest(http.MethodDelete, writeCode(err))
	return err
}

func writeCode(err error) string {
	if err == nil {
		return "2xx"
	}
	var remoteErr *jira.RemoteError
	if errors.As(err, &remoteErr) {
		return strconv.Itoa(remoteErr.Status)
	}
	return "transport_error"
}
