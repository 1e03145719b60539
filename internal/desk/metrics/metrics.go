// Package metrics exposes the Prometheus collectors of the desk service.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "agentdesk"

type Metrics struct {
	registry *prometheus.Registry

	httpReqCnt *prometheus.CounterVec
	httpDur    *prometheus.HistogramVec
	httpInfl   *prometheus.GaugeVec

	logins    *prometheus.CounterVec
	deletions *prometheus.CounterVec

	subscriptions *prometheus.GaugeVec
	pendingAgents prometheus.Gauge
	expiringSoon  prometheus.Gauge
}

func New() *Metrics {
	r := prometheus.NewRegistry()
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: r,
		httpReqCnt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
		}, []string{"method", "route", "status"}),
		httpDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds", Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpInfl: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "http_requests_inflight",
		}, []string{"route"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "login_attempts_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		deletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "agent_deletions_total",
			Help: "Agent deletions by client disposition and outcome.",
		}, []string{"disposition", "outcome"}),
		subscriptions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "client_subscriptions",
			Help: "Clients by plan and subscription status at the last sweep.",
		}, []string{"plan", "status"}),
		pendingAgents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "agents_pending_approval",
		}),
		expiringSoon: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "client_subscriptions_expiring_soon",
		}),
	}
	r.MustRegister(m.httpReqCnt, m.httpDur, m.httpInfl)
	r.MustRegister(m.logins, m.deletions)
	r.MustRegister(m.subscriptions, m.pendingAgents, m.expiringSoon)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Instrument wraps h and records requests under the route label.
func (m *Metrics) Instrument(route string, h http.Handler) http.Handler {
	if m == nil {
		return h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.httpInfl.WithLabelValues(route).Inc()
		defer m.httpInfl.WithLabelValues(route).Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		h.ServeHTTP(rec, r)

		m.httpReqCnt.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		m.httpDur.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) LoginAttempt(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AgentDeleted(disposition, outcome string) {
	if m == nil {
		return
	}
	if disposition == "" {
		disposition = "none"
	}
	m.deletions.WithLabelValues(disposition, outcome).Inc()
}

func (m *Metrics) SetSubscriptions(plan, status string, n int) {
	if m == nil {
		return
	}
	m.subscriptions.WithLabelValues(plan, status).Set(float64(n))
}

func (m *Metrics) SetPendingAgents(n int) {
	if m == nil {
		return
	}
	m.pendingAgents.Set(float64(n))
}

func (m *Metrics) SetExpiringSoon(n int) {
	if m == nil {
		return
	}
	m.expiringSoon.Set(float64(n))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
