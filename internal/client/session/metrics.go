package session

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes.
const (
	OutcomeOK               = "ok"
	OutcomeNotAuthenticated = "not_authenticated"
	OutcomeAuthExpired      = "auth_expired"
	OutcomeRetried          = "retried"
	OutcomeTransportError   = "transport_error"
)

// Refresh outcomes.
const (
	RefreshSuccess   = "success"
	RefreshFailure   = "failure"
	RefreshNoToken   = "no_refresh_token"
	RefreshCoalesced = "coalesced"
)

// Sign-out reasons.
const (
	SignOutExplicit      = "explicit"
	SignOutNoRefresh     = "no_refresh_token"
	SignOutRefreshFailed = "refresh_failed"
)

// Recorder receives session events.
type Recorder interface {
	Request(outcome string)
	Refresh(outcome string)
	SignOut(reason string)
}

type NopRecorder struct{}

func (NopRecorder) Request(string) {}
func (NopRecorder) Refresh(string) {}
func (NopRecorder) SignOut(string) {}

// PrometheusRecorder counts session events on a prometheus registry.
type PrometheusRecorder struct {
	requests  *prometheus.CounterVec
	refreshes *prometheus.CounterVec
	signOuts  *prometheus.CounterVec
}

func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	r := &PrometheusRecorder{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dysh",
			Subsystem: "session",
			Name:      "requests_total",
			Help:      "Authenticated requests by outcome.",
		}, []string{"outcome"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dysh",
			Subsystem: "session",
			Name:      "refresh_total",
			Help:      "Token refresh attempts by outcome.",
		}, []string{"outcome"}),
		signOuts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dysh",
			Subsystem: "session",
			Name:      "signouts_total",
			Help:      "Sign-outs by reason.",
		}, []string{"reason"}),
	}

	for _, c := range []prometheus.Collector{r.requests, r.refreshes, r.signOuts} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *PrometheusRecorder) Request(outcome string) {
	r.requests.WithLabelValues(outcome).Inc()
}

func (r *PrometheusRecorder) Refresh(outcome string) {
	r.refreshes.WithLabelValues(outcome).Inc()
}

func (r *PrometheusRecorder) SignOut(reason string) {
	r.signOuts.WithLabelValues(reason).Inc()
}
