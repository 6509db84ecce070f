package consumer

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/randalmurphal/eventroute/pkg/eventroute"
)

const prometheusNamespace = "eventroute"

// Prometheus counts received events by level, tag and name.
type Prometheus struct {
	events *prometheus.CounterVec
}

// NewPrometheus creates the counter and registers it with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: prometheusNamespace,
		Name:      "events_total",
		Help:      "Number of events received, by level, tag and name.",
	}, []string{"level", "tag", "name"})

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if err := reg.Register(events); err != nil {
		return nil, err
	}
	return &Prometheus{events: events}, nil
}

// Callback returns the callback to register.
func (p *Prometheus) Callback() eventroute.Callback {
	return eventroute.Bound((*Prometheus).observe, p)
}

func (p *Prometheus) observe(_ context.Context, evt eventroute.Event, _ eventroute.EventContext) error {
	p.events.WithLabelValues(evt.Level.String(), evt.Type, evt.Name).Inc()
	return nil
}

// Collector returns the underlying counter vector.
func (p *Prometheus) Collector() *prometheus.CounterVec {
	return p.events
}

// Handler exposes g via an http.Handler. A nil g uses the default gatherer.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
