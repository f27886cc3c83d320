// Package metrics exports conduit channel activity as prometheus metrics.
//
//	c := metrics.NewCollector("myapp")
//	prometheus.MustRegister(c)
//	tx, rx, err := conduit.New[int](8, conduit.WithObserver(c.Observe))
package metrics

import (
	"github.com/baxromumarov/conduit"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector turns conduit events into prometheus metrics. One Collector
// may observe any number of channels; series are labelled by mode.
type Collector struct {
	sent         *prometheus.CounterVec
	received     *prometheus.CounterVec
	disconnected *prometheus.CounterVec
	open         *prometheus.GaugeVec
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a Collector whose metric names are prefixed with
// namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{
		sent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "conduit",
				Name:      "sent_total",
				Help:      "Values delivered by senders.",
			},
			[]string{"mode"},
		),
		received: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "conduit",
				Name:      "received_total",
				Help:      "Values returned to receivers.",
			},
			[]string{"mode"},
		),
		disconnected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "conduit",
				Name:      "disconnected_total",
				Help:      "Operations that failed because the opposite role had no open endpoint.",
			},
			[]string{"mode", "role"},
		),
		open: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "conduit",
				Name:      "open_endpoints",
				Help:      "Endpoints currently open.",
			},
			[]string{"mode", "role"},
		),
	}
}

// Observe is a [conduit.Observer]. Pass it to [conduit.WithObserver].
func (c *Collector) Observe(e conduit.Event) {
	mode := e.Mode.String()
	switch e.Kind {
	case conduit.EventOpened:
		c.open.WithLabelValues(mode, e.Role.String()).Inc()
	case conduit.EventClosed:
		c.open.WithLabelValues(mode, e.Role.String()).Dec()
	case conduit.EventSent:
		c.sent.WithLabelValues(mode).Inc()
	case conduit.EventReceived:
		c.received.WithLabelValues(mode).Inc()
	case conduit.EventDisconnected:
		c.disconnected.WithLabelValues(mode, e.Role.String()).Inc()
	}
}

// Describe implements [prometheus.Collector].
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.sent.Describe(ch)
	c.received.Describe(ch)
	c.disconnected.Describe(ch)
	c.open.Describe(ch)
}

// Collect implements [prometheus.Collector].
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.sent.Collect(ch)
	c.received.Collect(ch)
	c.disconnected.Collect(ch)
	c.open.Collect(ch)
}
