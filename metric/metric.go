package metric

import (
	"github.com/anyproto/any-sync/app"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const CName = "metric"

func New() Metric {
	return new(metric)
}

// Metric owns the process prometheus registry; components register their
// collectors on it and the api serves it.
type Metric interface {
	Registry() *prometheus.Registry
	app.Component
}

type metric struct {
	registry *prometheus.Registry
}

func (m *metric) Init(a *app.App) (err error) {
	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(collectors.NewGoCollector())
	return
}

func (m *metric) Name() (name string) {
	return CName
}

func (m *metric) Registry() *prometheus.Registry {
	return m.registry
}
