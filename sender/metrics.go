package sender

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	sendCount    atomic.Int64
	sendTokens   atomic.Int64
	sendFailures atomic.Int64
}

func registerMetrics(reg *prometheus.Registry, s *sender) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "push",
		Subsystem: "sender",
		Name:      "send_count",
		Help:      "total count of batch send operations",
	}, func() float64 {
		return float64(s.metrics.sendCount.Load())
	}))
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "push",
		Subsystem: "sender",
		Name:      "send_tokens",
		Help:      "total count of tokens submitted to the transport",
	}, func() float64 {
		return float64(s.metrics.sendTokens.Load())
	}))
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "push",
		Subsystem: "sender",
		Name:      "send_failures",
		Help:      "total count of per-token delivery failures",
	}, func() float64 {
		return float64(s.metrics.sendFailures.Load())
	}))
}
