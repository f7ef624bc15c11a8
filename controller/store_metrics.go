package controller

import (
	"context"

	"github.com/gridsnake/engine/rules"
	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentStore wraps all store methods to instrument the underlying calls.
func InstrumentStore(s Store) Store { return &metrics{s} }

var (
	storeCalls = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "snake",
			Subsystem: "store",
			Name:      "calls",
			Help:      "Calls processed by the frame store.",
		},
		[]string{"method"},
	)
)

func instrument(method string) func() {
	t := prometheus.NewTimer(storeCalls.WithLabelValues(method))
	return func() { t.ObserveDuration() }
}

func init() {
	prometheus.MustRegister(storeCalls)
}

type metrics struct{ s Store }

func (m *metrics) PushFrame(c context.Context, f *rules.Frame) error {
	defer instrument("PushFrame")()
	return m.s.PushFrame(c, f)
}

func (m *metrics) ListFrames(c context.Context, after int64, limit int) ([]*rules.Frame, error) {
	defer instrument("ListFrames")()
	return m.s.ListFrames(c, after, limit)
}

func (m *metrics) LastFrame(c context.Context) (*rules.Frame, error) {
	defer instrument("LastFrame")()
	return m.s.LastFrame(c)
}
