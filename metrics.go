package main

import (
	"net/http"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-pluto/lattice/crdt"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewLatticeMetrics returns the counters the replica
// middlewares report to. Without an address to expose
// them on, all counters are discarded.
func NewLatticeMetrics(prometheusAddr string) *crdt.Metrics {

	if prometheusAddr == "" {
		return &crdt.Metrics{
			Applied: discard.NewCounter(),
			Skipped: discard.NewCounter(),
			Failed:  discard.NewCounter(),
			Merges:  discard.NewCounter(),
		}
	}

	labels := []string{"method"}

	return &crdt.Metrics{
		Applied: prometheus.NewCounterFrom(prom.CounterOpts{
			Namespace: "lattice",
			Subsystem: "replica",
			Name:      "applied_total",
			Help:      "Number of updates and operations taking effect",
		}, labels),
		Skipped: prometheus.NewCounterFrom(prom.CounterOpts{
			Namespace: "lattice",
			Subsystem: "replica",
			Name:      "skipped_total",
			Help:      "Number of updates and operations whose precondition did not hold",
		}, labels),
		Failed: prometheus.NewCounterFrom(prom.CounterOpts{
			Namespace: "lattice",
			Subsystem: "replica",
			Name:      "failed_total",
			Help:      "Number of updates and operations the payload returned an error for",
		}, labels),
		Merges: prometheus.NewCounterFrom(prom.CounterOpts{
			Namespace: "lattice",
			Subsystem: "replica",
			Name:      "merges_total",
			Help:      "Number of states merged into replicas",
		}, nil),
	}
}

func runPromHTTP(logger log.Logger, addr string) {

	if addr == "" {
		level.Debug(logger).Log("msg", "prometheus addr is empty, not exposing prometheus metrics")
		return
	}

	http.Handle("/metrics", promhttp.Handler())

	level.Info(logger).Log("msg", "prometheus handler listening", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		level.Warn(logger).Log("msg", "failed to serve prometheus metrics", "err", err)
	}
}
