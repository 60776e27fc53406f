// Package metrics exposes the Prometheus instruments shared across the
// fulfillment service. Collectors are registered once at package load and
// served through the HTTP adapter's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransitionsApplied counts committed status transitions by from/to status.
	TransitionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fulfillment",
		Name:      "order_transitions_total",
		Help:      "Committed order status transitions.",
	}, []string{"from", "to"})

	// SideEffectFailures counts side channel sends that failed after a
	// transition had already committed.
	SideEffectFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fulfillment",
		Name:      "side_effect_failures_total",
		Help:      "Failed side effect sends after committed transitions.",
	}, []string{"effect"})

	// OverdueProductionOrders tracks orders sitting in production past their
	// agreed deadline, refreshed by the deadline watchdog job.
	OverdueProductionOrders = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "fulfillment",
		Name:      "overdue_production_orders",
		Help:      "Orders currently in production past their deadline.",
	})
)
