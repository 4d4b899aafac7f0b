package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// WarehouseMetricsCollector records tick cadence, order dispatch, and
// planner outcomes, the simulation-core analogue of the teacher's
// container/navigation/financial collectors.
type WarehouseMetricsCollector struct {
	tickDuration    prometheus.Histogram
	ticksTotal      prometheus.Counter
	ordersDispatched *prometheus.CounterVec
	planDuration    *prometheus.HistogramVec
	plansTotal      *prometheus.CounterVec
	cellsReserved   prometheus.Histogram
}

// NewWarehouseMetricsCollector creates a new warehouse metrics collector.
func NewWarehouseMetricsCollector() *WarehouseMetricsCollector {
	return &WarehouseMetricsCollector{
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tick_duration_seconds",
			Help:      "Time spent advancing the warehouse one simulation step",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}),
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "ticks_total",
			Help:      "Total number of simulation ticks processed",
		}),
		ordersDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "orders_dispatched_total",
			Help:      "Total number of orders reaching a gate, by kind",
		}, []string{"kind"}),
		planDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "plan_duration_seconds",
			Help:      "Time spent computing a route plan, by outcome",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"outcome"}),
		plansTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "plans_total",
			Help:      "Total number of planner invocations, by outcome",
		}, []string{"outcome"}),
		cellsReserved: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "plan_cells_reserved",
			Help:      "Number of grid cells a committed plan reserved",
			Buckets:   prometheus.LinearBuckets(1, 4, 10),
		}),
	}
}

// Register registers all warehouse metrics with the Prometheus registry.
func (c *WarehouseMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	collectors := []prometheus.Collector{
		c.tickDuration,
		c.ticksTotal,
		c.ordersDispatched,
		c.planDuration,
		c.plansTotal,
		c.cellsReserved,
	}

	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// RecordTick records a completed simulation tick.
func (c *WarehouseMetricsCollector) RecordTick(durationSeconds float64) {
	c.tickDuration.Observe(durationSeconds)
	c.ticksTotal.Inc()
}

// RecordOrderDispatched records an order reaching a gate.
func (c *WarehouseMetricsCollector) RecordOrderDispatched(kind string) {
	c.ordersDispatched.WithLabelValues(kind).Inc()
}

// RecordPlanComputed records a planner invocation.
func (c *WarehouseMetricsCollector) RecordPlanComputed(outcome string, durationSeconds float64) {
	c.planDuration.WithLabelValues(outcome).Observe(durationSeconds)
	c.plansTotal.WithLabelValues(outcome).Inc()
}

// RecordCellsReserved records how many grid cells a plan reserved.
func (c *WarehouseMetricsCollector) RecordCellsReserved(n int) {
	c.cellsReserved.Observe(float64(n))
}
