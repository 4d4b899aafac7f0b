package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "warehouse"
	// Subsystem for daemon metrics
	subsystem = "daemon"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalWarehouseCollector is the singleton warehouse metrics collector.
	// Set by SetGlobalWarehouseCollector() when metrics are enabled.
	globalWarehouseCollector WarehouseMetricsRecorder
)

// WarehouseMetricsRecorder defines the interface domain/application code
// uses to record simulation-core events, mirroring the teacher's
// MetricsRecorder interface split (domain code depends on the narrow
// interface, never the concrete collector).
type WarehouseMetricsRecorder interface {
	RecordTick(durationSeconds float64)
	RecordOrderDispatched(kind string)
	RecordPlanComputed(outcome string, durationSeconds float64)
	RecordCellsReserved(n int)
}

// InitRegistry initializes the Prometheus registry.
// Should be called once at application startup if metrics are enabled.
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry.
// Returns nil if metrics are not initialized.
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled.
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalWarehouseCollector sets the global warehouse metrics collector.
func SetGlobalWarehouseCollector(collector WarehouseMetricsRecorder) {
	globalWarehouseCollector = collector
}

// RecordTick records a completed simulation tick globally.
func RecordTick(durationSeconds float64) {
	if globalWarehouseCollector != nil {
		globalWarehouseCollector.RecordTick(durationSeconds)
	}
}

// RecordOrderDispatched records an order reaching a gate globally.
func RecordOrderDispatched(kind string) {
	if globalWarehouseCollector != nil {
		globalWarehouseCollector.RecordOrderDispatched(kind)
	}
}

// RecordPlanComputed records a planner invocation globally.
func RecordPlanComputed(outcome string, durationSeconds float64) {
	if globalWarehouseCollector != nil {
		globalWarehouseCollector.RecordPlanComputed(outcome, durationSeconds)
	}
}

// RecordCellsReserved records how many grid cells a plan reserved globally.
func RecordCellsReserved(n int) {
	if globalWarehouseCollector != nil {
		globalWarehouseCollector.RecordCellsReserved(n)
	}
}
