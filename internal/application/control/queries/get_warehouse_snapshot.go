package queries

import (
	"context"
	"fmt"

	"github.com/kestrel-robotics/warehouse-core/internal/application/mediator"
)

// AgentSnapshot is one row of a warehouse snapshot's agent index.
type AgentSnapshot struct {
	ID       int
	Status   string
	Row, Col int
}

// OrderSnapshot is one row of a warehouse snapshot's order index.
type OrderSnapshot struct {
	ID     int
	GateID int
	Status string
}

// RackSnapshot is one row of a warehouse snapshot's rack index.
type RackSnapshot struct {
	ID         int
	Allocated  bool
	StoredWeight float64
}

// SnapshotReader is the read-side port GetWarehouseSnapshotQuery depends
// on. It is backed by an indexed in-memory store (go-memdb) rebuilt from
// the domain aggregates after each tick, never the system of record
// itself — see internal/adapters/persistence/snapshotstore.
type SnapshotReader interface {
	AgentsByStatus(status string) ([]AgentSnapshot, error)
	OrdersByGate(gateID int) ([]OrderSnapshot, error)
	AllocatedRacks() ([]RackSnapshot, error)
	Tick() int
}

// GetWarehouseSnapshotQuery requests a read-model view of the warehouse,
// optionally filtered by agent status or delivery gate.
type GetWarehouseSnapshotQuery struct {
	AgentStatus string // optional filter, empty means "all statuses"
	GateID      int    // optional filter, 0 means "all gates"
}

// GetWarehouseSnapshotResponse is the assembled read-model view.
type GetWarehouseSnapshotResponse struct {
	Tick            int
	Agents          []AgentSnapshot
	Orders          []OrderSnapshot
	AllocatedRacks  []RackSnapshot
}

// GetWarehouseSnapshotHandler serves GetWarehouseSnapshotQuery from the
// indexed snapshot store rather than scanning the live aggregates,
// mirroring the teacher's read-model/write-model CQRS split.
type GetWarehouseSnapshotHandler struct {
	reader SnapshotReader
}

func NewGetWarehouseSnapshotHandler(reader SnapshotReader) *GetWarehouseSnapshotHandler {
	return &GetWarehouseSnapshotHandler{reader: reader}
}

func (h *GetWarehouseSnapshotHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetWarehouseSnapshotQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetWarehouseSnapshotQuery")
	}

	agents, err := h.reader.AgentsByStatus(query.AgentStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}

	orders, err := h.reader.OrdersByGate(query.GateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	racks, err := h.reader.AllocatedRacks()
	if err != nil {
		return nil, fmt.Errorf("failed to list allocated racks: %w", err)
	}

	return &GetWarehouseSnapshotResponse{
		Tick:           h.reader.Tick(),
		Agents:         agents,
		Orders:         orders,
		AllocatedRacks: racks,
	}, nil
}
