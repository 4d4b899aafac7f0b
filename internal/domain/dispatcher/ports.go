// Package dispatcher implements rack ranking and agent selection for
// order dispatch (spec §4.4). It depends only on the ports below, never
// on a concrete warehouse, so it can be unit-tested against fakes.
package dispatcher

import (
	"github.com/kestrel-robotics/warehouse-core/internal/domain/agent"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/grid"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/inventory"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/order"
)

// RackCatalog resolves a rack id to its live instance.
type RackCatalog interface {
	RackByID(id int) (*inventory.Rack, bool)
}

// GateDistance is the one-way guide-map distance D_gate(pos), or a
// negative value if pos cannot reach gateID.
type GateDistance interface {
	DistanceFromGate(gateID int, pos grid.Position) int
}

// RackDistance is the guide-map distance D_R(pos) from a rack's own
// distance field, or a negative value if unreachable.
type RackDistance interface {
	DistanceToRack(rackID int, pos grid.Position) int
}

// TaskLocator resolves the task currently holding an allocated rack.
type TaskLocator interface {
	TaskForRack(rackID int) (*order.Task, bool)
}

// AgentByID resolves an agent id to its live instance — used when a
// candidate rack is already allocated to an agent outside ready_agents.
type AgentByID interface {
	AgentByID(id int) (*agent.Agent, bool)
}
