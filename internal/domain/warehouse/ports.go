package warehouse

import (
	"github.com/kestrel-robotics/warehouse-core/internal/domain/agent"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/grid"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/guidemap"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/inventory"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/order"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/planner"
)

var _ planner.PriorityResolver = (*Warehouse)(nil)
var _ planner.PlanDropper = (*Warehouse)(nil)
var _ planner.AgentLocator = (*Warehouse)(nil)
var _ planner.AgentByID = (*Warehouse)(nil)

// PriorityOf implements planner.PriorityResolver.
func (w *Warehouse) PriorityOf(agentID int) int {
	if a, ok := w.agents[agentID]; ok {
		return a.Priority()
	}
	return agentID
}

// DropPlan implements planner.PlanDropper.
func (w *Warehouse) DropPlan(agentID int) {
	a, ok := w.agents[agentID]
	if !ok {
		return
	}
	planner.DropPlan(w.grid, a, w.tick)
	_ = a.Block()
}

// AgentAt implements planner.AgentLocator, backed by the grid's own
// current-occupancy cell fields rather than a full scan of w.agents.
func (w *Warehouse) AgentAt(pos grid.Position) (int, bool) {
	cell, err := w.grid.CellAt(pos)
	if err != nil || !cell.HasAgent {
		return 0, false
	}
	return cell.AgentID, true
}

// AgentByID implements both planner.AgentByID and dispatcher.AgentByID.
func (w *Warehouse) AgentByID(id int) (*agent.Agent, bool) {
	a, ok := w.agents[id]
	return a, ok
}

// RackByID implements dispatcher.RackCatalog.
func (w *Warehouse) RackByID(id int) (*inventory.Rack, bool) {
	r, ok := w.racks[id]
	return r, ok
}

// DistanceFromGate implements dispatcher.GateDistance.
func (w *Warehouse) DistanceFromGate(gateID int, pos grid.Position) int {
	return w.gateMaps.DistanceTo(gateID, pos)
}

// DistanceToRack implements dispatcher.RackDistance.
func (w *Warehouse) DistanceToRack(rackID int, pos grid.Position) int {
	return w.rackMaps.DistanceTo(rackID, pos)
}

// TaskForRack implements dispatcher.TaskLocator.
func (w *Warehouse) TaskForRack(rackID int) (*order.Task, bool) {
	id, ok := w.taskByRack[rackID]
	if !ok {
		return nil, false
	}
	t, ok := w.tasks[id]
	return t, ok
}

// guideMapForPhase returns the guide map a task's current phase should be
// steering the carrying agent toward (spec §4.6): rack-bound phases use
// the rack's field, everything else heads for the gate.
func (w *Warehouse) guideMapForPhase(t *order.Task) *guidemap.GuideMap {
	switch t.Phase() {
	case order.PhaseApproachRack, order.PhaseReturnRack:
		return w.rackMaps.For(t.RackID())
	default:
		return w.gateMaps.For(t.GateID())
	}
}

func (w *Warehouse) guideMapForAgent(a *agent.Agent) *guidemap.GuideMap {
	taskID, ok := a.ActiveTask()
	if !ok {
		return nil
	}
	t, ok := w.tasks[taskID]
	if !ok {
		return nil
	}
	return w.guideMapForPhase(t)
}
