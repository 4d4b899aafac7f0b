package dispatcher

import (
	"github.com/kestrel-robotics/warehouse-core/internal/domain/agent"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/grid"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/inventory"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/order"
)

// maxSupply is Σ_item min(order.pending[item], rack.stored[item]) for a
// collect order, or the full pending unit count (subject to capacity) for
// a refill order restricted to its single named rack (spec §4.4).
func maxSupply(o *order.Order, rack *inventory.Rack, catalogue *inventory.Catalogue) int {
	pending := o.Pending()
	switch o.Kind() {
	case order.Collect:
		total := 0
		for itemID, need := range pending {
			stored := rack.Stored(itemID)
			if stored < need {
				total += stored
			} else {
				total += need
			}
		}
		return total
	case order.Refill:
		if rack.ID() != o.RefillRackID() {
			return 0
		}
		items := make(map[int]int, len(pending))
		for id, q := range pending {
			items[id] = q
		}
		if order.AddedWeight(catalogue, items) > rack.AvailableCapacity()+1e-9 {
			return 0
		}
		total := 0
		for _, q := range pending {
			total += q
		}
		return total
	default:
		return 0
	}
}

// estimatedSteps is D_gate(R.pos) for an unallocated rack, or the merge
// cost the rack's current task reports, per spec §4.4. ok is false when
// the rack is unreachable from the order's gate, or allocated to a task
// that cannot be located.
func estimatedSteps(o *order.Order, rack *inventory.Rack, gates GateDistance, tasks TaskLocator) (int, bool) {
	if rack.IsAllocated() {
		t, found := tasks.TaskForRack(rack.ID())
		if !found {
			return 0, false
		}
		return t.EstimatedAddedSteps(o), true
	}
	d := gates.DistanceFromGate(o.GateID(), grid.Position{Row: rack.HomeRow(), Col: rack.HomeCol()})
	if d < 0 {
		return 0, false
	}
	return d, true
}

// selectRack picks the candidate minimising rank(R) = estimated_steps(R,
// order) / max_supply(R, order), discarding racks with zero supply or
// infinite cost, tie-breaking on smaller rack id (spec §4.4).
func selectRack(o *order.Order, candidates []*inventory.Rack, catalogue *inventory.Catalogue, gates GateDistance, tasks TaskLocator) (*inventory.Rack, bool) {
	var best *inventory.Rack
	bestRank := 0.0

	for _, rack := range candidates {
		supply := maxSupply(o, rack, catalogue)
		if supply <= 0 {
			continue
		}
		steps, ok := estimatedSteps(o, rack, gates, tasks)
		if !ok {
			continue
		}
		rank := float64(steps) / float64(supply)
		if best == nil || rank < bestRank || (rank == bestRank && rack.ID() < best.ID()) {
			best = rack
			bestRank = rank
		}
	}
	return best, best != nil
}

// effectiveWeight is the weight an agent carrying rack for this task must
// support: the rack's own container weight plus whatever is physically
// on it, plus (for refills) the weight about to be delivered (spec §8
// invariant 3).
func effectiveWeight(o *order.Order, rack *inventory.Rack, plan map[int]int, catalogue *inventory.Catalogue) float64 {
	w := rack.ContainerWeight() + rack.StoredWeight()
	if o.Kind() == order.Refill {
		w += order.AddedWeight(catalogue, plan)
	}
	return w
}

// selectAgent returns the agent that should carry rack for this task: the
// rack's existing allocating agent if already allocated (subject to
// capacity), otherwise the nearest capable ready agent (spec §4.4).
func selectAgent(rack *inventory.Rack, weight float64, readyAgents []*agent.Agent, agents AgentByID, dist RackDistance) (*agent.Agent, bool) {
	if allocatedID, ok := rack.AllocatedAgent(); ok {
		a, found := agents.AgentByID(allocatedID)
		if !found || a.LoadCapacity() < weight {
			return nil, false
		}
		return a, true
	}

	var best *agent.Agent
	bestDist := 0
	for _, a := range readyAgents {
		if a.LoadCapacity() < weight {
			continue
		}
		d := dist.DistanceToRack(rack.ID(), a.Position())
		if d < 0 {
			continue
		}
		if best == nil || d < bestDist || (d == bestDist && a.ID() < best.ID()) {
			best = a
			bestDist = d
		}
	}
	return best, best != nil
}
