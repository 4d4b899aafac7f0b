package dispatcher

import (
	"sort"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/agent"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/inventory"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/order"
)

// DefaultMaxRacksPerOrder bounds how many new tasks a single Dispatch
// call will commit to one order before the redundant-rack removal pass
// trims the least-contributing ones (spec §9 design note: "greedy stage
// 1 plus the redundant-rack removal pass bounded by a configurable
// threshold on the current selected count").
const DefaultMaxRacksPerOrder = 4

// Dependencies are the ports Dispatch needs from its owning warehouse.
type Dependencies struct {
	Racks    RackCatalog
	Gates    GateDistance
	RackDist RackDistance
	Tasks    TaskLocator
	Agents   AgentByID
	Catalogue *inventory.Catalogue
	// MaxRacksPerOrder overrides DefaultMaxRacksPerOrder; zero selects
	// the default and a negative value disables the trimming pass.
	MaxRacksPerOrder int
}

// Dispatch runs the main loop of spec §4.4 against o, consuming from
// readyAgents and candidateRacks (both left untouched; Dispatch works
// from internal copies) and returns every newly-created task. Orders
// merged into an already-allocated rack's existing task are mutated in
// place and are not returned. nextTaskID mints a fresh task id each time
// a new task is created.
func Dispatch(o *order.Order, readyAgents []*agent.Agent, candidateRacks []*inventory.Rack, deps Dependencies, nextTaskID func() int) []*order.Task {
	remainingRacks := append([]*inventory.Rack(nil), candidateRacks...)
	remainingAgents := append([]*agent.Agent(nil), readyAgents...)
	var created []*order.Task
	filteredOnce := false

	for o.IsPending() && len(remainingRacks) > 0 {
		if len(remainingAgents) == 0 && !filteredOnce {
			remainingRacks = keepAllocatedOnly(remainingRacks)
			filteredOnce = true
		}

		rack, ok := selectRack(o, remainingRacks, deps.Catalogue, deps.Gates, deps.Tasks)
		if !ok {
			break
		}
		remainingRacks = removeRack(remainingRacks, rack.ID())

		plan := o.PlanItemsForTask(rack, deps.Catalogue)
		if plan == nil {
			continue
		}
		weight := effectiveWeight(o, rack, plan, deps.Catalogue)

		a, ok := selectAgent(rack, weight, remainingAgents, deps.Agents, deps.RackDist)
		if !ok {
			continue
		}

		if rack.IsAllocated() {
			if task, found := deps.Tasks.TaskForRack(rack.ID()); found {
				_ = task.AddOrder(o, rack, deps.Catalogue)
			}
			continue
		}

		if err := rack.Allocate(a.ID()); err != nil {
			continue
		}
		task := order.NewTask(nextTaskID(), a.ID(), rack.ID(), o)
		if err := o.AssignTask(task.ID(), rack, plan, deps.Catalogue); err != nil {
			rack.Deallocate()
			continue
		}
		created = append(created, task)
		remainingAgents = removeAgent(remainingAgents, a.ID())
	}

	return trimRedundantRacks(o, created, maxRacksOrDefault(deps.MaxRacksPerOrder), deps)
}

func maxRacksOrDefault(v int) int {
	if v == 0 {
		return DefaultMaxRacksPerOrder
	}
	return v
}

// trimRedundantRacks drops the least-contributing of this dispatch call's
// newly-created tasks down to max, releasing their reservations and rack
// allocations and restoring their units to order.pending (spec §9's
// mandated redundant-rack removal pass).
func trimRedundantRacks(o *order.Order, created []*order.Task, max int, deps Dependencies) []*order.Task {
	if max <= 0 || len(created) <= max {
		return created
	}
	sort.SliceStable(created, func(i, j int) bool {
		return contribution(o, created[i]) < contribution(o, created[j])
	})
	drop := created[:len(created)-max]
	keep := created[len(created)-max:]
	for _, t := range drop {
		if rack, ok := deps.Racks.RackByID(t.RackID()); ok {
			t.AbandonAllOrders(rack, deps.Catalogue)
			rack.Deallocate()
		}
	}
	return keep
}

func contribution(o *order.Order, t *order.Task) int {
	total := 0
	for _, qty := range o.ReservedForTask(t.ID()) {
		total += qty
	}
	return total
}

func keepAllocatedOnly(racks []*inventory.Rack) []*inventory.Rack {
	out := make([]*inventory.Rack, 0, len(racks))
	for _, r := range racks {
		if r.IsAllocated() {
			out = append(out, r)
		}
	}
	return out
}

func removeRack(racks []*inventory.Rack, id int) []*inventory.Rack {
	out := make([]*inventory.Rack, 0, len(racks))
	for _, r := range racks {
		if r.ID() != id {
			out = append(out, r)
		}
	}
	return out
}

func removeAgent(agents []*agent.Agent, id int) []*agent.Agent {
	out := make([]*agent.Agent, 0, len(agents))
	for _, a := range agents {
		if a.ID() != id {
			out = append(out, a)
		}
	}
	return out
}
