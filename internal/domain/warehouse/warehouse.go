// Package warehouse is the aggregate root that owns the grid, guide maps,
// inventory, facilities, agents, orders, and tasks, and drives the tick
// loop that ties them together (spec §4.7). It is the sole implementor
// of the planner and dispatcher packages' ports, so neither of those
// packages needs to know this type exists.
package warehouse

import (
	"sort"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/agent"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/facility"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/grid"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/guidemap"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/inventory"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/order"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/planner"
)

// DefaultDismissAfterTicks is how many consecutive no-progress dispatch
// attempts an order tolerates before being dismissed (spec §7 kind 2,
// §9 open question — see DESIGN.md).
const DefaultDismissAfterTicks = 50

// DefaultGateDwellTicks is how many ticks a task holds a gate bound
// before releasing it (spec §4.6 phase 5, §9 open question).
const DefaultGateDwellTicks = 1

// Config carries the deployment-tunable thresholds; zero values fall
// back to the package defaults.
type Config struct {
	DismissAfterTicks int
	GateDwellTicks    int
}

// Warehouse is the full simulated world for one daemon instance.
type Warehouse struct {
	grid      *grid.Grid
	catalogue *inventory.Catalogue
	gateMaps  *guidemap.Registry
	rackMaps  *guidemap.Registry

	racks    map[int]*inventory.Rack
	gates    map[int]*facility.Gate
	stations map[int]*facility.Station
	agents   map[int]*agent.Agent
	orders   map[int]*order.Order
	tasks    map[int]*order.Task
	taskByRack map[int]int

	pendingIDs []int

	planner *planner.Planner

	tick       int
	nextTaskID int

	dismissAfterTicks int
	gateDwellTicks    int

	completedTasks  []CompletedTaskEvent
	dismissedOrders []DismissedOrderEvent
}

// New builds a Warehouse over an already-laid-out grid: racks and
// facilities must already occupy their declared cells (spec §4.1/§4.2),
// and every rack/gate/station id is unique within its own kind.
func New(g *grid.Grid, catalogue *inventory.Catalogue, racks []*inventory.Rack, gates []*facility.Gate, stations []*facility.Station, agents []*agent.Agent, cfg Config) *Warehouse {
	w := &Warehouse{
		grid:       g,
		catalogue:  catalogue,
		racks:      make(map[int]*inventory.Rack, len(racks)),
		gates:      make(map[int]*facility.Gate, len(gates)),
		stations:   make(map[int]*facility.Station, len(stations)),
		agents:     make(map[int]*agent.Agent, len(agents)),
		orders:     make(map[int]*order.Order),
		tasks:      make(map[int]*order.Task),
		taskByRack: make(map[int]int),
	}

	rackPositions := make(map[int]grid.Position, len(racks))
	for _, r := range racks {
		w.racks[r.ID()] = r
		pos := grid.Position{Row: r.HomeRow(), Col: r.HomeCol()}
		rackPositions[r.ID()] = pos
		if cell, err := g.CellAt(pos); err == nil {
			cell.Type = grid.CellRack
			cell.FacilityID = r.ID()
			cell.HasFacility = true
		}
	}

	gatePositions := make(map[int]grid.Position, len(gates))
	for _, gt := range gates {
		w.gates[gt.ID()] = gt
		gatePositions[gt.ID()] = gt.Position()
		if cell, err := g.CellAt(gt.Position()); err == nil {
			cell.Type = grid.CellGate
			cell.FacilityID = gt.ID()
			cell.HasFacility = true
		}
	}

	for _, st := range stations {
		w.stations[st.ID()] = st
		if cell, err := g.CellAt(st.Position()); err == nil {
			cell.Type = grid.CellStation
			cell.FacilityID = st.ID()
			cell.HasFacility = true
		}
	}

	for _, a := range agents {
		w.agents[a.ID()] = a
		if cell, err := g.CellAt(a.Position()); err == nil {
			cell.SetAgent(a.ID())
		}
	}

	w.gateMaps = guidemap.NewRegistry(g, gatePositions)
	w.rackMaps = guidemap.NewRegistry(g, rackPositions)
	w.planner = planner.New(g, w, w)

	w.dismissAfterTicks = cfg.DismissAfterTicks
	if w.dismissAfterTicks <= 0 {
		w.dismissAfterTicks = DefaultDismissAfterTicks
	}
	w.gateDwellTicks = cfg.GateDwellTicks
	if w.gateDwellTicks <= 0 {
		w.gateDwellTicks = DefaultGateDwellTicks
	}

	return w
}

func (w *Warehouse) Tick() int                       { return w.tick }
func (w *Warehouse) Grid() *grid.Grid                { return w.grid }
func (w *Warehouse) Catalogue() *inventory.Catalogue { return w.catalogue }

func (w *Warehouse) Agent(id int) (*agent.Agent, bool) {
	a, ok := w.agents[id]
	return a, ok
}

func (w *Warehouse) Rack(id int) (*inventory.Rack, bool) {
	r, ok := w.racks[id]
	return r, ok
}

func (w *Warehouse) Gate(id int) (*facility.Gate, bool) {
	g, ok := w.gates[id]
	return g, ok
}

func (w *Warehouse) Order(id int) (*order.Order, bool) {
	o, ok := w.orders[id]
	return o, ok
}

func (w *Warehouse) Task(id int) (*order.Task, bool) {
	t, ok := w.tasks[id]
	return t, ok
}

// Agents returns every agent ordered by ascending id. Read-side adapters
// (snapshot rebuilds, status dumps) use this instead of sortedAgents so
// the tick loop's internal ordering stays unexported.
func (w *Warehouse) Agents() []*agent.Agent {
	return w.sortedAgents()
}

// Orders returns every order ordered by ascending id.
func (w *Warehouse) Orders() []*order.Order {
	ids := make([]int, 0, len(w.orders))
	for id := range w.orders {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*order.Order, len(ids))
	for i, id := range ids {
		out[i] = w.orders[id]
	}
	return out
}

// Racks returns every rack ordered by ascending id.
func (w *Warehouse) Racks() []*inventory.Rack {
	ids := make([]int, 0, len(w.racks))
	for id := range w.racks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*inventory.Rack, len(ids))
	for i, id := range ids {
		out[i] = w.racks[id]
	}
	return out
}

func (w *Warehouse) allocTaskID() int {
	w.nextTaskID++
	return w.nextTaskID
}

// sortedAgents returns every agent ordered by ascending id — the priority
// order the tick loop and its helpers must iterate in (spec §4.7, §9
// resolved: priority is purely id-based).
func (w *Warehouse) sortedAgents() []*agent.Agent {
	ids := make([]int, 0, len(w.agents))
	for id := range w.agents {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*agent.Agent, len(ids))
	for i, id := range ids {
		out[i] = w.agents[id]
	}
	return out
}

func (w *Warehouse) readyAgents() []*agent.Agent {
	var out []*agent.Agent
	for _, a := range w.sortedAgents() {
		if a.Status() == agent.Ready {
			out = append(out, a)
		}
	}
	return out
}
