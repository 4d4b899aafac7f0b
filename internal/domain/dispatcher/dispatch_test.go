package dispatcher_test

import (
	"testing"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/agent"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/dispatcher"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/grid"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/inventory"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/order"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateDistance struct{ byRow map[int]int }

func (f fakeGateDistance) DistanceFromGate(gateID int, pos grid.Position) int {
	if v, ok := f.byRow[pos.Row]; ok {
		return v
	}
	return -1
}

type fakeRackDistance struct{ byAgentRow map[int]int }

func (f fakeRackDistance) DistanceToRack(rackID int, pos grid.Position) int {
	if v, ok := f.byAgentRow[pos.Row]; ok {
		return v
	}
	return -1
}

type fakeRackCatalog struct{ racks map[int]*inventory.Rack }

func (f fakeRackCatalog) RackByID(id int) (*inventory.Rack, bool) { r, ok := f.racks[id]; return r, ok }

type fakeTaskLocator struct{ byRack map[int]*order.Task }

func (f fakeTaskLocator) TaskForRack(id int) (*order.Task, bool) { t, ok := f.byRack[id]; return t, ok }

type fakeAgentByID struct{ agents map[int]*agent.Agent }

func (f fakeAgentByID) AgentByID(id int) (*agent.Agent, bool) { a, ok := f.agents[id]; return a, ok }

func mkCatalogue(t *testing.T, weights map[int]float64) *inventory.Catalogue {
	t.Helper()
	cat := inventory.NewCatalogue()
	for id, w := range weights {
		item, err := inventory.NewItem(id, "item", w)
		require.NoError(t, err)
		require.NoError(t, cat.Add(item))
	}
	return cat
}

func mkRack(t *testing.T, id, homeRow int, capacity, containerWeight float64, cat *inventory.Catalogue, stock map[int]int) *inventory.Rack {
	t.Helper()
	r, err := inventory.NewRack(id, homeRow, 0, containerWeight, capacity, cat)
	require.NoError(t, err)
	for itemID, qty := range stock {
		require.NoError(t, r.Add(itemID, qty))
	}
	return r
}

func nextIDFrom(start int) func() int {
	id := start
	return func() int {
		id++
		return id
	}
}

func TestDispatch_SingleRackSingleAgent_CreatesTask(t *testing.T) {
	cat := mkCatalogue(t, map[int]float64{1: 2.0})
	rack := mkRack(t, 10, 0, 100, 5, cat, map[int]int{1: 8})

	o, err := order.New(1, order.Collect, 99, map[int]int{1: 5}, 0)
	require.NoError(t, err)
	require.NoError(t, o.Activate(cat))

	a, err := agent.New(1, grid.Position{Row: 0, Col: 0}, shared.Right, 100)
	require.NoError(t, err)

	deps := dispatcher.Dependencies{
		Racks:     fakeRackCatalog{racks: map[int]*inventory.Rack{10: rack}},
		Gates:     fakeGateDistance{byRow: map[int]int{0: 3}},
		RackDist:  fakeRackDistance{byAgentRow: map[int]int{0: 2}},
		Tasks:     fakeTaskLocator{byRack: map[int]*order.Task{}},
		Agents:    fakeAgentByID{agents: map[int]*agent.Agent{1: a}},
		Catalogue: cat,
	}

	created := dispatcher.Dispatch(o, []*agent.Agent{a}, []*inventory.Rack{rack}, deps, nextIDFrom(0))
	require.Len(t, created, 1)
	assert.Equal(t, a.ID(), created[0].AgentID())
	assert.Equal(t, rack.ID(), created[0].RackID())
	assert.Equal(t, 0, o.PendingUnits())
	allocated, ok := rack.AllocatedAgent()
	assert.True(t, ok)
	assert.Equal(t, a.ID(), allocated)
}

func TestDispatch_AgentTooWeak_LeavesOrderPending(t *testing.T) {
	cat := mkCatalogue(t, map[int]float64{1: 50.0})
	rack := mkRack(t, 10, 0, 1000, 5, cat, map[int]int{1: 8})

	o, err := order.New(1, order.Collect, 99, map[int]int{1: 5}, 0)
	require.NoError(t, err)
	require.NoError(t, o.Activate(cat))

	weak, err := agent.New(1, grid.Position{Row: 0, Col: 0}, shared.Right, 1)
	require.NoError(t, err)

	deps := dispatcher.Dependencies{
		Racks:     fakeRackCatalog{racks: map[int]*inventory.Rack{10: rack}},
		Gates:     fakeGateDistance{byRow: map[int]int{0: 3}},
		RackDist:  fakeRackDistance{byAgentRow: map[int]int{0: 2}},
		Tasks:     fakeTaskLocator{byRack: map[int]*order.Task{}},
		Agents:    fakeAgentByID{agents: map[int]*agent.Agent{1: weak}},
		Catalogue: cat,
	}

	created := dispatcher.Dispatch(o, []*agent.Agent{weak}, []*inventory.Rack{rack}, deps, nextIDFrom(0))
	assert.Empty(t, created)
	assert.True(t, o.IsPending())
}

func TestDispatch_MergesIntoAlreadyAllocatedRackTask(t *testing.T) {
	cat := mkCatalogue(t, map[int]float64{1: 1.0})
	rack := mkRack(t, 10, 0, 1000, 5, cat, map[int]int{1: 20})

	owner, err := agent.New(7, grid.Position{Row: 5, Col: 0}, shared.Right, 100)
	require.NoError(t, err)
	require.NoError(t, rack.Allocate(owner.ID()))

	first, err := order.New(1, order.Collect, 99, map[int]int{1: 5}, 0)
	require.NoError(t, err)
	require.NoError(t, first.Activate(cat))
	task := order.NewTask(500, owner.ID(), rack.ID(), first)
	require.NoError(t, task.Advance()) // -> Load
	require.NoError(t, task.Advance()) // -> ApproachGate
	require.NoError(t, first.AssignTask(task.ID(), rack, map[int]int{1: 5}, cat))

	second, err := order.New(2, order.Collect, 99, map[int]int{1: 3}, 0)
	require.NoError(t, err)
	require.NoError(t, second.Activate(cat))

	deps := dispatcher.Dependencies{
		Racks:     fakeRackCatalog{racks: map[int]*inventory.Rack{10: rack}},
		Gates:     fakeGateDistance{byRow: map[int]int{0: 3}},
		RackDist:  fakeRackDistance{byAgentRow: map[int]int{5: 1}},
		Tasks:     fakeTaskLocator{byRack: map[int]*order.Task{10: task}},
		Agents:    fakeAgentByID{agents: map[int]*agent.Agent{7: owner}},
		Catalogue: cat,
	}

	// owner has no active ready slot (it already has a task), so ready
	// agents is empty — the filtered_once branch must still find the
	// allocated rack.
	created := dispatcher.Dispatch(second, nil, []*inventory.Rack{rack}, deps, nextIDFrom(1000))
	assert.Empty(t, created, "merge into an existing task never mints a new Task")
	assert.Equal(t, 0, second.PendingUnits())
	assert.Len(t, task.Orders(), 2)
}

func TestDispatch_RedundantRackTrim_DropsLeastContributing(t *testing.T) {
	cat := mkCatalogue(t, map[int]float64{1: 1.0})
	racks := make([]*inventory.Rack, 0, 6)
	rackByID := map[int]*inventory.Rack{}
	for i := 1; i <= 6; i++ {
		r := mkRack(t, i, 0, 1000, 1, cat, map[int]int{1: 1})
		racks = append(racks, r)
		rackByID[i] = r
	}

	o, err := order.New(1, order.Collect, 99, map[int]int{1: 6}, 0)
	require.NoError(t, err)
	require.NoError(t, o.Activate(cat))

	agents := make([]*agent.Agent, 0, 6)
	agentByID := map[int]*agent.Agent{}
	rowDist := map[int]int{}
	for i := 1; i <= 6; i++ {
		a, err := agent.New(i, grid.Position{Row: i, Col: 0}, shared.Right, 100)
		require.NoError(t, err)
		agents = append(agents, a)
		agentByID[i] = a
		rowDist[i] = i
	}

	deps := dispatcher.Dependencies{
		Racks:            fakeRackCatalog{racks: rackByID},
		Gates:            fakeGateDistance{byRow: map[int]int{0: 1}},
		RackDist:         fakeRackDistance{byAgentRow: rowDist},
		Tasks:            fakeTaskLocator{byRack: map[int]*order.Task{}},
		Agents:           fakeAgentByID{agents: agentByID},
		Catalogue:        cat,
		MaxRacksPerOrder: 2,
	}

	created := dispatcher.Dispatch(o, agents, racks, deps, nextIDFrom(0))
	assert.LessOrEqual(t, len(created), 2)
	assert.Greater(t, o.PendingUnits(), 0, "trimmed racks' units are restored to pending")
}
