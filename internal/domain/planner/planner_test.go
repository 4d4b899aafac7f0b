package planner_test

import (
	"testing"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/agent"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/grid"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/planner"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePriority struct{}

func (fakePriority) PriorityOf(agentID int) int { return agentID }

type fakeDropper struct {
	dropped []int
	agents  map[int]*agent.Agent
	g       *grid.Grid
	tick    func() int
}

func (d *fakeDropper) DropPlan(agentID int) {
	d.dropped = append(d.dropped, agentID)
	if a, ok := d.agents[agentID]; ok {
		planner.DropPlan(d.g, a, d.tick())
	}
}

func newGrid(t *testing.T, rows, cols int) *grid.Grid {
	t.Helper()
	g, err := grid.New(rows, cols)
	require.NoError(t, err)
	return g
}

func TestPlan_TargetEqualsStartReturnsEmptyPlan(t *testing.T) {
	g := newGrid(t, 3, 3)
	a, err := agent.New(1, grid.Position{Row: 1, Col: 1}, shared.Up, 10)
	require.NoError(t, err)
	p := planner.New(g, fakePriority{}, &fakeDropper{agents: map[int]*agent.Agent{}, g: g, tick: func() int { return 0 }})

	actions, ok := p.Plan(a, grid.Position{Row: 1, Col: 1}, 0)
	require.True(t, ok)
	assert.Empty(t, actions)
}

func TestPlan_StraightLineReachesTarget(t *testing.T) {
	g := newGrid(t, 1, 5)
	a, err := agent.New(1, grid.Position{Row: 0, Col: 0}, shared.Right, 10)
	require.NoError(t, err)
	p := planner.New(g, fakePriority{}, &fakeDropper{agents: map[int]*agent.Agent{}, g: g, tick: func() int { return 0 }})

	actions, ok := p.Plan(a, grid.Position{Row: 0, Col: 4}, 0)
	require.True(t, ok)
	assert.Len(t, actions, 4)
	for _, act := range actions {
		assert.Equal(t, agent.Move, act.Kind)
	}

	// Path is reserved: tick 1..4 at cols 1..4 belong to agent 1.
	for tick := 1; tick <= 4; tick++ {
		holder, ok := g.ScheduledAt(grid.Position{Row: 0, Col: tick}, tick)
		require.True(t, ok)
		assert.Equal(t, 1, holder)
	}
}

func TestPlan_ObstacleBlocksDirectRoute(t *testing.T) {
	g := newGrid(t, 3, 3)
	c, err := g.CellAt(grid.Position{Row: 0, Col: 1})
	require.NoError(t, err)
	c.Type = grid.CellObstacle

	a, err := agent.New(1, grid.Position{Row: 0, Col: 0}, shared.Right, 10)
	require.NoError(t, err)
	p := planner.New(g, fakePriority{}, &fakeDropper{agents: map[int]*agent.Agent{}, g: g, tick: func() int { return 0 }})

	actions, ok := p.Plan(a, grid.Position{Row: 0, Col: 2}, 0)
	require.True(t, ok)
	assert.NotEmpty(t, actions)
}

func TestPlan_PriorityPreemption_DropsLowerPriorityAgentsPlan(t *testing.T) {
	g := newGrid(t, 1, 5)
	low, err := agent.New(5, grid.Position{Row: 0, Col: 4}, shared.Left, 10)
	require.NoError(t, err)
	high, err := agent.New(1, grid.Position{Row: 0, Col: 0}, shared.Right, 10)
	require.NoError(t, err)

	agents := map[int]*agent.Agent{5: low, 1: high}
	dropper := &fakeDropper{agents: agents, g: g, tick: func() int { return 0 }}
	p := planner.New(g, fakePriority{}, dropper)

	// Low-priority agent plans first and reserves the full row.
	lowActions, ok := p.Plan(low, grid.Position{Row: 0, Col: 0}, 0)
	require.True(t, ok)
	low.SetPlan(lowActions)

	// High-priority agent now needs an overlapping cell/tick and must
	// preempt it.
	highActions, ok := p.Plan(high, grid.Position{Row: 0, Col: 4}, 0)
	require.True(t, ok)
	assert.NotEmpty(t, highActions)
	assert.Contains(t, dropper.dropped, 5)
}

func TestDropPlan_ClearsReservations(t *testing.T) {
	g := newGrid(t, 1, 3)
	a, err := agent.New(1, grid.Position{Row: 0, Col: 0}, shared.Right, 10)
	require.NoError(t, err)
	dropper := &fakeDropper{agents: map[int]*agent.Agent{}, g: g, tick: func() int { return 0 }}
	p := planner.New(g, fakePriority{}, dropper)

	actions, ok := p.Plan(a, grid.Position{Row: 0, Col: 2}, 0)
	require.True(t, ok)
	a.SetPlan(actions)

	planner.DropPlan(g, a, 0)
	assert.False(t, a.HasPlan())
	for tick := 0; tick <= 2; tick++ {
		_, ok := g.ScheduledAt(grid.Position{Row: 0, Col: tick}, tick)
		assert.False(t, ok)
	}
}
