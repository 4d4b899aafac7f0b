package snapshotstore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/agent"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/facility"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/grid"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/inventory"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/order"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/warehouse"
)

func buildTestWarehouse(t *testing.T) *warehouse.Warehouse {
	t.Helper()

	g, err := grid.New(3, 3)
	require.NoError(t, err)

	catalogue := inventory.NewCatalogue()
	item, err := inventory.NewItem(1, "bolt", 0.1)
	require.NoError(t, err)
	require.NoError(t, catalogue.Add(item))

	rack, err := inventory.NewRack(1, 0, 0, 1.0, 100.0, catalogue)
	require.NoError(t, err)
	require.NoError(t, rack.Add(1, 10))

	gate := facility.NewGate(1, grid.Position{Row: 0, Col: 2})
	station := facility.NewStation(1, grid.Position{Row: 2, Col: 2})

	a, err := agent.New(1, grid.Position{Row: 1, Col: 1}, shared.Up, 50.0)
	require.NoError(t, err)

	w := warehouse.New(g, catalogue, []*inventory.Rack{rack}, []*facility.Gate{gate}, []*facility.Station{station}, []*agent.Agent{a}, warehouse.Config{})

	o, err := order.New(1, order.Collect, 1, map[int]int{1: 5}, 0)
	require.NoError(t, err)
	require.NoError(t, w.SubmitOrder(o))

	return w
}

func TestStoreRebuildAndQuery(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	w := buildTestWarehouse(t)
	require.NoError(t, s.Rebuild(w))

	require.Equal(t, w.Tick(), s.Tick())

	agents, err := s.AgentsByStatus("")
	require.NoError(t, err)
	require.Len(t, agents, 1)
	require.Equal(t, 1, agents[0].ID)

	ready, err := s.AgentsByStatus(agent.Ready.String())
	require.NoError(t, err)
	require.Len(t, ready, 1)

	orders, err := s.OrdersByGate(0)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, 1, orders[0].GateID)

	filtered, err := s.OrdersByGate(1)
	require.NoError(t, err)
	require.Len(t, filtered, 1)

	none, err := s.OrdersByGate(2)
	require.NoError(t, err)
	require.Empty(t, none)

	racks, err := s.AllocatedRacks()
	require.NoError(t, err)
	require.Empty(t, racks)
}

func TestStoreRebuildReplacesPriorContents(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	w := buildTestWarehouse(t)
	require.NoError(t, s.Rebuild(w))
	require.NoError(t, s.Rebuild(w))

	agents, err := s.AgentsByStatus("")
	require.NoError(t, err)
	require.Len(t, agents, 1, "rebuild must not accumulate duplicate rows")
}
