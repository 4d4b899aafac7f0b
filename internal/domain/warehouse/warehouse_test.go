package warehouse_test

import (
	"testing"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/agent"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/facility"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/grid"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/inventory"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/order"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/warehouse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSingleLane lays out a 1x3 grid: agent at (0,0), rack at (0,1),
// gate at (0,2) — the minimal layout spec §8 seed scenario 1 describes.
func buildSingleLane(t *testing.T, stock int) (*warehouse.Warehouse, *inventory.Item, *facility.Gate, *inventory.Rack) {
	t.Helper()
	g, err := grid.New(1, 3)
	require.NoError(t, err)

	cat := inventory.NewCatalogue()
	item, err := inventory.NewItem(1, "widget", 1.0)
	require.NoError(t, err)
	require.NoError(t, cat.Add(item))

	rack, err := inventory.NewRack(10, 0, 1, 1.0, 100, cat)
	require.NoError(t, err)
	require.NoError(t, rack.Add(1, stock))

	gt := facility.NewGate(20, grid.Position{Row: 0, Col: 2})

	a, err := agent.New(1, grid.Position{Row: 0, Col: 0}, shared.Right, 100)
	require.NoError(t, err)

	w := warehouse.New(g, cat, []*inventory.Rack{rack}, []*facility.Gate{gt}, nil, []*agent.Agent{a}, warehouse.Config{})
	return w, item, gt, rack
}

func TestWarehouse_SeedScenarioOne_SingleAgentSingleRackSingleGate(t *testing.T) {
	w, item, gt, rack := buildSingleLane(t, 10)

	o, err := order.New(1, order.Collect, gt.ID(), map[int]int{1: 1}, 0)
	require.NoError(t, err)
	require.NoError(t, w.SubmitOrder(o))

	assert.Equal(t, 1, item.Reserved())
	assert.Equal(t, 9, item.Available())

	for i := 0; i < 20 && o.Status() != order.Fulfilled; i++ {
		w.TickOnce()
		for _, err := range w.CheckInvariants() {
			t.Fatalf("tick %d: invariant violated: %v", w.Tick(), err)
		}
	}

	assert.Equal(t, order.Fulfilled, o.Status())
	assert.Equal(t, 9, rack.Stored(1))
	assert.Equal(t, 0, rack.Reserved(1))
	assert.Equal(t, 9, item.Available())
	assert.Equal(t, 0, item.Reserved())
	assert.Equal(t, 9, item.Total())
}

func TestWarehouse_SubmitOrder_RefillExceedingCapacityRejected(t *testing.T) {
	g, err := grid.New(1, 3)
	require.NoError(t, err)

	cat := inventory.NewCatalogue()
	item, err := inventory.NewItem(1, "widget", 1.0)
	require.NoError(t, err)
	require.NoError(t, cat.Add(item))

	rack, err := inventory.NewRack(10, 0, 0, 1.0, 10, cat)
	require.NoError(t, err)
	require.NoError(t, rack.Add(1, 6)) // stored_weight = 6, headroom = 4

	gt := facility.NewGate(20, grid.Position{Row: 0, Col: 2})
	a, err := agent.New(1, grid.Position{Row: 0, Col: 1}, shared.Right, 100)
	require.NoError(t, err)

	w := warehouse.New(g, cat, []*inventory.Rack{rack}, []*facility.Gate{gt}, nil, []*agent.Agent{a}, warehouse.Config{})

	o, err := order.New(2, order.Refill, gt.ID(), map[int]int{1: 9}, rack.ID())
	require.NoError(t, err)

	err = w.SubmitOrder(o)
	require.Error(t, err)
	verr, ok := err.(*shared.ValidationError)
	require.True(t, ok)
	assert.Equal(t, shared.ErrCapacityExceeded, verr.Code)
	assert.Equal(t, "5", verr.Args["excess"])
}

func TestWarehouse_SubmitOrder_DuplicateIDRejected(t *testing.T) {
	w, _, gt, _ := buildSingleLane(t, 10)

	o1, err := order.New(1, order.Collect, gt.ID(), map[int]int{1: 1}, 0)
	require.NoError(t, err)
	require.NoError(t, w.SubmitOrder(o1))

	o2, err := order.New(1, order.Collect, gt.ID(), map[int]int{1: 1}, 0)
	require.NoError(t, err)
	err = w.SubmitOrder(o2)
	require.Error(t, err)
	verr, ok := err.(*shared.ValidationError)
	require.True(t, ok)
	assert.Equal(t, shared.ErrDuplicateID, verr.Code)
}
