package order_test

import (
	"testing"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/inventory"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogueAndRack(t *testing.T, itemID int, weight float64, stock int, capacity float64) (*inventory.Catalogue, *inventory.Rack, *inventory.Item) {
	t.Helper()
	cat := inventory.NewCatalogue()
	item, err := inventory.NewItem(itemID, "widget", weight)
	require.NoError(t, err)
	require.NoError(t, cat.Add(item))
	rack, err := inventory.NewRack(1, 0, 3, 2.0, capacity, cat)
	require.NoError(t, err)
	require.NoError(t, rack.Add(itemID, stock))
	return cat, rack, item
}

func TestCollectOrder_SeedScenarioOne(t *testing.T) {
	cat, rack, item := newCatalogueAndRack(t, 1, 1.0, 10, 100)

	o, err := order.New(1, order.Collect, 7, map[int]int{1: 1}, 0)
	require.NoError(t, err)

	require.NoError(t, o.Activate(cat))
	assert.Equal(t, 1, item.Reserved())
	assert.Equal(t, order.Active, o.Status())

	plan := o.PlanItemsForTask(rack, cat)
	require.Equal(t, map[int]int{1: 1}, plan)

	require.NoError(t, o.AssignTask(100, rack, plan, cat))
	assert.Equal(t, 0, o.PendingUnits())
	assert.Equal(t, 9, rack.Stored(1))
	assert.Equal(t, 1, rack.Reserved(1))

	require.NoError(t, o.ConfirmTask(100, rack))
	assert.Equal(t, 9, item.Total())
	assert.Equal(t, 9, item.Available())
	assert.Equal(t, 0, item.Reserved())
	assert.Equal(t, order.Fulfilled, o.Status())
	assert.False(t, o.HasLiveSubtasks())
}

func TestCollectOrder_AbandonRestoresPendingAndReservations(t *testing.T) {
	cat, rack, item := newCatalogueAndRack(t, 1, 1.0, 10, 100)
	o, err := order.New(1, order.Collect, 7, map[int]int{1: 4}, 0)
	require.NoError(t, err)
	require.NoError(t, o.Activate(cat))

	plan := o.PlanItemsForTask(rack, cat)
	require.NoError(t, o.AssignTask(1, rack, plan, cat))
	assert.Equal(t, 0, o.PendingUnits())

	o.AbandonTask(1, rack, cat)
	assert.Equal(t, 4, o.PendingUnits())
	assert.Equal(t, 10, rack.Stored(1))
	assert.Equal(t, 0, rack.Reserved(1))
	assert.Equal(t, 4, item.Reserved())
	assert.False(t, o.HasLiveSubtasks())
}

func TestRefillOrder_ReservesCapacityNotItems(t *testing.T) {
	cat := inventory.NewCatalogue()
	item, err := inventory.NewItem(1, "widget", 2.0)
	require.NoError(t, err)
	require.NoError(t, cat.Add(item))
	rack, err := inventory.NewRack(5, 0, 0, 1.0, 20, cat)
	require.NoError(t, err)

	o, err := order.New(2, order.Refill, 7, map[int]int{1: 5}, 5)
	require.NoError(t, err)
	require.NoError(t, o.Activate(cat))
	assert.Equal(t, 0, item.Reserved(), "refill activation must not touch item-level reservation")

	plan := o.PlanItemsForTask(rack, cat)
	require.Equal(t, map[int]int{1: 5}, plan)
	require.NoError(t, o.AssignTask(9, rack, plan, cat))
	assert.Equal(t, 10.0, rack.AvailableCapacity())

	require.NoError(t, o.ConfirmTask(9, rack))
	assert.Equal(t, 5, rack.Stored(1))
	assert.Equal(t, 10.0, rack.StoredWeight())
	assert.Equal(t, order.Fulfilled, o.Status())
}

func TestRefillOrder_InfeasibleWhenRackTooFull(t *testing.T) {
	cat := inventory.NewCatalogue()
	item, err := inventory.NewItem(1, "widget", 1.0)
	require.NoError(t, err)
	require.NoError(t, cat.Add(item))
	rack, err := inventory.NewRack(5, 0, 0, 1.0, 100, cat)
	require.NoError(t, err)
	require.NoError(t, rack.Add(1, 95))

	o, err := order.New(3, order.Refill, 7, map[int]int{1: 10}, 5)
	require.NoError(t, err)
	require.NoError(t, o.Activate(cat))

	plan := o.PlanItemsForTask(rack, cat)
	assert.Nil(t, plan, "refill exceeding available capacity must be infeasible")
}

func TestOrder_DismissTicksRoundTrip(t *testing.T) {
	o, err := order.New(4, order.Collect, 1, map[int]int{1: 1}, 0)
	require.NoError(t, err)
	o.BumpDismissTicks()
	o.BumpDismissTicks()
	assert.Equal(t, 2, o.DismissTicks())
	o.ResetDismissTicks()
	assert.Equal(t, 0, o.DismissTicks())

	o.Dismiss()
	assert.Equal(t, order.Dismissed, o.Status())
}

func TestTask_MergeOrderAtApproachGate(t *testing.T) {
	cat, rack, _ := newCatalogueAndRack(t, 1, 1.0, 10, 100)

	first, err := order.New(1, order.Collect, 7, map[int]int{1: 2}, 0)
	require.NoError(t, err)
	require.NoError(t, first.Activate(cat))
	plan := first.PlanItemsForTask(rack, cat)
	require.NoError(t, first.AssignTask(1, rack, plan, cat))

	tsk := order.NewTask(1, 42, rack.ID(), first)
	require.NoError(t, tsk.Advance()) // -> Load
	require.NoError(t, tsk.Advance()) // -> ApproachGate
	assert.Equal(t, order.PhaseApproachGate, tsk.Phase())

	second, err := order.New(2, order.Collect, 7, map[int]int{1: 3}, 0)
	require.NoError(t, err)
	require.NoError(t, second.Activate(cat))
	require.True(t, tsk.CanMergeOrder(second))
	require.NoError(t, tsk.AddOrder(second, rack, cat))
	assert.Len(t, tsk.Orders(), 2)

	require.NoError(t, tsk.Advance()) // -> BindGate
	require.NoError(t, tsk.ConfirmAllOrders(rack))
	assert.Equal(t, order.Fulfilled, first.Status())
	assert.Equal(t, order.Fulfilled, second.Status())
}

func TestTask_CannotMergeDifferentGate(t *testing.T) {
	cat, rack, _ := newCatalogueAndRack(t, 1, 1.0, 10, 100)
	first, err := order.New(1, order.Collect, 7, map[int]int{1: 2}, 0)
	require.NoError(t, err)
	require.NoError(t, first.Activate(cat))
	plan := first.PlanItemsForTask(rack, cat)
	require.NoError(t, first.AssignTask(1, rack, plan, cat))

	tsk := order.NewTask(1, 42, rack.ID(), first)
	require.NoError(t, tsk.Advance())
	require.NoError(t, tsk.Advance())

	other, err := order.New(2, order.Collect, 99, map[int]int{1: 1}, 0)
	require.NoError(t, err)
	require.NoError(t, other.Activate(cat))
	assert.False(t, tsk.CanMergeOrder(other))
}
