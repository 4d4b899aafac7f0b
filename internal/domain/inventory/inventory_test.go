package inventory_test

import (
	"testing"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRack(t *testing.T, capacity float64) (*inventory.Rack, *inventory.Item, *inventory.Catalogue) {
	t.Helper()
	cat := inventory.NewCatalogue()
	item, err := inventory.NewItem(1, "widget", 1.0)
	require.NoError(t, err)
	require.NoError(t, cat.Add(item))
	rack, err := inventory.NewRack(1, 0, 3, 2.0, capacity, cat)
	require.NoError(t, err)
	return rack, item, cat
}

func TestRackAdd_UpdatesItemTotalAndStoredWeight(t *testing.T) {
	rack, item, _ := newTestRack(t, 100)
	require.NoError(t, rack.Add(1, 10))

	assert.Equal(t, 10, rack.Stored(1))
	assert.Equal(t, 10.0, rack.StoredWeight())
	assert.Equal(t, 10, item.Total())
	assert.Equal(t, 10, item.Available())
}

func TestRackAdd_RejectsOverCapacity(t *testing.T) {
	rack, _, _ := newTestRack(t, 5)
	err := rack.Add(1, 10)
	require.Error(t, err)
	assert.Equal(t, 0, rack.Stored(1))
}

func TestItemReserve_KeepsInvariantOne(t *testing.T) {
	rack, item, _ := newTestRack(t, 100)
	require.NoError(t, rack.Add(1, 10))

	require.NoError(t, item.Reserve(3))
	assert.Equal(t, 3, item.Reserved())
	assert.Equal(t, 7, item.Available())
	assert.Equal(t, item.Total(), item.Available()+item.Reserved())

	require.NoError(t, item.Reserve(-3))
	assert.Equal(t, 0, item.Reserved())
}

func TestRackReserve_MovesStoredToReserved(t *testing.T) {
	rack, item, _ := newTestRack(t, 100)
	require.NoError(t, rack.Add(1, 10))
	// Order-level reservation (normally done by Order.Activate) must
	// precede the rack-level earmark, since ConfirmReservation ships
	// against the item's reserved bucket.
	require.NoError(t, item.Reserve(4))

	require.NoError(t, rack.Reserve(1, 4))
	assert.Equal(t, 6, rack.Stored(1))
	assert.Equal(t, 4, rack.Reserved(1))
	assert.Equal(t, 10.0, rack.StoredWeight(), "reservation alone must not change physical weight")

	// Confirming a reservation removes the units physically and consumes
	// the order-level reservation simultaneously.
	require.NoError(t, rack.ConfirmReservation(1, 4))
	assert.Equal(t, 6, rack.Stored(1))
	assert.Equal(t, 0, rack.Reserved(1))
	assert.Equal(t, 6.0, rack.StoredWeight())
	assert.Equal(t, 6, item.Total())
	assert.Equal(t, 0, item.Reserved())
}

func TestItemShip_DecrementsTotalAndReservedTogether(t *testing.T) {
	rack, item, _ := newTestRack(t, 100)
	require.NoError(t, rack.Add(1, 10))
	require.NoError(t, item.Reserve(4))

	require.NoError(t, item.Ship(4))
	assert.Equal(t, 6, item.Total())
	assert.Equal(t, 0, item.Reserved())
	assert.Equal(t, 6, item.Available())
}

func TestItemShip_RejectsMoreThanReserved(t *testing.T) {
	_, item, _ := newTestRack(t, 100)
	err := item.Ship(1)
	require.Error(t, err)
}

func TestRackReserve_InsufficientPresentFails(t *testing.T) {
	rack, _, _ := newTestRack(t, 100)
	require.NoError(t, rack.Add(1, 2))
	err := rack.Reserve(1, 5)
	require.Error(t, err)
}

func TestRackLifecycle_IdleAllocatedLoadedIdle(t *testing.T) {
	rack, _, _ := newTestRack(t, 100)
	assert.Equal(t, inventory.RackIdle, rack.Status())

	require.NoError(t, rack.Allocate(9))
	assert.Equal(t, inventory.RackAllocated, rack.Status())
	assert.True(t, rack.IsAllocated())

	require.NoError(t, rack.Load())
	assert.Equal(t, inventory.RackLoaded, rack.Status())

	require.NoError(t, rack.Offload())
	assert.Equal(t, inventory.RackIdle, rack.Status())
	assert.False(t, rack.IsAllocated())
}

func TestRackCapacityReservation_RefillRoundTrip(t *testing.T) {
	rack, item, _ := newTestRack(t, 10)
	require.NoError(t, rack.ReserveCapacity(6))
	assert.Equal(t, 4.0, rack.AvailableCapacity())

	require.NoError(t, rack.ConfirmRefill(item.ID(), 6))
	assert.Equal(t, 6, rack.Stored(item.ID()))
	assert.Equal(t, 6.0, rack.StoredWeight())
	assert.Equal(t, 4.0, rack.AvailableCapacity())
}

func TestRackReserveCapacity_RejectsOverCommit(t *testing.T) {
	rack, _, _ := newTestRack(t, 5)
	require.NoError(t, rack.ReserveCapacity(5))
	err := rack.ReserveCapacity(1)
	require.Error(t, err)
}

func TestRackAllocate_ToDifferentAgentFails(t *testing.T) {
	rack, _, _ := newTestRack(t, 100)
	require.NoError(t, rack.Allocate(1))
	err := rack.Allocate(2)
	require.Error(t, err)
}
