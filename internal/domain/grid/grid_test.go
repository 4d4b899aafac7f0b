package grid_test

import (
	"errors"
	"testing"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/grid"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsNonPositiveDimensions(t *testing.T) {
	_, err := grid.New(0, 5)
	require.Error(t, err)

	var verr *shared.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, shared.ErrInvalidDimensions, verr.Code)
}

func TestReserveClear_RoundTrip(t *testing.T) {
	g, err := grid.New(3, 3)
	require.NoError(t, err)

	p := grid.Position{Row: 1, Col: 1}
	_, beforeOK := g.ScheduledAt(p, 5)
	require.False(t, beforeOK)

	require.NoError(t, g.Reserve(p, 5, 42))
	holder, ok := g.ScheduledAt(p, 5)
	require.True(t, ok)
	assert.Equal(t, 42, holder)

	g.Clear(p, 5)
	_, afterOK := g.ScheduledAt(p, 5)
	assert.False(t, afterOK, "reserve then clear must return the timeline to its prior state")
}

func TestReserve_SameAgentIsNoop(t *testing.T) {
	g, _ := grid.New(2, 2)
	p := grid.Position{Row: 0, Col: 0}
	require.NoError(t, g.Reserve(p, 1, 7))
	require.NoError(t, g.Reserve(p, 1, 7))
}

func TestReserve_DifferentAgentFails(t *testing.T) {
	g, _ := grid.New(2, 2)
	p := grid.Position{Row: 0, Col: 0}
	require.NoError(t, g.Reserve(p, 1, 7))

	err := g.Reserve(p, 1, 8)
	require.Error(t, err)
	var busy *shared.CellBusy
	require.True(t, errors.As(err, &busy))
	assert.Equal(t, 7, busy.Holder)
}

func TestNeighbor_InverseNeighbor(t *testing.T) {
	p := grid.Position{Row: 2, Col: 2}
	n := p.Neighbor(shared.Right)
	assert.Equal(t, grid.Position{Row: 2, Col: 3}, n)
	assert.Equal(t, p, n.InverseNeighbor(shared.Right))
}

func TestWalkable_ObstacleBlocks(t *testing.T) {
	g, _ := grid.New(2, 2)
	p := grid.Position{Row: 0, Col: 1}
	c, err := g.CellAt(p)
	require.NoError(t, err)
	c.Type = grid.CellObstacle

	assert.False(t, g.Walkable(p))
	assert.True(t, g.Walkable(grid.Position{Row: 0, Col: 0}))
	assert.False(t, g.Walkable(grid.Position{Row: 5, Col: 5}))
}
