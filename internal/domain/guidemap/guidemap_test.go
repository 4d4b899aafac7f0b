package guidemap_test

import (
	"testing"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/grid"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/guidemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGrid(t *testing.T, rows, cols int) *grid.Grid {
	t.Helper()
	g, err := grid.New(rows, cols)
	require.NoError(t, err)
	return g
}

func TestBuild_DistanceZeroAtFacility(t *testing.T) {
	g := buildGrid(t, 5, 5)
	facility := grid.Position{Row: 2, Col: 2}
	cell := g.MustCellAt(facility)
	cell.Type = grid.CellGate
	cell.HasFacility = true
	cell.FacilityID = 1

	m := guidemap.Build(g, 1, facility)
	assert.Equal(t, 0, m.DistanceTo(facility))
}

func TestBuild_NeighborDistancesDifferByOne(t *testing.T) {
	g := buildGrid(t, 5, 5)
	facility := grid.Position{Row: 2, Col: 2}
	cell := g.MustCellAt(facility)
	cell.Type = grid.CellGate
	cell.HasFacility = true

	m := guidemap.Build(g, 1, facility)

	g.Each(func(p grid.Position, c *grid.Cell) {
		if !m.Reachable(p) {
			return
		}
		dp := m.DistanceTo(p)
		for _, d := range []grid.Position{
			p.Neighbor(0), p.Neighbor(1), p.Neighbor(2), p.Neighbor(3),
		} {
			if !g.InBounds(d) || !m.Reachable(d) {
				continue
			}
			diff := m.DistanceTo(d) - dp
			assert.Contains(t, []int{-1, 0, 1}, diff)
		}
	})
}

func TestBuild_ObstacleIsUnreachable(t *testing.T) {
	g := buildGrid(t, 3, 3)
	facility := grid.Position{Row: 0, Col: 0}
	fc := g.MustCellAt(facility)
	fc.Type = grid.CellGate
	fc.HasFacility = true

	// Wall off the facility entirely.
	g.MustCellAt(grid.Position{Row: 0, Col: 1}).Type = grid.CellObstacle
	g.MustCellAt(grid.Position{Row: 1, Col: 0}).Type = grid.CellObstacle

	m := guidemap.Build(g, 1, facility)
	assert.False(t, m.Reachable(grid.Position{Row: 2, Col: 2}))
}

func TestBuild_OtherFacilityCellsAreImpassable(t *testing.T) {
	g := buildGrid(t, 1, 3)
	source := grid.Position{Row: 0, Col: 0}
	other := grid.Position{Row: 0, Col: 1}
	target := grid.Position{Row: 0, Col: 2}

	g.MustCellAt(source).Type = grid.CellGate
	g.MustCellAt(source).HasFacility = true
	g.MustCellAt(other).Type = grid.CellRack
	g.MustCellAt(other).HasFacility = true

	m := guidemap.Build(g, 1, source)
	assert.False(t, m.Reachable(target), "a non-source facility cell blocks traversal")
}
