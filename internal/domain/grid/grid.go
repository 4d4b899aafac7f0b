// Package grid implements the warehouse's static geometry and the
// fleet-wide space-time reservation timeline that sits on top of it
// (spec §4.1).
package grid

import (
	"fmt"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
)

// Grid is the canonical 2-D cell matrix plus per-cell occupancy and
// reservation state. It has no knowledge of agents, racks, or orders
// beyond the numeric ids it is told to store.
type Grid struct {
	rows, cols int
	cells      [][]Cell
}

// New creates an empty rows x cols grid of CellEmpty cells.
func New(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, shared.NewValidationError(shared.ErrInvalidDimensions, "dimensions",
			fmt.Sprintf("rows and cols must be positive, got %dx%d", rows, cols))
	}
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
	}
	return &Grid{rows: rows, cols: cols, cells: cells}, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether p lies within the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// CellAt returns a bounds-checked pointer to the cell at p.
func (g *Grid) CellAt(p Position) (*Cell, error) {
	if !g.InBounds(p) {
		return nil, fmt.Errorf("position (%d,%d) out of bounds for %dx%d grid", p.Row, p.Col, g.rows, g.cols)
	}
	return &g.cells[p.Row][p.Col], nil
}

// MustCellAt panics if p is out of bounds. Reserved for call sites that
// already validated p (e.g. while iterating the grid itself).
func (g *Grid) MustCellAt(p Position) *Cell {
	c, err := g.CellAt(p)
	if err != nil {
		panic(err)
	}
	return c
}

// Walkable reports whether p is in bounds and not an obstacle.
func (g *Grid) Walkable(p Position) bool {
	c, err := g.CellAt(p)
	if err != nil {
		return false
	}
	return !c.IsObstacle()
}

// Reserve inserts a (position, tick) -> agent reservation. Fails with
// *shared.CellBusy if a different agent already holds that tick.
func (g *Grid) Reserve(p Position, tick, agentID int) error {
	c, err := g.CellAt(p)
	if err != nil {
		return err
	}
	return c.timeline.Reserve(p.Row, p.Col, tick, agentID)
}

// Clear removes the reservation at (p, tick), if any.
func (g *Grid) Clear(p Position, tick int) {
	c, err := g.CellAt(p)
	if err != nil {
		return
	}
	c.timeline.Clear(tick)
}

// ScheduledAt returns the agent reserving p at tick, if any.
func (g *Grid) ScheduledAt(p Position, tick int) (int, bool) {
	c, err := g.CellAt(p)
	if err != nil {
		return 0, false
	}
	return c.timeline.ScheduledAt(tick)
}

// Each calls fn for every cell in the grid, in row-major order.
func (g *Grid) Each(fn func(p Position, c *Cell)) {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			p := Position{Row: r, Col: c}
			fn(p, &g.cells[r][c])
		}
	}
}
