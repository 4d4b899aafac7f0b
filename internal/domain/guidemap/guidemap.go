// Package guidemap computes, once at warehouse initialisation, the
// per-facility distance field used by the dispatcher and planner to rank
// racks and estimate travel cost (spec §4.2).
package guidemap

import (
	"github.com/kestrel-robotics/warehouse-core/internal/domain/grid"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
)

// Unreachable is the distance value for a cell that cannot reach the
// facility at all.
const Unreachable = -1

// GuideMap is a read-only distance field: for every reachable cell, the
// minimum number of moves to the facility's cell.
type GuideMap struct {
	facilityID int
	facility   grid.Position
	distances  map[grid.Position]int
}

// FacilityID returns the id of the facility this guide map was built for.
func (m *GuideMap) FacilityID() int { return m.facilityID }

// DistanceTo returns the minimum move count from p to the facility, or
// Unreachable if no path exists.
func (m *GuideMap) DistanceTo(p grid.Position) int {
	if d, ok := m.distances[p]; ok {
		return d
	}
	return Unreachable
}

// Reachable reports whether p can reach the facility at all.
func (m *GuideMap) Reachable(p grid.Position) bool {
	return m.DistanceTo(p) != Unreachable
}

// Build runs a reverse BFS from facility's cell over g, treating obstacles
// and every other facility's cells as blocked for pass-through (the
// target facility's own cell is always passable). A foreign facility
// cell is still recorded as reachable — so a dispatcher ranking racks
// from a gate's guide map gets a real D_gate(rack.pos), spec §4.4 — it
// is simply a dead end the BFS does not expand past. Computed once per
// facility at init and never mutated afterward.
func Build(g *grid.Grid, facilityID int, facility grid.Position) *GuideMap {
	distances := make(map[grid.Position]int)
	distances[facility] = 0

	queue := []grid.Position{facility}
	dirs := [4]shared.Direction{shared.Up, shared.Right, shared.Down, shared.Left}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curDist := distances[cur]

		if cur != facility {
			if cell, err := g.CellAt(cur); err == nil && cell.IsFacility() {
				continue
			}
		}

		for _, d := range dirs {
			next := cur.Neighbor(d)
			if !g.InBounds(next) {
				continue
			}
			if _, visited := distances[next]; visited {
				continue
			}
			cell, err := g.CellAt(next)
			if err != nil {
				continue
			}
			if cell.IsObstacle() {
				continue
			}
			distances[next] = curDist + 1
			queue = append(queue, next)
		}
	}

	return &GuideMap{facilityID: facilityID, facility: facility, distances: distances}
}
