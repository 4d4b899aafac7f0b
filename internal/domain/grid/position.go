package grid

import "github.com/kestrel-robotics/warehouse-core/internal/domain/shared"

// Position is a row/column coordinate on the warehouse grid.
type Position struct {
	Row, Col int
}

// Neighbor returns the position one step away from p in direction d.
func (p Position) Neighbor(d shared.Direction) Position {
	dr, dc := d.Delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// InverseNeighbor returns the position one step behind p in direction d,
// i.e. the position whose Neighbor(d) is p.
func (p Position) InverseNeighbor(d shared.Direction) Position {
	dr, dc := d.Delta()
	return Position{Row: p.Row - dr, Col: p.Col - dc}
}

// Manhattan returns the Manhattan distance between p and q.
func (p Position) Manhattan(q Position) int {
	return absInt(p.Row-q.Row) + absInt(p.Col-q.Col)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
