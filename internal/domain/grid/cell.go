package grid

// CellType identifies the static kind of a grid cell (spec §3 "Grid Cell").
type CellType int

const (
	CellEmpty CellType = iota
	CellObstacle
	CellRack
	CellGate
	CellStation
)

func (t CellType) String() string {
	switch t {
	case CellEmpty:
		return "EMPTY"
	case CellObstacle:
		return "OBSTACLE"
	case CellRack:
		return "RACK"
	case CellGate:
		return "GATE"
	case CellStation:
		return "STATION"
	default:
		return "UNKNOWN"
	}
}

// Cell is a single grid square: its static type, an optional facility
// reference (rack/gate/station id), an optional current-agent reference,
// and a sparse reservation timeline.
type Cell struct {
	Type        CellType
	FacilityID  int
	HasFacility bool
	AgentID     int
	HasAgent    bool
	timeline    Timeline
}

// IsObstacle reports whether the cell blocks normal traversal.
func (c *Cell) IsObstacle() bool { return c.Type == CellObstacle }

// IsFacility reports whether the cell carries a facility reference.
func (c *Cell) IsFacility() bool { return c.HasFacility }

// SetAgent marks the cell as currently occupied by agentID.
func (c *Cell) SetAgent(agentID int) {
	c.AgentID = agentID
	c.HasAgent = true
}

// ClearAgent removes the cell's current-agent occupancy.
func (c *Cell) ClearAgent() {
	c.AgentID = 0
	c.HasAgent = false
}
