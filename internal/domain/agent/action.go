package agent

import "github.com/kestrel-robotics/warehouse-core/internal/domain/shared"

// ActionKind is a primitive action the planner/state machine emits for
// per-tick execution (spec §4.5/§4.6/§6 outbound ActionFor).
type ActionKind int

const (
	Move ActionKind = iota
	RotateLeft
	RotateRight
	Retreat
	Load
	Offload
	BindGate
	UnbindGate
	Stop
)

func (a ActionKind) String() string {
	switch a {
	case Move:
		return "MOVE"
	case RotateLeft:
		return "ROTATE_LEFT"
	case RotateRight:
		return "ROTATE_RIGHT"
	case Retreat:
		return "RETREAT"
	case Load:
		return "LOAD"
	case Offload:
		return "OFFLOAD"
	case BindGate:
		return "BIND_GATE"
	case UnbindGate:
		return "UNBIND_GATE"
	case Stop:
		return "STOP"
	default:
		return "UNKNOWN"
	}
}

// Action is a single step of a plan: for MOVE, Dir is the direction of
// travel; for rotations, Dir is the resulting facing.
type Action struct {
	Kind ActionKind
	Dir  shared.Direction
}
