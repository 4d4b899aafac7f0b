// Package agent models the mobile robot: identity, pose, status, and the
// per-tick action plan the planner and tick loop drive (spec §3/§4.5/§4.6).
package agent

import (
	"fmt"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/grid"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
)

// Status is the agent's lifecycle within a tick (spec §3).
type Status int

const (
	Ready Status = iota
	Active
	Blocked
	Deactivated
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "READY"
	case Active:
		return "ACTIVE"
	case Blocked:
		return "BLOCKED"
	case Deactivated:
		return "DEACTIVATED"
	default:
		return "UNKNOWN"
	}
}

// Agent is a mobile robot (spec §3 Glossary). Priority is purely id-based
// (smaller id wins ties, per §9's resolved open question — see DESIGN.md).
type Agent struct {
	id             int
	pos            grid.Position
	dir            shared.Direction
	loadCapacity   float64
	status         Status
	activeTaskID   int
	hasActiveTask  bool
	plan           []Action
	lastActionTick int
	carryingRack   int
	isCarrying     bool
	batteryLevel   int
	hasBattery     bool
}

// New creates a ready agent at pos facing dir.
func New(id int, pos grid.Position, dir shared.Direction, loadCapacity float64) (*Agent, error) {
	if loadCapacity < 0 {
		return nil, fmt.Errorf("agent %d: load capacity cannot be negative", id)
	}
	return &Agent{id: id, pos: pos, dir: dir, loadCapacity: loadCapacity, lastActionTick: -1}, nil
}

func (a *Agent) ID() int                    { return a.id }
func (a *Agent) Position() grid.Position    { return a.pos }
func (a *Agent) Direction() shared.Direction { return a.dir }
func (a *Agent) LoadCapacity() float64      { return a.loadCapacity }
func (a *Agent) Status() Status             { return a.status }

// Priority is the deterministic ranking used by the tick loop and the
// planner's timeline-conflict rule: purely the agent's numeric id.
func (a *Agent) Priority() int { return a.id }

func (a *Agent) ActiveTask() (int, bool) { return a.activeTaskID, a.hasActiveTask }

// IsCarrying reports whether the agent currently has a rack loaded, and
// which one — used by the planner's facility-cell traversal rule (§4.5.1
// condition 4: a loaded agent may re-enter its own rack's home cell).
func (a *Agent) IsCarrying() (int, bool) { return a.carryingRack, a.isCarrying }

func (a *Agent) Plan() []Action {
	out := make([]Action, len(a.plan))
	copy(out, a.plan)
	return out
}

func (a *Agent) HasPlan() bool { return len(a.plan) > 0 }

// SetPlan replaces the agent's action plan (called once planning succeeds).
func (a *Agent) SetPlan(plan []Action) {
	a.plan = append([]Action(nil), plan...)
}

// NextAction returns the next queued action without consuming it.
func (a *Agent) NextAction() (Action, bool) {
	if len(a.plan) == 0 {
		return Action{}, false
	}
	return a.plan[0], true
}

// ConsumeAction pops the next action off the plan, executed this tick.
func (a *Agent) ConsumeAction() {
	if len(a.plan) == 0 {
		return
	}
	a.plan = a.plan[1:]
}

// ClearPlan empties the action plan (used by drop_plan after the caller
// has released the corresponding timeline reservations).
func (a *Agent) ClearPlan() {
	a.plan = nil
}

// ApplyMove updates pose after a MOVE action executes successfully.
func (a *Agent) ApplyMove(next grid.Position) {
	a.pos = next
}

// ApplyRotate updates facing after a rotation action executes.
func (a *Agent) ApplyRotate(dir shared.Direction) {
	a.dir = dir
}

// PickUp marks the agent as carrying rackID (LOAD action, spec §4.6 phase 2).
func (a *Agent) PickUp(rackID int) {
	a.carryingRack = rackID
	a.isCarrying = true
}

// Drop clears carried-rack state (OFFLOAD action, spec §4.6 phase 7).
func (a *Agent) Drop() {
	a.carryingRack = 0
	a.isCarrying = false
}

// AssignTask transitions ready -> active, recording the driving task.
func (a *Agent) AssignTask(taskID int) error {
	if a.status != Ready {
		return fmt.Errorf("agent %d: cannot assign task from status %s", a.id, a.status)
	}
	a.activeTaskID = taskID
	a.hasActiveTask = true
	a.status = Active
	return nil
}

// CompleteTask releases the agent back to ready (task finished offload).
func (a *Agent) CompleteTask() {
	a.hasActiveTask = false
	a.activeTaskID = 0
	a.status = Ready
	a.ClearPlan()
}

// Block transitions active -> blocked (a MOVE could not execute because
// the physical world deviated from the planned timeline, spec §4.5.2).
func (a *Agent) Block() error {
	if a.status != Active {
		return fmt.Errorf("agent %d: cannot block from status %s", a.id, a.status)
	}
	a.status = Blocked
	return nil
}

// Unblock returns a blocked agent to active once a clearance path is found
// and the retreat completes (spec §4.7 step 2).
func (a *Agent) Unblock() error {
	if a.status != Blocked {
		return fmt.Errorf("agent %d: cannot unblock from status %s", a.id, a.status)
	}
	a.status = Active
	return nil
}

// Deactivate transitions to deactivated from any status (external I/O
// failure or robot error, spec §7 kind 4) and drops the plan. The rack
// carried state is preserved so the task can resume recovery later.
func (a *Agent) Deactivate() {
	a.status = Deactivated
	a.ClearPlan()
}

// Touch records that the agent was acted on during tick. Used by the
// guide-map replanner's displacement recursion to guarantee termination:
// each agent is touched at most once per tick (spec §4.5.4).
func (a *Agent) Touch(tick int) { a.lastActionTick = tick }

// TouchedAt reports whether the agent has already been touched this tick.
func (a *Agent) TouchedAt(tick int) bool { return a.lastActionTick == tick }

func (a *Agent) LastActionTick() int { return a.lastActionTick }

// SetBatteryLevel records the most recently reported battery telemetry
// (RobotEvent kind battery_level, spec §6). Storage only: it does not
// affect dispatch or planning (no routing non-goal is reintroduced).
func (a *Agent) SetBatteryLevel(level int) { a.batteryLevel = level; a.hasBattery = true }

// BatteryLevel returns the last reported battery level and whether one has
// ever been reported.
func (a *Agent) BatteryLevel() (int, bool) { return a.batteryLevel, a.hasBattery }
