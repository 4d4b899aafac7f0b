package order

import (
	"fmt"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/inventory"
)

// Phase is a task's position in the seven-step trip of spec §4.6, each
// completed before the next begins.
type Phase int

const (
	PhaseApproachRack Phase = iota
	PhaseLoad
	PhaseApproachGate
	PhaseBindGate
	PhaseUnbindGate
	PhaseReturnRack
	PhaseOffload
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseApproachRack:
		return "APPROACH_RACK"
	case PhaseLoad:
		return "LOAD"
	case PhaseApproachGate:
		return "APPROACH_GATE"
	case PhaseBindGate:
		return "BIND_GATE"
	case PhaseUnbindGate:
		return "UNBIND_GATE"
	case PhaseReturnRack:
		return "RETURN_RACK"
	case PhaseOffload:
		return "OFFLOAD"
	case PhaseDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// Task is a single (agent, rack) assignment serving one or more merged
// orders bound for the same gate (spec §3 Glossary, §4.6).
type Task struct {
	id      int
	agentID int
	rackID  int
	gateID  int
	phase   Phase
	orders  []*Order
}

// NewTask opens a task for agentID carrying rackID, seeded by the order
// that triggered dispatch. The task's gate is fixed to that order's gate.
func NewTask(id, agentID, rackID int, first *Order) *Task {
	return &Task{id: id, agentID: agentID, rackID: rackID, gateID: first.GateID(), orders: []*Order{first}}
}

func (t *Task) ID() int        { return t.id }
func (t *Task) AgentID() int   { return t.agentID }
func (t *Task) RackID() int    { return t.rackID }
func (t *Task) GateID() int    { return t.gateID }
func (t *Task) Phase() Phase   { return t.phase }
func (t *Task) IsDone() bool   { return t.phase == PhaseDone }

// Orders returns the set of orders currently merged into this task's trip.
func (t *Task) Orders() []*Order {
	out := make([]*Order, len(t.orders))
	copy(out, t.orders)
	return out
}

// CanMergeOrder reports whether o may be folded into this task's ongoing
// trip: same delivery gate, and the task has not yet executed bind-gate
// (spec §4.6: "may accept further orders at phase 4 onwards ... going to
// the same gate"; read together with "called while approaching or at the
// gate" this is taken to mean any point from ApproachGate up to, but not
// through, BindGate — see DESIGN.md).
func (t *Task) CanMergeOrder(o *Order) bool {
	if o.GateID() != t.gateID {
		return false
	}
	return t.phase >= PhaseApproachGate && t.phase <= PhaseBindGate
}

// EstimatedAddedSteps is the dispatcher's estimate of the extra travel a
// merged order would add to this task's trip (spec §4.4's
// estimated_steps, already-allocated-rack branch). Merging is only legal
// toward the task's existing destination gate (CanMergeOrder), so the
// task is already travelling there regardless of o; folding o in adds no
// incremental travel.
func (t *Task) EstimatedAddedSteps(o *Order) int {
	return 0
}

// AddOrder merges o into this task's trip: it reserves whatever o's
// remaining pending items this rack can still supply and recomputes the
// task's reservations accordingly (spec §4.6 order merging).
func (t *Task) AddOrder(o *Order, rack *inventory.Rack, catalogue *inventory.Catalogue) error {
	if !t.CanMergeOrder(o) {
		return fmt.Errorf("task %d: cannot merge order %d at phase %s", t.id, o.ID(), t.phase)
	}
	items := o.PlanItemsForTask(rack, catalogue)
	if items == nil {
		return fmt.Errorf("task %d: order %d has nothing rack %d can supply", t.id, o.ID(), rack.ID())
	}
	if err := o.AssignTask(t.id, rack, items, catalogue); err != nil {
		return err
	}
	t.orders = append(t.orders, o)
	return nil
}

// Advance moves the task to its next phase in the fixed sequence of
// spec §4.6. Phase-specific side effects on rack/gate/agent state are the
// caller's responsibility (Warehouse owns those entities); Advance only
// enforces the ordering rule.
func (t *Task) Advance() error {
	if t.phase == PhaseDone {
		return fmt.Errorf("task %d: already done", t.id)
	}
	t.phase++
	return nil
}

// ConfirmAllOrders settles every merged order's reservation against rack
// (spec §4.6 phase 4, bind-gate: units physically leave/enter the rack).
func (t *Task) ConfirmAllOrders(rack *inventory.Rack) error {
	for _, o := range t.orders {
		if err := o.ConfirmTask(t.id, rack); err != nil {
			return err
		}
	}
	return nil
}

// AbandonAllOrders releases every merged order's reservation without
// confirming delivery — used when the task is suspended or fails before
// reaching bind-gate (spec §7 kind 4: external I/O failure).
func (t *Task) AbandonAllOrders(rack *inventory.Rack, catalogue *inventory.Catalogue) {
	for _, o := range t.orders {
		o.AbandonTask(t.id, rack, catalogue)
	}
}
