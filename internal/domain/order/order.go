// Package order implements the collect/refill order lifecycle, per-task
// item reservation, and order-merging rules of spec §3/§4.3/§4.6.
package order

import (
	"fmt"

	"github.com/kestrel-robotics/warehouse-core/internal/domain/inventory"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
)

// Kind distinguishes a collect order (gate receives items, shipped out of
// racks) from a refill order (rack receives items, delivered in via a gate).
type Kind int

const (
	Collect Kind = iota
	Refill
)

func (k Kind) String() string {
	if k == Refill {
		return "REFILL"
	}
	return "COLLECT"
}

// Status is the order lifecycle of spec §3: inactive -> active ->
// fulfilled/dismissed, expressed via the shared lifecycle state machine
// (Pending=Inactive, Running=Active, Completed=Fulfilled, Stopped=Dismissed).
type Status = shared.LifecycleStatus

const (
	Inactive  = shared.LifecycleStatusPending
	Active    = shared.LifecycleStatusRunning
	Fulfilled = shared.LifecycleStatusCompleted
	Dismissed = shared.LifecycleStatusStopped
)

// Order is a user request: collect or refill (spec §3 Glossary).
type Order struct {
	id            int
	kind          Kind
	gateID        int
	refillRackID  int // only meaningful for Refill orders
	pending       map[int]int // itemID -> units still to assign
	reservedItems map[int]map[int]int // taskID -> itemID -> units reserved by that task
	subtasks      map[int]bool // live task ids
	lifecycle     *shared.LifecycleStateMachine
	dismissTicks  int // ticks spent pending with no progress
}

// New creates an inactive order. items must have strictly positive
// quantities (construction-time only, per spec §4.3).
func New(id int, kind Kind, gateID int, items map[int]int, refillRackID int) (*Order, error) {
	pending := make(map[int]int, len(items))
	for itemID, qty := range items {
		if qty <= 0 {
			return nil, fmt.Errorf("order %d: quantity for item %d must be positive, got %d", id, itemID, qty)
		}
		pending[itemID] = qty
	}
	return &Order{
		id:            id,
		kind:          kind,
		gateID:        gateID,
		refillRackID:  refillRackID,
		pending:       pending,
		reservedItems: make(map[int]map[int]int),
		subtasks:      make(map[int]bool),
		lifecycle:     shared.NewLifecycleStateMachine(nil),
	}, nil
}

func (o *Order) ID() int        { return o.id }
func (o *Order) Kind() Kind     { return o.kind }
func (o *Order) GateID() int    { return o.gateID }
func (o *Order) Status() Status { return o.lifecycle.Status() }
func (o *Order) RefillRackID() int { return o.refillRackID }
func (o *Order) DismissTicks() int { return o.dismissTicks }

// BumpDismissTicks increments the no-progress counter; ResetDismissTicks
// clears it once progress is made (spec §7 kind 2, §9 open question;
// resolved in DESIGN.md as a configurable threshold).
func (o *Order) BumpDismissTicks() { o.dismissTicks++ }
func (o *Order) ResetDismissTicks() { o.dismissTicks = 0 }

// Dismiss marks a persistently-infeasible order dismissed without
// deleting its record (spec §7: "no unilateral deletion").
func (o *Order) Dismiss() {
	_ = o.lifecycle.Stop()
}

// Pending returns a copy of the still-unassigned item quantities.
func (o *Order) Pending() map[int]int {
	out := make(map[int]int, len(o.pending))
	for k, v := range o.pending {
		out[k] = v
	}
	return out
}

// PendingUnits is the sum of all pending quantities.
func (o *Order) PendingUnits() int {
	total := 0
	for _, q := range o.pending {
		total += q
	}
	return total
}

// IsPending reports whether the order still has unassigned units (used by
// the dispatcher's main loop condition, spec §4.4).
func (o *Order) IsPending() bool { return o.Status() == Active && o.PendingUnits() > 0 }

// HasLiveSubtasks reports whether any task is still working this order.
func (o *Order) HasLiveSubtasks() bool { return len(o.subtasks) > 0 }

// Activate reserves every pending unit at item level (collect orders
// only — refill orders reserve rack capacity instead, since the units
// being delivered don't exist in the warehouse yet; see DESIGN.md) and
// enters Active.
func (o *Order) Activate(catalogue *inventory.Catalogue) error {
	if o.Status() != Inactive {
		return fmt.Errorf("order %d: cannot activate from status %s", o.id, o.Status())
	}
	if o.kind == Collect {
		reserved := make([]int, 0, len(o.pending))
		for itemID, qty := range o.pending {
			item, ok := catalogue.Get(itemID)
			if !ok {
				o.rollbackReservations(catalogue, reserved)
				return fmt.Errorf("order %d: unknown item %d", o.id, itemID)
			}
			if err := item.Reserve(qty); err != nil {
				o.rollbackReservations(catalogue, reserved)
				return shared.NewValidationError(shared.ErrOrderInfeasible, "items", err.Error())
			}
			reserved = append(reserved, itemID)
		}
	}
	return o.lifecycle.Start()
}

func (o *Order) rollbackReservations(catalogue *inventory.Catalogue, itemIDs []int) {
	for _, id := range itemIDs {
		if item, ok := catalogue.Get(id); ok {
			_ = item.Reserve(-o.pending[id])
		}
	}
}

// PlanItemsForTask computes what a task backed by rack can supply toward
// this order's remaining pending units (spec §4.3 "item planning per
// task"). Returns nil if the rack can supply nothing. catalogue resolves
// item weights for the refill capacity check.
func (o *Order) PlanItemsForTask(rack *inventory.Rack, catalogue *inventory.Catalogue) map[int]int {
	switch o.kind {
	case Collect:
		plan := make(map[int]int)
		for itemID, needed := range o.pending {
			supply := rack.Stored(itemID)
			if supply <= 0 {
				continue
			}
			take := needed
			if supply < take {
				take = supply
			}
			if take > 0 {
				plan[itemID] = take
			}
		}
		if len(plan) == 0 {
			return nil
		}
		return plan
	case Refill:
		if rack.ID() != o.refillRackID {
			return nil
		}
		plan := make(map[int]int, len(o.pending))
		for itemID, qty := range o.pending {
			plan[itemID] = qty
		}
		if AddedWeight(catalogue, plan) > rack.AvailableCapacity()+1e-9 {
			return nil
		}
		return plan
	default:
		return nil
	}
}

// AddedWeight computes, given the catalogue, the total weight a refill
// task supplying `items` would add. Exposed so the dispatcher can
// estimate effective rack weight without duplicating unit*weight math.
func AddedWeight(catalogue *inventory.Catalogue, items map[int]int) float64 {
	total := 0.0
	for itemID, qty := range items {
		if item, ok := catalogue.Get(itemID); ok {
			total += float64(qty) * item.Weight()
		}
	}
	return total
}

// AssignTask converts a task's planned item supply into a specific rack
// reservation (spec §4.3 "On each task assignment"): for collect orders,
// Rack.reserve(item, +q) earmarks the physical units on that rack (the
// order-level Item reservation was already taken in full at Activate);
// for refill orders, Rack.ReserveCapacity(weight). Subtracts the supplied
// quantities from pending_items and records the per-task reservation.
func (o *Order) AssignTask(taskID int, rack *inventory.Rack, items map[int]int, catalogue *inventory.Catalogue) error {
	if o.Status() != Active {
		return fmt.Errorf("order %d: cannot assign task while status is %s", o.id, o.Status())
	}
	if len(items) == 0 {
		return fmt.Errorf("order %d: task %d supplies no items", o.id, taskID)
	}

	switch o.kind {
	case Collect:
		done := make([]int, 0, len(items))
		for itemID, qty := range items {
			if err := rack.Reserve(itemID, qty); err != nil {
				o.undoCollectAssign(rack, done, items)
				return err
			}
			done = append(done, itemID)
		}
	case Refill:
		weight := AddedWeight(catalogue, items)
		if err := rack.ReserveCapacity(weight); err != nil {
			return err
		}
	}

	for itemID, qty := range items {
		o.pending[itemID] -= qty
		if o.pending[itemID] <= 0 {
			delete(o.pending, itemID)
		}
	}
	if o.reservedItems[taskID] == nil {
		o.reservedItems[taskID] = make(map[int]int)
	}
	for itemID, qty := range items {
		o.reservedItems[taskID][itemID] += qty
	}
	o.subtasks[taskID] = true
	o.ResetDismissTicks()
	return nil
}

func (o *Order) undoCollectAssign(rack *inventory.Rack, done []int, items map[int]int) {
	for _, itemID := range done {
		_ = rack.Reserve(itemID, -items[itemID])
	}
}

// ConfirmTask physically settles a task's reservation against rack
// (spec §4.6 phase 4 bind-gate: collect items leave the rack, refill
// items are delivered into it) and, if nothing remains pending and no
// subtasks are live, transitions the order to Fulfilled.
func (o *Order) ConfirmTask(taskID int, rack *inventory.Rack) error {
	items, ok := o.reservedItems[taskID]
	if !ok {
		return nil
	}
	switch o.kind {
	case Collect:
		for itemID, qty := range items {
			if err := rack.ConfirmReservation(itemID, qty); err != nil {
				return err
			}
		}
	case Refill:
		for itemID, qty := range items {
			if err := rack.ConfirmRefill(itemID, qty); err != nil {
				return err
			}
		}
	}
	delete(o.reservedItems, taskID)
	delete(o.subtasks, taskID)
	if o.PendingUnits() == 0 && !o.HasLiveSubtasks() {
		return o.lifecycle.Complete()
	}
	return nil
}

// AbandonTask releases a task's reservation without confirming delivery
// (task failed before reaching bind-gate): pending units are restored so
// the order can be re-dispatched.
func (o *Order) AbandonTask(taskID int, rack *inventory.Rack, catalogue *inventory.Catalogue) {
	items, ok := o.reservedItems[taskID]
	if !ok {
		return
	}
	switch o.kind {
	case Collect:
		for itemID, qty := range items {
			_ = rack.Reserve(itemID, -qty)
			o.pending[itemID] += qty
		}
	case Refill:
		weight := AddedWeight(catalogue, items)
		rack.ReleaseCapacity(weight)
		for itemID, qty := range items {
			o.pending[itemID] += qty
		}
	}
	delete(o.reservedItems, taskID)
	delete(o.subtasks, taskID)
}

// ReservedForTask returns a copy of what taskID is reserved to supply.
func (o *Order) ReservedForTask(taskID int) map[int]int {
	src := o.reservedItems[taskID]
	out := make(map[int]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
