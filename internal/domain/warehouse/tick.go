package warehouse

import (
	"github.com/kestrel-robotics/warehouse-core/internal/domain/agent"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/dispatcher"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/grid"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/order"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/planner"
)

// TickOnce runs one simulation step (spec §4.7): dispatch every pending
// order FIFO, retreat agents left blocked from the previous tick, advance
// every active agent in strict priority order, increment the clock, then
// re-derive the §8 invariants and quarantine whatever they implicate
// (spec §7: "invariant violations are bugs... in release they are logged
// and the affected entity is quarantined"). The caller (TickHandler)
// decides whether to also log and, in strict mode, abort — TickOnce
// itself only returns what it found.
func (w *Warehouse) TickOnce() []error {
	w.dispatchPending()
	w.retreatBlocked()
	w.advanceActive()
	w.tick++
	return w.enforceInvariants()
}

// enforceInvariants runs CheckInvariants and quarantines every entity an
// invariantViolation names: agents implicated in a cell or timeline
// conflict are deactivated outright, since a corrupted position or plan
// can only get worse if the agent keeps moving. Violations with no
// single owning entity are returned unchanged for the caller to log.
func (w *Warehouse) enforceInvariants() []error {
	violations := w.CheckInvariants()
	for _, err := range violations {
		v, ok := err.(*invariantViolation)
		if !ok {
			continue
		}
		for _, id := range v.agentIDs {
			if a, ok := w.agents[id]; ok {
				a.Deactivate()
			}
		}
	}
	return violations
}

func (w *Warehouse) dispatchPending() {
	pending := append([]int(nil), w.pendingIDs...)
	w.pendingIDs = w.pendingIDs[:0]

	for _, id := range pending {
		o, ok := w.orders[id]
		if !ok || !o.IsPending() {
			continue
		}

		before := o.PendingUnits()
		deps := dispatcher.Dependencies{
			Racks:     w,
			Gates:     w,
			RackDist:  w,
			Tasks:     w,
			Agents:    w,
			Catalogue: w.catalogue,
		}
		created := dispatcher.Dispatch(o, w.readyAgents(), w.candidateRacksFor(o), deps, w.allocTaskID)
		for _, t := range created {
			w.registerTask(t)
		}

		if !o.IsPending() {
			continue
		}
		if o.PendingUnits() == before {
			o.BumpDismissTicks()
		}
		if o.DismissTicks() >= w.dismissAfterTicks {
			o.Dismiss()
			w.dismissedOrders = append(w.dismissedOrders, DismissedOrderEvent{
				OrderID: o.ID(), GateID: o.GateID(), PendingUnits: o.PendingUnits(),
				DismissTicks: o.DismissTicks(), Tick: w.tick,
			})
			continue
		}
		w.pendingIDs = append(w.pendingIDs, id)
	}
}

func (w *Warehouse) registerTask(t *order.Task) {
	w.tasks[t.ID()] = t
	w.taskByRack[t.RackID()] = t.ID()
	if a, ok := w.agents[t.AgentID()]; ok {
		_ = a.AssignTask(t.ID())
	}
}

// retreatBlocked gives every blocked agent one opportunistic guide-map
// slide toward its task's current target, unblocking it on success (spec
// §4.7 step 2, §4.5.4).
func (w *Warehouse) retreatBlocked() {
	for _, a := range w.sortedAgents() {
		if a.Status() != agent.Blocked {
			continue
		}
		gm := w.guideMapForAgent(a)
		if gm == nil {
			continue
		}
		act, moved := planner.Slide(w.grid, gm, a, w, w, w, w.tick)
		if !moved {
			continue
		}
		w.applyAgentAction(a, act)
		_ = a.Unblock()
	}
}

// advanceActive drives every non-blocked active agent's task forward by
// one tick, strictly in ascending agent id order (spec §4.7 step 3, §9
// resolved: priority is purely id-based).
func (w *Warehouse) advanceActive() {
	for _, a := range w.sortedAgents() {
		if a.Status() != agent.Active {
			continue
		}
		taskID, ok := a.ActiveTask()
		if !ok {
			continue
		}
		t, ok := w.tasks[taskID]
		if !ok {
			continue
		}
		w.advanceTask(a, t)
	}
}

func (w *Warehouse) advanceTask(a *agent.Agent, t *order.Task) {
	switch t.Phase() {
	case order.PhaseLoad:
		w.performLoad(a, t)
		return
	case order.PhaseBindGate:
		w.performBindGate(t)
		return
	case order.PhaseUnbindGate:
		w.performUnbindGate(t)
		return
	case order.PhaseOffload:
		w.performOffload(a, t)
		return
	}

	if a.HasPlan() {
		w.executeStep(a, t)
		return
	}

	target := w.approachTarget(t)
	// The plan is first executed next tick, so its start cell is held from
	// w.tick+1 — the tick DropPlan and checkAgentTimelineConsistency see.
	actions, ok := w.planner.Plan(a, target, w.tick+1)
	if !ok {
		return
	}
	a.SetPlan(actions)
	if len(actions) == 0 {
		_ = t.Advance()
	}
}

func (w *Warehouse) approachTarget(t *order.Task) grid.Position {
	switch t.Phase() {
	case order.PhaseApproachRack, order.PhaseReturnRack:
		if r, ok := w.racks[t.RackID()]; ok {
			return grid.Position{Row: r.HomeRow(), Col: r.HomeCol()}
		}
	default:
		if g, ok := w.gates[t.GateID()]; ok {
			return g.Position()
		}
	}
	return grid.Position{}
}

// executeStep consumes the agent's next planned action. A MOVE whose
// destination is unexpectedly occupied triggers a displacement attempt
// before falling back to blocking the agent (spec §4.5.2/§4.5.4).
func (w *Warehouse) executeStep(a *agent.Agent, t *order.Task) {
	act, ok := a.NextAction()
	if !ok {
		return
	}

	if act.Kind == agent.Move {
		next := a.Position().Neighbor(act.Dir)
		if occupantID, occupied := w.AgentAt(next); occupied && occupantID != a.ID() {
			if !w.displace(a, occupantID) {
				w.abortStep(a)
				return
			}
		}
		w.moveAgentCell(a, next)
	} else {
		a.ApplyRotate(act.Dir)
	}

	a.ConsumeAction()
	if !a.HasPlan() {
		_ = t.Advance()
	}
}

// displace attempts to slide occupantID one step clear so a's planned
// move can proceed; refuses to touch an occupant whose priority equals
// or outranks a's (spec §4.5.4).
func (w *Warehouse) displace(a *agent.Agent, occupantID int) bool {
	occupant, ok := w.agents[occupantID]
	if !ok {
		return false
	}
	if w.PriorityOf(occupantID) <= a.Priority() {
		return false
	}
	gm := w.guideMapForAgent(occupant)
	if gm == nil {
		return false
	}
	act, moved := planner.Slide(w.grid, gm, occupant, w, w, w, w.tick)
	if !moved {
		return false
	}
	w.applyAgentAction(occupant, act)
	return true
}

func (w *Warehouse) abortStep(a *agent.Agent) {
	planner.DropPlan(w.grid, a, w.tick)
	_ = a.Block()
}

func (w *Warehouse) applyAgentAction(a *agent.Agent, act agent.Action) {
	if act.Kind == agent.Move {
		next := a.Position().Neighbor(act.Dir)
		w.moveAgentCell(a, next)
		return
	}
	a.ApplyRotate(act.Dir)
}

func (w *Warehouse) moveAgentCell(a *agent.Agent, next grid.Position) {
	if cur, err := w.grid.CellAt(a.Position()); err == nil {
		cur.ClearAgent()
	}
	a.ApplyMove(next)
	if c, err := w.grid.CellAt(next); err == nil {
		c.SetAgent(a.ID())
	}
}

func (w *Warehouse) performLoad(a *agent.Agent, t *order.Task) {
	r, ok := w.racks[t.RackID()]
	if !ok {
		return
	}
	if a.Position() != (grid.Position{Row: r.HomeRow(), Col: r.HomeCol()}) {
		return
	}
	if err := r.Load(); err != nil {
		return
	}
	a.PickUp(r.ID())
	_ = t.Advance()
}

func (w *Warehouse) performBindGate(t *order.Task) {
	g, ok := w.gates[t.GateID()]
	if !ok {
		return
	}
	if err := g.Bind(t.ID()); err != nil {
		return
	}
	r, ok := w.racks[t.RackID()]
	if !ok {
		return
	}
	if err := t.ConfirmAllOrders(r); err != nil {
		return
	}
	_ = t.Advance()
}

func (w *Warehouse) performUnbindGate(t *order.Task) {
	g, ok := w.gates[t.GateID()]
	if !ok {
		return
	}
	g.Tick()
	if g.DwellElapsed() < w.gateDwellTicks {
		return
	}
	g.Unbind()
	_ = t.Advance()
}

func (w *Warehouse) performOffload(a *agent.Agent, t *order.Task) {
	r, ok := w.racks[t.RackID()]
	if !ok {
		return
	}
	if a.Position() != (grid.Position{Row: r.HomeRow(), Col: r.HomeCol()}) {
		return
	}
	if err := r.Offload(); err != nil {
		return
	}
	a.Drop()
	_ = t.Advance()
	w.completeTask(a, t)
}

func (w *Warehouse) completeTask(a *agent.Agent, t *order.Task) {
	for _, o := range t.Orders() {
		w.completedTasks = append(w.completedTasks, CompletedTaskEvent{
			TaskID: t.ID(), OrderID: o.ID(), AgentID: a.ID(), RackID: t.RackID(),
			Kind: o.Kind().String(), Tick: w.tick,
		})
	}
	delete(w.tasks, t.ID())
	delete(w.taskByRack, t.RackID())
	a.CompleteTask()
}
