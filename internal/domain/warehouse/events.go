package warehouse

// CompletedTaskEvent records one task finishing, for the audit trail a
// restarted daemon has no other way to recover (spec §3 Task, §4.6 phase 6).
type CompletedTaskEvent struct {
	TaskID  int
	OrderID int
	AgentID int
	RackID  int
	Kind    string
	Tick    int
}

// DismissedOrderEvent records one order dropped for exceeding its
// dismiss-after-ticks threshold (spec §7 kind 2).
type DismissedOrderEvent struct {
	OrderID      int
	GateID       int
	PendingUnits int
	DismissTicks int
	Tick         int
}

// DrainCompletedTasks returns every task-completion event recorded since
// the last call, clearing the buffer.
func (w *Warehouse) DrainCompletedTasks() []CompletedTaskEvent {
	events := w.completedTasks
	w.completedTasks = nil
	return events
}

// DrainDismissedOrders returns every order-dismissal event recorded since
// the last call, clearing the buffer.
func (w *Warehouse) DrainDismissedOrders() []DismissedOrderEvent {
	events := w.dismissedOrders
	w.dismissedOrders = nil
	return events
}
