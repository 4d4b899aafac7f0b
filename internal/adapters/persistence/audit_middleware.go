package persistence

import (
	"context"
	"log"

	"github.com/kestrel-robotics/warehouse-core/internal/application/control"
	"github.com/kestrel-robotics/warehouse-core/internal/application/control/commands"
	"github.com/kestrel-robotics/warehouse-core/internal/application/mediator"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/warehouse"
)

// SnapshotRebuilder is the write side of queries.SnapshotReader: the only
// method the control-flow side needs is the one that refreshes it.
// snapshotstore.Store satisfies this without AuditMiddleware importing the
// adapter package directly.
type SnapshotRebuilder interface {
	Rebuild(w *warehouse.Warehouse) error
}

// AuditMiddleware persists the durable trail the in-memory control.Store
// alone can't survive a restart: completed tasks, order-history
// transitions, dismissals, and the running tick checkpoint. It also keeps
// the go-memdb snapshot read-model current, since nothing else in the
// command pipeline ever touches it after construction. Shaped after the
// teacher's PrometheusMiddleware (inspect the request, call next, react to
// the outcome) but writing to GORM instead of Prometheus.
func AuditMiddleware(store control.Store, reader SnapshotRebuilder, taskLog TaskLogRepository, orderHistory OrderHistoryRepository, dismissalLog DismissalLogRepository, checkpoints TickCheckpointRepository) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		response, err := next(ctx, request)
		if err != nil {
			return response, err
		}

		switch request.(type) {
		case *commands.InitialiseCommand:
			rebuildSnapshot(reader, store)
		case *commands.SubmitOrderCommand:
			recordOrderSubmission(ctx, orderHistory, store, response)
			rebuildSnapshot(reader, store)
		case *commands.TickCommand:
			recordTickEffects(ctx, store, taskLog, dismissalLog, checkpoints, response)
			rebuildSnapshot(reader, store)
		case *commands.RobotEventCommand:
			rebuildSnapshot(reader, store)
		}

		return response, err
	}
}

func rebuildSnapshot(reader SnapshotRebuilder, store control.Store) {
	w, ok := store.Warehouse()
	if !ok {
		return
	}
	if err := reader.Rebuild(w); err != nil {
		log.Printf("audit: failed to rebuild snapshot store: %v", err)
	}
}

func recordOrderSubmission(ctx context.Context, repo OrderHistoryRepository, store control.Store, response mediator.Response) {
	resp, ok := response.(*commands.SubmitOrderResponse)
	if !ok {
		return
	}
	w, ok := store.Warehouse()
	if !ok {
		return
	}
	o, ok := w.Order(resp.ID)
	if !ok {
		return
	}
	entry := OrderHistoryModel{
		OrderID: o.ID(), GateID: o.GateID(), Kind: o.Kind().String(),
		Status: string(o.Status()), TickNumber: w.Tick(),
	}
	if err := repo.Record(ctx, entry); err != nil {
		log.Printf("audit: failed to record order history for order %d: %v", o.ID(), err)
	}
}

func recordTickEffects(ctx context.Context, store control.Store, taskLog TaskLogRepository, dismissalLog DismissalLogRepository, checkpoints TickCheckpointRepository, response mediator.Response) {
	resp, ok := response.(*commands.TickResponse)
	if !ok {
		return
	}
	w, ok := store.Warehouse()
	if !ok {
		return
	}

	for _, ev := range w.DrainCompletedTasks() {
		entry := TaskLogModel{
			TaskID: ev.TaskID, OrderID: ev.OrderID, AgentID: ev.AgentID,
			RackID: ev.RackID, Kind: ev.Kind, TickNumber: ev.Tick,
		}
		if err := taskLog.Record(ctx, entry); err != nil {
			log.Printf("audit: failed to record task log for task %d: %v", ev.TaskID, err)
		}
	}

	for _, ev := range w.DrainDismissedOrders() {
		entry := DismissalLogModel{
			OrderID: ev.OrderID, GateID: ev.GateID, PendingUnits: ev.PendingUnits,
			DismissTicks: ev.DismissTicks, TickNumber: ev.Tick,
		}
		if err := dismissalLog.Record(ctx, entry); err != nil {
			log.Printf("audit: failed to record dismissal for order %d: %v", ev.OrderID, err)
		}
	}

	if err := checkpoints.Save(ctx, resp.Tick, store.RunState().String()); err != nil {
		log.Printf("audit: failed to save tick checkpoint: %v", err)
	}
}
