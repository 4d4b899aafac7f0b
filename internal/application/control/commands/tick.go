package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/kestrel-robotics/warehouse-core/internal/application/control"
	"github.com/kestrel-robotics/warehouse-core/internal/application/mediator"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
)

// TickCommand advances the warehouse one simulation step (spec §6 inbound
// "Tick"): in simulate mode the daemon's tick driver sends it on a timer;
// in deploy mode it is sent only by an explicit Tick request, since
// RobotEvent acks do not send it.
type TickCommand struct{}

// TickResponse reports the tick counter after the step.
type TickResponse struct {
	Tick int
}

// TickHandler runs warehouse.TickOnce, refusing to advance while the
// daemon is paused or stopped (spec §6 Pause/Resume/Stop semantics).
// Every §8 invariant violation TickOnce reports is logged; with strict
// enabled it also aborts the process (spec §7 debug-build behaviour),
// matching what CheckInvariants would otherwise only catch in tests.
type TickHandler struct {
	store  control.Store
	strict bool
}

func NewTickHandler(store control.Store, strict bool) *TickHandler {
	return &TickHandler{store: store, strict: strict}
}

func (h *TickHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*TickCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *TickCommand")
	}

	w, ok := h.store.Warehouse()
	if !ok {
		return nil, shared.NewValidationError(shared.ErrRackUnreachable, "", "warehouse not initialised")
	}
	if h.store.RunState() != control.Running {
		return &TickResponse{Tick: w.Tick()}, nil
	}

	violations := w.TickOnce()
	for _, v := range violations {
		log.Printf("warehouse: invariant violation at tick %d: %v", w.Tick(), v)
	}
	if h.strict && len(violations) > 0 {
		panic(fmt.Sprintf("warehouse: %d invariant violation(s) at tick %d (strict_invariants enabled)", len(violations), w.Tick()))
	}
	return &TickResponse{Tick: w.Tick()}, nil
}
