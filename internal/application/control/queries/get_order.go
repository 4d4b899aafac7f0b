package queries

import (
	"context"
	"fmt"

	"github.com/kestrel-robotics/warehouse-core/internal/application/control"
	"github.com/kestrel-robotics/warehouse-core/internal/application/mediator"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/order"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
)

// GetOrderQuery retrieves one order's current lifecycle state.
type GetOrderQuery struct {
	OrderID int `validate:"required"`
}

// GetOrderResponse reports an order's lifecycle, pending items, and
// dismiss-counter progress (spec §7 kind 2).
type GetOrderResponse struct {
	ID             int
	Kind           order.Kind
	GateID         int
	RefillRackID   int
	Status         order.Status
	Pending        map[int]int
	PendingUnits   int
	DismissTicks   int
	HasLiveSubtasks bool
}

// GetOrderHandler handles GetOrderQuery against the live warehouse state.
type GetOrderHandler struct {
	store control.Store
}

func NewGetOrderHandler(store control.Store) *GetOrderHandler {
	return &GetOrderHandler{store: store}
}

func (h *GetOrderHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetOrderQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetOrderQuery")
	}

	w, ok := h.store.Warehouse()
	if !ok {
		return nil, shared.NewValidationError(shared.ErrRackUnreachable, "", "warehouse not initialised")
	}
	o, ok := w.Order(query.OrderID)
	if !ok {
		return nil, shared.NewValidationError(shared.ErrDuplicateID, "order_id", fmt.Sprintf("unknown order %d", query.OrderID))
	}

	return &GetOrderResponse{
		ID:              o.ID(),
		Kind:            o.Kind(),
		GateID:          o.GateID(),
		RefillRackID:    o.RefillRackID(),
		Status:          o.Status(),
		Pending:         o.Pending(),
		PendingUnits:    o.PendingUnits(),
		DismissTicks:    o.DismissTicks(),
		HasLiveSubtasks: o.HasLiveSubtasks(),
	}, nil
}
