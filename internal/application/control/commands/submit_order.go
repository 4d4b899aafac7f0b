package commands

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/kestrel-robotics/warehouse-core/internal/application/control"
	"github.com/kestrel-robotics/warehouse-core/internal/application/mediator"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/order"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
)

// SubmitOrderCommand mirrors spec §6's SubmitOrder inbound message.
type SubmitOrderCommand struct {
	ID       int `validate:"required"`
	Kind     order.Kind
	GateID   int         `validate:"required"`
	Items    map[int]int `validate:"required,gt=0,dive,gt=0"`
	RackID   int         // only meaningful for Kind == order.Refill
}

// SubmitOrderResponse acks a successfully accepted order.
type SubmitOrderResponse struct {
	ID int
}

// SubmitOrderHandler validates and enqueues a SubmitOrderCommand against
// the live warehouse (spec §6 validation rules, enforced inside
// warehouse.SubmitOrder).
type SubmitOrderHandler struct {
	store    control.Store
	validate *validator.Validate
}

func NewSubmitOrderHandler(store control.Store) *SubmitOrderHandler {
	return &SubmitOrderHandler{store: store, validate: validator.New()}
}

func (h *SubmitOrderHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SubmitOrderCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SubmitOrderCommand")
	}
	if err := h.validate.Struct(cmd); err != nil {
		return nil, shared.NewValidationError(shared.ErrOrderInfeasible, "items", err.Error())
	}

	w, ok := h.store.Warehouse()
	if !ok {
		return nil, shared.NewValidationError(shared.ErrRackUnreachable, "", "warehouse not initialised")
	}

	o, err := order.New(cmd.ID, cmd.Kind, cmd.GateID, cmd.Items, cmd.RackID)
	if err != nil {
		return nil, err
	}
	if err := w.SubmitOrder(o); err != nil {
		return nil, err
	}

	return &SubmitOrderResponse{ID: o.ID()}, nil
}
