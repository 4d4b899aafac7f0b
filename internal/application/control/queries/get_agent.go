package queries

import (
	"context"
	"fmt"

	"github.com/kestrel-robotics/warehouse-core/internal/application/control"
	"github.com/kestrel-robotics/warehouse-core/internal/application/mediator"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/agent"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
)

// GetAgentQuery retrieves one robot's current pose/status/task.
type GetAgentQuery struct {
	AgentID int `validate:"required"`
}

// GetAgentResponse reports everything an operator dashboard needs about
// one agent, including the battery telemetry of §9 supplement 5.
type GetAgentResponse struct {
	ID             int
	Row, Col       int
	Direction      shared.Direction
	Status         agent.Status
	ActiveTaskID   int
	HasActiveTask  bool
	CarryingRackID int
	IsCarrying     bool
	BatteryLevel   int
	HasBattery     bool
}

// GetAgentHandler handles GetAgentQuery against the live warehouse state.
type GetAgentHandler struct {
	store control.Store
}

func NewGetAgentHandler(store control.Store) *GetAgentHandler {
	return &GetAgentHandler{store: store}
}

func (h *GetAgentHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetAgentQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetAgentQuery")
	}

	w, ok := h.store.Warehouse()
	if !ok {
		return nil, shared.NewValidationError(shared.ErrRackUnreachable, "", "warehouse not initialised")
	}
	a, ok := w.Agent(query.AgentID)
	if !ok {
		return nil, shared.NewValidationError(shared.ErrDuplicateID, "agent_id", fmt.Sprintf("unknown agent %d", query.AgentID))
	}

	taskID, hasTask := a.ActiveTask()
	rackID, carrying := a.IsCarrying()
	battery, hasBattery := a.BatteryLevel()
	pos := a.Position()

	return &GetAgentResponse{
		ID:             a.ID(),
		Row:            pos.Row,
		Col:            pos.Col,
		Direction:      a.Direction(),
		Status:         a.Status(),
		ActiveTaskID:   taskID,
		HasActiveTask:  hasTask,
		CarryingRackID: rackID,
		IsCarrying:     carrying,
		BatteryLevel:   battery,
		HasBattery:     hasBattery,
	}, nil
}
