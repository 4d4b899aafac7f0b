package commands

import (
	"context"
	"fmt"

	"github.com/kestrel-robotics/warehouse-core/internal/application/control"
	"github.com/kestrel-robotics/warehouse-core/internal/application/mediator"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
)

// RobotEventKind is one of the robot-reported event kinds of spec §6
// inbound "RobotEvent".
type RobotEventKind int

const (
	RobotDone RobotEventKind = iota
	RobotBatteryLevel
	RobotBlocked
	RobotUnblocked
	RobotError
)

// RobotEventCommand mirrors spec §6's
// RobotEvent(robot_id, kind, [battery_level], [error_code]).
type RobotEventCommand struct {
	RobotID      int `validate:"required"`
	Kind         RobotEventKind
	BatteryLevel int
	ErrorCode    string
}

// RobotEventResponse acks the event.
type RobotEventResponse struct {
	RobotID int
	Kind    RobotEventKind
}

// RobotEventHandler applies a reported robot event to the matching agent
// (spec §6/§7 kind 4: external I/O failure or robot error deactivates the
// agent; §9 supplement 5: battery_level is storage-only telemetry).
type RobotEventHandler struct {
	store control.Store
}

func NewRobotEventHandler(store control.Store) *RobotEventHandler {
	return &RobotEventHandler{store: store}
}

func (h *RobotEventHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RobotEventCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RobotEventCommand")
	}

	w, ok := h.store.Warehouse()
	if !ok {
		return nil, shared.NewValidationError(shared.ErrRackUnreachable, "", "warehouse not initialised")
	}
	a, ok := w.Agent(cmd.RobotID)
	if !ok {
		return nil, shared.NewValidationError(shared.ErrDuplicateID, "robot_id", fmt.Sprintf("unknown agent %d", cmd.RobotID))
	}

	switch cmd.Kind {
	case RobotBatteryLevel:
		a.SetBatteryLevel(cmd.BatteryLevel)
	case RobotBlocked:
		_ = a.Block()
	case RobotUnblocked:
		_ = a.Unblock()
	case RobotError:
		a.Deactivate()
	case RobotDone:
		// Acks a completed physical action in deploy mode; the tick loop
		// already advanced the task's in-memory state when the action was
		// planned, so there is nothing further to apply here.
	}

	return &RobotEventResponse{RobotID: cmd.RobotID, Kind: cmd.Kind}, nil
}
