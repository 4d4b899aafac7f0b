package commands

import (
	"context"
	"fmt"

	"github.com/kestrel-robotics/warehouse-core/internal/application/control"
	"github.com/kestrel-robotics/warehouse-core/internal/application/mediator"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
)

// PauseCommand suspends tick processing without tearing down state
// (spec §6 inbound "Pause").
type PauseCommand struct{}

// ResumeCommand resumes tick processing after a Pause.
type ResumeCommand struct{}

// StopCommand halts the daemon's tick processing permanently; the
// warehouse state remains queryable until the process exits.
type StopCommand struct{}

// RunStateResponse reports the daemon's run state after the transition.
type RunStateResponse struct {
	State control.RunState
}

// RunStateHandler implements Pause, Resume, and Stop — the three control
// transitions share one handler since none of them touch domain state,
// only control.Store's RunState (spec §6 "Pause / Resume / Stop / Exit").
type RunStateHandler struct {
	store control.Store
}

func NewRunStateHandler(store control.Store) *RunStateHandler {
	return &RunStateHandler{store: store}
}

func (h *RunStateHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch request.(type) {
	case *PauseCommand:
		return h.transition(control.Paused)
	case *ResumeCommand:
		return h.transition(control.Running)
	case *StopCommand:
		return h.transition(control.Stopped)
	default:
		return nil, fmt.Errorf("invalid request type: expected *PauseCommand, *ResumeCommand, or *StopCommand")
	}
}

func (h *RunStateHandler) transition(next control.RunState) (mediator.Response, error) {
	if _, ok := h.store.Warehouse(); !ok {
		return nil, shared.NewValidationError(shared.ErrRackUnreachable, "", "warehouse not initialised")
	}
	h.store.SetRunState(next)
	return &RunStateResponse{State: next}, nil
}
