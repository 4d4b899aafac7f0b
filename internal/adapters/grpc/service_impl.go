package grpc

import (
	"context"
	"fmt"

	"github.com/kestrel-robotics/warehouse-core/api/warehousepb"
	"github.com/kestrel-robotics/warehouse-core/internal/application/control"
	"github.com/kestrel-robotics/warehouse-core/internal/application/control/commands"
	"github.com/kestrel-robotics/warehouse-core/internal/application/control/queries"
	"github.com/kestrel-robotics/warehouse-core/internal/application/mediator"
)

// version is reported by HealthCheck; set at build time the way the
// teacher's daemon_service_impl.go reports its own build version.
var version = "dev"

// serviceImpl implements warehousepb.WarehouseControlServer by translating
// each RPC into a mediator.Request and sending it through the Mediator
// built by control.BuildMediator, the same bridging role
// daemon_service_impl.go played between the pb service and the teacher's
// DaemonServer.
type serviceImpl struct {
	warehousepb.UnimplementedWarehouseControlServer
	mediator mediator.Mediator
	store    control.Store
}

// NewServiceImpl wires a WarehouseControlServer over an already-built
// Mediator and the Store it shares with every handler.
func NewServiceImpl(m mediator.Mediator, store control.Store) warehousepb.WarehouseControlServer {
	return &serviceImpl{mediator: m, store: store}
}

func (s *serviceImpl) Initialise(ctx context.Context, req *warehousepb.InitialiseRequest) (*warehousepb.InitialiseResponse, error) {
	resp, err := s.mediator.Send(ctx, toInitialiseCommand(req))
	if err != nil {
		return nil, err
	}
	r, ok := resp.(*commands.InitialiseResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", resp)
	}
	return &warehousepb.InitialiseResponse{Tick: r.Tick}, nil
}

func (s *serviceImpl) SubmitOrder(ctx context.Context, req *warehousepb.SubmitOrderRequest) (*warehousepb.SubmitOrderResponse, error) {
	resp, err := s.mediator.Send(ctx, toSubmitOrderCommand(req))
	if err != nil {
		return nil, err
	}
	r, ok := resp.(*commands.SubmitOrderResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", resp)
	}
	return &warehousepb.SubmitOrderResponse{ID: r.ID}, nil
}

func (s *serviceImpl) Pause(ctx context.Context, req *warehousepb.PauseRequest) (*warehousepb.RunStateResponse, error) {
	return s.runState(ctx, &commands.PauseCommand{})
}

func (s *serviceImpl) Resume(ctx context.Context, req *warehousepb.ResumeRequest) (*warehousepb.RunStateResponse, error) {
	return s.runState(ctx, &commands.ResumeCommand{})
}

func (s *serviceImpl) Stop(ctx context.Context, req *warehousepb.StopRequest) (*warehousepb.RunStateResponse, error) {
	return s.runState(ctx, &commands.StopCommand{})
}

func (s *serviceImpl) runState(ctx context.Context, cmd mediator.Request) (*warehousepb.RunStateResponse, error) {
	resp, err := s.mediator.Send(ctx, cmd)
	if err != nil {
		return nil, err
	}
	r, ok := resp.(*commands.RunStateResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", resp)
	}
	return fromRunStateResponse(r), nil
}

func (s *serviceImpl) Tick(ctx context.Context, req *warehousepb.TickRequest) (*warehousepb.TickResponse, error) {
	resp, err := s.mediator.Send(ctx, &commands.TickCommand{})
	if err != nil {
		return nil, err
	}
	r, ok := resp.(*commands.TickResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", resp)
	}
	return &warehousepb.TickResponse{Tick: r.Tick}, nil
}

func (s *serviceImpl) RobotEvent(ctx context.Context, req *warehousepb.RobotEventRequest) (*warehousepb.RobotEventResponse, error) {
	resp, err := s.mediator.Send(ctx, toRobotEventCommand(req))
	if err != nil {
		return nil, err
	}
	r, ok := resp.(*commands.RobotEventResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", resp)
	}
	return &warehousepb.RobotEventResponse{RobotID: r.RobotID, Kind: int32(r.Kind)}, nil
}

func (s *serviceImpl) GetAgent(ctx context.Context, req *warehousepb.GetAgentRequest) (*warehousepb.GetAgentResponse, error) {
	resp, err := s.mediator.Send(ctx, &queries.GetAgentQuery{AgentID: req.AgentID})
	if err != nil {
		return nil, err
	}
	r, ok := resp.(*queries.GetAgentResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", resp)
	}
	return fromGetAgentResponse(r), nil
}

func (s *serviceImpl) GetOrder(ctx context.Context, req *warehousepb.GetOrderRequest) (*warehousepb.GetOrderResponse, error) {
	resp, err := s.mediator.Send(ctx, &queries.GetOrderQuery{OrderID: req.OrderID})
	if err != nil {
		return nil, err
	}
	r, ok := resp.(*queries.GetOrderResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", resp)
	}
	return fromGetOrderResponse(r), nil
}

func (s *serviceImpl) GetWarehouseSnapshot(ctx context.Context, req *warehousepb.GetWarehouseSnapshotRequest) (*warehousepb.GetWarehouseSnapshotResponse, error) {
	resp, err := s.mediator.Send(ctx, &queries.GetWarehouseSnapshotQuery{AgentStatus: req.AgentStatus, GateID: req.GateID})
	if err != nil {
		return nil, err
	}
	r, ok := resp.(*queries.GetWarehouseSnapshotResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", resp)
	}
	return fromSnapshotResponse(r), nil
}

// HealthCheck reports liveness directly from the Store rather than through
// the mediator: it must answer even if no warehouse has been initialised
// yet, which the command handlers and the agent/order queries treat as
// an error.
func (s *serviceImpl) HealthCheck(ctx context.Context, req *warehousepb.HealthCheckRequest) (*warehousepb.HealthCheckResponse, error) {
	tick := 0
	if w, ok := s.store.Warehouse(); ok {
		tick = w.Tick()
	}
	return &warehousepb.HealthCheckResponse{
		Status:   "SERVING",
		Version:  version,
		RunState: int32(s.store.RunState()),
		Tick:     tick,
	}, nil
}
