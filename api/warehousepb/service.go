package warehousepb

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
)

// WarehouseControlServer is the service interface the daemon implements
// (spec §6's full inbound/outbound contract). Shaped the way
// protoc-gen-go-grpc would generate it, so internal/adapters/grpc's server
// and client read the same as if they were generated.
type WarehouseControlServer interface {
	Initialise(context.Context, *InitialiseRequest) (*InitialiseResponse, error)
	SubmitOrder(context.Context, *SubmitOrderRequest) (*SubmitOrderResponse, error)
	Pause(context.Context, *PauseRequest) (*RunStateResponse, error)
	Resume(context.Context, *ResumeRequest) (*RunStateResponse, error)
	Stop(context.Context, *StopRequest) (*RunStateResponse, error)
	Tick(context.Context, *TickRequest) (*TickResponse, error)
	RobotEvent(context.Context, *RobotEventRequest) (*RobotEventResponse, error)
	GetAgent(context.Context, *GetAgentRequest) (*GetAgentResponse, error)
	GetOrder(context.Context, *GetOrderRequest) (*GetOrderResponse, error)
	GetWarehouseSnapshot(context.Context, *GetWarehouseSnapshotRequest) (*GetWarehouseSnapshotResponse, error)
	HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckResponse, error)
}

// WarehouseControlClient is the client-side stub.
type WarehouseControlClient interface {
	Initialise(ctx context.Context, in *InitialiseRequest, opts ...grpc.CallOption) (*InitialiseResponse, error)
	SubmitOrder(ctx context.Context, in *SubmitOrderRequest, opts ...grpc.CallOption) (*SubmitOrderResponse, error)
	Pause(ctx context.Context, in *PauseRequest, opts ...grpc.CallOption) (*RunStateResponse, error)
	Resume(ctx context.Context, in *ResumeRequest, opts ...grpc.CallOption) (*RunStateResponse, error)
	Stop(ctx context.Context, in *StopRequest, opts ...grpc.CallOption) (*RunStateResponse, error)
	Tick(ctx context.Context, in *TickRequest, opts ...grpc.CallOption) (*TickResponse, error)
	RobotEvent(ctx context.Context, in *RobotEventRequest, opts ...grpc.CallOption) (*RobotEventResponse, error)
	GetAgent(ctx context.Context, in *GetAgentRequest, opts ...grpc.CallOption) (*GetAgentResponse, error)
	GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*GetOrderResponse, error)
	GetWarehouseSnapshot(ctx context.Context, in *GetWarehouseSnapshotRequest, opts ...grpc.CallOption) (*GetWarehouseSnapshotResponse, error)
	HealthCheck(ctx context.Context, in *HealthCheckRequest, opts ...grpc.CallOption) (*HealthCheckResponse, error)
}

type warehouseControlClient struct {
	cc grpc.ClientConnInterface
}

// NewWarehouseControlClient wraps an established connection (typically
// dialed over a Unix socket) in the typed client stub.
func NewWarehouseControlClient(cc grpc.ClientConnInterface) WarehouseControlClient {
	return &warehouseControlClient{cc: cc}
}

func (c *warehouseControlClient) Initialise(ctx context.Context, in *InitialiseRequest, opts ...grpc.CallOption) (*InitialiseResponse, error) {
	out := new(InitialiseResponse)
	if err := c.cc.Invoke(ctx, serviceMethod("Initialise"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *warehouseControlClient) SubmitOrder(ctx context.Context, in *SubmitOrderRequest, opts ...grpc.CallOption) (*SubmitOrderResponse, error) {
	out := new(SubmitOrderResponse)
	if err := c.cc.Invoke(ctx, serviceMethod("SubmitOrder"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *warehouseControlClient) Pause(ctx context.Context, in *PauseRequest, opts ...grpc.CallOption) (*RunStateResponse, error) {
	out := new(RunStateResponse)
	if err := c.cc.Invoke(ctx, serviceMethod("Pause"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *warehouseControlClient) Resume(ctx context.Context, in *ResumeRequest, opts ...grpc.CallOption) (*RunStateResponse, error) {
	out := new(RunStateResponse)
	if err := c.cc.Invoke(ctx, serviceMethod("Resume"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *warehouseControlClient) Stop(ctx context.Context, in *StopRequest, opts ...grpc.CallOption) (*RunStateResponse, error) {
	out := new(RunStateResponse)
	if err := c.cc.Invoke(ctx, serviceMethod("Stop"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *warehouseControlClient) Tick(ctx context.Context, in *TickRequest, opts ...grpc.CallOption) (*TickResponse, error) {
	out := new(TickResponse)
	if err := c.cc.Invoke(ctx, serviceMethod("Tick"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *warehouseControlClient) RobotEvent(ctx context.Context, in *RobotEventRequest, opts ...grpc.CallOption) (*RobotEventResponse, error) {
	out := new(RobotEventResponse)
	if err := c.cc.Invoke(ctx, serviceMethod("RobotEvent"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *warehouseControlClient) GetAgent(ctx context.Context, in *GetAgentRequest, opts ...grpc.CallOption) (*GetAgentResponse, error) {
	out := new(GetAgentResponse)
	if err := c.cc.Invoke(ctx, serviceMethod("GetAgent"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *warehouseControlClient) GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*GetOrderResponse, error) {
	out := new(GetOrderResponse)
	if err := c.cc.Invoke(ctx, serviceMethod("GetOrder"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *warehouseControlClient) GetWarehouseSnapshot(ctx context.Context, in *GetWarehouseSnapshotRequest, opts ...grpc.CallOption) (*GetWarehouseSnapshotResponse, error) {
	out := new(GetWarehouseSnapshotResponse)
	if err := c.cc.Invoke(ctx, serviceMethod("GetWarehouseSnapshot"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *warehouseControlClient) HealthCheck(ctx context.Context, in *HealthCheckRequest, opts ...grpc.CallOption) (*HealthCheckResponse, error) {
	out := new(HealthCheckResponse)
	if err := c.cc.Invoke(ctx, serviceMethod("HealthCheck"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

const serviceName = "warehousepb.WarehouseControl"

func serviceMethod(name string) string {
	return "/" + serviceName + "/" + name
}

// UnimplementedWarehouseControlServer can be embedded by a server
// implementation to satisfy WarehouseControlServer for methods it doesn't
// override, the same forward-compatibility convention protoc-gen-go-grpc
// generates.
type UnimplementedWarehouseControlServer struct{}

func (UnimplementedWarehouseControlServer) Initialise(context.Context, *InitialiseRequest) (*InitialiseResponse, error) {
	return nil, errUnimplemented("Initialise")
}
func (UnimplementedWarehouseControlServer) SubmitOrder(context.Context, *SubmitOrderRequest) (*SubmitOrderResponse, error) {
	return nil, errUnimplemented("SubmitOrder")
}
func (UnimplementedWarehouseControlServer) Pause(context.Context, *PauseRequest) (*RunStateResponse, error) {
	return nil, errUnimplemented("Pause")
}
func (UnimplementedWarehouseControlServer) Resume(context.Context, *ResumeRequest) (*RunStateResponse, error) {
	return nil, errUnimplemented("Resume")
}
func (UnimplementedWarehouseControlServer) Stop(context.Context, *StopRequest) (*RunStateResponse, error) {
	return nil, errUnimplemented("Stop")
}
func (UnimplementedWarehouseControlServer) Tick(context.Context, *TickRequest) (*TickResponse, error) {
	return nil, errUnimplemented("Tick")
}
func (UnimplementedWarehouseControlServer) RobotEvent(context.Context, *RobotEventRequest) (*RobotEventResponse, error) {
	return nil, errUnimplemented("RobotEvent")
}
func (UnimplementedWarehouseControlServer) GetAgent(context.Context, *GetAgentRequest) (*GetAgentResponse, error) {
	return nil, errUnimplemented("GetAgent")
}
func (UnimplementedWarehouseControlServer) GetOrder(context.Context, *GetOrderRequest) (*GetOrderResponse, error) {
	return nil, errUnimplemented("GetOrder")
}
func (UnimplementedWarehouseControlServer) GetWarehouseSnapshot(context.Context, *GetWarehouseSnapshotRequest) (*GetWarehouseSnapshotResponse, error) {
	return nil, errUnimplemented("GetWarehouseSnapshot")
}
func (UnimplementedWarehouseControlServer) HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckResponse, error) {
	return nil, errUnimplemented("HealthCheck")
}

func errUnimplemented(method string) error {
	return fmt.Errorf("warehousepb: method %s not implemented", method)
}

// RegisterWarehouseControlServer registers srv on s, the same convention
// protoc-gen-go-grpc generates.
func RegisterWarehouseControlServer(s grpc.ServiceRegistrar, srv WarehouseControlServer) {
	s.RegisterService(&warehouseControlServiceDesc, srv)
}

var warehouseControlServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*WarehouseControlServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Initialise", Handler: handleInitialise},
		{MethodName: "SubmitOrder", Handler: handleSubmitOrder},
		{MethodName: "Pause", Handler: handlePause},
		{MethodName: "Resume", Handler: handleResume},
		{MethodName: "Stop", Handler: handleStop},
		{MethodName: "Tick", Handler: handleTick},
		{MethodName: "RobotEvent", Handler: handleRobotEvent},
		{MethodName: "GetAgent", Handler: handleGetAgent},
		{MethodName: "GetOrder", Handler: handleGetOrder},
		{MethodName: "GetWarehouseSnapshot", Handler: handleGetWarehouseSnapshot},
		{MethodName: "HealthCheck", Handler: handleHealthCheck},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "warehousepb/warehouse.proto",
}

func handleInitialise(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(InitialiseRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WarehouseControlServer).Initialise(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceMethod("Initialise")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(WarehouseControlServer).Initialise(ctx, req.(*InitialiseRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleSubmitOrder(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SubmitOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WarehouseControlServer).SubmitOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceMethod("SubmitOrder")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(WarehouseControlServer).SubmitOrder(ctx, req.(*SubmitOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handlePause(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PauseRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WarehouseControlServer).Pause(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceMethod("Pause")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(WarehouseControlServer).Pause(ctx, req.(*PauseRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleResume(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ResumeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WarehouseControlServer).Resume(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceMethod("Resume")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(WarehouseControlServer).Resume(ctx, req.(*ResumeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleStop(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(StopRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WarehouseControlServer).Stop(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceMethod("Stop")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(WarehouseControlServer).Stop(ctx, req.(*StopRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleTick(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(TickRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WarehouseControlServer).Tick(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceMethod("Tick")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(WarehouseControlServer).Tick(ctx, req.(*TickRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleRobotEvent(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RobotEventRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WarehouseControlServer).RobotEvent(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceMethod("RobotEvent")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(WarehouseControlServer).RobotEvent(ctx, req.(*RobotEventRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleGetAgent(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetAgentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WarehouseControlServer).GetAgent(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceMethod("GetAgent")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(WarehouseControlServer).GetAgent(ctx, req.(*GetAgentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleGetOrder(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WarehouseControlServer).GetOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceMethod("GetOrder")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(WarehouseControlServer).GetOrder(ctx, req.(*GetOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleGetWarehouseSnapshot(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetWarehouseSnapshotRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WarehouseControlServer).GetWarehouseSnapshot(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceMethod("GetWarehouseSnapshot")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(WarehouseControlServer).GetWarehouseSnapshot(ctx, req.(*GetWarehouseSnapshotRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleHealthCheck(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(HealthCheckRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WarehouseControlServer).HealthCheck(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceMethod("HealthCheck")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(WarehouseControlServer).HealthCheck(ctx, req.(*HealthCheckRequest))
	}
	return interceptor(ctx, in, info, handler)
}
