package grpc

import (
	"github.com/kestrel-robotics/warehouse-core/api/warehousepb"
	"github.com/kestrel-robotics/warehouse-core/internal/application/control/commands"
	"github.com/kestrel-robotics/warehouse-core/internal/application/control/queries"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/order"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
)

// toInitialiseCommand translates the wire request into the application
// command, the same direction daemon_service_impl.go's handlers bridge a
// pb request to the domain call before it existed here.
func toInitialiseCommand(req *warehousepb.InitialiseRequest) *commands.InitialiseCommand {
	items := make([]commands.ItemSpec, len(req.Items))
	for i, it := range req.Items {
		items[i] = commands.ItemSpec{ID: it.ID, Name: it.Name, Weight: it.Weight}
	}
	racks := make([]commands.RackSpec, len(req.Racks))
	for i, r := range req.Racks {
		racks[i] = commands.RackSpec{ID: r.ID, Row: r.Row, Col: r.Col, ContainerWeight: r.ContainerWeight, Capacity: r.Capacity, Stock: r.Stock}
	}
	gates := make([]commands.GateSpec, len(req.Gates))
	for i, g := range req.Gates {
		gates[i] = commands.GateSpec{ID: g.ID, Row: g.Row, Col: g.Col}
	}
	stations := make([]commands.StationSpec, len(req.Stations))
	for i, s := range req.Stations {
		stations[i] = commands.StationSpec{ID: s.ID, Row: s.Row, Col: s.Col}
	}
	obstacles := make([]commands.ObstacleSpec, len(req.Obstacles))
	for i, o := range req.Obstacles {
		obstacles[i] = commands.ObstacleSpec{Row: o.Row, Col: o.Col}
	}
	agents := make([]commands.AgentSpec, len(req.Agents))
	for i, a := range req.Agents {
		agents[i] = commands.AgentSpec{ID: a.ID, Row: a.Row, Col: a.Col, Direction: shared.Direction(a.Direction), LoadCapacity: a.LoadCapacity}
	}
	return &commands.InitialiseCommand{
		Rows: req.Rows, Cols: req.Cols,
		Items: items, Racks: racks, Gates: gates, Stations: stations,
		Obstacles: obstacles, Agents: agents,
		DismissAfterTicks: req.DismissAfterTicks, GateDwellTicks: req.GateDwellTicks,
	}
}

func toSubmitOrderCommand(req *warehousepb.SubmitOrderRequest) *commands.SubmitOrderCommand {
	return &commands.SubmitOrderCommand{
		ID: req.ID, Kind: order.Kind(req.Kind), GateID: req.GateID, Items: req.Items, RackID: req.RackID,
	}
}

func toRobotEventCommand(req *warehousepb.RobotEventRequest) *commands.RobotEventCommand {
	return &commands.RobotEventCommand{
		RobotID: req.RobotID, Kind: commands.RobotEventKind(req.Kind),
		BatteryLevel: req.BatteryLevel, ErrorCode: req.ErrorCode,
	}
}

func fromRunStateResponse(resp *commands.RunStateResponse) *warehousepb.RunStateResponse {
	return &warehousepb.RunStateResponse{State: int32(resp.State)}
}

func fromGetAgentResponse(resp *queries.GetAgentResponse) *warehousepb.GetAgentResponse {
	return &warehousepb.GetAgentResponse{
		ID: resp.ID, Row: resp.Row, Col: resp.Col,
		Direction: int32(resp.Direction), Status: resp.Status.String(),
		ActiveTaskID: resp.ActiveTaskID, HasActiveTask: resp.HasActiveTask,
		CarryingRackID: resp.CarryingRackID, IsCarrying: resp.IsCarrying,
		BatteryLevel: resp.BatteryLevel, HasBattery: resp.HasBattery,
	}
}

func fromGetOrderResponse(resp *queries.GetOrderResponse) *warehousepb.GetOrderResponse {
	return &warehousepb.GetOrderResponse{
		ID: resp.ID, Kind: int32(resp.Kind), GateID: resp.GateID,
		RefillRackID: resp.RefillRackID, Status: string(resp.Status),
		Pending: resp.Pending, PendingUnits: resp.PendingUnits,
		DismissTicks: resp.DismissTicks, HasLiveSubtasks: resp.HasLiveSubtasks,
	}
}

func fromSnapshotResponse(resp *queries.GetWarehouseSnapshotResponse) *warehousepb.GetWarehouseSnapshotResponse {
	agents := make([]warehousepb.AgentSnapshot, len(resp.Agents))
	for i, a := range resp.Agents {
		agents[i] = warehousepb.AgentSnapshot{ID: a.ID, Status: a.Status, Row: a.Row, Col: a.Col}
	}
	orders := make([]warehousepb.OrderSnapshot, len(resp.Orders))
	for i, o := range resp.Orders {
		orders[i] = warehousepb.OrderSnapshot{ID: o.ID, GateID: o.GateID, Status: o.Status}
	}
	racks := make([]warehousepb.RackSnapshot, len(resp.AllocatedRacks))
	for i, r := range resp.AllocatedRacks {
		racks[i] = warehousepb.RackSnapshot{ID: r.ID, Allocated: r.Allocated, StoredWeight: r.StoredWeight}
	}
	return &warehousepb.GetWarehouseSnapshotResponse{Tick: resp.Tick, Agents: agents, Orders: orders, AllocatedRacks: racks}
}
