// Package warehousepb holds the wire messages for the warehouse control
// plane (spec §6). These are hand-maintained Go structs standing in for
// generated protobuf types — there is no .proto source and no protoc
// invocation in this repository (see DESIGN.md); the accompanying codec.go
// carries them over google.golang.org/grpc using a JSON wire codec
// registered in place of the default protobuf one, so the transport is a
// real gRPC connection (Unix-socket dialing, streaming, deadlines) without
// a protobuf compiler in the build.
package warehousepb

// ItemSpec mirrors control/commands.ItemSpec on the wire.
type ItemSpec struct {
	ID     int
	Name   string
	Weight float64
}

// RackSpec mirrors control/commands.RackSpec on the wire.
type RackSpec struct {
	ID              int
	Row             int
	Col             int
	ContainerWeight float64
	Capacity        float64
	Stock           map[int]int
}

// GateSpec mirrors control/commands.GateSpec on the wire.
type GateSpec struct {
	ID  int
	Row int
	Col int
}

// StationSpec mirrors control/commands.StationSpec on the wire.
type StationSpec struct {
	ID  int
	Row int
	Col int
}

// AgentSpec mirrors control/commands.AgentSpec on the wire.
type AgentSpec struct {
	ID           int
	Row          int
	Col          int
	Direction    int32
	LoadCapacity float64
}

// ObstacleSpec mirrors control/commands.ObstacleSpec on the wire.
type ObstacleSpec struct {
	Row int
	Col int
}

// InitialiseRequest carries a full warehouse state description (spec §6
// inbound "Initialise").
type InitialiseRequest struct {
	Rows              int
	Cols              int
	Items             []ItemSpec
	Racks             []RackSpec
	Gates             []GateSpec
	Stations          []StationSpec
	Obstacles         []ObstacleSpec
	Agents            []AgentSpec
	DismissAfterTicks int
	GateDwellTicks    int
}

type InitialiseResponse struct {
	Tick int
}

// SubmitOrderRequest mirrors spec §6's SubmitOrder inbound message.
type SubmitOrderRequest struct {
	ID     int
	Kind   int32
	GateID int
	Items  map[int]int
	RackID int
}

type SubmitOrderResponse struct {
	ID int
}

type PauseRequest struct{}
type ResumeRequest struct{}
type StopRequest struct{}

type RunStateResponse struct {
	State int32
}

type TickRequest struct{}

type TickResponse struct {
	Tick int
}

// RobotEventRequest mirrors spec §6's
// RobotEvent(robot_id, kind, [battery_level], [error_code]).
type RobotEventRequest struct {
	RobotID      int
	Kind         int32
	BatteryLevel int
	ErrorCode    string
}

type RobotEventResponse struct {
	RobotID int
	Kind    int32
}

type GetAgentRequest struct {
	AgentID int
}

type GetAgentResponse struct {
	ID             int
	Row            int
	Col            int
	Direction      int32
	Status         string
	ActiveTaskID   int
	HasActiveTask  bool
	CarryingRackID int
	IsCarrying     bool
	BatteryLevel   int
	HasBattery     bool
}

type GetOrderRequest struct {
	OrderID int
}

type GetOrderResponse struct {
	ID              int
	Kind            int32
	GateID          int
	RefillRackID    int
	Status          string
	Pending         map[int]int
	PendingUnits    int
	DismissTicks    int
	HasLiveSubtasks bool
}

type GetWarehouseSnapshotRequest struct {
	AgentStatus string
	GateID      int
}

type AgentSnapshot struct {
	ID     int
	Status string
	Row    int
	Col    int
}

type OrderSnapshot struct {
	ID     int
	GateID int
	Status string
}

type RackSnapshot struct {
	ID           int
	Allocated    bool
	StoredWeight float64
}

type GetWarehouseSnapshotResponse struct {
	Tick           int
	Agents         []AgentSnapshot
	Orders         []OrderSnapshot
	AllocatedRacks []RackSnapshot
}

type HealthCheckRequest struct{}

type HealthCheckResponse struct {
	Status   string
	Version  string
	RunState int32
	Tick     int
}
