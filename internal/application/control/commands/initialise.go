package commands

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/kestrel-robotics/warehouse-core/internal/application/control"
	"github.com/kestrel-robotics/warehouse-core/internal/application/mediator"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/agent"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/facility"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/grid"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/inventory"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/warehouse"
)

// ItemSpec describes one catalogue item for InitialiseCommand.
type ItemSpec struct {
	ID     int     `validate:"required"`
	Name   string  `validate:"required"`
	Weight float64 `validate:"gte=0"`
}

// RackSpec describes one rack for InitialiseCommand.
type RackSpec struct {
	ID              int     `validate:"required"`
	Row             int     `validate:"gte=0"`
	Col             int     `validate:"gte=0"`
	ContainerWeight float64 `validate:"gte=0"`
	Capacity        float64 `validate:"gte=0"`
	Stock           map[int]int
}

// GateSpec describes one delivery gate.
type GateSpec struct {
	ID  int `validate:"required"`
	Row int `validate:"gte=0"`
	Col int `validate:"gte=0"`
}

// StationSpec describes one recharge station.
type StationSpec struct {
	ID  int `validate:"required"`
	Row int `validate:"gte=0"`
	Col int `validate:"gte=0"`
}

// AgentSpec describes one robot's initial pose.
type AgentSpec struct {
	ID           int `validate:"required"`
	Row          int `validate:"gte=0"`
	Col          int `validate:"gte=0"`
	Direction    shared.Direction
	LoadCapacity float64 `validate:"gte=0"`
}

// ObstacleSpec marks one cell impassable.
type ObstacleSpec struct {
	Row int `validate:"gte=0"`
	Col int `validate:"gte=0"`
}

// InitialiseCommand builds a fresh Warehouse from a full state description
// (spec §6 inbound "Initialise"): dimensions, grid cells with facilities,
// and the item catalogue with weights. Re-initialising replaces whatever
// warehouse the Store currently holds.
type InitialiseCommand struct {
	Rows              int `validate:"gt=0"`
	Cols              int `validate:"gt=0"`
	Items             []ItemSpec
	Racks             []RackSpec
	Gates             []GateSpec
	Stations          []StationSpec
	Obstacles         []ObstacleSpec
	Agents            []AgentSpec
	DismissAfterTicks int
	GateDwellTicks    int
}

// InitialiseResponse confirms the warehouse was built and reports its tick.
type InitialiseResponse struct {
	Tick int
}

// InitialiseHandler wires an InitialiseCommand to a fresh warehouse.Warehouse
// installed into the control.Store.
type InitialiseHandler struct {
	store    control.Store
	validate *validator.Validate
}

func NewInitialiseHandler(store control.Store) *InitialiseHandler {
	return &InitialiseHandler{store: store, validate: validator.New()}
}

func (h *InitialiseHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*InitialiseCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *InitialiseCommand")
	}
	if err := h.validate.Struct(cmd); err != nil {
		return nil, shared.NewValidationError(shared.ErrInvalidDimensions, "", err.Error())
	}

	g, err := grid.New(cmd.Rows, cmd.Cols)
	if err != nil {
		return nil, err
	}
	for _, o := range cmd.Obstacles {
		if err := h.validate.Struct(o); err != nil {
			return nil, shared.NewValidationError(shared.ErrInvalidDimensions, "obstacles", err.Error())
		}
		cell, err := g.CellAt(grid.Position{Row: o.Row, Col: o.Col})
		if err != nil {
			return nil, shared.NewValidationError(shared.ErrInvalidDimensions, "obstacles", err.Error())
		}
		cell.Type = grid.CellObstacle
	}

	catalogue := inventory.NewCatalogue()
	for _, is := range cmd.Items {
		if err := h.validate.Struct(is); err != nil {
			return nil, shared.NewValidationError(shared.ErrInvalidDimensions, "items", err.Error())
		}
		item, err := inventory.NewItem(is.ID, is.Name, is.Weight)
		if err != nil {
			return nil, shared.NewValidationError(shared.ErrDuplicateID, "items", err.Error())
		}
		if err := catalogue.Add(item); err != nil {
			return nil, shared.NewValidationError(shared.ErrDuplicateID, "items", err.Error())
		}
	}

	racks := make([]*inventory.Rack, 0, len(cmd.Racks))
	for _, rs := range cmd.Racks {
		if err := h.validate.Struct(rs); err != nil {
			return nil, shared.NewValidationError(shared.ErrInvalidDimensions, "racks", err.Error())
		}
		rack, err := inventory.NewRack(rs.ID, rs.Row, rs.Col, rs.ContainerWeight, rs.Capacity, catalogue)
		if err != nil {
			return nil, shared.NewValidationError(shared.ErrDuplicateID, "racks", err.Error())
		}
		for itemID, qty := range rs.Stock {
			if err := rack.Add(itemID, qty); err != nil {
				return nil, shared.NewValidationError(shared.ErrCapacityExceeded, "racks", err.Error())
			}
		}
		racks = append(racks, rack)
	}

	gates := make([]*facility.Gate, 0, len(cmd.Gates))
	for _, gs := range cmd.Gates {
		if err := h.validate.Struct(gs); err != nil {
			return nil, shared.NewValidationError(shared.ErrInvalidDimensions, "gates", err.Error())
		}
		gates = append(gates, facility.NewGate(gs.ID, grid.Position{Row: gs.Row, Col: gs.Col}))
	}

	stations := make([]*facility.Station, 0, len(cmd.Stations))
	for _, ss := range cmd.Stations {
		if err := h.validate.Struct(ss); err != nil {
			return nil, shared.NewValidationError(shared.ErrInvalidDimensions, "stations", err.Error())
		}
		stations = append(stations, facility.NewStation(ss.ID, grid.Position{Row: ss.Row, Col: ss.Col}))
	}

	agents := make([]*agent.Agent, 0, len(cmd.Agents))
	for _, as := range cmd.Agents {
		if err := h.validate.Struct(as); err != nil {
			return nil, shared.NewValidationError(shared.ErrInvalidDirection, "agents", err.Error())
		}
		a, err := agent.New(as.ID, grid.Position{Row: as.Row, Col: as.Col}, as.Direction, as.LoadCapacity)
		if err != nil {
			return nil, shared.NewValidationError(shared.ErrInvalidDirection, "agents", err.Error())
		}
		agents = append(agents, a)
	}

	w := warehouse.New(g, catalogue, racks, gates, stations, agents, warehouse.Config{
		DismissAfterTicks: cmd.DismissAfterTicks,
		GateDwellTicks:    cmd.GateDwellTicks,
	})
	h.store.SetWarehouse(w)
	h.store.SetRunState(control.Running)

	return &InitialiseResponse{Tick: w.Tick()}, nil
}
