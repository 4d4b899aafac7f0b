package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kestrel-robotics/warehouse-core/internal/application/control/commands"
	"github.com/kestrel-robotics/warehouse-core/internal/domain/shared"
)

// initialStateFile is the on-disk shape of Daemon.InitialStateFile: the
// same JSON layout the CLI's `init --file` command accepts, read directly
// into an InitialiseCommand so a deploy-mode daemon can come up already
// initialised instead of waiting on an operator to call Initialise.
type initialStateFile struct {
	Rows  int `json:"rows"`
	Cols  int `json:"cols"`
	Items []struct {
		ID     int     `json:"id"`
		Name   string  `json:"name"`
		Weight float64 `json:"weight"`
	} `json:"items"`
	Racks []struct {
		ID              int         `json:"id"`
		Row             int         `json:"row"`
		Col             int         `json:"col"`
		ContainerWeight float64     `json:"container_weight"`
		Capacity        float64     `json:"capacity"`
		Stock           map[int]int `json:"stock"`
	} `json:"racks"`
	Gates []struct {
		ID  int `json:"id"`
		Row int `json:"row"`
		Col int `json:"col"`
	} `json:"gates"`
	Stations []struct {
		ID  int `json:"id"`
		Row int `json:"row"`
		Col int `json:"col"`
	} `json:"stations"`
	Obstacles []struct {
		Row int `json:"row"`
		Col int `json:"col"`
	} `json:"obstacles"`
	Agents []struct {
		ID           int     `json:"id"`
		Row          int     `json:"row"`
		Col          int     `json:"col"`
		Direction    int     `json:"direction"`
		LoadCapacity float64 `json:"load_capacity"`
	} `json:"agents"`
	DismissAfterTicks int `json:"dismiss_after_ticks"`
	GateDwellTicks    int `json:"gate_dwell_ticks"`
}

// loadInitialStateCommand reads path and converts it into an
// InitialiseCommand ready to send through the mediator.
func loadInitialStateCommand(path string) (*commands.InitialiseCommand, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading initial state file: %w", err)
	}
	var raw initialStateFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing initial state file: %w", err)
	}

	items := make([]commands.ItemSpec, len(raw.Items))
	for i, it := range raw.Items {
		items[i] = commands.ItemSpec{ID: it.ID, Name: it.Name, Weight: it.Weight}
	}
	racks := make([]commands.RackSpec, len(raw.Racks))
	for i, r := range raw.Racks {
		racks[i] = commands.RackSpec{ID: r.ID, Row: r.Row, Col: r.Col, ContainerWeight: r.ContainerWeight, Capacity: r.Capacity, Stock: r.Stock}
	}
	gates := make([]commands.GateSpec, len(raw.Gates))
	for i, g := range raw.Gates {
		gates[i] = commands.GateSpec{ID: g.ID, Row: g.Row, Col: g.Col}
	}
	stations := make([]commands.StationSpec, len(raw.Stations))
	for i, s := range raw.Stations {
		stations[i] = commands.StationSpec{ID: s.ID, Row: s.Row, Col: s.Col}
	}
	obstacles := make([]commands.ObstacleSpec, len(raw.Obstacles))
	for i, o := range raw.Obstacles {
		obstacles[i] = commands.ObstacleSpec{Row: o.Row, Col: o.Col}
	}
	agents := make([]commands.AgentSpec, len(raw.Agents))
	for i, a := range raw.Agents {
		agents[i] = commands.AgentSpec{ID: a.ID, Row: a.Row, Col: a.Col, Direction: shared.Direction(a.Direction), LoadCapacity: a.LoadCapacity}
	}

	return &commands.InitialiseCommand{
		Rows: raw.Rows, Cols: raw.Cols,
		Items: items, Racks: racks, Gates: gates, Stations: stations,
		Obstacles: obstacles, Agents: agents,
		DismissAfterTicks: raw.DismissAfterTicks, GateDwellTicks: raw.GateDwellTicks,
	}, nil
}
