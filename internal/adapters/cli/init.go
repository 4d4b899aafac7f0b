package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kestrel-robotics/warehouse-core/api/warehousepb"
)

// layoutFile is the on-disk shape of --file for NewInitCommand: a JSON
// rendering of warehousepb.InitialiseRequest, the same one-document
// approach the teacher's user_config.go used for its own JSON file.
type layoutFile struct {
	Rows              int                        `json:"rows"`
	Cols              int                        `json:"cols"`
	Items             []warehousepb.ItemSpec     `json:"items"`
	Racks             []warehousepb.RackSpec     `json:"racks"`
	Gates             []warehousepb.GateSpec     `json:"gates"`
	Stations          []warehousepb.StationSpec  `json:"stations"`
	Obstacles         []warehousepb.ObstacleSpec `json:"obstacles"`
	Agents            []warehousepb.AgentSpec    `json:"agents"`
	DismissAfterTicks int                        `json:"dismiss_after_ticks"`
	GateDwellTicks    int                        `json:"gate_dwell_ticks"`
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialise the warehouse from a layout file",
		Long: `Build a fresh warehouse from a full state description: grid dimensions,
item catalogue, racks, gates, stations, obstacles, and agents.

Example:
  warehouse init --file layout.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filePath == "" {
				return fmt.Errorf("--file is required")
			}
			data, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("reading layout file: %w", err)
			}
			var layout layoutFile
			if err := json.Unmarshal(data, &layout); err != nil {
				return fmt.Errorf("parsing layout file: %w", err)
			}

			client, err := NewDaemonClient(socketPath)
			if err != nil {
				return fmt.Errorf("failed to connect to daemon: %w", err)
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			req := &warehousepb.InitialiseRequest{
				Rows: layout.Rows, Cols: layout.Cols,
				Items: layout.Items, Racks: layout.Racks, Gates: layout.Gates,
				Stations: layout.Stations, Obstacles: layout.Obstacles, Agents: layout.Agents,
				DismissAfterTicks: layout.DismissAfterTicks, GateDwellTicks: layout.GateDwellTicks,
			}
			resp, err := client.Initialise(ctx, req)
			if err != nil {
				return fmt.Errorf("initialise failed: %w", err)
			}

			fmt.Printf("warehouse initialised at tick %d\n", resp.Tick)
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "Path to a JSON layout file (required)")
	return cmd
}
