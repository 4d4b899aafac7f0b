package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kestrel-robotics/warehouse-core/api/warehousepb"
)

// NewTickCommand creates the tick command.
func NewTickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tick",
		Short: "Advance the warehouse one simulation step",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewDaemonClient(socketPath)
			if err != nil {
				return fmt.Errorf("failed to connect to daemon: %w", err)
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			resp, err := client.Tick(ctx, &warehousepb.TickRequest{})
			if err != nil {
				return fmt.Errorf("tick failed: %w", err)
			}

			fmt.Printf("tick %d\n", resp.Tick)
			return nil
		},
	}
}
