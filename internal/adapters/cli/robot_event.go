package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kestrel-robotics/warehouse-core/api/warehousepb"
)

// robotEventKinds maps the CLI's human-readable --kind values onto the
// wire's RobotEventKind ordering (commands.RobotEventKind).
var robotEventKinds = map[string]int32{
	"done":      0,
	"battery":   1,
	"blocked":   2,
	"unblocked": 3,
	"error":     4,
}

// NewRobotEventCommand creates the robot-event command.
func NewRobotEventCommand() *cobra.Command {
	var (
		robotID      int
		kind         string
		batteryLevel int
		errorCode    string
	)

	cmd := &cobra.Command{
		Use:   "robot-event",
		Short: "Report a robot-originated event to the daemon",
		Long: `Report an event a robot would otherwise ack out-of-band: task
completion, a battery level reading, a blocked/unblocked transition, or
an error.

Example:
  warehouse robot-event --robot 3 --kind done
  warehouse robot-event --robot 3 --kind battery --battery 42
  warehouse robot-event --robot 3 --kind error --error-code E_STUCK`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kindValue, ok := robotEventKinds[strings.ToLower(kind)]
			if !ok {
				return fmt.Errorf("invalid --kind %q, expected one of done, battery, blocked, unblocked, error", kind)
			}

			client, err := NewDaemonClient(socketPath)
			if err != nil {
				return fmt.Errorf("failed to connect to daemon: %w", err)
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			resp, err := client.RobotEvent(ctx, &warehousepb.RobotEventRequest{
				RobotID: robotID, Kind: kindValue, BatteryLevel: batteryLevel, ErrorCode: errorCode,
			})
			if err != nil {
				return fmt.Errorf("robot event failed: %w", err)
			}

			fmt.Printf("robot %d acked\n", resp.RobotID)
			return nil
		},
	}

	cmd.Flags().IntVar(&robotID, "robot", 0, "Robot ID (required)")
	cmd.Flags().StringVar(&kind, "kind", "done", "Event kind: done, battery, blocked, unblocked, error")
	cmd.Flags().IntVar(&batteryLevel, "battery", 0, "Battery level (battery events only)")
	cmd.Flags().StringVar(&errorCode, "error-code", "", "Error code (error events only)")
	return cmd
}
