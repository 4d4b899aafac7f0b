package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kestrel-robotics/warehouse-core/api/warehousepb"
)

// runStateNames mirrors control.RunState's String() method for display,
// since the wire response only carries the numeric code.
var runStateNames = map[int32]string{0: "STOPPED", 1: "RUNNING", 2: "PAUSED"}

func runStateName(code int32) string {
	if name, ok := runStateNames[code]; ok {
		return name
	}
	return "UNKNOWN"
}

// NewPauseCommand creates the pause command.
func NewPauseCommand() *cobra.Command {
	return newRunStateCommand("pause", "Suspend tick processing", func(ctx context.Context, c *DaemonClient) (*warehousepb.RunStateResponse, error) {
		return c.Pause(ctx, &warehousepb.PauseRequest{})
	})
}

// NewResumeCommand creates the resume command.
func NewResumeCommand() *cobra.Command {
	return newRunStateCommand("resume", "Resume tick processing after a pause", func(ctx context.Context, c *DaemonClient) (*warehousepb.RunStateResponse, error) {
		return c.Resume(ctx, &warehousepb.ResumeRequest{})
	})
}

// NewStopCommand creates the stop command.
func NewStopCommand() *cobra.Command {
	return newRunStateCommand("stop", "Halt tick processing permanently", func(ctx context.Context, c *DaemonClient) (*warehousepb.RunStateResponse, error) {
		return c.Stop(ctx, &warehousepb.StopRequest{})
	})
}

func newRunStateCommand(use, short string, call func(context.Context, *DaemonClient) (*warehousepb.RunStateResponse, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewDaemonClient(socketPath)
			if err != nil {
				return fmt.Errorf("failed to connect to daemon: %w", err)
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			resp, err := call(ctx, client)
			if err != nil {
				return fmt.Errorf("%s failed: %w", use, err)
			}

			fmt.Printf("run state: %s\n", runStateName(resp.State))
			return nil
		},
	}
}
