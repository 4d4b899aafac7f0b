package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/kestrel-robotics/warehouse-core/api/warehousepb"
)

// NewStatusCommand creates the status command with its agent, order, and
// snapshot subcommands.
func NewStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Query warehouse state",
	}
	cmd.AddCommand(newStatusAgentCommand())
	cmd.AddCommand(newStatusOrderCommand())
	cmd.AddCommand(newStatusSnapshotCommand())
	return cmd
}

func newStatusAgentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "agent <id>",
		Short: "Report a single agent's state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			agentID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid agent ID %q: %w", args[0], err)
			}

			client, err := NewDaemonClient(socketPath)
			if err != nil {
				return fmt.Errorf("failed to connect to daemon: %w", err)
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			resp, err := client.GetAgent(ctx, &warehousepb.GetAgentRequest{AgentID: agentID})
			if err != nil {
				return fmt.Errorf("get agent failed: %w", err)
			}

			fmt.Printf("agent %d: status=%s pos=(%d,%d) dir=%d\n", resp.ID, resp.Status, resp.Row, resp.Col, resp.Direction)
			if resp.HasActiveTask {
				fmt.Printf("  active task: %d\n", resp.ActiveTaskID)
			}
			if resp.IsCarrying {
				fmt.Printf("  carrying rack: %d\n", resp.CarryingRackID)
			}
			if resp.HasBattery {
				fmt.Printf("  battery: %d\n", resp.BatteryLevel)
			}
			return nil
		},
	}
}

func newStatusOrderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "order <id>",
		Short: "Report a single order's state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid order ID %q: %w", args[0], err)
			}

			client, err := NewDaemonClient(socketPath)
			if err != nil {
				return fmt.Errorf("failed to connect to daemon: %w", err)
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			resp, err := client.GetOrder(ctx, &warehousepb.GetOrderRequest{OrderID: orderID})
			if err != nil {
				return fmt.Errorf("get order failed: %w", err)
			}

			fmt.Printf("order %d: status=%s gate=%d pending_units=%d\n", resp.ID, resp.Status, resp.GateID, resp.PendingUnits)
			if resp.Kind == 1 {
				fmt.Printf("  refill rack: %d\n", resp.RefillRackID)
			}
			if resp.HasLiveSubtasks {
				fmt.Printf("  no-progress dispatch ticks: %d\n", resp.DismissTicks)
			}
			return nil
		},
	}
}

func newStatusSnapshotCommand() *cobra.Command {
	var (
		agentStatus string
		gateID      int
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Report a filtered snapshot of the whole warehouse",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewDaemonClient(socketPath)
			if err != nil {
				return fmt.Errorf("failed to connect to daemon: %w", err)
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			resp, err := client.GetWarehouseSnapshot(ctx, &warehousepb.GetWarehouseSnapshotRequest{
				AgentStatus: agentStatus, GateID: gateID,
			})
			if err != nil {
				return fmt.Errorf("get warehouse snapshot failed: %w", err)
			}

			fmt.Printf("tick %d\n", resp.Tick)
			fmt.Printf("agents (%d):\n", len(resp.Agents))
			for _, a := range resp.Agents {
				fmt.Printf("  %d: %s at (%d,%d)\n", a.ID, a.Status, a.Row, a.Col)
			}
			fmt.Printf("orders (%d):\n", len(resp.Orders))
			for _, o := range resp.Orders {
				fmt.Printf("  %d: %s at gate %d\n", o.ID, o.Status, o.GateID)
			}
			fmt.Printf("allocated racks (%d):\n", len(resp.AllocatedRacks))
			for _, r := range resp.AllocatedRacks {
				fmt.Printf("  %d: allocated=%v weight=%.2f\n", r.ID, r.Allocated, r.StoredWeight)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&agentStatus, "agent-status", "", "Filter agents by status")
	cmd.Flags().IntVar(&gateID, "gate", 0, "Filter orders/snapshot by gate ID")
	return cmd
}
