package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kestrel-robotics/warehouse-core/api/warehousepb"
)

// NewOrderCommand creates the order command with its submit subcommand.
func NewOrderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Manage orders",
	}
	cmd.AddCommand(newOrderSubmitCommand())
	return cmd
}

func newOrderSubmitCommand() *cobra.Command {
	var (
		id     int
		kind   string
		gateID int
		rackID int
		items  []string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a collect or refill order",
		Long: `Submit a new order against the live warehouse.

Example:
  warehouse order submit --id 1 --kind collect --gate 1 --item 5:3 --item 6:1
  warehouse order submit --id 2 --kind refill --gate 2 --rack 4 --item 5:10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseItemCounts(items)
			if err != nil {
				return err
			}
			kindValue, err := parseOrderKind(kind)
			if err != nil {
				return err
			}

			client, err := NewDaemonClient(socketPath)
			if err != nil {
				return fmt.Errorf("failed to connect to daemon: %w", err)
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			resp, err := client.SubmitOrder(ctx, &warehousepb.SubmitOrderRequest{
				ID: id, Kind: kindValue, GateID: gateID, RackID: rackID, Items: parsed,
			})
			if err != nil {
				return fmt.Errorf("submit order failed: %w", err)
			}

			fmt.Printf("order %d accepted\n", resp.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Order ID (required)")
	cmd.Flags().StringVar(&kind, "kind", "collect", "Order kind: collect or refill")
	cmd.Flags().IntVar(&gateID, "gate", 0, "Gate ID (required)")
	cmd.Flags().IntVar(&rackID, "rack", 0, "Rack ID (refill orders only)")
	cmd.Flags().StringArrayVar(&items, "item", nil, "itemID:quantity, repeatable (required)")
	return cmd
}

// parseItemCounts parses repeated --item itemID:quantity flags into the
// map SubmitOrderRequest expects.
func parseItemCounts(items []string) (map[int]int, error) {
	out := make(map[int]int, len(items))
	for _, raw := range items {
		parts := strings.SplitN(raw, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid --item %q, expected itemID:quantity", raw)
		}
		itemID, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid item ID in %q: %w", raw, err)
		}
		qty, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in %q: %w", raw, err)
		}
		out[itemID] = qty
	}
	return out, nil
}

func parseOrderKind(kind string) (int32, error) {
	switch strings.ToLower(kind) {
	case "collect":
		return 0, nil
	case "refill":
		return 1, nil
	default:
		return 0, fmt.Errorf("invalid --kind %q, expected collect or refill", kind)
	}
}
