package cli

import (
	"context"

	grpcadapter "github.com/kestrel-robotics/warehouse-core/internal/adapters/grpc"
	"github.com/kestrel-robotics/warehouse-core/api/warehousepb"
)

// DaemonClient is the CLI's thin wrapper over the gRPC control-plane
// client, giving every subcommand the same dial-then-call shape the
// teacher's daemon_client.go gave its much larger command set.
type DaemonClient struct {
	*grpcadapter.Client
}

// NewDaemonClient dials the daemon's Unix socket.
func NewDaemonClient(socketPath string) (*DaemonClient, error) {
	c, err := grpcadapter.Dial(socketPath)
	if err != nil {
		return nil, err
	}
	return &DaemonClient{Client: c}, nil
}

// HealthCheck pings the daemon.
func (c *DaemonClient) HealthCheck(ctx context.Context) (*warehousepb.HealthCheckResponse, error) {
	return c.Client.HealthCheck(ctx, &warehousepb.HealthCheckRequest{})
}
