package grpc

import (
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/kestrel-robotics/warehouse-core/api/warehousepb"
)

// Client bundles the dialed connection with the typed stub, the same
// pairing daemon_client_grpc.go gave DaemonClientGRPC so callers get one
// Close instead of managing the grpc.ClientConn separately.
type Client struct {
	warehousepb.WarehouseControlClient
	conn *grpc.ClientConn
}

// Dial opens a Unix-domain-socket connection to a WarehouseServer and
// wraps it in the typed client stub.
func Dial(socketPath string) (*Client, error) {
	conn, err := grpc.NewClient(
		"unix:"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", socketPath, err)
	}
	return &Client{
		WarehouseControlClient: warehousepb.NewWarehouseControlClient(conn),
		conn:                   conn,
	}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
