package grpc

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"google.golang.org/grpc"

	"github.com/kestrel-robotics/warehouse-core/api/warehousepb"
	"github.com/kestrel-robotics/warehouse-core/internal/application/control"
	"github.com/kestrel-robotics/warehouse-core/internal/application/mediator"
)

// ServerConfig configures WarehouseServer's listener, mirroring the subset
// of daemon_server.go's DaemonServer construction this repository needs:
// a single Unix-domain socket, no TLS (operators reach it only through the
// local filesystem).
type ServerConfig struct {
	SocketPath string
	// SocketMode restricts the socket's filesystem permissions after
	// listen; defaults to 0600 (owner read/write only) when zero.
	SocketMode os.FileMode
}

// WarehouseServer hosts the WarehouseControlServer implementation over a
// Unix-domain socket, the same shape daemon_server.go gave the teacher's
// DaemonServer: Serve runs in its own goroutine, Wait drains in-flight
// calls with GracefulStop once its context is cancelled, and Stop shuts
// down immediately and removes the socket.
type WarehouseServer struct {
	cfg        ServerConfig
	grpcServer *grpc.Server
	listener   net.Listener
	errCh      chan error
}

// NewServer builds a WarehouseServer around a Mediator already wired by
// control.BuildMediator.
func NewServer(cfg ServerConfig, m mediator.Mediator, store control.Store) *WarehouseServer {
	if cfg.SocketMode == 0 {
		cfg.SocketMode = 0600
	}
	grpcServer := grpc.NewServer()
	warehousepb.RegisterWarehouseControlServer(grpcServer, NewServiceImpl(m, store))
	return &WarehouseServer{cfg: cfg, grpcServer: grpcServer, errCh: make(chan error, 1)}
}

// Start listens on the configured socket and begins serving in a
// background goroutine. It returns once the listener is ready; Serve
// errors surface later through Wait.
func (s *WarehouseServer) Start() error {
	if err := os.RemoveAll(s.cfg.SocketPath); err != nil {
		return fmt.Errorf("removing stale socket: %w", err)
	}
	listener, err := net.Listen("unix", s.cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.SocketPath, err)
	}
	if err := os.Chmod(s.cfg.SocketPath, s.cfg.SocketMode); err != nil {
		listener.Close()
		return fmt.Errorf("chmod %s: %w", s.cfg.SocketPath, err)
	}
	s.listener = listener

	go func() {
		log.Printf("warehouse control server listening on %s", s.cfg.SocketPath)
		s.errCh <- s.grpcServer.Serve(listener)
	}()
	return nil
}

// Wait blocks until the server stops serving (error) or ctx is cancelled,
// in which case it drains in-flight RPCs with GracefulStop.
func (s *WarehouseServer) Wait(ctx context.Context) error {
	select {
	case err := <-s.errCh:
		return err
	case <-ctx.Done():
		done := make(chan struct{})
		go func() {
			s.grpcServer.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			s.grpcServer.Stop()
		}
		return ctx.Err()
	}
}

// Stop forces an immediate shutdown, for callers that can't wait on ctx.
func (s *WarehouseServer) Stop() {
	s.grpcServer.Stop()
	if s.listener != nil {
		os.RemoveAll(s.cfg.SocketPath)
	}
}
