package config

import "time"

// DaemonConfig holds the warehouse control daemon's process-level settings.
type DaemonConfig struct {
	// Unix socket path the gRPC control plane listens on.
	SocketPath string `mapstructure:"socket_path"`

	// PID file location, enforcing single-instance operation.
	PIDFile string `mapstructure:"pid_file"`

	// InitialStateFile, if set, is fed to Initialise at startup instead of
	// waiting for an operator to call it over the control plane.
	InitialStateFile string `mapstructure:"initial_state_file"`

	// Mode is "simulate" (tick driven by TickInterval) or "deploy" (no tick
	// driver: ticks advance only on explicit Tick requests, not on
	// RobotEvent acks), per §5/§6.
	Mode string `mapstructure:"mode" validate:"required,oneof=simulate deploy"`

	// TickInterval paces the simulate-mode tick driver; unused in deploy
	// mode.
	TickInterval time.Duration `mapstructure:"tick_interval"`

	// Graceful shutdown timeout before the listener is forced closed.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}
