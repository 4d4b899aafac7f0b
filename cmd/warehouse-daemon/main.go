package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/kestrel-robotics/warehouse-core/internal/adapters/grpc"
	"github.com/kestrel-robotics/warehouse-core/internal/adapters/metrics"
	"github.com/kestrel-robotics/warehouse-core/internal/adapters/persistence"
	"github.com/kestrel-robotics/warehouse-core/internal/adapters/persistence/snapshotstore"
	"github.com/kestrel-robotics/warehouse-core/internal/application/control"
	"github.com/kestrel-robotics/warehouse-core/internal/application/control/commands"
	"github.com/kestrel-robotics/warehouse-core/internal/application/mediator"
	"github.com/kestrel-robotics/warehouse-core/internal/infrastructure/config"
	"github.com/kestrel-robotics/warehouse-core/internal/infrastructure/database"
	"github.com/kestrel-robotics/warehouse-core/internal/infrastructure/pidfile"
)

func main() {
	flag.Parse()

	fmt.Println("Warehouse Daemon v0.1.0")
	fmt.Println("=======================")

	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig("") // Empty string = search default paths

	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Daemon.PIDFile)
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		log.Fatalf("Failed to acquire PID file lock: %v", err)
	}
	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()
	fmt.Println("PID file lock acquired")

	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	// 1. Database connection for the audit trail (completed tasks, order
	// history, dismissals, tick checkpoints) — the live warehouse itself
	// stays in memory, per the single-instance design of control.Store.
	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	fmt.Println("Database connected")

	taskLogRepo := persistence.NewGormTaskLogRepository(db, nil) // nil = RealClock
	orderHistoryRepo := persistence.NewGormOrderHistoryRepository(db, nil)
	dismissalLogRepo := persistence.NewGormDismissalLogRepository(db, nil)
	tickCheckpointRepo := persistence.NewGormTickCheckpointRepository(db, nil)
	fmt.Println("Audit repositories initialized")

	// 2. Metrics
	var commandCollector *metrics.CommandMetricsCollector
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		collector := metrics.NewWarehouseMetricsCollector()
		if err := collector.Register(); err != nil {
			return fmt.Errorf("failed to register warehouse metrics: %w", err)
		}
		metrics.SetGlobalWarehouseCollector(collector)
		commandCollector = metrics.NewCommandMetricsCollector()
		if err := commandCollector.Register(); err != nil {
			return fmt.Errorf("failed to register command metrics: %w", err)
		}

		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{EnableOpenMetrics: true}))
		metricsServer = &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Metrics.Host, cfg.Metrics.Port), Handler: mux}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("metrics server error: %v", err)
			}
		}()
		fmt.Printf("Metrics enabled on %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
	}

	// 3. Store + snapshot read-model + mediator
	store := control.NewStore()
	reader, err := snapshotstore.New()
	if err != nil {
		return fmt.Errorf("failed to create snapshot store: %w", err)
	}
	fmt.Println("Snapshot store initialized")

	med, err := control.BuildMediator(store, reader, cfg.Warehouse.StrictInvariants)
	if err != nil {
		return fmt.Errorf("failed to build mediator: %w", err)
	}
	med.RegisterMiddleware(persistence.AuditMiddleware(store, reader, taskLogRepo, orderHistoryRepo, dismissalLogRepo, tickCheckpointRepo))
	if commandCollector != nil {
		med.RegisterMiddleware(metrics.PrometheusMiddleware(commandCollector))
	}
	fmt.Println("Mediator initialized")

	if cfg.Daemon.InitialStateFile != "" {
		fmt.Printf("Loading initial state from %s...\n", cfg.Daemon.InitialStateFile)
		initCmd, err := loadInitialStateCommand(cfg.Daemon.InitialStateFile)
		if err != nil {
			return fmt.Errorf("failed to load initial state: %w", err)
		}
		if _, err := med.Send(context.Background(), initCmd); err != nil {
			return fmt.Errorf("failed to apply initial state: %w", err)
		}
		store.SetRunState(control.Running)
		fmt.Println("Warehouse initialised from file, run state set to RUNNING")
	}

	// 4. gRPC control server
	socketPath := cfg.Daemon.SocketPath
	fmt.Printf("Starting daemon server on: %s\n", socketPath)
	if err := os.MkdirAll(filepath.Dir(socketPath), 0755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	server := grpc.NewServer(grpc.ServerConfig{SocketPath: socketPath}, med, store)
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start daemon server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nShutdown signal received")
		cancel()
	}()

	// 5. Simulate-mode tick driver. Deploy mode runs no driver: the clock
	// advances only on explicit Tick requests through the control server;
	// RobotEvent done acks do not advance it.
	if cfg.Daemon.Mode == "simulate" {
		fmt.Printf("Simulate mode: ticking every %s\n", cfg.Daemon.TickInterval)
		go runTickDriver(ctx, med, cfg.Daemon.TickInterval)
	} else {
		fmt.Println("Deploy mode: no tick driver; ticks advance only on Tick requests")
	}

	fmt.Println("\n✓ Daemon is ready to accept connections")
	fmt.Println("Press Ctrl+C to stop")

	waitErr := server.Wait(ctx)

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("metrics server shutdown error: %v", err)
		}
	}

	if waitErr != nil && ctx.Err() == nil {
		return fmt.Errorf("daemon server error: %w", waitErr)
	}

	fmt.Println("\nDaemon stopped")
	return nil
}

// runTickDriver advances the warehouse on a rate limiter, the throttled
// analogue of a plain time.Ticker: a limiter also caps the burst a slow
// consumer could otherwise queue up if ticks fall behind.
func runTickDriver(ctx context.Context, med mediator.Mediator, interval time.Duration) {
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return // ctx cancelled
		}
		start := time.Now()
		_, err := med.Send(ctx, &commands.TickCommand{})
		if err != nil {
			log.Printf("tick failed: %v", err)
			continue
		}
		metrics.RecordTick(time.Since(start).Seconds())
	}
}
