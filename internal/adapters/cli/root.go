package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	socketPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "warehouse",
		Short: "warehouse CLI - operate the warehouse robot dispatch daemon",
		Long: `warehouse CLI sends control-plane commands to the warehouse daemon over
its Unix socket: initialise a layout, submit orders, drive or observe
ticks, and report robot events.

Examples:
  warehouse init --file layout.json
  warehouse order submit --id 1 --kind collect --gate 1 --item 5:3
  warehouse tick
  warehouse pause
  warehouse resume
  warehouse robot-event --robot 3 --kind done
  warehouse status agent 3
  warehouse status snapshot --gate 1
  warehouse health`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", getDefaultSocketPath(),
		"Path to daemon Unix socket")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewInitCommand())
	rootCmd.AddCommand(NewOrderCommand())
	rootCmd.AddCommand(NewTickCommand())
	rootCmd.AddCommand(NewPauseCommand())
	rootCmd.AddCommand(NewResumeCommand())
	rootCmd.AddCommand(NewStopCommand())
	rootCmd.AddCommand(NewRobotEventCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewHealthCommand())

	return rootCmd
}

// getDefaultSocketPath returns the default socket path
func getDefaultSocketPath() string {
	if path := os.Getenv("WAREHOUSE_SOCKET"); path != "" {
		return path
	}
	return "/tmp/warehouse-daemon.sock"
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
