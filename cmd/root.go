package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/timvw/pane-remote/internal/config"
	"github.com/timvw/pane-remote/internal/ipc"
	"github.com/timvw/pane-remote/internal/mux"
	"github.com/timvw/pane-remote/internal/rc"
)

var (
	// Global flags.
	flagMux        string
	flagSocket     string
	flagTimeout    string
	flagLogLevel   string
	flagNoResponse bool
)

// appConfig is the merged configuration, set before any subcommand runs.
var appConfig = config.Defaults()

// registry holds the remote commands offered as subcommands.
var registry = rc.DefaultRegistry()

var rootCmd = &cobra.Command{
	Use:   "pane-remote",
	Short: "Remote control for tmux panes and windows",
	Long: `pane-remote controls tmux panes and windows from the command line.

Run "pane-remote serve" once per tmux server. Remote commands such as
create-marker and set-tab-title are sent to it over a local socket and
applied to the panes and windows they select.

Configuration is loaded from .pane-remote.yaml, then
~/.config/pane-remote/config.yaml, then PANE_REMOTE_* environment
variables, then flags.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagMux, "mux", "", "terminal multiplexer: tmux (default: auto-detect)")
	rootCmd.PersistentFlags().StringVar(&flagSocket, "socket", "", "receiver socket path (default: $XDG_RUNTIME_DIR/pane-remote/rc.sock)")
	rootCmd.PersistentFlags().StringVar(&flagTimeout, "timeout", "", `how long to wait for a response, e.g. "2s"; "off" waits forever`)
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "receiver log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagNoResponse, "no-response", false, "do not wait for the receiver's response")

	rootCmd.AddGroup(&cobra.Group{ID: remoteGroup, Title: "Remote commands:"})
}

// loadConfig merges defaults, the config file, the environment and flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("mux") {
		cfg.Mux = flagMux
	}
	if flags.Changed("socket") {
		cfg.Socket = flagSocket
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("timeout") {
		cfg.Timeout = flagTimeout
		cfg.TimeoutDuration, err = config.ParseTimeout(flagTimeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", flagTimeout, err)
		}
	}

	appConfig = cfg
	return nil
}

// getMultiplexer returns the configured or auto-detected multiplexer.
func getMultiplexer() (mux.Multiplexer, error) {
	if appConfig.Mux != "" {
		return mux.FromName(appConfig.Mux)
	}
	return mux.Detect()
}

// socketPath returns the configured or default receiver socket.
func socketPath() string {
	if appConfig.Socket != "" {
		return appConfig.Socket
	}
	return ipc.DefaultSocketPath()
}
