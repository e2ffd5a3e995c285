package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/timvw/pane-remote/internal/ipc"
	"github.com/timvw/pane-remote/internal/logging"
	"github.com/timvw/pane-remote/internal/mux"
	telem "github.com/timvw/pane-remote/internal/otel"
	"github.com/timvw/pane-remote/internal/rc"
	"github.com/timvw/pane-remote/internal/targets"
)

// requestTimeout bounds the multiplexer calls made for one request.
const requestTimeout = 10 * time.Second

var flagPretty bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the remote-control receiver",
	Long: `Listen on the receiver socket and apply remote commands to the
panes and windows of the running tmux server.

Requests are handled one at a time in arrival order. Each one sees the
panes and windows as they are when it arrives.

Traces and metrics are exported when OTEL_EXPORTER_OTLP_ENDPOINT (or
otel_endpoint in the config file) is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&flagPretty, "pretty", false, "human-readable log output instead of JSON")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command) error {
	log, err := logging.New(os.Stderr, appConfig.LogLevel, appConfig.LogPretty || flagPretty)
	if err != nil {
		return err
	}
	if appConfig.ConfigFile != "" {
		log.Info().Str("path", appConfig.ConfigFile).Msg("config loaded")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m, err := getMultiplexer()
	if err != nil {
		return fmt.Errorf("no supported terminal multiplexer found: %w", err)
	}

	// Wire build version into OTEL service metadata
	telem.Version = Version

	tel, err := telem.Init(ctx, telem.Config{
		Endpoint: appConfig.OTELEndpoint,
		Headers:  appConfig.OTELHeaders,
	})
	if err != nil {
		log.Warn().Err(err).Msg("otel init failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		tel.Shutdown(shutdownCtx)
	}()

	d := &rc.Dispatcher{Registry: registry, Log: log}
	if tel != nil {
		d.Tracer = tel.Tracer
		d.Metrics = tel.Metrics
	}

	srv := ipc.NewServer(socketPath(), newHandler(m, d, log))
	srv.MaxPayloadBytes = appConfig.MaxPayloadBytes
	srv.Log = log
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("receiver: %w", err)
	}
	log.Info().Str("socket", srv.SocketPath()).Str("mux", m.Name()).Msg("listening")

	<-srv.Done()
	log.Info().Msg("stopped")
	return nil
}

// newHandler resolves targets against a fresh snapshot for every request.
func newHandler(m mux.Multiplexer, d *rc.Dispatcher, log zerolog.Logger) ipc.Handler {
	return func(ctx context.Context, req rc.Request) rc.Response {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		snap, err := targets.Load(ctx, m)
		if err != nil {
			log.Error().Err(err).Str("cmd", req.Cmd).Str("request_id", req.RequestID).Msg("snapshot failed")
			return rc.Response{Error: err.Error(), RequestID: req.RequestID}
		}
		return d.Handle(ctx, req, snap)
	}
}
