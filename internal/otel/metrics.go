package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "pane-remote"

// Metrics holds all OTEL metric instruments for the remote-control receiver.
// All instruments are safe for concurrent use.
type Metrics struct {
	// Commands counts dispatched commands, partitioned by command and outcome
	// (ok, error, match_error, unknown_command, bad_request).
	Commands metric.Int64Counter
	// MatchFailures counts match expressions that selected nothing,
	// partitioned by command and target kind.
	MatchFailures metric.Int64Counter
	// Duration records receiver-side time per command.
	Duration metric.Float64Histogram
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered (safe to call unconditionally).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Commands, err = meter.Int64Counter("rc.commands",
		metric.WithDescription("Remote commands dispatched, partitioned by command and outcome"))
	if err != nil {
		return nil, err
	}

	m.MatchFailures, err = meter.Int64Counter("rc.match_failures",
		metric.WithDescription("Match expressions that selected no windows or tabs"))
	if err != nil {
		return nil, err
	}

	m.Duration, err = meter.Float64Histogram("rc.duration",
		metric.WithDescription("Time spent decoding and applying a remote command"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordCommand records one dispatched command.
func (m *Metrics) RecordCommand(ctx context.Context, command, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("rc.command", command),
		attribute.String("rc.outcome", outcome),
	)
	m.Commands.Add(ctx, 1, attrs)
	m.Duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
}

// RecordMatchFailure records a match expression that selected nothing.
func (m *Metrics) RecordMatchFailure(ctx context.Context, command, kind string) {
	if m == nil {
		return
	}
	m.MatchFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("rc.command", command),
		attribute.String("rc.target_kind", kind),
	))
}
