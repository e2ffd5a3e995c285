package rc

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	telem "github.com/timvw/pane-remote/internal/otel"
)

// Dispatcher routes inbound requests to registered commands.
type Dispatcher struct {
	Registry *Registry
	// Tracer and Metrics are optional.
	Tracer  trace.Tracer
	Metrics *telem.Metrics
	Log     zerolog.Logger
}

// Handle decodes req against the targets r exposes and applies it. The
// returned response carries the error, if any; Handle itself never fails.
func (d *Dispatcher) Handle(ctx context.Context, req Request, r Resolver) Response {
	start := time.Now()
	tracer := d.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	ctx, span := tracer.Start(ctx, "rc.dispatch", trace.WithAttributes(
		attribute.String("rc.command", req.Cmd),
		attribute.String("rc.request_id", req.RequestID),
	))
	defer span.End()

	err := d.handle(req, r)
	outcome := outcomeOf(err)
	d.Metrics.RecordCommand(ctx, req.Cmd, outcome, time.Since(start))

	log := d.Log.With().
		Str("command", req.Cmd).
		Str("request_id", req.RequestID).
		Str("outcome", outcome).
		Dur("elapsed", time.Since(start)).
		Logger()

	if err != nil {
		var matchErr *MatchError
		if errors.As(err, &matchErr) {
			d.Metrics.RecordMatchFailure(ctx, req.Cmd, matchErr.Kind)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn().Err(err).Msg("command failed")
		return Response{OK: false, Error: err.Error(), RequestID: req.RequestID}
	}
	log.Debug().Msg("command applied")
	return Response{OK: true, RequestID: req.RequestID}
}

func (d *Dispatcher) handle(req Request, r Resolver) error {
	if err := req.validate(); err != nil {
		return &badRequestError{err}
	}
	cmd, err := d.Registry.Lookup(req.Cmd)
	if err != nil {
		return err
	}

	var w Window
	if req.WindowID != nil {
		w = r.WindowByID(*req.WindowID)
	}
	payload := req.Payload
	if payload == nil {
		payload = NewPayload()
	}
	return cmd.Decode(r, w, payload)
}

type badRequestError struct{ err error }

func (e *badRequestError) Error() string { return "bad request: " + e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

func outcomeOf(err error) string {
	var (
		matchErr   *MatchError
		unknownErr *UnknownCommandError
		badReq     *badRequestError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &matchErr):
		return "match_error"
	case errors.As(err, &unknownErr):
		return "unknown_command"
	case errors.As(err, &badReq):
		return "bad_request"
	default:
		return "error"
	}
}
