package otel

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func TestParseHeaders(t *testing.T) {
	tests := []struct {
		raw  string
		want map[string]string
	}{
		{raw: "", want: map[string]string{}},
		{raw: "Authorization=Basic abc123", want: map[string]string{"Authorization": "Basic abc123"}},
		{raw: " a = 1 , b=2=3 ", want: map[string]string{"a": "1", "b": "2=3"}},
		{raw: "=nokey,novalue,c=", want: map[string]string{"c": ""}},
	}
	for _, tt := range tests {
		got := parseHeaders(tt.raw)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseHeaders(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseEndpoint(t *testing.T) {
	got, err := parseEndpoint("http://localhost:4318/api/otel/")
	if err != nil {
		t.Fatalf("parseEndpoint error: %v", err)
	}
	want := endpoint{host: "localhost:4318", basePath: "/api/otel", insecure: true}
	if got != want {
		t.Errorf("parseEndpoint() = %+v, want %+v", got, want)
	}

	got, err = parseEndpoint("https://collector.example.com")
	if err != nil {
		t.Fatalf("parseEndpoint error: %v", err)
	}
	if got.insecure || got.basePath != "" {
		t.Errorf("parseEndpoint(https) = %+v", got)
	}

	if _, err := parseEndpoint("not a url"); err == nil {
		t.Errorf("expected error for endpoint without host")
	}
}

func TestInit_NoEndpointIsNoop(t *testing.T) {
	ctx := context.Background()
	tel, err := Init(ctx, Config{})
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	defer tel.Shutdown(ctx)

	if tel.Tracer == nil || tel.Metrics == nil {
		t.Fatalf("expected tracer and metrics, got %+v", tel)
	}
	tel.Metrics.RecordCommand(ctx, "create_marker", "ok", time.Millisecond)
	tel.Metrics.RecordMatchFailure(ctx, "set_tab_title", "tabs")
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordCommand(context.Background(), "create_marker", "ok", time.Millisecond)
	m.RecordMatchFailure(context.Background(), "create_marker", "windows")

	var tel *Telemetry
	tel.Shutdown(context.Background())
}
