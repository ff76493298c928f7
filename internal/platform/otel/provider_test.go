package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/charsheet/internal/platform/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("SHEET_OTEL_ENDPOINT", "")
	t.Setenv("SHEET_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("SHEET_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("SHEET_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_RejectsInvalidSampleRatio(t *testing.T) {
	t.Setenv("SHEET_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("SHEET_OTEL_ENABLED", "true")
	t.Setenv("SHEET_OTEL_SAMPLE_RATIO", "2")

	if _, err := otel.Setup(context.Background(), "test-service"); err == nil {
		t.Fatal("expected sample ratio error")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SHEET_OTEL_ENABLED", "")
	t.Setenv("SHEET_OTEL_SAMPLE_RATIO", "")

	cfg, err := otel.LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SampleRatio != 1 {
		t.Fatalf("sample ratio = %v, want 1", cfg.SampleRatio)
	}
}
