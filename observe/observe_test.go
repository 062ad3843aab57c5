package observe

import (
	"context"
	"errors"
	"testing"
)

// TestConfigValidate covers the validation rules.
func TestConfigValidate(t *testing.T) {
	valid := Config{
		ServiceName: "typepipe",
		Version:     "1.0.0",
		Tracing:     TracingConfig{Enabled: true, Exporter: "stdout", SamplePct: 1.0},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "prometheus"},
		Logging:     LoggingConfig{Enabled: true, Level: "info"},
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"missing service name", func(c *Config) { c.ServiceName = "" }, ErrMissingServiceName},
		{"unknown tracing exporter", func(c *Config) { c.Tracing.Exporter = "jaeger-thrift" }, ErrInvalidTracingExporter},
		{"sample pct too high", func(c *Config) { c.Tracing.SamplePct = 1.5 }, ErrInvalidSamplePct},
		{"sample pct negative", func(c *Config) { c.Tracing.SamplePct = -0.1 }, ErrInvalidSamplePct},
		{"unknown metrics exporter", func(c *Config) { c.Metrics.Exporter = "statsd" }, ErrInvalidMetricsExporter},
		{"unknown log level", func(c *Config) { c.Logging.Level = "trace" }, ErrInvalidLogLevel},
		{"disabled tracing ignores exporter", func(c *Config) {
			c.Tracing.Enabled = false
			c.Tracing.Exporter = "bogus"
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestNewObserver_Disabled verifies disabled subsystems yield no-op primitives.
func TestNewObserver_Disabled(t *testing.T) {
	ctx := context.Background()
	obs, err := NewObserver(ctx, Config{ServiceName: "typepipe-test"})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}
	if obs.Tracer() == nil || obs.Meter() == nil || obs.Logger() == nil {
		t.Fatal("expected non-nil primitives")
	}
	if err := obs.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() = %v", err)
	}
}

// TestNewObserver_EnabledNoneExporters verifies providers are built and shut down.
func TestNewObserver_EnabledNoneExporters(t *testing.T) {
	ctx := context.Background()
	obs, err := NewObserver(ctx, Config{
		ServiceName: "typepipe-test",
		Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 0.5},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
		Logging:     LoggingConfig{Enabled: true, Level: "error"},
	})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}

	mw, err := MiddlewareFromObserver(obs)
	if err != nil {
		t.Fatalf("MiddlewareFromObserver failed: %v", err)
	}
	wrapped := mw.Wrap(func(context.Context, TypeMeta) (any, error) { return nil, nil })
	if _, err := wrapped(ctx, TypeMeta{Operation: OpGetType}); err != nil {
		t.Errorf("wrapped() = %v", err)
	}

	if err := obs.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() = %v", err)
	}
}

// TestNewObserver_InvalidConfig verifies validation runs first.
func TestNewObserver_InvalidConfig(t *testing.T) {
	_, err := NewObserver(context.Background(), Config{})
	if !errors.Is(err, ErrMissingServiceName) {
		t.Errorf("err = %v, want ErrMissingServiceName", err)
	}
}
