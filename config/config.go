package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jonwraymond/typepipe/observe"
	"github.com/jonwraymond/typepipe/resilience"
)

// DefaultFlushDirectory is used when flush_directory is not set.
const DefaultFlushDirectory = "typepipe-generated"

// Config is the complete typepipe configuration.
type Config struct {
	// ParticipantConfigurationID identifies the participant set. Flushed
	// output generated under another ID is rejected on load.
	ParticipantConfigurationID string `toml:"participant_configuration_id"`

	// FlushDirectory receives flushed manifests.
	FlushDirectory string `toml:"flush_directory"`

	Observe observe.Config `toml:"observe"`
	Retry   RetryConfig    `toml:"retry"`
}

// RetryConfig configures retries of transient generation failures.
// MaxAttempts of 1 disables retrying.
type RetryConfig struct {
	MaxAttempts  int      `toml:"max_attempts"`
	InitialDelay Duration `toml:"initial_delay"`
	MaxDelay     Duration `toml:"max_delay"`
	Strategy     string   `toml:"strategy"` // exponential|linear|constant
}

// Resilience converts the settings for resilience.NewRetry.
// An invalid strategy, which Validate rejects, falls back to exponential.
func (r RetryConfig) Resilience() resilience.RetryConfig {
	strategy, _ := resilience.ParseBackoffStrategy(r.Strategy)
	return resilience.RetryConfig{
		MaxAttempts:  r.MaxAttempts,
		InitialDelay: r.InitialDelay.Duration,
		MaxDelay:     r.MaxDelay.Duration,
		Strategy:     strategy,
		Jitter:       true,
	}
}

// Duration is a time.Duration written as a Go duration string ("250ms").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with every optional setting filled in.
func Default() Config {
	return Config{
		FlushDirectory: DefaultFlushDirectory,
		Observe: observe.Config{
			ServiceName: "typepipe",
			Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
		},
		Retry: RetryConfig{
			MaxAttempts:  1,
			InitialDelay: Duration{10 * time.Millisecond},
			MaxDelay:     Duration{time.Second},
			Strategy:     "exponential",
		},
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes, expands and validates a TOML document on top of Default().
func Parse(doc string) (Config, error) {
	cfg := Default()
	meta, err := toml.Decode(doc, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}

	if err := cfg.expand(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) expand() error {
	fields := []*string{
		&c.ParticipantConfigurationID,
		&c.FlushDirectory,
		&c.Observe.ServiceName,
		&c.Observe.Version,
	}
	for _, f := range fields {
		v, err := ExpandEnvStrict(*f)
		if err != nil {
			return err
		}
		*f = v
	}
	return nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ParticipantConfigurationID) == "" {
		return ErrMissingConfigurationID
	}
	if err := c.Observe.Validate(); err != nil {
		return fmt.Errorf("config: observe: %w", err)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("%w: max_attempts must be at least 1, got %d", ErrInvalidRetry, c.Retry.MaxAttempts)
	}
	if c.Retry.InitialDelay.Duration < 0 || c.Retry.MaxDelay.Duration < c.Retry.InitialDelay.Duration {
		return fmt.Errorf("%w: need 0 <= initial_delay <= max_delay, got %s and %s",
			ErrInvalidRetry, c.Retry.InitialDelay, c.Retry.MaxDelay)
	}
	if _, err := resilience.ParseBackoffStrategy(c.Retry.Strategy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRetry, err)
	}
	return nil
}
