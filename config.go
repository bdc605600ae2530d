package jobtrace

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/jobtrace/pkg/backtrace"
	"github.com/dmitrymomot/jobtrace/pkg/logger"
)

// ErrInvalidConfig is returned when environment configuration cannot be
// parsed into subscriber options.
var ErrInvalidConfig = errors.New("jobtrace: invalid config")

// Config is the deployment-level configuration surface, loaded from
// environment variables. Everything here is also reachable through options;
// Config exists so operators can tune the subscriber without a code change.
type Config struct {
	// EventLevels overrides minimum severity thresholds per event, e.g.
	// JOBTRACE_EVENT_LEVELS="perform_start:error,enqueue:info".
	EventLevels map[string]string `env:"JOBTRACE_EVENT_LEVELS" envSeparator:"," envKeyValSeparator:":"`

	// Silencers appends frame-cleaning patterns to the default policy,
	// e.g. JOBTRACE_SILENCERS="internal/queue,myapp/platform".
	Silencers []string `env:"JOBTRACE_SILENCERS" envSeparator:","`

	// Sentry configures the optional Sentry destination of the default sink.
	Sentry logger.SentryConfig

	// VerboseAttribution chains enqueue call sites after emitted lines.
	VerboseAttribution bool `env:"JOBTRACE_VERBOSE_ATTRIBUTION" envDefault:"false"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("jobtrace: parse env: %w", err)
	}
	return cfg, nil
}

// Options converts the config into subscriber options, including a default
// sink built from the Sentry settings (stdout JSON, plus Sentry when a DSN is
// set).
func (c Config) Options() ([]Option, error) {
	opts := []Option{
		WithLogger(logger.NewWithSentry(c.Sentry)),
	}

	if c.VerboseAttribution {
		opts = append(opts, WithVerboseAttribution())
	}

	for event, name := range c.EventLevels {
		level, err := parseLevel(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithEventLevel(event, level))
	}

	if len(c.Silencers) > 0 {
		rules := make([]backtrace.Rule, 0, len(c.Silencers))
		for _, pattern := range c.Silencers {
			rule, err := backtrace.Compile(pattern)
			if err != nil {
				return nil, errors.Join(ErrInvalidConfig, err)
			}
			rules = append(rules, rule)
		}
		opts = append(opts, WithPolicy(DefaultPolicy().Extend(rules...)))
	}

	return opts, nil
}

// FromEnv builds a subscriber configured from the environment. Explicit
// options are applied after the environment ones and win on conflict.
func FromEnv(opts ...Option) (*Subscriber, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	envOpts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return New(append(envOpts, opts...)...), nil
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(name)))); err != nil {
		return 0, errors.Join(ErrInvalidConfig, fmt.Errorf("unknown level %q", name))
	}
	return level, nil
}
