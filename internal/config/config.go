// Package config loads netxplore settings from defaults, an optional YAML
// file, NETXPLORE_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/netxplore/metrics"
)

// ErrInvalidConfig wraps validation failures of the merged configuration.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// EnvPrefix starts every environment override, e.g. NETXPLORE_SERVER_ADDR.
const EnvPrefix = "NETXPLORE_"

// DefaultFile is read from the working directory when no file is named.
const DefaultFile = "netxplore.yaml"

// Config is the merged application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Store     StoreConfig     `koanf:"store"`
	Log       LogConfig       `koanf:"log"`
	Limits    LimitsConfig    `koanf:"limits"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Anonymize AnonymizeConfig `koanf:"anonymize"`

	// File is the configuration file that was read, if any.
	File string `koanf:"-"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr           string        `koanf:"addr" validate:"required"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gt=0"`
	CORSOrigins    []string      `koanf:"cors_origins"`
	MaxBodyBytes   int64         `koanf:"max_body_bytes" validate:"gt=0"`
}

// StoreConfig locates the SQLite database.
type StoreConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// LogConfig selects logger verbosity and encoding.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// LimitsConfig bounds graphs handed to the cubic-time metrics; 0 disables.
type LimitsConfig struct {
	MaxNodes int `koanf:"max_nodes" validate:"gte=0"`
	MaxLinks int `koanf:"max_links" validate:"gte=0"`
}

// MetricsConfig tunes the power iterations.
type MetricsConfig struct {
	Damping       float64 `koanf:"damping" validate:"gt=0,lt=1"`
	Tolerance     float64 `koanf:"tolerance" validate:"gt=0"`
	MaxIterations int     `koanf:"max_iterations" validate:"gte=1"`
}

// AnonymizeConfig holds the key for keyed aliases. Empty means a fresh
// random key per request.
type AnonymizeConfig struct {
	Key string `koanf:"key"`
}

func defaults() map[string]any {
	return map[string]any{
		"server.addr":            ":8080",
		"server.request_timeout": 30 * time.Second,
		"server.cors_origins":    []string{"*"},
		"server.max_body_bytes":  int64(32 << 20),
		"store.path":             "netxplore.db",
		"log.level":              "info",
		"log.format":             "json",
		"limits.max_nodes":       2000,
		"limits.max_links":       200000,
		"metrics.damping":        metrics.DefaultDamping,
		"metrics.tolerance":      metrics.DefaultTolerance,
		"metrics.max_iterations": metrics.DefaultMaxIterations,
		"anonymize.key":          "",
	}
}

// flagKeys maps command-line flag names onto configuration keys.
var flagKeys = map[string]string{
	"addr":       "server.addr",
	"db":         "store.path",
	"log-level":  "log.level",
	"log-format": "log.format",
	"max-nodes":  "limits.max_nodes",
	"max-links":  "limits.max_links",
}

// Load merges defaults, the YAML file at path (or DefaultFile when path is
// empty and that file exists), the environment and the changed flags of
// flags, then validates the result. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: defaults: %w", err)
	}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	// NETXPLORE_LIMITS_MAX_NODES -> limits.max_nodes
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("config: flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.File = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// MetricOptions converts the metrics section into metrics.Compute options.
func (c *Config) MetricOptions() []metrics.Option {
	return []metrics.Option{
		metrics.WithDamping(c.Metrics.Damping),
		metrics.WithTolerance(c.Metrics.Tolerance),
		metrics.WithMaxIterations(c.Metrics.MaxIterations),
	}
}
