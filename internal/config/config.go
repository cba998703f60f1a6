// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when one is present), loads them into structured Go types and
// validates that required values are present, so a misconfigured
// deployment fails at startup instead of on the first query.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values.
//   - Provide defaults for optional blocks (e.g. observability).
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process environment before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read with the LIGHTBNB_ prefix. After the prefix is
	removed the key is lowercased and "__" marks a nesting level:

	  LIGHTBNB_DATABASE__HOST                   -> database.host
	  LIGHTBNB_DATABASE__SSL_MODE               -> database.ssl_mode
	  LIGHTBNB_OBSERVABILITY__LOGGING__LEVEL    -> observability.logging.level

	Single underscores stay part of the key, so snake_case field names
	survive the mapping.
*/

const (
	// EnvPrefix is the prefix every configuration variable carries.
	EnvPrefix = "LIGHTBNB_"

	nestingSeparator = "__"

	// DefaultServiceName is used when observability.service_name is unset.
	DefaultServiceName = "lightbnb"
)

// Config is the root configuration object.
//
// Observability is a pointer because the whole block is optional; the
// defaults from DefaultObservabilityConfig are used for anything unset.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool settings.
//
// Pool settings are optional; zero means "use the pgxpool default".
// ConnMaxLifetime and ConnMaxIdleTime are in seconds.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required,min=1,max=65535"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required,oneof=disable allow prefer require verify-ca verify-full"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"min=0"`
}

// DSN returns the postgres URL for this configuration.
//
// The password is URL-escaped ("pa:ss@word" would otherwise break the URL)
// and host/port are joined so IPv6 hosts get brackets.
func (c DatabaseConfig) DSN() string {
	hostPort := net.JoinHostPort(c.Host, strconv.Itoa(c.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		hostPort,
		c.Name,
		c.SSLMode,
	)
}

// envKey turns a raw environment variable name into a koanf key path.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, nestingSeparator, ".")
}

// LoadConfig loads configuration from LIGHTBNB_* environment variables,
// validates it and fills in observability defaults.
//
// Behavior summary:
//   - Loads env vars with prefix LIGHTBNB_ ("__" separates nesting levels)
//   - Unmarshals on top of the defaults, so unset optional keys keep them
//   - Validates struct tags, then the observability rules
//   - Forces Observability.Environment to Primary.Env
//
// Unlike a process entry point this never exits; every problem is
// returned to the caller.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env variables: %w", err)
	}

	mainConfig := &Config{
		Observability: DefaultObservabilityConfig(),
	}

	// Unmarshal from the root; keys that are absent leave the
	// pre-populated defaults untouched.
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}
	if mainConfig.Observability.ServiceName == "" {
		mainConfig.Observability.ServiceName = DefaultServiceName
	}
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// IsLocal reports whether the process runs on a developer machine.
// SQL statement logging is only enabled there.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}
