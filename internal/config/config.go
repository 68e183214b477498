// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// one is present), loads them into structured Go types, and validates that
// required values are present so they can be reused across the application
// runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config.
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide defaults for everything that has a sensible one.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before any of the providers below read it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read with the prefix FRASES_. The prefix is removed, the key
	is lowercased, and the FIRST underscore becomes the koanf "." delimiter:

		FRASES_SERVER_PORT          -> server.port
		FRASES_DATABASE_MAX_OPEN_CONNS -> database.max_open_conns

	The connection variables used by earlier deployments (MYSQL_HOST,
	MYSQL_PORT, MYSQL_USER, MYSQL_PASSWORD, MYSQL_DATABASE) are loaded first,
	so a FRASES_DATABASE_* value always wins over its MYSQL_* counterpart.
*/

const (
	// EnvPrefix is the prefix every application variable carries.
	EnvPrefix = "FRASES_"

	legacyPrefix = "MYSQL_"
)

// Driver names accepted in database.driver.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the root configuration object for the application.
type Config struct {
	Primary  Primary        `koanf:"primary" validate:"required"`
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Logging  LoggingConfig  `koanf:"logging" validate:"required"`
	Health   HealthConfig   `koanf:"health"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`

	// BodyLimit uses Echo's size notation, e.g. "25M".
	BodyLimit string `koanf:"body_limit" validate:"required"`
}

// DatabaseConfig contains connection parameters and pool tuning.
//
// For the sqlite driver Name is the database file path and the network
// fields are ignored.
type DatabaseConfig struct {
	Driver          string `koanf:"driver" validate:"required,oneof=mysql postgres sqlite"`
	Host            string `koanf:"host" validate:"required_unless=Driver sqlite"`
	Port            int    `koanf:"port" validate:"min=0,max=65535"`
	User            string `koanf:"user" validate:"required_unless=Driver sqlite"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"min=0"`
}

// PortOrDefault returns Port, or the driver's well-known port when Port is unset.
func (d DatabaseConfig) PortOrDefault() int {
	if d.Port > 0 {
		return d.Port
	}
	if d.Driver == DriverPostgres {
		return 5432
	}
	return 3306
}

// Default returns the configuration used for every key the environment
// does not set.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "4000",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
			BodyLimit:          "25M",
		},
		Database: DatabaseConfig{
			Driver:          DriverMySQL,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 60,
		},
		Logging: DefaultLoggingConfig(),
		Health:  DefaultHealthConfig(),
	}
}

// Load reads configuration from the environment, applies defaults,
// and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(legacyPrefix, ".", legacyKey), nil); err != nil {
		return nil, fmt.Errorf("load legacy env variables: %w", err)
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env variables: %w", err)
	}

	// Unmarshal only overwrites keys that are present, so starting from
	// Default keeps every unset value.
	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate runs the struct tag rules and then the logging rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("invalid logging config: %w", err)
	}
	return nil
}

// IsLocal reports whether the application runs on a developer machine.
// SQL tracing is only enabled there.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}

// legacyKey maps the MYSQL_* variables of earlier deployments onto database keys.
// Returning "" makes the env provider skip the variable.
func legacyKey(s string) string {
	switch strings.TrimPrefix(s, legacyPrefix) {
	case "HOST":
		return "database.host"
	case "PORT":
		return "database.port"
	case "USER":
		return "database.user"
	case "PASSWORD":
		return "database.password"
	case "DATABASE":
		return "database.name"
	}
	return ""
}
