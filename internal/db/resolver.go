package db

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vvka-141/tripload/internal/config"
	"github.com/vvka-141/tripload/pkg/tripload"
)

// GranularConnFlags represents connection parameters from CLI flags.
// These follow PostgreSQL standard flag conventions (-h, -p, -U, -d).
//
// Note: Password is NOT included as a CLI flag for security reasons.
// Use one of these methods instead:
//  1. $PG_PASS environment variable
//  2. .pgpass file (PostgreSQL standard)
//  3. Connection string with embedded password
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string
}

// IsEmpty returns true if no connection-related granular flags were provided by the user.
// Note: Database flag is excluded from this check because it can be used to override
// the database specified in a connection string.
func (g *GranularConnFlags) IsEmpty() bool {
	return g.Host == "" && g.Port == 0 && g.Username == "" && g.SSLMode == ""
}

// EnvVars represents the environment variables the loader understands.
// The PG_* names match the docker-compose environment the datasets are
// normally loaded into; DATABASE_URL follows the Heroku/Rails
// convention for a full connection string.
type EnvVars struct {
	PG_HOST      string // PostgreSQL server host
	PG_PORT      string // PostgreSQL server port
	PG_USER      string // PostgreSQL username
	PG_PASS      string // PostgreSQL password (discouraged, use .pgpass instead)
	PG_DB        string // Destination database name
	TARGET_TABLE string // Destination table name override
	DATABASE_URL string // Full connection string
}

// LoadFromEnvironment loads the loader's environment variables.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		PG_HOST:      os.Getenv("PG_HOST"),
		PG_PORT:      os.Getenv("PG_PORT"),
		PG_USER:      os.Getenv("PG_USER"),
		PG_PASS:      os.Getenv("PG_PASS"),
		PG_DB:        os.Getenv("PG_DB"),
		TARGET_TABLE: os.Getenv("TARGET_TABLE"),
		DATABASE_URL: os.Getenv("DATABASE_URL"),
	}
}

// ResolveConnectionParams resolves connection parameters using
// PostgreSQL-standard precedence:
//
//  1. Connection string flag (--connection) - if provided, parse and use directly
//  2. DATABASE_URL environment variable - if no granular params
//  3. Granular flags (-h, -p, -U, -d) merged with environment variables,
//     project config, and defaults, per parameter
//
// Conflict Detection:
// Returns an error if BOTH --connection AND granular flags are provided.
// This prevents ambiguity and ensures clear user intent.
func ResolveConnectionParams(
	connStringFlag string,
	granularFlags *GranularConnFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*tripload.ConnectionConfig, error) {
	if granularFlags == nil {
		granularFlags = &GranularConnFlags{}
	}
	if envVars == nil {
		envVars = &EnvVars{}
	}

	// Check for conflicts: connection string XOR granular flags
	if connStringFlag != "" && !granularFlags.IsEmpty() {
		return nil, fmt.Errorf(
			"cannot specify both --connection and granular flags (-h, -p, -U)\n" +
				"Choose one approach:\n" +
				"  1. Connection string: --connection \"postgresql://root@pgdatabase:5432/ny_taxi\"\n" +
				"  2. Granular flags: -h pgdatabase -p 5432 -U root -d ny_taxi\n" +
				"  3. Environment variables: export PG_HOST=pgdatabase PG_PORT=5432 PG_USER=root",
		)
	}

	// Path 1: Connection string provided via --connection flag
	if connStringFlag != "" {
		return resolveFromConnectionString(connStringFlag)
	}

	// Path 2: DATABASE_URL environment variable (if no granular flags)
	if granularFlags.IsEmpty() && granularFlags.Database == "" && envVars.DATABASE_URL != "" {
		return resolveFromConnectionString(envVars.DATABASE_URL)
	}

	// Path 3: Granular flags + environment variables with precedence
	return resolveFromGranularParams(granularFlags, envVars, projectConfig)
}

// resolveFromConnectionString parses a connection string into a config.
func resolveFromConnectionString(connStr string) (*tripload.ConnectionConfig, error) {
	cfg, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w", err)
	}

	if cfg.SSLMode == "" {
		cfg.SSLMode = "prefer"
	}

	return cfg, nil
}

// resolveFromGranularParams builds a ConnectionConfig from granular
// flags, environment variables, project config, and defaults.
//
// Precedence for each parameter (following PostgreSQL standards):
//  1. CLI flag (highest priority)
//  2. Environment variable
//  3. tripload.yaml project config
//  4. Default value (lowest priority)
func resolveFromGranularParams(
	flags *GranularConnFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*tripload.ConnectionConfig, error) {
	cfg := &tripload.ConnectionConfig{
		AdditionalParams: make(map[string]string),
	}

	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	// Host: flag > PG_HOST > tripload.yaml > default
	cfg.Host = flags.Host
	if cfg.Host == "" {
		cfg.Host = envVars.PG_HOST
	}
	if cfg.Host == "" {
		cfg.Host = pc.Host
	}
	if cfg.Host == "" {
		cfg.Host = tripload.DefaultHost
	}

	// Port: flag > PG_PORT > tripload.yaml > default
	if flags.Port != 0 {
		cfg.Port = flags.Port
	} else if envVars.PG_PORT != "" {
		port, err := strconv.Atoi(envVars.PG_PORT)
		if err != nil {
			return nil, fmt.Errorf("invalid $PG_PORT value '%s': must be an integer", envVars.PG_PORT)
		}
		cfg.Port = port
	} else if pc.Port != 0 {
		cfg.Port = pc.Port
	} else {
		cfg.Port = tripload.DefaultPort
	}

	// Username: flag > PG_USER > tripload.yaml > default
	cfg.Username = flags.Username
	if cfg.Username == "" {
		cfg.Username = envVars.PG_USER
	}
	if cfg.Username == "" {
		cfg.Username = pc.Username
	}
	if cfg.Username == "" {
		cfg.Username = tripload.DefaultUsername
	}

	// Database: flag > PG_DB > tripload.yaml > default
	cfg.Database = flags.Database
	if cfg.Database == "" {
		cfg.Database = envVars.PG_DB
	}
	if cfg.Database == "" {
		cfg.Database = pc.Database
	}
	if cfg.Database == "" {
		cfg.Database = tripload.DefaultDatabase
	}

	// Password: PG_PASS > .pgpass lookup > default
	cfg.Password = envVars.PG_PASS
	if cfg.Password == "" {
		if pw, ok := LookupPgpass(cfg.Host, cfg.Port, cfg.Database, cfg.Username); ok {
			cfg.Password = pw
		}
	}
	if cfg.Password == "" {
		cfg.Password = tripload.DefaultPassword
	}

	// SSLMode: flag > tripload.yaml > default
	cfg.SSLMode = flags.SSLMode
	if cfg.SSLMode == "" {
		cfg.SSLMode = pc.SSLMode
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "prefer"
	}

	return cfg, nil
}

// ResolveTable resolves the destination table name.
//
// Precedence: --table flag > TARGET_TABLE > tripload.yaml tables entry >
// the command's built-in default.
func ResolveTable(flagTable string, envVars *EnvVars, projectConfig *config.ProjectConfig, key, fallback string) string {
	if flagTable != "" {
		return flagTable
	}
	if envVars != nil && envVars.TARGET_TABLE != "" {
		return envVars.TARGET_TABLE
	}
	if projectConfig != nil {
		if table, ok := projectConfig.Tables[key]; ok && table != "" {
			return table
		}
	}
	return fallback
}
