package db

import (
	"fmt"
	"os"

	"github.com/vvka-141/playlog/internal/config"
	"github.com/vvka-141/playlog/pkg/playlog"
)

// GranularConnFlags represents connection parameters from CLI flags.
// These follow PostgreSQL standard flag conventions (-H, -p, -U, -d).
//
// Note: Password is NOT included as a CLI flag for security reasons.
// Use one of these methods instead:
//  1. $PGPASSWORD environment variable
//  2. .pgpass file (PostgreSQL standard)
//  3. Connection string with embedded password
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string
}

// IsEmpty returns true if no connection-related granular flags were provided.
// The database flag is excluded because it can override the database in a
// connection string.
func (g *GranularConnFlags) IsEmpty() bool {
	return g.Host == "" && g.Port == 0 && g.Username == "" && g.SSLMode == ""
}

// EnvVars represents PostgreSQL standard environment variables.
// See: https://www.postgresql.org/docs/current/libpq-envars.html
type EnvVars struct {
	PGHOST       string
	PGPORT       string
	PGUSER       string
	PGPASSWORD   string // discouraged, use .pgpass instead
	PGDATABASE   string
	PGSSLMODE    string
	DATABASE_URL string // full connection string (Heroku/Rails convention)
}

// LoadFromEnvironment loads PostgreSQL environment variables.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		PGHOST:       os.Getenv("PGHOST"),
		PGPORT:       os.Getenv("PGPORT"),
		PGUSER:       os.Getenv("PGUSER"),
		PGPASSWORD:   os.Getenv("PGPASSWORD"),
		PGDATABASE:   os.Getenv("PGDATABASE"),
		PGSSLMODE:    os.Getenv("PGSSLMODE"),
		DATABASE_URL: os.Getenv("DATABASE_URL"),
	}
}

// ResolveConnectionParams resolves connection parameters using
// PostgreSQL-standard precedence:
//
//  1. Connection string flag (--connection) - if provided, parse and use directly
//  2. Granular flags (-H, -p, -U, -d) - if any provided, build config from flags
//  3. Environment variables (PGHOST, PGPORT, ...) - fallback if no flags
//  4. DATABASE_URL environment variable - fallback if no granular params
//  5. playlog.yaml connection section
//  6. Defaults (localhost:5432, prefer SSL)
//
// Returns an error if BOTH the connection string flag AND granular flags
// are provided, to keep user intent unambiguous.
func ResolveConnectionParams(
	connStringFlag string,
	granularFlags *GranularConnFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*playlog.ConnectionConfig, error) {
	if granularFlags == nil {
		granularFlags = &GranularConnFlags{}
	}
	if envVars == nil {
		envVars = &EnvVars{}
	}

	if connStringFlag != "" && !granularFlags.IsEmpty() {
		return nil, fmt.Errorf(
			"cannot specify both --connection and granular flags (-H, -p, -U)\n" +
				"Choose one approach:\n" +
				"  1. Connection string: --connection \"postgresql://user@localhost:5432/playlog\"\n" +
				"  2. Granular flags: -H localhost -p 5432 -U etl -d playlog\n" +
				"  3. Environment variables: export PGHOST=localhost PGPORT=5432 PGUSER=etl",
		)
	}

	if connStringFlag != "" {
		return resolveFromConnectionString(connStringFlag, granularFlags.Database, envVars)
	}
	if granularFlags.IsEmpty() && envVars.DATABASE_URL != "" {
		return resolveFromConnectionString(envVars.DATABASE_URL, granularFlags.Database, envVars)
	}
	return resolveFromGranularParams(granularFlags, envVars, projectConfig)
}

func resolveFromConnectionString(connStr, databaseOverride string, envVars *EnvVars) (*playlog.ConnectionConfig, error) {
	cfg, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w", err)
	}

	if databaseOverride != "" {
		cfg.Database = databaseOverride
	}

	// Connection strings may omit the password; fall back to the
	// environment and .pgpass.
	if cfg.Password == "" {
		cfg.Password = resolvePassword(cfg, envVars)
	}

	return cfg, nil
}

func resolveFromGranularParams(
	flags *GranularConnFlags,
	envVars *EnvVars,
	projectCfg *config.ProjectConfig,
) (*playlog.ConnectionConfig, error) {
	cfg := defaultConnectionConfig()

	var yamlConn config.ConnectionConfig
	if projectCfg != nil {
		yamlConn = projectCfg.Connection
	}

	cfg.Host = firstNonEmpty(flags.Host, envVars.PGHOST, yamlConn.Host, cfg.Host)

	switch {
	case flags.Port != 0:
		cfg.Port = flags.Port
	case envVars.PGPORT != "":
		port, err := parsePort(envVars.PGPORT)
		if err != nil {
			return nil, fmt.Errorf("invalid PGPORT: %w", err)
		}
		cfg.Port = port
	case yamlConn.Port != 0:
		cfg.Port = yamlConn.Port
	}

	cfg.Username = firstNonEmpty(flags.Username, envVars.PGUSER, yamlConn.Username, currentOSUser())
	cfg.Database = firstNonEmpty(flags.Database, envVars.PGDATABASE, yamlConn.Database, cfg.Database)
	cfg.SSLMode = firstNonEmpty(flags.SSLMode, envVars.PGSSLMODE, yamlConn.SSLMode, cfg.SSLMode)
	cfg.Password = resolvePassword(cfg, envVars)

	return cfg, nil
}

// resolvePassword follows libpq behavior: $PGPASSWORD wins, then .pgpass.
// An empty result is fine; the server may not require a password.
func resolvePassword(cfg *playlog.ConnectionConfig, envVars *EnvVars) string {
	if envVars.PGPASSWORD != "" {
		return envVars.PGPASSWORD
	}
	if pw, ok := LookupPgpass(cfg.Host, cfg.Port, cfg.Database, cfg.Username); ok {
		return pw
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parsePort(s string) (int, error) {
	var port int
	if _, err := fmt.Sscanf(s, "%d", &port); err != nil {
		return 0, err
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range", port)
	}
	return port, nil
}

func currentOSUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return os.Getenv("USERNAME")
}
