package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/playlog/internal/config"
)

func TestResolveConnectionParams_ConnStringFlagWins(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"postgresql://etl@db.internal:5433/playlog?sslmode=require",
		nil,
		&EnvVars{PGHOST: "ignored", PGDATABASE: "ignored"},
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 5433, cfg.Port)
	assert.Equal(t, "etl", cfg.Username)
	assert.Equal(t, "playlog", cfg.Database)
	assert.Equal(t, "require", cfg.SSLMode)
}

func TestResolveConnectionParams_ConflictingFlagsRejected(t *testing.T) {
	_, err := ResolveConnectionParams(
		"postgresql://localhost/playlog",
		&GranularConnFlags{Host: "otherhost"},
		&EnvVars{},
		nil,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot specify both")
}

func TestResolveConnectionParams_DatabaseFlagOverridesConnString(t *testing.T) {
	// -d only overrides the database name, so it may accompany --connection.
	cfg, err := ResolveConnectionParams(
		"postgresql://localhost/playlog",
		&GranularConnFlags{Database: "other"},
		&EnvVars{},
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, "other", cfg.Database)
}

func TestResolveConnectionParams_GranularFlags(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"",
		&GranularConnFlags{Host: "flaghost", Port: 5433, Username: "flaguser", Database: "flagdb", SSLMode: "disable"},
		&EnvVars{PGHOST: "envhost", PGPORT: "5444", PGUSER: "envuser"},
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, "flaghost", cfg.Host)
	assert.Equal(t, 5433, cfg.Port)
	assert.Equal(t, "flaguser", cfg.Username)
	assert.Equal(t, "flagdb", cfg.Database)
	assert.Equal(t, "disable", cfg.SSLMode)
}

func TestResolveConnectionParams_EnvFallback(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"",
		&GranularConnFlags{},
		&EnvVars{PGHOST: "envhost", PGPORT: "5444", PGUSER: "envuser", PGDATABASE: "envdb", PGSSLMODE: "verify-full"},
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, "envhost", cfg.Host)
	assert.Equal(t, 5444, cfg.Port)
	assert.Equal(t, "envuser", cfg.Username)
	assert.Equal(t, "envdb", cfg.Database)
	assert.Equal(t, "verify-full", cfg.SSLMode)
}

func TestResolveConnectionParams_DatabaseURL(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"",
		&GranularConnFlags{},
		&EnvVars{DATABASE_URL: "postgresql://urluser@urlhost:5455/urldb"},
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, "urlhost", cfg.Host)
	assert.Equal(t, 5455, cfg.Port)
	assert.Equal(t, "urluser", cfg.Username)
	assert.Equal(t, "urldb", cfg.Database)
}

func TestResolveConnectionParams_GranularFlagsBeatDatabaseURL(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"",
		&GranularConnFlags{Host: "flaghost"},
		&EnvVars{DATABASE_URL: "postgresql://urlhost/urldb"},
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, "flaghost", cfg.Host)
}

func TestResolveConnectionParams_ProjectConfigFallback(t *testing.T) {
	projectCfg := &config.ProjectConfig{
		Connection: config.ConnectionConfig{
			Host:     "yamlhost",
			Port:     5466,
			Username: "yamluser",
			Database: "yamldb",
			SSLMode:  "require",
		},
	}

	cfg, err := ResolveConnectionParams("", &GranularConnFlags{}, &EnvVars{}, projectCfg)
	require.NoError(t, err)

	assert.Equal(t, "yamlhost", cfg.Host)
	assert.Equal(t, 5466, cfg.Port)
	assert.Equal(t, "yamluser", cfg.Username)
	assert.Equal(t, "yamldb", cfg.Database)
	assert.Equal(t, "require", cfg.SSLMode)
}

func TestResolveConnectionParams_EnvBeatsProjectConfig(t *testing.T) {
	projectCfg := &config.ProjectConfig{
		Connection: config.ConnectionConfig{Host: "yamlhost"},
	}

	cfg, err := ResolveConnectionParams("", &GranularConnFlags{}, &EnvVars{PGHOST: "envhost"}, projectCfg)
	require.NoError(t, err)
	assert.Equal(t, "envhost", cfg.Host)
}

func TestResolveConnectionParams_Defaults(t *testing.T) {
	cfg, err := ResolveConnectionParams("", &GranularConnFlags{}, &EnvVars{}, nil)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "postgres", cfg.Database)
	assert.Equal(t, "prefer", cfg.SSLMode)
}

func TestResolveConnectionParams_PGPasswordApplied(t *testing.T) {
	cfg, err := ResolveConnectionParams(
		"",
		&GranularConnFlags{Host: "somehost"},
		&EnvVars{PGPASSWORD: "sekrit"},
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, "sekrit", cfg.Password)
}

func TestResolveConnectionParams_InvalidPGPORT(t *testing.T) {
	_, err := ResolveConnectionParams("", &GranularConnFlags{}, &EnvVars{PGPORT: "not-a-port"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PGPORT")
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"5432", 5432, false},
		{"1", 1, false},
		{"65535", 65535, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"65536", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parsePort(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
