package config

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("test", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "memory", cfg.DatabaseType)
	assert.Equal(t, 30*time.Second, cfg.TallyCacheTTL)
	assert.Equal(t, time.Minute, cfg.CloseInterval)
	assert.False(t, cfg.CloseOnSchedule)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadEnvironmentAndFlags(t *testing.T) {
	environ := []string{
		"PORT=9000",
		"DATABASE_TYPE=SQLite",
		"DATABASE_URL=/tmp/env.db",
		"TALLY_CACHE_TTL=2m",
		"CLOSE_ON_SCHEDULE=true",
		"JWT_SECRET=secret",
		"LOG_LEVEL=debug",
		"UNRELATED=ignored",
	}

	cfg, err := Load("test", []string{"-p", "9100", "-d", "/tmp/flag.db"}, environ)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "sqlite", cfg.DatabaseType)
	assert.Equal(t, "/tmp/flag.db", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Minute, cfg.TallyCacheTTL)
	assert.True(t, cfg.CloseOnSchedule)
	assert.Equal(t, "secret", cfg.JWTSecret)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadBuildsPostgresURL(t *testing.T) {
	environ := []string{
		"DATABASE_TYPE=postgres",
		"POSTGRES_HOST=db",
		"POSTGRES_USER=school",
		"POSTGRES_PASSWORD=pw",
		"POSTGRES_DB=votes",
	}

	cfg, err := Load("test", nil, environ)
	require.NoError(t, err)
	assert.Equal(t, "postgres://school:pw@db:5432/votes?sslmode=disable", cfg.DatabaseURL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		environ []string
	}{
		{name: "port out of range", environ: []string{"PORT=70000"}},
		{name: "unknown database", environ: []string{"DATABASE_TYPE=oracle"}},
		{name: "postgres without url", environ: []string{"DATABASE_TYPE=postgres"}},
		{name: "bad duration", environ: []string{"TALLY_CACHE_TTL=soon"}},
		{name: "zero ttl", environ: []string{"TALLY_CACHE_TTL=0s"}},
		{name: "bad log level", environ: []string{"LOG_LEVEL=loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("test", nil, tt.environ)
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SCHOOLVOTE_TEST_KEY=from-file\n"), 0o600))
	t.Setenv("SCHOOLVOTE_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("SCHOOLVOTE_TEST_KEY"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("SCHOOLVOTE_TEST_KEY"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestLoadExtraFlags(t *testing.T) {
	var election string
	var eligible int64

	cfg, err := Load("test", []string{"-election", "abc", "-eligible", "40", "-t", "sqlite"}, nil, func(fs *flag.FlagSet) {
		fs.StringVar(&election, "election", "", "Election ID")
		fs.Int64Var(&eligible, "eligible", 0, "Eligible voters")
	})
	require.NoError(t, err)

	assert.Equal(t, "abc", election)
	assert.Equal(t, int64(40), eligible)
	assert.Equal(t, "sqlite", cfg.DatabaseType)
}
