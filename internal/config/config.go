package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
)

type Config struct {
	Port             int           `mapstructure:"PORT"`
	DatabaseType     string        `mapstructure:"DATABASE_TYPE"`
	DatabaseURL      string        `mapstructure:"DATABASE_URL"`
	PostgresHost     string        `mapstructure:"POSTGRES_HOST"`
	PostgresPort     string        `mapstructure:"POSTGRES_PORT"`
	PostgresUser     string        `mapstructure:"POSTGRES_USER"`
	PostgresPassword string        `mapstructure:"POSTGRES_PASSWORD"`
	PostgresDB       string        `mapstructure:"POSTGRES_DB"`
	RedisURL         string        `mapstructure:"REDIS_URL"`
	TallyCacheTTL    time.Duration `mapstructure:"TALLY_CACHE_TTL"`
	JWTSecret        string        `mapstructure:"JWT_SECRET"`
	CloseOnSchedule  bool          `mapstructure:"CLOSE_ON_SCHEDULE"`
	CloseInterval    time.Duration `mapstructure:"CLOSE_INTERVAL"`
	LogLevel         string        `mapstructure:"LOG_LEVEL"`
}

var envKeys = []string{
	"PORT", "DATABASE_TYPE", "DATABASE_URL",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"REDIS_URL", "TALLY_CACHE_TTL", "JWT_SECRET", "CLOSE_ON_SCHEDULE", "CLOSE_INTERVAL", "LOG_LEVEL",
}

var defaults = map[string]string{
	"PORT":              "8080",
	"DATABASE_TYPE":     "memory",
	"TALLY_CACHE_TTL":   "30s",
	"CLOSE_ON_SCHEDULE": "false",
	"CLOSE_INTERVAL":    "1m",
	"LOG_LEVEL":         "info",
}

// LoadDotEnv reads .env style files into the process environment. Missing
// files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// Load resolves the configuration from defaults, then the environment, then
// command line flags. extra registers binary specific flags on the same set.
func Load(name string, args []string, environ []string, extra ...func(*flag.FlagSet)) (Config, error) {
	values := make(map[string]any, len(defaults))
	for key, value := range defaults {
		values[key] = value
	}

	known := configKeys()
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if ok && known[key] && value != "" {
			values[key] = value
		}
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.String("p", "", "Server port")
	fs.String("t", "", "Database type (memory, sqlite or postgres)")
	fs.String("d", "", "Database URL or SQLite file")
	fs.String("redis", "", "Redis URL for the tally cache")
	fs.String("log-level", "", "Log level (debug, info, warn, error)")
	fs.Bool("close-on-schedule", false, "Close active elections once their end time passes")
	for _, register := range extra {
		register(fs)
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	flagKeys := map[string]string{
		"p":                 "PORT",
		"t":                 "DATABASE_TYPE",
		"d":                 "DATABASE_URL",
		"redis":             "REDIS_URL",
		"log-level":         "LOG_LEVEL",
		"close-on-schedule": "CLOSE_ON_SCHEDULE",
	}
	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			values[key] = f.Value.String()
		}
	})

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(values); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.DatabaseType = strings.ToLower(strings.TrimSpace(cfg.DatabaseType))
	if cfg.DatabaseURL == "" && cfg.DatabaseType == "postgres" && cfg.PostgresHost != "" {
		cfg.DatabaseURL = cfg.postgresConnString()
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.DatabaseType {
	case "memory", "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("postgres requires DATABASE_URL or POSTGRES_* variables")
		}
	default:
		return fmt.Errorf("unsupported database type %q", c.DatabaseType)
	}
	if c.TallyCacheTTL <= 0 {
		return errors.New("TALLY_CACHE_TTL must be positive")
	}
	if c.CloseInterval <= 0 {
		return errors.New("CLOSE_INTERVAL must be positive")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

func (c Config) postgresConnString() string {
	port := c.PostgresPort
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, port, c.PostgresDB)
}

func configKeys() map[string]bool {
	keys := make(map[string]bool, len(envKeys))
	for _, key := range envKeys {
		keys[key] = true
	}
	return keys
}
