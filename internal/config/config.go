package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source drivers.
const (
	DriverFile     = "file"
	DriverHTTP     = "http"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Redis value formats.
const (
	RedisFormatString = "string"
	RedisFormatJSON   = "json"
)

// Config holds the dinedash configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Source    SourceConfig    `yaml:"source"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
	File  string `yaml:"file"`  // log file for the terminal client (empty: discard)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeoutSec  int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec"`
	ShutdownSec     int      `yaml:"shutdown_timeout_sec"`
	CORSOrigins     []string `yaml:"cors_origins"`
}

// SourceConfig selects where the restaurant records are loaded from.
type SourceConfig struct {
	Driver         string         `yaml:"driver"` // file, http, redis, postgres (default: file)
	Path           string         `yaml:"path"`
	URL            string         `yaml:"url"`
	LoadTimeoutSec int            `yaml:"load_timeout_sec"`
	Redis          RedisConfig    `yaml:"redis"`
	Postgres       PostgresConfig `yaml:"postgres"`
}

// RedisConfig holds the Redis source settings.
type RedisConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	Key              string   `yaml:"key"`
	Format           string   `yaml:"format"`    // string (plain GET) or json (RedisJSON), default: string
	SeedFrom         string   `yaml:"seed_from"` // file seeded into Key before loading
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// PostgresConfig holds the Postgres source settings.
type PostgresConfig struct {
	DSN          string `yaml:"dsn"`
	Table        string `yaml:"table"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// DashboardConfig holds the interactive dashboard timings and limits.
type DashboardConfig struct {
	SearchDebounceMs int `yaml:"search_debounce_ms"`
	SweepIntervalMs  int `yaml:"sweep_interval_ms"`
	TopLimit         int `yaml:"top_limit"`
	SessionTTLSec    int `yaml:"session_ttl_sec"` // 0 = sessions never expire
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes a YAML document, applies defaults and validates it.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Source.Driver == "" {
		c.Source.Driver = DriverFile
	}
	if c.Source.Path == "" {
		c.Source.Path = "data/restaurants.json"
	}
	if c.Source.LoadTimeoutSec <= 0 {
		c.Source.LoadTimeoutSec = 10
	}
	if c.Source.Redis.Key == "" {
		c.Source.Redis.Key = "dinedash:restaurants"
	}
	if c.Source.Redis.Format == "" {
		c.Source.Redis.Format = RedisFormatString
	}
	if c.Source.Redis.ReadinessTimeout <= 0 {
		c.Source.Redis.ReadinessTimeout = 10
	}
	if c.Source.Postgres.Table == "" {
		c.Source.Postgres.Table = "restaurants"
	}
	if c.Dashboard.SearchDebounceMs <= 0 {
		c.Dashboard.SearchDebounceMs = 300
	}
	if c.Dashboard.SweepIntervalMs <= 0 {
		c.Dashboard.SweepIntervalMs = 5000
	}
	if c.Dashboard.TopLimit <= 0 {
		c.Dashboard.TopLimit = 6
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Source.Driver {
	case DriverFile:
		// path always has a default
	case DriverHTTP:
		if c.Source.URL == "" {
			return fmt.Errorf("source.url is required for driver %q", DriverHTTP)
		}
	case DriverRedis:
		if len(c.Source.Redis.Addrs) == 0 {
			return fmt.Errorf("source.redis.addrs is required for driver %q", DriverRedis)
		}
		if f := c.Source.Redis.Format; f != RedisFormatString && f != RedisFormatJSON {
			return fmt.Errorf("source.redis.format must be \"string\" or \"json\", got %q", f)
		}
	case DriverPostgres:
		if c.Source.Postgres.DSN == "" {
			return fmt.Errorf("source.postgres.dsn is required for driver %q", DriverPostgres)
		}
	default:
		return fmt.Errorf("source.driver must be one of file, http, redis, postgres, got %q", c.Source.Driver)
	}
	if c.Dashboard.SessionTTLSec < 0 {
		return fmt.Errorf("dashboard.session_ttl_sec must not be negative, got %d", c.Dashboard.SessionTTLSec)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
